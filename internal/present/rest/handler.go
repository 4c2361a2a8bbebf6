package rest

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/client"
	"github.com/repae-esatic/gateway/internal/adapter"
	"github.com/repae-esatic/gateway/internal/present/rest/presenter"
	"github.com/repae-esatic/gateway/internal/query"
	"github.com/repae-esatic/gateway/internal/session"
	"github.com/repae-esatic/gateway/internal/usecase"
)

// RealtimeSource publishes domain signals and streams the subscribed
// channels back to a consumer.
type RealtimeSource interface {
	Publish(ctx context.Context, channel string, signal repae.Signal) error
	Realtime(ctx context.Context, input <-chan []string, output chan<- repae.Signal)
}

type Handler struct {
	directory    *usecase.DirectoryUsecase
	profile      *usecase.ProfileUsecase
	offers       *usecase.OffersUsecase
	candidatures *usecase.CandidatureUsecase
	loyalty      *usecase.LoyaltyUsecase
	content      usecase.ContentSource
	session      *session.Session
	notify       RealtimeSource
}

func NewHandler(
	directory *usecase.DirectoryUsecase,
	profile *usecase.ProfileUsecase,
	offers *usecase.OffersUsecase,
	candidatures *usecase.CandidatureUsecase,
	loyalty *usecase.LoyaltyUsecase,
	content usecase.ContentSource,
	session *session.Session,
	notify RealtimeSource,
) *Handler {
	return &Handler{
		directory:    directory,
		profile:      profile,
		offers:       offers,
		candidatures: candidatures,
		loyalty:      loyalty,
		content:      content,
		session:      session,
		notify:       notify,
	}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	v1 := e.Group("/api/v1")

	v1.GET("/directory", h.handleDirectory)
	v1.GET("/directory/promotions", h.handleDirectoryPromotions)
	v1.GET("/profiles/:id", h.handleProfile)

	v1.GET("/me", h.handleMe)
	v1.POST("/logout", h.handleLogout)
	v1.GET("/me/notifications", h.handleNotifications)
	v1.GET("/me/notifications/unread-count", h.handleUnreadCount)
	v1.PATCH("/me/notifications/:id/read", h.handleMarkRead)
	v1.POST("/me/notifications/read-all", h.handleMarkAllRead)

	v1.GET("/theme", h.handleTheme)
	v1.PUT("/theme", h.handleSetTheme)
	v1.POST("/theme/toggle", h.handleToggleTheme)

	v1.GET("/news", h.handleNewsList)
	v1.GET("/news/:id", h.handleNews)
	v1.POST("/news", h.handleCreateNews)
	v1.PUT("/news/:id", h.handleUpdateNews)
	v1.GET("/events", h.handleEventsList)
	v1.GET("/events/:id", h.handleEvent)
	v1.POST("/events", h.handleCreateEvent)
	v1.PUT("/events/:id", h.handleUpdateEvent)
	v1.GET("/categories", h.handleCategories)
	v1.GET("/categories/:id", h.handleCategory)
	v1.POST("/categories", h.handleCreateCategory)
	v1.PUT("/categories/:id", h.handleUpdateCategory)

	v1.GET("/offers", h.handleOffers)
	v1.GET("/offers/:id", h.handleOffer)
	v1.GET("/offers/:id/candidatures", h.handleOfferCandidatures)
	v1.GET("/offers/:id/candidatures/stats", h.handleCandidatureStats)
	v1.POST("/offers/:id/candidatures", h.handleApply)
	v1.PATCH("/candidatures/:id", h.handleCandidatureTransition)

	v1.GET("/companies/:id/loyalty", h.handleLoyalty)
	v1.POST("/companies/:id/loyalty/award", h.handleLoyaltyAward)

	e.GET("/realtime", h.handleRealtime)
}

func intQuery(c echo.Context, name string) *int {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &v
}

func intQueryOr(c echo.Context, name string, def int) int {
	if v := intQuery(c, name); v != nil {
		return *v
	}
	return def
}

// --- directory ---

func (h *Handler) handleDirectory(c echo.Context) error {
	ctx := c.Request().Context()

	// Empty and "all" mean no availability constraint; anything else is
	// normalized through the adapter so unknown values land on a real
	// enum member instead of matching nothing.
	disponibilite := c.QueryParam("disponibilite")
	if disponibilite != "" && disponibilite != query.All {
		disponibilite = string(adapter.Availability(disponibilite))
	}

	q := usecase.DirectoryQuery{
		Search:       c.QueryParam("search"),
		PromotionID:  c.QueryParam("promotionId"),
		DepartmentID: c.QueryParam("departmentId"),
		CountryID:    c.QueryParam("countryId"),
		Availability: repae.Availability(disponibilite),
		Country:      c.QueryParam("pays"),
		City:         c.QueryParam("ville"),
		PromotionMin: intQuery(c, "promotionMin"),
		PromotionMax: intQuery(c, "promotionMax"),
		Page:         intQueryOr(c, "page", 1),
		Limit:        intQueryOr(c, "limit", 20),
	}

	page, err := h.directory.Search(ctx, q)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, page)
}

func (h *Handler) handleDirectoryPromotions(c echo.Context) error {
	years, err := h.directory.Promotions(c.Request().Context())
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"promotions": years})
}

func (h *Handler) handleProfile(c echo.Context) error {
	detail, err := h.profile.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.NotFound(c, "profile not found")
	}
	return presenter.OK(c, detail)
}

// --- session ---

func (h *Handler) handleMe(c echo.Context) error {
	alumni, err := h.session.User.EnsureLoaded(c.Request().Context())
	if err != nil {
		return presenter.NotFound(c, "no authenticated member")
	}
	return presenter.OK(c, alumni)
}

func (h *Handler) handleLogout(c echo.Context) error {
	h.session.Reset(c.Request().Context())
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleNotifications(c echo.Context) error {
	h.session.User.RefreshNotifications(c.Request().Context(), intQueryOr(c, "limit", 10))
	return presenter.OK(c, echo.Map{
		"data":   h.session.User.Notifications(),
		"unread": h.session.User.Unread(),
	})
}

// handleUnreadCount never fails: a broken identity service degrades to
// zero on this badge-count path.
func (h *Handler) handleUnreadCount(c echo.Context) error {
	h.session.User.RefreshUnread(c.Request().Context())
	return presenter.OK(c, echo.Map{"count": h.session.User.Unread()})
}

func (h *Handler) handleMarkRead(c echo.Context) error {
	if err := h.session.User.MarkRead(c.Request().Context(), c.Param("id")); err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

func (h *Handler) handleMarkAllRead(c echo.Context) error {
	if err := h.session.User.MarkAllRead(c.Request().Context()); err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, echo.Map{"status": "ok"})
}

// --- theme ---

func (h *Handler) handleTheme(c echo.Context) error {
	return presenter.OK(c, echo.Map{
		"mode": h.session.Theme.Mode(),
		"dark": h.session.Theme.IsDark(),
	})
}

func (h *Handler) handleSetTheme(c echo.Context) error {
	var body struct {
		Mode session.ThemeMode `json:"mode"`
	}
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	h.session.Theme.SetMode(c.Request().Context(), body.Mode)
	return h.handleTheme(c)
}

func (h *Handler) handleToggleTheme(c echo.Context) error {
	h.session.Theme.Toggle(c.Request().Context())
	return h.handleTheme(c)
}

// --- content pass-through ---

func (h *Handler) handleNewsList(c echo.Context) error {
	page, err := h.content.ListNews(c.Request().Context(), client.NewsFilter{
		Search:     c.QueryParam("search"),
		CategoryID: c.QueryParam("categoryId"),
		Status:     repae.ContentStatus(c.QueryParam("status")),
		Featured:   boolQuery(c, "featured"),
		Page:       intQuery(c, "page"),
		Limit:      intQuery(c, "limit"),
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, page)
}

func boolQuery(c echo.Context, name string) *bool {
	raw := c.QueryParam(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &v
}

func (h *Handler) handleNews(c echo.Context) error {
	news, err := h.content.GetNews(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.NotFound(c, "news not found")
	}
	return presenter.OK(c, news)
}

func (h *Handler) handleEventsList(c echo.Context) error {
	page, err := h.content.ListEvents(c.Request().Context(), client.EventFilter{
		Search:     c.QueryParam("search"),
		CategoryID: c.QueryParam("categoryId"),
		Page:       intQuery(c, "page"),
		Limit:      intQuery(c, "limit"),
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, page)
}

func (h *Handler) handleEvent(c echo.Context) error {
	event, err := h.content.GetEvent(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.NotFound(c, "event not found")
	}
	return presenter.OK(c, event)
}

func (h *Handler) handleCategories(c echo.Context) error {
	page, err := h.content.ListCategories(c.Request().Context(), client.RefFilter{
		Search: c.QueryParam("search"),
		Page:   intQuery(c, "page"),
		Limit:  intQuery(c, "limit"),
	})
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, page)
}

// formStr distinguishes an absent form field from one set to the empty
// string; only present fields reach the upstream service.
func formStr(c echo.Context, name string) *string {
	params, err := c.FormParams()
	if err != nil {
		return nil
	}
	values, ok := params[name]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formStatus(c echo.Context) *repae.ContentStatus {
	raw := formStr(c, "status")
	if raw == nil {
		return nil
	}
	status := repae.ContentStatus(*raw)
	return &status
}

// formFile returns the uploaded file part, or nil when none was attached.
func formFile(c echo.Context, field string) (*client.FilePart, error) {
	header, err := c.FormFile(field)
	if err != nil {
		return nil, nil
	}
	src, err := header.Open()
	if err != nil {
		return nil, err
	}
	return &client.FilePart{Field: field, Filename: header.Filename, Content: src}, nil
}

func (h *Handler) handleCreateNews(c echo.Context) error {
	payload := client.CreateNewsPayload{
		Title:           c.FormValue("title"),
		Content:         c.FormValue("content"),
		AuthorID:        c.FormValue("authorId"),
		AuthorFullName:  c.FormValue("authorFullName"),
		CategoryID:      c.FormValue("categoryId"),
		Summary:         formStr(c, "summary"),
		Slug:            formStr(c, "slug"),
		AuthorAvatarURL: formStr(c, "authorAvatarUrl"),
		Status:          formStatus(c),
	}
	if payload.Title == "" || payload.Content == "" {
		return presenter.BadRequestMessage(c, "title and content are required")
	}

	cover, err := formFile(c, "coverImage")
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	payload.CoverImage = cover

	news, err := h.content.CreateNews(c.Request().Context(), payload)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.Created(c, news)
}

func (h *Handler) handleUpdateNews(c echo.Context) error {
	payload := client.UpdateNewsPayload{
		Title:      formStr(c, "title"),
		Slug:       formStr(c, "slug"),
		Content:    formStr(c, "content"),
		Summary:    formStr(c, "summary"),
		CategoryID: formStr(c, "categoryId"),
		Status:     formStatus(c),
	}

	cover, err := formFile(c, "coverImage")
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	payload.CoverImage = cover

	news, err := h.content.UpdateNews(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, news)
}

func (h *Handler) handleCreateEvent(c echo.Context) error {
	payload := client.CreateEventPayload{
		Title:        c.FormValue("title"),
		Description:  c.FormValue("description"),
		EventDate:    c.FormValue("eventDate"),
		CategoryID:   c.FormValue("categoryId"),
		LocationType: repae.LocationType(c.FormValue("locationType")),
		LocationName: formStr(c, "locationName"),
		AccessURL:    formStr(c, "accessUrl"),
		Status:       formStatus(c),
	}
	if payload.Title == "" || payload.EventDate == "" {
		return presenter.BadRequestMessage(c, "title and eventDate are required")
	}

	image, err := formFile(c, "image")
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	payload.Image = image

	event, err := h.content.CreateEvent(c.Request().Context(), payload)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.Created(c, event)
}

func (h *Handler) handleUpdateEvent(c echo.Context) error {
	payload := client.UpdateEventPayload{
		Title:        formStr(c, "title"),
		Description:  formStr(c, "description"),
		EventDate:    formStr(c, "eventDate"),
		CategoryID:   formStr(c, "categoryId"),
		LocationName: formStr(c, "locationName"),
		AccessURL:    formStr(c, "accessUrl"),
		Status:       formStatus(c),
	}
	if raw := formStr(c, "locationType"); raw != nil {
		locationType := repae.LocationType(*raw)
		payload.LocationType = &locationType
	}

	image, err := formFile(c, "image")
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	payload.Image = image

	event, err := h.content.UpdateEvent(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, event)
}

func (h *Handler) handleCategory(c echo.Context) error {
	category, err := h.content.GetCategory(c.Request().Context(), c.Param("id"))
	if err != nil {
		return presenter.NotFound(c, "category not found")
	}
	return presenter.OK(c, category)
}

func (h *Handler) handleCreateCategory(c echo.Context) error {
	var payload client.CategoryPayload
	if err := c.Bind(&payload); err != nil {
		return presenter.BadRequest(c, err)
	}
	if payload.Name == "" {
		return presenter.BadRequestMessage(c, "name is required")
	}

	category, err := h.content.CreateCategory(c.Request().Context(), payload)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.Created(c, category)
}

func (h *Handler) handleUpdateCategory(c echo.Context) error {
	var payload client.CategoryPayload
	if err := c.Bind(&payload); err != nil {
		return presenter.BadRequest(c, err)
	}

	category, err := h.content.UpdateCategory(c.Request().Context(), c.Param("id"), payload)
	if err != nil {
		return presenter.InternalError(c, err)
	}
	return presenter.OK(c, category)
}

// --- offers & candidatures ---

func (h *Handler) handleOffers(c echo.Context) error {
	page := h.offers.List(c.Request().Context(), usecase.OfferQuery{
		Search:          c.QueryParam("search"),
		ContractType:    repae.ContractType(c.QueryParam("typeContrat")),
		RemoteMode:      repae.RemoteMode(c.QueryParam("modeRemote")),
		ExperienceLevel: repae.ExperienceLevel(c.QueryParam("niveauExperience")),
		Status:          repae.OfferStatus(c.QueryParam("statut")),
		Location:        c.QueryParam("lieu"),
		SalaryMin:       intQuery(c, "salaireMin"),
		SalaryMax:       intQuery(c, "salaireMax"),
		Page:            intQueryOr(c, "page", 1),
		Limit:           intQueryOr(c, "limit", 20),
	})
	return presenter.OK(c, page)
}

func (h *Handler) handleOffer(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	offer, ok := h.offers.Get(ctx, id)
	if !ok {
		return presenter.NotFound(c, "offer not found")
	}
	h.offers.RecordView(ctx, id)
	return presenter.OK(c, offer)
}

func (h *Handler) handleOfferCandidatures(c echo.Context) error {
	page := h.candidatures.ForOffer(
		c.Request().Context(),
		c.Param("id"),
		intQueryOr(c, "page", 1),
		intQueryOr(c, "limit", 20),
	)
	return presenter.OK(c, page)
}

func (h *Handler) handleCandidatureStats(c echo.Context) error {
	stats := h.candidatures.Stats(c.Request().Context(), c.Param("id"))
	return presenter.OK(c, stats)
}

func (h *Handler) handleApply(c echo.Context) error {
	ctx := c.Request().Context()
	offerID := c.Param("id")

	if _, ok := h.offers.Get(ctx, offerID); !ok {
		return presenter.NotFound(c, "offer not found")
	}

	var body struct {
		AlumniID string `json:"alumniId"`
		Message  string `json:"message"`
		CVURL    string `json:"cvUrl"`
	}
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if body.AlumniID == "" {
		return presenter.BadRequestMessage(c, "alumniId is required")
	}

	candidature := h.candidatures.Add(ctx, repae.Candidature{
		OfferID:  offerID,
		AlumniID: body.AlumniID,
		Message:  body.Message,
		CVURL:    body.CVURL,
	})
	h.offers.RecordApplication(ctx, offerID)

	if h.notify != nil {
		err := h.notify.Publish(ctx, "offers:"+offerID, repae.Signal{
			Kind:    "candidature",
			Payload: candidature,
		})
		if err != nil {
			slog.Error(
				"Failed to publish candidature signal",
				slog.String("error", err.Error()),
				slog.String("module", "rest"),
			)
		}
	}

	return presenter.Created(c, candidature)
}

func (h *Handler) handleCandidatureTransition(c echo.Context) error {
	var body struct {
		Statut repae.CandidatureStatus `json:"statut"`
		Actor  usecase.Actor           `json:"actor"`
	}
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}
	if body.Actor == "" {
		body.Actor = usecase.ActorCompany
	}

	candidature, err := h.candidatures.Transition(c.Request().Context(), c.Param("id"), body.Statut, body.Actor)
	if err != nil {
		return presenter.Conflict(c, err)
	}
	return presenter.OK(c, candidature)
}

// --- loyalty ---

func (h *Handler) handleLoyalty(c echo.Context) error {
	summary, ok := h.loyalty.Summary(c.Request().Context(), c.Param("id"))
	if !ok {
		return presenter.NotFound(c, "company not found")
	}
	return presenter.OK(c, echo.Map{
		"summary": summary,
		"history": h.loyalty.History(c.Request().Context(), c.Param("id")),
	})
}

func (h *Handler) handleLoyaltyAward(c echo.Context) error {
	var body struct {
		Action      string `json:"action"`
		Description string `json:"description"`
	}
	if err := c.Bind(&body); err != nil {
		return presenter.BadRequest(c, err)
	}

	summary, err := h.loyalty.Award(c.Request().Context(), c.Param("id"), body.Action, body.Description)
	if err != nil {
		return presenter.BadRequest(c, err)
	}
	return presenter.OK(c, summary)
}

// --- realtime ---

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type realtimeRequest struct {
	Type     string   `json:"type"`
	Channels []string `json:"channels"`
}

func (h *Handler) handleRealtime(c echo.Context) error {
	if h.notify == nil {
		return c.JSON(http.StatusServiceUnavailable, echo.Map{"error": "realtime is not configured"})
	}

	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error(
			"Failed to upgrade WebSocket",
			slog.String("error", err.Error()),
			slog.String("module", "socket"),
		)
		return err
	}
	defer ws.Close()

	ctx, cancel := context.WithCancel(c.Request().Context())
	defer cancel()

	// The reader goroutine owns input: it is the only sender and closes
	// it on exit, so the pump shuts down without racing a late "listen"
	// frame against the close.
	input := make(chan []string)
	output := make(chan repae.Signal)

	go h.notify.Realtime(ctx, input, output)

	quit := make(chan struct{}, 1)

	go func() {
		defer close(input)
		for {
			var req realtimeRequest
			err := ws.ReadJSON(&req)
			if err != nil {
				wsErr, ok := err.(*websocket.CloseError)
				if ok {
					if !(wsErr.Code == websocket.CloseNormalClosure || wsErr.Code == websocket.CloseGoingAway) {
						slog.DebugContext(
							ctx, "WebSocket closed",
							slog.String("error", wsErr.Error()),
							slog.String("module", "socket"),
						)
					}
				} else {
					slog.ErrorContext(
						ctx, "Error reading message",
						slog.String("error", err.Error()),
						slog.String("module", "socket"),
					)
				}

				quit <- struct{}{}
				return
			}

			switch req.Type {
			case "listen":
				select {
				case input <- req.Channels:
				case <-ctx.Done():
					return
				}
			case "h": // heartbeat
				// do nothing
			default:
				slog.InfoContext(
					ctx, "Unknown request type",
					slog.String("type", req.Type),
					slog.String("module", "socket"),
				)
			}
		}
	}()

	for {
		select {
		case <-quit:
			return nil
		case signal := <-output:
			err := ws.WriteJSON(signal)
			if err != nil {
				slog.ErrorContext(
					ctx, "Error writing message",
					slog.String("error", err.Error()),
					slog.String("module", "socket"),
				)
				return nil
			}
		}
	}
}

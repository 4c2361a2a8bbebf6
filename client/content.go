package client

import (
	"context"

	"github.com/repae-esatic/gateway"
)

// Content wraps the content service (news, events, categories).
type Content struct {
	*Client
}

func NewContent(baseURL string, token TokenSource) *Content {
	return &Content{Client: New(baseURL, token)}
}

// appendStr adds a multipart field only when the value is set. A pointer to
// the empty string is still sent: that clears the field upstream.
func appendStr(fields []FormField, name string, value *string) []FormField {
	if value == nil {
		return fields
	}
	return append(fields, FormField{Name: name, Value: *value})
}

// --- news ---

type NewsFilter struct {
	Search     string
	CategoryID string
	Status     repae.ContentStatus
	Featured   *bool
	Page       *int
	Limit      *int
}

func (c *Content) ListNews(ctx context.Context, f NewsFilter) (repae.Page[repae.News], error) {
	q := NewQuery().
		Str("search", f.Search).
		Str("categoryId", f.CategoryID).
		Str("status", string(f.Status)).
		Bool("featured", f.Featured).
		Int("page", f.Page).
		Int("limit", f.Limit)

	var out repae.Page[repae.News]
	err := c.Get(ctx, "/news", q, &out)
	return out, err
}

func (c *Content) GetNews(ctx context.Context, id string) (repae.News, error) {
	var out repae.News
	err := c.Get(ctx, "/news/"+id, nil, &out)
	return out, err
}

type CreateNewsPayload struct {
	Title           string
	Content         string
	AuthorID        string
	AuthorFullName  string
	CategoryID      string
	Summary         *string
	Slug            *string
	AuthorAvatarURL *string
	Status          *repae.ContentStatus
	CoverImage      *FilePart
}

func (c *Content) CreateNews(ctx context.Context, p CreateNewsPayload) (repae.News, error) {
	fields := []FormField{
		{Name: "title", Value: p.Title},
		{Name: "content", Value: p.Content},
		{Name: "authorId", Value: p.AuthorID},
		{Name: "authorFullName", Value: p.AuthorFullName},
		{Name: "categoryId", Value: p.CategoryID},
	}
	fields = appendStr(fields, "summary", p.Summary)
	fields = appendStr(fields, "slug", p.Slug)
	fields = appendStr(fields, "authorAvatarUrl", p.AuthorAvatarURL)
	if p.Status != nil {
		fields = append(fields, FormField{Name: "status", Value: string(*p.Status)})
	}

	var out repae.News
	err := c.PostMultipart(ctx, "/news", fields, p.CoverImage, &out)
	return out, err
}

type UpdateNewsPayload struct {
	Title      *string
	Slug       *string
	Content    *string
	Summary    *string
	CategoryID *string
	Status     *repae.ContentStatus
	CoverImage *FilePart
}

func (c *Content) UpdateNews(ctx context.Context, id string, p UpdateNewsPayload) (repae.News, error) {
	var fields []FormField
	fields = appendStr(fields, "title", p.Title)
	fields = appendStr(fields, "slug", p.Slug)
	fields = appendStr(fields, "content", p.Content)
	fields = appendStr(fields, "summary", p.Summary)
	fields = appendStr(fields, "categoryId", p.CategoryID)
	if p.Status != nil {
		fields = append(fields, FormField{Name: "status", Value: string(*p.Status)})
	}

	var out repae.News
	err := c.PutMultipart(ctx, "/news/"+id, fields, p.CoverImage, &out)
	return out, err
}

// --- events ---

type EventFilter struct {
	Search     string
	CategoryID string
	Page       *int
	Limit      *int
}

func (c *Content) ListEvents(ctx context.Context, f EventFilter) (repae.Page[repae.Event], error) {
	q := NewQuery().
		Str("search", f.Search).
		Str("categoryId", f.CategoryID).
		Int("page", f.Page).
		Int("limit", f.Limit)

	var out repae.Page[repae.Event]
	err := c.Get(ctx, "/events", q, &out)
	return out, err
}

func (c *Content) GetEvent(ctx context.Context, id string) (repae.Event, error) {
	var out repae.Event
	err := c.Get(ctx, "/events/"+id, nil, &out)
	return out, err
}

type CreateEventPayload struct {
	Title        string
	Description  string
	EventDate    string
	CategoryID   string
	LocationType repae.LocationType
	LocationName *string
	AccessURL    *string
	Status       *repae.ContentStatus
	Image        *FilePart
}

func (c *Content) CreateEvent(ctx context.Context, p CreateEventPayload) (repae.Event, error) {
	fields := []FormField{
		{Name: "title", Value: p.Title},
		{Name: "description", Value: p.Description},
		{Name: "eventDate", Value: p.EventDate},
		{Name: "categoryId", Value: p.CategoryID},
		{Name: "locationType", Value: string(p.LocationType)},
	}
	fields = appendStr(fields, "locationName", p.LocationName)
	fields = appendStr(fields, "accessUrl", p.AccessURL)
	if p.Status != nil {
		fields = append(fields, FormField{Name: "status", Value: string(*p.Status)})
	}

	var out repae.Event
	err := c.PostMultipart(ctx, "/events", fields, p.Image, &out)
	return out, err
}

type UpdateEventPayload struct {
	Title        *string
	Description  *string
	EventDate    *string
	CategoryID   *string
	LocationType *repae.LocationType
	LocationName *string
	AccessURL    *string
	Status       *repae.ContentStatus
	Image        *FilePart
}

func (c *Content) UpdateEvent(ctx context.Context, id string, p UpdateEventPayload) (repae.Event, error) {
	var fields []FormField
	fields = appendStr(fields, "title", p.Title)
	fields = appendStr(fields, "description", p.Description)
	fields = appendStr(fields, "eventDate", p.EventDate)
	fields = appendStr(fields, "categoryId", p.CategoryID)
	if p.LocationType != nil {
		fields = append(fields, FormField{Name: "locationType", Value: string(*p.LocationType)})
	}
	fields = appendStr(fields, "locationName", p.LocationName)
	fields = appendStr(fields, "accessUrl", p.AccessURL)
	if p.Status != nil {
		fields = append(fields, FormField{Name: "status", Value: string(*p.Status)})
	}

	var out repae.Event
	err := c.PutMultipart(ctx, "/events/"+id, fields, p.Image, &out)
	return out, err
}

// --- categories ---

func (c *Content) ListCategories(ctx context.Context, f RefFilter) (repae.Page[repae.Category], error) {
	var out repae.Page[repae.Category]
	key := "categories" + f.query().Encode()
	err := c.getCached(ctx, key, "/categories", f.query(), &out)
	return out, err
}

func (c *Content) GetCategory(ctx context.Context, id string) (repae.Category, error) {
	var out repae.Category
	err := c.Get(ctx, "/categories/"+id, nil, &out)
	return out, err
}

type CategoryPayload struct {
	Name       string  `json:"name"`
	Slug       *string `json:"slug,omitempty"`
	HexColor   *string `json:"hexColor,omitempty"`
	BgHexColor *string `json:"bgHexColor,omitempty"`
}

func (c *Content) CreateCategory(ctx context.Context, p CategoryPayload) (repae.Category, error) {
	var out repae.Category
	err := c.PostJSON(ctx, "/categories", p, &out)
	return out, err
}

func (c *Content) UpdateCategory(ctx context.Context, id string, p CategoryPayload) (repae.Category, error) {
	var out repae.Category
	err := c.PutJSON(ctx, "/categories/"+id, p, &out)
	return out, err
}

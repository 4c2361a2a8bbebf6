package client

import (
	"context"
	"fmt"

	"github.com/repae-esatic/gateway"
)

// Identity wraps the identity service (alumni, promotions, departments,
// countries, member notifications).
type Identity struct {
	*Client
}

func NewIdentity(baseURL string, token TokenSource) *Identity {
	return &Identity{Client: New(baseURL, token)}
}

type RegisterAlumniPayload struct {
	Email       string `json:"email"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	PromotionID string `json:"promotionId"`
	Degree      string `json:"degree,omitempty"`
}

func (c *Identity) RegisterAlumni(ctx context.Context, payload RegisterAlumniPayload) (repae.Alumni, error) {
	var out repae.Alumni
	err := c.PostJSON(ctx, "/auth/register/alumni", payload, &out)
	return out, err
}

type AlumniFilter struct {
	Search            string
	IsVerified        *bool
	IsOpenToMentoring *bool
	PromotionID       string
	DepartmentID      string
	CountryID         string
	Page              *int
	Limit             *int
}

func (c *Identity) ListAlumni(ctx context.Context, f AlumniFilter) (repae.Page[repae.Alumni], error) {
	q := NewQuery().
		Str("search", f.Search).
		Bool("isVerified", f.IsVerified).
		Bool("isOpenToMentoring", f.IsOpenToMentoring).
		Str("promotionId", f.PromotionID).
		Str("departmentId", f.DepartmentID).
		Str("countryId", f.CountryID).
		Int("page", f.Page).
		Int("limit", f.Limit)

	var out repae.Page[repae.Alumni]
	err := c.Get(ctx, "/alumnis", q, &out)
	return out, err
}

func (c *Identity) GetAlumni(ctx context.Context, id string) (repae.Alumni, error) {
	var out repae.Alumni
	err := c.Get(ctx, "/alumnis/"+id, nil, &out)
	return out, err
}

// MyAlumni returns the profile of the authenticated member.
func (c *Identity) MyAlumni(ctx context.Context) (repae.Alumni, error) {
	var out repae.Alumni
	err := c.Get(ctx, "/alumnis/my", nil, &out)
	return out, err
}

func (c *Identity) VerifyAlumni(ctx context.Context, id string) (repae.Alumni, error) {
	var out repae.Alumni
	err := c.Patch(ctx, "/alumnis/"+id+"/verify", nil, &out)
	return out, err
}

func (c *Identity) ListExperiences(ctx context.Context, alumniID string) ([]repae.WorkExperience, error) {
	var out []repae.WorkExperience
	err := c.Get(ctx, "/alumnis/"+alumniID+"/experiences", nil, &out)
	return out, err
}

func (c *Identity) ListEducations(ctx context.Context, alumniID string) ([]repae.Education, error) {
	var out []repae.Education
	err := c.Get(ctx, "/alumnis/"+alumniID+"/educations", nil, &out)
	return out, err
}

func (c *Identity) ListProjects(ctx context.Context, alumniID string) ([]repae.Project, error) {
	var out []repae.Project
	err := c.Get(ctx, "/alumnis/"+alumniID+"/projects", nil, &out)
	return out, err
}

type RefFilter struct {
	Search string
	Page   *int
	Limit  *int
}

func (f RefFilter) query() *Query {
	limit := 100
	if f.Limit != nil {
		limit = *f.Limit
	}
	return NewQuery().
		Str("search", f.Search).
		Int("page", f.Page).
		Int("limit", &limit)
}

func (c *Identity) ListPromotions(ctx context.Context, f RefFilter) (repae.Page[repae.Promotion], error) {
	var out repae.Page[repae.Promotion]
	key := "promotions" + f.query().Encode()
	err := c.getCached(ctx, key, "/promotions", f.query(), &out)
	return out, err
}

func (c *Identity) ListDepartments(ctx context.Context, f RefFilter) (repae.Page[repae.Department], error) {
	var out repae.Page[repae.Department]
	key := "departments" + f.query().Encode()
	err := c.getCached(ctx, key, "/departments", f.query(), &out)
	return out, err
}

func (c *Identity) ListCountries(ctx context.Context, f RefFilter) (repae.Page[repae.Country], error) {
	var out repae.Page[repae.Country]
	key := "countries" + f.query().Encode()
	err := c.getCached(ctx, key, "/countries", f.query(), &out)
	return out, err
}

func (c *Identity) ListNotifications(ctx context.Context, page, limit int) (repae.Page[repae.Notification], error) {
	q := NewQuery().Int("page", &page).Int("limit", &limit)
	var out repae.Page[repae.Notification]
	err := c.Get(ctx, "/notifications", q, &out)
	return out, err
}

func (c *Identity) UnreadCount(ctx context.Context) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	if err := c.Get(ctx, "/notifications/unread-count", nil, &out); err != nil {
		return 0, fmt.Errorf("failed to fetch unread count: %w", err)
	}
	return out.Count, nil
}

func (c *Identity) MarkRead(ctx context.Context, id string) error {
	return c.Patch(ctx, "/notifications/"+id+"/read", nil, nil)
}

func (c *Identity) MarkAllRead(ctx context.Context) error {
	return c.PostJSON(ctx, "/notifications/read-all", nil, nil)
}

package usecase

import (
	"context"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/client"
)

// AlumniSource is the identity-service surface the directory and profile
// usecases consume. *client.Identity satisfies it.
type AlumniSource interface {
	ListAlumni(ctx context.Context, f client.AlumniFilter) (repae.Page[repae.Alumni], error)
	GetAlumni(ctx context.Context, id string) (repae.Alumni, error)
	ListExperiences(ctx context.Context, alumniID string) ([]repae.WorkExperience, error)
	ListEducations(ctx context.Context, alumniID string) ([]repae.Education, error)
	ListProjects(ctx context.Context, alumniID string) ([]repae.Project, error)
}

// ContentSource is the content-service surface for news and events
// pass-through. *client.Content satisfies it.
type ContentSource interface {
	ListNews(ctx context.Context, f client.NewsFilter) (repae.Page[repae.News], error)
	GetNews(ctx context.Context, id string) (repae.News, error)
	CreateNews(ctx context.Context, p client.CreateNewsPayload) (repae.News, error)
	UpdateNews(ctx context.Context, id string, p client.UpdateNewsPayload) (repae.News, error)
	ListEvents(ctx context.Context, f client.EventFilter) (repae.Page[repae.Event], error)
	GetEvent(ctx context.Context, id string) (repae.Event, error)
	CreateEvent(ctx context.Context, p client.CreateEventPayload) (repae.Event, error)
	UpdateEvent(ctx context.Context, id string, p client.UpdateEventPayload) (repae.Event, error)
	ListCategories(ctx context.Context, f client.RefFilter) (repae.Page[repae.Category], error)
	GetCategory(ctx context.Context, id string) (repae.Category, error)
	CreateCategory(ctx context.Context, p client.CategoryPayload) (repae.Category, error)
	UpdateCategory(ctx context.Context, id string, p client.CategoryPayload) (repae.Category, error)
}

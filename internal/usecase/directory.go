package usecase

import (
	"context"

	"github.com/pkg/errors"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/client"
	"github.com/repae-esatic/gateway/internal/adapter"
	"github.com/repae-esatic/gateway/internal/query"
)

// upstreamFetchLimit caps how many records one directory search pulls
// from the identity service before filtering locally.
const upstreamFetchLimit = 500

type DirectoryUsecase struct {
	source AlumniSource
}

func NewDirectoryUsecase(source AlumniSource) *DirectoryUsecase {
	return &DirectoryUsecase{source: source}
}

// DirectoryQuery narrows the directory beyond the upstream query surface:
// search and reference ids go upstream, availability and the promotion
// range are applied locally on the adapted profiles.
type DirectoryQuery struct {
	Search       string
	PromotionID  string
	DepartmentID string
	CountryID    string
	Availability repae.Availability // "" or "all" means no constraint
	Country      string
	City         string
	PromotionMin *int
	PromotionMax *int
	Page         int
	Limit        int
}

// Search lists alumni as profile view models, one page at a time.
func (uc *DirectoryUsecase) Search(ctx context.Context, q DirectoryQuery) (repae.Page[repae.Profile], error) {
	limit := upstreamFetchLimit
	upstream, err := uc.source.ListAlumni(ctx, client.AlumniFilter{
		Search:       q.Search,
		PromotionID:  q.PromotionID,
		DepartmentID: q.DepartmentID,
		CountryID:    q.CountryID,
		Limit:        &limit,
	})
	if err != nil {
		return repae.Page[repae.Profile]{}, errors.Wrap(err, "directory: list alumni")
	}

	profiles := make([]repae.Profile, 0, len(upstream.Data))
	for _, a := range upstream.Data {
		profiles = append(profiles, adapter.AlumniToProfile(a))
	}

	spec := query.Spec[repae.Profile]{
		Search: q.Search,
		SearchFields: func(p repae.Profile) []string {
			fields := []string{p.Prenom, p.Nom, p.PosteActuel, p.EntrepriseActuelle}
			return append(fields, p.Competences...)
		},
	}
	spec = spec.With(query.Enum(q.Availability, func(p repae.Profile) repae.Availability { return p.Disponibilite }))
	spec = spec.With(query.Enum(q.Country, func(p repae.Profile) string { return p.Pays }))
	spec = spec.With(query.Enum(q.City, func(p repae.Profile) string { return p.Ville }))
	spec = spec.WithRange(query.Range(q.PromotionMin, q.PromotionMax, func(p repae.Profile) int { return p.Promotion }))

	return query.Paginate(spec.Apply(profiles), q.Page, q.Limit), nil
}

// Promotions returns the distinct promotion years in the directory,
// newest first.
func (uc *DirectoryUsecase) Promotions(ctx context.Context) ([]int, error) {
	limit := upstreamFetchLimit
	upstream, err := uc.source.ListAlumni(ctx, client.AlumniFilter{Limit: &limit})
	if err != nil {
		return nil, errors.Wrap(err, "directory: list alumni")
	}

	years := query.Distinct(upstream.Data, func(a repae.Alumni) int { return a.Promotion })
	return query.SortBy(years, func(a, b int) bool { return a > b }), nil
}

package usecase

import (
	"context"
	"sync"
	"time"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/internal/query"
)

// OffersUsecase serves the recruiting-portal listings. The collection
// lives in memory for the duration of the process; the authoritative
// copies stay with the upstream service that seeded it.
type OffersUsecase struct {
	mu     sync.RWMutex
	offers []repae.Offer
	now    func() time.Time
}

func NewOffersUsecase(seed []repae.Offer) *OffersUsecase {
	offers := make([]repae.Offer, len(seed))
	copy(offers, seed)
	return &OffersUsecase{offers: offers, now: time.Now}
}

// WithClock replaces the clock; tests use it to pin expiry checks.
func (uc *OffersUsecase) WithClock(now func() time.Time) *OffersUsecase {
	uc.now = now
	return uc
}

type OfferQuery struct {
	Search          string
	ContractType    repae.ContractType
	RemoteMode      repae.RemoteMode
	ExperienceLevel repae.ExperienceLevel
	Status          repae.OfferStatus
	Location        string
	SalaryMin       *int
	SalaryMax       *int
	Page            int
	Limit           int
}

// effectiveStatus presents a published offer past its expiry date as
// expired without mutating the stored record.
func (uc *OffersUsecase) effectiveStatus(o repae.Offer) repae.OfferStatus {
	if o.Status == repae.OfferPublished && o.ExpiresAt != nil && o.ExpiresAt.Before(uc.now()) {
		return repae.OfferExpired
	}
	return o.Status
}

// List filters and paginates the offers, newest publication first.
func (uc *OffersUsecase) List(ctx context.Context, q OfferQuery) repae.Page[repae.Offer] {
	uc.mu.RLock()
	offers := make([]repae.Offer, len(uc.offers))
	copy(offers, uc.offers)
	uc.mu.RUnlock()

	for i := range offers {
		offers[i].Status = uc.effectiveStatus(offers[i])
	}

	spec := query.Spec[repae.Offer]{
		Search: q.Search,
		SearchFields: func(o repae.Offer) []string {
			fields := []string{o.Title, o.CompanyName, o.Location}
			return append(fields, o.Skills...)
		},
	}
	spec = spec.With(query.Enum(q.ContractType, func(o repae.Offer) repae.ContractType { return o.ContractType }))
	spec = spec.With(query.Enum(q.RemoteMode, func(o repae.Offer) repae.RemoteMode { return o.RemoteMode }))
	spec = spec.With(query.Enum(q.ExperienceLevel, func(o repae.Offer) repae.ExperienceLevel { return o.ExperienceLevel }))
	spec = spec.With(query.Enum(q.Status, func(o repae.Offer) repae.OfferStatus { return o.Status }))
	spec = spec.With(query.Enum(q.Location, func(o repae.Offer) string { return o.Location }))
	if q.SalaryMin != nil || q.SalaryMax != nil {
		// Inclusive overlap between the requested band and the offer's
		// band; offers without salary data pass.
		spec = spec.WithRange(func(o repae.Offer) bool {
			if o.SalaryMin == 0 && o.SalaryMax == 0 {
				return true
			}
			if q.SalaryMin != nil && o.SalaryMax < *q.SalaryMin {
				return false
			}
			if q.SalaryMax != nil && o.SalaryMin > *q.SalaryMax {
				return false
			}
			return true
		})
	}

	filtered := query.SortBy(spec.Apply(offers), func(a, b repae.Offer) bool {
		switch {
		case a.PublishedAt == nil:
			return false
		case b.PublishedAt == nil:
			return true
		default:
			return a.PublishedAt.After(*b.PublishedAt)
		}
	})

	return query.Paginate(filtered, q.Page, q.Limit)
}

// Get returns one offer with its effective status.
func (uc *OffersUsecase) Get(ctx context.Context, id string) (repae.Offer, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	for _, o := range uc.offers {
		if o.ID == id {
			o.Status = uc.effectiveStatus(o)
			return o, true
		}
	}
	return repae.Offer{}, false
}

// RecordView bumps the view counter. Counters only ever grow here;
// reconciliation with the upstream copy is the upstream's concern.
func (uc *OffersUsecase) RecordView(ctx context.Context, id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.offers {
		if uc.offers[i].ID == id {
			uc.offers[i].ViewCount++
			return
		}
	}
}

// RecordApplication bumps the application counter.
func (uc *OffersUsecase) RecordApplication(ctx context.Context, id string) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	for i := range uc.offers {
		if uc.offers[i].ID == id {
			uc.offers[i].ApplicationCount++
			return
		}
	}
}

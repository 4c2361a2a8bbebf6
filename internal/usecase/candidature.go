package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/repae-esatic/gateway"
	"github.com/repae-esatic/gateway/internal/query"
)

// Actor of a candidature transition.
type Actor string

const (
	ActorCompany   Actor = "company"
	ActorApplicant Actor = "applicant"
)

// companyTransitions is the recruiting state machine:
// nouvelle -> vue -> en_cours -> {acceptee | refusee}.
var companyTransitions = map[repae.CandidatureStatus][]repae.CandidatureStatus{
	repae.CandidatureNew:      {repae.CandidatureViewed},
	repae.CandidatureViewed:   {repae.CandidatureInReview},
	repae.CandidatureInReview: {repae.CandidatureAccepted, repae.CandidatureRejected},
}

func terminal(s repae.CandidatureStatus) bool {
	switch s {
	case repae.CandidatureAccepted, repae.CandidatureRejected, repae.CandidatureWithdrawn:
		return true
	}
	return false
}

// CandidatureUsecase holds the applications of the current process. It
// never transitions a record on its own; every state change is a caller
// decision, validated here.
type CandidatureUsecase struct {
	mu           sync.RWMutex
	candidatures []repae.Candidature
	now          func() time.Time
}

func NewCandidatureUsecase(seed []repae.Candidature) *CandidatureUsecase {
	candidatures := make([]repae.Candidature, len(seed))
	copy(candidatures, seed)
	return &CandidatureUsecase{candidatures: candidatures, now: time.Now}
}

// CanTransition reports whether the move is legal for the actor. The
// applicant may withdraw from any pre-terminal state; the company walks
// the review pipeline.
func CanTransition(from, to repae.CandidatureStatus, actor Actor) bool {
	if actor == ActorApplicant {
		return to == repae.CandidatureWithdrawn && !terminal(from)
	}
	for _, next := range companyTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// Transition applies one state change. An illegal move returns an error
// and leaves the record untouched.
func (uc *CandidatureUsecase) Transition(ctx context.Context, id string, to repae.CandidatureStatus, actor Actor) (repae.Candidature, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	for i := range uc.candidatures {
		if uc.candidatures[i].ID != id {
			continue
		}
		from := uc.candidatures[i].Statut
		if !CanTransition(from, to, actor) {
			return repae.Candidature{}, fmt.Errorf("illegal candidature transition %s -> %s for %s", from, to, actor)
		}
		uc.candidatures[i].Statut = to
		uc.candidatures[i].UpdatedAt = uc.now()
		return uc.candidatures[i], nil
	}
	return repae.Candidature{}, fmt.Errorf("candidature %s not found", id)
}

// Add registers a new application in state nouvelle.
func (uc *CandidatureUsecase) Add(ctx context.Context, c repae.Candidature) repae.Candidature {
	c.Statut = repae.CandidatureNew
	if c.CreatedAt.IsZero() {
		c.CreatedAt = uc.now()
	}
	c.UpdatedAt = c.CreatedAt
	uc.mu.Lock()
	uc.candidatures = append(uc.candidatures, c)
	uc.mu.Unlock()
	return c
}

// ForOffer lists the applications of one offer in insertion order.
func (uc *CandidatureUsecase) ForOffer(ctx context.Context, offerID string, page, limit int) repae.Page[repae.Candidature] {
	uc.mu.RLock()
	all := make([]repae.Candidature, len(uc.candidatures))
	copy(all, uc.candidatures)
	uc.mu.RUnlock()

	spec := query.Spec[repae.Candidature]{}
	spec = spec.With(query.Enum(offerID, func(c repae.Candidature) string { return c.OfferID }))
	return query.Paginate(spec.Apply(all), page, limit)
}

// Stats counts applications of one offer per status.
func (uc *CandidatureUsecase) Stats(ctx context.Context, offerID string) map[repae.CandidatureStatus]int {
	uc.mu.RLock()
	defer uc.mu.RUnlock()

	stats := map[repae.CandidatureStatus]int{
		repae.CandidatureNew:       0,
		repae.CandidatureViewed:    0,
		repae.CandidatureInReview:  0,
		repae.CandidatureAccepted:  0,
		repae.CandidatureRejected:  0,
		repae.CandidatureWithdrawn: 0,
	}
	for _, c := range uc.candidatures {
		if c.OfferID == offerID {
			stats[c.Statut]++
		}
	}
	return stats
}

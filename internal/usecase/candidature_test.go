package usecase

import (
	"context"
	"testing"

	"github.com/repae-esatic/gateway"
)

func TestCanTransitionCompanyPipeline(t *testing.T) {
	allowed := []struct {
		from, to repae.CandidatureStatus
	}{
		{repae.CandidatureNew, repae.CandidatureViewed},
		{repae.CandidatureViewed, repae.CandidatureInReview},
		{repae.CandidatureInReview, repae.CandidatureAccepted},
		{repae.CandidatureInReview, repae.CandidatureRejected},
	}
	for _, c := range allowed {
		if !CanTransition(c.from, c.to, ActorCompany) {
			t.Fatalf("expected %s -> %s to be legal for the company", c.from, c.to)
		}
	}

	forbidden := []struct {
		from, to repae.CandidatureStatus
	}{
		{repae.CandidatureNew, repae.CandidatureAccepted},
		{repae.CandidatureNew, repae.CandidatureInReview},
		{repae.CandidatureViewed, repae.CandidatureRejected},
		{repae.CandidatureAccepted, repae.CandidatureRejected},
		{repae.CandidatureInReview, repae.CandidatureNew},
		{repae.CandidatureNew, repae.CandidatureWithdrawn},
	}
	for _, c := range forbidden {
		if CanTransition(c.from, c.to, ActorCompany) {
			t.Fatalf("expected %s -> %s to be illegal for the company", c.from, c.to)
		}
	}
}

func TestCanTransitionApplicantWithdraws(t *testing.T) {
	for _, from := range []repae.CandidatureStatus{
		repae.CandidatureNew,
		repae.CandidatureViewed,
		repae.CandidatureInReview,
	} {
		if !CanTransition(from, repae.CandidatureWithdrawn, ActorApplicant) {
			t.Fatalf("expected applicant withdrawal from %s", from)
		}
	}
	for _, from := range []repae.CandidatureStatus{
		repae.CandidatureAccepted,
		repae.CandidatureRejected,
		repae.CandidatureWithdrawn,
	} {
		if CanTransition(from, repae.CandidatureWithdrawn, ActorApplicant) {
			t.Fatalf("expected no withdrawal from terminal state %s", from)
		}
	}
	if CanTransition(repae.CandidatureNew, repae.CandidatureViewed, ActorApplicant) {
		t.Fatalf("applicant must not walk the review pipeline")
	}
}

func TestTransitionIllegalMoveLeavesRecordUntouched(t *testing.T) {
	uc := NewCandidatureUsecase([]repae.Candidature{
		{ID: "c1", OfferID: "o1", Statut: repae.CandidatureNew},
	})

	_, err := uc.Transition(context.Background(), "c1", repae.CandidatureAccepted, ActorCompany)
	if err == nil {
		t.Fatalf("expected an error for nouvelle -> acceptee")
	}

	page := uc.ForOffer(context.Background(), "o1", 1, 10)
	if page.Data[0].Statut != repae.CandidatureNew {
		t.Fatalf("record was mutated to %s", page.Data[0].Statut)
	}
}

func TestTransitionWalksThePipeline(t *testing.T) {
	uc := NewCandidatureUsecase([]repae.Candidature{
		{ID: "c1", OfferID: "o1", Statut: repae.CandidatureNew},
	})
	ctx := context.Background()

	for _, to := range []repae.CandidatureStatus{
		repae.CandidatureViewed,
		repae.CandidatureInReview,
		repae.CandidatureAccepted,
	} {
		got, err := uc.Transition(ctx, "c1", to, ActorCompany)
		if err != nil {
			t.Fatalf("transition to %s failed: %v", to, err)
		}
		if got.Statut != to {
			t.Fatalf("expected %s got %s", to, got.Statut)
		}
	}
}

func TestTransitionUnknownID(t *testing.T) {
	uc := NewCandidatureUsecase(nil)
	if _, err := uc.Transition(context.Background(), "nope", repae.CandidatureViewed, ActorCompany); err == nil {
		t.Fatalf("expected error for unknown candidature")
	}
}

func TestAddForcesNouvelle(t *testing.T) {
	uc := NewCandidatureUsecase(nil)
	got := uc.Add(context.Background(), repae.Candidature{
		OfferID:  "o1",
		AlumniID: "a1",
		Statut:   repae.CandidatureAccepted,
	})
	if got.Statut != repae.CandidatureNew {
		t.Fatalf("expected nouvelle got %s", got.Statut)
	}
	if got.CreatedAt.IsZero() || !got.UpdatedAt.Equal(got.CreatedAt) {
		t.Fatalf("expected timestamps to be set together")
	}
}

func TestForOfferFiltersAndPaginates(t *testing.T) {
	uc := NewCandidatureUsecase([]repae.Candidature{
		{ID: "c1", OfferID: "o1"},
		{ID: "c2", OfferID: "o2"},
		{ID: "c3", OfferID: "o1"},
		{ID: "c4", OfferID: "o1"},
	})

	page := uc.ForOffer(context.Background(), "o1", 2, 2)
	if page.Total != 3 {
		t.Fatalf("expected total 3 got %d", page.Total)
	}
	if len(page.Data) != 1 || page.Data[0].ID != "c4" {
		t.Fatalf("expected [c4] got %v", page.Data)
	}
}

func TestStatsCountsPerStatus(t *testing.T) {
	uc := NewCandidatureUsecase([]repae.Candidature{
		{ID: "c1", OfferID: "o1", Statut: repae.CandidatureNew},
		{ID: "c2", OfferID: "o1", Statut: repae.CandidatureNew},
		{ID: "c3", OfferID: "o1", Statut: repae.CandidatureAccepted},
		{ID: "c4", OfferID: "o2", Statut: repae.CandidatureNew},
	})

	stats := uc.Stats(context.Background(), "o1")
	if stats[repae.CandidatureNew] != 2 {
		t.Fatalf("expected 2 nouvelles got %d", stats[repae.CandidatureNew])
	}
	if stats[repae.CandidatureAccepted] != 1 {
		t.Fatalf("expected 1 acceptee got %d", stats[repae.CandidatureAccepted])
	}
	if stats[repae.CandidatureRejected] != 0 {
		t.Fatalf("expected zero-valued bucket to be present")
	}
}

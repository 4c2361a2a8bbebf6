package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/repae-esatic/gateway"
)

func tp(t time.Time) *time.Time { return &t }

func offerFixtures(now time.Time) []repae.Offer {
	return []repae.Offer{
		{
			ID: "o1", Title: "Backend Go", CompanyName: "Wave", Location: "Abidjan",
			ContractType: repae.ContractCDI, RemoteMode: repae.RemoteHybrid,
			Status: repae.OfferPublished, SalaryMin: 800, SalaryMax: 1200,
			Skills: []string{"Go", "Redis"}, PublishedAt: tp(now.Add(-48 * time.Hour)),
		},
		{
			ID: "o2", Title: "Frontend Vue", CompanyName: "Djamo", Location: "Abidjan",
			ContractType: repae.ContractCDD, RemoteMode: repae.RemoteFull,
			Status: repae.OfferPublished, SalaryMin: 500, SalaryMax: 700,
			Skills: []string{"Vue.js"}, PublishedAt: tp(now.Add(-24 * time.Hour)),
		},
		{
			ID: "o3", Title: "Stage data", CompanyName: "Orange CI", Location: "Yamoussoukro",
			ContractType: repae.ContractInternship, Status: repae.OfferPublished,
			PublishedAt: tp(now.Add(-72 * time.Hour)), ExpiresAt: tp(now.Add(-time.Hour)),
		},
		{
			ID: "o4", Title: "Brouillon", CompanyName: "MTN", Location: "Abidjan",
			ContractType: repae.ContractCDI, Status: repae.OfferDraft,
		},
	}
}

func TestListSortsNewestFirstNilLast(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	uc := NewOffersUsecase(offerFixtures(now)).WithClock(func() time.Time { return now })

	page := uc.List(context.Background(), OfferQuery{Page: 1, Limit: 10})
	if page.Total != 4 {
		t.Fatalf("expected 4 offers got %d", page.Total)
	}
	wantOrder := []string{"o2", "o1", "o3", "o4"}
	for i, want := range wantOrder {
		if page.Data[i].ID != want {
			t.Fatalf("position %d: expected %s got %s", i, want, page.Data[i].ID)
		}
	}
}

func TestListPresentsExpiredStatusWithoutMutating(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	uc := NewOffersUsecase(offerFixtures(now)).WithClock(func() time.Time { return now })
	ctx := context.Background()

	page := uc.List(ctx, OfferQuery{Status: repae.OfferExpired, Page: 1, Limit: 10})
	if page.Total != 1 || page.Data[0].ID != "o3" {
		t.Fatalf("expected only o3 expired got %v", page.Data)
	}

	// Move the clock before the expiry date; the same offer is published
	// again because the stored record was never touched.
	uc.WithClock(func() time.Time { return now.Add(-24 * time.Hour) })
	page = uc.List(ctx, OfferQuery{Status: repae.OfferPublished, Page: 1, Limit: 10})
	found := false
	for _, o := range page.Data {
		if o.ID == "o3" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected o3 back in published before its expiry")
	}
}

func TestListSalaryBandOverlap(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	uc := NewOffersUsecase(offerFixtures(now)).WithClock(func() time.Time { return now })

	ctx := context.Background()

	min := 700
	page := uc.List(ctx, OfferQuery{SalaryMin: &min, Page: 1, Limit: 10})
	has := func(id string) bool {
		for _, o := range page.Data {
			if o.ID == id {
				return true
			}
		}
		return false
	}
	if !has("o2") {
		t.Fatalf("o2 tops out exactly at the requested minimum; the bound is inclusive")
	}
	if !has("o1") {
		t.Fatalf("expected o1 to overlap the requested band")
	}
	if !has("o3") || !has("o4") {
		t.Fatalf("offers without salary data must pass the salary filter")
	}

	min = 800
	page = uc.List(ctx, OfferQuery{SalaryMin: &min, Page: 1, Limit: 10})
	for _, o := range page.Data {
		if o.ID == "o2" {
			t.Fatalf("o2 sits entirely below the requested band, got %v", page.Data)
		}
	}
}

func TestListFiltersByContractAndSearch(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	uc := NewOffersUsecase(offerFixtures(now)).WithClock(func() time.Time { return now })

	page := uc.List(context.Background(), OfferQuery{
		Search:       "vue",
		ContractType: repae.ContractCDD,
		Page:         1,
		Limit:        10,
	})
	if page.Total != 1 || page.Data[0].ID != "o2" {
		t.Fatalf("expected only o2 got %v", page.Data)
	}
}

func TestGetReportsEffectiveStatus(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	uc := NewOffersUsecase(offerFixtures(now)).WithClock(func() time.Time { return now })

	offer, ok := uc.Get(context.Background(), "o3")
	if !ok {
		t.Fatalf("expected o3 to exist")
	}
	if offer.Status != repae.OfferExpired {
		t.Fatalf("expected expiree got %s", offer.Status)
	}

	if _, ok := uc.Get(context.Background(), "ghost"); ok {
		t.Fatalf("expected miss for unknown id")
	}
}

func TestCountersOnlyGrow(t *testing.T) {
	now := time.Date(2025, time.May, 1, 12, 0, 0, 0, time.UTC)
	uc := NewOffersUsecase(offerFixtures(now)).WithClock(func() time.Time { return now })
	ctx := context.Background()

	uc.RecordView(ctx, "o1")
	uc.RecordView(ctx, "o1")
	uc.RecordApplication(ctx, "o1")
	uc.RecordView(ctx, "ghost") // no-op

	offer, _ := uc.Get(ctx, "o1")
	if offer.ViewCount != 2 || offer.ApplicationCount != 1 {
		t.Fatalf("expected counters 2/1 got %d/%d", offer.ViewCount, offer.ApplicationCount)
	}
}

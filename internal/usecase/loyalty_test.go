package usecase

import (
	"context"
	"testing"

	"github.com/repae-esatic/gateway"
)

func TestTierForBoundaries(t *testing.T) {
	cases := []struct {
		points int
		want   Tier
	}{
		{0, TierBronze},
		{99, TierBronze},
		{100, TierSilver},
		{249, TierSilver},
		{250, TierGold},
		{499, TierGold},
		{500, TierPlatinum},
		{10000, TierPlatinum},
	}
	for _, c := range cases {
		if got := TierFor(c.points); got != c.want {
			t.Fatalf("TierFor(%d) = %s want %s", c.points, got, c.want)
		}
	}
}

func TestPointsToNext(t *testing.T) {
	if got := PointsToNext(80); got != 20 {
		t.Fatalf("expected 20 got %d", got)
	}
	if got := PointsToNext(100); got != 150 {
		t.Fatalf("expected 150 got %d", got)
	}
	if got := PointsToNext(600); got != 0 {
		t.Fatalf("expected 0 at the top got %d", got)
	}
}

func TestProgressPercent(t *testing.T) {
	if got := ProgressPercent(50); got != 50 {
		t.Fatalf("expected 50 got %d", got)
	}
	if got := ProgressPercent(250); got != 0 {
		t.Fatalf("expected 0 at the gold floor got %d", got)
	}
	if got := ProgressPercent(9999); got != 100 {
		t.Fatalf("expected 100 at the top got %d", got)
	}
}

func TestAwardCreditsConfiguredPoints(t *testing.T) {
	uc := NewLoyaltyUsecase(nil)
	ctx := context.Background()

	summary, err := uc.Award(ctx, "co1", "hire_confirmed", "embauche Awa")
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if summary.Points != 50 || summary.TotalEarned != 50 {
		t.Fatalf("expected 50 points got %+v", summary)
	}
	if summary.Tier != TierBronze || summary.NextTier != TierSilver {
		t.Fatalf("unexpected tiers %+v", summary)
	}

	history := uc.History(ctx, "co1")
	if len(history) != 1 || history[0].Type != repae.TransactionGain || history[0].Points != 50 {
		t.Fatalf("unexpected history %v", history)
	}
	if history[0].ID == "" {
		t.Fatalf("expected a transaction id")
	}
}

func TestAwardUnknownActionIsAnError(t *testing.T) {
	uc := NewLoyaltyUsecase(nil)
	if _, err := uc.Award(context.Background(), "co1", "free_money", ""); err == nil {
		t.Fatalf("expected error for unknown action")
	}
	if _, ok := uc.Summary(context.Background(), "co1"); ok {
		t.Fatalf("no account should be created for a rejected award")
	}
}

func TestAwardCrossesTierBoundary(t *testing.T) {
	uc := NewLoyaltyUsecase([]repae.CompanyLoyalty{{CompanyID: "co1", Points: 95, TotalEarned: 95}})

	summary, err := uc.Award(context.Background(), "co1", "offer_published", "")
	if err != nil {
		t.Fatalf("award failed: %v", err)
	}
	if summary.Points != 105 || summary.Tier != TierSilver {
		t.Fatalf("expected silver at 105 got %+v", summary)
	}
}

func TestSpendNeverBelowZero(t *testing.T) {
	uc := NewLoyaltyUsecase([]repae.CompanyLoyalty{{CompanyID: "co1", Points: 30}})
	ctx := context.Background()

	if _, err := uc.Spend(ctx, "co1", 50, "goodies"); err == nil {
		t.Fatalf("expected error when spending more than the balance")
	}

	summary, err := uc.Spend(ctx, "co1", 30, "goodies")
	if err != nil {
		t.Fatalf("spend failed: %v", err)
	}
	if summary.Points != 0 || summary.TotalSpent != 30 {
		t.Fatalf("unexpected summary %+v", summary)
	}
}

func TestSummaryUnknownCompany(t *testing.T) {
	uc := NewLoyaltyUsecase(nil)
	if _, ok := uc.Summary(context.Background(), "ghost"); ok {
		t.Fatalf("expected no summary for unknown company")
	}
	if history := uc.History(context.Background(), "ghost"); history != nil {
		t.Fatalf("expected nil history got %v", history)
	}
}

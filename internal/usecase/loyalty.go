package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/repae-esatic/gateway"
)

type Tier string

const (
	TierBronze   Tier = "bronze"
	TierSilver   Tier = "silver"
	TierGold     Tier = "gold"
	TierPlatinum Tier = "platinum"
)

// tierFloors are the lower bounds of the non-overlapping point bands.
// The tier is always derived from the accumulator, never stored.
var tierFloors = []struct {
	Tier  Tier
	Floor int
}{
	{TierPlatinum, 500},
	{TierGold, 250},
	{TierSilver, 100},
	{TierBronze, 0},
}

// TierFor maps a point total onto its tier.
func TierFor(points int) Tier {
	for _, t := range tierFloors {
		if points >= t.Floor {
			return t.Tier
		}
	}
	return TierBronze
}

// NextTier returns the tier above the given one, or "" at the top.
func NextTier(t Tier) Tier {
	switch t {
	case TierBronze:
		return TierSilver
	case TierSilver:
		return TierGold
	case TierGold:
		return TierPlatinum
	}
	return ""
}

func floorOf(t Tier) int {
	for _, f := range tierFloors {
		if f.Tier == t {
			return f.Floor
		}
	}
	return 0
}

// PointsToNext is the missing amount for the next tier, zero at the top.
func PointsToNext(points int) int {
	next := NextTier(TierFor(points))
	if next == "" {
		return 0
	}
	missing := floorOf(next) - points
	if missing < 0 {
		return 0
	}
	return missing
}

// ProgressPercent is the progress through the current band, capped at
// 100. The top tier always reports 100.
func ProgressPercent(points int) int {
	current := TierFor(points)
	next := NextTier(current)
	if next == "" {
		return 100
	}
	lo, hi := floorOf(current), floorOf(next)
	pct := (points - lo) * 100 / (hi - lo)
	if pct > 100 {
		pct = 100
	}
	return pct
}

// pointAwards is the configured gain for each rewarded action.
var pointAwards = map[string]int{
	"offer_published":      10,
	"internship_published": 10,
	"hire_confirmed":       50,
	"profile_viewed":       1,
	"candidature_replied":  5,
	"event_attended":       20,
}

// LoyaltySummary is the read model of one company's program status.
type LoyaltySummary struct {
	CompanyID    string `json:"companyId"`
	Points       int    `json:"points"`
	Tier         Tier   `json:"tier"`
	NextTier     Tier   `json:"nextTier,omitempty"`
	PointsToNext int    `json:"pointsToNext"`
	Progress     int    `json:"progress"`
	TotalEarned  int    `json:"totalEarned"`
	TotalSpent   int    `json:"totalSpent"`
}

type LoyaltyUsecase struct {
	mu       sync.RWMutex
	accounts map[string]*repae.CompanyLoyalty
	now      func() time.Time
}

func NewLoyaltyUsecase(seed []repae.CompanyLoyalty) *LoyaltyUsecase {
	accounts := make(map[string]*repae.CompanyLoyalty, len(seed))
	for i := range seed {
		account := seed[i]
		accounts[account.CompanyID] = &account
	}
	return &LoyaltyUsecase{accounts: accounts, now: time.Now}
}

// Award credits the configured points for one action. Unknown actions are
// an error: awards are data-driven, not free-form.
func (uc *LoyaltyUsecase) Award(ctx context.Context, companyID, action, description string) (LoyaltySummary, error) {
	points, ok := pointAwards[action]
	if !ok {
		return LoyaltySummary{}, fmt.Errorf("unknown loyalty action %q", action)
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, ok := uc.accounts[companyID]
	if !ok {
		account = &repae.CompanyLoyalty{CompanyID: companyID}
		uc.accounts[companyID] = account
	}

	account.Points += points
	account.TotalEarned += points
	account.History = append(account.History, repae.PointsTransaction{
		ID:          uuid.NewString(),
		Date:        uc.now(),
		Type:        repae.TransactionGain,
		Points:      points,
		Description: description,
		Category:    action,
	})

	return uc.summaryLocked(account), nil
}

// Spend debits points, never below zero.
func (uc *LoyaltyUsecase) Spend(ctx context.Context, companyID string, points int, description string) (LoyaltySummary, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	account, ok := uc.accounts[companyID]
	if !ok || account.Points < points {
		return LoyaltySummary{}, fmt.Errorf("insufficient points for company %s", companyID)
	}

	account.Points -= points
	account.TotalSpent += points
	account.History = append(account.History, repae.PointsTransaction{
		ID:          uuid.NewString(),
		Date:        uc.now(),
		Type:        repae.TransactionSpend,
		Points:      points,
		Description: description,
		Category:    "redemption",
	})

	return uc.summaryLocked(account), nil
}

func (uc *LoyaltyUsecase) Summary(ctx context.Context, companyID string) (LoyaltySummary, bool) {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	account, ok := uc.accounts[companyID]
	if !ok {
		return LoyaltySummary{}, false
	}
	return uc.summaryLocked(account), true
}

func (uc *LoyaltyUsecase) History(ctx context.Context, companyID string) []repae.PointsTransaction {
	uc.mu.RLock()
	defer uc.mu.RUnlock()
	account, ok := uc.accounts[companyID]
	if !ok {
		return nil
	}
	out := make([]repae.PointsTransaction, len(account.History))
	copy(out, account.History)
	return out
}

func (uc *LoyaltyUsecase) summaryLocked(account *repae.CompanyLoyalty) LoyaltySummary {
	tier := TierFor(account.Points)
	return LoyaltySummary{
		CompanyID:    account.CompanyID,
		Points:       account.Points,
		Tier:         tier,
		NextTier:     NextTier(tier),
		PointsToNext: PointsToNext(account.Points),
		Progress:     ProgressPercent(account.Points),
		TotalEarned:  account.TotalEarned,
		TotalSpent:   account.TotalSpent,
	}
}

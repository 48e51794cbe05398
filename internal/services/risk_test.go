package services

import (
	"testing"
	"time"

	"github.com/directhome/directhome-backend/internal/models"
)

func trustedOwner(now time.Time) *models.User {
	owner := &models.User{
		Verified:   true,
		TrustScore: 80,
	}
	owner.CreatedAt = now.Add(-60 * 24 * time.Hour)
	return owner
}

func cleanListing() *models.Property {
	lat, lng := 19.076, 72.877
	return &models.Property{
		City:   "Mumbai",
		BHK:    2,
		Price:  30000000, // exactly the Mumbai 2 BHK reference
		Lat:    &lat,
		Lng:    &lng,
		Status: models.PropertyStatusActive,
	}
}

func TestRiskScoreZeroForCleanListing(t *testing.T) {
	now := time.Now()
	if got := CalculateFraudRiskScore(cleanListing(), trustedOwner(now), now); got != 0 {
		t.Fatalf("expected 0, got %d", got)
	}
}

func TestRiskScorePendingStatusTerm(t *testing.T) {
	now := time.Now()
	p := cleanListing()
	p.Status = models.PropertyStatusPendingReview
	if got := CalculateFraudRiskScore(p, trustedOwner(now), now); got != 5 {
		t.Fatalf("expected 5, got %d", got)
	}
}

func TestRiskScoreTrustTerms(t *testing.T) {
	now := time.Now()
	p := cleanListing()

	owner := trustedOwner(now)
	owner.TrustScore = 69
	if got := CalculateFraudRiskScore(p, owner, now); got != 10 {
		t.Fatalf("trust 69: expected 10, got %d", got)
	}

	owner.TrustScore = 40
	if got := CalculateFraudRiskScore(p, owner, now); got != 25 {
		t.Fatalf("trust 40: expected 25, got %d", got)
	}
}

func TestRiskScoreMonotonicInTrust(t *testing.T) {
	now := time.Now()
	p := cleanListing()
	high := trustedOwner(now)
	low := trustedOwner(now)
	low.TrustScore = 40

	if CalculateFraudRiskScore(p, low, now) < CalculateFraudRiskScore(p, high, now) {
		t.Fatal("lowering trust must never lower the risk score")
	}
}

func TestRiskScorePriceDeviationTerms(t *testing.T) {
	now := time.Now()
	owner := trustedOwner(now)

	p := cleanListing()
	p.Price = 42000000 // 40% above reference
	if got := CalculateFraudRiskScore(p, owner, now); got != 15 {
		t.Fatalf("40%% deviation: expected 15, got %d", got)
	}

	p.Price = 60000000 // double the reference
	if got := CalculateFraudRiskScore(p, owner, now); got != 30 {
		t.Fatalf("100%% deviation: expected 30, got %d", got)
	}
}

func TestRiskScoreUnknownCityFallback(t *testing.T) {
	now := time.Now()
	p := cleanListing()
	p.City = "Indore"
	p.BHK = 2
	p.Price = 16000000 // 8000 * 2 * 1000 fallback reference
	if got := CalculateFraudRiskScore(p, trustedOwner(now), now); got != 0 {
		t.Fatalf("expected fallback reference to match, got %d", got)
	}
}

func TestRiskScoreClampedToHundred(t *testing.T) {
	now := time.Now()
	owner := &models.User{TrustScore: 10}
	owner.CreatedAt = now.Add(-24 * time.Hour)

	p := &models.Property{
		City:   "Mumbai",
		BHK:    1,
		Price:  100000000,
		Status: models.PropertyStatusPendingReview,
	}

	// 30 + 25 + 20 + 15 + 10 + 5 = 105, clamped
	if got := CalculateFraudRiskScore(p, owner, now); got != 100 {
		t.Fatalf("expected clamp to 100, got %d", got)
	}
}

func TestRiskScoreDeterministic(t *testing.T) {
	now := time.Now()
	p := cleanListing()
	owner := trustedOwner(now)
	a := CalculateFraudRiskScore(p, owner, now)
	b := CalculateFraudRiskScore(p, owner, now)
	if a != b {
		t.Fatalf("same inputs gave %d then %d", a, b)
	}
}

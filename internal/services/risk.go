package services

import (
	"math"
	"time"

	"github.com/directhome/directhome-backend/internal/models"
)

// Average price per sqft by city, used for anomaly detection
var avgPricePerSqft = map[string]float64{
	"Mumbai":    15000,
	"Delhi":     12000,
	"Bangalore": 8000,
	"Pune":      6000,
	"Gurgaon":   10000,
}

const defaultPricePerSqft = 8000

// CalculateFraudRiskScore computes the fraud risk for a new listing from a
// snapshot of the listing and its owner. Deterministic: the same inputs and
// evaluation time always give the same score. The result is attached to the
// listing at creation and never recomputed.
func CalculateFraudRiskScore(property *models.Property, owner *models.User, now time.Time) int {
	riskScore := 0

	// Price anomaly detection
	cityAvg, ok := avgPricePerSqft[property.City]
	if !ok {
		cityAvg = defaultPricePerSqft
	}
	estimatedPrice := cityAvg * float64(property.BHK) * 1000 // rough estimate
	priceDeviation := math.Abs(property.Price-estimatedPrice) / estimatedPrice

	if priceDeviation > 0.5 {
		riskScore += 30 // suspiciously high/low price
	} else if priceDeviation > 0.3 {
		riskScore += 15
	}

	// Owner trust score
	if owner.TrustScore < 50 {
		riskScore += 25
	} else if owner.TrustScore < 70 {
		riskScore += 10
	}

	// Verification status
	if !owner.Verified {
		riskScore += 20
	}

	// New account (less than 30 days)
	if now.Sub(owner.CreatedAt) < 30*24*time.Hour {
		riskScore += 15
	}

	// Missing location data
	if property.Lat == nil || property.Lng == nil {
		riskScore += 10
	}

	// Status check
	if property.Status == models.PropertyStatusPendingReview {
		riskScore += 5
	}

	if riskScore > 100 {
		riskScore = 100
	}
	return riskScore
}

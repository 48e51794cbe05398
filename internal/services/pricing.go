package services

import "math"

// Base prices by city and BHK
var basePrices = map[string]map[int]float64{
	"Mumbai":    {1: 5000000, 2: 8000000, 3: 12000000, 4: 18000000, 5: 25000000},
	"Delhi":     {1: 4000000, 2: 6500000, 3: 10000000, 4: 15000000, 5: 22000000},
	"Bangalore": {1: 3500000, 2: 5500000, 3: 8500000, 4: 12000000, 5: 18000000},
	"Pune":      {1: 2500000, 2: 4000000, 3: 6000000, 4: 9000000, 5: 13000000},
	"Gurgaon":   {1: 3000000, 2: 5000000, 3: 7500000, 4: 11000000, 5: 16000000},
}

const fallbackCity = "Bangalore"

// Amenities that raise the recommended price
var premiumAmenities = map[string]bool{
	"gym":           true,
	"swimming_pool": true,
	"clubhouse":     true,
	"concierge":     true,
}

// PriceRecommendation is a suggested price band for a hypothetical listing
type PriceRecommendation struct {
	Recommended int64 `json:"recommended"`
	Min         int64 `json:"min"`
	Max         int64 `json:"max"`
}

// RecommendPrice suggests a price band from city, bedroom count and
// amenities. Unknown cities fall back to Bangalore, out-of-range BHK to 3.
// Pure function; callers may probe it with hypothetical inputs freely.
func RecommendPrice(city string, bhk int, amenities []string) PriceRecommendation {
	cityPrices, ok := basePrices[city]
	if !ok {
		cityPrices = basePrices[fallbackCity]
	}
	basePrice, ok := cityPrices[bhk]
	if !ok {
		basePrice = cityPrices[3]
	}

	premiumCount := 0
	for _, amenity := range amenities {
		if premiumAmenities[amenity] {
			premiumCount++
		}
	}
	basePrice *= 1 + float64(premiumCount)*0.1

	variance := basePrice * 0.2
	return PriceRecommendation{
		Recommended: int64(math.Round(basePrice)),
		Min:         int64(math.Round(basePrice - variance)),
		Max:         int64(math.Round(basePrice + variance)),
	}
}

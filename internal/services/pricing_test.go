package services

import "testing"

func TestRecommendPricePuneWithPremiumAmenities(t *testing.T) {
	rec := RecommendPrice("Pune", 3, []string{"gym", "clubhouse"})

	if rec.Recommended != 7200000 {
		t.Fatalf("recommended: expected 7200000, got %d", rec.Recommended)
	}
	if rec.Min != 5760000 {
		t.Fatalf("min: expected 5760000, got %d", rec.Min)
	}
	if rec.Max != 8640000 {
		t.Fatalf("max: expected 8640000, got %d", rec.Max)
	}
}

func TestRecommendPriceIgnoresOrdinaryAmenities(t *testing.T) {
	plain := RecommendPrice("Mumbai", 2, nil)
	withParking := RecommendPrice("Mumbai", 2, []string{"parking", "garden"})
	if plain != withParking {
		t.Fatal("non-premium amenities must not change the band")
	}
	if plain.Recommended != 8000000 {
		t.Fatalf("expected 8000000, got %d", plain.Recommended)
	}
}

func TestRecommendPriceFallbacks(t *testing.T) {
	// Unknown city falls back to Bangalore, out-of-range BHK to 3
	rec := RecommendPrice("Indore", 9, nil)
	want := RecommendPrice("Bangalore", 3, nil)
	if rec != want {
		t.Fatalf("expected %+v, got %+v", want, rec)
	}
}

func TestRecommendPriceBandIsSymmetric(t *testing.T) {
	rec := RecommendPrice("Delhi", 4, []string{"concierge"})
	if rec.Recommended-rec.Min != rec.Max-rec.Recommended {
		t.Fatalf("band not symmetric: %+v", rec)
	}
}

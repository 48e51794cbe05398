package models

import (
	"encoding/json"

	"gorm.io/gorm"
)

// Property statuses
const (
	PropertyStatusPendingReview = "pending_review"
	PropertyStatusActive        = "active"
	PropertyStatusInactive      = "inactive"
)

// Property represents a listing on the marketplace
type Property struct {
	gorm.Model

	UserID      uint     `json:"user_id" gorm:"index"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Price       float64  `json:"price"`
	BHK         int      `json:"bhk"` // bedroom count
	City        string   `json:"city"`
	State       string   `json:"state"`
	Address     string   `json:"address"`
	Lat         *float64 `json:"lat"`
	Lng         *float64 `json:"lng"`
	Amenities   string   `json:"-" gorm:"type:text"` // JSON-encoded []string
	Status      string   `json:"status" gorm:"default:pending_review;index"`
	RiskScore   int      `json:"risk_score"` // computed once at creation, never recomputed

	Media []PropertyMedia `json:"media,omitempty" gorm:"foreignKey:PropertyID"`
}

// AmenityList decodes the stored amenities.
func (p *Property) AmenityList() []string {
	if p.Amenities == "" {
		return nil
	}
	var list []string
	if err := json.Unmarshal([]byte(p.Amenities), &list); err != nil {
		return nil
	}
	return list
}

// SetAmenities encodes and stores the amenity list.
func (p *Property) SetAmenities(list []string) {
	if list == nil {
		list = []string{}
	}
	b, _ := json.Marshal(list)
	p.Amenities = string(b)
}

// MarshalJSON includes the decoded amenities in API responses.
func (p Property) MarshalJSON() ([]byte, error) {
	type alias Property
	return json.Marshal(struct {
		alias
		Amenities []string `json:"amenities"`
	}{
		alias:     alias(p),
		Amenities: p.AmenityList(),
	})
}

// PropertyMedia is an uploaded image attached to a property
type PropertyMedia struct {
	gorm.Model

	PropertyID uint   `json:"property_id" gorm:"index"`
	FilePath   string `json:"file_path"`
	MediaType  string `json:"media_type" gorm:"default:image"`
	IsPrimary  bool   `json:"is_primary" gorm:"default:false"`
}

// PropertyUpdate carries the optional fields of a listing update.
// Every field is explicit; nil means "leave unchanged". Status is only
// honored when the caller is an admin.
type PropertyUpdate struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	Price       *float64  `json:"price"`
	BHK         *int      `json:"bhk"`
	City        *string   `json:"city"`
	State       *string   `json:"state"`
	Address     *string   `json:"address"`
	Lat         *float64  `json:"lat"`
	Lng         *float64  `json:"lng"`
	Amenities   *[]string `json:"amenities"`
	Status      *string   `json:"status"`
}

// Empty reports whether the update changes nothing.
func (u *PropertyUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Price == nil &&
		u.BHK == nil && u.City == nil && u.State == nil && u.Address == nil &&
		u.Lat == nil && u.Lng == nil && u.Amenities == nil && u.Status == nil
}

// PropertySearch holds search filters for listings
type PropertySearch struct {
	City      string
	State     string
	MinPrice  float64
	MaxPrice  float64
	BHK       int
	Amenities []string
	Status    string
	Limit     int
	Offset    int
}

// CityCount is a per-city listing tally for the search index
type CityCount struct {
	City  string `json:"city"`
	State string `json:"state"`
	Count int64  `json:"count"`
}

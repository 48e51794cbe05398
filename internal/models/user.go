package models

import (
	"strings"

	"gorm.io/gorm"

	"github.com/directhome/directhome-backend/internal/utils"
)

// User roles
const (
	RoleBuyer  = "buyer"
	RoleSeller = "seller"
	RoleAdmin  = "admin"
)

// User represents a platform user (buyer, seller or admin)
type User struct {
	gorm.Model

	Name       string `json:"name"`
	Phone      string `json:"phone" gorm:"uniqueIndex"` // Login identity - unique
	Email      string `json:"email"`
	Role       string `json:"role" gorm:"default:buyer"`
	Verified   bool   `json:"verified" gorm:"default:false"`
	TrustScore int    `json:"trust_score" gorm:"default:50"` // 0-100, raised only by document verification
}

// BeforeCreate hook to normalize data
func (u *User) BeforeCreate(tx *gorm.DB) error {
	// Normalize phone number (ensure it starts with +91 if not already)
	if !strings.HasPrefix(u.Phone, "+") {
		u.Phone = utils.NormalizePhone(u.Phone)
	}

	if u.Role == "" {
		u.Role = RoleBuyer
	}

	return nil
}

// PublicUser is the user projection returned to API callers.
// The phone number is deliberately absent.
type PublicUser struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email,omitempty"`
	Role       string `json:"role"`
	Verified   bool   `json:"verified"`
	TrustScore int    `json:"trust_score"`
}

// PublicView builds a fresh public projection from the full record.
// Never mutate the record itself to strip fields.
func (u *User) PublicView() PublicUser {
	return PublicUser{
		ID:         u.ID,
		Name:       u.Name,
		Email:      u.Email,
		Role:       u.Role,
		Verified:   u.Verified,
		TrustScore: u.TrustScore,
	}
}

// UserUpdate carries the optional profile fields a user may change.
type UserUpdate struct {
	Name  *string `json:"name"`
	Email *string `json:"email"`
}

package models

import (
	"time"

	"gorm.io/gorm"
)

// Document types
const (
	DocumentTypeIDProof = "id_proof"
)

// Document is an identity or ownership document awaiting admin review.
// A rejected document stays verified=false with VerifiedBy set; there is
// no separate "rejected" status, so an unreviewed document is told apart
// from a rejected one only by VerifiedBy being empty. Re-upload creates a
// new document rather than resurrecting an old one.
type Document struct {
	gorm.Model

	UserID     uint       `json:"user_id" gorm:"index"`
	PropertyID *uint      `json:"property_id"`
	Type       string     `json:"type"`
	FilePath   string     `json:"file_path"`
	Verified   bool       `json:"verified" gorm:"default:false"`
	VerifiedAt *time.Time `json:"verified_at"`
	VerifiedBy *uint      `json:"verified_by"`
}

package services

import (
	"log"
	"time"

	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/storage"
)

// Trust score floor granted when an identity document is accepted
const verifiedTrustFloor = 50

// VerificationService drives the document review workflow
type VerificationService struct {
	store storage.Store
	now   func() time.Time
}

// NewVerificationService creates a verification service over the store
func NewVerificationService(store storage.Store) *VerificationService {
	return &VerificationService{store: store, now: time.Now}
}

// SubmitDocument records an uploaded document awaiting review
func (s *VerificationService) SubmitDocument(userID uint, docType, filePath string, propertyID *uint) (*models.Document, error) {
	doc := &models.Document{
		UserID:     userID,
		PropertyID: propertyID,
		Type:       docType,
		FilePath:   filePath,
	}
	return s.store.CreateDocument(doc)
}

// Decide applies an admin's accept/reject decision to a document.
// Accepting an id_proof additionally marks the owner verified and raises
// their trust score to at least the verified floor; that update is atomic
// in storage, so concurrent decisions on other documents cannot lose it.
func (s *VerificationService) Decide(documentID, adminID uint, accept bool) (*models.Document, error) {
	doc, err := s.store.GetDocument(documentID)
	if err != nil {
		return nil, err
	}

	doc.Verified = accept
	doc.VerifiedBy = &adminID
	if accept {
		now := s.now()
		doc.VerifiedAt = &now
	} else {
		doc.VerifiedAt = nil
	}

	if err := s.store.SaveDocumentDecision(doc); err != nil {
		return nil, err
	}

	if accept && doc.Type == models.DocumentTypeIDProof {
		if err := s.store.PromoteUserTrust(doc.UserID, verifiedTrustFloor); err != nil {
			log.Printf("Failed to promote trust for user %d: %v", doc.UserID, err)
			return nil, err
		}
	}

	return doc, nil
}

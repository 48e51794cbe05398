package services

import (
	"errors"
	"testing"

	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/storage"
)

func seedUserWithTrust(t *testing.T, store *storage.MemoryStore, trust int) *models.User {
	t.Helper()
	user, err := store.CreateUser(&models.User{
		Name:       "Asha",
		Phone:      "+919876543210",
		Role:       models.RoleSeller,
		TrustScore: trust,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestDecideAcceptIDProofRaisesTrustFloor(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewVerificationService(store)
	user := seedUserWithTrust(t, store, 30)

	doc, err := svc.SubmitDocument(user.ID, models.DocumentTypeIDProof, "/uploads/documents/doc-1.pdf", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if doc.Verified || doc.VerifiedBy != nil {
		t.Fatal("new document must be pending")
	}

	adminID := uint(99)
	decided, err := svc.Decide(doc.ID, adminID, true)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if !decided.Verified || decided.VerifiedAt == nil || decided.VerifiedBy == nil || *decided.VerifiedBy != adminID {
		t.Fatalf("accept not recorded: %+v", decided)
	}

	updated, err := store.GetUser(user.ID)
	if err != nil {
		t.Fatalf("get user: %v", err)
	}
	if !updated.Verified {
		t.Fatal("user must be verified after id_proof acceptance")
	}
	if updated.TrustScore != 50 {
		t.Fatalf("expected trust floor 50, got %d", updated.TrustScore)
	}
}

func TestDecideAcceptNeverLowersTrust(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewVerificationService(store)
	user := seedUserWithTrust(t, store, 70)

	doc, err := svc.SubmitDocument(user.ID, models.DocumentTypeIDProof, "/uploads/documents/doc-2.pdf", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Decide(doc.ID, 99, true); err != nil {
		t.Fatalf("decide: %v", err)
	}

	updated, _ := store.GetUser(user.ID)
	if updated.TrustScore != 70 {
		t.Fatalf("trust must not decrease, got %d", updated.TrustScore)
	}
}

func TestDecideRejectLeavesUserUntouched(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewVerificationService(store)
	user := seedUserWithTrust(t, store, 30)

	doc, err := svc.SubmitDocument(user.ID, models.DocumentTypeIDProof, "/uploads/documents/doc-3.pdf", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}

	decided, err := svc.Decide(doc.ID, 99, false)
	if err != nil {
		t.Fatalf("decide: %v", err)
	}
	if decided.Verified {
		t.Fatal("rejected document must stay unverified")
	}
	if decided.VerifiedAt != nil {
		t.Fatal("rejection must not set verified_at")
	}
	// The reviewer id is the only mark distinguishing rejection from
	// a document nobody has looked at yet
	if decided.VerifiedBy == nil {
		t.Fatal("rejection must record the reviewer")
	}

	updated, _ := store.GetUser(user.ID)
	if updated.Verified || updated.TrustScore != 30 {
		t.Fatalf("reject must not touch the user: %+v", updated)
	}
}

func TestDecideAcceptOtherDocumentTypeNoTrustSideEffect(t *testing.T) {
	store := storage.NewMemoryStore()
	svc := NewVerificationService(store)
	user := seedUserWithTrust(t, store, 30)

	doc, err := svc.SubmitDocument(user.ID, "ownership_deed", "/uploads/documents/doc-4.pdf", nil)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if _, err := svc.Decide(doc.ID, 99, true); err != nil {
		t.Fatalf("decide: %v", err)
	}

	updated, _ := store.GetUser(user.ID)
	if updated.Verified || updated.TrustScore != 30 {
		t.Fatalf("only id_proof acceptance promotes the user: %+v", updated)
	}
}

func TestDecideUnknownDocument(t *testing.T) {
	svc := NewVerificationService(storage.NewMemoryStore())
	if _, err := svc.Decide(12345, 99, true); !errors.Is(err, storage.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

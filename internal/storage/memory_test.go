package storage

import (
	"errors"
	"testing"

	"github.com/directhome/directhome-backend/internal/models"
)

func seedSeller(t *testing.T, store *MemoryStore) *models.User {
	t.Helper()
	user, err := store.CreateUser(&models.User{
		Name:  "Ravi",
		Phone: "+919876543211",
		Role:  models.RoleSeller,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	return user
}

func TestCreateUserDefaults(t *testing.T) {
	store := NewMemoryStore()
	user, err := store.CreateUser(&models.User{Name: "A", Phone: "9876543210"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Phone != "+919876543210" {
		t.Fatalf("phone not normalized: %q", user.Phone)
	}
	if user.Role != models.RoleBuyer {
		t.Fatalf("expected default role buyer, got %q", user.Role)
	}
	if user.TrustScore != 50 {
		t.Fatalf("expected default trust 50, got %d", user.TrustScore)
	}
	if user.Verified {
		t.Fatal("new user must not be verified")
	}
}

func TestGetUserByPhone(t *testing.T) {
	store := NewMemoryStore()
	created := seedSeller(t, store)

	found, err := store.GetUserByPhone("+919876543211")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if found.ID != created.ID {
		t.Fatal("wrong user")
	}

	if _, err := store.GetUserByPhone("+919999999999"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestPromoteUserTrustIsAFloor(t *testing.T) {
	store := NewMemoryStore()
	user := seedSeller(t, store)

	if err := store.PromoteUserTrust(user.ID, 50); err != nil {
		t.Fatalf("promote: %v", err)
	}
	got, _ := store.GetUser(user.ID)
	if !got.Verified || got.TrustScore != 50 {
		t.Fatalf("unexpected state: %+v", got)
	}

	// Applying the floor again is idempotent
	if err := store.PromoteUserTrust(user.ID, 50); err != nil {
		t.Fatalf("promote: %v", err)
	}
	got, _ = store.GetUser(user.ID)
	if got.TrustScore != 50 {
		t.Fatalf("floor applied twice changed score: %d", got.TrustScore)
	}
}

func TestUpdatePropertyPartial(t *testing.T) {
	store := NewMemoryStore()
	user := seedSeller(t, store)

	p := &models.Property{UserID: user.ID, Title: "2 BHK in Baner", Price: 4000000, BHK: 2, City: "Pune"}
	p.SetAmenities([]string{"parking"})
	p, err := store.CreateProperty(p)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if p.Status != models.PropertyStatusPendingReview {
		t.Fatalf("expected pending_review, got %q", p.Status)
	}

	newPrice := 4500000.0
	updated, err := store.UpdateProperty(p.ID, &models.PropertyUpdate{Price: &newPrice})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Price != 4500000 {
		t.Fatalf("price not updated: %v", updated.Price)
	}
	if updated.Title != "2 BHK in Baner" || updated.City != "Pune" {
		t.Fatal("untouched fields must survive a partial update")
	}
	if got := updated.AmenityList(); len(got) != 1 || got[0] != "parking" {
		t.Fatalf("amenities changed: %v", got)
	}
}

func TestSearchPropertiesFilters(t *testing.T) {
	store := NewMemoryStore()
	user := seedSeller(t, store)

	mk := func(city string, bhk int, price float64, status string) {
		p := &models.Property{UserID: user.ID, Title: city, City: city, BHK: bhk, Price: price, Status: status}
		if _, err := store.CreateProperty(p); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	mk("Pune", 2, 4000000, models.PropertyStatusActive)
	mk("Pune", 3, 6000000, models.PropertyStatusActive)
	mk("Mumbai", 2, 9000000, models.PropertyStatusActive)
	mk("Pune", 2, 3000000, models.PropertyStatusPendingReview)

	results, total, err := store.SearchProperties(&models.PropertySearch{City: "pune", BHK: 2})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if total != 1 || len(results) != 1 {
		t.Fatalf("expected 1 match, got %d", total)
	}
	if results[0].Price != 4000000 {
		t.Fatal("wrong listing matched")
	}
}

func TestThreadAndMarkRead(t *testing.T) {
	store := NewMemoryStore()
	a := seedSeller(t, store)
	b, _ := store.CreateUser(&models.User{Name: "B", Phone: "+919876543212"})

	for i := 0; i < 3; i++ {
		if _, err := store.CreateMessage(&models.Message{FromUserID: b.ID, ToUserID: a.ID, Content: "hi"}); err != nil {
			t.Fatalf("send: %v", err)
		}
	}

	convs, err := store.GetConversations(a.ID)
	if err != nil {
		t.Fatalf("conversations: %v", err)
	}
	if len(convs) != 1 || convs[0].UnreadCount != 3 {
		t.Fatalf("expected one conversation with 3 unread, got %+v", convs)
	}

	if err := store.MarkThreadRead(a.ID, b.ID); err != nil {
		t.Fatalf("mark read: %v", err)
	}

	convs, _ = store.GetConversations(a.ID)
	if convs[0].UnreadCount != 0 {
		t.Fatalf("expected 0 unread after read, got %d", convs[0].UnreadCount)
	}

	msgs, err := store.GetThread(a.ID, b.ID, nil)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}
}

func TestThreadPropertyFilter(t *testing.T) {
	store := NewMemoryStore()
	a := seedSeller(t, store)
	b, _ := store.CreateUser(&models.User{Name: "B", Phone: "+919876543213"})

	propertyID := uint(7)
	store.CreateMessage(&models.Message{FromUserID: a.ID, ToUserID: b.ID, Content: "general"})
	store.CreateMessage(&models.Message{FromUserID: a.ID, ToUserID: b.ID, Content: "about the flat", PropertyID: &propertyID})

	msgs, err := store.GetThread(a.ID, b.ID, &propertyID)
	if err != nil {
		t.Fatalf("thread: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Content != "about the flat" {
		t.Fatalf("property filter broken: %+v", msgs)
	}
}

func TestDashboardCounters(t *testing.T) {
	store := NewMemoryStore()
	user := seedSeller(t, store)

	store.CreateProperty(&models.Property{UserID: user.ID, Title: "x", City: "Pune", BHK: 1, Price: 1})
	store.CreateDocument(&models.Document{UserID: user.ID, Type: models.DocumentTypeIDProof, FilePath: "/x"})

	if n, _ := store.CountUsers(); n != 1 {
		t.Fatalf("users: %d", n)
	}
	if n, _ := store.CountPropertiesByStatus(models.PropertyStatusPendingReview); n != 1 {
		t.Fatalf("pending properties: %d", n)
	}
	if n, _ := store.CountPendingDocuments(); n != 1 {
		t.Fatalf("pending documents: %d", n)
	}
}

package storage

import (
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/directhome/directhome-backend/internal/models"
	"github.com/directhome/directhome-backend/internal/utils"
)

// MemoryStore holds all data in memory for demos and tests
type MemoryStore struct {
	users      map[uint]*models.User
	properties map[uint]*models.Property
	media      map[uint]*models.PropertyMedia
	documents  map[uint]*models.Document
	messages   map[uint]*models.Message

	// Mutexes for thread safety
	userMu     sync.RWMutex
	propertyMu sync.RWMutex
	mediaMu    sync.RWMutex
	documentMu sync.RWMutex
	messageMu  sync.RWMutex

	// Counters for ID generation
	userCounter     uint
	propertyCounter uint
	mediaCounter    uint
	documentCounter uint
	messageCounter  uint
}

// NewMemoryStore creates a new in-memory storage
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:      make(map[uint]*models.User),
		properties: make(map[uint]*models.Property),
		media:      make(map[uint]*models.PropertyMedia),
		documents:  make(map[uint]*models.Document),
		messages:   make(map[uint]*models.Message),
	}
}

// User operations

func (m *MemoryStore) CreateUser(user *models.User) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	m.userCounter++
	user.ID = m.userCounter
	if !strings.HasPrefix(user.Phone, "+") {
		user.Phone = utils.NormalizePhone(user.Phone)
	}
	if user.Role == "" {
		user.Role = models.RoleBuyer
	}
	if user.TrustScore == 0 {
		user.TrustScore = 50
	}
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	m.users[user.ID] = user
	return user, nil
}

func (m *MemoryStore) GetUser(id uint) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	return user, nil
}

func (m *MemoryStore) GetUserByPhone(phone string) (*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	for _, user := range m.users {
		if user.Phone == phone {
			return user, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MemoryStore) UpdateUserProfile(id uint, update *models.UserUpdate) (*models.User, error) {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user, exists := m.users[id]
	if !exists {
		return nil, ErrNotFound
	}
	if update.Name != nil {
		user.Name = *update.Name
	}
	if update.Email != nil {
		user.Email = *update.Email
	}
	user.UpdatedAt = time.Now()
	return user, nil
}

func (m *MemoryStore) PromoteUserTrust(id uint, floor int) error {
	m.userMu.Lock()
	defer m.userMu.Unlock()

	user, exists := m.users[id]
	if !exists {
		return ErrNotFound
	}
	user.Verified = true
	if user.TrustScore < floor {
		user.TrustScore = floor
	}
	user.UpdatedAt = time.Now()
	return nil
}

func (m *MemoryStore) GetAllUsers(limit, offset int) ([]*models.User, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()

	users := make([]*models.User, 0, len(m.users))
	for _, user := range m.users {
		users = append(users, user)
	}
	sort.Slice(users, func(i, j int) bool {
		return users[i].CreatedAt.After(users[j].CreatedAt)
	})
	return paginate(users, limit, offset), nil
}

// Property operations

func (m *MemoryStore) CreateProperty(property *models.Property) (*models.Property, error) {
	m.propertyMu.Lock()
	defer m.propertyMu.Unlock()

	m.propertyCounter++
	property.ID = m.propertyCounter
	if property.Status == "" {
		property.Status = models.PropertyStatusPendingReview
	}
	now := time.Now()
	property.CreatedAt = now
	property.UpdatedAt = now

	m.properties[property.ID] = property
	return property, nil
}

func (m *MemoryStore) GetProperty(id uint) (*models.Property, error) {
	m.propertyMu.RLock()
	defer m.propertyMu.RUnlock()

	property, exists := m.properties[id]
	if !exists {
		return nil, ErrNotFound
	}
	return property, nil
}

func (m *MemoryStore) GetPropertiesByStatus(status string, limit, offset int) ([]*models.Property, int64, error) {
	m.propertyMu.RLock()
	defer m.propertyMu.RUnlock()

	var results []*models.Property
	for _, property := range m.properties {
		if property.Status == status {
			results = append(results, property)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	total := int64(len(results))
	return paginate(results, limit, offset), total, nil
}

func (m *MemoryStore) SearchProperties(search *models.PropertySearch) ([]*models.Property, int64, error) {
	m.propertyMu.RLock()
	defer m.propertyMu.RUnlock()

	status := search.Status
	if status == "" {
		status = models.PropertyStatusActive
	}

	var results []*models.Property
	for _, property := range m.properties {
		if property.Status != status {
			continue
		}
		if search.City != "" && !strings.Contains(strings.ToLower(property.City), strings.ToLower(search.City)) {
			continue
		}
		if search.State != "" && !strings.Contains(strings.ToLower(property.State), strings.ToLower(search.State)) {
			continue
		}
		if search.MinPrice > 0 && property.Price < search.MinPrice {
			continue
		}
		if search.MaxPrice > 0 && property.Price > search.MaxPrice {
			continue
		}
		if search.BHK > 0 && property.BHK != search.BHK {
			continue
		}
		if len(search.Amenities) > 0 && !hasAmenities(property, search.Amenities) {
			continue
		}
		results = append(results, property)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	total := int64(len(results))
	return paginate(results, search.Limit, search.Offset), total, nil
}

func hasAmenities(property *models.Property, wanted []string) bool {
	have := make(map[string]bool)
	for _, a := range property.AmenityList() {
		have[strings.ToLower(a)] = true
	}
	for _, w := range wanted {
		if !have[strings.ToLower(w)] {
			return false
		}
	}
	return true
}

func (m *MemoryStore) UpdateProperty(id uint, update *models.PropertyUpdate) (*models.Property, error) {
	m.propertyMu.Lock()
	defer m.propertyMu.Unlock()

	property, exists := m.properties[id]
	if !exists {
		return nil, ErrNotFound
	}
	if update.Title != nil {
		property.Title = *update.Title
	}
	if update.Description != nil {
		property.Description = *update.Description
	}
	if update.Price != nil {
		property.Price = *update.Price
	}
	if update.BHK != nil {
		property.BHK = *update.BHK
	}
	if update.City != nil {
		property.City = *update.City
	}
	if update.State != nil {
		property.State = *update.State
	}
	if update.Address != nil {
		property.Address = *update.Address
	}
	if update.Lat != nil {
		property.Lat = update.Lat
	}
	if update.Lng != nil {
		property.Lng = update.Lng
	}
	if update.Amenities != nil {
		property.SetAmenities(*update.Amenities)
	}
	if update.Status != nil {
		property.Status = *update.Status
	}
	property.UpdatedAt = time.Now()
	return property, nil
}

func (m *MemoryStore) UpdatePropertyStatus(id uint, status string) (*models.Property, error) {
	m.propertyMu.Lock()
	defer m.propertyMu.Unlock()

	property, exists := m.properties[id]
	if !exists {
		return nil, ErrNotFound
	}
	property.Status = status
	property.UpdatedAt = time.Now()
	return property, nil
}

func (m *MemoryStore) DeleteProperty(id uint) error {
	m.propertyMu.Lock()
	defer m.propertyMu.Unlock()

	if _, exists := m.properties[id]; !exists {
		return ErrNotFound
	}
	delete(m.properties, id)
	return nil
}

func (m *MemoryStore) GetCityCounts() ([]*models.CityCount, error) {
	m.propertyMu.RLock()
	defer m.propertyMu.RUnlock()

	type key struct{ city, state string }
	counts := make(map[key]int64)
	for _, property := range m.properties {
		if property.Status != models.PropertyStatusActive {
			continue
		}
		counts[key{property.City, property.State}]++
	}

	var results []*models.CityCount
	for k, n := range counts {
		results = append(results, &models.CityCount{City: k.city, State: k.state, Count: n})
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].Count > results[j].Count
	})
	return results, nil
}

// Media operations

func (m *MemoryStore) CreateMedia(media *models.PropertyMedia) (*models.PropertyMedia, error) {
	m.mediaMu.Lock()
	defer m.mediaMu.Unlock()

	m.mediaCounter++
	media.ID = m.mediaCounter
	now := time.Now()
	media.CreatedAt = now
	media.UpdatedAt = now

	m.media[media.ID] = media
	return media, nil
}

func (m *MemoryStore) GetMediaByProperty(propertyID uint) ([]*models.PropertyMedia, error) {
	m.mediaMu.RLock()
	defer m.mediaMu.RUnlock()

	var results []*models.PropertyMedia
	for _, media := range m.media {
		if media.PropertyID == propertyID {
			results = append(results, media)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].IsPrimary != results[j].IsPrimary {
			return results[i].IsPrimary
		}
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results, nil
}

// Document operations

func (m *MemoryStore) CreateDocument(doc *models.Document) (*models.Document, error) {
	m.documentMu.Lock()
	defer m.documentMu.Unlock()

	m.documentCounter++
	doc.ID = m.documentCounter
	doc.Verified = false
	now := time.Now()
	doc.CreatedAt = now
	doc.UpdatedAt = now

	m.documents[doc.ID] = doc
	return doc, nil
}

func (m *MemoryStore) GetDocument(id uint) (*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	doc, exists := m.documents[id]
	if !exists {
		return nil, ErrNotFound
	}
	return doc, nil
}

func (m *MemoryStore) GetDocumentsByUser(userID uint) ([]*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	var results []*models.Document
	for _, doc := range m.documents {
		if doc.UserID == userID {
			results = append(results, doc)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (m *MemoryStore) GetPendingDocuments() ([]*models.Document, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	var results []*models.Document
	for _, doc := range m.documents {
		if !doc.Verified {
			results = append(results, doc)
		}
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	return results, nil
}

func (m *MemoryStore) SaveDocumentDecision(doc *models.Document) error {
	m.documentMu.Lock()
	defer m.documentMu.Unlock()

	if _, exists := m.documents[doc.ID]; !exists {
		return ErrNotFound
	}
	doc.UpdatedAt = time.Now()
	m.documents[doc.ID] = doc
	return nil
}

// Message operations

func (m *MemoryStore) CreateMessage(msg *models.Message) (*models.Message, error) {
	m.messageMu.Lock()
	defer m.messageMu.Unlock()

	m.messageCounter++
	msg.ID = m.messageCounter
	now := time.Now()
	msg.CreatedAt = now
	msg.UpdatedAt = now

	m.messages[msg.ID] = msg
	return msg, nil
}

func (m *MemoryStore) GetThread(userID, otherUserID uint, propertyID *uint) ([]*models.Message, error) {
	m.messageMu.RLock()
	defer m.messageMu.RUnlock()

	var results []*models.Message
	for _, msg := range m.messages {
		if !betweenUsers(msg, userID, otherUserID) {
			continue
		}
		if propertyID != nil && (msg.PropertyID == nil || *msg.PropertyID != *propertyID) {
			continue
		}
		results = append(results, msg)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].CreatedAt.Before(results[j].CreatedAt)
	})
	return results, nil
}

func (m *MemoryStore) MarkThreadRead(userID, otherUserID uint) error {
	m.messageMu.Lock()
	defer m.messageMu.Unlock()

	for _, msg := range m.messages {
		if msg.ToUserID == userID && msg.FromUserID == otherUserID && !msg.Read {
			msg.Read = true
			msg.UpdatedAt = time.Now()
		}
	}
	return nil
}

func (m *MemoryStore) GetConversations(userID uint) ([]*models.Conversation, error) {
	m.messageMu.RLock()
	defer m.messageMu.RUnlock()

	latest := make(map[uint]*models.Message)
	unread := make(map[uint]int64)
	for _, msg := range m.messages {
		var other uint
		switch userID {
		case msg.FromUserID:
			other = msg.ToUserID
		case msg.ToUserID:
			other = msg.FromUserID
		default:
			continue
		}
		if cur, ok := latest[other]; !ok || msg.CreatedAt.After(cur.CreatedAt) {
			latest[other] = msg
		}
		if msg.ToUserID == userID && !msg.Read {
			unread[other]++
		}
	}

	var results []*models.Conversation
	for other, msg := range latest {
		conv := &models.Conversation{
			OtherUserID:     other,
			LastMessage:     msg.Content,
			LastMessageTime: msg.CreatedAt,
			UnreadCount:     unread[other],
		}
		if user, err := m.GetUser(other); err == nil {
			conv.OtherUserName = user.Name
			conv.OtherUserVerified = user.Verified
		}
		results = append(results, conv)
	}
	sort.Slice(results, func(i, j int) bool {
		return results[i].LastMessageTime.After(results[j].LastMessageTime)
	})
	return results, nil
}

func betweenUsers(msg *models.Message, a, b uint) bool {
	return (msg.FromUserID == a && msg.ToUserID == b) ||
		(msg.FromUserID == b && msg.ToUserID == a)
}

// Dashboard counters

func (m *MemoryStore) CountUsers() (int64, error) {
	m.userMu.RLock()
	defer m.userMu.RUnlock()
	return int64(len(m.users)), nil
}

func (m *MemoryStore) CountProperties() (int64, error) {
	m.propertyMu.RLock()
	defer m.propertyMu.RUnlock()
	return int64(len(m.properties)), nil
}

func (m *MemoryStore) CountPropertiesByStatus(status string) (int64, error) {
	m.propertyMu.RLock()
	defer m.propertyMu.RUnlock()

	var n int64
	for _, property := range m.properties {
		if property.Status == status {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountPendingDocuments() (int64, error) {
	m.documentMu.RLock()
	defer m.documentMu.RUnlock()

	var n int64
	for _, doc := range m.documents {
		if !doc.Verified {
			n++
		}
	}
	return n, nil
}

func (m *MemoryStore) CountMessagesSince(since time.Time) (int64, error) {
	m.messageMu.RLock()
	defer m.messageMu.RUnlock()

	var n int64
	for _, msg := range m.messages {
		if msg.CreatedAt.After(since) {
			n++
		}
	}
	return n, nil
}

func paginate[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

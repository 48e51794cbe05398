package storage

import (
	"errors"
	"time"

	"github.com/directhome/directhome-backend/internal/models"
)

// ErrNotFound is returned when a requested record does not exist.
// Callers compare with errors.Is and must never create the record implicitly.
var ErrNotFound = errors.New("record not found")

var storeInstance Store

// SetStore sets the global store instance (call from main.go)
func SetStore(s Store) {
	storeInstance = s
}

// GetStore returns the global store instance
func GetStore() Store {
	return storeInstance
}

// Store defines the interface for storage operations
type Store interface {
	// User operations
	CreateUser(user *models.User) (*models.User, error)
	GetUser(id uint) (*models.User, error)
	GetUserByPhone(phone string) (*models.User, error)
	UpdateUserProfile(id uint, update *models.UserUpdate) (*models.User, error)
	// PromoteUserTrust marks the user verified and raises trust_score to at
	// least floor, atomically. It never lowers an already-higher score.
	PromoteUserTrust(id uint, floor int) error
	GetAllUsers(limit, offset int) ([]*models.User, error)

	// Property operations
	CreateProperty(property *models.Property) (*models.Property, error)
	GetProperty(id uint) (*models.Property, error)
	GetPropertiesByStatus(status string, limit, offset int) ([]*models.Property, int64, error)
	SearchProperties(search *models.PropertySearch) ([]*models.Property, int64, error)
	UpdateProperty(id uint, update *models.PropertyUpdate) (*models.Property, error)
	UpdatePropertyStatus(id uint, status string) (*models.Property, error)
	DeleteProperty(id uint) error
	GetCityCounts() ([]*models.CityCount, error)

	// Media operations
	CreateMedia(media *models.PropertyMedia) (*models.PropertyMedia, error)
	GetMediaByProperty(propertyID uint) ([]*models.PropertyMedia, error)

	// Document operations
	CreateDocument(doc *models.Document) (*models.Document, error)
	GetDocument(id uint) (*models.Document, error)
	GetDocumentsByUser(userID uint) ([]*models.Document, error)
	GetPendingDocuments() ([]*models.Document, error)
	SaveDocumentDecision(doc *models.Document) error

	// Message operations
	CreateMessage(msg *models.Message) (*models.Message, error)
	GetThread(userID, otherUserID uint, propertyID *uint) ([]*models.Message, error)
	MarkThreadRead(userID, otherUserID uint) error
	GetConversations(userID uint) ([]*models.Conversation, error)

	// Dashboard counters
	CountUsers() (int64, error)
	CountProperties() (int64, error)
	CountPropertiesByStatus(status string) (int64, error)
	CountPendingDocuments() (int64, error)
	CountMessagesSince(since time.Time) (int64, error)
}

package storage

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/directhome/directhome-backend/internal/models"
)

// DatabaseStore persists everything in PostgreSQL via GORM
type DatabaseStore struct {
	db *gorm.DB
}

// NewDatabaseStore creates a store backed by the given database handle
func NewDatabaseStore(db *gorm.DB) *DatabaseStore {
	return &DatabaseStore{db: db}
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFound
	}
	return err
}

// User operations

func (s *DatabaseStore) CreateUser(user *models.User) (*models.User, error) {
	if err := s.db.Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

func (s *DatabaseStore) GetUser(id uint) (*models.User, error) {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) GetUserByPhone(phone string) (*models.User, error) {
	var user models.User
	if err := s.db.Where("phone = ?", phone).First(&user).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *DatabaseStore) UpdateUserProfile(id uint, update *models.UserUpdate) (*models.User, error) {
	values := map[string]interface{}{}
	if update.Name != nil {
		values["name"] = *update.Name
	}
	if update.Email != nil {
		values["email"] = *update.Email
	}
	if len(values) > 0 {
		res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetUser(id)
}

func (s *DatabaseStore) PromoteUserTrust(id uint, floor int) error {
	// Single conditional UPDATE so concurrent decisions cannot lose the raise
	res := s.db.Model(&models.User{}).Where("id = ?", id).Updates(map[string]interface{}{
		"verified":    true,
		"trust_score": gorm.Expr("GREATEST(trust_score, ?)", floor),
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// paged applies pagination; a non-positive limit means "no limit"
func paged(q *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		q = q.Limit(limit)
	}
	if offset > 0 {
		q = q.Offset(offset)
	}
	return q
}

func (s *DatabaseStore) GetAllUsers(limit, offset int) ([]*models.User, error) {
	var users []*models.User
	err := paged(s.db.Order("created_at DESC"), limit, offset).Find(&users).Error
	return users, err
}

// Property operations

func (s *DatabaseStore) CreateProperty(property *models.Property) (*models.Property, error) {
	if err := s.db.Create(property).Error; err != nil {
		return nil, err
	}
	return property, nil
}

func (s *DatabaseStore) GetProperty(id uint) (*models.Property, error) {
	var property models.Property
	if err := s.db.Preload("Media").First(&property, id).Error; err != nil {
		return nil, translate(err)
	}
	return &property, nil
}

func (s *DatabaseStore) GetPropertiesByStatus(status string, limit, offset int) ([]*models.Property, int64, error) {
	var properties []*models.Property
	q := s.db.Model(&models.Property{}).Where("status = ?", status)

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	err := paged(q.Preload("Media").Order("created_at DESC"), limit, offset).Find(&properties).Error
	return properties, total, err
}

func (s *DatabaseStore) SearchProperties(search *models.PropertySearch) ([]*models.Property, int64, error) {
	status := search.Status
	if status == "" {
		status = models.PropertyStatusActive
	}

	q := s.db.Model(&models.Property{}).Where("status = ?", status)
	if search.City != "" {
		q = q.Where("city ILIKE ?", "%"+search.City+"%")
	}
	if search.State != "" {
		q = q.Where("state ILIKE ?", "%"+search.State+"%")
	}
	if search.MinPrice > 0 {
		q = q.Where("price >= ?", search.MinPrice)
	}
	if search.MaxPrice > 0 {
		q = q.Where("price <= ?", search.MaxPrice)
	}
	if search.BHK > 0 {
		q = q.Where("bhk = ?", search.BHK)
	}
	for _, amenity := range search.Amenities {
		q = q.Where("amenities ILIKE ?", "%"+amenity+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var properties []*models.Property
	err := paged(q.Preload("Media").Order("created_at DESC"), search.Limit, search.Offset).Find(&properties).Error
	return properties, total, err
}

func (s *DatabaseStore) UpdateProperty(id uint, update *models.PropertyUpdate) (*models.Property, error) {
	values := map[string]interface{}{}
	if update.Title != nil {
		values["title"] = *update.Title
	}
	if update.Description != nil {
		values["description"] = *update.Description
	}
	if update.Price != nil {
		values["price"] = *update.Price
	}
	if update.BHK != nil {
		values["bhk"] = *update.BHK
	}
	if update.City != nil {
		values["city"] = *update.City
	}
	if update.State != nil {
		values["state"] = *update.State
	}
	if update.Address != nil {
		values["address"] = *update.Address
	}
	if update.Lat != nil {
		values["lat"] = *update.Lat
	}
	if update.Lng != nil {
		values["lng"] = *update.Lng
	}
	if update.Amenities != nil {
		p := models.Property{}
		p.SetAmenities(*update.Amenities)
		values["amenities"] = p.Amenities
	}
	if update.Status != nil {
		values["status"] = *update.Status
	}
	if len(values) > 0 {
		res := s.db.Model(&models.Property{}).Where("id = ?", id).Updates(values)
		if res.Error != nil {
			return nil, res.Error
		}
		if res.RowsAffected == 0 {
			return nil, ErrNotFound
		}
	}
	return s.GetProperty(id)
}

func (s *DatabaseStore) UpdatePropertyStatus(id uint, status string) (*models.Property, error) {
	res := s.db.Model(&models.Property{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.GetProperty(id)
}

func (s *DatabaseStore) DeleteProperty(id uint) error {
	res := s.db.Delete(&models.Property{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *DatabaseStore) GetCityCounts() ([]*models.CityCount, error) {
	var counts []*models.CityCount
	err := s.db.Model(&models.Property{}).
		Select("city, state, COUNT(*) as count").
		Where("status = ?", models.PropertyStatusActive).
		Group("city, state").
		Order("count DESC").
		Scan(&counts).Error
	return counts, err
}

// Media operations

func (s *DatabaseStore) CreateMedia(media *models.PropertyMedia) (*models.PropertyMedia, error) {
	if err := s.db.Create(media).Error; err != nil {
		return nil, err
	}
	return media, nil
}

func (s *DatabaseStore) GetMediaByProperty(propertyID uint) ([]*models.PropertyMedia, error) {
	var media []*models.PropertyMedia
	err := s.db.Where("property_id = ?", propertyID).
		Order("is_primary DESC, created_at ASC").
		Find(&media).Error
	return media, err
}

// Document operations

func (s *DatabaseStore) CreateDocument(doc *models.Document) (*models.Document, error) {
	if err := s.db.Create(doc).Error; err != nil {
		return nil, err
	}
	return doc, nil
}

func (s *DatabaseStore) GetDocument(id uint) (*models.Document, error) {
	var doc models.Document
	if err := s.db.First(&doc, id).Error; err != nil {
		return nil, translate(err)
	}
	return &doc, nil
}

func (s *DatabaseStore) GetDocumentsByUser(userID uint) ([]*models.Document, error) {
	var docs []*models.Document
	err := s.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (s *DatabaseStore) GetPendingDocuments() ([]*models.Document, error) {
	var docs []*models.Document
	err := s.db.Where("verified = ?", false).Order("created_at DESC").Find(&docs).Error
	return docs, err
}

func (s *DatabaseStore) SaveDocumentDecision(doc *models.Document) error {
	// Select forces writes of false/NULL values which Updates would skip
	res := s.db.Model(doc).Select("verified", "verified_at", "verified_by").Updates(doc)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// Message operations

func (s *DatabaseStore) CreateMessage(msg *models.Message) (*models.Message, error) {
	if err := s.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

func (s *DatabaseStore) GetThread(userID, otherUserID uint, propertyID *uint) ([]*models.Message, error) {
	q := s.db.Where(
		"(from_user_id = ? AND to_user_id = ?) OR (from_user_id = ? AND to_user_id = ?)",
		userID, otherUserID, otherUserID, userID,
	)
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}

	var msgs []*models.Message
	err := q.Order("created_at ASC").Find(&msgs).Error
	return msgs, err
}

func (s *DatabaseStore) MarkThreadRead(userID, otherUserID uint) error {
	return s.db.Model(&models.Message{}).
		Where("to_user_id = ? AND from_user_id = ? AND read = ?", userID, otherUserID, false).
		Update("read", true).Error
}

func (s *DatabaseStore) GetConversations(userID uint) ([]*models.Conversation, error) {
	// Latest message and unread count per counterpart
	rows := []struct {
		OtherUserID       uint
		OtherUserName     string
		OtherUserVerified bool
		LastMessage       string
		LastMessageTime   time.Time
		UnreadCount       int64
	}{}

	err := s.db.Raw(`
		SELECT t.other_user_id,
		       u.name AS other_user_name,
		       u.verified AS other_user_verified,
		       m.content AS last_message,
		       m.created_at AS last_message_time,
		       (SELECT COUNT(*) FROM messages
		        WHERE to_user_id = ? AND from_user_id = t.other_user_id
		          AND read = false AND deleted_at IS NULL) AS unread_count
		FROM (
		    SELECT CASE WHEN from_user_id = ? THEN to_user_id ELSE from_user_id END AS other_user_id,
		           MAX(created_at) AS last_time
		    FROM messages
		    WHERE (from_user_id = ? OR to_user_id = ?) AND deleted_at IS NULL
		    GROUP BY 1
		) t
		JOIN users u ON u.id = t.other_user_id
		JOIN messages m ON m.created_at = t.last_time
		  AND (m.from_user_id = t.other_user_id OR m.to_user_id = t.other_user_id)
		  AND (m.from_user_id = ? OR m.to_user_id = ?)
		ORDER BY t.last_time DESC
	`, userID, userID, userID, userID, userID, userID).Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	conversations := make([]*models.Conversation, 0, len(rows))
	for _, r := range rows {
		conversations = append(conversations, &models.Conversation{
			OtherUserID:       r.OtherUserID,
			OtherUserName:     r.OtherUserName,
			OtherUserVerified: r.OtherUserVerified,
			LastMessage:       r.LastMessage,
			LastMessageTime:   r.LastMessageTime,
			UnreadCount:       r.UnreadCount,
		})
	}
	return conversations, nil
}

// Dashboard counters

func (s *DatabaseStore) CountUsers() (int64, error) {
	var n int64
	err := s.db.Model(&models.User{}).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountProperties() (int64, error) {
	var n int64
	err := s.db.Model(&models.Property{}).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountPropertiesByStatus(status string) (int64, error) {
	var n int64
	err := s.db.Model(&models.Property{}).Where("status = ?", status).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountPendingDocuments() (int64, error) {
	var n int64
	err := s.db.Model(&models.Document{}).Where("verified = ?", false).Count(&n).Error
	return n, err
}

func (s *DatabaseStore) CountMessagesSince(since time.Time) (int64, error) {
	var n int64
	err := s.db.Model(&models.Message{}).Where("created_at > ?", since).Count(&n).Error
	return n, err
}

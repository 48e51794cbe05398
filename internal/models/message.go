package models

import (
	"time"

	"gorm.io/gorm"
)

// Message is a user-to-user chat message, optionally tied to a property.
// SpamScore is computed once at send time and never changes.
type Message struct {
	gorm.Model

	FromUserID uint   `json:"from_user_id" gorm:"index"`
	ToUserID   uint   `json:"to_user_id" gorm:"index"`
	PropertyID *uint  `json:"property_id"`
	Content    string `json:"content"`
	SpamScore  int    `json:"spam_score"`
	Read       bool   `json:"read" gorm:"default:false"`
}

// Conversation summarizes the latest exchange with one other user
type Conversation struct {
	OtherUserID       uint      `json:"other_user_id"`
	OtherUserName     string    `json:"other_user_name"`
	OtherUserVerified bool      `json:"other_user_verified"`
	LastMessage       string    `json:"last_message"`
	LastMessageTime   time.Time `json:"last_message_time"`
	UnreadCount       int64     `json:"unread_count"`
}

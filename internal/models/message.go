// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// Message represents a direct message between two users. Read is flipped
// by the recipient viewing the conversation; removing the friendship
// purges the pair's history.
type Message struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	SenderID   uint      `gorm:"not null;index:idx_messages_pair" json:"sender_id"`
	ReceiverID uint      `gorm:"not null;index:idx_messages_pair;index:idx_messages_unread" json:"receiver_id"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	Read       bool      `gorm:"default:false;index:idx_messages_unread" json:"read"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Message) TableName() string {
	return "messages"
}

// Conversation is the full message history between the caller and one
// counterpart, ordered oldest first, plus display data for both sides.
type Conversation struct {
	Messages         []Message `json:"messages"`
	SenderName       string    `json:"sender"`
	RecipientName    string    `json:"recipient"`
	RecipientPicture string    `json:"profile_picture"`
}

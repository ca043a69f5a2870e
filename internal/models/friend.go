// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// FriendStatus represents the status of a friend relationship.
type FriendStatus string

const (
	// FriendStatusPending indicates a requested but not yet accepted relationship.
	FriendStatusPending FriendStatus = "PENDING"
	// FriendStatusAccepted indicates an accepted relationship.
	FriendStatusAccepted FriendStatus = "ACCEPTED"
)

// Friend represents a relationship record between two users. At most one
// record exists per unordered pair; User1 is the requester.
type Friend struct {
	ID        uint         `gorm:"primaryKey" json:"id"`
	User1ID   uint         `gorm:"not null;uniqueIndex:idx_friend_pair" json:"user1_id"`
	User2ID   uint         `gorm:"not null;uniqueIndex:idx_friend_pair" json:"user2_id"`
	Status    FriendStatus `gorm:"type:varchar(20);default:'PENDING';index:idx_friends_status" json:"status"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt time.Time    `json:"updated_at"`

	// Relationships
	User1 User `gorm:"foreignKey:User1ID" json:"user1,omitempty"`
	User2 User `gorm:"foreignKey:User2ID" json:"user2,omitempty"`
}

// TableName specifies the table name for GORM
func (Friend) TableName() string {
	return "friends"
}

// CounterpartID returns the other side of the relationship relative to userID.
func (f *Friend) CounterpartID(userID uint) uint {
	if f.User1ID == userID {
		return f.User2ID
	}
	return f.User1ID
}

// Involves reports whether userID is one side of the relationship.
func (f *Friend) Involves(userID uint) bool {
	return f.User1ID == userID || f.User2ID == userID
}

// FriendEntry pairs a relationship record with the counterpart user, the
// shape the friends list renders from.
type FriendEntry struct {
	Friend Friend `json:"friend"`
	User   User   `json:"user"`
}

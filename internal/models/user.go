// Package models contains data structures for the application's domain models.
package models

import (
	"time"
)

// User represents an account provisioned from the identity provider.
// Subject is written once on first sign-in and never changes; the claim
// fields (Name, Email, ProfilePicture) are refreshed from the provider on
// later sign-ins when they drift.
type User struct {
	ID             uint     `gorm:"primaryKey" json:"id"`
	Subject        string   `gorm:"uniqueIndex;not null" json:"-"`
	Name           string   `gorm:"not null;index" json:"name"`
	Email          string   `gorm:"uniqueIndex;not null" json:"email"`
	ProfilePicture string   `json:"profile_picture"`
	Profile        *Profile `gorm:"foreignKey:UserID" json:"profile,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// Profile holds the optional free-form profile attached to a user.
type Profile struct {
	ID          uint       `gorm:"primaryKey" json:"id"`
	UserID      uint       `gorm:"uniqueIndex;not null" json:"user_id"`
	Bio         string     `gorm:"type:text" json:"bio"`
	Gender      string     `json:"gender"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// TableName specifies the table name for GORM
func (Profile) TableName() string {
	return "profiles"
}

// UserSummary pairs a user with the caller's relationship to them, for
// people-listing and search results.
type UserSummary struct {
	User               User         `json:"user"`
	RelationshipStatus FriendStatus `json:"relationship_status,omitempty"`
}

package entities

import (
	"time"

	"gorm.io/gorm"
)

// User is an account that can own listings, write reviews and like listings.
// PasswordHash is empty for accounts created through federated (Google)
// login; those users can only sign in with their identity provider.
type User struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	Username      string         `gorm:"uniqueIndex;size:100" json:"username"`
	Email         string         `gorm:"uniqueIndex;size:255" json:"email"`
	PasswordHash  string         `gorm:"size:128" json:"-"`
	IsAdmin       bool           `gorm:"default:false" json:"isAdmin"`
	LikedListings []Listing      `gorm:"many2many:user_liked_listings;" json:"likedListings,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

// HasPassword reports whether the user can log in with local credentials.
func (u *User) HasPassword() bool {
	return u.PasswordHash != ""
}

// Sanitized returns a copy safe to attach to a request context or to
// serialize: credential material is stripped.
func (u *User) Sanitized() *User {
	clean := *u
	clean.PasswordHash = ""
	clean.LikedListings = nil
	return &clean
}

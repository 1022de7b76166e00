package entities

import (
	"time"

	"gorm.io/gorm"
)

// Review is a guest review attached to a listing. AuthorID is immutable
// after creation, mirroring Listing.OwnerID.
type Review struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	ListingID uint           `gorm:"index" json:"listing_id"`
	AuthorID  uint           `gorm:"index" json:"author_id"`
	Author    User           `gorm:"foreignKey:AuthorID" json:"author,omitempty"`
	Rating    int            `gorm:"default:5" json:"rating"`
	Comment   string         `gorm:"type:text" json:"comment"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

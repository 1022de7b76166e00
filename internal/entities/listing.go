package entities

import (
	"time"

	"gorm.io/gorm"
)

// Listing is a vacation-rental property. The owner is set once at creation
// and never reassigned; every authorization decision for mutations keys off
// OwnerID plus the acting user's admin flag.
type Listing struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"index;size:256" json:"title"`
	Description string         `gorm:"type:text" json:"description"`
	ImageURL    string         `gorm:"size:2048" json:"image"`
	Price       int            `json:"price"`
	Location    string         `gorm:"size:256" json:"location"`
	Country     string         `gorm:"size:100" json:"country"`
	OwnerID     uint           `gorm:"index" json:"owner_id"`
	Owner       User           `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Reviews     []Review       `gorm:"foreignKey:ListingID" json:"reviews,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}

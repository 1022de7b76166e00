// Package users provides database operations for user lookups and the
// liked-listings set.
//
// # Usage
//
//	repo := users.NewRepository(db)
//	liked, err := repo.GetLikedListings(userID)
package users

import (
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/entities"
)

// likedJoinTable is the many2many table behind User.LikedListings.
const likedJoinTable = "user_liked_listings"

// Repository handles all user database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new users repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetUserByID retrieves a user by ID.
func (r *Repository) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := r.db.First(&user, id).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByUsername retrieves a user by username.
func (r *Repository) GetUserByUsername(username string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("username = ?", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetUserByEmail retrieves a user by email.
func (r *Repository) GetUserByEmail(email string) (*entities.User, error) {
	var user entities.User
	err := r.db.Where("email = ?", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// GetLikedListings returns the listings the user has liked, with owners
// preloaded.
func (r *Repository) GetLikedListings(userID uint) ([]entities.Listing, error) {
	var listings []entities.Listing
	err := r.db.
		Joins("JOIN "+likedJoinTable+" ull ON ull.listing_id = listings.id").
		Where("ull.user_id = ?", userID).
		Preload("Owner").
		Find(&listings).Error
	return listings, err
}

// IsListingLiked reports whether the user has already liked the listing.
func (r *Repository) IsListingLiked(userID, listingID uint) (bool, error) {
	var count int64
	err := r.db.Table(likedJoinTable).
		Where("user_id = ? AND listing_id = ?", userID, listingID).
		Count(&count).Error
	return count > 0, err
}

// AddLikedListing adds a listing to the user's liked set. Adding an
// already-liked listing is a no-op.
func (r *Repository) AddLikedListing(userID, listingID uint) error {
	user := entities.User{ID: userID}
	return r.db.Model(&user).
		Association("LikedListings").
		Append(&entities.Listing{ID: listingID})
}

// RemoveLikedListing removes a listing from the user's liked set.
func (r *Repository) RemoveLikedListing(userID, listingID uint) error {
	user := entities.User{ID: userID}
	return r.db.Model(&user).
		Association("LikedListings").
		Delete(&entities.Listing{ID: listingID})
}

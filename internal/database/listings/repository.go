// Package listings provides database operations for listing management.
//
// # Usage
//
//	repo := listings.NewRepository(db)
//	listing, err := repo.GetListingByID(123)
package listings

import (
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/entities"
)

// Repository handles all listing database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new listings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetAllListings returns every listing, newest first.
func (r *Repository) GetAllListings() ([]entities.Listing, error) {
	var listings []entities.Listing
	err := r.db.Order("id DESC").Find(&listings).Error
	return listings, err
}

// GetListingByID retrieves a listing without associations. Used by the
// ownership middleware, which only needs the owner field.
func (r *Repository) GetListingByID(id uint) (*entities.Listing, error) {
	var listing entities.Listing
	err := r.db.First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// GetListingWithDetails retrieves a listing with its owner and reviews
// (including review authors) preloaded.
func (r *Repository) GetListingWithDetails(id uint) (*entities.Listing, error) {
	var listing entities.Listing
	err := r.db.
		Preload("Owner").
		Preload("Reviews").
		Preload("Reviews.Author").
		First(&listing, id).Error
	if err != nil {
		return nil, err
	}
	return &listing, nil
}

// CreateListing persists a new listing. The caller sets OwnerID; it is
// never changed afterwards.
func (r *Repository) CreateListing(listing *entities.Listing) error {
	return r.db.Create(listing).Error
}

// UpdateListing applies the given column updates and returns the updated
// listing. OwnerID is not an updatable column.
func (r *Repository) UpdateListing(id uint, updates map[string]any) (*entities.Listing, error) {
	delete(updates, "owner_id")

	result := r.db.Model(&entities.Listing{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 && len(updates) > 0 {
		// Distinguish "listing gone" from "nothing to change".
		var count int64
		if err := r.db.Model(&entities.Listing{}).Where("id = ?", id).Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, gorm.ErrRecordNotFound
		}
	}

	return r.GetListingByID(id)
}

// DeleteListing soft-deletes a listing.
func (r *Repository) DeleteListing(id uint) error {
	return r.db.Delete(&entities.Listing{}, id).Error
}

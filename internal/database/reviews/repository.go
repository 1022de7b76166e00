// Package reviews provides database operations for review management.
//
// # Usage
//
//	repo := reviews.NewRepository(db)
//	review, err := repo.GetReviewByID(123)
package reviews

import (
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/entities"
)

// Repository handles all review database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new reviews repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// GetReviewByID retrieves a review without associations. Used by the
// authorship middleware, which only needs the author field.
func (r *Repository) GetReviewByID(id uint) (*entities.Review, error) {
	var review entities.Review
	err := r.db.First(&review, id).Error
	if err != nil {
		return nil, err
	}
	return &review, nil
}

// CreateReview persists a new review. The caller sets AuthorID and
// ListingID; neither is ever changed afterwards.
func (r *Repository) CreateReview(review *entities.Review) error {
	return r.db.Create(review).Error
}

// GetReviewsForListing returns a listing's reviews with authors preloaded.
func (r *Repository) GetReviewsForListing(listingID uint) ([]entities.Review, error) {
	var reviews []entities.Review
	err := r.db.
		Preload("Author").
		Where("listing_id = ?", listingID).
		Order("id DESC").
		Find(&reviews).Error
	return reviews, err
}

// DeleteReview soft-deletes a review.
func (r *Repository) DeleteReview(id uint) error {
	return r.db.Delete(&entities.Review{}, id).Error
}

package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/auth"
	"github.com/amitakm/wonderlust/internal/entities"
)

// ReviewsStore defines database operations for review management.
type ReviewsStore interface {
	GetReviewByID(id uint) (*entities.Review, error)
	CreateReview(review *entities.Review) error
	DeleteReview(id uint) error
}

// ReviewsController handles review creation and deletion.
type ReviewsController struct {
	store    ReviewsStore
	listings ListingsStore
}

// NewReviewsController creates a new ReviewsController.
func NewReviewsController(store ReviewsStore, listings ListingsStore) *ReviewsController {
	return &ReviewsController{store: store, listings: listings}
}

// Create adds a review to a listing, authored by the authenticated user.
// POST /api/reviews/:id/review
func (rc *ReviewsController) Create(c *gin.Context) {
	listingID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := rc.listings.GetListingByID(listingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Listing")
			return
		}
		respondInternalError(c, err, "create review")
		return
	}

	var req struct {
		Rating  int    `json:"rating"`
		Comment string `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Rating < 1 || req.Rating > 5 {
		respondBadRequest(c, "rating must be between 1 and 5")
		return
	}

	review := &entities.Review{
		ListingID: listingID,
		AuthorID:  auth.CurrentUserID(c),
		Rating:    req.Rating,
		Comment:   req.Comment,
	}

	if err := rc.store.CreateReview(review); err != nil {
		respondInternalError(c, err, "create review")
		return
	}

	respondData(c, http.StatusCreated, "Review added!", review)
}

// Delete removes a review. Authorship is enforced by RequireReviewAuthor
// ahead of this handler.
// DELETE /api/reviews/:id/reviews/:reviewId
func (rc *ReviewsController) Delete(c *gin.Context) {
	review := auth.ReviewFromContext(c)
	if review == nil {
		respondInternalError(c, errors.New("review missing from context"), "delete review")
		return
	}

	if err := rc.store.DeleteReview(review.ID); err != nil {
		respondInternalError(c, err, "delete review")
		return
	}

	respondMessage(c, "Review deleted!")
}

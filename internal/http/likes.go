package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/auth"
)

// LikedListingsController handles the liked-listings view and the toggle
// operation.
type LikedListingsController struct {
	likes    LikesStore
	listings ListingsStore
}

// NewLikedListingsController creates a new LikedListingsController.
func NewLikedListingsController(likes LikesStore, listings ListingsStore) *LikedListingsController {
	return &LikedListingsController{likes: likes, listings: listings}
}

// List returns the authenticated user's liked listings with owners.
// GET /api/liked/liked-listings
func (lc *LikedListingsController) List(c *gin.Context) {
	listings, err := lc.likes.GetLikedListings(auth.CurrentUserID(c))
	if err != nil {
		respondInternalError(c, err, "list liked listings")
		return
	}

	respondData(c, http.StatusOK, "", listings)
}

// Toggle likes an unliked listing and unlikes a liked one.
// POST /api/liked/:id/toggle-like
func (lc *LikedListingsController) Toggle(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := lc.listings.GetListingByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Listing")
			return
		}
		respondInternalError(c, err, "toggle like")
		return
	}

	userID := auth.CurrentUserID(c)
	liked, err := lc.likes.IsListingLiked(userID, id)
	if err != nil {
		respondInternalError(c, err, "toggle like")
		return
	}

	if liked {
		if err := lc.likes.RemoveLikedListing(userID, id); err != nil {
			respondInternalError(c, err, "toggle like")
			return
		}
		c.JSON(http.StatusOK, gin.H{"success": true, "message": "Removed from liked listings", "liked": false})
		return
	}

	if err := lc.likes.AddLikedListing(userID, id); err != nil {
		respondInternalError(c, err, "toggle like")
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Added to liked listings", "liked": true})
}

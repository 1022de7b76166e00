package auth

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/entities"
)

// ListingGetter loads a listing for the ownership check.
type ListingGetter interface {
	GetListingByID(id uint) (*entities.Listing, error)
}

// ReviewGetter loads a review for the authorship check.
type ReviewGetter interface {
	GetReviewByID(id uint) (*entities.Review, error)
}

// canModify is the single authorization predicate: admins may modify
// anything, everyone else only what they own.
func canModify(user *entities.User, ownerID uint) bool {
	return user != nil && (user.IsAdmin || user.ID == ownerID)
}

// RequireListingOwner loads the listing from the "id" route parameter and
// rejects acting users who neither own it nor hold the admin flag. Must run
// after RequireAuth; the loaded listing is attached to the context for the
// handler.
func RequireListingOwner(store ListingGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resourceID(c, "id")
		if !ok {
			return
		}

		listing, err := store.GetListingByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortAuth(c, http.StatusNotFound, "Listing not found")
				return
			}
			log.Printf("Ownership check: failed to load listing %d: %v", id, err)
			abortAuth(c, http.StatusInternalServerError, "Something went wrong!")
			return
		}

		if !canModify(CurrentUser(c), listing.OwnerID) {
			abortAuth(c, http.StatusForbidden, "You don't have permission to do that")
			return
		}

		c.Set(ContextKeyListing, listing)
		c.Next()
	}
}

// RequireReviewAuthor is the same gate keyed on the review's author, using
// the "reviewId" route parameter.
func RequireReviewAuthor(store ReviewGetter) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := resourceID(c, "reviewId")
		if !ok {
			return
		}

		review, err := store.GetReviewByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				abortAuth(c, http.StatusNotFound, "Review not found")
				return
			}
			log.Printf("Authorship check: failed to load review %d: %v", id, err)
			abortAuth(c, http.StatusInternalServerError, "Something went wrong!")
			return
		}

		if !canModify(CurrentUser(c), review.AuthorID) {
			abortAuth(c, http.StatusForbidden, "You don't have permission to delete this review")
			return
		}

		c.Set(ContextKeyReview, review)
		c.Next()
	}
}

func resourceID(c *gin.Context, param string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(param), 10, 32)
	if err != nil {
		abortAuth(c, http.StatusBadRequest, "invalid "+param)
		return 0, false
	}
	return uint(id), true
}

// ListingFromContext returns the listing loaded by RequireListingOwner.
func ListingFromContext(c *gin.Context) *entities.Listing {
	if v, exists := c.Get(ContextKeyListing); exists {
		if listing, ok := v.(*entities.Listing); ok {
			return listing
		}
	}
	return nil
}

// ReviewFromContext returns the review loaded by RequireReviewAuthor.
func ReviewFromContext(c *gin.Context) *entities.Review {
	if v, exists := c.Get(ContextKeyReview); exists {
		if review, ok := v.(*entities.Review); ok {
			return review
		}
	}
	return nil
}

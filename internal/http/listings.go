package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/auth"
	"github.com/amitakm/wonderlust/internal/entities"
)

// ListingsStore defines database operations for listing management.
type ListingsStore interface {
	GetAllListings() ([]entities.Listing, error)
	GetListingByID(id uint) (*entities.Listing, error)
	GetListingWithDetails(id uint) (*entities.Listing, error)
	CreateListing(listing *entities.Listing) error
	UpdateListing(id uint, updates map[string]any) (*entities.Listing, error)
	DeleteListing(id uint) error
}

// LikesStore defines the liked-listing operations the controllers need.
type LikesStore interface {
	GetLikedListings(userID uint) ([]entities.Listing, error)
	IsListingLiked(userID, listingID uint) (bool, error)
	AddLikedListing(userID, listingID uint) error
	RemoveLikedListing(userID, listingID uint) error
}

// ListingsController handles listing CRUD and the like operation.
type ListingsController struct {
	store ListingsStore
	likes LikesStore
}

// NewListingsController creates a new ListingsController.
func NewListingsController(store ListingsStore, likes LikesStore) *ListingsController {
	return &ListingsController{store: store, likes: likes}
}

// listingRequest is the payload for create; updates bind the pointer
// variant so absent fields are left untouched.
type listingRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image"`
	Price       int    `json:"price"`
	Location    string `json:"location"`
	Country     string `json:"country"`
}

type listingUpdateRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	ImageURL    *string `json:"image"`
	Price       *int    `json:"price"`
	Location    *string `json:"location"`
	Country     *string `json:"country"`
}

func (r *listingUpdateRequest) updates() map[string]any {
	updates := map[string]any{}
	if r.Title != nil {
		updates["title"] = *r.Title
	}
	if r.Description != nil {
		updates["description"] = *r.Description
	}
	if r.ImageURL != nil {
		updates["image_url"] = *r.ImageURL
	}
	if r.Price != nil {
		updates["price"] = *r.Price
	}
	if r.Location != nil {
		updates["location"] = *r.Location
	}
	if r.Country != nil {
		updates["country"] = *r.Country
	}
	return updates
}

// Index returns all listings, newest first.
// GET /api/listings
func (lc *ListingsController) Index(c *gin.Context) {
	listings, err := lc.store.GetAllListings()
	if err != nil {
		respondInternalError(c, err, "list listings")
		return
	}

	respondData(c, http.StatusOK, "", listings)
}

// Show returns a single listing with owner and reviews.
// GET /api/listings/:id
func (lc *ListingsController) Show(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	listing, err := lc.store.GetListingWithDetails(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Listing")
			return
		}
		respondInternalError(c, err, "show listing")
		return
	}

	respondData(c, http.StatusOK, "", listing)
}

// Create adds a new listing owned by the authenticated user.
// POST /api/listings
func (lc *ListingsController) Create(c *gin.Context) {
	var req listingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.Title == "" {
		respondBadRequest(c, "title is required")
		return
	}

	listing := &entities.Listing{
		Title:       req.Title,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Location:    req.Location,
		Country:     req.Country,
		OwnerID:     auth.CurrentUserID(c),
	}

	if err := lc.store.CreateListing(listing); err != nil {
		respondInternalError(c, err, "create listing")
		return
	}

	respondData(c, http.StatusCreated, "Listing created!", listing)
}

// Update modifies a listing. Ownership is enforced by RequireListingOwner
// ahead of this handler.
// PUT /api/listings/:id
func (lc *ListingsController) Update(c *gin.Context) {
	listing := auth.ListingFromContext(c)
	if listing == nil {
		respondInternalError(c, errors.New("listing missing from context"), "update listing")
		return
	}

	var req listingUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	updated, err := lc.store.UpdateListing(listing.ID, req.updates())
	if err != nil {
		respondInternalError(c, err, "update listing")
		return
	}

	respondData(c, http.StatusOK, "Listing updated!", updated)
}

// Delete removes a listing. Ownership is enforced by RequireListingOwner.
// DELETE /api/listings/:id
func (lc *ListingsController) Delete(c *gin.Context) {
	listing := auth.ListingFromContext(c)
	if listing == nil {
		respondInternalError(c, errors.New("listing missing from context"), "delete listing")
		return
	}

	if err := lc.store.DeleteListing(listing.ID); err != nil {
		respondInternalError(c, err, "delete listing")
		return
	}

	respondMessage(c, "Listing deleted!")
}

// Like adds the listing to the authenticated user's liked set.
// GET /api/listings/:id/like
func (lc *ListingsController) Like(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if _, err := lc.store.GetListingByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			respondNotFound(c, "Listing")
			return
		}
		respondInternalError(c, err, "like listing")
		return
	}

	userID := auth.CurrentUserID(c)
	liked, err := lc.likes.IsListingLiked(userID, id)
	if err != nil {
		respondInternalError(c, err, "like listing")
		return
	}
	if liked {
		respondBadRequest(c, "Already liked")
		return
	}

	if err := lc.likes.AddLikedListing(userID, id); err != nil {
		respondInternalError(c, err, "like listing")
		return
	}

	respondMessage(c, "Added to liked listings!")
}

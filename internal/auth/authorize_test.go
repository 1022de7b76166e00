package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/entities"
)

type listingStore struct{ db *gorm.DB }

func (s listingStore) GetListingByID(id uint) (*entities.Listing, error) {
	var listing entities.Listing
	if err := s.db.First(&listing, id).Error; err != nil {
		return nil, err
	}
	return &listing, nil
}

type reviewStore struct{ db *gorm.DB }

func (s reviewStore) GetReviewByID(id uint) (*entities.Review, error) {
	var review entities.Review
	if err := s.db.First(&review, id).Error; err != nil {
		return nil, err
	}
	return &review, nil
}

type ownershipFixture struct {
	router  *gin.Engine
	db      *gorm.DB
	owner   *entities.User
	other   *entities.User
	admin   *entities.User
	tokens  map[uint]string
	listing *entities.Listing
	review  *entities.Review
}

func setupOwnership(t *testing.T) *ownershipFixture {
	t.Helper()

	db := setupTestDB(t)
	service := newTestService(db)
	tm, err := NewTokenManager("test-secret", time.Hour)
	if err != nil {
		t.Fatalf("NewTokenManager() error = %v", err)
	}
	middleware := NewMiddleware(tm, service)

	owner, err := service.Signup("owner", "owner@example.com", "password12345")
	if err != nil {
		t.Fatalf("Signup(owner) error = %v", err)
	}
	other, err := service.Signup("other", "other@example.com", "password12345")
	if err != nil {
		t.Fatalf("Signup(other) error = %v", err)
	}
	admin, err := service.Signup("admin", "admin@example.com", "password12345")
	if err != nil {
		t.Fatalf("Signup(admin) error = %v", err)
	}
	if err := db.Model(admin).Update("is_admin", true).Error; err != nil {
		t.Fatalf("failed to promote admin: %v", err)
	}

	listing := &entities.Listing{Title: "Cabin", Price: 100, OwnerID: owner.ID}
	if err := db.Create(listing).Error; err != nil {
		t.Fatalf("failed to create listing: %v", err)
	}
	review := &entities.Review{ListingID: listing.ID, AuthorID: owner.ID, Rating: 5, Comment: "Great"}
	if err := db.Create(review).Error; err != nil {
		t.Fatalf("failed to create review: %v", err)
	}

	tokens := map[uint]string{}
	for _, u := range []*entities.User{owner, other, admin} {
		token, err := tm.Issue(u.ID)
		if err != nil {
			t.Fatalf("Issue() error = %v", err)
		}
		tokens[u.ID] = token
	}

	router := gin.New()
	router.DELETE("/api/listings/:id",
		middleware.RequireAuth(),
		RequireListingOwner(listingStore{db}),
		func(c *gin.Context) {
			if ListingFromContext(c) == nil {
				t.Error("listing missing from context in handler")
			}
			c.Status(http.StatusOK)
		})
	router.DELETE("/api/reviews/:id/reviews/:reviewId",
		middleware.RequireAuth(),
		RequireReviewAuthor(reviewStore{db}),
		func(c *gin.Context) {
			if ReviewFromContext(c) == nil {
				t.Error("review missing from context in handler")
			}
			c.Status(http.StatusOK)
		})

	return &ownershipFixture{
		router:  router,
		db:      db,
		owner:   owner,
		other:   other,
		admin:   admin,
		tokens:  tokens,
		listing: listing,
		review:  review,
	}
}

func (f *ownershipFixture) deleteListing(as *entities.User, listingID string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodDelete, "/api/listings/"+listingID, nil)
	req.Header.Set("Authorization", "Bearer "+f.tokens[as.ID])
	rr := httptest.NewRecorder()
	f.router.ServeHTTP(rr, req)
	return rr
}

func TestRequireListingOwner_Owner(t *testing.T) {
	f := setupOwnership(t)

	rr := f.deleteListing(f.owner, "1")
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for owner, got %d", rr.Code)
	}
}

func TestRequireListingOwner_NonOwner(t *testing.T) {
	f := setupOwnership(t)

	rr := f.deleteListing(f.other, "1")
	if rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-owner, got %d", rr.Code)
	}

	// The rejected attempt must leave the listing untouched.
	var listing entities.Listing
	if err := f.db.First(&listing, f.listing.ID).Error; err != nil {
		t.Errorf("listing no longer loadable after rejected delete: %v", err)
	}
}

func TestRequireListingOwner_Admin(t *testing.T) {
	f := setupOwnership(t)

	rr := f.deleteListing(f.admin, "1")
	if rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", rr.Code)
	}
}

func TestRequireListingOwner_MissingListing(t *testing.T) {
	f := setupOwnership(t)

	rr := f.deleteListing(f.owner, "9999")
	if rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing listing, got %d", rr.Code)
	}
}

func TestRequireListingOwner_BadID(t *testing.T) {
	f := setupOwnership(t)

	rr := f.deleteListing(f.owner, "abc")
	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for non-numeric id, got %d", rr.Code)
	}
}

func TestRequireReviewAuthor(t *testing.T) {
	f := setupOwnership(t)

	send := func(as *entities.User, reviewID string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, "/api/reviews/1/reviews/"+reviewID, nil)
		req.Header.Set("Authorization", "Bearer "+f.tokens[as.ID])
		rr := httptest.NewRecorder()
		f.router.ServeHTTP(rr, req)
		return rr
	}

	if rr := send(f.other, "1"); rr.Code != http.StatusForbidden {
		t.Errorf("Expected 403 for non-author, got %d", rr.Code)
	}
	if rr := send(f.admin, "1"); rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for admin, got %d", rr.Code)
	}
	if rr := send(f.owner, "9999"); rr.Code != http.StatusNotFound {
		t.Errorf("Expected 404 for missing review, got %d", rr.Code)
	}
	if rr := send(f.owner, "1"); rr.Code != http.StatusOK {
		t.Errorf("Expected 200 for author, got %d", rr.Code)
	}
}

func TestCanModify(t *testing.T) {
	owner := &entities.User{ID: 1}
	admin := &entities.User{ID: 2, IsAdmin: true}
	stranger := &entities.User{ID: 3}

	tests := []struct {
		name    string
		user    *entities.User
		ownerID uint
		want    bool
	}{
		{"owner", owner, 1, true},
		{"admin on foreign resource", admin, 1, true},
		{"stranger", stranger, 1, false},
		{"nil user", nil, 1, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := canModify(tt.user, tt.ownerID); got != tt.want {
				t.Errorf("canModify() = %v, want %v", got, tt.want)
			}
		})
	}
}

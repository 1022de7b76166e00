package reviews

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/amitakm/wonderlust/internal/entities"
)

func setupTestDB(t *testing.T) (*gorm.DB, *Repository, func()) {
	dbPath := "./test_reviews_" + t.Name() + ".db"

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&entities.User{},
		&entities.Listing{},
		&entities.Review{},
	)
	require.NoError(t, err)

	repo := NewRepository(db)

	cleanup := func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
		os.Remove(dbPath)
	}

	return db, repo, cleanup
}

func seedListing(t *testing.T, db *gorm.DB) (*entities.User, *entities.Listing) {
	user := &entities.User{Username: "author", Email: "author@example.com"}
	require.NoError(t, db.Create(user).Error)

	listing := &entities.Listing{Title: "Cabin", OwnerID: user.ID}
	require.NoError(t, db.Create(listing).Error)

	return user, listing
}

func TestRepository_CreateAndGet(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	author, listing := seedListing(t, db)

	review := &entities.Review{
		ListingID: listing.ID,
		AuthorID:  author.ID,
		Rating:    4,
		Comment:   "Lovely stay",
	}
	require.NoError(t, repo.CreateReview(review))
	require.NotZero(t, review.ID)

	got, err := repo.GetReviewByID(review.ID)
	require.NoError(t, err)
	assert.Equal(t, 4, got.Rating)
	assert.Equal(t, author.ID, got.AuthorID)
	assert.Equal(t, listing.ID, got.ListingID)
}

func TestRepository_GetReviewByID_NotFound(t *testing.T) {
	_, repo, cleanup := setupTestDB(t)
	defer cleanup()

	_, err := repo.GetReviewByID(9999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepository_GetReviewsForListing(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	author, listing := seedListing(t, db)

	otherListing := &entities.Listing{Title: "Loft", OwnerID: author.ID}
	require.NoError(t, db.Create(otherListing).Error)

	require.NoError(t, repo.CreateReview(&entities.Review{ListingID: listing.ID, AuthorID: author.ID, Rating: 5, Comment: "First"}))
	require.NoError(t, repo.CreateReview(&entities.Review{ListingID: listing.ID, AuthorID: author.ID, Rating: 3, Comment: "Second"}))
	require.NoError(t, repo.CreateReview(&entities.Review{ListingID: otherListing.ID, AuthorID: author.ID, Rating: 1, Comment: "Elsewhere"}))

	reviews, err := repo.GetReviewsForListing(listing.ID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	assert.Equal(t, "Second", reviews[0].Comment)
	assert.Equal(t, "author", reviews[0].Author.Username)
}

func TestRepository_DeleteReview(t *testing.T) {
	db, repo, cleanup := setupTestDB(t)
	defer cleanup()

	author, listing := seedListing(t, db)

	review := &entities.Review{ListingID: listing.ID, AuthorID: author.ID, Rating: 5}
	require.NoError(t, repo.CreateReview(review))

	require.NoError(t, repo.DeleteReview(review.ID))

	_, err := repo.GetReviewByID(review.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

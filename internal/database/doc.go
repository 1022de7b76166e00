// Package database provides the data access layer for the application.
//
// # Architecture
//
// The database layer is organized into domain-specific sub-packages:
//
//	database/
//	├── database.go      # Connection setup, migrations
//	├── users/           # User lookups and liked-listing management
//	├── listings/        # Listing CRUD operations
//	└── reviews/         # Review CRUD operations
//
// Each sub-package provides a Repository type:
//
//	db, err := database.NewDatabase("./wonderlust.db")
//	listingsRepo := listings.NewRepository(db.DB)
//	listing, err := listingsRepo.GetListingByID(123)
//
// Repositories implement the store interfaces declared by their consumers
// (internal/http controllers and the auth middlewares).
package database

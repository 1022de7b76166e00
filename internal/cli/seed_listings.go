package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amitakm/wonderlust/internal/config"
	"github.com/amitakm/wonderlust/internal/database"
	"github.com/amitakm/wonderlust/internal/entities"
)

// SeedListingsCommand populates the database with sample listings so the
// API has browsable data in development.
type SeedListingsCommand struct {
	DatabasePath string
	OwnerEmail   string
	Drop         bool
}

func NewSeedListingsCommand() *SeedListingsCommand {
	return &SeedListingsCommand{}
}

func (cmd *SeedListingsCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-listings", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.OwnerEmail, "owner-email", "", "Email of the user who will own the sample listings (required)")
	fs.BoolVar(&cmd.Drop, "drop", false, "Delete all existing listings before seeding")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-listings -owner-email <email> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Insert a set of sample listings owned by an existing user.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.OwnerEmail == "" {
		return fmt.Errorf("required flag -owner-email not provided")
	}

	return nil
}

func (cmd *SeedListingsCommand) Run() error {
	absDBPath, err := filepath.Abs(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path for database: %w", err)
	}
	cmd.DatabasePath = absDBPath

	fmt.Printf("Using database: %s\n", cmd.DatabasePath)

	db, err := database.NewDatabase(cmd.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	var owner entities.User
	if err := db.DB.Where("email = ?", cmd.OwnerEmail).First(&owner).Error; err != nil {
		return fmt.Errorf("owner %s not found (run seed-admin or sign up first): %w", cmd.OwnerEmail, err)
	}

	if cmd.Drop {
		fmt.Println("Deleting existing listings...")
		if err := db.DB.Unscoped().Where("1 = 1").Delete(&entities.Listing{}).Error; err != nil {
			return fmt.Errorf("failed to delete existing listings: %w", err)
		}
	}

	samples := sampleListings(owner.ID)
	if err := db.DB.Create(&samples).Error; err != nil {
		return fmt.Errorf("failed to insert sample listings: %w", err)
	}

	fmt.Printf("Inserted %d sample listings owned by %s\n", len(samples), owner.Username)
	return nil
}

func sampleListings(ownerID uint) []entities.Listing {
	return []entities.Listing{
		{
			Title:       "Cozy Beachfront Cottage",
			Description: "Escape to this charming beachfront cottage for a relaxing getaway. Enjoy stunning ocean views and easy access to the beach.",
			ImageURL:    "https://images.unsplash.com/photo-1552733407-5d5c46c3bb3b",
			Price:       1500,
			Location:    "Malibu",
			Country:     "United States",
			OwnerID:     ownerID,
		},
		{
			Title:       "Modern Loft in Downtown",
			Description: "Stay in the heart of the city in this stylish loft apartment. Perfect for urban explorers.",
			ImageURL:    "https://images.unsplash.com/photo-1501785888041-af3ef285b470",
			Price:       1200,
			Location:    "New York City",
			Country:     "United States",
			OwnerID:     ownerID,
		},
		{
			Title:       "Mountain Retreat",
			Description: "Unplug and unwind in this peaceful mountain cabin surrounded by forest trails.",
			ImageURL:    "https://images.unsplash.com/photo-1571896349842-33c89424de2d",
			Price:       1000,
			Location:    "Aspen",
			Country:     "United States",
			OwnerID:     ownerID,
		},
		{
			Title:       "Historic Villa in Tuscany",
			Description: "Experience the charm of Tuscany in this beautifully restored villa surrounded by vineyards.",
			ImageURL:    "https://images.unsplash.com/photo-1566073771259-6a8506099945",
			Price:       2500,
			Location:    "Florence",
			Country:     "Italy",
			OwnerID:     ownerID,
		},
		{
			Title:       "Secluded Treehouse Getaway",
			Description: "Live among the treetops in this unique treehouse retreat. A true nature escape.",
			ImageURL:    "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4",
			Price:       800,
			Location:    "Portland",
			Country:     "United States",
			OwnerID:     ownerID,
		},
	}
}

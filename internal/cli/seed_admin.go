package cli

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/amitakm/wonderlust/internal/auth"
	"github.com/amitakm/wonderlust/internal/config"
	"github.com/amitakm/wonderlust/internal/database"
	"github.com/amitakm/wonderlust/internal/entities"
)

// SeedAdminCommand creates an administrator account in the database.
type SeedAdminCommand struct {
	DatabasePath string
	Email        string
	Username     string
	Password     string
	BcryptCost   int
}

func NewSeedAdminCommand() *SeedAdminCommand {
	return &SeedAdminCommand{}
}

func (cmd *SeedAdminCommand) ParseFlags(args []string) error {
	fs := flag.NewFlagSet("seed-admin", flag.ExitOnError)

	fs.StringVar(&cmd.DatabasePath, "db", config.DefaultDatabasePath, "Path to the database file")
	fs.StringVar(&cmd.Email, "email", config.DefaultAdminEmail, "Email address for the admin account")
	fs.StringVar(&cmd.Username, "username", "admin", "Username for the admin account")
	fs.StringVar(&cmd.Password, "password", "", "Password for the admin account (required)")
	fs.IntVar(&cmd.BcryptCost, "cost", config.DefaultBcryptCost, "Bcrypt cost for hashing the password")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s seed-admin -password <password> [options]\n\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "Create an administrator account. If a user with the given email\n")
		fmt.Fprintf(os.Stderr, "already exists, it is promoted to admin instead.\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if cmd.Password == "" {
		return fmt.Errorf("required flag -password not provided")
	}
	if len(cmd.Password) < auth.MinPasswordLength {
		return fmt.Errorf("password must be at least %d characters", auth.MinPasswordLength)
	}

	return nil
}

func (cmd *SeedAdminCommand) Run() error {
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

	var existing entities.User
	result := db.DB.Where("email = ?", cmd.Email).First(&existing)
	if result.Error == nil {
		if existing.IsAdmin {
			fmt.Printf("Admin account %s already exists, nothing to do\n", cmd.Email)
			return nil
		}
		if err := db.DB.Model(&existing).Update("is_admin", true).Error; err != nil {
			return fmt.Errorf("failed to promote user to admin: %w", err)
		}
		fmt.Printf("Promoted existing user %s to admin\n", cmd.Email)
		return nil
	}

	hash, err := auth.HashPassword(cmd.Password, cmd.BcryptCost)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := entities.User{
		Username:     cmd.Username,
		Email:        cmd.Email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := db.DB.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin account: %w", err)
	}

	fmt.Printf("Created admin account %s (%s)\n", cmd.Username, cmd.Email)
	return nil
}

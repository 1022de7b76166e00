package auth

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/amitakm/wonderlust/internal/config"
	"github.com/amitakm/wonderlust/internal/entities"
)

// Validation patterns
var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)
	emailPattern    = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUsernameRequired = errors.New("username is required")
	ErrEmailRequired    = errors.New("email is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
	ErrEmailInvalid     = errors.New("invalid email format")

	// ErrInvalidCredentials covers both an unknown login and a wrong
	// password. The two cases are deliberately indistinguishable so that
	// login responses cannot be used to enumerate usernames or emails.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// Service handles signup, login and federated find-or-create.
type Service struct {
	db         *gorm.DB
	config     config.Auth
	adminEmail string
}

// NewService creates a new authentication service. adminEmail, when
// non-empty, grants the admin flag to a matching federated login.
func NewService(db *gorm.DB, cfg config.Auth, adminEmail string) *Service {
	return &Service{
		db:         db,
		config:     cfg,
		adminEmail: adminEmail,
	}
}

// Signup creates a new user with local credentials.
func (s *Service) Signup(username, email, password string) (*entities.User, error) {
	if username == "" {
		return nil, ErrUsernameRequired
	}
	if email == "" {
		return nil, ErrEmailRequired
	}
	if password == "" {
		return nil, ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, ErrUsernameInvalid
	}
	// RFC 5321 caps addresses at 254 characters
	if len(email) > 254 || !emailPattern.MatchString(email) {
		return nil, ErrEmailInvalid
	}

	var existing entities.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	if err == nil {
		return nil, ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, err
	}

	user := &entities.User{
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		IsAdmin:      s.isAdminEmail(email),
	}

	if err := s.db.Create(user).Error; err != nil {
		// A concurrent signup can slip past the existence check; the
		// unique indexes on username and email reject the duplicate.
		if s.identityTaken(username, email) {
			return nil, ErrUserExists
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// Authenticate validates local credentials. The login may be a username or
// an email address. Every failure path returns ErrInvalidCredentials.
func (s *Service) Authenticate(login, password string) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("username = ? OR email = ?", login, login).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Federated-only accounts have no local credential to check.
	if !user.HasPassword() {
		return nil, ErrInvalidCredentials
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		if errors.Is(err, ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to check password: %w", err)
	}

	return &user, nil
}

// FindOrCreateFederated returns the user for a verified federated identity,
// creating one on first login. Idempotent under concurrent calls for the
// same email: the unique email index rejects the losing create, and the
// loser re-reads the winner's record.
func (s *Service) FindOrCreateFederated(identity *Identity) (*entities.User, error) {
	var user entities.User
	err := s.db.Where("email = ?", identity.Email).First(&user).Error
	if err == nil {
		return &user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Retry a few times in case the synthesized username collides.
	for attempt := 0; attempt < 3; attempt++ {
		newUser := &entities.User{
			Username: synthesizeUsername(identity.Email),
			Email:    identity.Email,
			IsAdmin:  s.isAdminEmail(identity.Email),
		}
		createErr := s.db.Create(newUser).Error
		if createErr == nil {
			return newUser, nil
		}

		// Either a concurrent login won the race on email, or the
		// username collided. Check for the winner first.
		var existing entities.User
		if ferr := s.db.Where("email = ?", identity.Email).First(&existing).Error; ferr == nil {
			return &existing, nil
		}
		err = createErr
	}

	return nil, fmt.Errorf("failed to create federated user: %w", err)
}

// GetUserByID retrieves a user by their ID.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	var user entities.User
	err := s.db.First(&user, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *Service) isAdminEmail(email string) bool {
	return s.adminEmail != "" && strings.EqualFold(email, s.adminEmail)
}

func (s *Service) identityTaken(username, email string) bool {
	var existing entities.User
	err := s.db.Where("username = ? OR email = ?", username, email).First(&existing).Error
	return err == nil
}

// synthesizeUsername derives a unique username from the email local part
// plus a random disambiguator, e.g. "alex_3f2a91bc".
func synthesizeUsername(email string) string {
	local, _, _ := strings.Cut(email, "@")

	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		default:
			return -1
		}
	}, local)
	if len(cleaned) > 32 {
		cleaned = cleaned[:32]
	}
	if cleaned == "" {
		cleaned = "user"
	}

	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return cleaned + "_" + suffix
}

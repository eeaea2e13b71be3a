package auth

import (
	"errors"
	"fmt"
	"regexp"

	"gorm.io/gorm"

	"github.com/bookhive/bookhive/internal/config"
	"github.com/bookhive/bookhive/internal/entities"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_-]{3,64}$`)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUserExists       = errors.New("user already exists")
	ErrUsernameRequired = errors.New("username is required")
	ErrPasswordRequired = errors.New("password is required")
	ErrUsernameInvalid  = errors.New("username must be 3-64 characters, alphanumeric and underscore/hyphen only")
)

// UserStore defines the user persistence operations the service needs.
// Implemented by the users repository.
type UserStore interface {
	CreateUser(username, passwordHash string, isAdmin bool) (*entities.User, error)
	GetUserByID(id uint) (*entities.User, error)
	GetUserByUsername(username string) (*entities.User, error)
}

// Service handles registration and credential checks.
type Service struct {
	store  UserStore
	tokens *TokenManager
	config config.Auth
}

// NewService creates a new authentication service.
func NewService(store UserStore, tokens *TokenManager, cfg config.Auth) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		config: cfg,
	}
}

// Register creates a user and issues a token for it.
func (s *Service) Register(username, password string, isAdmin bool) (*entities.User, string, error) {
	if username == "" {
		return nil, "", ErrUsernameRequired
	}
	if password == "" {
		return nil, "", ErrPasswordRequired
	}
	if !usernamePattern.MatchString(username) {
		return nil, "", ErrUsernameInvalid
	}

	// Check the username before hitting the unique index so the caller gets
	// a stable error instead of a driver-specific constraint failure.
	_, err := s.store.GetUserByUsername(username)
	if err == nil {
		return nil, "", ErrUserExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", fmt.Errorf("failed to check existing user: %w", err)
	}

	passwordHash, err := HashPassword(password, s.config.BcryptCost)
	if err != nil {
		return nil, "", err
	}

	user, err := s.store.CreateUser(username, passwordHash, isAdmin)
	if err != nil {
		return nil, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// Authenticate validates credentials and issues a token.
// Returns ErrUserNotFound for unknown usernames and ErrInvalidPassword for
// a wrong password, so the handlers can map them to distinct statuses.
func (s *Service) Authenticate(username, password string) (*entities.User, string, error) {
	user, err := s.store.GetUserByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, "", ErrUserNotFound
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if err := CheckPassword(password, user.PasswordHash); err != nil {
		return nil, "", err
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	return user, token, nil
}

// GetUserByID resolves a user by ID, mapping missing rows to ErrUserNotFound.
func (s *Service) GetUserByID(id uint) (*entities.User, error) {
	user, err := s.store.GetUserByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

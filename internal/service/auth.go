package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/crypto/bcrypt"

	apperrors "github.com/mpopescu/phonebook/pkg/errors"

	"github.com/mpopescu/phonebook/internal/auth"
	"github.com/mpopescu/phonebook/internal/repository"
)

// AuthService implements the login flow: credential check plus token issuance.
type AuthService struct {
	users      repository.UserRepository
	jwtManager *auth.JWTManager
	logger     *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(users repository.UserRepository, jwtManager *auth.JWTManager, logger *slog.Logger) *AuthService {
	return &AuthService{
		users:      users,
		jwtManager: jwtManager,
		logger:     logger,
	}
}

// Login authenticates a user by username and password and returns a signed
// session token. An unknown username and a wrong password produce the same
// error, so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	if username == "" {
		return "", apperrors.InvalidInput("username is required")
	}
	if password == "" {
		return "", apperrors.InvalidInput("password is required")
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.Unauthorized("invalid username or password")
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}

	if !passwordMatches(user.Password, password) {
		return "", apperrors.Unauthorized("invalid username or password")
	}

	token, err := s.jwtManager.Issue(user.Username)
	if err != nil {
		return "", fmt.Errorf("issue token: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in", slog.String("username", user.Username))

	return token, nil
}

// passwordMatches compares a stored credential with the supplied password.
// Stored values hashed with bcrypt are compared with bcrypt; anything else is
// treated as a legacy plaintext seed and compared in constant time. The
// plaintext path exists for compatibility with seed data and should go away
// once all stored passwords are hashed.
func passwordMatches(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/runquest/runquest-backend/internal/auth"
	"github.com/runquest/runquest-backend/internal/logging"
	"github.com/runquest/runquest-backend/internal/models"
	"github.com/runquest/runquest-backend/internal/repository"
)

// MinPasswordLength is the shortest password Register accepts
const MinPasswordLength = 8

// AuthService handles registration and token issuance
type AuthService struct {
	userRepo  *repository.UserRepository
	tokenRepo *repository.TokenRepository
	tokens    *auth.Manager
}

// NewAuthService creates a new auth service
func NewAuthService(userRepo *repository.UserRepository, tokenRepo *repository.TokenRepository, tokens *auth.Manager) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		tokenRepo: tokenRepo,
		tokens:    tokens,
	}
}

// Register creates an account
func (s *AuthService) Register(ctx context.Context, in models.Registration) (*models.User, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" {
		return nil, fmt.Errorf("%w: username required", ErrValidation)
	}
	if err := validatePassword(in.Password); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hash,
		Weight:       in.Weight,
		Height:       in.Height,
		CreatedAt:    time.Now(),
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, fmt.Errorf("%w: a user with that username already exists", ErrConflict)
		}
		return nil, err
	}

	logging.Info().Int64("user_id", user.ID).Str("username", user.Username).Msg("user registered")
	return user, nil
}

func validatePassword(password string) error {
	if len(password) < MinPasswordLength {
		return fmt.Errorf("%w: password must contain at least %d characters", ErrValidation, MinPasswordLength)
	}
	if len(password) > auth.MaxPasswordBytes {
		return fmt.Errorf("%w: password must be at most %d bytes", ErrValidation, auth.MaxPasswordBytes)
	}
	allDigits := true
	for _, r := range password {
		if !unicode.IsDigit(r) {
			allDigits = false
			break
		}
	}
	if allDigits {
		return fmt.Errorf("%w: password is entirely numeric", ErrValidation)
	}
	return nil
}

// Login verifies credentials and issues a token pair
func (s *AuthService) Login(ctx context.Context, in models.Credentials) (*auth.TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil || !auth.CheckPassword(user.PasswordHash, in.Password) {
		return nil, fmt.Errorf("%w: no active account found with the given credentials", ErrUnauthorized)
	}

	return s.tokens.Issue(user.ID, user.Username)
}

// Refresh exchanges a refresh token for a new pair. Each refresh token works once.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*auth.TokenPair, error) {
	claims, err := s.tokens.Parse(refreshToken, auth.RefreshToken)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnauthorized, err)
	}

	if err := s.tokenRepo.Revoke(ctx, claims.ID, claims.ExpiresAt.Time); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			logging.Warn().Int64("user_id", claims.UserID).Msg("refresh token reused")
			return nil, fmt.Errorf("%w: token is blacklisted", ErrUnauthorized)
		}
		return nil, err
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user not found", ErrUnauthorized)
	}

	if n, err := s.tokenRepo.PurgeExpired(ctx, time.Now()); err != nil {
		logging.Warn().Err(err).Msg("failed to purge revoked tokens")
	} else if n > 0 {
		logging.Debug().Int64("purged", n).Msg("purged revoked tokens")
	}

	return s.tokens.Issue(user.ID, user.Username)
}

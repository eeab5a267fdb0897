// Package auth implements the login workflow.
package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blueprint/internal/auth"
	"blueprint/internal/domain"
	"blueprint/internal/domain/repositories"
)

// LoginRequest carries the submitted credentials.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// TokenResponse is the issued bearer token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Service authenticates users and issues session tokens.
type Service struct {
	users  repositories.UserRepository
	tokens *auth.TokenService
	logger *slog.Logger
}

// NewService creates the auth service.
func NewService(users repositories.UserRepository, tokens *auth.TokenService, logger *slog.Logger) *Service {
	return &Service{
		users:  users,
		tokens: tokens,
		logger: logger,
	}
}

// Login verifies credentials and issues an access token. Unknown user and
// wrong password both return ErrUnauthorized so the response never reveals
// which check failed.
func (s *Service) Login(ctx context.Context, req *LoginRequest) (*TokenResponse, error) {
	if err := s.validateLoginRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	user, err := s.users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrUnauthorized
		}
		return nil, err
	}

	if !auth.CheckPassword(req.Password, user.PasswordHash) {
		return nil, domain.ErrUnauthorized
	}

	token, err := s.tokens.Issue(user.ID, user.Username)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID, "username", user.Username)

	return &TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(s.tokens.TTL().Seconds()),
	}, nil
}

func (s *Service) validateLoginRequest(req *LoginRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Username, validation.Required),
		validation.Field(&req.Password, validation.Required),
	)
}

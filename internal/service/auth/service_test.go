package auth

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	coreauth "blueprint/internal/auth"
	"blueprint/internal/domain"
	"blueprint/internal/domain/models"
)

// fakeUserRepo implements repositories.UserRepository in memory.
type fakeUserRepo struct {
	byUsername map[string]*models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, user *models.User) error {
	if _, ok := f.byUsername[user.Username]; ok {
		return fmt.Errorf("username %q: %w", user.Username, domain.ErrConflict)
	}
	user.ID = fmt.Sprintf("user-%d", len(f.byUsername)+1)
	f.byUsername[user.Username] = user
	return nil
}

func (f *fakeUserRepo) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	user, ok := f.byUsername[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return user, nil
}

func (f *fakeUserRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	for _, user := range f.byUsername {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, fmt.Errorf("user %s: %w", id, domain.ErrNotFound)
}

func newTestAuthService(t *testing.T) (*Service, *coreauth.TokenService) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tokens, err := coreauth.NewTokenService("test-secret", coreauth.DefaultTokenTTL, logger)
	if err != nil {
		t.Fatalf("NewTokenService failed: %v", err)
	}

	hash, err := coreauth.HashPassword("admin")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}

	repo := &fakeUserRepo{byUsername: map[string]*models.User{}}
	if err := repo.Create(context.Background(), &models.User{
		Username:     "admin",
		PasswordHash: hash,
		CreatedAt:    time.Now(),
	}); err != nil {
		t.Fatalf("seeding fake repo failed: %v", err)
	}

	return NewService(repo, tokens, logger), tokens
}

func TestLogin_Success(t *testing.T) {
	svc, tokens := newTestAuthService(t)

	resp, err := svc.Login(context.Background(), &LoginRequest{Username: "admin", Password: "admin"})
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}

	if resp.TokenType != "bearer" {
		t.Errorf("expected token_type 'bearer', got %q", resp.TokenType)
	}
	if resp.ExpiresIn != 1800 {
		t.Errorf("expected expires_in 1800, got %d", resp.ExpiresIn)
	}

	claims, err := tokens.Verify(resp.AccessToken)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Username != "admin" {
		t.Errorf("expected username claim 'admin', got %q", claims.Username)
	}
}

func TestLogin_GenericUnauthorized(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "nobody", "admin"},
		{"wrong password", "admin", "wrong"},
	}

	// Unknown user and wrong password must be indistinguishable.
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &LoginRequest{Username: tt.username, Password: tt.password})
			if !errors.Is(err, domain.ErrUnauthorized) {
				t.Errorf("expected ErrUnauthorized, got %v", err)
			}
		})
	}
}

func TestLogin_Validation(t *testing.T) {
	svc, _ := newTestAuthService(t)

	tests := []struct {
		name string
		req  LoginRequest
	}{
		{"missing username", LoginRequest{Password: "admin"}},
		{"missing password", LoginRequest{Username: "admin"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), &tt.req)
			if !errors.Is(err, domain.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

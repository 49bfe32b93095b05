// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, enforces rules, orchestrates
//	Repository (Data layer)  → reads/writes to the database
//
// Handlers should only know about HTTP (status codes, headers, JSON).
// Services should only know about business rules (validation, permissions).
// Neither should know about SQL or database details.
//
// DEPENDENCY INJECTION:
// Every service takes repository INTERFACES, not concrete sqlite types.
// In tests we pass in-memory fakes; in production, main.go wires in the
// sqlite implementations. The service doesn't import the sqlite package at all.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/sakif/wordecho/internal/apperror"
	"github.com/sakif/wordecho/internal/auth"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
)

// Validation constants. Named constants (not magic numbers) are easy to
// find, change, and reference in error messages.
const (
	MaxNameLength  = 100
	MaxEmailLength = 254 // RFC 5321 upper bound on address length
)

// UserService handles business logic for user accounts.
type UserService struct {
	repo      repository.UserRepository
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewUserService creates a UserService. The caller decides which
// repository implementation to inject (SQLite in production, a fake in tests).
func NewUserService(repo repository.UserRepository, passwords *auth.PasswordService, logger *slog.Logger) *UserService {
	return &UserService{
		repo:      repo,
		passwords: passwords,
		logger:    logger,
	}
}

// Create registers a new user account.
//
// PASSWORD HANDLING:
// The plaintext password is hashed here, before anything touches the
// repository — the stored record never contains the plaintext. Signup via
// the API (provider "local") requires a password; the OAuth flow calls
// this with an empty password and provider "github", in which case
// PasswordHash stays nil and the database stores NULL.
func (s *UserService) Create(ctx context.Context, name, email, password, provider string) (*model.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)

	if name == "" {
		return nil, apperror.ValidationFailed("name", "name is required")
	}
	if len(name) > MaxNameLength {
		return nil, apperror.ValidationFailed("name",
			fmt.Sprintf("name must be %d characters or less", MaxNameLength))
	}
	if email == "" || !strings.Contains(email, "@") {
		return nil, apperror.ValidationFailed("email", "a valid email is required")
	}
	if len(email) > MaxEmailLength {
		return nil, apperror.ValidationFailed("email",
			fmt.Sprintf("email must be %d characters or less", MaxEmailLength))
	}

	if provider == "" {
		provider = model.ProviderLocal
	}
	if provider == model.ProviderLocal && password == "" {
		return nil, apperror.ValidationFailed("password", "password is required")
	}

	user := &model.User{
		Name:          name,
		Email:         email,
		OAuthProvider: provider,
	}

	if password != "" {
		hash, err := s.passwords.Hash(password)
		if err != nil {
			return nil, fmt.Errorf("creating user: %w", err)
		}
		user.PasswordHash = &hash
	}

	if err := s.repo.Create(ctx, user); err != nil {
		s.logger.Error("failed to create user",
			slog.String("email", email),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("creating user: %w", err)
	}

	s.logger.Info("user created",
		slog.String("id", user.ID),
		slog.String("provider", user.OAuthProvider),
	)

	return user, nil
}

// List returns all users. No pagination — the endpoint mirrors the
// original API surface.
func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		s.logger.Error("failed to list users", slog.String("error", err.Error()))
		return nil, fmt.Errorf("listing users: %w", err)
	}
	return users, nil
}

// GetByID retrieves a user by their internal ID.
// Returns apperror.ErrNotFound if the user doesn't exist.
func (s *UserService) GetByID(ctx context.Context, id string) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}
	return s.repo.GetByID(ctx, id)
}

// Update applies a partial update to a user's profile.
//
// STRATEGY: "Fetch then merge then save"
//  1. Fetch the existing user (NotFound propagates if the ID is unknown)
//  2. Overwrite exactly the fields present in the update — nil pointers
//     mean "not supplied", so those fields keep their stored values
//  3. Persist the merged record
func (s *UserService) Update(ctx context.Context, id string, update model.UserUpdate) (*model.User, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, apperror.ValidationFailed("id", "user ID is required")
	}

	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if update.Name != nil {
		name := strings.TrimSpace(*update.Name)
		if name == "" {
			return nil, apperror.ValidationFailed("name", "name must not be empty")
		}
		if len(name) > MaxNameLength {
			return nil, apperror.ValidationFailed("name",
				fmt.Sprintf("name must be %d characters or less", MaxNameLength))
		}
		user.Name = name
	}
	if update.Email != nil {
		email := strings.TrimSpace(*update.Email)
		if email == "" || !strings.Contains(email, "@") {
			return nil, apperror.ValidationFailed("email", "a valid email is required")
		}
		user.Email = email
	}

	if err := s.repo.Update(ctx, user); err != nil {
		s.logger.Error("failed to update user",
			slog.String("id", id),
			slog.String("error", err.Error()),
		)
		return nil, err
	}

	s.logger.Info("user updated", slog.String("id", user.ID))
	return user, nil
}

// Delete removes a user by ID.
// Returns apperror.ErrNotFound if the user doesn't exist — the handler
// must answer 404, not 500, in that case.
func (s *UserService) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return apperror.ValidationFailed("id", "user ID is required")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("user deleted", slog.String("id", id))
	return nil
}

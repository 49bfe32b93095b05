// Package service — authentication business logic.
//
// AuthService sits between the HTTP handlers and the repository/auth
// utilities:
//
//	AuthHandler (HTTP) → AuthService (business rules) → UserRepository (DB)
//	                   ↘ TokenService (JWT) ↘ PasswordService (bcrypt)
//
// It owns both login flows:
//   - Password login (POST /token): email + password → bcrypt verify → JWT
//   - GitHub OAuth callback: GitHub profile → find-or-create by email → JWT
//
// Neither method touches HTTP — no cookies, no status codes, no chi. The
// handlers translate AuthService results and errors into HTTP responses.
package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/sakif/wordecho/internal/apperror"
	"github.com/sakif/wordecho/internal/auth"
	"github.com/sakif/wordecho/internal/model"
	"github.com/sakif/wordecho/internal/repository"
)

// oauthFallbackName is used when a GitHub profile has no display name set.
const oauthFallbackName = "GitHub User"

// AuthService handles the authentication business logic.
type AuthService struct {
	users     repository.UserRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	logger    *slog.Logger
}

// NewAuthService creates an AuthService with all required dependencies.
// Call this in server.go when wiring the dependency graph.
func NewAuthService(
	users repository.UserRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		tokens:    tokens,
		passwords: passwords,
		logger:    logger,
	}
}

// AuthResult is returned by authentication operations.
// It bundles the user record and the issued JWT together so the caller
// (the HTTP handler) can set the cookie and respond in one step.
type AuthResult struct {
	User  *model.User
	Token string
}

// LoginWithPassword authenticates an email + password pair and issues an
// access token.
//
// FAILURE IS DELIBERATELY UNIFORM:
// Unknown email, OAuth-only account (no password hash), and wrong password
// all produce the same Unauthorized error. Distinguishing them would let
// an attacker probe which emails have accounts.
func (s *AuthService) LoginWithPassword(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("incorrect username or password")
		}
		return nil, fmt.Errorf("service/auth: looking up user by email: %w", err)
	}

	// OAuth-only accounts store NULL for the password — they cannot log
	// in with a password at all.
	if user.PasswordHash == nil {
		return nil, apperror.Unauthorized("incorrect username or password")
	}

	if err := s.passwords.Verify(*user.PasswordHash, password); err != nil {
		return nil, apperror.Unauthorized("incorrect username or password")
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user logged in with password", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// LoginOrRegisterGitHub handles the GitHub OAuth callback.
//
// After the handler exchanges the GitHub code for a GitHubUser profile, it
// calls this method to:
//
//  1. Require a usable email — account creation without one is impossible,
//     so a profile with every address hidden and no primary+verified entry
//     is a hard validation failure (HTTP 400), and no user is created.
//  2. Find an existing user by that email, or create one with no password
//     and provider tag "github".
//  3. Issue a JWT access token for the resulting user.
//
// WHY FIND-OR-CREATE BY EMAIL (not by GitHub ID)?
// The same person may have signed up locally first. Keying on email folds
// their GitHub login into the existing account instead of creating a
// duplicate. The email was verified by GitHub, so the linkage is safe.
func (s *AuthService) LoginOrRegisterGitHub(ctx context.Context, ghUser *auth.GitHubUser) (*AuthResult, error) {
	if ghUser == nil {
		return nil, fmt.Errorf("service/auth: GitHub user must not be nil")
	}

	if ghUser.Email == "" {
		return nil, apperror.ValidationFailed("email",
			"Email is required for GitHub signup but was not provided.")
	}

	user, err := s.users.GetByEmail(ctx, ghUser.Email)
	switch {
	case err == nil:
		// Existing account — log it in, whatever its provider.
	case errors.Is(err, apperror.ErrNotFound):
		name := ghUser.Name
		if name == "" {
			name = oauthFallbackName
		}
		user = &model.User{
			Name:          name,
			Email:         ghUser.Email,
			OAuthProvider: model.ProviderGitHub,
			// PasswordHash stays nil — OAuth accounts have no password
		}
		if err := s.users.Create(ctx, user); err != nil {
			return nil, fmt.Errorf("service/auth: registering GitHub user: %w", err)
		}
		s.logger.Info("user registered via GitHub",
			slog.String("userID", user.ID),
			slog.String("login", ghUser.Login),
		)
	default:
		return nil, fmt.Errorf("service/auth: looking up user by email: %w", err)
	}

	token, err := s.tokens.Generate(user.ID)
	if err != nil {
		return nil, fmt.Errorf("service/auth: generating token for user %s: %w", user.ID, err)
	}

	s.logger.Info("user authenticated via GitHub", slog.String("userID", user.ID))

	return &AuthResult{User: user, Token: token}, nil
}

// GetUserByID returns the user for the given internal ID.
//
// Used by the /api/users/me handler to look up the full user record after
// the middleware validates the JWT and extracts the userID from the
// token's Subject claim.
func (s *AuthService) GetUserByID(ctx context.Context, id string) (*model.User, error) {
	if id == "" {
		return nil, fmt.Errorf("service/auth: user ID must not be empty")
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service/auth: fetching user %s: %w", id, err)
	}

	return user, nil
}

// ValidateToken validates a JWT string and returns the userID it encodes.
//
// Thin delegation to TokenService.Validate, so callers only need to import
// the service package. Returns an error if the token is expired, tampered,
// or otherwise invalid.
func (s *AuthService) ValidateToken(tokenStr string) (string, error) {
	userID, err := s.tokens.Validate(tokenStr)
	if err != nil {
		return "", fmt.Errorf("service/auth: %w", err)
	}
	return userID, nil
}

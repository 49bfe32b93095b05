package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"
)

// AccessTokenCookie is the cookie the OAuth callback stores the JWT in.
// Its value is "Bearer <jwt>" — the same shape as an Authorization header —
// so the frontend can forward it verbatim when it wants to use the header instead.
const AccessTokenCookie = "access_token"

// contextKey is an unexported type used for context keys in this package.
//
// WHY A CUSTOM TYPE FOR CONTEXT KEYS?
// context.WithValue uses any as the key type. If you use a plain string like
// context.WithValue(ctx, "userID", id), ANY package that knows the string "userID"
// can read or shadow your value. Using a package-private type prevents collisions:
// only THIS package can create a key of type contextKey, so only this package
// can read or write userID values in the context.
type contextKey string

const userIDKey contextKey = "userID"

// RequireAuth is a middleware that enforces authentication on protected routes.
//
// It extracts the JWT (Authorization header or access_token cookie),
// validates it, and stores the userID in the request context. If the token
// is missing or invalid, it returns 401 Unauthorized with a
// WWW-Authenticate: Bearer challenge and stops the request chain.
//
// MIDDLEWARE PATTERN IN GO:
// A middleware is a function that takes an http.Handler and returns a new
// http.Handler. The new handler "wraps" the original:
//
//	func Middleware(next http.Handler) http.Handler {
//	    return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//	        // ... do stuff before the handler ...
//	        next.ServeHTTP(w, r)
//	        // ... do stuff after the handler ...
//	    })
//	}
//
// Chi applies middlewares in a chain: req → M1 → M2 → Handler → M2 → M1 → resp
func RequireAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := extractUserID(r, tokens)
			if err != nil {
				w.Header().Set("WWW-Authenticate", "Bearer")
				http.Error(w, `{"error":"unauthorized","message":"valid authentication required"}`, http.StatusUnauthorized)
				return
			}

			// Store userID in context so handlers can read it
			ctx := context.WithValue(r.Context(), userIDKey, userID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// OptionalAuth is a middleware that extracts the user identity if a valid token
// is present, but does NOT block the request if it's missing or invalid.
//
// Use this on public routes like PUT /api/blogs/{id} where the owner can be
// named explicitly via the user_id query parameter but a logged-in caller
// shouldn't have to repeat themselves.
//
// Handlers check for the user via UserIDFromContext — if it returns ("", false),
// the request is anonymous.
func OptionalAuth(tokens *TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID, err := extractUserID(r, tokens); err == nil && userID != "" {
				ctx := context.WithValue(r.Context(), userIDKey, userID)
				r = r.WithContext(ctx)
			}
			// Always continue — no 401 even if no token
			next.ServeHTTP(w, r)
		})
	}
}

// UserIDFromContext retrieves the authenticated user's ID from the request context.
//
// Returns ("", false) if the request is anonymous (no valid token was present).
// Returns (id, true) if the user is authenticated.
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	return id, ok && id != ""
}

// extractUserID locates and validates the JWT on a request.
//
// TOKEN SOURCES, in priority order:
//  1. Authorization: Bearer <jwt>   — API clients (and the /token flow)
//  2. access_token cookie           — browsers, set by the OAuth callback.
//     The cookie VALUE is "Bearer <jwt>", so we strip the prefix here too.
func extractUserID(r *http.Request, tokens *TokenService) (string, error) {
	if raw, ok := bearerValue(r.Header.Get("Authorization")); ok {
		return tokens.Validate(raw)
	}

	cookie, err := r.Cookie(AccessTokenCookie)
	if err != nil {
		// http.ErrNoCookie means no cookie is present — the request is anonymous
		return "", err
	}
	raw, ok := bearerValue(cookie.Value)
	if !ok {
		return "", errors.New("auth: malformed access_token cookie")
	}
	return tokens.Validate(raw)
}

// bearerValue strips the "Bearer " prefix from a credential string.
// The prefix comparison is case-insensitive, per RFC 6750.
func bearerValue(s string) (string, bool) {
	if len(s) > 7 && strings.EqualFold(s[:7], "Bearer ") {
		return strings.TrimSpace(s[7:]), true
	}
	return "", false
}

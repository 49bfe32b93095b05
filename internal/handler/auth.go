package handler

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/rs/xid"

	"github.com/sakif/wordecho/internal/auth"
	"github.com/sakif/wordecho/internal/service"
)

// oauthStateCookie holds the random state between the redirect to GitHub
// and the callback. Short-lived and single-use.
const oauthStateCookie = "oauth_state"

const oauthStateTTL = 10 * time.Minute

// AuthHandler owns every route that issues or revokes access tokens:
// the password login endpoint, the GitHub OAuth flow, and logout.
type AuthHandler struct {
	authService *service.AuthService
	github      *auth.GitHubProvider
	tokens      *auth.TokenService
	frontendURL string
	logger      *slog.Logger
}

// NewAuthHandler creates an AuthHandler. frontendURL is where the OAuth
// callback sends the browser after a successful login.
func NewAuthHandler(
	authService *service.AuthService,
	github *auth.GitHubProvider,
	tokens *auth.TokenService,
	frontendURL string,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		github:      github,
		tokens:      tokens,
		frontendURL: frontendURL,
		logger:      logger,
	}
}

// tokenResponse is the body of a successful password login, shaped like
// the OAuth 2.0 token endpoint response (RFC 6749 §5.1).
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// HandleToken is the password login endpoint.
//
// HTTP: POST /token
// BODY: form-encoded, username=<email>&password=<plaintext>
//
// The field is called "username" but carries the account email — that is
// the OAuth 2.0 password grant's wire format and what standard token
// clients send. Failures answer 401 with a WWW-Authenticate: Bearer
// challenge and never say whether the email or the password was wrong.
func (h *AuthHandler) HandleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid form body",
		})
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")
	if email == "" || password == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "username and password are required",
		})
		return
	}

	result, err := h.authService.LoginWithPassword(r.Context(), email, password)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, tokenResponse{
		AccessToken: result.Token,
		TokenType:   "bearer",
	})
}

// HandleGitHubLogin starts the GitHub OAuth flow.
//
// HTTP: GET /auth/github
//
// Generates a random state, stores it in a short-lived HttpOnly cookie,
// and redirects the browser to GitHub's authorization page. The callback
// compares GitHub's echoed state against the cookie to block CSRF.
func (h *AuthHandler) HandleGitHubLogin(w http.ResponseWriter, r *http.Request) {
	state := xid.New().String()

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/",
		MaxAge:   int(oauthStateTTL.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.github.AuthURL(state), http.StatusTemporaryRedirect)
}

// HandleGitHubCallback completes the GitHub OAuth flow.
//
// HTTP: GET /auth/github/callback?code=...&state=...
//
// Verifies the state cookie, exchanges the code for a GitHub profile,
// finds-or-creates the matching user, and stores the JWT in the
// access_token cookie before sending the browser back to the frontend.
//
// A profile with no resolvable email fails with 400 and creates nothing.
func (h *AuthHandler) HandleGitHubCallback(w http.ResponseWriter, r *http.Request) {
	stateCookie, err := r.Cookie(oauthStateCookie)
	if err != nil || stateCookie.Value == "" || stateCookie.Value != r.URL.Query().Get("state") {
		h.logger.Warn("OAuth state mismatch")
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "invalid OAuth state",
		})
		return
	}

	// Single-use: expire the state cookie whether or not the rest succeeds.
	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	code := r.URL.Query().Get("code")
	if code == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{
			Error: "validation_error", Message: "missing OAuth code",
		})
		return
	}

	ghUser, err := h.github.Exchange(r.Context(), code)
	if err != nil {
		h.logger.Error("OAuth exchange failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusBadGateway, ErrorResponse{
			Error: "oauth_error", Message: "could not complete GitHub login",
		})
		return
	}

	result, err := h.authService.LoginOrRegisterGitHub(r.Context(), ghUser)
	if err != nil {
		writeError(w, err)
		return
	}

	// The cookie value is "Bearer <jwt>", mirroring the Authorization
	// header format, and its lifetime matches the token's.
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    "Bearer " + result.Token,
		Path:     "/",
		MaxAge:   int(h.tokens.TTL().Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	http.Redirect(w, r, h.frontendURL, http.StatusSeeOther)
}

// HandleLogout clears the access_token cookie.
//
// HTTP: POST /auth/logout
//
// JWTs are stateless, so there is nothing to revoke server-side; logout
// means making the browser forget the token.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     auth.AccessTokenCookie,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// HandleRoot is the API's welcome endpoint.
//
// HTTP: GET /
func HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Welcome to the WordEcho - Blogging web application!",
	})
}

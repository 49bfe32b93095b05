package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/github"
)

// GitHubUser is the portion of the GitHub /user API response we care about.
// GitHub returns a much larger object — we only unmarshal the fields we need.
//
// GitHub API docs: https://docs.github.com/en/rest/users/users#get-the-authenticated-user
type GitHubUser struct {
	ID    int64  `json:"id"`    // GitHub's numeric user ID — stable, never changes
	Login string `json:"login"` // GitHub username, e.g. "sakif"
	Name  string `json:"name"`  // Display name (empty if the user never set one)
	Email string `json:"email"` // Primary email (empty if hidden in GitHub settings)
}

// githubEmail is one entry from the GitHub /user/emails API response.
// We only care about which address is the primary, verified one.
type githubEmail struct {
	Email    string `json:"email"`
	Primary  bool   `json:"primary"`
	Verified bool   `json:"verified"`
}

// GitHubProvider wraps golang.org/x/oauth2 for the GitHub Authorization Code flow.
//
// OAUTH 2.0 AUTHORIZATION CODE FLOW:
// 1. Your server redirects the user to GitHub's authorization endpoint,
//    with your ClientID and the requested scopes.
// 2. The user approves (or denies) the authorization request on GitHub.
// 3. GitHub redirects back to your CallbackURL with a short-lived "code".
// 4. Your server exchanges the code for an access token (server-to-server call).
// 5. Your server uses the access token to call the GitHub API for user info.
//
// WHY SERVER-SIDE EXCHANGE?
// The code-for-token exchange happens server-to-server, using your ClientSecret.
// The access token never touches the client's browser. This is more secure than
// the implicit flow where tokens are returned directly to the browser.
type GitHubProvider struct {
	config *oauth2.Config
}

// NewGitHubProvider creates a GitHubProvider with the given credentials.
//
// You get ClientID and ClientSecret by registering an OAuth App at:
// https://github.com/settings/developers → "OAuth Apps" → "New OAuth App"
//
// callbackURL must match the "Authorization callback URL" you configured exactly.
// Example: "http://localhost:8080/auth/github/callback"
//
// Scopes we request:
//   - "read:user" — access to the user's public profile (ID, login, name)
//   - "user:email" — access to the user's email addresses, including the
//     /user/emails endpoint we need when the profile email is hidden
func NewGitHubProvider(clientID, clientSecret, callbackURL string) *GitHubProvider {
	return &GitHubProvider{
		config: &oauth2.Config{
			ClientID:     clientID,
			ClientSecret: clientSecret,
			RedirectURL:  callbackURL,
			Scopes:       []string{"read:user", "user:email"},
			Endpoint:     github.Endpoint, // pre-defined GitHub OAuth endpoints
		},
	}
}

// AuthURL returns the URL to redirect the user to for authorization.
//
// STATE PARAMETER:
// The state is a random string we generate and store in a cookie before
// redirecting. When GitHub calls back, we verify the returned state matches
// our cookie. This prevents CSRF (Cross-Site Request Forgery) attacks where
// an attacker tricks your browser into completing an OAuth flow for their account.
func (p *GitHubProvider) AuthURL(state string) string {
	return p.config.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange completes the OAuth flow: trades the authorization code for a GitHub
// user profile. This is the core of the callback handler.
//
// Steps:
//  1. Exchange the code for an OAuth access token (server-to-server)
//  2. Use the token to call GitHub's /user API endpoint
//  3. If the profile hides the email, fall back to /user/emails and pick
//     the first address that is both primary AND verified
//
// The returned GitHubUser may still have an empty Email — users can hide
// every address. The auth service treats that as a hard failure, because
// an account cannot be created without an email.
func (p *GitHubProvider) Exchange(ctx context.Context, code string) (*GitHubUser, error) {
	// Step 1: exchange authorization code → OAuth access token
	// This makes a POST to GitHub's token endpoint using our ClientSecret.
	// The token is short-lived and scoped to the permissions we requested.
	oauthToken, err := p.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("auth: exchanging OAuth code: %w", err)
	}

	// Step 2: call the GitHub /user API with the token
	// oauth2.Config.Client returns an *http.Client that automatically adds
	// the "Authorization: Bearer <token>" header to every request.
	client := p.config.Client(ctx, oauthToken)

	var ghUser GitHubUser
	if err := getJSON(client, "https://api.github.com/user", &ghUser); err != nil {
		return nil, fmt.Errorf("auth: fetching GitHub profile: %w", err)
	}

	if ghUser.ID == 0 {
		return nil, fmt.Errorf("auth: GitHub returned an invalid user (ID = 0)")
	}

	// Step 3: resolve a usable email if the profile hides it.
	// GitHub users can mark their email private, in which case /user returns
	// email: null. The /user/emails endpoint (gated on the user:email scope)
	// still lists all addresses with primary/verified flags.
	if ghUser.Email == "" {
		var emails []githubEmail
		if err := getJSON(client, "https://api.github.com/user/emails", &emails); err != nil {
			return nil, fmt.Errorf("auth: fetching GitHub emails: %w", err)
		}
		for _, e := range emails {
			if e.Primary && e.Verified {
				ghUser.Email = e.Email
				break
			}
		}
	}

	return &ghUser, nil
}

// getJSON performs an authenticated GET against the GitHub API and decodes
// the JSON response into out. Shared by the profile and email lookups.
func getJSON(client *http.Client, url string, out any) error {
	resp, err := client.Get(url)
	if err != nil {
		return fmt.Errorf("calling %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%s returned status %d", url, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s response: %w", url, err)
	}
	return nil
}

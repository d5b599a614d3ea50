package github

import (
	"fmt"

	"golang.org/x/oauth2"
	ghoauth "golang.org/x/oauth2/github"

	"github.com/custodia-labs/codelens/internal/core/domain"
)

// DefaultScopes are requested when the user signs in.
var DefaultScopes = []string{"repo", "read:user"}

// LoginURL returns the GitHub authorize URL for an OAuth app.
// Exchanging the returned code for a token is left to the caller.
func LoginURL(clientID, redirectURL, state string) (string, error) {
	if clientID == "" {
		return "", fmt.Errorf("%w: GitHub client id is not set", domain.ErrConfig)
	}
	cfg := &oauth2.Config{
		ClientID:    clientID,
		Endpoint:    ghoauth.Endpoint,
		RedirectURL: redirectURL,
		Scopes:      DefaultScopes,
	}
	return cfg.AuthCodeURL(state), nil
}

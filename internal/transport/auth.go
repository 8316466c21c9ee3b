package transport

import (
	"net/http"

	"github.com/agentstation/goseed/pkg/errors"
)

// Authenticator applies authentication to HTTP requests.
type Authenticator interface {
	Apply(req *http.Request) error
}

// NoAuth implements no authentication.
type NoAuth struct{}

// Apply implements the Authenticator interface for NoAuth.
func (a *NoAuth) Apply(_ *http.Request) error {
	return nil
}

// BasicAuth sends the username and API key as HTTP basic credentials,
// which is how the service authenticates API users.
type BasicAuth struct {
	Username string
	APIKey   string
}

// Apply implements the Authenticator interface for BasicAuth.
func (a *BasicAuth) Apply(req *http.Request) error {
	if a.Username == "" || a.APIKey == "" {
		return errors.NewAuthenticationError("basic", "username and API key are required", nil)
	}
	req.SetBasicAuth(a.Username, a.APIKey)
	return nil
}

// BearerAuth implements Bearer token authentication.
type BearerAuth struct {
	Token string
}

// Apply implements the Authenticator interface for BearerAuth.
func (a *BearerAuth) Apply(req *http.Request) error {
	if a.Token == "" {
		return errors.NewAuthenticationError("bearer", "token is required", nil)
	}
	req.Header.Set("Authorization", "Bearer "+a.Token)
	return nil
}

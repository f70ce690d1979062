package auth

import (
	"fmt"
)

// AuthenticationError indicates no access token could be obtained for the
// configured client credentials
type AuthenticationError struct {
	// TokenEndpoint the token was requested from
	TokenEndpoint string

	// Err is the underlying failure, nil if the endpoint answered without a token
	Err error
}

// Error implements the error interface
func (e AuthenticationError) Error() string {
	out := fmt.Sprintf("no access token could be retrieved from %s, double check "+
		"your credentials or create a new client secret", e.TokenEndpoint)

	if e.Err != nil {
		out += fmt.Sprintf(": %s", e.Err.Error())
	}

	return out
}

// Unwrap returns the underlying failure
func (e AuthenticationError) Unwrap() error {
	return e.Err
}

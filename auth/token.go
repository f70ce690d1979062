package auth

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"golang.org/x/oauth2"
	"golang.org/x/oauth2/clientcredentials"
)

// TokenProvider exchanges client credentials for an access token
type TokenProvider struct {
	// HTTPClient is used to call the token endpoint, http.DefaultClient if nil
	HTTPClient *http.Client
}

// AcquireToken requests a token from tokenEndpoint with the OAuth client
// credentials grant. The scope is sent as the resource parameter, which is what
// Azure AD v1 endpoints expect. Failures are not retried.
func (p TokenProvider) AcquireToken(ctx context.Context, tokenEndpoint, clientID,
	clientSecret, scope string) (*oauth2.Token, error) {

	credentials := clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tokenEndpoint,
		AuthStyle:    oauth2.AuthStyleInParams,
		EndpointParams: url.Values{
			"resource": {scope},
		},
	}

	if p.HTTPClient != nil {
		ctx = context.WithValue(ctx, oauth2.HTTPClient, p.HTTPClient)
	}

	token, err := credentials.Token(ctx)
	if err != nil {
		return nil, AuthenticationError{
			TokenEndpoint: tokenEndpoint,
			Err:           err,
		}
	}

	if len(strings.TrimSpace(token.AccessToken)) == 0 {
		return nil, AuthenticationError{TokenEndpoint: tokenEndpoint}
	}

	return token, nil
}

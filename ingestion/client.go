package ingestion

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"net/http"
	"net/url"
	"strings"

	"github.com/kscout/store-submit/logging"
	"github.com/kscout/store-submit/req"

	"github.com/pkg/errors"
	"golang.org/x/oauth2"
)

// Client calls the ingestion API on behalf of one access token
type Client struct {
	// HTTP sends requests. Its transport attaches the access token.
	HTTP *http.Client

	// BaseURL is the API root, relative URLs are resolved against it
	BaseURL *url.URL

	// Logger logs requests at the debug level
	Logger logging.Logger
}

// NewClient creates a Client for the API at serviceURL which authenticates with
// token. Requests are sent with httpClient's transport and timeout, or with
// http.DefaultClient's if httpClient is nil.
func NewClient(serviceURL string, token *oauth2.Token, httpClient *http.Client,
	logger logging.Logger) (*Client, error) {

	baseURL, err := url.Parse(serviceURL)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to parse service URL %s", serviceURL)
	}

	if !strings.HasSuffix(baseURL.Path, "/") {
		baseURL.Path += "/"
	}

	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Client{
		HTTP: &http.Client{
			Timeout: httpClient.Timeout,
			Transport: &oauth2.Transport{
				Source: oauth2.StaticTokenSource(token),
				Base:   httpClient.Transport,
			},
		},
		BaseURL: baseURL,
		Logger:  logger,
	}, nil
}

// Invoke sends a request to relativeURL with body encoded as JSON, and decodes
// the JSON response into dest. A nil body sends no content, a nil dest ignores
// the response content. Returns an APIError if the response status is not 2xx.
// Requests are never retried.
func (c Client) Invoke(ctx context.Context, method, relativeURL string, body,
	dest interface{}) error {

	ref, err := url.Parse(relativeURL)
	if err != nil {
		return errors.Wrapf(err, "failed to parse relative URL %s", relativeURL)
	}
	reqURL := c.BaseURL.ResolveReference(ref)

	var reqBody io.Reader
	var contentLength int64

	if body != nil {
		jsonBody, length, err := req.NewJSONBody(body)
		if err != nil {
			return err
		}

		reqBody = jsonBody
		contentLength = length
	}

	request, err := http.NewRequestWithContext(ctx, method, reqURL.String(), reqBody)
	if err != nil {
		return errors.Wrapf(err, "failed to create %s %s request", method, relativeURL)
	}

	request.ContentLength = contentLength
	request.Header.Set("Accept", "application/json")
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}

	c.Logger.Debugf("%s %s", method, relativeURL)

	resp, err := c.HTTP.Do(request)
	if err != nil {
		return errors.Wrapf(err, "failed to make %s %s request", method, relativeURL)
	}
	defer resp.Body.Close()

	respBytes, err := ioutil.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrapf(err, "failed to read %s %s response body", method,
			relativeURL)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return APIError{
			Method:      method,
			RelativeURL: relativeURL,
			StatusCode:  resp.StatusCode,
			Body:        string(respBytes),
		}
	}

	if dest == nil || len(respBytes) == 0 {
		return nil
	}

	if err := json.Unmarshal(respBytes, dest); err != nil {
		return errors.Wrapf(err, "failed to decode %s %s response body as JSON",
			method, relativeURL)
	}

	return nil
}

// requireID ensures the backend returned an identifier for a resource
func requireID(what, id string) error {
	if len(id) == 0 {
		return fmt.Errorf("%s returned by the API has no id", what)
	}

	return nil
}

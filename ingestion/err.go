package ingestion

import (
	"fmt"
	"net/url"
)

// APIError indicates the ingestion API answered a request with a non-success
// status code
type APIError struct {
	// Method of the failed request
	Method string

	// RelativeURL of the failed request
	RelativeURL string

	// StatusCode of the response
	StatusCode int

	// Body of the response
	Body string
}

// Error implements the error interface
func (e APIError) Error() string {
	return fmt.Sprintf("%s %s failed with status %d: %s", e.Method, e.RelativeURL,
		e.StatusCode, e.Body)
}

// UploadError indicates a package could not be uploaded to blob storage
type UploadError struct {
	// FilePath of the package
	FilePath string

	// URL the package was uploaded to, without its query so the SAS signature
	// is not logged
	URL string

	// Err is the underlying failure
	Err error
}

// Error implements the error interface
func (e UploadError) Error() string {
	return fmt.Sprintf("failed to upload %s to %s: %s", e.FilePath, e.URL, e.Err.Error())
}

// Unwrap returns the underlying failure
func (e UploadError) Unwrap() error {
	return e.Err
}

// redactURL strips the query and fragment of rawURL
func redactURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "<invalid url>"
	}

	u.RawQuery = ""
	u.Fragment = ""

	return u.String()
}

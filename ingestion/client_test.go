package ingestion

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/kscout/store-submit/ingestiontest"
	"github.com/kscout/store-submit/logging"
	"github.com/kscout/store-submit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

// newTestClient returns a Client authenticated against server
func newTestClient(t *testing.T, server *ingestiontest.Server, token string) *Client {
	client, err := NewClient(server.URL, &oauth2.Token{AccessToken: token},
		&http.Client{Timeout: 10 * time.Second}, &logging.Recorder{})
	require.NoError(t, err)

	return client
}

func TestSubmissionURLs(t *testing.T) {
	assert.Equal(t, "v1.0/my/applications/9WZ", ApplicationURL("9WZ"))
	assert.Equal(t, "v1.0/my/applications/9WZ/submissions", SubmissionsURL("9WZ"))
	assert.Equal(t, "v1.0/my/applications/9WZ/submissions/1", SubmissionURL("9WZ", "1"))
	assert.Equal(t, "v1.0/my/applications/9WZ/submissions/1/commit", CommitURL("9WZ", "1"))
	assert.Equal(t, "v1.0/my/applications/9WZ/submissions/1/status", StatusURL("9WZ", "1"))
}

func TestNewClientKeepsServicePath(t *testing.T) {
	client, err := NewClient("https://example.com/store", &oauth2.Token{AccessToken: "t"},
		nil, &logging.Recorder{})
	require.NoError(t, err)

	assert.Equal(t, "/store/", client.BaseURL.Path)
}

func TestGetApplication(t *testing.T) {
	server := ingestiontest.NewServer(ingestiontest.Options{
		Application: ingestiontest.Application("9WZ", "100", "200"),
	})
	defer server.Close()

	app, err := newTestClient(t, server, ingestiontest.AccessToken).
		GetApplication(context.Background(), "9WZ")
	require.NoError(t, err)

	assert.Equal(t, "9WZ", app.ID)
	require.NotNil(t, app.LastPublishedApplicationSubmission)
	assert.Equal(t, "100", app.LastPublishedApplicationSubmission.ID)
	require.NotNil(t, app.PendingApplicationSubmission)
	assert.Equal(t, "200", app.PendingApplicationSubmission.ID)
}

func TestInvokeAPIError(t *testing.T) {
	server := ingestiontest.NewServer(ingestiontest.Options{})
	defer server.Close()

	_, err := newTestClient(t, server, "wrong-token").GetApplication(context.Background(), "9WZ")
	require.Error(t, err)

	var apiErr APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	assert.Equal(t, http.MethodGet, apiErr.Method)
	assert.Contains(t, apiErr.Body, "Unauthorized")
}

func TestSubmissionLifecycle(t *testing.T) {
	server := ingestiontest.NewServer(ingestiontest.Options{
		ClonedSubmission: ingestiontest.Submission("S1", 2),
		Statuses: []ingestiontest.Doc{
			ingestiontest.Status("CommitStarted", nil, nil),
		},
	})
	defer server.Close()

	ctx := context.Background()
	client := newTestClient(t, server, ingestiontest.AccessToken)

	submission, err := client.CreateSubmission(ctx, "9WZ")
	require.NoError(t, err)
	assert.Equal(t, "S1", submission.ID)
	assert.Len(t, submission.ApplicationPackages, 2)
	assert.NotEmpty(t, submission.FileUploadURL)

	submission.NotesForCertification = "from CI"
	updated, err := client.UpdateSubmission(ctx, "9WZ", *submission)
	require.NoError(t, err)
	assert.Equal(t, "from CI", updated.NotesForCertification)

	fetched, err := client.GetSubmission(ctx, "9WZ", "S1")
	require.NoError(t, err)
	assert.Equal(t, "S1", fetched.ID)

	require.NoError(t, client.CommitSubmission(ctx, "9WZ", "S1"))

	status, err := client.GetSubmissionStatus(ctx, "9WZ", "S1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusCommitStarted, status.Status)

	require.NoError(t, client.DeleteSubmission(ctx, "9WZ", "S1"))

	assert.Equal(t, []string{
		ingestiontest.RouteCreateSubmission,
		ingestiontest.RouteUpdateSubmission,
		ingestiontest.RouteGetSubmission,
		ingestiontest.RouteCommitSubmission,
		ingestiontest.RouteSubmissionStatus,
		ingestiontest.RouteDeleteSubmission,
	}, server.Routes())

	// Members the client does not model are sent back on update
	var sent map[string]interface{}
	require.NoError(t, json.Unmarshal(server.CallsTo(ingestiontest.RouteUpdateSubmission)[0].Body, &sent))
	assert.Contains(t, sent, "listings")
	assert.Equal(t, "BooksAndReference_EReader", sent["applicationCategory"])
}

func TestCreateSubmissionWithoutID(t *testing.T) {
	server := ingestiontest.NewServer(ingestiontest.Options{
		ClonedSubmission: ingestiontest.Doc{"id": "", "fileUploadUrl": "x"},
	})
	defer server.Close()

	_, err := newTestClient(t, server, ingestiontest.AccessToken).
		CreateSubmission(context.Background(), "9WZ")
	assert.Error(t, err)
}

func TestInvokeHonorsContext(t *testing.T) {
	server := ingestiontest.NewServer(ingestiontest.Options{})
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(t, server, ingestiontest.AccessToken).GetApplication(ctx, "9WZ")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

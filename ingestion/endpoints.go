package ingestion

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/kscout/store-submit/models"
)

// APIVersion is the version segment of ingestion API URLs
const APIVersion = "v1.0"

// Tenant is the tenant segment of ingestion API URLs, "my" designates the
// tenant of the access token
const Tenant = "my"

// ApplicationURL returns the relative URL of an application
func ApplicationURL(appID string) string {
	return fmt.Sprintf("%s/%s/applications/%s", APIVersion, Tenant, url.PathEscape(appID))
}

// SubmissionsURL returns the relative URL of an application's submissions
func SubmissionsURL(appID string) string {
	return ApplicationURL(appID) + "/submissions"
}

// SubmissionURL returns the relative URL of a submission
func SubmissionURL(appID, submissionID string) string {
	return SubmissionsURL(appID) + "/" + url.PathEscape(submissionID)
}

// CommitURL returns the relative URL which commits a submission
func CommitURL(appID, submissionID string) string {
	return SubmissionURL(appID, submissionID) + "/commit"
}

// StatusURL returns the relative URL of a submission's status
func StatusURL(appID, submissionID string) string {
	return SubmissionURL(appID, submissionID) + "/status"
}

// GetApplication retrieves an application
func (c Client) GetApplication(ctx context.Context, appID string) (*models.Application, error) {
	var app models.Application
	if err := c.Invoke(ctx, http.MethodGet, ApplicationURL(appID), nil, &app); err != nil {
		return nil, err
	}

	return &app, nil
}

// CreateSubmission creates a new submission for an application. The backend
// clones the last published submission.
func (c Client) CreateSubmission(ctx context.Context, appID string) (*models.Submission, error) {
	var submission models.Submission
	if err := c.Invoke(ctx, http.MethodPost, SubmissionsURL(appID), nil, &submission); err != nil {
		return nil, err
	}

	if err := requireID("created submission", submission.ID); err != nil {
		return nil, err
	}

	return &submission, nil
}

// GetSubmission retrieves a submission
func (c Client) GetSubmission(ctx context.Context, appID, submissionID string) (*models.Submission, error) {
	var submission models.Submission
	if err := c.Invoke(ctx, http.MethodGet, SubmissionURL(appID, submissionID), nil,
		&submission); err != nil {
		return nil, err
	}

	return &submission, nil
}

// UpdateSubmission replaces a submission with the provided one and returns the
// submission as stored by the backend
func (c Client) UpdateSubmission(ctx context.Context, appID string,
	submission models.Submission) (*models.Submission, error) {

	var updated models.Submission
	if err := c.Invoke(ctx, http.MethodPut, SubmissionURL(appID, submission.ID),
		submission, &updated); err != nil {
		return nil, err
	}

	return &updated, nil
}

// DeleteSubmission deletes a submission which was not committed yet
func (c Client) DeleteSubmission(ctx context.Context, appID, submissionID string) error {
	return c.Invoke(ctx, http.MethodDelete, SubmissionURL(appID, submissionID), nil, nil)
}

// CommitSubmission starts processing of a submission. Processing is
// asynchronous, use GetSubmissionStatus to follow it.
func (c Client) CommitSubmission(ctx context.Context, appID, submissionID string) error {
	return c.Invoke(ctx, http.MethodPost, CommitURL(appID, submissionID), nil, nil)
}

// GetSubmissionStatus retrieves the status of a submission
func (c Client) GetSubmissionStatus(ctx context.Context, appID,
	submissionID string) (*models.SubmissionStatus, error) {

	var status models.SubmissionStatus
	if err := c.Invoke(ctx, http.MethodGet, StatusURL(appID, submissionID), nil,
		&status); err != nil {
		return nil, err
	}

	return &status, nil
}

package jobs

import (
	"fmt"
	"time"
)

// PreconditionError indicates the application cannot receive submissions
// through the API because it was never published
type PreconditionError struct {
	// ApplicationID of the application
	ApplicationID string
}

// Error implements the error interface
func (e PreconditionError) Error() string {
	return fmt.Sprintf("application %s has no published submission, at least one "+
		"submission must be published through the dashboard before submissions "+
		"can be created through the API", e.ApplicationID)
}

// PollingTimeoutError indicates the backend did not finish processing a
// committed submission in time. The submission may still succeed.
type PollingTimeoutError struct {
	// SubmissionID of the committed submission
	SubmissionID string

	// Timeout which elapsed
	Timeout time.Duration

	// LastStatus is the last status received, empty if none was
	LastStatus string
}

// Error implements the error interface
func (e PollingTimeoutError) Error() string {
	return fmt.Sprintf("submission %s was still being processed after %s, last "+
		"status: \"%s\"", e.SubmissionID, e.Timeout, e.LastStatus)
}

// AbandonedError indicates the caller cancelled the run while it waited for a
// committed submission to be processed. The submission may still succeed.
type AbandonedError struct {
	// SubmissionID of the committed submission
	SubmissionID string

	// Err is the context error
	Err error
}

// Error implements the error interface
func (e AbandonedError) Error() string {
	return fmt.Sprintf("stopped waiting for submission %s to be processed: %s",
		e.SubmissionID, e.Err.Error())
}

// Unwrap returns the context error
func (e AbandonedError) Unwrap() error {
	return e.Err
}

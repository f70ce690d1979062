package models

// Application is an app registered in the store, as returned by the get
// application endpoint
type Application struct {
	// ID is the store ID of the application
	ID string `json:"id"`

	// PrimaryName is the name the application is listed under
	PrimaryName string `json:"primaryName"`

	// LastPublishedApplicationSubmission references the submission currently
	// live in the store. Nil if the app was never published.
	LastPublishedApplicationSubmission *SubmissionRef `json:"lastPublishedApplicationSubmission"`

	// PendingApplicationSubmission references the open submission of the app,
	// nil if there is none. The store allows at most one.
	PendingApplicationSubmission *SubmissionRef `json:"pendingApplicationSubmission"`
}

// SubmissionRef points at a submission from an Application
type SubmissionRef struct {
	// ID of the submission
	ID string `json:"id"`

	// ResourceLocation is the submission's path relative to the API root
	ResourceLocation string `json:"resourceLocation"`
}

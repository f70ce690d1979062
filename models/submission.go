package models

// Submission status values. These are backend contract values and are compared
// case sensitively.
const (
	// StatusCommitStarted indicates the backend is still processing a commit
	StatusCommitStarted = "CommitStarted"

	// StatusCommitFailed indicates the backend rejected the committed submission
	StatusCommitFailed = "CommitFailed"
)

// Package file status values
const (
	// FileStatusPendingUpload marks a package which is uploaded with the submission
	FileStatusPendingUpload = "PendingUpload"

	// FileStatusPendingDelete marks a package which will be removed when the
	// submission is committed
	FileStatusPendingDelete = "PendingDelete"
)

// Submission is a store submission: the packages and metadata of one app
// version going through certification.
//
// Only the fields the submission process reads or writes are declared. Any
// other member of the JSON document is kept and written back by MarshalJSON,
// so updating a submission does not drop data owned by the backend.
type Submission struct {
	// ID of the submission
	ID string `json:"id"`

	// FriendlyName is the name of the submission shown in the dashboard
	FriendlyName string `json:"friendlyName,omitempty"`

	// Status is the lifecycle status of the submission
	Status string `json:"status,omitempty"`

	// StatusDetails holds warnings and errors the backend reports for the submission
	StatusDetails *StatusDetails `json:"statusDetails,omitempty"`

	// NotesForCertification are read by the certification team
	NotesForCertification string `json:"notesForCertification"`

	// FileUploadURL is a pre-signed blob URL the packages must be uploaded to.
	// Only valid until the submission is committed.
	FileUploadURL string `json:"fileUploadUrl,omitempty"`

	// ApplicationPackages are the binaries of the submission
	ApplicationPackages []Package `json:"applicationPackages"`

	extra extraFields
}

type plainSubmission Submission

// UnmarshalJSON implements json.Unmarshaler
func (s *Submission) UnmarshalJSON(b []byte) error {
	var p plainSubmission
	extra, err := decodeWithExtra(b, &p)
	if err != nil {
		return err
	}

	*s = Submission(p)
	s.extra = extra

	return nil
}

// MarshalJSON implements json.Marshaler
func (s Submission) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainSubmission(s), s.extra)
}

// Package is one binary attached to a submission
type Package struct {
	// FileName is the name of the package file inside the uploaded archive
	FileName string `json:"fileName"`

	// FileStatus is one of the FileStatus constants or another backend defined value
	FileStatus string `json:"fileStatus"`

	// MinimumDirectXVersion required by the package
	MinimumDirectXVersion string `json:"minimumDirectXVersion,omitempty"`

	// MinimumSystemRAM required by the package
	MinimumSystemRAM string `json:"minimumSystemRam,omitempty"`

	extra extraFields
}

type plainPackage Package

// UnmarshalJSON implements json.Unmarshaler
func (p *Package) UnmarshalJSON(b []byte) error {
	var plain plainPackage
	extra, err := decodeWithExtra(b, &plain)
	if err != nil {
		return err
	}

	*p = Package(plain)
	p.extra = extra

	return nil
}

// MarshalJSON implements json.Marshaler
func (p Package) MarshalJSON() ([]byte, error) {
	return encodeWithExtra(plainPackage(p), p.extra)
}

// SubmissionStatus is returned by the submission status endpoint
type SubmissionStatus struct {
	// Status of the submission
	Status string `json:"status"`

	// StatusDetails holds warnings and errors the backend reports
	StatusDetails *StatusDetails `json:"statusDetails"`
}

// SubmissionResult is the outcome of a submission run
type SubmissionResult struct {
	// RunID identifies the run in logs
	RunID string `json:"runId"`

	// ID of the created submission
	ID string `json:"id"`

	// FriendlyName of the created submission
	FriendlyName string `json:"friendlyName"`

	// Status is the terminal status reported by the backend
	Status string `json:"status"`
}

// Failed returns true if the backend rejected the submission
func (r SubmissionResult) Failed() bool {
	return r.Status == StatusCommitFailed
}

package models

// SeverityT is the severity of a StatusDetail
type SeverityT string

// SeverityWarning is the severity of entries in StatusDetails.Warnings
const SeverityWarning SeverityT = "warning"

// SeverityError is the severity of entries in StatusDetails.Errors
const SeverityError SeverityT = "error"

// StatusDetails holds the diagnostics the backend attaches to a submission
type StatusDetails struct {
	// Errors block the submission
	Errors []StatusDetail `json:"errors"`

	// Warnings do not block the submission
	Warnings []StatusDetail `json:"warnings"`
}

// StatusDetail is a single diagnostic
type StatusDetail struct {
	// Code identifies the kind of diagnostic, ex., InvalidParameterValue
	Code string `json:"code"`

	// Message is a human readable description
	Message string `json:"details"`

	// Severity is derived from the list the entry was found in
	Severity SeverityT `json:"-"`
}

// All returns the warnings followed by the errors, with Severity set
func (d *StatusDetails) All() []StatusDetail {
	if d == nil {
		return nil
	}

	all := []StatusDetail{}

	for _, warning := range d.Warnings {
		warning.Severity = SeverityWarning
		all = append(all, warning)
	}

	for _, e := range d.Errors {
		e.Severity = SeverityError
		all = append(all, e)
	}

	return all
}

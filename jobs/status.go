package jobs

import (
	"github.com/kscout/store-submit/logging"
	"github.com/kscout/store-submit/models"
)

// StatusReporter logs the warnings and errors the backend attaches to its
// responses. A code is only logged the first time it is seen, backend
// responses repeat the diagnostics of earlier ones.
//
// A StatusReporter belongs to a single submission run.
type StatusReporter struct {
	// Logger diagnostics are logged to
	Logger logging.Logger

	// seenWarnings holds the codes of the warnings which were logged
	seenWarnings map[string]bool

	// seenErrors holds the codes of the errors which were logged
	seenErrors map[string]bool
}

// NewStatusReporter creates a StatusReporter which has not seen any code
func NewStatusReporter(logger logging.Logger) *StatusReporter {
	return &StatusReporter{
		Logger:       logger,
		seenWarnings: map[string]bool{},
		seenErrors:   map[string]bool{},
	}
}

// Report logs the entries of details with a code which was not logged before,
// warnings at the warn level and errors at the error level. Returns the
// entries which were logged. details can be nil.
func (r *StatusReporter) Report(details *models.StatusDetails) []models.StatusDetail {
	reported := []models.StatusDetail{}

	for _, detail := range details.All() {
		seen := r.seenWarnings
		log := r.Logger.Warnf
		if detail.Severity == models.SeverityError {
			seen = r.seenErrors
			log = r.Logger.Errorf
		}

		if seen[detail.Code] {
			continue
		}

		log("[%s] %s", detail.Code, detail.Message)
		seen[detail.Code] = true

		reported = append(reported, detail)
	}

	return reported
}

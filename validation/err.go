package validation

import (
	"fmt"
)

// ConfigurationError indicates a setting required by a submission run is
// missing or invalid. It is returned before any network request is made.
type ConfigurationError struct {
	// Field is the settings file name of the offending setting, ex., clientId
	Field string

	// Reason describes what is wrong with the value
	Reason string

	// EnvVar is the environment variable the setting can also be provided
	// with, empty if there is none
	EnvVar string
}

// Error implements the error interface
func (e ConfigurationError) Error() string {
	out := fmt.Sprintf("invalid configuration: %s %s", e.Field, e.Reason)

	if len(e.EnvVar) > 0 {
		out += fmt.Sprintf(", either set it or define the %s environment variable",
			e.EnvVar)
	}

	return out
}

package validation

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/kscout/store-submit/config"

	"gopkg.in/go-playground/validator.v9"
)

// envVars maps settings which are usually provided through the environment to
// their variable name
var envVars = map[string]string{
	"clientId":     "WINDOWSAPPSTORE_CLIENT_ID",
	"clientSecret": "WINDOWSAPPSTORE_CLIENT_SECRET",
	"tenantId":     "WINDOWSAPPSTORE_TENANT_ID",
}

// jsonFieldName makes the validator report fields by their settings file name
func jsonFieldName(field reflect.StructField) string {
	name := strings.Split(field.Tag.Get("json"), ",")[0]
	if name == "-" || len(name) == 0 {
		return field.Name
	}

	return name
}

// reason returns a description of why a validation tag failed
func reason(fieldErr validator.FieldError) string {
	switch fieldErr.Tag() {
	case "required":
		return "is required"
	case "url":
		return fmt.Sprintf("must be a URL, got \"%v\"", fieldErr.Value())
	case "oneof":
		return fmt.Sprintf("must be one of [%s], got \"%v\"", fieldErr.Param(),
			fieldErr.Value())
	default:
		return fmt.Sprintf("failed the %s check", fieldErr.Tag())
	}
}

// ValidateConfig ensures a Config holds every setting a submission run needs.
// Returns a ConfigurationError naming the first offending field.
func ValidateConfig(cfg config.Config) error {
	validate := validator.New()
	validate.RegisterTagNameFunc(jsonFieldName)

	if err := validate.Struct(cfg); err != nil {
		fieldErrs, ok := err.(validator.ValidationErrors)
		if !ok || len(fieldErrs) == 0 {
			return fmt.Errorf("failed to validate configuration: %s", err.Error())
		}

		field := fieldErrs[0].Field()

		return ConfigurationError{
			Field:  field,
			Reason: reason(fieldErrs[0]),
			EnvVar: envVars[field],
		}
	}

	// The tenant is only used to build the token endpoint
	if len(cfg.TenantID) == 0 && len(cfg.TokenEndpoint) == 0 {
		return ConfigurationError{
			Field:  "tenantId",
			Reason: "is required when tokenEndpoint is not set",
			EnvVar: envVars["tenantId"],
		}
	}

	return nil
}

package config

import (
	"encoding/json"
	"fmt"
	"io/ioutil"
	"strings"
	"time"

	"github.com/ghodss/yaml"
	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment variables read by NewConfig, ex.,
// WINDOWSAPPSTORE_CLIENT_ID
const EnvPrefix = "windowsappstore"

// DefaultServiceURL is the root of the production ingestion API
const DefaultServiceURL = "https://manage.devcenter.microsoft.com"

// DefaultTokenEndpoint is the token endpoint used when none is configured. The
// tenantIDPlaceholder is replaced by Config.TenantID.
const DefaultTokenEndpoint = "https://login.microsoftonline.com/" + tenantIDPlaceholder +
	"/oauth2/token"

// DefaultScope is the resource scope of the production ingestion API
const DefaultScope = "https://manage.devcenter.microsoft.com"

// DefaultPublishMode is used when Config.PublishMode is empty
const DefaultPublishMode = "Manual"

const tenantIDPlaceholder = "<tenantid>"

// Default durations
const (
	DefaultPollInterval  = 5 * time.Second
	DefaultPollTimeout   = 2 * time.Hour
	DefaultHTTPTimeout   = 100 * time.Second
	DefaultUploadTimeout = time.Hour
)

// Config holds the settings of a submission run. Values are resolved by
// NewConfig and Load, the submission packages only ever read a Config.
//
// JSON tags name keys in a settings file, envconfig derives environment
// variable names from field names.
type Config struct {
	// ApplicationID is the store ID of the application, ex., 9WZANCRD4AMD
	ApplicationID string `json:"applicationId" split_words:"true" validate:"required"`

	// ClientID of the Azure AD application used to call the ingestion API
	ClientID string `json:"clientId" split_words:"true" validate:"required"`

	// ClientSecret of the Azure AD application
	ClientSecret string `json:"clientSecret" split_words:"true" validate:"required"`

	// TenantID of the Azure AD application. Can be left empty if TokenEndpoint is set.
	TenantID string `json:"tenantId" split_words:"true"`

	// ServiceURL is the ingestion API root
	ServiceURL string `json:"serviceUrl" split_words:"true" validate:"omitempty,url"`

	// TokenEndpoint is the OAuth token endpoint. Derived from TenantID if empty.
	TokenEndpoint string `json:"tokenEndpoint" split_words:"true" validate:"omitempty,url"`

	// Scope is the resource requested with the token
	Scope string `json:"scope" split_words:"true"`

	// NotesForCertification are set on the new submission
	NotesForCertification string `json:"notesForCertification" split_words:"true"`

	// IsMandatory marks the version as a mandatory update
	IsMandatory *bool `json:"isMandatory,omitempty" split_words:"true"`

	// IsPrivate marks the version as private
	IsPrivate *bool `json:"isPrivate,omitempty" split_words:"true"`

	// PublishMode is Manual or Automatic
	PublishMode string `json:"publishMode" split_words:"true" validate:"omitempty,oneof=Manual Automatic"`

	// PollInterval is the wait between two submission status requests
	PollInterval Duration `json:"pollInterval" split_words:"true"`

	// PollTimeout bounds the time spent waiting for the commit to be processed.
	// Zero selects DefaultPollTimeout, a negative value waits until the backend
	// finishes.
	PollTimeout Duration `json:"pollTimeout" split_words:"true"`

	// HTTPTimeout bounds a single ingestion API or token request
	HTTPTimeout Duration `json:"httpTimeout" split_words:"true"`

	// UploadTimeout bounds the upload of the package to blob storage
	UploadTimeout Duration `json:"uploadTimeout" split_words:"true"`
}

// NewConfig loads configuration values from environment variables and fills in defaults
func NewConfig() (*Config, error) {
	return Load("")
}

// Load reads the settings file at path, if path is not empty, then overrides
// its values with environment variables and fills in defaults.
func Load(path string) (*Config, error) {
	var config Config

	if len(path) > 0 {
		if err := config.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := envconfig.Process(EnvPrefix, &config); err != nil {
		return nil, fmt.Errorf("error loading values from environment variables: %s",
			err.Error())
	}

	config.ApplyDefaults()

	return &config, nil
}

// loadFile decodes a YAML or JSON settings file into c
func (c *Config) loadFile(path string) error {
	fileBytes, err := ioutil.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read settings file %s: %s", path, err.Error())
	}

	if err := yaml.Unmarshal(fileBytes, c); err != nil {
		return fmt.Errorf("failed to parse settings file %s: %s", path, err.Error())
	}

	return nil
}

// ApplyDefaults sets every empty optional field to its default value. Calling
// it again leaves c unchanged.
func (c *Config) ApplyDefaults() {
	if len(c.ServiceURL) == 0 {
		c.ServiceURL = DefaultServiceURL
	}

	if len(c.Scope) == 0 {
		c.Scope = DefaultScope
	}

	if len(c.PublishMode) == 0 {
		c.PublishMode = DefaultPublishMode
	}

	if c.PollInterval.Duration <= 0 {
		c.PollInterval.Duration = DefaultPollInterval
	}

	// A negative poll timeout is kept, it removes the bound
	if c.PollTimeout.Duration == 0 {
		c.PollTimeout.Duration = DefaultPollTimeout
	}

	if c.HTTPTimeout.Duration <= 0 {
		c.HTTPTimeout.Duration = DefaultHTTPTimeout
	}

	if c.UploadTimeout.Duration <= 0 {
		c.UploadTimeout.Duration = DefaultUploadTimeout
	}
}

// GetTokenEndpoint returns TokenEndpoint, or the default endpoint for TenantID if
// TokenEndpoint is empty. Returns an empty string if neither is set.
func (c Config) GetTokenEndpoint() string {
	if len(c.TokenEndpoint) > 0 {
		return c.TokenEndpoint
	}

	if len(c.TenantID) == 0 {
		return ""
	}

	return strings.Replace(DefaultTokenEndpoint, tenantIDPlaceholder, c.TenantID, 1)
}

// String returns a log safe version of Config in string form. Redacts any sensative fields.
func (c Config) String() (string, error) {
	if c.ClientSecret != "" {
		c.ClientSecret = "REDACTED_NOT_EMPTY"
	}

	configBytes, err := json.Marshal(c)
	if err != nil {
		return "", fmt.Errorf("failed to convert configuration into JSON: %s", err.Error())
	}

	return string(configBytes), nil
}

package validation

import (
	"testing"

	"github.com/kscout/store-submit/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() config.Config {
	cfg := config.Config{
		ApplicationID: "9WZANCRD4AMD",
		ClientID:      "client",
		ClientSecret:  "secret",
		TenantID:      "tenant",
	}
	cfg.ApplyDefaults()

	return cfg
}

func TestValidateConfigAcceptsCompleteConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig()))
}

func TestValidateConfigNamesMissingField(t *testing.T) {
	tests := []struct {
		name   string
		clear  func(*config.Config)
		field  string
		envVar string
	}{
		{"application id", func(c *config.Config) { c.ApplicationID = "" }, "applicationId", ""},
		{"client id", func(c *config.Config) { c.ClientID = "" }, "clientId", "WINDOWSAPPSTORE_CLIENT_ID"},
		{"client secret", func(c *config.Config) { c.ClientSecret = "" }, "clientSecret", "WINDOWSAPPSTORE_CLIENT_SECRET"},
		{"tenant id", func(c *config.Config) { c.TenantID = "" }, "tenantId", "WINDOWSAPPSTORE_TENANT_ID"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			cfg := validConfig()
			test.clear(&cfg)

			err := ValidateConfig(cfg)
			require.Error(t, err)

			cfgErr, ok := err.(ConfigurationError)
			require.True(t, ok, "expected a ConfigurationError, got %T", err)
			assert.Equal(t, test.field, cfgErr.Field)
			assert.Equal(t, test.envVar, cfgErr.EnvVar)
			assert.Contains(t, cfgErr.Error(), test.field)
		})
	}
}

func TestValidateConfigTokenEndpointImpliesTenant(t *testing.T) {
	cfg := validConfig()
	cfg.TenantID = ""
	cfg.TokenEndpoint = "https://login.example.com/oauth2/token"

	assert.NoError(t, ValidateConfig(cfg))
}

func TestValidateConfigRejectsUnknownPublishMode(t *testing.T) {
	cfg := validConfig()
	cfg.PublishMode = "Whenever"

	err := ValidateConfig(cfg)
	require.Error(t, err)

	cfgErr, ok := err.(ConfigurationError)
	require.True(t, ok)
	assert.Equal(t, "publishMode", cfgErr.Field)
}

func TestValidateConfigRejectsBadServiceURL(t *testing.T) {
	cfg := validConfig()
	cfg.ServiceURL = "not a url"

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.IsType(t, ConfigurationError{}, err)
}

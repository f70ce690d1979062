package main

import (
	"io/ioutil"
	"path/filepath"
	"testing"
	"time"

	"github.com/kscout/store-submit/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/urfave/cli"
)

// submitCall holds the arguments a submitFunc received
type submitCall struct {
	cfg         *config.Config
	packagePath string
	metricsFile string
}

// runApp runs the CLI with args and returns what the submission received, nil
// if it was not called
func runApp(t *testing.T, args ...string) (*submitCall, error) {
	exiter, errWriter := cli.OsExiter, cli.ErrWriter
	t.Cleanup(func() {
		cli.OsExiter, cli.ErrWriter = exiter, errWriter
	})

	exitCode := 0
	cli.OsExiter = func(code int) { exitCode = code }
	cli.ErrWriter = ioutil.Discard

	var call *submitCall
	app := newApp(func(cfg *config.Config, packagePath, metricsFile string) error {
		call = &submitCall{
			cfg:         cfg,
			packagePath: packagePath,
			metricsFile: metricsFile,
		}
		return nil
	})

	err := app.Run(append([]string{"store-submit"}, args...))
	if err == nil {
		assert.Equal(t, 0, exitCode)
	}

	return call, err
}

func TestFlagsOverrideEnvironment(t *testing.T) {
	t.Setenv("WINDOWSAPPSTORE_CLIENT_ID", "env-client")
	t.Setenv("WINDOWSAPPSTORE_CLIENT_SECRET", "env-secret")

	call, err := runApp(t,
		"--client-id", "flag-client",
		"--application-id", "9WZANCRD4AMD",
		"--private",
		"--poll-interval", "1s",
		"--poll-timeout=-1s",
		"--metrics-file", "/tmp/metrics.prom",
		"app.appxbundle")
	require.NoError(t, err)
	require.NotNil(t, call)

	assert.Equal(t, "app.appxbundle", call.packagePath)
	assert.Equal(t, "/tmp/metrics.prom", call.metricsFile)

	assert.Equal(t, "flag-client", call.cfg.ClientID)
	assert.Equal(t, "env-secret", call.cfg.ClientSecret)
	assert.Equal(t, "9WZANCRD4AMD", call.cfg.ApplicationID)
	require.NotNil(t, call.cfg.IsPrivate)
	assert.True(t, *call.cfg.IsPrivate)
	assert.Nil(t, call.cfg.IsMandatory)
	assert.Equal(t, time.Second, call.cfg.PollInterval.Duration)
	assert.Equal(t, -time.Second, call.cfg.PollTimeout.Duration)
	assert.Equal(t, config.DefaultHTTPTimeout, call.cfg.HTTPTimeout.Duration)
}

func TestConfigFileIsRead(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("applicationId: from-file\n"), 0600))

	call, err := runApp(t, "--config", path, "app.appxbundle")
	require.NoError(t, err)
	require.NotNil(t, call)

	assert.Equal(t, "from-file", call.cfg.ApplicationID)
}

func TestPackageFileIsRequired(t *testing.T) {
	call, err := runApp(t)
	assert.Error(t, err)
	assert.Nil(t, call)
}

func TestUsageDescribesPackageFile(t *testing.T) {
	app := newApp(func(cfg *config.Config, packagePath, metricsFile string) error {
		return nil
	})

	assert.Contains(t, app.Description, "uploaded as is")
	assert.Contains(t, app.Description, "zip archive")
}

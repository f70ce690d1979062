package main

import (
	"github.com/kscout/store-submit/config"

	"github.com/urfave/cli"
)

// flags returns the command line flags. Settings flags take precedence over
// environment variables and the settings file.
func flags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{
			Name:   "config",
			Usage:  "YAML or JSON settings file",
			EnvVar: "STORE_SUBMIT_CONFIG",
		},
		cli.StringFlag{
			Name:  "metrics-file",
			Usage: "write Prometheus metrics of the run to this file",
		},
		cli.StringFlag{
			Name:  "application-id",
			Usage: "store ID of the application",
		},
		cli.StringFlag{
			Name:  "client-id",
			Usage: "client ID of the Azure AD application",
		},
		cli.StringFlag{
			Name:  "client-secret",
			Usage: "client secret of the Azure AD application",
		},
		cli.StringFlag{
			Name:  "tenant-id",
			Usage: "tenant ID of the Azure AD application",
		},
		cli.StringFlag{
			Name:  "service-url",
			Usage: "ingestion API root",
		},
		cli.StringFlag{
			Name:  "token-endpoint",
			Usage: "OAuth token endpoint, derived from the tenant ID if not set",
		},
		cli.StringFlag{
			Name:  "scope",
			Usage: "resource requested with the access token",
		},
		cli.StringFlag{
			Name:  "notes",
			Usage: "notes for certification of the new submission",
		},
		cli.BoolFlag{
			Name:  "mandatory",
			Usage: "mark the version as a mandatory update",
		},
		cli.BoolFlag{
			Name:  "private",
			Usage: "mark the version as private",
		},
		cli.StringFlag{
			Name:  "publish-mode",
			Usage: "Manual or Automatic",
		},
		cli.DurationFlag{
			Name:  "poll-interval",
			Usage: "wait between two submission status requests",
		},
		cli.DurationFlag{
			Name:  "poll-timeout",
			Usage: "maximum time to wait for the commit to be processed, negative to wait forever",
		},
		cli.DurationFlag{
			Name:  "http-timeout",
			Usage: "timeout of a single API request",
		},
		cli.DurationFlag{
			Name:  "upload-timeout",
			Usage: "timeout of the package upload",
		},
	}
}

// settings loads the configuration and overrides it with the flags set on c
func settings(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return nil, err
	}

	stringFlags := map[string]*string{
		"application-id": &cfg.ApplicationID,
		"client-id":      &cfg.ClientID,
		"client-secret":  &cfg.ClientSecret,
		"tenant-id":      &cfg.TenantID,
		"service-url":    &cfg.ServiceURL,
		"token-endpoint": &cfg.TokenEndpoint,
		"scope":          &cfg.Scope,
		"notes":          &cfg.NotesForCertification,
		"publish-mode":   &cfg.PublishMode,
	}
	for name, dest := range stringFlags {
		if c.IsSet(name) {
			*dest = c.String(name)
		}
	}

	if c.IsSet("mandatory") {
		mandatory := c.Bool("mandatory")
		cfg.IsMandatory = &mandatory
	}

	if c.IsSet("private") {
		private := c.Bool("private")
		cfg.IsPrivate = &private
	}

	durations := map[string]*config.Duration{
		"poll-interval":  &cfg.PollInterval,
		"http-timeout":   &cfg.HTTPTimeout,
		"upload-timeout": &cfg.UploadTimeout,
	}
	for name, dest := range durations {
		if c.IsSet(name) && c.Duration(name) > 0 {
			dest.Duration = c.Duration(name)
		}
	}

	// Zero keeps the configured timeout, negative removes the bound
	if c.IsSet("poll-timeout") && c.Duration("poll-timeout") != 0 {
		cfg.PollTimeout.Duration = c.Duration("poll-timeout")
	}

	return cfg, nil
}

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"

	"github.com/kscout/store-submit/config"
	"github.com/kscout/store-submit/jobs"
	"github.com/kscout/store-submit/metrics"

	"github.com/Noah-Huppert/golog"
	"github.com/urfave/cli"
)

// Exit codes
const (
	exitErr          = 1
	exitCommitFailed = 2
)

func main() {
	app := newApp(runSubmission)

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitErr)
	}
}

// submitFunc runs a submission for the settings and arguments parsed by the CLI
type submitFunc func(cfg *config.Config, packagePath, metricsFile string) error

// newApp builds the store-submit command, submit is called with the resolved
// settings
func newApp(submit submitFunc) *cli.App {
	app := cli.NewApp()
	app.Name = "store-submit"
	app.Usage = "submit a new package for an application to the Microsoft Store"
	app.ArgsUsage = "PACKAGE_FILE"
	app.Description = "PACKAGE_FILE is uploaded as is. The ingestion backend expects a " +
		"zip archive holding the package, create it before running store-submit."
	app.Flags = flags()
	app.Action = func(c *cli.Context) error {
		if c.NArg() != 1 {
			return cli.NewExitError("exactly one package file must be given", exitErr)
		}

		cfg, err := settings(c)
		if err != nil {
			return cli.NewExitError(err.Error(), exitErr)
		}

		return submit(cfg, c.Args().First(), c.String("metrics-file"))
	}

	return app
}

// runSubmission submits the package and prints the result as JSON
func runSubmission(cfg *config.Config, packagePath, metricsFile string) error {
	// {{{1 Context
	ctx, ctxCancel := context.WithCancel(context.Background())
	defer ctxCancel()

	// signals holds signals received by process
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt)

	go func() {
		<-signals

		ctxCancel()
	}()

	// {{{1 Logger
	logger := golog.NewStdLogger("store-submit")

	if cfgStr, err := cfg.String(); err == nil {
		logger.Debugf("loaded configuration: %s", cfgStr)
	}

	if cfg.IsMandatory != nil || cfg.IsPrivate != nil {
		logger.Debugf("publish settings are not sent by the ingestion client: "+
			"isMandatory=%v isPrivate=%v publishMode=%s", boolStr(cfg.IsMandatory),
			boolStr(cfg.IsPrivate), cfg.PublishMode)
	}

	// {{{1 Metrics
	metricsRecorder := metrics.NewMetrics()

	// {{{1 Submit
	job := jobs.SubmitJob{
		Logger:  logger.GetChild("submit"),
		Cfg:     cfg,
		Metrics: &metricsRecorder,
	}

	result, submitErr := job.Submit(ctx, packagePath)

	if len(metricsFile) > 0 {
		if err := metricsRecorder.WriteToTextfile(metricsFile); err != nil {
			logger.Errorf("failed to write metrics to %s: %s", metricsFile, err.Error())
		}
	}

	if submitErr != nil {
		return cli.NewExitError(submitErr.Error(), exitErr)
	}

	// {{{1 Print result
	resultBytes, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return cli.NewExitError(fmt.Sprintf("failed to encode result as JSON: %s",
			err.Error()), exitErr)
	}

	fmt.Println(string(resultBytes))

	if result.Failed() {
		return cli.NewExitError(fmt.Sprintf("submission %s failed with status %s",
			result.ID, result.Status), exitCommitFailed)
	}

	return nil
}

// boolStr formats an optional bool
func boolStr(b *bool) string {
	if b == nil {
		return "unset"
	}

	return fmt.Sprintf("%t", *b)
}

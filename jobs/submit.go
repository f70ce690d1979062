package jobs

import (
	"context"
	stderrors "errors"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/kscout/store-submit/auth"
	"github.com/kscout/store-submit/config"
	"github.com/kscout/store-submit/ingestion"
	"github.com/kscout/store-submit/logging"
	"github.com/kscout/store-submit/metrics"
	"github.com/kscout/store-submit/models"
	"github.com/kscout/store-submit/validation"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
)

// SubmitJob creates a store submission for a new package: it clones the last
// published submission of the application, replaces its packages with the new
// one, commits it and waits for the backend to process the commit.
//
// Running the job twice creates two submissions. A pending submission found
// on the application is deleted first, the store only allows one.
type SubmitJob struct {
	// Logger logs information
	Logger logging.Logger

	// Cfg is the submission configuration. The job does not read the
	// environment, empty optional fields get their defaults.
	Cfg *config.Config

	// Metrics records requests and run durations, can be nil
	Metrics *metrics.Metrics

	// HTTPClient is used for the token endpoint and the ingestion API. If nil
	// a client with Cfg.HTTPTimeout is used.
	HTTPClient *http.Client

	// Uploader uploads the package, an ingestion.AzureBlobUploader if nil
	Uploader ingestion.BlobUploader

	// Packager prepares the uploaded file, a PassThroughPackager if nil
	Packager Packager

	// Timer waits between submission status requests, a real timer if nil
	Timer backoff.Timer
}

// submissionRun holds the state of one SubmitJob.Submit call
type submissionRun struct {
	job         SubmitJob
	cfg         config.Config
	logger      logging.Logger
	reporter    *StatusReporter
	httpClient  *http.Client
	packagePath string
	runID       string
	stage       StageT
}

// Submit creates a submission for the package at packagePath and returns its
// terminal status. A submission rejected by the backend is not an error, the
// returned result's Failed method reports it.
//
// Errors are logged, then returned wrapped. The typed errors of the
// validation, auth, ingestion and jobs packages can be retrieved with errors.As.
func (j SubmitJob) Submit(ctx context.Context, packagePath string) (*models.SubmissionResult, error) {
	runID := uuid.New().String()

	var cfg config.Config
	if j.Cfg != nil {
		cfg = *j.Cfg
	}
	cfg.ApplyDefaults()

	run := &submissionRun{
		job:         j,
		cfg:         cfg,
		logger:      logging.Child(j.Logger, runID[:8]),
		packagePath: packagePath,
		runID:       runID,
	}
	run.reporter = NewStatusReporter(run.logger)
	run.httpClient = run.newHTTPClient(cfg.HTTPTimeout.Duration)

	var runTimer metrics.Timer
	if j.Metrics != nil {
		runTimer = j.Metrics.StartTimer(nil)
	}

	result, err := run.execute(ctx)

	if j.Metrics != nil {
		status := "error"
		if result != nil {
			status = result.Status
		}

		runTimer.FinishWith(j.Metrics.SubmissionRunDurationsMilliseconds.With(
			prometheus.Labels{"status": status}))
	}

	if err != nil {
		run.logger.Errorf("run %s failed in the %s stage", runID, run.stage)
		logErrorChain(run.logger, err)
		return nil, errors.Wrap(err, "failed to create app store submission")
	}

	return result, nil
}

// newHTTPClient returns the job's HTTP client, or a client with timeout if the
// job has none, instrumented if the job records metrics
func (r *submissionRun) newHTTPClient(timeout time.Duration) *http.Client {
	client := r.job.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: timeout}
	}

	if r.job.Metrics != nil {
		client = r.job.Metrics.InstrumentClient(client)
	}

	return client
}

// enter logs the start of a stage
func (r *submissionRun) enter(stage StageT) {
	r.stage = stage
	r.logger.Debugf("entering %s stage", stage)
}

// execute runs every stage of the submission
func (r *submissionRun) execute(ctx context.Context) (*models.SubmissionResult, error) {
	appID := r.cfg.ApplicationID

	// {{{1 Validate configuration
	r.enter(StageValidating)

	if err := validation.ValidateConfig(r.cfg); err != nil {
		return nil, err
	}

	if len(r.packagePath) == 0 {
		return nil, validation.ConfigurationError{
			Field:  "packageFile",
			Reason: "is required",
		}
	}

	if _, err := os.Stat(r.packagePath); err != nil {
		return nil, validation.ConfigurationError{
			Field:  "packageFile",
			Reason: "must be a readable file: " + err.Error(),
		}
	}

	r.logger.Infof("starting app submission for application %s", appID)

	// {{{1 Get access token
	r.enter(StageAuthenticating)
	r.logger.Debugf("getting access token from %s", r.cfg.GetTokenEndpoint())

	tokens := auth.TokenProvider{HTTPClient: r.httpClient}
	token, err := tokens.AcquireToken(ctx, r.cfg.GetTokenEndpoint(), r.cfg.ClientID,
		r.cfg.ClientSecret, r.cfg.Scope)
	if err != nil {
		return nil, err
	}

	client, err := ingestion.NewClient(r.cfg.ServiceURL, token, r.httpClient, r.logger)
	if err != nil {
		return nil, err
	}

	// {{{1 Inspect application
	r.enter(StageInspecting)
	r.logger.Debugf("getting application %s", appID)

	app, err := client.GetApplication(ctx, appID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get application")
	}

	if app.LastPublishedApplicationSubmission == nil {
		return nil, PreconditionError{ApplicationID: appID}
	}

	// {{{1 Delete pending submission
	// The store only allows one open submission. If the pending one was not
	// created through the API the delete fails and it has to be deleted from the
	// dashboard, so automation never discards manual edits.
	if app.PendingApplicationSubmission != nil {
		r.enter(StageCleaningPendingSubmission)

		pendingID := app.PendingApplicationSubmission.ID
		r.logger.Warnf("application \"%s\" has a pending submission %s, deleting it "+
			"first (only submissions created through the API can be deleted, never "+
			"manual submissions)", app.PrimaryName, pendingID)

		if err := client.DeleteSubmission(ctx, appID, pendingID); err != nil {
			return nil, errors.Wrapf(err, "failed to delete pending submission %s",
				pendingID)
		}
	}

	// {{{1 Clone last submission
	r.enter(StageCloning)
	r.logger.Infof("cloning last submission")

	submission, err := client.CreateSubmission(ctx, appID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to clone last submission")
	}

	r.reporter.Report(submission.StatusDetails)

	r.logger.Infof("cloned submission %s, updating specified fields", submission.ID)

	// {{{1 Replace packages
	r.enter(StageMutating)

	fileName := filepath.Base(r.packagePath)
	submission.NotesForCertification = r.cfg.NotesForCertification

	r.logger.Infof("deleting existing packages in cloned submission")
	ReplacePackages(submission, fileName)

	// {{{1 Upload package
	// Must happen before the update, the backend checks the package list
	// against the uploaded blob.
	r.enter(StageUploading)

	if err := r.upload(ctx, submission.FileUploadURL); err != nil {
		return nil, err
	}

	// {{{1 Update submission
	r.enter(StageUpdating)
	r.logger.Infof("updating the cloned submission")

	updated, err := client.UpdateSubmission(ctx, appID, *submission)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to update submission %s", submission.ID)
	}

	r.reporter.Report(updated.StatusDetails)

	// {{{1 Commit submission
	r.enter(StageCommitting)
	r.logger.Infof("committing the submission")

	if err := client.CommitSubmission(ctx, appID, submission.ID); err != nil {
		return nil, errors.Wrapf(err, "failed to commit submission %s", submission.ID)
	}

	// {{{1 Wait for commit processing
	r.enter(StagePolling)
	r.logger.Infof("waiting for the submission commit processing to complete, this " +
		"may take a couple of minutes...")

	status, err := r.poll(ctx, client, submission.ID)
	if err != nil {
		return nil, err
	}

	r.logger.Infof("final submission status: \"%s\"", status)

	result := &models.SubmissionResult{
		RunID:        r.runID,
		ID:           submission.ID,
		FriendlyName: submission.FriendlyName,
		Status:       status,
	}

	if result.Failed() {
		r.enter(StageFailed)
		r.logger.Errorf("submission has failed, please check the errors in the " +
			"Windows Dev Center dashboard")
	} else {
		r.enter(StageSucceeded)
		r.logger.Infof("submission has succeeded")
	}

	return result, nil
}

// upload packages the file and uploads it to uploadURL
func (r *submissionRun) upload(ctx context.Context, uploadURL string) error {
	if len(uploadURL) == 0 {
		return ingestion.UploadError{
			FilePath: r.packagePath,
			Err:      stderrors.New("the cloned submission has no fileUploadUrl"),
		}
	}

	packager := r.job.Packager
	if packager == nil {
		packager = PassThroughPackager{}
	}

	uploadPath, cleanup, err := packager.Package(ctx, r.packagePath)
	if err != nil {
		return errors.Wrapf(err, "failed to package %s", r.packagePath)
	}
	defer cleanup()

	uploader := r.job.Uploader
	if uploader == nil {
		uploader = ingestion.AzureBlobUploader{
			HTTPClient: r.newHTTPClient(r.cfg.UploadTimeout.Duration),
		}
	}

	r.logger.Infof("uploading new package %s to the cloned submission, this can "+
		"take a while (depending on size & internet speed)...", r.packagePath)

	return uploader.UploadBlob(ctx, uploadPath, uploadURL)
}

// logErrorChain logs err and each error it wraps, skipping messages equal to
// the previous one
func logErrorChain(logger logging.Logger, err error) {
	last := ""

	for e := err; e != nil; e = stderrors.Unwrap(e) {
		msg := e.Error()
		if msg == last {
			continue
		}

		logger.Errorf("%s", msg)
		last = msg
	}
}

package jobs

import (
	"context"
	stderrors "errors"

	"github.com/kscout/store-submit/ingestion"
	"github.com/kscout/store-submit/models"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
)

// errCommitInProgress makes the poll loop request the status again
var errCommitInProgress = stderrors.New("submission commit is still being processed")

// poll requests the status of a committed submission until it leaves
// CommitStarted. The first request is sent right away, then one
// Cfg.PollInterval passes between requests. Returns the terminal status.
func (r *submissionRun) poll(ctx context.Context, client *ingestion.Client,
	submissionID string) (string, error) {

	var pollCtx context.Context
	var cancel context.CancelFunc
	if r.cfg.PollTimeout.Duration > 0 {
		pollCtx, cancel = context.WithTimeout(ctx, r.cfg.PollTimeout.Duration)
	} else {
		pollCtx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	lastStatus := ""

	operation := func() error {
		if r.job.Metrics != nil {
			r.job.Metrics.SubmissionPollsTotal.Inc()
		}

		status, err := client.GetSubmissionStatus(pollCtx, r.cfg.ApplicationID,
			submissionID)
		if err != nil {
			return backoff.Permanent(errors.Wrapf(err,
				"failed to get status of submission %s", submissionID))
		}

		lastStatus = status.Status
		r.logger.Debugf("current status: \"%s\"", status.Status)
		r.reporter.Report(status.StatusDetails)

		if status.Status == models.StatusCommitStarted {
			return errCommitInProgress
		}

		return nil
	}

	policy := backoff.WithContext(backoff.NewConstantBackOff(r.cfg.PollInterval.Duration),
		pollCtx)

	err := backoff.RetryNotifyWithTimer(operation, policy, nil, r.job.Timer)
	if err == nil {
		return lastStatus, nil
	}

	if ctx.Err() != nil {
		return "", AbandonedError{
			SubmissionID: submissionID,
			Err:          ctx.Err(),
		}
	}

	if stderrors.Is(pollCtx.Err(), context.DeadlineExceeded) {
		return "", PollingTimeoutError{
			SubmissionID: submissionID,
			Timeout:      r.cfg.PollTimeout.Duration,
			LastStatus:   lastStatus,
		}
	}

	return "", err
}

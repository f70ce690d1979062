package jobs

// StageT is a step of a submission run
type StageT string

// Stages of a submission run, in the order they are entered.
// StageCleaningPendingSubmission is only entered if the application has a
// pending submission.
const (
	StageValidating                StageT = "validating"
	StageAuthenticating            StageT = "authenticating"
	StageInspecting                StageT = "inspecting"
	StageCleaningPendingSubmission StageT = "cleaning_pending_submission"
	StageCloning                   StageT = "cloning"
	StageMutating                  StageT = "mutating"
	StageUploading                 StageT = "uploading"
	StageUpdating                  StageT = "updating"
	StageCommitting                StageT = "committing"
	StagePolling                   StageT = "polling"
	StageSucceeded                 StageT = "succeeded"
	StageFailed                    StageT = "failed"
)

package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const clonedSubmissionJSON = `{
	"id": "1152921504621243680",
	"friendlyName": "Submission 2",
	"status": "PendingCommit",
	"notesForCertification": "",
	"fileUploadUrl": "https://productingestionbin1.blob.core.windows.net/ingestion/abc?sv=2014-02-14&sig=xyz",
	"applicationCategory": "BooksAndReference_EReader",
	"listings": {"en-us": {"baseListing": {"description": "An app"}}},
	"applicationPackages": [
		{
			"fileName": "app_1.0.0.0_x64.appxbundle",
			"fileStatus": "Uploaded",
			"id": "1152921504620138797",
			"version": "1.0.0.0",
			"architecture": "x64"
		}
	],
	"statusDetails": {
		"errors": [],
		"warnings": [{"code": "SalesUnsupportedWarning", "details": "sales are not supported"}]
	}
}`

func TestSubmissionKeepsUnknownFields(t *testing.T) {
	var submission Submission
	require.NoError(t, json.Unmarshal([]byte(clonedSubmissionJSON), &submission))

	assert.Equal(t, "1152921504621243680", submission.ID)
	assert.Equal(t, "Submission 2", submission.FriendlyName)
	require.Len(t, submission.ApplicationPackages, 1)
	assert.Equal(t, "Uploaded", submission.ApplicationPackages[0].FileStatus)

	submission.NotesForCertification = "built by CI"
	submission.ApplicationPackages[0].FileStatus = FileStatusPendingDelete

	encoded, err := json.Marshal(submission)
	require.NoError(t, err)

	var doc map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &doc))

	assert.Equal(t, "built by CI", doc["notesForCertification"])
	assert.Equal(t, "BooksAndReference_EReader", doc["applicationCategory"])
	assert.Contains(t, doc, "listings")

	packages := doc["applicationPackages"].([]interface{})
	require.Len(t, packages, 1)
	pkg := packages[0].(map[string]interface{})
	assert.Equal(t, FileStatusPendingDelete, pkg["fileStatus"])
	assert.Equal(t, "1152921504620138797", pkg["id"])
	assert.Equal(t, "x64", pkg["architecture"])
}

func TestNewPackageHasNoExtraFields(t *testing.T) {
	encoded, err := json.Marshal(Package{
		FileName:              "app.appxbundle",
		FileStatus:            FileStatusPendingUpload,
		MinimumDirectXVersion: "None",
		MinimumSystemRAM:      "None",
	})
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"fileName": "app.appxbundle",
		"fileStatus": "PendingUpload",
		"minimumDirectXVersion": "None",
		"minimumSystemRam": "None"
	}`, string(encoded))
}

func TestStatusDetailsAll(t *testing.T) {
	var submission Submission
	require.NoError(t, json.Unmarshal([]byte(clonedSubmissionJSON), &submission))

	all := submission.StatusDetails.All()
	require.Len(t, all, 1)
	assert.Equal(t, "SalesUnsupportedWarning", all[0].Code)
	assert.Equal(t, "sales are not supported", all[0].Message)
	assert.Equal(t, SeverityWarning, all[0].Severity)

	var nilDetails *StatusDetails
	assert.Empty(t, nilDetails.All())
}

func TestApplicationWithoutPublishedSubmission(t *testing.T) {
	var app Application
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": "9WZANCRD4AMD",
		"primaryName": "Contoso",
		"hasAdvancedListingPermission": true
	}`), &app))

	assert.Nil(t, app.LastPublishedApplicationSubmission)
	assert.Nil(t, app.PendingApplicationSubmission)
}

package ingestiontest

// Application returns an application document. Empty submission IDs leave the
// matching reference null.
func Application(appID, lastPublishedID, pendingID string) Doc {
	app := Doc{
		"id":                                 appID,
		"primaryName":                        "Contoso Reader",
		"lastPublishedApplicationSubmission": nil,
		"pendingApplicationSubmission":       nil,
	}

	if len(lastPublishedID) > 0 {
		app["lastPublishedApplicationSubmission"] = submissionRef(appID, lastPublishedID)
	}

	if len(pendingID) > 0 {
		app["pendingApplicationSubmission"] = submissionRef(appID, pendingID)
	}

	return app
}

func submissionRef(appID, submissionID string) Doc {
	return Doc{
		"id":               submissionID,
		"resourceLocation": "applications/" + appID + "/submissions/" + submissionID,
	}
}

// Submission returns a cloned submission document with packages existing packages
func Submission(id string, packages int) Doc {
	pkgs := []interface{}{}
	for i := 0; i < packages; i++ {
		pkgs = append(pkgs, Doc{
			"fileName":     PackageName(i),
			"fileStatus":   "Uploaded",
			"id":           id + "-pkg",
			"architecture": "x64",
		})
	}

	return Doc{
		"id":                    id,
		"friendlyName":          "Submission " + id,
		"status":                "PendingCommit",
		"notesForCertification": "",
		"applicationCategory":   "BooksAndReference_EReader",
		"listings": Doc{
			"en-us": Doc{"baseListing": Doc{"description": "Reads books"}},
		},
		"applicationPackages": pkgs,
		"statusDetails":       StatusDetails(nil, nil),
	}
}

// PackageName returns the file name of the i-th package of a Submission document
func PackageName(i int) string {
	return "contoso_1.0." + string(rune('0'+i)) + ".0_x64.appxbundle"
}

// Status returns a submission status document
func Status(status string, warnings, errors []Doc) Doc {
	return Doc{
		"status":        status,
		"statusDetails": StatusDetails(warnings, errors),
	}
}

// StatusDetails returns a status details document
func StatusDetails(warnings, errors []Doc) Doc {
	if warnings == nil {
		warnings = []Doc{}
	}
	if errors == nil {
		errors = []Doc{}
	}

	return Doc{
		"warnings":             warnings,
		"errors":               errors,
		"certificationReports": []Doc{},
	}
}

// Detail returns a status detail document
func Detail(code, details string) Doc {
	return Doc{
		"code":    code,
		"details": details,
	}
}

package jobs

import (
	"context"

	"github.com/kscout/store-submit/models"
)

// ReplacePackages marks every package of submission for deletion and appends
// an entry for fileName which is marked for upload. The existing packages keep
// their order.
func ReplacePackages(submission *models.Submission, fileName string) {
	packages := make([]models.Package, 0, len(submission.ApplicationPackages)+1)

	for _, pkg := range submission.ApplicationPackages {
		pkg.FileStatus = models.FileStatusPendingDelete
		packages = append(packages, pkg)
	}

	packages = append(packages, models.Package{
		FileName:              fileName,
		FileStatus:            models.FileStatusPendingUpload,
		MinimumDirectXVersion: "None",
		MinimumSystemRAM:      "None",
	})

	submission.ApplicationPackages = packages
}

// Packager prepares the file which is uploaded for a package, ex., by
// archiving it
type Packager interface {
	// Package returns the path of the file to upload for the package at
	// packagePath, and a function which removes any temporary files
	Package(ctx context.Context, packagePath string) (string, func(), error)
}

// PassThroughPackager uploads package files as they are
type PassThroughPackager struct{}

// Package implements Packager
func (p PassThroughPackager) Package(ctx context.Context, packagePath string) (string, func(), error) {
	return packagePath, func() {}, nil
}

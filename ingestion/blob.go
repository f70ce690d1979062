package ingestion

import (
	"context"
	"net/http"
	"os"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azblob/blockblob"
)

// BlobUploader uploads a package file to a pre-signed blob URL
type BlobUploader interface {
	// UploadBlob uploads the file at filePath to uploadURL
	UploadBlob(ctx context.Context, filePath, uploadURL string) error
}

// AzureBlobUploader uploads packages with the Azure Storage block blob client.
// The upload URL must carry a SAS token allowing writes.
type AzureBlobUploader struct {
	// HTTPClient sends the requests, the SDK default if nil
	HTTPClient *http.Client

	// BlockSize is the size of the blocks large files are staged in. Zero lets
	// the SDK choose, which uploads small files with a single request.
	BlockSize int64

	// Concurrency is the number of blocks staged in parallel. Zero stages one
	// block at a time.
	Concurrency uint16
}

// UploadBlob implements BlobUploader. Failed requests are not retried: the
// upload URL may have expired and the run has to start over.
func (u AzureBlobUploader) UploadBlob(ctx context.Context, filePath, uploadURL string) error {
	uploadErr := func(err error) error {
		return UploadError{
			FilePath: filePath,
			URL:      redactURL(uploadURL),
			Err:      err,
		}
	}

	file, err := os.Open(filePath)
	if err != nil {
		return uploadErr(err)
	}
	defer file.Close()

	clientOpts := azcore.ClientOptions{
		Retry: policy.RetryOptions{
			MaxRetries: -1,
		},
	}
	if u.HTTPClient != nil {
		clientOpts.Transport = u.HTTPClient
	}

	client, err := blockblob.NewClientWithNoCredential(uploadURL, &blockblob.ClientOptions{
		ClientOptions: clientOpts,
	})
	if err != nil {
		return uploadErr(err)
	}

	_, err = client.UploadFile(ctx, file, u.uploadOptions())
	if err != nil {
		return uploadErr(err)
	}

	return nil
}

// uploadOptions returns the block options of an upload
func (u AzureBlobUploader) uploadOptions() *blockblob.UploadFileOptions {
	concurrency := u.Concurrency
	if concurrency == 0 {
		concurrency = 1
	}

	return &blockblob.UploadFileOptions{
		BlockSize:   u.BlockSize,
		Concurrency: concurrency,
	}
}

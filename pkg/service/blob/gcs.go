package blob

import (
	"context"
	"fmt"
	"io"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
)

// GCS stores case documents in a Google Cloud Storage bucket. Object names
// are date-partitioned and random so a re-uploaded file never overwrites an
// earlier document referenced by a committed case.
type GCS struct {
	client *storage.Client
	bucket string
}

var _ interfaces.BlobStore = &GCS{}

func NewGCS(ctx context.Context, bucket string) (*GCS, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create storage client", goerr.V("bucket", bucket))
	}
	return &GCS{client: client, bucket: bucket}, nil
}

func (s *GCS) Upload(ctx context.Context, fileName, mimeType string, r io.Reader) (*model.BlobRef, error) {
	objName := path.Join(
		time.Now().UTC().Format("2006/01/02"),
		uuid.NewString(),
		fileName,
	)

	w := s.client.Bucket(s.bucket).Object(objName).NewWriter(ctx)
	w.ContentType = mimeType

	size, err := io.Copy(w, r)
	if err != nil {
		_ = w.Close()
		return nil, goerr.Wrap(err, "failed to write document to bucket",
			goerr.V("bucket", s.bucket), goerr.V("object", objName))
	}
	if err := w.Close(); err != nil {
		return nil, goerr.Wrap(err, "failed to finalize document upload",
			goerr.V("bucket", s.bucket), goerr.V("object", objName))
	}

	return &model.BlobRef{
		StorageRef: fmt.Sprintf("gs://%s/%s", s.bucket, objName),
		URL:        fmt.Sprintf("https://storage.googleapis.com/%s/%s", s.bucket, objName),
		Size:       size,
		MimeType:   mimeType,
	}, nil
}

func (s *GCS) Close() error {
	if err := s.client.Close(); err != nil {
		return goerr.Wrap(err, "failed to close storage client")
	}
	return nil
}

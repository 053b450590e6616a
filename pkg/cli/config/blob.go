package config

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/service/blob"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Blob holds CLI flags for the document blob store
type Blob struct {
	backend string
	bucket  string
}

// Flags returns CLI flags for blob store configuration
func (b *Blob) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "blob-backend",
			Category:    "Blob store",
			Usage:       "Blob store backend type (gcs or memory)",
			Value:       "gcs",
			Sources:     cli.EnvVars("CASEFLOW_BLOB_BACKEND"),
			Destination: &b.backend,
		},
		&cli.StringFlag{
			Name:        "blob-bucket",
			Category:    "Blob store",
			Usage:       "GCS bucket for case documents (required when using gcs backend)",
			Sources:     cli.EnvVars("CASEFLOW_BLOB_BUCKET"),
			Destination: &b.bucket,
		},
	}
}

// Configure initializes the blob store. The returned closer releases the
// backend client, if any.
func (b *Blob) Configure(ctx context.Context) (interfaces.BlobStore, func(), error) {
	switch b.backend {
	case "gcs":
		if b.bucket == "" {
			return nil, nil, goerr.New("blob-bucket is required when using gcs backend")
		}
		store, err := blob.NewGCS(ctx, b.bucket)
		if err != nil {
			return nil, nil, goerr.Wrap(err, "failed to initialize GCS blob store")
		}
		logging.Default().Info("Using GCS blob store", "bucket", b.bucket)
		return store, func() {
			if err := store.Close(); err != nil {
				logging.Default().Error("failed to close blob store", "error", err.Error())
			}
		}, nil

	case "memory":
		logging.Default().Info("Using in-memory blob store (development mode)")
		return blob.NewMemory(), func() {}, nil

	default:
		return nil, nil, goerr.New("invalid blob backend", goerr.V("backend", b.backend))
	}
}

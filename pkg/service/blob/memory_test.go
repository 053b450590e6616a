package blob_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/service/blob"
)

func TestMemoryUpload(t *testing.T) {
	store := blob.NewMemory()
	ctx := context.Background()

	ref, err := store.Upload(ctx, "nte.pdf", "application/pdf", strings.NewReader("notice"))
	gt.NoError(t, err).Required()

	gt.Value(t, ref.StorageRef).NotEqual("")
	gt.Value(t, ref.Size).Equal(int64(len("notice")))
	gt.Value(t, ref.MimeType).Equal("application/pdf")

	data, ok := store.Object(ref.StorageRef)
	gt.Bool(t, ok).True()
	gt.Value(t, string(data)).Equal("notice")

	// Same file name, distinct objects
	ref2, err := store.Upload(ctx, "nte.pdf", "application/pdf", strings.NewReader("another"))
	gt.NoError(t, err).Required()
	gt.Value(t, ref2.StorageRef).NotEqual(ref.StorageRef)
}

func TestMemoryFailWith(t *testing.T) {
	store := blob.NewMemory()
	ctx := context.Background()

	outage := errors.New("bucket unavailable")
	store.FailWith(outage)

	_, err := store.Upload(ctx, "nte.pdf", "application/pdf", strings.NewReader("notice"))
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, outage)).True()

	store.FailWith(nil)
	_, err = store.Upload(ctx, "nte.pdf", "application/pdf", strings.NewReader("notice"))
	gt.NoError(t, err)
}

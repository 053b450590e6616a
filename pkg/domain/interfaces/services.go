package interfaces

import (
	"context"
	"io"

	"github.com/workforce-labs/caseflow/pkg/domain/model"
)

// BlobStore persists document bytes. Upload completes before the owning
// transition is committed; a failed upload aborts the whole operation.
type BlobStore interface {
	Upload(ctx context.Context, fileName, mimeType string, r io.Reader) (*model.BlobRef, error)
}

// Directory resolves employee identities (read-only external collaborator)
type Directory interface {
	ResolveUser(ctx context.Context, id string) (*model.User, error)
}

// Notifier delivers out-of-band notices about case movement. Failures are
// logged, never propagated to the mutation that triggered them.
type Notifier interface {
	NotifyCaseEvent(ctx context.Context, ev model.CaseEvent) error
	NotifyOverdue(ctx context.Context, c *model.Case) error
}

// Publisher fans case events out to subscribed dashboards
type Publisher interface {
	Publish(ev model.CaseEvent)
}

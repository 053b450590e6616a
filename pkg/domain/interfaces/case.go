package interfaces

import (
	"context"

	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// CaseRepository defines data access for Case records. The backing store is
// free to choose its own persistence, but every implementation must provide
// the two race-resolving primitives: ApplyTransition's compare-and-swap and
// MarkRead's set-true-if-false.
type CaseRepository interface {
	// Create persists a new case with an auto-generated ID
	Create(ctx context.Context, c *model.Case) (*model.Case, error)

	// Get retrieves a case by ID; model.ErrNotFound if absent
	Get(ctx context.Context, id int64) (*model.Case, error)

	// List retrieves all cases
	List(ctx context.Context) ([]*model.Case, error)

	// ApplyTransition atomically applies the patch if and only if the
	// case's current status equals expectedStatus. On mismatch it returns
	// model.ErrStaleState and writes nothing. On slot overflow it returns
	// model.ErrEvidenceLimit and writes nothing.
	ApplyTransition(ctx context.Context, id int64, expectedStatus types.CaseStatus, patch *model.TransitionPatch) (*model.Case, error)

	// MarkRead sets the read flag for the given role if it is currently
	// false. Returns the updated case and whether this call flipped the
	// flag; under concurrent callers exactly one observes true.
	MarkRead(ctx context.Context, id int64, role types.Role) (*model.Case, bool, error)

	// Delete hard-deletes a case. Only the reporter may delete, and only
	// while the case is still in its initial status; otherwise
	// model.ErrForbidden.
	Delete(ctx context.Context, id int64, requesterID string) error
}

// AuditRepository persists the audit trail
type AuditRepository interface {
	Record(ctx context.Context, entry *model.AuditEntry) error
	ListByCase(ctx context.Context, caseID int64) ([]*model.AuditEntry, error)
}

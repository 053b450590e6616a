package model

import (
	"time"

	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// AuditEntry records one case mutation for the audit trail. Entries are
// written fire-and-forget; a lost entry never blocks or fails the mutation
// it describes. Action is a transition action name, or "create"/"delete"
// for the two non-transition mutations.
type AuditEntry struct {
	ID         string           `json:"id"`
	CaseID     int64            `json:"caseId"`
	Action     string           `json:"action"`
	ActorID    string           `json:"actorId"`
	FromStatus types.CaseStatus `json:"fromStatus,omitempty"`
	ToStatus   types.CaseStatus `json:"toStatus,omitempty"`
	Tag        string           `json:"tag,omitempty"`
	CreatedAt  time.Time        `json:"createdAt"`
}

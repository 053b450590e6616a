package lifecycle

import (
	"time"

	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// TriageSLA is how long an IR case may sit in initial triage without an NTE
// before it counts as overdue.
const TriageSLA = 3 * 24 * time.Hour

// IsOverdue reports whether the case has breached the triage SLA: an IR case
// still pending review, with no NTE on file, whose elapsed age has reached
// the SLA. The comparison is on elapsed duration, not calendar dates, so the
// boundary is exact to the second.
func IsOverdue(c *model.Case, now time.Time) bool {
	if c.CaseType != types.CaseTypeIR || c.Status != types.StatusPendingReview {
		return false
	}
	if len(c.SlotDocuments(types.SlotNTE)) > 0 {
		return false
	}
	return now.Sub(c.CreatedAt) >= TriageSLA
}

package lifecycle

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// ValidateEvidenceAppend checks that adding n documents to the evidence slot
// is allowed on the given case. The gate lives here, not in the presentation
// layer: supplementary evidence is accepted only while the case is still in
// initial triage, and the slot never exceeds its capacity. On failure the
// existing documents are untouched.
func ValidateEvidenceAppend(c *model.Case, n int) error {
	if n <= 0 {
		return goerr.Wrap(model.ErrValidation, "no evidence documents supplied")
	}
	if c.Status != c.CaseType.InitialStatus() {
		return goerr.Wrap(model.ErrValidation, "evidence can only be added during initial triage",
			goerr.V(model.StatusKey, c.Status))
	}
	held := len(c.SlotDocuments(types.SlotEvidence))
	if held+n > types.SlotEvidence.Capacity() {
		return goerr.Wrap(model.ErrEvidenceLimit, "evidence slot is full",
			goerr.V("held", held),
			goerr.V("adding", n),
			goerr.V("capacity", types.SlotEvidence.Capacity()))
	}
	return nil
}

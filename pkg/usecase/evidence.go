package usecase

import (
	"context"

	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
)

// AttachEvidence appends one supplementary document to the evidence slot.
// The slot is bounded and gated to initial triage inside the lifecycle
// package; on any failure the already-attached documents are untouched. The
// write itself is a compare-and-swap against the case's current status, so
// a case that progresses mid-upload rejects the append instead of smuggling
// evidence into a later stage.
func (uc *CaseUseCase) AttachEvidence(ctx context.Context, id int64, actorID string, up *UploadInput) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := lifecycle.ValidateEvidenceAppend(c, 1); err != nil {
		return nil, err
	}

	doc, err := uc.uploadDocument(ctx, up)
	if err != nil {
		return nil, err
	}

	patch := &model.TransitionPatch{
		Status: c.Status,
		SlotAppends: map[types.SlotName][]model.Document{
			types.SlotEvidence: {*doc},
		},
	}

	updated, err := uc.repo.Case().ApplyTransition(ctx, id, c.Status, patch)
	if err != nil {
		return nil, err
	}

	uc.publish(model.NewCaseUpdated(updated))
	uc.recordAudit(ctx, &model.AuditEntry{
		CaseID:     id,
		Action:     "attachEvidence",
		ActorID:    actorID,
		FromStatus: c.Status,
		ToStatus:   updated.Status,
		Tag:        doc.FileName,
	})

	return updated, nil
}

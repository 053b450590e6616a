package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
)

// TransitionInput is a guarded transition request. ExpectedStatus is the
// status the caller last saw, passed as the raw wire string so legacy
// spellings are normalized exactly once, at this boundary.
type TransitionInput struct {
	Action         types.Action
	ExpectedStatus string
	ActorID        string

	InvalidReason string
	Explanation   string
	AckMessage    string
	HearingDate   time.Time
	Witnesses     []model.Witness

	Upload *UploadInput
}

// Transition applies one guarded transition as an atomic unit: validate the
// request against the transition table, persist the accompanying document
// (if any), then compare-and-swap the case record. Either everything
// commits — status, timestamp, flag resets, and slot writes together, with
// exactly one CaseUpdated event — or nothing does.
func (uc *CaseUseCase) Transition(ctx context.Context, id int64, in *TransitionInput) (*model.Case, error) {
	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, err
	}

	expected, err := types.ParseCaseStatus(c.CaseType, in.ExpectedStatus)
	if err != nil {
		return nil, goerr.Wrap(model.ErrValidation, "unparseable expected status",
			goerr.V(model.ExpectedKey, in.ExpectedStatus), goerr.V(model.CaseIDKey, id))
	}

	lcIn := &lifecycle.Input{
		InvalidReason: in.InvalidReason,
		Explanation:   in.Explanation,
		AckMessage:    in.AckMessage,
		HearingDate:   in.HearingDate,
		Witnesses:     in.Witnesses,
		Now:           time.Now().UTC(),
	}

	// Validate the request before any IO so a doomed transition never
	// leaves an orphaned blob behind.
	if _, err := lifecycle.BuildPatch(c.CaseType, expected, in.Action, lcIn); err != nil {
		return nil, err
	}

	if in.Upload != nil {
		doc, err := uc.uploadDocument(ctx, in.Upload)
		if err != nil {
			return nil, err
		}
		lcIn.Document = doc
	}

	patch, err := lifecycle.BuildPatch(c.CaseType, expected, in.Action, lcIn)
	if err != nil {
		return nil, err
	}

	updated, err := uc.repo.Case().ApplyTransition(ctx, id, expected, patch)
	if err != nil {
		return nil, err
	}

	uc.publish(model.NewCaseUpdated(updated))
	uc.recordAudit(ctx, &model.AuditEntry{
		CaseID:     id,
		Action:     in.Action.String(),
		ActorID:    in.ActorID,
		FromStatus: expected,
		ToStatus:   updated.Status,
	})
	uc.notify(ctx, model.NewCaseUpdated(updated))

	return updated, nil
}

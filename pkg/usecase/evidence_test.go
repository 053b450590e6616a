package usecase_test

import (
	"context"
	"errors"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/usecase"
)

func TestAttachEvidence(t *testing.T) {
	t.Run("appends until the slot is full", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		created, err := uc.Case.CreateCase(ctx, irInput())
		gt.NoError(t, err).Required()

		c, err := uc.Case.AttachEvidence(ctx, created.ID, "E100", upload("a.png", "a"))
		gt.NoError(t, err).Required()
		gt.A(t, c.Documents[types.SlotEvidence]).Length(1)

		c, err = uc.Case.AttachEvidence(ctx, created.ID, "E100", upload("b.png", "b"))
		gt.NoError(t, err).Required()
		gt.A(t, c.Documents[types.SlotEvidence]).Length(2)

		_, err = uc.Case.AttachEvidence(ctx, created.ID, "E100", upload("c.png", "c"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrEvidenceLimit)).True()

		current, err := uc.Case.GetCase(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.A(t, current.Documents[types.SlotEvidence]).Length(2)
	})

	t.Run("rejected after the case leaves triage", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		created, err := uc.Case.CreateCase(ctx, irInput())
		gt.NoError(t, err).Required()

		_, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
			Action:         types.ActionValidate,
			ExpectedStatus: "PendingReview",
			ActorID:        "HR-01",
			Upload:         upload("nte.pdf", "nte"),
		})
		gt.NoError(t, err).Required()

		_, err = uc.Case.AttachEvidence(ctx, created.ID, "E100", upload("late.png", "late"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrValidation)).True()
	})

	t.Run("a failed upload leaves the slot untouched", func(t *testing.T) {
		uc, _, store := newTestUseCases()
		ctx := context.Background()

		created, err := uc.Case.CreateCase(ctx, irInput())
		gt.NoError(t, err).Required()

		store.FailWith(errors.New("bucket unavailable"))

		_, err = uc.Case.AttachEvidence(ctx, created.ID, "E100", upload("a.png", "a"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrUploadFailure)).True()

		current, err := uc.Case.GetCase(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.A(t, current.Documents[types.SlotEvidence]).Length(0)
	})
}

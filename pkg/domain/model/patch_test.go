package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

func TestTransitionPatchApply(t *testing.T) {
	now := time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

	t.Run("writes status, flags, slot and stamp together", func(t *testing.T) {
		c := &model.Case{
			CaseType:  types.CaseTypeIR,
			Status:    types.StatusPendingReview,
			ReadFlags: model.ReadFlags{ByReporter: true},
		}
		patch := &model.TransitionPatch{
			Status: types.StatusNTE,
			FlagSets: map[types.Role]bool{
				types.RoleRespondent: false,
				types.RoleHR:         true,
			},
			SlotWrites: map[types.SlotName][]model.Document{
				types.SlotNTE: {{FileName: "nte.pdf", StorageRef: "mem://nte"}},
			},
			Stage: model.StageNTESent,
		}

		gt.NoError(t, patch.Apply(c, now)).Required()

		gt.Value(t, c.Status).Equal(types.StatusNTE)
		gt.Value(t, c.ReadFlags.ByHR).Equal(true)
		gt.Value(t, c.ReadFlags.ByRespondent).Equal(false)
		gt.Value(t, c.ReadFlags.ByReporter).Equal(true)
		gt.A(t, c.Documents[types.SlotNTE]).Length(1)
		gt.Value(t, c.Stages.NTESentAt.Equal(now)).Equal(true)
		gt.Value(t, c.UpdatedAt.Equal(now)).Equal(true)
	})

	t.Run("rejects rewriting a non-zero stage stamp without mutating", func(t *testing.T) {
		stamped := time.Date(2026, 8, 30, 8, 0, 0, 0, time.UTC)
		c := &model.Case{
			CaseType: types.CaseTypeIR,
			Status:   types.StatusPendingReview,
		}
		c.Stages.Set(model.StageNTESent, stamped)

		patch := &model.TransitionPatch{
			Status: types.StatusNTE,
			Stage:  model.StageNTESent,
		}

		gt.Error(t, patch.Apply(c, now))
		gt.Value(t, c.Status).Equal(types.StatusPendingReview)
		gt.Value(t, c.Stages.NTESentAt.Equal(stamped)).Equal(true)
	})

	t.Run("rejects slot append beyond capacity without mutating", func(t *testing.T) {
		c := &model.Case{
			CaseType: types.CaseTypeIR,
			Status:   types.StatusPendingReview,
			Documents: map[types.SlotName][]model.Document{
				types.SlotEvidence: {{FileName: "a.png"}, {FileName: "b.png"}},
			},
		}

		patch := &model.TransitionPatch{
			Status: types.StatusPendingReview,
			SlotAppends: map[types.SlotName][]model.Document{
				types.SlotEvidence: {{FileName: "c.png"}},
			},
		}

		err := patch.Apply(c, now)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrEvidenceLimit)).True()
		gt.A(t, c.Documents[types.SlotEvidence]).Length(2)
	})

	t.Run("slot write replaces wholesale", func(t *testing.T) {
		c := &model.Case{
			CaseType: types.CaseTypeIR,
			Status:   types.StatusScheduledForHearing,
			Documents: map[types.SlotName][]model.Document{
				types.SlotMOM: {{FileName: "old.pdf"}},
			},
		}

		patch := &model.TransitionPatch{
			Status: types.StatusMOMUploaded,
			SlotWrites: map[types.SlotName][]model.Document{
				types.SlotMOM: {{FileName: "new.pdf"}},
			},
		}

		gt.NoError(t, patch.Apply(c, now)).Required()
		gt.A(t, c.Documents[types.SlotMOM]).Length(1)
		gt.Value(t, c.Documents[types.SlotMOM][0].FileName).Equal("new.pdf")
	})

	t.Run("acknowledgement overwrite", func(t *testing.T) {
		c := &model.Case{
			CaseType: types.CaseTypeIR,
			Status:   types.StatusForAcknowledgement,
		}

		patch := &model.TransitionPatch{
			Status:          types.StatusAcknowledged,
			SetAcknowledged: model.Bool(true),
			AckMessage:      "Received and understood",
		}

		gt.NoError(t, patch.Apply(c, now)).Required()
		gt.Value(t, c.Acknowledgement.IsAcknowledged).Equal(true)
		gt.Value(t, c.Acknowledgement.AckMessage).Equal("Received and understood")
	})
}

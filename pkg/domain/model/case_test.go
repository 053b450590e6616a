package model_test

import (
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

func TestCaseClone(t *testing.T) {
	original := &model.Case{
		ID:           7,
		CaseType:     types.CaseTypeIR,
		Status:       types.StatusScheduledForHearing,
		ReporterID:   "E100",
		RespondentID: "E200",
		Hearing: &model.Hearing{
			HearingDate: time.Date(2026, 10, 1, 14, 0, 0, 0, time.UTC),
			Witnesses:   []model.Witness{{RefID: "W1", Name: "Alice Reyes", EmployeeID: "E300"}},
		},
		Documents: map[types.SlotName][]model.Document{
			types.SlotEvidence: {{FileName: "photo.png", StorageRef: "mem://a"}},
		},
	}

	cloned := original.Clone()

	cloned.Status = types.StatusEscalatedToCompliance
	cloned.Hearing.Witnesses[0].Name = "changed"
	cloned.Documents[types.SlotEvidence][0].FileName = "changed.png"
	cloned.Documents[types.SlotNTE] = []model.Document{{FileName: "nte.pdf"}}

	gt.Value(t, original.Status).Equal(types.StatusScheduledForHearing)
	gt.Value(t, original.Hearing.Witnesses[0].Name).Equal("Alice Reyes")
	gt.Value(t, original.Documents[types.SlotEvidence][0].FileName).Equal("photo.png")
	gt.Value(t, len(original.Documents)).Equal(1)
}

func TestReadFlags(t *testing.T) {
	var f model.ReadFlags

	for _, role := range types.AllRoles() {
		gt.Value(t, f.Get(role)).Equal(false)
	}

	f.Set(types.RoleHR, true)
	gt.Value(t, f.Get(types.RoleHR)).Equal(true)
	gt.Value(t, f.Get(types.RoleRespondent)).Equal(false)

	// RoleNone is a routing result, not a flag
	f.Set(types.RoleNone, true)
	gt.Value(t, f.Get(types.RoleNone)).Equal(false)
}

func TestStageTimes(t *testing.T) {
	var s model.StageTimes
	at := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)

	gt.Value(t, s.Get(model.StageNTESent).IsZero()).Equal(true)

	s.Set(model.StageNTESent, at)
	gt.Value(t, s.Get(model.StageNTESent).Equal(at)).Equal(true)
	gt.Value(t, s.Get(model.StageMOMSent).IsZero()).Equal(true)
}

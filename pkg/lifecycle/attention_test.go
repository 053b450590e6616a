package lifecycle_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
)

func TestAttentionForIsTotal(t *testing.T) {
	// Every reachable status routes somewhere, RoleNone included. The
	// mapping itself is asserted at init; here we pin the rows callers
	// depend on.
	for _, ct := range types.AllCaseTypes() {
		for _, s := range types.StatusesFor(ct) {
			role := lifecycle.AttentionFor(ct, s)
			gt.Bool(t, role.IsValid() || role == types.RoleNone).True()
		}
	}
}

func TestAttentionForIR(t *testing.T) {
	cases := map[types.CaseStatus]types.Role{
		types.StatusPendingReview:         types.RoleHR,
		types.StatusNTE:                   types.RoleRespondent,
		types.StatusRespondentExplained:   types.RoleHR,
		types.StatusScheduledForHearing:   types.RoleRespondent,
		types.StatusMOMUploaded:           types.RoleRespondent,
		types.StatusEscalatedToCompliance: types.RoleCompliance,
		types.StatusForAcknowledgement:    types.RoleRespondent,
		types.StatusAcknowledged:          types.RoleHR,
		types.StatusFindingsSent:          types.RoleNone,
		types.StatusInvalid:               types.RoleReporter,
		types.StatusArchived:              types.RoleNone,
	}
	for status, want := range cases {
		gt.Value(t, lifecycle.AttentionFor(types.CaseTypeIR, status)).Equal(want)
	}
}

func TestAttentionForCoaching(t *testing.T) {
	cases := map[types.CaseStatus]types.Role{
		types.StatusCoachingLog:         types.RoleCoach,
		types.StatusRespondentExplained: types.RoleCoach,
		types.StatusForAcknowledgement:  types.RoleRespondent,
		types.StatusAcknowledged:        types.RoleCoach,
		types.StatusInvalid:             types.RoleReporter,
		types.StatusArchived:            types.RoleNone,
	}
	for status, want := range cases {
		gt.Value(t, lifecycle.AttentionFor(types.CaseTypeCoaching, status)).Equal(want)
	}
}

func TestAttentionForUnknownStatus(t *testing.T) {
	gt.Value(t, lifecycle.AttentionFor(types.CaseTypeIR, types.CaseStatus("Unknown"))).
		Equal(types.RoleNone)
}

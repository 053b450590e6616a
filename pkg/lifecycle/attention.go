package lifecycle

import (
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// attention is the closed status-to-role dispatch: for each reachable
// status, the single role whose read flag is meaningful. The init check
// below walks the full status set of both case types, so an unmapped or
// misspelled status fails at startup instead of silently routing to nobody.
var attention = map[types.CaseType]map[types.CaseStatus]types.Role{
	types.CaseTypeIR: {
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
	},
	types.CaseTypeCoaching: {
		types.StatusCoachingLog:         types.RoleCoach,
		types.StatusRespondentExplained: types.RoleCoach,
		types.StatusForAcknowledgement:  types.RoleRespondent,
		types.StatusAcknowledged:        types.RoleCoach,
		types.StatusInvalid:             types.RoleReporter,
		types.StatusArchived:            types.RoleNone,
	},
}

func init() {
	for _, t := range types.AllCaseTypes() {
		for _, s := range types.StatusesFor(t) {
			if _, ok := attention[t][s]; !ok {
				panic("lifecycle: no attention mapping for " + t.String() + "/" + s.String())
			}
		}
	}
}

// AttentionFor returns the role whose read flag is active at the given
// status, or types.RoleNone when no party holds the next move. The mapping
// is total over the reachable status set.
func AttentionFor(t types.CaseType, s types.CaseStatus) types.Role {
	if role, ok := attention[t][s]; ok {
		return role
	}
	return types.RoleNone
}

package lifecycle

import (
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

type tableKey struct {
	from   types.CaseStatus
	action types.Action
}

var tables map[types.CaseType]map[tableKey]*Rule

func init() {
	tables = map[types.CaseType]map[tableKey]*Rule{
		types.CaseTypeIR:       buildTable(types.CaseTypeIR, irRules),
		types.CaseTypeCoaching: buildTable(types.CaseTypeCoaching, coachingRules),
	}
}

// buildTable indexes the rules and verifies every endpoint belongs to the
// case type's status set. A bad row is a programming error caught at
// startup, not a runtime condition.
func buildTable(t types.CaseType, rules []Rule) map[tableKey]*Rule {
	table := make(map[tableKey]*Rule, len(rules))
	for i := range rules {
		r := &rules[i]
		if !r.From.ValidFor(t) || !r.To.ValidFor(t) {
			panic("lifecycle: rule endpoint outside status set for " + t.String() +
				": " + r.From.String() + " -> " + r.To.String())
		}
		if r.From.IsTerminal() {
			panic("lifecycle: rule departs terminal status " + r.From.String())
		}
		key := tableKey{from: r.From, action: r.Action}
		if _, dup := table[key]; dup {
			panic("lifecycle: duplicate rule " + r.From.String() + "/" + r.Action.String())
		}
		table[key] = r
	}
	return table
}

func requireReason(in *Input) error {
	if strings.TrimSpace(in.InvalidReason) == "" {
		return goerr.Wrap(model.ErrValidation, "invalidReason is required to reject a case")
	}
	return nil
}

func requireExplanation(in *Input) error {
	if strings.TrimSpace(in.Explanation) == "" {
		return goerr.Wrap(model.ErrValidation, "explanation text is required")
	}
	return nil
}

func requireFutureHearing(in *Input) error {
	if in.HearingDate.IsZero() {
		return goerr.Wrap(model.ErrValidation, "hearingDate is required")
	}
	if !in.HearingDate.After(in.Now) {
		return goerr.Wrap(model.ErrValidation, "hearingDate must be in the future",
			goerr.V("hearing_date", in.HearingDate))
	}
	return nil
}

var irRules = []Rule{
	{
		From:   types.StatusPendingReview,
		Action: types.ActionValidate,
		To:     types.StatusNTE,
		Slot:   types.SlotNTE,
		Stage:  model.StageNTESent,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: false,
			types.RoleHR:         true,
		},
	},
	{
		From:   types.StatusPendingReview,
		Action: types.ActionReject,
		To:     types.StatusInvalid,
		FlagResets: map[types.Role]bool{
			types.RoleReporter: false,
			types.RoleHR:       true,
		},
		guard: requireReason,
		apply: func(in *Input, p *model.TransitionPatch) {
			p.InvalidReason = strings.TrimSpace(in.InvalidReason)
		},
	},
	{
		// Respondent-side event: the explanation arrives from outside the
		// HR review flow and hands the ball back to HR.
		From:   types.StatusNTE,
		Action: types.ActionExplain,
		To:     types.StatusRespondentExplained,
		FlagResets: map[types.Role]bool{
			types.RoleHR: false,
		},
		guard: requireExplanation,
		apply: func(in *Input, p *model.TransitionPatch) {
			p.RespondentExplanation = strings.TrimSpace(in.Explanation)
		},
	},
	{
		From:   types.StatusRespondentExplained,
		Action: types.ActionScheduleHearing,
		To:     types.StatusScheduledForHearing,
		Stage:  model.StageHearingScheduled,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: false,
		},
		guard: requireFutureHearing,
		apply: func(in *Input, p *model.TransitionPatch) {
			p.Hearing = &model.Hearing{
				HearingDate: in.HearingDate,
				Witnesses:   in.Witnesses,
			}
		},
	},
	{
		From:   types.StatusScheduledForHearing,
		Action: types.ActionUploadEscalation,
		To:     types.StatusEscalatedToCompliance,
		Slot:   types.SlotEscalation,
		Stage:  model.StageEscalationSent,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: true,
			types.RoleHR:         true,
			types.RoleCompliance: false,
		},
	},
	{
		From:   types.StatusScheduledForHearing,
		Action: types.ActionUploadMOM,
		To:     types.StatusMOMUploaded,
		Slot:   types.SlotMOM,
		Stage:  model.StageMOMSent,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: false,
		},
	},
	{
		From:   types.StatusMOMUploaded,
		Action: types.ActionUploadNDA,
		To:     types.StatusForAcknowledgement,
		Slot:   types.SlotNDA,
		Stage:  model.StageNDASent,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: false,
		},
		apply: func(in *Input, p *model.TransitionPatch) {
			p.SetAcknowledged = model.Bool(false)
		},
	},
	{
		From:   types.StatusForAcknowledgement,
		Action: types.ActionAcknowledge,
		To:     types.StatusAcknowledged,
		FlagResets: map[types.Role]bool{
			types.RoleHR: false,
		},
		apply: func(in *Input, p *model.TransitionPatch) {
			p.SetAcknowledged = model.Bool(true)
			p.AckMessage = strings.TrimSpace(in.AckMessage)
		},
	},
	{
		From:   types.StatusEscalatedToCompliance,
		Action: types.ActionSendFindings,
		To:     types.StatusFindingsSent,
		Slot:   types.SlotFindings,
		Stage:  model.StageFindingsSent,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: true,
			types.RoleHR:         false,
			types.RoleCompliance: true,
		},
	},
}

var coachingRules = []Rule{
	{
		From:   types.StatusCoachingLog,
		Action: types.ActionReject,
		To:     types.StatusInvalid,
		FlagResets: map[types.Role]bool{
			types.RoleReporter: false,
			types.RoleCoach:    true,
		},
		guard: requireReason,
		apply: func(in *Input, p *model.TransitionPatch) {
			p.InvalidReason = strings.TrimSpace(in.InvalidReason)
		},
	},
	{
		From:   types.StatusCoachingLog,
		Action: types.ActionExplain,
		To:     types.StatusRespondentExplained,
		FlagResets: map[types.Role]bool{
			types.RoleCoach: false,
		},
		guard: requireExplanation,
		apply: func(in *Input, p *model.TransitionPatch) {
			p.RespondentExplanation = strings.TrimSpace(in.Explanation)
		},
	},
	{
		From:   types.StatusCoachingLog,
		Action: types.ActionSendForAcknowledgement,
		To:     types.StatusForAcknowledgement,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: false,
		},
		apply: func(in *Input, p *model.TransitionPatch) {
			p.SetAcknowledged = model.Bool(false)
		},
	},
	{
		From:   types.StatusRespondentExplained,
		Action: types.ActionSendForAcknowledgement,
		To:     types.StatusForAcknowledgement,
		FlagResets: map[types.Role]bool{
			types.RoleRespondent: false,
		},
		apply: func(in *Input, p *model.TransitionPatch) {
			p.SetAcknowledged = model.Bool(false)
		},
	},
	{
		From:   types.StatusForAcknowledgement,
		Action: types.ActionAcknowledge,
		To:     types.StatusAcknowledged,
		FlagResets: map[types.Role]bool{
			types.RoleCoach: false,
		},
		apply: func(in *Input, p *model.TransitionPatch) {
			p.SetAcknowledged = model.Bool(true)
			p.AckMessage = strings.TrimSpace(in.AckMessage)
		},
	},
}

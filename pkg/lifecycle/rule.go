package lifecycle

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// Input carries the caller-supplied fields of a transition request. Document
// is non-nil only after its bytes were persisted to the blob store; building
// a patch never does IO.
type Input struct {
	InvalidReason string
	Explanation   string
	HearingDate   time.Time
	Witnesses     []model.Witness
	AckMessage    string
	Document      *model.Document
	Now           time.Time
}

// Rule is one row of a transition table: a guarded edge of the case
// lifecycle graph. guard validates required fields; apply writes the
// rule-specific parts of the patch.
type Rule struct {
	From   types.CaseStatus
	Action types.Action
	To     types.CaseStatus

	// Slot, when set, receives the uploaded document. The document itself
	// is always optional; all owned slots are replaced wholesale by their
	// transition.
	Slot types.SlotName

	// Stage is the timestamp stamped by this transition
	Stage model.StageField

	// FlagResets holds the read-flag values this transition writes
	FlagResets map[types.Role]bool

	guard func(in *Input) error
	apply func(in *Input, p *model.TransitionPatch)
}

// BuildPatch resolves the rule for (caseType, from, action), validates the
// input, and returns the atomic write set. It performs no IO and mutates
// nothing; a validation failure means no write was attempted anywhere. The
// from status is the caller's expected status — whether the case still holds
// it is decided by the repository's compare-and-swap, not here.
func BuildPatch(t types.CaseType, from types.CaseStatus, action types.Action, in *Input) (*model.TransitionPatch, error) {
	rule, err := Resolve(t, from, action)
	if err != nil {
		return nil, err
	}

	if rule.guard != nil {
		if err := rule.guard(in); err != nil {
			return nil, err
		}
	}

	patch := &model.TransitionPatch{
		Status: rule.To,
		Stage:  rule.Stage,
	}
	if len(rule.FlagResets) > 0 {
		patch.FlagSets = make(map[types.Role]bool, len(rule.FlagResets))
		for role, v := range rule.FlagResets {
			patch.FlagSets[role] = v
		}
	}
	if in.Document != nil && rule.Slot != "" {
		patch.SlotWrites = map[types.SlotName][]model.Document{
			rule.Slot: {*in.Document},
		}
	}
	if rule.apply != nil {
		rule.apply(in, patch)
	}

	return patch, nil
}

// Resolve finds the rule for (caseType, from, action). A missing row is a
// validation failure: either the action does not exist at this stage or the
// status is terminal.
func Resolve(t types.CaseType, from types.CaseStatus, action types.Action) (*Rule, error) {
	// archive is uniform: any terminal sink except Archived may be archived
	if action == types.ActionArchive {
		if !from.IsTerminal() || from == types.StatusArchived {
			return nil, goerr.Wrap(model.ErrValidation, "only closed cases can be archived",
				goerr.V(model.StatusKey, from))
		}
		return &archiveRule, nil
	}

	table, ok := tables[t]
	if !ok {
		return nil, goerr.Wrap(model.ErrValidation, "unknown case type", goerr.V("case_type", t))
	}
	rule, ok := table[tableKey{from: from, action: action}]
	if !ok {
		return nil, goerr.Wrap(model.ErrValidation, "no transition for action from current status",
			goerr.V(model.StatusKey, from), goerr.V(model.ActionKey, action))
	}
	return rule, nil
}

var archiveRule = Rule{
	Action: types.ActionArchive,
	To:     types.StatusArchived,
}

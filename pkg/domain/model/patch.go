package model

import (
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// TransitionPatch is the atomic write set a guarded transition produces.
// The repository applies the whole patch, or nothing, under a
// compare-and-swap on the case's current status.
type TransitionPatch struct {
	// Status is the target status of the transition
	Status types.CaseStatus

	// FlagSets holds the read-flag values the transition resets
	FlagSets map[types.Role]bool

	// SetAcknowledged, when non-nil, overwrites the acknowledgement state
	SetAcknowledged *bool
	AckMessage      string

	InvalidReason         string
	RespondentExplanation string
	Hearing               *Hearing

	// SlotWrites replaces the named slots wholesale
	SlotWrites map[types.SlotName][]Document

	// SlotAppends appends to the named slots; capacity is validated before
	// the patch is built, and re-checked by the repository under the lock
	SlotAppends map[types.SlotName][]Document

	// Stage names the timestamp stamped by this transition, StageNone if
	// it stamps nothing
	Stage StageField
}

// Bool returns a pointer to b, for TransitionPatch.SetAcknowledged
func Bool(b bool) *bool {
	return &b
}

// Apply writes the patch onto the case. Callers must hold whatever lock or
// transaction makes the surrounding read-modify-write atomic; Apply itself
// only enforces the record-level invariants (stage stamps are set at most
// once, slots never exceed capacity) and mutates nothing on failure.
func (p *TransitionPatch) Apply(c *Case, now time.Time) error {
	if p.Stage != StageNone && !c.Stages.Get(p.Stage).IsZero() {
		return goerr.New("stage timestamp already set",
			goerr.V("stage", p.Stage), goerr.V(CaseIDKey, c.ID))
	}
	for slot, docs := range p.SlotAppends {
		if len(c.Documents[slot])+len(docs) > slot.Capacity() {
			return goerr.Wrap(ErrEvidenceLimit, "slot over capacity",
				goerr.V(SlotKey, slot), goerr.V(CaseIDKey, c.ID))
		}
	}

	c.Status = p.Status
	for role, v := range p.FlagSets {
		c.ReadFlags.Set(role, v)
	}
	if p.SetAcknowledged != nil {
		c.Acknowledgement.IsAcknowledged = *p.SetAcknowledged
		if p.AckMessage != "" {
			c.Acknowledgement.AckMessage = p.AckMessage
		}
	}
	if p.InvalidReason != "" {
		c.InvalidReason = p.InvalidReason
	}
	if p.RespondentExplanation != "" {
		c.RespondentExplanation = p.RespondentExplanation
	}
	if p.Hearing != nil {
		c.Hearing = p.Hearing
	}
	if len(p.SlotWrites) > 0 || len(p.SlotAppends) > 0 {
		if c.Documents == nil {
			c.Documents = make(map[types.SlotName][]Document)
		}
	}
	for slot, docs := range p.SlotWrites {
		replaced := make([]Document, len(docs))
		copy(replaced, docs)
		c.Documents[slot] = replaced
	}
	for slot, docs := range p.SlotAppends {
		c.Documents[slot] = append(c.Documents[slot], docs...)
	}
	if p.Stage != StageNone {
		c.Stages.Set(p.Stage, now)
	}
	c.UpdatedAt = now

	return nil
}

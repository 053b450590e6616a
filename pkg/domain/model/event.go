package model

// EventType names a fan-out event kind
type EventType string

const (
	EventCaseAdded   EventType = "caseAdded"
	EventCaseUpdated EventType = "caseUpdated"
	EventCaseDeleted EventType = "caseDeleted"
)

// IsValid checks if the event type is valid
func (t EventType) IsValid() bool {
	switch t {
	case EventCaseAdded, EventCaseUpdated, EventCaseDeleted:
		return true
	default:
		return false
	}
}

// CaseEvent is one fan-out notification. Added and Updated carry the full
// latest snapshot; Deleted carries only the ID. Per-case ordering is
// guaranteed by always sending complete state, so subscribers reconcile by
// wholesale replacement, never by field merge.
type CaseEvent struct {
	Type   EventType `json:"type"`
	CaseID int64     `json:"caseId"`
	Case   *Case     `json:"case,omitempty"`
}

// NewCaseAdded builds an added event with a snapshot of c
func NewCaseAdded(c *Case) CaseEvent {
	return CaseEvent{Type: EventCaseAdded, CaseID: c.ID, Case: c.Clone()}
}

// NewCaseUpdated builds an updated event with a snapshot of c
func NewCaseUpdated(c *Case) CaseEvent {
	return CaseEvent{Type: EventCaseUpdated, CaseID: c.ID, Case: c.Clone()}
}

// NewCaseDeleted builds a deleted event for the given case ID
func NewCaseDeleted(id int64) CaseEvent {
	return CaseEvent{Type: EventCaseDeleted, CaseID: id}
}

package model

import (
	"time"

	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// Case is a disciplinary record: an Incident Report or a Coaching log.
// It is the unit of atomicity for the whole engine; every mutation goes
// through a guarded transition or the mark-as-read primitive.
type Case struct {
	ID           int64            `json:"id"`
	CaseType     types.CaseType   `json:"caseType"`
	Status       types.CaseStatus `json:"status"`
	ReporterID   string           `json:"reporterId"`
	RespondentID string           `json:"respondentId"`
	CoachID      string           `json:"coachId,omitempty"`

	Category string `json:"category,omitempty"`
	Level    string `json:"level,omitempty"`
	Remarks  string `json:"remarks,omitempty"`

	InvalidReason         string          `json:"invalidReason,omitempty"`
	RespondentExplanation string          `json:"respondentExplanation,omitempty"`
	Acknowledgement       Acknowledgement `json:"acknowledgement"`
	Hearing               *Hearing        `json:"hearing,omitempty"`

	Documents map[types.SlotName][]Document `json:"documents"`
	ReadFlags ReadFlags                     `json:"readFlags"`
	Stages    StageTimes                    `json:"stages"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Acknowledgement records the respondent's sign-off on a closed case
type Acknowledgement struct {
	IsAcknowledged bool   `json:"isAcknowledged"`
	AckMessage     string `json:"ackMessage,omitempty"`
}

// Hearing holds the scheduled hearing details for an IR case
type Hearing struct {
	HearingDate time.Time `json:"hearingDate"`
	Witnesses   []Witness `json:"witnesses,omitempty"`
}

// Witness identifies a person attached to a hearing
type Witness struct {
	RefID      string `json:"refId"`
	Name       string `json:"name"`
	EmployeeID string `json:"employeeId"`
}

// Document is a stored attachment reference. Bytes live in the blob store;
// the case record carries only metadata and the storage reference.
type Document struct {
	FileName   string `json:"fileName"`
	Size       int64  `json:"size"`
	MimeType   string `json:"mimeType"`
	StorageRef string `json:"storageRef"`
}

// ReadFlags tracks which party has seen the case in its current stage.
// At most one flag is meaningful per status; the attention router decides
// which.
type ReadFlags struct {
	ByReporter   bool `json:"byReporter"`
	ByRespondent bool `json:"byRespondent"`
	ByHR         bool `json:"byHR"`
	ByCompliance bool `json:"byCompliance"`
	ByCoach      bool `json:"byCoach"`
}

// Get returns the flag value for the given role
func (f ReadFlags) Get(r types.Role) bool {
	switch r {
	case types.RoleReporter:
		return f.ByReporter
	case types.RoleRespondent:
		return f.ByRespondent
	case types.RoleHR:
		return f.ByHR
	case types.RoleCompliance:
		return f.ByCompliance
	case types.RoleCoach:
		return f.ByCoach
	default:
		return false
	}
}

// Set writes the flag value for the given role. RoleNone is a no-op.
func (f *ReadFlags) Set(r types.Role, v bool) {
	switch r {
	case types.RoleReporter:
		f.ByReporter = v
	case types.RoleRespondent:
		f.ByRespondent = v
	case types.RoleHR:
		f.ByHR = v
	case types.RoleCompliance:
		f.ByCompliance = v
	case types.RoleCoach:
		f.ByCoach = v
	}
}

// StageTimes holds the set-at-most-once stage timestamps. A zero value means
// the stage has not been reached; the repository rejects any rewrite of a
// non-zero stamp.
type StageTimes struct {
	NTESentAt          time.Time `json:"nteSentDateTime,omitzero"`
	HearingScheduledAt time.Time `json:"schedHearingDateTime,omitzero"`
	EscalationSentAt   time.Time `json:"escalationSentDateTime,omitzero"`
	MOMSentAt          time.Time `json:"momSentDateTime,omitzero"`
	NDASentAt          time.Time `json:"ndaSentDateTime,omitzero"`
	FindingsSentAt     time.Time `json:"findingsSentDateTime,omitzero"`
}

// Get returns the stamp for the given stage field
func (s StageTimes) Get(f StageField) time.Time {
	switch f {
	case StageNTESent:
		return s.NTESentAt
	case StageHearingScheduled:
		return s.HearingScheduledAt
	case StageEscalationSent:
		return s.EscalationSentAt
	case StageMOMSent:
		return s.MOMSentAt
	case StageNDASent:
		return s.NDASentAt
	case StageFindingsSent:
		return s.FindingsSentAt
	default:
		return time.Time{}
	}
}

// Set writes the stamp for the given stage field
func (s *StageTimes) Set(f StageField, t time.Time) {
	switch f {
	case StageNTESent:
		s.NTESentAt = t
	case StageHearingScheduled:
		s.HearingScheduledAt = t
	case StageEscalationSent:
		s.EscalationSentAt = t
	case StageMOMSent:
		s.MOMSentAt = t
	case StageNDASent:
		s.NDASentAt = t
	case StageFindingsSent:
		s.FindingsSentAt = t
	}
}

// StageField names one of the set-at-most-once stage timestamps
type StageField string

const (
	StageNone             StageField = ""
	StageNTESent          StageField = "nteSentDateTime"
	StageHearingScheduled StageField = "schedHearingDateTime"
	StageEscalationSent   StageField = "escalationSentDateTime"
	StageMOMSent          StageField = "momSentDateTime"
	StageNDASent          StageField = "ndaSentDateTime"
	StageFindingsSent     StageField = "findingsSentDateTime"
)

// SlotDocuments returns the documents currently held in a slot
func (c *Case) SlotDocuments(slot types.SlotName) []Document {
	if c.Documents == nil {
		return nil
	}
	return c.Documents[slot]
}

// Clone returns a deep copy of the case
func (c *Case) Clone() *Case {
	copied := *c

	if c.Hearing != nil {
		h := *c.Hearing
		if c.Hearing.Witnesses != nil {
			h.Witnesses = make([]Witness, len(c.Hearing.Witnesses))
			copy(h.Witnesses, c.Hearing.Witnesses)
		}
		copied.Hearing = &h
	}

	if c.Documents != nil {
		copied.Documents = make(map[types.SlotName][]Document, len(c.Documents))
		for slot, docs := range c.Documents {
			d := make([]Document, len(docs))
			copy(d, docs)
			copied.Documents[slot] = d
		}
	}

	return &copied
}

package types

import "github.com/m-mizutani/goerr/v2"

// Action names a guarded transition a caller can request on a case
type Action string

const (
	ActionValidate               Action = "validate"
	ActionReject                 Action = "reject"
	ActionExplain                Action = "explain"
	ActionScheduleHearing        Action = "scheduleHearing"
	ActionUploadEscalation       Action = "uploadEscalation"
	ActionUploadMOM              Action = "uploadMOM"
	ActionUploadNDA              Action = "uploadNDA"
	ActionSendForAcknowledgement Action = "sendForAcknowledgement"
	ActionAcknowledge            Action = "acknowledge"
	ActionSendFindings           Action = "sendFindings"
	ActionArchive                Action = "archive"
)

// AllActions returns all transition actions
func AllActions() []Action {
	return []Action{
		ActionValidate,
		ActionReject,
		ActionExplain,
		ActionScheduleHearing,
		ActionUploadEscalation,
		ActionUploadMOM,
		ActionUploadNDA,
		ActionSendForAcknowledgement,
		ActionAcknowledge,
		ActionSendFindings,
		ActionArchive,
	}
}

// IsValid checks if the action is valid
func (a Action) IsValid() bool {
	for _, v := range AllActions() {
		if v == a {
			return true
		}
	}
	return false
}

// String returns the string representation of the action
func (a Action) String() string {
	return string(a)
}

// ParseAction parses a string into an Action
func ParseAction(s string) (Action, error) {
	a := Action(s)
	if !a.IsValid() {
		return "", goerr.New("invalid action", goerr.V("input", s))
	}
	return a, nil
}

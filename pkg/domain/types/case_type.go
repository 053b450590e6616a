package types

import "github.com/m-mizutani/goerr/v2"

// CaseType distinguishes the two disciplinary record kinds
type CaseType string

const (
	CaseTypeIR       CaseType = "IR"
	CaseTypeCoaching CaseType = "COACHING"
)

// AllCaseTypes returns all valid case types
func AllCaseTypes() []CaseType {
	return []CaseType{
		CaseTypeIR,
		CaseTypeCoaching,
	}
}

// IsValid checks if the case type is valid
func (t CaseType) IsValid() bool {
	switch t {
	case CaseTypeIR, CaseTypeCoaching:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case type
func (t CaseType) String() string {
	return string(t)
}

// InitialStatus returns the status a freshly submitted case starts in
func (t CaseType) InitialStatus() CaseStatus {
	if t == CaseTypeCoaching {
		return StatusCoachingLog
	}
	return StatusPendingReview
}

// ParseCaseType parses a string into a CaseType
func ParseCaseType(s string) (CaseType, error) {
	t := CaseType(s)
	if !t.IsValid() {
		return "", goerr.New("invalid case type", goerr.V("input", s))
	}
	return t, nil
}

package types

import "github.com/m-mizutani/goerr/v2"

// CaseStatus represents the lifecycle stage of a case. The set of valid
// statuses is scoped per CaseType; use ValidFor to check membership.
type CaseStatus string

const (
	// IR lifecycle
	StatusPendingReview         CaseStatus = "PendingReview"
	StatusNTE                   CaseStatus = "NTE"
	StatusRespondentExplained   CaseStatus = "RespondentExplained"
	StatusScheduledForHearing   CaseStatus = "ScheduledForHearing"
	StatusMOMUploaded           CaseStatus = "MOMUploaded"
	StatusEscalatedToCompliance CaseStatus = "EscalatedToCompliance"
	StatusFindingsSent          CaseStatus = "FindingsSent"

	// COACHING lifecycle
	StatusCoachingLog CaseStatus = "CoachingLog"

	// Shared by both lifecycles
	StatusForAcknowledgement CaseStatus = "ForAcknowledgement"
	StatusAcknowledged       CaseStatus = "Acknowledged"
	StatusInvalid            CaseStatus = "Invalid"
	StatusArchived           CaseStatus = "Archived"
)

// StatusesFor returns the valid status set for the given case type
func StatusesFor(t CaseType) []CaseStatus {
	switch t {
	case CaseTypeIR:
		return []CaseStatus{
			StatusPendingReview,
			StatusNTE,
			StatusRespondentExplained,
			StatusScheduledForHearing,
			StatusMOMUploaded,
			StatusEscalatedToCompliance,
			StatusForAcknowledgement,
			StatusAcknowledged,
			StatusFindingsSent,
			StatusInvalid,
			StatusArchived,
		}
	case CaseTypeCoaching:
		return []CaseStatus{
			StatusCoachingLog,
			StatusRespondentExplained,
			StatusForAcknowledgement,
			StatusAcknowledged,
			StatusInvalid,
			StatusArchived,
		}
	default:
		return nil
	}
}

// ValidFor checks whether the status belongs to the lifecycle of the given
// case type
func (s CaseStatus) ValidFor(t CaseType) bool {
	for _, v := range StatusesFor(t) {
		if v == s {
			return true
		}
	}
	return false
}

// IsTerminal reports whether the status is a lifecycle sink. Terminal
// statuses admit no transition other than archive, and Archived admits none.
func (s CaseStatus) IsTerminal() bool {
	switch s {
	case StatusAcknowledged, StatusFindingsSent, StatusInvalid, StatusArchived:
		return true
	default:
		return false
	}
}

// String returns the string representation of the case status
func (s CaseStatus) String() string {
	return string(s)
}

// legacySpellings maps status spellings found in historical records to the
// canonical form. The upstream system wrote "Respondant" in some modules and
// "Respondent" in others; only the canonical spelling exists past the parse
// boundary.
var legacySpellings = map[string]CaseStatus{
	"RespondantExplained":  StatusRespondentExplained,
	"Respondant Explained": StatusRespondentExplained,
	"Respondent Explained": StatusRespondentExplained,
}

// ParseCaseStatus parses a string into a CaseStatus scoped to the given case
// type, normalizing legacy spellings and rejecting anything else
func ParseCaseStatus(t CaseType, s string) (CaseStatus, error) {
	status := CaseStatus(s)
	if canonical, ok := legacySpellings[s]; ok {
		status = canonical
	}
	if !status.ValidFor(t) {
		return "", goerr.New("invalid case status",
			goerr.V("input", s), goerr.V("case_type", t))
	}
	return status, nil
}

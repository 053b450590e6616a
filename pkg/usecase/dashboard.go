package usecase

import (
	"strings"
	"time"

	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

// Filter is a pure predicate a role-scoped dashboard applies over the
// authoritative case list. Filters never mutate and never consult anything
// beyond the case snapshot, so every dashboard sees a consistent slice of
// the same source of truth.
type Filter func(*model.Case) bool

// HRActive matches IR cases still moving through the pipeline
func HRActive(c *model.Case) bool {
	if c.CaseType != types.CaseTypeIR {
		return false
	}
	return c.Status != types.StatusAcknowledged && c.Status != types.StatusInvalid
}

// HRHistory matches settled IR cases, optionally narrowed by free text and
// an inclusive submission-date range. Zero time bounds are open ends.
func HRHistory(query string, from, to time.Time) Filter {
	query = strings.ToLower(strings.TrimSpace(query))

	return func(c *model.Case) bool {
		if c.CaseType != types.CaseTypeIR {
			return false
		}
		if c.Status != types.StatusAcknowledged && c.Status != types.StatusInvalid {
			return false
		}
		if !from.IsZero() && c.CreatedAt.Before(from) {
			return false
		}
		if !to.IsZero() && c.CreatedAt.After(to) {
			return false
		}
		if query == "" {
			return true
		}
		return matchesText(c, query)
	}
}

// ComplianceActive matches cases awaiting a compliance decision, excluding
// any case where the requester is the respondent
func ComplianceActive(requesterID string) Filter {
	return func(c *model.Case) bool {
		return c.Status == types.StatusEscalatedToCompliance && c.RespondentID != requesterID
	}
}

// ComplianceHistory matches cases whose findings went out
func ComplianceHistory(c *model.Case) bool {
	return c.Status == types.StatusFindingsSent
}

// ReporterHistory matches the requester's own submissions
func ReporterHistory(reporterID string) Filter {
	return func(c *model.Case) bool {
		return c.ReporterID == reporterID
	}
}

func matchesText(c *model.Case, query string) bool {
	for _, field := range []string{
		c.Remarks,
		c.Category,
		c.Level,
		c.InvalidReason,
		c.ReporterID,
		c.RespondentID,
	} {
		if strings.Contains(strings.ToLower(field), query) {
			return true
		}
	}
	return false
}

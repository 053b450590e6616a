package memory

import (
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
)

// Memory is the in-memory Repository used for development and tests. It
// mirrors the Firestore backend's semantics, including the compare-and-swap
// transition and the set-true-if-false mark-as-read.
type Memory struct {
	cases *caseRepository
	audit *auditRepository
}

var _ interfaces.Repository = &Memory{}

func New() *Memory {
	return &Memory{
		cases: newCaseRepository(),
		audit: newAuditRepository(),
	}
}

func (m *Memory) Case() interfaces.CaseRepository {
	return m.cases
}

func (m *Memory) Audit() interfaces.AuditRepository {
	return m.audit
}

func (m *Memory) Close() error {
	return nil
}

package usecase

import (
	"context"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
)

// ListOverdue returns the cases breaching the triage SLA at the given
// instant. Overdue is a derived predicate, never persisted, so the listing
// is always consistent with the current clock.
func (uc *CaseUseCase) ListOverdue(ctx context.Context, now time.Time) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases for overdue scan")
	}

	var overdue []*model.Case
	for _, c := range cases {
		if lifecycle.IsOverdue(c, now) {
			overdue = append(overdue, c)
		}
	}
	return overdue, nil
}

package worker_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
	"github.com/workforce-labs/caseflow/pkg/repository/memory"
	"github.com/workforce-labs/caseflow/pkg/service/worker"
)

type countingNotifier struct {
	mu      sync.Mutex
	overdue []int64
}

func (n *countingNotifier) NotifyCaseEvent(ctx context.Context, ev model.CaseEvent) error {
	return nil
}

func (n *countingNotifier) NotifyOverdue(ctx context.Context, c *model.Case) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.overdue = append(n.overdue, c.ID)
	return nil
}

func (n *countingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.overdue)
}

func TestOverdueSweep(t *testing.T) {
	repo := memory.New()
	notifier := &countingNotifier{}
	w := worker.NewOverdueScanWorker(repo, notifier, time.Hour)
	ctx := context.Background()

	created, err := repo.Case().Create(ctx, &model.Case{
		CaseType:     types.CaseTypeIR,
		Status:       types.StatusPendingReview,
		ReporterID:   "E100",
		RespondentID: "E200",
	})
	gt.NoError(t, err).Required()

	breach := created.CreatedAt.Add(lifecycle.TriageSLA)

	t.Run("no notice before the SLA elapses", func(t *testing.T) {
		gt.NoError(t, w.Sweep(ctx, created.CreatedAt.Add(time.Hour))).Required()
		gt.Number(t, notifier.count()).Equal(0)
	})

	t.Run("one notice per breach, not per sweep", func(t *testing.T) {
		gt.NoError(t, w.Sweep(ctx, breach)).Required()
		gt.Number(t, notifier.count()).Equal(1)

		gt.NoError(t, w.Sweep(ctx, breach.Add(time.Hour))).Required()
		gt.Number(t, notifier.count()).Equal(1)
	})

	t.Run("a validated case is forgotten and can breach again", func(t *testing.T) {
		_, err := repo.Case().ApplyTransition(ctx, created.ID, types.StatusPendingReview, &model.TransitionPatch{
			Status: types.StatusNTE,
			SlotWrites: map[types.SlotName][]model.Document{
				types.SlotNTE: {{FileName: "nte.pdf"}},
			},
			Stage: model.StageNTESent,
		})
		gt.NoError(t, err).Required()

		gt.NoError(t, w.Sweep(ctx, breach.Add(2*time.Hour))).Required()
		gt.Number(t, notifier.count()).Equal(1)
	})
}

func TestOverdueWorkerStartStop(t *testing.T) {
	repo := memory.New()
	w := worker.NewOverdueScanWorker(repo, nil, time.Hour)

	w.Start(context.Background())
	w.Stop()
}

package worker

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// DefaultScanInterval is how often the watchdog sweeps the case list
const DefaultScanInterval = time.Hour

// OverdueScanWorker periodically sweeps the case list with the triage SLA
// predicate and notifies HR about newly overdue cases. Overdue is derived,
// not persisted, so the worker only tracks which cases it already flagged
// within this process lifetime to avoid repeating itself every sweep.
//
// Architecture assumptions:
// - Single server instance (no distributed locking)
// - For future horizontal scaling, implement leader election
type OverdueScanWorker struct {
	repo     interfaces.Repository
	notifier interfaces.Notifier
	interval time.Duration
	stopCh   chan struct{}
	doneCh   chan struct{}

	mu       sync.Mutex
	notified map[int64]struct{}
}

// NewOverdueScanWorker creates a watchdog sweeping at the given interval
func NewOverdueScanWorker(repo interfaces.Repository, notifier interfaces.Notifier, interval time.Duration) *OverdueScanWorker {
	if interval <= 0 {
		interval = DefaultScanInterval
	}
	return &OverdueScanWorker{
		repo:     repo,
		notifier: notifier,
		interval: interval,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
		notified: make(map[int64]struct{}),
	}
}

// Start begins the background sweep loop without blocking server startup
func (w *OverdueScanWorker) Start(ctx context.Context) {
	logging.Default().Info("Overdue scan worker starting",
		"interval", w.interval.String())

	go w.run(ctx)
}

// Stop signals the worker to stop and waits for completion
func (w *OverdueScanWorker) Stop() {
	logging.Default().Info("Overdue scan worker stopping")
	close(w.stopCh)
	<-w.doneCh
	logging.Default().Info("Overdue scan worker stopped")
}

func (w *OverdueScanWorker) run(ctx context.Context) {
	defer close(w.doneCh)

	if err := w.Sweep(ctx, time.Now().UTC()); err != nil {
		logging.Default().Error("Initial overdue sweep failed (will retry next interval)",
			"error", err.Error())
	}

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if err := w.Sweep(ctx, time.Now().UTC()); err != nil {
				// Log error but continue worker
				logging.Default().Error("Overdue sweep failed (will retry next interval)",
					"error", err.Error())
			}

		case <-w.stopCh:
			return

		case <-ctx.Done():
			logging.Default().Info("Overdue scan worker context cancelled")
			return
		}
	}
}

// Sweep performs a single scan cycle at the given instant
func (w *OverdueScanWorker) Sweep(ctx context.Context, now time.Time) error {
	cases, err := w.repo.Case().List(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to list cases for overdue sweep")
	}

	for _, c := range cases {
		if !lifecycle.IsOverdue(c, now) {
			// A validated case stops being overdue; forget it so a future
			// reopen gets flagged again.
			w.forget(c.ID)
			continue
		}
		if !w.remember(c.ID) {
			continue
		}

		logging.From(ctx).Warn("case breached triage SLA",
			"case_id", c.ID,
			"created_at", c.CreatedAt,
			"age", now.Sub(c.CreatedAt).String())

		if w.notifier != nil {
			if err := w.notifier.NotifyOverdue(ctx, c); err != nil {
				logging.From(ctx).Error("failed to send overdue notice",
					"case_id", c.ID, "error", err.Error())
			}
		}
	}

	return nil
}

// remember returns true the first time a case ID is seen
func (w *OverdueScanWorker) remember(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if _, seen := w.notified[id]; seen {
		return false
	}
	w.notified[id] = struct{}{}
	return true
}

func (w *OverdueScanWorker) forget(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.notified, id)
}

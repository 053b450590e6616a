package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
)

type auditRepository struct {
	mu      sync.RWMutex
	entries map[string]*model.AuditEntry
}

func newAuditRepository() *auditRepository {
	return &auditRepository{
		entries: make(map[string]*model.AuditEntry),
	}
}

func (r *auditRepository) Record(ctx context.Context, entry *model.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored := *entry
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}
	r.entries[stored.ID] = &stored
	return nil
}

func (r *auditRepository) ListByCase(ctx context.Context, caseID int64) ([]*model.AuditEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var entries []*model.AuditEntry
	for _, e := range r.entries {
		if e.CaseID == caseID {
			copied := *e
			entries = append(entries, &copied)
		}
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].CreatedAt.Before(entries[j].CreatedAt)
	})
	return entries, nil
}

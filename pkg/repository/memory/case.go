package memory

import (
	"context"
	"sync"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
)

type caseRepository struct {
	mu     sync.RWMutex
	cases  map[int64]*model.Case
	nextID int64
}

func newCaseRepository() *caseRepository {
	return &caseRepository{
		cases:  make(map[int64]*model.Case),
		nextID: 1,
	}
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := time.Now().UTC()
	created := c.Clone()
	created.ID = r.nextID
	created.CreatedAt = now
	created.UpdatedAt = now
	r.nextID++

	r.cases[created.ID] = created
	return created.Clone(), nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	return c.Clone(), nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cases := make([]*model.Case, 0, len(r.cases))
	for _, c := range r.cases {
		cases = append(cases, c.Clone())
	}
	return cases, nil
}

func (r *caseRepository) ApplyTransition(ctx context.Context, id int64, expectedStatus types.CaseStatus, patch *model.TransitionPatch) (*model.Case, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	if c.Status != expectedStatus {
		return nil, goerr.Wrap(model.ErrStaleState, "case status changed since last read",
			goerr.V(model.CaseIDKey, id),
			goerr.V(model.ExpectedKey, expectedStatus),
			goerr.V(model.StatusKey, c.Status))
	}

	// Apply onto a clone so a rejected patch leaves the stored record
	// untouched.
	updated := c.Clone()
	if err := patch.Apply(updated, time.Now().UTC()); err != nil {
		return nil, err
	}

	r.cases[id] = updated
	return updated.Clone(), nil
}

func (r *caseRepository) MarkRead(ctx context.Context, id int64, role types.Role) (*model.Case, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.cases[id]
	if !exists {
		return nil, false, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	if c.ReadFlags.Get(role) {
		return c.Clone(), false, nil
	}

	updated := c.Clone()
	updated.ReadFlags.Set(role, true)
	updated.UpdatedAt = time.Now().UTC()
	r.cases[id] = updated
	return updated.Clone(), true, nil
}

func (r *caseRepository) Delete(ctx context.Context, id int64, requesterID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	c, exists := r.cases[id]
	if !exists {
		return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
	}
	if c.ReporterID != requesterID {
		return goerr.Wrap(model.ErrForbidden, "only the reporter can delete a case",
			goerr.V(model.CaseIDKey, id))
	}
	if c.Status != c.CaseType.InitialStatus() {
		return goerr.Wrap(model.ErrForbidden, "case already progressed past initial review",
			goerr.V(model.CaseIDKey, id), goerr.V(model.StatusKey, c.Status))
	}

	delete(r.cases, id)
	return nil
}

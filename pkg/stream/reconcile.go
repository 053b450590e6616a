package stream

import (
	"sort"
	"sync"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
)

// CaseList is a subscriber's cached view of the authoritative case list:
// one owned keyed map, mutated only through Apply and Resync. Events carry
// full snapshots, so reconciliation is wholesale replacement by ID — never
// a field merge — which makes duplicate delivery and cross-case reordering
// harmless.
type CaseList struct {
	mu    sync.RWMutex
	cases map[int64]*model.Case
}

func NewCaseList() *CaseList {
	return &CaseList{
		cases: make(map[int64]*model.Case),
	}
}

// Apply reconciles one event into the list. An event with an unrecognized
// shape is returned as an error, never silently dropped: the caller must
// fall back to a full Resync.
func (l *CaseList) Apply(ev model.CaseEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	switch ev.Type {
	case model.EventCaseAdded, model.EventCaseUpdated:
		if ev.Case == nil || ev.Case.ID != ev.CaseID {
			return goerr.New("malformed case event", goerr.V("type", ev.Type),
				goerr.V(model.CaseIDKey, ev.CaseID))
		}
		l.cases[ev.CaseID] = ev.Case.Clone()
	case model.EventCaseDeleted:
		delete(l.cases, ev.CaseID)
	default:
		return goerr.New("unrecognized event type", goerr.V("type", ev.Type))
	}
	return nil
}

// Resync replaces the whole cached list with an authoritative fetch. Clients
// call this on every (re)connect before trusting incremental events.
func (l *CaseList) Resync(cases []*model.Case) {
	replaced := make(map[int64]*model.Case, len(cases))
	for _, c := range cases {
		replaced[c.ID] = c.Clone()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.cases = replaced
}

// Get returns the cached case by ID
func (l *CaseList) Get(id int64) (*model.Case, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	c, ok := l.cases[id]
	if !ok {
		return nil, false
	}
	return c.Clone(), true
}

// Snapshot returns the cached cases, newest first
func (l *CaseList) Snapshot() []*model.Case {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cases := make([]*model.Case, 0, len(l.cases))
	for _, c := range l.cases {
		cases = append(cases, c.Clone())
	}
	sort.Slice(cases, func(i, j int) bool {
		if cases[i].CreatedAt.Equal(cases[j].CreatedAt) {
			return cases[i].ID > cases[j].ID
		}
		return cases[i].CreatedAt.After(cases[j].CreatedAt)
	})
	return cases
}

// Len returns the cached case count
func (l *CaseList) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.cases)
}

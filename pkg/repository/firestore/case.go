package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

type caseRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newCaseRepository(client *firestore.Client) *caseRepository {
	return &caseRepository{client: client}
}

func (r *caseRepository) casesCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_cases"
	}
	return "cases"
}

func (r *caseRepository) counterCollection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_counters"
	}
	return "counters"
}

func (r *caseRepository) getNextID(ctx context.Context) (int64, error) {
	counterRef := r.client.Collection(r.counterCollection()).Doc("case_counter")

	var nextID int64
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(counterRef)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				nextID = 1
				return tx.Set(counterRef, map[string]interface{}{
					"value": nextID,
				})
			}
			return goerr.Wrap(err, "failed to get counter")
		}

		currentValue, err := doc.DataAt("value")
		if err != nil {
			return goerr.Wrap(err, "failed to get counter value")
		}

		val, ok := currentValue.(int64)
		if !ok {
			return goerr.New("counter value is not of type int64", goerr.V("value", currentValue))
		}
		nextID = val + 1
		return tx.Update(counterRef, []firestore.Update{
			{Path: "value", Value: nextID},
		})
	})
	if err != nil {
		return 0, goerr.Wrap(err, "failed to get next ID")
	}

	return nextID, nil
}

func (r *caseRepository) docRef(id int64) *firestore.DocumentRef {
	return r.client.Collection(r.casesCollection()).Doc(fmt.Sprintf("%d", id))
}

func (r *caseRepository) Create(ctx context.Context, c *model.Case) (*model.Case, error) {
	nextID, err := r.getNextID(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	created := c.Clone()
	created.ID = nextID
	created.CreatedAt = now
	created.UpdatedAt = now

	if _, err := r.docRef(created.ID).Set(ctx, created); err != nil {
		return nil, goerr.Wrap(err, "failed to create case", goerr.V(model.CaseIDKey, created.ID))
	}

	return created, nil
}

func (r *caseRepository) Get(ctx context.Context, id int64) (*model.Case, error) {
	docSnap, err := r.docRef(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
		}
		return nil, goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
	}

	var c model.Case
	if err := docSnap.DataTo(&c); err != nil {
		return nil, goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
	}
	return &c, nil
}

func (r *caseRepository) List(ctx context.Context) ([]*model.Case, error) {
	iter := r.client.Collection(r.casesCollection()).Documents(ctx)
	defer iter.Stop()

	var cases []*model.Case
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate cases")
		}

		var c model.Case
		if err := docSnap.DataTo(&c); err != nil {
			return nil, goerr.Wrap(err, "failed to decode case", goerr.V("doc", docSnap.Ref.ID))
		}
		cases = append(cases, &c)
	}
	return cases, nil
}

func (r *caseRepository) ApplyTransition(ctx context.Context, id int64, expectedStatus types.CaseStatus, patch *model.TransitionPatch) (*model.Case, error) {
	ref := r.docRef(id)

	var updated *model.Case
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
		}

		var c model.Case
		if err := doc.DataTo(&c); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
		}

		if c.Status != expectedStatus {
			return goerr.Wrap(model.ErrStaleState, "case status changed since last read",
				goerr.V(model.CaseIDKey, id),
				goerr.V(model.ExpectedKey, expectedStatus),
				goerr.V(model.StatusKey, c.Status))
		}

		if err := patch.Apply(&c, time.Now().UTC()); err != nil {
			return err
		}

		updated = &c
		return tx.Set(ref, &c)
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

func (r *caseRepository) MarkRead(ctx context.Context, id int64, role types.Role) (*model.Case, bool, error) {
	ref := r.docRef(id)

	var result *model.Case
	var marked bool
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
		}

		var c model.Case
		if err := doc.DataTo(&c); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
		}

		// Retried transactions must not leak a stale positive.
		marked = false
		if c.ReadFlags.Get(role) {
			result = &c
			return nil
		}

		c.ReadFlags.Set(role, true)
		c.UpdatedAt = time.Now().UTC()
		marked = true
		result = &c
		return tx.Set(ref, &c)
	})
	if err != nil {
		return nil, false, err
	}

	return result, marked, nil
}

func (r *caseRepository) Delete(ctx context.Context, id int64, requesterID string) error {
	ref := r.docRef(id)

	return r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		doc, err := tx.Get(ref)
		if err != nil {
			if status.Code(err) == codes.NotFound {
				return goerr.Wrap(model.ErrNotFound, "case not found", goerr.V(model.CaseIDKey, id))
			}
			return goerr.Wrap(err, "failed to get case", goerr.V(model.CaseIDKey, id))
		}

		var c model.Case
		if err := doc.DataTo(&c); err != nil {
			return goerr.Wrap(err, "failed to decode case", goerr.V(model.CaseIDKey, id))
		}

		if c.ReporterID != requesterID {
			return goerr.Wrap(model.ErrForbidden, "only the reporter can delete a case",
				goerr.V(model.CaseIDKey, id))
		}
		if c.Status != c.CaseType.InitialStatus() {
			return goerr.Wrap(model.ErrForbidden, "case already progressed past initial review",
				goerr.V(model.CaseIDKey, id), goerr.V(model.StatusKey, c.Status))
		}

		return tx.Delete(ref)
	})
}

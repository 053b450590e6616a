package firestore

import (
	"context"
	"time"

	"cloud.google.com/go/firestore"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"google.golang.org/api/iterator"
)

type auditRepository struct {
	client           *firestore.Client
	collectionPrefix string
}

func newAuditRepository(client *firestore.Client) *auditRepository {
	return &auditRepository{client: client}
}

func (r *auditRepository) collection() string {
	if r.collectionPrefix != "" {
		return r.collectionPrefix + "_audit"
	}
	return "audit"
}

func (r *auditRepository) Record(ctx context.Context, entry *model.AuditEntry) error {
	stored := *entry
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.CreatedAt.IsZero() {
		stored.CreatedAt = time.Now().UTC()
	}

	if _, err := r.client.Collection(r.collection()).Doc(stored.ID).Set(ctx, &stored); err != nil {
		return goerr.Wrap(err, "failed to record audit entry",
			goerr.V(model.CaseIDKey, stored.CaseID), goerr.V(model.ActionKey, stored.Action))
	}
	return nil
}

func (r *auditRepository) ListByCase(ctx context.Context, caseID int64) ([]*model.AuditEntry, error) {
	iter := r.client.Collection(r.collection()).
		Where("CaseID", "==", caseID).
		OrderBy("CreatedAt", firestore.Asc).
		Documents(ctx)
	defer iter.Stop()

	var entries []*model.AuditEntry
	for {
		docSnap, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, goerr.Wrap(err, "failed to iterate audit entries", goerr.V(model.CaseIDKey, caseID))
		}

		var e model.AuditEntry
		if err := docSnap.DataTo(&e); err != nil {
			return nil, goerr.Wrap(err, "failed to decode audit entry", goerr.V("doc", docSnap.Ref.ID))
		}
		entries = append(entries, &e)
	}
	return entries, nil
}

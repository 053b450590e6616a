package usecase

import (
	"context"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
	"github.com/workforce-labs/caseflow/pkg/utils/async"
	"github.com/workforce-labs/caseflow/pkg/utils/errutil"
	"golang.org/x/sync/errgroup"
)

// CaseUseCase drives the disciplinary-case lifecycle: submission, guarded
// transitions, mark-as-read, evidence, deletion, and the role-scoped views.
type CaseUseCase struct {
	repo      interfaces.Repository
	blob      interfaces.BlobStore
	publisher interfaces.Publisher
	notifier  interfaces.Notifier
	directory interfaces.Directory
}

// UploadInput carries one document to be persisted before its transition
type UploadInput struct {
	FileName string
	MimeType string
	Reader   io.Reader
}

// CreateCaseInput is a case submission
type CreateCaseInput struct {
	CaseType     types.CaseType
	ReporterID   string
	RespondentID string
	CoachID      string
	Category     string
	Level        string
	Remarks      string
	Evidence     []*UploadInput
}

func (in *CreateCaseInput) validate() error {
	if !in.CaseType.IsValid() {
		return goerr.Wrap(model.ErrValidation, "invalid case type", goerr.V("case_type", in.CaseType))
	}
	if strings.TrimSpace(in.ReporterID) == "" {
		return goerr.Wrap(model.ErrValidation, "reporterId is required")
	}
	if strings.TrimSpace(in.RespondentID) == "" {
		return goerr.Wrap(model.ErrValidation, "respondentId is required")
	}
	if in.CaseType == types.CaseTypeCoaching && strings.TrimSpace(in.CoachID) == "" {
		return goerr.Wrap(model.ErrValidation, "coachId is required for coaching cases")
	}
	if len(in.Evidence) > types.SlotEvidence.Capacity() {
		return goerr.Wrap(model.ErrEvidenceLimit, "too many evidence documents",
			goerr.V("count", len(in.Evidence)),
			goerr.V("capacity", types.SlotEvidence.Capacity()))
	}
	return nil
}

// CreateCase submits a new case in its initial status. Evidence bytes are
// persisted first; any upload failure aborts the submission entirely.
func (uc *CaseUseCase) CreateCase(ctx context.Context, in *CreateCaseInput) (*model.Case, error) {
	if err := in.validate(); err != nil {
		return nil, err
	}
	if err := uc.resolveParties(ctx, in); err != nil {
		return nil, err
	}

	// Uploads run concurrently, but the slot keeps submission order.
	evidence := make([]model.Document, len(in.Evidence))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, up := range in.Evidence {
		eg.Go(func() error {
			doc, err := uc.uploadDocument(egCtx, up)
			if err != nil {
				return err
			}
			evidence[i] = *doc
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	c := &model.Case{
		CaseType:     in.CaseType,
		Status:       in.CaseType.InitialStatus(),
		ReporterID:   in.ReporterID,
		RespondentID: in.RespondentID,
		CoachID:      in.CoachID,
		Category:     in.Category,
		Level:        in.Level,
		Remarks:      in.Remarks,
		// The submitter has seen their own case; everyone else is notified
		// through their dashboards.
		ReadFlags: model.ReadFlags{ByReporter: true},
	}
	if len(evidence) > 0 {
		c.Documents = map[types.SlotName][]model.Document{
			types.SlotEvidence: evidence,
		}
	}

	created, err := uc.repo.Case().Create(ctx, c)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to create case")
	}

	ev := model.NewCaseAdded(created)
	uc.publish(ev)
	uc.recordAudit(ctx, &model.AuditEntry{
		CaseID:   created.ID,
		Action:   "create",
		ActorID:  created.ReporterID,
		ToStatus: created.Status,
	})
	uc.notify(ctx, ev)

	return created, nil
}

// GetCase retrieves a case without touching read flags
func (uc *CaseUseCase) GetCase(ctx context.Context, id int64) (*model.Case, error) {
	return uc.repo.Case().Get(ctx, id)
}

// ViewCase retrieves a case on behalf of a role-scoped dashboard. When the
// viewer's role holds the active read flag and it is still unread, the flag
// is flipped atomically; exactly one concurrent viewer observes
// justMarkedRead = true.
func (uc *CaseUseCase) ViewCase(ctx context.Context, id int64, role types.Role) (*model.Case, bool, error) {
	if !role.IsValid() {
		return nil, false, goerr.Wrap(model.ErrValidation, "invalid viewer role", goerr.V(model.RoleKey, role))
	}

	c, err := uc.repo.Case().Get(ctx, id)
	if err != nil {
		return nil, false, err
	}

	if lifecycle.AttentionFor(c.CaseType, c.Status) != role || c.ReadFlags.Get(role) {
		return c, false, nil
	}

	return uc.repo.Case().MarkRead(ctx, id, role)
}

// ListCases returns all cases, optionally narrowed by a dashboard filter
func (uc *CaseUseCase) ListCases(ctx context.Context, filter Filter) ([]*model.Case, error) {
	cases, err := uc.repo.Case().List(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to list cases")
	}
	if filter == nil {
		return cases, nil
	}

	filtered := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		if filter(c) {
			filtered = append(filtered, c)
		}
	}
	return filtered, nil
}

// DeleteCase hard-deletes a case. The repository enforces that only the
// reporter may delete and only while the case is still in its initial
// status.
func (uc *CaseUseCase) DeleteCase(ctx context.Context, id int64, requesterID string) error {
	if err := uc.repo.Case().Delete(ctx, id, requesterID); err != nil {
		return err
	}

	ev := model.NewCaseDeleted(id)
	uc.publish(ev)
	uc.recordAudit(ctx, &model.AuditEntry{
		CaseID:  id,
		Action:  "delete",
		ActorID: requesterID,
	})
	uc.notify(ctx, ev)

	return nil
}

// AuditTrail returns the recorded mutations of a case, oldest first
func (uc *CaseUseCase) AuditTrail(ctx context.Context, id int64) ([]*model.AuditEntry, error) {
	if _, err := uc.repo.Case().Get(ctx, id); err != nil {
		return nil, err
	}
	return uc.repo.Audit().ListByCase(ctx, id)
}

// resolveParties checks the named parties against the directory when one is
// configured
func (uc *CaseUseCase) resolveParties(ctx context.Context, in *CreateCaseInput) error {
	if uc.directory == nil {
		return nil
	}

	ids := []string{in.ReporterID, in.RespondentID}
	if in.CoachID != "" {
		ids = append(ids, in.CoachID)
	}
	for _, id := range ids {
		if _, err := uc.directory.ResolveUser(ctx, id); err != nil {
			return goerr.Wrap(model.ErrValidation, "unknown party", goerr.V("id", id))
		}
	}
	return nil
}

// uploadDocument persists document bytes and returns the committed metadata
func (uc *CaseUseCase) uploadDocument(ctx context.Context, up *UploadInput) (*model.Document, error) {
	if up == nil || up.Reader == nil || strings.TrimSpace(up.FileName) == "" {
		return nil, goerr.Wrap(model.ErrValidation, "document file is incomplete")
	}

	ref, err := uc.blob.Upload(ctx, up.FileName, up.MimeType, up.Reader)
	if err != nil {
		return nil, goerr.Wrap(model.ErrUploadFailure, "failed to store document bytes",
			goerr.V("file_name", up.FileName))
	}

	return &model.Document{
		FileName:   up.FileName,
		Size:       ref.Size,
		MimeType:   ref.MimeType,
		StorageRef: ref.StorageRef,
	}, nil
}

func (uc *CaseUseCase) publish(ev model.CaseEvent) {
	if uc.publisher != nil {
		uc.publisher.Publish(ev)
	}
}

func (uc *CaseUseCase) recordAudit(ctx context.Context, entry *model.AuditEntry) {
	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := uc.repo.Audit().Record(ctx, entry); err != nil {
			return errutil.Handle(ctx, err, "failed to record audit entry")
		}
		return nil
	})
}

func (uc *CaseUseCase) notify(ctx context.Context, ev model.CaseEvent) {
	if uc.notifier == nil {
		return
	}
	async.Dispatch(ctx, func(ctx context.Context) error {
		if err := uc.notifier.NotifyCaseEvent(ctx, ev); err != nil {
			return errutil.Handle(ctx, err, "failed to send case notice")
		}
		return nil
	})
}

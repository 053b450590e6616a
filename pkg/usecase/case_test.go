package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/repository/memory"
	"github.com/workforce-labs/caseflow/pkg/service/blob"
	"github.com/workforce-labs/caseflow/pkg/service/directory"
	"github.com/workforce-labs/caseflow/pkg/usecase"
)

func newTestUseCases(opts ...usecase.Option) (*usecase.UseCases, *memory.Memory, *blob.Memory) {
	repo := memory.New()
	store := blob.NewMemory()
	return usecase.New(repo, store, opts...), repo, store
}

func upload(name, body string) *usecase.UploadInput {
	return &usecase.UploadInput{
		FileName: name,
		MimeType: "application/octet-stream",
		Reader:   strings.NewReader(body),
	}
}

func irInput() *usecase.CreateCaseInput {
	return &usecase.CreateCaseInput{
		CaseType:     types.CaseTypeIR,
		ReporterID:   "E100",
		RespondentID: "E200",
		Category:     "attendance",
		Level:        "L1",
		Remarks:      "Repeated tardiness in September",
	}
}

func TestCreateCase(t *testing.T) {
	t.Run("starts in the initial status with reporter marked read", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		created, err := uc.Case.CreateCase(ctx, irInput())
		gt.NoError(t, err).Required()

		gt.Value(t, created.Status).Equal(types.StatusPendingReview)
		gt.Value(t, created.ReadFlags.ByReporter).Equal(true)
		gt.Value(t, created.ReadFlags.ByHR).Equal(false)
		gt.Value(t, created.ID).NotEqual(int64(0))
	})

	t.Run("stores up to two evidence documents", func(t *testing.T) {
		uc, _, store := newTestUseCases()
		ctx := context.Background()

		in := irInput()
		in.Evidence = []*usecase.UploadInput{
			upload("slip-1.png", "image-bytes-1"),
			upload("slip-2.png", "image-bytes-2"),
		}

		created, err := uc.Case.CreateCase(ctx, in)
		gt.NoError(t, err).Required()

		docs := created.Documents[types.SlotEvidence]
		gt.A(t, docs).Length(2)
		gt.Value(t, docs[0].FileName).Equal("slip-1.png")
		gt.Value(t, docs[1].FileName).Equal("slip-2.png")

		data, ok := store.Object(docs[0].StorageRef)
		gt.Bool(t, ok).True()
		gt.Value(t, string(data)).Equal("image-bytes-1")
	})

	t.Run("rejects three evidence documents", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		in := irInput()
		in.Evidence = []*usecase.UploadInput{
			upload("a.png", "a"), upload("b.png", "b"), upload("c.png", "c"),
		}

		_, err := uc.Case.CreateCase(ctx, in)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrEvidenceLimit)).True()
	})

	t.Run("coaching requires a coach", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		in := &usecase.CreateCaseInput{
			CaseType:     types.CaseTypeCoaching,
			ReporterID:   "E100",
			RespondentID: "E200",
		}
		_, err := uc.Case.CreateCase(ctx, in)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrValidation)).True()

		in.CoachID = "E300"
		created, err := uc.Case.CreateCase(ctx, in)
		gt.NoError(t, err).Required()
		gt.Value(t, created.Status).Equal(types.StatusCoachingLog)
	})

	t.Run("a failed evidence upload aborts the submission", func(t *testing.T) {
		uc, repo, store := newTestUseCases()
		ctx := context.Background()

		store.FailWith(errors.New("bucket unavailable"))

		in := irInput()
		in.Evidence = []*usecase.UploadInput{upload("a.png", "a")}

		_, err := uc.Case.CreateCase(ctx, in)
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrUploadFailure)).True()

		cases, err := repo.Case().List(ctx)
		gt.NoError(t, err).Required()
		gt.A(t, cases).Length(0)
	})

	t.Run("unknown parties fail when a directory is configured", func(t *testing.T) {
		roster := directory.FromUsers([]*model.User{
			{ID: "E100", FirstName: "Ana", LastName: "Lim", Role: types.RoleReporter, EmployeeID: "EMP-100"},
		})
		uc, _, _ := newTestUseCases(usecase.WithDirectory(roster))
		ctx := context.Background()

		_, err := uc.Case.CreateCase(ctx, irInput())
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrValidation)).True()
	})
}

func TestViewCase(t *testing.T) {
	t.Run("the attention role flips the flag once", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		created, err := uc.Case.CreateCase(ctx, irInput())
		gt.NoError(t, err).Required()

		// PendingReview routes attention to HR
		c, marked, err := uc.Case.ViewCase(ctx, created.ID, types.RoleHR)
		gt.NoError(t, err).Required()
		gt.Value(t, marked).Equal(true)
		gt.Value(t, c.ReadFlags.ByHR).Equal(true)

		_, marked, err = uc.Case.ViewCase(ctx, created.ID, types.RoleHR)
		gt.NoError(t, err).Required()
		gt.Value(t, marked).Equal(false)
	})

	t.Run("other roles view without touching flags", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		created, err := uc.Case.CreateCase(ctx, irInput())
		gt.NoError(t, err).Required()

		c, marked, err := uc.Case.ViewCase(ctx, created.ID, types.RoleCompliance)
		gt.NoError(t, err).Required()
		gt.Value(t, marked).Equal(false)
		gt.Value(t, c.ReadFlags.ByCompliance).Equal(false)
	})

	t.Run("rejects an invalid role", func(t *testing.T) {
		uc, _, _ := newTestUseCases()
		ctx := context.Background()

		created, err := uc.Case.CreateCase(ctx, irInput())
		gt.NoError(t, err).Required()

		_, _, err = uc.Case.ViewCase(ctx, created.ID, types.Role("auditor"))
		gt.Error(t, err)
		gt.Bool(t, errors.Is(err, model.ErrValidation)).True()
	})
}

func TestDeleteCase(t *testing.T) {
	uc, _, _ := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	err = uc.Case.DeleteCase(ctx, created.ID, "E999")
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, model.ErrForbidden)).True()

	gt.NoError(t, uc.Case.DeleteCase(ctx, created.ID, "E100")).Required()

	_, err = uc.Case.GetCase(ctx, created.ID)
	gt.Bool(t, errors.Is(err, model.ErrNotFound)).True()
}

func TestAuditTrail(t *testing.T) {
	uc, _, _ := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	// The trail is written asynchronously after the mutation commits.
	var entries []*model.AuditEntry
	for i := 0; i < 50; i++ {
		entries, err = uc.Case.AuditTrail(ctx, created.ID)
		gt.NoError(t, err).Required()
		if len(entries) > 0 {
			break
		}
		time.Sleep(20 * time.Millisecond)
	}

	gt.A(t, entries).Length(1)
	gt.Value(t, entries[0].Action).Equal("create")
	gt.Value(t, entries[0].ToStatus).Equal(types.StatusPendingReview)
}

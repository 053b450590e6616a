package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/usecase"
)

func TestTransitionFullIRPipeline(t *testing.T) {
	uc, _, _ := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	// HR validates: NTE goes out
	c, err := uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionValidate,
		ExpectedStatus: "PendingReview",
		ActorID:        "HR-01",
		Upload:         upload("nte.pdf", "notice to explain"),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusNTE)
	gt.A(t, c.Documents[types.SlotNTE]).Length(1)
	gt.Bool(t, c.Stages.NTESentAt.IsZero()).False()
	gt.Value(t, c.ReadFlags.ByRespondent).Equal(false)

	// Respondent explains
	c, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionExplain,
		ExpectedStatus: "NTE",
		ActorID:        "E200",
		Explanation:    "I was on approved medical leave",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusRespondentExplained)
	gt.Value(t, c.RespondentExplanation).Equal("I was on approved medical leave")
	gt.Value(t, c.ReadFlags.ByHR).Equal(false)

	// HR schedules the hearing
	hearingAt := time.Now().UTC().Add(72 * time.Hour)
	c, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionScheduleHearing,
		ExpectedStatus: "RespondentExplained",
		ActorID:        "HR-01",
		HearingDate:    hearingAt,
		Witnesses:      []model.Witness{{RefID: "W1", Name: "Ben Cruz", EmployeeID: "E310"}},
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusScheduledForHearing)
	gt.Value(t, c.Hearing).NotNil()
	gt.A(t, c.Hearing.Witnesses).Length(1)

	// Minutes of the meeting
	c, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionUploadMOM,
		ExpectedStatus: "ScheduledForHearing",
		ActorID:        "HR-01",
		Upload:         upload("mom.pdf", "minutes"),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusMOMUploaded)

	// NDA primes acknowledgement
	c, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionUploadNDA,
		ExpectedStatus: "MOMUploaded",
		ActorID:        "HR-01",
		Upload:         upload("nda.pdf", "decision"),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusForAcknowledgement)
	gt.Value(t, c.Acknowledgement.IsAcknowledged).Equal(false)

	// Respondent signs off
	c, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionAcknowledge,
		ExpectedStatus: "ForAcknowledgement",
		ActorID:        "E200",
		AckMessage:     "Received and understood",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusAcknowledged)
	gt.Value(t, c.Acknowledgement.IsAcknowledged).Equal(true)
	gt.Value(t, c.Acknowledgement.AckMessage).Equal("Received and understood")
	gt.Bool(t, c.Status.IsTerminal()).True()

	// And into the archive
	c, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionArchive,
		ExpectedStatus: "Acknowledged",
		ActorID:        "HR-01",
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusArchived)
}

func TestTransitionEscalationPath(t *testing.T) {
	uc, _, _ := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	steps := []*usecase.TransitionInput{
		{Action: types.ActionValidate, ExpectedStatus: "PendingReview", ActorID: "HR-01", Upload: upload("nte.pdf", "nte")},
		{Action: types.ActionExplain, ExpectedStatus: "NTE", ActorID: "E200", Explanation: "disputed"},
		{Action: types.ActionScheduleHearing, ExpectedStatus: "RespondentExplained", ActorID: "HR-01",
			HearingDate: time.Now().UTC().Add(24 * time.Hour)},
	}
	for _, step := range steps {
		_, err := uc.Case.Transition(ctx, created.ID, step)
		gt.NoError(t, err).Required()
	}

	c, err := uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionUploadEscalation,
		ExpectedStatus: "ScheduledForHearing",
		ActorID:        "HR-01",
		Upload:         upload("escalation.pdf", "escalation memo"),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusEscalatedToCompliance)
	gt.Value(t, c.ReadFlags.ByCompliance).Equal(false)
	gt.Value(t, c.ReadFlags.ByHR).Equal(true)

	c, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionSendFindings,
		ExpectedStatus: "EscalatedToCompliance",
		ActorID:        "CO-01",
		Upload:         upload("findings.pdf", "final findings"),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusFindingsSent)
	gt.Bool(t, c.Stages.FindingsSentAt.IsZero()).False()
	gt.Bool(t, c.Status.IsTerminal()).True()
}

func TestTransitionStaleState(t *testing.T) {
	uc, _, _ := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	_, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionValidate,
		ExpectedStatus: "PendingReview",
		ActorID:        "HR-01",
		Upload:         upload("nte.pdf", "nte"),
	})
	gt.NoError(t, err).Required()

	// The second reviewer still sees the pre-validate status
	_, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionReject,
		ExpectedStatus: "PendingReview",
		ActorID:        "HR-02",
		InvalidReason:  "duplicate report",
	})
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, model.ErrStaleState)).True()

	current, err := uc.Case.GetCase(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, current.Status).Equal(types.StatusNTE)
	gt.Value(t, current.InvalidReason).Equal("")
}

func TestTransitionLegacyStatusSpelling(t *testing.T) {
	uc, _, _ := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	for _, step := range []*usecase.TransitionInput{
		{Action: types.ActionValidate, ExpectedStatus: "PendingReview", ActorID: "HR-01", Upload: upload("nte.pdf", "nte")},
		{Action: types.ActionExplain, ExpectedStatus: "NTE", ActorID: "E200", Explanation: "explained"},
	} {
		_, err := uc.Case.Transition(ctx, created.ID, step)
		gt.NoError(t, err).Required()
	}

	// A stale client sends the historical misspelling
	c, err := uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionScheduleHearing,
		ExpectedStatus: "RespondantExplained",
		ActorID:        "HR-01",
		HearingDate:    time.Now().UTC().Add(24 * time.Hour),
	})
	gt.NoError(t, err).Required()
	gt.Value(t, c.Status).Equal(types.StatusScheduledForHearing)
}

func TestTransitionUploadFailureAborts(t *testing.T) {
	uc, _, store := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	store.FailWith(errors.New("bucket unavailable"))

	_, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionValidate,
		ExpectedStatus: "PendingReview",
		ActorID:        "HR-01",
		Upload:         upload("nte.pdf", "nte"),
	})
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, model.ErrUploadFailure)).True()

	current, err := uc.Case.GetCase(ctx, created.ID)
	gt.NoError(t, err).Required()
	gt.Value(t, current.Status).Equal(types.StatusPendingReview)
	gt.A(t, current.Documents[types.SlotNTE]).Length(0)
	gt.Bool(t, current.Stages.NTESentAt.IsZero()).True()
}

func TestTransitionRejectsGarbageExpectedStatus(t *testing.T) {
	uc, _, _ := newTestUseCases()
	ctx := context.Background()

	created, err := uc.Case.CreateCase(ctx, irInput())
	gt.NoError(t, err).Required()

	_, err = uc.Case.Transition(ctx, created.ID, &usecase.TransitionInput{
		Action:         types.ActionValidate,
		ExpectedStatus: "Resolved",
		ActorID:        "HR-01",
		Upload:         upload("nte.pdf", "nte"),
	})
	gt.Error(t, err)
	gt.Bool(t, errors.Is(err, model.ErrValidation)).True()
}

package notifier

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/slack-go/slack"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/domain/model"
	"github.com/workforce-labs/caseflow/pkg/domain/types"
	"github.com/workforce-labs/caseflow/pkg/lifecycle"
)

// Slack posts case-movement notices to one HR channel. Delivery is best
// effort: callers dispatch these asynchronously and a failed post never
// affects the mutation that triggered it.
type Slack struct {
	api       *slack.Client
	channelID string
	directory interfaces.Directory
}

var _ interfaces.Notifier = &Slack{}

type Option func(*Slack)

// WithDirectory lets notices name the parties instead of showing raw IDs
func WithDirectory(d interfaces.Directory) Option {
	return func(s *Slack) {
		s.directory = d
	}
}

// New creates a Slack notifier posting to the given channel
func New(token, channelID string, opts ...Option) (*Slack, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}

	s := &Slack{
		api:       slack.New(token),
		channelID: channelID,
	}
	for _, opt := range opts {
		opt(s)
	}

	return s, nil
}

func (s *Slack) NotifyCaseEvent(ctx context.Context, ev model.CaseEvent) error {
	var text string
	switch ev.Type {
	case model.EventCaseAdded:
		text = fmt.Sprintf("New %s case #%d submitted, pending review by %s",
			ev.Case.CaseType, ev.CaseID, s.partyName(ctx, ev.Case))
	case model.EventCaseUpdated:
		text = fmt.Sprintf("Case #%d moved to %s, next move: %s",
			ev.CaseID, ev.Case.Status, s.partyName(ctx, ev.Case))
	case model.EventCaseDeleted:
		text = fmt.Sprintf("Case #%d was withdrawn by its reporter", ev.CaseID)
	default:
		return goerr.New("unknown event type", goerr.V("type", ev.Type))
	}

	if _, _, err := s.api.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(text, false),
	); err != nil {
		return goerr.Wrap(err, "failed to post case notice",
			goerr.V(model.CaseIDKey, ev.CaseID), goerr.V("channel", s.channelID))
	}
	return nil
}

func (s *Slack) NotifyOverdue(ctx context.Context, c *model.Case) error {
	text := fmt.Sprintf(
		":warning: Case #%d has been pending review for over %s without an NTE",
		c.ID, lifecycle.TriageSLA,
	)

	if _, _, err := s.api.PostMessageContext(ctx, s.channelID,
		slack.MsgOptionText(text, false),
	); err != nil {
		return goerr.Wrap(err, "failed to post overdue notice",
			goerr.V(model.CaseIDKey, c.ID), goerr.V("channel", s.channelID))
	}
	return nil
}

// partyName resolves the display name of the role holding the next move
func (s *Slack) partyName(ctx context.Context, c *model.Case) string {
	role := lifecycle.AttentionFor(c.CaseType, c.Status)
	if role == types.RoleNone {
		return "nobody"
	}

	var id string
	switch role {
	case types.RoleReporter:
		id = c.ReporterID
	case types.RoleRespondent:
		id = c.RespondentID
	case types.RoleCoach:
		id = c.CoachID
	default:
		return role.String()
	}

	if s.directory == nil || id == "" {
		return role.String()
	}
	u, err := s.directory.ResolveUser(ctx, id)
	if err != nil {
		return role.String()
	}
	return u.DisplayName()
}

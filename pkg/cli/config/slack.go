package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/service/notifier"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Slack holds CLI flags for the notification channel. Notifications are
// optional; leaving the token empty disables them.
type Slack struct {
	botToken  string
	channelID string
}

// Flags returns CLI flags for Slack configuration
func (s *Slack) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "slack-bot-token",
			Category:    "Notifications",
			Usage:       "Slack bot token for case notifications (optional)",
			Sources:     cli.EnvVars("CASEFLOW_SLACK_BOT_TOKEN"),
			Destination: &s.botToken,
		},
		&cli.StringFlag{
			Name:        "slack-channel-id",
			Category:    "Notifications",
			Usage:       "Slack channel receiving case notifications",
			Sources:     cli.EnvVars("CASEFLOW_SLACK_CHANNEL_ID"),
			Destination: &s.channelID,
		},
	}
}

// Configure builds the notifier, or returns nil when notifications are
// disabled
func (s *Slack) Configure(directory interfaces.Directory) (interfaces.Notifier, error) {
	if s.botToken == "" {
		logging.Default().Info("Slack notifications disabled (no bot token)")
		return nil, nil
	}
	if s.channelID == "" {
		return nil, goerr.New("slack-channel-id is required when slack-bot-token is set")
	}

	var opts []notifier.Option
	if directory != nil {
		opts = append(opts, notifier.WithDirectory(directory))
	}

	n, err := notifier.New(s.botToken, s.channelID, opts...)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize Slack notifier")
	}
	logging.Default().Info("Slack notifications enabled", "channel_id", s.channelID)
	return n, nil
}

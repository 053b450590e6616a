package config

import (
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Sentry holds CLI flags for error reporting. Reporting is optional and
// disabled when no DSN is configured.
type Sentry struct {
	dsn string
	env string
}

// Flags returns CLI flags for Sentry configuration
func (s *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Category:    "Error reporting",
			Usage:       "Sentry DSN (optional)",
			Sources:     cli.EnvVars("CASEFLOW_SENTRY_DSN"),
			Destination: &s.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Category:    "Error reporting",
			Usage:       "Sentry environment name",
			Value:       "production",
			Sources:     cli.EnvVars("CASEFLOW_SENTRY_ENV"),
			Destination: &s.env,
		},
	}
}

// Configure initializes the Sentry SDK; the returned closer flushes pending
// events
func (s *Sentry) Configure(version string) (func(), error) {
	if s.dsn == "" {
		return func() {}, nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         s.dsn,
		Environment: s.env,
		Release:     version,
	}); err != nil {
		return nil, goerr.Wrap(err, "failed to initialize sentry")
	}

	logging.Default().Info("Sentry error reporting enabled", "environment", s.env)
	return func() {
		sentry.Flush(2 * time.Second)
	}, nil
}

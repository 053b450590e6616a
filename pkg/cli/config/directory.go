package config

import (
	"github.com/m-mizutani/goerr/v2"
	"github.com/urfave/cli/v3"
	"github.com/workforce-labs/caseflow/pkg/domain/interfaces"
	"github.com/workforce-labs/caseflow/pkg/service/directory"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Directory holds CLI flags for the employee roster. The roster is
// optional; without it party IDs are accepted unchecked.
type Directory struct {
	path string
}

// Flags returns CLI flags for directory configuration
func (d *Directory) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "roster-file",
			Category:    "Directory",
			Usage:       "TOML employee roster for party validation (optional)",
			Sources:     cli.EnvVars("CASEFLOW_ROSTER_FILE"),
			Destination: &d.path,
		},
	}
}

// Configure loads and validates the roster, or returns nil when none is
// configured
func (d *Directory) Configure() (interfaces.Directory, error) {
	if d.path == "" {
		logging.Default().Info("No roster file configured; party validation disabled")
		return nil, nil
	}

	roster, err := directory.LoadTOML(d.path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load roster", goerr.V("path", d.path))
	}
	logging.Default().Info("Loaded employee roster", "path", d.path)
	return roster, nil
}

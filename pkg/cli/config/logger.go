package config

import (
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/m-mizutani/clog"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/masq"
	"github.com/urfave/cli/v3"
	"github.com/workforce-labs/caseflow/pkg/utils/logging"
)

// Logger holds CLI flags for log configuration. The console format is for
// development; production runs use json, where case remarks, explanations,
// and other PII-bearing fields are redacted before they reach the sink.
type Logger struct {
	level  string
	format string
	output string
}

// Flags returns CLI flags for logger configuration
func (l *Logger) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "log-level",
			Category:    "Logging",
			Usage:       "Log level (debug, info, warn, error)",
			Value:       "info",
			Sources:     cli.EnvVars("CASEFLOW_LOG_LEVEL"),
			Destination: &l.level,
		},
		&cli.StringFlag{
			Name:        "log-format",
			Category:    "Logging",
			Usage:       "Log format (console or json)",
			Value:       "console",
			Sources:     cli.EnvVars("CASEFLOW_LOG_FORMAT"),
			Destination: &l.format,
		},
		&cli.StringFlag{
			Name:        "log-output",
			Category:    "Logging",
			Usage:       "Log output destination (- for stdout, or a file path)",
			Value:       "-",
			Sources:     cli.EnvVars("CASEFLOW_LOG_OUTPUT"),
			Destination: &l.output,
		},
	}
}

// Configure builds and installs the process logger, returning a closer for
// file outputs
func (l *Logger) Configure() (func(), error) {
	level, err := l.parseLevel()
	if err != nil {
		return nil, err
	}

	var out io.Writer
	closer := func() {}
	switch l.output {
	case "-", "stdout":
		out = os.Stdout
	case "stderr":
		out = os.Stderr
	default:
		f, err := os.OpenFile(l.output, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open log file", goerr.V("path", l.output))
		}
		out = f
		closer = func() {
			_ = f.Close()
		}
	}

	var handler slog.Handler
	switch l.format {
	case "console":
		handler = clog.New(
			clog.WithWriter(out),
			clog.WithLevel(level),
			clog.WithColorMap(&clog.ColorMap{
				Level: map[slog.Level]*color.Color{
					slog.LevelError: color.New(color.FgRed, color.Bold),
					slog.LevelWarn:  color.New(color.FgYellow),
				},
				LevelDefault: color.New(color.FgBlue),
				AttrKey:      color.New(color.FgHiCyan),
			}),
		)
	case "json":
		handler = slog.NewJSONHandler(out, &slog.HandlerOptions{
			Level: level,
			ReplaceAttr: masq.New(
				masq.WithFieldName("Remarks"),
				masq.WithFieldName("RespondentExplanation"),
				masq.WithFieldName("InvalidReason"),
				masq.WithFieldName("AckMessage"),
				masq.WithFieldName("Witnesses"),
			),
		})
	default:
		closer()
		return nil, goerr.New("invalid log format", goerr.V("format", l.format))
	}

	logging.SetDefault(slog.New(handler))
	return closer, nil
}

func (l *Logger) parseLevel() (slog.Level, error) {
	switch l.level {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, goerr.New("invalid log level", goerr.V("level", l.level))
	}
}

// LogValue keeps tokens and paths out of startup logs
func (l Logger) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("level", l.level),
		slog.String("format", l.format),
		slog.String("output", l.output),
	)
}

package config

import (
	"log/slog"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/m-mizutani/goerr/v2"
	"github.com/nyaya-lab/nyayasetu/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Sentry holds CLI flags for error reporting configuration
type Sentry struct {
	dsn     string
	env     string
	enabled bool
}

// Flags returns CLI flags for Sentry configuration
func (x *Sentry) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "sentry-dsn",
			Usage:       "Sentry DSN for error reporting (disabled when empty)",
			Sources:     cli.EnvVars("NYAYASETU_SENTRY_DSN"),
			Destination: &x.dsn,
		},
		&cli.StringFlag{
			Name:        "sentry-env",
			Usage:       "Sentry environment name",
			Value:       "production",
			Sources:     cli.EnvVars("NYAYASETU_SENTRY_ENV"),
			Destination: &x.env,
		},
	}
}

// Configure initializes the global Sentry client. A missing DSN disables
// reporting without error.
func (x *Sentry) Configure(release string) error {
	if x.dsn == "" {
		return nil
	}

	if err := sentry.Init(sentry.ClientOptions{
		Dsn:         x.dsn,
		Environment: x.env,
		Release:     release,
	}); err != nil {
		return goerr.Wrap(err, "failed to initialize sentry")
	}
	x.enabled = true

	logging.Default().Info("Sentry error reporting enabled", "env", x.env)
	return nil
}

// Flush drains pending Sentry events before shutdown
func (x *Sentry) Flush() {
	if x.enabled {
		sentry.Flush(2 * time.Second)
	}
}

// LogValue renders the Sentry configuration for startup logging
func (x Sentry) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Bool("enabled", x.dsn != ""),
		slog.String("env", x.env),
	)
}

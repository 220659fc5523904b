package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"
	_ "github.com/lib/pq"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"

	defaultConnectTimeout = 30 * time.Second
)

// Options describes the database to connect to.
type Options struct {
	Driver         string
	DSN            string
	ConnectTimeout time.Duration
}

// Open opens the database, retrying with exponential backoff until it
// answers a ping or ConnectTimeout elapses. SQLite connections get the
// recommended pragmas.
func Open(ctx context.Context, opts Options, logger *zap.Logger) (*sql.DB, error) {
	if opts.Driver != DriverSQLite && opts.Driver != DriverPostgres {
		return nil, fmt.Errorf("unsupported database driver %q", opts.Driver)
	}

	db, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s database: %w", opts.Driver, err)
	}

	timeout := opts.ConnectTimeout
	if timeout <= 0 {
		timeout = defaultConnectTimeout
	}
	policy := backoff.NewExponentialBackOff()
	policy.MaxElapsedTime = timeout
	policy.MaxInterval = 5 * time.Second

	err = backoff.RetryNotify(
		func() error { return db.PingContext(ctx) },
		backoff.WithContext(policy, ctx),
		func(err error, next time.Duration) {
			logger.Warn("database ping failed, retrying",
				zap.String("driver", opts.Driver),
				zap.Error(err),
				zap.Duration("next_attempt_in", next))
		},
	)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s database: %w", opts.Driver, err)
	}

	if opts.Driver == DriverSQLite {
		// Pragmas are per connection; a single connection keeps them applied.
		db.SetMaxOpenConns(1)
		if _, err := db.ExecContext(ctx, `
			PRAGMA journal_mode = WAL;
			PRAGMA foreign_keys = ON;
			PRAGMA busy_timeout = 5000;
		`); err != nil {
			db.Close()
			return nil, fmt.Errorf("set sqlite pragmas: %w", err)
		}
	}

	return db, nil
}

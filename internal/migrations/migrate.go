package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"

	"github.com/Simplici0/tpp-registry/internal/db"
)

//go:embed sql/*.sql
var files embed.FS

const dir = "sql"

func setup(driver string) error {
	goose.SetBaseFS(files)

	dialect := "sqlite3"
	if driver == db.DriverPostgres {
		dialect = "postgres"
	}
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}
	return nil
}

// Up runs all pending migrations.
func Up(ctx context.Context, database *sql.DB, driver string) error {
	if err := setup(driver); err != nil {
		return err
	}
	if err := goose.UpContext(ctx, database, dir); err != nil {
		return fmt.Errorf("run goose up migrations: %w", err)
	}
	return nil
}

// Down rolls back the latest migration.
func Down(ctx context.Context, database *sql.DB, driver string) error {
	if err := setup(driver); err != nil {
		return err
	}
	if err := goose.DownContext(ctx, database, dir); err != nil {
		return fmt.Errorf("run goose down migration: %w", err)
	}
	return nil
}

// Status prints the state of every migration.
func Status(ctx context.Context, database *sql.DB, driver string) error {
	if err := setup(driver); err != nil {
		return err
	}
	if err := goose.StatusContext(ctx, database, dir); err != nil {
		return fmt.Errorf("check goose migration status: %w", err)
	}
	return nil
}

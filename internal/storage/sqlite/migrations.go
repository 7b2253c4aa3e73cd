package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// migrationsFS holds the goose migrations. Groups of statements in one file run in one transaction.
//
//go:embed migrations/*.sql
var migrationsFS embed.FS

// runMigrations brings the schema up to date.
func runMigrations(ctx context.Context, db *sql.DB) error {
	fsys, err := fs.Sub(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("failed to open migrations: %w", err)
	}

	provider, err := goose.NewProvider(goose.DialectSQLite3, db, fsys)
	if err != nil {
		return fmt.Errorf("failed to create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}
	for _, r := range results {
		slog.Debug("Migration applied",
			"version", r.Source.Version,
			"path", r.Source.Path,
			"duration_ms", r.Duration.Milliseconds(),
		)
	}
	return nil
}

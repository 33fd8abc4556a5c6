// Package migrations applies embedded goose migrations to a database.
// Each storage backend embeds its own SQL files and passes them to Run
// together with the matching dialect.
package migrations

import (
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"log/slog"

	"github.com/pressly/goose/v3"
)

// Run applies all unapplied migrations from fsys to the database.
// Applied versions are tracked by goose in the goose_db_version table,
// so repeated runs are no-ops.
func Run(ctx context.Context, db *sql.DB, dialect goose.Dialect, fsys fs.FS) error {
	provider, err := goose.NewProvider(dialect, db, fsys)
	if err != nil {
		return fmt.Errorf("create migration provider: %w", err)
	}

	results, err := provider.Up(ctx)
	if err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}

	for _, res := range results {
		slog.Info("migration applied", "file", res.Source.Path, "duration", res.Duration)
	}
	if len(results) == 0 {
		slog.Debug("no pending migrations")
	}
	return nil
}

package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/msomdec/fitme-accounts/internal/domain"
	"github.com/msomdec/fitme-accounts/internal/migrations"
	sqlitemigrations "github.com/msomdec/fitme-accounts/internal/repository/sqlite/migrations"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// DB wraps a SQLite connection and vends the repositories built on it.
type DB struct {
	SqlDB *sql.DB
}

// New opens a SQLite database at the given path and configures it for use.
// It enables WAL mode and foreign keys.
func New(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// Enable WAL mode for better concurrent read performance.
	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable WAL mode: %w", err)
	}

	if _, err := db.ExecContext(context.Background(), "PRAGMA foreign_keys=ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enable foreign keys: %w", err)
	}

	// SQLite serializes writers anyway; one connection avoids SQLITE_BUSY.
	db.SetMaxOpenConns(1)

	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded SQLite migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB, goose.DialectSQLite3, sqlitemigrations.FS)
}

// Users returns the SQLite-backed user repository.
func (db *DB) Users() domain.UserRepository {
	return NewUserRepository(db)
}

// FileStore returns a BLOB-backed photo store sharing this database.
func (db *DB) FileStore() domain.FileStore {
	return &fileStore{db: db.SqlDB}
}

func (db *DB) Close() error {
	return db.SqlDB.Close()
}

// Package postgres provides a PostgreSQL user store on top of the pgx
// database/sql driver, with goose-managed schema migrations.
package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/msomdec/fitme-accounts/internal/domain"
	"github.com/msomdec/fitme-accounts/internal/migrations"
	pgmigrations "github.com/msomdec/fitme-accounts/internal/repository/postgres/migrations"
	"github.com/pressly/goose/v3"
)

// DB wraps a PostgreSQL connection pool.
type DB struct {
	SqlDB *sql.DB
}

// New opens a pool for dsn and fails fast if the server is unreachable.
func New(ctx context.Context, dsn string) (*DB, error) {
	db, err := sql.Open("pgx", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return &DB{SqlDB: db}, nil
}

// Migrate applies the embedded PostgreSQL migrations.
func (db *DB) Migrate(ctx context.Context) error {
	return migrations.Run(ctx, db.SqlDB, goose.DialectPostgres, pgmigrations.FS)
}

func (db *DB) Users() domain.UserRepository {
	return NewUserRepository(db.SqlDB)
}

func (db *DB) Close() error {
	return db.SqlDB.Close()
}

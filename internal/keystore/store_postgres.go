package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"

	"idverify/pkg/platform/sentinel"
)

// Postgres persists secrets in PostgreSQL.
type Postgres struct {
	db *sql.DB
}

// NewPostgres constructs a Postgres-backed store around an existing pool.
// Expects the device_secrets table from migrations to exist.
func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

// NewPostgresFromDSN opens a connection pool and verifies it.
func NewPostgresFromDSN(ctx context.Context, dsn string) (*Postgres, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres ping failed: %w", err)
	}
	return &Postgres{db: db}, nil
}

func (s *Postgres) Get(ctx context.Context, key string) (string, error) {
	var value string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM device_secrets WHERE key = $1`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", sentinel.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get secret: %w", err)
	}
	return value, nil
}

func (s *Postgres) Set(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO device_secrets (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value
	`
	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("set secret: %w", err)
	}
	return nil
}

func (s *Postgres) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM device_secrets WHERE key = $1`, key); err != nil {
		return fmt.Errorf("delete secret: %w", err)
	}
	return nil
}

// Close closes the underlying pool.
func (s *Postgres) Close() error {
	return s.db.Close()
}

// Migrate creates the device_secrets table if it does not exist. Integration
// tests and single-binary embeddings call this; hosted deployments run the
// equivalent migration out of band.
func (s *Postgres) Migrate(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS device_secrets (
			key   TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)
	`
	if _, err := s.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("migrate device_secrets: %w", err)
	}
	return nil
}

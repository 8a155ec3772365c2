package storage

import (
	"strings"

	"github.com/nbrandt/habitual/internal/storage/postgres"
	"github.com/nbrandt/habitual/internal/storage/sqlite"
)

var (
	_ Provider = (*sqlite.Store)(nil)
	_ Provider = (*postgres.Store)(nil)
)

// NewSQLiteStore creates a SQLite-backed provider at the given path.
func NewSQLiteStore(path string) Provider {
	return sqlite.NewStore(path)
}

// NewPostgresStore creates a Postgres-backed provider for the given
// connection string.
func NewPostgresStore(connStr string) Provider {
	return postgres.New(connStr)
}

// IsPostgres reports whether the config string selects the Postgres
// backend.
func IsPostgres(config string) bool {
	return strings.HasPrefix(config, "postgres://") || strings.HasPrefix(config, "postgresql://")
}

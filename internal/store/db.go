package store

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib" // driver: pgx
	_ "modernc.org/sqlite"             // driver: sqlite
)

type Driver string

const (
	DriverSQLite   Driver = "sqlite"
	DriverPostgres Driver = "postgres"
	DriverMemory   Driver = "memory"
)

const schemaSQLite = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    status TEXT NOT NULL,
    doc TEXT NOT NULL,
    updated_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
    seq INTEGER PRIMARY KEY AUTOINCREMENT,
    question_id TEXT NOT NULL,
    correct BOOLEAN NOT NULL,
    areas TEXT NOT NULL,
    topic TEXT NOT NULL,
    created_at INTEGER NOT NULL
);

CREATE TABLE IF NOT EXISTS favorites (
    id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS to_review (
    id TEXT PRIMARY KEY
);
`

const schemaPostgres = `
CREATE TABLE IF NOT EXISTS questions (
    id TEXT PRIMARY KEY,
    version INTEGER NOT NULL,
    status TEXT NOT NULL,
    doc TEXT NOT NULL,
    updated_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS attempts (
    seq BIGSERIAL PRIMARY KEY,
    question_id TEXT NOT NULL,
    correct BOOLEAN NOT NULL,
    areas TEXT NOT NULL,
    topic TEXT NOT NULL,
    created_at BIGINT NOT NULL
);

CREATE TABLE IF NOT EXISTS favorites (
    id TEXT PRIMARY KEY
);

CREATE TABLE IF NOT EXISTS to_review (
    id TEXT PRIMARY KEY
);
`

// Open connects to a persistent store and ensures the schema exists.
// Every failure wraps ErrStorageUnavailable.
func Open(ctx context.Context, driver Driver, dsn string) (Store, error) {
	var drvName, schema string
	switch driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverSQLite:
		drvName, schema = "sqlite", schemaSQLite
		if dsn == "" {
			dsn = "file:vetqa.db?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
		}
	case DriverPostgres:
		drvName, schema = "pgx", schemaPostgres
		if dsn == "" {
			return nil, fmt.Errorf("%w: postgres requires DB_DSN", ErrStorageUnavailable)
		}
	default:
		return nil, fmt.Errorf("%w: unsupported driver %q", ErrStorageUnavailable, driver)
	}

	db, err := sql.Open(drvName, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if driver == DriverSQLite {
		// one connection serializes transactions and keeps :memory: databases shared
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %w", ErrStorageUnavailable, err)
	}
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: create schema: %w", ErrStorageUnavailable, err)
	}

	return newSQLStore(db, driver), nil
}

// rebind rewrites ? placeholders as $1, $2, ... for postgres.
func rebind(driver Driver, query string) string {
	if driver != DriverPostgres {
		return query
	}
	var b strings.Builder
	n := 0
	for _, r := range query {
		if r == '?' {
			n++
			b.WriteString("$" + strconv.Itoa(n))
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

package store

import (
	"fmt"
	"strings"
)

// Dialect covers the SQL differences between SQLite and PostgreSQL that the
// archive depends on.
type Dialect interface {
	// DriverName is the database/sql driver name.
	DriverName() string

	// Placeholder returns the parameter marker for a 1-based position.
	Placeholder(position int) string

	// SupportsLastInsertID is false when inserts need a RETURNING clause.
	SupportsLastInsertID() bool

	ReturningClause(column string) string

	// InitStatements run once per connection open, before the schema.
	InitStatements() []string

	// IdentityColumn is the column definition for an auto-assigned primary key.
	IdentityColumn() string

	IsDuplicateKeyError(err error) bool
}

// DialectType names a dialect.
type DialectType string

const (
	DialectSQLite   DialectType = "sqlite"
	DialectPostgres DialectType = "postgres"
)

// NewDialect returns the dialect for t, defaulting to SQLite.
func NewDialect(t DialectType) Dialect {
	if t == DialectPostgres {
		return &PostgresDialect{}
	}
	return &SQLiteDialect{}
}

// SQLiteDialect targets modernc.org/sqlite.
type SQLiteDialect struct{}

func (SQLiteDialect) DriverName() string            { return "sqlite" }
func (SQLiteDialect) Placeholder(int) string        { return "?" }
func (SQLiteDialect) SupportsLastInsertID() bool    { return true }
func (SQLiteDialect) ReturningClause(string) string { return "" }
func (SQLiteDialect) IdentityColumn() string        { return "INTEGER PRIMARY KEY AUTOINCREMENT" }

func (SQLiteDialect) InitStatements() []string {
	return []string{
		"PRAGMA foreign_keys = ON",
		"PRAGMA journal_mode = WAL",
		"PRAGMA busy_timeout = 5000",
	}
}

func (SQLiteDialect) IsDuplicateKeyError(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// PostgresDialect targets github.com/lib/pq.
type PostgresDialect struct{}

func (PostgresDialect) DriverName() string         { return "postgres" }
func (PostgresDialect) SupportsLastInsertID() bool { return false }
func (PostgresDialect) IdentityColumn() string     { return "BIGSERIAL PRIMARY KEY" }
func (PostgresDialect) InitStatements() []string   { return nil }

func (PostgresDialect) Placeholder(position int) string {
	return fmt.Sprintf("$%d", position)
}

func (PostgresDialect) ReturningClause(column string) string {
	return " RETURNING " + column
}

// IsDuplicateKeyError matches unique_violation (SQLSTATE 23505).
func (PostgresDialect) IsDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "duplicate key") || strings.Contains(msg, "23505")
}

// Package store archives generated dungeons in SQLite or PostgreSQL, keyed
// by content fingerprint.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/lawnchairsociety/dungeongen/internal/dungeon"
	"github.com/lawnchairsociety/dungeongen/internal/export"
	_ "github.com/lib/pq"
	"gopkg.in/yaml.v3"
	_ "modernc.org/sqlite"
)

// ErrNotFound is returned when no archived dungeon matches a lookup.
var ErrNotFound = errors.New("store: dungeon not found")

// Summary is an archive row without its payload.
type Summary struct {
	ID          int64
	Seed        int64
	Width       int
	Height      int
	RoomCount   int
	Fingerprint string
	CreatedAt   time.Time
}

// Record is a full archive row.
type Record struct {
	Summary
	Configuration dungeon.Configuration
	Layout        *export.Document
}

// Store is an open archive.
type Store struct {
	db      *sql.DB
	dialect Dialect
	qb      *QueryBuilder
}

// Open connects to the configured database and creates the schema if needed.
func Open(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	dialect := NewDialect(DialectType(cfg.Driver))
	var dsn string
	switch DialectType(cfg.Driver) {
	case DialectPostgres:
		dsn = cfg.Postgres.DSN()
	default:
		if dir := filepath.Dir(cfg.SQLitePath); dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("store: create database directory: %w", err)
			}
		}
		dsn = cfg.SQLitePath
	}

	db, err := sql.Open(dialect.DriverName(), dsn)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	if DialectType(cfg.Driver) == DialectPostgres {
		pg := cfg.Postgres
		if pg.MaxOpenConns > 0 {
			db.SetMaxOpenConns(pg.MaxOpenConns)
		}
		if pg.MaxIdleConns > 0 {
			db.SetMaxIdleConns(pg.MaxIdleConns)
		}
		if pg.ConnMaxLifetime > 0 {
			db.SetConnMaxLifetime(pg.ConnMaxLifetime)
		}
	} else {
		// PRAGMAs are per connection
		db.SetMaxOpenConns(1)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: connect: %w", err)
	}

	s := &Store{db: db, dialect: dialect, qb: NewQueryBuilder(dialect)}
	for _, stmt := range dialect.InitStatements() {
		if _, err := db.Exec(stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("store: %s: %w", stmt, err)
		}
	}
	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: migrate: %w", err)
	}
	return s, nil
}

func (s *Store) migrate() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dungeons (
			id ` + s.dialect.IdentityColumn() + `,
			seed BIGINT NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			room_count INTEGER NOT NULL,
			fingerprint TEXT NOT NULL UNIQUE,
			configuration TEXT NOT NULL,
			layout TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dungeons_seed ON dungeons(seed)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("%w\nSQL: %s", err, stmt)
		}
	}
	return nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Driver returns the active driver name.
func (s *Store) Driver() string {
	return s.dialect.DriverName()
}

// Save archives doc, generated from cfg. Saving a dungeon whose fingerprint
// is already present returns the existing id with created false.
func (s *Store) Save(ctx context.Context, cfg dungeon.Configuration, doc *export.Document) (id int64, created bool, err error) {
	if existing, err := s.GetByFingerprint(ctx, doc.Fingerprint); err == nil {
		return existing.ID, false, nil
	} else if !errors.Is(err, ErrNotFound) {
		return 0, false, err
	}

	configuration, err := yaml.Marshal(cfg)
	if err != nil {
		return 0, false, fmt.Errorf("store: encode configuration: %w", err)
	}
	layout, err := export.EncodeYAML(doc)
	if err != nil {
		return 0, false, err
	}

	query := s.qb.BuildInsert(`INSERT INTO dungeons
		(seed, width, height, room_count, fingerprint, configuration, layout, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`, "id")
	args := []any{doc.Seed, doc.Width, doc.Height, len(doc.Rooms), doc.Fingerprint,
		string(configuration), string(layout), time.Now().UTC()}

	if s.dialect.SupportsLastInsertID() {
		var result sql.Result
		result, err = s.db.ExecContext(ctx, query, args...)
		if err == nil {
			id, err = result.LastInsertId()
		}
	} else {
		err = s.db.QueryRowContext(ctx, query, args...).Scan(&id)
	}

	if err != nil {
		if s.dialect.IsDuplicateKeyError(err) {
			// lost a race with a concurrent save of the same dungeon
			existing, lookupErr := s.GetByFingerprint(ctx, doc.Fingerprint)
			if lookupErr != nil {
				return 0, false, lookupErr
			}
			return existing.ID, false, nil
		}
		return 0, false, fmt.Errorf("store: insert: %w", err)
	}
	return id, true, nil
}

const recordColumns = "id, seed, width, height, room_count, fingerprint, created_at, configuration, layout"

// Get loads the dungeon with the given id.
func (s *Store) Get(ctx context.Context, id int64) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		s.qb.Build("SELECT "+recordColumns+" FROM dungeons WHERE id = ?"), id)
	return scanRecord(row)
}

// GetByFingerprint loads the dungeon with the given fingerprint.
func (s *Store) GetByFingerprint(ctx context.Context, fingerprint string) (*Record, error) {
	row := s.db.QueryRowContext(ctx,
		s.qb.Build("SELECT "+recordColumns+" FROM dungeons WHERE fingerprint = ?"), fingerprint)
	return scanRecord(row)
}

func scanRecord(row *sql.Row) (*Record, error) {
	var r Record
	var configuration, layout string
	err := row.Scan(&r.ID, &r.Seed, &r.Width, &r.Height, &r.RoomCount, &r.Fingerprint,
		&r.CreatedAt, &configuration, &layout)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("store: query: %w", err)
	}

	if err := yaml.Unmarshal([]byte(configuration), &r.Configuration); err != nil {
		return nil, fmt.Errorf("store: decode configuration of %d: %w", r.ID, err)
	}
	if r.Layout, err = export.DecodeYAML([]byte(layout)); err != nil {
		return nil, fmt.Errorf("store: decode layout of %d: %w", r.ID, err)
	}
	return &r, nil
}

// List returns up to limit archived dungeons, newest first. A limit of zero
// or less returns every row.
func (s *Store) List(ctx context.Context, limit int) ([]Summary, error) {
	query := "SELECT id, seed, width, height, room_count, fingerprint, created_at FROM dungeons ORDER BY id DESC"
	var args []any
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, s.qb.Build(query), args...)
	if err != nil {
		return nil, fmt.Errorf("store: list: %w", err)
	}
	defer rows.Close()

	var out []Summary
	for rows.Next() {
		var sum Summary
		if err := rows.Scan(&sum.ID, &sum.Seed, &sum.Width, &sum.Height, &sum.RoomCount,
			&sum.Fingerprint, &sum.CreatedAt); err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// Delete removes the dungeon with the given id.
func (s *Store) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, s.qb.Build("DELETE FROM dungeons WHERE id = ?"), id)
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("store: delete: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

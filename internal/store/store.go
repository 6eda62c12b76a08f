package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sort"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Mode selects how a store is opened.
type Mode int

const (
	// ReadWrite creates the store if needed. Used by the loader.
	ReadWrite Mode = iota
	// ReadOnly requires an existing store and rejects writes. Used by reports.
	ReadOnly
)

func (m Mode) String() string {
	if m == ReadOnly {
		return "read-only"
	}
	return "read-write"
}

// Store is an open relational store.
type Store struct {
	db      *sql.DB
	dialect Dialect
	target  Target
	mode    Mode
}

// Open opens the store named by target and verifies the connection.
// The handle is limited to a single connection.
func Open(ctx context.Context, target string, mode Mode) (*Store, error) {
	t, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	var db *sql.DB
	switch t.Backend {
	case BackendPostgres:
		db, err = openPostgres(t, mode)
	default:
		db, err = openSQLite(t, mode)
	}
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %s: %v", fraudlens.ErrConnectionFailed, t, err)
	}

	dialect, err := DialectFor(t.Backend)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db, dialect: dialect, target: t, mode: mode}, nil
}

// New wraps an already open database handle. The store takes ownership of db.
func New(db *sql.DB, backend Backend) (*Store, error) {
	if db == nil {
		return nil, errors.New("db cannot be nil")
	}
	dialect, err := DialectFor(backend)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, dialect: dialect, target: Target{Backend: backend}}, nil
}

// DB returns the underlying handle.
func (s *Store) DB() *sql.DB { return s.db }

// Dialect returns the SQL dialect of the backend.
func (s *Store) Dialect() Dialect { return s.dialect }

// Target returns the parsed store target.
func (s *Store) Target() Target { return s.target }

// Mode returns the mode the store was opened with.
func (s *Store) Mode() Mode { return s.mode }

// Close releases the handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tables returns the names of all user tables, sorted.
func (s *Store) Tables(ctx context.Context) ([]string, error) {
	names, err := s.queryNames(ctx, s.dialect.tablesQuery())
	if err != nil {
		return nil, fmt.Errorf("failed to list tables: %w", err)
	}
	sort.Strings(names)
	return names, nil
}

// Columns returns the column names of a table in declaration order.
// A missing table yields an empty slice.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	names, err := s.queryNames(ctx, s.dialect.columnsQuery(), table)
	if err != nil {
		return nil, fmt.Errorf("failed to list columns of %s: %w", table, err)
	}
	return names, nil
}

// Catalog returns every table with its columns.
func (s *Store) Catalog(ctx context.Context) (Catalog, error) {
	tables, err := s.Tables(ctx)
	if err != nil {
		return nil, err
	}
	catalog := make(Catalog, len(tables))
	for _, table := range tables {
		columns, err := s.Columns(ctx, table)
		if err != nil {
			return nil, err
		}
		catalog[table] = columns
	}
	return catalog, nil
}

func (s *Store) queryNames(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	names := []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, err
		}
		names = append(names, name)
	}
	return names, rows.Err()
}

// Catalog maps table names to their column names.
type Catalog map[string][]string

// HasTable reports whether the table exists.
func (c Catalog) HasTable(table string) bool {
	_, ok := c[table]
	return ok
}

// HasColumn reports whether the table exists and has the column.
func (c Catalog) HasColumn(table, column string) bool {
	for _, name := range c[table] {
		if name == column {
			return true
		}
	}
	return false
}

// Tables returns the table names, sorted.
func (c Catalog) Tables() []string {
	names := make([]string, 0, len(c))
	for name := range c {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

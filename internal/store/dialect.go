package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// TimeUnit is the granularity of a timestamp bucket.
type TimeUnit int

const (
	// BucketMonth truncates to "YYYY-MM".
	BucketMonth TimeUnit = iota
	// BucketMinute truncates to "YYYY-MM-DD HH:MM".
	BucketMinute
)

// Dialect renders the backend-specific parts of SQL statements.
type Dialect interface {
	// Name returns the backend name.
	Name() Backend

	// QuoteIdent quotes an identifier so mixed-case names survive.
	QuoteIdent(name string) string

	// Placeholder returns the bind marker for the n-th (1-based) parameter.
	Placeholder(n int) string

	// MaxParams is the number of bind parameters one statement may carry.
	MaxParams() int

	// ColumnType maps an inferred column kind to a column type.
	ColumnType(kind fraudlens.ColumnKind) string

	// Avg and Sum wrap aggregates so they scan as floats or integers.
	Avg(expr string) string
	Sum(expr string) string

	// Round rounds a numeric expression to the given decimal places.
	Round(expr string, places int) string

	// TimeBucket truncates a textual timestamp to the given unit.
	TimeBucket(expr string, unit TimeUnit) string

	tablesQuery() string
	columnsQuery() string
}

// DialectFor returns the dialect of a backend.
func DialectFor(b Backend) (Dialect, error) {
	switch b {
	case BackendSQLite:
		return SQLiteDialect{}, nil
	case BackendPostgres:
		return PostgresDialect{}, nil
	default:
		return nil, fmt.Errorf("unknown backend %q: %w", b, fraudlens.ErrInvalidConfig)
	}
}

func quoteIdent(name string) string {
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

// SQLiteDialect renders SQL for SQLite.
type SQLiteDialect struct{}

func (SQLiteDialect) Name() Backend                 { return BackendSQLite }
func (SQLiteDialect) QuoteIdent(name string) string { return quoteIdent(name) }
func (SQLiteDialect) Placeholder(int) string        { return "?" }
func (SQLiteDialect) MaxParams() int                { return 32766 }

func (SQLiteDialect) ColumnType(kind fraudlens.ColumnKind) string {
	switch kind {
	case fraudlens.KindInteger, fraudlens.KindBoolean:
		return "INTEGER"
	case fraudlens.KindReal:
		return "REAL"
	default:
		return "TEXT"
	}
}

func (SQLiteDialect) Avg(expr string) string { return "AVG(" + expr + ")" }
func (SQLiteDialect) Sum(expr string) string { return "SUM(" + expr + ")" }

func (SQLiteDialect) Round(expr string, places int) string {
	return "ROUND(" + expr + ", " + strconv.Itoa(places) + ")"
}

func (SQLiteDialect) TimeBucket(expr string, unit TimeUnit) string {
	if unit == BucketMinute {
		return "strftime('%Y-%m-%d %H:%M', " + expr + ")"
	}
	return "strftime('%Y-%m', " + expr + ")"
}

func (SQLiteDialect) tablesQuery() string {
	return "SELECT name FROM sqlite_master WHERE type = 'table' AND name NOT LIKE 'sqlite_%' ORDER BY name"
}

func (SQLiteDialect) columnsQuery() string {
	return "SELECT name FROM pragma_table_info(?) ORDER BY cid"
}

// PostgresDialect renders SQL for PostgreSQL.
type PostgresDialect struct{}

func (PostgresDialect) Name() Backend                 { return BackendPostgres }
func (PostgresDialect) QuoteIdent(name string) string { return quoteIdent(name) }
func (PostgresDialect) Placeholder(n int) string      { return "$" + strconv.Itoa(n) }
func (PostgresDialect) MaxParams() int                { return 65535 }

func (PostgresDialect) ColumnType(kind fraudlens.ColumnKind) string {
	switch kind {
	case fraudlens.KindInteger, fraudlens.KindBoolean:
		return "BIGINT"
	case fraudlens.KindReal:
		return "DOUBLE PRECISION"
	default:
		return "TEXT"
	}
}

// AVG and SUM over BIGINT yield NUMERIC, which pgx hands back as a string.
func (PostgresDialect) Avg(expr string) string {
	return "CAST(AVG(" + expr + ") AS DOUBLE PRECISION)"
}

func (PostgresDialect) Sum(expr string) string {
	return "CAST(SUM(" + expr + ") AS DOUBLE PRECISION)"
}

func (PostgresDialect) Round(expr string, places int) string {
	return "CAST(ROUND(CAST(" + expr + " AS NUMERIC), " + strconv.Itoa(places) + ") AS DOUBLE PRECISION)"
}

func (PostgresDialect) TimeBucket(expr string, unit TimeUnit) string {
	if unit == BucketMinute {
		return "to_char(CAST(" + expr + " AS timestamp), 'YYYY-MM-DD HH24:MI')"
	}
	return "to_char(CAST(" + expr + " AS timestamp), 'YYYY-MM')"
}

func (PostgresDialect) tablesQuery() string {
	return "SELECT table_name FROM information_schema.tables " +
		"WHERE table_schema = current_schema() AND table_type = 'BASE TABLE' ORDER BY table_name"
}

func (PostgresDialect) columnsQuery() string {
	return "SELECT column_name FROM information_schema.columns " +
		"WHERE table_schema = current_schema() AND table_name = $1 ORDER BY ordinal_position"
}

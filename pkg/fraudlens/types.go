package fraudlens

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// SourceFile is one discovered tabular file and the table it maps to.
// Paths use Unix-style forward slashes for cross-platform consistency.
type SourceFile struct {
	Path         string // Absolute path on the source filesystem
	RelativePath string // Path relative to the scan root: "./fraud/fraud_indicators.csv"
	Name         string // Filename only: "fraud_indicators.csv"
	Extension    string // Extension as found on disk: ".csv"
	Table        string // Table identifier: "fraud_indicators"
	SizeBytes    int64
	ModifiedAt   time.Time
}

// ColumnKind is the storage kind inferred for a source column.
type ColumnKind int

const (
	KindInteger ColumnKind = iota
	KindReal
	KindBoolean
	KindText
)

// String returns a human-readable string representation of the ColumnKind.
func (k ColumnKind) String() string {
	switch k {
	case KindInteger:
		return "integer"
	case KindReal:
		return "real"
	case KindBoolean:
		return "boolean"
	case KindText:
		return "text"
	default:
		return fmt.Sprintf("Unknown(%d)", k)
	}
}

// Column describes one column of a loaded table.
type Column struct {
	Name string
	Kind ColumnKind
}

// LoadConfig contains all parameters needed for a load run.
type LoadConfig struct {
	// SourcePath is the root directory searched recursively for source files
	SourcePath string

	// StoreTarget selects the store: a SQLite path or a PostgreSQL URL
	StoreTarget string

	// Extensions are the accepted source file extensions (case-insensitive).
	// Empty means DefaultSourceExtension.
	Extensions []string

	// BatchSize is the number of rows per INSERT statement
	BatchSize int

	// Timeout is the global timeout for the whole run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the LoadConfig has all required fields and valid values.
// It returns a multi-error if multiple validation failures occur.
func (c *LoadConfig) Validate() error {
	var errs []error

	if c.SourcePath == "" {
		errs = append(errs, fmt.Errorf("SourcePath is required: %w", ErrInvalidConfig))
	}

	if c.StoreTarget == "" {
		errs = append(errs, fmt.Errorf("StoreTarget is required: %w", ErrInvalidConfig))
	}

	if c.BatchSize < 0 {
		errs = append(errs, fmt.Errorf("batch size cannot be negative: %w", ErrInvalidConfig))
	}

	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") || len(ext) < 2 {
			errs = append(errs, fmt.Errorf("extension %q must start with a dot: %w", ext, ErrInvalidConfig))
		}
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// ReportConfig contains all parameters needed for a report run.
type ReportConfig struct {
	// StoreTarget selects the store populated by a prior load
	StoreTarget string

	// QueryIDs restricts the run to these catalog IDs; empty runs the whole catalog
	QueryIDs []int

	// ContinueOnError runs every query and joins the failures instead of
	// stopping at the first one
	ContinueOnError bool

	// SkipMissing skips queries whose input tables or columns were never
	// loaded instead of failing them
	SkipMissing bool

	// Format is the output format: "text" or "plain"
	Format string

	// Timeout is the global timeout for the whole run
	Timeout time.Duration

	// Verbose enables detailed logging
	Verbose bool
}

// Validate checks if the ReportConfig has all required fields and valid values.
func (c *ReportConfig) Validate() error {
	var errs []error

	if c.StoreTarget == "" {
		errs = append(errs, fmt.Errorf("StoreTarget is required: %w", ErrInvalidConfig))
	}

	for _, id := range c.QueryIDs {
		if id <= 0 {
			errs = append(errs, fmt.Errorf("query id %d must be positive: %w", id, ErrInvalidConfig))
		}
	}

	if c.Timeout < 0 {
		errs = append(errs, fmt.Errorf("timeout cannot be negative: %w", ErrInvalidConfig))
	}

	return errors.Join(errs...)
}

// LoadedTable summarizes one file written to the store.
type LoadedTable struct {
	Path    string
	Table   string
	Rows    int
	Columns []Column
}

// LoadResult is the outcome of a load run.
type LoadResult struct {
	// RunID tags every log line of the run
	RunID string

	// Files lists what was written, in load order
	Files []LoadedTable

	// Collisions repeats the scanner's table name collisions
	Collisions []TableCollision

	// Tables is the full store catalog after the run, sorted
	Tables []string
}

package fraudlens

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	_, err := svc.Load(ctx, cfg)
//	if errors.Is(err, fraudlens.ErrDataLoad) {
//	    var dle *fraudlens.DataLoadError
//	    errors.As(err, &dle)
//	    fmt.Println("bad file:", dle.Path)
//	}
var (
	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrConnectionFailed indicates the store could not be opened.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrStoreNotFound indicates a read-only open of a store that does not exist yet.
	ErrStoreNotFound = errors.New("store not found")

	// ErrDataLoad is matched by every DataLoadError.
	ErrDataLoad = errors.New("data load failed")

	// ErrSchemaMismatch is matched by every SchemaMismatchError.
	ErrSchemaMismatch = errors.New("schema mismatch")

	// ErrReportQuery is matched by every ReportQueryError.
	ErrReportQuery = errors.New("report query failed")
)

// DataLoadError reports a source file that could not be read, parsed or written.
// The table for that file is left as it was before the attempt.
type DataLoadError struct {
	Path string
	Err  error
}

func (e *DataLoadError) Error() string {
	return fmt.Sprintf("failed to load %s: %v", e.Path, e.Err)
}

func (e *DataLoadError) Unwrap() error { return e.Err }

func (e *DataLoadError) Is(target error) bool { return target == ErrDataLoad }

// SchemaMismatchError reports a report query that references a table or column
// absent from the loaded store. Column is empty when the whole table is missing.
type SchemaMismatchError struct {
	Label  string
	Table  string
	Column string
}

func (e *SchemaMismatchError) Error() string {
	if e.Column == "" {
		return fmt.Sprintf("query %q: table %s not found in store", e.Label, e.Table)
	}
	return fmt.Sprintf("query %q: column %s.%s not found in store", e.Label, e.Table, e.Column)
}

func (e *SchemaMismatchError) Is(target error) bool { return target == ErrSchemaMismatch }

// ReportQueryError reports a store-level failure while executing a report query.
type ReportQueryError struct {
	Label string
	Err   error
}

func (e *ReportQueryError) Error() string {
	return fmt.Sprintf("query %q failed: %v", e.Label, e.Err)
}

func (e *ReportQueryError) Unwrap() error { return e.Err }

func (e *ReportQueryError) Is(target error) bool { return target == ErrReportQuery }

// usageErrorMarkers are fragments of cobra/pflag messages for command line misuse.
var usageErrorMarkers = []string{
	"unknown flag",
	"unknown shorthand flag",
	"unknown command",
	"accepts ",
	"requires at least",
	"missing required argument",
	"required flag",
	"invalid argument",
	"flag needs an argument",
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Check for sentinel errors
	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrConnectionFailed), errors.Is(err, ErrStoreNotFound):
		return ExitConnectionError
	case errors.Is(err, ErrDataLoad):
		return ExitDataLoadError
	case errors.Is(err, ErrSchemaMismatch):
		return ExitSchemaMismatch
	case errors.Is(err, ErrReportQuery):
		return ExitReportQueryError
	}

	errStr := err.Error()
	for _, marker := range usageErrorMarkers {
		if strings.Contains(errStr, marker) {
			return ExitUsageError
		}
	}

	// Check for common connection error patterns
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}

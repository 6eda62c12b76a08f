package fraudlens

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess          = 0  // Load/report completed successfully
	ExitGeneralError     = 1  // Unknown or unclassified error
	ExitUsageError       = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic            = 3  // Internal panic (unexpected crash)
	ExitConfigError      = 10 // Invalid configuration
	ExitConnectionError  = 11 // Failed to open the store
	ExitDataLoadError    = 20 // A source file could not be loaded
	ExitSchemaMismatch   = 21 // A query references a table/column the store does not have
	ExitReportQueryError = 22 // A report query failed in the store
)

const (
	// DefaultStoreTarget is the SQLite file used when no store is configured.
	DefaultStoreTarget = "AntiFraudData.db"

	// DefaultSourceExtension is the extension of source files picked up by the scanner.
	DefaultSourceExtension = ".csv"

	// DefaultBatchSize is the number of rows sent per INSERT statement.
	DefaultBatchSize = 500

	// DefaultTimeout bounds a whole command run. It is catastrophic-failure
	// protection, not a query timeout.
	DefaultTimeout = 5 * time.Minute

	// NullDisplay is how NULL values appear in rendered report lines.
	NullDisplay = "n/a"

	// EmptyResultDisplay is the single line rendered for a query with no rows.
	EmptyResultDisplay = "(no rows)"
)

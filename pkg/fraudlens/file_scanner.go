package fraudlens

// FileScanner defines the interface for discovering tabular source files.
// Implementations must be safe for concurrent use by multiple goroutines.
type FileScanner interface {
	// ScanDirectory recursively scans a directory and returns the source files
	// in discovery order together with the table each one maps to.
	ScanDirectory(sourcePath string) (FileScanResult, error)
}

// FileScanResult contains the results of scanning a directory.
type FileScanResult struct {
	// Files are in discovery order; loading them in this order makes the
	// last-discovered file win a table name collision.
	Files []SourceFile

	// Collisions lists table names claimed by more than one file.
	Collisions []TableCollision
}

// Tables returns the distinct table names of the scan in first-seen order.
func (r FileScanResult) Tables() []string {
	seen := make(map[string]bool, len(r.Files))
	tables := make([]string, 0, len(r.Files))
	for _, f := range r.Files {
		if seen[f.Table] {
			continue
		}
		seen[f.Table] = true
		tables = append(tables, f.Table)
	}
	return tables
}

// TableCollision records several source files mapping to one table.
// The last path in Paths is the one whose contents end up in the store.
type TableCollision struct {
	Table string
	Paths []string
}

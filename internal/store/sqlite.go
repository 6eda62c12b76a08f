package store

import (
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
	_ "modernc.org/sqlite"
)

// openSQLite opens a SQLite database file with modernc.org/sqlite (no CGO).
func openSQLite(t Target, mode Mode) (*sql.DB, error) {
	path := t.Location
	dsn := sqliteDSN(path, "_pragma=busy_timeout(5000)")

	if mode == ReadOnly {
		info, err := os.Stat(path)
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s (run load first)", fraudlens.ErrStoreNotFound, path)
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", fraudlens.ErrConnectionFailed, path, err)
		}
		if info.IsDir() {
			return nil, fmt.Errorf("%w: %s is a directory", fraudlens.ErrConnectionFailed, path)
		}
		dsn = sqliteDSN(path, "mode=ro&_pragma=busy_timeout(5000)")
	} else {
		dir := filepath.Dir(path)
		if dir != "." && dir != "" {
			if err := os.MkdirAll(dir, 0755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to open sqlite database: %v", fraudlens.ErrConnectionFailed, err)
	}
	return db, nil
}

// sqliteDSN builds a file: URI for path. Characters SQLite would read as URI
// syntax ('?', '#', '%') are percent-encoded.
func sqliteDSN(path, query string) string {
	u := url.URL{
		Scheme:   "file",
		Opaque:   (&url.URL{Path: filepath.ToSlash(path)}).EscapedPath(),
		RawQuery: query,
	}
	return u.String()
}

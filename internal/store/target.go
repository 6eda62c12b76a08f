package store

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Backend identifies the database engine behind a store target.
type Backend string

const (
	BackendSQLite   Backend = "sqlite"
	BackendPostgres Backend = "postgres"
)

// Target is a parsed store target.
type Target struct {
	Backend Backend

	// Location is the SQLite file path or the PostgreSQL connection URL.
	Location string
}

// ParseTarget classifies a store target string.
func ParseTarget(raw string) (Target, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return Target{}, fmt.Errorf("store target is empty: %w", fraudlens.ErrInvalidConfig)
	}

	lower := strings.ToLower(raw)
	switch {
	case strings.HasPrefix(lower, "postgres://"), strings.HasPrefix(lower, "postgresql://"):
		return Target{Backend: BackendPostgres, Location: raw}, nil
	case strings.HasPrefix(lower, "sqlite://"):
		raw = raw[len("sqlite://"):]
	case strings.HasPrefix(lower, "file:"):
		raw = raw[len("file:"):]
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			raw = raw[:i]
		}
		if unescaped, err := url.PathUnescape(raw); err == nil {
			raw = unescaped
		}
	}

	if raw == "" {
		return Target{}, fmt.Errorf("store target has no database path: %w", fraudlens.ErrInvalidConfig)
	}
	return Target{Backend: BackendSQLite, Location: raw}, nil
}

// String renders the target for logs with any password masked.
func (t Target) String() string {
	if t.Backend != BackendPostgres {
		return "sqlite:" + t.Location
	}
	return MaskPassword(t.Location)
}

// MaskPassword replaces the password of a connection URL with "****".
func MaskPassword(connURL string) string {
	schemeEnd := strings.Index(connURL, "://")
	if schemeEnd < 0 {
		return connURL
	}
	rest := connURL[schemeEnd+3:]
	at := strings.LastIndex(rest, "@")
	if at < 0 {
		return connURL
	}
	userinfo := rest[:at]
	colon := strings.Index(userinfo, ":")
	if colon < 0 {
		return connURL
	}
	return connURL[:schemeEnd+3] + userinfo[:colon] + ":****" + rest[at:]
}

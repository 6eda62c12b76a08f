package store

import (
	"database/sql"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// openPostgres opens a PostgreSQL database through the pgx database/sql adapter.
// Read-only stores refuse writes at the session level.
func openPostgres(t Target, mode Mode) (*sql.DB, error) {
	cfg, err := pgx.ParseConfig(t.Location)
	if err != nil {
		return nil, fmt.Errorf("invalid connection string %s: %v: %w", MaskPassword(t.Location), err, fraudlens.ErrInvalidConfig)
	}
	if cfg.RuntimeParams == nil {
		cfg.RuntimeParams = map[string]string{}
	}
	if _, ok := cfg.RuntimeParams["application_name"]; !ok {
		cfg.RuntimeParams["application_name"] = "fraudlens"
	}
	if mode == ReadOnly {
		cfg.RuntimeParams["default_transaction_read_only"] = "on"
	}
	return stdlib.OpenDB(*cfg), nil
}

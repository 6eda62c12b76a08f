// Package store opens the relational store that holds loaded tables.
//
// A store target selects the backend: a postgres:// or postgresql:// URL opens
// PostgreSQL through pgx, anything else is a SQLite database file opened with
// the pure Go modernc.org/sqlite driver. The Dialect of an open Store hides
// the SQL differences the loader and report engine care about.
package store

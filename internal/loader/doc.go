// Package loader writes parsed source files into the store, one table per file.
//
// Every file is written inside its own transaction that drops the previous
// table, recreates it from the file's header and inserts all rows in batches.
// A failure anywhere rolls the transaction back, so the store keeps the
// previous version of that table and tables loaded earlier stay committed.
package loader

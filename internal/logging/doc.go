// Package logging provides concrete implementations of the fraudlens.Logger interface.
//
// Available implementations:
//   - ConsoleLogger: Writes prefixed, human-readable lines to stderr
//   - StructuredLogger: Writes logrus entries (JSON by default) with attached fields
//   - NullLogger: Discards all messages (useful for testing)
//
// All logger implementations are safe for concurrent use by multiple goroutines.
package logging

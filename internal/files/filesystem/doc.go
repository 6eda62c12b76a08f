// Package filesystem provides the directory-walk abstraction the scanner and
// the tabular reader work against.
//
// Key interfaces:
//   - FileSystemProvider: Opens directories for walking and stats paths
//   - Directory: A directory tree that can be walked in lexical order
//   - File: One entry of the walk, opened as a stream
//
// Implementations:
//   - OSFileSystem: Production implementation using the OS filesystem
//   - MemoryFileSystem: In-memory implementation for testing
package filesystem

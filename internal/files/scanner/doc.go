// Package scanner provides discovery of tabular source files.
//
// The scanner package is responsible for:
//   - Recursively discovering source files by extension in a directory tree
//   - Mapping each file to its table identifier (base name without extension)
//   - Reporting table name collisions between files in different directories
//
// The scanner is designed to be filesystem-agnostic through the use of
// filesystem.FileSystemProvider interface, enabling both production use
// with the OS filesystem and testing with in-memory filesystems.
package scanner

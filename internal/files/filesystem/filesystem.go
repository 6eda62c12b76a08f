package filesystem

import (
	"io"
	"io/fs"
)

// FileInfo is an alias for fs.FileInfo from the standard library.
type FileInfo = fs.FileInfo

// File represents an individual walk entry with its metadata and content accessor.
type File interface {
	// Path returns the absolute path to the file
	Path() string

	// RelativePath returns the path relative to the walk root
	RelativePath() string

	// Info returns file metadata
	Info() FileInfo

	// Open returns a reader over the file's content. The caller closes it.
	Open() (io.ReadCloser, error)
}

// Directory represents a directory tree that can be traversed to discover files.
type Directory interface {
	// Path returns the absolute path to the directory
	Path() string

	// Walk visits every file and directory under Path in lexical order.
	// If fn returns an error, walking stops and that error is returned.
	Walk(fn func(File, error) error) error
}

// FileSystemProvider is a factory for creating Directory instances.
type FileSystemProvider interface {
	// Open opens a directory at the specified path
	Open(path string) (Directory, error)

	// Stat returns file information for the given path
	Stat(path string) (FileInfo, error)

	// OpenFile returns a reader over a regular file. The caller closes it.
	OpenFile(path string) (io.ReadCloser, error)
}

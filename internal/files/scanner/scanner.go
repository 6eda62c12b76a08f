package scanner

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/fraudlens/fraudlens/internal/files/filesystem"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Scanner discovers source files from a directory tree.
// Scanner is safe for concurrent use by multiple goroutines as long as
// the provided fsProvider is also thread-safe.
type Scanner struct {
	fsProvider filesystem.FileSystemProvider
	extensions map[string]bool
}

// NewScanner creates a scanner over the OS filesystem accepting the given
// extensions (case-insensitive). No extensions means DefaultSourceExtension.
func NewScanner(extensions ...string) *Scanner {
	return NewScannerWithFS(filesystem.NewOSFileSystem(), extensions...)
}

// NewScannerWithFS creates a new scanner with a custom filesystem provider.
// This is primarily useful for testing with in-memory filesystems.
// Panics if fsProvider is nil.
func NewScannerWithFS(fsProvider filesystem.FileSystemProvider, extensions ...string) *Scanner {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if len(extensions) == 0 {
		extensions = []string{fraudlens.DefaultSourceExtension}
	}
	exts := make(map[string]bool, len(extensions))
	for _, ext := range extensions {
		exts[strings.ToLower(ext)] = true
	}
	return &Scanner{
		fsProvider: fsProvider,
		extensions: exts,
	}
}

// ScanDirectory recursively scans a directory and returns the source files in
// walk order with their table mapping.
func (s *Scanner) ScanDirectory(sourcePath string) (fraudlens.FileScanResult, error) {
	dir, err := s.fsProvider.Open(sourcePath)
	if err != nil {
		return fraudlens.FileScanResult{}, fmt.Errorf("failed to open directory: %w", err)
	}

	var files []fraudlens.SourceFile
	pathsByTable := make(map[string][]string)
	var tableOrder []string

	err = dir.Walk(func(file filesystem.File, err error) error {
		if err != nil {
			return fmt.Errorf("error walking path: %w", err)
		}

		info := file.Info()
		if info.IsDir() {
			return nil
		}

		ext := filepath.Ext(info.Name())
		if !s.extensions[strings.ToLower(ext)] {
			return nil
		}

		source := describe(file, ext)
		if source.Table == "" {
			return fmt.Errorf("file %s has no base name to use as a table name", source.RelativePath)
		}

		if _, seen := pathsByTable[source.Table]; !seen {
			tableOrder = append(tableOrder, source.Table)
		}
		pathsByTable[source.Table] = append(pathsByTable[source.Table], source.Path)
		files = append(files, source)
		return nil
	})
	if err != nil {
		return fraudlens.FileScanResult{}, err
	}

	var collisions []fraudlens.TableCollision
	for _, table := range tableOrder {
		if paths := pathsByTable[table]; len(paths) > 1 {
			collisions = append(collisions, fraudlens.TableCollision{Table: table, Paths: paths})
		}
	}

	return fraudlens.FileScanResult{
		Files:      files,
		Collisions: collisions,
	}, nil
}

// describe builds the SourceFile for a walk entry.
func describe(file filesystem.File, ext string) fraudlens.SourceFile {
	info := file.Info()

	// Convert path to Unix-style (forward slashes) and ensure ./ prefix
	relPath := filepath.ToSlash(file.RelativePath())
	if !strings.HasPrefix(relPath, "./") {
		relPath = "./" + relPath
	}

	return fraudlens.SourceFile{
		Path:         filepath.ToSlash(file.Path()),
		RelativePath: relPath,
		Name:         info.Name(),
		Extension:    ext,
		Table:        TableName(info.Name()),
		SizeBytes:    info.Size(),
		ModifiedAt:   info.ModTime(),
	}
}

// TableName maps a file name to its table identifier: the base name with the
// final extension removed. "fraud_indicators.csv" becomes "fraud_indicators".
func TableName(fileName string) string {
	base := path.Base(filepath.ToSlash(fileName))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Verify Scanner implements the interface at compile time
var _ fraudlens.FileScanner = (*Scanner)(nil)

// Package files groups the sub-packages that turn a directory tree into
// in-memory tables ready for loading.
//
//   - filesystem: Filesystem abstraction interfaces and implementations (OS and in-memory)
//   - scanner: Source file discovery and the file -> table mapping
//   - tabular: CSV parsing, header cleanup and column kind inference
//
// # Usage
//
//	import (
//	    "github.com/fraudlens/fraudlens/internal/files/scanner"
//	    "github.com/fraudlens/fraudlens/internal/files/tabular"
//	)
//
//	result, err := scanner.NewScanner().ScanDirectory("./AntiFraudData")
//	for _, f := range result.Files {
//	    table, err := tabular.ReadFile(fsys, f.Path, tabular.Options{})
//	    ...
//	}
//
// Writing tables to a store is handled by the loader package.
package files

// Package tabular parses delimited text files into typed rows.
//
// Each column gets one kind inferred from all of its non-missing cells:
// integer, boolean, real, or text, tried in that order. Missing cells become
// nil. A column with no values at all is real, matching how the source data
// is usually produced (a float column full of NaN).
package tabular

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/fraudlens/fraudlens/internal/files/filesystem"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// ErrNoHeader is returned for input without a header row.
var ErrNoHeader = errors.New("no header row")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// missingMarkers are cell values read as NULL.
var missingMarkers = map[string]bool{
	"":     true,
	"NA":   true,
	"N/A":  true,
	"n/a":  true,
	"#N/A": true,
	"<NA>": true,
	"NaN":  true,
	"nan":  true,
	"NULL": true,
	"null": true,
	"None": true,
}

// Table is a parsed source file.
type Table struct {
	Columns []fraudlens.Column

	// Rows hold nil, int64, float64 or string values aligned with Columns.
	Rows [][]any
}

// Options tune parsing.
type Options struct {
	// Comma is the field delimiter; zero means ','.
	Comma rune
}

// OptionsFor picks parsing options from a file's extension: tab-separated
// for .tsv and .tab, comma-separated otherwise.
func OptionsFor(filePath string) Options {
	switch strings.ToLower(path.Ext(filePath)) {
	case ".tsv", ".tab":
		return Options{Comma: '\t'}
	default:
		return Options{}
	}
}

// ReadFile opens and parses the file at path.
func ReadFile(fsys filesystem.FileSystemProvider, path string, opts Options) (*Table, error) {
	rc, err := fsys.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("open: %w", err)
	}
	defer rc.Close()
	return Read(rc, opts)
}

// Read parses delimited UTF-8 text with a header row.
func Read(r io.Reader, opts Options) (*Table, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(prefix, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	cr := csv.NewReader(br)
	if opts.Comma != 0 {
		cr.Comma = opts.Comma
	}

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, ErrNoHeader
	}
	if err != nil {
		return nil, fmt.Errorf("header: %w", err)
	}
	if err := checkUTF8(header, 1); err != nil {
		return nil, err
	}
	names := normalizeHeader(header)

	var raw [][]string
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		line, _ := cr.FieldPos(0)
		if err := checkUTF8(record, line); err != nil {
			return nil, err
		}
		raw = append(raw, record)
	}

	kinds := make([]fraudlens.ColumnKind, len(names))
	columns := make([]fraudlens.Column, len(names))
	for i, name := range names {
		kinds[i] = inferKind(raw, i)
		columns[i] = fraudlens.Column{Name: name, Kind: kinds[i]}
	}

	rows := make([][]any, len(raw))
	for r, record := range raw {
		row := make([]any, len(record))
		for c, cell := range record {
			row[c] = convert(cell, kinds[c])
		}
		rows[r] = row
	}

	return &Table{Columns: columns, Rows: rows}, nil
}

func checkUTF8(record []string, line int) error {
	for i, field := range record {
		if !utf8.ValidString(field) {
			return fmt.Errorf("line %d, field %d: invalid UTF-8", line, i+1)
		}
	}
	return nil
}

// normalizeHeader names blank columns "Unnamed: <i>" and suffixes repeated
// names with ".1", ".2", ...
func normalizeHeader(header []string) []string {
	names := make([]string, len(header))
	used := make(map[string]int, len(header))
	for i, h := range header {
		name := strings.TrimSpace(h)
		if name == "" {
			name = fmt.Sprintf("Unnamed: %d", i)
		}
		if n, dup := used[name]; dup {
			used[name] = n + 1
			name = fmt.Sprintf("%s.%d", name, n+1)
		} else {
			used[name] = 0
		}
		names[i] = name
	}
	return names
}

// IsMissing reports whether a cell is read as NULL.
func IsMissing(cell string) bool {
	return missingMarkers[strings.TrimSpace(cell)]
}

func inferKind(raw [][]string, col int) fraudlens.ColumnKind {
	canInt, canBool, canReal := true, true, true
	seen := false
	for _, record := range raw {
		cell := record[col]
		if IsMissing(cell) {
			continue
		}
		seen = true
		v := strings.TrimSpace(cell)
		if canInt {
			if _, err := strconv.ParseInt(v, 10, 64); err != nil {
				canInt = false
			}
		}
		if canBool {
			if _, ok := parseBool(v); !ok {
				canBool = false
			}
		}
		if canReal {
			if _, err := strconv.ParseFloat(v, 64); err != nil {
				canReal = false
			}
		}
		if !canInt && !canBool && !canReal {
			return fraudlens.KindText
		}
	}

	switch {
	case !seen:
		return fraudlens.KindReal
	case canInt:
		return fraudlens.KindInteger
	case canBool:
		return fraudlens.KindBoolean
	case canReal:
		return fraudlens.KindReal
	default:
		return fraudlens.KindText
	}
}

func parseBool(v string) (bool, bool) {
	switch strings.ToLower(v) {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// convert turns a cell into the Go value stored for its column kind. The
// kind was inferred from the same cells, so parse failures cannot happen here.
func convert(cell string, kind fraudlens.ColumnKind) any {
	if IsMissing(cell) {
		return nil
	}
	v := strings.TrimSpace(cell)
	switch kind {
	case fraudlens.KindInteger:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case fraudlens.KindBoolean:
		if b, _ := parseBool(v); b {
			return int64(1)
		}
		return int64(0)
	case fraudlens.KindReal:
		f, _ := strconv.ParseFloat(v, 64)
		return f
	default:
		return cell
	}
}

package loader

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/fraudlens/fraudlens/internal/files/filesystem"
	"github.com/fraudlens/fraudlens/internal/files/tabular"
	"github.com/fraudlens/fraudlens/internal/store"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Loader replaces store tables with the contents of source files.
type Loader struct {
	fsProvider filesystem.FileSystemProvider
	logger     fraudlens.Logger
	batchSize  int
}

// NewLoader creates a loader reading through fsProvider.
// A batchSize of zero or less means DefaultBatchSize.
// Panics if fsProvider or logger is nil.
func NewLoader(fsProvider filesystem.FileSystemProvider, logger fraudlens.Logger, batchSize int) *Loader {
	if fsProvider == nil {
		panic("fsProvider cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	if batchSize <= 0 {
		batchSize = fraudlens.DefaultBatchSize
	}
	return &Loader{
		fsProvider: fsProvider,
		logger:     logger,
		batchSize:  batchSize,
	}
}

// LoadFiles loads files in order and stops at the first failure.
// Tables loaded before the failure remain in the store.
func (l *Loader) LoadFiles(ctx context.Context, st *store.Store, files []fraudlens.SourceFile) ([]fraudlens.LoadedTable, error) {
	loaded := make([]fraudlens.LoadedTable, 0, len(files))
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return loaded, err
		}
		result, err := l.LoadFile(ctx, st, file)
		if err != nil {
			return loaded, err
		}
		loaded = append(loaded, result)
	}
	return loaded, nil
}

// LoadFile reads one source file and replaces its table. The delimiter
// follows the file extension (see tabular.OptionsFor).
// Every failure is returned as a *fraudlens.DataLoadError naming the file.
func (l *Loader) LoadFile(ctx context.Context, st *store.Store, file fraudlens.SourceFile) (fraudlens.LoadedTable, error) {
	table, err := tabular.ReadFile(l.fsProvider, file.Path, tabular.OptionsFor(file.Path))
	if err != nil {
		return fraudlens.LoadedTable{}, &fraudlens.DataLoadError{Path: file.Path, Err: err}
	}

	if err := l.replaceTable(ctx, st, file.Table, table); err != nil {
		return fraudlens.LoadedTable{}, &fraudlens.DataLoadError{Path: file.Path, Err: err}
	}

	l.logger.Verbose("Loaded %s into %s (%d rows, %d columns)", file.RelativePath, file.Table, len(table.Rows), len(table.Columns))

	return fraudlens.LoadedTable{
		Path:    file.Path,
		Table:   file.Table,
		Rows:    len(table.Rows),
		Columns: table.Columns,
	}, nil
}

func (l *Loader) replaceTable(ctx context.Context, st *store.Store, name string, table *tabular.Table) (err error) {
	tx, err := st.DB().BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	d := st.Dialect()
	if _, err = tx.ExecContext(ctx, "DROP TABLE IF EXISTS "+d.QuoteIdent(name)); err != nil {
		return fmt.Errorf("failed to drop table %s: %w", name, err)
	}
	if _, err = tx.ExecContext(ctx, CreateTableSQL(d, name, table.Columns)); err != nil {
		return fmt.Errorf("failed to create table %s: %w", name, err)
	}
	if err = l.insertRows(ctx, tx, d, name, table); err != nil {
		return err
	}
	if err = tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit table %s: %w", name, err)
	}
	return nil
}

// insertRows writes rows with multi-row INSERT statements, keeping each
// statement under the dialect's bind parameter limit.
func (l *Loader) insertRows(ctx context.Context, tx *sql.Tx, d store.Dialect, name string, table *tabular.Table) error {
	perStatement := RowsPerStatement(d, l.batchSize, len(table.Columns))

	var fullBatch string
	for start := 0; start < len(table.Rows); start += perStatement {
		end := start + perStatement
		if end > len(table.Rows) {
			end = len(table.Rows)
		}
		batch := table.Rows[start:end]

		query := fullBatch
		if len(batch) != perStatement || query == "" {
			query = InsertSQL(d, name, table.Columns, len(batch))
			if len(batch) == perStatement {
				fullBatch = query
			}
		}

		args := make([]any, 0, len(batch)*len(table.Columns))
		for _, row := range batch {
			args = append(args, row...)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("failed to insert rows %d-%d into %s: %w", start+1, end, name, err)
		}
	}
	return nil
}

// RowsPerStatement caps batchSize so rows*columns fits the parameter limit.
func RowsPerStatement(d store.Dialect, batchSize, columns int) int {
	if columns == 0 {
		return batchSize
	}
	limit := d.MaxParams() / columns
	if limit < 1 {
		limit = 1
	}
	if batchSize < limit {
		return batchSize
	}
	return limit
}

// CreateTableSQL renders the CREATE TABLE statement for a column set.
func CreateTableSQL(d store.Dialect, name string, columns []fraudlens.Column) string {
	defs := make([]string, len(columns))
	for i, c := range columns {
		defs[i] = d.QuoteIdent(c.Name) + " " + d.ColumnType(c.Kind)
	}
	return fmt.Sprintf("CREATE TABLE %s (%s)", d.QuoteIdent(name), strings.Join(defs, ", "))
}

// InsertSQL renders a multi-row INSERT with rows*len(columns) placeholders.
func InsertSQL(d store.Dialect, name string, columns []fraudlens.Column, rows int) string {
	var sb strings.Builder
	sb.WriteString("INSERT INTO ")
	sb.WriteString(d.QuoteIdent(name))
	sb.WriteString(" (")
	for i, c := range columns {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(d.QuoteIdent(c.Name))
	}
	sb.WriteString(") VALUES ")

	n := 1
	for r := 0; r < rows; r++ {
		if r > 0 {
			sb.WriteString(", ")
		}
		sb.WriteByte('(')
		for c := range columns {
			if c > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(d.Placeholder(n))
			n++
		}
		sb.WriteByte(')')
	}
	return sb.String()
}

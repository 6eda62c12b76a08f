package report

import (
	"context"
	"errors"
	"fmt"

	"github.com/fraudlens/fraudlens/internal/logging"
	"github.com/fraudlens/fraudlens/internal/store"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// RunOptions control a multi-query run.
type RunOptions struct {
	// ContinueOnError runs every query and joins the failures instead of
	// stopping at the first one.
	ContinueOnError bool

	// SkipMissing skips queries whose tables or columns are not in the store
	// instead of failing them.
	SkipMissing bool
}

// Engine runs catalog queries against one store. It reads the store's
// table catalog once and reuses it for every schema check.
type Engine struct {
	store  *store.Store
	logger fraudlens.Logger
	schema store.Catalog
}

// NewEngine creates an engine over st.
// Panics if st or logger is nil.
func NewEngine(st *store.Store, logger fraudlens.Logger) *Engine {
	if st == nil {
		panic("store cannot be nil")
	}
	if logger == nil {
		panic("logger cannot be nil")
	}
	return &Engine{store: st, logger: logger}
}

func (e *Engine) catalog(ctx context.Context) (store.Catalog, error) {
	if e.schema != nil {
		return e.schema, nil
	}
	schema, err := e.store.Catalog(ctx)
	if err != nil {
		return nil, err
	}
	e.schema = schema
	return schema, nil
}

// Validate checks that every table and column q reads exists in the store.
func (e *Engine) Validate(ctx context.Context, q Query) error {
	schema, err := e.catalog(ctx)
	if err != nil {
		return &fraudlens.ReportQueryError{Label: q.Label, Err: err}
	}
	return CheckSchema(schema, q)
}

// CheckSchema compares the references of q against a store catalog.
func CheckSchema(schema store.Catalog, q Query) error {
	for _, table := range q.Tables() {
		if !schema.HasTable(table) {
			return &fraudlens.SchemaMismatchError{Label: q.Label, Table: table}
		}
	}
	for _, ref := range q.Refs() {
		if !schema.HasColumn(ref.Table, ref.Column) {
			return &fraudlens.SchemaMismatchError{Label: q.Label, Table: ref.Table, Column: ref.Column}
		}
	}
	return nil
}

// Run validates and executes one query.
func (e *Engine) Run(ctx context.Context, q Query) (Result, error) {
	if err := e.Validate(ctx, q); err != nil {
		return Result{}, err
	}

	log := logging.With(e.logger, "query_id", q.ID)

	query, err := q.SQL(e.store.Dialect())
	if err != nil {
		return Result{}, &fraudlens.ReportQueryError{Label: q.Label, Err: err}
	}
	log.Verbose("Query %d: %s", q.ID, query)

	rows, err := e.store.DB().QueryContext(ctx, query)
	if err != nil {
		return Result{}, &fraudlens.ReportQueryError{Label: q.Label, Err: err}
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return Result{}, &fraudlens.ReportQueryError{Label: q.Label, Err: err}
	}

	result := Result{Query: q, Columns: columns}
	for rows.Next() {
		raw := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return Result{}, &fraudlens.ReportQueryError{Label: q.Label, Err: err}
		}
		row := make(Row, len(raw))
		for i, v := range raw {
			row[i] = NewValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return Result{}, &fraudlens.ReportQueryError{Label: q.Label, Err: err}
	}

	log.Verbose("Query %d returned %d row(s)", q.ID, len(result.Rows))
	return result, nil
}

// RunAll runs queries in order and hands each result to emit as soon as it
// is ready, so output produced before a failure stays valid.
func (e *Engine) RunAll(ctx context.Context, queries []Query, opts RunOptions, emit func(Result) error) error {
	var errs []error
	for _, q := range queries {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}

		result, err := e.Run(ctx, q)
		if err != nil && opts.SkipMissing && errors.Is(err, fraudlens.ErrSchemaMismatch) {
			e.logger.Warn("Skipping: %v", err)
			continue
		}
		if err != nil {
			if !opts.ContinueOnError {
				return err
			}
			e.logger.Error("%v", err)
			errs = append(errs, err)
			continue
		}

		if err := emit(result); err != nil {
			return fmt.Errorf("failed to write result of %q: %w", q.Label, err)
		}
	}
	return errors.Join(errs...)
}

// Collect runs queries and returns every result.
func (e *Engine) Collect(ctx context.Context, queries []Query, opts RunOptions) ([]Result, error) {
	var results []Result
	err := e.RunAll(ctx, queries, opts, func(r Result) error {
		results = append(results, r)
		return nil
	})
	return results, err
}

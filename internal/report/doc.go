// Package report holds the fraud analysis query catalog and the engine that
// runs it.
//
// Queries are declarative values (tables, joins, filters, grouping, ordering,
// limit and an output template) compiled to SQL for the dialect of the open
// store. Before a query runs, every table and column it references is checked
// against the store catalog so a missing input surfaces as a
// SchemaMismatchError naming the query instead of a driver error.
//
// Running a query returns a typed Result; rendering it as text is the
// Presenter's job.
package report

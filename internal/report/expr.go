package report

import (
	"strconv"
	"strings"

	"github.com/fraudlens/fraudlens/internal/store"
)

// Expr is a SQL expression that can be rendered for any dialect.
type Expr interface {
	SQL(d store.Dialect) string

	// Refs lists the table columns the expression reads.
	Refs() []ColumnRef
}

// ColumnRef names a column of a store table.
type ColumnRef struct {
	Table  string
	Column string
}

// TableRef is a table together with the alias it is referenced by.
type TableRef struct {
	Name  string
	Alias string
}

// Table returns a reference to table name under alias.
func Table(name, alias string) TableRef {
	return TableRef{Name: name, Alias: alias}
}

// Col references a column of the table.
func (t TableRef) Col(name string) Expr {
	return column{table: t, name: name}
}

func (t TableRef) alias() string {
	if t.Alias == "" {
		return t.Name
	}
	return t.Alias
}

func (t TableRef) sql(d store.Dialect) string {
	if t.Alias == "" || t.Alias == t.Name {
		return d.QuoteIdent(t.Name)
	}
	return d.QuoteIdent(t.Name) + " AS " + d.QuoteIdent(t.Alias)
}

type column struct {
	table TableRef
	name  string
}

func (c column) SQL(d store.Dialect) string {
	return d.QuoteIdent(c.table.alias()) + "." + d.QuoteIdent(c.name)
}

func (c column) Refs() []ColumnRef {
	return []ColumnRef{{Table: c.table.Name, Column: c.name}}
}

type countAll struct{}

// CountAll is COUNT(*).
func CountAll() Expr { return countAll{} }

func (countAll) SQL(store.Dialect) string { return "COUNT(*)" }
func (countAll) Refs() []ColumnRef        { return nil }

type aggregate struct {
	fn  string
	arg Expr
}

// Count counts the non-null values of e.
func Count(e Expr) Expr { return aggregate{fn: "COUNT", arg: e} }

// Sum adds up e.
func Sum(e Expr) Expr { return aggregate{fn: "SUM", arg: e} }

// Avg averages e.
func Avg(e Expr) Expr { return aggregate{fn: "AVG", arg: e} }

// Min is the smallest value of e.
func Min(e Expr) Expr { return aggregate{fn: "MIN", arg: e} }

// Max is the largest value of e.
func Max(e Expr) Expr { return aggregate{fn: "MAX", arg: e} }

func (a aggregate) SQL(d store.Dialect) string {
	arg := a.arg.SQL(d)
	switch a.fn {
	case "SUM":
		return d.Sum(arg)
	case "AVG":
		return d.Avg(arg)
	default:
		return a.fn + "(" + arg + ")"
	}
}

func (a aggregate) Refs() []ColumnRef { return a.arg.Refs() }

type round struct {
	arg    Expr
	places int
}

// Round rounds e to places decimal places.
func Round(e Expr, places int) Expr { return round{arg: e, places: places} }

func (r round) SQL(d store.Dialect) string { return d.Round(r.arg.SQL(d), r.places) }
func (r round) Refs() []ColumnRef          { return r.arg.Refs() }

// AgeBands are the labels AgeBand produces, in ascending age order.
var AgeBands = []string{"18-24", "25-34", "35-44", "45-54", "55-64", "65+", "Unknown"}

type ageBand struct {
	arg Expr
}

// AgeBand buckets an age into one of AgeBands. Null ages and ages below 18
// or between the closed ranges fall into "Unknown".
func AgeBand(e Expr) Expr { return ageBand{arg: e} }

func (a ageBand) SQL(d store.Dialect) string {
	age := a.arg.SQL(d)
	var sb strings.Builder
	sb.WriteString("CASE")
	for _, band := range []struct {
		lo, hi int
		label  string
	}{
		{18, 24, "18-24"},
		{25, 34, "25-34"},
		{35, 44, "35-44"},
		{45, 54, "45-54"},
		{55, 64, "55-64"},
	} {
		sb.WriteString(" WHEN " + age + " BETWEEN " + strconv.Itoa(band.lo) + " AND " + strconv.Itoa(band.hi))
		sb.WriteString(" THEN " + quoteString(band.label))
	}
	sb.WriteString(" WHEN " + age + " >= 65 THEN '65+'")
	sb.WriteString(" ELSE 'Unknown' END")
	return sb.String()
}

func (a ageBand) Refs() []ColumnRef { return a.arg.Refs() }

type timeBucket struct {
	arg  Expr
	unit store.TimeUnit
}

// Month truncates a timestamp to "YYYY-MM".
func Month(e Expr) Expr { return timeBucket{arg: e, unit: store.BucketMonth} }

// Minute truncates a timestamp to "YYYY-MM-DD HH:MM".
func Minute(e Expr) Expr { return timeBucket{arg: e, unit: store.BucketMinute} }

func (t timeBucket) SQL(d store.Dialect) string { return d.TimeBucket(t.arg.SQL(d), t.unit) }
func (t timeBucket) Refs() []ColumnRef          { return t.arg.Refs() }

type literal string

// Int is an integer literal.
func Int(n int64) Expr { return literal(strconv.FormatInt(n, 10)) }

// Float is a floating point literal.
func Float(f float64) Expr { return literal(strconv.FormatFloat(f, 'f', -1, 64)) }

// Text is a string literal.
func Text(s string) Expr { return literal(quoteString(s)) }

func (l literal) SQL(store.Dialect) string { return string(l) }
func (l literal) Refs() []ColumnRef        { return nil }

func quoteString(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// Predicate is a binary comparison used in WHERE, HAVING and join conditions.
type Predicate struct {
	Left  Expr
	Op    string
	Right Expr
}

func (p Predicate) SQL(d store.Dialect) string {
	return p.Left.SQL(d) + " " + p.Op + " " + p.Right.SQL(d)
}

func (p Predicate) Refs() []ColumnRef {
	return append(p.Left.Refs(), p.Right.Refs()...)
}

func Eq(l, r Expr) Predicate { return Predicate{Left: l, Op: "=", Right: r} }
func Ne(l, r Expr) Predicate { return Predicate{Left: l, Op: "<>", Right: r} }
func Gt(l, r Expr) Predicate { return Predicate{Left: l, Op: ">", Right: r} }
func Ge(l, r Expr) Predicate { return Predicate{Left: l, Op: ">=", Right: r} }
func Lt(l, r Expr) Predicate { return Predicate{Left: l, Op: "<", Right: r} }

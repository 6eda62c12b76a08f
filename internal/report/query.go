package report

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/fraudlens/fraudlens/internal/store"
)

// Join is an inner join of Table on all of the On predicates.
type Join struct {
	Table TableRef
	On    []Predicate
}

// Field is one output column.
type Field struct {
	Name string
	Expr Expr
}

// Order sorts by an output field, or by Expr when it is set.
type Order struct {
	Field string
	Expr  Expr
	Desc  bool
}

// Asc sorts by field ascending.
func Asc(field string) Order { return Order{Field: field} }

// Desc sorts by field descending.
func Desc(field string) Order { return Order{Field: field, Desc: true} }

// DescBy sorts by an expression descending, e.g. an unrounded column whose
// output field is rounded.
func DescBy(e Expr) Order { return Order{Expr: e, Desc: true} }

// Query is one catalog entry.
type Query struct {
	ID    int
	Label string

	From    TableRef
	Joins   []Join
	Where   []Predicate
	Select  []Field
	GroupBy []Expr
	Having  []Predicate
	OrderBy []Order

	// Limit caps the number of rows; zero means no limit.
	Limit int

	// Template renders one result row. {Field} placeholders name output fields.
	Template string
}

var placeholderPattern = regexp.MustCompile(`\{([A-Za-z0-9_]+)\}`)

// Placeholders returns the field names used by the template, in order.
func (q Query) Placeholders() []string {
	matches := placeholderPattern.FindAllStringSubmatch(q.Template, -1)
	names := make([]string, len(matches))
	for i, m := range matches {
		names[i] = m[1]
	}
	return names
}

// FieldNames returns the output column names.
func (q Query) FieldNames() []string {
	names := make([]string, len(q.Select))
	for i, f := range q.Select {
		names[i] = f.Name
	}
	return names
}

// Tables returns the distinct tables the query reads, in FROM/JOIN order.
func (q Query) Tables() []string {
	seen := map[string]bool{}
	var tables []string
	for _, t := range q.tableRefs() {
		if !seen[t.Name] {
			seen[t.Name] = true
			tables = append(tables, t.Name)
		}
	}
	return tables
}

// Refs returns the distinct columns the query reads, in first-use order.
func (q Query) Refs() []ColumnRef {
	var exprs []Expr
	for _, j := range q.Joins {
		for _, p := range j.On {
			exprs = append(exprs, p)
		}
	}
	for _, p := range q.Where {
		exprs = append(exprs, p)
	}
	for _, f := range q.Select {
		exprs = append(exprs, f.Expr)
	}
	exprs = append(exprs, q.GroupBy...)
	for _, p := range q.Having {
		exprs = append(exprs, p)
	}
	for _, o := range q.OrderBy {
		if o.Expr != nil {
			exprs = append(exprs, o.Expr)
		}
	}

	seen := map[ColumnRef]bool{}
	var refs []ColumnRef
	for _, e := range exprs {
		for _, ref := range e.Refs() {
			if !seen[ref] {
				seen[ref] = true
				refs = append(refs, ref)
			}
		}
	}
	return refs
}

func (q Query) tableRefs() []TableRef {
	refs := []TableRef{q.From}
	for _, j := range q.Joins {
		refs = append(refs, j.Table)
	}
	return refs
}

// Check verifies the query is internally consistent: unique aliases, known
// order and template fields, and a non-empty select list.
func (q Query) Check() error {
	if q.Label == "" {
		return fmt.Errorf("query %d has no label", q.ID)
	}
	if len(q.Select) == 0 {
		return fmt.Errorf("query %q selects nothing", q.Label)
	}

	aliases := map[string]bool{}
	for _, t := range q.tableRefs() {
		if aliases[t.alias()] {
			return fmt.Errorf("query %q uses alias %s twice", q.Label, t.alias())
		}
		aliases[t.alias()] = true
	}
	for _, ref := range q.Refs() {
		found := false
		for _, t := range q.tableRefs() {
			if t.Name == ref.Table {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("query %q reads %s.%s without joining %s", q.Label, ref.Table, ref.Column, ref.Table)
		}
	}

	fields := map[string]bool{}
	for _, f := range q.Select {
		if fields[f.Name] {
			return fmt.Errorf("query %q selects %s twice", q.Label, f.Name)
		}
		fields[f.Name] = true
	}
	for _, o := range q.OrderBy {
		if o.Expr == nil && !fields[o.Field] {
			return fmt.Errorf("query %q orders by unknown field %s", q.Label, o.Field)
		}
	}
	for _, name := range q.Placeholders() {
		if !fields[name] {
			return fmt.Errorf("query %q template uses unknown field %s", q.Label, name)
		}
	}
	if q.Limit < 0 {
		return fmt.Errorf("query %q has negative limit", q.Label)
	}
	return nil
}

// SQL compiles the query for a dialect.
func (q Query) SQL(d store.Dialect) (string, error) {
	if err := q.Check(); err != nil {
		return "", err
	}

	var sb strings.Builder
	sb.WriteString("SELECT ")
	for i, f := range q.Select {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(f.Expr.SQL(d))
		sb.WriteString(" AS ")
		sb.WriteString(d.QuoteIdent(f.Name))
	}

	sb.WriteString(" FROM ")
	sb.WriteString(q.From.sql(d))
	for _, j := range q.Joins {
		sb.WriteString(" JOIN ")
		sb.WriteString(j.Table.sql(d))
		sb.WriteString(" ON ")
		writePredicates(&sb, d, j.On)
	}

	if len(q.Where) > 0 {
		sb.WriteString(" WHERE ")
		writePredicates(&sb, d, q.Where)
	}

	if len(q.GroupBy) > 0 {
		sb.WriteString(" GROUP BY ")
		for i, e := range q.GroupBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			sb.WriteString(e.SQL(d))
		}
	}

	if len(q.Having) > 0 {
		sb.WriteString(" HAVING ")
		writePredicates(&sb, d, q.Having)
	}

	if len(q.OrderBy) > 0 {
		sb.WriteString(" ORDER BY ")
		for i, o := range q.OrderBy {
			if i > 0 {
				sb.WriteString(", ")
			}
			if o.Expr != nil {
				sb.WriteString(o.Expr.SQL(d))
			} else {
				sb.WriteString(d.QuoteIdent(o.Field))
			}
			if o.Desc {
				sb.WriteString(" DESC")
			} else {
				sb.WriteString(" ASC")
			}
		}
	}

	if q.Limit > 0 {
		sb.WriteString(" LIMIT ")
		sb.WriteString(strconv.Itoa(q.Limit))
	}

	return sb.String(), nil
}

func writePredicates(sb *strings.Builder, d store.Dialect, preds []Predicate) {
	for i, p := range preds {
		if i > 0 {
			sb.WriteString(" AND ")
		}
		sb.WriteString(p.SQL(d))
	}
}

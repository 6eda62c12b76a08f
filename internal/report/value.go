package report

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Value is one cell of a result. It holds nil, int64, float64 or string.
type Value struct {
	v any
}

// NewValue normalizes a value scanned from a driver.
func NewValue(raw any) Value {
	switch x := raw.(type) {
	case nil:
		return Value{}
	case int64:
		return Value{x}
	case int:
		return Value{int64(x)}
	case int32:
		return Value{int64(x)}
	case float64:
		return Value{x}
	case float32:
		return Value{float64(x)}
	case bool:
		if x {
			return Value{int64(1)}
		}
		return Value{int64(0)}
	case []byte:
		return Value{string(x)}
	case string:
		return Value{x}
	case time.Time:
		return Value{x.Format("2006-01-02 15:04:05")}
	default:
		return Value{fmt.Sprint(x)}
	}
}

// IsNull reports whether the cell is NULL.
func (v Value) IsNull() bool { return v.v == nil }

// Raw returns the underlying nil, int64, float64 or string.
func (v Value) Raw() any { return v.v }

// Int64 returns the cell as an integer. Integral floats and numeric
// strings convert; anything else reports false.
func (v Value) Int64() (int64, bool) {
	switch x := v.v.(type) {
	case int64:
		return x, true
	case float64:
		// MaxInt64 rounds up to 2^63 as a float64.
		if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
			return int64(x), true
		}
	case string:
		n, err := strconv.ParseInt(x, 10, 64)
		return n, err == nil
	}
	return 0, false
}

// Float64 returns the cell as a float.
func (v Value) Float64() (float64, bool) {
	switch x := v.v.(type) {
	case float64:
		return x, true
	case int64:
		return float64(x), true
	case string:
		f, err := strconv.ParseFloat(x, 64)
		return f, err == nil
	}
	return 0, false
}

// String renders the cell for display. NULL renders as fraudlens.NullDisplay.
func (v Value) String() string {
	switch x := v.v.(type) {
	case nil:
		return fraudlens.NullDisplay
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

// Row is one result row aligned with Result.Columns.
type Row []Value

// Result is the typed outcome of one query.
type Result struct {
	Query   Query
	Columns []string
	Rows    []Row
}

// Get returns the cell of row i named field, or a NULL Value when the field
// does not exist.
func (r Result) Get(i int, field string) Value {
	for c, name := range r.Columns {
		if name == field {
			return r.Rows[i][c]
		}
	}
	return Value{}
}

// Scalar returns the first cell of the first row; NULL for an empty result.
func (r Result) Scalar() Value {
	if len(r.Rows) == 0 || len(r.Rows[0]) == 0 {
		return Value{}
	}
	return r.Rows[0][0]
}

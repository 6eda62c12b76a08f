package report

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValue(t *testing.T) {
	tests := []struct {
		name   string
		raw    any
		str    string
		isNull bool
		i      int64
		iOK    bool
		f      float64
		fOK    bool
	}{
		{"nil", nil, "n/a", true, 0, false, 0, false},
		{"int64", int64(42), "42", false, 42, true, 42, true},
		{"int", 7, "7", false, 7, true, 7, true},
		{"integral float", 20.0, "20", false, 20, true, 20, true},
		{"fraction", 72.75, "72.75", false, 0, false, 72.75, true},
		{"bytes", []byte("Food"), "Food", false, 0, false, 0, false},
		{"numeric string", "95.55", "95.55", false, 0, false, 95.55, true},
		{"bool", true, "1", false, 1, true, 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewValue(tt.raw)
			assert.Equal(t, tt.str, v.String())
			assert.Equal(t, tt.isNull, v.IsNull())

			i, ok := v.Int64()
			assert.Equal(t, tt.iOK, ok)
			if ok {
				assert.Equal(t, tt.i, i)
			}

			f, ok := v.Float64()
			assert.Equal(t, tt.fOK, ok)
			if ok {
				assert.InDelta(t, tt.f, f, 1e-9)
			}
		})
	}
}

func TestValue_Int64Range(t *testing.T) {
	i, ok := NewValue(float64(1 << 62)).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(1<<62), i)

	i, ok = NewValue(float64(-1 << 63)).Int64()
	assert.True(t, ok)
	assert.Equal(t, int64(-1<<63), i)

	for _, f := range []float64{1 << 63, 1e300, -1e300, math.Inf(1), math.NaN()} {
		_, ok := NewValue(f).Int64()
		assert.False(t, ok, "%v", f)
	}
}

func TestValue_Time(t *testing.T) {
	v := NewValue(time.Date(2022, 1, 2, 3, 4, 5, 0, time.UTC))
	assert.Equal(t, "2022-01-02 03:04:05", v.String())
}

func TestResult_Accessors(t *testing.T) {
	r := Result{Columns: []string{"A", "B"}, Rows: []Row{{NewValue(int64(1)), NewValue("x")}}}
	assert.Equal(t, "x", r.Get(0, "B").String())
	assert.True(t, r.Get(0, "C").IsNull())
	assert.Equal(t, "1", r.Scalar().String())
	assert.True(t, Result{}.Scalar().IsNull())
}

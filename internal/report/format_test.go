package report

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

func TestFormatRow(t *testing.T) {
	columns := []string{"CustomerID", "AvgBalance"}
	row := Row{NewValue(int64(1001)), NewValue(5000.46)}

	assert.Equal(t, "Customer ID: 1001, Avg Balance: 5000.46",
		FormatRow("Customer ID: {CustomerID}, Avg Balance: {AvgBalance}", columns, row))
	assert.Equal(t, "Customer ID: 1001, {Missing}",
		FormatRow("Customer ID: {CustomerID}, {Missing}", columns, row))
	assert.Equal(t, "Avg Balance: n/a",
		FormatRow("Avg Balance: {AvgBalance}", columns, Row{NewValue(int64(1)), NewValue(nil)}))
}

func TestPresenter_Write(t *testing.T) {
	q := mustLookup(t, 6)
	result := Result{
		Query:   q,
		Columns: []string{"CustomerID", "TransactionCount"},
		Rows: []Row{
			{NewValue("C1"), NewValue(int64(3))},
			{NewValue("C2"), NewValue(int64(1))},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, NewPresenter(&buf, FormatText).Write(result))

	want := q.Label + "\n" +
		"  Customer ID: C1, Transaction Count: 3\n" +
		"  Customer ID: C2, Transaction Count: 1\n" +
		"\n"
	assert.Equal(t, want, buf.String(), "a buffer is never a terminal, so no styling")
}

func TestPresenter_EmptyResult(t *testing.T) {
	q := mustLookup(t, 2)
	var buf bytes.Buffer
	require.NoError(t, NewPresenter(&buf, FormatPlain).Write(Result{Query: q, Columns: q.FieldNames()}))
	assert.Equal(t, q.Label+"\n  "+fraudlens.EmptyResultDisplay+"\n\n", buf.String())
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("closed pipe") }

func TestPresenter_WriteError(t *testing.T) {
	err := NewPresenter(failingWriter{}, FormatPlain).Write(Result{Query: mustLookup(t, 1)})
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{"": FormatText, "text": FormatText, "PLAIN": FormatPlain} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got)
	}
	_, err := ParseFormat("json")
	assert.ErrorIs(t, err, fraudlens.ErrInvalidConfig)
}

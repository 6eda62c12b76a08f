package tabular

import (
	"encoding/csv"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/files/filesystem"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

func read(t *testing.T, content string) *Table {
	t.Helper()
	table, err := Read(strings.NewReader(content), Options{})
	require.NoError(t, err)
	return table
}

func TestRead_InfersKinds(t *testing.T) {
	table := read(t, "ints,reals,bools,texts,empty\n"+
		"1,1,True,a,\n"+
		"2,2.5,false,1,\n"+
		"3,,TRUE,b,\n")

	want := []fraudlens.Column{
		{Name: "ints", Kind: fraudlens.KindInteger},
		{Name: "reals", Kind: fraudlens.KindReal},
		{Name: "bools", Kind: fraudlens.KindBoolean},
		{Name: "texts", Kind: fraudlens.KindText},
		{Name: "empty", Kind: fraudlens.KindReal},
	}
	assert.Equal(t, want, table.Columns)

	require.Len(t, table.Rows, 3)
	assert.Equal(t, []any{int64(1), float64(1), int64(1), "a", nil}, table.Rows[0])
	assert.Equal(t, []any{int64(2), 2.5, int64(0), "1", nil}, table.Rows[1])
	assert.Equal(t, []any{int64(3), nil, int64(1), "b", nil}, table.Rows[2])
}

func TestRead_MissingMarkersAreNull(t *testing.T) {
	table := read(t, "Age\n30\nNA\nnull\n \n70\n")

	assert.Equal(t, fraudlens.KindInteger, table.Columns[0].Kind)
	var got []any
	for _, row := range table.Rows {
		got = append(got, row[0])
	}
	assert.Equal(t, []any{int64(30), nil, nil, nil, int64(70)}, got)
}

func TestRead_TimestampsStayText(t *testing.T) {
	table := read(t, "TransactionID,Timestamp\n1,2022-01-01 00:00:00\n2,2022-01-02 00:01:00\n")
	assert.Equal(t, fraudlens.KindText, table.Columns[1].Kind)
	assert.Equal(t, "2022-01-01 00:00:00", table.Rows[0][1])
}

func TestRead_HeaderCleanup(t *testing.T) {
	table := read(t, "\ufeffid,,id,id\n1,2,3,4\n")

	var names []string
	for _, c := range table.Columns {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"id", "Unnamed: 1", "id.1", "id.2"}, names)
}

func TestRead_HeaderOnly(t *testing.T) {
	table := read(t, "TransactionID,FraudIndicator\n")
	assert.Len(t, table.Columns, 2)
	assert.Empty(t, table.Rows)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(strings.NewReader(""), Options{})
	assert.ErrorIs(t, err, ErrNoHeader)

	_, err = Read(strings.NewReader("a,b\n1,2\n3\n"), Options{})
	assert.True(t, errors.Is(err, csv.ErrFieldCount), "ragged row should fail, got %v", err)

	_, err = Read(strings.NewReader("a\n\"unterminated\n"), Options{})
	assert.Error(t, err)

	_, err = Read(strings.NewReader("a\n\xff\xfe\n"), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid UTF-8")
}

func TestRead_CustomDelimiter(t *testing.T) {
	table, err := Read(strings.NewReader("a;b\n1;x\n"), Options{Comma: ';'})
	require.NoError(t, err)
	assert.Equal(t, []any{int64(1), "x"}, table.Rows[0])
}

func TestOptionsFor(t *testing.T) {
	tests := []struct {
		path string
		want rune
	}{
		{"/data/fraud_indicators.csv", 0},
		{"/data/merchant_data.tsv", '\t'},
		{"/data/merchant_data.TSV", '\t'},
		{"/data/merchant_data.tab", '\t'},
		{"/data/notes", 0},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, OptionsFor(tt.path).Comma)
		})
	}
}

func TestReadFile(t *testing.T) {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("amount_data.csv", "TransactionID,TransactionAmount\n1,10\n2,20.5\n")
	mfs.AddUnreadableFile("locked.csv", errors.New("permission denied"))

	table, err := ReadFile(mfs, "/data/amount_data.csv", Options{})
	require.NoError(t, err)
	assert.Equal(t, fraudlens.KindReal, table.Columns[1].Kind)
	assert.Len(t, table.Rows, 2)

	_, err = ReadFile(mfs, "/data/locked.csv", Options{})
	assert.ErrorContains(t, err, "permission denied")
}

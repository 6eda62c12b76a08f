package report

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/files/filesystem"
	"github.com/fraudlens/fraudlens/internal/files/scanner"
	"github.com/fraudlens/fraudlens/internal/loader"
	"github.com/fraudlens/fraudlens/internal/logging"
	"github.com/fraudlens/fraudlens/internal/store"
)

// loadFixture loads CSV sources keyed by file name into a fresh SQLite store
// and reopens it read-only, as the report phase does.
func loadFixture(t *testing.T, sources map[string]string) *store.Store {
	t.Helper()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "fraud.db")

	mfs := filesystem.NewMemoryFileSystem("/data")
	for name, content := range sources {
		mfs.AddFile(name, content)
	}
	scan, err := scanner.NewScannerWithFS(mfs).ScanDirectory("/data")
	require.NoError(t, err)

	rw, err := store.Open(ctx, path, store.ReadWrite)
	require.NoError(t, err)
	_, err = loader.NewLoader(mfs, logging.NewNullLogger(), 0).LoadFiles(ctx, rw, scan.Files)
	require.NoError(t, err)
	require.NoError(t, rw.Close())

	ro, err := store.Open(ctx, path, store.ReadOnly)
	require.NoError(t, err)
	t.Cleanup(func() { ro.Close() })
	return ro
}

func mustLookup(t *testing.T, id int) Query {
	t.Helper()
	q, ok := Lookup(id)
	require.True(t, ok, "query %d missing from catalog", id)
	return q
}

func run(t *testing.T, st *store.Store, id int) Result {
	t.Helper()
	result, err := NewEngine(st, logging.NewNullLogger()).Run(context.Background(), mustLookup(t, id))
	require.NoError(t, err)
	return result
}

func fieldValues(r Result, field string) []string {
	out := make([]string, len(r.Rows))
	for i := range r.Rows {
		out[i] = r.Get(i, field).String()
	}
	return out
}

// fullDataSet is a small but complete set of the ten source files.
var fullDataSet = map[string]string{
	"transactions/transaction_records.csv": "TransactionID,Amount,CustomerID\n" +
		"1,55.5,1001\n2,12.25,1002\n3,90,1001\n4,20,1003\n5,300,1004\n",
	"transactions/transaction_metadata.csv": "TransactionID,Timestamp,MerchantID\n" +
		"1,2022-01-01 00:00:00,2001\n2,2022-01-01 00:00:30,2002\n3,2022-02-03 10:15:00,2001\n" +
		"4,2022-02-04 11:00:00,2003\n5,2022-03-01 09:30:00,2002\n",
	"transactions/transaction_category_labels.csv": "TransactionID,Category\n" +
		"1,Food\n2,Retail\n3,Food\n4,Travel\n5,Online\n",
	"transactions/amount_data.csv": "TransactionID,TransactionAmount\n" +
		"1,55.5\n2,12.25\n3,90\n4,20\n5,300\n",
	"fraud/fraud_indicators.csv": "TransactionID,FraudIndicator\n" +
		"1,0\n2,1\n3,1\n4,0\n5,1\n",
	"fraud/anomaly_scores.csv": "TransactionID,AnomalyScore\n" +
		"1,0.1\n2,0.456\n3,0\n4,0.35\n5,0.9\n",
	"fraud/suspicious_activity.csv": "CustomerID,SuspiciousFlag\n" +
		"1001,0\n1002,1\n1003,0\n1004,1\n",
	"customers/customer_data.csv": "CustomerID,Name,Age\n" +
		"1001,Customer 1001,54\n1002,Customer 1002,35\n1003,Customer 1003,\n1004,Customer 1004,67\n",
	"customers/account_activity.csv": "CustomerID,AccountBalance,LastLogin\n" +
		"1001,5000.456,2022-01-01\n1002,1200,2022-01-02\n1003,80,2022-01-03\n1004,9000,2022-01-04\n",
	"merchants/merchant_data.csv": "MerchantID,MerchantName,Location\n" +
		"2001,Merchant 2001,Location 2001\n2002,Merchant 2002,Location 2002\n2003,Merchant 2003,Location 2003\n",
}

package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fraudlens/fraudlens/internal/files/filesystem"
	"github.com/fraudlens/fraudlens/internal/report"
	"github.com/fraudlens/fraudlens/internal/store"
	testhelpers "github.com/fraudlens/fraudlens/internal/testing"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

func postgresFixture() *filesystem.MemoryFileSystem {
	mfs := filesystem.NewMemoryFileSystem("/data")
	mfs.AddFile("transaction_records.csv", "TransactionID,Amount,CustomerID\n1,100,1\n2,50,1\n3,30,2\n")
	mfs.AddFile("transaction_metadata.csv", "TransactionID,Timestamp,MerchantID\n1,2022-01-01 00:00:00,7\n2,2022-01-15 12:30:00,7\n3,2022-02-01 08:00:00,8\n")
	mfs.AddFile("fraud_indicators.csv", "TransactionID,FraudIndicator\n1,1\n2,0\n3,1\n")
	mfs.AddFile("customer_data.csv", "CustomerID,Name,Age\n1,Ann,40\n2,Bob,\n")
	mfs.AddFile("account_activity.csv", "CustomerID,AccountBalance\n1,1000.5\n2,20\n")
	mfs.AddFile("amount_data.csv", "TransactionID,TransactionAmount\n1,10\n2,20\n3,30\n")
	return mfs
}

func TestPostgres_LoadAndReport(t *testing.T) {
	connString := testhelpers.RequireFreshDatabase(t)
	ctx := context.Background()
	svc := testhelpers.NewTestService(t, postgresFixture())

	result, err := svc.Load(ctx, fraudlens.LoadConfig{SourcePath: "/data", StoreTarget: connString})
	require.NoError(t, err)
	assert.Contains(t, result.Tables, "transaction_records")

	// Loading twice replaces the tables.
	_, err = svc.Load(ctx, fraudlens.LoadConfig{SourcePath: "/data", StoreTarget: connString})
	require.NoError(t, err)

	blocks, err := svc.RunReports(ctx, fraudlens.ReportConfig{StoreTarget: connString, SkipMissing: true})
	require.NoError(t, err)

	byID := map[int]report.Block{}
	for _, b := range blocks {
		byID[b.ID] = b
	}
	assert.Equal(t, []string{"Fraud Count: 2"}, byID[1].Lines)
	assert.Equal(t, []string{"Customer ID: 1, Transaction Count: 2", "Customer ID: 2, Transaction Count: 1"}, byID[6].Lines)
	assert.Equal(t, []string{"Age: 35-44, Avg Amount: 75", "Age: Unknown, Avg Amount: 30"}, byID[7].Lines)
	assert.Equal(t, []string{"Month: 2022-01, Transaction Count: 2", "Month: 2022-02, Transaction Count: 1"}, byID[12].Lines)
	assert.Equal(t, []string{"Min: 10, Max: 30, Avg: 20"}, byID[13].Lines)
	assert.Equal(t, []string{"Customer ID: 1, Total Amount: 150, Transactions: 2"}, byID[21].Lines)
}

func TestPostgres_ReportIsReadOnly(t *testing.T) {
	connString := testhelpers.RequireFreshDatabase(t)
	ctx := context.Background()

	st, err := store.Open(ctx, connString, store.ReadOnly)
	require.NoError(t, err)
	defer st.Close()

	_, err = st.DB().ExecContext(ctx, `CREATE TABLE "t" ("x" BIGINT)`)
	assert.Error(t, err)
}

package report

import (
	"fmt"
	"sort"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

// Source tables produced by loading the fraud data set.
const (
	TableTransactionRecords  = "transaction_records"
	TableTransactionMetadata = "transaction_metadata"
	TableCategoryLabels      = "transaction_category_labels"
	TableAmountData          = "amount_data"
	TableFraudIndicators     = "fraud_indicators"
	TableAnomalyScores       = "anomaly_scores"
	TableSuspiciousActivity  = "suspicious_activity"
	TableCustomerData        = "customer_data"
	TableAccountActivity     = "account_activity"
	TableMerchantData        = "merchant_data"
)

// KnownTables lists every table the catalog may read.
var KnownTables = []string{
	TableTransactionRecords,
	TableTransactionMetadata,
	TableCategoryLabels,
	TableAmountData,
	TableFraudIndicators,
	TableAnomalyScores,
	TableSuspiciousActivity,
	TableCustomerData,
	TableAccountActivity,
	TableMerchantData,
}

var (
	tr  = Table(TableTransactionRecords, "TR")
	tm  = Table(TableTransactionMetadata, "TM")
	tcl = Table(TableCategoryLabels, "TCL")
	ad  = Table(TableAmountData, "AD")
	fi  = Table(TableFraudIndicators, "FI")
	as  = Table(TableAnomalyScores, "A")
	sa  = Table(TableSuspiciousActivity, "SA")
	cd  = Table(TableCustomerData, "CD")
	aa  = Table(TableAccountActivity, "AA")
	md  = Table(TableMerchantData, "MD")
)

func on(l, r TableRef, col string) []Predicate {
	return []Predicate{Eq(l.Col(col), r.Col(col))}
}

func flagged(t TableRef, col string) Predicate {
	return Eq(t.Col(col), Int(1))
}

var catalog = []Query{
	{
		ID:       1,
		Label:    "Number of transactions flagged as fraudulent",
		From:     fi,
		Where:    []Predicate{flagged(fi, "FraudIndicator")},
		Select:   []Field{{"FraudCount", CountAll()}},
		Template: "Fraud Count: {FraudCount}",
	},
	{
		ID:    2,
		Label: "Customers with the highest number of suspicious transactions",
		From:  sa,
		Where: []Predicate{flagged(sa, "SuspiciousFlag")},
		Select: []Field{
			{"CustomerID", sa.Col("CustomerID")},
			{"SuspiciousCount", Count(sa.Col("SuspiciousFlag"))},
		},
		GroupBy:  []Expr{sa.Col("CustomerID")},
		OrderBy:  []Order{Desc("SuspiciousCount"), Asc("CustomerID")},
		Template: "Customer ID: {CustomerID}, Suspicious Transactions: {SuspiciousCount}",
	},
	{
		ID:    3,
		Label: "Merchants associated with the most fraud indicators",
		From:  tm,
		Joins: []Join{{fi, on(fi, tm, "TransactionID")}},
		Select: []Field{
			{"MerchantID", tm.Col("MerchantID")},
			{"FraudCount", Count(fi.Col("FraudIndicator"))},
		},
		GroupBy:  []Expr{tm.Col("MerchantID")},
		OrderBy:  []Order{Desc("FraudCount"), Asc("MerchantID")},
		Template: "Merchant ID: {MerchantID}, Fraud Count: {FraudCount}",
	},
	{
		ID:       4,
		Label:    "Average anomaly score of flagged transactions",
		From:     as,
		Select:   []Field{{"AverageScore", Avg(as.Col("AnomalyScore"))}},
		Template: "Average Anomaly Score: {AverageScore}",
	},
	{
		ID:    5,
		Label: "Transaction types most prone to fraud",
		From:  tcl,
		Joins: []Join{{fi, on(fi, tcl, "TransactionID")}},
		Select: []Field{
			{"Category", tcl.Col("Category")},
			{"FraudCount", Count(fi.Col("FraudIndicator"))},
		},
		GroupBy:  []Expr{tcl.Col("Category")},
		OrderBy:  []Order{Desc("FraudCount"), Asc("Category")},
		Limit:    3,
		Template: "Category: {Category}, Fraud Count: {FraudCount}",
	},
	{
		ID:    6,
		Label: "Customers with the highest transaction frequency",
		From:  tr,
		Select: []Field{
			{"CustomerID", tr.Col("CustomerID")},
			{"TransactionCount", Count(tr.Col("TransactionID"))},
		},
		GroupBy:  []Expr{tr.Col("CustomerID")},
		OrderBy:  []Order{Desc("TransactionCount"), Asc("CustomerID")},
		Template: "Customer ID: {CustomerID}, Transaction Count: {TransactionCount}",
	},
	{
		ID:    7,
		Label: "Average transaction amount by customer age group",
		From:  cd,
		Joins: []Join{{tr, on(cd, tr, "CustomerID")}},
		Select: []Field{
			{"AgeGroup", AgeBand(cd.Col("Age"))},
			{"AvgAmount", Round(Avg(tr.Col("Amount")), 2)},
		},
		GroupBy:  []Expr{AgeBand(cd.Col("Age"))},
		OrderBy:  []Order{Desc("AvgAmount"), Asc("AgeGroup")},
		Template: "Age: {AgeGroup}, Avg Amount: {AvgAmount}",
	},
	{
		ID:    8,
		Label: "Average account balance of customers with flagged transactions",
		From:  aa,
		Joins: []Join{
			{tr, on(aa, tr, "CustomerID")},
			{fi, on(fi, tr, "TransactionID")},
		},
		Where: []Predicate{flagged(fi, "FraudIndicator")},
		Select: []Field{
			{"CustomerID", aa.Col("CustomerID")},
			{"AvgBalance", Round(Avg(aa.Col("AccountBalance")), 2)},
		},
		GroupBy:  []Expr{aa.Col("CustomerID")},
		OrderBy:  []Order{Desc("AvgBalance"), Asc("CustomerID")},
		Template: "Customer ID: {CustomerID}, Avg Balance: {AvgBalance}",
	},
	{
		ID:    9,
		Label: "Customers with abnormal spending patterns",
		From:  as,
		Joins: []Join{{tr, on(as, tr, "TransactionID")}},
		Where: []Predicate{Ne(as.Col("AnomalyScore"), Int(0))},
		Select: []Field{
			{"CustomerID", tr.Col("CustomerID")},
			{"TransactionID", as.Col("TransactionID")},
			{"AnomalyScore", Round(as.Col("AnomalyScore"), 2)},
		},
		OrderBy:  []Order{DescBy(as.Col("AnomalyScore")), Asc("TransactionID")},
		Template: "Customer ID: {CustomerID}, Transaction ID: {TransactionID}, Anomaly Score: {AnomalyScore}",
	},
	{
		ID:    10,
		Label: "Top 10 most frequent transaction categories",
		From:  tcl,
		Select: []Field{
			{"Category", tcl.Col("Category")},
			{"TransactionCount", CountAll()},
		},
		GroupBy:  []Expr{tcl.Col("Category")},
		OrderBy:  []Order{Desc("TransactionCount"), Asc("Category")},
		Limit:    10,
		Template: "Category: {Category}, Transaction Count: {TransactionCount}",
	},
	{
		ID:    11,
		Label: "Average transaction amount by category",
		From:  tcl,
		Joins: []Join{{ad, on(tcl, ad, "TransactionID")}},
		Select: []Field{
			{"Category", tcl.Col("Category")},
			{"AvgAmount", Round(Avg(ad.Col("TransactionAmount")), 2)},
		},
		GroupBy:  []Expr{tcl.Col("Category")},
		OrderBy:  []Order{Asc("AvgAmount"), Asc("Category")},
		Template: "Category: {Category}, Avg Amount: {AvgAmount}",
	},
	{
		ID:    12,
		Label: "Transactions per month",
		From:  tm,
		Select: []Field{
			{"Month", Month(tm.Col("Timestamp"))},
			{"TransactionCount", CountAll()},
		},
		GroupBy:  []Expr{Month(tm.Col("Timestamp"))},
		OrderBy:  []Order{Asc("Month")},
		Template: "Month: {Month}, Transaction Count: {TransactionCount}",
	},
	{
		ID:    13,
		Label: "Distribution of transaction amounts",
		From:  ad,
		Select: []Field{
			{"MinAmount", Round(Min(ad.Col("TransactionAmount")), 2)},
			{"MaxAmount", Round(Max(ad.Col("TransactionAmount")), 2)},
			{"AvgAmount", Round(Avg(ad.Col("TransactionAmount")), 2)},
		},
		Template: "Min: {MinAmount}, Max: {MaxAmount}, Avg: {AvgAmount}",
	},
	{
		ID:    14,
		Label: "Days/times with the most fraudulent transactions",
		From:  tm,
		Joins: []Join{{fi, on(tm, fi, "TransactionID")}},
		Where: []Predicate{flagged(fi, "FraudIndicator")},
		Select: []Field{
			{"DayTime", Minute(tm.Col("Timestamp"))},
			{"FraudCount", CountAll()},
		},
		GroupBy:  []Expr{Minute(tm.Col("Timestamp"))},
		OrderBy:  []Order{Desc("FraudCount"), Asc("DayTime")},
		Limit:    5,
		Template: "Day/Time: {DayTime}, Fraud Count: {FraudCount}",
	},
	{
		ID:    15,
		Label: "Merchant with the highest total value of transactions",
		From:  md,
		Joins: []Join{
			{tm, on(tm, md, "MerchantID")},
			{tr, on(tr, tm, "TransactionID")},
		},
		Select: []Field{
			{"MerchantID", md.Col("MerchantID")},
			{"TotalValue", Round(Sum(tr.Col("Amount")), 2)},
		},
		GroupBy:  []Expr{md.Col("MerchantID")},
		OrderBy:  []Order{Desc("TotalValue"), Asc("MerchantID")},
		Limit:    1,
		Template: "Merchant ID: {MerchantID}, Total Value: {TotalValue}",
	},
	{
		ID:    16,
		Label: "Merchants frequently linked to high anomaly score transactions",
		From:  tm,
		Joins: []Join{
			{as, on(as, tm, "TransactionID")},
			{md, on(md, tm, "MerchantID")},
		},
		Where: []Predicate{Ge(as.Col("AnomalyScore"), Float(0.3))},
		Select: []Field{
			{"MerchantID", md.Col("MerchantID")},
			{"Frequency", CountAll()},
		},
		GroupBy:  []Expr{md.Col("MerchantID")},
		OrderBy:  []Order{Desc("Frequency"), Asc("MerchantID")},
		Template: "Merchant ID: {MerchantID}, Frequency: {Frequency}",
	},
	{
		ID:    17,
		Label: "Merchants most often involved in suspicious activity",
		From:  tm,
		Joins: []Join{
			{tr, on(tr, tm, "TransactionID")},
			{sa, on(sa, tr, "CustomerID")},
		},
		Where: []Predicate{flagged(sa, "SuspiciousFlag")},
		Select: []Field{
			{"MerchantID", tm.Col("MerchantID")},
			{"SuspiciousCount", CountAll()},
		},
		GroupBy:  []Expr{tm.Col("MerchantID")},
		OrderBy:  []Order{Desc("SuspiciousCount"), Asc("MerchantID")},
		Template: "Merchant ID: {MerchantID}, Suspicious Transactions: {SuspiciousCount}",
	},
	{
		ID:    18,
		Label: "Total number of transactions per merchant",
		From:  tm,
		Select: []Field{
			{"MerchantID", tm.Col("MerchantID")},
			{"TransactionCount", CountAll()},
		},
		GroupBy:  []Expr{tm.Col("MerchantID")},
		OrderBy:  []Order{Desc("TransactionCount"), Asc("MerchantID")},
		Template: "Merchant ID: {MerchantID}, Transactions: {TransactionCount}",
	},
	{
		ID:    19,
		Label: "Customer segments (age, location) most susceptible to fraud",
		From:  cd,
		Joins: []Join{
			{tr, on(tr, cd, "CustomerID")},
			{tm, on(tr, tm, "TransactionID")},
			{md, on(md, tm, "MerchantID")},
			{fi, on(fi, tr, "TransactionID")},
		},
		Where: []Predicate{flagged(fi, "FraudIndicator")},
		Select: []Field{
			{"CustomerID", cd.Col("CustomerID")},
			{"Name", cd.Col("Name")},
			{"AgeGroup", AgeBand(cd.Col("Age"))},
			{"Location", md.Col("Location")},
			{"FraudCount", CountAll()},
		},
		GroupBy:  []Expr{cd.Col("CustomerID"), cd.Col("Name"), AgeBand(cd.Col("Age")), md.Col("Location")},
		OrderBy:  []Order{Desc("FraudCount"), Asc("CustomerID"), Asc("AgeGroup"), Asc("Location")},
		Template: "Name: {Name}, Age Group: {AgeGroup}, Location: {Location}, Fraud Count: {FraudCount}",
	},
	{
		ID:    20,
		Label: "Overlap between suspicious activity flags and fraud indicators",
		From:  sa,
		Joins: []Join{
			{tr, on(tr, sa, "CustomerID")},
			{fi, on(fi, tr, "TransactionID")},
		},
		Where:    []Predicate{flagged(sa, "SuspiciousFlag"), flagged(fi, "FraudIndicator")},
		Select:   []Field{{"OverlapCount", CountAll()}},
		Template: "Overlapping Count: {OverlapCount}",
	},
	{
		ID:    21,
		Label: "Customers with high transaction volume but low account activity",
		From:  aa,
		Joins: []Join{{tr, on(tr, aa, "CustomerID")}},
		Select: []Field{
			{"CustomerID", aa.Col("CustomerID")},
			{"TotalAmount", Round(Sum(tr.Col("Amount")), 2)},
			{"TransactionCount", Count(tr.Col("TransactionID"))},
		},
		GroupBy: []Expr{aa.Col("CustomerID")},
		Having: []Predicate{
			Gt(Sum(tr.Col("Amount")), Int(HighValueThreshold)),
			Lt(Count(tr.Col("TransactionID")), Int(LowActivityThreshold)),
		},
		OrderBy:  []Order{Asc("CustomerID")},
		Template: "Customer ID: {CustomerID}, Total Amount: {TotalAmount}, Transactions: {TransactionCount}",
	},
}

// Thresholds of the high value, low activity heuristic.
const (
	HighValueThreshold   = 100
	LowActivityThreshold = 3
)

// Queries returns the full catalog in execution order. The slice is a copy.
func Queries() []Query {
	out := make([]Query, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup returns the catalog entry with the given ID.
func Lookup(id int) (Query, bool) {
	for _, q := range catalog {
		if q.ID == id {
			return q, true
		}
	}
	return Query{}, false
}

// Select returns the catalog entries with the given IDs in catalog order.
// No IDs selects the whole catalog; duplicates are ignored.
func Select(ids []int) ([]Query, error) {
	if len(ids) == 0 {
		return Queries(), nil
	}

	wanted := make(map[int]bool, len(ids))
	var unknown []int
	for _, id := range ids {
		if _, ok := Lookup(id); !ok {
			unknown = append(unknown, id)
			continue
		}
		wanted[id] = true
	}
	if len(unknown) > 0 {
		sort.Ints(unknown)
		return nil, fmt.Errorf("unknown query id(s) %v (catalog has 1-%d): %w", unknown, len(catalog), fraudlens.ErrInvalidConfig)
	}

	var out []Query
	for _, q := range catalog {
		if wanted[q.ID] {
			out = append(out, q)
		}
	}
	return out, nil
}

package fraudlens_test

import (
	"errors"
	"testing"

	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

func TestLoadConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     fraudlens.LoadConfig
		wantErr bool
	}{
		{"valid", fraudlens.LoadConfig{SourcePath: "./data", StoreTarget: "x.db"}, false},
		{"missing source", fraudlens.LoadConfig{StoreTarget: "x.db"}, true},
		{"missing store", fraudlens.LoadConfig{SourcePath: "./data"}, true},
		{"negative batch", fraudlens.LoadConfig{SourcePath: "./data", StoreTarget: "x.db", BatchSize: -1}, true},
		{"bad extension", fraudlens.LoadConfig{SourcePath: "./data", StoreTarget: "x.db", Extensions: []string{"csv"}}, true},
		{"negative timeout", fraudlens.LoadConfig{SourcePath: "./data", StoreTarget: "x.db", Timeout: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, fraudlens.ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestReportConfig_Validate(t *testing.T) {
	ok := fraudlens.ReportConfig{StoreTarget: "x.db", QueryIDs: []int{1, 13}}
	if err := ok.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bad := fraudlens.ReportConfig{QueryIDs: []int{0}}
	err := bad.Validate()
	if err == nil {
		t.Fatal("expected error")
	}
	if !errors.Is(err, fraudlens.ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig, got %v", err)
	}
}

func TestFileScanResult_Tables(t *testing.T) {
	result := fraudlens.FileScanResult{Files: []fraudlens.SourceFile{
		{Table: "customer_data"},
		{Table: "fraud_indicators"},
		{Table: "customer_data"},
	}}

	got := result.Tables()
	want := []string{"customer_data", "fraud_indicators"}
	if len(got) != len(want) {
		t.Fatalf("Tables() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Tables()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestColumnKind_String(t *testing.T) {
	cases := map[fraudlens.ColumnKind]string{
		fraudlens.KindInteger:    "integer",
		fraudlens.KindReal:       "real",
		fraudlens.KindBoolean:    "boolean",
		fraudlens.KindText:       "text",
		fraudlens.ColumnKind(42): "Unknown(42)",
	}
	for kind, want := range cases {
		if got := kind.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(kind), got, want)
		}
	}
}

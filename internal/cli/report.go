package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/report"
	"github.com/fraudlens/fraudlens/internal/services"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Run the fraud report against a loaded store",
	Long: `Report runs the fixed catalog of fraud-analysis queries against a store
populated by a prior load and prints one block per query: its label followed by
one line per result row. The store is opened read-only.

By default the report stops at the first failing query, after printing the
blocks that succeeded. Use 'fraudlens queries' to list the catalog.

Examples:
  fraudlens report
  fraudlens report --store fraud.db --only 1,7,13
  fraudlens report --continue-on-error --format plain > report.txt
  fraudlens report --skip-missing`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

type reportFlagValues struct {
	store           string
	only            []int
	continueOnError bool
	skipMissing     bool
	format          string
	timeout         time.Duration
}

var reportFlags reportFlagValues

func init() {
	rootCmd.AddCommand(reportCmd)
	addStoreFlag(reportCmd, &reportFlags.store)
	addReportFlags(reportCmd, &reportFlags)
	addTimeoutFlag(reportCmd, &reportFlags.timeout)
}

func addReportFlags(cmd *cobra.Command, dst *reportFlagValues) {
	cmd.Flags().IntSliceVar(&dst.only, "only", nil,
		"Run only these query IDs, in catalog order (example: --only 1,7,13)")
	cmd.Flags().BoolVar(&dst.continueOnError, "continue-on-error", false,
		"Run every query and report all failures at the end")
	cmd.Flags().BoolVar(&dst.skipMissing, "skip-missing", false,
		"Skip queries whose tables or columns were never loaded")
	cmd.Flags().StringVar(&dst.format, "format", string(report.FormatText),
		"Output format: text|plain (text styles labels on a terminal)")
}

// buildReportConfig builds a ReportConfig from flags, environment and fraudlens.yaml.
func buildReportConfig(cmd *cobra.Command, env *commandEnv, flags reportFlagValues, verbose bool) (fraudlens.ReportConfig, error) {
	if _, err := report.ParseFormat(flags.format); err != nil {
		return fraudlens.ReportConfig{}, err
	}

	timeout, err := env.timeout(cmd, flags.timeout)
	if err != nil {
		return fraudlens.ReportConfig{}, err
	}

	cfg := fraudlens.ReportConfig{
		StoreTarget:     env.storeTarget(flags.store),
		QueryIDs:        flags.only,
		ContinueOnError: flags.continueOnError,
		SkipMissing:     flags.skipMissing,
		Format:          flags.format,
		Timeout:         timeout,
		Verbose:         verbose,
	}
	if err := cfg.Validate(); err != nil {
		return fraudlens.ReportConfig{}, err
	}
	return cfg, nil
}

func runReport(cmd *cobra.Command, args []string) error {
	env, err := loadCommandEnv(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, env)
	if err != nil {
		return err
	}

	cfg, err := buildReportConfig(cmd, env, reportFlags, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	ctx, cancel := newRunContext(cfg.Timeout)
	defer cancel()

	return writeReport(ctx, cmd, newService(logger), cfg)
}

// writeReport streams each result block to the command's output as soon as
// its query finishes.
func writeReport(ctx context.Context, cmd *cobra.Command, svc *services.AnalysisService, cfg fraudlens.ReportConfig) error {
	format, err := report.ParseFormat(cfg.Format)
	if err != nil {
		return err
	}
	presenter := report.NewPresenter(cmd.OutOrStdout(), format)

	if err := svc.Report(ctx, cfg, presenter.Write); err != nil {
		return fmt.Errorf("report failed: %w", err)
	}
	return nil
}

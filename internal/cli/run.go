package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [data_dir]",
	Short: "Load a directory of CSV files, then run the fraud report",
	Long: `Run performs 'fraudlens load' followed by 'fraudlens report' against the same
store. The report starts only if every file loaded.

Examples:
  fraudlens run ./AntiFraudData
  fraudlens run ./AntiFraudData --store postgres://analyst@localhost/fraud --continue-on-error`,
	Args: OptionalDataDir,
	RunE: runRun,
}

type runFlagValues struct {
	load    loadFlagValues
	report  reportFlagValues
	timeout time.Duration
}

var runFlags runFlagValues

func init() {
	rootCmd.AddCommand(runCmd)
	addStoreFlag(runCmd, &runFlags.load.store)
	addLoadFlags(runCmd, &runFlags.load)
	addReportFlags(runCmd, &runFlags.report)
	addTimeoutFlag(runCmd, &runFlags.timeout)
}

func runRun(cmd *cobra.Command, args []string) error {
	env, err := loadCommandEnv(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, env)
	if err != nil {
		return err
	}
	verbose := getVerboseFlag(cmd)

	loadValues := runFlags.load
	loadValues.timeout = runFlags.timeout
	loadCfg, err := buildLoadConfig(cmd, args, env, loadValues, verbose)
	if err != nil {
		return err
	}

	reportValues := runFlags.report
	reportValues.store = loadCfg.StoreTarget
	reportValues.timeout = runFlags.timeout
	reportCfg, err := buildReportConfig(cmd, env, reportValues, verbose)
	if err != nil {
		return err
	}

	ctx, cancel := newRunContext(loadCfg.Timeout)
	defer cancel()

	svc := newService(logger)
	if _, err := svc.Load(ctx, loadCfg); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}
	return writeReport(ctx, cmd, svc, reportCfg)
}

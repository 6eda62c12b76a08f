package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/logging"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

var rootCmd = &cobra.Command{
	Use:   "fraudlens",
	Short: "Load fraud datasets into SQL and run the fraud report",
	Long: `fraudlens loads a directory tree of CSV files into a relational store,
one table per file, then answers a fixed catalog of fraud-analysis questions
with SQL aggregation queries joined across those tables.

The store is a SQLite file by default (AntiFraudData.db). A postgres:// URL
selects PostgreSQL instead.

Store precedence: --store > $FRAUDLENS_STORE > $DATABASE_URL > fraudlens.yaml > default

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration
  11 - Store could not be opened
  20 - A source file could not be loaded
  21 - A report query references a missing table or column
  22 - A report query failed in the store`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo(os.Stdout)
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
	rootCmd.PersistentFlags().String("log-format", "", "Log format on stderr: text|json (default text)")
	rootCmd.PersistentFlags().String("config", "", "Path to a config file (default ./"+configFileHint+")")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}

// newLogger builds the logger selected by --log-format, falling back to the
// config file's log_format when the flag is unset.
func newLogger(cmd *cobra.Command, env *commandEnv) (fraudlens.Logger, error) {
	format, _ := cmd.Flags().GetString("log-format")
	if !cmd.Flags().Changed("log-format") && env.project != nil {
		format = env.project.LogFormat
	}
	return logging.New(format, getVerboseFlag(cmd))
}

package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/tui"
	"github.com/fraudlens/fraudlens/pkg/fraudlens"
)

var loadCmd = &cobra.Command{
	Use:   "load [data_dir]",
	Short: "Load a directory of CSV files into the store",
	Long: `Load walks data_dir recursively and writes every CSV file into the store as a
table named after the file's base name. Each file replaces its table inside one
transaction, so a malformed file leaves the previous table untouched.
Files ending in .tsv or .tab are read as tab-separated.

Arguments:
  data_dir    Directory containing the CSV files (or data_dir in fraudlens.yaml)

Examples:
  # Load into the default SQLite file (AntiFraudData.db)
  fraudlens load ./AntiFraudData

  # Load into PostgreSQL
  fraudlens load ./AntiFraudData --store postgres://analyst@localhost/fraud

  # Also pick up .tsv files, 1000 rows per INSERT
  fraudlens load ./AntiFraudData --ext .csv --ext .tsv --batch-size 1000`,
	Args: OptionalDataDir,
	RunE: runLoad,
}

type loadFlagValues struct {
	store      string
	extensions []string
	batchSize  int
	timeout    time.Duration
}

var loadFlags loadFlagValues

func init() {
	rootCmd.AddCommand(loadCmd)
	addStoreFlag(loadCmd, &loadFlags.store)
	addLoadFlags(loadCmd, &loadFlags)
	addTimeoutFlag(loadCmd, &loadFlags.timeout)
}

func addStoreFlag(cmd *cobra.Command, dst *string) {
	cmd.Flags().StringVarP(dst, "store", "s", "",
		"Store target: SQLite file path or postgres:// URL\n"+
			"Precedence: --store > $FRAUDLENS_STORE > $DATABASE_URL > fraudlens.yaml > "+fraudlens.DefaultStoreTarget)
}

func addLoadFlags(cmd *cobra.Command, dst *loadFlagValues) {
	cmd.Flags().StringSliceVar(&dst.extensions, "ext", nil,
		"Source file extensions to load, case-insensitive (default "+fraudlens.DefaultSourceExtension+")")
	cmd.Flags().IntVar(&dst.batchSize, "batch-size", fraudlens.DefaultBatchSize,
		"Rows per INSERT statement (capped by the store's parameter limit)")
}

func addTimeoutFlag(cmd *cobra.Command, dst *time.Duration) {
	cmd.Flags().DurationVar(dst, "timeout", fraudlens.DefaultTimeout,
		"Catastrophic failure protection timeout for the whole command\n"+
			"Examples: 30s, 5m, 1h30m")
}

// buildLoadConfig builds a LoadConfig from flags, environment and fraudlens.yaml.
func buildLoadConfig(cmd *cobra.Command, args []string, env *commandEnv, flags loadFlagValues, verbose bool) (fraudlens.LoadConfig, error) {
	dataDir, err := env.dataDir(cmd, args)
	if err != nil {
		return fraudlens.LoadConfig{}, err
	}

	timeout, err := env.timeout(cmd, flags.timeout)
	if err != nil {
		return fraudlens.LoadConfig{}, err
	}

	cfg := fraudlens.LoadConfig{
		SourcePath:  dataDir,
		StoreTarget: env.storeTarget(flags.store),
		Extensions:  env.extensions(cmd, flags.extensions),
		BatchSize:   env.batchSize(cmd, flags.batchSize),
		Timeout:     timeout,
		Verbose:     verbose,
	}
	if err := cfg.Validate(); err != nil {
		return fraudlens.LoadConfig{}, err
	}
	return cfg, nil
}

func runLoad(cmd *cobra.Command, args []string) error {
	env, err := loadCommandEnv(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, env)
	if err != nil {
		return err
	}

	cfg, err := buildLoadConfig(cmd, args, env, loadFlags, getVerboseFlag(cmd))
	if err != nil {
		return err
	}

	ctx, cancel := newRunContext(cfg.Timeout)
	defer cancel()

	result, err := newService(logger).Load(ctx, cfg)
	if err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	out := cmd.OutOrStdout()
	printLoadSummary(out, tui.Styler{Enabled: tui.ColorEnabled(out)}, result)
	return nil
}

// printLoadSummary lists what a load wrote, one line per file.
func printLoadSummary(w io.Writer, styler tui.Styler, result *fraudlens.LoadResult) {
	for _, f := range result.Files {
		fmt.Fprintf(w, "%s %s %s %s (%d rows, %d columns)\n",
			styler.Render(tui.SuccessStyle, tui.SymbolCheck),
			f.Path,
			tui.SymbolArrowRight,
			styler.Render(tui.TableNameStyle, f.Table),
			f.Rows, len(f.Columns))
	}
	for _, c := range result.Collisions {
		fmt.Fprintf(w, "%s table %s was loaded from %d files; kept %s\n",
			styler.Render(tui.WarningStyle, "!"), c.Table, len(c.Paths), c.Paths[len(c.Paths)-1])
	}
	fmt.Fprintf(w, "Loaded %d file(s); store has %d table(s)\n", len(result.Files), len(result.Tables))
	if len(result.Tables) > 0 {
		fmt.Fprintf(w, "Tables: %s\n", strings.Join(result.Tables, ", "))
	}
}

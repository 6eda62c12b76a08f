package cli

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/store"
	"github.com/fraudlens/fraudlens/internal/tui"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "List the tables of a loaded store with their columns",
	Args:  cobra.NoArgs,
	RunE:  runTables,
}

type tablesFlagValues struct {
	store   string
	timeout time.Duration
}

var tablesFlags tablesFlagValues

func init() {
	rootCmd.AddCommand(tablesCmd)
	addStoreFlag(tablesCmd, &tablesFlags.store)
	addTimeoutFlag(tablesCmd, &tablesFlags.timeout)
}

func runTables(cmd *cobra.Command, args []string) error {
	env, err := loadCommandEnv(cmd)
	if err != nil {
		return err
	}
	logger, err := newLogger(cmd, env)
	if err != nil {
		return err
	}
	timeout, err := env.timeout(cmd, tablesFlags.timeout)
	if err != nil {
		return err
	}

	ctx, cancel := newRunContext(timeout)
	defer cancel()

	catalog, err := newService(logger).Catalog(ctx, env.storeTarget(tablesFlags.store))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printCatalog(out, tui.Styler{Enabled: tui.ColorEnabled(out)}, catalog)
	return nil
}

func printCatalog(w io.Writer, styler tui.Styler, catalog store.Catalog) {
	tables := catalog.Tables()
	if len(tables) == 0 {
		fmt.Fprintln(w, "(no tables)")
		return
	}
	for _, table := range tables {
		fmt.Fprintln(w, styler.Render(tui.TableNameStyle, table))
		fmt.Fprintf(w, "  %s\n", styler.Render(tui.ColumnStyle, strings.Join(catalog[table], ", ")))
	}
}

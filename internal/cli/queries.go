package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fraudlens/fraudlens/internal/report"
	"github.com/fraudlens/fraudlens/internal/store"
)

var queriesCmd = &cobra.Command{
	Use:   "queries",
	Short: "List the report query catalog",
	Long: `Queries prints every report query with its ID, label and the tables it reads.
With --sql it also prints the SQL compiled for the chosen dialect.

Examples:
  fraudlens queries
  fraudlens queries --sql --dialect postgres`,
	Args: cobra.NoArgs,
	RunE: runQueries,
}

type queriesFlagValues struct {
	dialect string
	showSQL bool
}

var queriesFlags queriesFlagValues

func init() {
	rootCmd.AddCommand(queriesCmd)
	queriesCmd.Flags().StringVar(&queriesFlags.dialect, "dialect", string(store.BackendSQLite),
		"SQL dialect for --sql: sqlite|postgres")
	queriesCmd.Flags().BoolVar(&queriesFlags.showSQL, "sql", false,
		"Print the compiled SQL of each query")
}

func runQueries(cmd *cobra.Command, args []string) error {
	dialect, err := store.DialectFor(store.Backend(strings.ToLower(queriesFlags.dialect)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, q := range report.Queries() {
		fmt.Fprintf(out, "%2d. %s [%s]\n", q.ID, q.Label, strings.Join(q.Tables(), ", "))
		if !queriesFlags.showSQL {
			continue
		}
		sql, err := q.SQL(dialect)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "    %s\n\n", sql)
	}
	return nil
}

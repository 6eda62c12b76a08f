package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

// OptionalDataDir accepts at most one data_dir argument. The directory can
// also come from data_dir in the config file.
func OptionalDataDir(cmd *cobra.Command, args []string) error {
	if len(args) > 1 {
		return fmt.Errorf("accepts at most 1 arg(s), received %d", len(args))
	}
	return nil
}

// missingDataDir is returned when neither an argument nor the config file
// names the data directory.
func missingDataDir(cmd *cobra.Command) error {
	return fmt.Errorf(`missing required argument: <data_dir>

Usage: %s

Example:
  %s ./AntiFraudData --store fraud.db

Alternatively set data_dir in %s.`, cmd.UseLine(), cmd.CommandPath(), configFileHint)
}

package main

import (
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/dtbkit/pkg/dtb"
)

func init() {
	rootCmd.AddCommand(newStatsCmd())
}

func newStatsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats <dtb>",
		Short: "Count nodes, properties and tokens",
		Long: `The stats command walks the structure block once and reports token,
node and property counts, nesting depth, value bytes and properties per
decoded kind.

Example:
  dtbctl stats board.dtb
  dtbctl stats board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(args)
		},
	}
	return cmd
}

func runStats(args []string) error {
	stats, err := dtb.Stats(args[0])
	if err != nil {
		return errors.Wrap(err, "failed to collect statistics")
	}

	if ok, err := printStructured(stats); ok {
		return err
	}

	printInfo("%s", stats.String())
	return nil
}

package main

import (
	"os"

	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/joshuapare/dtbkit/fdt/printer"
	"github.com/joshuapare/dtbkit/pkg/dtb"
)

var (
	dumpNoHeader   bool
	dumpNoReserved bool
	dumpIndent     int
	dumpMaxBytes   int
)

func init() {
	rootCmd.AddCommand(newDumpCmd())
}

func newDumpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dump <dtb>",
		Short: "Fix up a blob and print its node tree",
		Long: `The dump command runs the byte-order fixup, prints the header and
every node and property, then lists the memory reservation map.

Known properties are decoded (cells as <n>, strings quoted); everything
else is shown as hex bytes. With --json only the node tree is printed.

Example:
  dtbctl dump board.dtb
  dtbctl dump board.dtb --no-header --max-bytes 16
  dtbctl dump board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(args)
		},
	}

	cmd.Flags().BoolVar(&dumpNoHeader, "no-header", false, "Do not print the header before the tree")
	cmd.Flags().BoolVar(&dumpNoReserved, "no-reserved", false, "Do not print the memory reservation map")
	cmd.Flags().IntVar(&dumpIndent, "indent", printer.DefaultIndentSize, "Spaces per nesting level")
	cmd.Flags().IntVar(&dumpMaxBytes, "max-bytes", printer.DefaultMaxValueBytes, "Truncate hex values after this many bytes (0 = no limit)")
	cobra.CheckErr(viper.BindPFlag("indent", cmd.Flags().Lookup("indent")))
	cobra.CheckErr(viper.BindPFlag("max-bytes", cmd.Flags().Lookup("max-bytes")))

	return cmd
}

func runDump(args []string) error {
	if yamlOut {
		return errors.New("dump does not support --yaml; use --json")
	}

	t, err := openTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	opts := dtb.DefaultParseOptions()
	opts.Header = !dumpNoHeader
	opts.Reservations = !dumpNoReserved
	opts.Printer.IndentSize = viper.GetInt("indent")
	opts.Printer.MaxValueBytes = viper.GetInt("max-bytes")
	opts.Printer.Color = colorEnabled()
	if jsonOut {
		// one document: the tree only
		opts.Printer.Format = printer.FormatJSON
		opts.Header, opts.Reservations = false, false
	}

	if quiet {
		opts.Header, opts.Dump, opts.Reservations = false, false, false
	}

	log.WithFields(log.Fields{
		"indent":    opts.Printer.IndentSize,
		"max-bytes": opts.Printer.MaxValueBytes,
	}).Debug("dumping device tree")

	if err := dtb.ParseDeviceTree(t, os.Stdout, opts); err != nil {
		return errors.Wrapf(err, "failed to dump %s", args[0])
	}
	return nil
}

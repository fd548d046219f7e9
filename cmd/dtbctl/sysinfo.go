package main

import (
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/dtbkit/pkg/dtb"
)

func init() {
	rootCmd.AddCommand(newSysinfoCmd())
}

func newSysinfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sysinfo <dtb>",
		Short: "Show RAM layout, model and console path",
		Long: `The sysinfo command extracts what an early kernel needs from a blob:
the memory banks from the memory node's reg property, the board model and
compatible list, the /chosen stdout-path and the boot CPU.

Example:
  dtbctl sysinfo board.dtb
  dtbctl sysinfo board.dtb --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSysinfo(args)
		},
	}
	return cmd
}

func runSysinfo(args []string) error {
	info, err := dtb.SystemInfo(args[0])
	if err != nil {
		return errors.Wrap(err, "failed to get system info")
	}

	if ok, err := printStructured(info); ok {
		return err
	}

	printInfo("Model:       %s\n", orNone(info.Model))
	printInfo("Compatible:  %s\n", orNone(strings.Join(info.Compatible, ", ")))
	printInfo("Boot CPU:    %d\n", info.BootCPU)
	printInfo("Stdout path: %s\n", orNone(info.StdoutPath))
	printInfo("RAM base:    0x%x\n", info.RAMBase)
	printInfo("RAM size:    0x%x (%s)\n", info.RAMSize, humanize.IBytes(info.RAMSize))
	if len(info.Banks) > 1 {
		printInfo("Banks:\n")
		for i, b := range info.Banks {
			printInfo("  %d: 0x%x + 0x%x (%s)\n", i, b.Base, b.Size, humanize.IBytes(b.Size))
		}
		printInfo("Total RAM:   %s\n", humanize.IBytes(info.TotalRAM()))
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}

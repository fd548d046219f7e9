package main

import (
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/dtbkit/pkg/dtb"
)

func init() {
	rootCmd.AddCommand(newReservedCmd())
}

func newReservedCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "reserved <dtb>",
		Short: "List the memory reservation map",
		Long: `The reserved command prints each /memreserve/ range of a blob: physical
memory the kernel must not hand out.

Example:
  dtbctl reserved board.dtb
  dtbctl reserved board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReserved(args)
		},
	}
	return cmd
}

func runReserved(args []string) error {
	t, err := openTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	list, err := t.ReservationList()
	if err != nil {
		return errors.Wrap(err, "failed to read reservation map")
	}
	if list == nil {
		list = []dtb.Reservation{}
	}

	if ok, err := printStructured(list); ok {
		return err
	}

	if len(list) == 0 {
		printInfo("No memory reservations\n")
		return nil
	}
	for i, e := range list {
		printInfo("%2d: 0x%016x-0x%016x  %s\n", i, e.Address, e.End(), humanize.IBytes(e.Size))
	}
	return nil
}

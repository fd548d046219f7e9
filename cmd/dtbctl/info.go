package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/dtbkit/pkg/dtb"
)

func init() {
	rootCmd.AddCommand(newInfoCmd())
}

func newInfoCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "info <dtb>",
		Short: "Validate a blob header and report basic metadata",
		Long: `The info command checks the header magic of a device tree blob and
displays its version, block layout and reservation count.

Example:
  dtbctl info board.dtb
  dtbctl info board.dtb --yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInfo(args)
		},
	}
	return cmd
}

var (
	infoTitleStyle = lipgloss.NewStyle().Bold(true)
	infoBoxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

func runInfo(args []string) error {
	path := args[0]

	t, err := openTree(path)
	if err != nil {
		return err
	}
	defer t.Close()

	info, err := dtb.HeaderInfo(t)
	if err != nil {
		return errors.Wrap(err, "failed to read header")
	}

	if ok, err := printStructured(info); ok {
		return err
	}

	h := info.Header
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s\n", infoTitleStyle.Render("Device Tree Blob"))
	fmt.Fprintf(&sb, "File:         %s\n", path)
	fmt.Fprintf(&sb, "Size:         %s (%d bytes)\n", humanize.IBytes(uint64(h.TotalSize)), h.TotalSize)
	fmt.Fprintf(&sb, "Version:      %d (compatible with %d)\n", h.Version, h.LastCompVersion)
	fmt.Fprintf(&sb, "Boot CPU:     %d\n", h.BootCPUIDPhys)
	fmt.Fprintf(&sb, "Structure:    %s at 0x%x\n", humanize.IBytes(uint64(h.SizeDTStruct)), h.OffDTStruct)
	fmt.Fprintf(&sb, "Strings:      %s at 0x%x\n", humanize.IBytes(uint64(h.SizeDTStrings)), h.OffDTStrings)
	fmt.Fprintf(&sb, "Reservations: %d at 0x%x", len(info.Reservations), h.OffMemRsvmap)

	printInfo("%s\n", infoBoxStyle.Render(sb.String()))
	return nil
}

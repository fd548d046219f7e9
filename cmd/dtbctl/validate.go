package main

import (
	"github.com/apex/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/joshuapare/dtbkit/fdt/walker"
)

func init() {
	rootCmd.AddCommand(newValidateCmd())
}

func newValidateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <dtb>",
		Short: "Check a blob for structural problems",
		Long: `The validate command checks the header, block layout and alignment,
node balance, FDT_END presence and property name and value bounds. It
lists every problem found and exits non-zero if there were any.

Example:
  dtbctl validate board.dtb
  dtbctl validate board.dtb --json`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(args)
		},
	}
	return cmd
}

func runValidate(args []string) error {
	t, err := openTree(args[0])
	if err != nil {
		return err
	}
	defer t.Close()

	report, err := walker.Validate(t)
	if err != nil {
		return errors.Wrap(err, "failed to validate")
	}

	if ok, err := printStructured(report); ok {
		if err != nil {
			return err
		}
	} else if report.OK() {
		printInfo("✓ %s is valid\n", args[0])
	} else {
		for _, issue := range report.Issues {
			printInfo("✗ %s\n", issue.Error())
		}
	}

	if !report.OK() {
		log.WithField("issues", len(report.Issues)).Debug("validation failed")
		return errors.Errorf("%s: %d issue(s) found", args[0], len(report.Issues))
	}
	return nil
}

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"restmapper/internal/diagnostic"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the object catalog",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		_, diags, err := loadRegistry()
		if diags == nil {
			return err
		}

		out := cmd.OutOrStdout()

		var (
			errColor  = color.New(color.FgRed, color.Bold)
			warnColor = color.New(color.FgYellow)
			infoColor = color.New(color.FgCyan)
		)

		for _, d := range diags.All() {
			var c *color.Color

			switch d.Severity {
			case diagnostic.SeverityError:
				c = errColor
			case diagnostic.SeverityWarning:
				c = warnColor
			default:
				c = infoColor
			}

			c.Fprintf(out, "%-7s", d.Severity)
			fmt.Fprintln(out, d.String())
		}

		summary := fmt.Sprintf("%d errors, %d warnings, %d infos",
			len(diags.Errors), len(diags.Warnings), len(diags.Infos))

		if diags.HasErrors() {
			errColor.Fprintln(out, summary)
			return errFailed
		}

		color.New(color.FgGreen).Fprintln(out, summary)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

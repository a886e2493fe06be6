package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/reconcile-cli/internal/reconcile"
)

var datesCmd = &cobra.Command{
	Use:   "dates",
	Short: "Inspect how raw dates are read",
}

var datesNormalizeCmd = &cobra.Command{
	Use:     "normalize <timestamp>",
	Short:   "Print the YYYY-MM-DD day of a log timestamp",
	Example: `  reconcile-cli dates normalize "2026-1-16 09:30"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d := reconcile.NormalizeConfirmedDate(args[0])
		if d == "" {
			return eris.Errorf("unrecognized date %q", args[0])
		}
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
		return nil
	},
}

var datesExpandCmd = &cobra.Command{
	Use:     "expand <report-date>",
	Short:   "Print the days a report date expression covers",
	Example: `  reconcile-cli dates expand "15+16/1/2026"`,
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dates := reconcile.ExpandReportDates(args[0])
		if len(dates) == 0 {
			return eris.Errorf("no dates in %q", args[0])
		}
		for _, d := range dates {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), d)
		}
		return nil
	},
}

func init() {
	datesCmd.AddCommand(datesNormalizeCmd, datesExpandCmd)
	rootCmd.AddCommand(datesCmd)
}

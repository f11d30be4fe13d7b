package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uco-labs/uco/internal/report"
)

func init() {
	rootCmd.AddCommand(planCmd)
}

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show where each file would be linked",
	Long: `Classify every source file and print the destination folder and the
strategy that chose it (tag, rule, extension, catch-all). Nothing is
written: the workspace and settings file are left untouched.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		o, err := newOrganizer(cmd, false)
		if err != nil {
			return err
		}

		entries, err := o.Plan(cmd.Context())
		if err != nil {
			return fmt.Errorf("planning %s: %w", o.Root(), err)
		}
		return report.Plan(cmd.OutOrStdout(), entries)
	},
}

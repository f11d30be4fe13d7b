package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/uco-labs/uco/internal/branding"
	"github.com/uco-labs/uco/internal/organizer"
	"github.com/uco-labs/uco/internal/report"
)

func init() {
	rootCmd.AddCommand(organizeCmd)
}

var organizeCmd = &cobra.Command{
	Use:   "organize",
	Short: "Rebuild the workspace from the source tree",
	Long: `Delete and rebuild the workspace folder, linking every source file into the
folder chosen for it. Source files are never moved or modified.

A default settings file is generated on first use.`,
	Args: cobra.NoArgs,
	RunE: runOrganize,
}

func runOrganize(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "=== %s ===\n", branding.DisplayName())

	o, err := newOrganizer(cmd, true)
	if err != nil {
		return err
	}

	fmt.Fprintln(out, "[*] Scanning and organizing codebase...")
	rep, err := o.Run(cmd.Context())
	if err != nil {
		return fmt.Errorf("organizing %s: %w", o.Root(), err)
	}
	return report.Summary(out, rep, o.Workspace(), flagTable)
}

// newOrganizer builds an Organizer from the resolved root and settings.
func newOrganizer(cmd *cobra.Command, generate bool) (*organizer.Organizer, error) {
	root, err := sourceRoot()
	if err != nil {
		return nil, err
	}
	settings, err := loadSettings(cmd, root, generate)
	if err != nil {
		return nil, err
	}
	return organizer.New(organizer.Options{
		Root:     root,
		Settings: settings,
		Jobs:     flagJobs,
		Logger:   newLogger(cmd),
	})
}

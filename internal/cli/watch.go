package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/uco-labs/uco/internal/report"
	"github.com/uco-labs/uco/internal/watch"
)

var watchDebounce time.Duration

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", watch.DefaultDebounce, "Quiet period before rebuilding")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Organize, then rebuild whenever the source tree changes",
	Long: `Run a full organize, then keep watching the source tree and rebuild the
workspace after each burst of changes. Changes inside the workspace and
ignored folders are not watched. Stop with Ctrl-C.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := runOrganize(cmd, args); err != nil {
			return err
		}

		o, err := newOrganizer(cmd, false)
		if err != nil {
			return err
		}

		w, err := watch.New(cmd.Context(), watch.Options{
			Root:     o.Root(),
			Filter:   o.WalkOptions(),
			Debounce: watchDebounce,
			Logger:   newLogger(cmd),
		})
		if err != nil {
			return err
		}
		defer w.Close()

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "[*] Watching %s for changes (Ctrl-C to stop)...\n", o.Root())

		return w.Run(cmd.Context(), func(ctx context.Context) error {
			rep, err := o.Run(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "\n[*] Rebuilt at %s\n", time.Now().Format(time.TimeOnly))
			return report.Summary(out, rep, o.Workspace(), flagTable)
		})
	},
}

package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/uco-labs/uco/internal/branding"
	"github.com/uco-labs/uco/internal/config"
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string
)

var (
	flagRoot    string
	flagConfig  string
	flagVerbose bool
	flagJobs    int
	flagTable   bool
)

// overrideFlags maps settings keys to the flags that override them.
var overrideFlags = map[string]string{
	config.KeyWorkspaceDir: "workspace-dir",
	config.KeyTagPattern:   "tag-pattern",
	config.KeyLinesToScan:  "lines-to-scan",
	config.KeyAutoGroup:    "auto-group",
	config.KeyCatchAll:     "catch-all-folder",
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagRoot, "root", "", "Source root to organize (default: current directory)")
	pf.StringVar(&flagConfig, "config", "", "Settings file (default: <root>/"+branding.ConfigFile()+")")
	pf.BoolVarP(&flagVerbose, "verbose", "v", false, "Log every decision and fallback")
	pf.IntVarP(&flagJobs, "jobs", "j", 1, "Files processed concurrently")
	pf.BoolVar(&flagTable, "table", false, "Print per-folder and failure tables after the summary")

	pf.String(overrideFlags[config.KeyWorkspaceDir], "", "Override workspace_dir")
	pf.String(overrideFlags[config.KeyTagPattern], "", "Override tag_pattern")
	pf.Int(overrideFlags[config.KeyLinesToScan], 0, "Override lines_to_scan")
	pf.Bool(overrideFlags[config.KeyAutoGroup], true, "Override auto_group_untagged_by_extension")
	pf.String(overrideFlags[config.KeyCatchAll], "", "Override catch_all_folder")
}

var rootCmd = &cobra.Command{
	Use:   branding.CLIName(),
	Short: branding.Description(),
	Long: branding.DisplayName() + ` builds a virtual, categorized view of a codebase without moving anything.

Every file is routed by an embedded tag (e.g. "@UCO: Backend/API"), then by
the configured glob rules, then by its extension, and linked into the
workspace folder. Running without a subcommand is the same as "organize".`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE:          runOrganize,
}

// Execute runs the root command with build info injected via ldflags.
// Interrupts cancel the running command.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

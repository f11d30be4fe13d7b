package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uco-labs/uco/internal/config"
	"github.com/uco-labs/uco/internal/doctor"
)

var (
	checkConfig    bool
	checkLinks     bool
	checkWorkspace bool
)

func init() {
	doctorCmd.Flags().BoolVar(&checkConfig, "check-config", false, "Validate the settings file")
	doctorCmd.Flags().BoolVar(&checkLinks, "check-links", false, "Check symlink and hard link support")
	doctorCmd.Flags().BoolVar(&checkWorkspace, "check-workspace", false, "Verify workspace references still reach their sources")
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Diagnose settings, link support, and workspace health",
	Long:  `Run diagnostic checks on the source root. Without flags every check runs.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := sourceRoot()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		all := !checkConfig && !checkLinks && !checkWorkspace
		problems := 0

		if all || checkConfig {
			problems += doctor.CheckConfig(out, settingsPath(root))
		}
		if all || checkLinks {
			problems += doctor.CheckSupport(out, root, nil)
		}
		if all || checkWorkspace {
			settings, err := loadSettings(cmd, root, false)
			if err != nil {
				settings = config.Default()
			}
			broken, err := doctor.CheckWorkspace(out, filepath.Join(root, filepath.FromSlash(settings.WorkspaceDir)))
			if err != nil {
				return err
			}
			problems += broken
		}

		if problems > 0 {
			return fmt.Errorf("%d problem(s) found", problems)
		}
		return nil
	},
}

package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/uco-labs/uco/internal/branding"
	"github.com/uco-labs/uco/internal/config"
	"github.com/uco-labs/uco/internal/gitignore"
)

var initNoGitignore bool

func init() {
	initCmd.Flags().BoolVar(&initNoGitignore, "no-gitignore", false, "Do not add the workspace to "+gitignore.FileName)
	rootCmd.AddCommand(initCmd)
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the default settings file",
	Long: `Write the default settings file to the source root if none exists, and add
the workspace folder and lock file to .gitignore. Running init again is
harmless.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := sourceRoot()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()

		path := settingsPath(root)
		created, err := config.Init(path)
		if err != nil {
			return err
		}
		if created {
			fmt.Fprintf(out, "Created %s\n", path)
		} else {
			fmt.Fprintf(out, "%s already exists\n", path)
		}

		if initNoGitignore {
			return nil
		}

		settings, err := loadSettings(cmd, root, false)
		if err != nil {
			return err
		}
		added, err := gitignore.Ensure(root, filepath.FromSlash(settings.WorkspaceDir), branding.LockFile())
		if err != nil {
			return err
		}
		for _, line := range added {
			fmt.Fprintf(out, "Added %s to %s\n", line, gitignore.FileName)
		}
		return nil
	},
}

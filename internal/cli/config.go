package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/uco-labs/uco/internal/config"
)

func init() {
	configCmd.AddCommand(configValidateCmd)
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the settings file",
	Long:  `Validate the settings file or print the effective settings after environment and flag overrides.`,
}

var configValidateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the settings file against the schema",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := sourceRoot()
		if err != nil {
			return err
		}
		path := settingsPath(root)

		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading config: %w", err)
		}

		out := cmd.OutOrStdout()
		if _, err := config.Parse(data); err != nil {
			var ve *config.ValidationError
			if errors.As(err, &ve) {
				fmt.Fprintf(out, "%s is invalid:\n", path)
				for _, issue := range ve.Issues {
					fmt.Fprintf(out, "  - %s\n", issue)
				}
			}
			return err
		}

		fmt.Fprintf(out, "%s is valid\n", path)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the effective settings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		root, err := sourceRoot()
		if err != nil {
			return err
		}
		settings, err := loadSettings(cmd, root, false)
		if err != nil {
			return err
		}
		data, err := config.Marshal(settings)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}

package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/uco-labs/uco/internal/config"
	"github.com/uco-labs/uco/internal/logging"
)

// sourceRoot returns the absolute source root from --root or the cwd.
func sourceRoot() (string, error) {
	root := flagRoot
	if root == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		root = cwd
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return "", fmt.Errorf("resolving root %s: %w", root, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("reading root: %w", err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("root %s is not a directory", abs)
	}
	return abs, nil
}

// settingsPath returns --config or the located settings file for root.
func settingsPath(root string) string {
	if flagConfig != "" {
		return flagConfig
	}
	return config.Locate(root)
}

// loadSettings resolves the effective settings: file (or defaults when
// the located file is missing), then env, then flags. With generate set, a
// missing file is written with the defaults first.
func loadSettings(cmd *cobra.Command, root string, generate bool) (config.Settings, error) {
	path := settingsPath(root)

	s, err := config.Load(path)
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist) && flagConfig == "":
		s = config.Default()
		if generate {
			created, err := config.Init(path)
			if err != nil {
				return config.Settings{}, err
			}
			if created {
				fmt.Fprintf(cmd.OutOrStdout(), "[+] Generated universal config: %s\n", filepath.Base(path))
			}
		}
	default:
		return config.Settings{}, fmt.Errorf("loading %s: %w", path, err)
	}

	if err := config.CheckRequires(s.Requires, buildVersion); err != nil {
		return config.Settings{}, err
	}
	return config.Overlay(s, newViper(cmd))
}

// newViper returns a Viper reading UCO_* env vars with the override flags
// bound on top.
func newViper(cmd *cobra.Command) *viper.Viper {
	v := config.NewViper()
	for key, name := range overrideFlags {
		if f := cmd.Flag(name); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
	return v
}

func newLogger(cmd *cobra.Command) *slog.Logger {
	return logging.New(cmd.ErrOrStderr(), flagVerbose)
}

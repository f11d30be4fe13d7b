// Package branding provides compile-time identity values for the CLI.
//
// The identity lives in branding.yaml next to this file and is baked into
// the binary with //go:embed, so a fork can rename the tool, its config file
// and its environment prefix without touching Go code.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	ConfigFile       string `yaml:"config_file"`
	LegacyConfigFile string `yaml:"legacy_config_file"`
	LockFile         string `yaml:"lock_file"`
	EnvPrefix        string `yaml:"env_prefix"`
	GoModule         string `yaml:"go_module"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:          "uco",
			DisplayName:      "UCO",
			Description:      "Universal Code Organizer",
			ConfigFile:       "uco_config.yaml",
			LegacyConfigFile: "uco_config.json",
			LockFile:         ".uco.lock",
			EnvPrefix:        "UCO",
			GoModule:         "github.com/uco-labs/uco",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "uco").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name (e.g., "UCO").
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// ConfigFile returns the default config file name looked up in the source root.
func ConfigFile() string { load(); return defaults.ConfigFile }

// LegacyConfigFile returns the JSON config file name accepted when
// ConfigFile is absent.
func LegacyConfigFile() string { load(); return defaults.LegacyConfigFile }

// LockFile returns the name of the run lock file kept in the source root.
func LockFile() string { load(); return defaults.LockFile }

// EnvPrefix returns the environment variable prefix (e.g., "UCO").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("lines_to_scan") → "UCO_LINES_TO_SCAN".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}

package config

import (
	"github.com/spf13/viper"
	"github.com/uco-labs/uco/internal/branding"
)

// Keys that can be overridden from the environment or flags. They match the
// document keys, so UCO_LINES_TO_SCAN overrides lines_to_scan.
const (
	KeyWorkspaceDir = "workspace_dir"
	KeyTagPattern   = "tag_pattern"
	KeyLinesToScan  = "lines_to_scan"
	KeyAutoGroup    = "auto_group_untagged_by_extension"
	KeyCatchAll     = "catch_all_folder"
)

// NewViper returns a Viper instance reading UCO_* environment variables.
// Callers bind flags to the Key* names before calling Overlay.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()
	for _, key := range []string{KeyWorkspaceDir, KeyTagPattern, KeyLinesToScan, KeyAutoGroup, KeyCatchAll} {
		_ = v.BindEnv(key)
	}
	return v
}

// Overlay applies every key explicitly set in v (env var or changed flag)
// on top of s and re-checks the result.
func Overlay(s Settings, v *viper.Viper) (Settings, error) {
	if v.IsSet(KeyWorkspaceDir) {
		s.WorkspaceDir = v.GetString(KeyWorkspaceDir)
	}
	if v.IsSet(KeyTagPattern) {
		s.TagPattern = v.GetString(KeyTagPattern)
	}
	if v.IsSet(KeyLinesToScan) {
		s.LinesToScan = v.GetInt(KeyLinesToScan)
	}
	if v.IsSet(KeyAutoGroup) {
		s.AutoGroup = v.GetBool(KeyAutoGroup)
	}
	if v.IsSet(KeyCatchAll) {
		s.CatchAll = v.GetString(KeyCatchAll)
	}
	if err := s.Check(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/uco-labs/uco/internal/branding"
	"go.yaml.in/yaml/v3"
)

// ErrInvalid is returned when a settings document fails validation.
var ErrInvalid = errors.New("invalid configuration")

// Routing is the classification input consumed by the resolver. It is
// treated as immutable for the duration of a run.
type Routing struct {
	TagPattern  string  `yaml:"tag_pattern"`
	LinesToScan int     `yaml:"lines_to_scan"`
	AutoGroup   bool    `yaml:"auto_group_untagged_by_extension"`
	Rules       RuleSet `yaml:"custom_extension_rules"`
	CatchAll    string  `yaml:"catch_all_folder"`
}

// Settings is the full settings document.
type Settings struct {
	Instructions  string   `yaml:"_instructions,omitempty"`
	Requires      string   `yaml:"requires,omitempty"`
	WorkspaceDir  string   `yaml:"workspace_dir"`
	IgnoreFolders []string `yaml:"ignore_folders"`
	IgnoreFiles   []string `yaml:"ignore_files"`
	Routing       `yaml:",inline"`
}

// Default returns the settings used when no file exists and as the base
// every loaded document is decoded onto.
func Default() Settings {
	return Settings{
		Instructions: "Configure UCO here. Add '@UCO: Folder/Name' inside any file's comments to auto-route it!",
		WorkspaceDir: "_UCO_Workspace_",
		IgnoreFolders: []string{
			".git", "node_modules", "venv", "env", ".venv", "__pycache__",
			"dist", "build", ".vscode", ".idea",
		},
		IgnoreFiles: []string{branding.ConfigFile(), branding.LegacyConfigFile()},
		Routing: Routing{
			TagPattern:  `@UCO:\s*([a-zA-Z0-9_/-]+)`,
			LinesToScan: 50,
			AutoGroup:   true,
			Rules: RuleSet{
				{Folder: "1_Docs", Patterns: []string{"*.md", "*.txt"}},
				{Folder: "2_Configs", Patterns: []string{"*.json", "*.yaml", "*.yml", "*.toml", "*.ini", "*.env", ".gitignore"}},
			},
			CatchAll: "Misc_Files",
		},
	}
}

// Locate returns the settings file for a source root: the configured file
// name if it exists, else the legacy JSON name if that exists, else the
// configured name (which does not exist yet).
func Locate(root string) string {
	primary := filepath.Join(root, branding.ConfigFile())
	if _, err := os.Stat(primary); err == nil {
		return primary
	}
	legacy := filepath.Join(root, branding.LegacyConfigFile())
	if _, err := os.Stat(legacy); err == nil {
		return legacy
	}
	return primary
}

// Load reads, validates and decodes the settings file at path.
func Load(path string) (Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading config: %w", err)
	}
	return Parse(data)
}

// missingKeys holds the values used for keys absent from a document. Scalars
// fall back to Default(); lists and rules fall back to empty so a document
// that omits them gets no ignores and no custom rules.
func missingKeys() Settings {
	s := Default()
	s.Instructions = ""
	s.IgnoreFolders = nil
	s.IgnoreFiles = nil
	s.Rules = nil
	return s
}

// Parse validates and decodes a settings document. JSON documents are
// accepted since they are valid YAML. An empty document yields Default().
func Parse(data []byte) (Settings, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Default(), nil
	}
	settings := missingKeys()

	result, err := Validate(data)
	if err != nil {
		return Settings{}, err
	}
	if !result.Valid {
		return Settings{}, &ValidationError{Issues: result.Issues}
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return Settings{}, fmt.Errorf("parsing config: %w", err)
	}
	if err := settings.Check(); err != nil {
		return Settings{}, err
	}
	return settings, nil
}

// Check verifies the constraints the schema cannot express.
func (s Settings) Check() error {
	if strings.TrimSpace(s.WorkspaceDir) == "" {
		return fmt.Errorf("%w: workspace_dir must not be empty", ErrInvalid)
	}
	clean := filepath.Clean(filepath.FromSlash(s.WorkspaceDir))
	if !filepath.IsLocal(clean) || clean == "." {
		return fmt.Errorf("%w: workspace_dir %q must be a folder inside the source root", ErrInvalid, s.WorkspaceDir)
	}
	return s.Routing.Check()
}

// Check verifies the routing record on its own.
func (r Routing) Check() error {
	if r.LinesToScan < 1 {
		return fmt.Errorf("%w: lines_to_scan must be at least 1, got %d", ErrInvalid, r.LinesToScan)
	}
	if strings.TrimSpace(r.CatchAll) == "" {
		return fmt.Errorf("%w: catch_all_folder must not be empty", ErrInvalid)
	}
	re, err := regexp.Compile(r.TagPattern)
	if err != nil {
		return fmt.Errorf("%w: tag_pattern: %v", ErrInvalid, err)
	}
	if n := re.NumSubexp(); n != 1 {
		return fmt.Errorf("%w: tag_pattern must have exactly one capture group, has %d", ErrInvalid, n)
	}
	for _, rule := range r.Rules {
		if strings.TrimSpace(rule.Folder) == "" {
			return fmt.Errorf("%w: custom_extension_rules has an empty folder name", ErrInvalid)
		}
	}
	return nil
}

// Marshal renders settings as YAML with rule order preserved.
func Marshal(s Settings) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(s); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling config: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes settings to path.
func Save(path string, s Settings) error {
	data, err := Marshal(s)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}
	return nil
}

// Init writes Default() to path unless a file is already there. It reports
// whether a file was created.
func Init(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !os.IsNotExist(err) {
		return false, fmt.Errorf("checking config %s: %w", path, err)
	}
	if err := Save(path, Default()); err != nil {
		return false, err
	}
	return true, nil
}

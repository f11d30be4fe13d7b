//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/uco-labs/uco/internal/config"
)

// project is an isolated source tree with its own settings file.
type project struct {
	Root string
}

func newProject(t *testing.T) *project {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
	return &project{Root: t.TempDir()}
}

// write creates rel (slash-separated) under the root with content.
func (p *project) write(t *testing.T, rel, content string) string {
	t.Helper()
	path := filepath.Join(p.Root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", rel, err)
	}
	return path
}

// settings loads the project's settings file, writing defaults first.
func (p *project) settings(t *testing.T) config.Settings {
	t.Helper()
	path := config.Locate(p.Root)
	if _, err := config.Init(path); err != nil {
		t.Fatalf("Init: %v", err)
	}
	s, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	return s
}

// snapshot returns every file under dir (not following links) mapped to its
// content.
func snapshot(t *testing.T, dir string, skip ...string) map[string]string {
	t.Helper()
	skipped := make(map[string]bool)
	for _, s := range skip {
		skipped[s] = true
	}
	files := make(map[string]string)
	err := filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(dir, path)
		if skipped[rel] {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		files[filepath.ToSlash(rel)] = string(data)
		return nil
	})
	if err != nil {
		t.Fatalf("snapshot of %s: %v", dir, err)
	}
	return files
}

package organizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/gofrs/flock"

	"github.com/uco-labs/uco/internal/branding"
	"github.com/uco-labs/uco/internal/config"
	"github.com/uco-labs/uco/internal/materialize"
	"github.com/uco-labs/uco/internal/platform"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func newOrganizer(t *testing.T, root string, jobs int) *Organizer {
	t.Helper()
	o, err := New(Options{Root: root, Settings: config.Default(), Jobs: jobs})
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return o
}

func skipWithoutSymlinks(t *testing.T) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("symlinks need developer mode on Windows")
	}
}

func TestRunRoutesFiles(t *testing.T) {
	skipWithoutSymlinks(t)
	root := t.TempDir()
	writeFile(t, root, "notes.md", "# notes\n")
	writeFile(t, root, "logs/server.log", "// @UCO: Logs/Server\nstarted\n")
	writeFile(t, root, "a/data.json", "{}")
	writeFile(t, root, "b/data.json", "{}")
	writeFile(t, root, "cmd/main.go", "package main\n")
	writeFile(t, root, "Makefile", "all:\n")
	writeFile(t, root, ".git/HEAD", "ref: main\n")
	writeFile(t, root, "node_modules/x/index.js", "")
	writeFile(t, root, branding.ConfigFile(), "workspace_dir: _UCO_Workspace_\n")

	o := newOrganizer(t, root, 1)
	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}

	if report.Processed != 6 || report.Failed != 0 {
		t.Fatalf("Processed=%d Failed=%d, want 6 and 0", report.Processed, report.Failed)
	}

	ws := o.Workspace()
	want := map[string]string{
		"1_Docs/notes.md":        "notes.md",
		"Logs/Server/server.log": "logs/server.log",
		"2_Configs/data.json":    "a/data.json",
		"2_Configs/data_1.json":  "b/data.json",
		"GO_Files/main.go":       "cmd/main.go",
		"Misc_Files/Makefile":    "Makefile",
	}
	for link, src := range want {
		target, err := os.Readlink(filepath.Join(ws, filepath.FromSlash(link)))
		if err != nil {
			t.Errorf("reading %s: %v", link, err)
			continue
		}
		if target != filepath.Join(root, filepath.FromSlash(src)) {
			t.Errorf("%s -> %s, want %s", link, target, src)
		}
	}

	if report.ByFolder["2_Configs"] != 2 {
		t.Errorf("ByFolder[2_Configs] = %d, want 2", report.ByFolder["2_Configs"])
	}
	if report.ByKind[materialize.KindSymlink] != 6 {
		t.Errorf("ByKind[symlink] = %d, want 6", report.ByKind[materialize.KindSymlink])
	}
	for i := 1; i < len(report.Records); i++ {
		if report.Records[i-1].Path > report.Records[i].Path {
			t.Fatalf("records not sorted: %s before %s", report.Records[i-1].Path, report.Records[i].Path)
		}
	}

	data, err := os.ReadFile(filepath.Join(root, "logs", "server.log"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "// @UCO: Logs/Server\nstarted\n" {
		t.Errorf("source file modified: %q", data)
	}
}

func TestRunResetsWorkspace(t *testing.T) {
	skipWithoutSymlinks(t)
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")

	o := newOrganizer(t, root, 1)
	stale := writeFile(t, o.Workspace(), "Old/stale.txt", "stale")

	for i := 0; i < 2; i++ {
		report, err := o.Run(context.Background())
		if err != nil {
			t.Fatalf("run %d failed: %v", i, err)
		}
		if report.Processed != 1 {
			t.Errorf("run %d processed %d files, want 1", i, report.Processed)
		}
	}

	if _, err := os.Lstat(stale); !os.IsNotExist(err) {
		t.Errorf("stale entry survived reset: %v", err)
	}
	if _, err := os.Lstat(filepath.Join(o.Workspace(), "1_Docs", "a_1.txt")); !os.IsNotExist(err) {
		t.Error("second run should not see references from the first")
	}
}

func TestRunLocked(t *testing.T) {
	root := t.TempDir()
	o := newOrganizer(t, root, 1)

	held := flock.New(filepath.Join(root, branding.LockFile()))
	ok, err := held.TryLock()
	if err != nil || !ok {
		t.Fatalf("taking lock: ok=%v err=%v", ok, err)
	}
	defer held.Unlock()

	_, err = o.Run(context.Background())
	if !errors.Is(err, ErrLocked) {
		t.Fatalf("Run error = %v, want ErrLocked", err)
	}
	if _, statErr := os.Stat(o.Workspace()); !os.IsNotExist(statErr) {
		t.Error("workspace should not be created while locked")
	}
}

func TestRunRootedTag(t *testing.T) {
	skipWithoutSymlinks(t)
	root := t.TempDir()
	writeFile(t, root, "notes.txt", "@UCO: /etc\n")

	o := newOrganizer(t, root, 1)
	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Processed != 1 || report.Failed != 0 {
		t.Fatalf("Processed=%d Failed=%d, want 1 and 0", report.Processed, report.Failed)
	}
	if _, err := os.Lstat(filepath.Join(o.Workspace(), "etc", "notes.txt")); err != nil {
		t.Errorf("rooted tag not placed inside the workspace: %v", err)
	}
}

type refusingLinker struct{ platform.OSLinker }

func (refusingLinker) Symlink(string, string) error { return os.ErrPermission }
func (refusingLinker) Link(string, string) error { return os.ErrPermission }
func (refusingLinker) WriteFile(string, []byte, os.FileMode) error { return os.ErrPermission }

func TestRunCountsFailures(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")
	writeFile(t, root, "b.txt", "b")

	o, err := New(Options{Root: root, Settings: config.Default(), Linker: refusingLinker{}})
	if err != nil {
		t.Fatal(err)
	}
	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Processed != 0 || report.Failed != 2 {
		t.Fatalf("Processed=%d Failed=%d, want 0 and 2", report.Processed, report.Failed)
	}
	for _, f := range report.Failures {
		if !errors.Is(f.Err, materialize.ErrNoReference) {
			t.Errorf("failure = %v, want ErrNoReference", f.Err)
		}
	}
}

func TestRunParallelDistinctNames(t *testing.T) {
	skipWithoutSymlinks(t)
	root := t.TempDir()
	const n = 30
	for i := 0; i < n; i++ {
		writeFile(t, root, fmt.Sprintf("dir%02d/same.txt", i), "x")
	}

	o := newOrganizer(t, root, 8)
	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.Processed != n {
		t.Fatalf("Processed = %d, want %d", report.Processed, n)
	}

	seen := make(map[string]bool)
	for _, rec := range report.Records {
		if seen[rec.Path] {
			t.Fatalf("duplicate reference %s", rec.Path)
		}
		seen[rec.Path] = true
	}
	entries, err := os.ReadDir(filepath.Join(o.Workspace(), "1_Docs"))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != n {
		t.Errorf("1_Docs holds %d entries, want %d", len(entries), n)
	}
}

type noLinks struct{ platform.OSLinker }

func (noLinks) Symlink(string, string) error { return os.ErrPermission }
func (noLinks) Link(string, string) error { return os.ErrPermission }

func TestRunPointerFallback(t *testing.T) {
	root := t.TempDir()
	src := writeFile(t, root, "notes.md", "n")

	o, err := New(Options{Root: root, Settings: config.Default(), Linker: noLinks{}})
	if err != nil {
		t.Fatal(err)
	}
	report, err := o.Run(context.Background())
	if err != nil {
		t.Fatalf("Run failed: %v", err)
	}
	if report.ByKind[materialize.KindPointer] != 1 {
		t.Fatalf("ByKind = %v, want one pointer", report.ByKind)
	}

	got, err := platform.ReadPointer(filepath.Join(o.Workspace(), "1_Docs", "notes.md"+platform.PointerSuffix))
	if err != nil {
		t.Fatal(err)
	}
	want, err := platform.ResolvePath(src)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("pointer holds %q, want %q", got, want)
	}
}

func TestRunCancelled(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "a.txt", "a")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := newOrganizer(t, root, 1).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Run error = %v, want context.Canceled", err)
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Settings)
	}{
		{"workspace is root", func(s *config.Settings) { s.WorkspaceDir = "." }},
		{"workspace outside root", func(s *config.Settings) { s.WorkspaceDir = "../out" }},
		{"zero lines", func(s *config.Settings) { s.LinesToScan = 0 }},
		{"two groups", func(s *config.Settings) { s.TagPattern = `(a)(b)` }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := config.Default()
			tt.mutate(&s)
			_, err := New(Options{Root: t.TempDir(), Settings: s})
			if !errors.Is(err, config.ErrInvalid) {
				t.Errorf("New error = %v, want config.ErrInvalid", err)
			}
		})
	}
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "notes.md", "")
	writeFile(t, root, "src/app.py", "# @UCO: Backend\n")
	writeFile(t, root, "LICENSE", "")

	o := newOrganizer(t, root, 4)
	entries, err := o.Plan(context.Background())
	if err != nil {
		t.Fatalf("Plan failed: %v", err)
	}

	want := []struct{ rel, folder string }{
		{"LICENSE", "Misc_Files"},
		{"notes.md", "1_Docs"},
		{"src/app.py", "Backend"},
	}
	if len(entries) != len(want) {
		t.Fatalf("got %d entries, want %d", len(entries), len(want))
	}
	for i, w := range want {
		if entries[i].RelPath != w.rel || entries[i].Decision.Folder != w.folder {
			t.Errorf("entry %d = %s -> %s, want %s -> %s", i, entries[i].RelPath, entries[i].Decision.Folder, w.rel, w.folder)
		}
	}

	if _, err := os.Stat(o.Workspace()); !os.IsNotExist(err) {
		t.Error("Plan must not create the workspace")
	}
}

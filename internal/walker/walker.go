// Package walker enumerates the candidate source files under a root.
//
// Directories named in IgnoreFolders and every dot-directory are skipped
// wherever they appear, files named in IgnoreFiles are skipped, and
// SkipPaths (the workspace and the lock file) are never entered or
// returned. Only regular files, or symlinks resolving to regular files,
// are yielded.
package walker

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// Options controls what Walk skips.
type Options struct {
	IgnoreFolders []string
	IgnoreFiles   []string
	SkipPaths     []string
}

type filter struct {
	root    string
	folders map[string]bool
	files   map[string]bool
	paths   map[string]bool
}

func newFilter(root string, opts Options) *filter {
	f := &filter{
		root:    filepath.Clean(root),
		folders: make(map[string]bool, len(opts.IgnoreFolders)),
		files:   make(map[string]bool, len(opts.IgnoreFiles)),
		paths:   make(map[string]bool, len(opts.SkipPaths)),
	}
	for _, name := range opts.IgnoreFolders {
		f.folders[name] = true
	}
	for _, name := range opts.IgnoreFiles {
		f.files[name] = true
	}
	for _, p := range opts.SkipPaths {
		f.paths[filepath.Clean(p)] = true
	}
	return f
}

// skipDir reports whether a directory below the root is excluded.
func (f *filter) skipDir(path, name string) bool {
	if path == f.root {
		return false
	}
	return f.folders[name] || strings.HasPrefix(name, ".") || f.paths[path]
}

func (f *filter) skipFile(path, name string) bool {
	return f.files[name] || f.paths[path]
}

// Walk calls fn with the path of every candidate file under root, in
// lexical order. Unreadable subdirectories are skipped. Walking stops at
// the first error returned by fn or when ctx is done.
func Walk(ctx context.Context, root string, opts Options, fn func(path string) error) error {
	f := newFilter(root, opts)

	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == f.root {
				return err
			}
			return nil
		}

		if d.IsDir() {
			if f.skipDir(path, d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if f.skipFile(path, d.Name()) || !isRegular(path, d) {
			return nil
		}
		return fn(path)
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}
	return nil
}

// WalkDirs calls fn with root and every directory Walk would descend into.
func WalkDirs(ctx context.Context, root string, opts Options, fn func(path string) error) error {
	f := newFilter(root, opts)

	err := filepath.WalkDir(f.root, func(path string, d fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if path == f.root {
				return err
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if f.skipDir(path, d.Name()) {
			return filepath.SkipDir
		}
		return fn(path)
	})
	if err != nil {
		return fmt.Errorf("walking %s: %w", root, err)
	}
	return nil
}

// Excluded reports whether path (below root) lies in an excluded directory,
// is itself one, or is an excluded file. Used to filter change events; a
// path that no longer exists is judged by name alone.
func Excluded(root string, opts Options, path string) bool {
	f := newFilter(root, opts)
	path = filepath.Clean(path)

	rel, err := filepath.Rel(f.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}
	if rel == "." {
		return false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	current := f.root
	for i, part := range parts {
		current = filepath.Join(current, part)
		if i == len(parts)-1 {
			if info, err := os.Lstat(current); err == nil && info.IsDir() {
				return f.skipDir(current, part)
			}
			return f.skipFile(current, part) || f.folders[part]
		}
		if f.skipDir(current, part) {
			return true
		}
	}
	return false
}

func isRegular(path string, d fs.DirEntry) bool {
	if d.Type().IsRegular() {
		return true
	}
	if d.Type()&fs.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

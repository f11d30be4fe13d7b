// Package gitignore keeps generated paths out of version control.
package gitignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileName is the ignore file maintained under the source root.
const FileName = ".gitignore"

// Entry returns the ignore line for a path relative to the root. Patterns
// are anchored so a same-named folder deeper in the tree is unaffected.
func Entry(rel string) string {
	return "/" + strings.Trim(filepath.ToSlash(rel), "/")
}

// Ensure appends an anchored line for each rel path missing from
// root/.gitignore, creating the file if needed. It returns the lines
// added; an unchanged file yields none.
func Ensure(root string, rels ...string) ([]string, error) {
	path := filepath.Join(root, FileName)

	content, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("reading %s: %w", FileName, err)
	}

	present := make(map[string]bool)
	for _, l := range strings.Split(string(content), "\n") {
		present[normalize(l)] = true
	}

	var added []string
	for _, rel := range rels {
		line := Entry(rel)
		if present[normalize(line)] {
			continue
		}
		present[normalize(line)] = true
		added = append(added, line)
	}
	if len(added) == 0 {
		return nil, nil
	}

	suffix := strings.Join(added, "\n") + "\n"
	if len(content) > 0 && !strings.HasSuffix(string(content), "\n") {
		suffix = "\n" + suffix
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, fmt.Errorf("opening %s for append: %w", FileName, err)
	}
	defer f.Close()

	if _, err := f.WriteString(suffix); err != nil {
		return nil, fmt.Errorf("writing to %s: %w", FileName, err)
	}
	return added, nil
}

// normalize treats "ws", "/ws" and "/ws/" as the same entry.
func normalize(line string) string {
	return strings.Trim(strings.TrimSpace(line), "/")
}

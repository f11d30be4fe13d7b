package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// PointerSuffix is appended to the link name to form a pointer file name.
const PointerSuffix = ".pointer.txt"

// legacyPointerPrefix is accepted when reading pointer files written by
// older tooling.
const legacyPointerPrefix = "Original file located at:"

// PointerPath returns the pointer file name for a link path.
func PointerPath(link string) string {
	return link + PointerSuffix
}

// IsPointer reports whether path names a pointer file.
func IsPointer(path string) bool {
	return strings.HasSuffix(path, PointerSuffix)
}

// ResolvePath returns the absolute path of src with symlinks evaluated
// where possible.
func ResolvePath(src string) (string, error) {
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", src, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved, nil
	}
	return abs, nil
}

// WritePointer records src's resolved absolute path in the pointer file for
// link and returns the pointer file path.
func WritePointer(l Linker, link, src string) (string, error) {
	resolved, err := ResolvePath(src)
	if err != nil {
		return "", err
	}
	pointer := PointerPath(link)
	if err := l.WriteFile(pointer, []byte(resolved), 0644); err != nil {
		return "", err
	}
	return pointer, nil
}

// ReadPointer returns the path recorded in a pointer file.
func ReadPointer(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading pointer %s: %w", path, err)
	}
	target := strings.TrimSpace(string(data))
	target = strings.TrimSpace(strings.TrimPrefix(target, legacyPointerPrefix))
	if target == "" {
		return "", fmt.Errorf("pointer %s is empty", path)
	}
	return target, nil
}

package platform

import (
	"os"
)

// Linker creates references. OSLinker is the real implementation; tests
// substitute one that fails selected tiers.
type Linker interface {
	Symlink(target, link string) error
	Link(target, link string) error
	WriteFile(name string, data []byte, perm os.FileMode) error
}

// OSLinker calls straight through to package os.
type OSLinker struct{}

func (OSLinker) Symlink(target, link string) error { return os.Symlink(target, link) }

func (OSLinker) Link(target, link string) error { return os.Link(target, link) }

func (OSLinker) WriteFile(name string, data []byte, perm os.FileMode) error {
	// O_EXCL so a pointer never replaces an existing entry.
	f, err := os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}

// ReadTarget returns the source a reference points at. Symlinks are read
// with os.Readlink; for a pointer file (either the link path itself with
// PointerSuffix appended, or a path already ending in it) the recorded
// path is returned. Hard links carry no target and yield an error.
func ReadTarget(path string) (string, error) {
	target, err := os.Readlink(path)
	if err == nil {
		return target, nil
	}

	if IsPointer(path) {
		return ReadPointer(path)
	}
	if _, statErr := os.Stat(PointerPath(path)); statErr == nil {
		return ReadPointer(PointerPath(path))
	}
	return "", err
}

// Package doctor diagnoses a source root: whether its settings file is
// valid, which reference tiers the filesystem supports, and whether the
// references in an existing workspace still reach their sources.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/uco-labs/uco/internal/config"
	"github.com/uco-labs/uco/internal/materialize"
	"github.com/uco-labs/uco/internal/platform"
)

// Support reports which reference tiers work in a directory.
type Support struct {
	Symlink     bool
	Hardlink    bool
	SymlinkErr  platform.FailureReason
	HardlinkErr platform.FailureReason
}

// Best returns the first tier a run would use.
func (s Support) Best() materialize.Kind {
	switch {
	case s.Symlink:
		return materialize.KindSymlink
	case s.Hardlink:
		return materialize.KindHardlink
	default:
		return materialize.KindPointer
	}
}

// CheckConfig validates the settings file at path. A missing file is not a
// problem; defaults apply.
func CheckConfig(w io.Writer, path string) int {
	fmt.Fprintln(w, "Config check:")

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [INFO] %s not found, defaults apply\n", path)
		return 0
	}
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %s: %v\n", path, err)
		return 1
	}

	if _, err := config.Parse(data); err != nil {
		var ve *config.ValidationError
		if errors.As(err, &ve) {
			for _, issue := range ve.Issues {
				fmt.Fprintf(w, "  [FAIL] %s\n", issue)
			}
			return len(ve.Issues)
		}
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}
	fmt.Fprintf(w, "  [ OK ] %s is valid\n", path)
	return 0
}

// DetectSupport creates a scratch directory under dir and tries each link
// tier in it.
func DetectSupport(dir string, l platform.Linker) (Support, error) {
	if l == nil {
		l = platform.OSLinker{}
	}
	scratch, err := os.MkdirTemp(dir, ".uco-linkcheck-")
	if err != nil {
		return Support{}, fmt.Errorf("creating scratch directory: %w", err)
	}
	defer os.RemoveAll(scratch)

	src := filepath.Join(scratch, "source")
	if err := os.WriteFile(src, []byte("linkcheck"), 0644); err != nil {
		return Support{}, fmt.Errorf("writing scratch file: %w", err)
	}

	var s Support
	if err := l.Symlink(src, filepath.Join(scratch, "symlink")); err != nil {
		s.SymlinkErr = platform.Classify(err)
	} else {
		s.Symlink = true
	}
	if err := l.Link(src, filepath.Join(scratch, "hardlink")); err != nil {
		s.HardlinkErr = platform.Classify(err)
	} else {
		s.Hardlink = true
	}
	return s, nil
}

// CheckSupport reports the tiers available under root.
func CheckSupport(w io.Writer, root string, l platform.Linker) int {
	fmt.Fprintln(w, "Link support check:")

	s, err := DetectSupport(root, l)
	if err != nil {
		fmt.Fprintf(w, "  [FAIL] %v\n", err)
		return 1
	}

	if s.Symlink {
		fmt.Fprintln(w, "  [ OK ] symlinks supported")
	} else {
		fmt.Fprintf(w, "  [WARN] symlinks unavailable (%s)\n", s.SymlinkErr)
	}
	if s.Hardlink {
		fmt.Fprintln(w, "  [ OK ] hard links supported")
	} else {
		fmt.Fprintf(w, "  [WARN] hard links unavailable (%s)\n", s.HardlinkErr)
	}
	fmt.Fprintf(w, "  [INFO] references will be created as %s\n", s.Best())
	return 0
}

// CheckWorkspace verifies every symlink and pointer file under workspace
// still reaches an existing source. Hard links always do.
func CheckWorkspace(w io.Writer, workspace string) (int, error) {
	fmt.Fprintln(w, "Workspace check:")

	if _, err := os.Stat(workspace); errors.Is(err, fs.ErrNotExist) {
		fmt.Fprintf(w, "  [INFO] %s does not exist yet\n", workspace)
		return 0, nil
	}

	var refs, broken int
	err := filepath.WalkDir(workspace, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		refs++

		target, err := platform.ReadTarget(path)
		if err != nil {
			return nil
		}
		if _, statErr := os.Stat(target); statErr != nil {
			fmt.Fprintf(w, "  [FAIL] %s -> %s (broken)\n", path, target)
			broken++
		}
		return nil
	})
	if err != nil {
		return broken, fmt.Errorf("walking workspace: %w", err)
	}

	if broken == 0 {
		fmt.Fprintf(w, "  [ OK ] %d reference(s) valid\n", refs)
	} else {
		fmt.Fprintf(w, "\n  %d broken reference(s) found. Run the organizer again to rebuild.\n", broken)
	}
	return broken, nil
}

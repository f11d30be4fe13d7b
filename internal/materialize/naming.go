package materialize

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/uco-labs/uco/internal/classify"
	"github.com/uco-labs/uco/internal/platform"
)

// UniqueName returns base if it is free in dir, otherwise the first free
// "<stem>_<n><ext>" counting from 1. A name is taken when an entry with
// that name exists (dangling symlinks included) or when its pointer file
// exists.
func UniqueName(dir, base string) (string, error) {
	stem, ext := classify.SplitExt(base)
	for n := 0; ; n++ {
		name := base
		if n > 0 {
			name = fmt.Sprintf("%s_%d%s", stem, n, ext)
		}

		taken, err := occupied(filepath.Join(dir, name))
		if err != nil {
			return "", err
		}
		if !taken {
			return name, nil
		}
	}
}

func occupied(path string) (bool, error) {
	for _, p := range []string{path, platform.PointerPath(path)} {
		_, err := os.Lstat(p)
		if err == nil {
			return true, nil
		}
		if !os.IsNotExist(err) {
			return false, fmt.Errorf("checking %s: %w", p, err)
		}
	}
	return false, nil
}

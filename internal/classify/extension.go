package classify

import (
	"path/filepath"
	"strings"
)

// FolderSuffix is appended to the upper-cased extension.
const FolderSuffix = "_Files"

// SplitExt splits a base name into stem and extension (with its dot). A
// name whose only dot is the leading one (".env") or the trailing one
// ("notes.") has no extension.
func SplitExt(name string) (stem, ext string) {
	i := strings.LastIndex(name, ".")
	if i <= 0 || i == len(name)-1 {
		return name, ""
	}
	return name[:i], name[i:]
}

// ExtensionFolder returns "<EXT>_Files" for the file's extension, or
// catchAll if it has none.
func ExtensionFolder(path, catchAll string) string {
	_, ext := SplitExt(filepath.Base(path))
	if ext == "" {
		return catchAll
	}
	return strings.ToUpper(ext[1:]) + FolderSuffix
}

package classify

import (
	"fmt"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/uco-labs/uco/internal/config"
	"github.com/uco-labs/uco/internal/tagscan"
)

// Strategy names the step that produced a decision.
type Strategy string

const (
	StrategyTag       Strategy = "tag"
	StrategyRule      Strategy = "rule"
	StrategyExtension Strategy = "extension"
	StrategyCatchAll  Strategy = "catch-all"
)

// Decision is the destination chosen for one file.
type Decision struct {
	Folder   string
	Strategy Strategy
	Scan     tagscan.Result
}

// Resolver classifies files under one routing configuration. It holds no
// mutable state and is safe for concurrent use.
type Resolver struct {
	routing config.Routing
	pattern *regexp.Regexp
}

// NewResolver compiles the routing tag pattern.
func NewResolver(routing config.Routing) (*Resolver, error) {
	pattern, err := tagscan.Compile(routing.TagPattern)
	if err != nil {
		return nil, err
	}
	if routing.LinesToScan < 1 {
		return nil, fmt.Errorf("%w: lines_to_scan must be at least 1", config.ErrInvalid)
	}
	return &Resolver{routing: routing, pattern: pattern}, nil
}

// Resolve picks the destination folder for the file at path.
func (r *Resolver) Resolve(path string) Decision {
	scan := tagscan.Extract(path, r.pattern, r.routing.LinesToScan)
	if scan.Found {
		if folder, ok := TagFolder(scan.Tag); ok {
			return Decision{Folder: folder, Strategy: StrategyTag, Scan: scan}
		}
	}

	if folder, ok := MatchRules(filepath.Base(path), r.routing.Rules); ok {
		return Decision{Folder: folder, Strategy: StrategyRule, Scan: scan}
	}

	if r.routing.AutoGroup {
		if _, ext := SplitExt(filepath.Base(path)); ext != "" {
			return Decision{Folder: ExtensionFolder(path, r.routing.CatchAll), Strategy: StrategyExtension, Scan: scan}
		}
	}

	return Decision{Folder: r.routing.CatchAll, Strategy: StrategyCatchAll, Scan: scan}
}

// TagFolder normalizes a tag into a destination folder. Surrounding
// separators are dropped, so "/Docs/" names "Docs". Tags that still leave
// the workspace ("..", absolute volumes) are refused and the file falls
// through to the remaining strategies.
func TagFolder(tag string) (string, bool) {
	slashed := strings.ReplaceAll(tag, "\\", "/")
	for _, seg := range strings.Split(slashed, "/") {
		if seg == ".." {
			return "", false
		}
	}
	clean := strings.Trim(path.Clean("/"+slashed), "/")
	if clean == "" || !filepath.IsLocal(filepath.FromSlash(clean)) {
		return "", false
	}
	return clean, true
}

package classify

import (
	"path"
	"strings"

	"github.com/uco-labs/uco/internal/config"
)

// MatchRules returns the folder of the first rule with a pattern matching
// name. Rules are tried in order, and patterns within a rule in order.
// Matching is case-insensitive shell globbing over the whole name; a
// malformed pattern never matches. Character classes may be negated with
// either "[!...]" or "[^...]".
func MatchRules(name string, rules config.RuleSet) (string, bool) {
	lower := strings.ToLower(name)
	for _, rule := range rules {
		for _, pattern := range rule.Patterns {
			if ok, err := path.Match(globPattern(pattern), lower); err == nil && ok {
				return rule.Folder, true
			}
		}
	}
	return "", false
}

func globPattern(pattern string) string {
	return strings.ReplaceAll(strings.ToLower(pattern), "[!", "[^")
}

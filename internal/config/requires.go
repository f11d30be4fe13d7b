package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrIncompatible is returned when the settings file requires a different
// uco version than the one running.
var ErrIncompatible = errors.New("incompatible uco version")

// CheckRequires verifies that version satisfies the settings' requires
// constraint (e.g. ">= 1.2, < 2"). Development builds and an empty
// constraint always pass.
func CheckRequires(constraint, version string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" || version == "" || version == "dev" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("%w: requires %q: %v", ErrInvalid, constraint, err)
	}
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return fmt.Errorf("parsing running version %q: %w", version, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: config requires %s, running %s", ErrIncompatible, constraint, version)
	}
	return nil
}

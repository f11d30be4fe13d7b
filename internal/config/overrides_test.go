package config

import (
	"errors"
	"testing"
)

func TestOverlayFromEnv(t *testing.T) {
	t.Setenv("UCO_LINES_TO_SCAN", "7")
	t.Setenv("UCO_CATCH_ALL_FOLDER", "Leftovers")
	t.Setenv("UCO_AUTO_GROUP_UNTAGGED_BY_EXTENSION", "false")

	s, err := Overlay(Default(), NewViper())
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if s.LinesToScan != 7 {
		t.Errorf("LinesToScan = %d, want 7", s.LinesToScan)
	}
	if s.CatchAll != "Leftovers" {
		t.Errorf("CatchAll = %q, want Leftovers", s.CatchAll)
	}
	if s.AutoGroup {
		t.Error("AutoGroup should be false")
	}
	if s.WorkspaceDir != Default().WorkspaceDir {
		t.Errorf("unset key changed: WorkspaceDir = %q", s.WorkspaceDir)
	}
}

func TestOverlayRechecks(t *testing.T) {
	t.Setenv("UCO_TAG_PATTERN", "no-group")

	_, err := Overlay(Default(), NewViper())
	if !errors.Is(err, ErrInvalid) {
		t.Errorf("Overlay() error = %v, want ErrInvalid", err)
	}
}

func TestOverlayExplicitSet(t *testing.T) {
	v := NewViper()
	v.Set(KeyWorkspaceDir, "out/view")

	s, err := Overlay(Default(), v)
	if err != nil {
		t.Fatalf("Overlay() error = %v", err)
	}
	if s.WorkspaceDir != "out/view" {
		t.Errorf("WorkspaceDir = %q", s.WorkspaceDir)
	}
}

package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
)

func TestNewLevels(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false).Debug("hidden")
	New(&buf, false).Info("shown", Error(errors.New("boom")))
	if strings.Contains(buf.String(), "hidden") {
		t.Error("debug output written without verbose")
	}
	if !strings.Contains(buf.String(), "error=boom") {
		t.Errorf("missing error attribute in %q", buf.String())
	}

	buf.Reset()
	New(&buf, true).Debug("visible")
	if !strings.Contains(buf.String(), "visible") {
		t.Error("debug output missing with verbose")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatal("OrNop(nil) returned nil")
	}
	OrNop(nil).Error("discarded")
}

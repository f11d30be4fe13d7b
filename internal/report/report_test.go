package report

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/uco-labs/uco/internal/classify"
	"github.com/uco-labs/uco/internal/materialize"
	"github.com/uco-labs/uco/internal/organizer"
)

func sampleReport() *organizer.Report {
	return &organizer.Report{
		Processed: 3,
		Failed:    1,
		ByFolder:  map[string]int{"2_Configs": 2, "1_Docs": 1},
		ByKind:    map[materialize.Kind]int{materialize.KindSymlink: 2, materialize.KindPointer: 1},
		Failures: []organizer.Outcome{{
			Decision: classify.Decision{Folder: "/etc"},
			Record:   materialize.Record{Source: "/src/evil.txt", Folder: "/etc"},
			Err:      errors.New("destination folder escapes the workspace"),
		}},
	}
}

func TestSummary(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, sampleReport(), "/src/_UCO_Workspace_", false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	for _, want := range []string{
		"3 files dynamically organized into '_UCO_Workspace_/'",
		"1 files could not be organized",
		"was NOT moved",
		"1 references fell back from symlinks (2 symlink, 1 pointer)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "2_Configs") {
		t.Errorf("summary without detail should not print tables:\n%s", out)
	}
}

func TestSummaryDetail(t *testing.T) {
	var buf bytes.Buffer
	if err := Summary(&buf, sampleReport(), "ws", true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()

	docs := strings.Index(out, "1_Docs")
	configs := strings.Index(out, "2_Configs")
	if docs < 0 || configs < 0 || docs > configs {
		t.Errorf("folders missing or unsorted:\n%s", out)
	}
	if !strings.Contains(out, "/src/evil.txt") || !strings.Contains(out, "escapes the workspace") {
		t.Errorf("failure table missing:\n%s", out)
	}
	if strings.Contains(out, "╭") {
		t.Errorf("non-terminal output should use the plain style:\n%s", out)
	}
}

func TestSummaryClean(t *testing.T) {
	var buf bytes.Buffer
	r := &organizer.Report{
		Processed: 2,
		ByFolder:  map[string]int{"1_Docs": 2},
		ByKind:    map[materialize.Kind]int{materialize.KindSymlink: 2},
	}
	if err := Summary(&buf, r, "ws", false); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "could not be organized") || strings.Contains(out, "fell back") {
		t.Errorf("clean run printed warnings:\n%s", out)
	}
}

func TestPlan(t *testing.T) {
	entries := []organizer.Entry{
		{RelPath: "notes.md", Decision: classify.Decision{Folder: "1_Docs", Strategy: classify.StrategyRule}},
		{RelPath: "src/app.py", Decision: classify.Decision{Folder: "Backend", Strategy: classify.StrategyTag}},
	}

	var buf bytes.Buffer
	if err := Plan(&buf, entries); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	for _, want := range []string{"notes.md", "1_Docs", "rule", "src/app.py", "Backend", "tag"} {
		if !strings.Contains(out, want) {
			t.Errorf("plan output missing %q:\n%s", want, out)
		}
	}
}

func TestRenderTableAlignment(t *testing.T) {
	out := renderTable(table.StyleDefault, []string{"Name", "Count"}, [][]string{{"a", "1"}, {"bbbbbb", "22"}}, []columnAlignment{alignLeft, alignRight})
	if !strings.Contains(out, "|     1 |") {
		t.Errorf("count column not right aligned:\n%s", out)
	}
	if renderTable(table.StyleDefault, nil, nil, nil) != "" {
		t.Error("empty headers should render nothing")
	}
}

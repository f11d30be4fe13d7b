// Package report renders run results for the terminal.
package report

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"github.com/uco-labs/uco/internal/materialize"
	"github.com/uco-labs/uco/internal/organizer"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

// Summary writes the outcome of a run. With detail set, per-folder and
// failure tables follow the headline.
func Summary(w io.Writer, r *organizer.Report, workspace string, detail bool) error {
	name := filepath.Base(workspace)
	if _, err := fmt.Fprintf(w, "[✓] Success! %d files dynamically organized into '%s/'.\n", r.Processed, name); err != nil {
		return err
	}
	if r.Failed > 0 {
		fmt.Fprintf(w, "[!] %d files could not be organized (run with --verbose for details).\n", r.Failed)
	}
	fmt.Fprintln(w, "[✓] Your original codebase was NOT moved, so your code will compile and run perfectly.")

	if fb := fallbacks(r); fb > 0 {
		fmt.Fprintf(w, "[i] %d references fell back from symlinks (%s).\n", fb, kindCounts(r))
	}

	if !detail {
		return nil
	}

	style := tableStyle(w)
	fmt.Fprintln(w)
	fmt.Fprintln(w, renderTable(style, []string{"Folder", "Files"}, folderRows(r), []columnAlignment{alignLeft, alignRight}))

	if len(r.Failures) > 0 {
		rows := make([][]string, 0, len(r.Failures))
		for _, f := range r.Failures {
			rows = append(rows, []string{f.Record.Source, f.Decision.Folder, f.Err.Error()})
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w, renderTable(style, []string{"File", "Folder", "Error"}, rows, nil))
	}
	return nil
}

// Plan writes one row per planned decision.
func Plan(w io.Writer, entries []organizer.Entry) error {
	rows := make([][]string, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, []string{e.RelPath, e.Decision.Folder, string(e.Decision.Strategy)})
	}
	_, err := fmt.Fprintln(w, renderTable(tableStyle(w), []string{"File", "Folder", "Strategy"}, rows, nil))
	return err
}

func folderRows(r *organizer.Report) [][]string {
	folders := r.Folders()
	rows := make([][]string, 0, len(folders))
	for _, f := range folders {
		rows = append(rows, []string{f, strconv.Itoa(r.ByFolder[f])})
	}
	return rows
}

func fallbacks(r *organizer.Report) int {
	return r.Processed - r.ByKind[materialize.KindSymlink]
}

func kindCounts(r *organizer.Report) string {
	var out string
	for _, k := range materialize.Kinds {
		if n := r.ByKind[k]; n > 0 {
			if out != "" {
				out += ", "
			}
			out += fmt.Sprintf("%d %s", n, k)
		}
	}
	return out
}

func tableStyle(w io.Writer) table.Style {
	if isTerminal(w) {
		return table.StyleRounded
	}
	return table.StyleDefault
}

func isTerminal(w io.Writer) bool {
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	fd := file.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderTable(style table.Style, headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(style)

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

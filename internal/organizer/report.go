package organizer

import (
	"sort"
	"sync"

	"github.com/uco-labs/uco/internal/classify"
	"github.com/uco-labs/uco/internal/materialize"
)

// Outcome is the result of processing one source file.
type Outcome struct {
	Decision classify.Decision
	Record   materialize.Record
	Err      error
}

// Report aggregates the outcomes of a run.
type Report struct {
	// Processed counts files that received a reference.
	Processed int
	Failed    int
	ByFolder  map[string]int
	ByKind    map[materialize.Kind]int
	// Records holds every successful reference, sorted by path.
	Records []materialize.Record
	// Failures holds every file that could not be organized, sorted by source.
	Failures []Outcome

	mu sync.Mutex
}

func newReport() *Report {
	return &Report{
		ByFolder: make(map[string]int),
		ByKind:   make(map[materialize.Kind]int),
	}
}

func (r *Report) add(o Outcome) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if o.Err != nil {
		r.Failed++
		r.Failures = append(r.Failures, o)
		return
	}
	r.Processed++
	r.ByFolder[o.Record.Folder]++
	r.ByKind[o.Record.Kind]++
	r.Records = append(r.Records, o.Record)
}

func (r *Report) finish() {
	sort.Slice(r.Records, func(i, j int) bool { return r.Records[i].Path < r.Records[j].Path })
	sort.Slice(r.Failures, func(i, j int) bool { return r.Failures[i].Record.Source < r.Failures[j].Record.Source })
}

// Folders returns the destination folders in sorted order.
func (r *Report) Folders() []string {
	folders := make([]string, 0, len(r.ByFolder))
	for f := range r.ByFolder {
		folders = append(folders, f)
	}
	sort.Strings(folders)
	return folders
}

package organizer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/gofrs/flock"
	"golang.org/x/sync/errgroup"

	"github.com/uco-labs/uco/internal/branding"
	"github.com/uco-labs/uco/internal/classify"
	"github.com/uco-labs/uco/internal/config"
	"github.com/uco-labs/uco/internal/logging"
	"github.com/uco-labs/uco/internal/materialize"
	"github.com/uco-labs/uco/internal/platform"
	"github.com/uco-labs/uco/internal/walker"
)

var (
	// ErrLocked is returned when another process holds the run lock.
	ErrLocked = errors.New("another organize run holds the lock")

	// ErrUnsafeWorkspace is returned when the workspace is not strictly
	// inside the source root.
	ErrUnsafeWorkspace = errors.New("workspace must be strictly inside the source root")
)

// Options configures an Organizer.
type Options struct {
	Root     string
	Settings config.Settings
	// Jobs bounds concurrent file processing. Values below 1 mean 1.
	Jobs   int
	Logger *slog.Logger
	// Linker overrides the filesystem calls used to create references.
	Linker platform.Linker
}

// Organizer rebuilds one workspace from one source root.
type Organizer struct {
	root      string
	workspace string
	lockPath  string
	settings  config.Settings
	jobs      int
	logger    *slog.Logger
	linker    platform.Linker
	resolver  *classify.Resolver
}

// New validates opts and compiles the routing configuration.
func New(opts Options) (*Organizer, error) {
	root, err := filepath.Abs(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("resolving root %s: %w", opts.Root, err)
	}

	if err := opts.Settings.Check(); err != nil {
		return nil, err
	}

	resolver, err := classify.NewResolver(opts.Settings.Routing)
	if err != nil {
		return nil, err
	}

	workspace := filepath.Join(root, filepath.FromSlash(opts.Settings.WorkspaceDir))
	if rel, err := filepath.Rel(root, workspace); err != nil || rel == "." || !filepath.IsLocal(rel) {
		return nil, fmt.Errorf("%w: %s", ErrUnsafeWorkspace, opts.Settings.WorkspaceDir)
	}

	jobs := opts.Jobs
	if jobs < 1 {
		jobs = 1
	}

	linker := opts.Linker
	if linker == nil {
		linker = platform.OSLinker{}
	}

	return &Organizer{
		root:      root,
		workspace: workspace,
		lockPath:  filepath.Join(root, branding.LockFile()),
		settings:  opts.Settings,
		jobs:      jobs,
		logger:    logging.OrNop(opts.Logger),
		linker:    linker,
		resolver:  resolver,
	}, nil
}

// Root returns the absolute source root.
func (o *Organizer) Root() string { return o.root }

// Workspace returns the absolute workspace path.
func (o *Organizer) Workspace() string { return o.workspace }

// WalkOptions returns the filter used to enumerate source files.
func (o *Organizer) WalkOptions() walker.Options {
	return walker.Options{
		IgnoreFolders: o.settings.IgnoreFolders,
		IgnoreFiles:   o.settings.IgnoreFiles,
		SkipPaths:     []string{o.workspace, o.lockPath},
	}
}

// Run rebuilds the workspace and returns what was created.
func (o *Organizer) Run(ctx context.Context) (*Report, error) {
	lock := flock.New(o.lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquiring lock %s: %w", o.lockPath, err)
	}
	if !locked {
		return nil, fmt.Errorf("%w: %s", ErrLocked, o.lockPath)
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			o.logger.Warn("releasing lock failed", logging.Error(err))
		}
	}()

	if err := o.resetWorkspace(); err != nil {
		return nil, err
	}

	m := materialize.New(o.workspace, materialize.WithLinker(o.linker), materialize.WithLogger(o.logger))
	report := newReport()

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)

	walkErr := walker.Walk(gctx, o.root, o.WalkOptions(), func(path string) error {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			report.add(o.process(m, path))
			return nil
		})
		return nil
	})
	waitErr := g.Wait()

	if walkErr != nil {
		return nil, walkErr
	}
	if waitErr != nil {
		return nil, waitErr
	}

	report.finish()
	o.logger.Info("organize complete",
		slog.Int("processed", report.Processed),
		slog.Int("failed", report.Failed),
		slog.String("workspace", o.workspace),
	)
	return report, nil
}

func (o *Organizer) process(m *materialize.Materializer, path string) Outcome {
	decision := o.resolver.Resolve(path)
	if decision.Scan.Err != nil {
		o.logger.Warn("reading tag failed",
			slog.String("file", path),
			logging.Error(decision.Scan.Err),
		)
	}
	o.logger.Debug("resolved",
		slog.String("file", path),
		slog.String("folder", decision.Folder),
		slog.String("strategy", string(decision.Strategy)),
	)

	rec, err := m.Materialize(path, decision.Folder)
	if err != nil {
		o.logger.Warn("organizing file failed",
			slog.String("file", path),
			slog.String("folder", decision.Folder),
			logging.Error(err),
		)
	}
	return Outcome{Decision: decision, Record: rec, Err: err}
}

// resetWorkspace deletes and recreates the workspace directory.
func (o *Organizer) resetWorkspace() error {
	rel, err := filepath.Rel(o.root, o.workspace)
	if err != nil || rel == "." || !filepath.IsLocal(rel) {
		return fmt.Errorf("%w: %s", ErrUnsafeWorkspace, o.workspace)
	}

	if err := os.RemoveAll(o.workspace); err != nil {
		return fmt.Errorf("clearing workspace %s: %w", o.workspace, err)
	}
	if err := os.MkdirAll(o.workspace, 0755); err != nil {
		return fmt.Errorf("creating workspace %s: %w", o.workspace, err)
	}
	return nil
}

// Entry is one planned decision.
type Entry struct {
	Path     string
	RelPath  string
	Decision classify.Decision
}

// Plan classifies every candidate file without touching the workspace.
func (o *Organizer) Plan(ctx context.Context) ([]Entry, error) {
	var (
		mu      sync.Mutex
		entries []Entry
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.jobs)

	walkErr := walker.Walk(gctx, o.root, o.WalkOptions(), func(path string) error {
		g.Go(func() error {
			decision := o.resolver.Resolve(path)
			rel, err := filepath.Rel(o.root, path)
			if err != nil {
				rel = path
			}
			mu.Lock()
			entries = append(entries, Entry{Path: path, RelPath: filepath.ToSlash(rel), Decision: decision})
			mu.Unlock()
			return nil
		})
		return nil
	})
	waitErr := g.Wait()

	if walkErr != nil {
		return nil, walkErr
	}
	if waitErr != nil {
		return nil, waitErr
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].RelPath < entries[j].RelPath })
	return entries, nil
}

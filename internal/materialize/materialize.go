package materialize

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/uco-labs/uco/internal/logging"
	"github.com/uco-labs/uco/internal/platform"
)

var (
	// ErrUnsafeDestination is returned for folders that would land outside
	// the workspace root.
	ErrUnsafeDestination = errors.New("destination folder escapes the workspace")

	// ErrNoReference is returned when every reference tier failed.
	ErrNoReference = errors.New("no reference could be created")
)

// Kind is the type of reference created.
type Kind string

const (
	KindSymlink  Kind = "symlink"
	KindHardlink Kind = "hardlink"
	KindPointer  Kind = "pointer"
)

// Kinds lists every Kind in fallback order.
var Kinds = []Kind{KindSymlink, KindHardlink, KindPointer}

// Fallback records a tier that failed before a later one succeeded.
type Fallback struct {
	Kind   Kind
	Reason platform.FailureReason
	Err    error
}

// Record describes the reference created for one source file.
type Record struct {
	Source    string
	Folder    string
	Path      string
	Kind      Kind
	Fallbacks []Fallback
}

// Option configures a Materializer.
type Option func(*Materializer)

// WithLinker replaces the filesystem calls used for each tier.
func WithLinker(l platform.Linker) Option {
	return func(m *Materializer) { m.linker = l }
}

// WithLogger sets the logger used for tier fallbacks.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Materializer) { m.logger = logging.OrNop(logger) }
}

// Materializer creates references under a workspace root.
type Materializer struct {
	root   string
	linker platform.Linker
	logger *slog.Logger

	mu      sync.Mutex
	folders map[string]*sync.Mutex
}

// New returns a Materializer writing under root. The root itself must
// already exist; destination folders are created on demand.
func New(root string, opts ...Option) *Materializer {
	m := &Materializer{
		root:    root,
		linker:  platform.OSLinker{},
		logger:  logging.NewNop(),
		folders: make(map[string]*sync.Mutex),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Root returns the workspace root.
func (m *Materializer) Root() string { return m.root }

// Materialize creates one reference to src inside folder. folder may hold
// "/"-separated segments, which become nested directories.
func (m *Materializer) Materialize(src, folder string) (Record, error) {
	rec := Record{Source: src, Folder: folder}

	dir, err := m.folderPath(folder)
	if err != nil {
		return rec, err
	}

	lock := m.folderLock(dir)
	lock.Lock()
	defer lock.Unlock()

	if err := os.MkdirAll(dir, 0755); err != nil {
		return rec, fmt.Errorf("creating folder %s: %w", dir, err)
	}

	name, err := UniqueName(dir, filepath.Base(src))
	if err != nil {
		return rec, err
	}
	link := filepath.Join(dir, name)

	symErr := m.linker.Symlink(src, link)
	if symErr == nil {
		rec.Path, rec.Kind = link, KindSymlink
		return rec, nil
	}
	rec.Fallbacks = append(rec.Fallbacks, m.fallback(KindSymlink, src, symErr))

	// Hard links do not follow a symlinked source, so link its target.
	hardSrc := src
	if resolved, err := platform.ResolvePath(src); err == nil {
		hardSrc = resolved
	}
	hardErr := m.linker.Link(hardSrc, link)
	if hardErr == nil {
		rec.Path, rec.Kind = link, KindHardlink
		return rec, nil
	}
	rec.Fallbacks = append(rec.Fallbacks, m.fallback(KindHardlink, src, hardErr))

	pointer, ptrErr := platform.WritePointer(m.linker, link, src)
	if ptrErr == nil {
		rec.Path, rec.Kind = pointer, KindPointer
		return rec, nil
	}
	rec.Fallbacks = append(rec.Fallbacks, m.fallback(KindPointer, src, ptrErr))

	return rec, fmt.Errorf("%w for %s: %w", ErrNoReference, src, errors.Join(symErr, hardErr, ptrErr))
}

func (m *Materializer) fallback(kind Kind, src string, err error) Fallback {
	reason := platform.Classify(err)
	m.logger.Info("reference tier failed",
		slog.String("tier", string(kind)),
		slog.String("reason", string(reason)),
		slog.String("source", src),
		logging.Error(err),
	)
	return Fallback{Kind: kind, Reason: reason, Err: err}
}

// folderPath validates folder and joins it onto the root.
func (m *Materializer) folderPath(folder string) (string, error) {
	clean := filepath.Clean(filepath.FromSlash(folder))
	if folder == "" || clean == "." || !filepath.IsLocal(clean) {
		return "", fmt.Errorf("%w: %q", ErrUnsafeDestination, folder)
	}
	return filepath.Join(m.root, clean), nil
}

func (m *Materializer) folderLock(dir string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()

	lock, ok := m.folders[dir]
	if !ok {
		lock = &sync.Mutex{}
		m.folders[dir] = lock
	}
	return lock
}

package workspace

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pcj/mobyprogress"
	"github.com/rs/zerolog"
	"go.lsp.dev/uri"

	"github.com/warmthdawn/zenscript-intelli-sense/pkg/env"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/index"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/progress"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/resolver"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/symbol"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/types"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/unit"
	"github.com/warmthdawn/zenscript-intelli-sense/pkg/zsparse"
)

// ErrUnknownDocument is returned for paths the workspace holds no unit for.
var ErrUnknownDocument = errors.New("unknown document")

// Option configures a Workspace.
type Option func(w *Workspace) *Workspace

// WithLogger sets the logger of the workspace and of the components it
// creates.
func WithLogger(logger zerolog.Logger) Option {
	return func(w *Workspace) *Workspace {
		w.logger = logger
		return w
	}
}

// WithProgress sets the output receiving load progress.
func WithProgress(output mobyprogress.Output) Option {
	return func(w *Workspace) *Workspace {
		w.progress = output
		return w
	}
}

// WithParser replaces the parser. It is wrapped in a memo parser.
func WithParser(p zsparse.Parser) Option {
	return func(w *Workspace) *Workspace {
		w.next = p
		return w
	}
}

// Workspace holds the units of one scripts root together with the
// environment built from them.
type Workspace struct {
	cfg      *Config
	logger   zerolog.Logger
	progress mobyprogress.Output
	next     zsparse.Parser

	parser       *zsparse.MemoParser
	declarations *resolver.DeclarationResolver
	types        *types.Model
	env          *env.Environment

	progressMu sync.Mutex

	mu   sync.RWMutex
	docs map[string]*document
}

// New creates an empty workspace for cfg. Call Load to populate it.
func New(cfg *Config, options ...Option) *Workspace {
	w := &Workspace{
		cfg:      cfg,
		logger:   zerolog.Nop(),
		progress: progress.Discard(),
		types:    types.New(),
		docs:     make(map[string]*document),
	}
	for _, opt := range options {
		w = opt(w)
	}
	if w.next == nil {
		w.next = zsparse.NewScriptParser(zsparse.WithLogger(w.logger))
	}
	w.parser = zsparse.NewMemoParser(w.next, w.logger)
	w.declarations = resolver.NewDeclarationResolver(resolver.WithDeclarationLogger(w.logger))
	w.env = env.New(env.WithLogger(w.logger))
	return w
}

// Config returns the workspace configuration.
func (w *Workspace) Config() *Config {
	return w.cfg
}

// Environment returns the environment built from the workspace.
func (w *Workspace) Environment() *env.Environment {
	return w.env
}

// TypeModel returns the type model used for member resolution.
func (w *Workspace) TypeModel() *types.Model {
	return w.types
}

// Paths returns the paths of all units, sorted.
func (w *Workspace) Paths() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	paths := make([]string, 0, len(w.docs))
	for path := range w.docs {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func (w *Workspace) document(path string) *document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.docs[filepath.Clean(path)]
}

// Load discovers, parses and declaration-resolves every unit and then
// builds the environment. Files that cannot be read are logged and
// skipped.
func (w *Workspace) Load(ctx context.Context) error {
	paths, err := Discover(w.cfg)
	if err != nil {
		return fmt.Errorf("discovering units: %w", err)
	}
	progress.WriteDiscoverProgress(w.progress, fmt.Sprintf("found %d units in %s", len(paths), w.cfg.Root))

	docs := make([]*document, len(paths))
	sem := make(chan struct{}, runtime.GOMAXPROCS(0))
	var wg sync.WaitGroup
	var done atomic.Int64

	for i, path := range paths {
		if ctx.Err() != nil {
			break
		}
		wg.Add(1)
		sem <- struct{}{}
		go func(i int, path string) {
			defer wg.Done()
			defer func() { <-sem }()

			u, err := w.loadUnit(path)
			if err != nil {
				w.logger.Warn().Err(err).Str("path", path).Msg("skipping unit")
			} else {
				docs[i] = newDocument(u)
			}
			n := done.Add(1)
			w.writeProgress(func(output mobyprogress.Output) {
				progress.WriteParseProgress(output, int(n), len(paths), false)
			})
		}(i, path)
	}
	wg.Wait()
	if err := ctx.Err(); err != nil {
		return err
	}
	w.writeProgress(func(output mobyprogress.Output) {
		progress.WriteParseProgress(output, len(paths), len(paths), true)
	})

	w.mu.Lock()
	for _, doc := range docs {
		if doc != nil {
			w.docs[doc.unit.Path()] = doc
		}
	}
	unitCount.Set(float64(len(w.docs)))
	w.mu.Unlock()

	return w.reloadEnvironment(ctx)
}

func (w *Workspace) writeProgress(fn func(output mobyprogress.Output)) {
	w.progressMu.Lock()
	defer w.progressMu.Unlock()
	fn(w.progress)
}

func (w *Workspace) loadUnit(path string) (*unit.Unit, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return w.parseUnit(path, string(data)), nil
}

// parseUnit parses source into a new unit and runs the declaration pass.
// Units are never re-parsed in place: symbols of an environment snapshot
// keep referring to the unit they were declared in.
func (w *Workspace) parseUnit(path, source string) *unit.Unit {
	u := unit.New(w.cfg.UnitRoot(path), path)

	start := time.Now()
	u.Reset(w.parser.Parse(path, source))
	observeSince(parseDuration, start)

	start = time.Now()
	w.declarations.Resolve(u)
	observeSince(declarationDuration, start)
	return u
}

// reloadEnvironment rebuilds the environment from every unit and the
// configured index files.
func (w *Workspace) reloadEnvironment(ctx context.Context) error {
	paths := w.Paths()
	reg, err := w.env.Reload(ctx, func(ctx context.Context, b *env.Builder) error {
		for _, path := range paths {
			doc := w.document(path)
			if doc == nil {
				continue
			}
			doc.mu.RLock()
			b.AddUnit(doc.unit)
			doc.mu.RUnlock()
		}
		for _, filename := range w.cfg.IndexFiles {
			spec, err := index.ReadEnvironmentSpec(filename)
			if err != nil {
				return fmt.Errorf("index %s: %w", filename, err)
			}
			b.AddIndex(spec)
		}
		return nil
	})
	if err != nil {
		environmentReloads.WithLabelValues("error").Inc()
		return err
	}
	environmentReloads.WithLabelValues("ok").Inc()
	w.writeProgress(func(output mobyprogress.Output) {
		progress.WriteEnvironmentProgress(output, fmt.Sprintf("%d classes, %d globals", len(reg.Classes()), len(reg.Globals())))
	})
	return nil
}

// Read calls fn with the unit at path under its read lock.
func (w *Workspace) Read(path string, fn func(u *unit.Unit) error) error {
	doc := w.document(path)
	if doc == nil {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, path)
	}
	doc.mu.RLock()
	defer doc.mu.RUnlock()
	return fn(doc.unit)
}

// Write calls fn with the unit at path under its write lock. The unit may
// be shared with the current environment snapshot; fn must not re-parse
// it, use Update for that.
func (w *Workspace) Write(path string, fn func(u *unit.Unit) error) error {
	doc := w.document(path)
	if doc == nil {
		return fmt.Errorf("%w: %s", ErrUnknownDocument, path)
	}
	doc.mu.Lock()
	defer doc.mu.Unlock()
	return fn(doc.unit)
}

// Update replaces the source of the unit at path, creating the unit when
// the workspace does not hold it yet. The environment is rebuilt when the
// unit exported something before or after the change.
func (w *Workspace) Update(ctx context.Context, path, source string) error {
	path = filepath.Clean(path)
	if !unit.IsUnitFile(path) {
		return fmt.Errorf("not a unit file: %s", path)
	}

	next := w.parseUnit(path, source)
	reload := contributes(next)

	w.mu.Lock()
	doc, ok := w.docs[path]
	if !ok {
		w.docs[path] = newDocument(next)
		unitCount.Set(float64(len(w.docs)))
	}
	w.mu.Unlock()

	if ok {
		doc.mu.Lock()
		reload = reload || contributes(doc.unit)
		doc.unit = next
		doc.mu.Unlock()
	}

	w.logger.Debug().Str("path", path).Bool("reload", reload).Msg("document updated")
	if !reload {
		return nil
	}
	return w.reloadEnvironment(ctx)
}

// Remove drops the unit at path.
func (w *Workspace) Remove(ctx context.Context, path string) error {
	path = filepath.Clean(path)
	w.mu.Lock()
	doc, ok := w.docs[path]
	delete(w.docs, path)
	unitCount.Set(float64(len(w.docs)))
	w.mu.Unlock()
	if !ok {
		return nil
	}
	w.parser.Forget(path)

	doc.mu.RLock()
	reload := contributes(doc.unit)
	doc.mu.RUnlock()
	w.logger.Debug().Str("path", path).Bool("reload", reload).Msg("document removed")
	if !reload {
		return nil
	}
	return w.reloadEnvironment(ctx)
}

// ResolveAt resolves the reference at a byte offset of the unit at path
// against the current environment snapshot.
func (w *Workspace) ResolveAt(path string, offset int) ([]symbol.Symbol, error) {
	var result []symbol.Symbol
	err := w.Read(path, func(u *unit.Unit) error {
		start := time.Now()
		defer observeSince(resolveDuration, start)
		r := resolver.NewSymbolResolver(w.env.Snapshot(), w.types, resolver.WithLogger(w.logger))
		result = r.ResolveOffset(offset, u)
		return nil
	})
	return result, err
}

// ResolveURI is ResolveAt for a file URI.
func (w *Workspace) ResolveURI(documentURI string, offset int) ([]symbol.Symbol, error) {
	path, err := URIToPath(documentURI)
	if err != nil {
		return nil, err
	}
	return w.ResolveAt(path, offset)
}

// URIToPath converts a file URI to a local path.
func URIToPath(documentURI string) (string, error) {
	u, err := uri.Parse(documentURI)
	if err != nil {
		return "", fmt.Errorf("parse uri %q: %w", documentURI, err)
	}
	if !strings.HasPrefix(string(u), uri.FileScheme+"://") {
		return "", fmt.Errorf("not a file uri: %s", documentURI)
	}
	return filepath.Clean(u.Filename()), nil
}

// PathToURI converts a local path to a file URI.
func PathToURI(path string) string {
	return string(uri.File(path))
}

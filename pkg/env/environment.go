package env

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// Option configures an Environment.
type Option func(e *Environment) *Environment

// WithLogger sets the logger of an Environment and of the builders it
// creates.
func WithLogger(logger zerolog.Logger) Option {
	return func(e *Environment) *Environment {
		e.logger = logger
		return e
	}
}

// BuildFunc populates a fresh builder during a reload.
type BuildFunc func(ctx context.Context, b *Builder) error

// Environment publishes the current Registry. Readers take a snapshot and
// keep using it for the duration of a request; reloads build a complete
// registry off to the side and swap it in atomically.
type Environment struct {
	logger  zerolog.Logger
	mu      sync.Mutex
	current atomic.Pointer[Registry]
}

// New creates an Environment holding an empty registry.
func New(options ...Option) *Environment {
	e := &Environment{logger: zerolog.Nop()}
	for _, opt := range options {
		e = opt(e)
	}
	e.current.Store(newRegistry())
	return e
}

// Snapshot returns the current registry. It is never nil.
func (e *Environment) Snapshot() *Registry {
	return e.current.Load()
}

// Swap installs r and returns the registry it replaces.
func (e *Environment) Swap(r *Registry) *Registry {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.current.Swap(r)
}

// Reload builds a new registry with fn and publishes it. Reloads are
// serialized. When fn fails the current registry stays in place.
func (e *Environment) Reload(ctx context.Context, fn BuildFunc) (*Registry, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b := NewBuilder(WithBuilderLogger(e.logger))
	if err := fn(ctx, b); err != nil {
		return nil, fmt.Errorf("building environment: %w", err)
	}
	r := b.Build()
	e.current.Store(r)

	e.logger.Debug().Int("classes", len(r.Classes())).Msg("environment reloaded")
	return r, nil
}

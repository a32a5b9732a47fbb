package pathfx

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/pathfx/internal/cache"
	"github.com/gogpu/pathfx/internal/parallel"
)

// measureKey identifies a measure: paths are immutable, so the construction
// token plus the tolerance determines the arc-length table.
type measureKey struct {
	path      uint64
	tolerance float64
}

// Engine runs effects with measurement caching. Re-applying effects to the
// same path every frame reuses the arc-length table built on the first
// frame.
//
// An Engine is safe for concurrent use. Close releases its workers.
type Engine struct {
	tolerance float64
	measures  *cache.Cache[measureKey, *Measure]

	poolOnce sync.Once
	pool     *parallel.WorkerPool
	workers  int
}

// NewEngine creates an engine configured by opts.
func NewEngine(opts ...EngineOption) *Engine {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		tolerance: o.tolerance,
		measures:  cache.New[measureKey, *Measure](o.cacheSize),
		workers:   o.workers,
	}
}

// Tolerance returns the flattening tolerance of the engine.
func (e *Engine) Tolerance() float64 { return e.tolerance }

// Measure returns the measure of p, building it on first use.
func (e *Engine) Measure(p *Path) (*Measure, error) {
	if p.IsEmpty() {
		return nil, fmt.Errorf("pathfx: measure: %w", ErrEmptyPath)
	}
	key := measureKey{path: p.id, tolerance: e.tolerance}
	if m, ok := e.measures.Get(key); ok {
		Logger().Debug("pathfx: measure cache hit", "path", p.id)
		return m, nil
	}
	Logger().Debug("pathfx: measure cache miss", "path", p.id)

	// Built outside the cache lock so MeasureAll can flatten in parallel.
	// Two goroutines racing on one path both build it; the tables are equal.
	m, err := NewMeasure(p, e.tolerance)
	if err != nil {
		return nil, err
	}
	e.measures.Set(key, m)
	return m, nil
}

// MeasureAll measures independent paths in parallel. The result is in input
// order. Paths that fail leave a nil entry and contribute to the joined
// error. Work not yet started when ctx is cancelled is skipped.
func (e *Engine) MeasureAll(ctx context.Context, paths []*Path) ([]*Measure, error) {
	out := make([]*Measure, len(paths))
	errs := make([]error, len(paths))

	work := make([]func(), len(paths))
	for i, p := range paths {
		work[i] = func() {
			m, err := e.Measure(p)
			if err != nil {
				errs[i] = fmt.Errorf("path %d: %w", i, err)
				return
			}
			out[i] = m
		}
	}
	err := e.workerPool().ExecuteAll(ctx, work)
	if errors.Is(err, parallel.ErrClosed) {
		// Closed engine: measure on the calling goroutine.
		err = nil
		for _, w := range work {
			if err = ctx.Err(); err != nil {
				break
			}
			w()
		}
	}
	return out, errors.Join(append(errs, err)...)
}

// workerPool returns the engine's pool. It is nil when the engine was
// closed before the pool was first needed.
func (e *Engine) workerPool() *parallel.WorkerPool {
	e.poolOnce.Do(func() {
		e.pool = parallel.NewWorkerPool(e.workers)
	})
	return e.pool
}

// Apply runs effect on p using the engine's measure cache. Only p itself
// is cached; the paths a Chain passes between its effects are new every
// call and are measured without touching the cache.
func (e *Engine) Apply(effect Effect, p *Path) (Output, error) {
	return applyEffect(effect, p, func(q *Path) (*Measure, error) {
		if q == p {
			return e.Measure(q)
		}
		return NewMeasure(q, e.tolerance)
	})
}

// ApplyPath is like the package-level ApplyPath but uses the engine cache.
func (e *Engine) ApplyPath(effect Effect, p *Path) (*Path, error) {
	if effect != nil && effect.stamps() {
		return nil, fmt.Errorf("pathfx: apply %T: %w", effect, ErrIncompatibleChain)
	}
	out, err := e.Apply(effect, p)
	return out.Path, err
}

// ApplyStamps is like the package-level ApplyStamps but uses the engine cache.
func (e *Engine) ApplyStamps(effect Effect, p *Path) ([]StampInstance, error) {
	out, err := e.Apply(effect, p)
	return out.Stamps, err
}

// CacheStats describes the measure cache of an Engine.
type CacheStats struct {
	Len      int
	Capacity int
	Hits     uint64
	Misses   uint64
}

// CacheStats reports the measure cache usage.
func (e *Engine) CacheStats() CacheStats {
	s := e.measures.Stats()
	return CacheStats{Len: s.Len, Capacity: s.Capacity, Hits: s.Hits, Misses: s.Misses}
}

// Close stops the worker pool. The engine stays usable afterwards;
// MeasureAll then runs on the calling goroutine.
func (e *Engine) Close() {
	e.poolOnce.Do(func() {})
	if e.pool != nil {
		e.pool.Close()
	}
}

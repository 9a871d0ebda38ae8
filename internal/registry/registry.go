package registry

import (
	"context"
	"sync"
	"time"

	"dfsummary/domain/core"
	"dfsummary/domain/dataset"
	"dfsummary/internal"
	"dfsummary/internal/errors"
	"dfsummary/ports"

	"golang.org/x/sync/semaphore"
	"golang.org/x/sync/singleflight"
)

// Registry resolves dataset names to loaded datasets. Each source is loaded
// at most once; concurrent first requests share one load.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	sources map[string]ports.DatasetSource
	cache   map[string]*dataset.Dataset

	group  singleflight.Group
	logger *internal.Logger
}

var _ ports.DatasetRegistryPort = (*Registry)(nil)

// New creates an empty registry
func New(logger *internal.Logger) *Registry {
	return &Registry{
		sources: make(map[string]ports.DatasetSource),
		cache:   make(map[string]*dataset.Dataset),
		logger:  logger,
	}
}

// Register adds sources. A later source with a taken name replaces the
// earlier one and drops its cached dataset.
func (r *Registry) Register(sources ...ports.DatasetSource) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, s := range sources {
		name := s.Name()
		if _, exists := r.sources[name]; exists {
			r.logger.Warn("[Registry] dataset %q registered twice, keeping the latest", name)
			delete(r.cache, name)
		} else {
			r.order = append(r.order, name)
		}
		r.sources[name] = s
	}
}

// Names returns dataset names in registration order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Get returns the named dataset, loading it on first use
func (r *Registry) Get(ctx context.Context, name string) (*dataset.Dataset, error) {
	r.mu.RLock()
	ds, cached := r.cache[name]
	src, known := r.sources[name]
	r.mu.RUnlock()

	if cached {
		return ds, nil
	}
	if !known {
		return nil, core.NewNotFoundError(core.ErrDatasetNotFound, name)
	}

	// the load outlives any single caller; each caller waits on its own ctx
	loadCtx := context.WithoutCancel(ctx)
	ch := r.group.DoChan(name, func() (interface{}, error) {
		start := time.Now()
		loaded, err := src.Load(loadCtx)
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		// a re-registration during the load wins
		if r.sources[name] == src {
			r.cache[name] = loaded
		}
		r.mu.Unlock()
		r.logger.Info("[Registry] loaded %q (%d rows, %d columns) in %s",
			name, loaded.RowCount(), len(loaded.Columns), time.Since(start).Round(time.Millisecond))
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, errors.SourceError(name, res.Err)
		}
		if res.Shared {
			r.logger.Trace("[Registry] shared load of %q", name)
		}
		return res.Val.(*dataset.Dataset), nil
	}
}

// Preload loads every registered dataset with at most parallel loads in
// flight. It returns the first error after all loads finish.
func (r *Registry) Preload(ctx context.Context, parallel int64) error {
	if parallel < 1 {
		parallel = 1
	}
	sem := semaphore.NewWeighted(parallel)

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		firstErr error
	)
	for _, name := range r.Names() {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return err
		}
		wg.Add(1)
		go func(name string) {
			defer wg.Done()
			defer sem.Release(1)
			if _, err := r.Get(ctx, name); err != nil {
				r.logger.Error("[Registry] preload failed: %v", err)
				errMu.Lock()
				if firstErr == nil {
					firstErr = err
				}
				errMu.Unlock()
			}
		}(name)
	}
	wg.Wait()
	return firstErr
}

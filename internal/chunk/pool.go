package chunk

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sync"

	"github.com/alitto/pond/v2"
	"github.com/sirupsen/logrus"

	"github.com/goldeneas/vox-sub000/internal/logging"
	"github.com/goldeneas/vox-sub000/internal/meshing"
)

// RemeshPool runs UpdateFaces for many chunks in parallel. Each chunk is
// handled by exactly one worker per RemeshAll call.
type RemeshPool struct {
	pool   pond.Pool
	mesher meshing.Mesher
	cache  *MeshCache
	log    logrus.FieldLogger

	mu     sync.Mutex
	hits   int
	misses int
}

// PoolOption configures a RemeshPool.
type PoolOption func(*RemeshPool)

// WithCache routes every remesh through mc.
func WithCache(mc *MeshCache) PoolOption {
	return func(p *RemeshPool) { p.cache = mc }
}

// WithPoolLogger sets the pool logger.
func WithPoolLogger(l logrus.FieldLogger) PoolOption {
	return func(p *RemeshPool) {
		if l != nil {
			p.log = l
		}
	}
}

// NewRemeshPool creates a pool with the given number of workers. Zero or
// less means one per CPU.
func NewRemeshPool(workers int, m meshing.Mesher, opts ...PoolOption) *RemeshPool {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	p := &RemeshPool{
		pool:   pond.NewPool(workers),
		mesher: m,
		log:    logging.Discard(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// RemeshAll rebuilds every dirty chunk and returns how many were rebuilt.
// Chunks not yet started when ctx is cancelled are skipped. All errors are
// joined.
func (p *RemeshPool) RemeshAll(ctx context.Context, chunks []*Chunk) (int, error) {
	var (
		mu      sync.Mutex
		errs    []error
		rebuilt int
	)
	tasks := make([]pond.Task, 0, len(chunks))
	for _, c := range chunks {
		if c == nil || !c.IsDirty() {
			continue
		}
		tasks = append(tasks, p.pool.Submit(func() {
			if err := ctx.Err(); err != nil {
				mu.Lock()
				errs = append(errs, fmt.Errorf("remesh %s: %w", c.Coord, err))
				mu.Unlock()
				return
			}
			err := p.remesh(c)
			mu.Lock()
			if err != nil {
				errs = append(errs, err)
			} else {
				rebuilt++
			}
			mu.Unlock()
		}))
	}
	for _, t := range tasks {
		_ = t.Wait()
	}

	p.log.WithFields(logrus.Fields{
		"submitted": len(tasks),
		"rebuilt":   rebuilt,
		"failed":    len(errs),
	}).Debug("remesh batch done")
	return rebuilt, errors.Join(errs...)
}

func (p *RemeshPool) remesh(c *Chunk) error {
	if p.cache == nil {
		return c.UpdateFaces(p.mesher)
	}
	hit, err := p.cache.UpdateFaces(c, p.mesher)
	if err != nil {
		return err
	}
	p.mu.Lock()
	if hit {
		p.hits++
	} else {
		p.misses++
	}
	p.mu.Unlock()
	return nil
}

// CacheStats returns cache hits and misses seen by this pool.
func (p *RemeshPool) CacheStats() (hits, misses int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.hits, p.misses
}

// Shutdown waits for running tasks and stops the workers.
func (p *RemeshPool) Shutdown() {
	p.pool.StopAndWait()
}

package chunk

import (
	"fmt"

	"github.com/dgraph-io/ristretto/v2"

	"github.com/goldeneas/vox-sub000/internal/draw"
	"github.com/goldeneas/vox-sub000/internal/meshing"
)

// MeshCache remembers compiled meshes by grid digest so byte-identical
// chunks (flat terrain, empty sky chunks) are compiled once. A cache must
// only be shared by chunks that use the same mesher and material resolver.
type MeshCache struct {
	cache *ristretto.Cache[string, *compiled]
}

type compiled struct {
	quads []meshing.Quad
	out   draw.Output
}

// NewMeshCache creates a cache bounded by maxCost, counted in instances
// plus commands.
func NewMeshCache(maxCost int64) (*MeshCache, error) {
	if maxCost <= 0 {
		maxCost = 1 << 20
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, *compiled]{
		NumCounters: maxCost * 10,
		MaxCost:     maxCost,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("mesh cache: %w", err)
	}
	return &MeshCache{cache: c}, nil
}

// UpdateFaces is Chunk.UpdateFaces with a cache lookup in front. It reports
// whether the result came from the cache. Cached buffers are shared
// read-only between chunks.
func (mc *MeshCache) UpdateFaces(c *Chunk, m meshing.Mesher) (bool, error) {
	d := c.grid.Digest()
	key := string(d[:])
	if hit, ok := mc.cache.Get(key); ok {
		c.install(hit.quads, hit.out)
		return true, nil
	}

	if err := c.UpdateFaces(m); err != nil {
		return false, err
	}
	cost := int64(len(c.draws.Instances) + len(c.draws.Commands) + 1)
	mc.cache.Set(key, &compiled{quads: c.quads, out: c.draws}, cost)
	mc.cache.Wait()
	return false, nil
}

// Wait blocks until pending cache writes are visible.
func (mc *MeshCache) Wait() {
	mc.cache.Wait()
}

func (mc *MeshCache) Close() {
	mc.cache.Close()
}

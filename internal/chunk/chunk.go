package chunk

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/goldeneas/vox-sub000/internal/draw"
	"github.com/goldeneas/vox-sub000/internal/logging"
	"github.com/goldeneas/vox-sub000/internal/mesh"
	"github.com/goldeneas/vox-sub000/internal/meshing"
	"github.com/goldeneas/vox-sub000/internal/profiling"
	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
)

// Coord identifies a chunk in chunk units.
type Coord struct {
	X, Y, Z int
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d,%d", c.X, c.Y, c.Z)
}

// Chunk owns one voxel grid and the draw data compiled from it. A chunk
// must not be mutated while it is being remeshed.
type Chunk struct {
	Coord Coord

	grid     *world.Grid
	registry *voxel.Registry
	air      voxel.ID
	resolver meshing.MaterialResolver
	log      logrus.FieldLogger

	quads []meshing.Quad
	draws draw.Output
	dirty bool
}

// Option configures a Chunk.
type Option func(*Chunk)

// WithLogger sets the logger used for remesh diagnostics.
func WithLogger(l logrus.FieldLogger) Option {
	return func(c *Chunk) {
		if l != nil {
			c.log = l
		}
	}
}

// WithMaterials sets the material resolver applied while decoding faces.
func WithMaterials(r meshing.MaterialResolver) Option {
	return func(c *Chunk) {
		if r != nil {
			c.resolver = r
		}
	}
}

// WithGrid replaces the empty grid, e.g. with one loaded from a snapshot.
func WithGrid(g *world.Grid) Option {
	return func(c *Chunk) {
		if g != nil {
			c.grid = g
		}
	}
}

// New creates a chunk filled with air. reg must have air registered.
func New(coord Coord, reg *voxel.Registry, opts ...Option) (*Chunk, error) {
	air, ok := reg.ID(voxel.Air)
	if !ok {
		return nil, fmt.Errorf("new chunk %s: air: %w", coord, voxel.ErrUnknownVoxelType)
	}
	c := &Chunk{
		Coord:    coord,
		registry: reg,
		air:      air,
		resolver: meshing.ConstantMaterial(0),
		log:      logging.Discard(),
		dirty:    true,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.grid == nil {
		c.grid = world.NewGrid(air)
	}
	c.log = c.log.WithField("chunk", coord.String())
	return c, nil
}

// SetVoxelTypeAt writes t at p.
func (c *Chunk) SetVoxelTypeAt(p world.Position, t voxel.Type) error {
	id, ok := c.registry.ID(t)
	if !ok {
		return fmt.Errorf("set %s at %s: %w", t, p, voxel.ErrUnknownVoxelType)
	}
	if c.grid.Set(p, id) {
		c.dirty = true
	}
	return nil
}

// SetVoxel validates raw coordinates and writes t there.
func (c *Chunk) SetVoxel(x, y, z int, t voxel.Type) error {
	p, err := world.NewPosition(x, y, z)
	if err != nil {
		return fmt.Errorf("set %s: %w", t, err)
	}
	return c.SetVoxelTypeAt(p, t)
}

// VoxelAt returns the type stored at p. It reports false when the stored id
// is no longer registered.
func (c *Chunk) VoxelAt(p world.Position) (voxel.Type, bool) {
	return c.registry.Type(c.grid.Get(p))
}

// Grid exposes the voxel grid to meshers and snapshot code. Callers must
// go through SetVoxelTypeAt to mutate it.
func (c *Chunk) Grid() *world.Grid {
	return c.grid
}

// IsDirty reports whether the grid changed since the last UpdateFaces.
func (c *Chunk) IsDirty() bool {
	return c.dirty
}

// UpdateFaces discards the previous mesh and rebuilds quads and draw
// commands from the current grid.
func (c *Chunk) UpdateFaces(m meshing.Mesher) error {
	defer profiling.Track("chunk.UpdateFaces")()
	start := time.Now()

	c.quads = nil
	c.draws = draw.Output{}

	stop := profiling.Track("meshing.Mesh")
	lists := m.Mesh(c.grid)
	stop()

	stop = profiling.Track("meshing.Decode")
	faces := meshing.Decode(&lists, c.resolver)
	stop()

	stop = profiling.Track("meshing.Merge")
	quads := meshing.Merge(faces)
	stop()

	stop = profiling.Track("draw.Compile")
	out := draw.Compile(quads)
	stop()

	if err := out.Validate(); err != nil {
		return fmt.Errorf("update faces %s: %w", c.Coord, err)
	}
	c.install(quads, out)

	c.log.WithFields(logrus.Fields{
		"faces":   len(faces),
		"groups":  len(quads),
		"elapsed": time.Since(start),
	}).Debug("chunk remeshed")
	return nil
}

func (c *Chunk) install(quads []meshing.Quad, out draw.Output) {
	c.quads = quads
	c.draws = out
	c.dirty = false
}

// Quads returns the merged groups of the last UpdateFaces.
func (c *Chunk) Quads() []meshing.Quad {
	return c.quads
}

// DrawList returns the instance and command buffers of the last UpdateFaces.
func (c *Chunk) DrawList() draw.Output {
	return c.draws
}

// Mesh returns the chunk as a drawable mesh.
func (c *Chunk) Mesh() mesh.Chunk {
	return mesh.NewChunk(c.quads, c.draws)
}

// DefaultMesher returns the greedy mesher configured with reg's air id.
func DefaultMesher(reg *voxel.Registry) meshing.GreedyMesher {
	return meshing.GreedyMesher{Air: reg.MustID(voxel.Air)}
}

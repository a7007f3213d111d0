// Command meshdump generates or loads chunks, compiles them to indirect
// draw lists and reports what was produced.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"

	"github.com/sirupsen/logrus"

	"github.com/goldeneas/vox-sub000/internal/chunk"
	"github.com/goldeneas/vox-sub000/internal/config"
	"github.com/goldeneas/vox-sub000/internal/logging"
	"github.com/goldeneas/vox-sub000/internal/preview"
	"github.com/goldeneas/vox-sub000/internal/profiling"
	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
	"github.com/goldeneas/vox-sub000/internal/worldgen"
)

func main() {
	var (
		cfgPath  = flag.String("config", "", "YAML config file (optional)")
		seed     = flag.Int64("seed", 0, "override worldgen seed")
		extent   = flag.Int("chunks", 1, "generate an N x 1 x N block of chunks")
		loadPath = flag.String("load", "", "mesh a grid snapshot instead of generating")
		snapPath = flag.String("snapshot", "", "write the first chunk's grid snapshot here")
		pngPath  = flag.String("png", "", "write a preview sheet of the first chunk here")
		caves    = flag.Bool("caves", true, "carve caves")
		verbose  = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(2)
		}
	}
	if *seed != 0 {
		cfg.Worldgen.Seed = *seed
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	log := logging.New(cfg.LogOptions())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, cfg, log, runOptions{
		extent:   *extent,
		caves:    *caves,
		loadPath: *loadPath,
		snapPath: *snapPath,
		pngPath:  *pngPath,
	}); err != nil {
		log.WithError(err).Error("meshdump failed")
		os.Exit(1)
	}
}

type runOptions struct {
	extent   int
	caves    bool
	loadPath string
	snapPath string
	pngPath  string
}

func run(ctx context.Context, cfg config.Config, log *logrus.Logger, opts runOptions) error {
	reg, err := cfg.NewRegistry(voxel.WithLogger(log))
	if err != nil {
		return err
	}
	materials, err := cfg.MaterialResolver(reg)
	if err != nil {
		return err
	}

	chunks, err := buildChunks(cfg, reg, log, opts, chunk.WithMaterials(materials), chunk.WithLogger(log))
	if err != nil {
		return err
	}

	cache, err := chunk.NewMeshCache(cfg.Remesh.CacheMaxCost)
	if err != nil {
		return err
	}
	defer cache.Close()
	pool := chunk.NewRemeshPool(cfg.Remesh.Workers, chunk.DefaultMesher(reg), chunk.WithCache(cache), chunk.WithPoolLogger(log))
	defer pool.Shutdown()

	n, err := pool.RemeshAll(ctx, chunks)
	if err != nil {
		return err
	}
	hits, misses := pool.CacheStats()
	log.WithFields(logrus.Fields{
		"chunks":       len(chunks),
		"rebuilt":      n,
		"cache_hits":   hits,
		"cache_misses": misses,
	}).Info("remesh complete")

	for _, c := range chunks {
		out := c.DrawList()
		fmt.Printf("chunk %-8s groups=%-5d instances=%-6d instance_bytes=%-7d indirect_bytes=%d\n",
			c.Coord, len(c.Quads()), out.TotalInstances(), len(out.InstanceBytes()), len(out.IndirectBytes()))
	}
	fmt.Println("stages:", profiling.TopN(6))

	first := chunks[0]
	if opts.snapPath != "" {
		if err := first.Grid().SaveSnapshot(opts.snapPath); err != nil {
			return err
		}
		log.WithField("path", opts.snapPath).Info("snapshot written")
	}
	if opts.pngPath != "" {
		if err := preview.WriteFile(opts.pngPath, first.Quads(), first.DrawList(), preview.Options{CellPixels: 4, Outline: true}); err != nil {
			return err
		}
		log.WithField("path", opts.pngPath).Info("preview written")
	}
	return nil
}

func buildChunks(cfg config.Config, reg *voxel.Registry, log *logrus.Logger, opts runOptions, chunkOpts ...chunk.Option) ([]*chunk.Chunk, error) {
	if opts.loadPath != "" {
		g, err := world.LoadSnapshot(opts.loadPath)
		if err != nil {
			return nil, err
		}
		c, err := chunk.New(chunk.Coord{}, reg, append(chunkOpts, chunk.WithGrid(g))...)
		if err != nil {
			return nil, err
		}
		log.WithField("path", opts.loadPath).Info("snapshot loaded")
		return []*chunk.Chunk{c}, nil
	}

	gen := worldgen.New(worldgen.Options{
		Seed:       cfg.Worldgen.Seed,
		BaseHeight: cfg.Worldgen.BaseHeight,
		Amplitude:  cfg.Worldgen.Amplitude,
		SeaLevel:   cfg.Worldgen.SeaLevel,
		Caves:      opts.caves,
	})
	extent := max(opts.extent, 1)
	chunks := make([]*chunk.Chunk, 0, extent*extent)
	for x := 0; x < extent; x++ {
		for z := 0; z < extent; z++ {
			c, err := chunk.New(chunk.Coord{X: x, Z: z}, reg, chunkOpts...)
			if err != nil {
				return nil, err
			}
			if err := gen.Fill(c); err != nil {
				return nil, err
			}
			chunks = append(chunks, c)
		}
	}
	log.WithFields(logrus.Fields{
		"seed":   cfg.Worldgen.Seed,
		"chunks": len(chunks),
	}).Info("terrain generated")
	return chunks, nil
}

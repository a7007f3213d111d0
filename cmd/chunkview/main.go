// Command chunkview opens a window and draws one generated chunk through the
// indirect draw path. Drag to orbit and scroll to zoom. R reseeds, F toggles
// wireframe, X digs the voxel under the view center and P places dirt.
package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/sirupsen/logrus"

	"github.com/goldeneas/vox-sub000/internal/camera"
	"github.com/goldeneas/vox-sub000/internal/chunk"
	"github.com/goldeneas/vox-sub000/internal/config"
	"github.com/goldeneas/vox-sub000/internal/gpu"
	"github.com/goldeneas/vox-sub000/internal/logging"
	"github.com/goldeneas/vox-sub000/internal/meshing"
	"github.com/goldeneas/vox-sub000/internal/profiling"
	"github.com/goldeneas/vox-sub000/internal/voxel"
	"github.com/goldeneas/vox-sub000/internal/world"
	"github.com/goldeneas/vox-sub000/internal/worldgen"
)

const (
	windowWidth  = 900
	windowHeight = 600
)

func init() {
	runtime.LockOSThread()
}

func main() {
	cfgPath := flag.String("config", "", "YAML config file (optional)")
	flag.Parse()

	cfg := config.Default()
	if *cfgPath != "" {
		var err error
		if cfg, err = config.Load(*cfgPath); err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(2)
		}
	}
	log := logging.New(cfg.LogOptions())

	if err := glfw.Init(); err != nil {
		log.WithError(err).Fatal("glfw init")
	}
	defer glfw.Terminate()

	window, err := setupWindow()
	if err != nil {
		log.WithError(err).Fatal("create window")
	}

	v, err := newViewer(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("viewer setup")
	}
	defer v.renderer.Dispose()

	setupInput(window, v)
	v.loop(window)
}

func setupWindow() (*glfw.Window, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, 4)
	glfw.WindowHint(glfw.ContextVersionMinor, 1)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(windowWidth, windowHeight, "chunkview", nil, nil)
	if err != nil {
		return nil, err
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		return nil, err
	}
	glfw.SwapInterval(1)

	gl.Enable(gl.DEPTH_TEST)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)
	gl.ClearColor(0.53, 0.70, 0.92, 1)
	return window, nil
}

type viewer struct {
	cfg      config.Config
	log      logrus.FieldLogger
	mesher   meshing.Mesher
	chunk    *chunk.Chunk
	renderer *gpu.ChunkRenderer
	cam      *camera.Orbit

	wireframe bool
	dragging  bool
	lastX     float64
	lastY     float64
}

func newViewer(cfg config.Config, log *logrus.Logger) (*viewer, error) {
	reg, err := cfg.NewRegistry(voxel.WithLogger(log))
	if err != nil {
		return nil, err
	}
	materials, err := cfg.MaterialResolver(reg)
	if err != nil {
		return nil, err
	}
	c, err := chunk.New(chunk.Coord{}, reg, chunk.WithMaterials(materials), chunk.WithLogger(log))
	if err != nil {
		return nil, err
	}
	r, err := gpu.NewChunkRenderer()
	if err != nil {
		return nil, err
	}
	v := &viewer{
		cfg:      cfg,
		log:      log,
		mesher:   chunk.DefaultMesher(reg),
		chunk:    c,
		renderer: r,
		cam:      camera.NewOrbit(windowWidth, windowHeight, world.ChunkSize),
	}
	if err := v.regenerate(); err != nil {
		r.Dispose()
		return nil, err
	}
	return v, nil
}

// regenerate refills the chunk from the current seed and re-uploads it.
func (v *viewer) regenerate() error {
	start := time.Now()
	gen := worldgen.New(worldgen.Options{
		Seed:       v.cfg.Worldgen.Seed,
		BaseHeight: v.cfg.Worldgen.BaseHeight,
		Amplitude:  v.cfg.Worldgen.Amplitude,
		SeaLevel:   v.cfg.Worldgen.SeaLevel,
		Caves:      true,
	})
	if err := gen.Fill(v.chunk); err != nil {
		return err
	}
	if err := v.chunk.UpdateFaces(v.mesher); err != nil {
		return err
	}
	v.renderer.Upload(v.chunk.Mesh())

	v.log.WithFields(logrus.Fields{
		"seed":      v.cfg.Worldgen.Seed,
		"groups":    len(v.chunk.Quads()),
		"instances": v.chunk.DrawList().TotalInstances(),
		"elapsed":   time.Since(start),
	}).Info("chunk uploaded")
	return nil
}

func setupInput(window *glfw.Window, v *viewer) {
	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		if button == glfw.MouseButtonLeft {
			v.dragging = action == glfw.Press
			v.lastX, v.lastY = w.GetCursorPos()
		}
	})
	window.SetCursorPosCallback(func(w *glfw.Window, x, y float64) {
		if !v.dragging {
			return
		}
		v.cam.Rotate(float32(x-v.lastX)*0.01, float32(y-v.lastY)*0.01)
		v.lastX, v.lastY = x, y
	})
	window.SetScrollCallback(func(w *glfw.Window, xoff, yoff float64) {
		v.cam.Zoom(1 - float32(yoff)*0.1)
	})
	window.SetFramebufferSizeCallback(func(w *glfw.Window, width, height int) {
		gl.Viewport(0, 0, int32(width), int32(height))
		v.cam.SetViewport(width, height)
	})
	window.SetKeyCallback(func(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		if action != glfw.Press {
			return
		}
		switch key {
		case glfw.KeyEscape:
			w.SetShouldClose(true)
		case glfw.KeyF:
			v.wireframe = !v.wireframe
		case glfw.KeyX:
			v.edit(false)
		case glfw.KeyP:
			v.edit(true)
		case glfw.KeyR:
			v.cfg.Worldgen.Seed++
			if err := v.regenerate(); err != nil {
				v.log.WithError(err).Error("regenerate")
			}
		}
	})
}

// edit digs or places along the ray from the eye to the orbit target.
func (v *viewer) edit(place bool) {
	eye := v.cam.Eye()
	dir := v.cam.Target.Sub(eye).Normalize()
	res := v.chunk.Raycast(eye, dir, 0, v.cam.Distance*2)
	if !res.OK {
		return
	}
	cell, typ := res.Hit, voxel.Air
	if place {
		if !res.AdjacentOK {
			return
		}
		cell, typ = res.Adjacent, voxel.Dirt
	}
	if err := v.chunk.SetVoxel(cell[0], cell[1], cell[2], typ); err != nil {
		v.log.WithError(err).Warn("edit rejected")
		return
	}
	if err := v.chunk.UpdateFaces(v.mesher); err != nil {
		v.log.WithError(err).Error("remesh after edit")
		return
	}
	v.renderer.Upload(v.chunk.Mesh())
}

func (v *viewer) loop(window *glfw.Window) {
	light := mgl32.Vec3{0.3, 1.0, 0.5}.Normalize()
	lastReport := time.Now()
	for !window.ShouldClose() {
		gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
		if v.wireframe {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		} else {
			gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
		}
		v.renderer.Draw(v.cam.View(), v.cam.Projection(), light)

		window.SwapBuffers()
		glfw.PollEvents()

		if time.Since(lastReport) >= 5*time.Second {
			v.log.WithField("stages", profiling.TopN(4)).Debug("profile")
			lastReport = time.Now()
		}
	}
}

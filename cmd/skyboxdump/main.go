// Command skyboxdump renders a skybox for a few frames and prints what the
// device saw.
//
// The recorder backend prints every device call. The wgpu backend runs
// against the no-op HAL and prints draw counts and pipeline cache stats.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"log/slog"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/backend"
	"github.com/gogpu/rendercore/backend/wgpu"
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/recording"
	"github.com/gogpu/rendercore/render"
	"github.com/gogpu/rendercore/state"
	"github.com/gogpu/rendercore/technique"
)

var samplers = map[string]gpucore.SamplerDescription{
	"linear": state.DefaultCubeSampler,
	"point":  state.PointSampler,
	"aniso":  state.AnisotropicSampler,
}

func main() {
	var (
		cube    = flag.String("cube", "", "cube map image (single face, strip or cross)")
		smp     = flag.String("sampler", "linear", "sampler: linear, point or aniso")
		frames  = flag.Int("frames", 1, "frames to render")
		name    = flag.String("backend", backend.BackendRecorder, "backend: recorder or wgpu")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		rendercore.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	desc, ok := samplers[*smp]
	if !ok {
		log.Fatalf("unknown sampler %q", *smp)
	}
	opts := []render.SkyboxOption{render.WithSamplerDescription(desc)}
	if *cube != "" {
		f, err := os.Open(*cube)
		if err != nil {
			log.Fatalf("open cube: %v", err)
		}
		defer f.Close()
		opts = append(opts, render.WithCubeTexture(f))
	}

	if err := run(os.Stdout, *name, *frames, opts); err != nil {
		log.Fatal(err)
	}
}

// camera orbits the origin one step per frame.
func camera(frame int) *render.Context {
	angle := float64(mgl32.DegToRad(float32(frame) * 15))
	eye := mgl32.Vec3{float32(5 * math.Sin(angle)), 1, float32(5 * math.Cos(angle))}
	view := mgl32.LookAtV(eye, mgl32.Vec3{}, mgl32.Vec3{0, 1, 0})
	proj := mgl32.Perspective(mgl32.DegToRad(60), 16.0/9.0, 0.1, 100)
	return render.NewContext(view, proj)
}

// scene builds the technique and an attached skybox on dev.
func scene(dev gpucore.Device, opts []render.SkyboxOption) (*technique.EffectsManager, *technique.Technique, *render.SkyboxCore, error) {
	em, err := technique.NewEffectsManager(dev)
	if err != nil {
		return nil, nil, nil, err
	}
	sky, err := technique.NewSkyboxTechnique(em)
	if err != nil {
		em.Close()
		return nil, nil, nil, err
	}
	core := render.NewSkyboxCore(opts...)
	if !core.Attach(sky) {
		em.Close()
		return nil, nil, nil, errors.New("skybox attach failed")
	}
	return em, sky, core, nil
}

func run(w io.Writer, name string, frames int, opts []render.SkyboxOption) error {
	b, err := backend.Open(name)
	if err != nil {
		return fmt.Errorf("backend %q: %w", name, err)
	}
	defer b.Close()

	em, sky, core, err := scene(b.Device(), opts)
	if err != nil {
		return err
	}
	defer summary(w, b)
	defer em.Close()
	defer core.Detach()

	for i := range frames {
		dc, err := b.BeginFrame()
		if err != nil {
			return err
		}
		sky.Render(camera(i), dc, core)
		report(w, b, i)
	}
	return nil
}

// recorderBackend is any backend that exposes its recorder.
type recorderBackend interface {
	Recorder() *recording.Recorder
}

// summary runs after the scene is torn down.
func summary(w io.Writer, b backend.RenderBackend) {
	switch b := b.(type) {
	case recorderBackend:
		fmt.Fprintf(w, "live resources: %d\n", b.Recorder().LiveResources())
	case *wgpu.Backend:
		if ctx := b.Context(); ctx != nil {
			hits, misses := ctx.Pipelines().Stats()
			fmt.Fprintf(w, "pipelines: %d (hits %d, misses %d)\n", ctx.Pipelines().Len(), hits, misses)
		}
	}
}

func report(w io.Writer, b backend.RenderBackend, frame int) {
	switch b := b.(type) {
	case recorderBackend:
		fmt.Fprintf(w, "frame %d\n", frame)
		for _, line := range b.Recorder().Dump() {
			fmt.Fprintf(w, "  %s\n", line)
		}
	case *wgpu.Backend:
		fmt.Fprintf(w, "frame %d: draws=%d\n", frame, b.Context().Draws())
	}
}

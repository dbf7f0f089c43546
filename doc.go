// Package rendercore provides render cores for a GPU scene renderer built on
// gogpu/wgpu.
//
// A render core is a small unit that owns the GPU resources for one kind of
// drawable and emits its draw commands inside a technique's render pass. The
// first core shipped here is the skybox: a fixed 20-unit cube drawn with a
// cube-mapped texture behind the rest of the scene.
//
// # Architecture
//
//	+-------------+     +-------------+     +-------------+
//	|  technique  | --> |   render    | --> |   gpucore   |
//	| pass, slots |     | SkyboxCore  |     | Device, DC  |
//	+-------------+     +-------------+     +------+------+
//	                                               |
//	                         +---------------------+---------------------+
//	                         |                                           |
//	                +--------v--------+                         +--------v--------+
//	                |  backend/wgpu   |                         |    recording    |
//	                |  (hal.Device)   |                         |  (command log)  |
//	                +-----------------+                         +-----------------+
//
// Supporting packages:
//   - state: reference-counted sampler registry shared per device
//   - shader: passes, per-stage name to slot maps, built-in WGSL
//   - geometry: vertex buffer models built from point geometry
//   - texture: cube image decoding and the texture view proxy
//
// # Quick Start
//
//	dev := recording.NewRecorder()
//	em := technique.NewEffectsManager(dev)
//	tech, _ := technique.NewSkyboxTechnique(em)
//
//	core := render.NewSkyboxCore(render.WithCubeTexture(f))
//	if !core.Attach(tech) {
//	    log.Fatal("attach failed")
//	}
//	defer core.Detach()
//
//	tech.Render(render.NewContext(view, proj), dev, core)
//
// # Logging
//
// The library is silent by default. See [SetLogger].
package rendercore

// Version information
const (
	// Version is the current version of the library
	Version = "0.1.0"
)

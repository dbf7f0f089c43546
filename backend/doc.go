// Package backend provides a pluggable device backend abstraction.
//
// A backend owns a gpucore.Device and hands out the gpucore.DeviceContext
// of each frame. Techniques and render cores only see those interfaces,
// so the same scene runs on the recorder or on the wgpu HAL.
//
// # Backend Registration
//
// Backends are registered via init() functions and selected at runtime.
// The recorder backend is automatically registered on import:
//
//	import _ "github.com/gogpu/rendercore/backend"
//
// The wgpu backend registers itself when its package is imported:
//
//	import _ "github.com/gogpu/rendercore/backend/wgpu"
//
// # Backend Selection
//
// Use Default() to get the best available backend, Get() to request
// a specific backend by name, or Open() to do either and call Init:
//
//	b, err := backend.Open("recorder")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer b.Close()
//
//	em, _ := technique.NewEffectsManager(b.Device())
//	...
//	dc, _ := b.BeginFrame()
//	sky.Render(ctx, dc, core)
//
// # Available Backends
//
// - "recorder": records every device call (always available)
// - "wgpu": gogpu/wgpu HAL, on the no-op HAL until given a real device
package backend

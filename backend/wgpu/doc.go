// Package wgpu implements the rendercore device abstraction on the
// gogpu/wgpu hardware abstraction layer.
//
// # Architecture
//
//	render.SkyboxCore ──► gpucore.DeviceContext ──► wgpu.Context ──► hal.RenderPassEncoder
//	                      gpucore.Device        ──► wgpu.Device  ──► hal.Device / hal.Queue
//
// Device creates buffers, cube textures and samplers and uploads data
// through the queue. Context records the slot bindings and state a core
// sets, and on Draw resolves them into a render pipeline (cached per
// program and state), a bind group and a draw call.
//
// # Slots
//
// A slot is the @binding number of a resource in bind group 0. Cube
// texture slots the program declares but no core bound are filled with a
// 1×1 black cube, sampler slots with a linear sampler and uniform slots
// with a zeroed buffer. An unbound 2D texture skips the draw.
//
// # Frames
//
// Bind groups are created per draw and kept until Reset. Call Reset with
// the next frame's render pass once the previous frame's command buffer
// has completed.
//
// # Usage
//
//	dev, err := wgpu.NewDeviceFromProvider(provider)
//	em, err := technique.NewEffectsManager(dev)
//	...
//	ctx := wgpu.NewContext(dev, pass, wgpu.WithColorFormat(provider.SurfaceFormat()))
//	sky.Render(frame, ctx, core)
//	ctx.Reset(nextPass)
//
// # Registration
//
// Importing the package registers Backend under backend.BackendWGPU. The
// registered instance runs on the no-op HAL; call SetHAL before Init to
// render on a real device.
package wgpu

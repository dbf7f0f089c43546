// Package gpucore provides the device abstraction shared by render cores.
//
// Render cores never talk to a graphics API directly. They create resources
// through a [Device] and record draw state through a [DeviceContext]. Thin
// backends translate those calls into a concrete API:
//
//	               +-----------------+
//	               |     gpucore     |
//	               | Device, Context |
//	               +--------+--------+
//	                        |
//	         +--------------+--------------+
//	         |                             |
//	+--------v--------+          +--------v--------+
//	|  backend/wgpu   |          |    recording    |
//	|  (hal.Device)   |          |  (command log)  |
//	+--------+--------+          +-----------------+
//	         |
//	+--------v--------+
//	|   gogpu/wgpu    |
//	|   (Pure Go)     |
//	+-----------------+
//
// # Slots
//
// Textures, samplers and constant buffers are bound by numeric slot within a
// shader stage. A slot of [InvalidSlot] marks a binding that the active
// shader does not declare; contexts ignore bindings to it.
//
// # Resource Lifetime
//
// Every resource returned by a [Device] has a Release method. Release is
// idempotent. Resources are not safe for concurrent use unless the backend
// documents otherwise.
package gpucore

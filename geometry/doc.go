// Package geometry turns CPU-side geometry into GPU vertex buffers.
//
// A [BufferModel] owns one vertex buffer built from a [PointGeometry]
// through a vertex-extraction callback, so the same positions can feed
// different vertex layouts.
package geometry

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "github.com/go-gl/mathgl/mgl32"

// Context carries per-frame camera state to render cores.
type Context struct {
	View       mgl32.Mat4
	Projection mgl32.Mat4

	// FrameNumber increments once per rendered frame.
	FrameNumber uint64
}

// NewContext creates a context for the given camera.
func NewContext(view, projection mgl32.Mat4) *Context {
	return &Context{View: view, Projection: projection}
}

// ViewProjection returns Projection * View.
func (c *Context) ViewProjection() mgl32.Mat4 {
	return c.Projection.Mul4(c.View)
}

// SkyViewProjection returns Projection * View with the view translation
// removed, so geometry drawn with it stays centered on the eye.
func (c *Context) SkyViewProjection() mgl32.Mat4 {
	v := c.View
	v.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return c.Projection.Mul4(v)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/geometry"
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/shader"
)

// Attach errors, logged when Attach returns false.
var (
	// ErrNilTechnique is logged when Attach is given a nil technique.
	ErrNilTechnique = errors.New("render: nil technique")

	// ErrNoPass is logged when the technique has no active pass.
	ErrNoPass = errors.New("render: technique has no active pass")

	// ErrNoDevice is logged when the technique has no device.
	ErrNoDevice = errors.New("render: technique has no device")

	// ErrNoStateManager is logged when the technique has no state manager.
	ErrNoStateManager = errors.New("render: technique has no state manager")

	// ErrAlreadyAttached is logged when an attached core is given another
	// technique.
	ErrAlreadyAttached = errors.New("render: core attached to another technique")
)

// releaser is any owned resource.
type releaser interface {
	Release()
}

// GeometryBuffer is the part of a geometry buffer model a core needs.
type GeometryBuffer interface {
	Attach(device gpucore.Device) error
	AttachBuffers(dc gpucore.DeviceContext) bool
	VertexBuffer() *geometry.VertexBuffer
	Release()
}

// coreHooks are the variant-specific steps of a geometry core.
type coreHooks interface {
	// buildGeometry returns a new, unattached geometry buffer model.
	buildGeometry() GeometryBuffer

	// onAttach builds variant resources after the geometry buffer. Anything
	// it collects is released by the base on failure.
	onAttach(t Technique) error

	// onDetach clears variant state after the base has released resources.
	onDetach()

	// onDefaultPassChanged resolves slots for pass.
	onDefaultPassChanged(pass *shader.Pass)

	// onRender records draw commands. Raster state and geometry are bound.
	onRender(ctx *Context, dc gpucore.DeviceContext)
}

// GeometryCore is the base of cores that draw one geometry buffer. It owns
// the lifecycle, the resource collector, the pass subscription and the
// invalidation signal; variants plug in through coreHooks.
type GeometryCore struct {
	hooks coreHooks
	lc    lifecycle

	technique   Technique
	defaultPass *shader.Pass
	cancelPass  func()

	raster   gpucore.RasterDescription
	geometry GeometryBuffer

	collected []releaser

	nextHandler  int
	invalidators map[int]func()
}

func (g *GeometryCore) init(hooks coreHooks, raster gpucore.RasterDescription) {
	g.hooks = hooks
	g.raster = raster
	g.invalidators = make(map[int]func())
}

// IsAttached reports whether the core is attached.
func (g *GeometryCore) IsAttached() bool {
	return g.lc.attached()
}

// Technique returns the technique the core is attached to, or nil.
func (g *GeometryCore) Technique() Technique {
	return g.technique
}

// DefaultPass returns the most recently notified pass, or nil when detached.
func (g *GeometryCore) DefaultPass() *shader.Pass {
	return g.defaultPass
}

// RasterDescription returns the rasterizer state bound before each draw.
func (g *GeometryCore) RasterDescription() gpucore.RasterDescription {
	return g.raster
}

// SetRasterDescription replaces the rasterizer state.
func (g *GeometryCore) SetRasterDescription(desc gpucore.RasterDescription) {
	if g.raster == desc {
		return
	}
	g.raster = desc
	g.invalidate()
}

// GeometryBuffer returns the attached geometry buffer model, or nil.
func (g *GeometryCore) GeometryBuffer() GeometryBuffer {
	return g.geometry
}

// OnInvalidateRender registers fn to run whenever a property change makes
// the last rendered frame stale. The returned function unregisters it.
func (g *GeometryCore) OnInvalidateRender(fn func()) (cancel func()) {
	id := g.nextHandler
	g.nextHandler++
	g.invalidators[id] = fn
	return func() { delete(g.invalidators, id) }
}

func (g *GeometryCore) invalidate() {
	for _, fn := range g.invalidators {
		fn()
	}
}

// collect takes ownership of r until detach.
func collect[T releaser](g *GeometryCore, r T) T {
	g.collected = append(g.collected, r)
	return r
}

// removeAndRelease releases r and forgets it.
func (g *GeometryCore) removeAndRelease(r releaser) {
	for i, c := range g.collected {
		if c == r {
			g.collected = append(g.collected[:i], g.collected[i+1:]...)
			break
		}
	}
	r.Release()
}

// releaseAll releases every collected resource in reverse order.
func (g *GeometryCore) releaseAll() {
	for i := len(g.collected) - 1; i >= 0; i-- {
		g.collected[i].Release()
	}
	g.collected = nil
	g.geometry = nil
}

// Attach implements RenderCore. Attaching to the current technique again
// is a no-op; attaching to another one fails and keeps the current binding.
func (g *GeometryCore) Attach(t Technique) bool {
	if g.lc.attached() {
		if t == g.technique {
			return true
		}
		rendercore.Logger().Warn("render: attach failed", "err", ErrAlreadyAttached)
		return false
	}
	if err := g.attach(t); err != nil {
		rendercore.Logger().Warn("render: attach failed", "err", err)
		g.releaseAll()
		g.hooks.onDetach()
		g.technique = nil
		g.defaultPass = nil
		return false
	}
	return true
}

func (g *GeometryCore) attach(t Technique) error {
	if t == nil {
		return ErrNilTechnique
	}
	pass := t.DefaultPass()
	if pass == nil {
		return ErrNoPass
	}
	device := t.Device()
	if device == nil {
		return ErrNoDevice
	}
	g.technique = t

	model := g.hooks.buildGeometry()
	if err := model.Attach(device); err != nil {
		return fmt.Errorf("render: geometry: %w", err)
	}
	g.geometry = collect[GeometryBuffer](g, model)

	if err := g.hooks.onAttach(t); err != nil {
		return err
	}
	if err := g.lc.enterAttached(); err != nil {
		return err
	}

	g.passChanged(pass)
	g.cancelPass = t.OnPassChanged(g.passChanged)
	return nil
}

func (g *GeometryCore) passChanged(pass *shader.Pass) {
	if pass == nil {
		return
	}
	g.defaultPass = pass
	g.hooks.onDefaultPassChanged(pass)
	rendercore.Logger().Debug("render: pass changed", "pass", pass.Name())
}

// Detach implements RenderCore.
func (g *GeometryCore) Detach() {
	if !g.lc.attached() {
		return
	}
	if g.cancelPass != nil {
		g.cancelPass()
		g.cancelPass = nil
	}
	g.lc.enterDetached()
	g.releaseAll()
	g.hooks.onDetach()
	g.technique = nil
	g.defaultPass = nil
}

// Render implements RenderCore.
func (g *GeometryCore) Render(ctx *Context, dc gpucore.DeviceContext) {
	if !g.lc.attached() || dc == nil || g.defaultPass == nil {
		return
	}
	dc.SetRasterState(g.raster)
	if !g.geometry.AttachBuffers(dc) {
		return
	}
	g.hooks.onRender(ctx, dc)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/shader"
	"github.com/gogpu/rendercore/state"
)

// Technique is what a render core attaches to. It supplies the device, the
// shared state registry and the active pass, and notifies on pass changes.
type Technique interface {
	Device() gpucore.Device
	StateManager() *state.Manager

	// DefaultPass returns the active pass, or nil if none.
	DefaultPass() *shader.Pass

	// OnPassChanged registers fn to run whenever the active pass changes.
	// The returned function unregisters it.
	OnPassChanged(fn func(*shader.Pass)) (cancel func())
}

// RenderCore is a drawable unit attached to a technique.
type RenderCore interface {
	// Attach builds the core's resources on t. It returns false and leaves
	// the core detached if any required resource cannot be built.
	// Attaching an attached core is a no-op returning true.
	Attach(t Technique) bool

	// Detach releases every owned resource. Idempotent.
	Detach()

	IsAttached() bool

	// Render records the core's draw commands. A detached core draws
	// nothing.
	Render(ctx *Context, dc gpucore.DeviceContext)
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render provides render cores: units that own the GPU resources of
// one drawable and emit its draw commands inside a technique's pass.
//
// # Key Principle
//
// A core RECEIVES its device, state registry and pass from the technique it
// is attached to. It owns only what it creates: its geometry buffer, its
// texture views and its sampler handles. Everything it owns exists exactly
// while it is attached.
//
// # Lifecycle
//
//	        Attach(t) ok
//	   +-----------------------+
//	   |                       v
//	Detached               Attached ---- pass changed ----> resolve slots
//	   ^                       |
//	   +-----------------------+
//	          Detach()
//
// Property setters compare the new value with the current one and do nothing
// on equality. Otherwise they store the value, raise the invalidation signal
// and, when attached, rebuild the affected resource immediately. While
// detached the rebuild is deferred: entering Attached replays every property
// against the fresh resources.
//
// # Cores
//
//   - SkyboxCore: a fixed 20-unit cube sampled with a cube texture
//
// # Thread Safety
//
// Cores are NOT thread-safe. Attach, Detach, setters and Render must all be
// called from the render thread.
package render

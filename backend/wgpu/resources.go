package wgpu

import (
	"sync/atomic"

	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendercore/gpucore"
)

// handle guards a HAL resource against double destruction.
type handle struct {
	gone atomic.Bool
}

func (h *handle) release(destroy func()) {
	if h.gone.CompareAndSwap(false, true) {
		destroy()
	}
}

func (h *handle) released() bool { return h.gone.Load() }

type buffer struct {
	handle
	dev  *Device
	raw  hal.Buffer
	size uint64
}

func (b *buffer) Size() uint64 { return b.size }

func (b *buffer) Release() {
	b.release(func() {
		b.dev.device.DestroyBuffer(b.raw)
		b.dev.track(-1)
	})
}

type textureView struct {
	handle
	dev  *Device
	tex  hal.Texture
	view hal.TextureView
}

func (v *textureView) Release() {
	v.release(func() {
		v.dev.device.DestroyTextureView(v.view)
		v.dev.device.DestroyTexture(v.tex)
		v.dev.track(-1)
	})
}

type sampler struct {
	handle
	dev  *Device
	raw  hal.Sampler
	desc gpucore.SamplerDescription
}

func (s *sampler) Description() gpucore.SamplerDescription { return s.desc }

func (s *sampler) Release() {
	s.release(func() {
		s.dev.device.DestroySampler(s.raw)
		s.dev.track(-1)
	})
}

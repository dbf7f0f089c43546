package wgpu

import (
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"

	"github.com/gogpu/rendercore/backend"
	"github.com/gogpu/rendercore/gpucore"
)

// init registers the backend on package import. The registered instance
// runs on the no-op HAL until SetHAL supplies a real device.
func init() {
	backend.Register(backend.BackendWGPU, func() backend.RenderBackend {
		return NewBackend()
	})
}

// Backend adapts Device and Context to backend.RenderBackend.
type Backend struct {
	halDevice hal.Device
	halQueue  hal.Queue
	pass      hal.RenderPassEncoder
	opts      []ContextOption

	dev *Device
	ctx *Context
}

var _ backend.RenderBackend = (*Backend)(nil)

// NewBackend creates a backend on the no-op HAL.
func NewBackend(opts ...ContextOption) *Backend {
	return &Backend{
		halDevice: &noop.Device{},
		halQueue:  &noop.Queue{},
		pass:      &noop.RenderPassEncoder{},
		opts:      opts,
	}
}

// SetHAL replaces the HAL device and queue. It must be called before Init.
func (b *Backend) SetHAL(device hal.Device, queue hal.Queue) {
	b.halDevice, b.halQueue = device, queue
}

// SetRenderPass sets the encoder the next BeginFrame records into.
func (b *Backend) SetRenderPass(pass hal.RenderPassEncoder) {
	b.pass = pass
}

// Name returns the backend identifier.
func (b *Backend) Name() string {
	return backend.BackendWGPU
}

// Init wraps the HAL device.
func (b *Backend) Init() error {
	if b.dev != nil {
		return nil
	}
	dev, err := NewDevice(b.halDevice, b.halQueue)
	if err != nil {
		return err
	}
	b.dev = dev
	return nil
}

// Device returns the wrapped device, or nil before Init.
func (b *Backend) Device() gpucore.Device {
	if b.dev == nil {
		return nil
	}
	return b.dev
}

// WGPUDevice returns the concrete device, or nil before Init.
func (b *Backend) WGPUDevice() *Device { return b.dev }

// Context returns the frame context, or nil before the first BeginFrame.
func (b *Backend) Context() *Context { return b.ctx }

// BeginFrame resets the context onto the current render pass.
func (b *Backend) BeginFrame() (gpucore.DeviceContext, error) {
	if b.dev == nil {
		return nil, backend.ErrNotInitialized
	}
	if b.ctx == nil {
		b.ctx = NewContext(b.dev, b.pass, b.opts...)
		return b.ctx, nil
	}
	b.ctx.Reset(b.pass)
	return b.ctx, nil
}

// Close releases the context. Resources owned by render cores must be
// released by their owners first.
func (b *Backend) Close() {
	if b.ctx != nil {
		b.ctx.Release()
		b.ctx = nil
	}
	b.dev = nil
}

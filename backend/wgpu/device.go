package wgpu

import (
	"fmt"
	"sync"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
)

// Device implements gpucore.Device on a HAL device and queue.
// It is safe for concurrent use.
type Device struct {
	device hal.Device
	queue  hal.Queue

	surfaceFormat gputypes.TextureFormat

	mu   sync.Mutex
	live int
}

var _ gpucore.Device = (*Device)(nil)

// NewDevice wraps a HAL device and queue. The caller keeps ownership of
// both.
func NewDevice(device hal.Device, queue hal.Queue) (*Device, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Device{device: device, queue: queue}, nil
}

// NewDeviceFromProvider adopts the shared device of a gpucontext provider
// such as a gogpu window. The provider must expose its HAL device and
// queue through HalDevice() and HalQueue().
func NewDeviceFromProvider(provider gpucontext.DeviceProvider) (*Device, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrNoHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHAL, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHAL, hp.HalQueue())
	}

	d, err := NewDevice(device, queue)
	if err != nil {
		return nil, err
	}
	d.surfaceFormat = provider.SurfaceFormat()
	info := provider.AdapterInfo()
	rendercore.Logger().Info("wgpu: device adopted from provider",
		"adapter", info.Name, "surfaceFormat", d.surfaceFormat)
	return d, nil
}

// HAL returns the wrapped device and queue.
func (d *Device) HAL() (hal.Device, hal.Queue) {
	return d.device, d.queue
}

// SurfaceFormat returns the provider's surface format, or
// TextureFormatUndefined for devices created with NewDevice.
func (d *Device) SurfaceFormat() gputypes.TextureFormat {
	return d.surfaceFormat
}

// LiveResources returns the number of created, unreleased resources.
func (d *Device) LiveResources() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.live
}

func (d *Device) track(delta int) {
	d.mu.Lock()
	d.live += delta
	d.mu.Unlock()
}

// CreateVertexBuffer implements gpucore.Device.
func (d *Device) CreateVertexBuffer(label string, data []byte) (gpucore.Buffer, error) {
	b, err := d.createBuffer(label, uint64(len(data)), gputypes.BufferUsageVertex|gputypes.BufferUsageCopyDst)
	if err != nil {
		return nil, err
	}
	if err := d.queue.WriteBuffer(b.raw, 0, data); err != nil {
		b.Release()
		return nil, fmt.Errorf("wgpu: upload %s: %w", label, err)
	}
	return b, nil
}

// CreateUniformBuffer implements gpucore.Device.
func (d *Device) CreateUniformBuffer(label string, size uint64) (gpucore.Buffer, error) {
	return d.createBuffer(label, size, gputypes.BufferUsageUniform|gputypes.BufferUsageCopyDst)
}

func (d *Device) createBuffer(label string, size uint64, usage gputypes.BufferUsage) (*buffer, error) {
	// Buffer sizes must be 4-byte aligned.
	aligned := (size + 3) &^ 3
	raw, err := d.device.CreateBuffer(&hal.BufferDescriptor{
		Label: label,
		Size:  aligned,
		Usage: usage,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create buffer %s: %w", label, err)
	}
	d.track(1)
	return &buffer{dev: d, raw: raw, size: size}, nil
}

// WriteBuffer implements gpucore.Device.
func (d *Device) WriteBuffer(buf gpucore.Buffer, offset uint64, data []byte) error {
	b, ok := buf.(*buffer)
	if !ok || b.dev != d {
		return gpucore.ErrWrongBackend
	}
	if b.released() {
		return gpucore.ErrReleased
	}
	if offset+uint64(len(data)) > b.size {
		return fmt.Errorf("%w: %d+%d > %d", gpucore.ErrOutOfRange, offset, len(data), b.size)
	}
	return d.queue.WriteBuffer(b.raw, offset, data)
}

// CreateCubeTexture implements gpucore.Device. The image is uploaded as a
// six-layer RGBA8 texture viewed as a cube.
func (d *Device) CreateCubeTexture(label string, img *gpucore.CubeImage) (gpucore.TextureView, error) {
	if err := img.Validate(); err != nil {
		return nil, err
	}
	size := uint32(img.Size) //nolint:gosec // validated positive face size
	tex, err := d.device.CreateTexture(&hal.TextureDescriptor{
		Label:         label,
		Size:          hal.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 6},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     gputypes.TextureDimension2D,
		Format:        gputypes.TextureFormatRGBA8Unorm,
		Usage:         gputypes.TextureUsageTextureBinding | gputypes.TextureUsageCopyDst,
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: create cube texture %s: %w", label, err)
	}

	for face := range img.Faces {
		err := d.queue.WriteTexture(
			&hal.ImageCopyTexture{
				Texture: tex,
				Origin:  hal.Origin3D{Z: uint32(face)}, //nolint:gosec // face < 6
				Aspect:  gputypes.TextureAspectAll,
			},
			img.Faces[face],
			&hal.ImageDataLayout{BytesPerRow: size * 4, RowsPerImage: size},
			&hal.Extent3D{Width: size, Height: size, DepthOrArrayLayers: 1},
		)
		if err != nil {
			d.device.DestroyTexture(tex)
			return nil, fmt.Errorf("wgpu: upload cube face %d: %w", face, err)
		}
	}

	view, err := d.device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label:           label + "_view",
		Format:          gputypes.TextureFormatRGBA8Unorm,
		Dimension:       gputypes.TextureViewDimensionCube,
		Aspect:          gputypes.TextureAspectAll,
		MipLevelCount:   1,
		ArrayLayerCount: 6,
	})
	if err != nil {
		d.device.DestroyTexture(tex)
		return nil, fmt.Errorf("wgpu: create cube view %s: %w", label, err)
	}
	d.track(1)
	return &textureView{dev: d, tex: tex, view: view}, nil
}

// CreateSampler implements gpucore.Device.
func (d *Device) CreateSampler(desc gpucore.SamplerDescription) (gpucore.Sampler, error) {
	raw, err := d.device.CreateSampler(samplerDescriptor(desc))
	if err != nil {
		return nil, fmt.Errorf("wgpu: create sampler: %w", err)
	}
	d.track(1)
	return &sampler{dev: d, raw: raw, desc: desc}, nil
}

package wgpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/state"
)

// fallbackUniformSize covers any uniform block the built-in shaders use.
const fallbackUniformSize = 256

var errMissingTexture = errors.New("wgpu: 2D texture slot not bound")

type contextOptions struct {
	colorFormat gputypes.TextureFormat
	depthFormat gputypes.TextureFormat
	samples     uint32
}

// ContextOption configures a Context.
type ContextOption func(*contextOptions)

// WithColorFormat sets the color target format. It defaults to the
// device's surface format, or BGRA8Unorm.
func WithColorFormat(f gputypes.TextureFormat) ContextOption {
	return func(o *contextOptions) {
		o.colorFormat = f
	}
}

// WithDepthFormat sets the depth attachment format. Depth24Plus by
// default; TextureFormatUndefined disables depth testing.
func WithDepthFormat(f gputypes.TextureFormat) ContextOption {
	return func(o *contextOptions) {
		o.depthFormat = f
	}
}

// WithSampleCount sets the MSAA sample count. 1 by default.
func WithSampleCount(n uint32) ContextOption {
	return func(o *contextOptions) {
		if n > 0 {
			o.samples = n
		}
	}
}

// Context implements gpucore.DeviceContext on a HAL render pass encoder.
//
// Slots are @binding numbers in bind group 0 and are shared by the vertex
// and pixel stages; the stage argument of the Set calls is only used for
// logging. A Context belongs to one render goroutine.
type Context struct {
	dev   *Device
	pass  hal.RenderPassEncoder
	opts  contextOptions
	cache *PipelineCache

	program  *gpucore.Program
	blend    gpucore.BlendDescription
	depth    gpucore.DepthStencilDescription
	raster   gpucore.RasterDescription
	topology gpucore.PrimitiveTopology

	vertices     *buffer
	vertexOffset uint32

	textures map[int]*textureView
	samplers map[int]*sampler
	uniforms map[int]*buffer

	frameGroups []hal.BindGroup
	draws       int

	fallbackCube    *textureView
	fallbackSampler *sampler
	fallbackUniform *buffer
}

var _ gpucore.DeviceContext = (*Context)(nil)

// NewContext creates a context recording into pass.
func NewContext(dev *Device, pass hal.RenderPassEncoder, opts ...ContextOption) *Context {
	o := contextOptions{
		colorFormat: dev.SurfaceFormat(),
		depthFormat: gputypes.TextureFormatDepth24Plus,
		samples:     1,
	}
	if o.colorFormat == gputypes.TextureFormatUndefined {
		o.colorFormat = gputypes.TextureFormatBGRA8Unorm
	}
	for _, opt := range opts {
		opt(&o)
	}
	c := &Context{
		dev:   dev,
		pass:  pass,
		opts:  o,
		cache: NewPipelineCache(dev.device),
	}
	c.clearSlots()
	return c
}

func (c *Context) clearSlots() {
	c.program = nil
	c.vertices = nil
	c.vertexOffset = 0
	c.topology = gpucore.TopologyUndefined
	c.textures = make(map[int]*textureView)
	c.samplers = make(map[int]*sampler)
	c.uniforms = make(map[int]*buffer)
}

// Pipelines returns the pipeline cache.
func (c *Context) Pipelines() *PipelineCache { return c.cache }

// Draws returns the number of draws issued since the last Reset.
func (c *Context) Draws() int { return c.draws }

// Reset starts a new frame on pass. Bind groups of the previous frame are
// destroyed, so its command buffer must have completed. Slot bindings and
// state are cleared; cached pipelines are kept.
func (c *Context) Reset(pass hal.RenderPassEncoder) {
	c.destroyFrame()
	c.pass = pass
	c.draws = 0
	c.clearSlots()
}

// Release destroys every object the context created. The context must
// not be used afterwards.
func (c *Context) Release() {
	c.destroyFrame()
	c.cache.Destroy()
	if c.fallbackCube != nil {
		c.fallbackCube.Release()
		c.fallbackCube = nil
	}
	if c.fallbackSampler != nil {
		c.fallbackSampler.Release()
		c.fallbackSampler = nil
	}
	if c.fallbackUniform != nil {
		c.fallbackUniform.Release()
		c.fallbackUniform = nil
	}
	c.pass = nil
}

func (c *Context) destroyFrame() {
	for _, bg := range c.frameGroups {
		c.dev.device.DestroyBindGroup(bg)
	}
	c.frameGroups = c.frameGroups[:0]
}

// SetProgram implements gpucore.DeviceContext.
func (c *Context) SetProgram(p *gpucore.Program) { c.program = p }

// SetBlendState implements gpucore.DeviceContext.
func (c *Context) SetBlendState(desc gpucore.BlendDescription) { c.blend = desc }

// SetDepthStencilState implements gpucore.DeviceContext.
func (c *Context) SetDepthStencilState(desc gpucore.DepthStencilDescription) { c.depth = desc }

// SetRasterState implements gpucore.DeviceContext. Wireframe fill has no
// WebGPU equivalent and draws solid.
func (c *Context) SetRasterState(desc gpucore.RasterDescription) { c.raster = desc }

// SetTopology implements gpucore.DeviceContext.
func (c *Context) SetTopology(t gpucore.PrimitiveTopology) { c.topology = t }

// SetTexture implements gpucore.DeviceContext.
func (c *Context) SetTexture(stage gpucore.ShaderStage, slot int, view gpucore.TextureView) {
	if slot == gpucore.InvalidSlot {
		return
	}
	v, ok := view.(*textureView)
	if !ok || v == nil || v.dev != c.dev {
		if view != nil && !ok {
			rendercore.Logger().Warn("wgpu: foreign texture view ignored", "stage", stage, "slot", slot)
		}
		delete(c.textures, slot)
		return
	}
	c.textures[slot] = v
}

// SetSampler implements gpucore.DeviceContext.
func (c *Context) SetSampler(stage gpucore.ShaderStage, slot int, s gpucore.Sampler) {
	if slot == gpucore.InvalidSlot {
		return
	}
	smp, ok := s.(*sampler)
	if !ok || smp == nil || smp.dev != c.dev {
		if s != nil && !ok {
			rendercore.Logger().Warn("wgpu: foreign sampler ignored", "stage", stage, "slot", slot)
		}
		delete(c.samplers, slot)
		return
	}
	c.samplers[slot] = smp
}

// SetConstantBuffer implements gpucore.DeviceContext.
func (c *Context) SetConstantBuffer(stage gpucore.ShaderStage, slot int, buf gpucore.Buffer) {
	if slot == gpucore.InvalidSlot {
		return
	}
	b, ok := buf.(*buffer)
	if !ok || b == nil || b.dev != c.dev {
		if buf != nil && !ok {
			rendercore.Logger().Warn("wgpu: foreign buffer ignored", "stage", stage, "slot", slot)
		}
		delete(c.uniforms, slot)
		return
	}
	c.uniforms[slot] = b
}

// SetVertexBuffer implements gpucore.DeviceContext. The stride comes from
// the program's vertex layout.
func (c *Context) SetVertexBuffer(buf gpucore.Buffer, _, offset uint32) {
	b, ok := buf.(*buffer)
	if !ok || b == nil || b.dev != c.dev {
		c.vertices = nil
		return
	}
	c.vertices = b
	c.vertexOffset = offset
}

// Draw implements gpucore.DeviceContext. Draws that cannot be set up are
// logged and skipped.
func (c *Context) Draw(vertexCount, startVertex uint32) {
	if err := c.draw(vertexCount, startVertex); err != nil {
		rendercore.Logger().Warn("wgpu: draw skipped", "err", err)
	}
}

func (c *Context) draw(vertexCount, startVertex uint32) error {
	switch {
	case c.pass == nil:
		return errors.New("wgpu: no render pass")
	case c.program == nil:
		return ErrNoProgram
	case c.vertices == nil || c.vertices.released():
		return errors.New("wgpu: no vertex buffer bound")
	}

	pipeline, res, err := c.cache.getOrCreate(pipelineKey{
		program:     c.program,
		blend:       c.blend,
		depth:       c.depth,
		raster:      c.raster,
		topology:    c.topology,
		colorFormat: c.opts.colorFormat,
		depthFormat: c.opts.depthFormat,
		samples:     c.opts.samples,
	})
	if err != nil {
		return err
	}

	entries, err := c.bindEntries(res.bindings)
	if err != nil {
		return err
	}
	group, err := c.dev.device.CreateBindGroup(&hal.BindGroupDescriptor{
		Label:   c.program.Label + "_bind",
		Layout:  res.bindLayout,
		Entries: entries,
	})
	if err != nil {
		return fmt.Errorf("wgpu: bind group: %w", err)
	}
	c.frameGroups = append(c.frameGroups, group)

	c.pass.SetPipeline(pipeline)
	c.pass.SetBindGroup(0, group, nil)
	c.pass.SetVertexBuffer(0, c.vertices.raw, uint64(c.vertexOffset))
	c.pass.Draw(vertexCount, 1, startVertex, 0)
	c.draws++
	return nil
}

func (c *Context) bindEntries(bindings []gpucore.ProgramBinding) ([]gputypes.BindGroupEntry, error) {
	entries := make([]gputypes.BindGroupEntry, 0, len(bindings))
	for _, b := range bindings {
		slot := int(b.Binding)
		var res gputypes.BindingResource
		switch b.Kind {
		case gpucore.BindingUniform:
			buf := c.uniforms[slot]
			if buf == nil || buf.released() {
				fb, err := c.fallbackUniformBuffer()
				if err != nil {
					return nil, err
				}
				buf = fb
			}
			res = gputypes.BufferBinding{Buffer: buf.raw.NativeHandle(), Size: buf.size}
		case gpucore.BindingTexture:
			view := c.textures[slot]
			if view == nil || view.released() {
				if b.Dimension != gpucore.TextureDimCube {
					return nil, fmt.Errorf("%w: %s", errMissingTexture, b.Name)
				}
				fb, err := c.fallbackCubeView()
				if err != nil {
					return nil, err
				}
				view = fb
			}
			res = gputypes.TextureViewBinding{TextureView: view.view.NativeHandle()}
		case gpucore.BindingSampler:
			smp := c.samplers[slot]
			if smp == nil || smp.released() {
				fb, err := c.fallbackSamplerState()
				if err != nil {
					return nil, err
				}
				smp = fb
			}
			res = gputypes.SamplerBinding{Sampler: smp.raw.NativeHandle()}
		default:
			continue
		}
		entries = append(entries, gputypes.BindGroupEntry{Binding: b.Binding, Resource: res})
	}
	return entries, nil
}

func (c *Context) fallbackCubeView() (*textureView, error) {
	if c.fallbackCube != nil {
		return c.fallbackCube, nil
	}
	black := []byte{0, 0, 0, 255}
	img := &gpucore.CubeImage{Size: 1}
	for i := range img.Faces {
		img.Faces[i] = black
	}
	v, err := c.dev.CreateCubeTexture("fallback_cube", img)
	if err != nil {
		return nil, err
	}
	c.fallbackCube = v.(*textureView)
	return c.fallbackCube, nil
}

func (c *Context) fallbackSamplerState() (*sampler, error) {
	if c.fallbackSampler != nil {
		return c.fallbackSampler, nil
	}
	s, err := c.dev.CreateSampler(state.DefaultSampler)
	if err != nil {
		return nil, err
	}
	c.fallbackSampler = s.(*sampler)
	return c.fallbackSampler, nil
}

func (c *Context) fallbackUniformBuffer() (*buffer, error) {
	if c.fallbackUniform != nil {
		return c.fallbackUniform, nil
	}
	b, err := c.dev.CreateUniformBuffer("fallback_uniform", fallbackUniformSize)
	if err != nil {
		return nil, err
	}
	c.fallbackUniform = b.(*buffer)
	return c.fallbackUniform, nil
}

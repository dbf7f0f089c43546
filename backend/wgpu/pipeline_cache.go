package wgpu

import (
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
)

// pipelineKey identifies a render pipeline. Every field is comparable, so
// the key is used directly as the map key.
type pipelineKey struct {
	program  *gpucore.Program
	blend    gpucore.BlendDescription
	depth    gpucore.DepthStencilDescription
	raster   gpucore.RasterDescription
	topology gpucore.PrimitiveTopology

	colorFormat gputypes.TextureFormat
	depthFormat gputypes.TextureFormat
	samples     uint32
}

// programResources are the shader module and layouts of one program.
type programResources struct {
	module     hal.ShaderModule
	bindLayout hal.BindGroupLayout
	layout     hal.PipelineLayout
	bindings   []gpucore.ProgramBinding
}

// PipelineCache caches shader modules, layouts and render pipelines.
//
// It is safe for concurrent use: lookups take a read lock and creation
// double-checks under the write lock.
type PipelineCache struct {
	device hal.Device

	mu        sync.RWMutex
	programs  map[*gpucore.Program]*programResources
	pipelines map[pipelineKey]hal.RenderPipeline

	hits   atomic.Uint64
	misses atomic.Uint64
}

// NewPipelineCache creates an empty cache on device.
func NewPipelineCache(device hal.Device) *PipelineCache {
	return &PipelineCache{
		device:    device,
		programs:  make(map[*gpucore.Program]*programResources),
		pipelines: make(map[pipelineKey]hal.RenderPipeline),
	}
}

// getOrCreate returns the pipeline for key and its program resources.
func (c *PipelineCache) getOrCreate(key pipelineKey) (hal.RenderPipeline, *programResources, error) {
	if key.program == nil {
		return nil, nil, ErrNoProgram
	}

	c.mu.RLock()
	pipeline, ok := c.pipelines[key]
	res := c.programs[key.program]
	c.mu.RUnlock()
	if ok {
		c.hits.Add(1)
		return pipeline, res, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if pipeline, ok := c.pipelines[key]; ok {
		c.hits.Add(1)
		return pipeline, c.programs[key.program], nil
	}

	res, err := c.programLocked(key.program)
	if err != nil {
		return nil, nil, err
	}
	pipeline, err = c.createPipeline(key, res)
	if err != nil {
		return nil, nil, err
	}
	c.pipelines[key] = pipeline
	c.misses.Add(1)
	rendercore.Logger().Debug("wgpu: pipeline created",
		"program", key.program.Label, "topology", key.topology, "pipelines", len(c.pipelines))
	return pipeline, res, nil
}

// programLocked returns the resources of p, creating them on first use.
// Caller must hold c.mu for writing.
func (c *PipelineCache) programLocked(p *gpucore.Program) (*programResources, error) {
	if res, ok := c.programs[p]; ok {
		return res, nil
	}

	module, err := c.device.CreateShaderModule(&hal.ShaderModuleDescriptor{
		Label:  p.Label,
		Source: hal.ShaderSource{WGSL: p.Source},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: shader module %s: %w", p.Label, err)
	}

	var (
		entries  []gputypes.BindGroupLayoutEntry
		bindings []gpucore.ProgramBinding
	)
	for _, b := range p.Bindings {
		if b.Group != 0 {
			rendercore.Logger().Warn("wgpu: binding outside group 0 ignored",
				"program", p.Label, "name", b.Name, "group", b.Group)
			continue
		}
		entries = append(entries, layoutEntry(b))
		bindings = append(bindings, b)
	}

	bindLayout, err := c.device.CreateBindGroupLayout(&hal.BindGroupLayoutDescriptor{
		Label:   p.Label + "_bind_layout",
		Entries: entries,
	})
	if err != nil {
		c.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("wgpu: bind group layout %s: %w", p.Label, err)
	}

	layout, err := c.device.CreatePipelineLayout(&hal.PipelineLayoutDescriptor{
		Label:            p.Label + "_layout",
		BindGroupLayouts: []hal.BindGroupLayout{bindLayout},
	})
	if err != nil {
		c.device.DestroyBindGroupLayout(bindLayout)
		c.device.DestroyShaderModule(module)
		return nil, fmt.Errorf("wgpu: pipeline layout %s: %w", p.Label, err)
	}

	res := &programResources{module: module, bindLayout: bindLayout, layout: layout, bindings: bindings}
	c.programs[p] = res
	return res, nil
}

func (c *PipelineCache) createPipeline(key pipelineKey, res *programResources) (hal.RenderPipeline, error) {
	p := key.program
	pipeline, err := c.device.CreateRenderPipeline(&hal.RenderPipelineDescriptor{
		Label:  p.Label + "_pipeline",
		Layout: res.layout,
		Vertex: hal.VertexState{
			Module:     res.module,
			EntryPoint: p.VertexEntry,
			Buffers:    vertexLayout(p),
		},
		Fragment: &hal.FragmentState{
			Module:     res.module,
			EntryPoint: p.PixelEntry,
			Targets: []gputypes.ColorTargetState{{
				Format:    key.colorFormat,
				Blend:     blendState(key.blend),
				WriteMask: gputypes.ColorWriteMaskAll,
			}},
		},
		DepthStencil: depthStencilState(key.depthFormat, key.depth),
		Primitive:    primitiveState(key.topology, key.raster),
		Multisample: gputypes.MultisampleState{
			Count: key.samples,
			Mask:  0xFFFFFFFF,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("wgpu: render pipeline %s: %w", p.Label, err)
	}
	return pipeline, nil
}

// Len returns the number of cached pipelines.
func (c *PipelineCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.pipelines)
}

// Stats returns cache hits and misses.
func (c *PipelineCache) Stats() (hits, misses uint64) {
	return c.hits.Load(), c.misses.Load()
}

// Destroy releases every cached object.
func (c *PipelineCache) Destroy() {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key, p := range c.pipelines {
		c.device.DestroyRenderPipeline(p)
		delete(c.pipelines, key)
	}
	for prog, res := range c.programs {
		c.device.DestroyPipelineLayout(res.layout)
		c.device.DestroyBindGroupLayout(res.bindLayout)
		c.device.DestroyShaderModule(res.module)
		delete(c.programs, prog)
	}
}

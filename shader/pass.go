package shader

import (
	"errors"
	"fmt"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
)

// Errors returned by NewPass.
var (
	// ErrInvalidSource is returned when WGSL source fails to parse or lower.
	ErrInvalidSource = errors.New("shader: invalid WGSL source")

	// ErrMissingEntry is returned when a requested entry point is absent.
	ErrMissingEntry = errors.New("shader: entry point not found")

	// ErrCompile is returned when SPIR-V generation fails.
	ErrCompile = errors.New("shader: compile failed")

	// ErrDuplicateName is returned when two bindings share a name.
	ErrDuplicateName = errors.New("shader: duplicate binding name")
)

// PassDescription describes a render pass.
type PassDescription struct {
	Name string

	// Source is WGSL containing both entry points.
	Source string

	// VertexEntry and PixelEntry name the entry points. Empty selects the
	// first entry point of the stage.
	VertexEntry string
	PixelEntry  string

	VertexAttributes []gpucore.VertexAttribute

	Blend        gpucore.BlendDescription
	DepthStencil gpucore.DepthStencilDescription
	Raster       gpucore.RasterDescription
}

// Pass is a shader program plus the fixed-function state it renders with.
type Pass struct {
	name    string
	program *gpucore.Program

	blend        gpucore.BlendDescription
	depthStencil gpucore.DepthStencilDescription
	raster       gpucore.RasterDescription

	shaders [2]*Shader
	empty   [2]*Shader
}

// NewPass reflects and compiles desc.Source and builds the stage slot maps.
func NewPass(desc PassDescription) (*Pass, error) {
	r, err := reflectBindings(desc.Source, desc.VertexEntry, desc.PixelEntry)
	if err != nil {
		return nil, fmt.Errorf("pass %q: %w", desc.Name, err)
	}
	spirv, err := compileSPIRV(desc.Source)
	if err != nil {
		return nil, fmt.Errorf("pass %q: %w", desc.Name, err)
	}

	p := &Pass{
		name:         desc.Name,
		blend:        desc.Blend,
		depthStencil: desc.DepthStencil,
		raster:       desc.Raster,
	}
	for _, stage := range []gpucore.ShaderStage{gpucore.StageVertex, gpucore.StagePixel} {
		p.empty[stage] = newShader(stage)
	}

	seen := make(map[string]bool, len(r.bindings))
	for _, b := range r.bindings {
		if seen[b.Name] {
			return nil, fmt.Errorf("pass %q: %w: %s", desc.Name, ErrDuplicateName, b.Name)
		}
		seen[b.Name] = true

		for _, stage := range []gpucore.ShaderStage{gpucore.StageVertex, gpucore.StagePixel} {
			if !b.Stages.Has(stage) {
				continue
			}
			if p.shaders[stage] == nil {
				p.shaders[stage] = newShader(stage)
			}
			s := p.shaders[stage]
			switch b.Kind {
			case gpucore.BindingUniform:
				s.ConstantBufferMapping.slots[b.Name] = int(b.Binding)
			case gpucore.BindingTexture:
				s.TextureMapping.slots[b.Name] = int(b.Binding)
			case gpucore.BindingSampler:
				s.SamplerMapping.slots[b.Name] = int(b.Binding)
			}
		}
	}

	stride := uint32(0)
	for _, a := range desc.VertexAttributes {
		if end := a.Offset + a.Format.Size(); end > stride {
			stride = end
		}
	}
	p.program = &gpucore.Program{
		Label:            desc.Name,
		Source:           desc.Source,
		VertexEntry:      r.vertexEntry,
		PixelEntry:       r.pixelEntry,
		SPIRV:            spirv,
		Bindings:         r.bindings,
		VertexAttributes: desc.VertexAttributes,
		VertexStride:     stride,
	}

	rendercore.Logger().Debug("shader: pass created",
		"pass", desc.Name, "bindings", len(r.bindings), "spirv_words", len(spirv))
	return p, nil
}

// Name returns the pass name.
func (p *Pass) Name() string { return p.name }

// Program returns the compiled program.
func (p *Pass) Program() *gpucore.Program { return p.program }

// GetShader returns the shader for stage. It never returns nil: a stage
// without bindings yields an empty shader whose lookups return
// gpucore.InvalidSlot.
func (p *Pass) GetShader(stage gpucore.ShaderStage) *Shader {
	if int(stage) >= len(p.shaders) {
		return newShader(stage)
	}
	if s := p.shaders[stage]; s != nil {
		return s
	}
	return p.empty[stage]
}

// BindShader makes the pass program current on dc.
func (p *Pass) BindShader(dc gpucore.DeviceContext) {
	dc.SetProgram(p.program)
}

// BindStates binds the state objects selected by mask.
func (p *Pass) BindStates(dc gpucore.DeviceContext, mask gpucore.StateType) {
	if mask.Has(gpucore.StateBlend) {
		dc.SetBlendState(p.blend)
	}
	if mask.Has(gpucore.StateDepthStencil) {
		dc.SetDepthStencilState(p.depthStencil)
	}
	if mask.Has(gpucore.StateRaster) {
		dc.SetRasterState(p.raster)
	}
}

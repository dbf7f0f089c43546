package wgpu

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/rendercore/gpucore"
)

func addressMode(m gpucore.AddressMode) gputypes.AddressMode {
	switch m {
	case gpucore.AddressClamp:
		return gputypes.AddressModeClampToEdge
	case gpucore.AddressMirror:
		return gputypes.AddressModeMirrorRepeat
	default:
		return gputypes.AddressModeRepeat
	}
}

func filterMode(f gpucore.FilterMode) gputypes.FilterMode {
	if f == gpucore.FilterLinear {
		return gputypes.FilterModeLinear
	}
	return gputypes.FilterModeNearest
}

func compareFunction(c gpucore.CompareFunc) gputypes.CompareFunction {
	switch c {
	case gpucore.CompareNever:
		return gputypes.CompareFunctionNever
	case gpucore.CompareLess:
		return gputypes.CompareFunctionLess
	case gpucore.CompareEqual:
		return gputypes.CompareFunctionEqual
	case gpucore.CompareLessEqual:
		return gputypes.CompareFunctionLessEqual
	case gpucore.CompareGreater:
		return gputypes.CompareFunctionGreater
	case gpucore.CompareNotEqual:
		return gputypes.CompareFunctionNotEqual
	case gpucore.CompareGreaterEqual:
		return gputypes.CompareFunctionGreaterEqual
	case gpucore.CompareAlways:
		return gputypes.CompareFunctionAlways
	default:
		return gputypes.CompareFunctionUndefined
	}
}

func samplerDescriptor(desc gpucore.SamplerDescription) *hal.SamplerDescriptor {
	anisotropy := desc.MaxAnisotropy
	if anisotropy == 0 {
		anisotropy = 1
	}
	return &hal.SamplerDescriptor{
		Label:        "rendercore_sampler",
		AddressModeU: addressMode(desc.AddressU),
		AddressModeV: addressMode(desc.AddressV),
		AddressModeW: addressMode(desc.AddressW),
		MagFilter:    filterMode(desc.MagFilter),
		MinFilter:    filterMode(desc.MinFilter),
		MipmapFilter: filterMode(desc.MipFilter),
		LodMinClamp:  desc.MinLOD,
		LodMaxClamp:  desc.MaxLOD,
		Compare:      compareFunction(desc.Compare),
		Anisotropy:   anisotropy,
	}
}

func topology(t gpucore.PrimitiveTopology) gputypes.PrimitiveTopology {
	switch t {
	case gpucore.TopologyPointList:
		return gputypes.PrimitiveTopologyPointList
	case gpucore.TopologyLineList:
		return gputypes.PrimitiveTopologyLineList
	case gpucore.TopologyLineStrip:
		return gputypes.PrimitiveTopologyLineStrip
	case gpucore.TopologyTriangleStrip:
		return gputypes.PrimitiveTopologyTriangleStrip
	default:
		return gputypes.PrimitiveTopologyTriangleList
	}
}

func primitiveState(t gpucore.PrimitiveTopology, r gpucore.RasterDescription) gputypes.PrimitiveState {
	s := gputypes.PrimitiveState{
		Topology:  topology(t),
		FrontFace: gputypes.FrontFaceCW,
	}
	if r.FrontCounterClockwise {
		s.FrontFace = gputypes.FrontFaceCCW
	}
	switch r.Cull {
	case gpucore.CullFront:
		s.CullMode = gputypes.CullModeFront
	case gpucore.CullBack:
		s.CullMode = gputypes.CullModeBack
	default:
		s.CullMode = gputypes.CullModeNone
	}
	return s
}

func blendFactor(f gpucore.BlendFactor) gputypes.BlendFactor {
	switch f {
	case gpucore.BlendOne:
		return gputypes.BlendFactorOne
	case gpucore.BlendSrcAlpha:
		return gputypes.BlendFactorSrcAlpha
	case gpucore.BlendInvSrcAlpha:
		return gputypes.BlendFactorOneMinusSrcAlpha
	case gpucore.BlendDstAlpha:
		return gputypes.BlendFactorDstAlpha
	case gpucore.BlendInvDstAlpha:
		return gputypes.BlendFactorOneMinusDstAlpha
	default:
		return gputypes.BlendFactorZero
	}
}

func blendOperation(op gpucore.BlendOp) gputypes.BlendOperation {
	switch op {
	case gpucore.BlendOpSubtract:
		return gputypes.BlendOperationSubtract
	case gpucore.BlendOpReverseSubtract:
		return gputypes.BlendOperationReverseSubtract
	case gpucore.BlendOpMin:
		return gputypes.BlendOperationMin
	case gpucore.BlendOpMax:
		return gputypes.BlendOperationMax
	default:
		return gputypes.BlendOperationAdd
	}
}

// blendState returns nil when blending is disabled, which replaces the
// destination.
func blendState(b gpucore.BlendDescription) *gputypes.BlendState {
	if !b.Enabled {
		return nil
	}
	return &gputypes.BlendState{
		Color: gputypes.BlendComponent{
			SrcFactor: blendFactor(b.SrcColor),
			DstFactor: blendFactor(b.DstColor),
			Operation: blendOperation(b.ColorOp),
		},
		Alpha: gputypes.BlendComponent{
			SrcFactor: blendFactor(b.SrcAlpha),
			DstFactor: blendFactor(b.DstAlpha),
			Operation: blendOperation(b.AlphaOp),
		},
	}
}

func depthStencilState(format gputypes.TextureFormat, d gpucore.DepthStencilDescription) *hal.DepthStencilState {
	if format == gputypes.TextureFormatUndefined {
		return nil
	}
	keep := hal.StencilFaceState{
		Compare:     gputypes.CompareFunctionAlways,
		FailOp:      hal.StencilOperationKeep,
		DepthFailOp: hal.StencilOperationKeep,
		PassOp:      hal.StencilOperationKeep,
	}
	s := &hal.DepthStencilState{
		Format:       format,
		DepthCompare: gputypes.CompareFunctionAlways,
		StencilFront: keep,
		StencilBack:  keep,
	}
	if d.DepthEnabled {
		s.DepthWriteEnabled = d.DepthWrite
		s.DepthCompare = compareFunction(d.DepthCompare)
	}
	return s
}

func vertexFormat(f gpucore.VertexFormat) gputypes.VertexFormat {
	switch f {
	case gpucore.VertexFloat32x2:
		return gputypes.VertexFormatFloat32x2
	case gpucore.VertexFloat32x4:
		return gputypes.VertexFormatFloat32x4
	default:
		return gputypes.VertexFormatFloat32x3
	}
}

func vertexLayout(p *gpucore.Program) []gputypes.VertexBufferLayout {
	if len(p.VertexAttributes) == 0 {
		return nil
	}
	attrs := make([]gputypes.VertexAttribute, len(p.VertexAttributes))
	for i, a := range p.VertexAttributes {
		attrs[i] = gputypes.VertexAttribute{
			Format:         vertexFormat(a.Format),
			Offset:         uint64(a.Offset),
			ShaderLocation: a.Location,
		}
	}
	return []gputypes.VertexBufferLayout{{
		ArrayStride: uint64(p.VertexStride),
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes:  attrs,
	}}
}

func visibility(s gpucore.ShaderStages) gputypes.ShaderStages {
	var v gputypes.ShaderStages
	if s.Has(gpucore.StageVertex) {
		v |= gputypes.ShaderStageVertex
	}
	if s.Has(gpucore.StagePixel) {
		v |= gputypes.ShaderStageFragment
	}
	if v == 0 {
		v = gputypes.ShaderStageVertex | gputypes.ShaderStageFragment
	}
	return v
}

func layoutEntry(b gpucore.ProgramBinding) gputypes.BindGroupLayoutEntry {
	e := gputypes.BindGroupLayoutEntry{Binding: b.Binding, Visibility: visibility(b.Stages)}
	switch b.Kind {
	case gpucore.BindingUniform:
		e.Buffer = &gputypes.BufferBindingLayout{Type: gputypes.BufferBindingTypeUniform}
	case gpucore.BindingTexture:
		dim := gputypes.TextureViewDimension2D
		if b.Dimension == gpucore.TextureDimCube {
			dim = gputypes.TextureViewDimensionCube
		}
		e.Texture = &gputypes.TextureBindingLayout{
			SampleType:    gputypes.TextureSampleTypeFloat,
			ViewDimension: dim,
		}
	case gpucore.BindingSampler:
		e.Sampler = &gputypes.SamplerBindingLayout{Type: gputypes.SamplerBindingTypeFiltering}
	}
	return e
}

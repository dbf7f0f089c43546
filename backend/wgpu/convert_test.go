package wgpu

import (
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/state"
)

func TestSamplerDescriptor(t *testing.T) {
	tests := []struct {
		name       string
		desc       gpucore.SamplerDescription
		minFilter  gputypes.FilterMode
		mipFilter  gputypes.FilterMode
		address    gputypes.AddressMode
		anisotropy uint16
	}{
		{"cube", state.DefaultCubeSampler, gputypes.FilterModeLinear, gputypes.FilterModeLinear, gputypes.AddressModeRepeat, 1},
		{"default", state.DefaultSampler, gputypes.FilterModeLinear, gputypes.FilterModeNearest, gputypes.AddressModeClampToEdge, 1},
		{"point", state.PointSampler, gputypes.FilterModeNearest, gputypes.FilterModeNearest, gputypes.AddressModeClampToEdge, 1},
		{"aniso", state.AnisotropicSampler, gputypes.FilterModeLinear, gputypes.FilterModeLinear, gputypes.AddressModeRepeat, 16},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := samplerDescriptor(tt.desc)
			if d.MinFilter != tt.minFilter || d.MipmapFilter != tt.mipFilter {
				t.Errorf("filters = %v/%v, want %v/%v", d.MinFilter, d.MipmapFilter, tt.minFilter, tt.mipFilter)
			}
			if d.AddressModeU != tt.address || d.AddressModeV != tt.address || d.AddressModeW != tt.address {
				t.Errorf("address = %v", d.AddressModeU)
			}
			if d.Anisotropy != tt.anisotropy {
				t.Errorf("Anisotropy = %d, want %d", d.Anisotropy, tt.anisotropy)
			}
			if d.LodMaxClamp != tt.desc.MaxLOD {
				t.Errorf("LodMaxClamp = %v", d.LodMaxClamp)
			}
		})
	}
}

func TestPrimitiveState(t *testing.T) {
	s := primitiveState(gpucore.TopologyTriangleList, state.RasterSkybox)
	if s.Topology != gputypes.PrimitiveTopologyTriangleList {
		t.Errorf("Topology = %v", s.Topology)
	}
	if s.CullMode != gputypes.CullModeNone {
		t.Errorf("skybox CullMode = %v, want none", s.CullMode)
	}
	s = primitiveState(gpucore.TopologyLineStrip, gpucore.RasterDescription{Cull: gpucore.CullBack, FrontCounterClockwise: true})
	if s.Topology != gputypes.PrimitiveTopologyLineStrip || s.CullMode != gputypes.CullModeBack || s.FrontFace != gputypes.FrontFaceCCW {
		t.Errorf("state = %+v", s)
	}
}

func TestBlendState(t *testing.T) {
	if blendState(state.BlendDefault) != nil {
		t.Error("disabled blend produced a blend state")
	}
	b := blendState(gpucore.BlendDescription{
		Enabled:  true,
		SrcColor: gpucore.BlendSrcAlpha,
		DstColor: gpucore.BlendInvSrcAlpha,
		ColorOp:  gpucore.BlendOpAdd,
		SrcAlpha: gpucore.BlendOne,
		DstAlpha: gpucore.BlendZero,
		AlphaOp:  gpucore.BlendOpMax,
	})
	if b.Color.SrcFactor != gputypes.BlendFactorSrcAlpha || b.Color.DstFactor != gputypes.BlendFactorOneMinusSrcAlpha {
		t.Errorf("color = %+v", b.Color)
	}
	if b.Alpha.Operation != gputypes.BlendOperationMax {
		t.Errorf("alpha op = %v", b.Alpha.Operation)
	}
}

func TestDepthStencilState(t *testing.T) {
	if depthStencilState(gputypes.TextureFormatUndefined, state.DepthSkybox) != nil {
		t.Error("depth state without depth format")
	}
	d := depthStencilState(gputypes.TextureFormatDepth24Plus, state.DepthSkybox)
	if d.DepthWriteEnabled || d.DepthCompare != gputypes.CompareFunctionLessEqual {
		t.Errorf("skybox depth = write %v compare %v", d.DepthWriteEnabled, d.DepthCompare)
	}
	d = depthStencilState(gputypes.TextureFormatDepth24Plus, gpucore.DepthStencilDescription{DepthWrite: true})
	if d.DepthWriteEnabled || d.DepthCompare != gputypes.CompareFunctionAlways {
		t.Errorf("disabled depth = write %v compare %v", d.DepthWriteEnabled, d.DepthCompare)
	}
}

func TestLayoutEntry(t *testing.T) {
	tests := []struct {
		b       gpucore.ProgramBinding
		check   func(gputypes.BindGroupLayoutEntry) bool
		visible gputypes.ShaderStages
	}{
		{
			gpucore.ProgramBinding{Binding: 0, Kind: gpucore.BindingUniform, Stages: gpucore.StagesVertex},
			func(e gputypes.BindGroupLayoutEntry) bool {
				return e.Buffer != nil && e.Buffer.Type == gputypes.BufferBindingTypeUniform
			},
			gputypes.ShaderStageVertex,
		},
		{
			gpucore.ProgramBinding{Binding: 1, Kind: gpucore.BindingTexture, Dimension: gpucore.TextureDimCube, Stages: gpucore.StagesPixel},
			func(e gputypes.BindGroupLayoutEntry) bool {
				return e.Texture != nil && e.Texture.ViewDimension == gputypes.TextureViewDimensionCube
			},
			gputypes.ShaderStageFragment,
		},
		{
			gpucore.ProgramBinding{Binding: 2, Kind: gpucore.BindingSampler},
			func(e gputypes.BindGroupLayoutEntry) bool {
				return e.Sampler != nil && e.Sampler.Type == gputypes.SamplerBindingTypeFiltering
			},
			gputypes.ShaderStageVertex | gputypes.ShaderStageFragment,
		},
	}
	for _, tt := range tests {
		e := layoutEntry(tt.b)
		if e.Binding != tt.b.Binding || !tt.check(e) {
			t.Errorf("%s binding %d: entry = %+v", tt.b.Kind, tt.b.Binding, e)
		}
		if e.Visibility != tt.visible {
			t.Errorf("%s visibility = %v, want %v", tt.b.Kind, e.Visibility, tt.visible)
		}
	}
}

func TestVertexLayout(t *testing.T) {
	p := &gpucore.Program{
		VertexAttributes: []gpucore.VertexAttribute{{Location: 0, Format: gpucore.VertexFloat32x3}},
		VertexStride:     12,
	}
	l := vertexLayout(p)
	if len(l) != 1 || l[0].ArrayStride != 12 || len(l[0].Attributes) != 1 {
		t.Fatalf("layout = %+v", l)
	}
	if l[0].Attributes[0].Format != gputypes.VertexFormatFloat32x3 {
		t.Errorf("format = %v", l[0].Attributes[0].Format)
	}
	if vertexLayout(&gpucore.Program{}) != nil {
		t.Error("layout for program without attributes")
	}
}

// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"fmt"
	"io"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/geometry"
	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/shader"
	"github.com/gogpu/rendercore/state"
	"github.com/gogpu/rendercore/texture"
)

// boxPositions is the skybox mesh: a cube of edge 20 centered at the
// origin, two triangles per face.
var boxPositions = [36]mgl32.Vec3{
	{-10, 10, -10}, {-10, -10, -10}, {10, -10, -10},
	{10, -10, -10}, {10, 10, -10}, {-10, 10, -10},

	{-10, -10, 10}, {-10, -10, -10}, {-10, 10, -10},
	{-10, 10, -10}, {-10, 10, 10}, {-10, -10, 10},

	{10, -10, -10}, {10, -10, 10}, {10, 10, 10},
	{10, 10, 10}, {10, 10, -10}, {10, -10, -10},

	{-10, -10, 10}, {-10, 10, 10}, {10, 10, 10},
	{10, 10, 10}, {10, -10, 10}, {-10, -10, 10},

	{-10, 10, -10}, {10, 10, -10}, {10, 10, 10},
	{10, 10, 10}, {-10, 10, 10}, {-10, 10, -10},

	{-10, -10, -10}, {-10, -10, 10}, {10, -10, -10},
	{10, -10, -10}, {-10, -10, 10}, {10, -10, 10},
}

// SkyboxPositions returns a copy of the skybox mesh.
func SkyboxPositions() []mgl32.Vec3 {
	out := make([]mgl32.Vec3, len(boxPositions))
	copy(out, boxPositions[:])
	return out
}

// SkyboxCore draws a cube map around the camera.
//
// The cube texture and sampler description may be set at any time. While
// detached they are only stored; attaching builds the texture view and
// sampler from the latest values, and setting them while attached rebuilds
// in place.
//
// A SkyboxCore must be used from a single goroutine.
type SkyboxCore struct {
	GeometryCore

	cubeTexture *property[io.Reader]
	samplerDesc *property[gpucore.SamplerDescription]

	cubeTextureName string
	samplerName     string
	decodeOpts      []texture.DecodeOption

	proxy   *texture.ViewProxy
	sampler *state.SamplerHandle

	cubeTextureSlot    int
	textureSamplerSlot int
}

var _ RenderCore = (*SkyboxCore)(nil)

// NewSkyboxCore creates a detached skybox core.
func NewSkyboxCore(opts ...SkyboxOption) *SkyboxCore {
	s := &SkyboxCore{
		cubeTextureName:    shader.CubeMapName,
		samplerName:        shader.CubeMapSamplerName,
		cubeTextureSlot:    gpucore.InvalidSlot,
		textureSamplerSlot: gpucore.InvalidSlot,
	}
	s.init(s, state.RasterSkybox)

	s.cubeTexture = newProperty(&s.lc, io.Reader(nil), texture.SameStream, s.recreateView, s.attachView)
	s.samplerDesc = newProperty(&s.lc, state.DefaultCubeSampler,
		equalComparable[gpucore.SamplerDescription], s.replaceSampler, s.attachSampler)

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// CubeTexture returns the current cube texture stream, or nil.
func (s *SkyboxCore) CubeTexture() io.Reader {
	return s.cubeTexture.value
}

// SetCubeTexture sets the cube texture stream. The stream is decoded by
// texture.DecodeCube; nil draws with no texture. Setting the current
// stream again does nothing; see texture.SameStream for what counts as the
// same stream.
func (s *SkyboxCore) SetCubeTexture(stream io.Reader) {
	s.cubeTexture.set(&s.lc, stream, s.invalidate)
}

// SamplerDescription returns the cube sampler description.
func (s *SkyboxCore) SamplerDescription() gpucore.SamplerDescription {
	return s.samplerDesc.value
}

// SetSamplerDescription sets the cube sampler description. Setting an
// equal description does nothing.
func (s *SkyboxCore) SetSamplerDescription(desc gpucore.SamplerDescription) {
	s.samplerDesc.set(&s.lc, desc, s.invalidate)
}

// CubeTextureName returns the shader name of the cube texture.
func (s *SkyboxCore) CubeTextureName() string { return s.cubeTextureName }

// SetCubeTextureName sets the shader name of the cube texture. It takes
// effect on the next pass change.
func (s *SkyboxCore) SetCubeTextureName(name string) { s.cubeTextureName = name }

// SamplerName returns the shader name of the cube sampler.
func (s *SkyboxCore) SamplerName() string { return s.samplerName }

// SetSamplerName sets the shader name of the cube sampler. It takes effect
// on the next pass change.
func (s *SkyboxCore) SetSamplerName(name string) { s.samplerName = name }

// CubeTextureSlot returns the resolved pixel texture slot.
func (s *SkyboxCore) CubeTextureSlot() int { return s.cubeTextureSlot }

// TextureSamplerSlot returns the resolved pixel sampler slot.
func (s *SkyboxCore) TextureSamplerSlot() int { return s.textureSamplerSlot }

// Proxy returns the texture view proxy, or nil when detached.
func (s *SkyboxCore) Proxy() *texture.ViewProxy { return s.proxy }

// SamplerHandle returns the sampler handle, or nil when detached.
func (s *SkyboxCore) SamplerHandle() *state.SamplerHandle { return s.sampler }

// VertexBuffer returns the skybox vertex buffer, or nil when detached.
func (s *SkyboxCore) VertexBuffer() *geometry.VertexBuffer {
	if s.geometry == nil {
		return nil
	}
	return s.geometry.VertexBuffer()
}

func (s *SkyboxCore) buildGeometry() GeometryBuffer {
	return &geometry.BufferModel[mgl32.Vec3]{
		Label:              "skybox",
		Geometry:           geometry.NewPointGeometry(boxPositions[:]),
		Topology:           gpucore.TopologyTriangleList,
		OnBuildVertexArray: geometry.Positions,
	}
}

// onAttach creates the empty proxy. The texture and sampler are built by
// their properties when the lifecycle enters Attached.
func (s *SkyboxCore) onAttach(t Technique) error {
	if t.StateManager() == nil {
		return ErrNoStateManager
	}
	s.proxy = collect(&s.GeometryCore, texture.NewViewProxy(t.Device(), "skybox", s.decodeOpts...))
	return nil
}

func (s *SkyboxCore) onDetach() {
	s.proxy = nil
	s.sampler = nil
	s.cubeTextureSlot = gpucore.InvalidSlot
	s.textureSamplerSlot = gpucore.InvalidSlot
}

func (s *SkyboxCore) onDefaultPassChanged(pass *shader.Pass) {
	ps := pass.GetShader(gpucore.StagePixel)
	s.cubeTextureSlot = ps.TextureMapping.TryGetBindSlot(s.cubeTextureName)
	s.textureSamplerSlot = ps.SamplerMapping.TryGetBindSlot(s.samplerName)
	if s.cubeTextureSlot == gpucore.InvalidSlot || s.textureSamplerSlot == gpucore.InvalidSlot {
		rendercore.Logger().Warn("render: skybox slots unresolved",
			"pass", pass.Name(),
			"texture", s.cubeTextureName, "textureSlot", s.cubeTextureSlot,
			"sampler", s.samplerName, "samplerSlot", s.textureSamplerSlot)
	}
}

// onRender draws regardless of whether the slots resolved; unresolved
// bindings are skipped by the shader.
func (s *SkyboxCore) onRender(_ *Context, dc gpucore.DeviceContext) {
	pass := s.defaultPass
	pass.BindShader(dc)
	pass.BindStates(dc, gpucore.StateBlend|gpucore.StateDepthStencil)
	ps := pass.GetShader(gpucore.StagePixel)
	ps.BindTexture(dc, s.cubeTextureSlot, s.proxy.View())
	ps.BindSampler(dc, s.textureSamplerSlot, s.sampler)
	dc.Draw(s.geometry.VertexBuffer().ElementCount, 0)
}

func (s *SkyboxCore) attachView(stream io.Reader) error {
	if stream != nil {
		s.createView(stream)
	}
	return nil
}

func (s *SkyboxCore) recreateView(stream io.Reader) {
	s.createView(stream)
}

// createView fills the proxy from stream. Decode failures leave the proxy
// empty and are not fatal.
func (s *SkyboxCore) createView(stream io.Reader) {
	if err := s.proxy.CreateView(stream); err != nil {
		rendercore.Logger().Warn("render: skybox texture", "err", err)
	}
}

func (s *SkyboxCore) attachSampler(desc gpucore.SamplerDescription) error {
	h, err := s.technique.StateManager().Register(desc)
	if err != nil {
		return fmt.Errorf("render: skybox sampler: %w", err)
	}
	s.sampler = collect(&s.GeometryCore, h)
	return nil
}

func (s *SkyboxCore) replaceSampler(desc gpucore.SamplerDescription) {
	if s.sampler != nil {
		s.removeAndRelease(s.sampler)
		s.sampler = nil
	}
	if err := s.attachSampler(desc); err != nil {
		rendercore.Logger().Warn("render: skybox sampler replace failed", "err", err)
	}
}

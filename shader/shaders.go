package shader

import (
	_ "embed"

	"github.com/gogpu/rendercore/gpucore"
	"github.com/gogpu/rendercore/state"
)

//go:embed shaders/skybox.wgsl
var skyboxShaderSource string

// Binding names used by the built-in shaders.
const (
	// CameraName is the per-frame camera constant buffer.
	CameraName = "camera"

	// CubeMapName is the environment cube texture.
	CubeMapName = "cube_map"

	// CubeMapSamplerName is the sampler for CubeMapName.
	CubeMapSamplerName = "cube_map_sampler"
)

// Built-in pass names.
const (
	PassSkybox = "skybox"
)

// CameraBufferSize is the size of the camera constant buffer: one 4x4
// float32 view-projection matrix.
const CameraBufferSize = 64

// SkyboxShaderSource returns the WGSL source of the skybox pass.
func SkyboxShaderSource() string {
	return skyboxShaderSource
}

// SkyboxPassDescription returns the description of the built-in skybox pass.
func SkyboxPassDescription() PassDescription {
	return PassDescription{
		Name:        PassSkybox,
		Source:      skyboxShaderSource,
		VertexEntry: "vs_main",
		PixelEntry:  "fs_main",
		VertexAttributes: []gpucore.VertexAttribute{
			{Location: 0, Format: gpucore.VertexFloat32x3, Offset: 0},
		},
		Blend:        state.BlendDefault,
		DepthStencil: state.DepthSkybox,
		Raster:       state.RasterSkybox,
	}
}

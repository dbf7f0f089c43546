package state

import "github.com/gogpu/rendercore/gpucore"

// maxLOD leaves the mip chain unclamped.
const maxLOD = 32

// Sampler defaults.
var (
	// DefaultCubeSampler is trilinear with wrap addressing. Used for
	// environment cubes.
	DefaultCubeSampler = gpucore.SamplerDescription{
		MinFilter: gpucore.FilterLinear,
		MagFilter: gpucore.FilterLinear,
		MipFilter: gpucore.FilterLinear,
		AddressU:  gpucore.AddressWrap,
		AddressV:  gpucore.AddressWrap,
		AddressW:  gpucore.AddressWrap,
		MaxLOD:    maxLOD,
	}

	// DefaultSampler is bilinear with clamp addressing.
	DefaultSampler = gpucore.SamplerDescription{
		MinFilter: gpucore.FilterLinear,
		MagFilter: gpucore.FilterLinear,
		MipFilter: gpucore.FilterPoint,
		AddressU:  gpucore.AddressClamp,
		AddressV:  gpucore.AddressClamp,
		AddressW:  gpucore.AddressClamp,
		MaxLOD:    maxLOD,
	}

	// PointSampler disables filtering.
	PointSampler = gpucore.SamplerDescription{
		AddressU: gpucore.AddressClamp,
		AddressV: gpucore.AddressClamp,
		AddressW: gpucore.AddressClamp,
		MaxLOD:   maxLOD,
	}

	// AnisotropicSampler is DefaultCubeSampler with 16x anisotropy.
	AnisotropicSampler = func() gpucore.SamplerDescription {
		d := DefaultCubeSampler
		d.MaxAnisotropy = 16
		return d
	}()
)

// Rasterizer defaults.
var (
	// RasterDefault culls back faces with clockwise front faces.
	RasterDefault = gpucore.RasterDescription{
		Fill:      gpucore.FillSolid,
		Cull:      gpucore.CullBack,
		DepthClip: true,
	}

	// RasterSkybox draws both faces; the camera sits inside the cube.
	RasterSkybox = gpucore.RasterDescription{
		Fill:      gpucore.FillSolid,
		Cull:      gpucore.CullNone,
		DepthClip: true,
	}
)

// Blend and depth defaults.
var (
	// BlendDefault writes the source color unchanged.
	BlendDefault = gpucore.BlendDescription{
		SrcColor: gpucore.BlendOne,
		DstColor: gpucore.BlendZero,
		ColorOp:  gpucore.BlendOpAdd,
		SrcAlpha: gpucore.BlendOne,
		DstAlpha: gpucore.BlendZero,
		AlphaOp:  gpucore.BlendOpAdd,
	}

	// DepthDefault is the usual less-than test with writes.
	DepthDefault = gpucore.DepthStencilDescription{
		DepthEnabled: true,
		DepthWrite:   true,
		DepthCompare: gpucore.CompareLess,
	}

	// DepthSkybox passes at the far plane and never writes, so the sky sits
	// behind everything drawn before or after it.
	DepthSkybox = gpucore.DepthStencilDescription{
		DepthEnabled: true,
		DepthWrite:   false,
		DepthCompare: gpucore.CompareLessEqual,
	}
)

package gpucore

// FilterMode selects texel filtering.
type FilterMode uint8

// Filter modes.
const (
	FilterPoint FilterMode = iota
	FilterLinear
)

// AddressMode selects how out-of-range texture coordinates are resolved.
type AddressMode uint8

// Address modes.
const (
	AddressWrap AddressMode = iota
	AddressClamp
	AddressMirror
)

// CompareFunc is a depth or sampler comparison function.
type CompareFunc uint8

// Comparison functions. CompareUndefined disables comparison sampling.
const (
	CompareUndefined CompareFunc = iota
	CompareNever
	CompareLess
	CompareEqual
	CompareLessEqual
	CompareGreater
	CompareNotEqual
	CompareGreaterEqual
	CompareAlways
)

// SamplerDescription describes a sampler state object.
//
// It is a comparable value type: two descriptions that compare equal with ==
// share one sampler in a state registry.
type SamplerDescription struct {
	MinFilter FilterMode
	MagFilter FilterMode
	MipFilter FilterMode

	AddressU AddressMode
	AddressV AddressMode
	AddressW AddressMode

	// MaxAnisotropy is clamped to [1, 16]. Zero means 1.
	MaxAnisotropy uint16

	Compare CompareFunc

	MinLOD float32
	MaxLOD float32
}

// CullMode selects which triangle faces are discarded.
type CullMode uint8

// Cull modes.
const (
	CullNone CullMode = iota
	CullFront
	CullBack
)

// FillMode selects how triangles are rasterized.
type FillMode uint8

// Fill modes.
const (
	FillSolid FillMode = iota
	FillWireframe
)

// RasterDescription describes rasterizer state.
type RasterDescription struct {
	Fill                  FillMode
	Cull                  CullMode
	FrontCounterClockwise bool
	DepthClip             bool
}

// BlendFactor is a blend equation operand.
type BlendFactor uint8

// Blend factors.
const (
	BlendZero BlendFactor = iota
	BlendOne
	BlendSrcAlpha
	BlendInvSrcAlpha
	BlendDstAlpha
	BlendInvDstAlpha
)

// BlendOp is a blend equation operator.
type BlendOp uint8

// Blend operators.
const (
	BlendOpAdd BlendOp = iota
	BlendOpSubtract
	BlendOpReverseSubtract
	BlendOpMin
	BlendOpMax
)

// BlendDescription describes color target blending.
// When Enabled is false the source replaces the destination.
type BlendDescription struct {
	Enabled bool

	SrcColor BlendFactor
	DstColor BlendFactor
	ColorOp  BlendOp

	SrcAlpha BlendFactor
	DstAlpha BlendFactor
	AlphaOp  BlendOp
}

// DepthStencilDescription describes depth testing. Stencil is not used by
// any core and is left disabled by backends.
type DepthStencilDescription struct {
	DepthEnabled bool
	DepthWrite   bool
	DepthCompare CompareFunc
}

package gpucore

// BindingKind is the kind of resource a shader binding expects.
type BindingKind uint8

// Binding kinds.
const (
	BindingUniform BindingKind = iota + 1
	BindingTexture
	BindingSampler
)

// String returns the kind name.
func (k BindingKind) String() string {
	switch k {
	case BindingUniform:
		return "Uniform"
	case BindingTexture:
		return "Texture"
	case BindingSampler:
		return "Sampler"
	default:
		return "Unknown"
	}
}

// TextureDimension is the view dimension a texture binding expects.
type TextureDimension uint8

// Texture view dimensions.
const (
	TextureDim2D TextureDimension = iota
	TextureDimCube
)

// ProgramBinding is one resource binding reflected from shader source.
type ProgramBinding struct {
	// Name is the variable name in the shader source.
	Name string

	// Group and Binding locate the resource in the pipeline layout.
	// Binding doubles as the slot number seen by render cores.
	Group   uint32
	Binding uint32

	Kind BindingKind

	// Dimension is meaningful for BindingTexture only.
	Dimension TextureDimension

	// Stages lists the entry points that reference the binding.
	Stages ShaderStages
}

// Program is a compiled vertex+pixel shader pair plus the reflection data a
// backend needs to build a pipeline for it.
type Program struct {
	Label  string
	Source string

	VertexEntry string
	PixelEntry  string

	// SPIRV is the validated compilation of Source. Backends that consume
	// WGSL directly may ignore it.
	SPIRV []uint32

	Bindings []ProgramBinding

	// VertexAttributes describes the single interleaved vertex buffer the
	// program reads.
	VertexAttributes []VertexAttribute
	VertexStride     uint32
}

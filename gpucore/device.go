package gpucore

// Buffer is a GPU buffer.
type Buffer interface {
	// Size returns the buffer size in bytes.
	Size() uint64
	Release()
}

// TextureView is a shader-visible view of a texture.
type TextureView interface {
	Release()
}

// Sampler is a sampler state object.
type Sampler interface {
	Description() SamplerDescription
	Release()
}

// Device creates GPU resources.
type Device interface {
	// CreateVertexBuffer creates a vertex buffer initialized with data.
	CreateVertexBuffer(label string, data []byte) (Buffer, error)

	// CreateUniformBuffer creates a zeroed uniform buffer of size bytes.
	CreateUniformBuffer(label string, size uint64) (Buffer, error)

	// WriteBuffer writes data at offset into buf.
	WriteBuffer(buf Buffer, offset uint64, data []byte) error

	// CreateCubeTexture uploads img and returns a cube view of it.
	CreateCubeTexture(label string, img *CubeImage) (TextureView, error)

	// CreateSampler creates a sampler for desc.
	CreateSampler(desc SamplerDescription) (Sampler, error)
}

// DeviceContext records draw state and draw calls for one render pass.
//
// Bindings persist across draws until overwritten. Slot arguments equal to
// [InvalidSlot] are ignored. Draw-time failures are logged by the backend and
// never returned, since a frame in flight cannot recover from them.
type DeviceContext interface {
	SetProgram(p *Program)
	SetBlendState(desc BlendDescription)
	SetDepthStencilState(desc DepthStencilDescription)
	SetRasterState(desc RasterDescription)

	SetTexture(stage ShaderStage, slot int, view TextureView)
	SetSampler(stage ShaderStage, slot int, s Sampler)
	SetConstantBuffer(stage ShaderStage, slot int, buf Buffer)

	SetVertexBuffer(buf Buffer, stride, offset uint32)
	SetTopology(t PrimitiveTopology)

	Draw(vertexCount, startVertex uint32)
}

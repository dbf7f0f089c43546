package gpucore

// InvalidSlot is the slot value for a binding name the active shader does
// not declare. Binding to it is a silent no-op.
const InvalidSlot = -1

// ShaderStage identifies a programmable pipeline stage.
type ShaderStage uint8

// Shader stages.
const (
	// StageVertex is the vertex stage.
	StageVertex ShaderStage = iota

	// StagePixel is the pixel (fragment) stage.
	StagePixel
)

// String returns the stage name.
func (s ShaderStage) String() string {
	switch s {
	case StageVertex:
		return "Vertex"
	case StagePixel:
		return "Pixel"
	default:
		return "Unknown"
	}
}

// ShaderStages is a bitmask of shader stages.
type ShaderStages uint8

// Stage masks.
const (
	StagesVertex ShaderStages = 1 << StageVertex
	StagesPixel  ShaderStages = 1 << StagePixel
	StagesAll                 = StagesVertex | StagesPixel
)

// Has reports whether the mask includes stage.
func (s ShaderStages) Has(stage ShaderStage) bool {
	return s&(1<<stage) != 0
}

// StateType is a bitmask selecting which fixed-function state objects a pass
// binds.
type StateType uint8

// State object selectors.
const (
	StateBlend StateType = 1 << iota
	StateDepthStencil
	StateRaster

	StateAll = StateBlend | StateDepthStencil | StateRaster
)

// Has reports whether the mask includes t.
func (s StateType) Has(t StateType) bool {
	return s&t == t
}

// String returns a "|"-joined list of the selected states.
func (s StateType) String() string {
	if s == 0 {
		return "None"
	}
	out := ""
	add := func(name string) {
		if out != "" {
			out += "|"
		}
		out += name
	}
	if s.Has(StateBlend) {
		add("Blend")
	}
	if s.Has(StateDepthStencil) {
		add("DepthStencil")
	}
	if s.Has(StateRaster) {
		add("Raster")
	}
	return out
}

// PrimitiveTopology describes how vertices assemble into primitives.
type PrimitiveTopology uint8

// Primitive topologies.
const (
	TopologyUndefined PrimitiveTopology = iota
	TopologyPointList
	TopologyLineList
	TopologyLineStrip
	TopologyTriangleList
	TopologyTriangleStrip
)

var topologyNames = [...]string{
	TopologyUndefined:     "Undefined",
	TopologyPointList:     "PointList",
	TopologyLineList:      "LineList",
	TopologyLineStrip:     "LineStrip",
	TopologyTriangleList:  "TriangleList",
	TopologyTriangleStrip: "TriangleStrip",
}

// String returns the topology name.
func (t PrimitiveTopology) String() string {
	if int(t) < len(topologyNames) {
		return topologyNames[t]
	}
	return "Unknown"
}

// VertexFormat is the format of a single vertex attribute.
type VertexFormat uint8

// Vertex attribute formats.
const (
	VertexFloat32x2 VertexFormat = iota + 1
	VertexFloat32x3
	VertexFloat32x4
)

// Size returns the attribute size in bytes.
func (f VertexFormat) Size() uint32 {
	switch f {
	case VertexFloat32x2:
		return 8
	case VertexFloat32x3:
		return 12
	case VertexFloat32x4:
		return 16
	default:
		return 0
	}
}

// VertexAttribute describes one attribute in an interleaved vertex buffer.
type VertexAttribute struct {
	Location uint32
	Format   VertexFormat
	Offset   uint32
}

// CubeFace indexes the six faces of a cube texture in the conventional
// layer order.
type CubeFace int

// Cube faces in layer order.
const (
	FacePositiveX CubeFace = iota
	FaceNegativeX
	FacePositiveY
	FaceNegativeY
	FacePositiveZ
	FaceNegativeZ
)

// CubeImage holds six square RGBA8 faces ready for upload.
// Faces are indexed by [CubeFace]; each face has Size*Size*4 bytes.
type CubeImage struct {
	Size  int
	Faces [6][]byte
}

// Validate reports whether every face has the expected length.
func (c *CubeImage) Validate() error {
	if c == nil || c.Size <= 0 {
		return ErrInvalidCubeImage
	}
	want := c.Size * c.Size * 4
	for _, f := range c.Faces {
		if len(f) != want {
			return ErrInvalidCubeImage
		}
	}
	return nil
}

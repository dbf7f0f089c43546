package geometry

import (
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/gogpu/rendercore"
	"github.com/gogpu/rendercore/gpucore"
)

// Errors returned by BufferModel.
var (
	// ErrNoGeometry is returned by Attach when the model has no geometry.
	ErrNoGeometry = errors.New("geometry: no geometry")

	// ErrNoExtractor is returned by Attach when OnBuildVertexArray is nil.
	ErrNoExtractor = errors.New("geometry: no vertex extraction callback")

	// ErrVertexType is returned when V has no fixed binary size.
	ErrVertexType = errors.New("geometry: vertex type has no fixed size")
)

// VertexBuffer is a built vertex buffer.
type VertexBuffer struct {
	Buffer       gpucore.Buffer
	ElementCount uint32
	Stride       uint32
}

// BufferModel builds and owns the vertex buffer for a geometry.
//
// V must be a fixed-size type accepted by encoding/binary, such as
// mgl32.Vec3 or a struct of float32 fields. Vertices are encoded
// little-endian.
type BufferModel[V any] struct {
	Label    string
	Geometry *PointGeometry
	Topology gpucore.PrimitiveTopology

	// OnBuildVertexArray extracts the vertex array from Geometry.
	OnBuildVertexArray func(g *PointGeometry) []V

	vb *VertexBuffer
}

// Attach builds the vertex buffer on device, replacing any previous one.
// On error the model holds no buffer.
func (m *BufferModel[V]) Attach(device gpucore.Device) error {
	m.Release()

	if m.Geometry == nil {
		return ErrNoGeometry
	}
	if m.OnBuildVertexArray == nil {
		return ErrNoExtractor
	}

	var zero V
	stride := binary.Size(zero)
	if stride <= 0 {
		return fmt.Errorf("%w: %T", ErrVertexType, zero)
	}

	vertices := m.OnBuildVertexArray(m.Geometry)
	data, err := binary.Append(make([]byte, 0, stride*len(vertices)), binary.LittleEndian, vertices)
	if err != nil {
		return fmt.Errorf("geometry: encode vertices: %w", err)
	}

	buf, err := device.CreateVertexBuffer(m.Label, data)
	if err != nil {
		return fmt.Errorf("geometry: create vertex buffer: %w", err)
	}
	m.vb = &VertexBuffer{
		Buffer:       buf,
		ElementCount: uint32(len(vertices)),
		Stride:       uint32(stride),
	}
	rendercore.Logger().Debug("geometry: vertex buffer built",
		"label", m.Label, "vertices", len(vertices), "bytes", len(data))
	return nil
}

// VertexBuffer returns the built buffer, or nil when not attached.
func (m *BufferModel[V]) VertexBuffer() *VertexBuffer {
	return m.vb
}

// AttachBuffers binds the vertex buffer and topology on dc.
// It reports false when there is nothing to bind.
func (m *BufferModel[V]) AttachBuffers(dc gpucore.DeviceContext) bool {
	if m.vb == nil {
		return false
	}
	dc.SetVertexBuffer(m.vb.Buffer, m.vb.Stride, 0)
	dc.SetTopology(m.Topology)
	return true
}

// Release destroys the vertex buffer. Safe to call repeatedly.
func (m *BufferModel[V]) Release() {
	if m.vb == nil {
		return
	}
	m.vb.Buffer.Release()
	m.vb = nil
}

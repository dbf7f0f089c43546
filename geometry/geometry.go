package geometry

import "github.com/go-gl/mathgl/mgl32"

// PointGeometry is an ordered list of positions.
type PointGeometry struct {
	Positions []mgl32.Vec3
}

// NewPointGeometry copies positions into a new geometry.
func NewPointGeometry(positions []mgl32.Vec3) *PointGeometry {
	return &PointGeometry{Positions: append([]mgl32.Vec3(nil), positions...)}
}

// Len returns the number of positions.
func (g *PointGeometry) Len() int {
	if g == nil {
		return 0
	}
	return len(g.Positions)
}

// Bounds returns the axis-aligned bounding box of the positions.
// An empty geometry returns two zero vectors.
func (g *PointGeometry) Bounds() (minV, maxV mgl32.Vec3) {
	if g.Len() == 0 {
		return minV, maxV
	}
	minV, maxV = g.Positions[0], g.Positions[0]
	for _, p := range g.Positions[1:] {
		for i := range 3 {
			minV[i] = min(minV[i], p[i])
			maxV[i] = max(maxV[i], p[i])
		}
	}
	return minV, maxV
}

// Positions returns the positions unchanged. It is the vertex-extraction
// callback for layouts that carry position only.
func Positions(g *PointGeometry) []mgl32.Vec3 {
	return g.Positions
}

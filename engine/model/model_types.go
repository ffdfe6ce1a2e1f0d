package model

import "github.com/go-gl/mathgl/mgl32"

// Mesh is the CPU copy of a model's geometry. Only positions and indices are kept;
// shadow passes need nothing else.
type Mesh struct {
	// Name is the mesh identifier.
	Name string

	// Positions are the vertex positions in model space.
	Positions []mgl32.Vec3

	// Indices are the triangle indices into Positions.
	Indices []uint32
}

// boxFaces lists two triangles per face using the BoxBounds corner numbering
// (bit 0 = +X, bit 1 = +Y, bit 2 = +Z).
var boxFaces = []uint32{
	0, 2, 1, 1, 2, 3, // -Z
	4, 5, 6, 5, 7, 6, // +Z
	0, 4, 2, 2, 4, 6, // -X
	1, 3, 5, 3, 7, 5, // +X
	0, 1, 4, 1, 5, 4, // -Y
	2, 6, 3, 3, 6, 7, // +Y
}

// NewBoxMesh builds a closed box centered on the origin.
//
// Parameters:
//   - halfExtents: half the size of the box along each axis
//
// Returns:
//   - Mesh: eight positions and twelve triangles
func NewBoxMesh(halfExtents mgl32.Vec3) Mesh {
	positions := make([]mgl32.Vec3, 8)
	for i := range positions {
		p := halfExtents
		for axis := 0; axis < 3; axis++ {
			if i&(1<<axis) == 0 {
				p[axis] = -p[axis]
			}
		}
		positions[i] = p
	}
	indices := make([]uint32, len(boxFaces))
	copy(indices, boxFaces)
	return Mesh{Name: "box", Positions: positions, Indices: indices}
}

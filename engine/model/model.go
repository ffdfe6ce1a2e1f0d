package model

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/go-gl/mathgl/mgl32"
)

// model is the implementation of the Model interface.
type model struct {
	mu             *sync.RWMutex
	name           string
	mesh           Mesh
	bounds         common.BoxBounds
	boundingRadius float32
	fixedRadius    bool
}

// Model defines the interface for the source geometry of a shadow caster.
// A Model owns the authoritative local-space bounds of its mesh; scene nodes derive
// their world bounds from it every frame.
type Model interface {
	// Name retrieves the model identifier.
	//
	// Returns:
	//   - string: the model name
	Name() string

	// Mesh retrieves the positions and triangle indices of the model.
	//
	// Returns:
	//   - Mesh: the mesh data
	Mesh() Mesh

	// SetMesh replaces the mesh and rebuilds the bounds from its positions.
	//
	// Parameters:
	//   - mesh: the new mesh data
	SetMesh(mesh Mesh)

	// IndexCount returns the number of indices in the model's mesh.
	//
	// Returns:
	//   - int: the index count
	IndexCount() int

	// TriangleCount returns the number of triangles drawn for the mesh.
	//
	// Returns:
	//   - int: IndexCount / 3
	TriangleCount() int

	// Bounds returns the local-space axis-aligned box around every position.
	//
	// Returns:
	//   - common.BoxBounds: the local bounds
	Bounds() common.BoxBounds

	// BoundingRadius returns the bounding sphere radius for this model, measured as
	// the maximum vertex distance from the origin.
	//
	// Returns:
	//   - float32: the bounding radius
	BoundingRadius() float32
}

var _ Model = &model{}

// NewModel creates a new Model instance with the specified options applied.
//
// Parameters:
//   - options: a variadic list of ModelBuilderOption functions to configure the Model
//
// Returns:
//   - Model: a new instance of Model configured with the provided options
func NewModel(options ...ModelBuilderOption) Model {
	m := &model{
		mu: &sync.RWMutex{},
	}
	for _, opt := range options {
		opt(m)
	}
	return m
}

func (m *model) Name() string {
	return m.name
}

func (m *model) Mesh() Mesh {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.mesh
}

func (m *model) SetMesh(mesh Mesh) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.setMesh(mesh)
}

func (m *model) IndexCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.mesh.Indices)
}

func (m *model) TriangleCount() int {
	return m.IndexCount() / 3
}

func (m *model) Bounds() common.BoxBounds {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.bounds
}

func (m *model) BoundingRadius() float32 {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.boundingRadius
}

// setMesh stores the mesh and recomputes bounds. Caller holds the lock.
func (m *model) setMesh(mesh Mesh) {
	m.mesh = mesh
	m.bounds = common.BoxFromPoints(mesh.Positions)
	if !m.fixedRadius {
		m.boundingRadius = ComputeBoundingRadius(mesh.Positions)
	}
}

// ComputeBoundingRadius returns the largest distance from the origin to any position.
//
// Parameters:
//   - positions: the mesh positions in local space
//
// Returns:
//   - float32: the bounding radius, 0 for no positions
func ComputeBoundingRadius(positions []mgl32.Vec3) float32 {
	var maxSq float32
	for _, p := range positions {
		maxSq = max(maxSq, p.LenSqr())
	}
	return float32(math.Sqrt(float64(maxSq)))
}

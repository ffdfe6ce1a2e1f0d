package renderer

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

// PassDescriptor is one depth pass: the layer it renders into, its light-space matrices
// and the nodes to draw.
type PassDescriptor struct {
	Layer      uint32
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Casters    []node.Node
}

// ViewProjection returns Projection * View.
func (p PassDescriptor) ViewProjection() mgl32.Mat4 {
	return p.Projection.Mul4(p.View)
}

// Rasterizer draws shadow casters into a depth target.
type Rasterizer interface {
	// DrawShadowPass renders the pass's casters into one layer of target.
	//
	// Parameters:
	//   - target: the depth target acquired for the light
	//   - state: the render state for the pass
	//   - pass: the layer, matrices and casters to draw
	//
	// Returns:
	//   - error: an error if the pass could not be recorded
	DrawShadowPass(target DepthTarget, state ShadowPassState, pass PassDescriptor) error
}

// RasterizerFunc adapts a function to the Rasterizer interface.
type RasterizerFunc func(target DepthTarget, state ShadowPassState, pass PassDescriptor) error

func (f RasterizerFunc) DrawShadowPass(target DepthTarget, state ShadowPassState, pass PassDescriptor) error {
	return f(target, state, pass)
}

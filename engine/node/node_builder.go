package node

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

// NodeBuilderOption is a functional option for configuring a Node during construction.
type NodeBuilderOption func(*node)

// WithID sets the ID of the Node.
//
// Parameters:
//   - id: unique identifier for the Node
//
// Returns:
//   - NodeBuilderOption: functional option to set the ID
func WithID(id uint64) NodeBuilderOption {
	return func(n *node) {
		n.id.Store(id)
	}
}

// WithEnabled sets whether the Node is enabled for rendering.
//
// Parameters:
//   - enabled: true to render the node, false to skip it
//
// Returns:
//   - NodeBuilderOption: functional option to set the Enabled state
func WithEnabled(enabled bool) NodeBuilderOption {
	return func(n *node) {
		n.enabled.Store(enabled)
	}
}

// WithCastsShadows sets whether the Node is drawn into shadow maps. Defaults to true.
//
// Parameters:
//   - casts: true to cast shadows
//
// Returns:
//   - NodeBuilderOption: functional option to set the shadow casting flag
func WithCastsShadows(casts bool) NodeBuilderOption {
	return func(n *node) {
		n.castsShadows.Store(casts)
	}
}

// WithModel sets the Model for this Node.
//
// Parameters:
//   - m: the Model to associate
//
// Returns:
//   - NodeBuilderOption: functional option to set the Model
func WithModel(m model.Model) NodeBuilderOption {
	return func(n *node) {
		n.mdl = m
	}
}

// WithPosition sets the initial world position of the Node.
//
// Parameters:
//   - pos: the world position
//
// Returns:
//   - NodeBuilderOption: functional option to set the position
func WithPosition(pos mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.position = pos
	}
}

// WithRotation sets the initial orientation of the Node.
//
// Parameters:
//   - rot: the orientation quaternion
//
// Returns:
//   - NodeBuilderOption: functional option to set the rotation
func WithRotation(rot mgl32.Quat) NodeBuilderOption {
	return func(n *node) {
		n.rotation = rot.Normalize()
	}
}

// WithScale sets the initial scale of the Node.
//
// Parameters:
//   - scale: scale factors along each local axis
//
// Returns:
//   - NodeBuilderOption: functional option to set the scale
func WithScale(scale mgl32.Vec3) NodeBuilderOption {
	return func(n *node) {
		n.scale = scale
	}
}

// WithLight attaches a Light that follows the Node's position.
//
// Parameters:
//   - l: the Light to attach
//
// Returns:
//   - NodeBuilderOption: functional option to attach the light
func WithLight(l light.Light) NodeBuilderOption {
	return func(n *node) {
		n.attachedLight = l
	}
}

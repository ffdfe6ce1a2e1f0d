package node

import (
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/go-gl/mathgl/mgl32"
)

type node struct {
	mu            *sync.RWMutex
	id            atomic.Uint64
	enabled       atomic.Bool
	castsShadows  atomic.Bool
	mdl           model.Model
	attachedLight light.Light

	position mgl32.Vec3
	rotation mgl32.Quat
	scale    mgl32.Vec3
}

// Node defines the interface for a renderable scene entity as seen by shadow passes.
// World matrices and bounds are derived on demand from the node's transform and its
// Model, so they are always current for the frame being rendered.
type Node interface {
	// ID returns the node's unique identifier.
	//
	// Returns:
	//   - uint64: the node ID
	ID() uint64

	// Enabled returns whether this node is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// CastsShadows reports whether the node is drawn into shadow maps.
	//
	// Returns:
	//   - bool: true if the node casts shadows
	CastsShadows() bool

	// Model returns the Model associated with this node.
	//
	// Returns:
	//   - model.Model: the associated model
	Model() model.Model

	// Position returns the node's world position.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Rotation returns the node's orientation.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Rotation() mgl32.Quat

	// Scale returns the node's scale along each local axis.
	//
	// Returns:
	//   - mgl32.Vec3: the scale
	Scale() mgl32.Vec3

	// WorldMatrix returns the model-to-world transform (T * R * S).
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// InverseWorldMatrix returns the world-to-model transform.
	//
	// Returns:
	//   - mgl32.Mat4: the inverse world matrix
	InverseWorldMatrix() mgl32.Mat4

	// WorldAABB returns the model bounds transformed into world space. The box is
	// re-derived from the eight transformed corners, so rotation grows it.
	//
	// Returns:
	//   - common.BoxBounds: the world-space bounds
	WorldAABB() common.BoxBounds

	// SetID sets the node's unique identifier.
	//
	// Parameters:
	//   - id: the ID to assign
	SetID(id uint64)

	// SetEnabled sets whether the node is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the node is drawn into shadow maps.
	//
	// Parameters:
	//   - casts: true to cast shadows
	SetCastsShadows(casts bool)

	// SetPosition moves the node.
	//
	// Parameters:
	//   - pos: the new world position
	SetPosition(pos mgl32.Vec3)

	// SetRotation sets the node's orientation.
	//
	// Parameters:
	//   - rot: the orientation quaternion
	SetRotation(rot mgl32.Quat)

	// SetEulerRotation sets the node's orientation from Euler angles in radians.
	//
	// Parameters:
	//   - yaw, pitch, roll: rotation about Y, X and Z
	SetEulerRotation(yaw, pitch, roll float32)

	// SetScale sets the node's scale.
	//
	// Parameters:
	//   - scale: scale factors along each local axis
	SetScale(scale mgl32.Vec3)

	// Light returns the Light attached to this node, or nil if none is set.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light

	// SetLight attaches a Light to this node. The light takes the node's position and
	// rotation, and the scene re-applies them on every update. Pass nil to detach.
	//
	// Parameters:
	//   - l: the Light to attach, or nil to detach
	SetLight(l light.Light)
}

var _ Node = &node{}

// NewNode creates a new Node configured with the given options.
// A Model is required; NewNode panics without one.
//
// Parameters:
//   - options: functional options to configure the node
//
// Returns:
//   - Node: the newly created node
func NewNode(options ...NodeBuilderOption) Node {
	n := &node{
		mu:       &sync.RWMutex{},
		rotation: mgl32.QuatIdent(),
		scale:    mgl32.Vec3{1, 1, 1},
	}
	n.enabled.Store(true)
	n.castsShadows.Store(true)
	for _, option := range options {
		option(n)
	}
	if n.mdl == nil {
		panic("node: NewNode requires a non-nil Model")
	}
	if n.attachedLight != nil {
		placeLight(n.attachedLight, n.position, n.rotation)
	}
	return n
}

func (n *node) ID() uint64 {
	return n.id.Load()
}

func (n *node) Enabled() bool {
	return n.enabled.Load()
}

func (n *node) CastsShadows() bool {
	return n.castsShadows.Load()
}

func (n *node) Model() model.Model {
	return n.mdl
}

func (n *node) Position() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.position
}

func (n *node) Rotation() mgl32.Quat {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.rotation
}

func (n *node) Scale() mgl32.Vec3 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.scale
}

func (n *node) WorldMatrix() mgl32.Mat4 {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return common.BuildModelMatrix(n.position, n.rotation, n.scale)
}

func (n *node) InverseWorldMatrix() mgl32.Mat4 {
	return n.WorldMatrix().Inv()
}

func (n *node) WorldAABB() common.BoxBounds {
	return n.mdl.Bounds().Transformed(n.WorldMatrix())
}

func (n *node) SetID(id uint64) {
	n.id.Store(id)
}

func (n *node) SetEnabled(enabled bool) {
	n.enabled.Store(enabled)
}

func (n *node) SetCastsShadows(casts bool) {
	n.castsShadows.Store(casts)
}

func (n *node) SetPosition(pos mgl32.Vec3) {
	n.mu.Lock()
	n.position = pos
	l := n.attachedLight
	n.mu.Unlock()
	if l != nil {
		l.SetPosition(pos)
	}
}

func (n *node) SetRotation(rot mgl32.Quat) {
	n.mu.Lock()
	n.rotation = rot.Normalize()
	l, normalized := n.attachedLight, n.rotation
	n.mu.Unlock()
	if l != nil {
		l.SetOrientation(normalized)
	}
}

func (n *node) SetEulerRotation(yaw, pitch, roll float32) {
	n.SetRotation(common.EulerToQuaternion(yaw, pitch, roll))
}

func (n *node) SetScale(scale mgl32.Vec3) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.scale = scale
}

func (n *node) Light() light.Light {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.attachedLight
}

func (n *node) SetLight(l light.Light) {
	n.mu.Lock()
	n.attachedLight = l
	pos, rot := n.position, n.rotation
	n.mu.Unlock()
	if l != nil {
		placeLight(l, pos, rot)
	}
}

// placeLight gives l the node's pose. The light emits along the node's local -Y.
func placeLight(l light.Light, pos mgl32.Vec3, rot mgl32.Quat) {
	l.SetPosition(pos)
	l.SetOrientation(rot)
}

package camera

import (
	"math"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/go-gl/mathgl/mgl32"
)

// DefaultShadowFar is the default distance from the camera beyond which single
// directional shadows are not rendered.
const DefaultShadowFar float32 = 200.0

type cameraImpl struct {
	mu *sync.Mutex

	up mgl32.Vec3

	fov       float32
	aspect    float32
	near      float32
	far       float32
	shadowFar float32

	shadowBounds common.BoxBounds

	worldMatrix          mgl32.Mat4
	viewMatrix           mgl32.Mat4
	projectionMatrix     mgl32.Mat4
	viewProjectionMatrix mgl32.Mat4

	controller CameraController
}

// Camera defines the interface for the viewing camera the shadow system fits against.
// The camera holds perspective settings and computes view/projection matrices
// from an attached CameraController each frame via Update(). Without a controller the
// world matrix set through SetWorldMatrix is used; the default is the identity, an eye
// at the origin looking down -Z.
type Camera interface {
	// Up returns the camera's up vector.
	//
	// Returns:
	//   - mgl32.Vec3: the up vector
	Up() mgl32.Vec3

	// Fov returns the vertical field of view in radians.
	//
	// Returns:
	//   - float32: field of view in radians
	Fov() float32

	// Aspect returns the aspect ratio (width / height).
	//
	// Returns:
	//   - float32: the aspect ratio
	Aspect() float32

	// Near returns the near clipping plane distance.
	//
	// Returns:
	//   - float32: near plane distance
	Near() float32

	// Far returns the far clipping plane distance.
	//
	// Returns:
	//   - float32: far plane distance
	Far() float32

	// ShadowFar returns the distance beyond which single directional shadows are skipped.
	//
	// Returns:
	//   - float32: shadow far distance
	ShadowFar() float32

	// WorldMatrix returns the camera-to-world transform (the inverse of the view matrix).
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// ViewMatrix returns the current world-to-camera transform.
	//
	// Returns:
	//   - mgl32.Mat4: the view matrix
	ViewMatrix() mgl32.Mat4

	// ProjectionMatrix returns the current perspective projection.
	//
	// Returns:
	//   - mgl32.Mat4: the projection matrix
	ProjectionMatrix() mgl32.Mat4

	// ViewProjectionMatrix returns the current combined view-projection matrix.
	//
	// Returns:
	//   - mgl32.Mat4: projection * view
	ViewProjectionMatrix() mgl32.Mat4

	// Frustum returns the world-space frustum of the camera between two distances.
	// Field of view and aspect ratio are the camera's own.
	//
	// Parameters:
	//   - near: distance to the near plane
	//   - far: distance to the far plane
	//
	// Returns:
	//   - common.Frustum: the world-space frustum
	Frustum(near, far float32) common.Frustum

	// ShadowBounds returns the extra volume whose contents cast shadows into the view
	// even when they lie outside the view frustum.
	//
	// Parameters:
	//   - transformed: true for world space, false for the camera's local space
	//
	// Returns:
	//   - common.BoxBounds: the shadow bounds, a zero-size box when unset
	ShadowBounds(transformed bool) common.BoxBounds

	// Controller returns the attached CameraController.
	// Returns nil if no controller is attached.
	//
	// Returns:
	//   - CameraController: the attached controller or nil
	Controller() CameraController

	// Update reads position/target from controller and recomputes matrices.
	// Should be called once per frame. If no controller is attached, only the
	// projection is recomputed.
	Update()

	// SetUp sets the camera's up vector.
	//
	// Parameters:
	//   - up: the up vector
	SetUp(up mgl32.Vec3)

	// SetFov sets the field of view in radians and recomputes matrices.
	//
	// Parameters:
	//   - fov: field of view in radians
	SetFov(fov float32)

	// SetAspect sets the aspect ratio (width / height) and recomputes matrices.
	//
	// Parameters:
	//   - aspect: the aspect ratio
	SetAspect(aspect float32)

	// SetNear sets the near clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - near: near plane distance
	SetNear(near float32)

	// SetFar sets the far clipping plane distance and recomputes matrices.
	//
	// Parameters:
	//   - far: far plane distance
	SetFar(far float32)

	// SetShadowFar sets the distance beyond which single directional shadows are skipped.
	//
	// Parameters:
	//   - shadowFar: shadow far distance
	SetShadowFar(shadowFar float32)

	// SetShadowBounds sets the extra shadow-casting volume in camera-local space.
	//
	// Parameters:
	//   - bounds: the local-space box
	SetShadowBounds(bounds common.BoxBounds)

	// SetWorldMatrix places the camera directly. Ignored on the next Update when a
	// controller is attached.
	//
	// Parameters:
	//   - world: the camera-to-world transform
	SetWorldMatrix(world mgl32.Mat4)

	// SetController attaches a CameraController to the camera.
	//
	// Parameters:
	//   - ctrl: the controller to attach
	SetController(ctrl CameraController)
}

var _ Camera = &cameraImpl{}

// NewCamera creates a new Camera with default perspective settings.
//
// Parameters:
//   - options: functional options to configure the camera
//
// Returns:
//   - Camera: the newly created camera
func NewCamera(options ...CameraBuilderOption) Camera {
	c := &cameraImpl{
		mu:          &sync.Mutex{},
		up:          mgl32.Vec3{0, 1, 0},
		fov:         45.0 * (math.Pi / 180.0), // radians
		aspect:      1.0,
		near:        0.1,
		far:         100.0,
		shadowFar:   DefaultShadowFar,
		worldMatrix: mgl32.Ident4(),
	}
	for _, option := range options {
		option(c)
	}
	c.updateMatrices()
	return c
}

func (c *cameraImpl) Up() mgl32.Vec3 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.up
}

func (c *cameraImpl) Fov() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fov
}

func (c *cameraImpl) Aspect() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.aspect
}

func (c *cameraImpl) Near() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.near
}

func (c *cameraImpl) Far() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.far
}

func (c *cameraImpl) ShadowFar() float32 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.shadowFar
}

func (c *cameraImpl) WorldMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.worldMatrix
}

func (c *cameraImpl) ViewMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewMatrix
}

func (c *cameraImpl) ProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.projectionMatrix
}

func (c *cameraImpl) ViewProjectionMatrix() mgl32.Mat4 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.viewProjectionMatrix
}

func (c *cameraImpl) Frustum(near, far float32) common.Frustum {
	c.mu.Lock()
	defer c.mu.Unlock()
	return common.NewPerspectiveFrustum(c.fov, c.aspect, near, far).Transformed(c.worldMatrix)
}

func (c *cameraImpl) ShadowBounds(transformed bool) common.BoxBounds {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !transformed || c.shadowBounds == (common.BoxBounds{}) {
		return c.shadowBounds
	}
	return c.shadowBounds.Transformed(c.worldMatrix)
}

func (c *cameraImpl) Controller() CameraController {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.controller
}

func (c *cameraImpl) Update() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.updateMatrices()
}

func (c *cameraImpl) SetUp(up mgl32.Vec3) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.up = up
	c.updateMatrices()
}

func (c *cameraImpl) SetFov(fov float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fov = fov
	c.updateMatrices()
}

func (c *cameraImpl) SetAspect(aspect float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.aspect = aspect
	c.updateMatrices()
}

func (c *cameraImpl) SetNear(near float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.near = near
	c.updateMatrices()
}

func (c *cameraImpl) SetFar(far float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.far = far
	c.updateMatrices()
}

func (c *cameraImpl) SetShadowFar(shadowFar float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shadowFar = shadowFar
}

func (c *cameraImpl) SetShadowBounds(bounds common.BoxBounds) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shadowBounds = bounds
}

func (c *cameraImpl) SetWorldMatrix(world mgl32.Mat4) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.worldMatrix = world
	c.viewMatrix = world.Inv()
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

func (c *cameraImpl) SetController(ctrl CameraController) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.controller = ctrl
	c.updateMatrices()
}

// updateMatrices recalculates the projection and, when a controller is attached, the
// view and world matrices from its position and target. Caller must hold the mutex.
func (c *cameraImpl) updateMatrices() {
	if c.controller != nil {
		c.viewMatrix = mgl32.LookAtV(c.controller.Position(), c.controller.Target(), c.up)
		c.worldMatrix = c.viewMatrix.Inv()
	} else {
		c.viewMatrix = c.worldMatrix.Inv()
	}
	c.projectionMatrix = mgl32.Perspective(c.fov, c.aspect, c.near, c.far)
	c.viewProjectionMatrix = c.projectionMatrix.Mul4(c.viewMatrix)
}

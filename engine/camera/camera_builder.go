package camera

import (
	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/go-gl/mathgl/mgl32"
)

type CameraBuilderOption func(*cameraImpl)

// WithUp sets the camera's up vector.
//
// Parameters:
//   - up: the up vector
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's up vector
func WithUp(up mgl32.Vec3) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.up = up
	}
}

// WithFov sets the camera's field of view in radians.
//
// Parameters:
//   - fov: field of view in radians
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's field of view
func WithFov(fov float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.fov = fov
	}
}

// WithAspect sets the camera's aspect ratio (width / height).
//
// Parameters:
//   - aspect: the aspect ratio to set
//
// Returns:
//   - CameraBuilderOption: a function that sets the camera's aspect ratio
func WithAspect(aspect float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.aspect = aspect
	}
}

// WithNear sets the near clipping plane distance.
//
// Parameters:
//   - near: near plane distance
//
// Returns:
//   - CameraBuilderOption: a function that sets the near plane
func WithNear(near float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.near = near
	}
}

// WithFar sets the far clipping plane distance.
//
// Parameters:
//   - far: far plane distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the far plane
func WithFar(far float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.far = far
	}
}

// WithShadowFar sets the distance beyond which single directional shadows are skipped.
//
// Parameters:
//   - shadowFar: shadow far distance
//
// Returns:
//   - CameraBuilderOption: functional option to set the shadow far distance
func WithShadowFar(shadowFar float32) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.shadowFar = shadowFar
	}
}

// WithShadowBounds sets the extra shadow-casting volume in camera-local space.
//
// Parameters:
//   - bounds: the local-space box
//
// Returns:
//   - CameraBuilderOption: functional option to set the shadow bounds
func WithShadowBounds(bounds common.BoxBounds) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.shadowBounds = bounds
	}
}

// WithWorldMatrix places the camera with an explicit camera-to-world transform.
//
// Parameters:
//   - world: the camera-to-world transform
//
// Returns:
//   - CameraBuilderOption: functional option to set the world matrix
func WithWorldMatrix(world mgl32.Mat4) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.worldMatrix = world
	}
}

// WithController attaches a controller to the camera.
// After all options are applied, the camera recomputes its matrices from the controller's state.
//
// Parameters:
//   - ctrl: the controller to attach
//
// Returns:
//   - CameraBuilderOption: functional option to set the controller
func WithController(ctrl CameraController) CameraBuilderOption {
	return func(c *cameraImpl) {
		c.controller = ctrl
	}
}

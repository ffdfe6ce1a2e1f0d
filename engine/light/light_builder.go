package light

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// LightBuilderOption is a function that configures a Light instance during construction.
type LightBuilderOption func(*lightImpl)

// WithPosition is an option builder that sets the world-space position of the light.
//
// Parameters:
//   - pos: the world-space position
//
// Returns:
//   - LightBuilderOption: a function that applies the position option to a lightImpl
func WithPosition(pos mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.position = pos
	}
}

// WithOrientation is an option builder that sets the rotation of the light's local frame.
//
// Parameters:
//   - q: the orientation quaternion (normalized before storing)
//
// Returns:
//   - LightBuilderOption: a function that applies the orientation option to a lightImpl
func WithOrientation(q mgl32.Quat) LightBuilderOption {
	return func(l *lightImpl) {
		l.orientation = q.Normalize()
	}
}

// WithDirection is an option builder that orients the light to shine along dir.
//
// Parameters:
//   - dir: the world-space emission direction (need not be unit length)
//
// Returns:
//   - LightBuilderOption: a function that applies the direction option to a lightImpl
func WithDirection(dir mgl32.Vec3) LightBuilderOption {
	return func(l *lightImpl) {
		l.orientation = orientationFor(dir)
	}
}

// WithRange is an option builder that sets the maximum distance for point and spot lights.
//
// Parameters:
//   - lightRange: the range value
//
// Returns:
//   - LightBuilderOption: a function that applies the range option to a lightImpl
func WithRange(lightRange float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.lightRange = lightRange
	}
}

// WithSpotCone is an option builder that sets the inner and outer cone half-angles
// for spot lights, in degrees.
//
// Parameters:
//   - innerDeg: inner cone half-angle in degrees
//   - outerDeg: outer cone half-angle in degrees
//
// Returns:
//   - LightBuilderOption: a function that applies the spot cone option to a lightImpl
func WithSpotCone(innerDeg, outerDeg float32) LightBuilderOption {
	return func(l *lightImpl) {
		l.innerAngle = float32(float64(innerDeg) * math.Pi / 180.0)
		l.outerAngle = float32(float64(outerDeg) * math.Pi / 180.0)
	}
}

// WithEnabled is an option builder that sets whether the light is active for rendering.
//
// Parameters:
//   - enabled: true to enable the light
//
// Returns:
//   - LightBuilderOption: a function that applies the enabled option to a lightImpl
func WithEnabled(enabled bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.enabled = enabled
	}
}

// WithCastsShadows is an option builder that sets whether the light is eligible for
// shadow map generation.
//
// Parameters:
//   - castsShadows: true to enable shadow casting
//
// Returns:
//   - LightBuilderOption: a function that applies the shadow casting option to a lightImpl
func WithCastsShadows(castsShadows bool) LightBuilderOption {
	return func(l *lightImpl) {
		l.castsShadows = castsShadows
	}
}

// WithCascadeCount is an option builder that sets the number of shadow cascades for a
// directional light. Counts above one select cascaded shadows.
//
// Parameters:
//   - count: the cascade count (values below one are stored as one)
//
// Returns:
//   - LightBuilderOption: a function that applies the cascade option to a lightImpl
func WithCascadeCount(count int) LightBuilderOption {
	return func(l *lightImpl) {
		l.cascadeCount = max(count, 1)
	}
}

// WithShadowResolution is an option builder that overrides the depth target size.
//
// Parameters:
//   - resolution: width and height in texels
//
// Returns:
//   - LightBuilderOption: a function that applies the resolution option to a lightImpl
func WithShadowResolution(resolution int) LightBuilderOption {
	return func(l *lightImpl) {
		l.shadowResolution = resolution
	}
}

// orientationFor returns the rotation that carries the local emission axis onto dir.
// A zero direction yields the identity.
func orientationFor(dir mgl32.Vec3) mgl32.Quat {
	if dir.LenSqr() == 0 {
		return mgl32.QuatIdent()
	}
	return mgl32.QuatBetweenVectors(emitAxis, dir.Normalize()).Normalize()
}

// cos32 returns the cosine of an angle in radians.
func cos32(rad float32) float32 {
	return float32(math.Cos(float64(rad)))
}

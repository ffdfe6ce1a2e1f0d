package light

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/go-gl/mathgl/mgl32"
)

// LightType identifies the kind of light source.
type LightType int

const (
	// LightTypeDirectional represents a light with no position, only direction.
	// Used for large distant sources like the sun or moon. Shadowed with an
	// orthographic crop fit, optionally split into cascades.
	LightTypeDirectional LightType = iota

	// LightTypePoint represents a light that emits in all directions from a position.
	// Shadowed into a cube map with six 90° perspective faces out to its range.
	LightTypePoint

	// LightTypeSpot represents a light that emits in a cone from a position along a direction.
	// Shadowed with one perspective projection whose field of view is twice the outer
	// cone half-angle.
	LightTypeSpot
)

// String returns the lowercase name of the light type.
func (t LightType) String() string {
	switch t {
	case LightTypeDirectional:
		return "directional"
	case LightTypePoint:
		return "point"
	case LightTypeSpot:
		return "spot"
	default:
		return "unknown"
	}
}

// emitAxis is the local axis a light shines along before its orientation is applied.
var emitAxis = mgl32.Vec3{0, -1, 0}

// viewBasis turns the light's local -Y emission axis into the view-space -Z axis.
var viewBasis = mgl32.HomogRotate3DX(common.HalfPi)

// lightImpl is the implementation of the Light interface.
type lightImpl struct {
	mu               *sync.RWMutex
	lightType        LightType
	position         mgl32.Vec3
	orientation      mgl32.Quat
	lightRange       float32
	innerAngle       float32 // half-angle in radians
	outerAngle       float32 // half-angle in radians
	enabled          bool
	castsShadows     bool
	cascadeCount     int
	shadowResolution int
}

// Light defines the interface for a light source as seen by the shadow system.
//
// All light types share this interface; type-specific properties (cone angles for
// spot lights, range for point and spot lights, cascade count for directional
// lights) are ignored where they do not apply.
//
// A light shines along its local -Y axis. Its orientation rotates that axis into
// world space; ViewMatrix maps the emission direction onto view-space -Z.
type Light interface {
	// Type returns the kind of light source.
	//
	// Returns:
	//   - LightType: the light type (directional, point, or spot)
	Type() LightType

	// Position returns the world-space position of the light.
	// Directional lights still use it as the origin of their light space.
	//
	// Returns:
	//   - mgl32.Vec3: the position
	Position() mgl32.Vec3

	// Orientation returns the rotation applied to the light's local frame.
	//
	// Returns:
	//   - mgl32.Quat: the orientation quaternion
	Orientation() mgl32.Quat

	// Direction returns the normalized world-space emission direction.
	//
	// Returns:
	//   - mgl32.Vec3: the orientation applied to local -Y
	Direction() mgl32.Vec3

	// Range returns the maximum distance the light reaches (its radius) for point
	// and spot lights. It is the far plane of their shadow projections.
	//
	// Returns:
	//   - float32: the range value
	Range() float32

	// InnerAngle returns the inner cone half-angle in radians.
	//
	// Returns:
	//   - float32: the inner half-angle
	InnerAngle() float32

	// OuterAngle returns the outer cone half-angle in radians.
	//
	// Returns:
	//   - float32: the outer half-angle
	OuterAngle() float32

	// InnerCone returns the cosine of the inner cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(inner half-angle)
	InnerCone() float32

	// OuterCone returns the cosine of the outer cone half-angle for spot lights.
	//
	// Returns:
	//   - float32: cos(outer half-angle)
	OuterCone() float32

	// Enabled returns whether this light is active for rendering.
	//
	// Returns:
	//   - bool: true if the light is enabled
	Enabled() bool

	// CastsShadows returns whether this light is eligible for shadow map generation.
	//
	// Returns:
	//   - bool: true if the light casts shadows
	CastsShadows() bool

	// CascadeCount returns the number of shadow cascades for a directional light.
	// A count above one selects the cascaded technique.
	//
	// Returns:
	//   - int: the cascade count (at least 1)
	CascadeCount() int

	// ShadowResolution returns the requested depth target width and height in texels,
	// or 0 to let the shadow system pick the default for the light's technique.
	//
	// Returns:
	//   - int: the resolution in texels
	ShadowResolution() int

	// WorldMatrix returns the light's local-to-world transform (T * R).
	//
	// Returns:
	//   - mgl32.Mat4: the world matrix
	WorldMatrix() mgl32.Mat4

	// ViewMatrix returns the light-space view transform: the inverse world matrix
	// followed by a 90° rotation about X so that the emission axis becomes -Z.
	//
	// Returns:
	//   - mgl32.Mat4: the world-to-light-view matrix
	ViewMatrix() mgl32.Mat4

	// SetPosition sets the world-space position of the light.
	//
	// Parameters:
	//   - pos: the position
	SetPosition(pos mgl32.Vec3)

	// SetOrientation sets the light's rotation.
	//
	// Parameters:
	//   - q: the orientation (normalized before storing)
	SetOrientation(q mgl32.Quat)

	// SetDirection orients the light so that it shines along dir.
	//
	// Parameters:
	//   - dir: the world-space emission direction (need not be unit length)
	SetDirection(dir mgl32.Vec3)

	// SetRange sets the maximum distance the light reaches.
	//
	// Parameters:
	//   - lightRange: the range value
	SetRange(lightRange float32)

	// SetSpotCone sets the inner and outer cone half-angles for spot lights.
	//
	// Parameters:
	//   - innerDeg: inner cone half-angle in degrees
	//   - outerDeg: outer cone half-angle in degrees
	SetSpotCone(innerDeg, outerDeg float32)

	// SetEnabled enables or disables the light for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// SetCastsShadows sets whether the light is eligible for shadow mapping.
	//
	// Parameters:
	//   - castsShadows: true to enable shadow casting
	SetCastsShadows(castsShadows bool)

	// SetCascadeCount sets the number of cascades for a directional light.
	// Values below one are stored as one.
	//
	// Parameters:
	//   - count: the cascade count
	SetCascadeCount(count int)
}

var _ Light = &lightImpl{}

// NewLight creates a new Light of the specified type with sensible defaults and
// any provided options applied.
//
// Parameters:
//   - lightType: the kind of light to create (directional, point, or spot)
//   - opts: variadic list of LightBuilderOption functions to configure the light
//
// Returns:
//   - Light: a new Light instance
func NewLight(lightType LightType, opts ...LightBuilderOption) Light {
	l := &lightImpl{
		mu:           &sync.RWMutex{},
		lightType:    lightType,
		orientation:  mgl32.QuatIdent(),
		lightRange:   10.0,
		innerAngle:   common.DegreeToRadian(25),
		outerAngle:   common.DegreeToRadian(35),
		enabled:      true,
		castsShadows: false,
		cascadeCount: 1,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

func (l *lightImpl) Type() LightType {
	return l.lightType
}

func (l *lightImpl) Position() mgl32.Vec3 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.position
}

func (l *lightImpl) Orientation() mgl32.Quat {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.orientation
}

func (l *lightImpl) Direction() mgl32.Vec3 {
	return l.Orientation().Rotate(emitAxis).Normalize()
}

func (l *lightImpl) Range() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.lightRange
}

func (l *lightImpl) InnerAngle() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.innerAngle
}

func (l *lightImpl) OuterAngle() float32 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.outerAngle
}

func (l *lightImpl) InnerCone() float32 {
	return cos32(l.InnerAngle())
}

func (l *lightImpl) OuterCone() float32 {
	return cos32(l.OuterAngle())
}

func (l *lightImpl) Enabled() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.enabled
}

func (l *lightImpl) CastsShadows() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.castsShadows
}

func (l *lightImpl) CascadeCount() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cascadeCount
}

func (l *lightImpl) ShadowResolution() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.shadowResolution
}

func (l *lightImpl) WorldMatrix() mgl32.Mat4 {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return common.BuildModelMatrix(l.position, l.orientation, mgl32.Vec3{1, 1, 1})
}

func (l *lightImpl) ViewMatrix() mgl32.Mat4 {
	return viewBasis.Mul4(l.WorldMatrix().Inv())
}

func (l *lightImpl) SetPosition(pos mgl32.Vec3) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.position = pos
}

func (l *lightImpl) SetOrientation(q mgl32.Quat) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.orientation = q.Normalize()
}

func (l *lightImpl) SetDirection(dir mgl32.Vec3) {
	l.SetOrientation(orientationFor(dir))
}

func (l *lightImpl) SetRange(lightRange float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lightRange = lightRange
}

func (l *lightImpl) SetSpotCone(innerDeg, outerDeg float32) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.innerAngle = common.DegreeToRadian(innerDeg)
	l.outerAngle = common.DegreeToRadian(outerDeg)
}

func (l *lightImpl) SetEnabled(enabled bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.enabled = enabled
}

func (l *lightImpl) SetCastsShadows(castsShadows bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.castsShadows = castsShadows
}

func (l *lightImpl) SetCascadeCount(count int) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cascadeCount = max(count, 1)
}

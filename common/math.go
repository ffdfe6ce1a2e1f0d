package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	// Pi is float32 pi.
	Pi float32 = math.Pi

	// HalfPi is pi / 2.
	HalfPi float32 = math.Pi / 2

	// DegToRad converts degrees to radians when multiplied.
	DegToRad float32 = math.Pi / 180

	// RadToDeg converts radians to degrees when multiplied.
	RadToDeg float32 = 180 / math.Pi
)

// Axis unit vectors shared by the light, camera and point-face code.
var (
	XAxis = mgl32.Vec3{1, 0, 0}
	YAxis = mgl32.Vec3{0, 1, 0}
	ZAxis = mgl32.Vec3{0, 0, 1}
)

// BiasMatrix maps clip space [-1, 1] on every axis into texture space [0, 1].
// Column-major, the translation lives in the last column.
var BiasMatrix = mgl32.Mat4{
	0.5, 0, 0, 0,
	0, 0.5, 0, 0,
	0, 0, 0.5, 0,
	0.5, 0.5, 0.5, 1,
}

// DegreeToRadian converts an angle in degrees to radians.
func DegreeToRadian(deg float32) float32 {
	return deg * DegToRad
}

// RadianToDegree converts an angle in radians to degrees.
func RadianToDegree(rad float32) float32 {
	return rad * RadToDeg
}

// BuildModelMatrix constructs a 4x4 model matrix from position, rotation and scale.
// The result is T * R * S, so scale is applied first and translation last.
//
// Parameters:
//   - pos: translation in world space
//   - rot: orientation quaternion (expected to be unit length)
//   - scale: scale factors along each local axis
//
// Returns:
//   - mgl32.Mat4: the column-major model matrix
func BuildModelMatrix(pos mgl32.Vec3, rot mgl32.Quat, scale mgl32.Vec3) mgl32.Mat4 {
	r := rot.Mat4()
	out := r
	for col := 0; col < 3; col++ {
		for row := 0; row < 3; row++ {
			out[col*4+row] = r[col*4+row] * scale[col]
		}
	}
	out[12], out[13], out[14] = pos[0], pos[1], pos[2]
	return out
}

// TransformPoint multiplies a point (w = 1) by m and returns the full homogeneous result.
// Callers that need a Euclidean point divide by W themselves; the crop fitter relies on
// seeing W before the divide.
//
// Parameters:
//   - m: the transform to apply
//   - p: the point to transform
//
// Returns:
//   - mgl32.Vec4: the transformed homogeneous point
func TransformPoint(m mgl32.Mat4, p mgl32.Vec3) mgl32.Vec4 {
	return m.Mul4x1(p.Vec4(1))
}

// MaxAxisScale returns the largest length among the three basis columns of m.
// Used to grow sphere radii under non-uniform scale.
func MaxAxisScale(m mgl32.Mat4) float32 {
	sx := mgl32.Vec3{m[0], m[1], m[2]}.Len()
	sy := mgl32.Vec3{m[4], m[5], m[6]}.Len()
	sz := mgl32.Vec3{m[8], m[9], m[10]}.Len()
	return max(sx, sy, sz)
}

// IsFinite reports whether f is neither NaN nor infinite.
func IsFinite(f float32) bool {
	return !math.IsNaN(float64(f)) && !math.IsInf(float64(f), 0)
}

func sqrt32(x float32) float32 {
	return float32(math.Sqrt(float64(x)))
}

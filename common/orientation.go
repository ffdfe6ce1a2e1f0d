package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// poleThreshold is the value of the Euler pole term above which the conversion
// treats the rotation as gimbal locked.
const poleThreshold = 0.998

// AxisAngleToQuaternion converts a rotation of angle radians about axis into a quaternion.
// The axis is used as given; a non-unit axis produces a non-unit quaternion.
//
// Parameters:
//   - axis: rotation axis (expected to be unit length)
//   - angle: rotation angle in radians
//
// Returns:
//   - mgl32.Quat: the rotation as a quaternion
func AxisAngleToQuaternion(axis mgl32.Vec3, angle float32) mgl32.Quat {
	half := float64(angle) * 0.5
	s := float32(math.Sin(half))
	return mgl32.Quat{
		W: float32(math.Cos(half)),
		V: mgl32.Vec3{axis[0] * s, axis[1] * s, axis[2] * s},
	}
}

// AxisAngleFromVec4 splits a packed axis-angle (xyz = axis, w = angle in radians).
func AxisAngleFromVec4(v mgl32.Vec4) (axis mgl32.Vec3, angle float32) {
	return v.Vec3(), v[3]
}

// EulerToQuaternion converts Euler angles to a quaternion. Yaw rotates about Y,
// roll about Z and pitch about X; the rotations compose as Y * Z * X, so pitch is
// applied to the vector first.
//
// Parameters:
//   - yaw: rotation about the Y axis in radians
//   - pitch: rotation about the X axis in radians
//   - roll: rotation about the Z axis in radians
//
// Returns:
//   - mgl32.Quat: the combined rotation
func EulerToQuaternion(yaw, pitch, roll float32) mgl32.Quat {
	cy, sy := halfCosSin(yaw)
	cp, sp := halfCosSin(pitch)
	cr, sr := halfCosSin(roll)

	return mgl32.Quat{
		W: cy*cr*cp - sy*sr*sp,
		V: mgl32.Vec3{
			sy*sr*cp + cy*cr*sp,
			sy*cr*cp + cy*sr*sp,
			cy*sr*cp - sy*cr*sp,
		},
	}
}

// QuaternionToAxisAngle converts a unit quaternion into an axis and an angle in radians.
// When the quaternion carries no rotation (1 - w² <= 0) the canonical +X axis is
// returned with a zero angle instead of dividing by a vanishing denominator.
//
// Parameters:
//   - q: the quaternion to convert (expected to be unit length)
//
// Returns:
//   - axis: the unit rotation axis
//   - angle: the rotation angle in radians, in [0, 2π]
func QuaternionToAxisAngle(q mgl32.Quat) (axis mgl32.Vec3, angle float32) {
	w := mgl32.Clamp(q.W, -1, 1)
	angle = float32(math.Acos(float64(w))) * 2

	a := 1 - w*w
	if a <= 0 {
		return XAxis, 0
	}

	b := 1 / sqrt32(a)
	return mgl32.Vec3{q.V[0] * b, q.V[1] * b, q.V[2] * b}, angle
}

// AxisAngleToEuler converts an axis-angle rotation into Euler angles matching
// EulerToQuaternion. Near the poles (where the pitch and yaw axes line up) one degree
// of freedom is lost; pitch is pinned to zero and the rotation is folded into yaw.
//
// Parameters:
//   - axis: the unit rotation axis
//   - angle: the rotation angle in radians
//
// Returns:
//   - yaw, pitch, roll: Euler angles in radians
func AxisAngleToEuler(axis mgl32.Vec3, angle float32) (yaw, pitch, roll float32) {
	s := float32(math.Sin(float64(angle)))
	c := float32(math.Cos(float64(angle)))
	t := 1 - c
	x, y, z := axis[0], axis[1], axis[2]

	g := x*y*t + z*s
	switch {
	case g > poleThreshold:
		ch, sh := halfCosSin(angle)
		yaw = 2 * float32(math.Atan2(float64(x*sh), float64(ch)))
		return yaw, 0, HalfPi
	case g < -poleThreshold:
		ch, sh := halfCosSin(angle)
		yaw = -2 * float32(math.Atan2(float64(x*sh), float64(ch)))
		return yaw, 0, -HalfPi
	}

	yaw = float32(math.Atan2(float64(y*s-x*z*t), float64(1-(y*y+z*z)*t)))
	pitch = float32(math.Atan2(float64(x*s-y*z*t), float64(1-(x*x+z*z)*t)))
	roll = float32(math.Asin(float64(g)))
	return yaw, pitch, roll
}

// QuaternionToEuler converts a unit quaternion into Euler angles by way of its
// axis-angle form.
func QuaternionToEuler(q mgl32.Quat) (yaw, pitch, roll float32) {
	axis, angle := QuaternionToAxisAngle(q)
	return AxisAngleToEuler(axis, angle)
}

// PointInCone reports whether point lies inside the cone with its tip at apex,
// opening along dir with the given half-angle and capped at height along the axis.
// All three conditions must hold: the point is in front of the apex, within the
// angular bound, and no further than height along the axis.
//
// Parameters:
//   - apex: the cone tip
//   - dir: the cone axis (need not be unit length)
//   - height: maximum distance along the axis
//   - halfAngle: half of the opening angle in radians
//   - point: the point to test
//
// Returns:
//   - bool: true if the point is inside the cone
func PointInCone(apex, dir mgl32.Vec3, height, halfAngle float32, point mgl32.Vec3) bool {
	cosTheta := float32(math.Cos(float64(halfAngle)))
	offset := point.Sub(apex)
	dot := dir.Dot(offset)
	if dot < 0 {
		return false
	}

	// dot² >= cos²θ * |offset|² * |dir|² compares angles without acos.
	if dot*dot < cosTheta*cosTheta*offset.LenSqr()*dir.LenSqr() {
		return false
	}

	dirLenSqr := dir.LenSqr()
	if dirLenSqr == 0 {
		return false
	}
	// |proj(offset, dir)|² = dot² / |dir|²
	return dot*dot/dirLenSqr <= height*height
}

func halfCosSin(angle float32) (c, s float32) {
	half := float64(angle) * 0.5
	return float32(math.Cos(half)), float32(math.Sin(half))
}

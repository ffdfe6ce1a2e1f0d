package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// planeEpsilon absorbs float32 rounding when a point sits exactly on a frustum plane.
const planeEpsilon = 1e-5

// Plane represents a plane in 3D space using the equation: ax + by + cz + d = 0
// where (a, b, c) is the normal and d is the distance from origin.
type Plane struct {
	Normal   mgl32.Vec3
	Distance float32
}

// DistanceTo returns the signed distance from p to the plane. Positive values are on
// the side the normal points to.
func (p Plane) DistanceTo(pt mgl32.Vec3) float32 {
	return p.Normal.Dot(pt) + p.Distance
}

// Frustum is a convex volume bounded by six planes, kept together with its eight
// corners. Planes are oriented so that positive half-space is inside the frustum.
//
// Corner order is fixed: indices 0-3 are the near face and 4-7 the far face, each in
// left-bottom, right-bottom, right-top, left-top order as seen from the eye.
type Frustum struct {
	Corners [8]mgl32.Vec3
	Planes  [6]Plane // Left, Right, Bottom, Top, Near, Far
}

// FrustumPlane indices for clarity
const (
	FrustumLeft   = 0
	FrustumRight  = 1
	FrustumBottom = 2
	FrustumTop    = 3
	FrustumNear   = 4
	FrustumFar    = 5
)

// Frustum corner indices.
const (
	NearLeftBottom = iota
	NearRightBottom
	NearRightTop
	NearLeftTop
	FarLeftBottom
	FarRightBottom
	FarRightTop
	FarLeftTop
)

// planeCorners lists three corners per plane, indexed like Planes.
var planeCorners = [6][3]int{
	FrustumLeft:   {NearLeftBottom, NearLeftTop, FarLeftTop},
	FrustumRight:  {NearRightBottom, NearRightTop, FarRightTop},
	FrustumBottom: {NearLeftBottom, NearRightBottom, FarRightBottom},
	FrustumTop:    {NearLeftTop, NearRightTop, FarRightTop},
	FrustumNear:   {NearLeftBottom, NearRightBottom, NearRightTop},
	FrustumFar:    {FarLeftBottom, FarRightBottom, FarRightTop},
}

// NewPerspectiveFrustum builds a frustum in view space for an eye at the origin looking
// down -Z with +Y up, matching mgl32.Perspective.
//
// Parameters:
//   - fovY: vertical field of view in radians
//   - aspect: width / height
//   - near: distance to the near plane (must be > 0)
//   - far: distance to the far plane (must be > near)
//
// Returns:
//   - Frustum: the view-space frustum
func NewPerspectiveFrustum(fovY, aspect, near, far float32) Frustum {
	tanHalf := float32(math.Tan(float64(fovY) * 0.5))
	nh := near * tanHalf
	nw := nh * aspect
	fh := far * tanHalf
	fw := fh * aspect

	return NewFrustumFromCorners([8]mgl32.Vec3{
		{-nw, -nh, -near},
		{nw, -nh, -near},
		{nw, nh, -near},
		{-nw, nh, -near},
		{-fw, -fh, -far},
		{fw, -fh, -far},
		{fw, fh, -far},
		{-fw, fh, -far},
	})
}

// NewFrustumFromCorners builds a frustum from eight corners in the fixed corner order.
// Planes are derived from the corners and oriented toward the frustum's centroid.
func NewFrustumFromCorners(corners [8]mgl32.Vec3) Frustum {
	f := Frustum{Corners: corners}
	f.rebuildPlanes()
	return f
}

// ExtractFrustumFromMatrix extracts a frustum from a view-projection matrix.
// The matrix should be the combined Projection * View matrix (column vectors).
// Uses the Gribb/Hartmann method for plane extraction; corners are recovered by
// unprojecting the clip-space cube [-1, 1]³.
//
// Reference: https://www8.cs.umu.se/kurser/5DV051/HT12/lab/plane_extraction.pdf
//
// Parameters:
//   - viewProj: the view-projection matrix (column-major)
//
// Returns:
//   - Frustum: the extracted frustum with normalized planes
func ExtractFrustumFromMatrix(viewProj mgl32.Mat4) Frustum {
	var f Frustum

	// M[row][col] is viewProj[col*4 + row]; row(i) collects M[i][0..3].
	row := func(i int) mgl32.Vec4 {
		return mgl32.Vec4{viewProj[i], viewProj[4+i], viewProj[8+i], viewProj[12+i]}
	}
	r0, r1, r2, r3 := row(0), row(1), row(2), row(3)

	f.Planes[FrustumLeft] = planeFromVec4(r3.Add(r0))
	f.Planes[FrustumRight] = planeFromVec4(r3.Sub(r0))
	f.Planes[FrustumBottom] = planeFromVec4(r3.Add(r1))
	f.Planes[FrustumTop] = planeFromVec4(r3.Sub(r1))
	f.Planes[FrustumNear] = planeFromVec4(r3.Add(r2))
	f.Planes[FrustumFar] = planeFromVec4(r3.Sub(r2))

	inv := viewProj.Inv()
	ndc := [8]mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-1, -1, 1}, {1, -1, 1}, {1, 1, 1}, {-1, 1, 1},
	}
	for i, c := range ndc {
		f.Corners[i] = mgl32.TransformCoordinate(c, inv)
	}

	return f
}

// Transformed returns a copy of the frustum with every corner transformed by m and the
// planes rebuilt from the new corners.
func (f Frustum) Transformed(m mgl32.Mat4) Frustum {
	var corners [8]mgl32.Vec3
	for i, c := range f.Corners {
		corners[i] = mgl32.TransformCoordinate(c, m)
	}
	return NewFrustumFromCorners(corners)
}

// Centroid returns the average of the eight corners.
func (f Frustum) Centroid() mgl32.Vec3 {
	var sum mgl32.Vec3
	for _, c := range f.Corners {
		sum = sum.Add(c)
	}
	return sum.Mul(1.0 / 8.0)
}

// Bounds returns the axis-aligned box around the corners.
func (f Frustum) Bounds() BoxBounds {
	return BoxFromPoints(f.Corners[:])
}

// ContainsPoint reports whether p lies inside or on every plane.
func (f Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.DistanceTo(p) < -planeEpsilon {
			return false
		}
	}
	return true
}

// IntersectsFast tests the box against each plane using its most positive corner
// (the "p-vertex"). The test never rejects a visible box but can accept a box near a
// frustum edge that does not actually touch it.
func (f Frustum) IntersectsFast(box BoxBounds) bool {
	for _, pl := range f.Planes {
		pv := mgl32.Vec3{
			pick(pl.Normal[0] >= 0, box.Max[0], box.Min[0]),
			pick(pl.Normal[1] >= 0, box.Max[1], box.Min[1]),
			pick(pl.Normal[2] >= 0, box.Max[2], box.Min[2]),
		}
		if pl.DistanceTo(pv) < -planeEpsilon {
			return false
		}
	}
	return true
}

// Intersects reports whether the frustum and other overlap. Boxes and frusta are also
// tested against the other shape's faces, which removes most of the false positives
// IntersectsFast allows.
func (f Frustum) Intersects(other Collidable) bool {
	switch o := other.(type) {
	case BoxBounds:
		if !f.IntersectsFast(o) {
			return false
		}
		return !boxSeparatesPoints(o, f.Corners[:])
	case SphereBounds:
		for _, pl := range f.Planes {
			if pl.DistanceTo(o.Center) < -o.Radius {
				return false
			}
		}
		return true
	case Frustum:
		return !planesSeparate(f.Planes[:], o.Corners[:]) && !planesSeparate(o.Planes[:], f.Corners[:])
	default:
		return f.IntersectsFast(other.Bounds())
	}
}

// Contains reports whether other lies entirely inside the frustum.
func (f Frustum) Contains(other Collidable) bool {
	switch o := other.(type) {
	case BoxBounds:
		return f.containsAll(o.Corners())
	case SphereBounds:
		for _, pl := range f.Planes {
			if pl.DistanceTo(o.Center) < o.Radius-planeEpsilon {
				return false
			}
		}
		return true
	case Frustum:
		return f.containsAll(o.Corners)
	default:
		return f.containsAll(other.Bounds().Corners())
	}
}

// Transform returns the frustum transformed by m as a Collidable.
func (f Frustum) Transform(m mgl32.Mat4) Collidable {
	return f.Transformed(m)
}

func (f Frustum) containsAll(points [8]mgl32.Vec3) bool {
	for _, p := range points {
		if !f.ContainsPoint(p) {
			return false
		}
	}
	return true
}

// rebuildPlanes derives the six planes from the corners.
func (f *Frustum) rebuildPlanes() {
	center := f.Centroid()
	for i, idx := range planeCorners {
		a, b, c := f.Corners[idx[0]], f.Corners[idx[1]], f.Corners[idx[2]]
		n := b.Sub(a).Cross(c.Sub(a))
		length := n.Len()
		if length == 0 {
			f.Planes[i] = Plane{}
			continue
		}
		n = n.Mul(1 / length)
		pl := Plane{Normal: n, Distance: -n.Dot(a)}
		if pl.DistanceTo(center) < 0 {
			pl = Plane{Normal: n.Mul(-1), Distance: -pl.Distance}
		}
		f.Planes[i] = pl
	}
}

// planeFromVec4 normalizes a plane so that the normal has unit length.
func planeFromVec4(v mgl32.Vec4) Plane {
	p := Plane{Normal: v.Vec3(), Distance: v[3]}
	length := p.Normal.Len()
	if length > 0 {
		invLen := 1.0 / length
		p.Normal = p.Normal.Mul(invLen)
		p.Distance *= invLen
	}
	return p
}

// planesSeparate reports whether every point lies outside one of the planes.
func planesSeparate(planes []Plane, points []mgl32.Vec3) bool {
	for _, pl := range planes {
		outside := true
		for _, p := range points {
			if pl.DistanceTo(p) >= -planeEpsilon {
				outside = false
				break
			}
		}
		if outside {
			return true
		}
	}
	return false
}

// boxSeparatesPoints reports whether every point lies beyond one face of the box.
func boxSeparatesPoints(b BoxBounds, points []mgl32.Vec3) bool {
	for axis := 0; axis < 3; axis++ {
		below, above := true, true
		for _, p := range points {
			if p[axis] >= b.Min[axis] {
				below = false
			}
			if p[axis] <= b.Max[axis] {
				above = false
			}
		}
		if below || above {
			return true
		}
	}
	return false
}

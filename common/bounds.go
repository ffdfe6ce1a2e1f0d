package common

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoxBounds is an axis-aligned bounding box described by its minimum and maximum corners.
// The zero value is a degenerate box at the origin; use EmptyBox when accumulating points.
type BoxBounds struct {
	Min mgl32.Vec3
	Max mgl32.Vec3
}

// SphereBounds is a bounding sphere.
type SphereBounds struct {
	Center mgl32.Vec3
	Radius float32
}

// NewBoxBounds creates a box from two opposite corners in any order.
func NewBoxBounds(a, b mgl32.Vec3) BoxBounds {
	return BoxBounds{
		Min: mgl32.Vec3{min(a[0], b[0]), min(a[1], b[1]), min(a[2], b[2])},
		Max: mgl32.Vec3{max(a[0], b[0]), max(a[1], b[1]), max(a[2], b[2])},
	}
}

// NewBoxFromCenter creates a box centered on center with the given half extents.
func NewBoxFromCenter(center, halfExtents mgl32.Vec3) BoxBounds {
	return BoxBounds{Min: center.Sub(halfExtents), Max: center.Add(halfExtents)}
}

// NewSphereBounds creates a sphere with the given center and radius.
func NewSphereBounds(center mgl32.Vec3, radius float32) SphereBounds {
	return SphereBounds{Center: center, Radius: radius}
}

// EmptyBox returns an inverted box that any Encapsulate call will replace.
func EmptyBox() BoxBounds {
	inf := float32(math.Inf(1))
	return BoxBounds{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// BoxFromPoints returns the tightest box around points, or the zero box for no points.
func BoxFromPoints(points []mgl32.Vec3) BoxBounds {
	if len(points) == 0 {
		return BoxBounds{}
	}
	b := EmptyBox()
	for _, p := range points {
		b = b.Encapsulate(p)
	}
	return b
}

// Encapsulate returns the box grown to include p.
func (b BoxBounds) Encapsulate(p mgl32.Vec3) BoxBounds {
	return BoxBounds{
		Min: mgl32.Vec3{min(b.Min[0], p[0]), min(b.Min[1], p[1]), min(b.Min[2], p[2])},
		Max: mgl32.Vec3{max(b.Max[0], p[0]), max(b.Max[1], p[1]), max(b.Max[2], p[2])},
	}
}

// Union returns the smallest box containing both b and o.
func (b BoxBounds) Union(o BoxBounds) BoxBounds {
	return b.Encapsulate(o.Min).Encapsulate(o.Max)
}

// Center returns the midpoint of the box.
func (b BoxBounds) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Extents returns the half size of the box along each axis.
func (b BoxBounds) Extents() mgl32.Vec3 {
	return b.Max.Sub(b.Min).Mul(0.5)
}

// Size returns the full size of the box along each axis.
func (b BoxBounds) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Corners returns the eight corners of the box. Bit 0 of the index selects max X,
// bit 1 max Y and bit 2 max Z.
func (b BoxBounds) Corners() [8]mgl32.Vec3 {
	var out [8]mgl32.Vec3
	for i := range out {
		out[i] = mgl32.Vec3{
			pick(i&1 != 0, b.Max[0], b.Min[0]),
			pick(i&2 != 0, b.Max[1], b.Min[1]),
			pick(i&4 != 0, b.Max[2], b.Min[2]),
		}
	}
	return out
}

// BoundingSphere returns the sphere through the box corners.
func (b BoxBounds) BoundingSphere() SphereBounds {
	return SphereBounds{Center: b.Center(), Radius: b.Extents().Len()}
}

// closestPoint returns the point inside the box nearest to p.
func (b BoxBounds) closestPoint(p mgl32.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{
		mgl32.Clamp(p[0], b.Min[0], b.Max[0]),
		mgl32.Clamp(p[1], b.Min[1], b.Max[1]),
		mgl32.Clamp(p[2], b.Min[2], b.Max[2]),
	}
}

// BoundingBox returns the axis-aligned box around the sphere.
func (s SphereBounds) BoundingBox() BoxBounds {
	r := mgl32.Vec3{s.Radius, s.Radius, s.Radius}
	return NewBoxFromCenter(s.Center, r)
}

func pick(cond bool, a, b float32) float32 {
	if cond {
		return a
	}
	return b
}

package common

import "github.com/go-gl/mathgl/mgl32"

// Collidable is a bounding volume that can be tested against other volumes.
// BoxBounds, SphereBounds and Frustum implement it as value types.
type Collidable interface {
	// Intersects reports whether the volume overlaps other.
	//
	// Parameters:
	//   - other: the volume to test against
	//
	// Returns:
	//   - bool: true if the volumes share at least one point
	Intersects(other Collidable) bool

	// Contains reports whether other lies entirely inside the volume.
	//
	// Parameters:
	//   - other: the volume to test
	//
	// Returns:
	//   - bool: true if every point of other is inside this volume
	Contains(other Collidable) bool

	// ContainsPoint reports whether p is inside or on the surface of the volume.
	ContainsPoint(p mgl32.Vec3) bool

	// IntersectsFast is the conservative box test used while culling. It never returns
	// false for a box that overlaps the volume, but may return true for one that does not.
	IntersectsFast(box BoxBounds) bool

	// Transform returns a new volume of the same kind transformed by m.
	Transform(m mgl32.Mat4) Collidable

	// Bounds returns the axis-aligned box around the volume.
	Bounds() BoxBounds
}

var _ Collidable = BoxBounds{}
var _ Collidable = SphereBounds{}
var _ Collidable = Frustum{}

// Intersects reports whether a and b overlap. The test is symmetric: a frustum tested
// against a box gives the same answer as the box tested against the frustum.
func Intersects(a, b Collidable) bool {
	if _, ok := b.(Frustum); ok {
		if _, aIsFrustum := a.(Frustum); !aIsFrustum {
			return b.Intersects(a)
		}
	}
	return a.Intersects(b)
}

// Contains reports whether b lies entirely inside a.
func Contains(a, b Collidable) bool {
	return a.Contains(b)
}

// Box

func (b BoxBounds) ContainsPoint(p mgl32.Vec3) bool {
	return p[0] >= b.Min[0] && p[0] <= b.Max[0] &&
		p[1] >= b.Min[1] && p[1] <= b.Max[1] &&
		p[2] >= b.Min[2] && p[2] <= b.Max[2]
}

func (b BoxBounds) IntersectsFast(o BoxBounds) bool {
	return b.Min[0] <= o.Max[0] && b.Max[0] >= o.Min[0] &&
		b.Min[1] <= o.Max[1] && b.Max[1] >= o.Min[1] &&
		b.Min[2] <= o.Max[2] && b.Max[2] >= o.Min[2]
}

func (b BoxBounds) Intersects(other Collidable) bool {
	switch o := other.(type) {
	case BoxBounds:
		return b.IntersectsFast(o)
	case SphereBounds:
		return o.IntersectsFast(b)
	case Frustum:
		return o.Intersects(b)
	default:
		return b.IntersectsFast(other.Bounds())
	}
}

func (b BoxBounds) Contains(other Collidable) bool {
	switch o := other.(type) {
	case BoxBounds:
		return b.ContainsPoint(o.Min) && b.ContainsPoint(o.Max)
	case SphereBounds:
		return b.Contains(o.BoundingBox())
	case Frustum:
		return b.Contains(o.Bounds())
	default:
		return b.Contains(other.Bounds())
	}
}

// Transform re-derives an axis-aligned box around the eight transformed corners, so a
// rotated box grows.
func (b BoxBounds) Transform(m mgl32.Mat4) Collidable {
	return b.Transformed(m)
}

// Transformed is the typed form of Transform.
func (b BoxBounds) Transformed(m mgl32.Mat4) BoxBounds {
	corners := b.Corners()
	for i, c := range corners {
		corners[i] = mgl32.TransformCoordinate(c, m)
	}
	return BoxFromPoints(corners[:])
}

func (b BoxBounds) Bounds() BoxBounds {
	return b
}

// Sphere

func (s SphereBounds) ContainsPoint(p mgl32.Vec3) bool {
	return p.Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

func (s SphereBounds) IntersectsFast(box BoxBounds) bool {
	return box.closestPoint(s.Center).Sub(s.Center).LenSqr() <= s.Radius*s.Radius
}

func (s SphereBounds) Intersects(other Collidable) bool {
	switch o := other.(type) {
	case SphereBounds:
		r := s.Radius + o.Radius
		return s.Center.Sub(o.Center).LenSqr() <= r*r
	case BoxBounds:
		return s.IntersectsFast(o)
	case Frustum:
		return o.Intersects(s)
	default:
		return s.IntersectsFast(other.Bounds())
	}
}

func (s SphereBounds) Contains(other Collidable) bool {
	switch o := other.(type) {
	case SphereBounds:
		return s.Center.Sub(o.Center).Len()+o.Radius <= s.Radius
	case BoxBounds:
		return s.containsAll(o.Corners())
	case Frustum:
		return s.containsAll(o.Corners)
	default:
		return s.containsAll(other.Bounds().Corners())
	}
}

// Transform moves the center by m and scales the radius by the largest axis scale.
func (s SphereBounds) Transform(m mgl32.Mat4) Collidable {
	return s.Transformed(m)
}

// Transformed is the typed form of Transform.
func (s SphereBounds) Transformed(m mgl32.Mat4) SphereBounds {
	return SphereBounds{
		Center: mgl32.TransformCoordinate(s.Center, m),
		Radius: s.Radius * MaxAxisScale(m),
	}
}

func (s SphereBounds) Bounds() BoxBounds {
	return s.BoundingBox()
}

func (s SphereBounds) containsAll(points [8]mgl32.Vec3) bool {
	for _, p := range points {
		if !s.ContainsPoint(p) {
			return false
		}
	}
	return true
}

package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func unitBox(center mgl32.Vec3) BoxBounds {
	return NewBoxFromCenter(center, mgl32.Vec3{1, 1, 1})
}

func TestIntersects(t *testing.T) {
	frustum := NewPerspectiveFrustum(DegreeToRadian(90), 1, 1, 10)
	tests := []struct {
		name string
		a, b Collidable
		want bool
	}{
		{"overlapping boxes", unitBox(mgl32.Vec3{}), unitBox(mgl32.Vec3{1.5, 0, 0}), true},
		{"touching boxes", unitBox(mgl32.Vec3{}), unitBox(mgl32.Vec3{2, 0, 0}), true},
		{"separate boxes", unitBox(mgl32.Vec3{}), unitBox(mgl32.Vec3{3, 0, 0}), false},
		{"sphere near box corner", unitBox(mgl32.Vec3{}), NewSphereBounds(mgl32.Vec3{2, 2, 0}, 1.5), true},
		{"sphere off box corner", unitBox(mgl32.Vec3{}), NewSphereBounds(mgl32.Vec3{2, 2, 0}, 1.2), false},
		{"spheres", NewSphereBounds(mgl32.Vec3{}, 1), NewSphereBounds(mgl32.Vec3{0, 1.9, 0}, 1), true},
		{"frustum and box", frustum, unitBox(mgl32.Vec3{0, 0, -5}), true},
		{"box behind frustum", unitBox(mgl32.Vec3{0, 0, 5}), frustum, false},
		{"frustum and sphere", frustum, NewSphereBounds(mgl32.Vec3{0, 0, 1}, 2.5), true},
		{"sphere outside frustum", NewSphereBounds(mgl32.Vec3{0, 0, 5}, 1), frustum, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Intersects(tt.a, tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
			if got := Intersects(tt.b, tt.a); got != tt.want {
				t.Errorf("reversed: got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestContains(t *testing.T) {
	frustum := NewPerspectiveFrustum(DegreeToRadian(90), 1, 1, 10)
	big := NewBoxFromCenter(mgl32.Vec3{}, mgl32.Vec3{5, 5, 5})
	tests := []struct {
		name string
		a, b Collidable
		want bool
	}{
		{"box in box", big, unitBox(mgl32.Vec3{1, 1, 1}), true},
		{"box partly out", big, unitBox(mgl32.Vec3{4.5, 0, 0}), false},
		{"sphere in box", big, NewSphereBounds(mgl32.Vec3{}, 4), true},
		{"box in sphere", NewSphereBounds(mgl32.Vec3{}, 2), unitBox(mgl32.Vec3{}), true},
		{"box corners poke out of sphere", NewSphereBounds(mgl32.Vec3{}, 1.5), unitBox(mgl32.Vec3{}), false},
		{"sphere in sphere", NewSphereBounds(mgl32.Vec3{}, 3), NewSphereBounds(mgl32.Vec3{1, 0, 0}, 1), true},
		{"box in frustum", frustum, unitBox(mgl32.Vec3{0, 0, -5}), true},
		{"box crossing near plane", frustum, unitBox(mgl32.Vec3{0, 0, -1}), false},
		{"sphere in frustum", frustum, NewSphereBounds(mgl32.Vec3{0, 0, -5}, 1), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Contains(tt.a, tt.b); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestBoxTransformRederivesAABB(t *testing.T) {
	box := unitBox(mgl32.Vec3{})
	rot := mgl32.HomogRotate3DY(DegreeToRadian(45))
	got := box.Transform(rot).(BoxBounds)
	r := float32(math.Sqrt2)
	want := BoxBounds{Min: mgl32.Vec3{-r, -1, -r}, Max: mgl32.Vec3{r, 1, r}}
	if !vecNear(got.Min, want.Min, 1e-5) || !vecNear(got.Max, want.Max, 1e-5) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestSphereTransformScalesRadius(t *testing.T) {
	s := NewSphereBounds(mgl32.Vec3{1, 0, 0}, 2)
	m := mgl32.Translate3D(0, 5, 0).Mul4(mgl32.Scale3D(2, 3, 1))
	got := s.Transform(m).(SphereBounds)
	if !vecNear(got.Center, mgl32.Vec3{2, 5, 0}, 1e-5) {
		t.Errorf("center: got %v, want (2, 5, 0)", got.Center)
	}
	if !near(got.Radius, 6, 1e-5) {
		t.Errorf("radius: got %v, want 6", got.Radius)
	}
}

func TestBoxFromPoints(t *testing.T) {
	got := BoxFromPoints([]mgl32.Vec3{{1, -2, 3}, {-1, 4, 0}, {0, 0, 5}})
	want := BoxBounds{Min: mgl32.Vec3{-1, -2, 0}, Max: mgl32.Vec3{1, 4, 5}}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
	if empty := BoxFromPoints(nil); empty != (BoxBounds{}) {
		t.Errorf("got %v, want zero box", empty)
	}
}

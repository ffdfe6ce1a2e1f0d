package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func testFrustum() Frustum {
	return NewPerspectiveFrustum(DegreeToRadian(90), 1, 1, 10)
}

func TestNewPerspectiveFrustumCorners(t *testing.T) {
	f := testFrustum()
	want := [8]mgl32.Vec3{
		{-1, -1, -1}, {1, -1, -1}, {1, 1, -1}, {-1, 1, -1},
		{-10, -10, -10}, {10, -10, -10}, {10, 10, -10}, {-10, 10, -10},
	}
	for i := range want {
		if !vecNear(f.Corners[i], want[i], 1e-4) {
			t.Errorf("corner %d: got %v, want %v", i, f.Corners[i], want[i])
		}
	}
}

func TestFrustumPlanesFaceInward(t *testing.T) {
	f := testFrustum()
	center := f.Centroid()
	for i, pl := range f.Planes {
		if d := pl.DistanceTo(center); d <= 0 {
			t.Errorf("plane %d: got distance %v to centroid, want > 0", i, d)
		}
	}
	if n := f.Planes[FrustumNear].Normal; !vecNear(n, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("near normal: got %v, want (0, 0, -1)", n)
	}
}

func TestFrustumContainsPoint(t *testing.T) {
	f := testFrustum()
	tests := []struct {
		name  string
		point mgl32.Vec3
		want  bool
	}{
		{"center", mgl32.Vec3{0, 0, -5}, true},
		{"in front of near", mgl32.Vec3{0, 0, -0.5}, false},
		{"past far", mgl32.Vec3{0, 0, -11}, false},
		{"right of side plane", mgl32.Vec3{6, 0, -5}, false},
		{"inside side plane", mgl32.Vec3{4, 0, -5}, true},
		{"on far plane", mgl32.Vec3{9.9, 9.9, -10}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.ContainsPoint(tt.point); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExtractFrustumFromMatrixMatchesPerspective(t *testing.T) {
	proj := mgl32.Perspective(DegreeToRadian(90), 1, 1, 10)
	got := ExtractFrustumFromMatrix(proj)
	want := testFrustum()
	for i := range want.Corners {
		if !vecNear(got.Corners[i], want.Corners[i], 1e-2) {
			t.Errorf("corner %d: got %v, want %v", i, got.Corners[i], want.Corners[i])
		}
	}
	points := []mgl32.Vec3{{0, 0, -5}, {0, 0, -0.5}, {6, 0, -5}, {4, 3, -5}, {0, 0, -11}}
	for _, p := range points {
		if g, w := got.ContainsPoint(p), want.ContainsPoint(p); g != w {
			t.Errorf("point %v: got %v, want %v", p, g, w)
		}
	}
}

func TestFrustumTransformed(t *testing.T) {
	f := testFrustum().Transformed(mgl32.Translate3D(0, 0, -5))
	if !f.ContainsPoint(mgl32.Vec3{0, 0, -10}) {
		t.Errorf("got outside, want (0, 0, -10) inside the moved frustum")
	}
	if f.ContainsPoint(mgl32.Vec3{0, 0, -16}) {
		t.Errorf("got inside, want (0, 0, -16) past the moved far plane")
	}
	if !vecNear(f.Corners[NearLeftBottom], mgl32.Vec3{-1, -1, -6}, 1e-4) {
		t.Errorf("got %v, want (-1, -1, -6)", f.Corners[NearLeftBottom])
	}
}

func TestFrustumIntersectsFast(t *testing.T) {
	f := testFrustum()
	tests := []struct {
		name string
		box  BoxBounds
		want bool
	}{
		{"inside", NewBoxFromCenter(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{1, 1, 1}), true},
		{"behind eye", NewBoxFromCenter(mgl32.Vec3{0, 0, 5}, mgl32.Vec3{1, 1, 1}), false},
		{"straddles far plane", NewBoxFromCenter(mgl32.Vec3{0, 0, -10}, mgl32.Vec3{1, 1, 1}), true},
		{"beside frustum", NewBoxFromCenter(mgl32.Vec3{20, 0, -5}, mgl32.Vec3{1, 1, 1}), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.IntersectsFast(tt.box); got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFrustumIntersectsFrustum(t *testing.T) {
	f := testFrustum()
	overlapping := f.Transformed(mgl32.Translate3D(0, 0, -5))
	apart := f.Transformed(mgl32.Translate3D(0, 0, 50))
	if !f.Intersects(overlapping) {
		t.Errorf("got false, want overlapping frusta to intersect")
	}
	if f.Intersects(apart) {
		t.Errorf("got true, want separated frusta not to intersect")
	}
}

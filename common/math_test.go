package common

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestBuildModelMatrix(t *testing.T) {
	pos := mgl32.Vec3{1, 2, 3}
	rot := AxisAngleToQuaternion(YAxis, 0.6)
	scale := mgl32.Vec3{2, 3, 4}

	got := BuildModelMatrix(pos, rot, scale)
	want := mgl32.Translate3D(1, 2, 3).Mul4(rot.Mat4()).Mul4(mgl32.Scale3D(2, 3, 4))
	for i := range want {
		if !near(got[i], want[i], 1e-5) {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}

func TestBiasMatrixMapsClipToTexture(t *testing.T) {
	tests := []struct {
		clip mgl32.Vec3
		want mgl32.Vec3
	}{
		{mgl32.Vec3{-1, -1, -1}, mgl32.Vec3{0, 0, 0}},
		{mgl32.Vec3{1, 1, 1}, mgl32.Vec3{1, 1, 1}},
		{mgl32.Vec3{0, 0, 0}, mgl32.Vec3{0.5, 0.5, 0.5}},
	}
	for _, tt := range tests {
		got := TransformPoint(BiasMatrix, tt.clip)
		if !vecNear(got.Vec3(), tt.want, 1e-6) || got[3] != 1 {
			t.Errorf("got %v, want %v", got, tt.want)
		}
	}
}

func TestMaxAxisScale(t *testing.T) {
	if got := MaxAxisScale(mgl32.Scale3D(1, 5, 2)); !near(got, 5, 1e-6) {
		t.Errorf("got %v, want 5", got)
	}
}

func TestCoalesce(t *testing.T) {
	if got := Coalesce(0, 0, 7, 9); got != 7 {
		t.Errorf("got %v, want 7", got)
	}
	if got := Coalesce("", ""); got != "" {
		t.Errorf("got %q, want empty", got)
	}
}

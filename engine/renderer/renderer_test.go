package renderer

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func TestDepthTargetDescriptorValidate(t *testing.T) {
	tests := []struct {
		name    string
		desc    DepthTargetDescriptor
		wantErr bool
	}{
		{"2D", NewDepthTarget2D("a", 2048, 2048), false},
		{"array", NewDepthTargetArray("a", 1024, 1024, 4), false},
		{"cube", NewDepthTargetCube("a", 512), false},
		{"zero width", NewDepthTarget2D("a", 0, 16), true},
		{"2D with layers", DepthTargetDescriptor{Width: 4, Height: 4, Layers: 2, Dimension: wgpu.TextureViewDimension2D}, true},
		{"non-square cube", DepthTargetDescriptor{Width: 4, Height: 8, Layers: 6, Dimension: wgpu.TextureViewDimensionCube}, true},
		{"3D", DepthTargetDescriptor{Width: 4, Height: 4, Layers: 1, Dimension: wgpu.TextureViewDimension3D}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.desc.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("got %v, want error %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidTarget) {
				t.Errorf("got %v, want ErrInvalidTarget", err)
			}
		})
	}
}

func TestDepthTargetDescriptorWGPU(t *testing.T) {
	desc := NewDepthTargetArray("Cascades", 1024, 512, 4)

	tex := desc.TextureDescriptor()
	if tex.Size.DepthOrArrayLayers != 4 || tex.Format != ShadowDepthFormat {
		t.Errorf("got %+v, want 4 layers of %v", tex.Size, ShadowDepthFormat)
	}
	if tex.Usage&wgpu.TextureUsageRenderAttachment == 0 || tex.Usage&wgpu.TextureUsageTextureBinding == 0 {
		t.Errorf("got usage %v, want render attachment and texture binding", tex.Usage)
	}

	view := desc.ViewDescriptor()
	if view.Dimension != wgpu.TextureViewDimension2DArray || view.ArrayLayerCount != 4 {
		t.Errorf("got %v with %d layers, want 2DArray with 4", view.Dimension, view.ArrayLayerCount)
	}
	layer := desc.LayerViewDescriptor(2)
	if layer.Dimension != wgpu.TextureViewDimension2D || layer.BaseArrayLayer != 2 || layer.ArrayLayerCount != 1 {
		t.Errorf("got %+v, want single 2D layer 2", layer)
	}
	if got := desc.TexelSize(); got != [2]float32{1.0 / 1024, 1.0 / 512} {
		t.Errorf("got %v, want (1/1024, 1/512)", got)
	}
}

func TestTemporaryPoolReusesAcrossFrames(t *testing.T) {
	pool := NewTemporaryPool()
	desc := NewDepthTarget2D("shadow", 256, 256)

	a, err := pool.AcquireTemporaryDepthTarget(desc)
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	b, err := pool.AcquireTemporaryDepthTarget(desc)
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if a.ID() == b.ID() {
		t.Errorf("got the same target twice in one frame")
	}
	if pool.InUse() != 2 {
		t.Errorf("got %d in use, want 2", pool.InUse())
	}

	pool.EndFrame()
	if pool.InUse() != 0 || pool.Idle() != 2 {
		t.Errorf("got in use %d idle %d, want 0 and 2", pool.InUse(), pool.Idle())
	}

	c, err := pool.AcquireTemporaryDepthTarget(desc)
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if c.ID() != a.ID() && c.ID() != b.ID() {
		t.Errorf("got new target %d, want a reused one", c.ID())
	}
	d, _ := pool.AcquireTemporaryDepthTarget(NewDepthTargetCube("point", 256))
	if d.ID() == a.ID() || d.ID() == b.ID() {
		t.Errorf("got reused target for a different descriptor")
	}

	// The target left idle through a whole frame is dropped.
	pool.EndFrame()
	if pool.Idle() != 2 {
		t.Errorf("got idle %d, want 2", pool.Idle())
	}
	pool.Release()
	if pool.Idle() != 0 || pool.InUse() != 0 {
		t.Errorf("got idle %d in use %d after Release, want 0", pool.Idle(), pool.InUse())
	}
}

func TestTemporaryPoolRejectsInvalid(t *testing.T) {
	pool := NewTemporaryPool()
	if _, err := pool.AcquireTemporaryDepthTarget(DepthTargetDescriptor{}); !errors.Is(err, ErrInvalidTarget) {
		t.Errorf("got %v, want ErrInvalidTarget", err)
	}
	if pool.InUse() != 0 {
		t.Errorf("got %d in use, want 0", pool.InUse())
	}
}

func TestLayerViewRange(t *testing.T) {
	pool := NewTemporaryPool()
	target, _ := pool.AcquireTemporaryDepthTarget(NewDepthTargetCube("cube", 64))
	if _, err := target.LayerView(5); err != nil {
		t.Errorf("got %v, want nil", err)
	}
	if _, err := target.LayerView(6); !errors.Is(err, ErrLayerOutOfRange) {
		t.Errorf("got %v, want ErrLayerOutOfRange", err)
	}
}

func TestShadowPassState(t *testing.T) {
	s := DefaultShadowPassState()
	if s.ClearDepth() != 1 || s.ClearColor() != (wgpu.Color{R: 1, G: 1, B: 1, A: 1}) {
		t.Errorf("got clear %v %v, want 1 and white", s.ClearDepth(), s.ClearColor())
	}
	if s.DepthCompare() != wgpu.CompareFunctionLess || s.CullMode() != wgpu.CullModeBack {
		t.Errorf("got %v %v, want Less and Back", s.DepthCompare(), s.CullMode())
	}
	ds := s.DepthStencilState()
	if ds.DepthBias != light.DepthBiasConstant || ds.DepthBiasSlopeScale != light.DepthBiasSlopeScale || !ds.DepthWriteEnabled {
		t.Errorf("got %+v, want standard bias with depth writes", ds)
	}

	front := s.WithCullMode(wgpu.CullModeFront)
	if s.CullMode() != wgpu.CullModeBack || front.CullMode() != wgpu.CullModeFront {
		t.Errorf("got receiver %v copy %v, want Back and Front", s.CullMode(), front.CullMode())
	}

	point := ShadowPassStateFor(light.LightTypePoint)
	if point.DepthBias() != 0 || point.DepthBiasSlopeScale() != 0 {
		t.Errorf("got bias %v/%v, want none for point lights", point.DepthBias(), point.DepthBiasSlopeScale())
	}
	if spot := ShadowPassStateFor(light.LightTypeSpot); spot.DepthBias() != light.DepthBiasConstant {
		t.Errorf("got %v, want %v", spot.DepthBias(), light.DepthBiasConstant)
	}
}

func TestRasterizerFunc(t *testing.T) {
	var got PassDescriptor
	r := RasterizerFunc(func(_ DepthTarget, _ ShadowPassState, pass PassDescriptor) error {
		got = pass
		return nil
	})
	want := PassDescriptor{Layer: 3, View: mgl32.Translate3D(1, 0, 0), Projection: mgl32.Scale3D(2, 2, 2)}
	if err := r.DrawShadowPass(nil, DefaultShadowPassState(), want); err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if got.Layer != 3 || got.ViewProjection() != want.Projection.Mul4(want.View) {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

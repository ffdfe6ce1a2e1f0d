package shadow

import (
	"errors"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/go-gl/mathgl/mgl32"
)

func TestTechniqueFor(t *testing.T) {
	tests := []struct {
		name  string
		light light.Light
		want  Technique
	}{
		{"directional", light.NewLight(light.LightTypeDirectional), TechniqueDirectional},
		{"cascaded", light.NewLight(light.LightTypeDirectional, light.WithCascadeCount(4)), TechniqueCascaded},
		{"point", light.NewLight(light.LightTypePoint), TechniquePoint},
		{"spot", light.NewLight(light.LightTypeSpot), TechniqueSpot},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := TechniqueFor(tt.light)
			if err != nil || got != tt.want {
				t.Errorf("got (%v, %v), want (%v, nil)", got, err, tt.want)
			}
		})
	}
	if _, err := TechniqueFor(light.NewLight(light.LightType(99))); !errors.Is(err, ErrUnsupportedLight) {
		t.Errorf("got %v, want ErrUnsupportedLight", err)
	}
}

func TestRunCascaded(t *testing.T) {
	cam := testCamera()
	ctx, rec := newFrame(cam,
		cube(1, mgl32.Vec3{0, 0, -10}),
		cube(2, mgl32.Vec3{0, 0, -40}),
		cube(3, mgl32.Vec3{0, 0, -60}),
	)
	l := light.NewLight(light.LightTypeDirectional,
		light.WithPosition(mgl32.Vec3{0, 50, -50}),
		light.WithCascadeCount(4),
	)

	res, err := NewOrchestrator().Run(ctx, l)
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if res.Technique != TechniqueCascaded {
		t.Errorf("got %v, want Cascaded", res.Technique)
	}

	wantSplits := []SplitRange{{1, 26}, {26, 51}, {51, 76}, {76, 101}}
	if len(res.Splits) != 4 || len(res.Passes) != 4 || len(res.Transforms) != 4 {
		t.Fatalf("got %d splits %d passes %d transforms, want 4 each", len(res.Splits), len(res.Passes), len(res.Transforms))
	}
	wantCasters := [][]uint64{{1}, {2}, {3}, {}}
	for i, pass := range res.Passes {
		if res.Splits[i] != wantSplits[i] {
			t.Errorf("split %d: got %v, want %v", i, res.Splits[i], wantSplits[i])
		}
		sameIDs(t, "cascade casters", pass.Casters, wantCasters[i]...)
		for j := range i {
			if res.Passes[j].Projection == pass.Projection {
				t.Errorf("cascades %d and %d share a crop matrix", j, i)
			}
		}
	}

	// Every caster lands inside the shadow texture of its cascade.
	for i, pass := range res.Passes {
		for _, n := range pass.Casters {
			for _, c := range n.WorldAABB().Corners() {
				p := mgl32.TransformCoordinate(c, res.Transforms[i])
				for axis := 0; axis < 3; axis++ {
					if p[axis] < -1e-4 || p[axis] > 1+1e-4 {
						t.Errorf("cascade %d caster %d corner %v: got %v, want inside [0, 1]", i, n.ID(), c, p)
					}
				}
			}
		}
	}

	desc := res.Target.Descriptor()
	if desc.Dimension != wgpu.TextureViewDimension2DArray || desc.Layers != 4 || desc.Width != light.CascadeResolution {
		t.Errorf("got %+v, want 4-layer %d array", desc, light.CascadeResolution)
	}
	if len(rec.calls) != 4 {
		t.Fatalf("got %d draws, want 4", len(rec.calls))
	}
	for i, call := range rec.calls {
		if call.pass.Layer != uint32(i) || call.target != res.Target {
			t.Errorf("draw %d: got layer %d, want %d on the result target", i, call.pass.Layer, i)
		}
		if call.state.DepthBias() != light.DepthBiasConstant {
			t.Errorf("draw %d: got bias %v, want %v", i, call.state.DepthBias(), light.DepthBiasConstant)
		}
	}
	if names := ctx.Debug.Names(); len(names) != 1 || ctx.Debug.Get(names[0]) != res.Target {
		t.Errorf("got debug targets %v, want the cascade target", names)
	}
}

func TestRunDirectionalUsesShadowFarAndBounds(t *testing.T) {
	cam := testCamera(
		camera.WithShadowFar(20),
		camera.WithShadowBounds(common.NewBoxFromCenter(mgl32.Vec3{0, 0, -60}, mgl32.Vec3{5, 5, 5})),
	)
	ctx, _ := newFrame(cam,
		cube(1, mgl32.Vec3{0, 0, -10}),
		cube(2, mgl32.Vec3{0, 0, -40}),
		cube(3, mgl32.Vec3{0, 0, -60}),
	)
	l := light.NewLight(light.LightTypeDirectional, light.WithPosition(mgl32.Vec3{0, 50, -50}))

	res, err := NewOrchestrator().Run(ctx, l)
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if len(res.Splits) != 1 || res.Splits[0] != (SplitRange{1, 20}) {
		t.Errorf("got %v, want [1, 20]", res.Splits)
	}
	sameIDs(t, "directional casters", res.Passes[0].Casters, 1, 3)

	want := common.BiasMatrix.Mul4(res.Passes[0].Projection).Mul4(l.ViewMatrix()).Mul4(cam.WorldMatrix())
	if res.Transforms[0] != want {
		t.Errorf("got %v, want %v", res.Transforms[0], want)
	}
	if desc := res.Target.Descriptor(); desc.Dimension != wgpu.TextureViewDimension2D || desc.Width != light.ShadowMapResolution {
		t.Errorf("got %+v, want %d 2D target", desc, light.ShadowMapResolution)
	}
}

func TestRunPoint(t *testing.T) {
	tests := []struct {
		name        string
		faceCulling bool
		wantPerFace [6][]uint64
	}{
		{"superset", false, [6][]uint64{{1, 2}, {1, 2}, {1, 2}, {1, 2}, {1, 2}, {1, 2}}},
		{"face culling", true, [6][]uint64{{1}, {}, {}, {}, {}, {2}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cam := testCamera()
			ctx, rec := newFrame(cam,
				cube(1, mgl32.Vec3{5, 0, 0}),
				cube(2, mgl32.Vec3{0, 0, -5}),
				cube(3, mgl32.Vec3{20, 0, 0}),
			)
			l := light.NewLight(light.LightTypePoint, light.WithRange(10))

			res, err := NewOrchestrator(WithPointFaceCulling(tt.faceCulling)).Run(ctx, l)
			if err != nil {
				t.Fatalf("got %v, want nil", err)
			}
			if len(res.Passes) != 6 {
				t.Fatalf("got %d passes, want 6", len(res.Passes))
			}
			square := mgl32.Perspective(common.HalfPi, 1, light.ShadowNear, 10)
			for i, pass := range res.Passes {
				sameIDs(t, "face casters", pass.Casters, tt.wantPerFace[i]...)
				for j := range square {
					if !near(pass.Projection[j], square[j], 1e-6) {
						t.Errorf("face %d: got projection %v, want square 90 degree %v", i, pass.Projection, square)
						break
					}
				}
			}
			if p := mgl32.TransformCoordinate(mgl32.Vec3{5, 0, 0}, res.Passes[0].View); !vecNear(p, mgl32.Vec3{0, 0, -5}, 1e-5) {
				t.Errorf("+X face: got %v, want (0, 0, -5)", p)
			}
			if len(res.Transforms) != 1 || res.Transforms[0] != cam.WorldMatrix() {
				t.Errorf("got %v, want the camera world matrix", res.Transforms)
			}
			desc := res.Target.Descriptor()
			if desc.Dimension != wgpu.TextureViewDimensionCube || desc.Width != light.PointShadowResolution {
				t.Errorf("got %+v, want %d cube", desc, light.PointShadowResolution)
			}
			if rec.calls[0].state.DepthBias() != 0 {
				t.Errorf("got bias %v, want none for point lights", rec.calls[0].state.DepthBias())
			}
		})
	}
}

func TestRunSpot(t *testing.T) {
	cam := testCamera()
	ctx, _ := newFrame(cam,
		cube(1, mgl32.Vec3{0, 0, 0}),
		cube(2, mgl32.Vec3{1, 0, 0}, node.WithCastsShadows(false)),
		cube(3, mgl32.Vec3{30, 0, 0}),
	)
	l := light.NewLight(light.LightTypeSpot,
		light.WithPosition(mgl32.Vec3{0, 10, 0}),
		light.WithRange(20),
	)

	res, err := NewOrchestrator().Run(ctx, l)
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	sameIDs(t, "spot casters", res.Passes[0].Casters, 1)

	base := mgl32.Perspective(2*l.OuterAngle(), 1, light.ShadowNear, 20)
	got := res.Passes[0].Projection
	if !(got[0] > base[0]) {
		t.Errorf("got x scale %v, want focused beyond %v", got[0], base[0])
	}
	for _, c := range res.Passes[0].Casters[0].WorldAABB().Corners() {
		p := mgl32.TransformCoordinate(c, res.Transforms[0])
		if p.X() < -1e-4 || p.X() > 1+1e-4 || p.Y() < -1e-4 || p.Y() > 1+1e-4 {
			t.Errorf("corner %v: got %v, want inside the shadow texture", c, p)
		}
	}
	if len(res.Splits) != 0 {
		t.Errorf("got %v, want no splits", res.Splits)
	}
}

func TestRunErrors(t *testing.T) {
	directional := light.NewLight(light.LightTypeDirectional)
	tests := []struct {
		name      string
		ctx       func() *FrameContext
		light     light.Light
		wantErr   error
		wantStage Stage
	}{
		{
			name:      "no camera",
			ctx:       func() *FrameContext { ctx, _ := newFrame(testCamera()); ctx.Camera = nil; return ctx },
			light:     directional,
			wantErr:   ErrNoCamera,
			wantStage: StageAcquireCasters,
		},
		{
			name:      "nil frame",
			ctx:       func() *FrameContext { return nil },
			light:     directional,
			wantErr:   ErrNoCamera,
			wantStage: StageAcquireCasters,
		},
		{
			name:      "no scene",
			ctx:       func() *FrameContext { ctx, _ := newFrame(testCamera()); ctx.Scene = nil; return ctx },
			light:     directional,
			wantErr:   ErrNoScene,
			wantStage: StageAcquireCasters,
		},
		{
			name:      "unsupported light",
			ctx:       func() *FrameContext { ctx, _ := newFrame(testCamera()); return ctx },
			light:     light.NewLight(light.LightType(99)),
			wantErr:   ErrUnsupportedLight,
			wantStage: StageAcquireCasters,
		},
		{
			name:      "shadow far before near",
			ctx:       func() *FrameContext { ctx, _ := newFrame(testCamera(camera.WithShadowFar(0.5))); return ctx },
			light:     directional,
			wantErr:   ErrInvalidSplit,
			wantStage: StagePartitionCascades,
		},
		{
			name:      "point range inside near plane",
			ctx:       func() *FrameContext { ctx, _ := newFrame(testCamera()); return ctx },
			light:     light.NewLight(light.LightTypePoint, light.WithRange(1)),
			wantErr:   ErrZeroExtent,
			wantStage: StageAcquireCasters,
		},
		{
			name:      "spot range inside near plane",
			ctx:       func() *FrameContext { ctx, _ := newFrame(testCamera()); return ctx },
			light:     light.NewLight(light.LightTypeSpot, light.WithRange(0.5)),
			wantErr:   ErrZeroExtent,
			wantStage: StageAcquireCasters,
		},
		{
			name:      "no target pool",
			ctx:       func() *FrameContext { ctx, _ := newFrame(testCamera()); ctx.Targets = nil; return ctx },
			light:     directional,
			wantErr:   ErrNoTargetPool,
			wantStage: StageEmitTransforms,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewOrchestrator().Run(tt.ctx(), tt.light)
			if res != nil {
				t.Errorf("got %v, want nil result", res)
			}
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("got %v, want %v", err, tt.wantErr)
			}
			var passErr *PassError
			if !errors.As(err, &passErr) {
				t.Fatalf("got %T, want *PassError", err)
			}
			if passErr.Stage != tt.wantStage || passErr.Light != tt.light {
				t.Errorf("got stage %v, want %v", passErr.Stage, tt.wantStage)
			}
		})
	}
}

func TestRunRasterizerFailure(t *testing.T) {
	ctx, rec := newFrame(testCamera(), cube(1, mgl32.Vec3{0, 0, -10}))
	deviceLost := errors.New("device lost")
	rec.err = deviceLost

	_, err := NewOrchestrator().Run(ctx, light.NewLight(light.LightTypeDirectional))
	var passErr *PassError
	if !errors.As(err, &passErr) || !errors.Is(err, deviceLost) || passErr.Stage != StageEmitTransforms {
		t.Errorf("got %v, want a pass error at EmitTransforms wrapping %v", err, deviceLost)
	}
}

func TestRunWithoutRasterizer(t *testing.T) {
	ctx, _ := newFrame(testCamera(), cube(1, mgl32.Vec3{0, 0, -10}))
	ctx.Rasterizer = nil
	ctx.Debug = nil
	res, err := NewOrchestrator().Run(ctx, light.NewLight(light.LightTypeDirectional))
	if err != nil {
		t.Fatalf("got %v, want nil", err)
	}
	if res.Target == nil {
		t.Errorf("got no target, want one acquired from the pool")
	}
	if ctx.Targets.InUse() != 1 {
		t.Errorf("got %d targets in use, want 1", ctx.Targets.InUse())
	}
}

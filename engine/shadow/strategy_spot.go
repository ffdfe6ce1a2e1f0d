package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// runSpot renders one perspective map covering the outer cone, focused on the casters.
func (o *orchestrator) runSpot(run *lightRun) error {
	radius := run.light.Range()
	fov := 2 * run.light.OuterAngle()

	run.stage = StageAcquireCasters
	if radius <= light.ShadowNear {
		return fmt.Errorf("spot light range %v: %w", radius, ErrZeroExtent)
	}
	if !(fov > 0 && fov < common.Pi) {
		return fmt.Errorf("spot cone %v rad: %w", fov, ErrDegenerateFrustum)
	}
	lightView := run.light.ViewMatrix()
	frustum := common.NewPerspectiveFrustum(fov, 1, light.ShadowNear, radius).Transformed(lightView.Inv())
	visible := run.ctx.Scene.VisibleRenderables(frustum, nil)
	casters := visible[:0]
	for _, n := range visible {
		if n.CastsShadows() {
			casters = append(casters, n)
		}
	}

	run.stage = StageFitProjections
	projection := FitPerspectiveCrop(mgl32.Perspective(fov, 1, light.ShadowNear, radius), lightView, casters)
	run.result.Passes = []Pass{{Index: 0, View: lightView, Projection: projection, Casters: casters}}

	run.stage = StageEmitTransforms
	run.result.Transforms = []mgl32.Mat4{cameraToShadow(projection, lightView, run.cam.WorldMatrix())}
	res := run.resolution(light.ShadowMapResolution)
	return run.emit(renderer.NewDepthTarget2D("Spot Shadow Map", res, res))
}

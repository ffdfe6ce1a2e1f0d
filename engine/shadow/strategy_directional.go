package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// runDirectional fits a single orthographic map over [near, shadowFar] of the view.
func (o *orchestrator) runDirectional(run *lightRun) error {
	cam := run.cam
	near, far := cam.Near(), cam.ShadowFar()

	run.stage = StageAcquireCasters
	casters := run.ctx.Scene.VisibleShadowCasters(cam.Frustum(near, far), nil, false)
	casters = run.supplementShadowBounds(casters)

	run.stage = StagePartitionCascades
	splits, err := SplitBetween(cam, near, far, 1, nil)
	if err != nil {
		return err
	}

	run.stage = StageFitProjections
	lightView := run.light.ViewMatrix()
	projection, err := FitCrop(lightView, splits[0].Frustum, casters)
	if err != nil {
		return err
	}
	run.result.Splits = []SplitRange{splits[0].SplitRange}
	run.result.Passes = []Pass{{Index: 0, View: lightView, Projection: projection, Casters: casters}}

	run.stage = StageEmitTransforms
	run.result.Transforms = []mgl32.Mat4{cameraToShadow(projection, lightView, cam.WorldMatrix())}
	res := run.resolution(light.ShadowMapResolution)
	return run.emit(renderer.NewDepthTarget2D("Directional Shadow Map", res, res))
}

// runCascaded fits one orthographic map per depth split of the full view range, all
// rendered into layers of one array target.
func (o *orchestrator) runCascaded(run *lightRun) error {
	cam := run.cam
	near, far := cam.Near(), cam.Far()

	run.stage = StageAcquireCasters
	broad := run.ctx.Scene.VisibleShadowCasters(cam.Frustum(near, far), nil, false)

	run.stage = StagePartitionCascades
	splits, err := SplitBetween(cam, near, far, run.light.CascadeCount(), o.splitScheme)
	if err != nil {
		return err
	}
	casters := make([][]node.Node, len(splits))
	for i, s := range splits {
		casters[i] = Filter(s.Frustum, broad, nil)
	}
	casters[0] = run.supplementShadowBounds(casters[0])

	run.stage = StageFitProjections
	lightView := run.light.ViewMatrix()
	run.result.Splits = make([]SplitRange, len(splits))
	run.result.Passes = make([]Pass, len(splits))
	for i, s := range splits {
		projection, err := FitCrop(lightView, s.Frustum, casters[i])
		if err != nil {
			return fmt.Errorf("cascade %d: %w", i, err)
		}
		run.result.Splits[i] = s.SplitRange
		run.result.Passes[i] = Pass{Index: i, View: lightView, Projection: projection, Casters: casters[i]}
	}

	run.stage = StageEmitTransforms
	cameraWorld := cam.WorldMatrix()
	run.result.Transforms = make([]mgl32.Mat4, len(splits))
	for i, pass := range run.result.Passes {
		run.result.Transforms[i] = cameraToShadow(pass.Projection, lightView, cameraWorld)
	}
	res := run.resolution(light.CascadeResolution)
	return run.emit(renderer.NewDepthTargetArray("Cascaded Shadow Map", res, res, uint32(len(splits))))
}

// cameraToShadow composes bias * projection * lightView * cameraWorld, taking camera
// view-space positions to shadow texture coordinates.
func cameraToShadow(projection, lightView, cameraWorld mgl32.Mat4) mgl32.Mat4 {
	return common.BiasMatrix.Mul4(projection).Mul4(lightView).Mul4(cameraWorld)
}

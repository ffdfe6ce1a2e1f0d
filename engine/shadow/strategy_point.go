package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// cubeFace is the look direction and up vector of one cube map face. The up vectors
// keep every look-at away from the poles.
type cubeFace struct {
	dir mgl32.Vec3
	up  mgl32.Vec3
}

// cubeFaces is in +X, -X, +Y, -Y, +Z, -Z layer order.
var cubeFaces = [6]cubeFace{
	{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
	{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{0, 0, -1}},
	{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, -1, 0}},
	{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, -1, 0}},
}

// runPoint renders six 90 degree faces sharing one projection into a cube target.
func (o *orchestrator) runPoint(run *lightRun) error {
	radius := run.light.Range()
	pos := run.light.Position()

	run.stage = StageAcquireCasters
	if radius <= light.ShadowNear {
		return fmt.Errorf("point light range %v: %w", radius, ErrZeroExtent)
	}
	casters := run.ctx.Scene.VisibleShadowCasters(common.NewSphereBounds(pos, radius), nil, false)

	run.stage = StageFitProjections
	desc := renderer.NewDepthTargetCube("Point Shadow Map", run.resolution(light.PointShadowResolution))
	if err := desc.Validate(); err != nil {
		return err
	}
	aspect := float32(desc.Width) / float32(desc.Height)
	projection := mgl32.Perspective(common.HalfPi, aspect, light.ShadowNear, radius)
	faceFrustum := common.NewPerspectiveFrustum(common.HalfPi, 1, light.ShadowNear, radius)

	run.result.Passes = make([]Pass, len(cubeFaces))
	for i, face := range cubeFaces {
		view := mgl32.LookAtV(pos, pos.Add(face.dir), face.up)
		faceCasters := casters
		if o.pointFaceCulling {
			faceCasters = Filter(faceFrustum.Transformed(view.Inv()), casters, []node.Node{})
		}
		run.result.Passes[i] = Pass{Index: i, View: view, Projection: projection, Casters: faceCasters}
	}

	run.stage = StageEmitTransforms
	run.result.Transforms = []mgl32.Mat4{run.cam.WorldMatrix()}
	return run.emit(desc)
}

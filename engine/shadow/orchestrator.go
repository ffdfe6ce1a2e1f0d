package shadow

import (
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
)

// Orchestrator computes the shadow maps of one light per call.
type Orchestrator interface {
	// Run acquires casters, partitions and fits the light's projections, then acquires a
	// depth target and hands each pass to the frame's Rasterizer, if any.
	//
	// Parameters:
	//   - ctx: the frame's scene, camera, target pool and rasterizer
	//   - l: the light to process
	//
	// Returns:
	//   - *Result: the target, transforms and passes for the light
	//   - error: a *PassError naming the stage that failed
	Run(ctx *FrameContext, l light.Light) (*Result, error)
}

// orchestrator is the implementation of the Orchestrator interface.
type orchestrator struct {
	splitScheme      SplitScheme
	pointFaceCulling bool
}

var _ Orchestrator = &orchestrator{}

// strategy runs one technique. It records progress in run.stage so a failure can be
// attributed to the stage it happened in.
type strategy func(o *orchestrator, run *lightRun) error

var strategies = [techniqueCount]strategy{
	TechniqueDirectional: (*orchestrator).runDirectional,
	TechniqueCascaded:    (*orchestrator).runCascaded,
	TechniquePoint:       (*orchestrator).runPoint,
	TechniqueSpot:        (*orchestrator).runSpot,
}

// lightRun is the working set of one Run call.
type lightRun struct {
	ctx    *FrameContext
	light  light.Light
	cam    camera.Camera
	stage  Stage
	result *Result
}

// NewOrchestrator creates a new Orchestrator. Cascades are split uniformly and point
// lights draw every caster in range on each face unless configured otherwise.
//
// Parameters:
//   - options: functional options to configure the orchestrator
//
// Returns:
//   - Orchestrator: the new orchestrator
func NewOrchestrator(options ...OrchestratorBuilderOption) Orchestrator {
	o := &orchestrator{
		splitScheme: SplitSchemeUniform{},
	}
	for _, opt := range options {
		opt(o)
	}
	return o
}

func (o *orchestrator) Run(ctx *FrameContext, l light.Light) (*Result, error) {
	if l == nil {
		panic("shadow: Run requires a non-nil Light")
	}

	technique, err := TechniqueFor(l)
	if err != nil {
		return nil, &PassError{Light: l, Technique: technique, Stage: StageAcquireCasters, Err: err}
	}
	run := &lightRun{
		ctx:    ctx,
		light:  l,
		stage:  StageAcquireCasters,
		result: &Result{Light: l, Technique: technique},
	}

	switch {
	case ctx == nil || ctx.Camera == nil:
		err = ErrNoCamera
	case ctx.Scene == nil:
		err = ErrNoScene
	default:
		run.cam = ctx.Camera
		err = strategies[technique](o, run)
	}
	if err != nil {
		common.Logger().Warn("shadow pass failed",
			"light", l.Type(), "technique", technique, "stage", run.stage, "error", err)
		return nil, &PassError{Light: l, Technique: technique, Stage: run.stage, Err: err}
	}

	common.Logger().Debug("shadow pass fitted",
		"light", l.Type(), "technique", technique, "passes", len(run.result.Passes))
	return run.result, nil
}

// supplementShadowBounds adds the casters inside the camera's shadow bounds, when set.
func (run *lightRun) supplementShadowBounds(casters []node.Node) []node.Node {
	bounds := run.cam.ShadowBounds(true)
	if bounds.Extents().Len() == 0 {
		return casters
	}
	extra := run.ctx.Scene.VisibleShadowCasters(bounds, nil, false)
	return Supplement(casters, extra)
}

// resolution returns the light's shadow resolution, or fallback when it has none.
func (run *lightRun) resolution(fallback uint32) uint32 {
	return common.Coalesce(uint32(max(run.light.ShadowResolution(), 0)), fallback)
}

// emit acquires the depth target and draws every pass into it. All fits are complete
// by the time the first pass is drawn.
func (run *lightRun) emit(desc renderer.DepthTargetDescriptor) error {
	run.stage = StageEmitTransforms
	if run.ctx.Targets == nil {
		return ErrNoTargetPool
	}
	target, err := run.ctx.Targets.AcquireTemporaryDepthTarget(desc)
	if err != nil {
		return fmt.Errorf("failed to acquire depth target: %w", err)
	}
	run.result.Target = target
	run.ctx.RegisterDebugTarget(fmt.Sprintf("%s#%d", desc.Label, target.ID()), target)

	if run.ctx.Rasterizer == nil {
		return nil
	}
	state := renderer.ShadowPassStateFor(run.light.Type())
	for _, pass := range run.result.Passes {
		if err := run.ctx.Rasterizer.DrawShadowPass(target, state, pass.Descriptor()); err != nil {
			return fmt.Errorf("failed to draw pass %d: %w", pass.Index, err)
		}
	}
	return nil
}

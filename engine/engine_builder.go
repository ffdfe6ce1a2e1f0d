package engine

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/scene"
	"github.com/Carmen-Shannon/oxy-shadow/engine/shadow"
)

// EngineBuilderOption is a functional option for configuring an Engine.
// Use the With* functions to create options that are applied directly to the engine instance.
type EngineBuilderOption func(*engine)

// WithProfiling enables or disables shadow statistics output.
//
// Parameters:
//   - enabled: if true, enables profiling
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithProfiling(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.profiler.SetEnabled(enabled)
	}
}

// WithTickRate sets the engine tick rate in frames per second.
// The tick callback will be called at this rate for game logic updates.
// Values <= 0 will be treated as the default (60Hz).
//
// Parameters:
//   - fps: target ticks per second (default 60)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTickRate(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.engineTickRate = tickInterval(fps)
	}
}

// WithScene registers a scene at the given z-index key during engine construction.
// Scenes are processed in ascending key order each frame.
//
// Parameters:
//   - key: the z-index determining processing order (lower goes first)
//   - s: the Scene to register
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithScene(key int, s scene.Scene) EngineBuilderOption {
	return func(e *engine) {
		e.scenes[key] = s
	}
}

// WithRenderFrameLimit sets an optional render frame rate cap in frames per second.
// Pass 0 to uncap the render loop (default).
//
// Parameters:
//   - fps: maximum render frames per second (0 = uncapped)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRenderFrameLimit(fps float64) EngineBuilderOption {
	return func(e *engine) {
		e.renderFrameLimit = frameLimit(fps)
	}
}

// WithTargetPool sets the pool depth targets are acquired from.
// Use renderer.NewTemporaryPool(renderer.WithDevice(device)) to back targets with GPU textures.
//
// Parameters:
//   - pool: the depth target pool
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithTargetPool(pool renderer.TargetPool) EngineBuilderOption {
	return func(e *engine) {
		e.targets = pool
	}
}

// WithRasterizer sets the rasterizer that draws the casters of every shadow pass.
// Without one the engine only computes matrices and targets.
//
// Parameters:
//   - r: the rasterizer
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithRasterizer(r renderer.Rasterizer) EngineBuilderOption {
	return func(e *engine) {
		e.rasterizer = r
	}
}

// WithOrchestrator replaces the default shadow orchestrator.
//
// Parameters:
//   - o: the orchestrator, e.g. shadow.NewOrchestrator(shadow.WithPointFaceCulling(true))
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithOrchestrator(o shadow.Orchestrator) EngineBuilderOption {
	return func(e *engine) {
		e.orchestrator = o
	}
}

// WithWorkers sets how many lights are processed concurrently.
//
// Parameters:
//   - n: worker count (values <= 1 process lights in order on the calling goroutine)
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithWorkers(n int) EngineBuilderOption {
	return func(e *engine) {
		e.workers = n
	}
}

// WithDebugTargets records every depth target acquired during a frame under its label.
//
// Parameters:
//   - enabled: if true, DebugTargets returns the registry of the last frame
//
// Returns:
//   - EngineBuilderOption: option function to apply
func WithDebugTargets(enabled bool) EngineBuilderOption {
	return func(e *engine) {
		e.debugTargets = enabled
	}
}

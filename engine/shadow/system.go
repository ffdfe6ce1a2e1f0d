package shadow

import (
	"errors"
	"sync"
	"time"

	"github.com/Carmen-Shannon/automation/tools/worker"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/profiler"
)

// System runs the shadow orchestrator for every shadow-casting light of a frame.
type System interface {
	// Render processes each enabled, shadow-casting light. Lights are independent: a
	// failing light contributes a *PassError to the joined error while the results of the
	// other lights are still returned, in light order.
	//
	// Parameters:
	//   - ctx: the frame's scene, camera, target pool and rasterizer
	//   - lights: the candidate lights
	//
	// Returns:
	//   - []*Result: results of the lights that succeeded
	//   - error: the joined pass errors, or nil
	Render(ctx *FrameContext, lights []light.Light) ([]*Result, error)

	// Orchestrator returns the orchestrator used for each light.
	Orchestrator() Orchestrator
}

// system is the implementation of the System interface.
type system struct {
	orchestrator Orchestrator
	workers      int
	pool         worker.DynamicWorkerPool
	profiler     *profiler.Profiler
}

var _ System = &system{}

// NewSystem creates a new System. Lights run one after another unless WithWorkers
// asks for more than one worker, in which case they are spread over a worker pool.
// The Rasterizer in the frame context must then be safe for concurrent use.
//
// Parameters:
//   - options: functional options to configure the system
//
// Returns:
//   - System: the new system
func NewSystem(options ...SystemBuilderOption) System {
	s := &system{
		workers: 1,
	}
	for _, opt := range options {
		opt(s)
	}
	if s.orchestrator == nil {
		s.orchestrator = NewOrchestrator()
	}
	// Workers idle-exit after a second and are restarted on demand.
	if s.workers > 1 {
		s.pool = worker.NewDynamicWorkerPool(s.workers, 256, 1*time.Second)
	}
	return s
}

func (s *system) Orchestrator() Orchestrator {
	return s.orchestrator
}

func (s *system) Render(ctx *FrameContext, lights []light.Light) ([]*Result, error) {
	active := make([]light.Light, 0, len(lights))
	for _, l := range lights {
		if l != nil && l.Enabled() && l.CastsShadows() {
			active = append(active, l)
		}
	}

	results := make([]*Result, len(active))
	errs := make([]error, len(active))
	if s.pool == nil || len(active) < 2 {
		for i, l := range active {
			results[i], errs[i] = s.orchestrator.Run(ctx, l)
		}
	} else {
		// A WaitGroup is the per-frame barrier; the pool's own Wait blocks until workers exit.
		var wg sync.WaitGroup
		for i, l := range active {
			wg.Add(1)
			s.pool.SubmitTask(worker.Task{
				ID: i,
				Do: func() (any, error) {
					defer wg.Done()
					results[i], errs[i] = s.orchestrator.Run(ctx, l)
					return nil, nil
				},
			})
		}
		wg.Wait()
	}

	out := make([]*Result, 0, len(results))
	for i, r := range results {
		s.record(r, errs[i] != nil)
		if r != nil {
			out = append(out, r)
		}
	}
	if s.profiler != nil {
		s.profiler.Tick()
	}
	return out, errors.Join(errs...)
}

func (s *system) record(r *Result, failed bool) {
	if s.profiler == nil {
		return
	}
	s.profiler.RecordLight(failed)
	if r == nil {
		return
	}
	for _, pass := range r.Passes {
		triangles := 0
		for _, n := range pass.Casters {
			if m := n.Model(); m != nil {
				triangles += m.TriangleCount()
			}
		}
		s.profiler.RecordPass(len(pass.Casters), triangles)
	}
}

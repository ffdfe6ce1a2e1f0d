package shadow

import "github.com/Carmen-Shannon/oxy-shadow/engine/profiler"

// SystemBuilderOption is a functional option applied to a system during construction via NewSystem.
type SystemBuilderOption func(*system)

// WithOrchestrator sets the orchestrator run for each light.
//
// Parameters:
//   - o: the orchestrator
//
// Returns:
//   - SystemBuilderOption: a function that applies the orchestrator option to a system
func WithOrchestrator(o Orchestrator) SystemBuilderOption {
	return func(s *system) {
		s.orchestrator = o
	}
}

// WithWorkers sets how many lights may be processed at once. Values below 2 keep
// processing sequential.
//
// Parameters:
//   - n: the worker count
//
// Returns:
//   - SystemBuilderOption: a function that applies the workers option to a system
func WithWorkers(n int) SystemBuilderOption {
	return func(s *system) {
		s.workers = n
	}
}

// WithProfiler records pass statistics on p and ticks it once per Render.
//
// Parameters:
//   - p: the profiler
//
// Returns:
//   - SystemBuilderOption: a function that applies the profiler option to a system
func WithProfiler(p *profiler.Profiler) SystemBuilderOption {
	return func(s *system) {
		s.profiler = p
	}
}

package shadow

// OrchestratorBuilderOption is a functional option applied to an orchestrator during construction via NewOrchestrator.
type OrchestratorBuilderOption func(*orchestrator)

// WithSplitScheme sets how cascade boundaries are placed. Nil restores uniform splits.
//
// Parameters:
//   - scheme: the boundary placement
//
// Returns:
//   - OrchestratorBuilderOption: a function that applies the split scheme option to an orchestrator
func WithSplitScheme(scheme SplitScheme) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		if scheme == nil {
			scheme = SplitSchemeUniform{}
		}
		o.splitScheme = scheme
	}
}

// WithPointFaceCulling filters point light casters per cube face. When disabled, every
// face draws all casters within the light's range.
//
// Parameters:
//   - enabled: true to filter per face
//
// Returns:
//   - OrchestratorBuilderOption: a function that applies the face culling option to an orchestrator
func WithPointFaceCulling(enabled bool) OrchestratorBuilderOption {
	return func(o *orchestrator) {
		o.pointFaceCulling = enabled
	}
}

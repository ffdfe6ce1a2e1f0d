package shadow

import (
	"errors"
	"fmt"

	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
)

var (
	// ErrNoCamera is returned when a frame has no camera to fit shadows against.
	ErrNoCamera = errors.New("no active camera")

	// ErrNoScene is returned when a frame has no scene to query casters from.
	ErrNoScene = errors.New("no scene to query")

	// ErrDegenerateFrustum is returned when a frustum has no width or height in light clip space.
	ErrDegenerateFrustum = errors.New("degenerate frustum")

	// ErrZeroExtent is returned when a projection would have no depth range.
	ErrZeroExtent = errors.New("zero-extent projection")

	// ErrInvalidSplit is returned for a cascade request with no splits or an empty depth range.
	ErrInvalidSplit = errors.New("invalid cascade split")

	// ErrUnsupportedLight is returned for a light type with no shadow technique.
	ErrUnsupportedLight = errors.New("unsupported light type")

	// ErrNoTargetPool is returned when a frame has no pool to acquire depth targets from.
	ErrNoTargetPool = errors.New("no depth target pool")
)

// Stage is a step of a single light's shadow run.
type Stage int

const (
	StageAcquireCasters Stage = iota
	StagePartitionCascades
	StageFitProjections
	StageEmitTransforms
)

func (s Stage) String() string {
	switch s {
	case StageAcquireCasters:
		return "AcquireCasters"
	case StagePartitionCascades:
		return "PartitionCascades"
	case StageFitProjections:
		return "FitProjections"
	case StageEmitTransforms:
		return "EmitTransforms"
	default:
		return fmt.Sprintf("Stage(%d)", int(s))
	}
}

// Technique is the shadow algorithm used for a light.
type Technique int

const (
	// TechniqueDirectional fits one orthographic map over [near, shadowFar].
	TechniqueDirectional Technique = iota
	// TechniqueCascaded fits one orthographic map per depth split of the view.
	TechniqueCascaded
	// TechniquePoint renders six perspective faces into a cube map.
	TechniquePoint
	// TechniqueSpot renders one perspective map covering the outer cone.
	TechniqueSpot

	techniqueCount
)

func (t Technique) String() string {
	switch t {
	case TechniqueDirectional:
		return "Directional"
	case TechniqueCascaded:
		return "Cascaded"
	case TechniquePoint:
		return "Point"
	case TechniqueSpot:
		return "Spot"
	default:
		return fmt.Sprintf("Technique(%d)", int(t))
	}
}

// TechniqueFor resolves the technique for a light. Directional lights with more
// than one cascade use TechniqueCascaded.
//
// Parameters:
//   - l: the light
//
// Returns:
//   - Technique: the technique to run
//   - error: ErrUnsupportedLight if the light type has no technique
func TechniqueFor(l light.Light) (Technique, error) {
	switch l.Type() {
	case light.LightTypeDirectional:
		if l.CascadeCount() > 1 {
			return TechniqueCascaded, nil
		}
		return TechniqueDirectional, nil
	case light.LightTypePoint:
		return TechniquePoint, nil
	case light.LightTypeSpot:
		return TechniqueSpot, nil
	default:
		return Technique(-1), fmt.Errorf("light type %v: %w", l.Type(), ErrUnsupportedLight)
	}
}

// PassError reports the failure of one light's shadow run. Other lights in the same
// frame are unaffected.
type PassError struct {
	Light     light.Light
	Technique Technique
	Stage     Stage
	Err       error
}

func (e *PassError) Error() string {
	return fmt.Sprintf("shadow: %s pass failed at %s: %v", e.Technique, e.Stage, e.Err)
}

func (e *PassError) Unwrap() error {
	return e.Err
}

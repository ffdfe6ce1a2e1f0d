package shadow

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
)

// SplitRange is a depth interval of the camera view, in view-space distance.
type SplitRange struct {
	Near float32
	Far  float32
}

// Split is one cascade: its depth range and the world-space frustum covering it.
type Split struct {
	SplitRange
	Frustum common.Frustum
}

// SplitScheme places the interior boundaries of a cascade partition. The first and
// last boundaries are always the range ends.
type SplitScheme interface {
	// Boundary returns the distance of boundary i of count splits over [near, far],
	// for 0 < i < count.
	Boundary(near, far float32, i, count int) float32
}

// SplitSchemeUniform spaces boundaries evenly.
type SplitSchemeUniform struct{}

func (SplitSchemeUniform) Boundary(near, far float32, i, count int) float32 {
	average := (far - near) / float32(count)
	return near + float32(i)*average
}

// SplitSchemePractical blends logarithmic and uniform spacing. Lambda 0 is uniform,
// 1 is fully logarithmic. A non-positive near plane falls back to uniform spacing.
type SplitSchemePractical struct {
	Lambda float32
}

func (s SplitSchemePractical) Boundary(near, far float32, i, count int) float32 {
	uniform := SplitSchemeUniform{}.Boundary(near, far, i, count)
	if near <= 0 {
		return uniform
	}
	lambda := min(max(s.Lambda, 0), 1)
	ratio := float64(i) / float64(count)
	logarithmic := float32(float64(near) * math.Pow(float64(far/near), ratio))
	return lambda*logarithmic + (1-lambda)*uniform
}

// SplitRanges partitions [near, far] into count contiguous ranges. Adjacent ranges
// share their boundary exactly, the first starts at near and the last ends at far.
//
// Parameters:
//   - near: the start of the range
//   - far: the end of the range
//   - count: the number of splits
//   - scheme: the boundary placement, nil for uniform
//
// Returns:
//   - []SplitRange: the ranges in increasing depth order
//   - error: ErrInvalidSplit if count < 1 or near >= far
func SplitRanges(near, far float32, count int, scheme SplitScheme) ([]SplitRange, error) {
	if count < 1 {
		return nil, fmt.Errorf("%d splits: %w", count, ErrInvalidSplit)
	}
	if !(near < far) {
		return nil, fmt.Errorf("range [%v, %v]: %w", near, far, ErrInvalidSplit)
	}
	if scheme == nil {
		scheme = SplitSchemeUniform{}
	}

	ranges := make([]SplitRange, count)
	start := near
	for i := range ranges {
		end := far
		if i < count-1 {
			end = scheme.Boundary(near, far, i+1, count)
		}
		ranges[i] = SplitRange{Near: start, Far: end}
		start = end
	}
	return ranges, nil
}

// SplitCamera partitions the camera's full view range into count cascades.
//
// Parameters:
//   - cam: the camera
//   - count: the number of cascades
//   - scheme: the boundary placement, nil for uniform
//
// Returns:
//   - []Split: the cascades with world-space frusta
//   - error: ErrInvalidSplit for an empty range or a count below one
func SplitCamera(cam camera.Camera, count int, scheme SplitScheme) ([]Split, error) {
	return SplitBetween(cam, cam.Near(), cam.Far(), count, scheme)
}

// SplitBetween partitions [near, far] of the camera's view into count cascades.
func SplitBetween(cam camera.Camera, near, far float32, count int, scheme SplitScheme) ([]Split, error) {
	ranges, err := SplitRanges(near, far, count, scheme)
	if err != nil {
		return nil, err
	}
	splits := make([]Split, len(ranges))
	for i, r := range ranges {
		splits[i] = Split{SplitRange: r, Frustum: cam.Frustum(r.Near, r.Far)}
	}
	return splits, nil
}

package shadow

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

const maxFloat = float32(math.MaxFloat32)

// FitCrop returns the orthographic projection that maps the frustum tightly into light
// clip space, with its depth range pushed toward the light to take in every caster.
//
// The frustum corners in light view space give the initial depth range [minZ, maxZ].
// Casters only raise maxZ, the light-facing bound, since geometry between the light and
// the frustum still shadows it. A unit orthographic projection over that range is then
// cropped in X and Y to the frustum's clip-space extent.
//
// Parameters:
//   - lightView: world to light view transform, the light looking down -Z
//   - frustum: the world-space volume the shadow map must cover
//   - casters: nodes whose world AABB must fit in the depth range; may be empty
//
// Returns:
//   - mgl32.Mat4: crop * projection
//   - error: ErrZeroExtent for an empty depth range, ErrDegenerateFrustum for no width or height
func FitCrop(lightView mgl32.Mat4, frustum common.Frustum, casters []node.Node) (mgl32.Mat4, error) {
	minZ, maxZ := maxFloat, -maxFloat
	for _, c := range frustum.Corners {
		z := mgl32.TransformCoordinate(c, lightView).Z()
		minZ = min(minZ, z)
		maxZ = max(maxZ, z)
	}
	for _, n := range casters {
		for _, c := range n.WorldAABB().Corners() {
			maxZ = max(maxZ, mgl32.TransformCoordinate(c, lightView).Z())
		}
	}
	if !(maxZ > minZ) {
		return mgl32.Mat4{}, fmt.Errorf("light depth range [%v, %v]: %w", minZ, maxZ, ErrZeroExtent)
	}

	// maxZ lands on clip -1 and minZ on +1.
	projection := mgl32.Ortho(-1, 1, -1, 1, -maxZ, -minZ)

	viewProj := projection.Mul4(lightView)
	minX, minY := maxFloat, maxFloat
	maxX, maxY := -maxFloat, -maxFloat
	for _, c := range frustum.Corners {
		p := common.TransformPoint(viewProj, c)
		x, y := p.X()/p.W(), p.Y()/p.W()
		minX, maxX = min(minX, x), max(maxX, x)
		minY, maxY = min(minY, y), max(maxY, y)
	}

	crop, err := cropMatrix(minX, maxX, minY, maxY)
	if err != nil {
		return mgl32.Mat4{}, err
	}
	return crop.Mul4(projection), nil
}

// FitPerspectiveCrop narrows a perspective projection to the clip-space extent of the
// casters. The extent is clamped to the original projection so the result never widens
// it. The projection is returned unchanged when there are no casters or when a caster
// reaches behind the projection origin.
//
// Parameters:
//   - projection: the light's perspective projection
//   - lightView: world to light view transform
//   - casters: the nodes to focus on
//
// Returns:
//   - mgl32.Mat4: crop * projection
func FitPerspectiveCrop(projection, lightView mgl32.Mat4, casters []node.Node) mgl32.Mat4 {
	if len(casters) == 0 {
		return projection
	}

	viewProj := projection.Mul4(lightView)
	minX, minY := float32(1), float32(1)
	maxX, maxY := float32(-1), float32(-1)
	for _, n := range casters {
		for _, c := range n.WorldAABB().Corners() {
			p := common.TransformPoint(viewProj, c)
			if p.W() <= 0 {
				return projection
			}
			x, y := p.X()/p.W(), p.Y()/p.W()
			minX, maxX = min(minX, x), max(maxX, x)
			minY, maxY = min(minY, y), max(maxY, y)
		}
	}
	minX, maxX = max(minX, -1), min(maxX, 1)
	minY, maxY = max(minY, -1), min(maxY, 1)

	crop, err := cropMatrix(minX, maxX, minY, maxY)
	if err != nil {
		return projection
	}
	return crop.Mul4(projection)
}

// cropMatrix scales and offsets [minX, maxX] x [minY, maxY] onto [-1, 1]², passing
// Z and W through.
func cropMatrix(minX, maxX, minY, maxY float32) (mgl32.Mat4, error) {
	if !(maxX > minX) || !(maxY > minY) {
		return mgl32.Mat4{}, fmt.Errorf("clip extent x [%v, %v] y [%v, %v]: %w", minX, maxX, minY, maxY, ErrDegenerateFrustum)
	}
	scaleX := 2 / (maxX - minX)
	scaleY := 2 / (maxY - minY)
	offsetX := -0.5 * (maxX + minX) * scaleX
	offsetY := -0.5 * (maxY + minY) * scaleY
	if !common.IsFinite(scaleX) || !common.IsFinite(scaleY) {
		return mgl32.Mat4{}, fmt.Errorf("crop scale (%v, %v): %w", scaleX, scaleY, ErrDegenerateFrustum)
	}

	return mgl32.Mat4{
		scaleX, 0, 0, 0,
		0, scaleY, 0, 0,
		0, 0, 1, 0,
		offsetX, offsetY, 0, 1,
	}, nil
}

package shadow

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/go-gl/mathgl/mgl32"
)

// Pass is one depth pass of a light: a cascade layer or a cube face.
type Pass struct {
	Index      int
	View       mgl32.Mat4
	Projection mgl32.Mat4
	Casters    []node.Node
}

// Descriptor converts the pass to what a Rasterizer draws.
func (p Pass) Descriptor() renderer.PassDescriptor {
	return renderer.PassDescriptor{
		Layer:      uint32(p.Index),
		View:       p.View,
		Projection: p.Projection,
		Casters:    p.Casters,
	}
}

// Result is the output of one light's shadow run for one frame.
type Result struct {
	Light     light.Light
	Technique Technique

	// Target is the depth map the passes render into, valid until the pool's EndFrame.
	Target renderer.DepthTarget

	// Transforms map camera view space to shadow texture space: one per cascade for
	// directional lights, the camera world matrix for point lights.
	Transforms []mgl32.Mat4

	// Splits holds the depth range of each cascade. Empty for point and spot lights.
	Splits []SplitRange

	Passes []Pass
}

// GPUData packs the result into the shadow uniform layout. Only the first
// light.MaxCascades transforms and splits are kept.
func (r *Result) GPUData() light.GPUShadowData {
	var data light.GPUShadowData

	n := min(len(r.Transforms), light.MaxCascades)
	copy(data.LightVP[:], r.Transforms[:n])
	data.Count = uint32(n)
	for i := 0; i < min(len(r.Splits), light.MaxCascades); i++ {
		data.SplitFar[i] = r.Splits[i].Far
	}
	data.Bias = light.DefaultShadowBias

	if r.Target == nil {
		return data
	}
	desc := r.Target.Descriptor()
	data.TexelSize = desc.TexelSize()
	if len(r.Passes) > 0 && isOrthographic(r.Passes[0].Projection) {
		worldWidth := 2 / abs32(r.Passes[0].Projection[0])
		data.ComputeNormalBias(worldWidth, light.DefaultShadowNormalBiasScale, int(desc.Width))
	}
	return data
}

func isOrthographic(m mgl32.Mat4) bool {
	return m[11] == 0 && m[15] == 1
}

func abs32(f float32) float32 {
	if f < 0 {
		return -f
	}
	return f
}

package light

// ShadowMapResolution is the default width and height in texels of the depth
// texture for single directional and spot shadows. Lights can override it via
// the WithShadowResolution builder option.
const ShadowMapResolution = 2048

// CascadeResolution is the default width and height in texels of each layer of a
// cascaded shadow map.
const CascadeResolution = 1024

// PointShadowResolution is the default width and height in texels of each face of
// a point light's cube shadow map.
const PointShadowResolution = 512

// MaxCascades is the number of cascade slots in GPUShadowData. Lights may ask for
// more cascades, but only the first MaxCascades are uploaded.
const MaxCascades = 4

// DefaultCascadeCount is the cascade count used by WithCascadeCount callers that
// want the standard split of the view range.
const DefaultCascadeCount = 4

// ShadowNear is the near plane of point and spot light projections. A light whose
// range does not exceed it has no depth range to render.
const ShadowNear float32 = 1.0

// DefaultShadowBias is the constant depth bias applied to shadow comparisons
// to reduce shadow acne artifacts.
const DefaultShadowBias float32 = 0.001

// DefaultShadowNormalBiasScale is the multiplier applied to the shadow map
// texel world-size to compute the normal-offset bias. Higher values push
// the shadow sample point further along the surface normal, reducing
// self-shadowing on concave geometry at the cost of slight shadow
// detachment from contact points. Typical values are 2 to 4.
const DefaultShadowNormalBiasScale float32 = 3.0

// DepthBiasConstant and DepthBiasSlopeScale are the rasterizer depth offset used
// while rendering directional and spot shadow maps.
const (
	DepthBiasConstant   int32   = 1024
	DepthBiasSlopeScale float32 = 1.0
)

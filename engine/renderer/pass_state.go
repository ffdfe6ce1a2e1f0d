package renderer

import (
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/cogentcore/webgpu/wgpu"
)

// ShadowPassState is the render state every shadow pass runs with. It is a value type;
// the With methods return modified copies and never change the receiver.
type ShadowPassState struct {
	clearDepth     float32
	clearColor     wgpu.Color
	depthCompare   wgpu.CompareFunction
	cullMode       wgpu.CullMode
	depthBias      int32
	depthBiasSlope float32
	format         wgpu.TextureFormat
}

// DefaultShadowPassState returns the state for directional and spot passes: depth
// cleared to 1, white clear colour, Less compare, back faces culled and the standard
// depth bias.
func DefaultShadowPassState() ShadowPassState {
	return ShadowPassState{
		clearDepth:     1.0,
		clearColor:     wgpu.Color{R: 1, G: 1, B: 1, A: 1},
		depthCompare:   wgpu.CompareFunctionLess,
		cullMode:       wgpu.CullModeBack,
		depthBias:      light.DepthBiasConstant,
		depthBiasSlope: light.DepthBiasSlopeScale,
		format:         ShadowDepthFormat,
	}
}

// PointShadowPassState returns the cube-face state, which renders without depth bias.
func PointShadowPassState() ShadowPassState {
	return DefaultShadowPassState().WithDepthBias(0, 0)
}

// ShadowPassStateFor picks the pass state for a light type.
func ShadowPassStateFor(t light.LightType) ShadowPassState {
	if t == light.LightTypePoint {
		return PointShadowPassState()
	}
	return DefaultShadowPassState()
}

func (s ShadowPassState) ClearDepth() float32 {
	return s.clearDepth
}

func (s ShadowPassState) ClearColor() wgpu.Color {
	return s.clearColor
}

func (s ShadowPassState) DepthCompare() wgpu.CompareFunction {
	return s.depthCompare
}

func (s ShadowPassState) CullMode() wgpu.CullMode {
	return s.cullMode
}

func (s ShadowPassState) DepthBias() int32 {
	return s.depthBias
}

func (s ShadowPassState) DepthBiasSlopeScale() float32 {
	return s.depthBiasSlope
}

func (s ShadowPassState) Format() wgpu.TextureFormat {
	return s.format
}

// WithDepthBias returns a copy with the given rasterizer depth offset.
func (s ShadowPassState) WithDepthBias(constant int32, slopeScale float32) ShadowPassState {
	s.depthBias = constant
	s.depthBiasSlope = slopeScale
	return s
}

// WithCullMode returns a copy with the given face culling.
func (s ShadowPassState) WithCullMode(mode wgpu.CullMode) ShadowPassState {
	s.cullMode = mode
	return s
}

// PrimitiveState returns the primitive stage for a shadow pipeline.
func (s ShadowPassState) PrimitiveState() wgpu.PrimitiveState {
	return wgpu.PrimitiveState{
		Topology:  wgpu.PrimitiveTopologyTriangleList,
		FrontFace: wgpu.FrontFaceCCW,
		CullMode:  s.cullMode,
	}
}

// DepthStencilState returns the depth stage for a shadow pipeline.
func (s ShadowPassState) DepthStencilState() *wgpu.DepthStencilState {
	return &wgpu.DepthStencilState{
		Format:              s.format,
		DepthWriteEnabled:   true,
		DepthCompare:        s.depthCompare,
		DepthBias:           s.depthBias,
		DepthBiasSlopeScale: s.depthBiasSlope,
		StencilFront: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
		StencilBack: wgpu.StencilFaceState{
			Compare: wgpu.CompareFunctionAlways,
		},
	}
}

// DepthAttachment returns the depth-only attachment that clears view and keeps the result.
func (s ShadowPassState) DepthAttachment(view *wgpu.TextureView) *wgpu.RenderPassDepthStencilAttachment {
	return &wgpu.RenderPassDepthStencilAttachment{
		View:            view,
		DepthLoadOp:     wgpu.LoadOpClear,
		DepthStoreOp:    wgpu.StoreOpStore,
		DepthClearValue: s.clearDepth,
	}
}

// ComparisonSamplerDescriptor returns the sampler used to read the finished map.
func (s ShadowPassState) ComparisonSamplerDescriptor() *wgpu.SamplerDescriptor {
	return &wgpu.SamplerDescriptor{
		Label:         "Shadow Comparison Sampler",
		AddressModeU:  wgpu.AddressModeClampToEdge,
		AddressModeV:  wgpu.AddressModeClampToEdge,
		AddressModeW:  wgpu.AddressModeClampToEdge,
		MagFilter:     wgpu.FilterModeLinear,
		MinFilter:     wgpu.FilterModeLinear,
		MipmapFilter:  wgpu.MipmapFilterModeNearest,
		Compare:       s.depthCompare,
		MaxAnisotropy: 1,
	}
}

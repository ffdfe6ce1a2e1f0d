package renderer

import (
	"errors"
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
)

// ShadowDepthFormat is the texture format of every shadow depth target.
const ShadowDepthFormat = wgpu.TextureFormatDepth32Float

// cubeFaces is the number of layers in a cube depth target.
const cubeFaces = 6

// DepthTargetDescriptor describes a depth-only render target for shadow passes.
type DepthTargetDescriptor struct {
	Label     string
	Width     uint32
	Height    uint32
	Layers    uint32
	Dimension wgpu.TextureViewDimension
	Format    wgpu.TextureFormat
}

// NewDepthTarget2D describes a single-layer depth target.
func NewDepthTarget2D(label string, width, height uint32) DepthTargetDescriptor {
	return DepthTargetDescriptor{
		Label:     label,
		Width:     width,
		Height:    height,
		Layers:    1,
		Dimension: wgpu.TextureViewDimension2D,
		Format:    ShadowDepthFormat,
	}
}

// NewDepthTargetArray describes a layered depth target, one layer per cascade.
func NewDepthTargetArray(label string, width, height, layers uint32) DepthTargetDescriptor {
	return DepthTargetDescriptor{
		Label:     label,
		Width:     width,
		Height:    height,
		Layers:    layers,
		Dimension: wgpu.TextureViewDimension2DArray,
		Format:    ShadowDepthFormat,
	}
}

// NewDepthTargetCube describes a six-face cube depth target with square faces.
func NewDepthTargetCube(label string, size uint32) DepthTargetDescriptor {
	return DepthTargetDescriptor{
		Label:     label,
		Width:     size,
		Height:    size,
		Layers:    cubeFaces,
		Dimension: wgpu.TextureViewDimensionCube,
		Format:    ShadowDepthFormat,
	}
}

// Validate reports whether the descriptor can back a texture.
func (d DepthTargetDescriptor) Validate() error {
	if d.Width == 0 || d.Height == 0 {
		return fmt.Errorf("depth target %q: size %dx%d: %w", d.Label, d.Width, d.Height, ErrInvalidTarget)
	}
	if d.Layers == 0 {
		return fmt.Errorf("depth target %q: zero layers: %w", d.Label, ErrInvalidTarget)
	}
	switch d.Dimension {
	case wgpu.TextureViewDimension2D:
		if d.Layers != 1 {
			return fmt.Errorf("depth target %q: 2D target with %d layers: %w", d.Label, d.Layers, ErrInvalidTarget)
		}
	case wgpu.TextureViewDimension2DArray:
	case wgpu.TextureViewDimensionCube:
		if d.Layers != cubeFaces || d.Width != d.Height {
			return fmt.Errorf("depth target %q: cube needs %d square faces: %w", d.Label, cubeFaces, ErrInvalidTarget)
		}
	default:
		return fmt.Errorf("depth target %q: unsupported dimension %v: %w", d.Label, d.Dimension, ErrInvalidTarget)
	}
	return nil
}

// TexelSize returns the size of one texel in normalized texture coordinates.
func (d DepthTargetDescriptor) TexelSize() [2]float32 {
	if d.Width == 0 || d.Height == 0 {
		return [2]float32{}
	}
	return [2]float32{1 / float32(d.Width), 1 / float32(d.Height)}
}

// TextureDescriptor returns the wgpu texture description for the target.
func (d DepthTargetDescriptor) TextureDescriptor() *wgpu.TextureDescriptor {
	return &wgpu.TextureDescriptor{
		Label: d.Label,
		Size: wgpu.Extent3D{
			Width:              d.Width,
			Height:             d.Height,
			DepthOrArrayLayers: d.Layers,
		},
		MipLevelCount: 1,
		SampleCount:   1,
		Dimension:     wgpu.TextureDimension2D,
		Format:        d.Format,
		Usage:         wgpu.TextureUsageRenderAttachment | wgpu.TextureUsageTextureBinding,
	}
}

// ViewDescriptor returns the sampling view over every layer of the target.
func (d DepthTargetDescriptor) ViewDescriptor() *wgpu.TextureViewDescriptor {
	return &wgpu.TextureViewDescriptor{
		Label:           d.Label + " View",
		Format:          d.Format,
		Dimension:       d.Dimension,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  0,
		ArrayLayerCount: d.Layers,
		Aspect:          wgpu.TextureAspectDepthOnly,
	}
}

// LayerViewDescriptor returns the attachment view a pass renders into.
func (d DepthTargetDescriptor) LayerViewDescriptor(layer uint32) *wgpu.TextureViewDescriptor {
	return &wgpu.TextureViewDescriptor{
		Label:           fmt.Sprintf("%s Layer %d", d.Label, layer),
		Format:          d.Format,
		Dimension:       wgpu.TextureViewDimension2D,
		BaseMipLevel:    0,
		MipLevelCount:   1,
		BaseArrayLayer:  layer,
		ArrayLayerCount: 1,
		Aspect:          wgpu.TextureAspectDepthOnly,
	}
}

// ErrInvalidTarget is returned for descriptors that cannot back a depth texture.
var ErrInvalidTarget = errors.New("invalid depth target")

// ErrLayerOutOfRange is returned when a pass addresses a layer the target does not have.
var ErrLayerOutOfRange = errors.New("depth target layer out of range")

// DepthTarget is a depth texture handed out by a TargetPool for the current frame.
type DepthTarget interface {
	// ID returns the pool-unique identifier of the target.
	ID() uint64

	// Descriptor returns the description the target was created from.
	Descriptor() DepthTargetDescriptor

	// View returns the sampling view over all layers, or nil when the pool has no GPU device.
	View() *wgpu.TextureView

	// LayerView returns the attachment view for one layer, or nil when the pool has no GPU device.
	//
	// Parameters:
	//   - layer: the layer (cascade index or cube face) to render into
	//
	// Returns:
	//   - *wgpu.TextureView: the view for the layer
	//   - error: ErrLayerOutOfRange if the target has no such layer
	LayerView(layer uint32) (*wgpu.TextureView, error)
}

type depthTarget struct {
	id         uint64
	desc       DepthTargetDescriptor
	texture    *wgpu.Texture
	view       *wgpu.TextureView
	layerViews []*wgpu.TextureView
}

var _ DepthTarget = &depthTarget{}

func (t *depthTarget) ID() uint64 {
	return t.id
}

func (t *depthTarget) Descriptor() DepthTargetDescriptor {
	return t.desc
}

func (t *depthTarget) View() *wgpu.TextureView {
	return t.view
}

func (t *depthTarget) LayerView(layer uint32) (*wgpu.TextureView, error) {
	if layer >= t.desc.Layers {
		return nil, fmt.Errorf("layer %d of %d: %w", layer, t.desc.Layers, ErrLayerOutOfRange)
	}
	if t.layerViews == nil {
		return nil, nil
	}
	return t.layerViews[layer], nil
}

// release frees the GPU resources. The target must not be used afterwards.
func (t *depthTarget) release() {
	for _, v := range t.layerViews {
		v.Release()
	}
	t.layerViews = nil
	if t.view != nil {
		t.view.Release()
		t.view = nil
	}
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// createDepthTarget allocates the texture and its views on device.
func createDepthTarget(device *wgpu.Device, desc DepthTargetDescriptor) (*depthTarget, error) {
	tex, err := device.CreateTexture(desc.TextureDescriptor())
	if err != nil {
		return nil, fmt.Errorf("failed to create shadow depth texture: %w", err)
	}
	t := &depthTarget{desc: desc, texture: tex}

	t.view, err = tex.CreateView(desc.ViewDescriptor())
	if err != nil {
		t.release()
		return nil, fmt.Errorf("failed to create shadow depth texture view: %w", err)
	}
	t.layerViews = make([]*wgpu.TextureView, 0, desc.Layers)
	for layer := uint32(0); layer < desc.Layers; layer++ {
		v, err := tex.CreateView(desc.LayerViewDescriptor(layer))
		if err != nil {
			t.release()
			return nil, fmt.Errorf("failed to create shadow depth layer view %d: %w", layer, err)
		}
		t.layerViews = append(t.layerViews, v)
	}
	return t, nil
}

package shadow

import (
	"sort"
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
)

// CasterQuery is the scene surface the shadow core reads casters from.
type CasterQuery interface {
	// VisibleShadowCasters collects enabled shadow casters whose world AABB passes the
	// conservative IntersectsFast test against shape.
	//
	// Parameters:
	//   - shape: the volume to test against
	//   - dst: the slice to fill
	//   - extend: true to append to dst, false to reset it first
	//
	// Returns:
	//   - []node.Node: the filled slice
	VisibleShadowCasters(shape common.Collidable, dst []node.Node, extend bool) []node.Node

	// VisibleRenderables collects enabled nodes whose world AABB passes the exact
	// Intersects test against shape. dst is reset first.
	//
	// Parameters:
	//   - shape: the volume to test against
	//   - dst: the slice to fill
	//
	// Returns:
	//   - []node.Node: the filled slice
	VisibleRenderables(shape common.Collidable, dst []node.Node) []node.Node
}

// FrameContext carries everything one frame of shadow work needs. The caller owns it
// for the duration of the frame; nothing in it is retained afterwards.
type FrameContext struct {
	Scene      CasterQuery
	Camera     camera.Camera
	Targets    renderer.TargetPool
	Rasterizer renderer.Rasterizer
	Debug      *DebugTargets
}

// RegisterDebugTarget records a depth target under name when debug capture is enabled.
func (c *FrameContext) RegisterDebugTarget(name string, target renderer.DepthTarget) {
	if c.Debug == nil {
		return
	}
	c.Debug.register(name, target)
}

// DebugTargets collects the depth targets produced during a frame so tools can show
// them. Safe for concurrent use.
type DebugTargets struct {
	mu      sync.Mutex
	targets map[string]renderer.DepthTarget
}

// NewDebugTargets creates an empty registry.
func NewDebugTargets() *DebugTargets {
	return &DebugTargets{targets: make(map[string]renderer.DepthTarget)}
}

func (d *DebugTargets) register(name string, target renderer.DepthTarget) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.targets[name] = target
}

// Get returns the target registered under name, or nil.
func (d *DebugTargets) Get(name string) renderer.DepthTarget {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.targets[name]
}

// Names returns the registered names in sorted order.
func (d *DebugTargets) Names() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	names := make([]string, 0, len(d.targets))
	for name := range d.targets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

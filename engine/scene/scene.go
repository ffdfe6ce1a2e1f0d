package scene

import (
	"sync"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
)

// Scene manages a registry of Nodes and Lights with a Camera, and answers the
// visibility queries the shadow system issues while building its passes.
// Query results follow insertion order so repeated frames see the same caster order.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// SetCamera replaces the scene's camera.
	//
	// Parameters:
	//   - cam: the new camera
	SetCamera(cam camera.Camera)

	// AddLight registers a light with the scene.
	//
	// Parameters:
	//   - l: the light to add
	AddLight(l light.Light)

	// RemoveLight unregisters a light. Unknown lights are ignored.
	//
	// Parameters:
	//   - l: the light to remove
	RemoveLight(l light.Light)

	// Lights returns a snapshot of the registered lights.
	//
	// Returns:
	//   - []light.Light: the lights in registration order
	Lights() []light.Light

	// Count returns the number of registered nodes.
	Count() int

	// Add registers a node. Nodes without an ID are assigned the next free one. A light
	// attached to the node is registered too.
	//
	// Parameters:
	//   - n: the node to add
	//
	// Returns:
	//   - uint64: the node's ID
	Add(n node.Node) uint64

	// Get returns the node with the given ID, or nil.
	//
	// Parameters:
	//   - id: the node ID
	//
	// Returns:
	//   - node.Node: the node or nil
	Get(id uint64) node.Node

	// Remove unregisters a node and its attached light. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the node ID
	Remove(id uint64)

	// Clear removes every node and light.
	Clear()

	// Nodes returns a snapshot of the registered nodes.
	//
	// Returns:
	//   - []node.Node: the nodes in insertion order
	Nodes() []node.Node

	// Update refreshes the camera matrices and moves attached lights to their nodes.
	// Call once per frame before rendering shadows.
	Update()

	// VisibleShadowCasters collects enabled shadow-casting nodes whose world bounds pass
	// the conservative IntersectsFast test against shape.
	//
	// Parameters:
	//   - shape: the volume to test against
	//   - dst: the slice to fill
	//   - extend: true to append to dst, false to reset it first
	//
	// Returns:
	//   - []node.Node: dst with the matching nodes
	VisibleShadowCasters(shape common.Collidable, dst []node.Node, extend bool) []node.Node

	// VisibleRenderables collects enabled nodes whose world bounds intersect shape using
	// the exact Intersects test. dst is reset first.
	//
	// Parameters:
	//   - shape: the volume to test against
	//   - dst: the slice to fill
	//
	// Returns:
	//   - []node.Node: dst with the matching nodes
	VisibleRenderables(shape common.Collidable, dst []node.Node) []node.Node
}

type scene struct {
	mu     *sync.RWMutex
	name   string
	cam    camera.Camera
	nodes  []node.Node
	index  map[uint64]int
	lights []light.Light
	nextID uint64
}

// Ensure scene implements Scene interface.
var _ Scene = &scene{}

// NewScene creates a new Scene with the given camera.
// The camera is required and NewScene panics if it is nil.
//
// Parameters:
//   - name: the name of the scene
//   - cam: the camera to attach (must not be nil)
//   - options: functional options to further configure the scene
//
// Returns:
//   - Scene: the newly created scene
func NewScene(name string, cam camera.Camera, options ...SceneBuilderOption) Scene {
	if cam == nil {
		panic("scene: NewScene requires a non-nil Camera")
	}

	s := &scene{
		mu:     &sync.RWMutex{},
		name:   name,
		cam:    cam,
		index:  make(map[uint64]int),
		nextID: 1,
	}
	for _, option := range options {
		option(s)
	}
	return s
}

func (s *scene) Name() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.name
}

func (s *scene) Camera() camera.Camera {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cam
}

func (s *scene) SetCamera(cam camera.Camera) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cam = cam
}

func (s *scene) AddLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.addLight(l)
}

func (s *scene) RemoveLight(l light.Light) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLight(l)
}

func (s *scene) Lights() []light.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]light.Light, len(s.lights))
	copy(out, s.lights)
	return out
}

func (s *scene) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.nodes)
}

func (s *scene) Add(n node.Node) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(n)
}

func (s *scene) Get(id uint64) node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i, ok := s.index[id]; ok {
		return s.nodes[i]
	}
	return nil
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, ok := s.index[id]
	if !ok {
		return
	}
	n := s.nodes[i]
	s.nodes = append(s.nodes[:i], s.nodes[i+1:]...)
	delete(s.index, id)
	for j := i; j < len(s.nodes); j++ {
		s.index[s.nodes[j].ID()] = j
	}

	if l := n.Light(); l != nil {
		s.removeLight(l)
	}
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nodes = nil
	s.index = make(map[uint64]int)
	s.lights = nil
}

func (s *scene) Nodes() []node.Node {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]node.Node, len(s.nodes))
	copy(out, s.nodes)
	return out
}

func (s *scene) Update() {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.cam != nil {
		s.cam.Update()
	}

	// Sync attached lights: copy each node's position and rotation to its light.
	for _, n := range s.nodes {
		if l := n.Light(); l != nil && n.Enabled() {
			l.SetPosition(n.Position())
			l.SetOrientation(n.Rotation())
		}
	}
}

func (s *scene) VisibleShadowCasters(shape common.Collidable, dst []node.Node, extend bool) []node.Node {
	if !extend {
		dst = dst[:0]
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nodes {
		if !n.Enabled() || !n.CastsShadows() {
			continue
		}
		if shape.IntersectsFast(n.WorldAABB()) {
			dst = append(dst, n)
		}
	}
	return dst
}

func (s *scene) VisibleRenderables(shape common.Collidable, dst []node.Node) []node.Node {
	dst = dst[:0]

	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nodes {
		if !n.Enabled() {
			continue
		}
		if common.Intersects(shape, n.WorldAABB()) {
			dst = append(dst, n)
		}
	}
	return dst
}

// add registers n. Caller must hold the write lock.
func (s *scene) add(n node.Node) uint64 {
	if n.ID() == 0 {
		n.SetID(s.nextID)
		s.nextID++
	} else if n.ID() >= s.nextID {
		s.nextID = n.ID() + 1
	}

	if i, ok := s.index[n.ID()]; ok {
		if old := s.nodes[i].Light(); old != nil && old != n.Light() {
			s.removeLight(old)
		}
		s.nodes[i] = n
	} else {
		s.index[n.ID()] = len(s.nodes)
		s.nodes = append(s.nodes, n)
	}

	if l := n.Light(); l != nil {
		s.addLight(l)
	}
	return n.ID()
}

// addLight appends l unless it is already registered. Caller must hold the write lock.
func (s *scene) addLight(l light.Light) {
	for _, existing := range s.lights {
		if existing == l {
			return
		}
	}
	s.lights = append(s.lights, l)
}

// removeLight drops l from the light list. Caller must hold the write lock.
func (s *scene) removeLight(l light.Light) {
	for i, existing := range s.lights {
		if existing == l {
			s.lights = append(s.lights[:i], s.lights[i+1:]...)
			return
		}
	}
}

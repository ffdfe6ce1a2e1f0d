package scene

import (
	"math"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/light"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

func cubeAt(pos mgl32.Vec3, opts ...node.NodeBuilderOption) node.Node {
	m := model.NewModel(model.WithMesh(model.NewBoxMesh(mgl32.Vec3{1, 1, 1})))
	return node.NewNode(append([]node.NodeBuilderOption{node.WithModel(m), node.WithPosition(pos)}, opts...)...)
}

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	for i := range a {
		if math.Abs(float64(a[i]-b[i])) > float64(eps) {
			return false
		}
	}
	return true
}

func ids(nodes []node.Node) []uint64 {
	out := make([]uint64, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID()
	}
	return out
}

func equalIDs(a, b []uint64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddAssignsIDs(t *testing.T) {
	s := NewScene("test", camera.NewCamera())
	a := s.Add(cubeAt(mgl32.Vec3{}))
	b := s.Add(cubeAt(mgl32.Vec3{}, node.WithID(10)))
	c := s.Add(cubeAt(mgl32.Vec3{}))

	if a != 1 || b != 10 || c != 11 {
		t.Errorf("got (%v, %v, %v), want (1, 10, 11)", a, b, c)
	}
	if s.Count() != 3 {
		t.Errorf("got %v, want 3", s.Count())
	}
	s.Remove(b)
	if s.Get(b) != nil || s.Get(c) == nil {
		t.Errorf("got Get(%d)=%v Get(%d)=%v, want nil and non-nil", b, s.Get(b), c, s.Get(c))
	}
}

func TestVisibleShadowCasters(t *testing.T) {
	near := cubeAt(mgl32.Vec3{0, 0, -5})
	far := cubeAt(mgl32.Vec3{0, 0, 50})
	hidden := cubeAt(mgl32.Vec3{0, 0, -6}, node.WithCastsShadows(false))
	disabled := cubeAt(mgl32.Vec3{0, 0, -7}, node.WithEnabled(false))
	s := NewScene("test", camera.NewCamera(), WithNodes(near, far, hidden, disabled))

	box := common.NewBoxFromCenter(mgl32.Vec3{0, 0, -5}, mgl32.Vec3{5, 5, 5})

	got := s.VisibleShadowCasters(box, nil, false)
	if want := []uint64{near.ID()}; !equalIDs(ids(got), want) {
		t.Errorf("got %v, want %v", ids(got), want)
	}

	farBox := common.NewBoxFromCenter(mgl32.Vec3{0, 0, 50}, mgl32.Vec3{2, 2, 2})
	got = s.VisibleShadowCasters(farBox, got, true)
	if want := []uint64{near.ID(), far.ID()}; !equalIDs(ids(got), want) {
		t.Errorf("extend: got %v, want %v", ids(got), want)
	}

	got = s.VisibleShadowCasters(farBox, got, false)
	if want := []uint64{far.ID()}; !equalIDs(ids(got), want) {
		t.Errorf("reset: got %v, want %v", ids(got), want)
	}
}

func TestVisibleRenderablesIsExact(t *testing.T) {
	f := common.NewPerspectiveFrustum(common.DegreeToRadian(30), 1, 1, 100)
	// Straddles the far plane and the right plane past the far corner, so only the
	// exact test rejects it.
	corner := cubeAt(mgl32.Vec3{29.25, 0, -101}, node.WithScale(mgl32.Vec3{1.75, 1, 3}))
	inside := cubeAt(mgl32.Vec3{0, 0, -20}, node.WithCastsShadows(false))
	s := NewScene("test", camera.NewCamera(), WithNodes(corner, inside))

	got := s.VisibleRenderables(f, nil)
	if want := []uint64{inside.ID()}; !equalIDs(ids(got), want) {
		t.Errorf("renderables: got %v, want %v", ids(got), want)
	}
	got = s.VisibleShadowCasters(f, nil, false)
	if want := []uint64{corner.ID()}; !equalIDs(ids(got), want) {
		t.Errorf("casters: got %v, want %v", ids(got), want)
	}
}

func TestUpdateSyncsAttachedLights(t *testing.T) {
	l := light.NewLight(light.LightTypePoint)
	n := cubeAt(mgl32.Vec3{1, 2, 3}, node.WithLight(l))
	s := NewScene("test", camera.NewCamera(), WithNodes(n))

	if got := s.Lights(); len(got) != 1 || got[0] != l {
		t.Fatalf("got %v, want the attached light", got)
	}
	l.SetPosition(mgl32.Vec3{})
	s.Update()
	if got := l.Position(); got != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("got %v, want (1, 2, 3)", got)
	}

	s.Remove(n.ID())
	if got := len(s.Lights()); got != 0 {
		t.Errorf("got %v lights, want 0", got)
	}
}

func TestUpdateSyncsAttachedLightRotation(t *testing.T) {
	l := light.NewLight(light.LightTypeSpot)
	n := cubeAt(mgl32.Vec3{0, 10, 0}, node.WithLight(l),
		node.WithRotation(common.AxisAngleToQuaternion(common.XAxis, common.HalfPi)))
	s := NewScene("test", camera.NewCamera(), WithNodes(n))

	l.SetDirection(mgl32.Vec3{1, 0, 0})
	s.Update()
	if got := l.Direction(); !vecNear(got, mgl32.Vec3{0, 0, -1}, 1e-6) {
		t.Errorf("got direction %v, want the node's (0, 0, -1)", got)
	}
}

func TestAddReplacingNodeDropsOldLight(t *testing.T) {
	old := light.NewLight(light.LightTypePoint)
	replacement := light.NewLight(light.LightTypePoint)
	s := NewScene("test", camera.NewCamera(), WithNodes(cubeAt(mgl32.Vec3{}, node.WithID(5), node.WithLight(old))))

	s.Add(cubeAt(mgl32.Vec3{}, node.WithID(5), node.WithLight(replacement)))
	if got := s.Lights(); len(got) != 1 || got[0] != replacement {
		t.Errorf("got %v, want only the replacement light", got)
	}

	s.Add(cubeAt(mgl32.Vec3{}, node.WithID(5)))
	if got := len(s.Lights()); got != 0 {
		t.Errorf("got %v lights, want 0 after replacing with an unlit node", got)
	}
}

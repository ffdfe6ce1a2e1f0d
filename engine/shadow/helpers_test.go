package shadow

import (
	"math"
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/camera"
	"github.com/Carmen-Shannon/oxy-shadow/engine/model"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/Carmen-Shannon/oxy-shadow/engine/renderer"
	"github.com/Carmen-Shannon/oxy-shadow/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
)

func near(a, b, eps float32) bool {
	return math.Abs(float64(a-b)) <= float64(eps)
}

func vecNear(a, b mgl32.Vec3, eps float32) bool {
	return near(a[0], b[0], eps) && near(a[1], b[1], eps) && near(a[2], b[2], eps)
}

// cube returns a box node with half extent 1 at center.
func cube(id uint64, center mgl32.Vec3, opts ...node.NodeBuilderOption) node.Node {
	m := model.NewModel(model.WithMesh(model.NewBoxMesh(mgl32.Vec3{1, 1, 1})))
	base := []node.NodeBuilderOption{node.WithID(id), node.WithModel(m), node.WithPosition(center)}
	return node.NewNode(append(base, opts...)...)
}

// testCamera sits at the origin looking down -Z over [1, 101].
func testCamera(opts ...camera.CameraBuilderOption) camera.Camera {
	base := []camera.CameraBuilderOption{
		camera.WithFov(common.DegreeToRadian(60)),
		camera.WithAspect(1),
		camera.WithNear(1),
		camera.WithFar(101),
	}
	return camera.NewCamera(append(base, opts...)...)
}

type drawCall struct {
	target renderer.DepthTarget
	state  renderer.ShadowPassState
	pass   renderer.PassDescriptor
}

// recorder is a Rasterizer that remembers every pass.
type recorder struct {
	mu    sync.Mutex
	calls []drawCall
	err   error
}

func (r *recorder) DrawShadowPass(target renderer.DepthTarget, state renderer.ShadowPassState, pass renderer.PassDescriptor) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, drawCall{target, state, pass})
	return r.err
}

func newFrame(cam camera.Camera, nodes ...node.Node) (*FrameContext, *recorder) {
	rec := &recorder{}
	ctx := &FrameContext{
		Scene:      scene.NewScene("shadow-test", cam, scene.WithNodes(nodes...)),
		Camera:     cam,
		Targets:    renderer.NewTemporaryPool(),
		Rasterizer: rec,
		Debug:      NewDebugTargets(),
	}
	return ctx, rec
}

func casterIDs(nodes []node.Node) []uint64 {
	ids := make([]uint64, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID()
	}
	return ids
}

func sameIDs(t *testing.T, label string, got []node.Node, want ...uint64) {
	t.Helper()
	ids := casterIDs(got)
	if len(ids) != len(want) {
		t.Errorf("%s: got %v, want %v", label, ids, want)
		return
	}
	for i := range ids {
		if ids[i] != want[i] {
			t.Errorf("%s: got %v, want %v", label, ids, want)
			return
		}
	}
}

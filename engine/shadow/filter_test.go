package shadow

import (
	"testing"

	"github.com/Carmen-Shannon/oxy-shadow/common"
	"github.com/Carmen-Shannon/oxy-shadow/engine/node"
	"github.com/go-gl/mathgl/mgl32"
)

func TestFilter(t *testing.T) {
	collider := common.NewBoxFromCenter(mgl32.Vec3{}, mgl32.Vec3{2, 2, 2})
	inside := cube(1, mgl32.Vec3{})
	partial := cube(2, mgl32.Vec3{2.5, 0, 0})
	disjoint := cube(3, mgl32.Vec3{10, 0, 0})

	got := Filter(collider, []node.Node{inside, partial, disjoint}, nil)
	sameIDs(t, "box", got, 1, 2)

	frustum := common.NewPerspectiveFrustum(common.DegreeToRadian(90), 1, 1, 10)
	got = Filter(frustum, []node.Node{cube(4, mgl32.Vec3{0, 0, -5}), cube(5, mgl32.Vec3{0, 0, 5})}, got)
	sameIDs(t, "appends", got, 1, 2, 4)
}

func TestSupplementOnlyAdds(t *testing.T) {
	a, b, c := cube(1, mgl32.Vec3{}), cube(2, mgl32.Vec3{}), cube(3, mgl32.Vec3{})
	got := Supplement([]node.Node{a, b}, []node.Node{b, c, c})
	sameIDs(t, "supplement", got, 1, 2, 3)

	got = Supplement([]node.Node{a}, nil)
	sameIDs(t, "nothing extra", got, 1)
}

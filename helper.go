package impasse

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// BoundingBox computes the axis-aligned bounds of every mesh vertex in the
// scene, with node transforms applied down the hierarchy. Both bounds are
// zero for a scene without geometry.
func BoundingBox(s *Scene) (bbMin, bbMax mgl32.Vec3) {
	inf := float32(math.Inf(1))
	bbMin = mgl32.Vec3{inf, inf, inf}
	bbMax = mgl32.Vec3{-inf, -inf, -inf}
	found := false
	growNodeBounds(s.RootNode(), mgl32.Ident4(), &bbMin, &bbMax, &found)
	if !found {
		return mgl32.Vec3{}, mgl32.Vec3{}
	}
	return bbMin, bbMax
}

func growNodeBounds(n Node, parent mgl32.Mat4, bbMin, bbMax *mgl32.Vec3, found *bool) {
	if n.Nil() {
		return
	}
	t := parent.Mul4(n.Transformation().Mat4())
	meshes := n.Meshes()
	for i, cnt := 0, meshes.Len(); i < cnt; i++ {
		verts := meshes.At(i).Vertices()
		for j, vn := 0, verts.Len(); j < vn; j++ {
			v := verts.At(j).Vec3()
			w := t.Mul4x1(v.Vec4(1)).Vec3()
			for axis := 0; axis < 3; axis++ {
				if w[axis] < bbMin[axis] {
					bbMin[axis] = w[axis]
				}
				if w[axis] > bbMax[axis] {
					bbMax[axis] = w[axis]
				}
			}
			*found = true
		}
	}
	children := n.Children()
	for i, cnt := 0, children.Len(); i < cnt; i++ {
		growNodeBounds(children.At(i), t, bbMin, bbMax, found)
	}
}

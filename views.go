package impasse

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/SaladDais/Impasse/adapt"
)

// Vector2View aliases an aiVector2D in place.
type Vector2View struct{ adapt.Block[float32] }

func newVector2View(h adapt.Handle) Vector2View {
	return Vector2View{adapt.NewBlock[float32](h, 1, 2)}
}

func (v Vector2View) Vec2() mgl32.Vec2 { return mgl32.Vec2{v.At(0), v.At(1)} }

// Vector3View aliases an aiVector3D in place.
type Vector3View struct{ adapt.Block[float32] }

func newVector3View(h adapt.Handle) Vector3View {
	return Vector3View{adapt.NewBlock[float32](h, 1, 3)}
}

func (v Vector3View) Vec3() mgl32.Vec3 { return mgl32.Vec3{v.At(0), v.At(1), v.At(2)} }

func (v Vector3View) SetVec3(val mgl32.Vec3) error { return v.Set(val[0], val[1], val[2]) }

// Color3View aliases an aiColor3D in place.
type Color3View struct{ adapt.Block[float32] }

func newColor3View(h adapt.Handle) Color3View {
	return Color3View{adapt.NewBlock[float32](h, 1, 3)}
}

// Color4View aliases an aiColor4D in place.
type Color4View struct{ adapt.Block[float32] }

func newColor4View(h adapt.Handle) Color4View {
	return Color4View{adapt.NewBlock[float32](h, 1, 4)}
}

func (v Color4View) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{v.At(0), v.At(1), v.At(2), v.At(3)}
}

// QuaternionView aliases an aiQuaternion, stored w, x, y, z.
type QuaternionView struct{ adapt.Block[float32] }

func newQuaternionView(h adapt.Handle) QuaternionView {
	return QuaternionView{adapt.NewBlock[float32](h, 1, 4)}
}

func (v QuaternionView) Quat() mgl32.Quat {
	return mgl32.Quat{W: v.At(0), V: mgl32.Vec3{v.At(1), v.At(2), v.At(3)}}
}

func (v QuaternionView) SetQuat(q mgl32.Quat) error {
	return v.Set(q.W, q.V[0], q.V[1], q.V[2])
}

// Matrix3x3View aliases a row-major aiMatrix3x3.
type Matrix3x3View struct{ adapt.Block[float32] }

func newMatrix3x3View(h adapt.Handle) Matrix3x3View {
	return Matrix3x3View{adapt.NewBlock[float32](h, 3, 3)}
}

// Mat3 converts the row-major storage to mgl32's column-major layout.
func (v Matrix3x3View) Mat3() mgl32.Mat3 {
	var out mgl32.Mat3
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			out.Set(r, c, v.AtRC(r, c))
		}
	}
	return out
}

// Matrix4x4View aliases a row-major aiMatrix4x4.
type Matrix4x4View struct{ adapt.Block[float32] }

func newMatrix4x4View(h adapt.Handle) Matrix4x4View {
	return Matrix4x4View{adapt.NewBlock[float32](h, 4, 4)}
}

// Mat4 converts the row-major storage to mgl32's column-major layout.
func (v Matrix4x4View) Mat4() mgl32.Mat4 {
	var out mgl32.Mat4
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			out.Set(r, c, v.AtRC(r, c))
		}
	}
	return out
}

func (v Matrix4x4View) SetMat4(m mgl32.Mat4) error {
	vals := make([]float32, 16)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			vals[r*4+c] = m.At(r, c)
		}
	}
	return v.Set(vals...)
}

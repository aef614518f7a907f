package impasse

import (
	"unsafe"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Animation is a view over one aiAnimation.
type Animation struct{ h adapt.Handle }

func (a Animation) raw() *ai.Animation { return (*ai.Animation)(a.h.Ptr()) }

func (a Animation) Name() string { return goString(&a.raw().Name) }

func (a Animation) SetName(v string) error { return setAIString(a.h, &a.raw().Name, v) }

func (a Animation) Duration() float64 { return a.raw().Duration }

func (a Animation) TicksPerSecond() float64 { return a.raw().TicksPerSecond }

func (a Animation) Channels() adapt.Seq[NodeAnim] {
	r := a.raw()
	return adapt.NewDynPtrSeq(
		a.h.AtPtr(unsafe.Pointer(r.Channels)), &r.NumChannels,
		func(h adapt.Handle) NodeAnim { return NodeAnim{h: h} }, nil)
}

func (a Animation) MeshChannels() adapt.Seq[MeshAnim] {
	r := a.raw()
	return adapt.NewDynPtrSeq(
		a.h.AtPtr(unsafe.Pointer(r.MeshChannels)), &r.NumMeshChannels,
		func(h adapt.Handle) MeshAnim { return MeshAnim{h: h} }, nil)
}

func (a Animation) MorphMeshChannels() adapt.Seq[MeshMorphAnim] {
	r := a.raw()
	return adapt.NewDynPtrSeq(
		a.h.AtPtr(unsafe.Pointer(r.MorphMeshChannels)), &r.NumMorphMeshChannels,
		func(h adapt.Handle) MeshMorphAnim { return MeshMorphAnim{h: h} }, nil)
}

// NodeAnim is a view over one aiNodeAnim, the keyframe tracks of a single
// node.
type NodeAnim struct{ h adapt.Handle }

func (n NodeAnim) raw() *ai.NodeAnim { return (*ai.NodeAnim)(n.h.Ptr()) }

func (n NodeAnim) NodeName() string { return goString(&n.raw().NodeName) }

func (n NodeAnim) PositionKeys() adapt.Seq[VectorKey] {
	r := n.raw()
	return adapt.NewDynSeq(
		n.h.AtPtr(unsafe.Pointer(r.PositionKeys)), &r.NumPositionKeys,
		unsafe.Sizeof(ai.VectorKey{}),
		func(h adapt.Handle) VectorKey { return VectorKey{h: h} }, nil)
}

func (n NodeAnim) RotationKeys() adapt.Seq[QuatKey] {
	r := n.raw()
	return adapt.NewDynSeq(
		n.h.AtPtr(unsafe.Pointer(r.RotationKeys)), &r.NumRotationKeys,
		unsafe.Sizeof(ai.QuatKey{}),
		func(h adapt.Handle) QuatKey { return QuatKey{h: h} }, nil)
}

func (n NodeAnim) ScalingKeys() adapt.Seq[VectorKey] {
	r := n.raw()
	return adapt.NewDynSeq(
		n.h.AtPtr(unsafe.Pointer(r.ScalingKeys)), &r.NumScalingKeys,
		unsafe.Sizeof(ai.VectorKey{}),
		func(h adapt.Handle) VectorKey { return VectorKey{h: h} }, nil)
}

func (n NodeAnim) States() (pre, post uint32) {
	r := n.raw()
	return r.PreState, r.PostState
}

// VectorKey is a view over one timestamped vector keyframe.
type VectorKey struct{ h adapt.Handle }

func (k VectorKey) raw() *ai.VectorKey { return (*ai.VectorKey)(k.h.Ptr()) }

func (k VectorKey) Time() float64 { return k.raw().Time }

func (k VectorKey) SetTime(t float64) error {
	if err := k.h.CheckWrite(); err != nil {
		return err
	}
	k.raw().Time = t
	return nil
}

func (k VectorKey) Value() Vector3View {
	return newVector3View(k.h.Field(unsafe.Offsetof(k.raw().Value)))
}

// QuatKey is a view over one timestamped rotation keyframe.
type QuatKey struct{ h adapt.Handle }

func (k QuatKey) raw() *ai.QuatKey { return (*ai.QuatKey)(k.h.Ptr()) }

func (k QuatKey) Time() float64 { return k.raw().Time }

func (k QuatKey) SetTime(t float64) error {
	if err := k.h.CheckWrite(); err != nil {
		return err
	}
	k.raw().Time = t
	return nil
}

func (k QuatKey) Value() QuaternionView {
	return newQuaternionView(k.h.Field(unsafe.Offsetof(k.raw().Value)))
}

// MeshAnim is a view over one aiMeshAnim.
type MeshAnim struct{ h adapt.Handle }

func (m MeshAnim) raw() *ai.MeshAnim { return (*ai.MeshAnim)(m.h.Ptr()) }

func (m MeshAnim) Name() string { return goString(&m.raw().Name) }

func (m MeshAnim) Keys() adapt.Seq[MeshKey] {
	r := m.raw()
	return adapt.NewDynSeq(
		m.h.AtPtr(unsafe.Pointer(r.Keys)), &r.NumKeys,
		unsafe.Sizeof(ai.MeshKey{}),
		func(h adapt.Handle) MeshKey { return MeshKey{h: h} }, nil)
}

// MeshKey is a view over one timestamped anim-mesh selection.
type MeshKey struct{ h adapt.Handle }

func (k MeshKey) raw() *ai.MeshKey { return (*ai.MeshKey)(k.h.Ptr()) }

func (k MeshKey) Time() float64 { return k.raw().Time }

func (k MeshKey) Value() uint32 { return k.raw().Value }

// MeshMorphAnim is a view over one aiMeshMorphAnim.
type MeshMorphAnim struct{ h adapt.Handle }

func (m MeshMorphAnim) raw() *ai.MeshMorphAnim { return (*ai.MeshMorphAnim)(m.h.Ptr()) }

func (m MeshMorphAnim) Name() string { return goString(&m.raw().Name) }

func (m MeshMorphAnim) Keys() adapt.Seq[MeshMorphKey] {
	r := m.raw()
	return adapt.NewDynSeq(
		m.h.AtPtr(unsafe.Pointer(r.Keys)), &r.NumKeys,
		unsafe.Sizeof(ai.MeshMorphKey{}),
		func(h adapt.Handle) MeshMorphKey { return MeshMorphKey{h: h} }, nil)
}

// MeshMorphKey is a view over one morph keyframe, parallel target and
// weight arrays.
type MeshMorphKey struct{ h adapt.Handle }

func (k MeshMorphKey) raw() *ai.MeshMorphKey { return (*ai.MeshMorphKey)(k.h.Ptr()) }

func (k MeshMorphKey) Time() float64 { return k.raw().Time }

func (k MeshMorphKey) Targets() adapt.Seq[uint32] {
	r := k.raw()
	return adapt.NewDynSeq(
		k.h.AtPtr(unsafe.Pointer(r.Values)), &r.NumValuesAndWeights,
		unsafe.Sizeof(uint32(0)), decodeU32, encodeU32)
}

func (k MeshMorphKey) Weights() adapt.Seq[float64] {
	r := k.raw()
	return adapt.NewDynSeq(
		k.h.AtPtr(unsafe.Pointer(r.Weights)), &r.NumValuesAndWeights,
		unsafe.Sizeof(float64(0)), decodeF64, encodeF64)
}

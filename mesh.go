package impasse

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Mesh is a view over one aiMesh.
type Mesh struct{ h adapt.Handle }

func (m Mesh) raw() *ai.Mesh { return (*ai.Mesh)(m.h.Ptr()) }

func (m Mesh) Nil() bool { return m.h.Nil() }

func (m Mesh) Handle() adapt.Handle { return m.h }

func (m Mesh) Name() string { return goString(&m.raw().Name) }

func (m Mesh) SetName(v string) error { return setAIString(m.h, &m.raw().Name, v) }

func (m Mesh) PrimitiveTypes() uint32 { return m.raw().PrimitiveTypes }

func (m Mesh) NumVertices() uint32 { return m.raw().NumVertices }

func (m Mesh) MaterialIndex() uint32 { return m.raw().MaterialIndex }

// Material resolves the mesh's material index against the scene.
func (m Mesh) Material() (Material, error) {
	scene := sceneOf(m.h)
	idx := m.raw().MaterialIndex
	if idx >= scene.raw().NumMaterials {
		return Material{}, errors.Wrapf(adapt.ErrNotFound, "material index %d out of range", idx)
	}
	return scene.Materials().At(int(idx)), nil
}

func (m Mesh) vec3Seq(base *ai.Vector3) adapt.Seq[Vector3View] {
	r := m.raw()
	return adapt.NewDynSeq(
		m.h.AtPtr(unsafe.Pointer(base)), &r.NumVertices,
		unsafe.Sizeof(ai.Vector3{}),
		newVector3View, nil)
}

// Vertices views the position array. Element slots are mutated through the
// returned views, never replaced.
func (m Mesh) Vertices() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Vertices) }

func (m Mesh) Normals() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Normals) }

func (m Mesh) Tangents() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Tangents) }

func (m Mesh) Bitangents() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Bitangents) }

// ColorSets views the up-to-eight vertex color channels; the logical length
// ends at the first unset channel.
func (m Mesh) ColorSets() adapt.Seq[adapt.Seq[Color4View]] {
	r := m.raw()
	return adapt.NewFixedPtrSeq(
		m.h.Field(unsafe.Offsetof(r.Colors)), ai.MaxNumberOfColorSets, true,
		func(h adapt.Handle) adapt.Seq[Color4View] {
			return adapt.NewDynSeq(h, &m.raw().NumVertices,
				unsafe.Sizeof(ai.Color4{}), newColor4View, nil)
		}, nil)
}

// UVChannels views the up-to-eight texture coordinate channels. Slots are
// stored as aiVector3D regardless of the channel's component count.
func (m Mesh) UVChannels() adapt.Seq[adapt.Seq[Vector3View]] {
	r := m.raw()
	return adapt.NewFixedPtrSeq(
		m.h.Field(unsafe.Offsetof(r.TextureCoords)), ai.MaxNumberOfTextureCoords, true,
		func(h adapt.Handle) adapt.Seq[Vector3View] {
			return adapt.NewDynSeq(h, &m.raw().NumVertices,
				unsafe.Sizeof(ai.Vector3{}), newVector3View, nil)
		}, nil)
}

// NumUVComponents reports how many components of each UV channel are
// meaningful.
func (m Mesh) NumUVComponents() adapt.Seq[uint32] {
	r := m.raw()
	return adapt.NewFixedSeq(
		m.h.Field(unsafe.Offsetof(r.NumUVComponents)), ai.MaxNumberOfTextureCoords,
		unsafe.Sizeof(uint32(0)), decodeU32, encodeU32)
}

func (m Mesh) Faces() adapt.Seq[Face] {
	r := m.raw()
	return adapt.NewDynSeq(
		m.h.AtPtr(unsafe.Pointer(r.Faces)), &r.NumFaces,
		unsafe.Sizeof(ai.Face{}),
		func(h adapt.Handle) Face { return Face{h: h} }, nil)
}

func (m Mesh) Bones() adapt.Seq[Bone] {
	r := m.raw()
	return adapt.NewDynPtrSeq(
		m.h.AtPtr(unsafe.Pointer(r.Bones)), &r.NumBones,
		func(h adapt.Handle) Bone { return Bone{h: h} }, nil)
}

func (m Mesh) AnimMeshes() adapt.Seq[AnimMesh] {
	r := m.raw()
	return adapt.NewDynPtrSeq(
		m.h.AtPtr(unsafe.Pointer(r.AnimMeshes)), &r.NumAnimMeshes,
		func(h adapt.Handle) AnimMesh { return AnimMesh{h: h} }, nil)
}

// Face is a view over one aiFace.
type Face struct{ h adapt.Handle }

func (f Face) raw() *ai.Face { return (*ai.Face)(f.h.Ptr()) }

func (f Face) NumIndices() uint32 { return f.raw().NumIndices }

func (f Face) Indices() adapt.Seq[uint32] {
	r := f.raw()
	return adapt.NewDynSeq(
		f.h.AtPtr(unsafe.Pointer(r.Indices)), &r.NumIndices,
		unsafe.Sizeof(uint32(0)), decodeU32, encodeU32)
}

// Bone is a view over one aiBone.
type Bone struct{ h adapt.Handle }

func (b Bone) raw() *ai.Bone { return (*ai.Bone)(b.h.Ptr()) }

func (b Bone) Name() string { return goString(&b.raw().Name) }

func (b Bone) SetName(v string) error { return setAIString(b.h, &b.raw().Name, v) }

func (b Bone) OffsetMatrix() Matrix4x4View {
	return newMatrix4x4View(b.h.Field(unsafe.Offsetof(b.raw().OffsetMatrix)))
}

func (b Bone) Weights() adapt.Seq[VertexWeight] {
	r := b.raw()
	return adapt.NewDynSeq(
		b.h.AtPtr(unsafe.Pointer(r.Weights)), &r.NumWeights,
		unsafe.Sizeof(ai.VertexWeight{}),
		func(h adapt.Handle) VertexWeight { return VertexWeight{h: h} }, nil)
}

// VertexWeight is a view over one aiVertexWeight.
type VertexWeight struct{ h adapt.Handle }

func (w VertexWeight) raw() *ai.VertexWeight { return (*ai.VertexWeight)(w.h.Ptr()) }

func (w VertexWeight) VertexID() uint32 { return w.raw().VertexID }

func (w VertexWeight) Weight() float32 { return w.raw().Weight }

func (w VertexWeight) SetWeight(v float32) error {
	if err := w.h.CheckWrite(); err != nil {
		return err
	}
	w.raw().Weight = v
	return nil
}

// AnimMesh is a view over one aiAnimMesh. Nil per-vertex arrays fall back
// to the host mesh's data, so a zero-length sequence here is expected.
type AnimMesh struct{ h adapt.Handle }

func (m AnimMesh) raw() *ai.AnimMesh { return (*ai.AnimMesh)(m.h.Ptr()) }

func (m AnimMesh) Name() string { return goString(&m.raw().Name) }

func (m AnimMesh) Weight() float32 { return m.raw().Weight }

func (m AnimMesh) vec3Seq(base *ai.Vector3) adapt.Seq[Vector3View] {
	r := m.raw()
	return adapt.NewDynSeq(
		m.h.AtPtr(unsafe.Pointer(base)), &r.NumVertices,
		unsafe.Sizeof(ai.Vector3{}),
		newVector3View, nil)
}

func (m AnimMesh) Vertices() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Vertices) }

func (m AnimMesh) Normals() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Normals) }

func (m AnimMesh) Tangents() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Tangents) }

func (m AnimMesh) Bitangents() adapt.Seq[Vector3View] { return m.vec3Seq(m.raw().Bitangents) }

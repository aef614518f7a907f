package memscene

import (
	"github.com/SaladDais/Impasse/ai"
)

// MeshBuilder assembles one mesh. Per-vertex arrays must agree in length
// with Positions; finish does not cross-check, fixtures are trusted.
type MeshBuilder struct {
	b    *Builder
	name string

	materialIndex uint32
	primitives    uint32

	positions  []ai.Vector3
	normals    []ai.Vector3
	tangents   []ai.Vector3
	bitangents []ai.Vector3
	colors     [ai.MaxNumberOfColorSets][]ai.Color4
	uvs        [ai.MaxNumberOfTextureCoords][]ai.Vector3
	uvComps    [ai.MaxNumberOfTextureCoords]uint32
	faces      [][]uint32
	bones      []boneSpec
}

type boneSpec struct {
	name    string
	offset  ai.Matrix4x4
	weights []ai.VertexWeight
}

func vec3s(v [][3]float32) []ai.Vector3 {
	out := make([]ai.Vector3, len(v))
	for i, p := range v {
		out[i] = ai.Vector3{X: p[0], Y: p[1], Z: p[2]}
	}
	return out
}

func (mb *MeshBuilder) Positions(v ...[3]float32) *MeshBuilder {
	mb.positions = vec3s(v)
	return mb
}

func (mb *MeshBuilder) Normals(v ...[3]float32) *MeshBuilder {
	mb.normals = vec3s(v)
	return mb
}

func (mb *MeshBuilder) Tangents(v ...[3]float32) *MeshBuilder {
	mb.tangents = vec3s(v)
	return mb
}

func (mb *MeshBuilder) Bitangents(v ...[3]float32) *MeshBuilder {
	mb.bitangents = vec3s(v)
	return mb
}

// UV fills texture coordinate channel ch. comps is the component count
// recorded for the channel (2 for plain UVs, 3 for cube maps).
func (mb *MeshBuilder) UV(ch int, comps uint32, v ...[3]float32) *MeshBuilder {
	mb.uvs[ch] = vec3s(v)
	mb.uvComps[ch] = comps
	return mb
}

func (mb *MeshBuilder) Colors(ch int, v ...[4]float32) *MeshBuilder {
	out := make([]ai.Color4, len(v))
	for i, c := range v {
		out[i] = ai.Color4{R: c[0], G: c[1], B: c[2], A: c[3]}
	}
	mb.colors[ch] = out
	return mb
}

func (mb *MeshBuilder) Triangle(a, b, c uint32) *MeshBuilder {
	return mb.Face(a, b, c)
}

func (mb *MeshBuilder) Face(indexes ...uint32) *MeshBuilder {
	mb.faces = append(mb.faces, indexes)
	return mb
}

// Material records the index of this mesh's material in the scene's
// material array.
func (mb *MeshBuilder) Material(index uint32) *MeshBuilder {
	mb.materialIndex = index
	return mb
}

func (mb *MeshBuilder) Primitives(types uint32) *MeshBuilder {
	mb.primitives = types
	return mb
}

func (mb *MeshBuilder) Bone(name string, offset ai.Matrix4x4, weights ...ai.VertexWeight) *MeshBuilder {
	mb.bones = append(mb.bones, boneSpec{name: name, offset: offset, weights: weights})
	return mb
}

func inlineVec3(a *arena, src []ai.Vector3) *ai.Vector3 {
	if len(src) == 0 {
		return nil
	}
	s := allocSlice[ai.Vector3](a, len(src))
	copy(s, src)
	return &s[0]
}

func (mb *MeshBuilder) finish(a *arena) *ai.Mesh {
	m := alloc[ai.Mesh](a)
	putString(&m.Name, mb.name)
	m.PrimitiveTypes = mb.primitives
	m.MaterialIndex = mb.materialIndex
	m.NumVertices = uint32(len(mb.positions))
	m.Vertices = inlineVec3(a, mb.positions)
	m.Normals = inlineVec3(a, mb.normals)
	m.Tangents = inlineVec3(a, mb.tangents)
	m.Bitangents = inlineVec3(a, mb.bitangents)
	m.NumUVComponents = mb.uvComps

	// Channel slots are packed from 0; the first nil pointer terminates.
	for ch, colors := range mb.colors {
		if len(colors) == 0 {
			continue
		}
		s := allocSlice[ai.Color4](a, len(colors))
		copy(s, colors)
		m.Colors[ch] = &s[0]
	}
	for ch, uv := range mb.uvs {
		if len(uv) == 0 {
			continue
		}
		m.TextureCoords[ch] = inlineVec3(a, uv)
	}

	if len(mb.faces) > 0 {
		faces := allocSlice[ai.Face](a, len(mb.faces))
		for i, idx := range mb.faces {
			run := allocSlice[uint32](a, len(idx))
			copy(run, idx)
			faces[i].NumIndices = uint32(len(idx))
			if len(run) > 0 {
				faces[i].Indices = &run[0]
			}
		}
		m.Faces = &faces[0]
		m.NumFaces = uint32(len(faces))
	}

	if len(mb.bones) > 0 {
		bones := allocSlice[*ai.Bone](a, len(mb.bones))
		for i, spec := range mb.bones {
			bone := alloc[ai.Bone](a)
			putString(&bone.Name, spec.name)
			bone.OffsetMatrix = spec.offset
			weights := allocSlice[ai.VertexWeight](a, len(spec.weights))
			copy(weights, spec.weights)
			if len(weights) > 0 {
				bone.Weights = &weights[0]
			}
			bone.NumWeights = uint32(len(spec.weights))
			bones[i] = bone
		}
		m.Bones = &bones[0]
		m.NumBones = uint32(len(bones))
	}
	return m
}

// AnimBuilder assembles one animation with its channels.
type AnimBuilder struct {
	b        *Builder
	name     string
	duration float64
	tps      float64

	nodeChannels []nodeChannelSpec
	meshChannels []meshChannelSpec
}

type nodeChannelSpec struct {
	node     string
	position []ai.VectorKey
	rotation []ai.QuatKey
	scaling  []ai.VectorKey
}

type meshChannelSpec struct {
	mesh string
	keys []ai.MeshKey
}

func (ab *AnimBuilder) NodeChannel(node string, position []ai.VectorKey, rotation []ai.QuatKey, scaling []ai.VectorKey) *AnimBuilder {
	ab.nodeChannels = append(ab.nodeChannels, nodeChannelSpec{node, position, rotation, scaling})
	return ab
}

func (ab *AnimBuilder) MeshChannel(mesh string, keys ...ai.MeshKey) *AnimBuilder {
	ab.meshChannels = append(ab.meshChannels, meshChannelSpec{mesh, keys})
	return ab
}

func (ab *AnimBuilder) finish(a *arena) *ai.Animation {
	an := alloc[ai.Animation](a)
	putString(&an.Name, ab.name)
	an.Duration = ab.duration
	an.TicksPerSecond = ab.tps

	if len(ab.nodeChannels) > 0 {
		chans := allocSlice[*ai.NodeAnim](a, len(ab.nodeChannels))
		for i, spec := range ab.nodeChannels {
			ch := alloc[ai.NodeAnim](a)
			putString(&ch.NodeName, spec.node)
			if n := len(spec.position); n > 0 {
				keys := allocSlice[ai.VectorKey](a, n)
				copy(keys, spec.position)
				ch.PositionKeys = &keys[0]
				ch.NumPositionKeys = uint32(n)
			}
			if n := len(spec.rotation); n > 0 {
				keys := allocSlice[ai.QuatKey](a, n)
				copy(keys, spec.rotation)
				ch.RotationKeys = &keys[0]
				ch.NumRotationKeys = uint32(n)
			}
			if n := len(spec.scaling); n > 0 {
				keys := allocSlice[ai.VectorKey](a, n)
				copy(keys, spec.scaling)
				ch.ScalingKeys = &keys[0]
				ch.NumScalingKeys = uint32(n)
			}
			chans[i] = ch
		}
		an.Channels = &chans[0]
		an.NumChannels = uint32(len(chans))
	}

	if len(ab.meshChannels) > 0 {
		chans := allocSlice[*ai.MeshAnim](a, len(ab.meshChannels))
		for i, spec := range ab.meshChannels {
			ch := alloc[ai.MeshAnim](a)
			putString(&ch.Name, spec.mesh)
			keys := allocSlice[ai.MeshKey](a, len(spec.keys))
			copy(keys, spec.keys)
			if len(keys) > 0 {
				ch.Keys = &keys[0]
			}
			ch.NumKeys = uint32(len(spec.keys))
			chans[i] = ch
		}
		an.MeshChannels = &chans[0]
		an.NumMeshChannels = uint32(len(chans))
	}
	return an
}

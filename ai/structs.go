// Package ai declares the C-ABI layout of the foreign scene graph as it is
// allocated by the import/export engine. Field order, widths and implicit
// padding mirror the engine's headers exactly on LP64 targets; nothing here
// may be reordered without breaking every pointer walk built on top.
//
// These are raw views. They carry no ownership and no lifetime, that is the
// job of the adapt package.
package ai

import "unsafe"

const (
	// MaxStringBytes is the capacity of the embedded String buffer,
	// including the terminating NUL.
	MaxStringBytes = 1024

	MaxNumberOfColorSets     = 8
	MaxNumberOfTextureCoords = 8
	MaxFaceIndices           = 0x7fff
)

// String is the engine's embedded length-prefixed string. Length is the
// byte length excluding the terminating NUL, not the rune count.
type String struct {
	Length uint32
	Data   [MaxStringBytes]byte
}

type Vector2 struct {
	X, Y float32
}

type Vector3 struct {
	X, Y, Z float32
}

// Color3 holds red, green and blue in [0, 1].
type Color3 struct {
	R, G, B float32
}

// Color4 holds red, green, blue and alpha in [0, 1].
type Color4 struct {
	R, G, B, A float32
}

// Quaternion stores w first, matching the engine layout.
type Quaternion struct {
	W, X, Y, Z float32
}

// Matrix3x3 is row-major.
type Matrix3x3 [9]float32

// Matrix4x4 is row-major.
type Matrix4x4 [16]float32

// Plane coefficients of ax + by + cz + d = 0.
type Plane struct {
	A, B, C, D float32
}

type Ray struct {
	Pos Vector3
	Dir Vector3
}

// Texel is one BGRA pixel of an uncompressed embedded texture. The engine
// packs these, so a texel run can be treated as a contiguous byte block.
type Texel struct {
	B, G, R, A uint8
}

// Face references vertices of its mesh by index. Indices points at a
// contiguous run of NumIndices entries.
type Face struct {
	NumIndices uint32
	Indices    *uint32
}

type VertexWeight struct {
	VertexID uint32
	Weight   float32
}

// Bone attaches a weighted set of vertices to a node of the same name.
type Bone struct {
	Name         String
	NumWeights   uint32
	Weights      *VertexWeight
	OffsetMatrix Matrix4x4
}

// MetadataEntry is a runtime-tagged union: Type selects how the memory
// behind Data is interpreted.
type MetadataEntry struct {
	Type uint32
	Data unsafe.Pointer
}

// Metadata is a pair of parallel arrays, NumProperties long each.
type Metadata struct {
	NumProperties uint32
	Keys          *String
	Values        *MetadataEntry
}

// Node is one element of the scene hierarchy. Meshes holds indices into the
// owning Scene's mesh array, not pointers.
type Node struct {
	Name           String
	Transformation Matrix4x4
	Parent         *Node
	NumChildren    uint32
	Children       **Node
	NumMeshes      uint32
	Meshes         *uint32
	Metadata       *Metadata
}

// AnimMesh carries per-vertex replacement data for morph animation. A nil
// array means "take the host mesh's array".
type AnimMesh struct {
	Name          String
	Vertices      *Vector3
	Normals       *Vector3
	Tangents      *Vector3
	Bitangents    *Vector3
	Colors        [MaxNumberOfColorSets]*Color4
	TextureCoords [MaxNumberOfTextureCoords]*Vector3
	NumVertices   uint32
	Weight        float32
}

// Mesh is a single-material batch of geometry. All per-vertex arrays are
// NumVertices long; the eight color/UV slots are terminated by the first
// nil pointer.
type Mesh struct {
	PrimitiveTypes  uint32
	NumVertices     uint32
	NumFaces        uint32
	Vertices        *Vector3
	Normals         *Vector3
	Tangents        *Vector3
	Bitangents      *Vector3
	Colors          [MaxNumberOfColorSets]*Color4
	TextureCoords   [MaxNumberOfTextureCoords]*Vector3
	NumUVComponents [MaxNumberOfTextureCoords]uint32
	Faces           *Face
	NumBones        uint32
	Bones           **Bone
	MaterialIndex   uint32
	Name            String
	NumAnimMeshes   uint32
	AnimMeshes      **AnimMesh
	Method          uint32
}

// MaterialProperty is a runtime-tagged union keyed by (Key, Semantic,
// Index). DataLength is the byte size of the buffer behind Data.
type MaterialProperty struct {
	Key        String
	Semantic   uint32
	Index      uint32
	DataLength uint32
	Type       uint32
	Data       *byte
}

type Material struct {
	Properties    **MaterialProperty
	NumProperties uint32
	NumAllocated  uint32
}

// Texture is either uncompressed (Height > 0, Data points at
// Width*Height texels) or compressed (Height == 0, Data points at Width
// bytes of file data described by FormatHint).
type Texture struct {
	Width      uint32
	Height     uint32
	FormatHint [9]byte
	Data       *Texel
	Filename   String
}

type Light struct {
	Name                 String
	Type                 uint32
	Position             Vector3
	Direction            Vector3
	Up                   Vector3
	AttenuationConstant  float32
	AttenuationLinear    float32
	AttenuationQuadratic float32
	ColorDiffuse         Color3
	ColorSpecular        Color3
	ColorAmbient         Color3
	AngleInnerCone       float32
	AngleOuterCone       float32
	Size                 Vector2
}

type Camera struct {
	Name          String
	Position      Vector3
	Up            Vector3
	LookAt        Vector3
	HorizontalFOV float32
	ClipPlaneNear float32
	ClipPlaneFar  float32
	Aspect        float32
}

type VectorKey struct {
	Time  float64
	Value Vector3
}

type QuatKey struct {
	Time  float64
	Value Quaternion
}

// MeshKey selects an AnimMesh of the animated mesh at a point in time.
type MeshKey struct {
	Time  float64
	Value uint32
}

type MeshMorphKey struct {
	Time                float64
	Values              *uint32
	Weights             *float64
	NumValuesAndWeights uint32
}

// NodeAnim animates a single node with independent position, rotation and
// scaling tracks.
type NodeAnim struct {
	NodeName        String
	NumPositionKeys uint32
	PositionKeys    *VectorKey
	NumRotationKeys uint32
	RotationKeys    *QuatKey
	NumScalingKeys  uint32
	ScalingKeys     *VectorKey
	PreState        uint32
	PostState       uint32
}

type MeshAnim struct {
	Name    String
	NumKeys uint32
	Keys    *MeshKey
}

type MeshMorphAnim struct {
	Name    String
	NumKeys uint32
	Keys    *MeshMorphKey
}

type Animation struct {
	Name                 String
	Duration             float64
	TicksPerSecond       float64
	NumChannels          uint32
	Channels             **NodeAnim
	NumMeshChannels      uint32
	MeshChannels         **MeshAnim
	NumMorphMeshChannels uint32
	MorphMeshChannels    **MeshMorphAnim
}

// UVTransform describes a texture coordinate transform stored inside a
// material property buffer.
type UVTransform struct {
	Translation Vector2
	Scaling     Vector2
	Rotation    float32
}

type MemoryInfo struct {
	Textures   uint32
	Materials  uint32
	Meshes     uint32
	Nodes      uint32
	Animations uint32
	Cameras    uint32
	Lights     uint32
	Total      uint32
}

// ExportDataBlob is one node of the singly linked list returned by the
// engine's export-to-memory call. Only the head of the list is ever
// released; the chain owns its tail.
type ExportDataBlob struct {
	Size uint64
	Data unsafe.Pointer
	Name String
	Next *ExportDataBlob
}

// Scene is the root of one foreign allocation graph. Every top-level
// collection is a counter plus an array of pointers.
type Scene struct {
	Flags         uint32
	RootNode      *Node
	NumMeshes     uint32
	Meshes        **Mesh
	NumMaterials  uint32
	Materials     **Material
	NumAnimations uint32
	Animations    **Animation
	NumTextures   uint32
	Textures      **Texture
	NumLights     uint32
	Lights        **Light
	NumCameras    uint32
	Cameras       **Camera
	Metadata      *Metadata
	Name          String
	Private       *byte
}

package impasse

import (
	"unsafe"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Node is a view over one aiNode in the hierarchy.
type Node struct{ h adapt.Handle }

func (n Node) raw() *ai.Node { return (*ai.Node)(n.h.Ptr()) }

func (n Node) Nil() bool { return n.h.Nil() }

func (n Node) Handle() adapt.Handle { return n.h }

func (n Node) Name() string { return goString(&n.raw().Name) }

func (n Node) SetName(v string) error { return setAIString(n.h, &n.raw().Name, v) }

func (n Node) Transformation() Matrix4x4View {
	return newMatrix4x4View(n.h.Field(unsafe.Offsetof(n.raw().Transformation)))
}

// Parent returns the enclosing node, Nil() for the hierarchy root.
func (n Node) Parent() Node {
	return Node{h: n.h.AtPtr(unsafe.Pointer(n.raw().Parent))}
}

func (n Node) Children() adapt.Seq[Node] {
	r := n.raw()
	return adapt.NewDynPtrSeq(
		n.h.AtPtr(unsafe.Pointer(r.Children)), &r.NumChildren,
		func(h adapt.Handle) Node { return Node{h: h} }, nil)
}

// MeshIndexes exposes the raw mesh index array.
func (n Node) MeshIndexes() adapt.Seq[uint32] {
	r := n.raw()
	return adapt.NewDynSeq(
		n.h.AtPtr(unsafe.Pointer(r.Meshes)), &r.NumMeshes,
		unsafe.Sizeof(uint32(0)), decodeU32, encodeU32)
}

// Meshes resolves the node's mesh indexes against the scene's mesh table.
// Assigning a mesh stores its scene index, so only meshes belonging to the
// same scene are accepted.
func (n Node) Meshes() adapt.Seq[Mesh] {
	r := n.raw()
	scene := sceneOf(n.h)
	return adapt.NewDynSeq(
		n.h.AtPtr(unsafe.Pointer(r.Meshes)), &r.NumMeshes,
		unsafe.Sizeof(uint32(0)),
		func(h adapt.Handle) Mesh {
			return scene.Meshes().At(int(decodeU32(h)))
		},
		func(h adapt.Handle, m Mesh) error {
			idx, err := scene.MeshRef(m)
			if err != nil {
				return err
			}
			return encodeU32(h, idx)
		})
}

// Metadata returns the node's metadata table, Nil() when absent.
func (n Node) Metadata() Metadata {
	return Metadata{h: n.h.AtPtr(unsafe.Pointer(n.raw().Metadata))}
}

// Map is shorthand for Metadata().Map().
func (n Node) Map() MetadataMap { return n.Metadata().Map() }

// Find walks the subtree depth-first for a node with the given name.
func (n Node) Find(name string) (Node, bool) {
	if n.Nil() {
		return Node{}, false
	}
	if n.Name() == name {
		return n, true
	}
	children := n.Children()
	for i, cnt := 0, children.Len(); i < cnt; i++ {
		if found, ok := children.At(i).Find(name); ok {
			return found, true
		}
	}
	return Node{}, false
}

package memscene

import (
	"math/rand"
	"sync"
	"unsafe"

	"github.com/Pallinder/go-randomdata"

	"github.com/SaladDais/Impasse/ai"
)

var seedNamesOnce sync.Once

// nameGen hands out unique placeholder names for anonymous resources.
// Deterministically seeded so fixtures are reproducible run to run.
type nameGen map[string]struct{}

func (g *nameGen) next() string {
	if *g == nil {
		*g = make(map[string]struct{})
		seedNamesOnce.Do(func() {
			randomdata.CustomRand(rand.New(rand.NewSource(0)))
		})
	}
	for {
		name := randomdata.SillyName()
		if _, exists := (*g)[name]; !exists {
			(*g)[name] = struct{}{}
			return name
		}
	}
}

// Builder assembles one scene graph inside a private arena. All the Add
// methods record intent; finish lays the graph out in engine ABI form.
type Builder struct {
	a     *arena
	flags ai.SceneFlags
	names nameGen

	meshes     []*MeshBuilder
	materials  []*MaterialBuilder
	textures   []*ai.Texture
	lights     []*ai.Light
	cameras    []*ai.Camera
	animations []*AnimBuilder
	meta       []metaSpec
	root       *NodeBuilder
}

func NewBuilder() *Builder {
	return &Builder{a: &arena{}}
}

func (b *Builder) Flags(f ai.SceneFlags) *Builder {
	b.flags = f
	return b
}

// Meta adds a scene metadata entry. Supported value types: bool, int32,
// uint64, float32, float64, string, ai.Vector3.
func (b *Builder) Meta(key string, value any) *Builder {
	b.meta = append(b.meta, metaSpec{key: key, value: value})
	return b
}

// Root returns the root node builder, creating it on first use.
func (b *Builder) Root(name string) *NodeBuilder {
	if b.root == nil {
		b.root = &NodeBuilder{b: b, name: name, transform: ai.Identity4()}
	}
	return b.root
}

// Mesh starts a new mesh. An empty name gets a generated one, the way the
// foreign engine names split meshes.
func (b *Builder) Mesh(name string) *MeshBuilder {
	if name == "" {
		name = b.names.next()
	}
	mb := &MeshBuilder{b: b, name: name}
	b.meshes = append(b.meshes, mb)
	return mb
}

func (b *Builder) Material() *MaterialBuilder {
	mb := &MaterialBuilder{b: b}
	b.materials = append(b.materials, mb)
	return mb
}

// Texture adds an uncompressed embedded texture of w x h texels.
func (b *Builder) Texture(filename string, w, h int, texels ...ai.Texel) *Builder {
	t := alloc[ai.Texture](b.a)
	t.Width = uint32(w)
	t.Height = uint32(h)
	putString(&t.Filename, filename)
	data := allocSlice[ai.Texel](b.a, w*h)
	copy(data, texels)
	if len(data) > 0 {
		t.Data = &data[0]
	}
	b.textures = append(b.textures, t)
	return b
}

// CompressedTexture adds an embedded texture stored as an opaque file
// buffer; hint is the usual lower-case extension.
func (b *Builder) CompressedTexture(filename, hint string, data []byte) *Builder {
	t := alloc[ai.Texture](b.a)
	t.Width = uint32(len(data))
	t.Height = 0
	copy(t.FormatHint[:len(t.FormatHint)-1], hint)
	putString(&t.Filename, filename)
	buf := allocSlice[byte](b.a, len(data))
	copy(buf, data)
	if len(buf) > 0 {
		t.Data = (*ai.Texel)(unsafe.Pointer(&buf[0]))
	}
	b.textures = append(b.textures, t)
	return b
}

// Light adds a light source; l.Name is overwritten from name.
func (b *Builder) Light(name string, l ai.Light) *Builder {
	lp := alloc[ai.Light](b.a)
	*lp = l
	putString(&lp.Name, name)
	b.lights = append(b.lights, lp)
	return b
}

// Camera adds a camera; c.Name is overwritten from name.
func (b *Builder) Camera(name string, c ai.Camera) *Builder {
	cp := alloc[ai.Camera](b.a)
	*cp = c
	putString(&cp.Name, name)
	b.cameras = append(b.cameras, cp)
	return b
}

func (b *Builder) Animation(name string, duration, ticksPerSecond float64) *AnimBuilder {
	ab := &AnimBuilder{b: b, name: name, duration: duration, tps: ticksPerSecond}
	b.animations = append(b.animations, ab)
	return ab
}

// finish lays the whole graph out in ABI form. Called once by the engine.
func (b *Builder) finish() *ai.Scene {
	a := b.a
	s := alloc[ai.Scene](a)
	s.Flags = uint32(b.flags)

	if n := len(b.meshes); n > 0 {
		ptrs := allocSlice[*ai.Mesh](a, n)
		for i, mb := range b.meshes {
			ptrs[i] = mb.finish(a)
		}
		s.Meshes = &ptrs[0]
		s.NumMeshes = uint32(n)
	}
	if n := len(b.materials); n > 0 {
		ptrs := allocSlice[*ai.Material](a, n)
		for i, mb := range b.materials {
			ptrs[i] = mb.finish(a)
		}
		s.Materials = &ptrs[0]
		s.NumMaterials = uint32(n)
	}
	if n := len(b.textures); n > 0 {
		ptrs := allocSlice[*ai.Texture](a, n)
		copy(ptrs, b.textures)
		s.Textures = &ptrs[0]
		s.NumTextures = uint32(n)
	}
	if n := len(b.lights); n > 0 {
		ptrs := allocSlice[*ai.Light](a, n)
		copy(ptrs, b.lights)
		s.Lights = &ptrs[0]
		s.NumLights = uint32(n)
	}
	if n := len(b.cameras); n > 0 {
		ptrs := allocSlice[*ai.Camera](a, n)
		copy(ptrs, b.cameras)
		s.Cameras = &ptrs[0]
		s.NumCameras = uint32(n)
	}
	if n := len(b.animations); n > 0 {
		ptrs := allocSlice[*ai.Animation](a, n)
		for i, ab := range b.animations {
			ptrs[i] = ab.finish(a)
		}
		s.Animations = &ptrs[0]
		s.NumAnimations = uint32(n)
	}
	if len(b.meta) > 0 {
		s.Metadata = finishMeta(a, b.meta)
	}
	if b.root != nil {
		s.RootNode = b.root.finish(a, nil)
	}
	return s
}

// NodeBuilder assembles one node of the hierarchy.
type NodeBuilder struct {
	b         *Builder
	name      string
	transform ai.Matrix4x4
	meshes    []uint32
	children  []*NodeBuilder
	meta      []metaSpec
}

func (nb *NodeBuilder) Child(name string) *NodeBuilder {
	if name == "" {
		name = nb.b.names.next()
	}
	c := &NodeBuilder{b: nb.b, name: name, transform: ai.Identity4()}
	nb.children = append(nb.children, c)
	return c
}

func (nb *NodeBuilder) Transform(m ai.Matrix4x4) *NodeBuilder {
	nb.transform = m
	return nb
}

// Meshes attaches scene mesh indices to this node.
func (nb *NodeBuilder) Meshes(indexes ...uint32) *NodeBuilder {
	nb.meshes = append(nb.meshes, indexes...)
	return nb
}

func (nb *NodeBuilder) Meta(key string, value any) *NodeBuilder {
	nb.meta = append(nb.meta, metaSpec{key: key, value: value})
	return nb
}

func (nb *NodeBuilder) finish(a *arena, parent *ai.Node) *ai.Node {
	n := alloc[ai.Node](a)
	putString(&n.Name, nb.name)
	n.Transformation = nb.transform
	n.Parent = parent
	if len(nb.meshes) > 0 {
		idx := allocSlice[uint32](a, len(nb.meshes))
		copy(idx, nb.meshes)
		n.Meshes = &idx[0]
		n.NumMeshes = uint32(len(idx))
	}
	if len(nb.meta) > 0 {
		n.Metadata = finishMeta(a, nb.meta)
	}
	if len(nb.children) > 0 {
		kids := allocSlice[*ai.Node](a, len(nb.children))
		for i, cb := range nb.children {
			kids[i] = cb.finish(a, n)
		}
		n.Children = &kids[0]
		n.NumChildren = uint32(len(kids))
	}
	return n
}

type metaSpec struct {
	key   string
	value any
}

func finishMeta(a *arena, specs []metaSpec) *ai.Metadata {
	md := alloc[ai.Metadata](a)
	keys := allocSlice[ai.String](a, len(specs))
	vals := allocSlice[ai.MetadataEntry](a, len(specs))
	for i, spec := range specs {
		putString(&keys[i], spec.key)
		switch v := spec.value.(type) {
		case bool:
			p := alloc[uint8](a)
			if v {
				*p = 1
			}
			vals[i] = ai.MetadataEntry{Type: uint32(ai.MetaBool), Data: unsafe.Pointer(p)}
		case int32:
			p := alloc[int32](a)
			*p = v
			vals[i] = ai.MetadataEntry{Type: uint32(ai.MetaInt32), Data: unsafe.Pointer(p)}
		case uint64:
			p := alloc[uint64](a)
			*p = v
			vals[i] = ai.MetadataEntry{Type: uint32(ai.MetaUint64), Data: unsafe.Pointer(p)}
		case float32:
			p := alloc[float32](a)
			*p = v
			vals[i] = ai.MetadataEntry{Type: uint32(ai.MetaFloat), Data: unsafe.Pointer(p)}
		case float64:
			p := alloc[float64](a)
			*p = v
			vals[i] = ai.MetadataEntry{Type: uint32(ai.MetaDouble), Data: unsafe.Pointer(p)}
		case string:
			p := alloc[ai.String](a)
			putString(p, v)
			vals[i] = ai.MetadataEntry{Type: uint32(ai.MetaString), Data: unsafe.Pointer(p)}
		case ai.Vector3:
			p := alloc[ai.Vector3](a)
			*p = v
			vals[i] = ai.MetadataEntry{Type: uint32(ai.MetaVector3D), Data: unsafe.Pointer(p)}
		default:
			panic("memscene: unsupported metadata value type")
		}
	}
	md.Keys = &keys[0]
	md.Values = &vals[0]
	md.NumProperties = uint32(len(specs))
	return md
}

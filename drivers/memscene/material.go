package memscene

import (
	"unsafe"

	"github.com/SaladDais/Impasse/ai"
)

// MaterialBuilder assembles one material as an ordered property list.
type MaterialBuilder struct {
	b     *Builder
	props []propSpec
}

type propSpec struct {
	key      string
	semantic ai.TextureSemantic
	index    uint32
	typ      ai.PropertyType
	value    any
}

// Name sets the canonical "?mat.name" string property.
func (mb *MaterialBuilder) Name(name string) *MaterialBuilder {
	return mb.String(ai.MatKeyName, ai.SemanticNone, name)
}

func (mb *MaterialBuilder) Floats(key string, semantic ai.TextureSemantic, values ...float32) *MaterialBuilder {
	mb.props = append(mb.props, propSpec{key, semantic, 0, ai.PropertyFloat, values})
	return mb
}

func (mb *MaterialBuilder) Doubles(key string, semantic ai.TextureSemantic, values ...float64) *MaterialBuilder {
	mb.props = append(mb.props, propSpec{key, semantic, 0, ai.PropertyDouble, values})
	return mb
}

func (mb *MaterialBuilder) Ints(key string, semantic ai.TextureSemantic, values ...int32) *MaterialBuilder {
	mb.props = append(mb.props, propSpec{key, semantic, 0, ai.PropertyInt, values})
	return mb
}

func (mb *MaterialBuilder) String(key string, semantic ai.TextureSemantic, value string) *MaterialBuilder {
	mb.props = append(mb.props, propSpec{key, semantic, 0, ai.PropertyString, value})
	return mb
}

func (mb *MaterialBuilder) Binary(key string, semantic ai.TextureSemantic, data []byte) *MaterialBuilder {
	mb.props = append(mb.props, propSpec{key, semantic, 0, ai.PropertyBinary, data})
	return mb
}

// Bool stores the one-byte binary property shape the engine uses for
// boolean material settings.
func (mb *MaterialBuilder) Bool(key string, value bool) *MaterialBuilder {
	v := byte(0)
	if value {
		v = 1
	}
	return mb.Binary(key, ai.SemanticNone, []byte{v})
}

// TextureRef stores an embedded-texture reference for the given semantic.
// ref follows the engine convention: 0 means "no texture", i means scene
// texture i-1.
func (mb *MaterialBuilder) TextureRef(semantic ai.TextureSemantic, ref int32) *MaterialBuilder {
	return mb.Ints(ai.MatKeyTexture, semantic, ref)
}

func (mb *MaterialBuilder) finish(a *arena) *ai.Material {
	m := alloc[ai.Material](a)
	if len(mb.props) == 0 {
		return m
	}
	ptrs := allocSlice[*ai.MaterialProperty](a, len(mb.props))
	for i, spec := range mb.props {
		p := alloc[ai.MaterialProperty](a)
		putString(&p.Key, spec.key)
		p.Semantic = uint32(spec.semantic)
		p.Index = spec.index
		p.Type = uint32(spec.typ)

		switch v := spec.value.(type) {
		case []float32:
			s := allocSlice[float32](a, len(v))
			copy(s, v)
			p.Data = bytesPtr(s)
			p.DataLength = uint32(len(v) * 4)
		case []float64:
			s := allocSlice[float64](a, len(v))
			copy(s, v)
			p.Data = bytesPtr(s)
			p.DataLength = uint32(len(v) * 8)
		case []int32:
			s := allocSlice[int32](a, len(v))
			copy(s, v)
			p.Data = bytesPtr(s)
			p.DataLength = uint32(len(v) * 4)
		case string:
			// Length-prefixed property string: u32 byte length, payload,
			// terminating NUL.
			buf := allocSlice[byte](a, 4+len(v)+1)
			*(*uint32)(unsafe.Pointer(&buf[0])) = uint32(len(v))
			copy(buf[4:], v)
			p.Data = &buf[0]
			p.DataLength = uint32(len(buf))
		case []byte:
			buf := allocSlice[byte](a, len(v))
			copy(buf, v)
			p.Data = bytesPtr(buf)
			p.DataLength = uint32(len(v))
		default:
			panic("memscene: unsupported material property value type")
		}
		ptrs[i] = p
	}
	m.Properties = &ptrs[0]
	m.NumProperties = uint32(len(ptrs))
	m.NumAllocated = uint32(len(ptrs))
	return m
}

package impasse

import (
	"unsafe"

	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Material is a view over one aiMaterial, a bag of typed properties keyed
// by (name, texture semantic, index).
type Material struct{ h adapt.Handle }

func (m Material) raw() *ai.Material { return (*ai.Material)(m.h.Ptr()) }

func (m Material) Nil() bool { return m.h.Nil() }

func (m Material) Handle() adapt.Handle { return m.h }

func (m Material) Properties() adapt.Seq[MaterialProperty] {
	r := m.raw()
	return adapt.NewDynPtrSeq(
		m.h.AtPtr(unsafe.Pointer(r.Properties)), &r.NumProperties,
		func(h adapt.Handle) MaterialProperty { return MaterialProperty{h: h} }, nil)
}

func (m Material) Map() MaterialMap { return MaterialMap{mat: m} }

// Name is shorthand for the "?mat.name" property.
func (m Material) Name() string {
	v, err := m.Map().Get(ai.MatKeyName)
	if err != nil {
		return ""
	}
	s, _ := v.(string)
	return s
}

// MaterialProperty is a tagged value plus its lookup key. Its payload is
// interpreted according to the property type tag.
type MaterialProperty struct{ h adapt.Handle }

func (p MaterialProperty) raw() *ai.MaterialProperty { return (*ai.MaterialProperty)(p.h.Ptr()) }

func (p MaterialProperty) Key() string { return goString(&p.raw().Key) }

func (p MaterialProperty) Semantic() ai.TextureSemantic {
	return ai.TextureSemantic(p.raw().Semantic)
}

func (p MaterialProperty) Index() uint32 { return p.raw().Index }

func (p MaterialProperty) Type() ai.PropertyType { return ai.PropertyType(p.raw().Type) }

func (p MaterialProperty) DataLength() uint32 { return p.raw().DataLength }

func (p MaterialProperty) data() (adapt.Handle, error) {
	r := p.raw()
	if r.Data == nil {
		return adapt.Handle{}, errors.Wrapf(adapt.ErrNotFound, "property %q has no payload", p.Key())
	}
	return p.h.AtPtr(unsafe.Pointer(r.Data)), nil
}

func numElems(p *ai.MaterialProperty, elemSize uint32) int {
	return int(p.DataLength / elemSize)
}

// Value decodes the payload according to the type tag. Multi-element
// numeric payloads come back as live Block views; single-element ones are
// unwrapped to plain scalars, following the engine's own accessor
// conventions.
func (p MaterialProperty) Value() (any, error) {
	h, err := p.data()
	if err != nil {
		return nil, err
	}
	r := p.raw()
	switch p.Type() {
	case ai.PropertyFloat:
		n := numElems(r, 4)
		if n == 1 {
			return *(*float32)(h.Ptr()), nil
		}
		return adapt.NewBlock[float32](h, 1, n), nil
	case ai.PropertyDouble:
		n := numElems(r, 8)
		if n == 1 {
			return *(*float64)(h.Ptr()), nil
		}
		return adapt.NewBlock[float64](h, 1, n), nil
	case ai.PropertyInt:
		n := numElems(r, 4)
		if n == 1 {
			return *(*int32)(h.Ptr()), nil
		}
		return adapt.NewBlock[int32](h, 1, n), nil
	case ai.PropertyString:
		return decodePropString(h, r), nil
	case ai.PropertyBinary:
		raw := unsafe.Slice((*byte)(h.Ptr()), r.DataLength)
		if r.DataLength == 1 {
			return raw[0], nil
		}
		out := make([]byte, len(raw))
		copy(out, raw)
		return out, nil
	}
	return nil, errors.Wrapf(adapt.ErrUnknownTag, "property type %d for %q", p.Type(), p.Key())
}

// Property string payloads embed a u32 length prefix, the bytes, and a
// trailing NUL.
func decodePropString(h adapt.Handle, r *ai.MaterialProperty) string {
	if r.DataLength < 5 {
		return ""
	}
	n := *(*uint32)(h.Ptr())
	if n > r.DataLength-5 {
		n = r.DataLength - 5
	}
	raw := unsafe.Slice((*byte)(unsafe.Add(h.Ptr(), 4)), n)
	return adapt.LossyString(raw)
}

// SetValue encodes v into the existing payload. The value's Go type and
// element count must match the stored ones; the buffer is never
// reallocated. Strings may shrink but not grow past the original
// allocation.
func (p MaterialProperty) SetValue(v any) error {
	if err := p.h.CheckWrite(); err != nil {
		return err
	}
	h, err := p.data()
	if err != nil {
		return err
	}
	r := p.raw()
	switch p.Type() {
	case ai.PropertyFloat:
		return setNumericProp[float32](h, r, v, 4)
	case ai.PropertyDouble:
		return setNumericProp[float64](h, r, v, 8)
	case ai.PropertyInt:
		return setNumericProp[int32](h, r, v, 4)
	case ai.PropertyString:
		s, ok := v.(string)
		if !ok {
			return badPropValue(p, v)
		}
		return setPropString(h, r, s)
	case ai.PropertyBinary:
		var raw []byte
		switch b := v.(type) {
		case []byte:
			raw = b
		case byte:
			raw = []byte{b}
		case bool:
			raw = []byte{0}
			if b {
				raw[0] = 1
			}
		default:
			return badPropValue(p, v)
		}
		if len(raw) != int(r.DataLength) {
			return errors.Wrapf(adapt.ErrShapeMismatch,
				"property %q holds %d bytes, got %d", p.Key(), r.DataLength, len(raw))
		}
		copy(unsafe.Slice((*byte)(h.Ptr()), r.DataLength), raw)
		return nil
	}
	return errors.Wrapf(adapt.ErrUnknownTag, "property type %d for %q", p.Type(), p.Key())
}

func setNumericProp[E float32 | float64 | int32](h adapt.Handle, r *ai.MaterialProperty, v any, elemSize uint32) error {
	n := numElems(r, elemSize)
	var vals []E
	switch x := v.(type) {
	case E:
		vals = []E{x}
	case []E:
		vals = x
	default:
		return errors.Wrapf(adapt.ErrShapeMismatch,
			"%T is not assignable to a %d-element property", v, n)
	}
	return adapt.NewBlock[E](h, 1, n).Set(vals...)
}

func setPropString(h adapt.Handle, r *ai.MaterialProperty, s string) error {
	need := uint32(4 + len(s) + 1)
	if need > r.DataLength {
		return errors.Wrapf(adapt.ErrShapeMismatch,
			"string of %d bytes does not fit %d byte property buffer", len(s), r.DataLength)
	}
	*(*uint32)(h.Ptr()) = uint32(len(s))
	buf := unsafe.Slice((*byte)(unsafe.Add(h.Ptr(), 4)), len(s)+1)
	copy(buf, s)
	buf[len(s)] = 0
	r.DataLength = need
	return nil
}

func badPropValue(p MaterialProperty, v any) error {
	return errors.Wrapf(adapt.ErrShapeMismatch,
		"%T is not assignable to property %q of type %d", v, p.Key(), p.Type())
}

// MaterialKey identifies a property within its material.
type MaterialKey struct {
	Name     string
	Semantic ai.TextureSemantic
	Index    uint32
}

// MaterialMap is a map-like facade over a material's property list. Lookup
// is a linear scan in storage order; the first match wins.
type MaterialMap struct{ mat Material }

func (m MaterialMap) Len() int { return m.mat.Properties().Len() }

func (m MaterialMap) Keys() []MaterialKey {
	props := m.mat.Properties()
	out := make([]MaterialKey, 0, props.Len())
	for i, n := 0, props.Len(); i < n; i++ {
		p := props.At(i)
		out = append(out, MaterialKey{Name: p.Key(), Semantic: p.Semantic(), Index: p.Index()})
	}
	return out
}

// Property returns the first property matching name and semantic.
func (m MaterialMap) Property(name string, sem ai.TextureSemantic) (MaterialProperty, error) {
	props := m.mat.Properties()
	for i, n := 0, props.Len(); i < n; i++ {
		p := props.At(i)
		if p.Key() == name && p.Semantic() == sem {
			return p, nil
		}
	}
	return MaterialProperty{}, errors.Wrapf(adapt.ErrNotFound,
		"material property %q semantic %d", name, sem)
}

// Get decodes the plain (semantic-less) property named name.
func (m MaterialMap) Get(name string) (any, error) {
	return m.GetSemantic(name, ai.SemanticNone)
}

func (m MaterialMap) GetSemantic(name string, sem ai.TextureSemantic) (any, error) {
	p, err := m.Property(name, sem)
	if err != nil {
		return nil, err
	}
	return p.Value()
}

// Set overwrites the value of an existing property. Properties cannot be
// added through the facade, so a missing key is an error.
func (m MaterialMap) Set(name string, v any) error {
	return m.SetSemantic(name, ai.SemanticNone, v)
}

func (m MaterialMap) SetSemantic(name string, sem ai.TextureSemantic, v any) error {
	p, err := m.Property(name, sem)
	if err != nil {
		return err
	}
	return p.SetValue(v)
}

// Each visits properties in storage order until fn returns false.
func (m MaterialMap) Each(fn func(key MaterialKey, p MaterialProperty) bool) {
	props := m.mat.Properties()
	for i, n := 0, props.Len(); i < n; i++ {
		p := props.At(i)
		if !fn(MaterialKey{Name: p.Key(), Semantic: p.Semantic(), Index: p.Index()}, p) {
			return
		}
	}
}

// Texture resolves the one-based embedded texture reference stored under
// key for the given semantic slot.
func (m MaterialMap) Texture(key string, sem ai.TextureSemantic) (Texture, error) {
	v, err := m.GetSemantic(key, sem)
	if err != nil {
		return Texture{}, err
	}
	ref, ok := v.(int32)
	if !ok {
		return Texture{}, errors.Wrapf(adapt.ErrShapeMismatch,
			"property %q is not a texture reference", key)
	}
	return sceneOf(m.mat.h).TextureByRef(uint32(ref))
}

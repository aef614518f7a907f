package impasse

import (
	"unsafe"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Metadata is a view over an aiMetadata table: parallel key and value
// arrays sharing one counter.
type Metadata struct{ h adapt.Handle }

func (m Metadata) raw() *ai.Metadata { return (*ai.Metadata)(m.h.Ptr()) }

func (m Metadata) Nil() bool { return m.h.Nil() }

func (m Metadata) Len() int {
	if m.Nil() {
		return 0
	}
	return m.Keys().Len()
}

func (m Metadata) Keys() adapt.Seq[string] {
	r := m.raw()
	return adapt.NewDynSeq(
		m.h.AtPtr(unsafe.Pointer(r.Keys)), &r.NumProperties,
		unsafe.Sizeof(ai.String{}), decodeString, nil)
}

func (m Metadata) Entries() adapt.Seq[MetadataEntry] {
	r := m.raw()
	return adapt.NewDynSeq(
		m.h.AtPtr(unsafe.Pointer(r.Values)), &r.NumProperties,
		unsafe.Sizeof(ai.MetadataEntry{}),
		func(h adapt.Handle) MetadataEntry { return MetadataEntry{h: h} }, nil)
}

func (m Metadata) Map() MetadataMap { return MetadataMap{md: m} }

// MetadataEntry is a tagged value. Its payload type is selected by the
// entry's type tag.
type MetadataEntry struct{ h adapt.Handle }

func (e MetadataEntry) raw() *ai.MetadataEntry { return (*ai.MetadataEntry)(e.h.Ptr()) }

func (e MetadataEntry) Type() ai.MetadataType { return ai.MetadataType(e.raw().Type) }

func (e MetadataEntry) payload(h adapt.Handle) (adapt.Handle, error) {
	p := e.raw().Data
	if p == nil {
		return adapt.Handle{}, errors.Wrap(adapt.ErrNotFound, "metadata entry has no payload")
	}
	return h.AtPtr(p), nil
}

// Value decodes the payload according to the type tag. Vector payloads come
// back as a live Vector3View; everything else as a Go scalar or string.
func (e MetadataEntry) Value() (any, error) {
	h, err := e.payload(e.h)
	if err != nil {
		return nil, err
	}
	switch e.Type() {
	case ai.MetaBool:
		return *(*uint8)(h.Ptr()) != 0, nil
	case ai.MetaInt32:
		return *(*int32)(h.Ptr()), nil
	case ai.MetaUint64:
		return *(*uint64)(h.Ptr()), nil
	case ai.MetaFloat:
		return *(*float32)(h.Ptr()), nil
	case ai.MetaDouble:
		return *(*float64)(h.Ptr()), nil
	case ai.MetaString:
		return goString((*ai.String)(h.Ptr())), nil
	case ai.MetaVector3D:
		return newVector3View(h), nil
	}
	return nil, errors.Wrapf(adapt.ErrUnknownTag, "metadata type %d", e.Type())
}

// SetValue encodes v into the existing payload. The value's Go type must
// match the entry's tag; the tag itself never changes.
func (e MetadataEntry) SetValue(v any) error {
	if err := e.h.CheckWrite(); err != nil {
		return err
	}
	h, err := e.payload(e.h)
	if err != nil {
		return err
	}
	switch e.Type() {
	case ai.MetaBool:
		b, ok := v.(bool)
		if !ok {
			return badMetaValue(e.Type(), v)
		}
		var raw uint8
		if b {
			raw = 1
		}
		*(*uint8)(h.Ptr()) = raw
	case ai.MetaInt32:
		n, ok := v.(int32)
		if !ok {
			return badMetaValue(e.Type(), v)
		}
		*(*int32)(h.Ptr()) = n
	case ai.MetaUint64:
		n, ok := v.(uint64)
		if !ok {
			return badMetaValue(e.Type(), v)
		}
		*(*uint64)(h.Ptr()) = n
	case ai.MetaFloat:
		f, ok := v.(float32)
		if !ok {
			return badMetaValue(e.Type(), v)
		}
		*(*float32)(h.Ptr()) = f
	case ai.MetaDouble:
		f, ok := v.(float64)
		if !ok {
			return badMetaValue(e.Type(), v)
		}
		*(*float64)(h.Ptr()) = f
	case ai.MetaString:
		s, ok := v.(string)
		if !ok {
			return badMetaValue(e.Type(), v)
		}
		return setAIString(h, (*ai.String)(h.Ptr()), s)
	case ai.MetaVector3D:
		vec, ok := v.(mgl32.Vec3)
		if !ok {
			return badMetaValue(e.Type(), v)
		}
		return newVector3View(h).SetVec3(vec)
	default:
		return errors.Wrapf(adapt.ErrUnknownTag, "metadata type %d", e.Type())
	}
	return nil
}

func badMetaValue(t ai.MetadataType, v any) error {
	return errors.Wrapf(adapt.ErrShapeMismatch, "%T is not assignable to metadata type %d", v, t)
}

// MetadataMap is a map-like facade over a metadata table. Lookup is a
// linear scan over the key array; the first match wins.
type MetadataMap struct{ md Metadata }

func (m MetadataMap) Len() int { return m.md.Len() }

func (m MetadataMap) Keys() []string {
	if m.md.Nil() {
		return nil
	}
	return m.md.Keys().All()
}

func (m MetadataMap) entry(key string) (MetadataEntry, bool) {
	if m.md.Nil() {
		return MetadataEntry{}, false
	}
	keys := m.md.Keys()
	for i, n := 0, keys.Len(); i < n; i++ {
		if keys.At(i) == key {
			return m.md.Entries().At(i), true
		}
	}
	return MetadataEntry{}, false
}

// Get returns the decoded value for key.
func (m MetadataMap) Get(key string) (any, error) {
	e, ok := m.entry(key)
	if !ok {
		return nil, errors.Wrapf(adapt.ErrNotFound, "metadata key %q", key)
	}
	return e.Value()
}

// Set overwrites the value of an existing key. Keys cannot be added, so a
// missing key is an error.
func (m MetadataMap) Set(key string, v any) error {
	e, ok := m.entry(key)
	if !ok {
		return errors.Wrapf(adapt.ErrNotFound, "metadata key %q", key)
	}
	return e.SetValue(v)
}

// Each visits entries in storage order until fn returns false.
func (m MetadataMap) Each(fn func(key string, e MetadataEntry) bool) {
	if m.md.Nil() {
		return
	}
	keys, entries := m.md.Keys(), m.md.Entries()
	for i, n := 0, keys.Len(); i < n; i++ {
		if !fn(keys.At(i), entries.At(i)) {
			return
		}
	}
}

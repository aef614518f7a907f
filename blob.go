package impasse

import (
	"unsafe"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
	"github.com/SaladDais/Impasse/engine"
)

// BlobSet owns one exported blob chain. The head blob is unnamed and holds
// the primary output; later blobs carry auxiliary files under their names.
type BlobSet struct {
	scope *adapt.Scope
}

func newBlobSet(head *ai.ExportDataBlob, eng engine.Engine) *BlobSet {
	scope := adapt.NewScope(unsafe.Pointer(head), true, func() {
		eng.ReleaseBlob(head)
	})
	return &BlobSet{scope: scope}
}

func (bs *BlobSet) Head() Blob {
	return Blob{h: adapt.NewHandle(bs.scope.Root(), bs.scope)}
}

// Blobs walks the chain into a slice of views.
func (bs *BlobSet) Blobs() []Blob {
	var out []Blob
	for b := bs.Head(); !b.Nil(); b = b.Next() {
		out = append(out, b)
	}
	return out
}

// Release frees the whole chain immediately.
func (bs *BlobSet) Release() { bs.scope.Release() }

// Blob is a view over one node of an export blob chain.
type Blob struct{ h adapt.Handle }

func (b Blob) raw() *ai.ExportDataBlob { return (*ai.ExportDataBlob)(b.h.Ptr()) }

func (b Blob) Nil() bool { return b.h.Nil() }

func (b Blob) Name() string { return goString(&b.raw().Name) }

func (b Blob) Size() uint64 { return b.raw().Size }

// Data copies out the blob payload.
func (b Blob) Data() []byte {
	r := b.raw()
	if r.Data == nil || r.Size == 0 {
		return nil
	}
	raw := unsafe.Slice((*byte)(r.Data), r.Size)
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

func (b Blob) Next() Blob {
	return Blob{h: b.h.AtPtr(unsafe.Pointer(b.raw().Next))}
}

package memscene

import (
	"unsafe"

	"github.com/SaladDais/Impasse/ai"
)

// arena pins every allocation that backs one scene graph. Raw pointers to
// these objects circulate through the adapter layer as if they were foreign
// memory; as long as the arena lives, the Go runtime will not move or
// reclaim them. The engine drops the arena when the scene is released.
type arena struct {
	pins []any
}

func (a *arena) pin(v any) { a.pins = append(a.pins, v) }

func alloc[T any](a *arena) *T {
	v := new(T)
	a.pin(v)
	return v
}

// allocSlice returns a pinned contiguous run of n elements, or nil for
// n == 0 so empty arrays stay null pointers like the engine produces.
func allocSlice[T any](a *arena, n int) []T {
	if n == 0 {
		return nil
	}
	s := make([]T, n)
	a.pin(s)
	return s
}

// bytesPtr returns the base pointer of a pinned byte-addressable slice.
func bytesPtr[T any](s []T) *byte {
	if len(s) == 0 {
		return nil
	}
	return (*byte)(unsafe.Pointer(&s[0]))
}

func putString(dst *ai.String, v string) {
	n := copy(dst.Data[:ai.MaxStringBytes-1], v)
	dst.Data[n] = 0
	dst.Length = uint32(n)
}

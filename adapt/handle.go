package adapt

import (
	"unsafe"

	"github.com/pkg/errors"
)

// Handle is a non-owning view of one foreign struct. It remembers the
// owning scope so the allocation outlives the handle, and the read-only
// flag captured from the scope at derivation time.
//
// Two handles are the same struct iff their pointers are equal; the scope
// takes no part in identity.
type Handle struct {
	ptr      unsafe.Pointer
	scope    *Scope
	readonly bool
}

// NewHandle derives a handle inside scope. The read-only flag is captured
// here and holds for the handle's whole life.
func NewHandle(ptr unsafe.Pointer, scope *Scope) Handle {
	ro := false
	if scope != nil {
		ro = scope.Readonly()
	}
	return Handle{ptr: ptr, scope: scope, readonly: ro}
}

func (h Handle) Ptr() unsafe.Pointer { return h.ptr }

// Scope returns the ownership root. Never nil for a handle derived from a
// live scene.
func (h Handle) Scope() *Scope { return h.scope }

func (h Handle) Readonly() bool { return h.readonly }

// Nil reports whether the handle wraps a null foreign pointer.
func (h Handle) Nil() bool { return h.ptr == nil }

// Eq is pointer identity: true iff both handles view the same address,
// regardless of which scope they were derived through.
func (h Handle) Eq(other Handle) bool { return h.ptr == other.ptr }

// CheckWrite returns ErrReadOnly when the handle was derived from a
// read-only scope. Every mutation path calls this before touching memory.
func (h Handle) CheckWrite() error {
	if h.readonly {
		return errors.WithStack(ErrReadOnly)
	}
	return nil
}

// Field derives a handle to a field at the given byte offset inside this
// struct. Same scope, same read-only flag.
func (h Handle) Field(offset uintptr) Handle {
	n := h
	n.ptr = unsafe.Add(h.ptr, offset)
	return n
}

// AtPtr derives a handle to another address in the same scope, used when a
// field already holds the target pointer.
func (h Handle) AtPtr(p unsafe.Pointer) Handle {
	n := h
	n.ptr = p
	return n
}

// Package adapt is the zero-copy machinery under the typed scene wrappers:
// ownership scopes, struct handles, sequence views over foreign arrays and
// numeric block views aliased onto foreign memory.
//
// The ownership model runs one way only. Every handle and view derived from
// a root keeps a strong reference to that root's Scope; the Scope never
// tracks its children. Foreign memory therefore stays valid for as long as
// any view into it is reachable, and is released only by an explicit
// Release (or by the finalizer once nothing at all references the Scope).
//
// Nothing in this package locks. A scope and everything derived from it
// belong to a single logical owner at a time.
package adapt

import (
	"runtime"
	"unsafe"
)

// Scope is the ownership root for one foreign allocation graph: it knows
// how to release the graph and whether the graph may be written through.
//
// The read-only flag is fixed at construction. Handles copy it when they
// are derived and never consult the scope again.
type Scope struct {
	root     unsafe.Pointer
	release  func()
	readonly bool
	released bool
}

// NewScope wraps a foreign root allocation. release is the engine call
// that frees it; it runs at most once. A finalizer mirrors the engine
// binding convention that an unreachable root with no surviving views is
// eventually released even without an explicit Release call.
func NewScope(root unsafe.Pointer, readonly bool, release func()) *Scope {
	s := &Scope{root: root, release: release, readonly: readonly}
	if release != nil {
		runtime.SetFinalizer(s, (*Scope).Release)
	}
	return s
}

// Root returns the root allocation this scope owns. Views use it to
// re-derive the owning wrapper when the caller kept nothing else alive.
func (s *Scope) Root() unsafe.Pointer { return s.root }

func (s *Scope) Readonly() bool { return s.readonly }

// Released reports whether the foreign memory has been handed back.
func (s *Scope) Released() bool { return s.released }

// Release frees the foreign graph. Idempotent. Any handle or view still
// pointing into the graph is invalid afterwards; that discipline is the
// caller's, not detected here.
func (s *Scope) Release() {
	if s.released {
		return
	}
	s.released = true
	runtime.SetFinalizer(s, nil)
	if s.release != nil {
		s.release()
	}
}

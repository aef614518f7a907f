package adapt

import "github.com/pkg/errors"

// The failure kinds of the adapter layer. Everything returned from this
// package and the wrappers above it wraps one of these, so callers can
// classify with errors.Is.
var (
	// ErrNotFound: a mapping key is absent or a cross-reference index does
	// not land inside its target collection.
	ErrNotFound = errors.New("not found")

	// ErrReadOnly: a write was attempted through a handle whose owning
	// scope was read-only when the handle was derived.
	ErrReadOnly = errors.New("scope is read-only")

	// ErrShapeMismatch: an encode was handed a value whose element count,
	// width or byte length does not exactly match the destination block.
	// Nothing is written when this is returned.
	ErrShapeMismatch = errors.New("value shape does not match destination")

	// ErrUnknownTag: a tagged union carried a type tag this layer does not
	// know. Never coerced, never guessed.
	ErrUnknownTag = errors.New("unknown type tag")

	// ErrEngineFailed: the foreign engine signalled failure on one of its
	// four operations.
	ErrEngineFailed = errors.New("foreign engine call failed")
)

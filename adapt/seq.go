package adapt

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

const ptrSize = unsafe.Sizeof(uintptr(0))

// Seq is a lazy, indexable view over a contiguous foreign array. Elements
// decode on access through the element codec; nothing is materialized until
// asked for.
//
// Two storage layouts exist: inline (the array holds the element structs
// themselves, walked by stride) and indirect (the array holds pointers to
// the elements). Two length sources exist: a counter field elsewhere in the
// parent struct, re-read on every Len call so structural edits are
// observed, or a fixed bound, optionally cut short at the first nil
// pointer slot.
type Seq[T any] struct {
	base     Handle
	count    *uint32
	fixed    int
	sentinel bool
	stride   uintptr
	indirect bool
	decode   func(Handle) T
	encode   func(Handle, T) error
}

// NewDynSeq views a dynamic inline array. count points at the sibling
// counter field; stride is the element size.
func NewDynSeq[T any](base Handle, count *uint32, stride uintptr, decode func(Handle) T, encode func(Handle, T) error) Seq[T] {
	return Seq[T]{base: base, count: count, stride: stride, decode: decode, encode: encode}
}

// NewDynPtrSeq views a dynamic array of pointers. Decode receives a handle
// to the pointee; encode receives a handle to the slot itself.
func NewDynPtrSeq[T any](base Handle, count *uint32, decode func(Handle) T, encode func(Handle, T) error) Seq[T] {
	return Seq[T]{base: base, count: count, stride: ptrSize, indirect: true, decode: decode, encode: encode}
}

// NewFixedSeq views an inline array with a compile-time bound.
func NewFixedSeq[T any](base Handle, size int, stride uintptr, decode func(Handle) T, encode func(Handle, T) error) Seq[T] {
	return Seq[T]{base: base, fixed: size, stride: stride, decode: decode, encode: encode}
}

// NewFixedPtrSeq views a fixed array of pointer slots. With sentinel set,
// the logical length ends at the first nil slot, the convention used for
// the eight vertex color and texture coordinate channels.
func NewFixedPtrSeq[T any](base Handle, size int, sentinel bool, decode func(Handle) T, encode func(Handle, T) error) Seq[T] {
	return Seq[T]{base: base, fixed: size, sentinel: sentinel, stride: ptrSize, indirect: true, decode: decode, encode: encode}
}

// Scope returns the ownership root the sequence keeps alive.
func (s Seq[T]) Scope() *Scope { return s.base.Scope() }

func (s Seq[T]) slot(i int) unsafe.Pointer {
	return unsafe.Add(s.base.Ptr(), uintptr(i)*s.stride)
}

func (s Seq[T]) slotPointee(i int) unsafe.Pointer {
	return *(*unsafe.Pointer)(s.slot(i))
}

// Len re-derives the current logical length. A nil backing pointer always
// means empty for dynamic sequences, even when the sibling counter says
// otherwise; the counter may be stale relative to a cleared array.
func (s Seq[T]) Len() int {
	if s.base.Nil() {
		return 0
	}
	if s.count != nil {
		return int(*s.count)
	}
	if s.sentinel {
		for i := 0; i < s.fixed; i++ {
			if s.slotPointee(i) == nil {
				return i
			}
		}
	}
	return s.fixed
}

// At decodes element i. Out-of-range access panics like a slice index;
// the bound is the current Len, never a cached one.
func (s Seq[T]) At(i int) T {
	n := s.Len()
	if i < 0 || i >= n {
		panic(fmt.Sprintf("adapt: sequence index %d out of range [0:%d)", i, n))
	}
	h := s.base
	if s.indirect {
		h.ptr = s.slotPointee(i)
	} else {
		h.ptr = s.slot(i)
	}
	return s.decode(h)
}

// Set encodes value into element i's slot. Fails before touching memory if
// the owning scope is read-only, the index is out of range, or the element
// codec rejects the value's shape.
func (s Seq[T]) Set(i int, value T) error {
	if err := s.base.CheckWrite(); err != nil {
		return err
	}
	if s.encode == nil {
		return errors.Errorf("adapt: sequence of %T does not support assignment", value)
	}
	n := s.Len()
	if i < 0 || i >= n {
		return errors.Errorf("adapt: sequence index %d out of range [0:%d)", i, n)
	}
	h := s.base
	h.ptr = s.slot(i)
	return s.encode(h, value)
}

// Slice materializes the half-open range [a, b) as a decoded Go slice.
// Unlike At, the result no longer tracks the foreign array.
func (s Seq[T]) Slice(a, b int) []T {
	n := s.Len()
	if a < 0 || b < a || b > n {
		panic(fmt.Sprintf("adapt: sequence range [%d:%d] out of range [0:%d)", a, b, n))
	}
	out := make([]T, 0, b-a)
	for i := a; i < b; i++ {
		out = append(out, s.At(i))
	}
	return out
}

// All materializes the whole sequence.
func (s Seq[T]) All() []T { return s.Slice(0, s.Len()) }

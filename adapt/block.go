package adapt

import (
	"fmt"
	"unsafe"

	"github.com/pkg/errors"
)

// Block is a numeric array view aliased directly onto a fixed-size foreign
// block: vectors, matrices, colors, pixel runs. Reads and writes go
// straight to the foreign memory; the block holds its scope so the memory
// cannot be released out from under it.
//
// Shape is rows by cols. A vector is 1 x n; a matrix is n x n;
// uncompressed texels are height x (width*4) bytes.
type Block[E any] struct {
	h          Handle
	elems      []E
	rows, cols int
}

// NewBlock aliases rows*cols elements of type E at the handle's address.
func NewBlock[E any](h Handle, rows, cols int) Block[E] {
	return Block[E]{
		h:     h,
		elems: unsafe.Slice((*E)(h.Ptr()), rows*cols),
		rows:  rows,
		cols:  cols,
	}
}

// Scope returns the ownership root the view keeps alive. A caller holding
// only the view can re-derive the root wrapper from it.
func (b Block[E]) Scope() *Scope { return b.h.Scope() }

func (b Block[E]) Readonly() bool { return b.h.Readonly() }

func (b Block[E]) Len() int  { return len(b.elems) }
func (b Block[E]) Rows() int { return b.rows }
func (b Block[E]) Cols() int { return b.cols }

// At reads element i of the flattened block.
func (b Block[E]) At(i int) E { return b.elems[i] }

// AtRC reads the element at row r, column c.
func (b Block[E]) AtRC(r, c int) E {
	if r < 0 || r >= b.rows || c < 0 || c >= b.cols {
		panic(fmt.Sprintf("adapt: block index (%d,%d) out of range %dx%d", r, c, b.rows, b.cols))
	}
	return b.elems[r*b.cols+c]
}

// Values copies the block out into an ordinary Go slice.
func (b Block[E]) Values() []E {
	out := make([]E, len(b.elems))
	copy(out, b.elems)
	return out
}

// Set overwrites the whole block. The value count must exactly equal the
// block's element count; nothing is written on a mismatch or when the
// owning scope is read-only.
func (b Block[E]) Set(values ...E) error {
	if err := b.h.CheckWrite(); err != nil {
		return err
	}
	if len(values) != len(b.elems) {
		return errors.Wrapf(ErrShapeMismatch, "%d values into %d-element block", len(values), len(b.elems))
	}
	copy(b.elems, values)
	return nil
}

// SetAt overwrites a single element.
func (b Block[E]) SetAt(i int, value E) error {
	if err := b.h.CheckWrite(); err != nil {
		return err
	}
	if i < 0 || i >= len(b.elems) {
		return errors.Errorf("adapt: block index %d out of range [0:%d)", i, len(b.elems))
	}
	b.elems[i] = value
	return nil
}

package adapt_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/SaladDais/Impasse/adapt"
)

func newFloatBlock(t *testing.T, readonly bool, rows, cols int) (adapt.Block[float32], []float32) {
	t.Helper()
	backing := make([]float32, rows*cols)
	for i := range backing {
		backing[i] = float32(i)
	}
	scope := adapt.NewScope(unsafe.Pointer(&backing[0]), readonly, nil)
	h := adapt.NewHandle(unsafe.Pointer(&backing[0]), scope)
	return adapt.NewBlock[float32](h, rows, cols), backing
}

func TestBlockReads(t *testing.T) {
	b, backing := newFloatBlock(t, false, 3, 3)
	require.Equal(t, 9, b.Len())
	require.Equal(t, float32(4), b.At(4))
	require.Equal(t, float32(5), b.AtRC(1, 2))
	require.Equal(t, backing, b.Values())

	backing[0] = 99
	require.Equal(t, float32(99), b.At(0))
}

func TestBlockValuesIsACopy(t *testing.T) {
	b, backing := newFloatBlock(t, false, 1, 3)
	vals := b.Values()
	vals[0] = 1000
	require.Equal(t, float32(0), backing[0])
}

func TestBlockSetExactShape(t *testing.T) {
	b, backing := newFloatBlock(t, false, 1, 3)
	require.NoError(t, b.Set(7, 8, 9))
	require.Equal(t, []float32{7, 8, 9}, backing)
}

func TestBlockSetShapeMismatch(t *testing.T) {
	b, backing := newFloatBlock(t, false, 1, 3)
	err := b.Set(1, 2)
	require.ErrorIs(t, err, adapt.ErrShapeMismatch)
	require.Equal(t, []float32{0, 1, 2}, backing)

	err = b.Set(1, 2, 3, 4)
	require.ErrorIs(t, err, adapt.ErrShapeMismatch)
	require.Equal(t, []float32{0, 1, 2}, backing)
}

func TestBlockSetReadOnly(t *testing.T) {
	b, backing := newFloatBlock(t, true, 1, 3)
	require.ErrorIs(t, b.Set(1, 2, 3), adapt.ErrReadOnly)
	require.ErrorIs(t, b.SetAt(0, 1), adapt.ErrReadOnly)
	require.Equal(t, []float32{0, 1, 2}, backing)
}

func TestBlockSetAt(t *testing.T) {
	b, backing := newFloatBlock(t, false, 2, 2)
	require.NoError(t, b.SetAt(3, 17))
	require.Equal(t, float32(17), backing[3])
	require.Error(t, b.SetAt(4, 1))
}

func TestBlockAtRCOutOfRangePanics(t *testing.T) {
	b, _ := newFloatBlock(t, false, 2, 2)
	require.Panics(t, func() { b.AtRC(2, 0) })
	require.Panics(t, func() { b.AtRC(0, 2) })
}

package adapt_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/SaladDais/Impasse/adapt"
)

type intArrayOwner struct {
	count uint32
	items [8]int32
}

func decodeInt(h adapt.Handle) int32 { return *(*int32)(h.Ptr()) }

func encodeInt(h adapt.Handle, v int32) error {
	*(*int32)(h.Ptr()) = v
	return nil
}

func TestDynSeqTracksCounter(t *testing.T) {
	owner := &intArrayOwner{count: 3, items: [8]int32{10, 20, 30, 40, 50}}
	scope := adapt.NewScope(unsafe.Pointer(owner), false, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.items[0]), scope)

	seq := adapt.NewDynSeq(base, &owner.count, unsafe.Sizeof(int32(0)), decodeInt, encodeInt)
	require.Equal(t, 3, seq.Len())
	require.Equal(t, int32(30), seq.At(2))

	owner.count = 5
	require.Equal(t, 5, seq.Len())
	require.Equal(t, int32(50), seq.At(4))

	owner.count = 1
	require.Equal(t, []int32{10}, seq.All())
}

func TestDynSeqNilBaseIsEmpty(t *testing.T) {
	owner := &intArrayOwner{count: 4}
	scope := adapt.NewScope(unsafe.Pointer(owner), false, nil)
	base := adapt.NewHandle(nil, scope)

	seq := adapt.NewDynSeq(base, &owner.count, unsafe.Sizeof(int32(0)), decodeInt, encodeInt)
	require.Equal(t, 0, seq.Len())
	require.Empty(t, seq.All())
}

func TestSeqAtOutOfRangePanics(t *testing.T) {
	owner := &intArrayOwner{count: 2, items: [8]int32{1, 2}}
	scope := adapt.NewScope(unsafe.Pointer(owner), false, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.items[0]), scope)

	seq := adapt.NewDynSeq(base, &owner.count, unsafe.Sizeof(int32(0)), decodeInt, encodeInt)
	require.Panics(t, func() { seq.At(2) })
	require.Panics(t, func() { seq.At(-1) })
}

func TestSeqSetWritesThrough(t *testing.T) {
	owner := &intArrayOwner{count: 2, items: [8]int32{1, 2}}
	scope := adapt.NewScope(unsafe.Pointer(owner), false, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.items[0]), scope)

	seq := adapt.NewDynSeq(base, &owner.count, unsafe.Sizeof(int32(0)), decodeInt, encodeInt)
	require.NoError(t, seq.Set(1, 42))
	require.Equal(t, int32(42), owner.items[1])

	require.Error(t, seq.Set(2, 7))
	require.Equal(t, int32(0), owner.items[2])
}

func TestSeqSetReadOnly(t *testing.T) {
	owner := &intArrayOwner{count: 2, items: [8]int32{1, 2}}
	scope := adapt.NewScope(unsafe.Pointer(owner), true, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.items[0]), scope)

	seq := adapt.NewDynSeq(base, &owner.count, unsafe.Sizeof(int32(0)), decodeInt, encodeInt)
	err := seq.Set(0, 9)
	require.ErrorIs(t, err, adapt.ErrReadOnly)
	require.Equal(t, int32(1), owner.items[0])
}

func TestSeqSetWithoutEncoder(t *testing.T) {
	owner := &intArrayOwner{count: 2, items: [8]int32{1, 2}}
	scope := adapt.NewScope(unsafe.Pointer(owner), false, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.items[0]), scope)

	seq := adapt.NewDynSeq(base, &owner.count, unsafe.Sizeof(int32(0)), decodeInt, nil)
	require.Error(t, seq.Set(0, 9))
}

type ptrArrayOwner struct {
	slots [8]*int32
}

func TestFixedPtrSeqSentinel(t *testing.T) {
	a, b := int32(7), int32(9)
	owner := &ptrArrayOwner{}
	owner.slots[0] = &a
	owner.slots[1] = &b
	scope := adapt.NewScope(unsafe.Pointer(owner), false, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.slots[0]), scope)

	seq := adapt.NewFixedPtrSeq(base, len(owner.slots), true, decodeInt, nil)
	require.Equal(t, 2, seq.Len())
	require.Equal(t, int32(7), seq.At(0))
	require.Equal(t, int32(9), seq.At(1))

	owner.slots[1] = nil
	require.Equal(t, 1, seq.Len())
}

func TestFixedSeqFullLength(t *testing.T) {
	owner := &intArrayOwner{items: [8]int32{1, 2, 3, 4, 5, 6, 7, 8}}
	scope := adapt.NewScope(unsafe.Pointer(owner), false, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.items[0]), scope)

	seq := adapt.NewFixedSeq(base, 8, unsafe.Sizeof(int32(0)), decodeInt, encodeInt)
	require.Equal(t, 8, seq.Len())
	require.Equal(t, []int32{3, 4}, seq.Slice(2, 4))
}

func TestDynPtrSeqDereferencesSlots(t *testing.T) {
	a, b := int32(1), int32(2)
	owner := struct {
		count uint32
		slots [2]*int32
	}{count: 2, slots: [2]*int32{&a, &b}}
	scope := adapt.NewScope(unsafe.Pointer(&owner), false, nil)
	base := adapt.NewHandle(unsafe.Pointer(&owner.slots[0]), scope)

	seq := adapt.NewDynPtrSeq(base, &owner.count, decodeInt, nil)
	require.Equal(t, int32(1), seq.At(0))
	require.Equal(t, int32(2), seq.At(1))
}

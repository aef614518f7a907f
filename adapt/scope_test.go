package adapt_test

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/require"

	"github.com/SaladDais/Impasse/adapt"
)

func TestScopeReleaseRunsOnce(t *testing.T) {
	released := 0
	v := new(int)
	scope := adapt.NewScope(unsafe.Pointer(v), false, func() { released++ })

	require.False(t, scope.Released())
	scope.Release()
	require.True(t, scope.Released())
	require.Equal(t, 1, released)

	scope.Release()
	require.Equal(t, 1, released)
}

func TestHandleCapturesReadonlyAtDerivation(t *testing.T) {
	v := new(int)
	scope := adapt.NewScope(unsafe.Pointer(v), true, nil)
	h := adapt.NewHandle(unsafe.Pointer(v), scope)

	require.True(t, h.Readonly())
	require.ErrorIs(t, h.CheckWrite(), adapt.ErrReadOnly)

	rw := adapt.NewScope(unsafe.Pointer(v), false, nil)
	require.NoError(t, adapt.NewHandle(unsafe.Pointer(v), rw).CheckWrite())
}

func TestHandleIdentity(t *testing.T) {
	a, b := new(int32), new(int32)
	scope := adapt.NewScope(unsafe.Pointer(a), false, nil)

	ha := adapt.NewHandle(unsafe.Pointer(a), scope)
	hb := adapt.NewHandle(unsafe.Pointer(b), scope)
	require.True(t, ha.Eq(adapt.NewHandle(unsafe.Pointer(a), scope)))
	require.False(t, ha.Eq(hb))
	require.False(t, ha.Nil())
	require.True(t, adapt.NewHandle(nil, scope).Nil())
}

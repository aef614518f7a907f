package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSDumpIsStable(t *testing.T) {
	type inner struct {
		N    int
		Tail []byte
	}
	v := &inner{N: 7, Tail: []byte{1, 2}}

	out := SDump(v)
	require.Contains(t, out, "N: (int) 7")
	require.NotContains(t, out, "0x", "no pointer addresses, dumps must be stable across runs")
	require.NotContains(t, out, "cap=")
	require.Equal(t, out, SDump(v))
}

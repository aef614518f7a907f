package adapt_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/SaladDais/Impasse/adapt"
)

func TestCString(t *testing.T) {
	for _, c := range []struct {
		name string
		in   []byte
		want string
	}{
		{"terminated", []byte("mesh\x00junk"), "mesh"},
		{"unterminated", []byte("abc"), "abc"},
		{"empty", []byte{0}, ""},
		{"utf8", []byte("п\x00"), "п"},
	} {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, adapt.CString(c.in))
		})
	}
}

func TestLossyStringReplacesInvalid(t *testing.T) {
	require.Equal(t, "a�b", adapt.LossyString([]byte{'a', 0xff, 'b'}))
	require.Equal(t, "ok", adapt.LossyString([]byte("ok")))
}

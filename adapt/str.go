package adapt

import (
	"bytes"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Foreign strings are nominally UTF-8 but come from arbitrary source files,
// so decoding is lossy: invalid sequences become U+FFFD instead of failing.

// CString decodes a fixed-size NUL-terminated buffer, reading at most
// len(b) bytes.
func CString(b []byte) string {
	if n := bytes.IndexByte(b, 0); n >= 0 {
		b = b[:n]
	}
	return LossyString(b)
}

// LossyString decodes exactly len(b) bytes as UTF-8 with replacement.
func LossyString(b []byte) string {
	out, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), b)
	if err != nil {
		// The UTF-8 decoder replaces rather than errors; this is
		// unreachable short of a transformer bug.
		return string(b)
	}
	return string(out)
}

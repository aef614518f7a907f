package impasse

import (
	"github.com/pkg/errors"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

const maxStringLen = len(ai.String{}.Data) - 1

func goString(s *ai.String) string {
	n := int(s.Length)
	if n > len(s.Data) {
		n = len(s.Data)
	}
	return adapt.LossyString(s.Data[:n])
}

func setAIString(h adapt.Handle, s *ai.String, v string) error {
	if err := h.CheckWrite(); err != nil {
		return err
	}
	if len(v) > maxStringLen {
		return errors.Wrapf(adapt.ErrShapeMismatch, "string of %d bytes exceeds %d byte limit", len(v), maxStringLen)
	}
	copy(s.Data[:], v)
	s.Data[len(v)] = 0
	s.Length = uint32(len(v))
	return nil
}

func decodeU32(h adapt.Handle) uint32 { return *(*uint32)(h.Ptr()) }

func encodeU32(h adapt.Handle, v uint32) error {
	*(*uint32)(h.Ptr()) = v
	return nil
}

func decodeF64(h adapt.Handle) float64 { return *(*float64)(h.Ptr()) }

func encodeF64(h adapt.Handle, v float64) error {
	*(*float64)(h.Ptr()) = v
	return nil
}

func decodeString(h adapt.Handle) string { return goString((*ai.String)(h.Ptr())) }

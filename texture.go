package impasse

import (
	"bytes"
	"unsafe"

	"github.com/SaladDais/Impasse/adapt"
	"github.com/SaladDais/Impasse/ai"
)

// Texture is a view over one embedded aiTexture.
type Texture struct{ h adapt.Handle }

func (t Texture) raw() *ai.Texture { return (*ai.Texture)(t.h.Ptr()) }

func (t Texture) Nil() bool { return t.h.Nil() }

func (t Texture) Handle() adapt.Handle { return t.h }

func (t Texture) Width() uint32 { return t.raw().Width }

func (t Texture) Height() uint32 { return t.raw().Height }

func (t Texture) Filename() string { return goString(&t.raw().Filename) }

// Compressed reports whether the payload is an encoded image file rather
// than raw texels.
func (t Texture) Compressed() bool { return t.raw().Height == 0 }

// FormatHint is the extension-like tag describing a compressed payload,
// e.g. "png".
func (t Texture) FormatHint() string {
	r := t.raw()
	n := bytes.IndexByte(r.FormatHint[:], 0)
	if n < 0 {
		n = len(r.FormatHint)
	}
	return string(r.FormatHint[:n])
}

// Texels views the uncompressed pixel block, Width*Height BGRA texels.
// Empty for compressed textures.
func (t Texture) Texels() adapt.Seq[Texel] {
	r := t.raw()
	base := t.h.AtPtr(unsafe.Pointer(r.Data))
	n := 0
	if r.Height > 0 {
		n = int(r.Width * r.Height)
	}
	return adapt.NewFixedSeq(base, n, unsafe.Sizeof(ai.Texel{}),
		func(h adapt.Handle) Texel { return Texel{h: h} }, nil)
}

// Pixels views the uncompressed texel block as raw bytes, one row per
// scanline of Width*4 channel bytes. Empty for compressed textures.
func (t Texture) Pixels() adapt.Block[uint8] {
	r := t.raw()
	if r.Height == 0 {
		return adapt.NewBlock[uint8](t.h.AtPtr(nil), 0, 0)
	}
	return adapt.NewBlock[uint8](
		t.h.AtPtr(unsafe.Pointer(r.Data)), int(r.Height), int(r.Width)*4)
}

// CompressedData copies out the encoded file bytes of a compressed texture,
// Width bytes long. Nil for uncompressed textures.
func (t Texture) CompressedData() []byte {
	r := t.raw()
	if r.Height != 0 || r.Data == nil {
		return nil
	}
	raw := unsafe.Slice((*byte)(unsafe.Pointer(r.Data)), r.Width)
	out := make([]byte, len(raw))
	copy(out, raw)
	return out
}

// Texel is a view over one BGRA pixel.
type Texel struct{ h adapt.Handle }

func (t Texel) raw() *ai.Texel { return (*ai.Texel)(t.h.Ptr()) }

func (t Texel) BGRA() (b, g, r, a uint8) {
	v := t.raw()
	return v.B, v.G, v.R, v.A
}

func (t Texel) Set(b, g, r, a uint8) error {
	if err := t.h.CheckWrite(); err != nil {
		return err
	}
	*t.raw() = ai.Texel{B: b, G: g, R: r, A: a}
	return nil
}

// Light is a view over one aiLight.
type Light struct{ h adapt.Handle }

func (l Light) raw() *ai.Light { return (*ai.Light)(l.h.Ptr()) }

func (l Light) Name() string { return goString(&l.raw().Name) }

func (l Light) Type() uint32 { return l.raw().Type }

func (l Light) Position() Vector3View {
	return newVector3View(l.h.Field(unsafe.Offsetof(l.raw().Position)))
}

func (l Light) Direction() Vector3View {
	return newVector3View(l.h.Field(unsafe.Offsetof(l.raw().Direction)))
}

func (l Light) Up() Vector3View {
	return newVector3View(l.h.Field(unsafe.Offsetof(l.raw().Up)))
}

func (l Light) ColorDiffuse() Color3View {
	return newColor3View(l.h.Field(unsafe.Offsetof(l.raw().ColorDiffuse)))
}

func (l Light) ColorSpecular() Color3View {
	return newColor3View(l.h.Field(unsafe.Offsetof(l.raw().ColorSpecular)))
}

func (l Light) ColorAmbient() Color3View {
	return newColor3View(l.h.Field(unsafe.Offsetof(l.raw().ColorAmbient)))
}

func (l Light) Attenuation() (constant, linear, quadratic float32) {
	r := l.raw()
	return r.AttenuationConstant, r.AttenuationLinear, r.AttenuationQuadratic
}

func (l Light) SetAttenuation(constant, linear, quadratic float32) error {
	if err := l.h.CheckWrite(); err != nil {
		return err
	}
	r := l.raw()
	r.AttenuationConstant = constant
	r.AttenuationLinear = linear
	r.AttenuationQuadratic = quadratic
	return nil
}

func (l Light) ConeAngles() (inner, outer float32) {
	r := l.raw()
	return r.AngleInnerCone, r.AngleOuterCone
}

// Camera is a view over one aiCamera.
type Camera struct{ h adapt.Handle }

func (c Camera) raw() *ai.Camera { return (*ai.Camera)(c.h.Ptr()) }

func (c Camera) Name() string { return goString(&c.raw().Name) }

func (c Camera) Position() Vector3View {
	return newVector3View(c.h.Field(unsafe.Offsetof(c.raw().Position)))
}

func (c Camera) Up() Vector3View {
	return newVector3View(c.h.Field(unsafe.Offsetof(c.raw().Up)))
}

func (c Camera) LookAt() Vector3View {
	return newVector3View(c.h.Field(unsafe.Offsetof(c.raw().LookAt)))
}

func (c Camera) HorizontalFOV() float32 { return c.raw().HorizontalFOV }

func (c Camera) ClipPlanes() (near, far float32) {
	r := c.raw()
	return r.ClipPlaneNear, r.ClipPlaneFar
}

func (c Camera) Aspect() float32 { return c.raw().Aspect }

func (c Camera) SetAspect(v float32) error {
	if err := c.h.CheckWrite(); err != nil {
		return err
	}
	c.raw().Aspect = v
	return nil
}

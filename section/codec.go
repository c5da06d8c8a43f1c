package section

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
)

// Codec converts between a raw byte range and a semantic value of type T.
//
// Decode interprets the current bytes of a section; Encode produces the
// bytes for a value, sized to the given width. Encode fails with an encoding
// error when the value cannot be represented in width bytes.
type Codec[T any] interface {
	Decode(data []byte) (T, error)
	Encode(value T, width int) ([]byte, error)
}

// patcher is implemented by codecs that write into an existing byte range,
// preserving bits outside their span. Field.Write prefers it over Encode.
type patcher[T any] interface {
	patch(value T, dst []byte) error
}

// Bytes is the no-op codec for sections best left as raw bytes. Decode
// copies; Encode zero-pads short values on the right and rejects values
// wider than the section.
type Bytes struct{}

func (Bytes) Decode(data []byte) ([]byte, error) {
	return append([]byte(nil), data...), nil
}

func (Bytes) Encode(value []byte, width int) ([]byte, error) {
	if width == Rest {
		return append([]byte(nil), value...), nil
	}
	if len(value) > width {
		return nil, fmt.Errorf("%w: %d bytes into %d-byte section", errs.ErrValueTooWide, len(value), width)
	}

	out := make([]byte, width)
	copy(out, value)

	return out, nil
}

// Uint is the codec for little-endian unsigned integers of one to eight
// bytes. Every integer field in the var format is little-endian.
type Uint struct{}

func (Uint) Decode(data []byte) (uint64, error) {
	if len(data) > 8 {
		return 0, fmt.Errorf("%w: %d-byte integer section", errs.ErrValueTooWide, len(data))
	}

	var v uint64
	for i := len(data) - 1; i >= 0; i-- {
		v = v<<8 | uint64(data[i])
	}

	return v, nil
}

func (Uint) Encode(value uint64, width int) ([]byte, error) {
	if width <= 0 || width > 8 {
		return nil, fmt.Errorf("%w: %d-byte integer section", errs.ErrValueTooWide, width)
	}
	if width < 8 && value>>(8*width) != 0 {
		return nil, fmt.Errorf("%w: %d into %d-byte section", errs.ErrValueTooWide, value, width)
	}

	out := make([]byte, width)
	for i := range out {
		out[i] = byte(value >> (8 * i))
	}

	return out, nil
}

// String is the codec for fixed-width text sections such as the header
// comment. Decode strips trailing NUL bytes; Encode NUL-pads on the right
// and rejects strings wider than the section.
type String struct{}

func (String) Decode(data []byte) (string, error) {
	end := len(data)
	for end > 0 && data[end-1] == 0 {
		end--
	}

	return string(data[:end]), nil
}

func (String) Encode(value string, width int) ([]byte, error) {
	if len(value) > width {
		return nil, fmt.Errorf("%w: %q into %d-byte section", errs.ErrValueTooWide, value, width)
	}

	out := make([]byte, width)
	copy(out, value)

	return out, nil
}

// Boolean is the codec for single-byte flags. Any nonzero byte decodes to
// true; true encodes as 0x80, the value the calculator itself writes.
type Boolean struct{}

func (Boolean) Decode(data []byte) (bool, error) {
	if len(data) != 1 {
		return false, fmt.Errorf("%w: boolean section of %d bytes", errs.ErrValueTooWide, len(data))
	}

	return data[0] != 0, nil
}

func (Boolean) Encode(value bool, width int) ([]byte, error) {
	if width != 1 {
		return nil, fmt.Errorf("%w: boolean section of %d bytes", errs.ErrValueTooWide, width)
	}
	if value {
		return []byte{0x80}, nil
	}

	return []byte{0x00}, nil
}

// Bits is the codec for a contiguous span of bits within a single byte,
// bit Lo (least significant) through bit Hi inclusive. Writing preserves
// the bits outside the span.
type Bits struct {
	Lo, Hi uint
}

func (b Bits) mask() byte {
	var m byte
	for i := b.Lo; i <= b.Hi && i < 8; i++ {
		m |= 1 << i
	}

	return m
}

func (b Bits) Decode(data []byte) (uint8, error) {
	if len(data) != 1 {
		return 0, fmt.Errorf("%w: bit section of %d bytes", errs.ErrValueTooWide, len(data))
	}

	return (data[0] & b.mask()) >> b.Lo, nil
}

func (b Bits) Encode(value uint8, width int) ([]byte, error) {
	out := []byte{0}
	if err := b.patch(value, out); err != nil {
		return nil, err
	}

	return out, nil
}

func (b Bits) patch(value uint8, dst []byte) error {
	mask := b.mask()
	if uint(value)<<b.Lo&^uint(mask) != 0 {
		return fmt.Errorf("%w: %d into bits %d..%d", errs.ErrValueTooWide, value, b.Lo, b.Hi)
	}

	dst[0] = dst[0]&^mask | value<<b.Lo&mask

	return nil
}

// BCD is the codec for runs of binary-coded decimal bytes: two decimal
// digits per byte, most significant digit first. Decode rejects nibbles
// above 9.
type BCD struct{}

func (BCD) Decode(data []byte) (uint64, error) {
	var v uint64
	for _, b := range data {
		hi, lo := b>>4, b&0x0F
		if hi > 9 || lo > 9 {
			return 0, fmt.Errorf("%w: byte 0x%02x", errs.ErrInvalidBCD, b)
		}
		v = v*100 + uint64(hi)*10 + uint64(lo)
	}

	return v, nil
}

func (BCD) Encode(value uint64, width int) ([]byte, error) {
	out := make([]byte, width)
	for i := width - 1; i >= 0; i-- {
		out[i] = byte(value%10) | byte(value/10%10)<<4
		value /= 100
	}
	if value != 0 {
		return nil, fmt.Errorf("%w: BCD value overflows %d bytes", errs.ErrValueTooWide, width)
	}

	return out, nil
}

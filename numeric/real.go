package numeric

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/section"
)

const (
	// Size is the byte length of one encoded real value.
	Size = 9

	// ExponentBias is added to the decimal exponent before storage.
	ExponentBias = 0x80

	// MantissaDigits is the precision of the format: fourteen decimal
	// digits, packed two per byte across seven mantissa bytes.
	MantissaDigits = 14
)

// Flag bits of the leading flags byte. Only the sign bit is derived from
// the value; the graph and undefined bits are caller-controlled state the
// calculator maintains, and the complex-half bits mark a block as one half
// of a complex pair.
const (
	FlagSign        = 0x80
	FlagGraph       = 0x40
	FlagComplexHalf = 0x0C
	FlagUndefined   = 0x02
)

var mantissaField = section.NewField("mantissa", 2, 7, section.BCD{})

// Real is one nine-byte floating point block: flags, biased exponent, and a
// fourteen-digit BCD mantissa.
type Real struct {
	Flags    uint8
	Exponent uint8
	Mantissa uint64
}

// ParseReal decodes a nine-byte block.
func ParseReal(data []byte) (Real, error) {
	var r Real
	if err := r.Parse(data); err != nil {
		return Real{}, err
	}

	return r, nil
}

// Parse decodes a nine-byte block into r. It fails with a parse error on a
// wrong-sized slice and a validation error on malformed BCD digits.
func (r *Real) Parse(data []byte) error {
	if len(data) != Size {
		return fmt.Errorf("%w: real value needs %d bytes, got %d", errs.ErrBufferTooShort, Size, len(data))
	}

	mantissa, err := mantissaField.Read(section.FromBytes(data))
	if err != nil {
		return err
	}

	r.Flags = data[0]
	r.Exponent = data[1]
	r.Mantissa = mantissa

	return nil
}

// Bytes serializes r into a fresh nine-byte block.
func (r Real) Bytes() []byte {
	buf := section.NewBuffer(Size)
	buf.Bytes()[0] = r.Flags
	buf.Bytes()[1] = r.Exponent

	// Mantissa overflow is unreachable through SetDecimal; a hand-built
	// Real past 14 digits serializes its low digits.
	_ = mantissaField.Write(buf, r.Mantissa%1e14)

	return buf.Bytes()
}

// Negative reports whether the sign bit is set.
func (r Real) Negative() bool {
	return r.Flags&FlagSign != 0
}

// Undefined reports whether the undefined bit is set.
func (r Real) Undefined() bool {
	return r.Flags&FlagUndefined != 0
}

// IsComplexHalf reports whether the block is marked as one half of a
// complex pair.
func (r Real) IsComplexHalf() bool {
	return r.Flags&FlagComplexHalf == FlagComplexHalf
}

// Decimal returns the exact decimal value of r.
//
// An undefined-flagged block has no numeric value and fails with a
// validation error rather than decoding to a number. The stored digits are
// already exact at the format's own precision, so no rounding occurs.
func (r Real) Decimal() (decimal.Decimal, error) {
	if r.Undefined() {
		return decimal.Decimal{}, fmt.Errorf("%w: flags 0x%02x", errs.ErrUndefinedValue, r.Flags)
	}

	d := decimal.New(int64(r.Mantissa), int32(r.Exponent)-ExponentBias-(MantissaDigits-1))
	if r.Negative() {
		d = d.Neg()
	}

	return d, nil
}

// SetDecimal encodes d into r: sign bit, biased exponent, and a mantissa
// normalized to fourteen significant digits, rounding half away from zero
// at the fourteenth digit. The graph, undefined, and complex-half bits are
// left untouched; they belong to the caller, not the value.
//
// It fails with an encoding error when the normalized exponent falls
// outside the representable range.
func (r *Real) SetDecimal(d decimal.Decimal) error {
	if d.IsZero() {
		r.Flags &^= FlagSign
		r.Exponent = ExponentBias
		r.Mantissa = 0

		return nil
	}

	abs := d.Abs()
	exp := int(abs.NumDigits()) - 1 + int(abs.Exponent())
	rounded := abs.Round(int32(MantissaDigits - 1 - exp))

	// Rounding at the 14th digit can carry into a new leading digit
	// (9.99...9 -> 10.0...); renormalize once if it did.
	if carried := int(rounded.NumDigits()) - 1 + int(rounded.Exponent()); carried != exp {
		exp = carried
		rounded = abs.Round(int32(MantissaDigits - 1 - exp))
	}

	biased := exp + ExponentBias
	if biased < 0 || biased > 0xFF {
		return fmt.Errorf("%w: exponent %d", errs.ErrExponentOutOfRange, exp)
	}

	if d.Sign() < 0 {
		r.Flags |= FlagSign
	} else {
		r.Flags &^= FlagSign
	}
	r.Exponent = uint8(biased)
	r.Mantissa = uint64(rounded.Shift(int32(MantissaDigits - 1 - exp)).IntPart())

	return nil
}

// Float64 returns the nearest float64 to the stored value.
func (r Real) Float64() (float64, error) {
	d, err := r.Decimal()
	if err != nil {
		return 0, err
	}

	return d.InexactFloat64(), nil
}

// SetFloat64 encodes f. The value passes through its shortest decimal
// representation, matching how the calculator displays floats.
func (r *Real) SetFloat64(f float64) error {
	return r.SetDecimal(decimal.NewFromFloat(f))
}

// String formats the stored value, or "undefined" for undefined blocks.
func (r Real) String() string {
	d, err := r.Decimal()
	if err != nil {
		return "undefined"
	}

	return d.String()
}

package numeric

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/calcfile/tivar/errs"
)

// ComplexSize is the byte length of one encoded complex value: two real
// blocks, real half then imaginary half.
const ComplexSize = 2 * Size

// Complex is a pair of real blocks forming one complex value. The two
// halves are independent nine-byte reals; serialization forces the
// complex-half flag bits on both.
type Complex struct {
	Re Real
	Im Real
}

// ParseComplex decodes an eighteen-byte block.
func ParseComplex(data []byte) (Complex, error) {
	var c Complex
	if err := c.Parse(data); err != nil {
		return Complex{}, err
	}

	return c, nil
}

// Parse decodes an eighteen-byte block into c.
func (c *Complex) Parse(data []byte) error {
	if len(data) != ComplexSize {
		return fmt.Errorf("%w: complex value needs %d bytes, got %d",
			errs.ErrBufferTooShort, ComplexSize, len(data))
	}

	if err := c.Re.Parse(data[:Size]); err != nil {
		return fmt.Errorf("real half: %w", err)
	}
	if err := c.Im.Parse(data[Size:]); err != nil {
		return fmt.Errorf("imaginary half: %w", err)
	}

	return nil
}

// Bytes serializes c, with the complex-half bits set on both halves.
func (c Complex) Bytes() []byte {
	re, im := c.Re, c.Im
	re.Flags |= FlagComplexHalf
	im.Flags |= FlagComplexHalf

	return append(re.Bytes(), im.Bytes()...)
}

// Decimals returns the exact decimal values of both halves.
func (c Complex) Decimals() (re, im decimal.Decimal, err error) {
	if re, err = c.Re.Decimal(); err != nil {
		return re, im, fmt.Errorf("real half: %w", err)
	}
	if im, err = c.Im.Decimal(); err != nil {
		return re, im, fmt.Errorf("imaginary half: %w", err)
	}

	return re, im, nil
}

// SetDecimals encodes both halves.
func (c *Complex) SetDecimals(re, im decimal.Decimal) error {
	if err := c.Re.SetDecimal(re); err != nil {
		return fmt.Errorf("real half: %w", err)
	}
	if err := c.Im.SetDecimal(im); err != nil {
		return fmt.Errorf("imaginary half: %w", err)
	}

	return nil
}

// Complex128 returns the nearest complex128 to the stored value.
func (c Complex) Complex128() (complex128, error) {
	re, im, err := c.Decimals()
	if err != nil {
		return 0, err
	}

	return complex(re.InexactFloat64(), im.InexactFloat64()), nil
}

// SetComplex128 encodes v through its halves' shortest decimal
// representations.
func (c *Complex) SetComplex128(v complex128) error {
	return c.SetDecimals(decimal.NewFromFloat(real(v)), decimal.NewFromFloat(imag(v)))
}

// String formats the value as "a+bi".
func (c Complex) String() string {
	re, im, err := c.Decimals()
	if err != nil {
		return "undefined"
	}
	if im.Sign() < 0 {
		return re.String() + im.String() + "i"
	}

	return re.String() + "+" + im.String() + "i"
}

package numeric

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/calcfile/tivar/errs"
)

func TestRealEncodeConcrete(t *testing.T) {
	var r Real
	require.NoError(t, r.SetDecimal(decimal.RequireFromString("1.23")))

	require.Equal(t, uint8(0x00), r.Flags)
	require.Equal(t, uint8(0x80), r.Exponent)
	require.Equal(t, uint64(12300000000000), r.Mantissa)
	require.Equal(t, []byte{0x00, 0x80, 0x12, 0x30, 0x00, 0x00, 0x00, 0x00, 0x00}, r.Bytes())

	d, err := r.Decimal()
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("1.23")), "got %s", d)
}

func TestRealEncodeNegative(t *testing.T) {
	var r Real
	require.NoError(t, r.SetDecimal(decimal.RequireFromString("-42.1337")))

	require.Equal(t, uint8(FlagSign), r.Flags)
	require.Equal(t, uint8(129), r.Exponent)
	require.Equal(t, uint64(42133700000000), r.Mantissa)

	d, err := r.Decimal()
	require.NoError(t, err)
	require.True(t, d.Equal(decimal.RequireFromString("-42.1337")))
}

func TestRealZero(t *testing.T) {
	r := Real{Flags: FlagSign, Exponent: 0x93, Mantissa: 123}
	require.NoError(t, r.SetDecimal(decimal.Zero))

	require.Equal(t, uint8(0x00), r.Flags)
	require.Equal(t, uint8(ExponentBias), r.Exponent)
	require.Equal(t, uint64(0), r.Mantissa)

	d, err := r.Decimal()
	require.NoError(t, err)
	require.True(t, d.IsZero())
}

func TestRealRoundTrip(t *testing.T) {
	cases := []string{
		"1", "-1", "0.5", "9.9999999999999", "0.00000001", "1e50", "-1e-50",
		"3.1415926535898", "12345678901234", "-0.1", "100", "6.02e23",
	}
	for _, s := range cases {
		t.Run(s, func(t *testing.T) {
			want := decimal.RequireFromString(s)

			var r Real
			require.NoError(t, r.SetDecimal(want))

			parsed, err := ParseReal(r.Bytes())
			require.NoError(t, err)

			got, err := parsed.Decimal()
			require.NoError(t, err)
			require.True(t, got.Equal(want), "want %s, got %s", want, got)
		})
	}
}

func TestRealRoundingCarry(t *testing.T) {
	// 15 significant digits rounding up into a new leading digit.
	var r Real
	require.NoError(t, r.SetDecimal(decimal.RequireFromString("9.99999999999995")))

	require.Equal(t, uint8(ExponentBias+1), r.Exponent)
	require.Equal(t, uint64(10000000000000), r.Mantissa)
}

func TestRealExponentRange(t *testing.T) {
	var r Real

	err := r.SetDecimal(decimal.RequireFromString("1e128"))
	require.ErrorIs(t, err, errs.ErrExponentOutOfRange)
	require.ErrorIs(t, err, errs.ErrEncoding)

	err = r.SetDecimal(decimal.RequireFromString("1e-129"))
	require.ErrorIs(t, err, errs.ErrExponentOutOfRange)

	require.NoError(t, r.SetDecimal(decimal.RequireFromString("1e127")))
	require.Equal(t, uint8(0xFF), r.Exponent)

	require.NoError(t, r.SetDecimal(decimal.RequireFromString("1e-128")))
	require.Equal(t, uint8(0x00), r.Exponent)
}

func TestRealUndefined(t *testing.T) {
	r := Real{Flags: FlagUndefined, Exponent: ExponentBias, Mantissa: 10000000000000}

	_, err := r.Decimal()
	require.ErrorIs(t, err, errs.ErrUndefinedValue)
	require.ErrorIs(t, err, errs.ErrValidation)

	_, err = r.Float64()
	require.ErrorIs(t, err, errs.ErrUndefinedValue)
}

func TestRealCallerControlledBits(t *testing.T) {
	r := Real{Flags: FlagGraph | FlagUndefined}
	require.NoError(t, r.SetDecimal(decimal.RequireFromString("-2")))

	// Setting a value derives only the sign bit.
	require.Equal(t, uint8(FlagGraph|FlagUndefined|FlagSign), r.Flags)
}

func TestRealParseErrors(t *testing.T) {
	_, err := ParseReal([]byte{0x00, 0x80})
	require.ErrorIs(t, err, errs.ErrBufferTooShort)

	_, err = ParseReal([]byte{0x00, 0x80, 0xAB, 0, 0, 0, 0, 0, 0})
	require.ErrorIs(t, err, errs.ErrInvalidBCD)
}

func TestComplexRoundTrip(t *testing.T) {
	var c Complex
	require.NoError(t, c.SetDecimals(
		decimal.RequireFromString("1.5"),
		decimal.RequireFromString("-2.25"),
	))

	raw := c.Bytes()
	require.Len(t, raw, ComplexSize)
	require.Equal(t, uint8(FlagComplexHalf), raw[0]&FlagComplexHalf)
	require.Equal(t, uint8(FlagComplexHalf), raw[Size]&FlagComplexHalf)

	parsed, err := ParseComplex(raw)
	require.NoError(t, err)
	require.True(t, parsed.Re.IsComplexHalf())
	require.True(t, parsed.Im.IsComplexHalf())

	re, im, err := parsed.Decimals()
	require.NoError(t, err)
	require.True(t, re.Equal(decimal.RequireFromString("1.5")))
	require.True(t, im.Equal(decimal.RequireFromString("-2.25")))
}

func TestComplexFloat(t *testing.T) {
	var c Complex
	require.NoError(t, c.SetComplex128(complex(3, -4)))

	v, err := c.Complex128()
	require.NoError(t, err)
	require.Equal(t, complex(3, -4), v)
	require.Equal(t, "3-4i", c.String())
}

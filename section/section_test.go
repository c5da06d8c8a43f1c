package section

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/calcfile/tivar/errs"
)

func TestSectionBounds(t *testing.T) {
	t.Run("Forward offset", func(t *testing.T) {
		start, end, err := New("id", 2, 3).Bounds(10)
		require.NoError(t, err)
		require.Equal(t, 2, start)
		require.Equal(t, 5, end)
	})

	t.Run("Negative offset counts from end", func(t *testing.T) {
		start, end, err := New("trailer", -4, 2).Bounds(10)
		require.NoError(t, err)
		require.Equal(t, 6, start)
		require.Equal(t, 8, end)
	})

	t.Run("Rest spans to end", func(t *testing.T) {
		start, end, err := New("data", 3, Rest).Bounds(10)
		require.NoError(t, err)
		require.Equal(t, 3, start)
		require.Equal(t, 10, end)
	})

	t.Run("Out of bounds", func(t *testing.T) {
		_, _, err := New("id", 8, 4).Bounds(10)
		require.ErrorIs(t, err, errs.ErrSectionOutOfBounds)
		require.ErrorIs(t, err, errs.ErrParse)

		_, _, err = New("trailer", -12, 1).Bounds(10)
		require.ErrorIs(t, err, errs.ErrSectionOutOfBounds)
	})
}

func TestBufferReplace(t *testing.T) {
	t.Run("Same width overwrites in place", func(t *testing.T) {
		buf := FromBytes([]byte{1, 2, 3, 4})
		require.NoError(t, buf.Replace(New("mid", 1, 2), []byte{9, 9}))
		require.Equal(t, []byte{1, 9, 9, 4}, buf.Bytes())
	})

	t.Run("Wider payload grows the buffer", func(t *testing.T) {
		buf := FromBytes([]byte{1, 2, 3, 4})
		require.NoError(t, buf.Replace(New("mid", 1, 2), []byte{7, 8, 9}))
		require.Equal(t, []byte{1, 7, 8, 9, 4}, buf.Bytes())
	})

	t.Run("Narrower payload shrinks the buffer", func(t *testing.T) {
		buf := FromBytes([]byte{1, 2, 3, 4})
		require.NoError(t, buf.Replace(New("mid", 1, 2), nil))
		require.Equal(t, []byte{1, 4}, buf.Bytes())
	})
}

func TestBufferResize(t *testing.T) {
	buf := FromBytes([]byte{1, 2, 3})
	buf.Resize(5)
	require.Equal(t, []byte{1, 2, 3, 0, 0}, buf.Bytes())

	buf.Resize(2)
	require.Equal(t, []byte{1, 2}, buf.Bytes())

	// Regrowing within capacity must zero the reclaimed tail.
	buf.Resize(4)
	require.Equal(t, []byte{1, 2, 0, 0}, buf.Bytes())
}

func TestUintCodec(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		enc, err := Uint{}.Encode(0x1234, 2)
		require.NoError(t, err)
		require.Equal(t, []byte{0x34, 0x12}, enc)

		dec, err := Uint{}.Decode(enc)
		require.NoError(t, err)
		require.Equal(t, uint64(0x1234), dec)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := Uint{}.Encode(0x10000, 2)
		require.ErrorIs(t, err, errs.ErrValueTooWide)
		require.ErrorIs(t, err, errs.ErrEncoding)
	})
}

func TestStringCodec(t *testing.T) {
	enc, err := String{}.Encode("HELLO", 8)
	require.NoError(t, err)
	require.Equal(t, []byte{'H', 'E', 'L', 'L', 'O', 0, 0, 0}, enc)

	dec, err := String{}.Decode(enc)
	require.NoError(t, err)
	require.Equal(t, "HELLO", dec)

	_, err = String{}.Encode("TOO LONG NAME", 8)
	require.ErrorIs(t, err, errs.ErrValueTooWide)
}

func TestBooleanCodec(t *testing.T) {
	enc, err := Boolean{}.Encode(true, 1)
	require.NoError(t, err)
	require.Equal(t, []byte{0x80}, enc)

	dec, err := Boolean{}.Decode([]byte{0x01})
	require.NoError(t, err)
	require.True(t, dec)

	dec, err = Boolean{}.Decode([]byte{0x00})
	require.NoError(t, err)
	require.False(t, dec)
}

func TestBitsCodec(t *testing.T) {
	buf := FromBytes([]byte{0b1010_0001})
	field := Bind(New("mid bits", 0, 1), Bits{Lo: 2, Hi: 3})

	v, err := field.Read(buf)
	require.NoError(t, err)
	require.Equal(t, uint8(0), v)

	require.NoError(t, field.Write(buf, 0b11))
	require.Equal(t, byte(0b1010_1101), buf.Bytes()[0])

	// Bits outside the span survive the write.
	v, err = field.Read(buf)
	require.NoError(t, err)
	require.Equal(t, uint8(0b11), v)

	err = field.Write(buf, 0b100)
	require.ErrorIs(t, err, errs.ErrValueTooWide)
}

func TestBCDCodec(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		enc, err := BCD{}.Encode(12300000000000, 7)
		require.NoError(t, err)
		require.Equal(t, []byte{0x12, 0x30, 0x00, 0x00, 0x00, 0x00, 0x00}, enc)

		dec, err := BCD{}.Decode(enc)
		require.NoError(t, err)
		require.Equal(t, uint64(12300000000000), dec)
	})

	t.Run("Invalid nibble", func(t *testing.T) {
		_, err := BCD{}.Decode([]byte{0x1A})
		require.ErrorIs(t, err, errs.ErrInvalidBCD)
		require.ErrorIs(t, err, errs.ErrValidation)
	})

	t.Run("Overflow", func(t *testing.T) {
		_, err := BCD{}.Encode(100, 1)
		require.ErrorIs(t, err, errs.ErrValueTooWide)
	})
}

func TestBackAnchoredFieldSurvivesResize(t *testing.T) {
	buf := FromBytes([]byte{1, 2, 3, 4, 0x42})
	trailer := Bind(New("trailer", -1, 1), Uint{})

	v, err := trailer.Read(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(0x42), v)

	// Growing the variable region in front must not move the trailer.
	require.NoError(t, buf.Replace(New("body", 1, 3), []byte{9, 9, 9, 9, 9, 9}))

	v, err = trailer.Read(buf)
	require.NoError(t, err)
	require.Equal(t, uint64(0x42), v)
}

func TestLengthPrefixed(t *testing.T) {
	t.Run("Round trip", func(t *testing.T) {
		raw := AppendLengthPrefixed(nil, []byte{0xAA, 0xBB, 0xCC})
		require.Equal(t, []byte{0x03, 0x00, 0xAA, 0xBB, 0xCC}, raw)

		payload, next, err := ReadLengthPrefixed(raw, 0)
		require.NoError(t, err)
		require.Equal(t, []byte{0xAA, 0xBB, 0xCC}, payload)
		require.Equal(t, 5, next)
	})

	t.Run("Truncated region", func(t *testing.T) {
		_, _, err := ReadLengthPrefixed([]byte{0x05, 0x00, 0x01}, 0)
		require.ErrorIs(t, err, errs.ErrBufferTooShort)
	})
}

package vars

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/numeric"
)

func TestRealVarView(t *testing.T) {
	t.Run("SetDecimal", func(t *testing.T) {
		v := NewRealVar()
		require.NoError(t, v.SetDecimal(decimal.RequireFromString("0.5")))

		d, err := v.Decimal()
		require.NoError(t, err)
		require.Equal(t, "0.5", d.String())
	})

	t.Run("UndefinedType", func(t *testing.T) {
		e, err := NewEntry(TypeUndefinedReal)
		require.NoError(t, err)
		v, err := AsRealVar(e)
		require.NoError(t, err)

		val, err := v.Value()
		require.NoError(t, err)
		require.False(t, val.Undefined())
	})

	t.Run("WrongType", func(t *testing.T) {
		e, _ := NewEntry(TypeProgram)
		_, err := AsRealVar(e)
		require.ErrorIs(t, err, errs.ErrUnknownTypeID)
	})
}

func TestComplexVarView(t *testing.T) {
	v := NewComplexVar()
	require.NoError(t, v.SetComplex128(complex(3, -4)))

	z, err := v.Complex128()
	require.NoError(t, err)
	require.Equal(t, complex(3, -4), z)

	// both halves carry the complex marker bits
	val, err := v.Value()
	require.NoError(t, err)
	require.True(t, val.Re.IsComplexHalf())
	require.True(t, val.Im.IsComplexHalf())
}

func TestRealListView(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		l := NewRealList()
		require.NoError(t, l.SetValues(mustReals(t, "1.5", "-2", "300")))
		require.Equal(t, 3, l.Len())

		v, err := l.At(1)
		require.NoError(t, err)
		d, err := v.Decimal()
		require.NoError(t, err)
		require.Equal(t, "-2", d.String())

		back, err := AsRealList(l.Entry)
		require.NoError(t, err)
		values, err := back.Values()
		require.NoError(t, err)
		require.Len(t, values, 3)
	})

	t.Run("TooLong", func(t *testing.T) {
		l := NewRealList()
		err := l.SetValues(make([]numeric.Real, MaxListLength+1))
		require.ErrorIs(t, err, errs.ErrDimensionTooLarge)
	})

	t.Run("CountMismatch", func(t *testing.T) {
		e, _ := NewEntry(TypeRealList)
		data := make([]byte, 2+numeric.Size)
		engine.PutUint16(data, 2) // count says 2, one element stored
		e.SetData(data)
		_, err := AsRealList(e)
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})

	t.Run("IndexOutOfRange", func(t *testing.T) {
		l := NewRealList()
		_, err := l.At(0)
		require.ErrorIs(t, err, errs.ErrSectionOutOfBounds)
	})
}

func TestComplexListView(t *testing.T) {
	l := NewComplexList()
	var c numeric.Complex
	require.NoError(t, c.SetComplex128(complex(1, 2)))
	require.NoError(t, l.SetValues([]numeric.Complex{c}))
	require.Equal(t, 1, l.Len())

	back, err := AsComplexList(l.Entry)
	require.NoError(t, err)
	got, err := back.At(0)
	require.NoError(t, err)
	z, err := got.Complex128()
	require.NoError(t, err)
	require.Equal(t, complex(1, 2), z)
}

func TestMatrixView(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		m := NewMatrix()
		rows := [][]numeric.Real{
			mustReals(t, "1", "2", "3"),
			mustReals(t, "4", "5", "6"),
		}
		require.NoError(t, m.SetRows(rows))
		require.Equal(t, 3, m.Width())
		require.Equal(t, 2, m.Height())

		v, err := m.At(1, 2)
		require.NoError(t, err)
		d, err := v.Decimal()
		require.NoError(t, err)
		require.Equal(t, "6", d.String())

		_, err = AsMatrix(m.Entry)
		require.NoError(t, err)
	})

	t.Run("DimensionLimits", func(t *testing.T) {
		m := NewMatrix()
		tall := make([][]numeric.Real, MaxMatrixDimension+1)
		for i := range tall {
			tall[i] = make([]numeric.Real, 1)
		}
		require.ErrorIs(t, m.SetRows(tall), errs.ErrDimensionTooLarge)

		big := make([][]numeric.Real, 21)
		for i := range big {
			big[i] = make([]numeric.Real, 20)
		}
		require.ErrorIs(t, m.SetRows(big), errs.ErrDimensionTooLarge)
	})

	t.Run("RaggedRows", func(t *testing.T) {
		m := NewMatrix()
		err := m.SetRows([][]numeric.Real{
			mustReals(t, "1", "2"),
			mustReals(t, "3"),
		})
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})
}

func TestProgramView(t *testing.T) {
	p, err := NewProgram("TEST")
	require.NoError(t, err)
	p.SetTokenBytes([]byte{0xDE, 0x2A})
	require.Equal(t, []byte{0xDE, 0x2A}, p.TokenBytes())
	require.False(t, p.Protected())

	p.Protect()
	require.True(t, p.Protected())
	require.Equal(t, TypeProtectedProgram, p.TypeID())

	// protected programs parse back through the same view
	back, err := ParseEntry(p.Bytes())
	require.NoError(t, err)
	q, err := AsProgram(back)
	require.NoError(t, err)
	require.True(t, q.Protected())
	require.Equal(t, []byte{0xDE, 0x2A}, q.TokenBytes())
}

func TestStringAndAppVarViews(t *testing.T) {
	s := NewStringVar()
	s.SetTokenBytes([]byte{0x41, 0x42})
	require.Equal(t, "Str1", s.Name())

	a, err := NewAppVar("SETTINGS")
	require.NoError(t, err)
	a.SetPayload([]byte{1, 2, 3})
	require.Equal(t, []byte{1, 2, 3}, a.Payload())

	back, err := ParseEntry(a.Bytes())
	require.NoError(t, err)
	got, err := AsAppVar(back)
	require.NoError(t, err)
	require.Equal(t, []byte{1, 2, 3}, got.Payload())
}

func TestWindowSettingsView(t *testing.T) {
	w := NewWindowSettings()
	require.Equal(t, "Window", w.Name())
	require.Equal(t, 210, w.Data().Len())

	var r numeric.Real
	require.NoError(t, r.SetDecimal(decimal.RequireFromString("-10")))
	require.NoError(t, w.SetValue("Xmin", r))

	got, err := w.Value("Xmin")
	require.NoError(t, err)
	d, err := got.Decimal()
	require.NoError(t, err)
	require.Equal(t, "-10", d.String())

	_, err = w.Value("Qmin")
	require.ErrorIs(t, err, errs.ErrInvalidName)

	back, err := AsWindowSettings(w.Entry)
	require.NoError(t, err)
	require.Len(t, back.Names(), 23)
}

func TestPictureView(t *testing.T) {
	t.Run("Mono", func(t *testing.T) {
		p := NewPicture(PictureMono)
		require.Equal(t, 96, p.Width())
		require.Equal(t, 63, p.Height())

		require.NoError(t, p.SetBitAt(10, 17, true))
		on, err := p.BitAt(10, 17)
		require.NoError(t, err)
		require.True(t, on)
		off, err := p.BitAt(10, 16)
		require.NoError(t, err)
		require.False(t, off)

		back, err := AsPicture(p.Entry)
		require.NoError(t, err)
		require.Equal(t, PictureMono, back.Kind())
	})

	t.Run("Color", func(t *testing.T) {
		p := NewPicture(PictureColor)
		require.NoError(t, p.SetPaletteAt(0, 1, 0x0C))
		idx, err := p.PaletteAt(0, 1)
		require.NoError(t, err)
		require.Equal(t, uint8(0x0C), idx)

		// neighbor nibble untouched
		idx, err = p.PaletteAt(0, 0)
		require.NoError(t, err)
		require.Equal(t, uint8(0), idx)

		require.ErrorIs(t, p.SetPaletteAt(0, 0, 0x10), errs.ErrInvalidEnumValue)
	})

	t.Run("BadSize", func(t *testing.T) {
		e, _ := NewEntry(TypePicture)
		setSizedPayload(e, make([]byte, 100))
		_, err := AsPicture(e)
		require.ErrorIs(t, err, errs.ErrLengthMismatch)
	})
}

func TestImageView(t *testing.T) {
	im := NewImage()
	require.NoError(t, im.SetAt(0, 0, 255, 0, 0))
	r, g, b, err := im.At(0, 0)
	require.NoError(t, err)
	require.Equal(t, uint8(255), r)
	require.Equal(t, uint8(0), g)
	require.Equal(t, uint8(0), b)

	back, err := ParseEntry(im.Bytes())
	require.NoError(t, err)
	_, err = AsImage(back)
	require.NoError(t, err)

	t.Run("BadMagic", func(t *testing.T) {
		bad := NewImage()
		sizedPayload(bad.Entry)[0] = 0x00
		_, err := AsImage(bad.Entry)
		require.ErrorIs(t, err, errs.ErrUnknownMagic)
	})
}

func TestSpecialize(t *testing.T) {
	cases := []struct {
		name   string
		typeID uint8
	}{
		{"Real", TypeReal},
		{"Complex", TypeComplex},
		{"Program", TypeProgram},
		{"AppVar", TypeAppVar},
		{"WindowSettings", TypeWindowSettings},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := NewEntry(tc.typeID)
			require.NoError(t, err)
			v, err := Specialize(e)
			require.NoError(t, err)
			require.Equal(t, tc.typeID, v.TypeID())
		})
	}

	t.Run("Unknown", func(t *testing.T) {
		e, err := NewEntry(TypeReal)
		require.NoError(t, err)
		e.typeID = 0x42
		_, err = Specialize(e)
		require.ErrorIs(t, err, errs.ErrUnknownTypeID)
	})
}

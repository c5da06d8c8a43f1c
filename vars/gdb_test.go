package vars

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/model"
	"github.com/calcfile/tivar/numeric"
)

func TestResolveGDBLayout(t *testing.T) {
	cases := []struct {
		mode      GraphMode
		equations int
		params    int
		styles    int
		minMono   int
		minColor  int
	}{
		{ModeFunction, 10, 1, 10, 110, 128},
		{ModeParametric, 12, 3, 6, 130, 144},
		{ModePolar, 6, 3, 6, 112, 126},
		{ModeSequence, 3, 10, 3, 163, 174},
	}

	for _, tc := range cases {
		t.Run(tc.mode.String(), func(t *testing.T) {
			mono, err := ResolveGDBLayout(uint8(tc.mode), 0)
			require.NoError(t, err)
			require.False(t, mono.Color)
			require.Len(t, mono.EquationNames, tc.equations)
			require.Len(t, mono.ParamNames, tc.params)
			require.Equal(t, tc.styles, mono.NumStyles)
			require.Equal(t, tc.minMono, mono.MinDataLength)
			require.Zero(t, mono.TrailerSize())

			color, err := ResolveGDBLayout(uint8(tc.mode), model.TI84PCSE.Features)
			require.NoError(t, err)
			require.True(t, color.Color)
			require.Equal(t, tc.minColor, color.MinDataLength)
			require.Equal(t, tc.minColor-tc.minMono, color.TrailerSize())
		})
	}

	t.Run("UnknownMode", func(t *testing.T) {
		_, err := ResolveGDBLayout(0x30, 0)
		require.ErrorIs(t, err, errs.ErrUnknownModeID)
	})
}

func TestNewGDBMinimal(t *testing.T) {
	for _, mode := range []GraphMode{ModeFunction, ModeParametric, ModePolar, ModeSequence} {
		t.Run(mode.String(), func(t *testing.T) {
			g, err := NewGDB(mode, 0)
			require.NoError(t, err)
			require.Equal(t, g.Layout().MinDataLength, g.Data().Len())

			back, err := AsGDB(g.Entry)
			require.NoError(t, err)
			require.Equal(t, mode, back.Mode())
			require.False(t, back.HasColor())
		})
	}

	t.Run("ColorDetectedFromData", func(t *testing.T) {
		g, err := NewGDB(ModeFunction, model.TI84PCE.Features)
		require.NoError(t, err)

		back, err := AsGDB(g.Entry)
		require.NoError(t, err)
		require.True(t, back.HasColor())
		require.Equal(t, 128, back.Data().Len())
	})
}

func TestGDBWindows(t *testing.T) {
	g, err := NewGDB(ModeFunction, 0)
	require.NoError(t, err)

	var r numeric.Real
	require.NoError(t, r.SetDecimal(decimal.RequireFromString("-10")))
	require.NoError(t, g.SetWindow("Xmin", r))

	got, err := g.Window("Xmin")
	require.NoError(t, err)
	d, err := got.Decimal()
	require.NoError(t, err)
	require.Equal(t, "-10", d.String())

	t.Run("ModeSpecificParam", func(t *testing.T) {
		require.NoError(t, r.SetDecimal(decimal.RequireFromString("2")))
		require.NoError(t, g.SetWindow("Xres", r))
		got, err := g.Window("Xres")
		require.NoError(t, err)
		d, err := got.Decimal()
		require.NoError(t, err)
		require.Equal(t, "2", d.String())
	})

	t.Run("WrongModeParam", func(t *testing.T) {
		_, err := g.Window("Tmin")
		require.ErrorIs(t, err, errs.ErrInvalidName)
	})

	t.Run("SeqFlagsOnlyInSequence", func(t *testing.T) {
		_, err := g.SeqFlags()
		require.Error(t, err)

		seq, err := NewGDB(ModeSequence, 0)
		require.NoError(t, err)
		require.NoError(t, seq.SetSeqFlags(SeqFlagWeb))
		flags, err := seq.SeqFlags()
		require.NoError(t, err)
		require.Equal(t, SeqFlagWeb, flags)
	})
}

func TestGDBEquations(t *testing.T) {
	t.Run("RoundTrip", func(t *testing.T) {
		g, err := NewGDB(ModeFunction, 0)
		require.NoError(t, err)

		eqs, err := g.Equations()
		require.NoError(t, err)
		require.Len(t, eqs, 10)
		require.Equal(t, "Y1", eqs[0].Name)

		eqs[0].Tokens = []byte{0x58, 0x71, 0x32} // var-length record
		eqs[0].Style = StyleDottedLine
		eqs[0].Flags |= EquationFlagSelected
		require.NoError(t, g.SetEquations(eqs))

		q, err := g.Equation("Y1")
		require.NoError(t, err)
		require.Equal(t, []byte{0x58, 0x71, 0x32}, q.Tokens)
		require.Equal(t, StyleDottedLine, q.Style)
		require.True(t, q.Selected())

		// the entry still parses after the region grew
		back, err := AsGDB(g.Entry)
		require.NoError(t, err)
		require.Equal(t, 113, back.Data().Len())
	})

	t.Run("SharedStyleGroups", func(t *testing.T) {
		// parametric: X/Y pairs share one style slot
		g, err := NewGDB(ModeParametric, 0)
		require.NoError(t, err)

		require.NoError(t, g.SetEquation("X2T", GDBEquation{Style: StyleThickLine}))
		q, err := g.Equation("Y2T")
		require.NoError(t, err)
		require.Equal(t, StyleThickLine, q.Style)
	})

	t.Run("WrongCount", func(t *testing.T) {
		g, err := NewGDB(ModePolar, 0)
		require.NoError(t, err)
		require.ErrorIs(t, g.SetEquations(make([]GDBEquation, 5)), errs.ErrLengthMismatch)
	})

	t.Run("BadStyle", func(t *testing.T) {
		g, err := NewGDB(ModePolar, 0)
		require.NoError(t, err)
		eqs, err := g.Equations()
		require.NoError(t, err)
		eqs[0].Style = 0x40
		require.ErrorIs(t, g.SetEquations(eqs), errs.ErrInvalidEnumValue)
	})
}

func TestGDBColorTrailer(t *testing.T) {
	g, err := NewGDB(ModeFunction, model.TI84PCSE.Features)
	require.NoError(t, err)

	t.Run("Defaults", func(t *testing.T) {
		grid, err := g.GridColor()
		require.NoError(t, err)
		require.Equal(t, ColorMedGray, grid)

		axes, err := g.AxesColor()
		require.NoError(t, err)
		require.Equal(t, ColorBlack, axes)

		border, err := g.BorderColor()
		require.NoError(t, err)
		require.Equal(t, BorderLtGray, border)
	})

	t.Run("BackAnchoredAfterGrowth", func(t *testing.T) {
		require.NoError(t, g.SetBorderColor(BorderTeal))

		// growing the equation region must not move the trailer fields
		eqs, err := g.Equations()
		require.NoError(t, err)
		eqs[3].Tokens = make([]byte, 40)
		eqs[3].Color = ColorRed
		require.NoError(t, g.SetEquations(eqs))

		border, err := g.BorderColor()
		require.NoError(t, err)
		require.Equal(t, BorderTeal, border)

		q, err := g.Equation("Y4")
		require.NoError(t, err)
		require.Equal(t, ColorRed, q.Color)
	})

	t.Run("EnumValidation", func(t *testing.T) {
		require.ErrorIs(t, g.SetBorderColor(0x09), errs.ErrInvalidEnumValue)
		require.ErrorIs(t, g.SetGridColor(0x20), errs.ErrInvalidEnumValue)
		require.ErrorIs(t, g.SetGlobalLineStyle(0x07), errs.ErrInvalidEnumValue)
	})

	t.Run("MonoHasNoTrailer", func(t *testing.T) {
		mono, err := NewGDB(ModeFunction, 0)
		require.NoError(t, err)
		_, err = mono.GridColor()
		require.ErrorIs(t, err, errs.ErrInvalidColorTrailer)
	})

	t.Run("CorruptTrailer", func(t *testing.T) {
		bad, err := NewGDB(ModeFunction, model.TI84PCSE.Features)
		require.NoError(t, err)
		copy(bad.Data().Bytes()[110:113], "84D")
		_, err = AsGDB(bad.Entry)
		require.ErrorIs(t, err, errs.ErrInvalidColorTrailer)
	})
}

func TestGDBDocument(t *testing.T) {
	g, err := NewGDB(ModeFunction, model.TI84PCE.Features)
	require.NoError(t, err)

	var r numeric.Real
	require.NoError(t, r.SetDecimal(decimal.RequireFromString("-47.5")))
	require.NoError(t, g.SetWindow("Ymin", r))
	require.NoError(t, g.SetEquation("Y2", GDBEquation{
		Flags:  defaultEquationFlags | EquationFlagSelected,
		Style:  StyleShadeAbove,
		Color:  ColorNavy,
		Tokens: []byte{0x58},
	}))
	g.SetModeFlags(ModeFlagGridOn | ModeFlagLabelOn)

	raw, err := g.MarshalJSON()
	require.NoError(t, err)

	doc, err := ParseGDBDocument(raw)
	require.NoError(t, err)
	require.Equal(t, "Function", doc.GraphMode)
	require.Equal(t, "-47.5", doc.WindowSettings["Ymin"])
	require.NotNil(t, doc.ColorSettings)

	back, err := GDBFromDocument(doc, 0)
	require.NoError(t, err)
	require.True(t, back.HasColor())
	require.Equal(t, g.Bytes(), back.Bytes())

	t.Run("Unmarshal", func(t *testing.T) {
		target, err := NewGDB(ModeSequence, 0)
		require.NoError(t, err)

		require.NoError(t, target.UnmarshalJSON(raw))
		require.Equal(t, ModeFunction, target.Mode())
		require.True(t, target.HasColor())
		require.Equal(t, g.Bytes(), target.Bytes())
	})

	t.Run("BadDocument", func(t *testing.T) {
		_, err := ParseGDBDocument([]byte("{"))
		require.ErrorIs(t, err, errs.ErrParse)

		doc := &GDBDocument{GraphMode: "Cubic"}
		_, err = GDBFromDocument(doc, 0)
		require.ErrorIs(t, err, errs.ErrInvalidEnumValue)
	})
}

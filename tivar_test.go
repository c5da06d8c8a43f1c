package tivar

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/calcfile/tivar/model"
	"github.com/calcfile/tivar/vars"
)

func TestRoundTrip(t *testing.T) {
	file := New(model.TI84P)

	x := vars.NewRealVar()
	require.NoError(t, x.SetName("X"))
	require.NoError(t, x.SetDecimal(decimal.RequireFromString("1.5")))
	require.NoError(t, file.AddEntry(x.Entry))

	raw, err := file.Bytes()
	require.NoError(t, err)

	back, err := Parse(raw)
	require.NoError(t, err)
	require.Equal(t, 1, back.Len())
	require.Equal(t, "X", back.Entry(0).Name())

	again, err := back.Bytes()
	require.NoError(t, err)
	require.Equal(t, raw, again)
}

func TestParseFrom(t *testing.T) {
	file := New(model.TI83PCE)
	raw, err := file.Bytes()
	require.NoError(t, err)

	back, err := ParseFrom(bytes.NewReader(raw))
	require.NoError(t, err)
	m, ok := back.Header().Model()
	require.True(t, ok)
	require.Equal(t, model.TI83PCE, m)
}

package vars

import (
	"bytes"
	"fmt"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/model"
	"github.com/calcfile/tivar/numeric"
	"github.com/calcfile/tivar/section"
)

// GraphMode identifies the plotter a graph database belongs to.
type GraphMode uint8

const (
	ModeFunction   GraphMode = 0x10
	ModePolar      GraphMode = 0x20
	ModeParametric GraphMode = 0x40
	ModeSequence   GraphMode = 0x80
)

// String returns the plotter name.
func (m GraphMode) String() string {
	switch m {
	case ModeFunction:
		return "Function"
	case ModePolar:
		return "Polar"
	case ModeParametric:
		return "Parametric"
	case ModeSequence:
		return "Sequence"
	}
	return fmt.Sprintf("GraphMode(0x%02X)", uint8(m))
}

// Mode flag bits stored at data offset 4. Clear bits mean the opposite
// setting: Connected, Sequential, RectGC, CoordOn, AxesOn, LabelOff.
const (
	ModeFlagDot      uint8 = 1 << 0
	ModeFlagSimul    uint8 = 1 << 1
	ModeFlagGridOn   uint8 = 1 << 2
	ModeFlagPolarGC  uint8 = 1 << 3
	ModeFlagCoordOff uint8 = 1 << 4
	ModeFlagAxesOff  uint8 = 1 << 5
	ModeFlagLabelOn  uint8 = 1 << 6
	ModeFlagGridLine uint8 = 1 << 7
)

// Extended mode flag bits stored at data offset 6.
const (
	ExtFlagExprOff uint8 = 1 << 0
	ExtFlagSeqNp1  uint8 = 1 << 1
	ExtFlagSeqNp2  uint8 = 1 << 2
)

// Sequence plot flag bits stored at data offset 5, sequence mode only.
// All clear means Time plots.
const (
	SeqFlagWeb     uint8 = 1 << 0
	SeqFlagVertWeb uint8 = 1 << 1
	SeqFlagUV      uint8 = 1 << 2
	SeqFlagVW      uint8 = 1 << 3
	SeqFlagUW      uint8 = 1 << 4
)

// Color trailer flag bits. A set bit disables asymptote detection.
const ColorFlagDetectAsymptotesOff uint8 = 1 << 0

// GraphStyle is a per-equation plot style.
type GraphStyle uint8

const (
	StyleSolidLine GraphStyle = iota
	StyleThickLine
	StyleShadeAbove
	StyleShadeBelow
	StyleTrace
	StyleAnimate
	StyleDottedLine

	maxGraphStyle = StyleDottedLine
)

// GraphColor is a 4-bit palette color used by color models.
type GraphColor uint8

const (
	ColorMono GraphColor = iota
	ColorBlue
	ColorRed
	ColorBlack
	ColorMagenta
	ColorGreen
	ColorOrange
	ColorBrown
	ColorNavy
	ColorLtBlue
	ColorYellow
	ColorWhite
	ColorLtGray
	ColorMedGray
	ColorGray
	ColorDarkGray

	maxGraphColor = ColorDarkGray
)

// GlobalLineStyle is the line style applied to every plotted equation
// on color models.
type GlobalLineStyle uint8

const (
	LineThick GlobalLineStyle = iota
	LineDotThick
	LineThin
	LineDotThin

	maxGlobalLineStyle = LineDotThin
)

// BorderColor is the graph border color on color models.
type BorderColor uint8

const (
	BorderLtGray BorderColor = iota + 1
	BorderTeal
	BorderLtBlue
	BorderWhite
)

// Equation flag bits stored in each graphed equation's flag byte.
const (
	EquationFlagSelected     uint8 = 1 << 5
	EquationFlagUsedForGraph uint8 = 1 << 6
	EquationFlagLinkTransfer uint8 = 1 << 7
)

// defaultEquationFlags is the flag byte of a freshly created equation.
const defaultEquationFlags uint8 = 0x03

// gdbColorMagic opens the color trailer.
var gdbColorMagic = []byte("84C")

// Fixed offsets shared by every graph database layout. The six global
// window reals follow at offsets 7 through 61.
const (
	gdbModeIDOffset   = 3
	gdbModeFlagOffset = 4
	gdbSeqFlagOffset  = 5
	gdbExtFlagOffset  = 6
	gdbWindowOffset   = 7
	gdbParamOffset    = 61
)

// gdbWindowNames are the global window parameters present in every
// mode, in storage order.
var gdbWindowNames = []string{"Xmin", "Xmax", "Xscl", "Ymin", "Ymax", "Yscl"}

// Back-anchored color trailer fields. They stay valid however long the
// equation region grows.
var (
	gridColorSec       = section.New("grid color", -5, 1)
	axesColorSec       = section.New("axes color", -4, 1)
	globalLineStyleSec = section.New("global line style", -3, 1)
	borderColorSec     = section.New("border color", -2, 1)
	colorFlagSec       = section.New("color flags", -1, 1)
)

// GDBLayout describes the structural variant a graph database uses:
// which equations and mode parameters it stores and whether a color
// trailer follows the equation region.
type GDBLayout struct {
	Mode  GraphMode
	Color bool

	// EquationNames lists the stored equations in order.
	EquationNames []string

	// ParamNames lists the mode-specific window parameters stored from
	// offset 61, in order.
	ParamNames []string

	// NumStyles is the size of the style block. Styles are shared by
	// groups of len(EquationNames)/NumStyles consecutive equations.
	NumStyles int

	// MinDataLength is the smallest well formed data block for this
	// variant.
	MinDataLength int
}

// StylesOffset returns the offset of the style block in the data.
func (l GDBLayout) StylesOffset() int {
	return gdbParamOffset + numeric.Size*len(l.ParamNames)
}

// EquationsOffset returns the offset of the first equation record.
func (l GDBLayout) EquationsOffset() int {
	return l.StylesOffset() + l.NumStyles
}

// TrailerSize returns the color trailer size, zero for monochrome
// layouts.
func (l GDBLayout) TrailerSize() int {
	if !l.Color {
		return 0
	}
	return len(gdbColorMagic) + l.NumStyles + 5
}

// styleGroup returns how many consecutive equations share one style.
func (l GDBLayout) styleGroup() int {
	return len(l.EquationNames) / l.NumStyles
}

type gdbModeSpec struct {
	equationNames []string
	paramNames    []string
	numStyles     int
	minMono       int
	minColor      int
}

var gdbModeTable = map[GraphMode]gdbModeSpec{
	ModeFunction: {
		equationNames: []string{"Y1", "Y2", "Y3", "Y4", "Y5", "Y6", "Y7", "Y8", "Y9", "Y0"},
		paramNames:    []string{"Xres"},
		numStyles:     10,
		minMono:       110,
		minColor:      128,
	},
	ModeParametric: {
		equationNames: []string{"X1T", "Y1T", "X2T", "Y2T", "X3T", "Y3T", "X4T", "Y4T", "X5T", "Y5T", "X6T", "Y6T"},
		paramNames:    []string{"Tmin", "Tmax", "Tstep"},
		numStyles:     6,
		minMono:       130,
		minColor:      144,
	},
	ModePolar: {
		equationNames: []string{"r1", "r2", "r3", "r4", "r5", "r6"},
		paramNames:    []string{"Thetamin", "Thetamax", "Thetastep"},
		numStyles:     6,
		minMono:       112,
		minColor:      126,
	},
	ModeSequence: {
		equationNames: []string{"u", "v", "w"},
		paramNames: []string{
			"PlotStart", "nMax", "unMin", "vnMin", "nMin",
			"unMinp1", "vnMinp1", "wnMin", "PlotStep", "wnMinp1",
		},
		numStyles: 3,
		minMono:   163,
		minColor:  174,
	},
}

// ResolveGDBLayout selects the structural layout for a graph database
// from its mode byte and the target model's feature set. Models with
// the color feature store the extended color trailer.
func ResolveGDBLayout(modeID uint8, features model.Feature) (GDBLayout, error) {
	spec, ok := gdbModeTable[GraphMode(modeID)]
	if !ok {
		return GDBLayout{}, fmt.Errorf("%w: 0x%02X", errs.ErrUnknownModeID, modeID)
	}
	l := GDBLayout{
		Mode:          GraphMode(modeID),
		Color:         features&model.FeatureColor != 0,
		EquationNames: spec.equationNames,
		ParamNames:    spec.paramNames,
		NumStyles:     spec.numStyles,
		MinDataLength: spec.minMono,
	}
	if l.Color {
		l.MinDataLength = spec.minColor
	}
	return l, nil
}

// GDBEquation is one equation stored in a graph database, with the
// style and color its position in the style block gives it. Style and
// color live outside the equation record; SetEquations writes back the
// first equation of each style group.
type GDBEquation struct {
	Name   string
	Flags  uint8
	Style  GraphStyle
	Color  GraphColor
	Tokens []byte
}

// Selected reports whether the equation is selected for graphing.
func (q GDBEquation) Selected() bool { return q.Flags&EquationFlagSelected != 0 }

// GDB is a typed view over a graph database entry: the full state of
// one equation plotter, its mode settings, window, equations and, on
// color models, the color trailer.
type GDB struct {
	*Entry
	layout GDBLayout
}

// NewGDB creates an empty graph database for the given mode, sized for
// the feature set's layout. Equations start deselected-but-transferable
// with empty token streams; color layouts get the default color scheme.
func NewGDB(mode GraphMode, features model.Feature) (*GDB, error) {
	layout, err := ResolveGDBLayout(uint8(mode), features)
	if err != nil {
		return nil, err
	}
	e, _ := NewEntry(TypeGDB)

	data := make([]byte, layout.EquationsOffset(), layout.MinDataLength)
	data[gdbModeIDOffset] = uint8(mode)
	zero := numeric.Real{Exponent: numeric.ExponentBias}.Bytes()
	for i := 0; i < len(gdbWindowNames)+len(layout.ParamNames); i++ {
		copy(data[gdbWindowOffset+i*numeric.Size:], zero)
	}
	for range layout.EquationNames {
		data = append(data, defaultEquationFlags, 0x00, 0x00)
	}
	if layout.Color {
		data = append(data, gdbColorMagic...)
		data = append(data, make([]byte, layout.NumStyles)...)
		data = append(data, byte(ColorMedGray), byte(ColorBlack), byte(LineThick), byte(BorderLtGray), 0x00)
	}

	e.SetData(data)
	return &GDB{Entry: e, layout: layout}, nil
}

// AsGDB views e as a graph database. The layout is resolved from the
// stored mode byte, and color is detected from the data itself: bytes
// remaining after the equation region must form a color trailer.
func AsGDB(e *Entry) (*GDB, error) {
	if e.TypeID() != TypeGDB {
		return nil, fmt.Errorf("%w: %s is not a graph database", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}

	data := e.data.Bytes()
	layout, err := ResolveGDBLayout(data[gdbModeIDOffset], 0)
	if err != nil {
		return nil, err
	}

	end, err := equationRegionEnd(data, layout)
	if err != nil {
		return nil, err
	}
	if rest := len(data) - end; rest > 0 {
		layout, _ = ResolveGDBLayout(data[gdbModeIDOffset], model.FeatureColor)
		if rest != layout.TrailerSize() || !bytes.Equal(data[end:end+len(gdbColorMagic)], gdbColorMagic) {
			return nil, fmt.Errorf("%w: %d bytes after equations", errs.ErrInvalidColorTrailer, rest)
		}
	}
	if len(data) < layout.MinDataLength {
		return nil, fmt.Errorf("%w: %s data is %d bytes, minimum %d",
			errs.ErrBufferTooShort, layout.Mode, len(data), layout.MinDataLength)
	}

	return &GDB{Entry: e, layout: layout}, nil
}

// equationRegionEnd walks the equation records and returns the offset
// just past the last one.
func equationRegionEnd(data []byte, layout GDBLayout) (int, error) {
	off := layout.EquationsOffset()
	for i := range layout.EquationNames {
		if off >= len(data) {
			return 0, fmt.Errorf("%w: equation %d starts past the data end", errs.ErrBufferTooShort, i)
		}
		_, next, err := section.ReadLengthPrefixed(data, off+1)
		if err != nil {
			return 0, fmt.Errorf("equation %d: %w", i, err)
		}
		off = next
	}
	return off, nil
}

// Layout returns the resolved structural layout.
func (g *GDB) Layout() GDBLayout { return g.layout }

// Mode returns the plotter this database belongs to.
func (g *GDB) Mode() GraphMode { return g.layout.Mode }

// HasColor reports whether the database carries the color trailer.
func (g *GDB) HasColor() bool { return g.layout.Color }

// ModeFlags returns the mode settings byte.
func (g *GDB) ModeFlags() uint8 { return g.data.Bytes()[gdbModeFlagOffset] }

// SetModeFlags overwrites the mode settings byte.
func (g *GDB) SetModeFlags(flags uint8) { g.data.Bytes()[gdbModeFlagOffset] = flags }

// ExtModeFlags returns the extended mode settings byte.
func (g *GDB) ExtModeFlags() uint8 { return g.data.Bytes()[gdbExtFlagOffset] }

// SetExtModeFlags overwrites the extended mode settings byte.
func (g *GDB) SetExtModeFlags(flags uint8) { g.data.Bytes()[gdbExtFlagOffset] = flags }

// SeqFlags returns the sequence plot settings byte. Only sequence mode
// databases store it.
func (g *GDB) SeqFlags() (uint8, error) {
	if g.Mode() != ModeSequence {
		return 0, fmt.Errorf("%w: %s databases have no sequence flags", errs.ErrUnknownModeID, g.Mode())
	}
	return g.data.Bytes()[gdbSeqFlagOffset], nil
}

// SetSeqFlags overwrites the sequence plot settings byte.
func (g *GDB) SetSeqFlags(flags uint8) error {
	if g.Mode() != ModeSequence {
		return fmt.Errorf("%w: %s databases have no sequence flags", errs.ErrUnknownModeID, g.Mode())
	}
	g.data.Bytes()[gdbSeqFlagOffset] = flags
	return nil
}

// WindowNames returns the window parameter names this database stores,
// the six global ones followed by the mode-specific ones.
func (g *GDB) WindowNames() []string {
	out := make([]string, 0, len(gdbWindowNames)+len(g.layout.ParamNames))
	out = append(out, gdbWindowNames...)
	out = append(out, g.layout.ParamNames...)
	return out
}

func (g *GDB) windowOffset(name string) (int, error) {
	for i, n := range gdbWindowNames {
		if n == name {
			return gdbWindowOffset + i*numeric.Size, nil
		}
	}
	for i, n := range g.layout.ParamNames {
		if n == name {
			return gdbParamOffset + i*numeric.Size, nil
		}
	}
	return 0, fmt.Errorf("%w: %s databases have no window parameter %q", errs.ErrInvalidName, g.Mode(), name)
}

// Window decodes the named window parameter.
func (g *GDB) Window(name string) (numeric.Real, error) {
	off, err := g.windowOffset(name)
	if err != nil {
		return numeric.Real{}, err
	}
	return numeric.ParseReal(g.data.Bytes()[off : off+numeric.Size])
}

// SetWindow overwrites the named window parameter.
func (g *GDB) SetWindow(name string, r numeric.Real) error {
	off, err := g.windowOffset(name)
	if err != nil {
		return err
	}
	copy(g.data.Bytes()[off:off+numeric.Size], r.Bytes())
	return nil
}

// Equations decodes the stored equations in order, attaching each one's
// shared style and, on color layouts, color.
func (g *GDB) Equations() ([]GDBEquation, error) {
	data := g.data.Bytes()
	layout := g.layout
	group := layout.styleGroup()

	out := make([]GDBEquation, len(layout.EquationNames))
	styles := data[layout.StylesOffset():layout.EquationsOffset()]
	for i := range out {
		out[i].Name = layout.EquationNames[i]
		out[i].Style = GraphStyle(styles[i/group])
	}

	off := layout.EquationsOffset()
	for i := range out {
		out[i].Flags = data[off]
		tokens, next, err := section.ReadLengthPrefixed(data, off+1)
		if err != nil {
			return nil, fmt.Errorf("equation %s: %w", out[i].Name, err)
		}
		out[i].Tokens = append([]byte(nil), tokens...)
		off = next
	}

	if layout.Color {
		colors := data[off+len(gdbColorMagic) : off+len(gdbColorMagic)+layout.NumStyles]
		for i := range out {
			out[i].Color = GraphColor(colors[i/group])
		}
	}
	return out, nil
}

// SetEquations rebuilds the equation region from eqs, which must have
// one entry per stored equation in layout order. The style and color of
// the first equation in each style group are the ones written back.
func (g *GDB) SetEquations(eqs []GDBEquation) error {
	layout := g.layout
	if len(eqs) != len(layout.EquationNames) {
		return fmt.Errorf("%w: got %d equations, %s databases store %d",
			errs.ErrLengthMismatch, len(eqs), layout.Mode, len(layout.EquationNames))
	}
	group := layout.styleGroup()
	for i, q := range eqs {
		if q.Style > maxGraphStyle {
			return fmt.Errorf("%w: graph style 0x%02X on %s", errs.ErrInvalidEnumValue, uint8(q.Style), layout.EquationNames[i])
		}
		if q.Color > maxGraphColor {
			return fmt.Errorf("%w: graph color 0x%02X on %s", errs.ErrInvalidEnumValue, uint8(q.Color), layout.EquationNames[i])
		}
	}

	old := g.data.Bytes()
	data := make([]byte, 0, len(old))
	data = append(data, old[:layout.StylesOffset()]...)
	for i := 0; i < layout.NumStyles; i++ {
		data = append(data, byte(eqs[i*group].Style))
	}
	for _, q := range eqs {
		data = append(data, q.Flags)
		data = section.AppendLengthPrefixed(data, q.Tokens)
	}
	if layout.Color {
		tail := old[len(old)-5:]
		data = append(data, gdbColorMagic...)
		for i := 0; i < layout.NumStyles; i++ {
			data = append(data, byte(eqs[i*group].Color))
		}
		data = append(data, tail...)
	}

	g.SetData(data)
	return nil
}

// Equation decodes the named equation.
func (g *GDB) Equation(name string) (GDBEquation, error) {
	eqs, err := g.Equations()
	if err != nil {
		return GDBEquation{}, err
	}
	for _, q := range eqs {
		if q.Name == name {
			return q, nil
		}
	}
	return GDBEquation{}, fmt.Errorf("%w: %s databases store no equation %q", errs.ErrInvalidName, g.Mode(), name)
}

// SetEquation overwrites the named equation.
func (g *GDB) SetEquation(name string, eq GDBEquation) error {
	eqs, err := g.Equations()
	if err != nil {
		return err
	}
	for i := range eqs {
		if eqs[i].Name == name {
			eq.Name = name
			eqs[i] = eq
			return g.SetEquations(eqs)
		}
	}
	return fmt.Errorf("%w: %s databases store no equation %q", errs.ErrInvalidName, g.Mode(), name)
}

func (g *GDB) colorByte(sec section.Section) (uint8, error) {
	if !g.layout.Color {
		return 0, fmt.Errorf("%w: no %s without a color trailer", errs.ErrInvalidColorTrailer, sec.Name)
	}
	raw, err := g.data.Slice(sec)
	if err != nil {
		return 0, err
	}
	return raw[0], nil
}

func (g *GDB) setColorByte(sec section.Section, v uint8) error {
	if !g.layout.Color {
		return fmt.Errorf("%w: no %s without a color trailer", errs.ErrInvalidColorTrailer, sec.Name)
	}
	return g.data.Replace(sec, []byte{v})
}

// GridColor returns the grid color from the color trailer.
func (g *GDB) GridColor() (GraphColor, error) {
	v, err := g.colorByte(gridColorSec)
	if err != nil || GraphColor(v) > maxGraphColor {
		if err == nil {
			err = fmt.Errorf("%w: grid color 0x%02X", errs.ErrInvalidEnumValue, v)
		}
		return 0, err
	}
	return GraphColor(v), nil
}

// SetGridColor overwrites the grid color.
func (g *GDB) SetGridColor(c GraphColor) error {
	if c > maxGraphColor {
		return fmt.Errorf("%w: grid color 0x%02X", errs.ErrInvalidEnumValue, uint8(c))
	}
	return g.setColorByte(gridColorSec, uint8(c))
}

// AxesColor returns the axes color from the color trailer.
func (g *GDB) AxesColor() (GraphColor, error) {
	v, err := g.colorByte(axesColorSec)
	if err != nil || GraphColor(v) > maxGraphColor {
		if err == nil {
			err = fmt.Errorf("%w: axes color 0x%02X", errs.ErrInvalidEnumValue, v)
		}
		return 0, err
	}
	return GraphColor(v), nil
}

// SetAxesColor overwrites the axes color.
func (g *GDB) SetAxesColor(c GraphColor) error {
	if c > maxGraphColor {
		return fmt.Errorf("%w: axes color 0x%02X", errs.ErrInvalidEnumValue, uint8(c))
	}
	return g.setColorByte(axesColorSec, uint8(c))
}

// GlobalLineStyle returns the global line style from the color trailer.
func (g *GDB) GlobalLineStyle() (GlobalLineStyle, error) {
	v, err := g.colorByte(globalLineStyleSec)
	if err != nil || GlobalLineStyle(v) > maxGlobalLineStyle {
		if err == nil {
			err = fmt.Errorf("%w: line style 0x%02X", errs.ErrInvalidEnumValue, v)
		}
		return 0, err
	}
	return GlobalLineStyle(v), nil
}

// SetGlobalLineStyle overwrites the global line style.
func (g *GDB) SetGlobalLineStyle(s GlobalLineStyle) error {
	if s > maxGlobalLineStyle {
		return fmt.Errorf("%w: line style 0x%02X", errs.ErrInvalidEnumValue, uint8(s))
	}
	return g.setColorByte(globalLineStyleSec, uint8(s))
}

// BorderColor returns the border color from the color trailer.
func (g *GDB) BorderColor() (BorderColor, error) {
	v, err := g.colorByte(borderColorSec)
	if err != nil || BorderColor(v) < BorderLtGray || BorderColor(v) > BorderWhite {
		if err == nil {
			err = fmt.Errorf("%w: border color 0x%02X", errs.ErrInvalidEnumValue, v)
		}
		return 0, err
	}
	return BorderColor(v), nil
}

// SetBorderColor overwrites the border color.
func (g *GDB) SetBorderColor(c BorderColor) error {
	if c < BorderLtGray || c > BorderWhite {
		return fmt.Errorf("%w: border color 0x%02X", errs.ErrInvalidEnumValue, uint8(c))
	}
	return g.setColorByte(borderColorSec, uint8(c))
}

// ColorFlags returns the extended color settings byte.
func (g *GDB) ColorFlags() (uint8, error) {
	return g.colorByte(colorFlagSec)
}

// SetColorFlags overwrites the extended color settings byte.
func (g *GDB) SetColorFlags(flags uint8) error {
	return g.setColorByte(colorFlagSec, flags)
}

package vars

import (
	"encoding/hex"
	"fmt"

	json "github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/model"
	"github.com/calcfile/tivar/numeric"
)

// String returns the style name used in the JSON form.
func (s GraphStyle) String() string {
	if int(s) < len(graphStyleNames) {
		return graphStyleNames[s]
	}
	return fmt.Sprintf("GraphStyle(0x%02X)", uint8(s))
}

// String returns the color name used in the JSON form.
func (c GraphColor) String() string {
	if int(c) < len(graphColorNames) {
		return graphColorNames[c]
	}
	return fmt.Sprintf("GraphColor(0x%02X)", uint8(c))
}

// String returns the line style name used in the JSON form.
func (s GlobalLineStyle) String() string {
	if int(s) < len(globalLineStyleNames) {
		return globalLineStyleNames[s]
	}
	return fmt.Sprintf("GlobalLineStyle(0x%02X)", uint8(s))
}

var graphStyleNames = []string{
	"SolidLine", "ThickLine", "ShadeAbove", "ShadeBelow", "Trace", "Animate", "DottedLine",
}

var graphColorNames = []string{
	"Mono", "Blue", "Red", "Black", "Magenta", "Green", "Orange", "Brown",
	"Navy", "LtBlue", "Yellow", "White", "LtGray", "MedGray", "Gray", "DarkGray",
}

var globalLineStyleNames = []string{"Thick", "DotThick", "Thin", "DotThin"}

func nameIndex(names []string, name string) (uint8, bool) {
	for i, n := range names {
		if n == name {
			return uint8(i), true
		}
	}
	return 0, false
}

// GDBEquationDoc is the JSON form of one stored equation. Tokens are
// hex encoded; the token language itself stays opaque.
type GDBEquationDoc struct {
	Flags  uint8  `json:"flags"`
	Style  string `json:"style"`
	Color  string `json:"color,omitempty"`
	Tokens string `json:"tokens"`
}

// GDBColorDoc is the JSON form of the color trailer.
type GDBColorDoc struct {
	GridColor       string `json:"gridColor"`
	AxesColor       string `json:"axesColor"`
	GlobalLineStyle string `json:"globalLineStyle"`
	BorderColor     uint8  `json:"borderColor"`
	DetectAsymptote bool   `json:"detectAsymptotes"`
}

// GDBDocument is the JSON form of a graph database. Window values are
// decimal strings so the round trip stays exact.
type GDBDocument struct {
	GraphMode      string                    `json:"graphMode"`
	ModeFlags      uint8                     `json:"modeFlags"`
	ExtModeFlags   uint8                     `json:"extModeFlags"`
	SeqFlags       *uint8                    `json:"seqFlags,omitempty"`
	WindowSettings map[string]string         `json:"windowSettings"`
	Equations      map[string]GDBEquationDoc `json:"equations"`
	ColorSettings  *GDBColorDoc              `json:"colorSettings,omitempty"`
}

// Document renders the database as its JSON form.
func (g *GDB) Document() (*GDBDocument, error) {
	doc := &GDBDocument{
		GraphMode:      g.Mode().String(),
		ModeFlags:      g.ModeFlags(),
		ExtModeFlags:   g.ExtModeFlags(),
		WindowSettings: make(map[string]string),
		Equations:      make(map[string]GDBEquationDoc),
	}
	if g.Mode() == ModeSequence {
		flags, _ := g.SeqFlags()
		doc.SeqFlags = &flags
	}

	for _, name := range g.WindowNames() {
		r, err := g.Window(name)
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", name, err)
		}
		d, err := r.Decimal()
		if err != nil {
			return nil, fmt.Errorf("window %s: %w", name, err)
		}
		doc.WindowSettings[name] = d.String()
	}

	eqs, err := g.Equations()
	if err != nil {
		return nil, err
	}
	for _, q := range eqs {
		eqDoc := GDBEquationDoc{
			Flags:  q.Flags,
			Style:  q.Style.String(),
			Tokens: hex.EncodeToString(q.Tokens),
		}
		if g.HasColor() {
			eqDoc.Color = q.Color.String()
		}
		doc.Equations[q.Name] = eqDoc
	}

	if g.HasColor() {
		grid, err := g.GridColor()
		if err != nil {
			return nil, err
		}
		axes, err := g.AxesColor()
		if err != nil {
			return nil, err
		}
		line, err := g.GlobalLineStyle()
		if err != nil {
			return nil, err
		}
		border, err := g.BorderColor()
		if err != nil {
			return nil, err
		}
		flags, err := g.ColorFlags()
		if err != nil {
			return nil, err
		}
		doc.ColorSettings = &GDBColorDoc{
			GridColor:       grid.String(),
			AxesColor:       axes.String(),
			GlobalLineStyle: line.String(),
			BorderColor:     uint8(border),
			DetectAsymptote: flags&ColorFlagDetectAsymptotesOff == 0,
		}
	}
	return doc, nil
}

// MarshalJSON renders the database as its JSON form.
func (g *GDB) MarshalJSON() ([]byte, error) {
	doc, err := g.Document()
	if err != nil {
		return nil, err
	}
	return json.Marshal(doc)
}

// UnmarshalJSON replaces the database contents from the JSON form,
// keeping the entry's meta and name. Color capability follows the
// document: a color settings block yields a color database, its
// absence a monochrome one.
func (g *GDB) UnmarshalJSON(data []byte) error {
	doc, err := ParseGDBDocument(data)
	if err != nil {
		return err
	}
	rebuilt, err := GDBFromDocument(doc, 0)
	if err != nil {
		return err
	}
	g.data = rebuilt.data
	g.layout = rebuilt.layout
	g.syncEmbeddedLength()

	return nil
}

// graphModeByName maps the JSON mode names back to mode bytes.
var graphModeByName = map[string]GraphMode{
	"Function":   ModeFunction,
	"Polar":      ModePolar,
	"Parametric": ModeParametric,
	"Sequence":   ModeSequence,
}

// GDBFromDocument builds a graph database from its JSON form. The
// color trailer is stored when the document carries color settings,
// regardless of features; features only decide the default when the
// document has none.
func GDBFromDocument(doc *GDBDocument, features model.Feature) (*GDB, error) {
	mode, ok := graphModeByName[doc.GraphMode]
	if !ok {
		return nil, fmt.Errorf("%w: graph mode %q", errs.ErrInvalidEnumValue, doc.GraphMode)
	}
	if doc.ColorSettings != nil {
		features |= model.FeatureColor
	}

	g, err := NewGDB(mode, features)
	if err != nil {
		return nil, err
	}
	g.SetModeFlags(doc.ModeFlags)
	g.SetExtModeFlags(doc.ExtModeFlags)
	if doc.SeqFlags != nil {
		if err := g.SetSeqFlags(*doc.SeqFlags); err != nil {
			return nil, err
		}
	}

	for name, value := range doc.WindowSettings {
		var r numeric.Real
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, fmt.Errorf("%w: window %s: %v", errs.ErrParse, name, err)
		}
		if err := r.SetDecimal(d); err != nil {
			return nil, fmt.Errorf("window %s: %w", name, err)
		}
		if err := g.SetWindow(name, r); err != nil {
			return nil, err
		}
	}

	eqs, err := g.Equations()
	if err != nil {
		return nil, err
	}
	for i := range eqs {
		eqDoc, ok := doc.Equations[eqs[i].Name]
		if !ok {
			continue
		}
		style, ok := nameIndex(graphStyleNames, eqDoc.Style)
		if !ok {
			return nil, fmt.Errorf("%w: graph style %q", errs.ErrInvalidEnumValue, eqDoc.Style)
		}
		eqs[i].Flags = eqDoc.Flags
		eqs[i].Style = GraphStyle(style)
		if eqDoc.Color != "" {
			color, ok := nameIndex(graphColorNames, eqDoc.Color)
			if !ok {
				return nil, fmt.Errorf("%w: graph color %q", errs.ErrInvalidEnumValue, eqDoc.Color)
			}
			eqs[i].Color = GraphColor(color)
		}
		if eqs[i].Tokens, err = hex.DecodeString(eqDoc.Tokens); err != nil {
			return nil, fmt.Errorf("%w: equation %s tokens: %v", errs.ErrParse, eqs[i].Name, err)
		}
	}
	if err := g.SetEquations(eqs); err != nil {
		return nil, err
	}

	if cs := doc.ColorSettings; cs != nil {
		grid, ok := nameIndex(graphColorNames, cs.GridColor)
		if !ok {
			return nil, fmt.Errorf("%w: grid color %q", errs.ErrInvalidEnumValue, cs.GridColor)
		}
		axes, ok := nameIndex(graphColorNames, cs.AxesColor)
		if !ok {
			return nil, fmt.Errorf("%w: axes color %q", errs.ErrInvalidEnumValue, cs.AxesColor)
		}
		line, ok := nameIndex(globalLineStyleNames, cs.GlobalLineStyle)
		if !ok {
			return nil, fmt.Errorf("%w: line style %q", errs.ErrInvalidEnumValue, cs.GlobalLineStyle)
		}
		if err := g.SetGridColor(GraphColor(grid)); err != nil {
			return nil, err
		}
		if err := g.SetAxesColor(GraphColor(axes)); err != nil {
			return nil, err
		}
		if err := g.SetGlobalLineStyle(GlobalLineStyle(line)); err != nil {
			return nil, err
		}
		if err := g.SetBorderColor(BorderColor(cs.BorderColor)); err != nil {
			return nil, err
		}
		var flags uint8
		if !cs.DetectAsymptote {
			flags |= ColorFlagDetectAsymptotesOff
		}
		if err := g.SetColorFlags(flags); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// ParseGDBDocument decodes the JSON form.
func ParseGDBDocument(data []byte) (*GDBDocument, error) {
	var doc GDBDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: graph database document: %v", errs.ErrParse, err)
	}
	return &doc, nil
}

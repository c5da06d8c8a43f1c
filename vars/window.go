package vars

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/numeric"
	"github.com/calcfile/tivar/section"
)

// windowLeading opens every window settings data block.
var windowLeading = []byte{0xD0, 0x00, 0x00}

// windowFieldNames lists the plot window parameters in storage order,
// starting right after the leading bytes. Every graphing mode's
// parameters live in the one block.
var windowFieldNames = []string{
	"Xmin", "Xmax", "Xscl",
	"Ymin", "Ymax", "Yscl",
	"Thetamin", "Thetamax", "Thetastep",
	"Tmin", "Tmax", "Tstep",
	"PlotStart", "nMax", "unMin0", "vnMin0",
	"nMin", "unMin1", "vnMin1", "wnMin0",
	"PlotStep", "Xres", "wnMin1",
}

var windowSections = func() map[string]section.Section {
	m := make(map[string]section.Section, len(windowFieldNames))
	for i, name := range windowFieldNames {
		m[name] = section.New(name, len(windowLeading)+i*numeric.Size, numeric.Size)
	}
	return m
}()

// WindowSettings is a typed view over a window settings entry, the
// contiguous block of plot window parameters for all graphing modes.
type WindowSettings struct {
	*Entry
}

// NewWindowSettings creates a window settings entry with every
// parameter set to zero.
func NewWindowSettings() *WindowSettings {
	e, _ := NewEntry(TypeWindowSettings)
	copy(e.data.Bytes(), windowLeading)
	w := &WindowSettings{Entry: e}
	zero := numeric.Real{Exponent: numeric.ExponentBias}
	for _, name := range windowFieldNames {
		_ = w.SetValue(name, zero)
	}
	return w
}

// AsWindowSettings views e as window settings.
func AsWindowSettings(e *Entry) (*WindowSettings, error) {
	if e.TypeID() != TypeWindowSettings {
		return nil, fmt.Errorf("%w: %s is not window settings", errs.ErrUnknownTypeID, e)
	}
	if err := e.validate(); err != nil {
		return nil, err
	}
	return &WindowSettings{Entry: e}, nil
}

// Names returns the window parameter names in storage order.
func (w *WindowSettings) Names() []string {
	out := make([]string, len(windowFieldNames))
	copy(out, windowFieldNames)
	return out
}

// Value decodes the named window parameter.
func (w *WindowSettings) Value(name string) (numeric.Real, error) {
	sec, ok := windowSections[name]
	if !ok {
		return numeric.Real{}, fmt.Errorf("%w: no window parameter %q", errs.ErrInvalidName, name)
	}
	raw, err := w.data.Slice(sec)
	if err != nil {
		return numeric.Real{}, err
	}
	return numeric.ParseReal(raw)
}

// SetValue overwrites the named window parameter.
func (w *WindowSettings) SetValue(name string, r numeric.Real) error {
	sec, ok := windowSections[name]
	if !ok {
		return fmt.Errorf("%w: no window parameter %q", errs.ErrInvalidName, name)
	}
	return w.data.Replace(sec, r.Bytes())
}

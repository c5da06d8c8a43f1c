// Package model describes the calculator models that produce and consume
// variable files. A Model is an immutable value pairing the model's file
// magic and product id with the feature set that drives layout selection
// for feature-dependent variable types.
package model

// Feature is a bit set of hardware or OS capabilities. Parsers and
// composers consult features rather than model identity, so a new model
// with a known feature set needs no codec changes.
type Feature uint16

const (
	// FeatureComplex indicates support for complex numbers and complex lists.
	FeatureComplex Feature = 1 << iota
	// FeatureFlash indicates flash archive support and the 13-byte entry meta.
	FeatureFlash
	// FeatureApps indicates application variable support.
	FeatureApps
	// FeatureClock indicates a real-time clock.
	FeatureClock
	// FeatureColor indicates a color screen and the extended color
	// trailers on graph databases and images.
	FeatureColor
	// FeatureEZ80 indicates the eZ80 CPU generation.
	FeatureEZ80
)

// Model identifies a calculator model family by its file signature.
type Model struct {
	// Name is the marketing name, e.g. "TI-84+CSE".
	Name string
	// Magic is the 8-byte signature at the start of a variable file.
	Magic string
	// ProductID is the per-model byte stored in the file header.
	ProductID uint8
	// Features is the model's capability set.
	Features Feature
}

// Has reports whether the model supports every feature in f.
func (m Model) Has(f Feature) bool {
	return m.Features&f == f
}

// String returns the model's name.
func (m Model) String() string {
	return m.Name
}

const (
	magic82  = "**TI82**"
	magic83  = "**TI83**"
	magic83P = "**TI83F*"
)

const (
	features82     = Feature(0)
	features83     = features82 | FeatureComplex
	features83P    = features83 | FeatureFlash | FeatureApps
	features84P    = features83P | FeatureClock
	features84PCSE = features84P | FeatureColor
	features84PCE  = features84PCSE | FeatureEZ80
)

// The registered model family, oldest first.
var (
	TI82     = Model{Name: "TI-82", Magic: magic82, ProductID: 0x00, Features: features82}
	TI83     = Model{Name: "TI-83", Magic: magic83, ProductID: 0x00, Features: features83}
	TI83P    = Model{Name: "TI-83+", Magic: magic83P, ProductID: 0x04, Features: features83P}
	TI84P    = Model{Name: "TI-84+", Magic: magic83P, ProductID: 0x0A, Features: features84P}
	TI84PCSE = Model{Name: "TI-84+CSE", Magic: magic83P, ProductID: 0x0F, Features: features84PCSE}
	TI83PCE  = Model{Name: "TI-83PCE", Magic: magic83P, ProductID: 0x13, Features: features84PCE}
	TI84PCE  = Model{Name: "TI-84+CE", Magic: magic83P, ProductID: 0x13, Features: features84PCE}
)

var registry = []Model{TI82, TI83, TI83P, TI84P, TI84PCSE, TI83PCE, TI84PCE}

// Models returns the registered models, oldest first. The returned slice
// is a copy and safe to modify.
func Models() []Model {
	out := make([]Model, len(registry))
	copy(out, registry)
	return out
}

// LookupMagic returns the oldest model bearing the given file magic.
// Several models share a magic; the oldest carries the smallest feature
// set and is the safe default when the product id is absent or zero.
func LookupMagic(magic string) (Model, bool) {
	for _, m := range registry {
		if m.Magic == magic {
			return m, true
		}
	}
	return Model{}, false
}

// LookupProductID refines a magic lookup with the header's product id.
// It falls back to the plain magic lookup when no registered model
// carries the id.
func LookupProductID(magic string, productID uint8) (Model, bool) {
	var fallback Model
	found := false
	for _, m := range registry {
		if m.Magic != magic {
			continue
		}
		if !found {
			fallback, found = m, true
		}
		if m.ProductID == productID {
			return m, true
		}
	}
	return fallback, found
}

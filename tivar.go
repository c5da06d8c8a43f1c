// Package tivar reads and writes TI graphing calculator variable files.
//
// A variable file carries one or more typed entries (reals, lists,
// matrices, programs, graph databases, pictures and so on) behind a
// fixed 53-byte header. All multi-byte fields are little-endian, and
// the trailing entry-length and checksum fields are derived from the
// entry region, never stored state. Files written by this package are
// byte-identical to their parsed input when nothing was mutated.
//
// # Packages
//
//   - vars: the file codec, entry model and typed entry views
//   - numeric: the 9-byte BCD floating point format
//   - model: calculator model registry (magic strings, product IDs, features)
//   - bundle: TI-(8x)CE zip bundles ("b84" / "b83" files)
//   - section: low-level byte section plumbing shared by the codecs
//
// # Basic Usage
//
// Parsing an existing file:
//
//	import "github.com/calcfile/tivar"
//
//	file, err := tivar.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, e := range file.Entries() {
//	    view, _ := vars.Specialize(e)
//	    fmt.Println(view.Name(), e.TypeName())
//	}
//
// Building a file from scratch:
//
//	file := tivar.New(model.TI84P)
//	x := vars.NewRealVar()
//	_ = x.SetName("X")
//	_ = x.SetDecimal(decimal.RequireFromString("1.5"))
//	_ = file.AddEntry(x.Entry)
//	raw, _ := file.Bytes()
//
// # Error Handling
//
// All errors wrap one of the category errors in the errs package
// (errs.ErrParse, errs.ErrValidation, errs.ErrEncoding), so callers
// can classify failures with errors.Is:
//
//	if errors.Is(err, errs.ErrParse) {
//	    // malformed input
//	}
package tivar

import (
	"io"

	"github.com/calcfile/tivar/model"
	"github.com/calcfile/tivar/vars"
)

// Parse decodes a complete variable file.
//
// Parsing is strict: the header magic must be known, the entries must
// tile the entry region exactly, and the stored checksum must match
// the computed one. Pass vars.WithLenient() to accept recoverable
// corruption and record what was fixed (see File.Repairs).
func Parse(data []byte, opts ...vars.ParseOption) (*vars.File, error) {
	return vars.ParseFile(data, opts...)
}

// ParseFrom reads a complete variable file from r and decodes it.
func ParseFrom(r io.Reader, opts ...vars.ParseOption) (*vars.File, error) {
	return vars.ParseFrom(r, opts...)
}

// New creates an empty variable file targeting the given calculator
// model. The header carries the model's magic, product ID and the
// default comment.
func New(m model.Model) *vars.File {
	return vars.NewFile(m)
}

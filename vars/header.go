package vars

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/model"
	"github.com/calcfile/tivar/section"
)

// HeaderSize is the fixed size of a variable file header in bytes.
const HeaderSize = 53

// DefaultComment is written into newly created headers.
const DefaultComment = "Created by tivar"

// Header field descriptors. The extra bytes default to 0x1A 0x0A but any
// value is preserved on round trip.
var (
	headerMagic   = section.NewField("magic", 0, 8, section.String{})
	headerExtra   = section.NewField("extra", 8, 2, section.Bytes{})
	headerProduct = section.NewField("product id", 10, 1, section.Uint{})
	headerComment = section.NewField("comment", 11, 42, section.String{})
)

var defaultExtra = []byte{0x1A, 0x0A}

// Header is the 53-byte preamble of a variable file. It identifies the
// target model family and carries a free-form comment. The entry length
// and checksum that follow it on the wire belong to File, not Header,
// because both are derived.
type Header struct {
	buf *section.Buffer
}

// NewHeader returns a header targeting the given model, with the
// default extra bytes and comment.
func NewHeader(m model.Model) *Header {
	h := &Header{buf: section.NewBuffer(HeaderSize)}
	// Writes into a fresh fixed-size buffer cannot fail.
	_ = headerMagic.Write(h.buf, m.Magic)
	_ = headerExtra.Write(h.buf, defaultExtra)
	_ = headerProduct.Write(h.buf, uint64(m.ProductID))
	_ = headerComment.Write(h.buf, DefaultComment)
	return h
}

// ParseHeader decodes exactly HeaderSize bytes. It fails with
// ErrInvalidHeaderSize when data is not 53 bytes long and with
// ErrUnknownMagic when the signature matches no registered model.
func ParseHeader(data []byte) (*Header, error) {
	if len(data) != HeaderSize {
		return nil, fmt.Errorf("%w: got %d bytes, want %d", errs.ErrInvalidHeaderSize, len(data), HeaderSize)
	}
	h := &Header{buf: section.FromBytes(data)}
	if _, ok := model.LookupMagic(h.Magic()); !ok {
		return nil, fmt.Errorf("%w: %q", errs.ErrUnknownMagic, h.Magic())
	}
	return h, nil
}

// Magic returns the 8-byte file signature.
func (h *Header) Magic() string {
	// The buffer is always HeaderSize bytes, reads cannot fail.
	v, _ := headerMagic.Read(h.buf)
	return v
}

// SetMagic overwrites the file signature. Unknown signatures are
// rejected so a header can only target a registered model family.
func (h *Header) SetMagic(magic string) error {
	if _, ok := model.LookupMagic(magic); !ok {
		return fmt.Errorf("%w: %q", errs.ErrUnknownMagic, magic)
	}
	return headerMagic.Write(h.buf, magic)
}

// Extra returns the two bytes following the magic.
func (h *Header) Extra() []byte {
	v, _ := headerExtra.Read(h.buf)
	return v
}

// SetExtra overwrites the two extra bytes.
func (h *Header) SetExtra(extra []byte) error {
	return headerExtra.Write(h.buf, extra)
}

// ProductID returns the per-model product id byte.
func (h *Header) ProductID() uint8 {
	v, _ := headerProduct.Read(h.buf)
	return uint8(v)
}

// SetProductID overwrites the product id byte.
func (h *Header) SetProductID(id uint8) {
	_ = headerProduct.Write(h.buf, uint64(id))
}

// Comment returns the comment with trailing padding stripped.
func (h *Header) Comment() string {
	v, _ := headerComment.Read(h.buf)
	return v
}

// SetComment overwrites the comment. Comments longer than 42 bytes are
// rejected; shorter ones are null padded.
func (h *Header) SetComment(comment string) error {
	return headerComment.Write(h.buf, comment)
}

// Model resolves the header's magic and product id against the model
// registry.
func (h *Header) Model() (model.Model, bool) {
	return model.LookupProductID(h.Magic(), h.ProductID())
}

// Bytes returns a copy of the 53 header bytes.
func (h *Header) Bytes() []byte {
	return h.buf.Clone().Bytes()
}

// Clone returns an independent copy of the header.
func (h *Header) Clone() *Header {
	return &Header{buf: h.buf.Clone()}
}

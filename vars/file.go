package vars

import (
	"fmt"
	"io"

	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/internal/options"
	"github.com/calcfile/tivar/model"
	"github.com/calcfile/tivar/section"
)

// maxEntryRegion bounds the serialized entry region, whose length must
// fit the u16 entry length word.
const maxEntryRegion = 0xFFFF

// parseConfig collects the knobs of ParseFile.
type parseConfig struct {
	lenient bool
}

// ParseOption configures ParseFile.
type ParseOption = options.Option[*parseConfig]

// WithLenient makes ParseFile repair recoverable defects, stale
// checksums, mismatched length words and unknown magics, instead of
// failing. Each repair is recorded and available via File.Repairs.
func WithLenient() ParseOption {
	return options.NoError(func(c *parseConfig) { c.lenient = true })
}

// File is a complete variable file: a header and an ordered sequence of
// entries. The entry length word and the trailing checksum are derived
// and recomputed on every serialization.
type File struct {
	header  *Header
	entries []*Entry
	repairs []string
}

// NewFile returns an empty file targeting the given model.
func NewFile(m model.Model) *File {
	return &File{header: NewHeader(m)}
}

// Compose builds a file from a header and entries, validating each
// entry's structural invariants.
func Compose(header *Header, entries ...*Entry) (*File, error) {
	f := &File{header: header.Clone()}
	for _, e := range entries {
		if err := f.AddEntry(e); err != nil {
			return nil, err
		}
	}
	return f, nil
}

// Header returns the file's header. Mutations are visible in the next
// Bytes call.
func (f *File) Header() *Header { return f.header }

// Entries returns the file's entries in order. The slice is a copy but
// the entries are shared.
func (f *File) Entries() []*Entry {
	out := make([]*Entry, len(f.entries))
	copy(out, f.entries)
	return out
}

// Entry returns the i-th entry, or nil when out of range.
func (f *File) Entry(i int) *Entry {
	if i < 0 || i >= len(f.entries) {
		return nil
	}
	return f.entries[i]
}

// Len returns the number of entries.
func (f *File) Len() int { return len(f.entries) }

// AddEntry validates e and appends it to the file.
func (f *File) AddEntry(e *Entry) error {
	if err := e.validate(); err != nil {
		return fmt.Errorf("entry %s: %w", e, err)
	}
	f.entries = append(f.entries, e)
	return nil
}

// RemoveEntry removes and returns the i-th entry, or nil when out of
// range.
func (f *File) RemoveEntry(i int) *Entry {
	if i < 0 || i >= len(f.entries) {
		return nil
	}
	e := f.entries[i]
	f.entries = append(f.entries[:i], f.entries[i+1:]...)
	return e
}

// Repairs lists the defects a lenient parse corrected, in input order.
// It is empty after a strict parse or for files built in memory.
func (f *File) Repairs() []string {
	out := make([]string, len(f.repairs))
	copy(out, f.repairs)
	return out
}

// entryRegion serializes all entries back to back.
func (f *File) entryRegion() []byte {
	size := 0
	for _, e := range f.entries {
		size += e.Len()
	}
	region := make([]byte, 0, size)
	for _, e := range f.entries {
		region = append(region, e.Bytes()...)
	}
	return region
}

// EntryLength returns the serialized size of the entry region.
func (f *File) EntryLength() int {
	size := 0
	for _, e := range f.entries {
		size += e.Len()
	}
	return size
}

// Checksum computes the lower 16 bits of the sum of every entry region
// byte.
func (f *File) Checksum() uint16 {
	return regionChecksum(f.entryRegion())
}

func regionChecksum(region []byte) uint16 {
	var sum uint16
	for _, b := range region {
		sum += uint16(b)
	}
	return sum
}

// Bytes serializes the file. The entry length and checksum are computed
// from the live entries, never carried over from a parse. It fails with
// ErrValueTooWide when the entry region exceeds the u16 length word.
func (f *File) Bytes() ([]byte, error) {
	region := f.entryRegion()
	if len(region) > maxEntryRegion {
		return nil, fmt.Errorf("%w: entry region is %d bytes, limit %d",
			errs.ErrValueTooWide, len(region), maxEntryRegion)
	}
	out := make([]byte, 0, HeaderSize+2+len(region)+2)
	out = append(out, f.header.buf.Bytes()...)
	out = engine.AppendUint16(out, uint16(len(region)))
	out = append(out, region...)
	out = engine.AppendUint16(out, regionChecksum(region))
	return out, nil
}

// WriteTo serializes the file into w.
func (f *File) WriteTo(w io.Writer) (int64, error) {
	b, err := f.Bytes()
	if err != nil {
		return 0, err
	}
	n, err := w.Write(b)
	return int64(n), err
}

// ParseFile decodes a complete variable file. Parsing is strict by
// default: the stored entry length must tile exactly into entries, the
// checksum must match, and nothing may follow it. WithLenient downgrades
// those defects to recorded repairs.
func ParseFile(data []byte, opts ...ParseOption) (*File, error) {
	var cfg parseConfig
	if err := options.Apply(&cfg, opts...); err != nil {
		return nil, err
	}

	f := &File{}

	if len(data) < HeaderSize+4 {
		return nil, fmt.Errorf("%w: %d bytes, a file needs at least %d",
			errs.ErrBufferTooShort, len(data), HeaderSize+4)
	}

	f.header = &Header{buf: section.FromBytes(data[:HeaderSize])}
	if _, ok := model.LookupMagic(f.header.Magic()); !ok {
		if !cfg.lenient {
			return nil, fmt.Errorf("%w: %q", errs.ErrUnknownMagic, f.header.Magic())
		}
		f.repairs = append(f.repairs, fmt.Sprintf("unknown magic %q accepted", f.header.Magic()))
	}

	entryLength := int(engine.Uint16(data[HeaderSize : HeaderSize+2]))
	regionStart := HeaderSize + 2
	if len(data) < regionStart+entryLength+2 {
		return nil, fmt.Errorf("%w: entry length says %d bytes but only %d remain",
			errs.ErrBufferTooShort, entryLength, len(data)-regionStart-2)
	}
	region := data[regionStart : regionStart+entryLength]

	for off := 0; off < len(region); {
		e, n, notes, err := parseEntry(region[off:], cfg.lenient)
		if err != nil {
			return nil, fmt.Errorf("entry %d at offset %d: %w", len(f.entries), regionStart+off, err)
		}
		f.repairs = append(f.repairs, notes...)
		if err := e.validate(); err != nil {
			if !cfg.lenient {
				return nil, fmt.Errorf("entry %d (%s): %w", len(f.entries), e, err)
			}
			e.syncEmbeddedLength()
			f.repairs = append(f.repairs, fmt.Sprintf("entry %d (%s): %v", len(f.entries), e, err))
		}
		f.entries = append(f.entries, e)
		off += n
	}

	stored := engine.Uint16(data[regionStart+entryLength : regionStart+entryLength+2])
	if computed := regionChecksum(region); stored != computed {
		if !cfg.lenient {
			return nil, fmt.Errorf("%w: stored 0x%04X, computed 0x%04X",
				errs.ErrChecksumMismatch, stored, computed)
		}
		f.repairs = append(f.repairs, fmt.Sprintf("checksum repaired: stored 0x%04X, computed 0x%04X", stored, computed))
	}

	if trailing := len(data) - (regionStart + entryLength + 2); trailing > 0 {
		if !cfg.lenient {
			return nil, fmt.Errorf("%w: %d bytes after checksum", errs.ErrTrailingData, trailing)
		}
		f.repairs = append(f.repairs, fmt.Sprintf("%d trailing bytes dropped", trailing))
	}

	return f, nil
}

// ParseFrom reads r to the end and parses the result as a variable
// file.
func ParseFrom(r io.Reader, opts ...ParseOption) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read variable file: %w", err)
	}
	return ParseFile(data, opts...)
}

package vars

import (
	"fmt"

	"github.com/calcfile/tivar/endian"
	"github.com/calcfile/tivar/errs"
	"github.com/calcfile/tivar/section"
)

// All multi-byte quantities in the format are little endian.
var engine = endian.GetLittleEndianEngine()

const (
	// baseMetaLength is the meta block size for flashless models.
	baseMetaLength uint16 = 11
	// flashMetaLength adds the version and archived bytes.
	flashMetaLength uint16 = 13

	nameLength = 8
)

// Entry is a single variable record: a meta block identifying the
// variable followed by its data. The data length appears twice on the
// wire, once in the meta block and once directly before the data; both
// copies are recomputed from the live data on serialization.
type Entry struct {
	metaLength  uint16
	typeID      uint8
	rawName     [nameLength]byte
	version     uint8
	archivedRaw uint8
	data        *section.Buffer
}

// NewEntry creates an entry of the given type with flash meta, the
// type's default name and a minimal well formed data block.
func NewEntry(typeID uint8) (*Entry, error) {
	info, ok := typeTable[typeID]
	if !ok {
		return nil, fmt.Errorf("%w: 0x%02X", errs.ErrUnknownTypeID, typeID)
	}
	e := &Entry{
		metaLength: flashMetaLength,
		typeID:     typeID,
		data:       section.NewBuffer(info.minDataLength),
	}
	var err error
	if e.rawName, err = info.encodeName(info.defaultName); err != nil {
		return nil, err
	}
	e.syncEmbeddedLength()
	return e, nil
}

// parseEntry decodes one entry from the front of data and returns the
// number of bytes consumed. In lenient mode recoverable defects are
// repaired and described in the returned notes instead of failing.
func parseEntry(data []byte, lenient bool) (*Entry, int, []string, error) {
	var notes []string

	if len(data) < 4 {
		return nil, 0, nil, fmt.Errorf("%w: %d bytes left, entry prefix needs 4", errs.ErrBufferTooShort, len(data))
	}
	metaLength := engine.Uint16(data[0:2])
	if metaLength != baseMetaLength && metaLength != flashMetaLength {
		return nil, 0, nil, fmt.Errorf("%w: %d", errs.ErrInvalidMetaLength, metaLength)
	}

	// meta length word + meta block + second data length word
	headerSize := 2 + int(metaLength) + 2
	if len(data) < headerSize {
		return nil, 0, nil, fmt.Errorf("%w: %d bytes left, meta needs %d", errs.ErrBufferTooShort, len(data), headerSize)
	}

	metaDataLength := engine.Uint16(data[2:4])
	dataLength := engine.Uint16(data[headerSize-2 : headerSize])
	if metaDataLength != dataLength {
		if !lenient {
			return nil, 0, nil, fmt.Errorf("%w: meta says %d bytes, data block says %d",
				errs.ErrLengthMismatch, metaDataLength, dataLength)
		}
		notes = append(notes, fmt.Sprintf("data length mismatch repaired: meta %d, data block %d", metaDataLength, dataLength))
	}

	total := headerSize + int(dataLength)
	if len(data) < total {
		return nil, 0, nil, fmt.Errorf("%w: %d bytes left, entry needs %d", errs.ErrBufferTooShort, len(data), total)
	}

	e := &Entry{
		metaLength: metaLength,
		typeID:     data[4],
		data:       section.FromBytes(data[headerSize:total]),
	}
	copy(e.rawName[:], data[5:5+nameLength])
	if metaLength == flashMetaLength {
		e.version = data[5+nameLength]
		e.archivedRaw = data[6+nameLength]
	}
	return e, total, notes, nil
}

// ParseEntry decodes an entry that occupies the whole of data. Trailing
// bytes after the entry fail with ErrTrailingData.
func ParseEntry(data []byte) (*Entry, error) {
	e, n, _, err := parseEntry(data, false)
	if err != nil {
		return nil, err
	}
	if n != len(data) {
		return nil, fmt.Errorf("%w: %d bytes after entry", errs.ErrTrailingData, len(data)-n)
	}
	return e, nil
}

// MetaLength reports the meta block size, 11 or 13.
func (e *Entry) MetaLength() uint16 { return e.metaLength }

// Flash reports whether the entry carries the 13-byte flash meta.
func (e *Entry) Flash() bool { return e.metaLength == flashMetaLength }

// SetFlash toggles between the 13-byte flash meta and the legacy
// 11-byte meta. Dropping to the legacy meta discards the version and
// archived bytes.
func (e *Entry) SetFlash(flash bool) {
	if flash {
		e.metaLength = flashMetaLength
		return
	}
	e.metaLength = baseMetaLength
	e.version = 0
	e.archivedRaw = 0
}

// TypeID returns the entry's variable type id.
func (e *Entry) TypeID() uint8 { return e.typeID }

// TypeName returns the human-readable type name, or a hex placeholder
// for unknown ids.
func (e *Entry) TypeName() string {
	if name, ok := TypeName(e.typeID); ok {
		return name
	}
	return fmt.Sprintf("Unknown(0x%02X)", e.typeID)
}

// RawName returns the 8 name bytes as stored.
func (e *Entry) RawName() [nameLength]byte { return e.rawName }

// SetRawName overwrites the name bytes without validation.
func (e *Entry) SetRawName(raw [nameLength]byte) { e.rawName = raw }

// Name renders the entry's name under its type's naming rules.
func (e *Entry) Name() string {
	if info, ok := typeTable[e.typeID]; ok {
		return info.decodeName(e.rawName[:])
	}
	return decodeName(e.rawName[:])
}

// SetName validates name under the entry type's rules and stores it.
func (e *Entry) SetName(name string) error {
	enc := plainName(nameLength)
	if info, ok := typeTable[e.typeID]; ok {
		enc = info.encodeName
	}
	raw, err := enc(name)
	if err != nil {
		return err
	}
	e.rawName = raw
	return nil
}

// Version returns the version byte. Entries with the legacy 11-byte
// meta have no version and fail with ErrFlashlessMeta.
func (e *Entry) Version() (uint8, error) {
	if !e.Flash() {
		return 0, fmt.Errorf("%w: no version byte", errs.ErrFlashlessMeta)
	}
	return e.version, nil
}

// SetVersion sets the version byte, failing with ErrFlashlessMeta on
// legacy meta.
func (e *Entry) SetVersion(v uint8) error {
	if !e.Flash() {
		return fmt.Errorf("%w: no version byte", errs.ErrFlashlessMeta)
	}
	e.version = v
	return nil
}

// Archived reports whether the entry is flash archived, failing with
// ErrFlashlessMeta on legacy meta.
func (e *Entry) Archived() (bool, error) {
	if !e.Flash() {
		return false, fmt.Errorf("%w: no archived byte", errs.ErrFlashlessMeta)
	}
	return section.Boolean{}.Decode([]byte{e.archivedRaw})
}

// SetArchived sets the archived byte, failing with ErrFlashlessMeta on
// legacy meta.
func (e *Entry) SetArchived(archived bool) error {
	if !e.Flash() {
		return fmt.Errorf("%w: no archived byte", errs.ErrFlashlessMeta)
	}
	raw, err := section.Boolean{}.Encode(archived, 1)
	if err != nil {
		return err
	}
	e.archivedRaw = raw[0]
	return nil
}

// Data returns the entry's live data buffer. Mutations through the
// buffer are visible in the next Bytes call.
func (e *Entry) Data() *section.Buffer { return e.data }

// SetData replaces the entry's data with a copy of b.
func (e *Entry) SetData(b []byte) {
	e.data = section.FromBytes(b)
	e.syncEmbeddedLength()
}

// sized reports whether the entry's type embeds a length word at the
// front of its data.
func (e *Entry) sized() bool {
	info, ok := typeTable[e.typeID]
	return ok && info.sized
}

// embeddedLength reads the length word at the front of sized data. The
// word counts the bytes that follow it, two less than the data length.
func (e *Entry) embeddedLength() (int, bool) {
	if !e.sized() || e.data.Len() < 2 {
		return 0, false
	}
	return int(engine.Uint16(e.data.Bytes()[0:2])), true
}

// syncEmbeddedLength rewrites the embedded length word of sized data to
// match the current data length.
func (e *Entry) syncEmbeddedLength() {
	if !e.sized() || e.data.Len() < 2 {
		return
	}
	engine.PutUint16(e.data.Bytes()[0:2], uint16(e.data.Len()-2))
}

// validate checks the entry's structural invariants: a known type must
// meet its minimum data length, and sized data must carry a consistent
// embedded length word.
func (e *Entry) validate() error {
	if e.data.Len() > maxEntryRegion {
		return fmt.Errorf("%w: data is %d bytes, limit %d", errs.ErrValueTooWide, e.data.Len(), maxEntryRegion)
	}
	info, ok := typeTable[e.typeID]
	if !ok {
		return nil
	}
	if e.data.Len() < info.minDataLength {
		return fmt.Errorf("%w: %s data is %d bytes, minimum %d",
			errs.ErrBufferTooShort, info.name, e.data.Len(), info.minDataLength)
	}
	if emb, ok := e.embeddedLength(); ok && emb != e.data.Len()-2 {
		return fmt.Errorf("%w: embedded length %d, data block holds %d",
			errs.ErrLengthMismatch, emb, e.data.Len()-2)
	}
	return nil
}

// Len returns the serialized size of the entry in bytes.
func (e *Entry) Len() int {
	return 2 + int(e.metaLength) + 2 + e.data.Len()
}

// Bytes serializes the entry. Both data length copies are recomputed
// from the live data, and sized types get their embedded length word
// refreshed, so mutated entries can never carry stale lengths.
func (e *Entry) Bytes() []byte {
	e.syncEmbeddedLength()
	dataLength := uint16(e.data.Len())

	out := make([]byte, 0, e.Len())
	out = engine.AppendUint16(out, e.metaLength)
	out = engine.AppendUint16(out, dataLength)
	out = append(out, e.typeID)
	out = append(out, e.rawName[:]...)
	if e.Flash() {
		out = append(out, e.version, e.archivedRaw)
	}
	out = engine.AppendUint16(out, dataLength)
	out = append(out, e.data.Bytes()...)
	return out
}

// Clone returns a deep copy of the entry.
func (e *Entry) Clone() *Entry {
	dup := *e
	dup.data = e.data.Clone()
	return &dup
}

// String describes the entry for logs and error messages.
func (e *Entry) String() string {
	return fmt.Sprintf("%s %s (%d data bytes)", e.TypeName(), e.Name(), e.data.Len())
}

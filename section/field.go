package section

// Field binds a Section to a Codec, forming the typed accessor the rest of
// the library reads and writes entry data through. A Field is itself pure
// data; it borrows a Buffer only for the duration of a Read or Write.
type Field[T any] struct {
	Section
	Codec Codec[T]
}

// NewField creates a field descriptor from a section layout and codec.
func NewField[T any](name string, offset, width int, codec Codec[T]) Field[T] {
	return Field[T]{Section: New(name, offset, width), Codec: codec}
}

// Bind creates a field from an existing section descriptor.
func Bind[T any](sec Section, codec Codec[T]) Field[T] {
	return Field[T]{Section: sec, Codec: codec}
}

// Read slices the field's byte range out of buf and decodes it.
func (f Field[T]) Read(buf *Buffer) (T, error) {
	var zero T

	raw, err := buf.Slice(f.Section)
	if err != nil {
		return zero, err
	}

	return f.Codec.Decode(raw)
}

// Write encodes value and overwrites the field's byte range in buf. For
// fixed-width fields the buffer size is unchanged; a Rest-width field
// replaces everything from its offset onward, resizing the buffer. Patching
// codecs (bit slices) modify their range in place, preserving other bits.
func (f Field[T]) Write(buf *Buffer, value T) error {
	if p, ok := f.Codec.(patcher[T]); ok {
		raw, err := buf.Slice(f.Section)
		if err != nil {
			return err
		}

		return p.patch(value, raw)
	}

	encoded, err := f.Codec.Encode(value, f.Width)
	if err != nil {
		return err
	}

	return buf.Replace(f.Section, encoded)
}

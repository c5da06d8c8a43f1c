package section

// Buffer is a contiguous, mutable byte sequence owned by exactly one entry,
// header, or file object. All typed views read and write through it; no
// object holds two independent buffers for the same logical data.
//
// Buffer is not safe for concurrent use.
type Buffer struct {
	data []byte
}

// NewBuffer creates a zero-filled buffer of the given size.
func NewBuffer(size int) *Buffer {
	return &Buffer{data: make([]byte, size)}
}

// FromBytes creates a buffer holding a copy of data. The copy keeps the
// buffer exclusively owned regardless of what the caller does with data
// afterwards.
func FromBytes(data []byte) *Buffer {
	return &Buffer{data: append([]byte(nil), data...)}
}

// Len returns the current byte length of the buffer.
func (b *Buffer) Len() int {
	return len(b.data)
}

// Bytes returns the underlying byte slice. The slice is borrowed: it remains
// valid only until the next mutation and must not be retained or modified by
// the caller. Use Clone for an independent copy.
func (b *Buffer) Bytes() []byte {
	return b.data
}

// Clone returns an independent copy of the buffer.
func (b *Buffer) Clone() *Buffer {
	return FromBytes(b.data)
}

// Resize grows or shrinks the buffer to n bytes. Grown space is zero-filled;
// shrinking truncates from the end.
func (b *Buffer) Resize(n int) {
	switch {
	case n <= len(b.data):
		b.data = b.data[:n]
	case n <= cap(b.data):
		tail := b.data[len(b.data):n]
		for i := range tail {
			tail[i] = 0
		}
		b.data = b.data[:n]
	default:
		grown := make([]byte, n)
		copy(grown, b.data)
		b.data = grown
	}
}

// Append appends p to the end of the buffer.
func (b *Buffer) Append(p ...byte) {
	b.data = append(b.data, p...)
}

// Slice resolves sec against the buffer and returns the backing byte range.
// The returned slice aliases the buffer; writes through it mutate the buffer
// directly.
func (b *Buffer) Slice(sec Section) ([]byte, error) {
	start, end, err := sec.Bounds(len(b.data))
	if err != nil {
		return nil, err
	}

	return b.data[start:end], nil
}

// Replace substitutes the byte range of sec with payload, resizing the
// buffer when the widths differ. Only start-anchored sections may change
// width; back-anchored trailers are fixed-size.
func (b *Buffer) Replace(sec Section, payload []byte) error {
	start, end, err := sec.Bounds(len(b.data))
	if err != nil {
		return err
	}

	if len(payload) == end-start {
		copy(b.data[start:end], payload)
		return nil
	}

	rebuilt := make([]byte, 0, start+len(payload)+len(b.data)-end)
	rebuilt = append(rebuilt, b.data[:start]...)
	rebuilt = append(rebuilt, payload...)
	rebuilt = append(rebuilt, b.data[end:]...)
	b.data = rebuilt

	return nil
}

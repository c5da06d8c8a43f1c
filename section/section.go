package section

import (
	"fmt"

	"github.com/calcfile/tivar/errs"
)

// Rest marks a section that spans from its offset to the end of the buffer.
const Rest = -1

// Section is a named, typed field descriptor: pure data, bound to no buffer.
//
// Offset addresses the byte range: a non-negative offset counts from the
// start of the containing buffer, a negative offset counts backward from its
// end. Back-anchored sections keep trailer fields at a fixed relative
// position regardless of how much variable-length content precedes them.
//
// Width is a fixed byte count, or Rest to span to the end of the buffer.
type Section struct {
	Name   string
	Offset int
	Width  int
}

// New creates a section descriptor.
func New(name string, offset, width int) Section {
	return Section{Name: name, Offset: offset, Width: width}
}

// Bounds resolves the section against a buffer of the given size and returns
// the half-open byte range [start, end). It fails with a parse error when
// the range falls outside the buffer.
func (s Section) Bounds(size int) (int, int, error) {
	start := s.Offset
	if start < 0 {
		start += size
	}

	end := start + s.Width
	if s.Width == Rest {
		end = size
	}

	if start < 0 || end < start || end > size {
		return 0, 0, fmt.Errorf("%w: section %q [%d:%d) in %d bytes",
			errs.ErrSectionOutOfBounds, s.Name, start, end, size)
	}

	return start, end, nil
}

// ReadLengthPrefixed reads a u16le length at offset followed by that many
// payload bytes, returning the payload and the offset one past it.
func ReadLengthPrefixed(data []byte, offset int) ([]byte, int, error) {
	if offset < 0 || offset+2 > len(data) {
		return nil, 0, fmt.Errorf("%w: length prefix at %d in %d bytes",
			errs.ErrBufferTooShort, offset, len(data))
	}

	length := int(data[offset]) | int(data[offset+1])<<8
	end := offset + 2 + length
	if end > len(data) {
		return nil, 0, fmt.Errorf("%w: %d-byte region at %d overruns %d bytes",
			errs.ErrBufferTooShort, length, offset+2, len(data))
	}

	return data[offset+2 : end], end, nil
}

// AppendLengthPrefixed appends a u16le length prefix followed by payload.
func AppendLengthPrefixed(dst []byte, payload []byte) []byte {
	dst = append(dst, byte(len(payload)), byte(len(payload)>>8))
	return append(dst, payload...)
}

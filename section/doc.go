// Package section implements the declarative byte-range framework that every
// tivar structure is defined in terms of.
//
// The framework separates "where bytes live" from "what they mean":
//
//   - Buffer is a contiguous, exclusively-owned byte sequence backing exactly
//     one entry, header, or file object.
//   - Section is a pure-data descriptor: a name, an offset, and a width.
//     A negative offset counts backward from the end of the buffer, which is
//     how trailer fields stay addressable behind variable-length content.
//   - Codec converts between a raw byte range and a typed value.
//   - Field binds a Section to a Codec, giving typed Read/Write accessors
//     over a Buffer.
//
// Reading slices the byte range and decodes it; writing encodes the value
// and overwrites the range in place. Out-of-bounds ranges fail with a parse
// error, values that do not fit their section fail with an encoding error.
//
// # Basic Usage
//
//	buf := section.NewBuffer(9)
//	exponent := section.NewField("exponent", 1, 1, section.Uint{})
//	if err := exponent.Write(buf, 0x80); err != nil {
//	    return err
//	}
//	e, err := exponent.Read(buf)
//
// Variable-length regions use a two-byte little-endian length prefix; see
// ReadLengthPrefixed and AppendLengthPrefixed.
package section

// Package errs defines the error taxonomy shared by all tivar packages.
//
// Errors fall into three categories:
//
//   - ErrParse: the input bytes cannot be interpreted at all (truncated
//     buffer, offset out of bounds, unrecognized magic or type id).
//   - ErrValidation: the bytes parse but violate a structural rule (bad
//     name, stored length or checksum disagreeing with the recomputed
//     value, reading an undefined-flagged number).
//   - ErrEncoding: a value cannot be represented in its target section
//     (exponent out of range, string wider than its field).
//
// Every sentinel in this package wraps its category error, so callers can
// match either the precise condition or the whole class:
//
//	if errors.Is(err, errs.ErrChecksumMismatch) { ... }
//	if errors.Is(err, errs.ErrValidation) { ... }
package errs

import (
	"errors"
	"fmt"
)

// Category errors. Sentinels below wrap exactly one of these.
var (
	ErrParse      = errors.New("parse error")
	ErrValidation = errors.New("validation error")
	ErrEncoding   = errors.New("encoding error")
)

func parseErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrParse, msg)
}

func validationErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}

func encodingErr(msg string) error {
	return fmt.Errorf("%w: %s", ErrEncoding, msg)
}

// Parse errors.
var (
	ErrBufferTooShort     = parseErr("buffer too short")
	ErrSectionOutOfBounds = parseErr("section out of bounds")
	ErrInvalidHeaderSize  = parseErr("invalid header size")
	ErrInvalidMetaLength  = parseErr("invalid entry meta length")
	ErrUnknownTypeID      = parseErr("unknown type id")
	ErrUnknownModeID      = parseErr("unknown graph mode id")
	ErrUnknownMagic       = parseErr("unrecognized file magic")
	ErrTrailingData       = parseErr("unexpected trailing data")
	ErrInvalidBundle      = parseErr("invalid bundle archive")
)

// Validation errors.
var (
	ErrInvalidName         = validationErr("invalid variable name")
	ErrLengthMismatch      = validationErr("stored length disagrees with recomputed length")
	ErrChecksumMismatch    = validationErr("stored checksum disagrees with recomputed checksum")
	ErrFlashlessMeta       = validationErr("entry meta has no version or archived fields")
	ErrUndefinedValue      = validationErr("numeric value is flagged undefined")
	ErrInvalidBCD          = validationErr("invalid BCD digit pattern")
	ErrDimensionTooLarge   = validationErr("dimension exceeds format limit")
	ErrInvalidEnumValue    = validationErr("byte is not a valid enum value")
	ErrBundleChecksum      = validationErr("bundle checksum disagrees with member CRCs")
	ErrInvalidColorTrailer = validationErr("color trailer magic missing or malformed")
)

// Encoding errors.
var (
	ErrValueTooWide        = encodingErr("value does not fit section width")
	ErrExponentOutOfRange  = encodingErr("decimal exponent outside representable range")
	ErrNameTooLong         = encodingErr("name longer than its field")
	ErrNegativeUnsupported = encodingErr("negative value not representable")
)

// Package numeric implements the base-100 BCD floating point codec used by
// real and complex variable entries.
//
// A real value occupies nine bytes: one flags byte, one exponent byte biased
// by 0x80, and seven mantissa bytes holding fourteen decimal digits in
// binary-coded decimal, most significant digit first. A complex value is two
// such blocks back to back, real half then imaginary half, with the
// complex-half flag bits set on both.
//
// Values convert to and from decimal.Decimal so the fourteen-digit precision
// of the format survives the trip exactly; float64 accessors are provided
// for convenience and carry the usual binary floating point caveats.
package numeric

// Package duration implements a signed span of time with nanosecond
// precision and a range of roughly ±292 billion years.
//
// A Duration is stored as whole seconds plus a sub-second nanosecond part,
// and the two parts always carry the same sign. Arithmetic comes in three
// families:
//
//   - Checked methods (CheckedAdd, CheckedMul, ...) return false instead
//     of overflowing.
//   - Saturating methods (SaturatingAdd, SaturatingMul, ...) clamp to
//     Min or Max.
//   - Plain methods (Add, Sub, Mul, Neg, ...) panic with an error wrapping
//     ErrOverflow.
//
// Unsigned is the non-negative counterpart used at conversion boundaries.
// Bridges to time.Duration and the protobuf well-known Duration are provided
// as well.
package duration

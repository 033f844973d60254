// Package table generates fixed-point quarter-wave sine tables.
//
// A table is a pure function of two precision parameters:
//
//   - AngleBits: a full period is divided into 2^AngleBits angle steps.
//   - ValueBits: the fixed-point scale; 1.0 is stored as 2^ValueBits.
//
// Only the first quarter period [0, π/2] is sampled, inclusive on both ends,
// so a table holds 2^(AngleBits-2) + 1 entries. Entry i is
//
//	trunc(sin(i / quarterLength * π/2) * 2^ValueBits)
//
// except the final entry, which is exactly 2^ValueBits. Truncation is toward
// zero, so every interior entry is at or below the true value.
//
// Key invariants (checked by Table.Verify):
//   - entry 0 is exactly 0
//   - the last entry is exactly 2^ValueBits
//   - entries are strictly increasing
//
// Tables are immutable once generated and safe for concurrent readers.
// Reconstruction of a full period from a table lives in package lookup.
package table

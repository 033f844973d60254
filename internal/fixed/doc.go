// Package fixed provides binary fixed-point numbers and turn-based angles
// whose sine and cosine come from a quarter-wave table.
//
// A Format fixes the number of fractional bits; it matches the value
// precision of the table so lookups need no rescaling. Angles are fractions
// of a full turn in the same format: Turn() is 1.0, Quarter() is 0.25.
//
// Trig.Sin maps an angle to a table angle index plus a sub-step remainder and
// interpolates linearly between the two neighbouring lookups. All arithmetic
// is integer; floats appear only in the explicit conversion helpers.
package fixed

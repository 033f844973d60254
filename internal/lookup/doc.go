// Package lookup reconstructs a full period of sine and cosine from a
// quarter-wave table using integer arithmetic and quadrant symmetry.
//
// For an angle index in [0, resolution), with q = index / quarterLength and
// r = index % quarterLength:
//
//	Quadrant0:  table[r]
//	Quadrant1:  table[quarterLength-r]
//	Quadrant2: -table[r]
//	Quadrant3: -table[quarterLength-r]
//
// When r is 0 in Quadrant1 or Quadrant3 the mirrored index is quarterLength,
// the exact peak entry, which the inclusive table always holds.
//
// Cosine is sine shifted by one quarter period. The protocol never wraps an
// index on its own: Sin and Cos panic with a *DomainError on an index outside
// [0, resolution). Callers normalize with Normalize first, or use the Checked
// variants where an error return is more useful than a panic.
//
// A Protocol is immutable and safe for concurrent use.
package lookup

// Package analysis measures how far a fixed-point sine table strays from
// the float64 reference.
//
// Errors are expressed in ULPs, one step of the table's value precision.
// Truncation makes every quarter-table error non-positive, so the quarter
// bias is negative; mirrored negative quadrants flip the sign and the
// full-period bias is close to zero.
package analysis

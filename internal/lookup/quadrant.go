package lookup

import "fmt"

// Quadrant is one of the four equal angle-index ranges of a full period.
type Quadrant int

const (
	Quadrant0 Quadrant = iota // [0, π/2): ascending
	Quadrant1                 // [π/2, π): mirrored
	Quadrant2                 // [π, 3π/2): negated
	Quadrant3                 // [3π/2, 2π): mirrored and negated
)

// Mirrored reports whether the quadrant reads the table from the top down.
func (q Quadrant) Mirrored() bool {
	return q == Quadrant1 || q == Quadrant3
}

// Negative reports whether the quadrant negates the table value.
func (q Quadrant) Negative() bool {
	return q == Quadrant2 || q == Quadrant3
}

func (q Quadrant) String() string {
	switch q {
	case Quadrant0, Quadrant1, Quadrant2, Quadrant3:
		return fmt.Sprintf("Q%d", int(q))
	default:
		return fmt.Sprintf("Quadrant(%d)", int(q))
	}
}

package table

import "math"

// Table is an immutable quarter-wave sine table.
type Table struct {
	params  Params
	entries []int64
}

// Generate validates p and samples the first quarter period.
// No entry is computed when validation fails.
func Generate(p Params) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	q := p.QuarterLength()
	entries := make([]int64, 0, q+1)
	for i := 0; i < q; i++ {
		entries = append(entries, Sample(i, q, p.ValueBits))
	}
	// sin(π/2) is exactly one; never rely on the float path for the peak.
	entries = append(entries, p.One())

	return &Table{params: p, entries: entries}, nil
}

// MustGenerate is like Generate but panics on invalid parameters.
// Use only with constant parameters known to be valid.
func MustGenerate(p Params) *Table {
	t, err := Generate(p)
	if err != nil {
		panic(err)
	}
	return t
}

// Sample is the value transform for one step: sample, scale, truncate.
func Sample(i, quarterLength, valueBits int) int64 {
	theta := float64(i) / float64(quarterLength) * (math.Pi / 2)
	return int64(math.Sin(theta) * float64(int64(1)<<valueBits))
}

// Params returns the precision parameters the table was generated from.
func (t *Table) Params() Params { return t.params }

// AngleBits returns the angle precision.
func (t *Table) AngleBits() int { return t.params.AngleBits }

// ValueBits returns the value precision.
func (t *Table) ValueBits() int { return t.params.ValueBits }

// QuarterLength returns 2^(AngleBits-2).
func (t *Table) QuarterLength() int { return t.params.QuarterLength() }

// Resolution returns 2^AngleBits.
func (t *Table) Resolution() int { return t.params.Resolution() }

// One returns 2^ValueBits.
func (t *Table) One() int64 { return t.params.One() }

// Len returns the number of entries, QuarterLength()+1.
func (t *Table) Len() int { return len(t.entries) }

// At returns entry i. Valid indexes are [0, QuarterLength()], inclusive.
func (t *Table) At(i int) int64 { return t.entries[i] }

// Entries returns a copy of the table entries.
func (t *Table) Entries() []int64 {
	out := make([]int64, len(t.entries))
	copy(out, t.entries)
	return out
}

// Verify checks the length, boundary and monotonicity invariants.
// The returned error is an *InvariantError.
func (t *Table) Verify() error {
	want := t.params.Len()
	if len(t.entries) != want {
		return &InvariantError{Index: len(t.entries), Message: "table length does not match quarter length + 1"}
	}
	if t.entries[0] != 0 {
		return &InvariantError{Index: 0, Message: "first entry must be exactly 0"}
	}
	last := len(t.entries) - 1
	if t.entries[last] != t.params.One() {
		return &InvariantError{Index: last, Message: "last entry must be exactly 2^value_precision_bits"}
	}
	for i := 0; i < last; i++ {
		if t.entries[i] >= t.entries[i+1] {
			return &InvariantError{Index: i + 1, Message: "entries must be strictly increasing"}
		}
	}
	return nil
}

// FromEntries wraps previously emitted entries, for example a table compiled
// into a consumer, after checking them against p. The entries are copied.
func FromEntries(p Params, entries []int64) (*Table, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	t := &Table{params: p, entries: make([]int64, len(entries))}
	copy(t.entries, entries)
	if err := t.Verify(); err != nil {
		return nil, err
	}
	return t, nil
}

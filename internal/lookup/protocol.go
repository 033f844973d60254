package lookup

import (
	"github.com/roach88/fixtrig/internal/table"
)

// Protocol reads a quarter-wave table over a full period.
type Protocol struct {
	entries    []int64
	quarter    int
	resolution int
	angleBits  int
	valueBits  int
}

// New builds a protocol over a generated table.
func New(t *table.Table) *Protocol {
	return &Protocol{
		entries:    t.Entries(),
		quarter:    t.QuarterLength(),
		resolution: t.Resolution(),
		angleBits:  t.AngleBits(),
		valueBits:  t.ValueBits(),
	}
}

// FromEntries builds a protocol over entries emitted earlier, for example an
// array compiled into a consumer. The entries are verified against p.
func FromEntries(p table.Params, entries []int64) (*Protocol, error) {
	t, err := table.FromEntries(p, entries)
	if err != nil {
		return nil, err
	}
	return New(t), nil
}

// QuarterLength returns the number of angle steps per quadrant.
func (p *Protocol) QuarterLength() int { return p.quarter }

// Resolution returns the number of angle steps per full period.
func (p *Protocol) Resolution() int { return p.resolution }

// AngleBits returns the angle precision of the underlying table.
func (p *Protocol) AngleBits() int { return p.angleBits }

// ValueBits returns the value precision of the underlying table.
func (p *Protocol) ValueBits() int { return p.valueBits }

// One returns the fixed-point representation of 1.0.
func (p *Protocol) One() int64 { return int64(1) << p.valueBits }

// InRange reports whether idx is a valid angle index.
func (p *Protocol) InRange(idx int) bool {
	return idx >= 0 && idx < p.resolution
}

// Normalize wraps any integer, including negatives, into [0, Resolution).
func (p *Protocol) Normalize(idx int) int {
	// resolution is a power of two
	return idx & (p.resolution - 1)
}

// QuadrantOf splits idx into its quadrant and the offset within it.
// It panics with a *DomainError if idx is out of range.
func (p *Protocol) QuadrantOf(idx int) (Quadrant, int) {
	p.mustInRange(idx)
	return Quadrant(idx / p.quarter), idx % p.quarter
}

// Sin returns sin(idx * 2π / Resolution) in fixed point.
// It panics with a *DomainError if idx is out of range.
func (p *Protocol) Sin(idx int) int64 {
	q, r := p.QuadrantOf(idx)
	return p.read(q, r)
}

// Cos returns cos(idx * 2π / Resolution) in fixed point.
// It panics with a *DomainError if idx is out of range.
func (p *Protocol) Cos(idx int) int64 {
	p.mustInRange(idx)
	return p.Sin((idx + p.quarter) % p.resolution)
}

// SinCos returns both Sin(idx) and Cos(idx).
func (p *Protocol) SinCos(idx int) (sin, cos int64) {
	return p.Sin(idx), p.Cos(idx)
}

// SinChecked is Sin with an error return instead of a panic.
func (p *Protocol) SinChecked(idx int) (int64, error) {
	if !p.InRange(idx) {
		return 0, &DomainError{Index: idx, Resolution: p.resolution}
	}
	return p.Sin(idx), nil
}

// CosChecked is Cos with an error return instead of a panic.
func (p *Protocol) CosChecked(idx int) (int64, error) {
	if !p.InRange(idx) {
		return 0, &DomainError{Index: idx, Resolution: p.resolution}
	}
	return p.Cos(idx), nil
}

// TableIndex returns the table entry and sign used for idx. Mirrored
// quadrants with a zero offset map to QuarterLength, the peak entry.
func (p *Protocol) TableIndex(idx int) (entry int, negative bool) {
	q, r := p.QuadrantOf(idx)
	if q.Mirrored() {
		return p.quarter - r, q.Negative()
	}
	return r, q.Negative()
}

func (p *Protocol) read(q Quadrant, r int) int64 {
	switch q {
	case Quadrant0:
		return p.entries[r]
	case Quadrant1:
		return p.entries[p.quarter-r]
	case Quadrant2:
		return -p.entries[r]
	default:
		return -p.entries[p.quarter-r]
	}
}

func (p *Protocol) mustInRange(idx int) {
	if !p.InRange(idx) {
		panic(&DomainError{Index: idx, Resolution: p.resolution})
	}
}

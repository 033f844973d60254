package fixed

import (
	"fmt"

	"github.com/roach88/fixtrig/internal/lookup"
)

// Trig evaluates sine and cosine of turn-based angles with a lookup protocol.
type Trig struct {
	Format
	proto *lookup.Protocol
	// angle units per table angle step, 2^(ValueBits-AngleBits)
	ratio int64
}

// NewTrig binds a Format to p's value precision.
//
// The value precision must be at least the angle precision so every table
// step spans a whole number of angle units, and 2*ValueBits-AngleBits must
// stay below 63 so interpolation cannot overflow.
func NewTrig(p *lookup.Protocol) (*Trig, error) {
	v, a := p.ValueBits(), p.AngleBits()
	if v < a {
		return nil, fmt.Errorf("%w: value precision %d below angle precision %d", ErrFormat, v, a)
	}
	if 2*v-a > 62 {
		return nil, fmt.Errorf("%w: value precision %d overflows interpolation at angle precision %d", ErrFormat, v, a)
	}
	f, err := NewFormat(v)
	if err != nil {
		return nil, err
	}
	return &Trig{Format: f, proto: p, ratio: int64(1) << (v - a)}, nil
}

// Protocol returns the underlying lookup protocol.
func (t *Trig) Protocol() *lookup.Protocol { return t.proto }

// Sin returns sin(a) for any angle, wrapping it into one turn first.
func (t *Trig) Sin(a Angle) Point {
	circular := int64(t.Wrap(a))
	idx := int(circular / t.ratio)
	intra := circular % t.ratio

	s0 := t.proto.Sin(idx)
	if intra == 0 {
		return Point(s0)
	}
	s1 := t.proto.Sin(t.proto.Normalize(idx + 1))
	return Point((s0*(t.ratio-intra) + s1*intra) / t.ratio)
}

// Cos returns cos(a), the sine a quarter turn later.
func (t *Trig) Cos(a Angle) Point {
	return t.Sin(a + t.Quarter())
}

// SinCos returns both Sin(a) and Cos(a).
func (t *Trig) SinCos(a Angle) (sin, cos Point) {
	return t.Sin(a), t.Cos(a)
}

// Index returns the table angle index at or below a and the remainder.
func (t *Trig) Index(a Angle) (idx int, intra int64) {
	circular := int64(t.Wrap(a))
	return int(circular / t.ratio), circular % t.ratio
}

// Rotate rotates the vector (x, y) by a.
func (t *Trig) Rotate(x, y Point, a Angle) (Point, Point) {
	sin, cos := t.SinCos(a)
	return t.Mul(x, cos) - t.Mul(y, sin), t.Mul(x, sin) + t.Mul(y, cos)
}

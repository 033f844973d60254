package fixed

import (
	"errors"
	"fmt"
	"math"
	"math/bits"
)

// ErrFormat indicates an unusable fixed-point format.
var ErrFormat = errors.New("fixed: invalid format")

// Point is a fixed-point number. Its scale is defined by a Format.
type Point int64

// Angle is a fraction of a full turn, in the same scale as Point.
type Angle int64

// Format describes a binary fixed-point representation with Bits fractional bits.
type Format struct {
	Bits int
}

// NewFormat returns a format with the given number of fractional bits.
func NewFormat(bits int) (Format, error) {
	if bits < 1 || bits > 62 {
		return Format{}, fmt.Errorf("%w: %d fractional bits", ErrFormat, bits)
	}
	return Format{Bits: bits}, nil
}

// One is 1.0.
func (f Format) One() Point { return Point(int64(1) << f.Bits) }

// FromInt converts an integer.
func (f Format) FromInt(i int64) Point { return Point(i << f.Bits) }

// Fraction returns n/d, truncated toward zero.
func (f Format) Fraction(n, d int64) Point {
	return Point(mulDiv(n, int64(1)<<f.Bits, d))
}

// FromFloat converts a float, truncating toward zero.
func (f Format) FromFloat(v float64) Point {
	return Point(v * float64(int64(1)<<f.Bits))
}

// Float64 converts p to a float.
func (f Format) Float64(p Point) float64 {
	return float64(p) / float64(int64(1)<<f.Bits)
}

// Mul returns a*b with a 128-bit intermediate, truncated toward zero.
func (f Format) Mul(a, b Point) Point {
	if a == 0 || b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	hi, lo := bits.Mul64(abs64(int64(a)), abs64(int64(b)))
	result := int64((hi << (64 - f.Bits)) | (lo >> f.Bits))
	if negative {
		return Point(-result)
	}
	return Point(result)
}

// Div returns a/b, truncated toward zero. Division by zero returns 0 and
// quotients beyond the int64 range saturate.
func (f Format) Div(a, b Point) Point {
	if b == 0 {
		return 0
	}
	negative := (a < 0) != (b < 0)
	ua, ub := abs64(int64(a)), abs64(int64(b))

	// a << Bits as a 128-bit value
	hi := ua >> (64 - f.Bits)
	lo := ua << f.Bits
	if hi >= ub {
		if negative {
			return math.MinInt64
		}
		return math.MaxInt64
	}

	quo, _ := bits.Div64(hi, lo, ub)
	if quo > math.MaxInt64 {
		if negative {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	if negative {
		return Point(-int64(quo))
	}
	return Point(quo)
}

// String formats p as a decimal with enough digits for the format.
func (f Format) String(p Point) string {
	digits := int(0.3 * float64(f.Bits))
	return fmt.Sprintf("%.*f", digits, f.Float64(p))
}

// Turn is a full revolution, 1.0.
func (f Format) Turn() Angle { return Angle(f.One()) }

// Half is half a revolution.
func (f Format) Half() Angle { return Angle(f.One() / 2) }

// Quarter is a quarter revolution.
func (f Format) Quarter() Angle { return Angle(f.One() / 4) }

// AngleFraction returns n/d of a full turn.
func (f Format) AngleFraction(n, d int64) Angle {
	return Angle(f.Fraction(n, d))
}

// AngleFromTurns converts a float number of turns.
func (f Format) AngleFromTurns(turns float64) Angle {
	return Angle(f.FromFloat(turns))
}

// AngleFromRadians converts radians to turns.
func (f Format) AngleFromRadians(rad float64) Angle {
	return f.AngleFromTurns(rad / (2 * math.Pi))
}

// Radians converts a to radians.
func (f Format) Radians(a Angle) float64 {
	return f.Float64(Point(a)) * 2 * math.Pi
}

// Wrap maps a into [0, Turn()).
func (f Format) Wrap(a Angle) Angle {
	// Turn is a power of two
	return a & (f.Turn() - 1)
}

func abs64(v int64) uint64 {
	if v < 0 {
		return uint64(-v)
	}
	return uint64(v)
}

// mulDiv computes a*b/c with a 128-bit intermediate, truncated toward zero.
func mulDiv(a, b, c int64) int64 {
	if c == 0 {
		return 0
	}
	neg := ((a < 0) != (b < 0)) != (c < 0)
	hi, lo := bits.Mul64(abs64(a), abs64(b))
	if hi >= abs64(c) {
		if neg {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	q, _ := bits.Div64(hi, lo, abs64(c))
	r := int64(q)
	if neg {
		return -r
	}
	return r
}

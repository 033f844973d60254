package table

// Precision limits.
const (
	// MinAngleBits is the smallest angle precision with a positive quarter length.
	MinAngleBits = 2

	// MaxAngleBits bounds the emitted table at 2^22+1 entries.
	MaxAngleBits = 24

	// MinValueBits is the smallest usable fixed-point scale.
	MinValueBits = 1

	// MaxValueBits keeps the scaled sample inside a float64 mantissa.
	MaxValueBits = 52
)

// Default precision: 1024 angle steps, 16 fractional bits.
const (
	DefaultAngleBits = 10
	DefaultValueBits = 16
)

// Params holds the two precision parameters of a table.
type Params struct {
	AngleBits int `json:"angle_precision_bits" yaml:"angle_precision_bits"`
	ValueBits int `json:"value_precision_bits" yaml:"value_precision_bits"`
}

// DefaultParams returns DefaultAngleBits and DefaultValueBits.
func DefaultParams() Params {
	return Params{AngleBits: DefaultAngleBits, ValueBits: DefaultValueBits}
}

// Validate rejects parameters that cannot yield a well-formed table.
// The returned error is a *ConfigError.
//
// Besides the range checks, ValueBits must be at least 2*AngleBits-4.
// The smallest step of the quarter wave is the one ending at π/2, of height
// 2^ValueBits * (1 - cos(π/(2*quarterLength))) ≈ 1.23 * 2^(ValueBits-2*AngleBits+4),
// so below that bound neighbouring entries may truncate to the same integer.
func (p Params) Validate() error {
	if p.AngleBits < MinAngleBits {
		return &ConfigError{Field: "angle_precision_bits", Value: p.AngleBits,
			Reason: "must be at least 2 so the quarter length is a positive integer"}
	}
	if p.AngleBits > MaxAngleBits {
		return &ConfigError{Field: "angle_precision_bits", Value: p.AngleBits,
			Reason: "must be at most 24"}
	}
	if p.ValueBits < MinValueBits {
		return &ConfigError{Field: "value_precision_bits", Value: p.ValueBits,
			Reason: "must be positive"}
	}
	if p.ValueBits > MaxValueBits {
		return &ConfigError{Field: "value_precision_bits", Value: p.ValueBits,
			Reason: "must be at most 52"}
	}
	if p.ValueBits < 2*p.AngleBits-4 {
		return &ConfigError{Field: "value_precision_bits", Value: p.ValueBits,
			Reason: "too coarse for the angle precision, entries would repeat (need at least 2*angle_precision_bits-4)"}
	}
	return nil
}

// QuarterLength is the number of angle steps in one quadrant.
func (p Params) QuarterLength() int {
	return 1 << (p.AngleBits - 2)
}

// Resolution is the number of angle steps in a full period.
func (p Params) Resolution() int {
	return 1 << p.AngleBits
}

// One is the fixed-point representation of 1.0.
func (p Params) One() int64 {
	return int64(1) << p.ValueBits
}

// Len is the number of table entries.
func (p Params) Len() int {
	return p.QuarterLength() + 1
}

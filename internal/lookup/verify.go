package lookup

// Properties checked by Verify, in order.
const (
	PropertyZeros        = "zero crossings"
	PropertyPeaks        = "peaks"
	PropertyReflection   = "reflection about the peak"
	PropertyAntisymmetry = "half-period antisymmetry"
	PropertyCosine       = "cosine phase shift"
	PropertyBounds       = "bounds"
)

// Properties lists the identities Verify checks.
func Properties() []string {
	return []string{
		PropertyZeros,
		PropertyPeaks,
		PropertyReflection,
		PropertyAntisymmetry,
		PropertyCosine,
		PropertyBounds,
	}
}

// Verify walks the whole period and returns a *SymmetryError for the first
// identity that does not hold exactly.
func (p *Protocol) Verify() error {
	q, res, one := p.quarter, p.resolution, p.One()

	for _, idx := range []int{0, 2 * q} {
		if got := p.Sin(idx); got != 0 {
			return &SymmetryError{Property: PropertyZeros, Index: idx, Got: got, Want: 0}
		}
	}
	if got := p.Sin(q); got != one {
		return &SymmetryError{Property: PropertyPeaks, Index: q, Got: got, Want: one}
	}
	if got := p.Sin(3 * q); got != -one {
		return &SymmetryError{Property: PropertyPeaks, Index: 3 * q, Got: got, Want: -one}
	}

	for r := 0; r <= q; r++ {
		want := p.Sin(q - r)
		if got := p.Sin(p.Normalize(q + r)); got != want {
			return &SymmetryError{Property: PropertyReflection, Index: q + r, Got: got, Want: want}
		}
	}

	for idx := 0; idx < res; idx++ {
		s := p.Sin(idx)
		if got := p.Sin((idx + 2*q) % res); got != -s {
			return &SymmetryError{Property: PropertyAntisymmetry, Index: idx, Got: got, Want: -s}
		}
		if got, want := p.Cos(idx), p.Sin((idx+q)%res); got != want {
			return &SymmetryError{Property: PropertyCosine, Index: idx, Got: got, Want: want}
		}
		if s > one || s < -one {
			return &SymmetryError{Property: PropertyBounds, Index: idx, Got: s, Want: one}
		}
	}
	return nil
}

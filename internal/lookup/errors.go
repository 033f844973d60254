package lookup

import (
	"errors"
	"fmt"
)

// ErrAngleOutOfRange is wrapped by every DomainError.
var ErrAngleOutOfRange = errors.New("lookup: angle index out of range")

// DomainError reports an angle index outside [0, Resolution).
type DomainError struct {
	Index      int
	Resolution int
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("lookup: angle index %d outside [0, %d)", e.Index, e.Resolution)
}

func (e *DomainError) Unwrap() error {
	return ErrAngleOutOfRange
}

// ErrSymmetry is wrapped by every SymmetryError.
var ErrSymmetry = errors.New("lookup: symmetry violated")

// SymmetryError reports the first angle index at which a reconstructed
// period breaks one of the sine identities.
type SymmetryError struct {
	Property string
	Index    int
	Got      int64
	Want     int64
}

func (e *SymmetryError) Error() string {
	return fmt.Sprintf("lookup: %s fails at index %d: got %d, want %d", e.Property, e.Index, e.Got, e.Want)
}

func (e *SymmetryError) Unwrap() error {
	return ErrSymmetry
}

package table

import (
	"errors"
	"fmt"
)

// ErrInvalidParams is wrapped by every ConfigError.
var ErrInvalidParams = errors.New("table: invalid precision parameters")

// ErrInvariant indicates a generated table violates a table invariant.
var ErrInvariant = errors.New("table: invariant violated")

// ConfigError reports a precision parameter rejected before generation.
type ConfigError struct {
	Field  string
	Value  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("table: %s=%d: %s", e.Field, e.Value, e.Reason)
}

func (e *ConfigError) Unwrap() error {
	return ErrInvalidParams
}

// InvariantError identifies the first entry that breaks an invariant.
type InvariantError struct {
	Index   int
	Message string
}

func (e *InvariantError) Error() string {
	return fmt.Sprintf("table: entry %d: %s", e.Index, e.Message)
}

func (e *InvariantError) Unwrap() error {
	return ErrInvariant
}

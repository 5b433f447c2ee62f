package core

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidGeometry is wrapped by every construction-time validation failure.
	ErrInvalidGeometry = errors.New("invalid geometry")

	// ErrZeroVector is returned when an operation would produce the zero vector.
	ErrZeroVector = fmt.Errorf("zero vector: %w", ErrInvalidGeometry)
)

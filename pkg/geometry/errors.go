package geometry

import (
	"fmt"

	"github.com/df07/go-ray-intersection/pkg/core"
)

var (
	// ErrNonPositiveRadius is returned for spheres, tubes and cylinders with radius <= 0
	ErrNonPositiveRadius = fmt.Errorf("radius must be positive: %w", core.ErrInvalidGeometry)

	// ErrNonPositiveHeight is returned for cylinders with height <= 0
	ErrNonPositiveHeight = fmt.Errorf("height must be positive: %w", core.ErrInvalidGeometry)
)

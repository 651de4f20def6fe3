package parametric

import "errors"

var (
	// ErrInvalidOrder reports an order outside [2, control point count]
	// for a B-spline direction, or an attempt to set a derived order.
	ErrInvalidOrder = errors.New("invalid order")

	// ErrInvalidParameter reports a parameter outside the geometry's
	// domain on an evaluation path that does not clamp.
	ErrInvalidParameter = errors.New("parameter outside domain")

	// ErrIncompatibleGeometry reports an operation on a geometry kind
	// that does not support it, or a continuity analysis across kinds.
	ErrIncompatibleGeometry = errors.New("incompatible geometry")

	// ErrDegenerateGeometry reports geometry that cannot be evaluated:
	// too few control points, or coincident points producing an
	// undefined tangent.
	ErrDegenerateGeometry = errors.New("degenerate geometry")
)

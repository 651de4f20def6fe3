package internal

const (
	// Epsilon is the tolerance used for exact-ish comparisons of knot
	// values and coordinates.
	Epsilon = 1e-10

	// Tolerance is the default geometric tolerance for sampling and
	// continuity checks.
	Tolerance = 1e-6
)

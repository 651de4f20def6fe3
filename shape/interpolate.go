package shape

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric"
	"github.com/mlee-0/parametric/internal"
)

// InterpolateBSpline returns a B-spline curve of the given order
// passing exactly through every input point, in order. Parameters are
// assigned by chord length and knots by averaging, then the control
// points come from one linear system per coordinate
// (corresponds to algorithm 9.1 from The NURBS book, Piegl & Tiller
// 2nd edition).
func InterpolateBSpline(points []vec3.T, order, nodes int) (*parametric.Geometry, error) {
	if len(points) < order {
		return nil, fmt.Errorf("%d points cannot support order %d: %w", len(points), order, parametric.ErrInvalidOrder)
	}

	params, err := chordParams(points)
	if err != nil {
		return nil, err
	}
	knots := averagedKnots(params, order)

	n := len(points)
	system := make(internal.Matrix, n)
	for i := range system {
		system[i] = internal.FullBasis(n, order, knots, params[i])
	}
	lu := system.Decompose()

	var coords [3][]float64
	for c := range coords {
		rhs := make([]float64, n)
		for i, p := range points {
			rhs[i] = p[c]
		}
		coords[c] = lu.Solve(rhs)
	}

	control := make([]vec3.T, n)
	for i := range control {
		control[i] = vec3.T{coords[0][i], coords[1][i], coords[2][i]}
	}

	return parametric.NewBSplineCurveWithKnots(control, order, knots, nodes)
}

// chordParams assigns each point a parameter proportional to the
// accumulated chord length along the polyline.
func chordParams(points []vec3.T) ([]float64, error) {
	total := 0.0
	for i := 1; i < len(points); i++ {
		total += vec3.Distance(&points[i], &points[i-1])
	}
	if total < internal.Epsilon {
		return nil, fmt.Errorf("coincident interpolation points: %w", parametric.ErrDegenerateGeometry)
	}

	params := make([]float64, len(points))
	for i := 1; i < len(points); i++ {
		params[i] = params[i-1] + vec3.Distance(&points[i], &points[i-1])/total
	}
	params[len(params)-1] = 1

	return params, nil
}

// averagedKnots builds a clamped knot vector whose interior knots are
// running averages of the parameters, which keeps the interpolation
// system well conditioned.
func averagedKnots(params []float64, order int) internal.KnotVec {
	n := len(params)
	degree := order - 1

	knots := make(internal.KnotVec, n+order)
	for i := 0; i < order; i++ {
		knots[i] = 0
		knots[len(knots)-1-i] = 1
	}

	for j := 1; j <= n-order; j++ {
		sum := 0.0
		for i := j; i < j+degree; i++ {
			sum += params[i]
		}
		knots[j+degree] = sum / float64(degree)
	}

	return knots
}

// Package shape builds ready-made geometries: the default control nets
// used when a user adds a new curve or surface, preset arrangements
// for demonstrating continuity, and global B-spline interpolation
// through given points.
package shape

import (
	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric"
)

// defaultExtent is the side length of the default control nets.
const defaultExtent = 10

// BezierCurve returns a new Bézier curve with its control points on a
// diagonal line, counts taken from the settings.
func BezierCurve(s parametric.Settings) (*parametric.Geometry, error) {
	return parametric.NewBezierCurve(diagonal(s.DefaultControlPoints), s.DefaultNodes)
}

// HermiteCurve returns a new single-segment cubic Hermite curve.
func HermiteCurve(s parametric.Settings) (*parametric.Geometry, error) {
	points := []vec3.T{
		{0, 0, 0}, {5, 0, 0},
		{10, 10, 0}, {15, 10, 0},
	}

	g, err := parametric.NewHermiteCurve(points, s.DefaultNodes)
	if err != nil {
		return nil, err
	}
	if err := g.SetTangentScale(s.HermiteTangentScale); err != nil {
		return nil, err
	}
	return g, nil
}

// BSplineCurve returns a new order-2 B-spline curve with its control
// points on a diagonal line.
func BSplineCurve(s parametric.Settings) (*parametric.Geometry, error) {
	return parametric.NewBSplineCurve(diagonal(s.DefaultControlPoints), parametric.MinOrder, s.DefaultNodes)
}

// BezierSurface returns a new flat Bézier surface over a square grid.
func BezierSurface(s parametric.Settings) (*parametric.Geometry, error) {
	return parametric.NewBezierSurface(grid(s.DefaultControlPoints), s.DefaultNodes, s.DefaultNodes)
}

// HermiteSurface returns a new bicubic Hermite patch.
func HermiteSurface(s parametric.Settings) (*parametric.Geometry, error) {
	net := [][]vec3.T{
		{{0, 0, 0}, {0, 10, 0}, {0, 1, 0}, {0, 11, 0}},
		{{10, 0, 0}, {10, 10, 0}, {10, 1, 0}, {10, 11, 0}},
		{{1, 0, 0}, {1, 10, 0}, {0, 0, 1}, {0, 10, -1}},
		{{11, 0, 0}, {11, 10, 0}, {10, 0, -1}, {10, 10, 1}},
	}

	g, err := parametric.NewHermiteSurface(net, s.DefaultNodes, s.DefaultNodes)
	if err != nil {
		return nil, err
	}
	if err := g.SetTangentScale(s.HermiteTangentScale); err != nil {
		return nil, err
	}
	return g, nil
}

// BSplineSurface returns a new flat order-2 B-spline surface over a
// square grid.
func BSplineSurface(s parametric.Settings) (*parametric.Geometry, error) {
	return parametric.NewBSplineSurface(grid(s.DefaultControlPoints), parametric.MinOrder, parametric.MinOrder, s.DefaultNodes, s.DefaultNodes)
}

// diagonal places count control points evenly along the line from the
// origin to (defaultExtent, defaultExtent, 0).
func diagonal(count int) []vec3.T {
	points := make([]vec3.T, count)
	step := defaultExtent / float64(count-1)
	for i := range points {
		t := step * float64(i)
		points[i] = vec3.T{t, t, 0}
	}
	return points
}

// grid places a count x count control net evenly over a square in the
// z = 0 plane.
func grid(count int) [][]vec3.T {
	step := defaultExtent / float64(count-1)
	net := make([][]vec3.T, count)
	for i := range net {
		net[i] = make([]vec3.T, count)
		for j := range net[i] {
			net[i][j] = vec3.T{step * float64(j), step * float64(i), 0}
		}
	}
	return net
}

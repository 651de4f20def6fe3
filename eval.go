package parametric

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric/internal"
)

// UV is a surface parameter pair.
type UV [2]float64

// EvaluateBasis returns the blending weight of every control point of
// a single parameter direction at t, for the given kind and order.
// Position weights form a partition of unity for any valid t.
//
// For Bézier the order is the polynomial degree (control point count
// minus one) and knots is ignored. For Hermite the order must be 3 and
// four weights for (p0, p1, m0, m1) are returned. For B-spline the
// control point count is len(knots) - order.
func EvaluateBasis(kind GeometryKind, order int, knots []float64, t float64) ([]float64, error) {
	switch {
	case kind.IsBezier():
		if order < 1 {
			return nil, fmt.Errorf("bézier order %d < 1: %w", order, ErrInvalidOrder)
		}
		if t < 0 || t > 1 {
			return nil, fmt.Errorf("parameter %v outside [0, 1]: %w", t, ErrInvalidParameter)
		}
		return internal.Bernstein(order, t), nil

	case kind.IsHermite():
		if order != 3 {
			return nil, fmt.Errorf("hermite order is fixed at 3, got %d: %w", order, ErrInvalidOrder)
		}
		if t < 0 || t > 1 {
			return nil, fmt.Errorf("parameter %v outside [0, 1]: %w", t, ErrInvalidParameter)
		}
		h := internal.HermiteWeights(t, 0)
		return h[:], nil

	default:
		count := len(knots) - order
		if order < MinOrder || order > count {
			return nil, fmt.Errorf("b-spline order %d outside [%d, %d]: %w", order, MinOrder, count, ErrInvalidOrder)
		}
		kv := internal.KnotVec(knots)
		if !kv.IsValid(order) {
			return nil, fmt.Errorf("malformed knot vector: %w", ErrInvalidParameter)
		}
		if t < kv[0] || t > kv[len(kv)-1] {
			return nil, fmt.Errorf("parameter %v outside [%v, %v]: %w", t, kv[0], kv[len(kv)-1], ErrInvalidParameter)
		}
		return internal.FullBasis(count, order, kv, t), nil
	}
}

// directionWeights returns the blending weights and their derivatives
// up to maxDeriv for one parameter direction at t in [0, 1]. Row d
// holds the d-th derivative weight of every control entry in that
// direction.
func (g *Geometry) directionWeights(dir Direction, t float64, maxDeriv int) [][]float64 {
	count := g.count(dir)

	switch {
	case g.kind.IsBezier():
		rows := make([][]float64, maxDeriv+1)
		for d := range rows {
			rows[d] = internal.BernsteinDerivative(count-1, d, t)
		}
		return rows

	case g.kind.IsHermite():
		if g.kind.IsSurface() {
			return g.hermitePatchWeights(t, maxDeriv)
		}
		return g.hermiteCurveWeights(t, maxDeriv)

	default:
		knots := g.knotsU
		order := g.orderU
		if dir == DirV {
			knots = g.knotsV
			order = g.orderV
		}
		return internal.FullBasisDerivatives(count, order, maxDeriv, knots, t)
	}
}

// hermiteCurveWeights maps the global parameter onto one cubic segment
// of the interleaved pair sequence and spreads the four blending
// values over that segment's entries. Derivatives pick up a factor of
// the segment count per order by the chain rule.
func (g *Geometry) hermiteCurveWeights(t float64, maxDeriv int) [][]float64 {
	count := g.CountU()
	segments := hermitePairs(count) - 1

	seg := int(t * float64(segments))
	if seg >= segments {
		seg = segments - 1
	}
	local := t*float64(segments) - float64(seg)

	rows := make([][]float64, maxDeriv+1)
	scale := 1.0
	for d := range rows {
		h := internal.HermiteWeights(local, d)
		row := make([]float64, count)
		row[2*seg] = h[0] * scale
		row[2*(seg+1)] = h[1] * scale
		row[2*seg+1] = h[2] * g.tangentScale * scale
		row[2*(seg+1)+1] = h[3] * g.tangentScale * scale
		rows[d] = row
		scale *= float64(segments)
	}

	return rows
}

// hermitePatchWeights returns the four patch-matrix blending weights
// for one direction of a bicubic Hermite surface; entries 2 and 3
// weight tangent rows or columns.
func (g *Geometry) hermitePatchWeights(t float64, maxDeriv int) [][]float64 {
	rows := make([][]float64, maxDeriv+1)
	for d := range rows {
		h := internal.HermiteWeights(t, d)
		rows[d] = []float64{h[0], h[1], h[2] * g.tangentScale, h[3] * g.tangentScale}
	}
	return rows
}

// Derivatives evaluates a curve at t, returning the point followed by
// derivative vectors up to numDerivs. The parameter must lie in
// [0, 1]; use Sample for the clamping render path.
func (g *Geometry) Derivatives(t float64, numDerivs int) ([]vec3.T, error) {
	if g.kind.IsSurface() {
		return nil, fmt.Errorf("%s is not a curve: %w", g.kind, ErrIncompatibleGeometry)
	}
	if t < 0 || t > 1 {
		return nil, fmt.Errorf("parameter %v outside [0, 1]: %w", t, ErrInvalidParameter)
	}

	rows := g.directionWeights(DirU, t, numDerivs)
	out := make([]vec3.T, numDerivs+1)
	for d := range out {
		var acc vec3.T
		for i := range g.points {
			scaled := g.points[i][0].Scaled(rows[d][i])
			acc.Add(&scaled)
		}
		out[d] = acc
	}

	return out, nil
}

// Point evaluates a curve position at t.
func (g *Geometry) Point(t float64) (vec3.T, error) {
	ders, err := g.Derivatives(t, 0)
	if err != nil {
		return vec3.T{}, err
	}
	return ders[0], nil
}

// Tangent evaluates a curve's first derivative at t.
func (g *Geometry) Tangent(t float64) (vec3.T, error) {
	ders, err := g.Derivatives(t, 1)
	if err != nil {
		return vec3.T{}, err
	}
	return ders[1], nil
}

// DerivativesUV evaluates a surface at uv, returning partial
// derivatives ders[i][j] = d^(i+j) S / du^i dv^j up to numDerivs in
// each direction; ders[0][0] is the position.
func (g *Geometry) DerivativesUV(uv UV, numDerivs int) ([][]vec3.T, error) {
	if !g.kind.IsSurface() {
		return nil, fmt.Errorf("%s is not a surface: %w", g.kind, ErrIncompatibleGeometry)
	}
	if uv[0] < 0 || uv[0] > 1 || uv[1] < 0 || uv[1] > 1 {
		return nil, fmt.Errorf("parameters %v outside [0, 1]^2: %w", uv, ErrInvalidParameter)
	}

	rowsU := g.directionWeights(DirU, uv[0], numDerivs)
	rowsV := g.directionWeights(DirV, uv[1], numDerivs)

	out := make([][]vec3.T, numDerivs+1)
	for i := range out {
		out[i] = make([]vec3.T, numDerivs+1)
		for j := range out[i] {
			var acc vec3.T
			for a := range g.points {
				wu := rowsU[i][a]
				if wu == 0 {
					continue
				}
				for b := range g.points[a] {
					scaled := g.points[a][b].Scaled(wu * rowsV[j][b])
					acc.Add(&scaled)
				}
			}
			out[i][j] = acc
		}
	}

	return out, nil
}

// PointUV evaluates a surface position at uv.
func (g *Geometry) PointUV(uv UV) (vec3.T, error) {
	ders, err := g.DerivativesUV(uv, 0)
	if err != nil {
		return vec3.T{}, err
	}
	return ders[0][0], nil
}

// NormalUV returns the unit surface normal at uv, the normalized cross
// product of the two first partial derivatives.
func (g *Geometry) NormalUV(uv UV) (vec3.T, error) {
	ders, err := g.DerivativesUV(uv, 1)
	if err != nil {
		return vec3.T{}, err
	}

	n := vec3.Cross(&ders[1][0], &ders[0][1])
	length := n.Length()
	if length < internal.Epsilon {
		return vec3.T{}, fmt.Errorf("undefined normal at %v: %w", uv, ErrDegenerateGeometry)
	}
	n.Scale(1 / length)
	return n, nil
}

// clampParam clamps t to [0, 1] for the render path.
func clampParam(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}

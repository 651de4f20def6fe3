package parametric

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric/internal"
)

// CurvePoint pairs a sampled curve point with the parameter it was
// evaluated at.
type CurvePoint struct {
	U  float64
	Pt vec3.T
}

// Sample returns a curve's cached sample points, recomputing them from
// the current control net if any mutation has invalidated the cache.
// The slice holds Nodes(DirU) points at evenly spaced parameters over
// [0, 1] and is owned by the Geometry; callers must not modify it.
func (g *Geometry) Sample() ([]vec3.T, error) {
	if g.kind.IsSurface() {
		return nil, fmt.Errorf("%s is not a curve: %w", g.kind, ErrIncompatibleGeometry)
	}

	if g.stale || g.samples == nil {
		g.samples = [][]vec3.T{g.SampleAt(g.nodesU)}
		g.stale = false
	}

	return g.samples[0], nil
}

// SampleGrid returns a surface's cached sample grid, indexed [u][v],
// recomputing it if stale. The grid is owned by the Geometry; callers
// must not modify it.
func (g *Geometry) SampleGrid() ([][]vec3.T, error) {
	if !g.kind.IsSurface() {
		return nil, fmt.Errorf("%s is not a surface: %w", g.kind, ErrIncompatibleGeometry)
	}

	if g.stale || g.samples == nil {
		g.samples = g.SampleGridAt(g.nodesU, g.nodesV)
		g.stale = false
	}

	return g.samples, nil
}

// SampleAt evaluates a curve at numSamples evenly spaced parameters
// over [0, 1]. It is a pure function of the current geometry state and
// does not touch the cache.
func (g *Geometry) SampleAt(numSamples int) []vec3.T {
	numSamples = clampNodes(numSamples)

	samples := make([]vec3.T, numSamples)
	span := 1 / float64(numSamples-1)
	for i := range samples {
		rows := g.directionWeights(DirU, clampParam(span*float64(i)), 0)
		var acc vec3.T
		for j := range g.points {
			scaled := g.points[j][0].Scaled(rows[0][j])
			acc.Add(&scaled)
		}
		samples[i] = acc
	}

	return samples
}

// SampleGridAt evaluates a surface on a numU x numV parameter grid,
// the tensor product of evenly spaced parameters in each direction.
// Pure; does not touch the cache.
func (g *Geometry) SampleGridAt(numU, numV int) [][]vec3.T {
	numU, numV = clampNodes(numU), clampNodes(numV)

	// evaluate each direction's weights once per grid line
	rowsU := make([][]float64, numU)
	spanU := 1 / float64(numU-1)
	for i := range rowsU {
		rowsU[i] = g.directionWeights(DirU, clampParam(spanU*float64(i)), 0)[0]
	}
	rowsV := make([][]float64, numV)
	spanV := 1 / float64(numV-1)
	for j := range rowsV {
		rowsV[j] = g.directionWeights(DirV, clampParam(spanV*float64(j)), 0)[0]
	}

	grid := make([][]vec3.T, numU)
	for i := range grid {
		grid[i] = make([]vec3.T, numV)
		for j := range grid[i] {
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
			grid[i][j] = acc
		}
	}

	return grid
}

// Tessellate samples a curve adaptively over its whole domain,
// subdividing until consecutive samples are collinear within tol
// (pass 0 for the default).
func (g *Geometry) Tessellate(tol float64) ([]CurvePoint, error) {
	if g.kind.IsSurface() {
		return nil, fmt.Errorf("%s is not a curve: %w", g.kind, ErrIncompatibleGeometry)
	}
	if tol <= 0 {
		tol = internal.Tolerance
	}

	// a first-order curve is its control polygon
	if g.Order(DirU) == 1 {
		samples := make([]CurvePoint, g.CountU())
		span := 1 / float64(g.CountU()-1)
		for i := range samples {
			samples[i] = CurvePoint{span * float64(i), g.points[i][0]}
		}
		return samples, nil
	}

	return g.tessellateRange(0, 1, tol), nil
}

// tessellateRange samples the curve at the range ends and near the
// middle, recursing on both halves while the three points are not
// collinear. The midpoint is jittered so that symmetric curves do not
// defeat the flatness test.
func (g *Geometry) tessellateRange(start, end, tol float64) []CurvePoint {
	p1, _ := g.Point(start)
	p3, _ := g.Point(end)

	t := 0.5 + 0.2*rand.Float64()
	mid := start + (end-start)*t
	p2, _ := g.Point(mid)

	diff := vec3.Sub(&p1, &p3)
	diff2 := vec3.Sub(&p1, &p2)

	// the first condition catches closed loops whose ends coincide
	if (vec3.Dot(&diff, &diff) < tol && vec3.Dot(&diff2, &diff2) > tol) || !threePointsAreCollinear(&p1, &p2, &p3, tol) {
		exactMid := start + (end-start)*0.5

		left := g.tessellateRange(start, exactMid, tol)
		right := g.tessellateRange(exactMid, end, tol)

		leftEnd := len(left) - 1
		return append(left[:leftEnd:leftEnd], right...)
	}

	return []CurvePoint{{start, p1}, {end, p3}}
}

// ClosestPoint returns the point on a curve nearest to p.
func (g *Geometry) ClosestPoint(p vec3.T) (vec3.T, error) {
	u, err := g.ClosestParam(p)
	if err != nil {
		return vec3.T{}, err
	}
	return g.Point(u)
}

// ClosestParam returns the parameter of the curve point nearest to p,
// found by a coarse scan over the sampled polyline refined with
// Newton iteration:
//
//	f(u)  = C'(u) * (C(u) - p)
//	f'(u) = C''(u) * (C(u) - p) + C'(u) * C'(u)
//
// following the convergence criteria suggested by Piegl & Tiller.
func (g *Geometry) ClosestParam(p vec3.T) (float64, error) {
	if g.kind.IsSurface() {
		return 0, fmt.Errorf("%s is not a curve: %w", g.kind, ErrIncompatibleGeometry)
	}

	coarse := g.CountU() * g.Order(DirU)
	pts := g.SampleAt(clampNodes(coarse))

	min := math.MaxFloat64
	var u float64
	span := 1 / float64(len(pts)-1)
	for i := 0; i < len(pts)-1; i++ {
		u0, u1 := span*float64(i), span*float64(i+1)

		proj := segmentClosestPoint(&p, &pts[i], &pts[i+1], u0, u1)
		dv := vec3.Sub(&p, &proj.Pt)
		if d := dv.Length(); d < min {
			min = d
			u = proj.U
		}
	}

	const maxits = 5
	eps1, eps2 := 0.0001, 0.0005

	start, _ := g.Point(0)
	end, _ := g.Point(1)
	closed := vec3.SquareDistance(&start, &end) < internal.Epsilon

	cu := u
	for i := 0; i < maxits; i++ {
		e, err := g.Derivatives(cu, 2)
		if err != nil {
			return 0, err
		}
		dif := vec3.Sub(&e[0], &p)

		// |C(u) - p| < e1
		c1v := dif.Length()

		// C'(u) * (C(u) - p)
		// ------------------ < e2
		// |C'(u)| |C(u) - p|
		c2n := vec3.Dot(&e[1], &dif)
		c2v := c2n / (e[1].Length() * c1v)

		if c1v < eps1 && math.Abs(c2v) < eps2 {
			return cu, nil
		}

		// Newton step
		df := vec3.Dot(&e[2], &dif) + vec3.Dot(&e[1], &e[1])
		ct := cu - vec3.Dot(&e[1], &dif)/df

		// keep the iterate inside the domain, wrapping if closed
		if ct < 0 {
			if closed {
				ct = 1 + ct
			} else {
				ct = 0
			}
		} else if ct > 1 {
			if closed {
				ct = ct - 1
			} else {
				ct = 1
			}
		}

		// halt if the step no longer moves the point
		step := e[1].Scaled(ct - cu)
		if step.Length() < eps1 {
			return cu, nil
		}

		cu = ct
	}

	return cu, nil
}

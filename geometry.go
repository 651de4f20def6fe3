package parametric

import (
	"fmt"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric/internal"
)

// Geometry is one curve or surface: a control net, per-direction order
// and knot information where applicable, the sample counts used for
// display, and a lazily recomputed sample cache. Control points are
// owned exclusively by their Geometry; nothing is shared between
// geometries.
//
// Control nets are indexed [u][v]; curves hold a single entry per u
// row. Hermite curves store interleaved position/tangent pairs
// p0 m0 p1 m1 ... (pairs-1 cubic segments joined with shared
// tangents). Hermite surfaces store the standard 4x4 patch matrix
//
//	p00  p01  m00v m01v
//	p10  p11  m10v m11v
//	m00u m01u m00uv m01uv
//	m10u m11u m10uv m11uv
//
// The parameter domain is [0, 1] in every direction for every kind.
type Geometry struct {
	kind   GeometryKind
	points [][]vec3.T

	// B-spline order and clamped knot vector per direction; unused for
	// the kinds whose order is derived
	orderU, orderV int
	knotsU, knotsV internal.KnotVec

	// sample counts per direction
	nodesU, nodesV int

	// scale applied to Hermite tangent entries during evaluation
	tangentScale float64

	samples [][]vec3.T
	stale   bool
}

// MinOrder is the smallest order accepted for a B-spline direction.
const MinOrder = 2

// NewBezierCurve returns a Bézier curve of order len(points)-1.
func NewBezierCurve(points []vec3.T, nodes int) (*Geometry, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("bézier curve needs at least 2 control points, got %d: %w", len(points), ErrDegenerateGeometry)
	}

	return &Geometry{
		kind:         BezierCurve,
		points:       netFromColumn(points),
		nodesU:       clampNodes(nodes),
		nodesV:       1,
		tangentScale: 1,
		stale:        true,
	}, nil
}

// NewHermiteCurve returns a piecewise cubic Hermite curve. The points
// are interleaved position/tangent pairs p0 m0 p1 m1 ...; two pairs
// form a single segment.
func NewHermiteCurve(points []vec3.T, nodes int) (*Geometry, error) {
	if len(points) < 4 || len(points)%2 != 0 {
		return nil, fmt.Errorf("hermite curve needs an even number of control points (pairs of position and tangent), at least 4, got %d: %w", len(points), ErrDegenerateGeometry)
	}

	return &Geometry{
		kind:         HermiteCurve,
		points:       netFromColumn(points),
		nodesU:       clampNodes(nodes),
		nodesV:       1,
		tangentScale: 1,
		stale:        true,
	}, nil
}

// NewBSplineCurve returns a B-spline curve with a clamped-uniform knot
// vector generated for the given order.
func NewBSplineCurve(points []vec3.T, order, nodes int) (*Geometry, error) {
	if len(points) < 2 {
		return nil, fmt.Errorf("b-spline curve needs at least 2 control points, got %d: %w", len(points), ErrDegenerateGeometry)
	}
	if order < MinOrder || order > len(points) {
		return nil, fmt.Errorf("order %d outside [%d, %d]: %w", order, MinOrder, len(points), ErrInvalidOrder)
	}

	return &Geometry{
		kind:         BSplineCurve,
		points:       netFromColumn(points),
		orderU:       order,
		knotsU:       internal.ClampedUniform(len(points), order),
		nodesU:       clampNodes(nodes),
		nodesV:       1,
		tangentScale: 1,
		stale:        true,
	}, nil
}

// NewBSplineCurveWithKnots is NewBSplineCurve with a caller-supplied
// clamped knot vector, as produced by curve interpolation. The vector
// must be nondecreasing, clamped, and of length len(points)+order.
func NewBSplineCurveWithKnots(points []vec3.T, order int, knots []float64, nodes int) (*Geometry, error) {
	g, err := NewBSplineCurve(points, order, nodes)
	if err != nil {
		return nil, err
	}

	kv := internal.KnotVec(knots).Clone()
	if len(kv) != len(points)+order || !kv.IsValid(order) {
		return nil, fmt.Errorf("knot vector of length %d invalid for %d points of order %d: %w", len(knots), len(points), order, ErrInvalidParameter)
	}

	g.knotsU = kv
	return g, nil
}

// NewBezierSurface returns a tensor-product Bézier surface over a
// rectangular control net.
func NewBezierSurface(net [][]vec3.T, nodesU, nodesV int) (*Geometry, error) {
	if err := checkNet(net, 2, 2); err != nil {
		return nil, err
	}

	return &Geometry{
		kind:         BezierSurface,
		points:       cloneNet(net),
		nodesU:       clampNodes(nodesU),
		nodesV:       clampNodes(nodesV),
		tangentScale: 1,
		stale:        true,
	}, nil
}

// NewHermiteSurface returns a single bicubic Hermite patch from a 4x4
// position/tangent matrix.
func NewHermiteSurface(net [][]vec3.T, nodesU, nodesV int) (*Geometry, error) {
	if err := checkNet(net, 4, 4); err != nil {
		return nil, err
	}
	if len(net) != 4 || len(net[0]) != 4 {
		return nil, fmt.Errorf("hermite surface needs a 4x4 net, got %dx%d: %w", len(net), len(net[0]), ErrDegenerateGeometry)
	}

	return &Geometry{
		kind:         HermiteSurface,
		points:       cloneNet(net),
		nodesU:       clampNodes(nodesU),
		nodesV:       clampNodes(nodesV),
		tangentScale: 1,
		stale:        true,
	}, nil
}

// NewBSplineSurface returns a tensor-product B-spline surface with
// independently configured orders and clamped-uniform knot vectors in
// each direction.
func NewBSplineSurface(net [][]vec3.T, orderU, orderV, nodesU, nodesV int) (*Geometry, error) {
	if err := checkNet(net, 2, 2); err != nil {
		return nil, err
	}
	if orderU < MinOrder || orderU > len(net) {
		return nil, fmt.Errorf("u order %d outside [%d, %d]: %w", orderU, MinOrder, len(net), ErrInvalidOrder)
	}
	if orderV < MinOrder || orderV > len(net[0]) {
		return nil, fmt.Errorf("v order %d outside [%d, %d]: %w", orderV, MinOrder, len(net[0]), ErrInvalidOrder)
	}

	return &Geometry{
		kind:         BSplineSurface,
		points:       cloneNet(net),
		orderU:       orderU,
		orderV:       orderV,
		knotsU:       internal.ClampedUniform(len(net), orderU),
		knotsV:       internal.ClampedUniform(len(net[0]), orderV),
		nodesU:       clampNodes(nodesU),
		nodesV:       clampNodes(nodesV),
		tangentScale: 1,
		stale:        true,
	}, nil
}

func (g *Geometry) Kind() GeometryKind { return g.kind }

// CountU returns the number of control points in the u direction.
func (g *Geometry) CountU() int { return len(g.points) }

// CountV returns the number of control points in the v direction, 1
// for curves.
func (g *Geometry) CountV() int { return len(g.points[0]) }

func (g *Geometry) count(dir Direction) int {
	if dir == DirV {
		return g.CountV()
	}
	return g.CountU()
}

// Order returns the order in the given direction: control point count
// minus one for Bézier, 3 for Hermite (cubic), and the stored order
// for B-spline.
func (g *Geometry) Order(dir Direction) int {
	switch {
	case g.kind.IsBezier():
		return g.count(dir) - 1
	case g.kind.IsHermite():
		return 3
	case dir == DirV:
		return g.orderV
	default:
		return g.orderU
	}
}

// MaxOrder returns the largest order accepted by SetOrder in the given
// direction.
func (g *Geometry) MaxOrder(dir Direction) int { return g.count(dir) }

// Knots returns a copy of the knot vector in the given direction, or
// nil for kinds without one.
func (g *Geometry) Knots(dir Direction) []float64 {
	if !g.kind.IsBSpline() {
		return nil
	}
	if dir == DirV {
		return g.knotsV.Clone()
	}
	return g.knotsU.Clone()
}

// Nodes returns the sample count in the given direction.
func (g *Geometry) Nodes(dir Direction) int {
	if dir == DirV {
		return g.nodesV
	}
	return g.nodesU
}

// TangentScale returns the display scaling applied to Hermite tangent
// entries, 1 for other kinds.
func (g *Geometry) TangentScale() float64 { return g.tangentScale }

// ControlPoint returns the control point at net position (i, j).
// Curves use j == 0.
func (g *Geometry) ControlPoint(i, j int) (vec3.T, error) {
	if i < 0 || i >= g.CountU() || j < 0 || j >= g.CountV() {
		return vec3.T{}, fmt.Errorf("control point (%d, %d) out of range %dx%d: %w", i, j, g.CountU(), g.CountV(), ErrInvalidParameter)
	}
	return g.points[i][j], nil
}

// ControlPoints returns a deep copy of the control net.
func (g *Geometry) ControlPoints() [][]vec3.T {
	return cloneNet(g.points)
}

// CurvePoints returns a copy of a curve's control points as a flat
// slice.
func (g *Geometry) CurvePoints() []vec3.T {
	pts := make([]vec3.T, len(g.points))
	for i := range g.points {
		pts[i] = g.points[i][0]
	}
	return pts
}

// Domain returns the valid parameter range, [0, 1] for every kind and
// direction.
func (g *Geometry) Domain() (min, max float64) {
	return 0, 1
}

// Clone returns an independent deep copy.
func (g *Geometry) Clone() *Geometry {
	clone := *g
	clone.points = cloneNet(g.points)
	clone.knotsU = g.knotsU.Clone()
	clone.knotsV = g.knotsV.Clone()
	clone.samples = nil
	clone.stale = true
	return &clone
}

// invalidate marks the sample cache stale. Every mutation calls this
// before returning.
func (g *Geometry) invalidate() {
	g.stale = true
}

// hermitePairs returns the number of position/tangent pairs of a
// Hermite curve direction; pairs-1 is the segment count.
func hermitePairs(count int) int { return count / 2 }

func clampNodes(n int) int {
	if n < 2 {
		return 2
	}
	return n
}

func netFromColumn(points []vec3.T) [][]vec3.T {
	net := make([][]vec3.T, len(points))
	for i, p := range points {
		net[i] = []vec3.T{p}
	}
	return net
}

func cloneNet(net [][]vec3.T) [][]vec3.T {
	clone := make([][]vec3.T, len(net))
	for i := range net {
		clone[i] = append([]vec3.T(nil), net[i]...)
	}
	return clone
}

func checkNet(net [][]vec3.T, minU, minV int) error {
	if len(net) < minU {
		return fmt.Errorf("surface needs at least %d control point rows, got %d: %w", minU, len(net), ErrDegenerateGeometry)
	}
	cols := len(net[0])
	if cols < minV {
		return fmt.Errorf("surface needs at least %d control point columns, got %d: %w", minV, cols, ErrDegenerateGeometry)
	}
	for i := range net {
		if len(net[i]) != cols {
			return fmt.Errorf("control net is not rectangular: row %d has %d columns, want %d: %w", i, len(net[i]), cols, ErrDegenerateGeometry)
		}
	}
	return nil
}

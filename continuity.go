package parametric

import (
	"fmt"
	"math"

	"github.com/ungerik/go3d/float64/vec3"

	"github.com/mlee-0/parametric/internal"
)

// ContinuityClass is the smoothness achieved at a shared boundary,
// ordered from worst to best. Geometric classes require matching
// derivative directions only; parametric classes require matching
// magnitudes as well, so C1 implies G1. A direction-only match of the
// second derivative outranks C1.
type ContinuityClass int

const (
	Discontinuous ContinuityClass = iota
	C0
	G1
	C1
	G2
	C2
)

func (c ContinuityClass) String() string {
	switch c {
	case C0:
		return "C0/G0"
	case G1:
		return "G1"
	case C1:
		return "C1"
	case G2:
		return "G2"
	case C2:
		return "C2"
	}
	return "discontinuous"
}

// DerivativeDeviation quantifies how far apart the two sides'
// derivative vectors of one order are at the shared boundary, so a
// near-miss can be displayed rather than a bare pass or fail.
type DerivativeDeviation struct {
	Order int

	// vector distance between the two derivatives
	Distance float64

	// angle between the two derivatives in radians, folded so that
	// antiparallel vectors report their deviation from pi
	Angle float64

	// magnitude of the second side's derivative over the first's
	MagnitudeRatio float64

	Parametric bool
	Geometric  bool
}

// ContinuityReport is the result of probing one shared boundary.
// Derivatives holds an entry per probed order; orders past the first
// failing one are not probed.
type ContinuityReport struct {
	Class       ContinuityClass
	PositionGap float64
	Derivatives []DerivativeDeviation
}

// Analyzer classifies continuity between pairs of same-kind
// geometries. The zero value uses the default tolerances.
type Analyzer struct {
	// positions and derivative vectors within this distance are equal
	PositionTolerance float64

	// derivative vectors within this angle in radians of parallel or
	// antiparallel are directionally equal
	AngleTolerance float64
}

// PairResult is the outcome of one adjacent pair in a selection.
type PairResult struct {
	A, B   int
	Report ContinuityReport
	Err    error
}

func (a *Analyzer) posTol() float64 {
	if a.PositionTolerance > 0 {
		return a.PositionTolerance
	}
	return internal.Tolerance
}

func (a *Analyzer) angTol() float64 {
	if a.AngleTolerance > 0 {
		return a.AngleTolerance
	}
	return internal.Tolerance
}

// Analyze probes the boundary shared by two same-kind geometries and
// classifies its continuity. Curves are matched at whichever pairing
// of their endpoints lies closest; surfaces at whichever pairing of
// their boundary edges lies closest, in either orientation. Differing
// orders are fine, differing kinds are not.
func (a *Analyzer) Analyze(ga, gb *Geometry) (ContinuityReport, error) {
	if ga.Kind() != gb.Kind() {
		return ContinuityReport{}, fmt.Errorf("cannot compare %s with %s: %w", ga.Kind(), gb.Kind(), ErrIncompatibleGeometry)
	}

	if ga.Kind().IsSurface() {
		return a.analyzeSurfaces(ga, gb)
	}
	return a.analyzeCurves(ga, gb)
}

// AnalyzeSelection runs Analyze over every adjacent pair of the
// selection in order, reporting per-pair results rather than failing
// the whole set on one bad pair.
func (a *Analyzer) AnalyzeSelection(geometries []*Geometry) []PairResult {
	if len(geometries) < 2 {
		return nil
	}

	results := make([]PairResult, 0, len(geometries)-1)
	for i := 0; i < len(geometries)-1; i++ {
		report, err := a.Analyze(geometries[i], geometries[i+1])
		results = append(results, PairResult{A: i, B: i + 1, Report: report, Err: err})
	}
	return results
}

// LowestClass returns the worst class among the reports, the
// continuity of the chain as a whole. No reports is Discontinuous.
func LowestClass(reports ...ContinuityReport) ContinuityClass {
	if len(reports) == 0 {
		return Discontinuous
	}
	lowest := reports[0].Class
	for _, r := range reports[1:] {
		if r.Class < lowest {
			lowest = r.Class
		}
	}
	return lowest
}

func (a *Analyzer) analyzeCurves(ga, gb *Geometry) (ContinuityReport, error) {
	// candidate endpoint pairings as parameters on each curve
	pairings := [4][2]float64{{1, 0}, {0, 1}, {1, 1}, {0, 0}}

	best := 0
	bestGap := math.MaxFloat64
	for i, p := range pairings {
		pa, err := ga.Point(p[0])
		if err != nil {
			return ContinuityReport{}, err
		}
		pb, err := gb.Point(p[1])
		if err != nil {
			return ContinuityReport{}, err
		}
		if gap := vec3.Distance(&pa, &pb); gap < bestGap {
			bestGap = gap
			best = i
		}
	}

	ta, tb := pairings[best][0], pairings[best][1]
	report := ContinuityReport{Class: C0, PositionGap: bestGap}
	if bestGap > a.posTol() {
		report.Class = Discontinuous
		return report, nil
	}

	// Traversing the joint as one path runs off the first curve's end
	// onto the second's start. A pairing that matches any other
	// endpoint combination traverses that side backward, negating its
	// odd-order derivatives.
	sa, sb := orientationSign(ta == 1), orientationSign(tb == 0)

	dersA, err := ga.Derivatives(ta, 2)
	if err != nil {
		return ContinuityReport{}, err
	}
	dersB, err := gb.Derivatives(tb, 2)
	if err != nil {
		return ContinuityReport{}, err
	}

	for order := 1; order <= 2; order++ {
		da := dersA[order].Scaled(signPow(sa, order))
		db := dersB[order].Scaled(signPow(sb, order))

		dev, err := a.compareDerivatives(order, &da, &db)
		if err != nil {
			return ContinuityReport{}, err
		}
		report.Derivatives = append(report.Derivatives, dev)

		if !a.promote(&report.Class, order, dev) {
			break
		}
	}

	return report, nil
}

// edgeProbes is the number of stations probed along a shared surface
// edge.
const edgeProbes = 5

// surfaceEdge is one boundary edge of a surface: the parameter
// direction crossing it and the fixed value of that parameter.
type surfaceEdge struct {
	across Direction
	at     float64
}

var surfaceEdges = [4]surfaceEdge{
	{DirU, 0}, {DirU, 1}, {DirV, 0}, {DirV, 1},
}

// uv maps a position s in [0, 1] along the edge to surface parameters.
func (e surfaceEdge) uv(s float64) UV {
	if e.across == DirU {
		return UV{e.at, s}
	}
	return UV{s, e.at}
}

func (a *Analyzer) analyzeSurfaces(ga, gb *Geometry) (ContinuityReport, error) {
	// find the pairing of boundary edges, in either orientation, whose
	// worst station gap is smallest
	var bestA, bestB surfaceEdge
	bestFlip := false
	bestGap := math.MaxFloat64

	for _, ea := range surfaceEdges {
		for _, eb := range surfaceEdges {
			for _, flip := range [2]bool{false, true} {
				gap := 0.0
				for i := 0; i < edgeProbes; i++ {
					s := float64(i) / (edgeProbes - 1)
					pa, err := ga.PointUV(ea.uv(s))
					if err != nil {
						return ContinuityReport{}, err
					}
					pb, err := gb.PointUV(eb.uv(oriented(s, flip)))
					if err != nil {
						return ContinuityReport{}, err
					}
					if d := vec3.Distance(&pa, &pb); d > gap {
						gap = d
					}
				}
				if gap < bestGap {
					bestGap = gap
					bestA, bestB, bestFlip = ea, eb, flip
				}
			}
		}
	}

	report := ContinuityReport{Class: C0, PositionGap: bestGap}
	if bestGap > a.posTol() {
		report.Class = Discontinuous
		return report, nil
	}

	// crossing from the first surface into the second reverses the
	// transverse axis unless the edges sit at opposite parameter ends
	sa, sb := orientationSign(bestA.at == 1), orientationSign(bestB.at == 0)

	for order := 1; order <= 2; order++ {
		// keep the station whose derivative pair deviates the most
		worst := DerivativeDeviation{Order: order, Parametric: true, Geometric: true}
		for i := 0; i < edgeProbes; i++ {
			s := float64(i) / (edgeProbes - 1)

			da, err := transverseDerivative(ga, bestA, s, order)
			if err != nil {
				return ContinuityReport{}, err
			}
			db, err := transverseDerivative(gb, bestB, oriented(s, bestFlip), order)
			if err != nil {
				return ContinuityReport{}, err
			}

			da = da.Scaled(signPow(sa, order))
			db = db.Scaled(signPow(sb, order))

			dev, err := a.compareDerivatives(order, &da, &db)
			if err != nil {
				return ContinuityReport{}, err
			}

			worst.Parametric = worst.Parametric && dev.Parametric
			worst.Geometric = worst.Geometric && dev.Geometric
			if dev.Distance >= worst.Distance {
				worst.Distance = dev.Distance
				worst.Angle = dev.Angle
				worst.MagnitudeRatio = dev.MagnitudeRatio
			}
		}

		report.Derivatives = append(report.Derivatives, worst)
		if !a.promote(&report.Class, order, worst) {
			break
		}
	}

	return report, nil
}

// transverseDerivative evaluates the order-th partial derivative
// across the given edge at position s along it.
func transverseDerivative(g *Geometry, e surfaceEdge, s float64, order int) (vec3.T, error) {
	ders, err := g.DerivativesUV(e.uv(s), order)
	if err != nil {
		return vec3.T{}, err
	}
	if e.across == DirU {
		return ders[order][0], nil
	}
	return ders[0][order], nil
}

// compareDerivatives measures how the two sides' derivative vectors of
// one order differ. A vanishing first derivative leaves the boundary
// tangent undefined.
func (a *Analyzer) compareDerivatives(order int, da, db *vec3.T) (DerivativeDeviation, error) {
	la, lb := da.Length(), db.Length()
	if order == 1 && (la < internal.Epsilon || lb < internal.Epsilon) {
		return DerivativeDeviation{}, fmt.Errorf("vanishing tangent at shared boundary: %w", ErrDegenerateGeometry)
	}

	diff := vec3.Sub(da, db)
	dev := DerivativeDeviation{
		Order:    order,
		Distance: diff.Length(),
	}
	dev.Parametric = dev.Distance <= a.posTol()

	switch {
	case la < internal.Epsilon && lb < internal.Epsilon:
		// both vanish, directions trivially agree
		dev.Angle = 0
		dev.MagnitudeRatio = 1
		dev.Geometric = true
	case la < internal.Epsilon || lb < internal.Epsilon:
		dev.Angle = math.NaN()
		dev.MagnitudeRatio = lb / math.Max(la, internal.Epsilon)
	default:
		cos := vec3.Dot(da, db) / (la * lb)
		cos = math.Max(-1, math.Min(1, cos))
		angle := math.Acos(cos)

		// fold antiparallel onto parallel; the two directions span the
		// same line either way
		folded := math.Min(angle, math.Pi-angle)

		dev.Angle = folded
		dev.MagnitudeRatio = lb / la
		dev.Geometric = folded <= a.angTol()
	}

	return dev, nil
}

// promote raises the class according to the deviation of one
// derivative order and reports whether the next order is worth
// probing. Parametric wins over geometric at each order, and only a
// chain of parametric matches reaches C2.
func (a *Analyzer) promote(class *ContinuityClass, order int, dev DerivativeDeviation) bool {
	switch order {
	case 1:
		if dev.Parametric {
			*class = C1
		} else if dev.Geometric {
			*class = G1
		}
		return *class >= G1
	case 2:
		if dev.Parametric && *class == C1 {
			*class = C2
		} else if dev.Geometric {
			*class = G2
		}
	}
	return false
}

func orientationSign(forward bool) float64 {
	if forward {
		return 1
	}
	return -1
}

// signPow returns sign raised to order for sign in {-1, 1}.
func signPow(sign float64, order int) float64 {
	if order%2 == 0 {
		return 1
	}
	return sign
}

// oriented maps an edge position onto the second surface's edge,
// reversing it when the matched orientations oppose.
func oriented(s float64, flip bool) float64 {
	if flip {
		return 1 - s
	}
	return s
}

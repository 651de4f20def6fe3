package internal

import "math"

// KnotVec is a nondecreasing sequence of parameter values defining the
// support of a B-spline basis. A valid knot vector for count control
// points of order k has length count + k and repeats its first and last
// values k times (clamped).
type KnotVec []float64

// ClampedUniform returns a clamped knot vector on [0, 1] for the given
// control point count and order: the first and last `order` knots
// repeat 0 and 1, interior knots are equally spaced.
func ClampedUniform(count, order int) KnotVec {
	knots := make(KnotVec, count+order)
	interior := count - order
	for i := range knots {
		switch {
		case i < order:
			knots[i] = 0
		case i >= count:
			knots[i] = 1
		default:
			knots[i] = float64(i-order+1) / float64(interior+1)
		}
	}
	return knots
}

func (this KnotVec) Clone() KnotVec {
	return append(KnotVec(nil), this...)
}

// Find the knot span containing the parameter u
// (corresponds to algorithm 2.1 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer order of the basis
// + parameter
//
// **returns**
// + the index of the knot span
//
func (this KnotVec) Span(order int, u float64) int {
	degree := order - 1
	n := len(this) - order - 1

	if u >= this[n+1] {
		return n
	}

	if u < this[degree] {
		return degree
	}

	low, high := degree, n+1
	mid := (low + high) / 2

	for u < this[mid] || u >= this[mid+1] {
		if u < this[mid] {
			high = mid
		} else {
			low = mid
		}

		mid = (low + high) / 2
	}

	return mid
}

// IsValid reports whether the vector is a well-formed clamped knot
// vector for the given order: long enough, clamped at both ends with
// `order` repeats, and nondecreasing.
func (this KnotVec) IsValid(order int) bool {
	if len(this) < 2*order {
		return false
	}

	rep := this[0]
	for _, knot := range this[:order] {
		if math.Abs(knot-rep) > Epsilon {
			return false
		}
	}

	rep = this[len(this)-1]
	for _, knot := range this[len(this)-order:] {
		if math.Abs(knot-rep) > Epsilon {
			return false
		}
	}

	return this.IsNonDecreasing()
}

func (this KnotVec) IsNonDecreasing() bool {
	rep := this[0]
	for _, knot := range this[1:] {
		if knot < rep-Epsilon {
			return false
		}
		rep = knot
	}
	return true
}

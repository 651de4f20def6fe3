package internal

// Bernstein computes all degree-n Bernstein polynomial values at u
// (corresponds to algorithm 1.3 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer degree
// + float parameter in [0, 1]
//
// **returns**
// + slice of n+1 basis values, a partition of unity
//
func Bernstein(n int, u float64) []float64 {
	basis := make([]float64, n+1)
	basis[0] = 1

	for j := 1; j <= n; j++ {
		var saved float64
		for r := 0; r < j; r++ {
			temp := basis[r]
			basis[r] = saved + (1-u)*temp
			saved = u * temp
		}
		basis[j] = saved
	}

	return basis
}

// BernsteinDerivative computes the d-th derivative of every degree-n
// Bernstein polynomial at u, using the difference identity
// B'(i,n) = n * (B(i-1,n-1) - B(i,n-1)).
func BernsteinDerivative(n, d int, u float64) []float64 {
	if d == 0 {
		return Bernstein(n, u)
	}

	basis := make([]float64, n+1)
	if d > n {
		return basis
	}

	lower := BernsteinDerivative(n-1, d-1, u)
	for i := 0; i <= n; i++ {
		var v float64
		if i > 0 {
			v += lower[i-1]
		}
		if i < n {
			v -= lower[i]
		}
		basis[i] = float64(n) * v
	}

	return basis
}

// HermiteWeights returns the cubic Hermite blending values for the
// tuple (p0, p1, m0, m1), differentiated d times with respect to the
// local parameter. The position weights (first two) form a partition
// of unity at d == 0.
func HermiteWeights(u float64, d int) [4]float64 {
	switch d {
	case 0:
		u2, u3 := u*u, u*u*u
		return [4]float64{
			2*u3 - 3*u2 + 1,
			-2*u3 + 3*u2,
			u3 - 2*u2 + u,
			u3 - u2,
		}
	case 1:
		u2 := u * u
		return [4]float64{
			6*u2 - 6*u,
			-6*u2 + 6*u,
			3*u2 - 4*u + 1,
			3*u2 - 2*u,
		}
	case 2:
		return [4]float64{
			12*u - 6,
			-12*u + 6,
			6*u - 4,
			6*u - 2,
		}
	case 3:
		return [4]float64{12, -12, 6, 6}
	default:
		return [4]float64{}
	}
}

// SpanBasis computes the order-k non-vanishing basis functions on a
// known knot span
// (corresponds to algorithm 2.2 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer knot span index
// + float parameter
// + integer order of the basis
// + array of nondecreasing knot values
//
// **returns**
// + list of the k non-vanishing basis functions
//
func SpanBasis(span int, u float64, order int, knots KnotVec) []float64 {
	degree := order - 1

	basis := make([]float64, order)
	left := make([]float64, order)
	right := make([]float64, order)

	basis[0] = 1

	for j := 1; j <= degree; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64

		for r := 0; r < j; r++ {
			temp := basis[r] / (right[r+1] + left[j-r])
			basis[r] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}

		basis[j] = saved
	}

	return basis
}

// SpanBasisDerivatives computes the non-vanishing basis functions and
// their derivatives on a known knot span
// (corresponds to algorithm 2.3 from The NURBS book, Piegl & Tiller 2nd edition)
//
// **params**
// + integer knot span index
// + float parameter
// + integer order of the basis
// + integer number of derivatives to compute, at most order-1
// + array of nondecreasing knot values
//
// **returns**
// + 2d array of size (numDerivs+1, order); row d holds the d-th
// derivative of each non-vanishing basis function, row 0 the values
//
func SpanBasisDerivatives(span int, u float64, order, numDerivs int, knots KnotVec) [][]float64 {
	p := order - 1
	n := numDerivs

	ndu := zeros2d(p+1, p+1)
	left := make([]float64, p+1)
	right := make([]float64, p+1)

	ndu[0][0] = 1

	for j := 1; j <= p; j++ {
		left[j] = u - knots[span+1-j]
		right[j] = knots[span+j] - u
		var saved float64

		for r := 0; r < j; r++ {
			ndu[j][r] = right[r+1] + left[j-r]
			temp := ndu[r][j-1] / ndu[j][r]

			ndu[r][j] = saved + right[r+1]*temp
			saved = left[j-r] * temp
		}
		ndu[j][j] = saved
	}

	ders := zeros2d(n+1, p+1)

	for j := 0; j <= p; j++ {
		ders[0][j] = ndu[j][p]
	}

	a := zeros2d(2, p+1)
	var j1, j2 int

	for r := 0; r <= p; r++ {
		s1, s2 := 0, 1
		a[0][0] = 1

		for k := 1; k <= n; k++ {
			var d float64
			rk := r - k
			pk := p - k

			if r >= k {
				a[s2][0] = a[s1][0] / ndu[pk+1][rk]
				d = a[s2][0] * ndu[rk][pk]
			}

			if rk >= -1 {
				j1 = 1
			} else {
				j1 = -rk
			}

			if r-1 <= pk {
				j2 = k - 1
			} else {
				j2 = p - r
			}

			for j := j1; j <= j2; j++ {
				a[s2][j] = (a[s1][j] - a[s1][j-1]) / ndu[pk+1][rk+j]
				d += a[s2][j] * ndu[rk+j][pk]
			}

			if r <= pk {
				a[s2][k] = -a[s1][k-1] / ndu[pk+1][r]
				d += a[s2][k] * ndu[r][pk]
			}

			ders[k][r] = d

			s1, s2 = s2, s1
		}
	}

	acc := p
	for k := 1; k <= n; k++ {
		for j := 0; j <= p; j++ {
			ders[k][j] *= float64(acc)
		}
		acc *= (p - k)
	}

	return ders
}

// FullBasis evaluates the order-k basis at u over all count control
// points, scattering the non-vanishing span values into a count-length
// vector. Entries outside the span are zero; inside the domain the
// vector is a partition of unity.
func FullBasis(count, order int, knots KnotVec, u float64) []float64 {
	span := knots.Span(order, u)
	local := SpanBasis(span, u, order, knots)

	basis := make([]float64, count)
	for j, v := range local {
		basis[span-order+1+j] = v
	}

	return basis
}

// FullBasisDerivatives evaluates the basis and its derivatives up to
// numDerivs at u over all count control points. Rows beyond the
// degree are zero.
func FullBasisDerivatives(count, order, numDerivs int, knots KnotVec, u float64) [][]float64 {
	degree := order - 1
	du := numDerivs
	if du > degree {
		du = degree
	}

	span := knots.Span(order, u)
	local := SpanBasisDerivatives(span, u, order, du, knots)

	ders := zeros2d(numDerivs+1, count)
	for d := 0; d <= du; d++ {
		for j := 0; j < order; j++ {
			ders[d][span-order+1+j] = local[d][j]
		}
	}

	return ders
}

func zeros2d(n, m int) [][]float64 {
	result := make([][]float64, n)
	for i := range result {
		result[i] = make([]float64, m)
	}

	return result
}

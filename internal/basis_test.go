package internal

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBernsteinPartitionOfUnity(t *testing.T) {
	for n := 1; n <= 6; n++ {
		for _, u := range []float64{0, 0.1, 0.25, 0.5, 0.9, 1} {
			basis := Bernstein(n, u)
			require.Len(t, basis, n+1)

			sum := 0.0
			for _, v := range basis {
				assert.GreaterOrEqual(t, v, 0.0)
				sum += v
			}
			assert.InDelta(t, 1, sum, 1e-12, "degree %d at %v", n, u)
		}
	}
}

func TestBernsteinEndpoints(t *testing.T) {
	basis := Bernstein(3, 0)
	assert.Equal(t, []float64{1, 0, 0, 0}, basis)

	basis = Bernstein(3, 1)
	assert.Equal(t, []float64{0, 0, 0, 1}, basis)
}

func TestBernsteinDerivativeSumsToZero(t *testing.T) {
	// derivatives of a partition of unity sum to zero
	for d := 1; d <= 3; d++ {
		for _, u := range []float64{0, 0.3, 0.7, 1} {
			sum := 0.0
			for _, v := range BernsteinDerivative(4, d, u) {
				sum += v
			}
			assert.InDelta(t, 0, sum, 1e-10, "derivative %d at %v", d, u)
		}
	}
}

func TestBernsteinDerivativeMatchesFiniteDifference(t *testing.T) {
	const h = 1e-6
	for _, u := range []float64{0.2, 0.5, 0.8} {
		fwd := Bernstein(3, u+h)
		bwd := Bernstein(3, u-h)
		ders := BernsteinDerivative(3, 1, u)

		for i := range ders {
			fd := (fwd[i] - bwd[i]) / (2 * h)
			assert.InDelta(t, fd, ders[i], 1e-5)
		}
	}
}

func TestBernsteinDerivativePastDegreeIsZero(t *testing.T) {
	for _, v := range BernsteinDerivative(2, 3, 0.4) {
		assert.Zero(t, v)
	}
}

func TestHermiteWeightsPositionPartition(t *testing.T) {
	// only the two position weights blend positions, so only they are
	// required to sum to one
	for _, u := range []float64{0, 0.25, 0.5, 0.75, 1} {
		h := HermiteWeights(u, 0)
		assert.InDelta(t, 1, h[0]+h[1], 1e-12)
	}
}

func TestHermiteWeightsEndpoints(t *testing.T) {
	assert.Equal(t, [4]float64{1, 0, 0, 0}, HermiteWeights(0, 0))
	assert.Equal(t, [4]float64{0, 1, 0, 0}, HermiteWeights(1, 0))

	// endpoint slopes are the tangent entries
	assert.Equal(t, [4]float64{0, 0, 1, 0}, HermiteWeights(0, 1))
	assert.Equal(t, [4]float64{0, 0, 0, 1}, HermiteWeights(1, 1))
}

func TestHermiteWeightsMatchFiniteDifference(t *testing.T) {
	const h = 1e-6
	for d := 1; d <= 3; d++ {
		for _, u := range []float64{0.2, 0.5, 0.8} {
			fwd := HermiteWeights(u+h, d-1)
			bwd := HermiteWeights(u-h, d-1)
			ders := HermiteWeights(u, d)

			for i := range ders {
				fd := (fwd[i] - bwd[i]) / (2 * h)
				assert.InDelta(t, fd, ders[i], 1e-5, "derivative %d weight %d at %v", d, i, u)
			}
		}
	}
}

func TestHermiteWeightsPastCubicAreZero(t *testing.T) {
	assert.Equal(t, [4]float64{}, HermiteWeights(0.3, 4))
}

func TestFullBasisPartitionOfUnity(t *testing.T) {
	const count, order = 6, 4
	knots := ClampedUniform(count, order)

	for _, u := range []float64{0, 0.1, 1.0 / 3, 0.5, 0.99, 1} {
		basis := FullBasis(count, order, knots, u)
		require.Len(t, basis, count)

		sum := 0.0
		for _, v := range basis {
			assert.GreaterOrEqual(t, v, -1e-12)
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-12, "at %v", u)
	}
}

func TestFullBasisClampedEndpoints(t *testing.T) {
	const count, order = 5, 3
	knots := ClampedUniform(count, order)

	basis := FullBasis(count, order, knots, 0)
	assert.InDelta(t, 1, basis[0], 1e-12)

	basis = FullBasis(count, order, knots, 1)
	assert.InDelta(t, 1, basis[count-1], 1e-12)
}

func TestFullBasisMatchesBernsteinWhenOrderEqualsCount(t *testing.T) {
	const count = 4
	knots := ClampedUniform(count, count)

	for _, u := range []float64{0, 0.3, 0.6, 1} {
		basis := FullBasis(count, count, knots, u)
		bern := Bernstein(count-1, u)
		for i := range basis {
			assert.InDelta(t, bern[i], basis[i], 1e-12)
		}
	}
}

func TestFullBasisDerivativesMatchFiniteDifference(t *testing.T) {
	const count, order = 6, 4
	const h = 1e-6
	knots := ClampedUniform(count, order)

	// wider step for the second difference keeps roundoff in check
	const h2 = 1e-4

	for _, u := range []float64{0.15, 0.5, 0.85} {
		ders := FullBasisDerivatives(count, order, 2, knots, u)
		fwd := FullBasis(count, order, knots, u+h)
		bwd := FullBasis(count, order, knots, u-h)
		fwd2 := FullBasis(count, order, knots, u+h2)
		bwd2 := FullBasis(count, order, knots, u-h2)

		for i := 0; i < count; i++ {
			fd := (fwd[i] - bwd[i]) / (2 * h)
			assert.InDelta(t, fd, ders[1][i], 1e-5)

			fd2 := (fwd2[i] - 2*ders[0][i] + bwd2[i]) / (h2 * h2)
			assert.InDelta(t, fd2, ders[2][i], 1e-4)
		}
	}
}

func TestFullBasisDerivativesPastDegreeAreZero(t *testing.T) {
	const count, order = 3, 2
	knots := ClampedUniform(count, order)

	ders := FullBasisDerivatives(count, order, 3, knots, 0.4)
	require.Len(t, ders, 4)
	for d := 2; d <= 3; d++ {
		for _, v := range ders[d] {
			assert.Zero(t, v)
		}
	}
}

func TestFullBasisRepeatedInteriorKnot(t *testing.T) {
	// 0/0 spans from the repeated knot must not poison the basis
	knots := KnotVec{0, 0, 0, 0.5, 0.5, 1, 1, 1}
	const count, order = 5, 3

	for _, u := range []float64{0.25, 0.5, 0.75} {
		sum := 0.0
		for _, v := range FullBasis(count, order, knots, u) {
			require.False(t, math.IsNaN(v))
			sum += v
		}
		assert.InDelta(t, 1, sum, 1e-12)
	}
}

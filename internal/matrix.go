package internal

import "math"

// Matrix is a dense square matrix used for the linear systems that
// arise in global curve interpolation.
type Matrix [][]float64

func (this Matrix) Clone() Matrix {
	clone := make(Matrix, len(this))
	for i := range clone {
		clone[i] = append([]float64(nil), this[i]...)
	}

	return clone
}

// Solve solves this * x = vec for x. Decompose once instead when
// solving against several right-hand sides.
func (this Matrix) Solve(vec []float64) []float64 {
	return this.Decompose().Solve(vec)
}

// LU holds an LU decomposition with partial pivoting.
type LU struct {
	lu Matrix
	p  []int
}

// Decompose performs Doolittle LU decomposition with partial pivoting.
// The receiver is not modified.
func (this Matrix) Decompose() *LU {
	mat := this.Clone()
	n := len(mat)
	p := make([]int, n)

	for k := 0; k < n; k++ {
		// pivot on the largest remaining entry in column k
		pk := k
		max := math.Abs(mat[k][k])
		for i := k + 1; i < n; i++ {
			if abs := math.Abs(mat[i][k]); abs > max {
				max = abs
				pk = i
			}
		}
		p[k] = pk

		if pk != k {
			mat[k], mat[pk] = mat[pk], mat[k]
		}

		pivot := mat[k][k]
		for i := k + 1; i < n; i++ {
			mat[i][k] /= pivot
			factor := mat[i][k]
			for j := k + 1; j < n; j++ {
				mat[i][j] -= factor * mat[k][j]
			}
		}
	}

	return &LU{mat, p}
}

// Solve solves for one right-hand side by forward then backward
// substitution.
func (this *LU) Solve(vec []float64) []float64 {
	x := append([]float64(nil), vec...)
	n := len(this.lu)

	for i := 0; i < n; i++ {
		if pi := this.p[i]; pi != i {
			x[i], x[pi] = x[pi], x[i]
		}

		for j := 0; j < i; j++ {
			x[i] -= x[j] * this.lu[i][j]
		}
	}

	for i := n - 1; i >= 0; i-- {
		for j := i + 1; j < n; j++ {
			x[i] -= x[j] * this.lu[i][j]
		}

		x[i] /= this.lu[i][i]
	}

	return x
}

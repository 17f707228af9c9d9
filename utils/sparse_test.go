package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSparse(t *testing.T) {
	// Accumulate then convert to CSR
	{
		A := NewDOK(3, 3)
		A.Accumulate(0, 0, 1)
		A.Accumulate(0, 0, 1)
		A.Accumulate(1, 2, -3)
		R := A.ToCSR()
		assert.Equal(t, 2., R.At(0, 0))
		assert.Equal(t, -3., R.At(1, 2))
		assert.Equal(t, 2, R.NNZ())
	}
	// MulVec against a known matrix
	{
		A := NewDOK(2, 2)
		A.Set(0, 0, 2)
		A.Set(0, 1, 1)
		A.Set(1, 1, 3)
		R := A.ToCSR()
		y := make([]float64, 2)
		R.MulVec([]float64{1, 2}, y)
		assert.InDeltaSlice(t, []float64{4, 6}, y, 1e-15)
	}
	// DiagScale symmetry: D^-1/2 A D^-1/2 with A symmetric stays symmetric
	{
		A := NewDOK(2, 2)
		A.Set(0, 0, 4)
		A.Set(0, 1, 2)
		A.Set(1, 0, 2)
		A.Set(1, 1, 8)
		S := A.ToCSR().DiagScale([]float64{4, 16})
		assert.InDelta(t, 1., S.At(0, 0), 1e-15)
		assert.InDelta(t, 0.25, S.At(0, 1), 1e-15)
		assert.InDelta(t, S.At(1, 0), S.At(0, 1), 1e-15)
	}
	// RowSums
	{
		A := NewDOK(2, 3)
		A.Set(0, 0, 1)
		A.Set(0, 2, 2)
		A.Set(1, 1, 5)
		assert.Equal(t, []float64{3, 5}, A.ToCSR().RowSums())
	}
}

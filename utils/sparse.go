package utils

import (
	"fmt"
	"math"

	"github.com/james-bowman/sparse"
	"github.com/james-bowman/sparse/blas"
	"gonum.org/v1/gonum/mat"
)

type DOK struct {
	M        *sparse.DOK
	readOnly bool
	name     string
}

func NewDOK(nr, nc int) (R DOK) {
	R = DOK{
		sparse.NewDOK(nr, nc),
		false,
		"unnamed - hint: pass a variable name to SetReadOnly()",
	}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m DOK) Dims() (r, c int)    { return m.M.Dims() }
func (m DOK) At(i, j int) float64 { return m.M.At(i, j) }
func (m DOK) T() mat.Matrix       { return m.M.T() }
func (m DOK) NNZ() int            { return m.M.NNZ() }

func (m *DOK) SetReadOnly(name ...string) DOK {
	if len(name) != 0 {
		m.name = name[0]
	}
	m.readOnly = true
	return *m
}

func (m DOK) Set(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, val)
}

// Accumulate adds val to entry (i,j), the primitive for FEM assembly scatter.
func (m DOK) Accumulate(i, j int, val float64) {
	m.checkWritable()
	m.M.Set(i, j, m.M.At(i, j)+val)
}

func (m DOK) ToCSR() CSR {
	return CSR{
		M:        m.M.ToCSR(),
		readOnly: m.readOnly,
		name:     m.name,
	}
}

func (m DOK) checkWritable() {
	if m.readOnly {
		err := fmt.Errorf("attempt to write to a read only matrix named: \"%v\"", m.name)
		panic(err)
	}
}

type CSR struct {
	M        *sparse.CSR
	readOnly bool
	name     string
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m CSR) Dims() (r, c int)              { return m.M.Dims() }
func (m CSR) At(i, j int) float64           { return m.M.At(i, j) }
func (m CSR) T() mat.Matrix                 { return m.M.T() }
func (m CSR) NNZ() int                      { return m.M.NNZ() }
func (m CSR) RawMatrix() *blas.SparseMatrix { return m.M.RawMatrix() }
func (m CSR) Data() []float64 {
	return m.RawMatrix().Data
}

// MulVec computes y = A*x using the raw CSR storage, the hot kernel for the
// Lanczos iteration. len(x) and len(y) must match the matrix dimensions.
func (m CSR) MulVec(x, y []float64) {
	var (
		raw    = m.RawMatrix()
		nr, nc = m.Dims()
	)
	if len(x) != nc || len(y) != nr {
		panic(fmt.Errorf("dimension mismatch in MulVec: A is %dx%d, len(x) = %d, len(y) = %d",
			nr, nc, len(x), len(y)))
	}
	for i := 0; i < nr; i++ {
		var sum float64
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			sum += raw.Data[jj] * x[raw.Ind[jj]]
		}
		y[i] = sum
	}
}

// RowSums returns the vector of row sums, used for Gershgorin-style bounds
// and mass lumping checks.
func (m CSR) RowSums() (sums []float64) {
	var (
		raw   = m.RawMatrix()
		nr, _ = m.Dims()
	)
	sums = make([]float64, nr)
	for i := 0; i < nr; i++ {
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			sums[i] += raw.Data[jj]
		}
	}
	return
}

// ToDense converts to a dense Matrix. Only sensible for small systems, the
// dense eigensolver path guards the size before calling this.
func (m CSR) ToDense() (R Matrix) {
	var (
		nr, nc = m.Dims()
	)
	R = NewMatrix(nr, nc)
	m.M.DoNonZero(func(i, j int, v float64) {
		R.M.Set(i, j, v)
	})
	return
}

// DiagScale computes D^(-1/2) * A * D^(-1/2) in place on a copy, where d
// holds the diagonal entries of D. Used to reduce a lumped-mass generalized
// eigenproblem to standard symmetric form.
func (m CSR) DiagScale(d []float64) (R CSR) {
	var (
		nr, _ = m.Dims()
	)
	if len(d) != nr {
		panic(fmt.Errorf("dimension mismatch in DiagScale: A is %dx%d, len(d) = %d", nr, nr, len(d)))
	}
	scale := make([]float64, nr)
	for i, v := range d {
		if v <= 0 {
			panic(fmt.Errorf("non-positive diagonal entry %v at index %d", v, i))
		}
		scale[i] = 1. / math.Sqrt(v)
	}
	var (
		raw    = m.RawMatrix()
		indptr = make([]int, len(raw.Indptr))
		ind    = make([]int, len(raw.Ind))
		data   = make([]float64, len(raw.Data))
	)
	copy(indptr, raw.Indptr)
	copy(ind, raw.Ind)
	copy(data, raw.Data)
	for i := 0; i < nr; i++ {
		for jj := indptr[i]; jj < indptr[i+1]; jj++ {
			data[jj] *= scale[i] * scale[ind[jj]]
		}
	}
	R = CSR{M: sparse.NewCSR(nr, nr, indptr, ind, data), name: m.name}
	return
}

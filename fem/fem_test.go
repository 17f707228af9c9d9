package fem

import (
	"math"
	"testing"

	"github.com/notargets/goacoustics/geometry"
	"github.com/notargets/goacoustics/mesh"
	"github.com/notargets/goacoustics/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func newDiagCSR(d []float64) utils.CSR {
	A := utils.NewDOK(len(d), len(d))
	for i, v := range d {
		A.Set(i, i, v)
	}
	return A.ToCSR()
}

func boxMesh(t *testing.T, lx, ly, lz, h float64) *mesh.Mesh {
	c, err := geometry.NewCuboid(r3.Vec{}, r3.Vec{X: lx, Y: ly, Z: lz})
	require.NoError(t, err)
	m, err := mesh.Generate(c, h)
	require.NoError(t, err)
	return m
}

func TestAssembleInvariants(t *testing.T) {
	m := boxMesh(t, 1, 1, 1, 0.5)
	K, M, err := Assemble(m)
	require.NoError(t, err)

	n, _ := K.Dims()
	assert.Equal(t, m.NumVertices, n)

	// The constant mode is in the stiffness nullspace: K*1 = 0
	ones := make([]float64, n)
	for i := range ones {
		ones[i] = 1
	}
	y := make([]float64, n)
	K.MulVec(ones, y)
	for i := range y {
		assert.InDelta(t, 0., y[i], 1e-12)
	}

	// Total mass equals mesh volume, both consistent and lumped
	var total float64
	for _, s := range M.RowSums() {
		total += s
	}
	assert.InDelta(t, m.Volume(), total, 1e-12)

	d, err := LumpedMass(m)
	require.NoError(t, err)
	total = 0
	for _, v := range d {
		total += v
	}
	assert.InDelta(t, m.Volume(), total, 1e-12)

	// Stiffness symmetry
	for i := 0; i < n; i += 7 {
		for j := 0; j < n; j += 5 {
			assert.InDelta(t, K.At(i, j), K.At(j, i), 1e-13)
		}
	}
}

func TestSolveDenseBoxModes(t *testing.T) {
	// Distinct box dimensions keep the analytic spectrum simple
	var (
		lx, ly = 1.0, 0.8
		m      = boxMesh(t, lx, ly, 0.6, 0.2)
	)
	K, M, err := Assemble(m)
	require.NoError(t, err)

	pairs, err := SolveDense(K, M, 4)
	require.NoError(t, err)

	// Ascending, non-negative, constant mode first
	assert.InDelta(t, 0., pairs[0].Lambda, 1e-8)
	for i := 1; i < len(pairs); i++ {
		assert.GreaterOrEqual(t, pairs[i].Lambda, pairs[i-1].Lambda)
		assert.GreaterOrEqual(t, pairs[i].Lambda, 0.)
	}

	// Analytic rigid-wall eigenvalues lambda = pi^2 (n/lx)^2 etc. Conforming
	// P1 eigenvalues approach these from above, so the ordered discrete
	// values bound the ordered analytic ones. Error grows with lambda*h^2:
	// the third cluster sees only 3 cells across the short z direction, so
	// it carries a wider tolerance than the well resolved axial modes.
	analytic := []float64{
		math.Pi * math.Pi / (lx * lx),
		math.Pi * math.Pi / (ly * ly),
		math.Pi*math.Pi/(lx*lx) + math.Pi*math.Pi/(ly*ly),
	}
	tols := []float64{0.08, 0.08, 0.15}
	for i, want := range analytic {
		got := pairs[i+1].Lambda
		assert.GreaterOrEqual(t, got, want*(1-1e-9),
			"mode %d: discrete %v below analytic %v", i+1, got, want)
		assert.InDelta(t, want, got, tols[i]*want,
			"mode %d: got %v, want %v", i+1, got, want)
	}

	// Constant mode shape is flat after normalization
	for _, v := range pairs[0].Vector {
		assert.InDelta(t, 1., v, 1e-6)
	}
	// Normalization convention: unit max-abs
	for _, p := range pairs {
		var maxAbs float64
		for _, v := range p.Vector {
			if math.Abs(v) > maxAbs {
				maxAbs = math.Abs(v)
			}
		}
		assert.InDelta(t, 1., maxAbs, 1e-12)
	}
}

func TestSolveLanczosAgreesWithDense(t *testing.T) {
	m := boxMesh(t, 1.0, 0.8, 0.6, 0.25)
	K, _, err := Assemble(m)
	require.NoError(t, err)
	d, err := LumpedMass(m)
	require.NoError(t, err)

	lz, err := SolveLanczos(K, d, 5)
	require.NoError(t, err)

	// Dense reference on the same lumped system
	dm := newDiagCSR(d)
	dn, err := SolveDense(K, dm, 5)
	require.NoError(t, err)

	for i := range lz {
		assert.InDelta(t, dn[i].Lambda, lz[i].Lambda, 1e-6*(1+dn[i].Lambda),
			"eigenvalue %d", i)
	}
}

func TestSolveErrors(t *testing.T) {
	m := boxMesh(t, 1, 1, 1, 0.5)
	K, M, err := Assemble(m)
	require.NoError(t, err)
	_, err = SolveDense(K, M, 0)
	assert.Error(t, err)
	_, err = SolveDense(K, M, m.NumVertices+1)
	assert.Error(t, err)
	d, _ := LumpedMass(m)
	_, err = SolveLanczos(K, d[:3], 2)
	assert.Error(t, err)
}

package fem

import (
	"fmt"
	"math"
	"math/rand"
	"sort"

	"github.com/notargets/goacoustics/utils"
	"gonum.org/v1/gonum/mat"
)

// EigenPair is one resonance solution: eigenvalue lambda in rad^2/length^2
// and the pressure eigenfunction sampled at mesh vertices.
type EigenPair struct {
	Lambda float64
	Vector []float64
}

// SolveDense solves K p = lambda M p by Cholesky reduction to standard
// symmetric form and a full dense eigendecomposition. Exact and simple, for
// systems up to a few thousand vertices.
func SolveDense(K, M utils.CSR, nev int) (pairs []EigenPair, err error) {
	var (
		n, _ = K.Dims()
	)
	if nev < 1 || nev > n {
		return nil, fmt.Errorf("requested %d modes from a %d vertex system", nev, n)
	}
	var (
		kDense = K.ToDense()
		mSym   = mat.NewSymDense(n, nil)
	)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			mSym.SetSym(i, j, 0.5*(M.At(i, j)+M.At(j, i)))
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(mSym); !ok {
		return nil, fmt.Errorf("mass matrix is not positive definite")
	}
	var L mat.TriDense
	chol.LTo(&L)

	// C = L^-1 K L^-T via two triangular solves
	var Y, C mat.Dense
	if err = Y.Solve(&L, kDense.M); err != nil {
		return nil, fmt.Errorf("reduction solve failed: %v", err)
	}
	if err = C.Solve(&L, Y.T()); err != nil {
		return nil, fmt.Errorf("reduction solve failed: %v", err)
	}
	cSym := mat.NewSymDense(n, nil)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			cSym.SetSym(i, j, 0.5*(C.At(i, j)+C.At(j, i)))
		}
	}

	var eig mat.EigenSym
	if ok := eig.Factorize(cSym, true); !ok {
		return nil, fmt.Errorf("eigendecomposition failed")
	}
	var (
		values  = eig.Values(nil) // ascending
		vectors mat.Dense
	)
	eig.VectorsTo(&vectors)

	pairs = make([]EigenPair, nev)
	for i := 0; i < nev; i++ {
		var x mat.VecDense
		y := vectors.ColView(i)
		if err = x.SolveVec(L.T(), y); err != nil {
			return nil, fmt.Errorf("back transform failed: %v", err)
		}
		pairs[i] = EigenPair{
			Lambda: clampEigenvalue(values[i]),
			Vector: normalizeMode(x.RawVector().Data),
		}
	}
	return
}

// SolveLanczos solves K p = lambda D p for the lumped mass diagonal d using
// a shifted Lanczos iteration with full reorthogonalization. The lumped
// problem reduces to the standard symmetric B = D^-1/2 K D^-1/2; a
// Gershgorin bound sigma turns the smallest eigenvalues of B into the
// largest of sigma*I - B, which Lanczos resolves first.
func SolveLanczos(K utils.CSR, d []float64, nev int) (pairs []EigenPair, err error) {
	var (
		n, _ = K.Dims()
	)
	if nev < 1 || nev > n {
		return nil, fmt.Errorf("requested %d modes from a %d vertex system", nev, n)
	}
	if len(d) != n {
		return nil, fmt.Errorf("lumped mass diagonal has %d entries for %d vertices", len(d), n)
	}
	var (
		B     = K.DiagScale(d)
		sigma = gershgorinBound(B)
		m     = lanczosSteps(n, nev)
	)

	// Lanczos basis and tridiagonal coefficients
	var (
		V     = make([]utils.Vector, 0, m+1)
		alpha = make([]float64, 0, m)
		beta  = make([]float64, 0, m) // beta[j] couples V[j] and V[j+1]
		rng   = rand.New(rand.NewSource(1))
	)
	v := utils.NewVector(n).Apply(func(float64) float64 { return rng.NormFloat64() })
	v.Scale(1. / v.Norm())
	V = append(V, v)

	w := utils.NewVector(n)
	for j := 0; j < m; j++ {
		// w = (sigma*I - B) v_j
		B.MulVec(V[j].Data(), w.Data())
		w.Scale(-1).AddScaled(sigma, V[j])
		a := w.Dot(V[j])
		alpha = append(alpha, a)
		w.AddScaled(-a, V[j])
		if j > 0 {
			w.AddScaled(-beta[j-1], V[j-1])
		}
		// Full reorthogonalization keeps the basis clean enough for
		// degenerate room modes
		for _, vk := range V {
			w.AddScaled(-w.Dot(vk), vk)
		}
		b := w.Norm()
		beta = append(beta, b)
		if b < 1.e-12*sigma || j == m-1 {
			break
		}
		V = append(V, w.Copy().Scale(1./b))
	}

	var (
		steps = len(alpha)
		tri   = utils.NewSymTriDiagonal(alpha, beta[:steps-1])
		eig   mat.EigenSym
	)
	if ok := eig.Factorize(tri, true); !ok {
		return nil, fmt.Errorf("tridiagonal eigendecomposition failed")
	}
	var (
		theta   = eig.Values(nil) // ascending eigenvalues of sigma*I - B
		vectors mat.Dense
	)
	eig.VectorsTo(&vectors)

	if steps < nev {
		return nil, fmt.Errorf("lanczos terminated after %d steps, %d modes requested", steps, nev)
	}

	// The largest theta are the smallest lambda = sigma - theta
	pairs = make([]EigenPair, 0, nev)
	for i := steps - 1; i >= steps-nev; i-- {
		s := vectors.ColView(i)
		x := utils.NewVector(n)
		for k := 0; k < steps; k++ {
			x.AddScaled(s.AtVec(k), V[k])
		}
		// Residual of the Ritz pair in the shifted operator
		res := math.Abs(beta[steps-1] * s.AtVec(steps-1))
		if res > 1.e-8*sigma {
			return nil, fmt.Errorf("mode %d not converged: residual %v", steps-1-i, res)
		}
		// Back to the physical pressure variable, p = D^-1/2 x
		xd := x.Data()
		for k := range xd {
			xd[k] /= math.Sqrt(d[k])
		}
		utils.IsNanPanic(x)
		pairs = append(pairs, EigenPair{
			Lambda: clampEigenvalue(sigma - theta[i]),
			Vector: normalizeMode(xd),
		})
	}
	sort.Slice(pairs, func(a, b int) bool { return pairs[a].Lambda < pairs[b].Lambda })
	return
}

func lanczosSteps(n, nev int) int {
	m := 4*nev + 40
	if m > n {
		m = n
	}
	return m
}

func gershgorinBound(B utils.CSR) (sigma float64) {
	var (
		raw   = B.RawMatrix()
		nr, _ = B.Dims()
	)
	for i := 0; i < nr; i++ {
		var row float64
		for jj := raw.Indptr[i]; jj < raw.Indptr[i+1]; jj++ {
			row += math.Abs(raw.Data[jj])
		}
		if row > sigma {
			sigma = row
		}
	}
	return
}

// clampEigenvalue zeros the tiny negative values the constant mode produces
// in floating point.
func clampEigenvalue(lambda float64) float64 {
	if lambda < 0 && lambda > -1.e-8 {
		return 0
	}
	return lambda
}

// normalizeMode scales to unit max-abs with the largest-magnitude entry
// positive, so repeated runs produce comparable mode shapes.
func normalizeMode(x []float64) []float64 {
	var (
		v      = utils.NewVector(len(x), x)
		maxAbs = v.MaxAbs()
	)
	if maxAbs == 0 {
		return x
	}
	scale := 1. / maxAbs
	for _, val := range x {
		if math.Abs(val) == maxAbs {
			if val < 0 {
				scale = -scale
			}
			break
		}
	}
	v.Scale(scale)
	return x
}

// Package fem assembles P1 finite element operators on tetrahedral meshes
// and solves the generalized eigenproblem K p = lambda M p arising from the
// Helmholtz equation with reflective (Neumann) walls. Neumann conditions
// are natural for the weak form, so assembly touches no boundary rows.
package fem

import (
	"fmt"

	"github.com/notargets/goacoustics/mesh"
	"github.com/notargets/goacoustics/utils"
)

// Assemble builds the global stiffness (discrete Laplacian) and consistent
// mass matrices for linear elements on the mesh.
func Assemble(m *mesh.Mesh) (K, M utils.CSR, err error) {
	var (
		n    = m.NumVertices
		kDOK = utils.NewDOK(n, n)
		mDOK = utils.NewDOK(n, n)
	)
	if n == 0 || m.NumTets == 0 {
		err = fmt.Errorf("empty mesh")
		return
	}
	for k := 0; k < m.NumTets; k++ {
		vol := m.TetVolume(k)
		if vol <= 0 {
			err = fmt.Errorf("non-positive volume %v in tet %d", vol, k)
			return
		}
		grads, gerr := shapeGradients(m, k)
		if gerr != nil {
			err = gerr
			return
		}
		tet := m.Tets[k]
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				ke := vol * (grads[i][0]*grads[j][0] +
					grads[i][1]*grads[j][1] +
					grads[i][2]*grads[j][2])
				kDOK.Accumulate(tet[i], tet[j], ke)
				me := vol / 20.
				if i == j {
					me = vol / 10.
				}
				mDOK.Accumulate(tet[i], tet[j], me)
			}
		}
	}
	K = kDOK.ToCSR()
	M = mDOK.ToCSR()
	return
}

// LumpedMass returns the row-sum lumped mass diagonal, vol/4 per tet vertex.
func LumpedMass(m *mesh.Mesh) (d []float64, err error) {
	d = make([]float64, m.NumVertices)
	for k := 0; k < m.NumTets; k++ {
		vol := m.TetVolume(k)
		if vol <= 0 {
			return nil, fmt.Errorf("non-positive volume %v in tet %d", vol, k)
		}
		for _, v := range m.Tets[k] {
			d[v] += vol / 4.
		}
	}
	return
}

// shapeGradients computes the constant gradients of the four barycentric
// shape functions of tet k. Rows of the inverse edge Jacobian give the
// gradients of the last three coordinates, the first is minus their sum.
func shapeGradients(m *mesh.Mesh, k int) (grads [4][3]float64, err error) {
	var (
		tet = m.Tets[k]
		a   = m.Vertices[tet[0]]
		e   [3][3]float64
	)
	for c, vi := range tet[1:] {
		for n := 0; n < 3; n++ {
			e[n][c] = m.Vertices[vi][n] - a[n]
		}
	}
	det := e[0][0]*(e[1][1]*e[2][2]-e[1][2]*e[2][1]) -
		e[0][1]*(e[1][0]*e[2][2]-e[1][2]*e[2][0]) +
		e[0][2]*(e[1][0]*e[2][1]-e[1][1]*e[2][0])
	if det == 0 {
		err = fmt.Errorf("degenerate tet %d", k)
		return
	}
	inv := 1. / det
	// Rows of J^-1 by cofactor expansion
	jinv := [3][3]float64{
		{(e[1][1]*e[2][2] - e[1][2]*e[2][1]) * inv,
			(e[0][2]*e[2][1] - e[0][1]*e[2][2]) * inv,
			(e[0][1]*e[1][2] - e[0][2]*e[1][1]) * inv},
		{(e[1][2]*e[2][0] - e[1][0]*e[2][2]) * inv,
			(e[0][0]*e[2][2] - e[0][2]*e[2][0]) * inv,
			(e[0][2]*e[1][0] - e[0][0]*e[1][2]) * inv},
		{(e[1][0]*e[2][1] - e[1][1]*e[2][0]) * inv,
			(e[0][1]*e[2][0] - e[0][0]*e[2][1]) * inv,
			(e[0][0]*e[1][1] - e[0][1]*e[1][0]) * inv},
	}
	for c := 0; c < 3; c++ {
		for n := 0; n < 3; n++ {
			grads[c+1][n] = jinv[c][n]
			grads[0][n] -= jinv[c][n]
		}
	}
	return
}

package mesh

import (
	"fmt"
	"math"

	"github.com/notargets/goacoustics/geometry"
	"github.com/notargets/goacoustics/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// kuhnPerms are the six orderings of axis insertion that split a lattice
// cell into six conforming tets sharing the main diagonal. Adjacent cells
// cut their shared face along the same diagonal, so the lattice mesh is
// conforming by construction.
var kuhnPerms = [6][3]int{
	{0, 1, 2}, {0, 2, 1}, {1, 0, 2}, {1, 2, 0}, {2, 0, 1}, {2, 1, 0},
}

// Generate tetrahedralizes the solid on a uniform lattice at resolution h.
// Cell counts per axis are rounded so the lattice spans the solid bounds
// exactly, which makes grid-aligned cuboid unions mesh with zero geometric
// error. Tets whose centroid lies outside the solid are trimmed, surviving
// vertices are compacted, and boundary vertices of non-aligned geometry are
// relaxed onto the surface (smoothO overrides the default pass count, pass
// 0 to disable).
func Generate(sol geometry.Solid, h float64, smoothO ...int) (m *Mesh, err error) {
	if h <= 0 {
		return nil, fmt.Errorf("resolution must be positive, got %v", h)
	}
	var (
		b    = sol.Bounds()
		size = b.Size()
	)
	nx, ny, nz := cellCount(size.X, h), cellCount(size.Y, h), cellCount(size.Z, h)
	dx, dy, dz := size.X/float64(nx), size.Y/float64(ny), size.Z/float64(nz)

	var (
		nvx, nvy = nx + 1, ny + 1
		gridID   = func(i, j, k int) int { return i + nvx*(j+nvy*k) }
	)
	coords := make([][]float64, nvx*nvy*(nz+1))
	for k := 0; k <= nz; k++ {
		for j := 0; j <= ny; j++ {
			for i := 0; i <= nx; i++ {
				coords[gridID(i, j, k)] = []float64{
					b.Min.X + float64(i)*dx,
					b.Min.Y + float64(j)*dy,
					b.Min.Z + float64(k)*dz,
				}
			}
		}
	}

	var tets [][]int
	for k := 0; k < nz; k++ {
		for j := 0; j < ny; j++ {
			for i := 0; i < nx; i++ {
				for _, p := range kuhnPerms {
					var (
						tet = make([]int, 4)
						c   = [3]int{i, j, k}
					)
					tet[0] = gridID(c[0], c[1], c[2])
					for n := 0; n < 3; n++ {
						c[p[n]]++
						tet[n+1] = gridID(c[0], c[1], c[2])
					}
					if insideCentroid(sol, coords, tet) {
						tets = append(tets, tet)
					}
				}
			}
		}
	}
	if len(tets) == 0 {
		return nil, fmt.Errorf("no tets inside solid at resolution %v, bounds %v", h, b)
	}

	m = NewMesh()
	m.Vertices, m.Tets = compact(coords, tets)
	m.Orient()
	m.BuildConnectivity()

	smooth := 4
	if len(smoothO) != 0 {
		smooth = smoothO[0]
	}
	if smooth > 0 {
		m.Snap(sol, smooth, math.Min(dx, math.Min(dy, dz)))
	}
	return
}

func cellCount(size, h float64) int {
	n := int(math.Round(size / h))
	if n < 1 {
		n = 1
	}
	return n
}

func insideCentroid(sol geometry.Solid, coords [][]float64, tet []int) bool {
	var c r3.Vec
	for _, v := range tet {
		c.X += coords[v][0]
		c.Y += coords[v][1]
		c.Z += coords[v][2]
	}
	c = r3.Scale(0.25, c)
	return sol.Evaluate(c) < 0
}

// compact renumbers vertices so only those referenced by kept tets remain.
func compact(coords [][]float64, tets [][]int) (vertsOut [][]float64, tetsOut [][]int) {
	var (
		remap = utils.NewIndex(len(coords)).Apply(func(int) int { return -1 })
		next  int
	)
	for _, tet := range tets {
		for _, v := range tet {
			if remap[v] == -1 {
				remap[v] = next
				vertsOut = append(vertsOut, coords[v])
				next++
			}
		}
	}
	tetsOut = tets
	for _, tet := range tetsOut {
		for i, v := range tet {
			tet[i] = remap[v]
		}
	}
	return
}

package mesh

import (
	"math"

	"github.com/notargets/goacoustics/geometry"
	"gonum.org/v1/gonum/spatial/r3"
)

// Snap relaxes the mesh toward the solid surface: boundary vertices are
// projected along the implicit gradient onto Evaluate=0, interior vertices
// are Laplacian smoothed toward their neighbor average. A vertex move that
// would invert any incident tet is reverted, so element orientation is
// preserved. h sets the finite difference step for the gradient.
func (m *Mesh) Snap(sol geometry.Solid, iters int, h float64) {
	var (
		onBoundary = m.BoundaryVertices()
		v2t        = m.VertexToTets()
		neighbors  = m.vertexNeighbors()
		relax      = 0.3
	)
	for iter := 0; iter < iters; iter++ {
		for v := range m.Vertices {
			var moved [3]float64
			p := r3.Vec{X: m.Vertices[v][0], Y: m.Vertices[v][1], Z: m.Vertices[v][2]}
			if onBoundary[v] {
				d := sol.Evaluate(p)
				if math.Abs(d) < 1.e-12 {
					continue
				}
				g := geometry.Gradient(sol, p, h*1.e-2)
				q := r3.Sub(p, r3.Scale(d, g))
				moved = [3]float64{q.X, q.Y, q.Z}
			} else {
				var avg [3]float64
				for _, nb := range neighbors[v] {
					for n := 0; n < 3; n++ {
						avg[n] += m.Vertices[nb][n]
					}
				}
				inv := 1. / float64(len(neighbors[v]))
				for n := 0; n < 3; n++ {
					avg[n] *= inv
					moved[n] = m.Vertices[v][n] + relax*(avg[n]-m.Vertices[v][n])
				}
			}
			m.moveChecked(v, moved, v2t)
		}
	}
}

// moveChecked applies the move unless it inverts an incident tet.
func (m *Mesh) moveChecked(v int, p [3]float64, v2t [][]int) {
	old := [3]float64{m.Vertices[v][0], m.Vertices[v][1], m.Vertices[v][2]}
	m.Vertices[v][0], m.Vertices[v][1], m.Vertices[v][2] = p[0], p[1], p[2]
	for _, k := range v2t[v] {
		if m.TetVolume(k) <= 0 {
			m.Vertices[v][0], m.Vertices[v][1], m.Vertices[v][2] = old[0], old[1], old[2]
			return
		}
	}
}

func (m *Mesh) vertexNeighbors() [][]int {
	seen := make([]map[int]bool, len(m.Vertices))
	for _, tet := range m.Tets {
		for _, a := range tet {
			if seen[a] == nil {
				seen[a] = make(map[int]bool)
			}
			for _, b := range tet {
				if a != b {
					seen[a][b] = true
				}
			}
		}
	}
	neighbors := make([][]int, len(m.Vertices))
	for v, set := range seen {
		for nb := range set {
			neighbors[v] = append(neighbors[v], nb)
		}
	}
	return neighbors
}

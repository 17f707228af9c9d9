// Package mesh tetrahedralizes implicit solids and carries the unstructured
// mesh data model used by the finite element assembly.
package mesh

import (
	"fmt"
	"math"
	"sort"
	"strings"
)

// Face represents a triangular face of a tet.
type Face struct {
	Vertices []int // Sorted vertex indices
	Element  int   // Parent element
	LocalID  int   // Local face ID within element
}

// LocalFaces lists the vertex triples of the four faces of a tet in local
// indices.
var LocalFaces = [4][3]int{
	{0, 1, 2},
	{0, 1, 3},
	{1, 2, 3},
	{0, 2, 3},
}

// Mesh is a conforming tetrahedral mesh with full connectivity.
type Mesh struct {
	// Geometry
	Vertices [][]float64 // Vertex coordinates [nvertices][3]

	// Element data
	Tets [][]int // Tet to vertex connectivity [ntets][4]

	// Connectivity (built by BuildConnectivity)
	EToE [][]int // Tet to tet adjacency [ntets][4], -1 on boundary
	EToF [][]int // Tet to face index [ntets][4]

	// Face data
	Faces         []Face         // All unique faces in mesh
	FaceMap       map[string]int // Map from sorted vertex string to face ID
	BoundaryFaces []int          // Face IDs with a single parent tet

	NumVertices int
	NumTets     int
	NumFaces    int
}

func NewMesh() *Mesh {
	return &Mesh{
		FaceMap: make(map[string]int),
	}
}

func faceKey(verts []int) string {
	sorted := make([]int, len(verts))
	copy(sorted, verts)
	sort.Ints(sorted)
	var sb strings.Builder
	for i, v := range sorted {
		if i > 0 {
			sb.WriteByte('_')
		}
		fmt.Fprintf(&sb, "%d", v)
	}
	return sb.String()
}

// BuildConnectivity builds tet-to-tet adjacency and the unique face table.
func (m *Mesh) BuildConnectivity() {
	m.NumVertices = len(m.Vertices)
	m.NumTets = len(m.Tets)
	m.Faces = m.Faces[:0]
	m.FaceMap = make(map[string]int)
	m.BoundaryFaces = m.BoundaryFaces[:0]

	m.EToE = make([][]int, m.NumTets)
	m.EToF = make([][]int, m.NumTets)
	for k := 0; k < m.NumTets; k++ {
		m.EToE[k] = []int{-1, -1, -1, -1}
		m.EToF[k] = []int{-1, -1, -1, -1}
	}

	for k := 0; k < m.NumTets; k++ {
		for f := 0; f < 4; f++ {
			fv := []int{
				m.Tets[k][LocalFaces[f][0]],
				m.Tets[k][LocalFaces[f][1]],
				m.Tets[k][LocalFaces[f][2]],
			}
			key := faceKey(fv)
			if fid, ok := m.FaceMap[key]; ok {
				// Second parent, link both ways
				other := m.Faces[fid]
				m.EToE[k][f] = other.Element
				m.EToE[other.Element][other.LocalID] = k
				m.EToF[k][f] = fid
			} else {
				fid = len(m.Faces)
				sorted := make([]int, 3)
				copy(sorted, fv)
				sort.Ints(sorted)
				m.Faces = append(m.Faces, Face{Vertices: sorted, Element: k, LocalID: f})
				m.FaceMap[key] = fid
				m.EToF[k][f] = fid
			}
		}
	}
	m.NumFaces = len(m.Faces)

	for k := 0; k < m.NumTets; k++ {
		for f := 0; f < 4; f++ {
			if m.EToE[k][f] == -1 {
				m.BoundaryFaces = append(m.BoundaryFaces, m.EToF[k][f])
			}
		}
	}
}

// TetVolume returns the signed volume of tet k.
func (m *Mesh) TetVolume(k int) float64 {
	var (
		a = m.Vertices[m.Tets[k][0]]
		b = m.Vertices[m.Tets[k][1]]
		c = m.Vertices[m.Tets[k][2]]
		d = m.Vertices[m.Tets[k][3]]
	)
	return signedVolume(a, b, c, d)
}

func signedVolume(a, b, c, d []float64) float64 {
	var (
		ab = [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		ac = [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		ad = [3]float64{d[0] - a[0], d[1] - a[1], d[2] - a[2]}
	)
	det := ab[0]*(ac[1]*ad[2]-ac[2]*ad[1]) -
		ab[1]*(ac[0]*ad[2]-ac[2]*ad[0]) +
		ab[2]*(ac[0]*ad[1]-ac[1]*ad[0])
	return det / 6.
}

// Orient swaps vertices so every tet has positive volume.
func (m *Mesh) Orient() {
	for k := range m.Tets {
		if m.TetVolume(k) < 0 {
			m.Tets[k][2], m.Tets[k][3] = m.Tets[k][3], m.Tets[k][2]
		}
	}
}

// Volume sums the tet volumes.
func (m *Mesh) Volume() (vol float64) {
	for k := range m.Tets {
		vol += m.TetVolume(k)
	}
	return
}

// Quality returns the mean-ratio quality of tet k, 1 for the regular tet,
// approaching 0 for slivers.
func (m *Mesh) Quality(k int) float64 {
	var (
		v       = m.Tets[k]
		sumEdge float64
	)
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			var d2 float64
			for n := 0; n < 3; n++ {
				d := m.Vertices[v[i]][n] - m.Vertices[v[j]][n]
				d2 += d * d
			}
			sumEdge += d2
		}
	}
	if sumEdge == 0 {
		return 0
	}
	return 72. * math.Sqrt(3) * math.Abs(m.TetVolume(k)) / math.Pow(sumEdge, 1.5)
}

// Stats summarizes the mesh for log output.
type Stats struct {
	NumVertices, NumTets, NumBoundaryFaces int
	Volume                                 float64
	MinQuality, MeanQuality                float64
}

func (m *Mesh) Statistics() (s Stats) {
	s.NumVertices = m.NumVertices
	s.NumTets = m.NumTets
	s.NumBoundaryFaces = len(m.BoundaryFaces)
	s.Volume = m.Volume()
	s.MinQuality = math.Inf(1)
	for k := range m.Tets {
		q := m.Quality(k)
		if q < s.MinQuality {
			s.MinQuality = q
		}
		s.MeanQuality += q
	}
	if m.NumTets > 0 {
		s.MeanQuality /= float64(m.NumTets)
	} else {
		s.MinQuality = 0
	}
	return
}

func (s Stats) String() string {
	return fmt.Sprintf("vertices: %d, tets: %d, boundary faces: %d, volume: %.6g, quality min/mean: %.3f/%.3f",
		s.NumVertices, s.NumTets, s.NumBoundaryFaces, s.Volume, s.MinQuality, s.MeanQuality)
}

// VertexToTets builds the inverse adjacency used by smoothing and point
// location.
func (m *Mesh) VertexToTets() [][]int {
	v2t := make([][]int, len(m.Vertices))
	for k, tet := range m.Tets {
		for _, v := range tet {
			v2t[v] = append(v2t[v], k)
		}
	}
	return v2t
}

// BoundaryVertices returns the set of vertices lying on boundary faces.
func (m *Mesh) BoundaryVertices() map[int]bool {
	onBoundary := make(map[int]bool)
	for _, fid := range m.BoundaryFaces {
		for _, v := range m.Faces[fid].Vertices {
			onBoundary[v] = true
		}
	}
	return onBoundary
}

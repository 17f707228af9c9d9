package mesh

import (
	"path/filepath"
	"testing"

	"github.com/notargets/goacoustics/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func unitCube(t *testing.T) geometry.Solid {
	c, err := geometry.NewCuboid(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	require.NoError(t, err)
	return c
}

func TestGenerateCube(t *testing.T) {
	m, err := Generate(unitCube(t), 0.5)
	require.NoError(t, err)

	// 3x3x3 lattice vertices, 6 tets per cell
	assert.Equal(t, 27, m.NumVertices)
	assert.Equal(t, 48, m.NumTets)

	// Grid-aligned cuboid meshes exactly
	assert.InDelta(t, 1.0, m.Volume(), 1e-12)

	// Consistent orientation
	for k := 0; k < m.NumTets; k++ {
		assert.Positive(t, m.TetVolume(k))
	}

	// Each cube face is 4 cell faces of 2 triangles
	assert.Equal(t, 48, len(m.BoundaryFaces))
}

func TestConnectivityInvariants(t *testing.T) {
	m, err := Generate(unitCube(t), 0.5)
	require.NoError(t, err)

	// Adjacency is symmetric and every face has one or two parents
	interior := 0
	for k := 0; k < m.NumTets; k++ {
		for f := 0; f < 4; f++ {
			k2 := m.EToE[k][f]
			if k2 == -1 {
				continue
			}
			interior++
			found := false
			for f2 := 0; f2 < 4; f2++ {
				if m.EToE[k2][f2] == k {
					found = true
				}
			}
			assert.True(t, found, "adjacency not symmetric for tet %d face %d", k, f)
		}
	}
	// Interior face parent pairs counted twice; with boundary faces they
	// cover the face table
	assert.Equal(t, m.NumFaces, interior/2+len(m.BoundaryFaces))
}

func TestGenerateLShape(t *testing.T) {
	// Two cuboids sharing a face, both aligned to h
	a, _ := geometry.NewCuboid(r3.Vec{}, r3.Vec{X: 2, Y: 1, Z: 1})
	b, _ := geometry.NewCuboid(r3.Vec{Y: 1}, r3.Vec{X: 1, Y: 2, Z: 1})
	u, err := geometry.Union(a, b)
	require.NoError(t, err)

	m, err := Generate(u, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, m.Volume(), 1e-12)

	s := m.Statistics()
	assert.Positive(t, s.MinQuality)
	assert.Equal(t, m.NumTets, s.NumTets)
}

func TestGeneratePrism(t *testing.T) {
	pr, err := geometry.NewPrism(
		r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1},
		r3.Vec{Z: 1})
	require.NoError(t, err)

	m, err := Generate(pr, 0.2)
	require.NoError(t, err)

	// Half the unit cube, within discretization tolerance of the
	// staircase+snap boundary
	assert.InDelta(t, 0.5, m.Volume(), 0.1)
	for k := 0; k < m.NumTets; k++ {
		assert.Positive(t, m.TetVolume(k))
	}
}

func TestGenerateErrors(t *testing.T) {
	_, err := Generate(unitCube(t), -1)
	assert.Error(t, err)
}

func TestGmshRoundTrip(t *testing.T) {
	m, err := Generate(unitCube(t), 0.5)
	require.NoError(t, err)

	fname := filepath.Join(t.TempDir(), "cube.msh")
	mode := make([]float64, m.NumVertices)
	for i := range mode {
		mode[i] = float64(i)
	}
	require.NoError(t, m.WriteGmsh(fname, NodeField{Name: "mode 1", Time: 42.5, Values: mode}))

	m2, err := ReadGmsh(fname)
	require.NoError(t, err)
	assert.Equal(t, m.NumVertices, m2.NumVertices)
	assert.Equal(t, m.NumTets, m2.NumTets)
	assert.InDelta(t, m.Volume(), m2.Volume(), 1e-12)
	assert.Equal(t, len(m.BoundaryFaces), len(m2.BoundaryFaces))
}

func TestReadGmshMissing(t *testing.T) {
	_, err := ReadGmsh("nonexistent.msh")
	assert.Error(t, err)
}

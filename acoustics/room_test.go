package acoustics

import (
	"math"
	"testing"

	"github.com/notargets/goacoustics/InputParameters"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func cubeParams() *InputParameters.RoomParameters {
	return &InputParameters.RoomParameters{
		Title:        "unit cube",
		SpeedOfSound: 343,
		Resolution:   0.25,
		NumModes:     5,
		Solver:       "auto",
		Solids: []InputParameters.SolidSpec{
			{Type: "cuboid", Min: []float64{0, 0, 0}, Max: []float64{1, 1, 1}},
		},
	}
}

func TestRoomModesCube(t *testing.T) {
	rm, err := NewRoomModes(cubeParams())
	require.NoError(t, err)
	require.NoError(t, rm.Solve())
	require.Len(t, rm.Pairs, 5)

	// Constant mode at zero frequency
	assert.InDelta(t, 0., rm.Frequency(0), 1e-3)
	for _, v := range rm.Pairs[0].Vector {
		assert.InDelta(t, 1., v, 1e-6)
	}

	// Lowest axial mode of a rigid cube: f = c/(2L), triply degenerate
	want := 343. / 2.
	for i := 1; i <= 3; i++ {
		assert.InDelta(t, want, rm.Frequency(i), 0.05*want, "mode %d", i)
	}

	// Frequencies ascending
	f := rm.Frequencies()
	for i := 1; i < len(f); i++ {
		assert.GreaterOrEqual(t, f[i], f[i-1])
	}
}

func TestSolverSelection(t *testing.T) {
	// An empty solver string means auto, so parameters built in code without
	// going through Parse still solve
	ip := cubeParams()
	ip.Solver = ""
	rm, err := NewRoomModes(ip)
	require.NoError(t, err)
	require.NoError(t, rm.Solve())
	require.Len(t, rm.Pairs, ip.NumModes)
	assert.InDelta(t, 0., rm.Frequency(0), 1e-3)

	// Anything else is rejected instead of silently computing nothing
	ip = cubeParams()
	ip.Solver = "arnoldi"
	rm, err = NewRoomModes(ip)
	require.NoError(t, err)
	assert.Error(t, rm.Solve())
}

func TestSliceMode(t *testing.T) {
	rm, err := NewRoomModes(cubeParams())
	require.NoError(t, err)
	require.NoError(t, rm.Solve())

	sl, err := rm.SliceMode(0, AxisZ, 0.4)
	require.NoError(t, err)
	assert.NotEmpty(t, sl.Tris)
	assert.Equal(t, len(sl.Points), len(sl.Values))

	// Constant mode slices flat, and the cut stays inside the unit square
	for i, p := range sl.Points {
		assert.InDelta(t, 1., sl.Values[i], 1e-6)
		assert.True(t, p[0] >= -1e-9 && p[0] <= 1+1e-9)
		assert.True(t, p[1] >= -1e-9 && p[1] <= 1+1e-9)
	}

	// A plane outside the room misses
	_, err = rm.SliceMode(0, AxisZ, 2.5)
	assert.Error(t, err)
}

func TestSampleAt(t *testing.T) {
	rm, err := NewRoomModes(cubeParams())
	require.NoError(t, err)
	require.NoError(t, rm.Solve())

	val, inside := rm.SampleAt(0, r3.Vec{X: 0.3, Y: 0.6, Z: 0.5})
	assert.True(t, inside)
	assert.InDelta(t, 1., val, 1e-6)

	_, inside = rm.SampleAt(0, r3.Vec{X: 3, Y: 0, Z: 0})
	assert.False(t, inside)
}

func TestBuildSolidErrors(t *testing.T) {
	_, err := BuildSolid([]InputParameters.SolidSpec{{Type: "sphere"}})
	assert.Error(t, err)
	_, err = BuildSolid([]InputParameters.SolidSpec{{Type: "cuboid", Min: []float64{0}}})
	assert.Error(t, err)
	_, err = BuildSolid([]InputParameters.SolidSpec{{Type: "prism", Points: [][]float64{{0, 0, 0}}}})
	assert.Error(t, err)
	_, err = BuildSolid(nil)
	assert.Error(t, err)
}

func TestLShapedRoomFrequencies(t *testing.T) {
	// An L-shaped union: the lowest nonzero frequency must sit below the
	// lowest axial mode of either box alone, the room is acoustically
	// longer around the corner
	ip := &InputParameters.RoomParameters{
		SpeedOfSound: 343,
		Resolution:   0.25,
		NumModes:     3,
		Solids: []InputParameters.SolidSpec{
			{Type: "cuboid", Min: []float64{0, 0, 0}, Max: []float64{2, 1, 1}},
			{Type: "cuboid", Min: []float64{0, 1, 0}, Max: []float64{1, 2, 1}},
		},
	}
	rm, err := NewRoomModes(ip)
	require.NoError(t, err)
	require.NoError(t, rm.Solve())

	assert.InDelta(t, 0., rm.Frequency(0), 1e-3)
	axial := 343. / 4. // c/(2*2m) for the long leg
	assert.Less(t, rm.Frequency(1), axial)
	assert.Greater(t, rm.Frequency(1), 0.)

	assert.InDelta(t, 3.0, rm.Msh.Volume(), 1e-12)
	assert.InDelta(t, math.Sqrt(rm.Pairs[1].Lambda)*343/(2*math.Pi), rm.Frequency(1), 1e-12)
}

func TestModeField(t *testing.T) {
	rm, err := NewRoomModes(cubeParams())
	require.NoError(t, err)
	require.NoError(t, rm.Solve())
	fld := rm.ModeField(1)
	assert.Len(t, fld.Values, rm.Msh.NumVertices)
	assert.Equal(t, 1, fld.Step)
	assert.Contains(t, fld.Name, "mode 1")
}

package InputParameters

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParse(t *testing.T) {
	data := []byte(`
Title: "Test Room"
Resolution: 0.25
NumModes: 6
Solids:
  - Type: cuboid
    Min: [0, 0, 0]
    Max: [5, 4, 3]
  - Type: prism
    Points: [[0, 0, 3], [5, 0, 3], [0, 4, 3]]
    Axis: [0, 0, 1]
Slices:
  - Axis: z
    Station: 1.2
`)
	ip := &RoomParameters{}
	assert.NoError(t, ip.Parse(data))
	assert.Equal(t, "Test Room", ip.Title)
	assert.Equal(t, 343., ip.SpeedOfSound) // default
	assert.Equal(t, 6, ip.NumModes)
	assert.Equal(t, "auto", ip.Solver) // default
	assert.Len(t, ip.Solids, 2)
	assert.Equal(t, []float64{5, 4, 3}, ip.Solids[0].Max)
	assert.Len(t, ip.Slices, 1)

	// Missing resolution rejected
	ip = &RoomParameters{}
	assert.Error(t, ip.Parse([]byte(`Title: "x"`)))

	// Unknown solver rejected
	ip = &RoomParameters{}
	assert.Error(t, ip.Parse([]byte(`
Resolution: 0.5
Solver: qr
Solids:
  - Type: cuboid
`)))
}

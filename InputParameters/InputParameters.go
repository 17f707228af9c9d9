package InputParameters

import (
	"fmt"

	"github.com/ghodss/yaml"
)

// SolidSpec describes one CSG primitive in the room definition file.
type SolidSpec struct {
	Type   string      `yaml:"Type"`   // "cuboid", "prism" or "hexahedron"
	Min    []float64   `yaml:"Min"`    // cuboid corner
	Max    []float64   `yaml:"Max"`    // cuboid corner
	Points [][]float64 `yaml:"Points"` // prism base triangle (3) or hexahedron vertices (8)
	Axis   []float64   `yaml:"Axis"`   // prism extrusion vector
}

// SliceSpec selects an axis-aligned cut plane for visualization.
type SliceSpec struct {
	Axis    string  `yaml:"Axis"` // "x", "y" or "z"
	Station float64 `yaml:"Station"`
}

// Parameters obtained from the YAML input file
type RoomParameters struct {
	Title        string      `yaml:"Title"`
	SpeedOfSound float64     `yaml:"SpeedOfSound"` // length units per second
	Resolution   float64     `yaml:"Resolution"`   // target mesh edge length
	NumModes     int         `yaml:"NumModes"`
	Solver       string      `yaml:"Solver"` // "auto", "dense" or "lanczos"
	Solids       []SolidSpec `yaml:"Solids"`
	Slices       []SliceSpec `yaml:"Slices"`
}

func (ip *RoomParameters) Parse(data []byte) (err error) {
	if err = yaml.Unmarshal(data, ip); err != nil {
		return
	}
	if ip.SpeedOfSound == 0 {
		ip.SpeedOfSound = 343. // air at room temperature, meters
	}
	if ip.NumModes == 0 {
		ip.NumModes = 8
	}
	if ip.Solver == "" {
		ip.Solver = "auto"
	}
	if ip.Resolution <= 0 {
		return fmt.Errorf("Resolution must be positive")
	}
	if len(ip.Solids) == 0 {
		return fmt.Errorf("at least one solid is required")
	}
	switch ip.Solver {
	case "auto", "dense", "lanczos":
	default:
		return fmt.Errorf("unknown solver %q", ip.Solver)
	}
	return
}

func (ip *RoomParameters) Print() {
	fmt.Printf("\"%s\"\t\t= Title\n", ip.Title)
	fmt.Printf("%8.5f\t\t= SpeedOfSound\n", ip.SpeedOfSound)
	fmt.Printf("%8.5f\t\t= Resolution\n", ip.Resolution)
	fmt.Printf("[%d]\t\t\t\t= NumModes\n", ip.NumModes)
	fmt.Printf("[%s]\t\t\t= Solver\n", ip.Solver)
	for i, s := range ip.Solids {
		fmt.Printf("Solids[%d] = %s\n", i, s.Type)
	}
	for i, s := range ip.Slices {
		fmt.Printf("Slices[%d] = %s @ %v\n", i, s.Axis, s.Station)
	}
}

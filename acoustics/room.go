// Package acoustics ties geometry, meshing, assembly and the eigensolver
// into the room resonance model problem.
package acoustics

import (
	"fmt"
	"math"
	"time"

	"github.com/notargets/goacoustics/InputParameters"
	"github.com/notargets/goacoustics/fem"
	"github.com/notargets/goacoustics/geometry"
	"github.com/notargets/goacoustics/mesh"
	"github.com/notargets/goacoustics/utils"
	"gonum.org/v1/gonum/spatial/r3"
)

// Dense solves are exact and fast up to this many vertices, beyond it the
// shifted Lanczos iteration takes over.
const denseVertexLimit = 2000

type RoomModes struct {
	IP    *InputParameters.RoomParameters
	Solid geometry.Solid
	Msh   *mesh.Mesh
	K, M  utils.CSR
	Pairs []fem.EigenPair

	// Timing for the curious, printed by the CLI at verbose level
	MeshTime, AssembleTime, SolveTime time.Duration
}

func NewRoomModes(ip *InputParameters.RoomParameters) (rm *RoomModes, err error) {
	rm = &RoomModes{IP: ip}
	if rm.Solid, err = BuildSolid(ip.Solids); err != nil {
		return nil, err
	}
	return
}

// BuildSolid converts the parsed solid specs into the CSG union of the room
// volume.
func BuildSolid(specs []InputParameters.SolidSpec) (sol geometry.Solid, err error) {
	var terms []geometry.Solid
	for i, s := range specs {
		var term geometry.Solid
		switch s.Type {
		case "cuboid":
			if len(s.Min) != 3 || len(s.Max) != 3 {
				return nil, fmt.Errorf("solid %d: cuboid needs 3 component Min and Max", i)
			}
			term, err = geometry.NewCuboid(toVec(s.Min), toVec(s.Max))
		case "prism":
			if len(s.Points) != 3 || len(s.Axis) != 3 {
				return nil, fmt.Errorf("solid %d: prism needs 3 Points and an Axis", i)
			}
			for _, p := range s.Points {
				if len(p) != 3 {
					return nil, fmt.Errorf("solid %d: prism points need 3 components", i)
				}
			}
			term, err = geometry.NewPrism(toVec(s.Points[0]), toVec(s.Points[1]),
				toVec(s.Points[2]), toVec(s.Axis))
		case "hexahedron":
			if len(s.Points) != 8 {
				return nil, fmt.Errorf("solid %d: hexahedron needs 8 Points", i)
			}
			var verts [8]r3.Vec
			for n, p := range s.Points {
				if len(p) != 3 {
					return nil, fmt.Errorf("solid %d: hexahedron points need 3 components", i)
				}
				verts[n] = toVec(p)
			}
			term, err = geometry.NewHexahedron(verts)
		default:
			return nil, fmt.Errorf("solid %d: unknown type %q", i, s.Type)
		}
		if err != nil {
			return nil, fmt.Errorf("solid %d: %v", i, err)
		}
		terms = append(terms, term)
	}
	return geometry.Union(terms...)
}

func toVec(p []float64) r3.Vec {
	return r3.Vec{X: p[0], Y: p[1], Z: p[2]}
}

// GenerateMesh tetrahedralizes the room volume at the configured
// resolution.
func (rm *RoomModes) GenerateMesh() (err error) {
	start := time.Now()
	if rm.Msh, err = mesh.Generate(rm.Solid, rm.IP.Resolution); err != nil {
		return
	}
	rm.MeshTime = time.Since(start)
	return
}

// SetMesh installs an externally generated mesh, bypassing the lattice
// mesher.
func (rm *RoomModes) SetMesh(m *mesh.Mesh) {
	rm.Msh = m
}

// Solve assembles the operators and computes the lowest NumModes
// eigenpairs.
func (rm *RoomModes) Solve() (err error) {
	if rm.Msh == nil {
		if err = rm.GenerateMesh(); err != nil {
			return
		}
	}
	nev := rm.IP.NumModes
	if nev > rm.Msh.NumVertices {
		return fmt.Errorf("%d modes requested from a %d vertex mesh, refine the resolution",
			nev, rm.Msh.NumVertices)
	}

	start := time.Now()
	if rm.K, rm.M, err = fem.Assemble(rm.Msh); err != nil {
		return
	}
	rm.AssembleTime = time.Since(start)

	solver := rm.IP.Solver
	if solver == "auto" || solver == "" {
		if rm.Msh.NumVertices <= denseVertexLimit {
			solver = "dense"
		} else {
			solver = "lanczos"
		}
	}
	start = time.Now()
	switch solver {
	case "dense":
		rm.Pairs, err = fem.SolveDense(rm.K, rm.M, nev)
	case "lanczos":
		var d []float64
		if d, err = fem.LumpedMass(rm.Msh); err != nil {
			return
		}
		rm.Pairs, err = fem.SolveLanczos(rm.K, d, nev)
	default:
		return fmt.Errorf("unknown solver %q", solver)
	}
	rm.SolveTime = time.Since(start)
	return
}

// Frequency converts the i-th eigenvalue to a resonance frequency,
// f = c*sqrt(lambda)/(2*pi).
func (rm *RoomModes) Frequency(i int) float64 {
	return rm.IP.SpeedOfSound * math.Sqrt(rm.Pairs[i].Lambda) / (2. * math.Pi)
}

func (rm *RoomModes) Frequencies() (f []float64) {
	f = make([]float64, len(rm.Pairs))
	for i := range rm.Pairs {
		f[i] = rm.Frequency(i)
	}
	return
}

// PrintModeTable writes the mode table in the fixed-width layout of the
// parameter printer.
func (rm *RoomModes) PrintModeTable() {
	fmt.Printf("mode\tlambda\t\tfrequency\n")
	for i := range rm.Pairs {
		fmt.Printf("%d\t%12.6f\t%10.3f Hz\n", i, rm.Pairs[i].Lambda, rm.Frequency(i))
	}
}

// ModeField packages mode i as a Gmsh node data view.
func (rm *RoomModes) ModeField(i int) mesh.NodeField {
	return mesh.NodeField{
		Name:   fmt.Sprintf("mode %d (%.3f Hz)", i, rm.Frequency(i)),
		Time:   rm.Frequency(i),
		Step:   i,
		Values: rm.Pairs[i].Vector,
	}
}

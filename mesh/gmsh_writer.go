package mesh

import (
	"bufio"
	"fmt"
	"os"
)

// Gmsh v2.2 element type codes
const (
	gmshTriangle = 2
	gmshTet      = 4
)

// NodeField is a per-vertex scalar field exported as a Gmsh $NodeData view,
// used to ship pressure mode shapes alongside the mesh.
type NodeField struct {
	Name   string
	Time   float64 // view time value, we store the mode frequency here
	Step   int
	Values []float64
}

// WriteGmsh writes the mesh in Gmsh MSH 2.2 ASCII format. Boundary faces
// are written as physical-tagged triangles so wall surfaces are visible in
// Gmsh, followed by one $NodeData view per field.
func (m *Mesh) WriteGmsh(filename string, fields ...NodeField) (err error) {
	var file *os.File
	if file, err = os.Create(filename); err != nil {
		return
	}
	defer file.Close()

	w := bufio.NewWriter(file)
	defer w.Flush()

	fmt.Fprintf(w, "$MeshFormat\n2.2 0 8\n$EndMeshFormat\n")

	fmt.Fprintf(w, "$Nodes\n%d\n", len(m.Vertices))
	for i, v := range m.Vertices {
		fmt.Fprintf(w, "%d %.16g %.16g %.16g\n", i+1, v[0], v[1], v[2])
	}
	fmt.Fprintf(w, "$EndNodes\n")

	fmt.Fprintf(w, "$Elements\n%d\n", len(m.Tets)+len(m.BoundaryFaces))
	eid := 1
	for _, fid := range m.BoundaryFaces {
		f := m.Faces[fid]
		fmt.Fprintf(w, "%d %d 2 1 1 %d %d %d\n", eid, gmshTriangle,
			f.Vertices[0]+1, f.Vertices[1]+1, f.Vertices[2]+1)
		eid++
	}
	for _, tet := range m.Tets {
		fmt.Fprintf(w, "%d %d 2 2 2 %d %d %d %d\n", eid, gmshTet,
			tet[0]+1, tet[1]+1, tet[2]+1, tet[3]+1)
		eid++
	}
	fmt.Fprintf(w, "$EndElements\n")

	for _, fld := range fields {
		if len(fld.Values) != len(m.Vertices) {
			return fmt.Errorf("field %q has %d values for %d vertices",
				fld.Name, len(fld.Values), len(m.Vertices))
		}
		fmt.Fprintf(w, "$NodeData\n1\n\"%s\"\n1\n%g\n3\n%d\n1\n%d\n",
			fld.Name, fld.Time, fld.Step, len(fld.Values))
		for i, val := range fld.Values {
			fmt.Fprintf(w, "%d %.9g\n", i+1, val)
		}
		fmt.Fprintf(w, "$EndNodeData\n")
	}
	return
}

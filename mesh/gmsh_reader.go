package mesh

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// ReadGmsh reads a Gmsh MSH 2.2 ASCII file, keeping only tetrahedra.
// Lower-dimensional elements (boundary triangles, physical tags) are
// skipped, boundary faces are recovered from connectivity instead.
func ReadGmsh(filename string) (msh *Mesh, err error) {
	var file *os.File
	if file, err = os.Open(filename); err != nil {
		return
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	msh = NewMesh()

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line {
		case "$MeshFormat":
			if err = readGmshFormat(scanner); err != nil {
				return nil, err
			}
		case "$Nodes":
			if err = readGmshNodes(scanner, msh); err != nil {
				return nil, err
			}
		case "$Elements":
			if err = readGmshElements(scanner, msh); err != nil {
				return nil, err
			}
		default:
			if strings.HasPrefix(line, "$") && !strings.HasPrefix(line, "$End") {
				skipSection(scanner, "$End"+line[1:])
			}
		}
	}
	if err = scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %v", err)
	}
	if len(msh.Tets) == 0 {
		return nil, fmt.Errorf("no tetrahedra found in %s", filename)
	}
	msh.Orient()
	msh.BuildConnectivity()
	return
}

func readGmshFormat(scanner *bufio.Scanner) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in MeshFormat")
	}
	parts := strings.Fields(scanner.Text())
	if len(parts) < 3 {
		return fmt.Errorf("invalid MeshFormat line")
	}
	if !strings.HasPrefix(parts[0], "2.") {
		return fmt.Errorf("unsupported Gmsh format version: %s", parts[0])
	}
	if fileType, _ := strconv.Atoi(parts[1]); fileType == 1 {
		return fmt.Errorf("binary Gmsh files are not supported")
	}
	skipSection(scanner, "$EndMeshFormat")
	return nil
}

func readGmshNodes(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Nodes")
	}
	numNodes, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid node count: %v", err)
	}
	msh.Vertices = make([][]float64, numNodes)
	for i := 0; i < numNodes; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading node %d", i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 4 {
			return fmt.Errorf("invalid node line: %s", scanner.Text())
		}
		// Node IDs are assumed dense and 1-based, the common case for
		// generated meshes
		id, _ := strconv.Atoi(parts[0])
		if id < 1 || id > numNodes {
			return fmt.Errorf("non-dense node numbering: id %d of %d", id, numNodes)
		}
		coords := make([]float64, 3)
		for n := 0; n < 3; n++ {
			if coords[n], err = strconv.ParseFloat(parts[n+1], 64); err != nil {
				return fmt.Errorf("invalid coordinate in node %d: %v", id, err)
			}
		}
		msh.Vertices[id-1] = coords
	}
	skipSection(scanner, "$EndNodes")
	return nil
}

func readGmshElements(scanner *bufio.Scanner, msh *Mesh) error {
	if !scanner.Scan() {
		return fmt.Errorf("unexpected EOF in Elements")
	}
	numElems, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
	if err != nil {
		return fmt.Errorf("invalid element count: %v", err)
	}
	for i := 0; i < numElems; i++ {
		if !scanner.Scan() {
			return fmt.Errorf("unexpected EOF reading element %d", i)
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) < 3 {
			return fmt.Errorf("invalid element line: %s", scanner.Text())
		}
		elemType, _ := strconv.Atoi(parts[1])
		if elemType != gmshTet {
			continue
		}
		numTags, _ := strconv.Atoi(parts[2])
		conn := parts[3+numTags:]
		if len(conn) != 4 {
			return fmt.Errorf("tet element with %d vertices: %s", len(conn), scanner.Text())
		}
		tet := make([]int, 4)
		for n, p := range conn {
			v, err := strconv.Atoi(p)
			if err != nil || v < 1 || v > len(msh.Vertices) {
				return fmt.Errorf("invalid vertex reference %q in element line: %s", p, scanner.Text())
			}
			tet[n] = v - 1
		}
		msh.Tets = append(msh.Tets, tet)
	}
	skipSection(scanner, "$EndElements")
	return nil
}

func skipSection(scanner *bufio.Scanner, endMarker string) {
	for scanner.Scan() {
		if strings.TrimSpace(scanner.Text()) == endMarker {
			return
		}
	}
}

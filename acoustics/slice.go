package acoustics

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Axis selects a coordinate plane for slicing.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

func ParseAxis(s string) (Axis, error) {
	switch s {
	case "x", "X":
		return AxisX, nil
	case "y", "Y":
		return AxisY, nil
	case "z", "Z":
		return AxisZ, nil
	}
	return 0, fmt.Errorf("unknown axis %q", s)
}

func (a Axis) String() string {
	return [...]string{"x", "y", "z"}[a]
}

// inPlane returns the two coordinate indices spanning the slice plane.
func (a Axis) inPlane() (u, v int) {
	switch a {
	case AxisX:
		return 1, 2
	case AxisY:
		return 0, 2
	}
	return 0, 1
}

// Slice is a 2D triangulated cut through the mesh with interpolated
// pressure values, ready for plotting.
type Slice struct {
	Points [][2]float64
	Values []float64
	Tris   [][3]int
}

// SliceMode cuts the mesh with the plane axis=station and interpolates mode
// modeIdx linearly onto the cut. Each intersected tet contributes a
// triangle or split quad via the marching tetrahedra cases.
func (rm *RoomModes) SliceMode(modeIdx int, axis Axis, station float64) (sl *Slice, err error) {
	if rm.Msh == nil || modeIdx < 0 || modeIdx >= len(rm.Pairs) {
		return nil, fmt.Errorf("no solution for mode %d", modeIdx)
	}
	var (
		m    = rm.Msh
		p    = rm.Pairs[modeIdx].Vector
		u, v = axis.inPlane()
	)
	sl = &Slice{}
	for k := 0; k < m.NumTets; k++ {
		var (
			tet      = m.Tets[k]
			s        [4]float64
			neg, pos []int
		)
		for i, vi := range tet {
			s[i] = m.Vertices[vi][int(axis)] - station
			// Nudge vertices lying exactly on the plane to one side
			if math.Abs(s[i]) < 1.e-12 {
				s[i] = 1.e-12
			}
			if s[i] < 0 {
				neg = append(neg, i)
			} else {
				pos = append(pos, i)
			}
		}
		if len(neg) == 0 || len(pos) == 0 {
			continue
		}

		cut := func(a, b int) int {
			var (
				va, vb = tet[a], tet[b]
				t      = s[a] / (s[a] - s[b])
			)
			pt := [2]float64{
				m.Vertices[va][u] + t*(m.Vertices[vb][u]-m.Vertices[va][u]),
				m.Vertices[va][v] + t*(m.Vertices[vb][v]-m.Vertices[va][v]),
			}
			sl.Points = append(sl.Points, pt)
			sl.Values = append(sl.Values, p[va]+t*(p[vb]-p[va]))
			return len(sl.Points) - 1
		}

		switch len(neg) {
		case 1:
			a := cut(neg[0], pos[0])
			b := cut(neg[0], pos[1])
			c := cut(neg[0], pos[2])
			sl.Tris = append(sl.Tris, [3]int{a, b, c})
		case 3:
			a := cut(neg[0], pos[0])
			b := cut(neg[1], pos[0])
			c := cut(neg[2], pos[0])
			sl.Tris = append(sl.Tris, [3]int{a, b, c})
		case 2:
			// Quad ordered around the cut polygon, split into two tris
			a := cut(neg[0], pos[0])
			b := cut(neg[0], pos[1])
			c := cut(neg[1], pos[1])
			d := cut(neg[1], pos[0])
			sl.Tris = append(sl.Tris, [3]int{a, b, c}, [3]int{a, c, d})
		}
	}
	if len(sl.Tris) == 0 {
		return nil, fmt.Errorf("slice plane %s=%v misses the mesh", axis, station)
	}
	return
}

// SampleAt interpolates mode modeIdx at an arbitrary point using the
// barycentric coordinates of the containing tet. The second return is false
// when the point lies outside the mesh.
func (rm *RoomModes) SampleAt(modeIdx int, pt r3.Vec) (val float64, inside bool) {
	var (
		m = rm.Msh
		p = rm.Pairs[modeIdx].Vector
	)
	for k := 0; k < m.NumTets; k++ {
		if bary, ok := barycentric(m.Vertices, m.Tets[k], pt); ok {
			for i, vi := range m.Tets[k] {
				val += bary[i] * p[vi]
			}
			return val, true
		}
	}
	return 0, false
}

func barycentric(verts [][]float64, tet []int, pt r3.Vec) (bary [4]float64, inside bool) {
	var (
		p = []float64{pt.X, pt.Y, pt.Z}
		a = verts[tet[0]]
		b = verts[tet[1]]
		c = verts[tet[2]]
		d = verts[tet[3]]
	)
	vol := tetVol(a, b, c, d)
	if vol == 0 {
		return
	}
	bary[0] = tetVol(p, b, c, d) / vol
	bary[1] = tetVol(a, p, c, d) / vol
	bary[2] = tetVol(a, b, p, d) / vol
	bary[3] = tetVol(a, b, c, p) / vol
	const tol = -1.e-10
	inside = bary[0] >= tol && bary[1] >= tol && bary[2] >= tol && bary[3] >= tol
	return
}

func tetVol(a, b, c, d []float64) float64 {
	var (
		ab = [3]float64{b[0] - a[0], b[1] - a[1], b[2] - a[2]}
		ac = [3]float64{c[0] - a[0], c[1] - a[1], c[2] - a[2]}
		ad = [3]float64{d[0] - a[0], d[1] - a[1], d[2] - a[2]}
	)
	return (ab[0]*(ac[1]*ad[2]-ac[2]*ad[1]) -
		ab[1]*(ac[0]*ad[2]-ac[2]*ad[0]) +
		ab[2]*(ac[0]*ad[1]-ac[1]*ad[0])) / 6.
}

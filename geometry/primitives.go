package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Cuboid is an axis-aligned box, the workhorse primitive for room volumes.
type Cuboid struct {
	MinCorner, MaxCorner r3.Vec
}

func NewCuboid(min, max r3.Vec) (c Cuboid, err error) {
	if min.X >= max.X || min.Y >= max.Y || min.Z >= max.Z {
		err = fmt.Errorf("degenerate cuboid: min %v, max %v", min, max)
		return
	}
	c = Cuboid{MinCorner: min, MaxCorner: max}
	return
}

func (c Cuboid) Bounds() BBox {
	return BBox{Min: c.MinCorner, Max: c.MaxCorner}
}

// Evaluate is the exact signed distance to the box surface.
func (c Cuboid) Evaluate(p r3.Vec) float64 {
	var (
		ctr  = r3.Scale(0.5, r3.Add(c.MinCorner, c.MaxCorner))
		half = r3.Scale(0.5, r3.Sub(c.MaxCorner, c.MinCorner))
		d    = r3.Sub(p, ctr)
	)
	q := r3.Vec{
		X: math.Abs(d.X) - half.X,
		Y: math.Abs(d.Y) - half.Y,
		Z: math.Abs(d.Z) - half.Z,
	}
	outside := r3.Vec{
		X: math.Max(q.X, 0),
		Y: math.Max(q.Y, 0),
		Z: math.Max(q.Z, 0),
	}
	return r3.Norm(outside) + math.Min(math.Max(q.X, math.Max(q.Y, q.Z)), 0)
}

// plane is a half-space boundary with unit outward normal N, passing through
// points x with Dot(N,x) = D.
type plane struct {
	N r3.Vec
	D float64
}

func (pl plane) dist(p r3.Vec) float64 {
	return r3.Dot(pl.N, p) - pl.D
}

// convex is the intersection of half-spaces. Evaluate is the max of the
// face-plane distances: exact inside and near faces, conservative at edges
// and corners, which is sufficient for meshing.
type convex struct {
	planes []plane
	bounds BBox
}

func (c convex) Bounds() BBox { return c.bounds }

func (c convex) Evaluate(p r3.Vec) (d float64) {
	d = math.Inf(-1)
	for _, pl := range c.planes {
		if pd := pl.dist(p); pd > d {
			d = pd
		}
	}
	return
}

// newConvex builds a convex solid from its faces, each face given as a
// vertex loop. Normals are computed by Newell's method and oriented outward
// from the vertex centroid.
func newConvex(verts []r3.Vec, faces [][]int) (c convex, err error) {
	var ctr r3.Vec
	for _, v := range verts {
		ctr = r3.Add(ctr, v)
	}
	ctr = r3.Scale(1./float64(len(verts)), ctr)

	c.bounds = BBox{Min: verts[0], Max: verts[0]}
	for _, v := range verts[1:] {
		c.bounds = c.bounds.Union(BBox{Min: v, Max: v})
	}

	for _, f := range faces {
		var n r3.Vec
		for i := range f {
			a, b := verts[f[i]], verts[f[(i+1)%len(f)]]
			n.X += (a.Y - b.Y) * (a.Z + b.Z)
			n.Y += (a.Z - b.Z) * (a.X + b.X)
			n.Z += (a.X - b.X) * (a.Y + b.Y)
		}
		nn := r3.Norm(n)
		if nn < 1.e-14 {
			err = fmt.Errorf("degenerate face %v", f)
			return
		}
		n = r3.Scale(1./nn, n)
		var fctr r3.Vec
		for _, vi := range f {
			fctr = r3.Add(fctr, verts[vi])
		}
		fctr = r3.Scale(1./float64(len(f)), fctr)
		if r3.Dot(n, r3.Sub(fctr, ctr)) < 0 {
			n = r3.Scale(-1, n)
		}
		c.planes = append(c.planes, plane{N: n, D: r3.Dot(n, fctr)})
	}
	return
}

// Prism is a triangular prism: a base triangle extruded along an axis
// vector, giving the six-vertex solid used for sloped ceilings and corner
// fills.
type Prism struct {
	convex
	Verts [6]r3.Vec
}

func NewPrism(p0, p1, p2, axis r3.Vec) (pr Prism, err error) {
	if r3.Norm(axis) < 1.e-14 {
		err = fmt.Errorf("prism axis is zero")
		return
	}
	verts := []r3.Vec{
		p0, p1, p2,
		r3.Add(p0, axis), r3.Add(p1, axis), r3.Add(p2, axis),
	}
	faces := [][]int{
		{0, 1, 2},
		{3, 4, 5},
		{0, 1, 4, 3},
		{1, 2, 5, 4},
		{2, 0, 3, 5},
	}
	pr.convex, err = newConvex(verts, faces)
	copy(pr.Verts[:], verts)
	return
}

// Hexahedron is an eight-vertex brick. Vertices follow the usual hex
// ordering: 0-3 the bottom quad counterclockwise viewed from outside below,
// 4-7 the top quad above them. The solid must be convex; non-planar quads
// are flattened to their Newell plane.
type Hexahedron struct {
	convex
	Verts [8]r3.Vec
}

var hexFaces = [][]int{
	{0, 3, 2, 1}, // bottom
	{4, 5, 6, 7}, // top
	{0, 1, 5, 4},
	{1, 2, 6, 5},
	{2, 3, 7, 6},
	{3, 0, 4, 7},
}

func NewHexahedron(verts [8]r3.Vec) (h Hexahedron, err error) {
	h.convex, err = newConvex(verts[:], hexFaces)
	h.Verts = verts
	return
}

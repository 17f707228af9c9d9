// Package geometry builds room volumes from convex primitives and CSG
// booleans. Solids are represented implicitly: Evaluate returns a negative
// value inside the solid, positive outside. The magnitude is a conservative
// distance estimate, the sign is authoritative, which is all the lattice
// mesher needs for inside/outside classification and surface projection.
package geometry

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

type Solid interface {
	Evaluate(p r3.Vec) float64
	Bounds() BBox
}

// BBox is an axis-aligned bounding box.
type BBox struct {
	Min, Max r3.Vec
}

func (b BBox) Size() r3.Vec {
	return r3.Sub(b.Max, b.Min)
}

func (b BBox) Center() r3.Vec {
	return r3.Scale(0.5, r3.Add(b.Min, b.Max))
}

func (b BBox) Contains(p r3.Vec) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X &&
		p.Y >= b.Min.Y && p.Y <= b.Max.Y &&
		p.Z >= b.Min.Z && p.Z <= b.Max.Z
}

func (b BBox) Union(a BBox) BBox {
	return BBox{
		Min: r3.Vec{X: math.Min(b.Min.X, a.Min.X), Y: math.Min(b.Min.Y, a.Min.Y), Z: math.Min(b.Min.Z, a.Min.Z)},
		Max: r3.Vec{X: math.Max(b.Max.X, a.Max.X), Y: math.Max(b.Max.Y, a.Max.Y), Z: math.Max(b.Max.Z, a.Max.Z)},
	}
}

func (b BBox) Intersect(a BBox) BBox {
	return BBox{
		Min: r3.Vec{X: math.Max(b.Min.X, a.Min.X), Y: math.Max(b.Min.Y, a.Min.Y), Z: math.Max(b.Min.Z, a.Min.Z)},
		Max: r3.Vec{X: math.Min(b.Max.X, a.Max.X), Y: math.Min(b.Max.Y, a.Max.Y), Z: math.Min(b.Max.Z, a.Max.Z)},
	}
}

// Pad grows the box by d on all sides.
func (b BBox) Pad(d float64) BBox {
	dd := r3.Vec{X: d, Y: d, Z: d}
	return BBox{Min: r3.Sub(b.Min, dd), Max: r3.Add(b.Max, dd)}
}

func (b BBox) Volume() float64 {
	s := b.Size()
	if s.X <= 0 || s.Y <= 0 || s.Z <= 0 {
		return 0
	}
	return s.X * s.Y * s.Z
}

// Gradient estimates the outward gradient of the implicit function at p by
// central differences, used to project relaxed mesh vertices back onto the
// surface.
func Gradient(s Solid, p r3.Vec, h float64) r3.Vec {
	g := r3.Vec{
		X: s.Evaluate(r3.Add(p, r3.Vec{X: h})) - s.Evaluate(r3.Sub(p, r3.Vec{X: h})),
		Y: s.Evaluate(r3.Add(p, r3.Vec{Y: h})) - s.Evaluate(r3.Sub(p, r3.Vec{Y: h})),
		Z: s.Evaluate(r3.Add(p, r3.Vec{Z: h})) - s.Evaluate(r3.Sub(p, r3.Vec{Z: h})),
	}
	n := r3.Norm(g)
	if n < 1.e-14 {
		return r3.Vec{}
	}
	return r3.Scale(1./n, g)
}

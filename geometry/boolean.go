package geometry

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// union evaluates to the min over its terms, the standard implicit CSG
// union.
type union struct {
	terms []Solid
}

func Union(terms ...Solid) (Solid, error) {
	if len(terms) == 0 {
		return nil, fmt.Errorf("union of zero solids")
	}
	if len(terms) == 1 {
		return terms[0], nil
	}
	return union{terms: terms}, nil
}

func (u union) Evaluate(p r3.Vec) (d float64) {
	d = math.Inf(1)
	for _, s := range u.terms {
		if sd := s.Evaluate(p); sd < d {
			d = sd
		}
	}
	return
}

func (u union) Bounds() (b BBox) {
	b = u.terms[0].Bounds()
	for _, s := range u.terms[1:] {
		b = b.Union(s.Bounds())
	}
	return
}

type intersection struct {
	a, b Solid
}

func Intersect(a, b Solid) Solid {
	return intersection{a: a, b: b}
}

func (i intersection) Evaluate(p r3.Vec) float64 {
	return math.Max(i.a.Evaluate(p), i.b.Evaluate(p))
}

func (i intersection) Bounds() BBox {
	return i.a.Bounds().Intersect(i.b.Bounds())
}

type difference struct {
	a, b Solid
}

func Difference(a, b Solid) Solid {
	return difference{a: a, b: b}
}

func (d difference) Evaluate(p r3.Vec) float64 {
	return math.Max(d.a.Evaluate(p), -d.b.Evaluate(p))
}

func (d difference) Bounds() BBox {
	return d.a.Bounds()
}

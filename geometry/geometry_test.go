package geometry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestCuboid(t *testing.T) {
	c, err := NewCuboid(r3.Vec{}, r3.Vec{X: 2, Y: 1, Z: 1})
	assert.NoError(t, err)
	// Signs
	assert.Negative(t, c.Evaluate(r3.Vec{X: 1, Y: 0.5, Z: 0.5}))
	assert.Positive(t, c.Evaluate(r3.Vec{X: 3, Y: 0.5, Z: 0.5}))
	// Exact distance to closest face
	assert.InDelta(t, -0.25, c.Evaluate(r3.Vec{X: 1, Y: 0.25, Z: 0.5}), 1e-14)
	assert.InDelta(t, 1., c.Evaluate(r3.Vec{X: 3, Y: 0.5, Z: 0.5}), 1e-14)
	// Degenerate construction rejected
	_, err = NewCuboid(r3.Vec{X: 1}, r3.Vec{X: 1, Y: 1, Z: 1})
	assert.Error(t, err)
}

func TestPrism(t *testing.T) {
	// Right prism on the unit right triangle, extruded in z
	pr, err := NewPrism(
		r3.Vec{}, r3.Vec{X: 1}, r3.Vec{Y: 1},
		r3.Vec{Z: 1})
	assert.NoError(t, err)
	assert.Negative(t, pr.Evaluate(r3.Vec{X: 0.2, Y: 0.2, Z: 0.5}))
	// Above the hypotenuse plane x+y=1
	assert.Positive(t, pr.Evaluate(r3.Vec{X: 0.8, Y: 0.8, Z: 0.5}))
	// Outside the extrusion
	assert.Positive(t, pr.Evaluate(r3.Vec{X: 0.2, Y: 0.2, Z: 1.5}))
	b := pr.Bounds()
	assert.InDelta(t, 1., b.Max.Z, 1e-14)
}

func TestHexahedron(t *testing.T) {
	// A sheared unit cube, still convex
	h, err := NewHexahedron([8]r3.Vec{
		{}, {X: 1}, {X: 1, Y: 1}, {Y: 1},
		{X: 0.2, Z: 1}, {X: 1.2, Z: 1}, {X: 1.2, Y: 1, Z: 1}, {X: 0.2, Y: 1, Z: 1},
	})
	assert.NoError(t, err)
	assert.Negative(t, h.Evaluate(r3.Vec{X: 0.6, Y: 0.5, Z: 0.5}))
	assert.Positive(t, h.Evaluate(r3.Vec{X: 0.05, Y: 0.5, Z: 0.95}))
	assert.Positive(t, h.Evaluate(r3.Vec{X: 0.5, Y: 0.5, Z: 1.5}))
}

func TestBooleans(t *testing.T) {
	a, _ := NewCuboid(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	b, _ := NewCuboid(r3.Vec{X: 0.5}, r3.Vec{X: 2, Y: 1, Z: 1})
	u, err := Union(a, b)
	assert.NoError(t, err)
	assert.Negative(t, u.Evaluate(r3.Vec{X: 1.5, Y: 0.5, Z: 0.5}))
	assert.Negative(t, u.Evaluate(r3.Vec{X: 0.25, Y: 0.5, Z: 0.5}))
	assert.Positive(t, u.Evaluate(r3.Vec{X: 2.5, Y: 0.5, Z: 0.5}))
	assert.Equal(t, 2., u.Bounds().Max.X)

	i := Intersect(a, b)
	assert.Negative(t, i.Evaluate(r3.Vec{X: 0.75, Y: 0.5, Z: 0.5}))
	assert.Positive(t, i.Evaluate(r3.Vec{X: 0.25, Y: 0.5, Z: 0.5}))

	d := Difference(a, b)
	assert.Negative(t, d.Evaluate(r3.Vec{X: 0.25, Y: 0.5, Z: 0.5}))
	assert.Positive(t, d.Evaluate(r3.Vec{X: 0.75, Y: 0.5, Z: 0.5}))

	_, err = Union()
	assert.Error(t, err)
}

func TestGradient(t *testing.T) {
	c, _ := NewCuboid(r3.Vec{}, r3.Vec{X: 1, Y: 1, Z: 1})
	g := Gradient(c, r3.Vec{X: 0.5, Y: 0.5, Z: 0.9}, 1e-6)
	assert.InDelta(t, 0., g.X, 1e-6)
	assert.InDelta(t, 0., g.Y, 1e-6)
	assert.InDelta(t, 1., g.Z, 1e-6)
}

package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVector(t *testing.T) {
	// Chainable ops mutate in place and return the same vector
	{
		v := NewVector(3, []float64{1, 2, 3})
		v.Scale(2).Add(1)
		assert.Equal(t, []float64{3, 5, 7}, v.Data())
	}
	// Copy is independent of the source
	{
		v := NewVector(2, []float64{1, 2})
		w := v.Copy().Scale(10)
		assert.Equal(t, []float64{1, 2}, v.Data())
		assert.Equal(t, []float64{10, 20}, w.Data())
	}
	// Dot / Norm
	{
		v := NewVector(3, []float64{3, 4, 0})
		assert.Equal(t, 5., v.Norm())
		assert.Equal(t, 25., v.Dot(v))
	}
	// Min / Max / MaxAbs
	{
		v := NewVector(4, []float64{-3, 1, 2, -0.5})
		assert.Equal(t, -3., v.Min())
		assert.Equal(t, 2., v.Max())
		assert.Equal(t, 3., v.MaxAbs())
	}
	// AddScaled and Apply
	{
		y := NewVector(3, []float64{1, 1, 1})
		x := NewVector(3, []float64{1, 2, 3})
		assert.Equal(t, []float64{3, 5, 7}, y.AddScaled(2, x).Data())
		assert.Equal(t, []float64{6, 10, 14}, y.Apply(func(v float64) float64 { return 2 * v }).Data())
	}
}

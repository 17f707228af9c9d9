// Package plotting renders mode slices with the avs chart library.
package plotting

import (
	"image/color"
	"time"

	"github.com/notargets/avs/chart2d"
	"github.com/notargets/avs/functions"
	graphics2D "github.com/notargets/avs/geometry"
	utils2 "github.com/notargets/avs/utils"

	"github.com/notargets/goacoustics/acoustics"
)

type SlicePlot struct {
	Chart        *chart2d.Chart2D
	ColorMap     *utils2.ColorMap
	GraphicsMesh *graphics2D.TriMesh
	Values       []float64
}

// NewSlicePlot opens a chart window sized to the slice bounding box and
// starts the render loop.
func NewSlicePlot(width, height int, sl *acoustics.Slice) (sp *SlicePlot) {
	var (
		trimesh graphics2D.TriMesh
		points  = make([]graphics2D.Point, len(sl.Points))
	)
	for i, p := range sl.Points {
		points[i].X[0] = float32(p[0])
		points[i].X[1] = float32(p[1])
	}
	trimesh.Geometry = points
	trimesh.Triangles = make([]graphics2D.Triangle, len(sl.Tris))
	trimesh.Attributes = make([][]float32, len(sl.Tris))
	for k, tri := range sl.Tris {
		trimesh.Attributes[k] = make([]float32, 3)
		for i := 0; i < 3; i++ {
			trimesh.Triangles[k].Nodes[i] = int32(tri[i])
			trimesh.Attributes[k][i] = float32(sl.Values[tri[i]])
		}
	}
	box := graphics2D.NewBoundingBox(trimesh.GetGeometry())
	box = box.Scale(1.2)
	sp = &SlicePlot{
		Chart:        chart2d.NewChart2D(width, height, box.XMin[0], box.XMax[0], box.XMin[1], box.XMax[1]),
		GraphicsMesh: &trimesh,
		Values:       sl.Values,
	}
	go sp.Chart.Plot()
	return
}

func (sp *SlicePlot) AddColorMap(fmin, fmax float64) {
	sp.ColorMap = utils2.NewColorMap(float32(fmin), float32(fmax), 1.)
	sp.Chart.AddColorMap(sp.ColorMap)
}

// AddPressureSurface draws the interpolated pressure field over the slice.
func (sp *SlicePlot) AddPressureSurface() {
	var (
		white = color.RGBA{R: 255, G: 255, B: 255, A: 0}
		field = make([]float32, len(sp.Values))
	)
	for i, v := range sp.Values {
		field[i] = float32(v)
	}
	fs := functions.NewFSurface(sp.GraphicsMesh, [][]float32{field}, 0)
	if err := sp.Chart.AddFunctionSurface("pressure", *fs, chart2d.NoLine, white); err != nil {
		panic("unable to add function surface series")
	}
}

func SleepFor(milliseconds int) {
	time.Sleep(time.Duration(milliseconds) * time.Millisecond)
}

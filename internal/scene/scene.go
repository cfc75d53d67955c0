package scene

import (
	"math"
	"strconv"

	"github.com/verte-zerg/hashviz/internal/lib"
)

// Kind distinguishes surface and bar scenes.
type Kind int

const (
	KindSurface Kind = iota
	KindBars
)

const zTickCount = 5

// Face is a planar polygon with an outward normal. Value drives colouring.
type Face struct {
	Vertices []Vec3
	Normal   Vec3
	Value    float64
}

// Segment is a line in data space, used where a surface has no area.
type Segment struct {
	A, B  Vec3
	Value float64
}

// Tick is a labelled position along an axis.
type Tick struct {
	Pos   Vec3
	Label string
}

// Axis is an edge of the data box with its ticks.
type Axis struct {
	Label string
	From  Vec3
	To    Vec3
	Ticks []Tick
}

// Spec describes the data of one panel. X, Y and Z are meshes of the same
// shape indexed [y][x]. Bars are anchored at the parallel BarX/BarY
// positions with heights BarZ.
type Spec struct {
	Title    string
	XLabel   string
	YLabel   string
	ZLabel   string
	X        [][]float64
	Y        [][]float64
	Z        [][]float64
	BarX     []float64
	BarY     []float64
	BarZ     []float64
	XTicks   []float64
	YTicks   []float64
	BarWidth float64
	BarDepth float64
}

// Scene is a fully built panel ready for projection.
type Scene struct {
	Title    string
	Kind     Kind
	Faces    []Face
	Segments []Segment
	Axes     [3]Axis
	Bounds   Bounds
	ValueMin float64
	ValueMax float64
}

// Edges returns the polygon outline of every face as segments, followed by
// the scene's own segments.
func (s Scene) Edges() []Segment {
	var out []Segment
	for _, f := range s.Faces {
		n := len(f.Vertices)
		for i := 0; i < n; i++ {
			out = append(out, Segment{A: f.Vertices[i], B: f.Vertices[(i+1)%n], Value: f.Value})
		}
	}
	return append(out, s.Segments...)
}

// NewSurface builds a quad mesh over the (x, y) grid. A grid with a single
// row or column produces a polyline instead of faces.
func NewSurface(spec Spec) Scene {
	sc := Scene{Title: spec.Title, Kind: KindSurface}
	bounds := emptyBounds()
	rows, cols := meshShape(spec)

	point := func(r, c int) Vec3 {
		return Vec3{X: spec.X[r][c], Y: spec.Y[r][c], Z: spec.Z[r][c]}
	}
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			bounds = bounds.Extend(point(r, c))
		}
	}

	switch {
	case rows >= 2 && cols >= 2:
		for r := 0; r+1 < rows; r++ {
			for c := 0; c+1 < cols; c++ {
				quad := []Vec3{point(r, c), point(r, c+1), point(r+1, c+1), point(r+1, c)}
				sc.Faces = append(sc.Faces, Face{
					Vertices: quad,
					Normal:   quadNormal(quad),
					Value:    meanZ(quad),
				})
			}
		}
	case rows >= 1 && cols >= 1:
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if c+1 < cols {
					a, b := point(r, c), point(r, c+1)
					sc.Segments = append(sc.Segments, Segment{A: a, B: b, Value: (a.Z + b.Z) / 2})
				}
				if r+1 < rows {
					a, b := point(r, c), point(r+1, c)
					sc.Segments = append(sc.Segments, Segment{A: a, B: b, Value: (a.Z + b.Z) / 2})
				}
			}
		}
		if rows == 1 && cols == 1 {
			p := point(0, 0)
			sc.Segments = append(sc.Segments, Segment{A: p, B: p, Value: p.Z})
		}
	}

	sc.ValueMin, sc.ValueMax = valueRange(spec.Z...)
	sc.finish(spec, bounds)
	return sc
}

// NewBars builds one box per anchor, spanning from its (x, y) corner by the
// bar footprint and from zero to its height.
func NewBars(spec Spec) Scene {
	sc := Scene{Title: spec.Title, Kind: KindBars}
	bounds := emptyBounds()
	width, depth := spec.BarWidth, spec.BarDepth
	if width <= 0 {
		width = 1
	}
	if depth <= 0 {
		depth = 1
	}
	n := min(len(spec.BarX), len(spec.BarY), len(spec.BarZ))
	for i := 0; i < n; i++ {
		z := spec.BarZ[i]
		lo := Vec3{X: spec.BarX[i], Y: spec.BarY[i], Z: math.Min(0, z)}
		hi := Vec3{X: spec.BarX[i] + width, Y: spec.BarY[i] + depth, Z: math.Max(0, z)}
		sc.Faces = append(sc.Faces, boxFaces(lo, hi, z)...)
		bounds = bounds.Extend(lo).Extend(hi)
	}
	sc.ValueMin, sc.ValueMax = valueRange(spec.BarZ[:n])
	sc.finish(spec, bounds)
	return sc
}

func (sc *Scene) finish(spec Spec, bounds Bounds) {
	if math.IsInf(bounds.Min.X, 1) {
		bounds = Bounds{}
	}
	sc.Bounds = bounds.Padded()
	sc.Axes = buildAxes(spec, sc.Bounds)
}

func boxFaces(lo, hi Vec3, value float64) []Face {
	x0, y0, z0 := lo.X, lo.Y, lo.Z
	x1, y1, z1 := hi.X, hi.Y, hi.Z
	return []Face{
		{Vertices: []Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y1, z0}, {x0, y1, z0}}, Normal: Vec3{0, 0, -1}, Value: value},
		{Vertices: []Vec3{{x0, y0, z1}, {x1, y0, z1}, {x1, y1, z1}, {x0, y1, z1}}, Normal: Vec3{0, 0, 1}, Value: value},
		{Vertices: []Vec3{{x0, y0, z0}, {x1, y0, z0}, {x1, y0, z1}, {x0, y0, z1}}, Normal: Vec3{0, -1, 0}, Value: value},
		{Vertices: []Vec3{{x0, y1, z0}, {x1, y1, z0}, {x1, y1, z1}, {x0, y1, z1}}, Normal: Vec3{0, 1, 0}, Value: value},
		{Vertices: []Vec3{{x0, y0, z0}, {x0, y1, z0}, {x0, y1, z1}, {x0, y0, z1}}, Normal: Vec3{-1, 0, 0}, Value: value},
		{Vertices: []Vec3{{x1, y0, z0}, {x1, y1, z0}, {x1, y1, z1}, {x1, y0, z1}}, Normal: Vec3{1, 0, 0}, Value: value},
	}
}

func quadNormal(q []Vec3) Vec3 {
	n := q[2].Sub(q[0]).Cross(q[3].Sub(q[1]))
	if n.Z < 0 {
		n = n.Scale(-1)
	}
	return n.Unit()
}

func meanZ(vs []Vec3) float64 {
	var sum float64
	for _, v := range vs {
		sum += v.Z
	}
	return sum / float64(len(vs))
}

// meshShape returns the number of rows and columns covered by all three
// meshes.
func meshShape(spec Spec) (int, int) {
	rows := min(len(spec.X), len(spec.Y), len(spec.Z))
	if rows == 0 {
		return 0, 0
	}
	cols := math.MaxInt
	for r := 0; r < rows; r++ {
		cols = min(cols, len(spec.X[r]), len(spec.Y[r]), len(spec.Z[r]))
	}
	return rows, cols
}

func valueRange(rows ...[]float64) (float64, float64) {
	minVal, maxVal := math.Inf(1), math.Inf(-1)
	for _, row := range rows {
		for _, v := range row {
			minVal = math.Min(minVal, v)
			maxVal = math.Max(maxVal, v)
		}
	}
	if math.IsInf(minVal, 1) {
		return 0, 0
	}
	return minVal, maxVal
}

// buildAxes places the x axis on the front floor edge, the y axis on the
// right floor edge and the z axis on the back-left vertical edge.
func buildAxes(spec Spec, b Bounds) [3]Axis {
	xAxis := Axis{
		Label: spec.XLabel,
		From:  Vec3{b.Min.X, b.Min.Y, b.Min.Z},
		To:    Vec3{b.Max.X, b.Min.Y, b.Min.Z},
	}
	for _, t := range spec.XTicks {
		xAxis.Ticks = append(xAxis.Ticks, Tick{Pos: Vec3{t, b.Min.Y, b.Min.Z}, Label: formatTick(t)})
	}
	yAxis := Axis{
		Label: spec.YLabel,
		From:  Vec3{b.Max.X, b.Min.Y, b.Min.Z},
		To:    Vec3{b.Max.X, b.Max.Y, b.Min.Z},
	}
	for _, t := range spec.YTicks {
		yAxis.Ticks = append(yAxis.Ticks, Tick{Pos: Vec3{b.Max.X, t, b.Min.Z}, Label: formatTick(t)})
	}
	zAxis := Axis{
		Label: spec.ZLabel,
		From:  Vec3{b.Min.X, b.Max.Y, b.Min.Z},
		To:    Vec3{b.Min.X, b.Max.Y, b.Max.Z},
	}
	for _, t := range linspace(b.Min.Z, b.Max.Z, zTickCount) {
		zAxis.Ticks = append(zAxis.Ticks, Tick{Pos: Vec3{b.Min.X, b.Max.Y, t}, Label: formatTick(t)})
	}
	return [3]Axis{xAxis, yAxis, zAxis}
}

func linspace(lo, hi float64, n int) []float64 {
	if n < 2 {
		return []float64{lo}
	}
	out := make([]float64, n)
	step := (hi - lo) / float64(n-1)
	for i := range out {
		out[i] = lo + step*float64(i)
	}
	return out
}

func formatTick(v float64) string {
	if lib.AlmostEqual(v, math.Round(v), 1e-9) {
		return strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'g', 3, 64)
}

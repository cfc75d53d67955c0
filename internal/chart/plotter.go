package chart

import (
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/palette/brewer"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/verte-zerg/hashviz/internal/lib"
	"github.com/verte-zerg/hashviz/internal/scene"
)

const (
	labelMargin     = 0.18
	tickLabelOffset = 9
	axisLabelOffset = 24
)

var (
	axisColor = color.Gray{Y: 0x60}
	edgeColor = color.Gray{Y: 0x30}
)

// scenePlotter draws a projected 3D scene inside a gonum plot.
type scenePlotter struct {
	scene    scene.Scene
	proj     scene.Projector
	colors   palette.ColorMap
	barColor color.Color
}

func newScenePlotter(sc scene.Scene, cam scene.Camera) (*scenePlotter, error) {
	cmap := moreland.SmoothBlueRed()
	lo, hi := sc.ValueMin, sc.ValueMax
	if lib.AlmostEqual(hi, lo, 1e-12) {
		lo--
		hi++
	}
	cmap.SetMin(lo)
	cmap.SetMax(hi)

	pal, err := brewer.GetPalette(brewer.TypeQualitative, "Set1", 3)
	if err != nil {
		return nil, err
	}
	return &scenePlotter{
		scene:    sc,
		proj:     scene.NewProjector(cam, sc.Bounds),
		colors:   cmap,
		barColor: pal.Colors()[1],
	}, nil
}

// DataRange implements plot.DataRanger over the projected view plane.
func (sp *scenePlotter) DataRange() (xmin, xmax, ymin, ymax float64) {
	lo, hi := sp.proj.Extent()
	padX := (hi.X - lo.X) * labelMargin
	padY := (hi.Y - lo.Y) * labelMargin
	return lo.X - padX, hi.X + padX, lo.Y - padY, hi.Y + padY
}

// Plot implements plot.Plotter.
func (sp *scenePlotter) Plot(c draw.Canvas, plt *plot.Plot) {
	trX, trY := plt.Transforms(&c)
	toVG := func(v scene.Vec3) vg.Point {
		pt, _ := sp.proj.Project(v)
		return vg.Point{X: trX(pt.X), Y: trY(pt.Y)}
	}

	faces := sp.scene.Faces
	if sp.scene.Kind == scene.KindBars {
		visible := make([]scene.Face, 0, len(faces))
		for _, f := range faces {
			if sp.proj.Visible(f.Normal) {
				visible = append(visible, f)
			}
		}
		faces = visible
	}
	edgeStyle := draw.LineStyle{Color: edgeColor, Width: vg.Points(0.25)}
	for _, f := range sp.proj.SortFaces(faces) {
		projected := sp.proj.ProjectAll(f.Vertices)
		pts := make([]vg.Point, len(projected))
		for i, pt := range projected {
			pts[i] = vg.Point{X: trX(pt.X), Y: trY(pt.Y)}
		}
		c.FillPolygon(sp.faceColor(f), pts)
		if sp.scene.Kind == scene.KindBars {
			c.StrokeLines(edgeStyle, append(pts, pts[0]))
		}
	}

	for _, s := range sp.scene.Segments {
		clr := sp.valueColor(s.Value)
		a, b := toVG(s.A), toVG(s.B)
		if a == b {
			c.DrawGlyph(draw.GlyphStyle{Color: clr, Radius: vg.Points(3), Shape: draw.CircleGlyph{}}, a)
			continue
		}
		c.StrokeLines(draw.LineStyle{Color: clr, Width: vg.Points(2)}, []vg.Point{a, b})
	}

	sp.drawAxes(c, plt, toVG)
}

func (sp *scenePlotter) drawAxes(c draw.Canvas, plt *plot.Plot, toVG func(scene.Vec3) vg.Point) {
	b := sp.scene.Bounds
	center := toVG(b.Min.Add(b.Max).Scale(0.5))
	lineStyle := draw.LineStyle{Color: axisColor, Width: vg.Points(0.5)}

	tickStyle := plt.X.Tick.Label
	tickStyle.XAlign = draw.XCenter
	tickStyle.YAlign = draw.YCenter
	labelStyle := plt.X.Label.TextStyle
	labelStyle.XAlign = draw.XCenter
	labelStyle.YAlign = draw.YCenter

	for _, axis := range sp.scene.Axes {
		from, to := toVG(axis.From), toVG(axis.To)
		c.StrokeLines(lineStyle, []vg.Point{from, to})
		for _, tick := range axis.Ticks {
			pt := toVG(tick.Pos)
			c.FillText(tickStyle, offsetFrom(center, pt, tickLabelOffset), tick.Label)
		}
		if axis.Label != "" {
			mid := vg.Point{X: (from.X + to.X) / 2, Y: (from.Y + to.Y) / 2}
			c.FillText(labelStyle, offsetFrom(center, mid, axisLabelOffset), axis.Label)
		}
	}
}

func (sp *scenePlotter) faceColor(f scene.Face) color.Color {
	if sp.scene.Kind == scene.KindBars {
		return shadeColor(sp.barColor, sp.proj.Shade(f.Normal))
	}
	return sp.valueColor(f.Value)
}

func (sp *scenePlotter) valueColor(v float64) color.Color {
	v = math.Max(sp.colors.Min(), math.Min(sp.colors.Max(), v))
	clr, err := sp.colors.At(v)
	if err != nil {
		return sp.barColor
	}
	return clr
}

// offsetFrom moves pt away from center by dist points.
func offsetFrom(center, pt vg.Point, dist vg.Length) vg.Point {
	dx := float64(pt.X - center.X)
	dy := float64(pt.Y - center.Y)
	n := math.Hypot(dx, dy)
	if n == 0 {
		return vg.Point{X: pt.X, Y: pt.Y - dist}
	}
	return vg.Point{
		X: pt.X + vg.Length(dx/n)*dist,
		Y: pt.Y + vg.Length(dy/n)*dist,
	}
}

func shadeColor(c color.Color, factor float64) color.Color {
	r, g, b, a := c.RGBA()
	scale := func(v uint32) uint8 {
		return uint8(math.Min(255, float64(v>>8)*factor))
	}
	return color.NRGBA{R: scale(r), G: scale(g), B: scale(b), A: uint8(a >> 8)}
}

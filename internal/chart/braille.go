package chart

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/verte-zerg/hashviz/internal/lib"
	"github.com/verte-zerg/hashviz/internal/scene"
)

const (
	defaultSceneHeight  = 18
	minSceneWidth       = 20
	minSceneHeight      = 6
	terminalWidthBackup = 80
	colorReset          = "\x1b[0m"
	axisColorCode       = "\x1b[90m"
)

// Low to high, roughly following the blue-red diverging map.
var bandPalette = []string{
	"\x1b[34m",
	"\x1b[36m",
	"\x1b[32m",
	"\x1b[33m",
	"\x1b[31m",
}

const axisBand = -2

type brailleCanvas struct {
	width  int
	height int
	cells  [][]uint8
	bands  [][]int
	text   [][]rune
}

func newBrailleCanvas(width, height int) *brailleCanvas {
	bc := &brailleCanvas{
		width:  width,
		height: height,
		cells:  make([][]uint8, height),
		bands:  make([][]int, height),
		text:   make([][]rune, height),
	}
	for y := 0; y < height; y++ {
		bc.cells[y] = make([]uint8, width)
		bc.bands[y] = make([]int, width)
		bc.text[y] = make([]rune, width)
		for x := range bc.bands[y] {
			bc.bands[y][x] = -1
		}
	}
	return bc
}

func (bc *brailleCanvas) dot(x, y, band int) {
	if x < 0 || y < 0 {
		return
	}
	cellX, cellY := x/2, y/4
	if cellY >= bc.height || cellX >= bc.width {
		return
	}
	bc.cells[cellY][cellX] |= brailleDotMask(x%2, y%4)
	if band != axisBand || bc.bands[cellY][cellX] < 0 {
		bc.bands[cellY][cellX] = band
	}
}

func (bc *brailleCanvas) label(cellX, cellY int, s string) {
	if cellY < 0 || cellY >= bc.height {
		return
	}
	runes := []rune(s)
	start := cellX - len(runes)/2
	if start < 0 {
		start = 0
	}
	if start+len(runes) > bc.width {
		start = bc.width - len(runes)
	}
	for i, r := range runes {
		x := start + i
		if x < 0 || x >= bc.width {
			continue
		}
		bc.text[cellY][x] = r
	}
}

// viewMapping fits the projected extent into the dot grid keeping aspect.
type viewMapping struct {
	proj    scene.Projector
	lo      scene.Point
	scale   float64
	offsetX float64
	offsetY float64
	dotsH   int
}

func newViewMapping(proj scene.Projector, dotsW, dotsH int) viewMapping {
	lo, hi := proj.Extent()
	spanX := math.Max(hi.X-lo.X, 1e-9)
	spanY := math.Max(hi.Y-lo.Y, 1e-9)
	scale := math.Min(float64(dotsW-1)/spanX, float64(dotsH-1)/spanY)
	return viewMapping{
		proj:    proj,
		lo:      lo,
		scale:   scale,
		offsetX: (float64(dotsW-1) - spanX*scale) / 2,
		offsetY: (float64(dotsH-1) - spanY*scale) / 2,
		dotsH:   dotsH,
	}
}

func (m viewMapping) dots(v scene.Vec3) (int, int) {
	pt, _ := m.proj.Project(v)
	x := (pt.X-m.lo.X)*m.scale + m.offsetX
	y := float64(m.dotsH-1) - ((pt.Y-m.lo.Y)*m.scale + m.offsetY)
	return int(math.Round(x)), int(math.Round(y))
}

// RenderScene draws a scene as a braille wireframe. Width and height are in
// terminal cells; zero picks the terminal width and a default height.
func RenderScene(w io.Writer, sc scene.Scene, cam scene.Camera, width, height int, forceColor bool) error {
	if height <= 0 {
		height = defaultSceneHeight
	}
	if height < minSceneHeight {
		height = minSceneHeight
	}
	if width <= 0 {
		width = SceneWidthFor(terminalWidth())
	}
	if width < minSceneWidth {
		width = minSceneWidth
	}

	proj := scene.NewProjector(cam, sc.Bounds)
	bc := newBrailleCanvas(width, height)
	mapping := newViewMapping(proj, width*2, height*4)

	plotSegment := func(a, b scene.Vec3, band int) {
		x0, y0 := mapping.dots(a)
		x1, y1 := mapping.dots(b)
		drawLine(x0, y0, x1, y1, func(x, y int) {
			bc.dot(x, y, band)
		})
	}

	for _, axis := range sc.Axes {
		plotSegment(axis.From, axis.To, axisBand)
	}

	faces := sc.Faces
	if sc.Kind == scene.KindBars {
		visible := make([]scene.Face, 0, len(faces))
		for _, f := range faces {
			if proj.Visible(f.Normal) {
				visible = append(visible, f)
			}
		}
		faces = visible
	}
	wire := scene.Scene{Faces: proj.SortFaces(faces), Segments: sc.Segments}
	for _, s := range wire.Edges() {
		plotSegment(s.A, s.B, valueBand(s.Value, sc.ValueMin, sc.ValueMax, len(bandPalette)))
	}

	center := sc.Bounds.Min.Add(sc.Bounds.Max).Scale(0.5)
	cx, cy := mapping.dots(center)
	for _, axis := range sc.Axes {
		for _, tick := range axis.Ticks {
			x, y := mapping.dots(tick.Pos)
			lx, ly := pushOut(cx, cy, x, y)
			bc.label(lx/2, ly/4, tick.Label)
		}
	}

	useColor := shouldUseColor(w, forceColor)
	if sc.Title != "" {
		if _, err := fmt.Fprintln(w, sc.Title); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(w, "min=%.3f max=%.3f  azim=%.0f elev=%.0f\n", sc.ValueMin, sc.ValueMax, cam.Azimuth, cam.Elevation); err != nil {
		return err
	}
	for y := 0; y < height; y++ {
		if _, err := fmt.Fprintln(w, bc.renderRow(y, useColor)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, axisLegend(sc)); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(w, bandLegend(sc, useColor)); err != nil {
		return err
	}
	return nil
}

func (bc *brailleCanvas) renderRow(y int, useColor bool) string {
	var row strings.Builder
	for x := 0; x < bc.width; x++ {
		if r := bc.text[y][x]; r != 0 {
			row.WriteRune(r)
			continue
		}
		ch := brailleFromMask(bc.cells[y][x])
		band := bc.bands[y][x]
		switch {
		case !useColor || bc.cells[y][x] == 0:
			row.WriteRune(ch)
		case band == axisBand:
			row.WriteString(axisColorCode)
			row.WriteRune(ch)
			row.WriteString(colorReset)
		case band >= 0:
			row.WriteString(bandPalette[band%len(bandPalette)])
			row.WriteRune(ch)
			row.WriteString(colorReset)
		default:
			row.WriteRune(ch)
		}
	}
	return row.String()
}

// pushOut moves a dot position two cells away from the view centre so tick
// labels do not cover the axis line.
func pushOut(cx, cy, x, y int) (int, int) {
	dx, dy := float64(x-cx), float64(y-cy)
	n := math.Hypot(dx, dy)
	if n == 0 {
		return x, y + 4
	}
	return x + int(math.Round(dx/n*4)), y + int(math.Round(dy/n*8))
}

func valueBand(v, minVal, maxVal float64, bands int) int {
	if bands <= 1 || maxVal <= minVal || lib.AlmostEqual(maxVal, minVal, 1e-12) {
		return bands / 2
	}
	pos := (v - minVal) / (maxVal - minVal)
	idx := int(math.Floor(pos * float64(bands)))
	if idx < 0 {
		idx = 0
	}
	if idx >= bands {
		idx = bands - 1
	}
	return idx
}

func axisLegend(sc scene.Scene) string {
	names := []string{"x", "y", "z"}
	parts := make([]string, 0, len(sc.Axes))
	for i, axis := range sc.Axes {
		if axis.Label == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", names[i], axis.Label))
	}
	return "Axes: " + strings.Join(parts, "  ")
}

func bandLegend(sc scene.Scene, useColor bool) string {
	n := len(bandPalette)
	step := (sc.ValueMax - sc.ValueMin) / float64(n)
	parts := make([]string, 0, n)
	marker := brailleFromMask(0xFF)
	for i := 0; i < n; i++ {
		label := fmt.Sprintf("%c %.3g", marker, sc.ValueMin+step*float64(i))
		if useColor {
			label = bandPalette[i] + label + colorReset
		}
		parts = append(parts, label)
	}
	return "Scale: " + strings.Join(parts, "  ")
}

// SceneWidthFor returns the plot width in cells for a total terminal width.
func SceneWidthFor(totalWidth int) int {
	if totalWidth <= 0 {
		return minSceneWidth
	}
	if totalWidth < minSceneWidth {
		return minSceneWidth
	}
	return totalWidth
}

func terminalWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return terminalWidthBackup
	}
	return width
}

func shouldUseColor(w io.Writer, force bool) bool {
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	if force {
		return true
	}
	file, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(file.Fd()))
}

func drawLine(x0, y0, x1, y1 int, plot func(x, y int)) {
	dx := int(math.Abs(float64(x1 - x0)))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -int(math.Abs(float64(y1 - y0)))
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		plot(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			if x0 == x1 {
				break
			}
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			if y0 == y1 {
				break
			}
			err += dx
			y0 += sy
		}
	}
}

func brailleDotMask(x, y int) uint8 {
	switch {
	case x == 0 && y == 0:
		return 0x01
	case x == 0 && y == 1:
		return 0x02
	case x == 0 && y == 2:
		return 0x04
	case x == 0 && y == 3:
		return 0x40
	case x == 1 && y == 0:
		return 0x08
	case x == 1 && y == 1:
		return 0x10
	case x == 1 && y == 2:
		return 0x20
	case x == 1 && y == 3:
		return 0x80
	default:
		return 0
	}
}

func brailleFromMask(mask uint8) rune {
	return rune(0x2800 + int(mask))
}

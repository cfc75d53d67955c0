package chart

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ErrUnsupportedFormat is returned for figure paths with an unknown extension.
var ErrUnsupportedFormat = errors.New("unsupported figure format")

const (
	// DefaultFigureWidth and DefaultFigureHeight are in inches.
	DefaultFigureWidth  = 16.0
	DefaultFigureHeight = 9.0
)

var figureFormats = map[string]struct{}{
	"png":  {},
	"svg":  {},
	"pdf":  {},
	"eps":  {},
	"jpg":  {},
	"jpeg": {},
	"tif":  {},
	"tiff": {},
}

// FigureFormat returns the output format implied by the path extension.
func FigureFormat(path string) (string, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if _, ok := figureFormats[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
	return ext, nil
}

// NewPanelPlot builds a gonum plot for one panel of the figure.
func NewPanelPlot(fig Figure, panel int) (*plot.Plot, error) {
	sc := fig.Panels[panel]
	sp, err := newScenePlotter(sc, fig.Camera)
	if err != nil {
		return nil, fmt.Errorf("failed to build %s panel: %w", PanelName(panel), err)
	}
	p := plot.New()
	p.Title.Text = sc.Title
	p.HideAxes()
	p.Add(sp)
	return p, nil
}

// ExportFigure writes the four panels as a 2×2 figure. Width and height are
// in inches; the format follows the path extension.
func ExportFigure(path string, fig Figure, width, height float64) error {
	format, err := FigureFormat(path)
	if err != nil {
		return err
	}
	if width <= 0 {
		width = DefaultFigureWidth
	}
	if height <= 0 {
		height = DefaultFigureHeight
	}

	plots := make([][]*plot.Plot, 2)
	for row := range plots {
		plots[row] = make([]*plot.Plot, 2)
		for col := range plots[row] {
			p, err := NewPanelPlot(fig, row*2+col)
			if err != nil {
				return err
			}
			plots[row][col] = p
		}
	}

	canvas, err := draw.NewFormattedCanvas(vg.Length(width)*vg.Inch, vg.Length(height)*vg.Inch, format)
	if err != nil {
		return fmt.Errorf("failed to create canvas: %w", err)
	}
	dc := draw.New(canvas)
	if fig.Title != "" {
		titleStyle := plots[0][0].Title.TextStyle
		titleStyle.XAlign = draw.XCenter
		titleStyle.YAlign = draw.YTop
		dc.FillText(titleStyle, vg.Point{X: (dc.Min.X + dc.Max.X) / 2, Y: dc.Max.Y - vg.Millimeter}, fig.Title)
		dc.Max.Y -= titleStyle.Height(fig.Title) + 2*vg.Millimeter
	}
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 2,
		PadX: vg.Millimeter * 4,
		PadY: vg.Millimeter * 4,
	}
	canvases := plot.Align(plots, tiles, dc)
	for row := range plots {
		for col := range plots[row] {
			plots[row][col].Draw(canvases[row][col])
		}
	}

	return writeAtomic(path, func(f *os.File) error {
		_, err := canvas.WriteTo(f)
		return err
	})
}

func writeAtomic(path string, write func(*os.File) error) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create figure dir: %w", err)
	}
	tmpFile, err := os.CreateTemp(dir, "figure-*"+filepath.Ext(path))
	if err != nil {
		return fmt.Errorf("failed to create temp figure: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		_ = tmpFile.Close()
		_ = os.Remove(tmpPath)
	}()

	if err := write(tmpFile); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		return fmt.Errorf("failed to close figure: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to write figure: %w", err)
	}
	return nil
}

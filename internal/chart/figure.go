// Package chart renders benchmark grids as 3D figures and terminal views.
package chart

import (
	"fmt"

	"github.com/verte-zerg/hashviz/internal/grid"
	"github.com/verte-zerg/hashviz/internal/model"
	"github.com/verte-zerg/hashviz/internal/scene"
)

const (
	xAxisLabel = "Difficulty (n. zeros)"
	yAxisLabel = "N. Blocks"
)

// Panel indexes within a Figure, in 2×2 reading order.
const (
	PanelHashrateSurface = iota
	PanelTimeSurface
	PanelHashrateBars
	PanelTimeBars
	panelCount
)

// Units controls hashrate scaling and its label.
type Units struct {
	Scale float64
	Unit  string
}

// DefaultUnits expresses hashrate in MH/s.
func DefaultUnits() Units {
	return Units{Scale: grid.DefaultScale, Unit: grid.DefaultUnit}
}

// Figure holds the four panels of a benchmark report.
type Figure struct {
	Title  string
	Camera scene.Camera
	Panels [panelCount]scene.Scene
}

// MetricTitle returns the panel title for a metric.
func MetricTitle(metric model.Metric, units Units) string {
	switch metric {
	case model.MetricHashrate:
		return fmt.Sprintf("%s (%s)", metric, units.Unit)
	default:
		return fmt.Sprintf("%s (ms)", metric)
	}
}

// MetricSpec builds the scene description of one metric over the grid. The
// surface uses the (difficulty, block) mesh; bars sit on the raveled mesh.
func MetricSpec(g *grid.Grid, metric model.Metric, units Units) scene.Spec {
	width, depth := g.BarFootprint()
	mesh := g.Mesh()
	barX, barY := mesh.Ravel()
	return scene.Spec{
		Title:    MetricTitle(metric, units),
		XLabel:   xAxisLabel,
		YLabel:   yAxisLabel,
		ZLabel:   MetricTitle(metric, units),
		X:        mesh.X,
		Y:        mesh.Y,
		Z:        g.Values(metric, units.Scale),
		BarX:     barX,
		BarY:     barY,
		BarZ:     g.Flatten(metric, units.Scale),
		XTicks:   g.DifficultyTicks(),
		YTicks:   g.BlockTicks(),
		BarWidth: width,
		BarDepth: depth,
	}
}

// BuildFigure builds surfaces and bars for hashrate and time.
func BuildFigure(title string, g *grid.Grid, units Units, cam scene.Camera) Figure {
	hashrate := MetricSpec(g, model.MetricHashrate, units)
	timing := MetricSpec(g, model.MetricTime, units)
	fig := Figure{Title: title, Camera: cam}
	fig.Panels[PanelHashrateSurface] = scene.NewSurface(hashrate)
	fig.Panels[PanelTimeSurface] = scene.NewSurface(timing)
	fig.Panels[PanelHashrateBars] = scene.NewBars(hashrate)
	fig.Panels[PanelTimeBars] = scene.NewBars(timing)
	return fig
}

// PanelName returns a short tab name for a panel.
func PanelName(panel int) string {
	switch panel {
	case PanelHashrateSurface:
		return "Hashrate Surface"
	case PanelTimeSurface:
		return "Time Surface"
	case PanelHashrateBars:
		return "Hashrate Bars"
	case PanelTimeBars:
		return "Time Bars"
	default:
		return ""
	}
}

package chart

import (
	"fmt"
	"io"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/hashviz/internal/grid"
	"github.com/verte-zerg/hashviz/internal/model"
)

// GridTable returns headers and rows of one metric: one row per block, one
// column per difficulty.
func GridTable(g *grid.Grid, metric model.Metric, units Units) ([]string, [][]string) {
	headers := make([]string, 0, g.Cols()+1)
	headers = append(headers, "Blocks")
	for i, d := range g.Difficulties {
		headers = append(headers, fmt.Sprintf("%d (%s)", d, g.Labels[i]))
	}
	values := g.Values(metric, units.Scale)
	rows := make([][]string, 0, g.Rows())
	for b, block := range g.Blocks {
		row := make([]string, 0, g.Cols()+1)
		row = append(row, fmt.Sprintf("%d", block))
		for _, v := range values[b] {
			row = append(row, fmt.Sprintf("%.3f", v))
		}
		rows = append(rows, row)
	}
	return headers, rows
}

// RenderGridTable prints one metric as an aligned text table.
func RenderGridTable(w io.Writer, g *grid.Grid, metric model.Metric, units Units) error {
	if _, err := fmt.Fprintln(w, MetricTitle(metric, units)); err != nil {
		return err
	}
	headers, rows := GridTable(g, metric, units)
	rightAlign := make(map[int]bool, len(headers))
	for i := range headers {
		rightAlign[i] = true
	}
	for _, line := range formatTable(headers, rows, rightAlign) {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintln(w, ""); err != nil {
		return err
	}
	return nil
}

// Summary describes the extremes of a grid.
type Summary struct {
	Experiments   int
	Blocks        int
	MinDifficulty int
	MaxDifficulty int
	PeakHashrate  float64
	PeakDiff      int
	PeakBlock     int
	FastestTime   float64
	SlowestTime   float64
}

// Summarize computes a Summary with hashrate in the given units.
func Summarize(g *grid.Grid, units Units) Summary {
	s := Summary{Experiments: g.Cols(), Blocks: g.Rows()}
	if g.Cols() == 0 || g.Rows() == 0 {
		return s
	}
	s.MinDifficulty, s.MaxDifficulty = g.Difficulties[0], g.Difficulties[0]
	for _, d := range g.Difficulties {
		if d < s.MinDifficulty {
			s.MinDifficulty = d
		}
		if d > s.MaxDifficulty {
			s.MaxDifficulty = d
		}
	}
	first := true
	for b := 0; b < g.Rows(); b++ {
		for d := 0; d < g.Cols(); d++ {
			rate := grid.Value(model.MetricHashrate, g.At(b, d), units.Scale)
			if first || rate > s.PeakHashrate {
				s.PeakHashrate = rate
				s.PeakDiff = g.Difficulties[d]
				s.PeakBlock = g.Blocks[b]
			}
			first = false
		}
	}
	s.FastestTime, s.SlowestTime = g.Range(model.MetricTime, units.Scale)
	return s
}

// RenderSummary prints the grid summary.
func RenderSummary(w io.Writer, g *grid.Grid, units Units) error {
	s := Summarize(g, units)
	lines := []string{
		"Summary",
		fmt.Sprintf("Experiments: %d", s.Experiments),
		fmt.Sprintf("Blocks: %d", s.Blocks),
		fmt.Sprintf("Difficulty: %d-%d", s.MinDifficulty, s.MaxDifficulty),
		fmt.Sprintf("Peak hashrate: %.3f %s (difficulty %d, %d blocks)", s.PeakHashrate, units.Unit, s.PeakDiff, s.PeakBlock),
		fmt.Sprintf("Avg time range: %.3f-%.3f ms", s.FastestTime, s.SlowestTime),
		"",
	}
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func formatTable(headers []string, rows [][]string, rightAlignCols map[int]bool) []string {
	colCount := len(headers)
	for _, row := range rows {
		if len(row) > colCount {
			colCount = len(row)
		}
	}
	if colCount == 0 {
		return nil
	}

	widths := make([]int, colCount)
	for i, header := range headers {
		widths[i] = runewidth.StringWidth(header)
	}
	for _, row := range rows {
		for i, cell := range row {
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	lines := make([]string, 0, len(rows)+1)
	if len(headers) > 0 {
		lines = append(lines, formatRow(headers, widths, rightAlignCols))
	}
	for _, row := range rows {
		lines = append(lines, formatRow(row, widths, rightAlignCols))
	}
	return lines
}

func formatRow(row []string, widths []int, rightAlignCols map[int]bool) string {
	cells := make([]string, len(widths))
	for i := range widths {
		cell := ""
		if i < len(row) {
			cell = row[i]
		}
		cells[i] = padCell(cell, widths[i], rightAlignCols[i])
	}
	return strings.Join(cells, "  ")
}

func padCell(value string, width int, rightAlign bool) string {
	if rightAlign {
		return runewidth.FillLeft(value, width)
	}
	return runewidth.FillRight(value, width)
}

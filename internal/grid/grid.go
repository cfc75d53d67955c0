// Package grid reshapes benchmark experiments into a (block × difficulty) grid.
package grid

import (
	"github.com/verte-zerg/hashviz/internal/benchlog"
	"github.com/verte-zerg/hashviz/internal/model"
)

// Grid holds samples in block-major order: row b is block b+1, column d is
// the d-th experiment of the log.
type Grid struct {
	Difficulties []int
	Labels       []string
	Blocks       []int
	cells        [][]model.Sample
}

// Build re-buckets the experiments of a report into a grid.
func Build(r benchlog.Report) (*Grid, error) {
	if err := benchlog.CheckShape(r.Experiments); err != nil {
		return nil, err
	}
	numBlocks := r.NumBlocks()
	numDiffs := len(r.Experiments)

	g := &Grid{
		Difficulties: r.Difficulties(),
		Labels:       r.Labels(),
		Blocks:       make([]int, numBlocks),
		cells:        make([][]model.Sample, numBlocks),
	}
	for b := 0; b < numBlocks; b++ {
		g.Blocks[b] = b + 1
		row := make([]model.Sample, numDiffs)
		for d := 0; d < numDiffs; d++ {
			row[d] = r.Experiments[d].Samples[b]
		}
		g.cells[b] = row
	}
	return g, nil
}

// Rows returns the number of blocks.
func (g *Grid) Rows() int {
	return len(g.cells)
}

// Cols returns the number of difficulties.
func (g *Grid) Cols() int {
	return len(g.Difficulties)
}

// At returns the sample at row (block index) and column (difficulty index).
func (g *Grid) At(row, col int) model.Sample {
	return g.cells[row][col]
}

// HasMinMax reports whether every cell carries min/max timings.
func (g *Grid) HasMinMax() bool {
	if g.Rows() == 0 {
		return false
	}
	for _, row := range g.cells {
		for _, s := range row {
			if !s.HasMinMax {
				return false
			}
		}
	}
	return true
}

// Values returns the metric as a rows × cols matrix. Hashrate is divided by
// scale; other metrics are returned as logged.
func (g *Grid) Values(metric model.Metric, scale float64) [][]float64 {
	out := make([][]float64, g.Rows())
	for b, row := range g.cells {
		vals := make([]float64, len(row))
		for d, s := range row {
			vals[d] = metric.Value(s)
		}
		if metric == model.MetricHashrate {
			vals = ScaleHashrate(vals, scale)
		}
		out[b] = vals
	}
	return out
}

// Flatten returns the metric values in block-major order.
func (g *Grid) Flatten(metric model.Metric, scale float64) []float64 {
	out := make([]float64, 0, g.Rows()*g.Cols())
	for _, row := range g.Values(metric, scale) {
		out = append(out, row...)
	}
	return out
}

// Range returns the smallest and largest metric value.
func (g *Grid) Range(metric model.Metric, scale float64) (float64, float64) {
	values := g.Flatten(metric, scale)
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal := values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// Value extracts one metric from a sample, scaling hashrate.
func Value(metric model.Metric, s model.Sample, scale float64) float64 {
	v := metric.Value(s)
	if metric == model.MetricHashrate {
		return ScaleValue(v, scale)
	}
	return v
}

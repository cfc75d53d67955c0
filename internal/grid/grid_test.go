package grid

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hashviz/internal/benchlog"
	"github.com/verte-zerg/hashviz/internal/model"
)

func makeReport(numDiffs, numBlocks int) benchlog.Report {
	var r benchlog.Report
	for d := 0; d < numDiffs; d++ {
		exp := model.Experiment{
			Label:      strings.Repeat("f", d+4),
			Difficulty: (d + 4) * 4,
		}
		for b := 0; b < numBlocks; b++ {
			exp.Samples = append(exp.Samples, model.Sample{
				AvgTime:       float64(100*d + b),
				AvgHashPerSec: float64((d+1)*1_000_000 + b),
			})
		}
		r.Experiments = append(r.Experiments, exp)
	}
	return r
}

func TestBuildRoundTrip(t *testing.T) {
	for _, shape := range [][2]int{{1, 1}, {2, 1}, {3, 5}, {5, 15}} {
		numDiffs, numBlocks := shape[0], shape[1]
		t.Run(fmt.Sprintf("%dx%d", numBlocks, numDiffs), func(t *testing.T) {
			r := makeReport(numDiffs, numBlocks)
			g, err := Build(r)
			require.NoError(t, err)
			require.Equal(t, numBlocks, g.Rows())
			require.Equal(t, numDiffs, g.Cols())
			for b := 0; b < numBlocks; b++ {
				for d := 0; d < numDiffs; d++ {
					assert.Equal(t, r.Experiments[d].Samples[b], g.At(b, d))
				}
			}
			for b, block := range g.Blocks {
				assert.Equal(t, b+1, block)
			}
		})
	}
}

func TestBuildEveryCellHasOneSource(t *testing.T) {
	r := makeReport(4, 6)
	g, err := Build(r)
	require.NoError(t, err)

	seen := map[float64]int{}
	for _, v := range g.Flatten(model.MetricTime, 1) {
		seen[v]++
	}
	assert.Len(t, seen, 4*6)
	for v, n := range seen {
		assert.Equal(t, 1, n, "value %v", v)
	}
}

func TestBuildShapeMismatch(t *testing.T) {
	r := makeReport(3, 4)
	r.Experiments[2].Samples = r.Experiments[2].Samples[:3]
	_, err := Build(r)
	require.ErrorIs(t, err, benchlog.ErrShapeMismatch)

	r = makeReport(3, 4)
	r.Experiments[1].Samples = append(r.Experiments[1].Samples, model.Sample{})
	_, err = Build(r)
	require.ErrorIs(t, err, benchlog.ErrShapeMismatch)
}

func TestBuildEmpty(t *testing.T) {
	_, err := Build(benchlog.Report{})
	require.ErrorIs(t, err, benchlog.ErrEmptyReport)
}

func TestEndToEndExample(t *testing.T) {
	input := `[{"DIFFICULTY":"f0","BLOCK_EXPERIMENTS":[{"avg_time":10,"avg_hash_per_sec":2000000}]}, {"DIFFICULTY":"ff","BLOCK_EXPERIMENTS":[{"avg_time":8,"avg_hash_per_sec":3000000}]}]`
	r, err := benchlog.Decode(strings.NewReader(input), benchlog.DefaultOptions())
	require.NoError(t, err)
	g, err := Build(r)
	require.NoError(t, err)

	assert.Equal(t, []int{4, 8}, g.Difficulties)
	assert.Equal(t, []int{1}, g.Blocks)
	assert.Equal(t, [][]float64{{2.0, 3.0}}, g.Values(model.MetricHashrate, DefaultScale))
	assert.Equal(t, [][]float64{{10, 8}}, g.Values(model.MetricTime, DefaultScale))
}

func TestRange(t *testing.T) {
	g, err := Build(makeReport(2, 3))
	require.NoError(t, err)
	lo, hi := g.Range(model.MetricTime, 1)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 102.0, hi)

	lo, hi = g.Range(model.MetricHashrate, DefaultScale)
	assert.InDelta(t, 1.0, lo, 1e-12)
	assert.InDelta(t, 2.000002, hi, 1e-12)
}

func TestMesh(t *testing.T) {
	g, err := Build(makeReport(3, 2))
	require.NoError(t, err)
	m := g.Mesh()
	assert.Equal(t, [][]float64{{16, 20, 24}, {16, 20, 24}}, m.X)
	assert.Equal(t, [][]float64{{1, 1, 1}, {2, 2, 2}}, m.Y)

	xs, ys := m.Ravel()
	assert.Equal(t, []float64{16, 20, 24, 16, 20, 24}, xs)
	assert.Equal(t, []float64{1, 1, 1, 2, 2, 2}, ys)
}

func TestHasMinMax(t *testing.T) {
	r := makeReport(2, 2)
	g, err := Build(r)
	require.NoError(t, err)
	assert.False(t, g.HasMinMax())

	for d := range r.Experiments {
		for b := range r.Experiments[d].Samples {
			r.Experiments[d].Samples[b].HasMinMax = true
		}
	}
	g, err = Build(r)
	require.NoError(t, err)
	assert.True(t, g.HasMinMax())
}

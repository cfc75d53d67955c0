package chart

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hashviz/internal/model"
)

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Blocks", "16 (ffff0000)", "20"}
	rows := [][]string{
		{"1", "2.000", "3.5"},
		{"10", "12.125", "4"},
	}
	lines := formatTable(headers, rows, map[int]bool{0: true, 1: true, 2: true})
	require.Len(t, lines, 3)
	assert.Equal(t, "Blocks  16 (ffff0000)   20", lines[0])
	assert.Equal(t, "     1          2.000  3.5", lines[1])
	assert.Equal(t, "    10         12.125    4", lines[2])
}

func TestFormatTableLeftAlign(t *testing.T) {
	lines := formatTable([]string{"a", "bb"}, [][]string{{"ccc", "d"}}, nil)
	require.Len(t, lines, 2)
	assert.Equal(t, "a    bb", lines[0])
	assert.Equal(t, "ccc  d ", lines[1])
}

func TestRenderGridTable(t *testing.T) {
	g := exampleGrid(t)
	var buf bytes.Buffer
	require.NoError(t, RenderGridTable(&buf, g, model.MetricHashrate, DefaultUnits()))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+1+3)
	assert.Equal(t, "Avg. Hashrate (MH/s)", lines[0])
	assert.Contains(t, lines[1], "16 (ffff0000)")
	assert.Contains(t, lines[1], "24 (ffffff00)")
	assert.Equal(t, []string{"1", "2.000", "3.000", "4.000"}, strings.Fields(lines[2]))
	assert.Equal(t, []string{"3", "2.200", "3.200", "4.200"}, strings.Fields(lines[4]))
}

func TestSummarize(t *testing.T) {
	g := exampleGrid(t)
	s := Summarize(g, DefaultUnits())
	assert.Equal(t, 3, s.Experiments)
	assert.Equal(t, 3, s.Blocks)
	assert.Equal(t, 16, s.MinDifficulty)
	assert.Equal(t, 24, s.MaxDifficulty)
	assert.InDelta(t, 4.2, s.PeakHashrate, 1e-12)
	assert.Equal(t, 24, s.PeakDiff)
	assert.Equal(t, 3, s.PeakBlock)
	assert.Equal(t, 5.0, s.FastestTime)
	assert.Equal(t, 30.0, s.SlowestTime)

	var buf bytes.Buffer
	require.NoError(t, RenderSummary(&buf, g, DefaultUnits()))
	assert.Contains(t, buf.String(), "Peak hashrate: 4.200 MH/s (difficulty 24, 3 blocks)")
	assert.Contains(t, buf.String(), "Difficulty: 16-24")
}

package chart

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hashviz/internal/scene"
)

func TestRenderSceneLayout(t *testing.T) {
	g := exampleGrid(t)
	fig := BuildFigure("", g, DefaultUnits(), scene.DefaultCamera())

	for panel := 0; panel < panelCount; panel++ {
		var buf bytes.Buffer
		require.NoError(t, RenderScene(&buf, fig.Panels[panel], fig.Camera, 40, 12, false))
		lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
		require.Len(t, lines, 1+1+12+2, PanelName(panel))
		assert.Equal(t, fig.Panels[panel].Title, lines[0])
		assert.True(t, strings.HasPrefix(lines[1], "min="))
		for _, row := range lines[2:14] {
			assert.Equal(t, 40, utf8.RuneCountInString(row))
		}
		assert.True(t, strings.HasPrefix(lines[14], "Axes: x: Difficulty (n. zeros)"))
		assert.True(t, strings.HasPrefix(lines[15], "Scale: "))
		assert.NotContains(t, buf.String(), "\x1b[")
	}
}

func TestRenderSceneDrawsSomething(t *testing.T) {
	g := exampleGrid(t)
	fig := BuildFigure("", g, DefaultUnits(), scene.DefaultCamera())
	var buf bytes.Buffer
	require.NoError(t, RenderScene(&buf, fig.Panels[PanelHashrateBars], fig.Camera, 60, 20, false))

	dots := 0
	for _, r := range buf.String() {
		if r > 0x2800 && r <= 0x28FF {
			dots++
		}
	}
	assert.Greater(t, dots, 20)
}

func TestRenderSceneForceColor(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	g := exampleGrid(t)
	fig := BuildFigure("", g, DefaultUnits(), scene.DefaultCamera())
	var buf bytes.Buffer
	require.NoError(t, RenderScene(&buf, fig.Panels[PanelTimeSurface], fig.Camera, 40, 12, true))
	assert.Contains(t, buf.String(), colorReset)
}

func TestRenderSceneNoColorEnv(t *testing.T) {
	t.Setenv("NO_COLOR", "1")
	g := exampleGrid(t)
	fig := BuildFigure("", g, DefaultUnits(), scene.DefaultCamera())
	var buf bytes.Buffer
	require.NoError(t, RenderScene(&buf, fig.Panels[PanelTimeSurface], fig.Camera, 40, 12, true))
	assert.NotContains(t, buf.String(), "\x1b[")
}

func TestRenderSceneClampsSize(t *testing.T) {
	g := exampleGrid(t)
	fig := BuildFigure("", g, DefaultUnits(), scene.DefaultCamera())
	var buf bytes.Buffer
	require.NoError(t, RenderScene(&buf, fig.Panels[PanelTimeBars], fig.Camera, 3, 2, false))
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 1+1+minSceneHeight+2)
	assert.Equal(t, minSceneWidth, utf8.RuneCountInString(lines[2]))
}

func TestValueBand(t *testing.T) {
	assert.Equal(t, 0, valueBand(0, 0, 10, 5))
	assert.Equal(t, 4, valueBand(10, 0, 10, 5))
	assert.Equal(t, 2, valueBand(5, 0, 10, 5))
	assert.Equal(t, 2, valueBand(3, 3, 3, 5))
	assert.Equal(t, 0, valueBand(-1, 0, 10, 5))
}

func TestValueBandNearlyFlatRange(t *testing.T) {
	assert.Equal(t, 2, valueBand(5e6, 5e6, 5e6+1e-7, 5))
	assert.Equal(t, 2, valueBand(1, 10, 0, 5))
	assert.Equal(t, 4, valueBand(5e6+1, 5e6, 5e6+1, 5))
}

func TestSceneWidthFor(t *testing.T) {
	assert.Equal(t, 120, SceneWidthFor(120))
	assert.Equal(t, minSceneWidth, SceneWidthFor(0))
	assert.Equal(t, minSceneWidth, SceneWidthFor(5))
}

func TestDrawLineEndpoints(t *testing.T) {
	var pts [][2]int
	drawLine(0, 0, 3, 1, func(x, y int) { pts = append(pts, [2]int{x, y}) })
	require.NotEmpty(t, pts)
	assert.Equal(t, [2]int{0, 0}, pts[0])
	assert.Equal(t, [2]int{3, 1}, pts[len(pts)-1])
}

package chart

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hashviz/internal/scene"
)

func TestFigureFormat(t *testing.T) {
	for path, want := range map[string]string{
		"out/fig.png":   "png",
		"fig.SVG":       "svg",
		"a/b/fig.pdf":   "pdf",
		"report.jpeg":   "jpeg",
		"figure.v2.tif": "tif",
	} {
		got, err := FigureFormat(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got)
	}
	_, err := FigureFormat("figure.bmp")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
	_, err = FigureFormat("figure")
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

func TestExportFigurePNG(t *testing.T) {
	g := exampleGrid(t)
	fig := BuildFigure("bench", g, DefaultUnits(), scene.DefaultCamera())
	path := filepath.Join(t.TempDir(), "nested", "figure.png")

	require.NoError(t, ExportFigure(path, fig, 8, 4.5))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Greater(t, len(data), 8)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG\r\n\x1a\n")))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestExportFigureSVG(t *testing.T) {
	g := exampleGrid(t)
	fig := BuildFigure("", g, DefaultUnits(), scene.Camera{Azimuth: 30, Elevation: 60})
	path := filepath.Join(t.TempDir(), "figure.svg")
	require.NoError(t, ExportFigure(path, fig, 0, 0))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "<svg")
}

func TestExportFigureRejectsFormat(t *testing.T) {
	g := exampleGrid(t)
	fig := BuildFigure("", g, DefaultUnits(), scene.DefaultCamera())
	err := ExportFigure(filepath.Join(t.TempDir(), "figure.gif"), fig, 1, 1)
	require.ErrorIs(t, err, ErrUnsupportedFormat)
}

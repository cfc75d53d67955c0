package chart

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/verte-zerg/hashviz/internal/benchlog"
	"github.com/verte-zerg/hashviz/internal/grid"
)

const exampleLog = `[
  {"DIFFICULTY":"ffff0000","BLOCK_EXPERIMENTS":[
    {"avg_time":10,"avg_hash_per_sec":2000000},
    {"avg_time":20,"avg_hash_per_sec":2100000},
    {"avg_time":30,"avg_hash_per_sec":2200000}]},
  {"DIFFICULTY":"fffff000","BLOCK_EXPERIMENTS":[
    {"avg_time":8,"avg_hash_per_sec":3000000},
    {"avg_time":16,"avg_hash_per_sec":3100000},
    {"avg_time":24,"avg_hash_per_sec":3200000}]},
  {"DIFFICULTY":"ffffff00","BLOCK_EXPERIMENTS":[
    {"avg_time":5,"avg_hash_per_sec":4000000},
    {"avg_time":9,"avg_hash_per_sec":4100000},
    {"avg_time":13,"avg_hash_per_sec":4200000}]}
]`

func exampleGrid(t *testing.T) *grid.Grid {
	t.Helper()
	r, err := benchlog.Decode(strings.NewReader(exampleLog), benchlog.DefaultOptions())
	require.NoError(t, err)
	g, err := grid.Build(r)
	require.NoError(t, err)
	return g
}

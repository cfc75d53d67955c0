package grid

const blockTickStride = 2

// DifficultyTicks returns tick positions at every observed difficulty.
func (g *Grid) DifficultyTicks() []float64 {
	out := make([]float64, len(g.Difficulties))
	for i, d := range g.Difficulties {
		out[i] = float64(d)
	}
	return out
}

// BlockTicks returns every second block index starting at the first block.
func (g *Grid) BlockTicks() []float64 {
	out := make([]float64, 0, (len(g.Blocks)+1)/blockTickStride)
	for i := 0; i < len(g.Blocks); i += blockTickStride {
		out = append(out, float64(g.Blocks[i]))
	}
	return out
}

// DifficultyStride is the gap between the last two difficulties, or 0 when
// there are fewer than two.
func (g *Grid) DifficultyStride() int {
	n := len(g.Difficulties)
	if n < 2 {
		return 0
	}
	return g.Difficulties[n-1] - g.Difficulties[n-2]
}

// BarFootprint returns the bar width along difficulty and depth along blocks.
// Width is the last difficulty stride minus one, falling back to 1 when that
// is not positive.
func (g *Grid) BarFootprint() (width, depth float64) {
	w := g.DifficultyStride() - 1
	if w <= 0 {
		w = 1
	}
	return float64(w), 1
}

package grid

// Mesh holds coordinate matrices over (difficulty, block) with the same
// shape as the grid.
type Mesh struct {
	X [][]float64
	Y [][]float64
}

// Mesh builds X[b][d] = difficulty[d] and Y[b][d] = block b+1.
func (g *Grid) Mesh() Mesh {
	m := Mesh{
		X: make([][]float64, g.Rows()),
		Y: make([][]float64, g.Rows()),
	}
	for b, block := range g.Blocks {
		xs := make([]float64, g.Cols())
		ys := make([]float64, g.Cols())
		for d, diff := range g.Difficulties {
			xs[d] = float64(diff)
			ys[d] = float64(block)
		}
		m.X[b] = xs
		m.Y[b] = ys
	}
	return m
}

// Ravel flattens the mesh into parallel coordinate slices in block-major order.
func (m Mesh) Ravel() ([]float64, []float64) {
	var xs, ys []float64
	for b := range m.X {
		xs = append(xs, m.X[b]...)
		ys = append(ys, m.Y[b]...)
	}
	return xs, ys
}

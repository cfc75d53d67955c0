package grid

const (
	// DefaultScale expresses hashrate in mega-hashes per second.
	DefaultScale = 1e6
	// DefaultUnit is the label matching DefaultScale.
	DefaultUnit = "MH/s"
)

// ScaleValue divides v by factor. A zero factor leaves v unchanged.
func ScaleValue(v, factor float64) float64 {
	if factor == 0 {
		return v
	}
	return v / factor
}

// ScaleHashrate returns values divided by factor.
func ScaleHashrate(values []float64, factor float64) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = ScaleValue(v, factor)
	}
	return out
}

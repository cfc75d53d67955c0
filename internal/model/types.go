// Package model defines shared data structures.
package model

// Sample holds the measurements of one block benchmark run.
type Sample struct {
	Blocks        int
	AvgTime       float64
	AvgHashPerSec float64
	MinTime       float64
	MaxTime       float64
	HasBlocks     bool
	HasMinMax     bool
}

// Experiment is one difficulty level with its block samples in log order.
type Experiment struct {
	Label      string
	Difficulty int
	Samples    []Sample
}

// Metric selects which sample measurement is plotted.
type Metric int

const (
	MetricHashrate Metric = iota
	MetricTime
	MetricMinTime
	MetricMaxTime
)

// String returns the metric display name.
func (m Metric) String() string {
	switch m {
	case MetricHashrate:
		return "Avg. Hashrate"
	case MetricTime:
		return "Avg. Time"
	case MetricMinTime:
		return "Min. Time"
	case MetricMaxTime:
		return "Max. Time"
	default:
		return "Unknown"
	}
}

// Value extracts the metric from a sample. Hashrate is returned unscaled.
func (m Metric) Value(s Sample) float64 {
	switch m {
	case MetricHashrate:
		return s.AvgHashPerSec
	case MetricTime:
		return s.AvgTime
	case MetricMinTime:
		return s.MinTime
	case MetricMaxTime:
		return s.MaxTime
	default:
		return 0
	}
}

// Sources accepted by RenderConfig.Source.
const (
	SourceFlat        = "flat"
	SourceAccelerator = "accelerator"
	SourceCPU         = "cpu"
)

// RenderConfig defines how a benchmark log is loaded and drawn.
type RenderConfig struct {
	LogPath    string  `validate:"required"`
	Source     string  `validate:"omitempty,oneof=flat accelerator cpu"`
	Scale      float64 `validate:"gt=0"`
	Unit       string  `validate:"required"`
	Permissive bool
	Marker     string  `validate:"len=1"`
	Multiplier int     `validate:"gt=0"`
	Azimuth    float64 `validate:"gte=-360,lte=360"`
	Elevation  float64 `validate:"gte=0,lte=90"`
}

// ExportConfig defines figure export settings in inches.
type ExportConfig struct {
	Out    string  `validate:"required"`
	Width  float64 `validate:"gt=0"`
	Height float64 `validate:"gt=0"`
}

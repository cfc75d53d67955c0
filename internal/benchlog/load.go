package benchlog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"github.com/verte-zerg/hashviz/internal/model"
)

// Options controls how a log is decoded.
type Options struct {
	Source     string
	Marker     rune
	Multiplier int
	Permissive bool
}

// DefaultOptions returns flat-source decoding with the 'f' marker.
func DefaultOptions() Options {
	return Options{
		Source:     model.SourceFlat,
		Marker:     DefaultMarker,
		Multiplier: DefaultMultiplier,
	}
}

type rawMetrics struct {
	MinTime       *float64 `json:"min_time"`
	MaxTime       *float64 `json:"max_time"`
	AvgTime       *float64 `json:"avg_time"`
	AvgHashPerSec *float64 `json:"avg_hash_per_sec"`
}

type rawSample struct {
	Blocks *int `json:"Blocks"`
	rawMetrics
	Accelerator *rawMetrics `json:"Accelerator"`
	CPU         *rawMetrics `json:"CPU"`
}

type rawExperiment struct {
	Difficulty *string      `json:"DIFFICULTY"`
	Samples    *[]rawSample `json:"BLOCK_EXPERIMENTS"`
}

// LoadReport reads and validates the benchmark log at path.
func LoadReport(path string, opts Options) (Report, error) {
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Report{}, fmt.Errorf("%w: %s", ErrInputNotFound, path)
		}
		return Report{}, fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			// Best-effort close for read-only log.
			_ = cerr
		}
	}()

	report, err := Decode(file, opts)
	if err != nil {
		return Report{}, fmt.Errorf("%s: %w", path, err)
	}
	report.Path = path
	return report, nil
}

// Decode reads a full benchmark log from r and validates it.
func Decode(r io.Reader, opts Options) (Report, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Report{}, fmt.Errorf("failed to read log: %w", err)
	}
	var raw []rawExperiment
	if err := json.Unmarshal(data, &raw); err != nil {
		return Report{}, fmt.Errorf("%w: %w", ErrParse, err)
	}

	if opts.Marker == 0 {
		opts.Marker = DefaultMarker
	}
	if opts.Multiplier == 0 {
		opts.Multiplier = DefaultMultiplier
	}
	source := normalizeSource(opts.Source)

	experiments := make([]model.Experiment, 0, len(raw))
	for i, re := range raw {
		exp, err := convertExperiment(i, re, source, opts)
		if err != nil {
			return Report{}, err
		}
		experiments = append(experiments, exp)
	}

	if err := CheckShape(experiments); err != nil {
		return Report{}, err
	}
	if !opts.Permissive {
		if err := CheckOrder(experiments); err != nil {
			return Report{}, err
		}
		if err := CheckBlocks(experiments); err != nil {
			return Report{}, err
		}
	}
	return Report{Source: source, Experiments: experiments}, nil
}

func normalizeSource(source string) string {
	source = strings.ToLower(strings.TrimSpace(source))
	if source == "" {
		return model.SourceFlat
	}
	return source
}

func convertExperiment(i int, re rawExperiment, source string, opts Options) (model.Experiment, error) {
	if re.Difficulty == nil {
		return model.Experiment{}, parseErrorf("experiment %d: missing %q", i, "DIFFICULTY")
	}
	if re.Samples == nil {
		return model.Experiment{}, parseErrorf("experiment %d: missing %q", i, "BLOCK_EXPERIMENTS")
	}
	exp := model.Experiment{
		Label:      *re.Difficulty,
		Difficulty: DeriveDifficulty(*re.Difficulty, opts.Marker, opts.Multiplier),
		Samples:    make([]model.Sample, 0, len(*re.Samples)),
	}
	for j, rs := range *re.Samples {
		sample, err := convertSample(rs, source)
		if err != nil {
			return model.Experiment{}, fmt.Errorf("experiment %d sample %d: %w", i, j, err)
		}
		exp.Samples = append(exp.Samples, sample)
	}
	return exp, nil
}

func convertSample(rs rawSample, source string) (model.Sample, error) {
	var metrics *rawMetrics
	switch source {
	case model.SourceFlat:
		metrics = &rs.rawMetrics
	case model.SourceAccelerator:
		metrics = rs.Accelerator
	case model.SourceCPU:
		metrics = rs.CPU
	default:
		return model.Sample{}, parseErrorf("unknown source %q", source)
	}
	if metrics == nil {
		return model.Sample{}, parseErrorf("missing %q object", sourceKey(source))
	}
	if metrics.AvgTime == nil {
		return model.Sample{}, missingMetric(source, rs, "avg_time")
	}
	if metrics.AvgHashPerSec == nil {
		return model.Sample{}, missingMetric(source, rs, "avg_hash_per_sec")
	}
	sample := model.Sample{
		AvgTime:       *metrics.AvgTime,
		AvgHashPerSec: *metrics.AvgHashPerSec,
	}
	if rs.Blocks != nil {
		sample.Blocks = *rs.Blocks
		sample.HasBlocks = true
	}
	if metrics.MinTime != nil && metrics.MaxTime != nil {
		sample.MinTime = *metrics.MinTime
		sample.MaxTime = *metrics.MaxTime
		sample.HasMinMax = true
	}
	return sample, nil
}

func missingMetric(source string, rs rawSample, key string) error {
	if source == model.SourceFlat && (rs.Accelerator != nil || rs.CPU != nil) {
		return parseErrorf("missing %q (nested log, select --source accelerator or cpu)", key)
	}
	return parseErrorf("missing %q", key)
}

func sourceKey(source string) string {
	switch source {
	case model.SourceAccelerator:
		return "Accelerator"
	case model.SourceCPU:
		return "CPU"
	default:
		return source
	}
}

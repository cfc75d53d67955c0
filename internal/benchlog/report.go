// Package benchlog loads hashing benchmark logs.
package benchlog

import (
	"github.com/verte-zerg/hashviz/internal/model"
)

// Report is a validated benchmark log.
type Report struct {
	Path        string
	Source      string
	Experiments []model.Experiment
}

// Difficulties returns the derived difficulties in document order.
func (r Report) Difficulties() []int {
	out := make([]int, len(r.Experiments))
	for i, exp := range r.Experiments {
		out[i] = exp.Difficulty
	}
	return out
}

// Labels returns the raw difficulty labels in document order.
func (r Report) Labels() []string {
	out := make([]string, len(r.Experiments))
	for i, exp := range r.Experiments {
		out[i] = exp.Label
	}
	return out
}

// NumBlocks returns the sample count of the first experiment.
func (r Report) NumBlocks() int {
	if len(r.Experiments) == 0 {
		return 0
	}
	return len(r.Experiments[0].Samples)
}

// CheckShape verifies that every experiment has the same number of samples
// and that there is at least one block to plot.
func CheckShape(experiments []model.Experiment) error {
	if len(experiments) == 0 {
		return ErrEmptyReport
	}
	want := len(experiments[0].Samples)
	if want == 0 {
		return ErrEmptyReport
	}
	for i, exp := range experiments[1:] {
		if got := len(exp.Samples); got != want {
			return &ShapeMismatchError{Index: i + 1, Label: exp.Label, Want: want, Got: got}
		}
	}
	return nil
}

// CheckOrder verifies that derived difficulties strictly increase.
func CheckOrder(experiments []model.Experiment) error {
	for i := 1; i < len(experiments); i++ {
		prev, cur := experiments[i-1], experiments[i]
		if cur.Difficulty <= prev.Difficulty {
			return parseOrderError(i, prev, cur)
		}
	}
	return nil
}

// CheckBlocks verifies that sample j of every experiment, when it records a
// block count, was measured with j+1 blocks.
func CheckBlocks(experiments []model.Experiment) error {
	for i, exp := range experiments {
		for j, s := range exp.Samples {
			if s.HasBlocks && s.Blocks != j+1 {
				return blockOrderError(i, j, exp, s.Blocks)
			}
		}
	}
	return nil
}

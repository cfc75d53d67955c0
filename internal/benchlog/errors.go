package benchlog

import (
	"errors"
	"fmt"

	"github.com/verte-zerg/hashviz/internal/model"
)

var (
	// ErrInputNotFound is returned when the log file does not exist.
	ErrInputNotFound = errors.New("input not found")
	// ErrParse is returned for invalid JSON or missing keys.
	ErrParse = errors.New("parse error")
	// ErrShapeMismatch is returned when experiments disagree on sample count.
	ErrShapeMismatch = errors.New("shape mismatch")
	// ErrEmptyReport is returned when there is nothing to plot.
	ErrEmptyReport = errors.New("empty report")
	// ErrDifficultyOrder is returned in strict mode for non-increasing difficulties.
	ErrDifficultyOrder = errors.New("difficulties not increasing")
	// ErrBlockOrder is returned in strict mode when a sample's "Blocks" field
	// does not match its position.
	ErrBlockOrder = errors.New("block counts out of sequence")
)

// ShapeMismatchError reports the first experiment whose sample count
// differs from the first experiment's.
type ShapeMismatchError struct {
	Index int
	Label string
	Want  int
	Got   int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("shape mismatch: experiment %d (%q) has %d samples, expected %d", e.Index, e.Label, e.Got, e.Want)
}

// Unwrap lets errors.Is match ErrShapeMismatch.
func (e *ShapeMismatchError) Unwrap() error {
	return ErrShapeMismatch
}

func parseErrorf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrParse, fmt.Sprintf(format, args...))
}

func parseOrderError(i int, prev, cur model.Experiment) error {
	return fmt.Errorf("%w: experiment %d (%q) has difficulty %d after %d (%q)", ErrDifficultyOrder, i, cur.Label, cur.Difficulty, prev.Difficulty, prev.Label)
}

func blockOrderError(i, j int, exp model.Experiment, got int) error {
	return fmt.Errorf("%w: experiment %d (%q) sample %d has Blocks %d, expected %d", ErrBlockOrder, i, exp.Label, j, got, j+1)
}

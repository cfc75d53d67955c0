package benchlog

import (
	"strings"
	"unicode"
)

const (
	// DefaultMarker is the character counted in a difficulty label.
	DefaultMarker = 'f'
	// DefaultMultiplier converts marker count to zero bits (one hex digit = 4 bits).
	DefaultMultiplier = 4
)

// DeriveDifficulty counts marker occurrences in label, ignoring case, and
// scales the count by multiplier.
func DeriveDifficulty(label string, marker rune, multiplier int) int {
	lower := unicode.ToLower(marker)
	count := strings.Count(strings.ToLower(label), string(lower))
	return count * multiplier
}

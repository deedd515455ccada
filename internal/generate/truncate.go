package generate

import (
	"fmt"
	"math"
	"unicode/utf8"
)

// Truncate limits s to maxChars characters. Longer input is cut at a rune
// boundary and a marker naming the number of dropped characters is
// appended. Input that already fits is returned unchanged.
func Truncate(s string, maxChars int) string {
	total := utf8.RuneCountInString(s)
	if total <= maxChars {
		return s
	}
	if maxChars < 0 {
		maxChars = 0
	}

	cut := 0
	for i := 0; i < maxChars; i++ {
		_, size := utf8.DecodeRuneInString(s[cut:])
		cut += size
	}
	return s[:cut] + fmt.Sprintf("\n\n[... truncated %d chars ...]", total-maxChars)
}

// Shrink tunes how the character budget reacts to a context overflow.
type Shrink struct {
	// SafetyFactor scales the ratio of context size to prompt tokens.
	SafetyFactor float64
	// MinRatio and MaxRatio clamp the scaled ratio.
	MinRatio float64
	MaxRatio float64
	// Floor is the smallest budget ever produced.
	Floor int
}

// DefaultShrink returns the stock shrink parameters.
func DefaultShrink() Shrink {
	return Shrink{
		SafetyFactor: 0.85,
		MinRatio:     0.20,
		MaxRatio:     0.95,
		Floor:        2000,
	}
}

// Ratio is the fraction of the current budget to keep after the server
// reported promptTokens against a window of contextSize.
func (s Shrink) Ratio(promptTokens, contextSize int) float64 {
	return float64(s.ratioMilli(promptTokens, contextSize)) / 1000
}

// NextMax computes the budget for the next attempt. The result is never
// below the floor and never above currentMax, so a budget that already
// starts under the floor stays where it is.
func (s Shrink) NextMax(currentMax, promptTokens, contextSize int) int {
	next := currentMax * s.ratioMilli(promptTokens, contextSize) / 1000
	return min(max(next, s.Floor), currentMax)
}

// ratioMilli works in thousandths so the budget arithmetic stays exact.
func (s Shrink) ratioMilli(promptTokens, contextSize int) int {
	lo := int(math.Round(s.MinRatio * 1000))
	hi := int(math.Round(s.MaxRatio * 1000))
	if promptTokens <= 0 {
		return lo
	}
	r := int(math.Round(float64(contextSize) / float64(promptTokens) * s.SafetyFactor * 1000))
	return min(max(r, lo), hi)
}

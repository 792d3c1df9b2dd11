package search

import "github.com/fatih/color"

// Color names one of the few visual treatments applied to output text.
// colorTable is built once at startup and indexed by Color, never mutated
// afterward.
type Color int

const (
	Neutral Color = iota
	Red
	Blue
)

var colorTable = [...]*color.Color{
	Neutral: nil,
	Red:     color.New(color.FgRed, color.Bold),
	Blue:    color.New(color.FgBlue, color.Bold),
}

// colorize wraps text in the escape sequence for c, or returns text
// unchanged when c is Neutral or enabled is false.
func colorize(c Color, text string, enabled bool) string {
	if !enabled || c == Neutral {
		return text
	}
	return colorTable[c].Sprint(text)
}

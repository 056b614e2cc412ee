// Package textmeasure is the "language-independent approximation" text
// measurement helper referenced by §4.1 and §6 of the schematic layout
// specification: a monospace character-grid measurement that the Nodes
// Builder and Label Placer use to size labels without depending on an
// actual font-rendering backend (the symbol oracle is the only component
// allowed to depend on real font metrics, and only for symbol pin text).
package textmeasure

// CharWidth and LineHeight describe one monospace cell, in pixels, at the
// engine's default label font size. These mirror the fixed per-character
// advance a monospace font renderer would report; kept as package constants
// so every caller measures labels identically.
const (
	CharWidth  = 7.0
	LineHeight = 14.0
	// Padding is the breathing room added around label bounding boxes before
	// they're used as obstacle keep-out rectangles (§3 invariant 5).
	Padding = 4.0
)

// Size is the measured bounding box of a piece of text.
type Size struct {
	Width, Height float64
}

// Measure returns the bounding box of text rendered as a single line of
// monospace glyphs. Multi-line text (rare: reference-designator/value
// labels are always single line in this design) is measured line by line.
func Measure(text string) Size {
	if text == "" {
		return Size{}
	}
	lines := splitLines(text)
	maxWidth := 0
	for _, l := range lines {
		if n := runeLen(l); n > maxWidth {
			maxWidth = n
		}
	}
	return Size{
		Width:  float64(maxWidth) * CharWidth,
		Height: float64(len(lines)) * LineHeight,
	}
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	lines = append(lines, s[start:])
	return lines
}

func runeLen(s string) int {
	n := 0
	for range s {
		n++
	}
	return n
}

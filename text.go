package snapshot

import (
	"sort"
	"strings"
	"unicode"

	"github.com/go-text/typesetting/segmenter"
)

// TextLine is text packed into one line rectangle.
type TextLine struct {
	Text string
	Rect Rect
}

// PackLines distributes content over the line rectangles a layout produced
// for it. Words are taken at Unicode line-break opportunities and added to
// a line while the accumulated width plus the next word fits the line
// rectangle. Each accepted word advances the width by its own width, plus
// a space when it ends in white space. Text that does not fit the last
// rectangle is dropped.
//
// A word wider than an empty line is placed on it alone, cut to the runes
// that fit, so packing always advances and no line overflows its
// rectangle. PackLines does not modify its inputs and returns the same
// result for the same arguments.
func PackLines(content string, lines []Rect, measure func(string) float64) []TextLine {
	words := lineWords(content)
	if len(words) == 0 || len(lines) == 0 {
		return nil
	}
	space := measure(" ")
	packed := make([]TextLine, 0, len(lines))
	for _, line := range lines {
		if len(words) == 0 {
			break
		}
		var (
			width float64
			n     int
		)
		overlong := false
		for _, w := range words {
			trimmed := strings.TrimRightFunc(w, unicode.IsSpace)
			ww := measure(trimmed)
			if width+ww > line.Width {
				if n == 0 {
					n, overlong = 1, true
				}
				break
			}
			width += ww
			if trimmed != w {
				width += space
			}
			n++
		}
		text := strings.TrimRightFunc(strings.Join(words[:n], ""), unicode.IsSpace)
		words = words[n:]
		if overlong {
			text = clipText(text, line.Width, measure)
			if text == "" {
				continue
			}
		}
		packed = append(packed, TextLine{Text: text, Rect: line})
	}
	return packed
}

// clipText returns the longest rune prefix of s that fits width.
func clipText(s string, width float64, measure func(string) float64) string {
	runes := []rune(s)
	k := sort.Search(len(runes)+1, func(i int) bool {
		return measure(string(runes[:i])) > width
	}) - 1
	if k <= 0 {
		return ""
	}
	return strings.TrimRightFunc(string(runes[:k]), unicode.IsSpace)
}

// lineWords splits collapsed content into the units between line-break
// opportunities. Each unit keeps its trailing white space so that joining
// units restores the text.
func lineWords(content string) []string {
	collapsed := strings.Join(strings.Fields(content), " ")
	if collapsed == "" {
		return nil
	}
	var seg segmenter.Segmenter
	seg.InitWithString(collapsed)
	it := seg.LineIterator()
	var words []string
	for it.Next() {
		words = append(words, string(it.Line().Text))
	}
	return words
}

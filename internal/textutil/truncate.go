package textutil

import (
	"strings"
	"unicode"
)

// Truncate shortens text to at most max characters, cutting at a whitespace
// boundary so the result never ends mid-word. max counts characters (runes),
// so cuts always land on valid character boundaries.
//
// When the character at max is not whitespace, the nearest whitespace before
// and after max are compared and the closer one wins; ties prefer the earlier
// cut. Text with no whitespace on either side is cut hard at max.
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	if unicode.IsSpace(runes[max]) {
		return trimCut(runes[:max])
	}

	before := -1
	for i := max - 1; i >= 0; i-- {
		if unicode.IsSpace(runes[i]) {
			before = i
			break
		}
	}
	after := -1
	for i := max + 1; i < len(runes); i++ {
		if unicode.IsSpace(runes[i]) {
			after = i
			break
		}
	}

	switch {
	case before < 0 && after < 0:
		return string(runes[:max])
	case before < 0:
		return trimCut(runes[:after])
	case after < 0:
		return trimCut(runes[:before])
	case max-before <= after-max:
		return trimCut(runes[:before])
	default:
		return trimCut(runes[:after])
	}
}

// trimCut drops trailing whitespace left behind when the cut point sits at
// the end of a whitespace run.
func trimCut(runes []rune) string {
	return strings.TrimRightFunc(string(runes), unicode.IsSpace)
}

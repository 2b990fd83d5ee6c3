package render

import (
	"strings"

	"golang.org/x/image/font"
)

// Line is one laid-out row of wrapped verse text.
type Line struct {
	Text  string
	X     int // horizontal offset that centers the line in the target width
	Width int
}

// LayoutVerse wraps text so that no line exceeds maxWidth when measured
// in face. Breaks happen after punctuation and spaces first; a single
// segment wider than the target is hard-broken per rune. Each line is
// centered with X = (maxWidth - width) / 2. An empty string yields no
// lines, and the result is deterministic for identical inputs.
func LayoutVerse(face font.Face, text string, maxWidth int) []Line {
	var lines []Line
	flush := func(s string) {
		s = strings.TrimRight(s, " ")
		if s == "" {
			return
		}
		w := measure(face, s)
		lines = append(lines, Line{Text: s, X: (maxWidth - w) / 2, Width: w})
	}

	cur := ""
	for _, seg := range splitSegments(text) {
		if measure(face, cur+seg) <= maxWidth {
			cur += seg
			continue
		}
		flush(cur)
		cur = ""
		if measure(face, seg) <= maxWidth {
			cur = seg
			continue
		}
		chunks := hardBreak(face, seg, maxWidth)
		for _, c := range chunks[:len(chunks)-1] {
			flush(c)
		}
		cur = chunks[len(chunks)-1]
	}
	flush(cur)
	return lines
}

// LineHeight is the vertical advance between stacked lines for face,
// derived from its ascent and descent.
func LineHeight(face font.Face) int {
	m := face.Metrics()
	return (m.Ascent + m.Descent).Ceil()
}

func measure(face font.Face, s string) int {
	return font.MeasureString(face, s).Ceil()
}

// splitSegments cuts text into wrap units, keeping each break rune
// attached to the segment it ends.
func splitSegments(text string) []string {
	var segs []string
	var cur []rune
	for _, r := range text {
		cur = append(cur, r)
		if breaksAfter(r) {
			segs = append(segs, string(cur))
			cur = nil
		}
	}
	if len(cur) > 0 {
		segs = append(segs, string(cur))
	}
	return segs
}

func breaksAfter(r rune) bool {
	switch r {
	case ' ', ',', '.', '!', '?', ';', ':',
		'，', '。', '！', '？', '、', '；', '：':
		return true
	}
	return false
}

// hardBreak splits a single over-wide segment into rune runs that fit
// maxWidth. A lone rune wider than the target stays on its own line.
func hardBreak(face font.Face, seg string, maxWidth int) []string {
	var chunks []string
	cur := ""
	for _, r := range seg {
		next := cur + string(r)
		if cur != "" && measure(face, next) > maxWidth {
			chunks = append(chunks, cur)
			cur = string(r)
			continue
		}
		cur = next
	}
	return append(chunks, cur)
}

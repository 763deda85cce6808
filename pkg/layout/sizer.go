package layout

import (
	"strings"
	"unicode/utf8"

	"github.com/matzehuels/boxroute/pkg/spec"
)

// padding is the border plus one blank column on each side of the text.
const padding = 4

// SizeBlock returns the unpositioned display box for b.
//
// Text that fits in c.MinLimitedWidth stays on one line. Longer text is word
// wrapped greedily so that no content line is wider than
// c.MinLimitedWidth-4; single words longer than that are split. Boxes only
// grow downward.
func SizeBlock(b spec.BlockSpec, c BlockConstraint) BlockDisplay {
	d := BlockDisplay{Name: b.Name, Color: b.Color}

	if n := utf8.RuneCountInString(b.Text); n+padding <= c.MinLimitedWidth {
		d.Lines = []string{b.Text}
		d.Size = Size{Width: n + padding, Height: 3}
		return d
	}

	d.Lines = wrap(b.Text, c.MinLimitedWidth)
	widest := 0
	for _, l := range d.Lines {
		widest = max(widest, utf8.RuneCountInString(l))
	}
	d.Size = Size{Width: widest + padding, Height: len(d.Lines) + 2}
	return d
}

// SizeBlocks sizes every spec in order.
func SizeBlocks(specs []spec.BlockSpec, c BlockConstraint) []BlockDisplay {
	out := make([]BlockDisplay, len(specs))
	for i, s := range specs {
		out[i] = SizeBlock(s, c)
	}
	return out
}

func wrap(text string, limit int) []string {
	maxLine := max(limit-padding, 1)

	var lines []string
	var line strings.Builder
	lineLen := 0
	flush := func() {
		if lineLen == 0 {
			return
		}
		lines = append(lines, line.String())
		line.Reset()
		lineLen = 0
	}

	for _, word := range strings.Fields(text) {
		runes := []rune(word)
		for len(runes) > maxLine {
			flush()
			lines = append(lines, string(runes[:maxLine]))
			runes = runes[maxLine:]
		}
		if len(runes) == 0 {
			continue
		}
		if lineLen > 0 && lineLen+len(runes)+padding+1 > limit {
			flush()
		}
		if lineLen > 0 {
			line.WriteByte(' ')
			lineLen++
		}
		line.WriteString(string(runes))
		lineLen += len(runes)
	}
	flush()

	if len(lines) == 0 {
		lines = []string{""}
	}
	return lines
}

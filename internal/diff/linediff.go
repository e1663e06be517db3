package diff

import (
	"fmt"
	"strings"
)

// DefaultContext is the context window used by Unified when callers
// pass a negative value.
const DefaultContext = 3

// Unified renders a conventional unified diff of two texts with
// ---/+++/@@ framing and the given number of context lines. An empty
// string means the texts have identical lines.
func Unified(oldText, newText, oldLabel, newLabel string, context int) string {
	if context < 0 {
		context = DefaultContext
	}
	m := newMatcher(splitLines(oldText), splitLines(newText))

	var b strings.Builder
	started := false
	for _, group := range m.groupedOpCodes(context) {
		if !started {
			fmt.Fprintf(&b, "--- %s\n+++ %s\n", oldLabel, newLabel)
			started = true
		}
		first, last := group[0], group[len(group)-1]
		fmt.Fprintf(&b, "@@ -%s +%s @@\n",
			formatRange(first.I1, last.I2),
			formatRange(first.J1, last.J2))
		for _, c := range group {
			if c.Tag == 'e' {
				for _, line := range m.a[c.I1:c.I2] {
					b.WriteString(" " + line + "\n")
				}
				continue
			}
			if c.Tag == 'r' || c.Tag == 'd' {
				for _, line := range m.a[c.I1:c.I2] {
					b.WriteString("-" + line + "\n")
				}
			}
			if c.Tag == 'r' || c.Tag == 'i' {
				for _, line := range m.b[c.J1:c.J2] {
					b.WriteString("+" + line + "\n")
				}
			}
		}
	}
	return b.String()
}

// formatRange renders one side of a hunk header: 1-based start with the
// length omitted when it is exactly one line.
func formatRange(start, stop int) string {
	beginning := start + 1
	length := stop - start
	if length == 1 {
		return fmt.Sprintf("%d", beginning)
	}
	if length == 0 {
		beginning--
	}
	return fmt.Sprintf("%d,%d", beginning, length)
}

// Row is one line of side-by-side output. Marker is ' ' for equal
// lines, '|' for replaced ones, '<' for old-only and '>' for new-only.
type Row struct {
	Marker byte
	Old    string
	New    string
}

// SideBySide pairs the lines of two texts column by column. Each line
// is truncated to half the given total width. Replaced runs of unequal
// length are padded with empty strings.
func SideBySide(oldText, newText string, width int) []Row {
	oldLines := splitLines(oldText)
	newLines := splitLines(newText)
	half := (width - 3) / 2

	var rows []Row
	for _, c := range newMatcher(oldLines, newLines).opcodes() {
		switch c.Tag {
		case 'e':
			for i := c.I1; i < c.I2; i++ {
				rows = append(rows, Row{' ', truncate(oldLines[i], half), truncate(newLines[c.J1+(i-c.I1)], half)})
			}
		case 'r':
			n := maxInt(c.I2-c.I1, c.J2-c.J1)
			for k := 0; k < n; k++ {
				var oldLine, newLine string
				if c.I1+k < c.I2 {
					oldLine = truncate(oldLines[c.I1+k], half)
				}
				if c.J1+k < c.J2 {
					newLine = truncate(newLines[c.J1+k], half)
				}
				rows = append(rows, Row{'|', oldLine, newLine})
			}
		case 'd':
			for i := c.I1; i < c.I2; i++ {
				rows = append(rows, Row{'<', truncate(oldLines[i], half), ""})
			}
		case 'i':
			for j := c.J1; j < c.J2; j++ {
				rows = append(rows, Row{'>', "", truncate(newLines[j], half)})
			}
		}
	}
	return rows
}

// splitLines splits text into lines without terminators. A trailing
// newline does not produce a final empty line.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}

func truncate(s string, n int) string {
	if n < 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

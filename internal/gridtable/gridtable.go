// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gridtable rewrites Pandoc-style notations that a CommonMark/GFM
// parser does not understand into forms it does. Grid tables become pipe
// tables, a standalone \newpage becomes a page-break div, a standalone
// backslash becomes a blank line, and fenced-div marker lines are dropped
// while their content is kept.
//
// A grid table looks like:
//
//	+-----+--------+
//	| No. | Module |
//	+=====+========+
//	| 1   | POS    |
//	+-----+--------+
//
// and is rewritten to:
//
//	| No. | Module |
//	| --- | --- |
//	| 1 | POS |
package gridtable

import (
	"strings"

	"golang.org/x/text/width"
)

// PageBreak is the raw HTML line that stands for an explicit page break.
const PageBreak = `<div style="page-break-after: always;"></div>`

// Preprocess rewrites input line by line. It never fails: anything that does
// not form a complete grid table is passed through verbatim. The output ends
// with a newline only when the input does.
func Preprocess(input string) string {
	lines := splitLines(input)
	var out strings.Builder
	out.Grow(len(input))

	for i := 0; i < len(lines); {
		trimmed := strings.TrimSpace(lines[i])

		switch {
		case trimmed == `\newpage`:
			// The break is an HTML block, which runs until a blank line.
			out.WriteString(PageBreak)
			out.WriteByte('\n')
			if i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
				out.WriteByte('\n')
			}
			i++
			continue
		case trimmed == `\`:
			out.WriteByte('\n')
			i++
			continue
		case strings.HasPrefix(trimmed, ":::"):
			// Opening markers carry attributes; both kinds are dropped.
			i++
			continue
		}

		if !isBorder(trimmed) {
			out.WriteString(lines[i])
			out.WriteByte('\n')
			i++
			continue
		}

		block := []string{lines[i]}
		for i++; i < len(lines); i++ {
			t := strings.TrimSpace(lines[i])
			if !isBorder(t) && !isDataLine(t) {
				break
			}
			block = append(block, lines[i])
		}

		if len(block) >= 3 && isBorder(strings.TrimSpace(block[len(block)-1])) {
			pipe := toPipeTable(block)
			out.WriteString(pipe)
			if !strings.HasSuffix(pipe, "\n") {
				out.WriteByte('\n')
			}
			continue
		}
		for _, l := range block {
			out.WriteString(l)
			out.WriteByte('\n')
		}
	}

	s := out.String()
	if !strings.HasSuffix(input, "\n") {
		s = strings.TrimSuffix(s, "\n")
	}
	return s
}

// splitLines splits on '\n', drops a trailing '\r' from each line and does
// not yield an empty final line for newline-terminated input.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(strings.TrimSuffix(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// isBorder reports whether a trimmed line is a grid border such as
// "+---+---+" or "+===+===+".
func isBorder(line string) bool {
	if len(line) < 3 || line[0] != '+' || line[len(line)-1] != '+' {
		return false
	}
	for _, r := range line {
		if r != '+' && r != '-' && r != '=' {
			return false
		}
	}
	return true
}

func isDataLine(line string) bool {
	t := strings.TrimSpace(line)
	return strings.HasPrefix(t, "|") && strings.HasSuffix(t, "|")
}

func isHeaderSeparator(line string) bool {
	t := strings.TrimSpace(line)
	return isBorder(t) && strings.Contains(t, "=")
}

// boundaries returns the display columns of every '+' in a border line.
func boundaries(border string) []int {
	var cols []int
	for i, r := range border {
		// Borders are ASCII, so byte offsets equal display columns.
		if r == '+' {
			cols = append(cols, i)
		}
	}
	return cols
}

// gridRow accumulates one logical row, which may span several data lines.
type gridRow []string

func (row gridRow) hasContent() bool {
	for _, c := range row {
		if c != "" {
			return true
		}
	}
	return false
}

func (row gridRow) addLine(line string, bounds []int) {
	cl := newColumnLine(line)
	for col := range row {
		if col+1 >= len(bounds) {
			break
		}
		content := cl.cell(bounds[col], bounds[col+1])
		if content == "" {
			continue
		}
		if row[col] != "" {
			row[col] += " "
		}
		row[col] += content
	}
}

// toPipeTable converts the collected lines of one grid table. The first line
// is a border and so is the last.
func toPipeTable(block []string) string {
	bounds := boundaries(strings.TrimSpace(block[0]))
	if len(bounds) < 2 {
		return strings.Join(block, "\n")
	}
	numCols := len(bounds) - 1

	inHeader := false
	for _, l := range block {
		if isHeaderSeparator(l) {
			inHeader = true
			break
		}
	}

	var header, body []gridRow
	current := make(gridRow, numCols)
	pastFirst := false

	for _, l := range block {
		t := strings.TrimSpace(l)
		switch {
		case isBorder(t):
			if pastFirst {
				if current.hasContent() {
					if inHeader {
						header = append(header, current)
					} else {
						body = append(body, current)
					}
				}
				current = make(gridRow, numCols)
				if isHeaderSeparator(t) {
					inHeader = false
				}
			}
			pastFirst = true
		case isDataLine(t):
			current.addLine(t, bounds)
		}
	}

	// Pipe tables carry a single header row; extra header rows are dropped.
	switch {
	case len(header) > 0:
	case len(body) > 0:
		header, body = body[:1], body[1:]
	default:
		return strings.Join(block, "\n")
	}

	var b strings.Builder
	writeRow(&b, header[0])
	sep := make(gridRow, numCols)
	for i := range sep {
		sep[i] = "---"
	}
	writeRow(&b, sep)
	for _, row := range body {
		writeRow(&b, row)
	}
	return b.String()
}

func writeRow(b *strings.Builder, row gridRow) {
	b.WriteString("| ")
	b.WriteString(strings.Join(row, " | "))
	b.WriteString(" |\n")
}

// columnLine maps display columns of a line to byte offsets so that cells
// holding wide (East Asian) characters line up with an ASCII border.
type columnLine struct {
	text    string
	offsets []int // offsets[c] is the byte offset of the rune at column c or later
	width   int
}

func newColumnLine(s string) columnLine {
	cl := columnLine{text: s}
	for i, r := range s {
		w := runeWidth(r)
		for k := 0; k < w; k++ {
			cl.offsets = append(cl.offsets, i)
		}
		cl.width += w
	}
	cl.offsets = append(cl.offsets, len(s))
	return cl
}

// cell returns the trimmed text strictly between columns start and end.
func (cl columnLine) cell(start, end int) string {
	if start+1 >= end || end > cl.width {
		return ""
	}
	from := cl.offsets[start+1]
	to := cl.offsets[end]
	if from >= to {
		return ""
	}
	return strings.TrimSpace(cl.text[from:to])
}

func runeWidth(r rune) int {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return 2
	}
	return 1
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	"strings"

	word "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/pdiddy/mdconv/pkg/ast"
)

const (
	listIndent   = 720
	lineSpacing  = 276
	cellBorderSz = 6
	headerText   = "FFFFFF"
	plainFill    = "FFFFFF"
	noFill       = "auto"
)

// spacing sets paragraph spacing in twips. A positive line adds automatic
// line spacing in 240ths of a line.
func spacing(p *word.Paragraph, before, after uint64, line int) {
	p.Spacing(before, after)
	if line > 0 {
		sp := p.GetCT().Property.Spacing
		sp.Line = ptr(line)
		sp.LineRule = ptr(stypes.LineSpacingRuleAuto)
	}
}

func indent(p *word.Paragraph) {
	p.Indent(&ctypes.Indent{Left: ptr(listIndent)})
}

func (w *writer) block(b ast.Block) {
	switch b := b.(type) {
	case *ast.Para:
		w.body(b.Inlines)
	case *ast.Plain:
		w.body(b.Inlines)

	case *ast.Heading:
		var before uint64 = 240
		if b.Level <= 2 {
			before = 360
		}
		p := w.paragraph(b.Inlines, style{size: HeadingSize(b.Level, w.base), bold: true})
		spacing(p, before, 120, 0)

	case *ast.CodeBlock:
		for _, line := range codeLines(b.Text) {
			style{}.add(w.out.AddEmptyParagraph(), line, w.opts.CodeFont)
		}

	case *ast.BlockQuote:
		for _, inner := range b.Blocks {
			w.quoted(inner)
		}

	case *ast.BulletList:
		for _, item := range b.Items {
			w.listItem("• " + ast.BlocksText(item))
		}

	case *ast.OrderedList:
		for i, item := range b.Items {
			w.listItem(b.ListAttrs.Marker(i) + " " + ast.BlocksText(item))
		}

	case *ast.Table:
		w.table(b)

	case *ast.HorizontalRule:
		style{size: w.base}.add(w.out.AddEmptyParagraph(), strings.Repeat("—", 40), w.opts.BodyFont)

	case *ast.PageBreak:
		w.out.AddPageBreak()

	case *ast.LineBlock:
		for _, line := range b.Lines {
			w.paragraph(line, style{size: w.base})
		}

	case *ast.RawBlock:
		// Raw markup has no Word equivalent.

	case *ast.Figure:
		for _, inner := range b.Blocks {
			w.block(inner)
		}
	case *ast.Div:
		for _, inner := range b.Blocks {
			w.block(inner)
		}

	case *ast.DefinitionList:
		for _, item := range b.Items {
			w.paragraph(item.Term, style{size: w.base, bold: true})
			for _, def := range item.Definitions {
				for _, inner := range def {
					w.quoted(inner)
				}
			}
		}
	}
}

// body writes a body-text paragraph.
func (w *writer) body(inlines []ast.Inline) {
	p := w.paragraph(inlines, style{size: w.base})
	spacing(p, 0, 120, lineSpacing)
}

// quoted writes a block inside a block quote or definition. Paragraphs are
// indented; anything else renders as at top level.
func (w *writer) quoted(b ast.Block) {
	var inlines []ast.Inline
	switch b := b.(type) {
	case *ast.Para:
		inlines = b.Inlines
	case *ast.Plain:
		inlines = b.Inlines
	default:
		w.block(b)
		return
	}
	p := w.paragraph(inlines, style{size: w.base})
	spacing(p, 0, 80, lineSpacing)
	indent(p)
}

func (w *writer) listItem(text string) {
	p := w.out.AddEmptyParagraph()
	spacing(p, 0, 60, lineSpacing)
	indent(p)
	style{size: w.base}.add(p, text, w.opts.BodyFont)
}

// codeLines splits code into lines, dropping one trailing newline and any
// carriage returns before a newline. Empty code yields one empty line.
func codeLines(code string) []string {
	if code == "" {
		return []string{""}
	}
	lines := strings.Split(code, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}

// rowKind selects the fill and text style of a table row.
type rowKind int

const (
	headerRow rowKind = iota
	bodyRow
	footerRow
)

// table writes a fixed-width table with equal columns followed by a spacer
// paragraph. Header rows are filled and bold, body rows alternate fills
// starting over in each body, and footer rows are unfilled.
func (w *writer) table(t *ast.Table) {
	numCols := max(len(t.ColSpecs), 1)
	colWidth := w.opts.TableWidth / numCols
	grid := make([]uint64, numCols)
	for i := range grid {
		grid[i] = uint64(colWidth)
	}

	tbl := w.out.AddTable()
	tbl.Width(w.opts.TableWidth, stypes.TableWidthDxa).Grid(grid...)

	rows := 0
	for _, row := range t.Head.Rows {
		w.tableRow(tbl, row, colWidth, w.opts.HeaderFill, headerRow)
		rows++
	}
	for _, body := range t.Bodies {
		for i, row := range body.Rows() {
			fill := plainFill
			if i%2 == 1 {
				fill = w.opts.StripeFill
			}
			w.tableRow(tbl, row, colWidth, fill, bodyRow)
			rows++
		}
	}
	for _, row := range t.Foot.Rows {
		w.tableRow(tbl, row, colWidth, noFill, footerRow)
		rows++
	}
	if rows == 0 {
		tbl.AddRow().AddCell().AddEmptyPara()
	}

	w.out.AddEmptyParagraph().Spacing(0, 120)
}

func (w *writer) tableRow(tbl *word.Table, row ast.Row, colWidth int, fill string, kind rowKind) {
	border := ctypes.NewCellBorder(stypes.BorderStyleSingle, w.opts.BorderColor, "0", cellBorderSz)
	s := style{size: w.base}
	if kind == headerRow {
		s.bold = true
		s.color = headerText
	}

	tr := tbl.AddRow()
	for _, c := range row.Cells {
		_, span := c.Spans()
		cell := tr.AddCell().
			Width(colWidth*span, stypes.TableWidthDxa).
			BackgroundColor(fill).
			Borders(border, border, border, border, border, border, nil, nil)
		if span > 1 {
			cell.ColSpan(span)
		}
		s.add(cell.AddEmptyPara(), ast.BlocksText(c.Blocks), w.opts.BodyFont)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"strings"

	"github.com/pdiddy/mdconv/pkg/ast"
)

type rgb struct{ r, g, b int }

var (
	black       = rgb{0, 0, 0}
	white       = rgb{255, 255, 255}
	headerFill  = rgb{31, 78, 121}
	stripeFill  = rgb{237, 242, 247}
	codeFill    = rgb{245, 245, 245}
	borderColor = rgb{51, 51, 51}
	ruleColor   = rgb{204, 204, 204}
)

func (w *writer) block(b ast.Block) {
	switch b := b.(type) {
	case *ast.Para:
		w.paragraph(b.Inlines, w.base(), 0)
		w.pdf.Ln(2)
	case *ast.Plain:
		w.paragraph(b.Inlines, w.base(), 0)
		w.pdf.Ln(2)

	case *ast.Heading:
		size, ok := headingSizes[b.Level]
		if !ok {
			size = headingSizes[6]
		}
		w.pdf.Ln(3)
		st := w.base()
		st.size = size
		st.bold = true
		w.paragraph(b.Inlines, st, 0)
		w.pdf.Ln(2)

	case *ast.CodeBlock:
		w.pdf.Ln(1)
		w.pdf.SetFont(codeFont, "", codeSize)
		w.pdf.SetFillColor(codeFill.r, codeFill.g, codeFill.b)
		for _, line := range strings.Split(strings.TrimSuffix(b.Text, "\n"), "\n") {
			w.pdf.MultiCell(0, 4.5, w.tr(strings.TrimSuffix(line, "\r")), "", "L", true)
		}
		w.pdf.Ln(2)

	case *ast.BlockQuote:
		for _, inner := range b.Blocks {
			w.quoted(inner)
		}

	case *ast.BulletList:
		for _, item := range b.Items {
			w.listItem("• " + ast.BlocksText(item))
		}
		w.pdf.Ln(1)

	case *ast.OrderedList:
		for i, item := range b.Items {
			w.listItem(b.ListAttrs.Marker(i) + " " + ast.BlocksText(item))
		}
		w.pdf.Ln(1)

	case *ast.Table:
		w.table(b)

	case *ast.HorizontalRule:
		left, _, right, _ := w.pdf.GetMargins()
		pageW, _ := w.pdf.GetPageSize()
		w.pdf.Ln(2)
		y := w.pdf.GetY()
		w.pdf.SetDrawColor(ruleColor.r, ruleColor.g, ruleColor.b)
		w.pdf.Line(left, y, pageW-right, y)
		w.pdf.Ln(4)

	case *ast.PageBreak:
		w.pdf.AddPage()

	case *ast.LineBlock:
		for _, line := range b.Lines {
			w.paragraph(line, w.base(), 0)
		}
		w.pdf.Ln(2)

	case *ast.RawBlock:

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
			st := w.base()
			st.bold = true
			w.paragraph(item.Term, st, 0)
			for _, def := range item.Definitions {
				for _, inner := range def {
					w.quoted(inner)
				}
			}
		}
	}
}

// paragraph flows inlines from the left margin plus indent and ends the
// line.
func (w *writer) paragraph(inlines []ast.Inline, st fontState, indent float64) {
	left, _, _, _ := w.pdf.GetMargins()
	if indent > 0 {
		w.pdf.SetLeftMargin(left + indent)
		defer w.pdf.SetLeftMargin(left)
	}
	w.pdf.SetX(left + indent)
	h := lineHeight(st.size)
	w.flow(inlines, st, h)
	w.pdf.Ln(h)
}

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
	w.paragraph(inlines, w.base(), indentMM)
	w.pdf.Ln(1.5)
}

func (w *writer) listItem(text string) {
	left, _, _, _ := w.pdf.GetMargins()
	w.pdf.SetFont(w.font, "", w.size)
	w.pdf.SetX(left + indentMM)
	w.pdf.MultiCell(0, lineHeight(w.size), w.tr(text), "", "L", false)
	w.pdf.Ln(1)
}

// table draws one line per row with equal column widths. Text that does not
// fit its cell is cut with an ellipsis.
func (w *writer) table(t *ast.Table) {
	left, _, right, _ := w.pdf.GetMargins()
	pageW, _ := w.pdf.GetPageSize()
	numCols := max(len(t.ColSpecs), 1)
	colW := (pageW - left - right) / float64(numCols)
	h := lineHeight(w.size) + 2

	w.pdf.SetDrawColor(borderColor.r, borderColor.g, borderColor.b)
	row := func(r ast.Row, style string, fill *rgb, text rgb) {
		w.pdf.SetFont(w.font, style, w.size)
		w.pdf.SetTextColor(text.r, text.g, text.b)
		if fill != nil {
			w.pdf.SetFillColor(fill.r, fill.g, fill.b)
		}
		col := 0
		for _, c := range r.Cells {
			_, span := c.Spans()
			cw := colW * float64(span)
			label := w.fit(w.tr(ast.BlocksText(c.Blocks)), cw-2)
			w.pdf.CellFormat(cw, h, label, "1", 0, cellAlign(c, t.ColSpecs, col), fill != nil, 0, "")
			col += span
		}
		w.pdf.Ln(h)
	}

	drawn := false
	for _, r := range t.Head.Rows {
		row(r, "B", &headerFill, white)
		drawn = true
	}
	for _, body := range t.Bodies {
		for i, r := range body.Rows() {
			fill := &white
			if i%2 == 1 {
				fill = &stripeFill
			}
			row(r, "", fill, black)
			drawn = true
		}
	}
	for _, r := range t.Foot.Rows {
		row(r, "", nil, black)
		drawn = true
	}
	if !drawn {
		row(ast.Row{Cells: []ast.Cell{ast.NewCell()}}, "", nil, black)
	}
	w.pdf.SetTextColor(black.r, black.g, black.b)
	w.pdf.Ln(3)
}

// cellAlign returns the gofpdf alignment for a cell, falling back to the
// column's alignment.
func cellAlign(c ast.Cell, specs []ast.ColSpec, col int) string {
	align := c.Align
	if align == ast.AlignDefault && col < len(specs) {
		align = specs[col].Align
	}
	switch align {
	case ast.AlignCenter:
		return "CM"
	case ast.AlignRight:
		return "RM"
	default:
		return "LM"
	}
}

// fit shortens text until it is no wider than width in the current font.
func (w *writer) fit(text string, width float64) string {
	if w.pdf.GetStringWidth(text) <= width {
		return text
	}
	for len(text) > 0 && w.pdf.GetStringWidth(text+"...") > width {
		text = text[:len(text)-1]
	}
	return text + "..."
}

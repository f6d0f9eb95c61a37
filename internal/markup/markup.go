// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package markup renders an ast.Document as a self-contained HTML page with
// an embedded style sheet. Rendering is pure: the same document and options
// always produce the same bytes.
package markup

import (
	"fmt"
	"strconv"

	"golang.org/x/net/html/atom"

	"github.com/pdiddy/mdconv/internal/gridtable"
	"github.com/pdiddy/mdconv/pkg/ast"
	"github.com/pdiddy/mdconv/pkg/types"
)

// Options controls the style sheet. Zero fields take their defaults.
type Options struct {
	DefaultFontSize string
	AccentColor     string
	StripeColor     string
	MaxWidth        string
}

// OptionsFrom builds Options from the html section of the configuration.
func OptionsFrom(cfg types.HTMLConfig) Options {
	return Options{
		DefaultFontSize: cfg.DefaultFontSize,
		AccentColor:     cfg.AccentColor,
		StripeColor:     cfg.StripeColor,
		MaxWidth:        cfg.MaxWidth,
	}
}

func (o Options) withDefaults() Options {
	d := types.DefaultConfig().HTML
	if o.DefaultFontSize == "" {
		o.DefaultFontSize = d.DefaultFontSize
	}
	if o.AccentColor == "" {
		o.AccentColor = d.AccentColor
	}
	if o.StripeColor == "" {
		o.StripeColor = d.StripeColor
	}
	if o.MaxWidth == "" {
		o.MaxWidth = d.MaxWidth
	}
	return o
}

// Render returns the complete HTML page for doc.
func Render(doc *ast.Document, opts Options) string {
	opts = opts.withDefaults()
	r := &renderState{}

	title, _ := doc.Meta.Title()
	fontSize, ok := doc.Meta.FontSize()
	if !ok {
		fontSize = opts.DefaultFontSize
	}

	r.raw("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n")
	if title != "" {
		r.openTag(atom.Title)
		r.text(title)
		r.closeTag(atom.Title)
		r.nl()
	}
	r.styleSheet(opts, fontSize)
	r.raw("</head>\n<body>\n")

	r.header(doc.Meta, title)
	for _, b := range doc.Blocks {
		r.block(b)
	}

	r.raw("</body>\n</html>")
	return string(r.dst)
}

func (r *renderState) styleSheet(opts Options, fontSize string) {
	r.openTag(atom.Style)
	r.nl()
	r.raw(`body { font-family: "Calibri", "Segoe UI", "Arial", sans-serif; font-size: `)
	r.text(fontSize)
	r.raw(`; line-height: 1.6; max-width: `)
	r.text(opts.MaxWidth)
	r.raw("; margin: 0 auto; padding: 2em; color: #333; }\n")
	r.raw("table { border-collapse: collapse; width: 100%; margin: 1em 0; }\n")
	r.raw("th, td { border: 1px solid #999; padding: 8px 12px; text-align: left; }\n")
	r.raw(fmt.Sprintf("th { background-color: %s; color: white; font-weight: bold; }\n", escapeText(opts.AccentColor)))
	r.raw(fmt.Sprintf("tr:nth-child(even) { background-color: %s; }\n", escapeText(opts.StripeColor)))
	r.raw("pre { background: #f5f5f5; padding: 1em; overflow-x: auto; border-radius: 4px; }\n")
	r.raw(`code { font-family: "Courier New", monospace; }` + "\n")
	r.raw(fmt.Sprintf("blockquote { border-left: 4px solid %s; margin: 1em 0; padding: 0.5em 1em; background: #f9f9f9; }\n", escapeText(opts.AccentColor)))
	r.raw(fmt.Sprintf("h1, h2, h3 { color: %s; }\n", escapeText(opts.AccentColor)))
	r.raw("hr { border: none; border-top: 2px solid #ccc; margin: 2em 0; }\n")
	r.closeTag(atom.Style)
	r.nl()
}

// header writes the title block. Each field is omitted when absent and the
// whole <header> is omitted when no field is present.
func (r *renderState) header(meta ast.Meta, title string) {
	subtitle, hasSub := meta.Subtitle()
	author, hasAuthor := meta.Author()
	date, hasDate := meta.Date()
	if title == "" && !hasSub && !hasAuthor && !hasDate {
		return
	}

	r.openTag(atom.Header)
	r.nl()
	if title != "" {
		r.classed(atom.H1, "title", title)
	}
	if hasSub {
		r.classed(atom.P, "subtitle", subtitle)
	}
	if hasAuthor {
		r.classed(atom.P, "author", author)
	}
	if hasDate {
		r.classed(atom.P, "date", date)
	}
	r.closeTag(atom.Header)
	r.nl()
}

func (r *renderState) classed(tag atom.Atom, class, content string) {
	r.openTagAttr(tag)
	r.attr("class", class)
	r.raw(">")
	r.text(content)
	r.closeTag(tag)
	r.nl()
}

var headingTags = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func headingTag(level int) atom.Atom {
	switch {
	case level < 1:
		return atom.H1
	case level > 6:
		return atom.H6
	}
	return headingTags[level-1]
}

func (r *renderState) block(block ast.Block) {
	switch b := block.(type) {
	case *ast.Para:
		r.paragraph(b.Inlines)
	case *ast.Plain:
		r.paragraph(b.Inlines)
	case *ast.Heading:
		tag := headingTag(b.Level)
		r.openTagAttr(tag)
		r.attrs(b.Attr)
		r.raw(">")
		r.inlines(b.Inlines)
		r.closeTag(tag)
		r.nl()
	case *ast.CodeBlock:
		r.openTag(atom.Pre)
		r.openTagAttr(atom.Code)
		if len(b.Attr.Classes) > 0 && b.Attr.Classes[0] != "" {
			r.attr("class", "language-"+b.Attr.Classes[0])
		}
		r.raw(">")
		r.text(b.Text)
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
		r.nl()
	case *ast.BlockQuote:
		r.openTag(atom.Blockquote)
		r.nl()
		r.blocks(b.Blocks)
		r.closeTag(atom.Blockquote)
		r.nl()
	case *ast.BulletList:
		r.openTag(atom.Ul)
		r.nl()
		r.listItems(b.Items)
		r.closeTag(atom.Ul)
		r.nl()
	case *ast.OrderedList:
		r.openTagAttr(atom.Ol)
		if b.ListAttrs.Start != 1 {
			r.attr("start", strconv.Itoa(b.ListAttrs.Start))
		}
		if t := listType(b.ListAttrs.Style); t != "" {
			r.attr("type", t)
		}
		r.raw(">\n")
		r.listItems(b.Items)
		r.closeTag(atom.Ol)
		r.nl()
	case *ast.DefinitionList:
		r.openTag(atom.Dl)
		r.nl()
		for _, item := range b.Items {
			r.openTag(atom.Dt)
			r.inlines(item.Term)
			r.closeTag(atom.Dt)
			r.nl()
			for _, def := range item.Definitions {
				r.openTag(atom.Dd)
				r.unwrapped(def)
				r.closeTag(atom.Dd)
				r.nl()
			}
		}
		r.closeTag(atom.Dl)
		r.nl()
	case *ast.Table:
		r.table(b)
	case *ast.Figure:
		r.container(atom.Figure, b.Attr, b.Blocks)
	case *ast.Div:
		r.container(atom.Div, b.Attr, b.Blocks)
	case *ast.LineBlock:
		r.raw(`<div class="line-block">` + "\n")
		for _, line := range b.Lines {
			r.inlines(line)
			r.raw("<br>\n")
		}
		r.closeTag(atom.Div)
		r.nl()
	case *ast.RawBlock:
		if b.Format == ast.FormatHTML {
			r.raw(b.Text)
			if len(b.Text) == 0 || b.Text[len(b.Text)-1] != '\n' {
				r.nl()
			}
		}
	case *ast.HorizontalRule:
		r.openTag(atom.Hr)
		r.nl()
	case *ast.PageBreak:
		r.raw(gridtable.PageBreak)
		r.nl()
	}
}

func (r *renderState) blocks(blocks []ast.Block) {
	for _, b := range blocks {
		r.block(b)
	}
}

func (r *renderState) paragraph(inlines []ast.Inline) {
	r.openTag(atom.P)
	r.inlines(inlines)
	r.closeTag(atom.P)
	r.nl()
}

func (r *renderState) container(tag atom.Atom, attr ast.Attr, blocks []ast.Block) {
	r.openTagAttr(tag)
	r.attrs(attr)
	r.raw(">\n")
	r.blocks(blocks)
	r.closeTag(tag)
	r.nl()
}

func (r *renderState) listItems(items [][]ast.Block) {
	for _, item := range items {
		r.openTag(atom.Li)
		r.unwrapped(item)
		r.closeTag(atom.Li)
		r.nl()
	}
}

// unwrapped writes a lone Para or Plain as bare inlines and anything else as
// full blocks. It serves list items, definitions and table cells.
func (r *renderState) unwrapped(blocks []ast.Block) {
	if len(blocks) == 1 {
		switch b := blocks[0].(type) {
		case *ast.Para:
			r.inlines(b.Inlines)
			return
		case *ast.Plain:
			r.inlines(b.Inlines)
			return
		}
	}
	r.blocks(blocks)
}

func listType(style ast.ListNumberStyle) string {
	switch style {
	case ast.LowerAlpha:
		return "a"
	case ast.UpperAlpha:
		return "A"
	case ast.LowerRoman:
		return "i"
	case ast.UpperRoman:
		return "I"
	}
	return ""
}

func (r *renderState) table(t *ast.Table) {
	r.openTag(atom.Table)
	r.nl()

	if len(t.Head.Rows) > 0 {
		r.openTag(atom.Thead)
		r.nl()
		r.rows(t, t.Head.Rows, atom.Th)
		r.closeTag(atom.Thead)
		r.nl()
	}

	if t.HasBody() {
		r.openTag(atom.Tbody)
		r.nl()
		for _, body := range t.Bodies {
			r.rows(t, body.Rows(), atom.Td)
		}
		r.closeTag(atom.Tbody)
		r.nl()
	}

	if len(t.Foot.Rows) > 0 {
		r.openTag(atom.Tfoot)
		r.nl()
		r.rows(t, t.Foot.Rows, atom.Td)
		r.closeTag(atom.Tfoot)
		r.nl()
	}

	r.closeTag(atom.Table)
	r.nl()
}

func (r *renderState) rows(t *ast.Table, rows []ast.Row, cellTag atom.Atom) {
	for _, row := range rows {
		r.openTag(atom.Tr)
		col := 0
		for _, cell := range row.Cells {
			rowSpan, colSpan := cell.Spans()
			r.openTagAttr(cellTag)
			if style := alignStyle(cellAlign(t, cell, col)); style != "" {
				r.attr("style", style)
			}
			if rowSpan > 1 {
				r.attr("rowspan", strconv.Itoa(rowSpan))
			}
			if colSpan > 1 {
				r.attr("colspan", strconv.Itoa(colSpan))
			}
			r.raw(">")
			r.unwrapped(cell.Blocks)
			r.closeTag(cellTag)
			col += colSpan
		}
		r.closeTag(atom.Tr)
		r.nl()
	}
}

// cellAlign returns the cell's own alignment, or its column's when the cell
// has none.
func cellAlign(t *ast.Table, cell ast.Cell, col int) ast.Alignment {
	if cell.Align != ast.AlignDefault || col >= len(t.ColSpecs) {
		return cell.Align
	}
	return t.ColSpecs[col].Align
}

func alignStyle(a ast.Alignment) string {
	switch a {
	case ast.AlignLeft:
		return "text-align: left;"
	case ast.AlignRight:
		return "text-align: right;"
	case ast.AlignCenter:
		return "text-align: center;"
	}
	return ""
}

func (r *renderState) inlines(inlines []ast.Inline) {
	for _, in := range inlines {
		r.inline(in)
	}
}

func (r *renderState) wrap(tag atom.Atom, inlines []ast.Inline) {
	r.openTag(tag)
	r.inlines(inlines)
	r.closeTag(tag)
}

func (r *renderState) inline(inline ast.Inline) {
	switch n := inline.(type) {
	case *ast.Str:
		r.text(n.Text)
	case *ast.Space:
		r.raw(" ")
	case *ast.SoftBreak:
		r.nl()
	case *ast.LineBreak:
		r.raw("<br>\n")
	case *ast.Emph:
		r.wrap(atom.Em, n.Inlines)
	case *ast.Strong:
		r.wrap(atom.Strong, n.Inlines)
	case *ast.Underline:
		r.wrap(atom.U, n.Inlines)
	case *ast.Strikeout:
		r.wrap(atom.Del, n.Inlines)
	case *ast.Superscript:
		r.wrap(atom.Sup, n.Inlines)
	case *ast.Subscript:
		r.wrap(atom.Sub, n.Inlines)
	case *ast.SmallCaps:
		r.raw(`<span style="font-variant: small-caps;">`)
		r.inlines(n.Inlines)
		r.closeTag(atom.Span)
	case *ast.Quoted:
		open, close := "&#8220;", "&#8221;"
		if n.QuoteType == ast.SingleQuote {
			open, close = "&#8216;", "&#8217;"
		}
		r.raw(open)
		r.inlines(n.Inlines)
		r.raw(close)
	case *ast.Code:
		r.openTag(atom.Code)
		r.text(n.Text)
		r.closeTag(atom.Code)
	case *ast.Math:
		if n.MathType == ast.DisplayMath {
			r.raw(`\[`)
			r.text(n.Text)
			r.raw(`\]`)
		} else {
			r.raw(`\(`)
			r.text(n.Text)
			r.raw(`\)`)
		}
	case *ast.Link:
		r.openTagAttr(atom.A)
		r.attr("href", n.Target.URL)
		if n.Target.Title != "" {
			r.attr("title", n.Target.Title)
		}
		r.attrs(n.Attr)
		r.raw(">")
		r.inlines(n.Inlines)
		r.closeTag(atom.A)
	case *ast.Image:
		r.openTagAttr(atom.Img)
		r.attr("src", n.Target.URL)
		r.attr("alt", ast.InlinesText(n.Inlines))
		if n.Target.Title != "" {
			r.attr("title", n.Target.Title)
		}
		r.attrs(n.Attr)
		r.raw(">")
	case *ast.Note:
		r.raw(`<span class="footnote">`)
		r.blocks(n.Blocks)
		r.closeTag(atom.Span)
	case *ast.Span:
		r.openTagAttr(atom.Span)
		r.attrs(n.Attr)
		r.raw(">")
		r.inlines(n.Inlines)
		r.closeTag(atom.Span)
	case *ast.RawInline:
		if n.Format == ast.FormatHTML {
			r.raw(n.Text)
		}
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package docx

import (
	word "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/ctypes"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/pdiddy/mdconv/pkg/ast"
)

const linkColor = "0000FF"

// style is the character formatting in effect while walking nested inlines.
type style struct {
	size      int
	bold      bool
	italic    bool
	underline bool
	strike    bool
	smallCaps bool
	color     string
	vert      stypes.VerticalAlignRun
}

// props builds the run properties for s. Sizes are in half-points and
// written as given, so odd sizes survive.
func (s style) props(font string) *ctypes.RunProperty {
	on := func(v bool) *ctypes.OnOff {
		if !v {
			return nil
		}
		return ctypes.OnOffFromBool(true)
	}
	rp := &ctypes.RunProperty{
		Bold:      on(s.bold),
		Italic:    on(s.italic),
		SmallCaps: on(s.smallCaps),
		Strike:    on(s.strike),
	}
	if font != "" {
		rp.Fonts = &ctypes.RunFonts{Ascii: font, HAnsi: font, CS: font}
	}
	if s.color != "" {
		rp.Color = ctypes.NewColor(s.color)
	}
	if s.size > 0 {
		rp.Size = ctypes.NewFontSize(uint64(s.size))
		rp.SizeCs = ctypes.NewFontSizeCS(uint64(s.size))
	}
	if s.underline {
		rp.Underline = ctypes.NewGenSingleStrVal(stypes.UnderlineSingle)
	}
	if s.vert != "" {
		rp.VertAlign = ctypes.NewGenSingleStrVal(s.vert)
	}
	return rp
}

// add appends a run of text in s to p.
func (s style) add(p *word.Paragraph, text, font string) *ctypes.Run {
	r := &ctypes.Run{
		Property: s.props(font),
		Children: []ctypes.RunChild{{Text: ctypes.TextFromString(text)}},
	}
	ct := p.GetCT()
	ct.Children = append(ct.Children, ctypes.ParagraphChild{Run: r})
	return r
}

// paragraph appends a new body paragraph holding inlines.
func (w *writer) paragraph(inlines []ast.Inline, s style) *word.Paragraph {
	p := w.out.AddEmptyParagraph()
	w.runs(p, inlines, s)
	return p
}

// runs appends one or more runs per inline. Wrappers add their formatting
// to s and recurse, so nested combinations accumulate.
func (w *writer) runs(p *word.Paragraph, inlines []ast.Inline, s style) {
	body := w.opts.BodyFont
	for _, in := range inlines {
		switch in := in.(type) {
		case *ast.Str:
			s.add(p, in.Text, body)
		case *ast.Space, *ast.SoftBreak:
			s.add(p, " ", body)
		case *ast.LineBreak:
			r := s.add(p, "", body)
			r.Children = []ctypes.RunChild{{Break: &ctypes.Break{BreakType: ptr(stypes.BreakTypeTextWrapping)}}}

		case *ast.Strong:
			inner := s
			inner.bold = true
			w.runs(p, in.Inlines, inner)
		case *ast.Emph:
			inner := s
			inner.italic = true
			w.runs(p, in.Inlines, inner)
		case *ast.Strikeout:
			inner := s
			inner.strike = true
			w.runs(p, in.Inlines, inner)
		case *ast.Underline:
			inner := s
			inner.underline = true
			w.runs(p, in.Inlines, inner)
		case *ast.Superscript:
			inner := s
			inner.vert = stypes.VerticalAlignRunSuperscript
			w.runs(p, in.Inlines, inner)
		case *ast.Subscript:
			inner := s
			inner.vert = stypes.VerticalAlignRunSubscript
			w.runs(p, in.Inlines, inner)
		case *ast.SmallCaps:
			inner := s
			inner.smallCaps = true
			w.runs(p, in.Inlines, inner)
		case *ast.Span:
			w.runs(p, in.Inlines, s)

		case *ast.Quoted:
			open, closing := in.QuoteType.Marks()
			s.add(p, open, body)
			w.runs(p, in.Inlines, s)
			s.add(p, closing, body)

		case *ast.Code:
			s.add(p, in.Text, w.opts.CodeFont)
		case *ast.Math:
			s.add(p, in.Text, w.opts.CodeFont)

		case *ast.Link:
			label := in.Target.URL
			if len(in.Inlines) > 0 {
				label = ast.InlinesText(in.Inlines)
			}
			link := s
			link.color = linkColor
			link.underline = true
			link.add(p, label, body)

		case *ast.Image:
			alt := in.Target.URL
			if len(in.Inlines) > 0 {
				alt = ast.InlinesText(in.Inlines)
			}
			img := s
			img.italic = true
			img.add(p, "[Image: "+alt+"]", body)

		case *ast.Note:
			s.add(p, " ("+ast.BlocksText(in.Blocks)+")", body)

		case *ast.RawInline:
			s.add(p, in.Text, body)
		}
	}
}

func ptr[T any](v T) *T { return &v }

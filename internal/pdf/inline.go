// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"github.com/pdiddy/mdconv/pkg/ast"
)

// scriptScale shrinks superscript and subscript text.
const scriptScale = 0.75

// fontState is the formatting in effect while walking nested inlines.
type fontState struct {
	family    string
	size      float64
	bold      bool
	italic    bool
	underline bool
	strike    bool
}

func (s fontState) style() string {
	var b []byte
	if s.bold {
		b = append(b, 'B')
	}
	if s.italic {
		b = append(b, 'I')
	}
	if s.underline {
		b = append(b, 'U')
	}
	if s.strike {
		b = append(b, 'S')
	}
	return string(b)
}

// segment is a piece of text drawn with one font.
type segment struct {
	text  string
	font  fontState
	color rgb
	link  string
}

func (w *writer) base() fontState {
	return fontState{family: w.font, size: w.size}
}

// flow writes inlines as wrapped text at line height h.
func (w *writer) flow(inlines []ast.Inline, st fontState, h float64) {
	for _, seg := range w.segments(nil, inlines, st) {
		w.pdf.SetFont(seg.font.family, seg.font.style(), seg.font.size)
		w.pdf.SetTextColor(seg.color.r, seg.color.g, seg.color.b)
		if seg.link != "" {
			w.pdf.WriteLinkString(h, w.tr(seg.text), seg.link)
		} else {
			w.pdf.Write(h, w.tr(seg.text))
		}
	}
	w.pdf.SetTextColor(black.r, black.g, black.b)
}

func (w *writer) segments(dst []segment, inlines []ast.Inline, st fontState) []segment {
	text := func(s string) segment { return segment{text: s, font: st} }
	for _, in := range inlines {
		switch in := in.(type) {
		case *ast.Str:
			dst = append(dst, text(in.Text))
		case *ast.Space, *ast.SoftBreak:
			dst = append(dst, text(" "))
		case *ast.LineBreak:
			dst = append(dst, text("\n"))

		case *ast.Strong:
			inner := st
			inner.bold = true
			dst = w.segments(dst, in.Inlines, inner)
		case *ast.Emph:
			inner := st
			inner.italic = true
			dst = w.segments(dst, in.Inlines, inner)
		case *ast.Underline:
			inner := st
			inner.underline = true
			dst = w.segments(dst, in.Inlines, inner)
		case *ast.Strikeout:
			inner := st
			inner.strike = true
			dst = w.segments(dst, in.Inlines, inner)
		case *ast.Superscript:
			inner := st
			inner.size *= scriptScale
			dst = w.segments(dst, in.Inlines, inner)
		case *ast.Subscript:
			inner := st
			inner.size *= scriptScale
			dst = w.segments(dst, in.Inlines, inner)
		case *ast.SmallCaps:
			dst = w.segments(dst, in.Inlines, st)
		case *ast.Span:
			dst = w.segments(dst, in.Inlines, st)

		case *ast.Quoted:
			open, closing := in.QuoteType.Marks()
			dst = append(dst, text(open))
			dst = w.segments(dst, in.Inlines, st)
			dst = append(dst, text(closing))

		case *ast.Code:
			code := st
			code.family = codeFont
			dst = append(dst, segment{text: in.Text, font: code})
		case *ast.Math:
			code := st
			code.family = codeFont
			dst = append(dst, segment{text: in.Text, font: code})

		case *ast.Link:
			label := in.Target.URL
			if len(in.Inlines) > 0 {
				label = ast.InlinesText(in.Inlines)
			}
			link := st
			link.underline = true
			dst = append(dst, segment{text: label, font: link, color: rgb{0, 0, 255}, link: in.Target.URL})

		case *ast.Image:
			alt := in.Target.URL
			if len(in.Inlines) > 0 {
				alt = ast.InlinesText(in.Inlines)
			}
			img := st
			img.italic = true
			dst = append(dst, segment{text: "[Image: " + alt + "]", font: img})

		case *ast.Note:
			dst = append(dst, text(" ("+ast.BlocksText(in.Blocks)+")"))

		case *ast.RawInline:
			dst = append(dst, text(in.Text))
		}
	}
	return dst
}

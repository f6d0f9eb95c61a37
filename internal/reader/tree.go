// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"fmt"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/util"

	"github.com/pdiddy/mdconv/internal/gridtable"
	"github.com/pdiddy/mdconv/pkg/ast"
)

// converter maps a goldmark tree onto the document model. It records the
// first nesting violation in err and stops descending from then on.
type converter struct {
	source   []byte
	maxDepth int
	depth    int
	err      error
}

func (c *converter) enter() bool {
	if c.err != nil {
		return false
	}
	c.depth++
	if c.depth > c.maxDepth {
		c.err = fmt.Errorf("%w: more than %d levels", ErrTooDeep, c.maxDepth)
		return false
	}
	return true
}

func (c *converter) leave() { c.depth-- }

func (c *converter) blocks(parent gast.Node) []ast.Block {
	if !c.enter() {
		return nil
	}
	defer c.leave()

	var out []ast.Block
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.block(n))
	}
	return out
}

func (c *converter) block(node gast.Node) ast.Block {
	switch n := node.(type) {
	case *gast.Paragraph:
		return &ast.Para{Inlines: c.inlines(n)}
	case *gast.Heading:
		return &ast.Heading{Level: n.Level, Inlines: c.inlines(n)}
	case *gast.FencedCodeBlock:
		var attr ast.Attr
		if n.Info != nil {
			if info := strings.TrimSpace(string(n.Info.Segment.Value(c.source))); info != "" {
				attr.Classes = []string{info}
			}
		}
		return &ast.CodeBlock{Attr: attr, Text: c.lines(n)}
	case *gast.CodeBlock:
		return &ast.CodeBlock{Text: c.lines(n)}
	case *gast.Blockquote:
		return &ast.BlockQuote{Blocks: c.blocks(n)}
	case *gast.List:
		return c.list(n)
	case *gast.ThematicBreak:
		return &ast.HorizontalRule{}
	case *extast.Table:
		return c.table(n)
	case *gast.HTMLBlock:
		raw := c.lines(n)
		if n.HasClosure() {
			raw += string(n.ClosureLine.Value(c.source))
		}
		if t := strings.TrimSpace(raw); t == gridtable.PageBreak || t == `\newpage` {
			return &ast.PageBreak{}
		}
		return &ast.RawBlock{Format: ast.FormatHTML, Text: raw}
	}

	inlines := c.inlines(node)
	if len(inlines) == 0 {
		return &ast.Plain{}
	}
	return &ast.Para{Inlines: inlines}
}

func (c *converter) list(n *gast.List) ast.Block {
	var items [][]ast.Block
	for item := n.FirstChild(); item != nil; item = item.NextSibling() {
		items = append(items, c.blocks(item))
	}
	if !n.IsOrdered() {
		return &ast.BulletList{Items: items}
	}

	attrs := ast.DefaultListAttrs()
	attrs.Start = n.Start
	if n.Marker == ')' {
		attrs.Delim = ast.OneParen
	}
	return &ast.OrderedList{ListAttrs: attrs, Items: items}
}

// table puts the first row in the head and every other row in a single body.
func (c *converter) table(n *extast.Table) ast.Block {
	tbl := &ast.Table{
		ColSpecs: make([]ast.ColSpec, len(n.Alignments)),
		Bodies:   []ast.TableBody{{}},
	}
	for i, a := range n.Alignments {
		tbl.ColSpecs[i] = ast.ColSpec{Align: alignment(a)}
	}

	first := true
	for r := n.FirstChild(); r != nil; r = r.NextSibling() {
		var row ast.Row
		for cell := r.FirstChild(); cell != nil; cell = cell.NextSibling() {
			row.Cells = append(row.Cells, ast.NewCell(&ast.Plain{Inlines: c.inlines(cell)}))
		}
		if first {
			tbl.Head.Rows = append(tbl.Head.Rows, row)
			first = false
			continue
		}
		tbl.Bodies[0].Body = append(tbl.Bodies[0].Body, row)
	}
	return tbl
}

func alignment(a extast.Alignment) ast.Alignment {
	switch a {
	case extast.AlignLeft:
		return ast.AlignLeft
	case extast.AlignRight:
		return ast.AlignRight
	case extast.AlignCenter:
		return ast.AlignCenter
	}
	return ast.AlignDefault
}

// lines joins the raw source lines of a block node.
func (c *converter) lines(n gast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(c.source))
	}
	return b.String()
}

func (c *converter) inlines(parent gast.Node) []ast.Inline {
	if !c.enter() {
		return nil
	}
	defer c.leave()

	var out []ast.Inline
	for n := parent.FirstChild(); n != nil; n = n.NextSibling() {
		out = append(out, c.inline(n)...)
	}
	return out
}

// inline maps one goldmark inline. Unknown nodes are replaced by their
// flattened children.
func (c *converter) inline(node gast.Node) []ast.Inline {
	switch n := node.(type) {
	case *gast.Text:
		var out []ast.Inline
		value := n.Segment.Value(c.source)
		if !n.IsRaw() {
			value = unescape(value)
		}
		if len(value) > 0 {
			out = append(out, &ast.Str{Text: string(value)})
		}
		switch {
		case n.HardLineBreak():
			out = append(out, &ast.LineBreak{})
		case n.SoftLineBreak():
			out = append(out, &ast.SoftBreak{})
		}
		return out
	case *gast.String:
		if len(n.Value) == 0 {
			return nil
		}
		return []ast.Inline{&ast.Str{Text: string(n.Value)}}
	case *gast.CodeSpan:
		return []ast.Inline{&ast.Code{Text: c.codeSpan(n)}}
	case *gast.Emphasis:
		if n.Level >= 2 {
			return []ast.Inline{&ast.Strong{Inlines: c.inlines(n)}}
		}
		return []ast.Inline{&ast.Emph{Inlines: c.inlines(n)}}
	case *gast.Link:
		return []ast.Inline{&ast.Link{
			Inlines: c.inlines(n),
			Target:  target(n.Destination, n.Title),
		}}
	case *gast.Image:
		return []ast.Inline{&ast.Image{
			Inlines: c.inlines(n),
			Target:  target(n.Destination, n.Title),
		}}
	case *gast.AutoLink:
		url := string(n.URL(c.source))
		if n.AutoLinkType == gast.AutoLinkEmail && !strings.HasPrefix(strings.ToLower(url), "mailto:") {
			url = "mailto:" + url
		}
		return []ast.Inline{&ast.Link{
			Inlines: []ast.Inline{&ast.Str{Text: string(n.Label(c.source))}},
			Target:  ast.Target{URL: url},
		}}
	case *gast.RawHTML:
		return []ast.Inline{&ast.RawInline{Format: ast.FormatHTML, Text: string(n.Segments.Value(c.source))}}
	case *extast.Strikethrough:
		return []ast.Inline{&ast.Strikeout{Inlines: c.inlines(n)}}
	case *superscriptNode:
		return []ast.Inline{&ast.Superscript{Inlines: c.inlines(n)}}
	case *extast.TaskCheckBox:
		if n.IsChecked {
			return []ast.Inline{&ast.Str{Text: "☒ "}}
		}
		return []ast.Inline{&ast.Str{Text: "☐ "}}
	}
	return c.inlines(node)
}

// codeSpan concatenates the span's text with line endings turned into spaces.
func (c *converter) codeSpan(n *gast.CodeSpan) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		t, ok := child.(*gast.Text)
		if !ok {
			continue
		}
		value := t.Segment.Value(c.source)
		if len(value) > 0 && value[len(value)-1] == '\n' {
			b.Write(value[:len(value)-1])
			b.WriteByte(' ')
			continue
		}
		b.Write(value)
	}
	return b.String()
}

// target builds a link target. The parser keeps destination and title as
// written, so escapes and references are resolved here.
func target(dest, title []byte) ast.Target {
	return ast.Target{URL: string(unescape(dest)), Title: string(unescape(title))}
}

// unescape resolves backslash escapes and character references the way a
// CommonMark renderer does when writing text.
func unescape(v []byte) []byte {
	v = util.UnescapePunctuations(v)
	v = util.ResolveNumericReferences(v)
	return util.ResolveEntityNames(v)
}

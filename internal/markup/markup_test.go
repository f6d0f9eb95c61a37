// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdconv/internal/reader"
	"github.com/pdiddy/mdconv/pkg/ast"
)

func str(s string) ast.Inline { return &ast.Str{Text: s} }

func para(in ...ast.Inline) ast.Block { return &ast.Para{Inlines: in} }

func parse(t *testing.T, html string) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)
	return doc
}

func TestEscaping(t *testing.T) {
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; &#39;e&#39;", escapeText(`a & b <c> "d" 'e'`))
	assert.Equal(t, "a &amp; b &lt;c&gt; &quot;d&quot; 'e'", string(appendEscapedAttr(nil, `a & b <c> "d" 'e'`)))
	assert.Equal(t, "plain", escapeText("plain"))
	assert.Empty(t, appendEscapedAttr(nil, ""))
}

func TestRenderLinkTargetReferences(t *testing.T) {
	doc, err := reader.Read("[y](http://h/?a=1&amp;b=2) ![z](p&ouml;.png \"t\\\"q\")", reader.Options{})
	require.NoError(t, err)
	out := Render(doc, Options{})
	assert.Contains(t, out, `<a href="http://h/?a=1&amp;b=2">y</a>`)
	assert.Contains(t, out, `<img src="pö.png" alt="z" title="t&quot;q">`)
	assert.NotContains(t, out, "&amp;amp;")
}

func TestRenderHeadingAndStrong(t *testing.T) {
	doc, err := reader.Read("# Hello\n\nThis is **bold**.", reader.Options{})
	require.NoError(t, err)

	out := Render(doc, Options{})
	assert.True(t, strings.HasPrefix(out, "<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"UTF-8\">\n"))
	assert.True(t, strings.HasSuffix(out, "</body>\n</html>"))
	assert.Contains(t, out, "<h1>Hello</h1>\n")
	assert.Contains(t, out, "<p>This is <strong>bold</strong>.</p>\n")
	assert.NotContains(t, out, "<title>")
	assert.NotContains(t, out, "<header>")
	assert.Contains(t, out, "font-size: 12pt;")
}

func TestRenderIsDeterministic(t *testing.T) {
	doc := &ast.Document{
		Meta:   ast.Meta{ast.KeyTitle: ast.MetaString("T"), "x": ast.MetaString("y")},
		Blocks: []ast.Block{para(str("a")), &ast.HorizontalRule{}},
	}
	assert.Equal(t, Render(doc, Options{}), Render(doc, Options{}))
}

func TestRenderEscapesOnce(t *testing.T) {
	doc := &ast.Document{
		Meta: ast.Meta{ast.KeyTitle: ast.MetaString("A & B")},
		Blocks: []ast.Block{
			para(str(`x < y & "z"`)),
			&ast.CodeBlock{Attr: ast.Attr{Classes: []string{`c"s`}}, Text: "if a < b && c {}\n"},
			para(&ast.Link{
				Inlines: []ast.Inline{str("q&a")},
				Target:  ast.Target{URL: "https://x.test/?a=1&b=2", Title: `say "hi"`},
			}),
			para(&ast.Image{
				Inlines: []ast.Inline{str("a <b> cat")},
				Target:  ast.Target{URL: "cat.png"},
			}),
		},
	}
	out := Render(doc, Options{})

	assert.Contains(t, out, "<title>A &amp; B</title>")
	assert.Contains(t, out, `<h1 class="title">A &amp; B</h1>`)
	assert.Contains(t, out, "<p>x &lt; y &amp; &quot;z&quot;</p>")
	assert.Contains(t, out, `<pre><code class="language-c&quot;s">if a &lt; b &amp;&amp; c {}`+"\n</code></pre>")
	assert.Contains(t, out, `<a href="https://x.test/?a=1&amp;b=2" title="say &quot;hi&quot;">q&amp;a</a>`)
	assert.Contains(t, out, `<img src="cat.png" alt="a &lt;b&gt; cat">`)
	assert.NotContains(t, out, "&amp;amp;")
	assert.NotContains(t, out, "&amp;lt;")
}

func TestRenderMetadataHeader(t *testing.T) {
	tests := []struct {
		name    string
		meta    ast.Meta
		want    []string
		notWant []string
	}{
		{
			name:    "no metadata",
			meta:    ast.Meta{},
			notWant: []string{"<header>", "<title>", `class="author"`},
		},
		{
			name: "author only",
			meta: ast.Meta{ast.KeyAuthor: ast.MetaString("Ada")},
			want: []string{"<header>\n<p class=\"author\">Ada</p>\n</header>\n"},
			notWant: []string{
				"<title>", `class="title"`, `class="subtitle"`, `class="date"`,
			},
		},
		{
			name: "all fields",
			meta: ast.Meta{
				ast.KeyTitle:    ast.MetaString("T"),
				ast.KeySubtitle: ast.MetaString("S"),
				ast.KeyAuthor:   ast.MetaList{ast.MetaString("A"), ast.MetaString("B")},
				ast.KeyDate:     ast.MetaString("D"),
			},
			want: []string{
				"<title>T</title>\n",
				"<header>\n<h1 class=\"title\">T</h1>\n<p class=\"subtitle\">S</p>\n<p class=\"author\">A, B</p>\n<p class=\"date\">D</p>\n</header>\n",
			},
		},
		{
			name:    "empty title is omitted",
			meta:    ast.Meta{ast.KeyTitle: ast.MetaString("")},
			notWant: []string{"<title>", "<header>"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(&ast.Document{Meta: tt.meta}, Options{})
			for _, w := range tt.want {
				assert.Contains(t, out, w)
			}
			for _, w := range tt.notWant {
				assert.NotContains(t, out, w)
			}
		})
	}
}

func TestRenderFontSizeAndOptions(t *testing.T) {
	doc := &ast.Document{Meta: ast.Meta{ast.KeyFontSize: ast.MetaString("11pt")}}
	out := Render(doc, Options{AccentColor: "#123456"})
	assert.Contains(t, out, "font-size: 11pt;")
	assert.Contains(t, out, "th { background-color: #123456;")
	assert.Contains(t, out, "tr:nth-child(even) { background-color: #EDF2F7; }")

	out = Render(&ast.Document{}, Options{DefaultFontSize: "10pt", MaxWidth: "60em"})
	assert.Contains(t, out, "font-size: 10pt;")
	assert.Contains(t, out, "max-width: 60em;")
}

func TestRenderLists(t *testing.T) {
	doc := &ast.Document{Blocks: []ast.Block{
		&ast.BulletList{Items: [][]ast.Block{
			{para(str("one"))},
			{para(str("two")), para(str("more"))},
		}},
		&ast.OrderedList{ListAttrs: ast.DefaultListAttrs(), Items: [][]ast.Block{{&ast.Plain{Inlines: []ast.Inline{str("a")}}}}},
		&ast.OrderedList{ListAttrs: ast.ListAttrs{Start: 3, Style: ast.LowerRoman}, Items: [][]ast.Block{{para(str("c"))}}},
	}}
	out := Render(doc, Options{})

	assert.Contains(t, out, "<ul>\n<li>one</li>\n<li><p>two</p>\n<p>more</p>\n</li>\n</ul>\n")
	assert.Contains(t, out, "<ol>\n<li>a</li>\n</ol>\n")
	assert.Contains(t, out, `<ol start="3" type="i">`+"\n<li>c</li>\n</ol>\n")
}

func TestRenderTable(t *testing.T) {
	cell := func(s string) ast.Cell { return ast.NewCell(&ast.Plain{Inlines: []ast.Inline{str(s)}}) }
	span := cell("wide")
	span.ColSpan = 2
	tbl := &ast.Table{
		ColSpecs: []ast.ColSpec{{Align: ast.AlignLeft}, {Align: ast.AlignRight}},
		Head:     ast.TableHead{Rows: []ast.Row{{Cells: []ast.Cell{cell("A"), cell("B")}}}},
		Bodies: []ast.TableBody{{Body: []ast.Row{
			{Cells: []ast.Cell{cell("1"), cell("2")}},
			{Cells: []ast.Cell{span}},
		}}},
		Foot: ast.TableFoot{Rows: []ast.Row{{Cells: []ast.Cell{cell("f1"), cell("f2")}}}},
	}
	out := Render(&ast.Document{Blocks: []ast.Block{tbl}}, Options{})

	assert.Contains(t, out, `<thead>`+"\n"+`<tr><th style="text-align: left;">A</th><th style="text-align: right;">B</th></tr>`)
	assert.Contains(t, out, `<td style="text-align: left;" colspan="2">wide</td>`)
	assert.NotContains(t, out, "rowspan")
	assert.NotContains(t, out, `colspan="1"`)

	html := parse(t, out)
	assert.Equal(t, 1, html.Find("table").Length())
	assert.Equal(t, 1, html.Find("thead tr").Length())
	assert.Equal(t, 2, html.Find("tbody tr").Length())
	assert.Equal(t, "f2", html.Find("tfoot td").Last().Text())
}

func TestRenderEmptyTableSections(t *testing.T) {
	tbl := &ast.Table{Bodies: []ast.TableBody{{}}}
	out := Render(&ast.Document{Blocks: []ast.Block{tbl}}, Options{})
	assert.Contains(t, out, "<table>\n</table>\n")
}

func TestRenderBlocks(t *testing.T) {
	tests := []struct {
		name  string
		block ast.Block
		want  string
	}{
		{"rule", &ast.HorizontalRule{}, "<hr>\n"},
		{"page break", &ast.PageBreak{}, `<div style="page-break-after: always;"></div>` + "\n"},
		{"raw html", &ast.RawBlock{Format: ast.FormatHTML, Text: "<aside>x</aside>"}, "<aside>x</aside>\n"},
		{"raw other format", &ast.RawBlock{Format: "latex", Text: `\foo`}, ""},
		{"blockquote", &ast.BlockQuote{Blocks: []ast.Block{para(str("q"))}}, "<blockquote>\n<p>q</p>\n</blockquote>\n"},
		{"heading attrs", &ast.Heading{Level: 2, Attr: ast.Attr{ID: "s", Classes: []string{"a", "b"}, Attrs: []ast.KV{{Key: "k", Value: "v"}}}, Inlines: []ast.Inline{str("H")}}, `<h2 id="s" class="a b" k="v">H</h2>` + "\n"},
		{"heading clamps", &ast.Heading{Level: 9, Inlines: []ast.Inline{str("H")}}, "<h6>H</h6>\n"},
		{"div", &ast.Div{Attr: ast.Attr{Classes: []string{"note"}}, Blocks: []ast.Block{para(str("x"))}}, "<div class=\"note\">\n<p>x</p>\n</div>\n"},
		{"figure", &ast.Figure{Blocks: []ast.Block{para(str("x"))}}, "<figure>\n<p>x</p>\n</figure>\n"},
		{"line block", &ast.LineBlock{Lines: [][]ast.Inline{{str("a")}, {str("b")}}}, "<div class=\"line-block\">\na<br>\nb<br>\n</div>\n"},
		{"definition list", &ast.DefinitionList{Items: []ast.Definition{{Term: []ast.Inline{str("t")}, Definitions: [][]ast.Block{{para(str("d"))}}}}}, "<dl>\n<dt>t</dt>\n<dd>d</dd>\n</dl>\n"},
		{"plain", &ast.Plain{Inlines: []ast.Inline{str("p")}}, "<p>p</p>\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(&ast.Document{Blocks: []ast.Block{tt.block}}, Options{})
			body := bodyOf(out)
			assert.Equal(t, tt.want, body)
		})
	}
}

func TestRenderInlines(t *testing.T) {
	tests := []struct {
		name   string
		inline ast.Inline
		want   string
	}{
		{"space", &ast.Space{}, " "},
		{"soft break", &ast.SoftBreak{}, "\n"},
		{"line break", &ast.LineBreak{}, "<br>\n"},
		{"emph", &ast.Emph{Inlines: []ast.Inline{str("e")}}, "<em>e</em>"},
		{"underline", &ast.Underline{Inlines: []ast.Inline{str("u")}}, "<u>u</u>"},
		{"strikeout", &ast.Strikeout{Inlines: []ast.Inline{str("s")}}, "<del>s</del>"},
		{"superscript", &ast.Superscript{Inlines: []ast.Inline{str("2")}}, "<sup>2</sup>"},
		{"subscript", &ast.Subscript{Inlines: []ast.Inline{str("2")}}, "<sub>2</sub>"},
		{"small caps", &ast.SmallCaps{Inlines: []ast.Inline{str("sc")}}, `<span style="font-variant: small-caps;">sc</span>`},
		{"single quote", &ast.Quoted{QuoteType: ast.SingleQuote, Inlines: []ast.Inline{str("q")}}, "&#8216;q&#8217;"},
		{"double quote", &ast.Quoted{QuoteType: ast.DoubleQuote, Inlines: []ast.Inline{str("q")}}, "&#8220;q&#8221;"},
		{"code", &ast.Code{Text: "a<b"}, "<code>a&lt;b</code>"},
		{"inline math", &ast.Math{MathType: ast.InlineMath, Text: "x<1"}, `\(x&lt;1\)`},
		{"display math", &ast.Math{MathType: ast.DisplayMath, Text: "x"}, `\[x\]`},
		{"note", &ast.Note{Blocks: []ast.Block{para(str("n"))}}, "<span class=\"footnote\"><p>n</p>\n</span>"},
		{"span", &ast.Span{Attr: ast.Attr{ID: "i"}, Inlines: []ast.Inline{str("s")}}, `<span id="i">s</span>`},
		{"raw html", &ast.RawInline{Format: ast.FormatHTML, Text: "<kbd>"}, "<kbd>"},
		{"raw other", &ast.RawInline{Format: "tex", Text: `\x`}, ""},
		{"image title", &ast.Image{Target: ast.Target{URL: "i.png", Title: "t"}}, `<img src="i.png" alt="" title="t">`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := Render(&ast.Document{Blocks: []ast.Block{para(tt.inline)}}, Options{})
			assert.Equal(t, "<p>"+tt.want+"</p>\n", bodyOf(out))
		})
	}
}

// bodyOf returns what Render wrote between <body> and </body>.
func bodyOf(out string) string {
	_, after, _ := strings.Cut(out, "<body>\n")
	body, _, _ := strings.Cut(after, "</body>")
	return body
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdf

import (
	"bytes"
	"errors"
	"testing"
	"time"

	"github.com/jung-kurt/gofpdf"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdconv/internal/reader"
	"github.com/pdiddy/mdconv/pkg/ast"
)

var fixedDate = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

const sample = `---
title: Quarterly Report
subtitle: Q3
author: [Ada, Grace]
date: 2026-01-02
fontsize: 11pt
---
# Overview

Plain, **bold**, *italic*, ~~gone~~, ` + "`code`" + ` and [a link](https://example.test).

> quoted text

- one
- two

3. three
4. four

| Name | Score |
|:-----|------:|
| Ada  | 10    |
| Bob  | 7     |
| Cy   | 8     |

` + "```go\nfmt.Println(\"hi\")\n```" + `

---

<div style="page-break-after: always;"></div>

## After the break

- [x] done
- [ ] open
`

func render(t *testing.T, doc *ast.Document, opts Options) []byte {
	t.Helper()
	if opts.CreationDate.IsZero() {
		opts.CreationDate = fixedDate
	}
	data, err := Render(doc, opts)
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(data, []byte("%PDF-1.")))
	return data
}

func TestRenderSample(t *testing.T) {
	doc, err := reader.Read(sample, reader.Options{})
	require.NoError(t, err)

	data := render(t, doc, Options{})
	assert.Contains(t, string(data), "/Count 2")
	assert.Equal(t, 2, bytes.Count(data, []byte("<</Type /Page\n")))
}

func TestRenderEmptyDocument(t *testing.T) {
	data := render(t, &ast.Document{}, Options{})
	assert.Contains(t, string(data), "/Count 1")
}

func TestRenderDeterministic(t *testing.T) {
	doc, err := reader.Read(sample, reader.Options{})
	require.NoError(t, err)
	assert.Equal(t, render(t, doc, Options{}), render(t, doc, Options{}))
}

func TestRenderBlocksWithoutError(t *testing.T) {
	wide := ast.NewCell(&ast.Plain{Inlines: []ast.Inline{&ast.Str{Text: "spans both columns"}}})
	wide.ColSpan = 2
	tests := []struct {
		name   string
		blocks []ast.Block
	}{
		{"empty table", []ast.Block{&ast.Table{}}},
		{"spanned cell", []ast.Block{&ast.Table{
			ColSpecs: []ast.ColSpec{{}, {}},
			Bodies:   []ast.TableBody{{Body: []ast.Row{{Cells: []ast.Cell{wide}}}}},
			Foot:     ast.TableFoot{Rows: []ast.Row{{Cells: []ast.Cell{ast.NewCell(), ast.NewCell()}}}},
		}}},
		{"definition list", []ast.Block{&ast.DefinitionList{Items: []ast.Definition{{
			Term:        []ast.Inline{&ast.Str{Text: "term"}},
			Definitions: [][]ast.Block{{&ast.Para{Inlines: []ast.Inline{&ast.Str{Text: "meaning"}}}}},
		}}}}},
		{"line block", []ast.Block{&ast.LineBlock{Lines: [][]ast.Inline{{&ast.Str{Text: "a"}}, {&ast.Str{Text: "b"}}}}}},
		{"nested containers", []ast.Block{
			&ast.Div{Blocks: []ast.Block{&ast.Figure{Blocks: []ast.Block{&ast.Para{Inlines: []ast.Inline{&ast.Str{Text: "x"}}}}}}},
			&ast.BlockQuote{Blocks: []ast.Block{&ast.CodeBlock{Text: ""}}},
		}},
		{"raw and rule", []ast.Block{&ast.RawBlock{Format: ast.FormatHTML, Text: "<b>"}, &ast.HorizontalRule{}}},
		{"text outside cp1252", []ast.Block{&ast.Para{Inlines: []ast.Inline{&ast.Str{Text: "☐ 漢字 “quoted” — ok"}}}}},
		{"deep heading level", []ast.Block{&ast.Heading{Level: 9, Inlines: []ast.Inline{&ast.Str{Text: "h"}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			render(t, &ast.Document{Blocks: tt.blocks}, Options{})
		})
	}
}

func TestRenderErrors(t *testing.T) {
	doc := &ast.Document{Blocks: []ast.Block{&ast.Para{Inlines: []ast.Inline{&ast.Str{Text: "x"}}}}}
	tests := []struct {
		name string
		opts Options
	}{
		{"unknown page size", Options{PageSize: "Napkin"}},
		{"unknown font", Options{Font: "Comic"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Render(doc, tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrRender))
		})
	}
}

func TestSegments(t *testing.T) {
	w := &writer{font: "Helvetica", size: 10}
	inlines := []ast.Inline{
		&ast.Strong{Inlines: []ast.Inline{&ast.Emph{Inlines: []ast.Inline{&ast.Str{Text: "both"}}}}},
		&ast.Space{},
		&ast.Code{Text: "x"},
		&ast.Superscript{Inlines: []ast.Inline{&ast.Str{Text: "2"}}},
		&ast.Link{Inlines: []ast.Inline{&ast.Str{Text: "site"}}, Target: ast.Target{URL: "https://a.test"}},
		&ast.Image{Target: ast.Target{URL: "p.png"}},
		&ast.Quoted{QuoteType: ast.SingleQuote, Inlines: []ast.Inline{&ast.Str{Text: "q"}}},
		&ast.LineBreak{},
		&ast.Note{Blocks: []ast.Block{&ast.Para{Inlines: []ast.Inline{&ast.Str{Text: "n"}}}}},
		&ast.Strikeout{Inlines: []ast.Inline{&ast.Underline{Inlines: []ast.Inline{&ast.Str{Text: "su"}}}}},
	}
	segs := w.segments(nil, inlines, w.base())
	require.Len(t, segs, 12)

	assert.Equal(t, "both", segs[0].text)
	assert.Equal(t, "BI", segs[0].font.style())
	assert.Equal(t, " ", segs[1].text)
	assert.Equal(t, "", segs[1].font.style())
	assert.Equal(t, codeFont, segs[2].font.family)
	assert.InDelta(t, 7.5, segs[3].font.size, 0.001)
	assert.Equal(t, "https://a.test", segs[4].link)
	assert.Equal(t, rgb{0, 0, 255}, segs[4].color)
	assert.Equal(t, "U", segs[4].font.style())
	assert.Equal(t, "[Image: p.png]", segs[5].text)
	assert.Equal(t, "I", segs[5].font.style())
	assert.Equal(t, []string{"‘", "q", "’"}, []string{segs[6].text, segs[7].text, segs[8].text})
	assert.Equal(t, "\n", segs[9].text)
	assert.Equal(t, " (n)", segs[10].text)
	assert.Equal(t, "US", segs[11].font.style())
}

func TestCellAlign(t *testing.T) {
	specs := []ast.ColSpec{{Align: ast.AlignRight}, {Align: ast.AlignCenter}}
	tests := []struct {
		name string
		cell ast.Cell
		col  int
		want string
	}{
		{"column right", ast.NewCell(), 0, "RM"},
		{"column center", ast.NewCell(), 1, "CM"},
		{"beyond specs", ast.NewCell(), 5, "LM"},
		{"cell overrides", ast.Cell{Align: ast.AlignLeft}, 0, "LM"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, cellAlign(tt.cell, specs, tt.col))
		})
	}
}

func TestFit(t *testing.T) {
	f := gofpdf.New("P", "mm", "A4", "")
	f.AddPage()
	f.SetFont("Helvetica", "", 10)
	w := &writer{pdf: f}

	assert.Equal(t, "short", w.fit("short", 100))
	cut := w.fit("a rather long piece of cell text that cannot fit", 20)
	assert.True(t, len(cut) < 49)
	assert.Contains(t, cut, "...")
	assert.LessOrEqual(t, f.GetStringWidth(cut), 20.0)
}

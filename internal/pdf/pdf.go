// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdf renders an ast.Document as a PDF using the core fonts.
// Text is translated to cp1252; runes outside it print as '.'.
package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/pdiddy/mdconv/pkg/ast"
	"github.com/pdiddy/mdconv/pkg/types"
)

// ErrRender is returned when gofpdf reports an error.
var ErrRender = errors.New("pdf render failed")

// DefaultFontSize is the body size in points when the document sets none.
const DefaultFontSize = 10

// Options controls the page and fonts. CreationDate, when set, is written as
// both the creation and modification date; otherwise gofpdf uses the
// current time.
type Options struct {
	PageSize     string
	Font         string
	CreationDate time.Time
}

// OptionsFrom builds Options from the pdf section of the configuration.
func OptionsFrom(cfg types.PDFConfig) Options {
	return Options{PageSize: cfg.PageSize, Font: cfg.Font}
}

func (o Options) withDefaults() Options {
	d := types.DefaultConfig().PDF
	if o.PageSize == "" {
		o.PageSize = d.PageSize
	}
	if o.Font == "" {
		o.Font = d.Font
	}
	return o
}

// headingSizes are point sizes for heading levels 1..6.
var headingSizes = map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}

const (
	codeFont   = "Courier"
	codeSize   = 9
	indentMM   = 8.0
	pageMargin = 15.0
)

// Render returns the PDF bytes for doc.
func Render(doc *ast.Document, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	f := gofpdf.New("P", "mm", opts.PageSize, "")
	f.SetCatalogSort(true)
	if !opts.CreationDate.IsZero() {
		f.SetCreationDate(opts.CreationDate)
		f.SetModificationDate(opts.CreationDate)
	}
	f.SetMargins(pageMargin, pageMargin, pageMargin)
	f.SetAutoPageBreak(true, pageMargin)
	if title, ok := doc.Meta.Title(); ok {
		f.SetTitle(title, true)
	}
	if author, ok := doc.Meta.Author(); ok {
		f.SetAuthor(author, true)
	}
	f.SetCreator("mdconv", false)
	f.AddPage()

	size := float64(DefaultFontSize)
	if fs, ok := doc.Meta.FontSize(); ok {
		if pt, ok := ast.ParsePoints(fs); ok {
			size = float64(pt)
		}
	}

	w := &writer{
		pdf:  f,
		tr:   f.UnicodeTranslatorFromDescriptor(""),
		font: opts.Font,
		size: size,
	}
	w.metadata(doc.Meta)
	for _, b := range doc.Blocks {
		w.block(b)
	}

	if err := f.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	var buf bytes.Buffer
	if err := f.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRender, err)
	}
	return buf.Bytes(), nil
}

// writer draws blocks onto one gofpdf document.
type writer struct {
	pdf  *gofpdf.Fpdf
	tr   func(string) string
	font string
	size float64
}

// lineHeight is the line pitch in mm for a point size.
func lineHeight(size float64) float64 { return size * 0.5 }

func (w *writer) metadata(meta ast.Meta) {
	centered := func(text, style string, size, after float64) {
		w.pdf.SetFont(w.font, style, size)
		w.pdf.MultiCell(0, lineHeight(size)+1, w.tr(text), "", "C", false)
		w.pdf.Ln(after)
	}
	wrote := false
	if title, ok := meta.Title(); ok {
		centered(title, "B", 24, 1)
		wrote = true
	}
	if subtitle, ok := meta.Subtitle(); ok {
		centered(subtitle, "", 16, 1)
		wrote = true
	}
	if author, ok := meta.Author(); ok {
		centered("Author: "+author, "", w.size, 0.5)
		wrote = true
	}
	if date, ok := meta.Date(); ok {
		centered(date, "", w.size, 0)
		wrote = true
	}
	if wrote {
		w.pdf.Ln(6)
	}
}

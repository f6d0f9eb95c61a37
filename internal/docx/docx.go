// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docx renders an ast.Document as a Word (Office Open XML) package.
package docx

import (
	"bytes"
	"encoding/xml"
	"errors"

	"github.com/gomutex/godocx"
	word "github.com/gomutex/godocx/docx"
	"github.com/gomutex/godocx/wml/stypes"

	"github.com/pdiddy/mdconv/pkg/ast"
	"github.com/pdiddy/mdconv/pkg/types"
)

// DefaultFontSize is the body size in half-points (12pt) used when the
// document sets no usable fontsize.
const DefaultFontSize = 24

// ErrPackaging is the sentinel wrapped by PackagingError.
var ErrPackaging = errors.New("docx packaging failed")

// PackagingError reports that the archive could not be finalized.
type PackagingError struct {
	Msg string
}

func (e *PackagingError) Error() string {
	return "packaging docx: " + e.Msg
}

func (e *PackagingError) Unwrap() error { return ErrPackaging }

// Options controls fonts, table geometry and colors. Zero fields take their
// defaults.
type Options struct {
	BodyFont    string
	CodeFont    string
	DefaultSize int
	TableWidth  int
	HeaderFill  string
	StripeFill  string
	BorderColor string
}

// OptionsFrom builds Options from the docx section of the configuration.
func OptionsFrom(cfg types.DOCXConfig) Options {
	return Options{
		BodyFont:    cfg.BodyFont,
		CodeFont:    cfg.CodeFont,
		DefaultSize: cfg.DefaultSize,
		TableWidth:  cfg.TableWidth,
		HeaderFill:  cfg.HeaderFill,
		StripeFill:  cfg.StripeFill,
		BorderColor: cfg.BorderColor,
	}
}

func (o Options) withDefaults() Options {
	d := types.DefaultConfig().DOCX
	if o.BodyFont == "" {
		o.BodyFont = d.BodyFont
	}
	if o.CodeFont == "" {
		o.CodeFont = d.CodeFont
	}
	if o.DefaultSize <= 0 {
		o.DefaultSize = d.DefaultSize
	}
	if o.TableWidth <= 0 {
		o.TableWidth = d.TableWidth
	}
	if o.HeaderFill == "" {
		o.HeaderFill = d.HeaderFill
	}
	if o.StripeFill == "" {
		o.StripeFill = d.StripeFill
	}
	if o.BorderColor == "" {
		o.BorderColor = d.BorderColor
	}
	return o
}

// ParseFontSize converts a size such as "11pt" to half-points. Only the
// leading digits count; a missing, zero or unparsable size yields
// DefaultFontSize.
func ParseFontSize(s string) int {
	if hp, ok := parseHalfPoints(s); ok {
		return hp
	}
	return DefaultFontSize
}

func parseHalfPoints(s string) (int, bool) {
	pt, ok := ast.ParsePoints(s)
	return pt * 2, ok
}

// headingDelta is the half-point offset from the body size per level.
var headingDelta = [...]int{14, 8, 4, 2, 0, -2}

// HeadingSize returns the half-point size of a heading. Levels outside 1..6
// size like level 6.
func HeadingSize(level, base int) int {
	if level < 1 || level > len(headingDelta) {
		level = len(headingDelta)
	}
	return base + headingDelta[level-1]
}

// Part names inside the package.
const (
	partDocument = "word/document.xml"
	partCore     = "docProps/core.xml"
)

// Render returns the .docx bytes for doc.
func Render(doc *ast.Document, opts Options) ([]byte, error) {
	opts = opts.withDefaults()

	base := opts.DefaultSize
	if fs, ok := doc.Meta.FontSize(); ok {
		if hp, ok := parseHalfPoints(fs); ok {
			base = hp
		}
	}

	out, err := godocx.NewDocument()
	if err != nil {
		return nil, &PackagingError{Msg: err.Error()}
	}
	w := &writer{opts: opts, base: base, out: out}

	w.metadata(doc.Meta)
	for _, b := range doc.Blocks {
		w.block(b)
	}

	title, _ := doc.Meta.Title()
	creator, _ := doc.Meta.Author()
	if err := setCoreProperties(out, title, creator); err != nil {
		return nil, &PackagingError{Msg: err.Error()}
	}

	var buf bytes.Buffer
	if err := out.Write(&buf); err != nil {
		return nil, &PackagingError{Msg: err.Error()}
	}
	return buf.Bytes(), nil
}

type coreProperties struct {
	XMLName xml.Name `xml:"cp:coreProperties"`
	CP      string   `xml:"xmlns:cp,attr"`
	DC      string   `xml:"xmlns:dc,attr"`
	DCTerms string   `xml:"xmlns:dcterms,attr"`
	XSI     string   `xml:"xmlns:xsi,attr"`
	Title   string   `xml:"dc:title,omitempty"`
	Creator string   `xml:"dc:creator,omitempty"`
}

// setCoreProperties replaces the template's core part so the package
// carries the document title and author and no creation timestamps.
func setCoreProperties(out *word.RootDoc, title, creator string) error {
	data, err := xml.Marshal(coreProperties{
		CP:      "http://schemas.openxmlformats.org/package/2006/metadata/core-properties",
		DC:      "http://purl.org/dc/elements/1.1/",
		DCTerms: "http://purl.org/dc/terms/",
		XSI:     "http://www.w3.org/2001/XMLSchema-instance",
		Title:   title,
		Creator: creator,
	})
	if err != nil {
		return err
	}
	out.FileMap.Store(partCore, append([]byte(xml.Header), data...))
	return nil
}

// writer appends rendered blocks to one package.
type writer struct {
	opts Options
	base int
	out  *word.RootDoc
}

func (w *writer) metadata(meta ast.Meta) {
	centered := func(after uint64, text string, s style) {
		p := w.out.AddEmptyParagraph()
		p.Spacing(0, after)
		p.Justification(stypes.JustificationCenter)
		s.add(p, text, w.opts.BodyFont)
	}
	if title, ok := meta.Title(); ok {
		centered(60, title, style{size: 48, bold: true})
	}
	if subtitle, ok := meta.Subtitle(); ok {
		centered(60, subtitle, style{size: 32})
	}
	if author, ok := meta.Author(); ok {
		centered(40, "Author: "+author, style{size: w.base})
	}
	if date, ok := meta.Date(); ok {
		centered(200, date, style{size: w.base})
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ast

// Str is literal text.
type Str struct {
	Text string
}

// Space is inter-word space.
type Space struct{}

// SoftBreak is a source line break; writers render it as a space or newline.
type SoftBreak struct{}

// LineBreak is a hard line break.
type LineBreak struct{}

type Emph struct{ Inlines []Inline }

type Strong struct{ Inlines []Inline }

type Underline struct{ Inlines []Inline }

type Strikeout struct{ Inlines []Inline }

type Superscript struct{ Inlines []Inline }

type Subscript struct{ Inlines []Inline }

type SmallCaps struct{ Inlines []Inline }

// QuoteType distinguishes single from double quotes.
type QuoteType int

const (
	SingleQuote QuoteType = iota
	DoubleQuote
)

// Quoted is text in typographic quotes.
type Quoted struct {
	QuoteType QuoteType
	Inlines   []Inline
}

// Code is inline literal code.
type Code struct {
	Attr Attr
	Text string
}

// MathType distinguishes display math from inline math.
type MathType int

const (
	InlineMath MathType = iota
	DisplayMath
)

// Math is TeX math.
type Math struct {
	MathType MathType
	Text     string
}

// Link is a hyperlink with label inlines.
type Link struct {
	Attr    Attr
	Inlines []Inline
	Target  Target
}

// Image is an image with alt-text inlines.
type Image struct {
	Attr    Attr
	Inlines []Inline
	Target  Target
}

// Note is a footnote or endnote.
type Note struct {
	Blocks []Block
}

// Span is a generic inline container.
type Span struct {
	Attr    Attr
	Inlines []Inline
}

// RawInline is inline content passed through untouched to writers of Format.
type RawInline struct {
	Format Format
	Text   string
}

func (*Str) inline()         {}
func (*Space) inline()       {}
func (*SoftBreak) inline()   {}
func (*LineBreak) inline()   {}
func (*Emph) inline()        {}
func (*Strong) inline()      {}
func (*Underline) inline()   {}
func (*Strikeout) inline()   {}
func (*Superscript) inline() {}
func (*Subscript) inline()   {}
func (*SmallCaps) inline()   {}
func (*Quoted) inline()      {}
func (*Code) inline()        {}
func (*Math) inline()        {}
func (*Link) inline()        {}
func (*Image) inline()       {}
func (*Note) inline()        {}
func (*Span) inline()        {}
func (*RawInline) inline()   {}

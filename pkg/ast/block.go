// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ast

// Plain is a run of inlines not wrapped in a paragraph.
type Plain struct {
	Inlines []Inline
}

// Para is a paragraph.
type Para struct {
	Inlines []Inline
}

// LineBlock is a sequence of lines whose breaks are significant.
type LineBlock struct {
	Lines [][]Inline
}

// Heading is a section heading. Level is 1 through 6.
type Heading struct {
	Attr    Attr
	Level   int
	Inlines []Inline
}

// CodeBlock is literal code. The first class, when present, names the language.
type CodeBlock struct {
	Attr Attr
	Text string
}

// RawBlock is content passed through untouched to writers of Format.
type RawBlock struct {
	Format Format
	Text   string
}

// BlockQuote wraps quoted blocks.
type BlockQuote struct {
	Blocks []Block
}

// BulletList is an unordered list; each item is a block sequence.
type BulletList struct {
	Items [][]Block
}

// ListNumberStyle selects how ordered list items are numbered.
type ListNumberStyle int

const (
	Decimal ListNumberStyle = iota
	LowerAlpha
	UpperAlpha
	LowerRoman
	UpperRoman
)

// ListNumberDelim selects the punctuation around an ordinal.
type ListNumberDelim int

const (
	Period ListNumberDelim = iota
	OneParen
	TwoParens
)

// ListAttrs describes ordered list numbering.
type ListAttrs struct {
	Start int
	Style ListNumberStyle
	Delim ListNumberDelim
}

// DefaultListAttrs numbers from 1 in decimal with a period.
func DefaultListAttrs() ListAttrs {
	return ListAttrs{Start: 1, Style: Decimal, Delim: Period}
}

// OrderedList is a numbered list.
type OrderedList struct {
	ListAttrs ListAttrs
	Items     [][]Block
}

// Definition pairs a term with one or more definitions.
type Definition struct {
	Term        []Inline
	Definitions [][]Block
}

// DefinitionList is a list of terms and their definitions.
type DefinitionList struct {
	Items []Definition
}

// Figure is a captioned container.
type Figure struct {
	Attr    Attr
	Caption Caption
	Blocks  []Block
}

// Div is a generic container.
type Div struct {
	Attr   Attr
	Blocks []Block
}

// HorizontalRule is a thematic break.
type HorizontalRule struct{}

// PageBreak forces a new page in paginated output.
type PageBreak struct{}

func (*Plain) block()          {}
func (*Para) block()           {}
func (*LineBlock) block()      {}
func (*Heading) block()        {}
func (*CodeBlock) block()      {}
func (*RawBlock) block()       {}
func (*BlockQuote) block()     {}
func (*BulletList) block()     {}
func (*OrderedList) block()    {}
func (*DefinitionList) block() {}
func (*Table) block()          {}
func (*Figure) block()         {}
func (*Div) block()            {}
func (*HorizontalRule) block() {}
func (*PageBreak) block()      {}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ast

import (
	"strconv"
	"strings"
)

// InlinesText flattens inlines to plain text, dropping all formatting.
// Links without a label yield their URL; quotes become typographic quotes.
func InlinesText(inlines []Inline) string {
	var b strings.Builder
	writeInlinesText(&b, inlines)
	return b.String()
}

func writeInlinesText(b *strings.Builder, inlines []Inline) {
	for _, in := range inlines {
		switch n := in.(type) {
		case *Str:
			b.WriteString(n.Text)
		case *Space, *SoftBreak:
			b.WriteByte(' ')
		case *LineBreak:
			b.WriteByte('\n')
		case *Emph:
			writeInlinesText(b, n.Inlines)
		case *Strong:
			writeInlinesText(b, n.Inlines)
		case *Underline:
			writeInlinesText(b, n.Inlines)
		case *Strikeout:
			writeInlinesText(b, n.Inlines)
		case *Superscript:
			writeInlinesText(b, n.Inlines)
		case *Subscript:
			writeInlinesText(b, n.Inlines)
		case *SmallCaps:
			writeInlinesText(b, n.Inlines)
		case *Span:
			writeInlinesText(b, n.Inlines)
		case *Quoted:
			open, close := n.QuoteType.Marks()
			b.WriteString(open)
			writeInlinesText(b, n.Inlines)
			b.WriteString(close)
		case *Code:
			b.WriteString(n.Text)
		case *Math:
			b.WriteString(n.Text)
		case *Link:
			if len(n.Inlines) == 0 {
				b.WriteString(n.Target.URL)
			} else {
				writeInlinesText(b, n.Inlines)
			}
		case *Image:
			writeInlinesText(b, n.Inlines)
		case *Note:
			b.WriteString(BlocksText(n.Blocks))
		case *RawInline:
			b.WriteString(n.Text)
		}
	}
}

// BlocksText flattens blocks to a single line of plain text. Nested lists are
// rendered inline with their markers; tables, rules and raw blocks yield
// nothing.
func BlocksText(blocks []Block) string {
	parts := make([]string, 0, len(blocks))
	for _, blk := range blocks {
		var s string
		switch n := blk.(type) {
		case *Para:
			s = InlinesText(n.Inlines)
		case *Plain:
			s = InlinesText(n.Inlines)
		case *Heading:
			s = InlinesText(n.Inlines)
		case *CodeBlock:
			s = n.Text
		case *BulletList:
			items := make([]string, len(n.Items))
			for i, item := range n.Items {
				items[i] = "• " + BlocksText(item)
			}
			s = strings.Join(items, " ")
		case *OrderedList:
			items := make([]string, len(n.Items))
			for i, item := range n.Items {
				items[i] = n.ListAttrs.Marker(i) + " " + BlocksText(item)
			}
			s = strings.Join(items, " ")
		case *BlockQuote:
			s = BlocksText(n.Blocks)
		case *Div:
			s = BlocksText(n.Blocks)
		}
		if s != "" {
			parts = append(parts, s)
		}
	}
	return strings.TrimSpace(strings.Join(parts, " "))
}

// Marks returns the opening and closing quotation marks.
func (q QuoteType) Marks() (open, close string) {
	if q == SingleQuote {
		return "‘", "’"
	}
	return "“", "”"
}

// Marker returns the ordinal marker of the i-th (zero-based) item, e.g.
// "3." or "(c)".
func (a ListAttrs) Marker(i int) string {
	n := a.Start + i
	var num string
	switch a.Style {
	case LowerAlpha:
		num = alpha(n)
	case UpperAlpha:
		num = strings.ToUpper(alpha(n))
	case LowerRoman:
		num = strings.ToLower(roman(n))
	case UpperRoman:
		num = roman(n)
	default:
		num = strconv.Itoa(n)
	}
	switch a.Delim {
	case OneParen:
		return num + ")"
	case TwoParens:
		return "(" + num + ")"
	default:
		return num + "."
	}
}

// alpha renders 1 as "a", 26 as "z", 27 as "aa".
func alpha(n int) string {
	if n < 1 {
		return strconv.Itoa(n)
	}
	var buf []byte
	for n > 0 {
		n--
		buf = append([]byte{byte('a' + n%26)}, buf...)
		n /= 26
	}
	return string(buf)
}

var romanNumerals = []struct {
	value  int
	symbol string
}{
	{1000, "M"}, {900, "CM"}, {500, "D"}, {400, "CD"},
	{100, "C"}, {90, "XC"}, {50, "L"}, {40, "XL"},
	{10, "X"}, {9, "IX"}, {5, "V"}, {4, "IV"}, {1, "I"},
}

func roman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	var b strings.Builder
	for _, r := range romanNumerals {
		for n >= r.value {
			b.WriteString(r.symbol)
			n -= r.value
		}
	}
	return b.String()
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package markup

import (
	"golang.org/x/net/html/atom"

	"github.com/pdiddy/mdconv/pkg/ast"
)

// renderState accumulates output for one document.
type renderState struct {
	dst []byte
}

func (r *renderState) raw(s string) { r.dst = append(r.dst, s...) }

func (r *renderState) nl() { r.dst = append(r.dst, '\n') }

// text appends s escaped for element content.
func (r *renderState) text(s string) { r.dst = appendEscapedText(r.dst, s) }

// openTagAttr writes "<name" and leaves the tag open for attributes.
func (r *renderState) openTagAttr(name atom.Atom) {
	r.dst = append(r.dst, '<')
	r.dst = append(r.dst, name.String()...)
}

func (r *renderState) openTag(name atom.Atom) {
	r.openTagAttr(name)
	r.dst = append(r.dst, '>')
}

func (r *renderState) closeTag(name atom.Atom) {
	r.dst = append(r.dst, "</"...)
	r.dst = append(r.dst, name.String()...)
	r.dst = append(r.dst, '>')
}

// attr writes ` key="value"` with the value escaped for a quoted attribute.
func (r *renderState) attr(key, value string) {
	r.dst = append(r.dst, ' ')
	r.dst = appendEscapedAttr(r.dst, key)
	r.dst = append(r.dst, `="`...)
	r.dst = appendEscapedAttr(r.dst, value)
	r.dst = append(r.dst, '"')
}

// attrs writes the identifier, the space-joined classes and every pair in
// order.
func (r *renderState) attrs(a ast.Attr) {
	if a.ID != "" {
		r.attr("id", a.ID)
	}
	if len(a.Classes) > 0 {
		r.dst = append(r.dst, ` class="`...)
		for i, c := range a.Classes {
			if i > 0 {
				r.dst = append(r.dst, ' ')
			}
			r.dst = appendEscapedAttr(r.dst, c)
		}
		r.dst = append(r.dst, '"')
	}
	for _, kv := range a.Attrs {
		r.attr(kv.Key, kv.Value)
	}
}

func escapeText(s string) string { return string(appendEscapedText(nil, s)) }

// appendEscapedText escapes & < > " and '.
func appendEscapedText(dst []byte, src string) []byte {
	verbatimStart := 0
	for i := 0; i < len(src); i++ {
		var esc string
		switch src[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			esc = "&quot;"
		case '\'':
			esc = "&#39;"
		default:
			continue
		}
		dst = append(dst, src[verbatimStart:i]...)
		dst = append(dst, esc...)
		verbatimStart = i + 1
	}
	return append(dst, src[verbatimStart:]...)
}

// appendEscapedAttr escapes & " < and >.
func appendEscapedAttr(dst []byte, src string) []byte {
	verbatimStart := 0
	for i := 0; i < len(src); i++ {
		var esc string
		switch src[i] {
		case '&':
			esc = "&amp;"
		case '"':
			esc = "&quot;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		default:
			continue
		}
		dst = append(dst, src[verbatimStart:i]...)
		dst = append(dst, esc...)
		verbatimStart = i + 1
	}
	return append(dst, src[verbatimStart:]...)
}

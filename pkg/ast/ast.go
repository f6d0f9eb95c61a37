// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package ast defines the intermediate document tree shared by every reader
// and writer. Blocks and inlines are closed sum types: each variant is a
// concrete struct implementing the sealed Block or Inline interface, and
// consumers dispatch with a type switch.
//
// A tree is built once by a reader and is read-only afterwards. Every node
// owns its children; nodes are never shared between parents or documents.
package ast

// Block is a block-level element. The set of implementations is closed.
type Block interface {
	block()
}

// Inline is an inline element. The set of implementations is closed.
type Inline interface {
	inline()
}

// Document is a complete converted document.
type Document struct {
	Meta   Meta
	Blocks []Block
}

// KV is a single key/value attribute pair.
type KV struct {
	Key   string
	Value string
}

// Attr holds an identifier, ordered classes and ordered key/value pairs.
// The zero value is the empty attribute set.
type Attr struct {
	ID      string
	Classes []string
	Attrs   []KV
}

// IsEmpty reports whether the attribute set carries nothing.
func (a Attr) IsEmpty() bool {
	return a.ID == "" && len(a.Classes) == 0 && len(a.Attrs) == 0
}

// Target is the destination of a link or image.
type Target struct {
	URL   string
	Title string
}

// Format names the target format of raw content, e.g. "html".
type Format string

// FormatHTML is the format tag readers attach to raw HTML.
const FormatHTML Format = "html"

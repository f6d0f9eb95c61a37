// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ast

import (
	"strconv"
	"strings"
)

// Reserved metadata keys.
const (
	KeyTitle    = "title"
	KeySubtitle = "subtitle"
	KeyAuthor   = "author"
	KeyDate     = "date"
	KeyFontSize = "fontsize"
)

// MetaValue is a metadata value. The set of implementations is closed.
type MetaValue interface {
	meta()
}

type MetaString string

type MetaBool bool

type MetaList []MetaValue

type MetaMap map[string]MetaValue

type MetaInlines []Inline

type MetaBlocks []Block

func (MetaString) meta()  {}
func (MetaBool) meta()    {}
func (MetaList) meta()    {}
func (MetaMap) meta()     {}
func (MetaInlines) meta() {}
func (MetaBlocks) meta()  {}

// Meta maps metadata keys to values.
type Meta map[string]MetaValue

// String returns the value of key when it is a string.
func (m Meta) String(key string) (string, bool) {
	s, ok := m[key].(MetaString)
	return string(s), ok
}

// Title returns the document title.
func (m Meta) Title() (string, bool) { return m.String(KeyTitle) }

// Subtitle returns the document subtitle.
func (m Meta) Subtitle() (string, bool) { return m.String(KeySubtitle) }

// Date returns the document date.
func (m Meta) Date() (string, bool) { return m.String(KeyDate) }

// FontSize returns the free-form body size, e.g. "11pt".
func (m Meta) FontSize() (string, bool) { return m.String(KeyFontSize) }

// Author returns the author. A list of string authors is joined with ", ".
func (m Meta) Author() (string, bool) {
	switch v := m[KeyAuthor].(type) {
	case MetaString:
		return string(v), true
	case MetaList:
		var names []string
		for _, item := range v {
			if s, ok := item.(MetaString); ok && s != "" {
				names = append(names, string(s))
			}
		}
		if len(names) == 0 {
			return "", false
		}
		return strings.Join(names, ", "), true
	}
	return "", false
}

// ParsePoints reads the leading integer of a size such as "11pt". It fails
// when there are no leading digits or the value is zero or too large to be a
// font size.
func ParsePoints(s string) (int, bool) {
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	pt, err := strconv.Atoi(s[:end])
	if err != nil || pt <= 0 || pt > 1<<20 {
		return 0, false
	}
	return pt, true
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"
	"strings"
)

// ErrUnsupportedFormat is wrapped by FormatError.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Direction says whether a format is read or written.
type Direction string

const (
	Input  Direction = "input"
	Output Direction = "output"
)

// FormatError reports a format name that no reader or writer accepts.
type FormatError struct {
	Direction Direction
	Name      string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("unsupported %s format: %q", e.Direction, e.Name)
}

func (e *FormatError) Unwrap() error { return ErrUnsupportedFormat }

// Format describes one input or output format. Aliases are the lower-case
// names and extensions that select it.
type Format struct {
	Name        string
	Aliases     []string
	Extension   string
	Description string
}

// Canonical format names.
const (
	Markdown = "markdown"
	HTML     = "html"
	DOCX     = "docx"
	PDF      = "pdf"
)

var inputFormats = []Format{
	{Name: Markdown, Aliases: []string{"markdown", "md"}, Extension: ".md",
		Description: "GitHub Flavored Markdown with YAML front matter"},
	{Name: HTML, Aliases: []string{"html", "htm"}, Extension: ".html",
		Description: "HTML page, main content extracted"},
}

var outputFormats = []Format{
	{Name: HTML, Aliases: []string{"html", "htm"}, Extension: ".html",
		Description: "Styled HTML with embedded CSS"},
	{Name: DOCX, Aliases: []string{"docx"}, Extension: ".docx",
		Description: "Microsoft Word (Open XML)"},
	{Name: PDF, Aliases: []string{"pdf"}, Extension: ".pdf",
		Description: "PDF with core fonts"},
}

// InputFormats returns the readable formats.
func InputFormats() []Format { return slices.Clone(inputFormats) }

// OutputFormats returns the writable formats.
func OutputFormats() []Format { return slices.Clone(outputFormats) }

// LookupInput resolves a case-insensitive input format name or alias.
func LookupInput(name string) (Format, error) {
	return lookup(inputFormats, Input, name)
}

// LookupOutput resolves a case-insensitive output format name or alias.
func LookupOutput(name string) (Format, error) {
	return lookup(outputFormats, Output, name)
}

func lookup(formats []Format, dir Direction, name string) (Format, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, f := range formats {
		if slices.Contains(f.Aliases, key) {
			return f, nil
		}
	}
	return Format{}, &FormatError{Direction: dir, Name: name}
}

// FormatFromPath returns the lower-cased extension of path without the dot,
// or "" when it has none.
func FormatFromPath(path string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
}

// WriteFormatList prints the supported formats.
func WriteFormatList(w io.Writer) {
	fmt.Fprintln(w, "Input formats:")
	for _, f := range InputFormats() {
		fmt.Fprintf(w, "  %-10s%-8s%s\n", f.Name, "("+f.Extension+")", f.Description)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output formats:")
	for _, f := range OutputFormats() {
		fmt.Fprintf(w, "  %-10s%-8s%s\n", f.Name, "("+f.Extension+")", f.Description)
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader turns source text into an ast.Document.
//
// Markdown input is split into YAML front matter and body. The body is
// rewritten by gridtable.Preprocess, parsed by goldmark with the GFM table,
// strikethrough and task-list extensions plus a ^superscript^ extension, and
// the goldmark tree is mapped onto the document model. HTML input is reduced
// to its main content, converted to Markdown and read the same way.
package reader

import (
	"errors"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"

	"github.com/pdiddy/mdconv/internal/gridtable"
	"github.com/pdiddy/mdconv/pkg/ast"
)

// DefaultMaxDepth is the nesting ceiling used when Options.MaxDepth is zero.
const DefaultMaxDepth = 64

var (
	// ErrMetadata is matched by every front-matter failure.
	ErrMetadata = errors.New("invalid metadata")

	// ErrTooDeep reports a parse tree nested beyond Options.MaxDepth.
	ErrTooDeep = errors.New("document nested too deeply")
)

// MetadataError carries the YAML parser's message. It unwraps to ErrMetadata.
type MetadataError struct {
	Msg string
}

func (e *MetadataError) Error() string {
	return fmt.Sprintf("parsing metadata: %s", e.Msg)
}

func (e *MetadataError) Unwrap() error { return ErrMetadata }

// Options controls reading.
type Options struct {
	// MaxDepth bounds block and inline nesting (default 64).
	MaxDepth int
}

func (o Options) maxDepth() int {
	if o.MaxDepth <= 0 {
		return DefaultMaxDepth
	}
	return o.MaxDepth
}

// Read parses Markdown with optional front matter. Front matter is parsed
// before the body, so a metadata error is reported without touching the body.
func Read(input string, opts Options) (*ast.Document, error) {
	yamlText, body, ok := splitFrontMatter(input)
	meta := ast.Meta{}
	if ok {
		var err error
		meta, err = parseMeta(yamlText)
		if err != nil {
			return nil, err
		}
	}

	blocks, err := parseBody(body, opts)
	if err != nil {
		return nil, err
	}
	return &ast.Document{Meta: meta, Blocks: blocks}, nil
}

func parseBody(body string, opts Options) ([]ast.Block, error) {
	src := []byte(gridtable.Preprocess(body))
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.Table,
			extension.Strikethrough,
			extension.TaskList,
			Superscript,
		),
	)
	root := md.Parser().Parse(text.NewReader(src))

	c := &converter{source: src, maxDepth: opts.maxDepth()}
	blocks := c.blocks(root)
	if c.err != nil {
		return nil, c.err
	}
	return blocks, nil
}

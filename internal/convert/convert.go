// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert wires readers and writers together: it resolves formats,
// reads inputs from files, standard input or URLs, renders the document and
// writes the result.
package convert

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/pdiddy/mdconv/internal/catalog"
	"github.com/pdiddy/mdconv/internal/docx"
	"github.com/pdiddy/mdconv/internal/httputil"
	"github.com/pdiddy/mdconv/internal/markup"
	"github.com/pdiddy/mdconv/internal/pdf"
	"github.com/pdiddy/mdconv/internal/reader"
	"github.com/pdiddy/mdconv/pkg/ast"
	"github.com/pdiddy/mdconv/pkg/types"
)

// StdinName is the input path that reads standard input.
const StdinName = "-"

// Converter holds the configuration and collaborators for conversions.
// Catalog is optional; when set, batch runs skip unchanged inputs.
type Converter struct {
	Config  types.Config
	Fetcher *httputil.Fetcher
	Catalog *catalog.Store
	Stdin   io.Reader
}

// New returns a Converter for cfg with zero fields defaulted.
func New(cfg types.Config) *Converter {
	cfg = cfg.WithDefaults()
	return &Converter{
		Config:  cfg,
		Fetcher: httputil.NewFetcher(cfg.HTTP),
		Stdin:   os.Stdin,
	}
}

// Read parses src in the given input format.
func (c *Converter) Read(src []byte, from Format) (*ast.Document, error) {
	opts := reader.Options{MaxDepth: c.Config.Reader.MaxDepth}
	switch from.Name {
	case Markdown:
		return reader.Read(string(src), opts)
	case HTML:
		return reader.ReadHTML(string(src), opts)
	}
	return nil, &FormatError{Direction: Input, Name: from.Name}
}

// Render writes doc in the given output format.
func (c *Converter) Render(doc *ast.Document, to Format) ([]byte, error) {
	switch to.Name {
	case HTML:
		return []byte(markup.Render(doc, markup.OptionsFrom(c.Config.HTML))), nil
	case DOCX:
		return docx.Render(doc, docx.OptionsFrom(c.Config.DOCX))
	case PDF:
		return pdf.Render(doc, pdf.OptionsFrom(c.Config.PDF))
	}
	return nil, &FormatError{Direction: Output, Name: to.Name}
}

// Convert converts src between two named formats. Both names are resolved
// before anything is parsed.
func (c *Converter) Convert(src []byte, from, to string) ([]byte, error) {
	in, err := LookupInput(from)
	if err != nil {
		return nil, err
	}
	out, err := LookupOutput(to)
	if err != nil {
		return nil, err
	}
	return c.convert(src, in, out)
}

func (c *Converter) convert(src []byte, from, to Format) ([]byte, error) {
	doc, err := c.Read(src, from)
	if err != nil {
		return nil, err
	}
	return c.Render(doc, to)
}

// Request describes one file conversion. Input is a path, StdinName or an
// http(s) URL. Empty From and To default to the extensions of Input and
// Output.
type Request struct {
	Input  string
	Output string
	From   string
	To     string
}

// ConvertFile performs req and returns the number of bytes written. The
// output format, and the input format when it can be known without reading,
// are resolved first.
func (c *Converter) ConvertFile(ctx context.Context, req Request) (int, error) {
	toName := req.To
	if toName == "" {
		toName = FormatFromPath(req.Output)
	}
	to, err := LookupOutput(toName)
	if err != nil {
		return 0, err
	}

	var from Format
	if req.From != "" || !httputil.IsURL(req.Input) {
		if from, err = c.inputFormat(req.Input, req.From, ""); err != nil {
			return 0, err
		}
	}

	src, mediaType, err := c.readInput(ctx, req.Input)
	if err != nil {
		return 0, err
	}
	if from.Name == "" {
		if from, err = c.inputFormat(req.Input, req.From, mediaType); err != nil {
			return 0, err
		}
	}

	out, err := c.convert(src, from, to)
	if err != nil {
		return 0, err
	}
	if err := os.WriteFile(req.Output, out, 0o644); err != nil {
		return 0, fmt.Errorf("writing output: %w", err)
	}
	return len(out), nil
}

// inputFormat picks the input format from an explicit name, the media type
// of a fetched body, or the input's extension. Standard input without a
// name is Markdown.
func (c *Converter) inputFormat(input, name, mediaType string) (Format, error) {
	switch {
	case name != "":
		return LookupInput(name)
	case input == StdinName:
		return LookupInput(Markdown)
	case mediaType == "text/html" || mediaType == "application/xhtml+xml":
		return LookupInput(HTML)
	case httputil.IsURL(input):
		u, err := url.Parse(input)
		if err != nil {
			return Format{}, fmt.Errorf("parsing URL: %w", err)
		}
		return LookupInput(FormatFromPath(u.Path))
	}
	return LookupInput(FormatFromPath(input))
}

// readInput returns the raw input and, for URLs, the response media type.
func (c *Converter) readInput(ctx context.Context, input string) ([]byte, string, error) {
	switch {
	case input == StdinName:
		stdin := c.Stdin
		if stdin == nil {
			stdin = os.Stdin
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, "", fmt.Errorf("reading input: %w", err)
		}
		return data, "", nil

	case httputil.IsURL(input):
		fetcher := c.Fetcher
		if fetcher == nil {
			fetcher = httputil.NewFetcher(c.Config.HTTP)
		}
		resp, err := fetcher.Fetch(ctx, input)
		if err != nil {
			return nil, "", fmt.Errorf("reading input: %w", err)
		}
		return resp.Body, resp.MediaType, nil
	}

	data, err := os.ReadFile(input)
	if err != nil {
		return nil, "", fmt.Errorf("reading input: %w", err)
	}
	return data, "", nil
}

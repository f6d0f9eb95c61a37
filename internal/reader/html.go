// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/PuerkitoBio/goquery"

	"github.com/pdiddy/mdconv/pkg/ast"
)

// noiseSelectors are removed before the main content is extracted.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "iframe", "form",
}

// metaNames maps <meta name="..."> to metadata keys.
var metaNames = map[string]string{
	"author":      ast.KeyAuthor,
	"description": ast.KeySubtitle,
	"date":        ast.KeyDate,
}

// ReadHTML reads an HTML page. Metadata comes from <title> and <meta>
// elements; the body is the first of <main>, <article> or <body>, converted
// to Markdown and read like Markdown input.
func ReadHTML(input string, opts Options) (*ast.Document, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(input))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	meta := htmlMeta(doc)

	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return &ast.Document{Meta: meta}, nil
	}

	fragment, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, fmt.Errorf("serializing content: %w", err)
	}
	markdown, err := htmltomarkdown.ConvertString(fragment)
	if err != nil {
		return nil, fmt.Errorf("converting HTML to markdown: %w", err)
	}

	blocks, err := parseBody(markdown, opts)
	if err != nil {
		return nil, err
	}
	return &ast.Document{Meta: meta, Blocks: blocks}, nil
}

func htmlMeta(doc *goquery.Document) ast.Meta {
	meta := ast.Meta{}
	if title := strings.TrimSpace(doc.Find("head title").First().Text()); title != "" {
		meta[ast.KeyTitle] = ast.MetaString(title)
	}
	doc.Find("meta[name]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		key, ok := metaNames[strings.ToLower(strings.TrimSpace(name))]
		if !ok {
			return
		}
		if _, seen := meta[key]; seen {
			return
		}
		if content := strings.TrimSpace(s.AttrOr("content", "")); content != "" {
			meta[key] = ast.MetaString(content)
		}
	})
	return meta
}

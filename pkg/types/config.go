// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types holds configuration shared by the mdconv stages.
package types

import "time"

// HTTPConfig holds settings used when an input is fetched over HTTP.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "mdconv/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`

	// MaxRetries bounds the 429 backoff loop (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// ReaderConfig holds settings for turning source text into a Document.
type ReaderConfig struct {
	// MaxDepth is the deepest block/inline nesting accepted (default 64).
	MaxDepth int `json:"max_depth" yaml:"max_depth" mapstructure:"max_depth"`
}

// HTMLConfig holds settings for the styled HTML writer.
type HTMLConfig struct {
	// DefaultFontSize is the body size when the document sets no fontsize.
	DefaultFontSize string `json:"default_font_size" yaml:"default_font_size" mapstructure:"default_font_size"`

	// AccentColor fills table header cells and colors headings.
	AccentColor string `json:"accent_color" yaml:"accent_color" mapstructure:"accent_color"`

	// StripeColor fills even body rows.
	StripeColor string `json:"stripe_color" yaml:"stripe_color" mapstructure:"stripe_color"`

	// MaxWidth caps the body width.
	MaxWidth string `json:"max_width" yaml:"max_width" mapstructure:"max_width"`
}

// DOCXConfig holds settings for the Word writer. Sizes are in half-points,
// widths in twips and colors are hex without '#'.
type DOCXConfig struct {
	BodyFont    string `json:"body_font" yaml:"body_font" mapstructure:"body_font"`
	CodeFont    string `json:"code_font" yaml:"code_font" mapstructure:"code_font"`
	DefaultSize int    `json:"default_size" yaml:"default_size" mapstructure:"default_size"`
	TableWidth  int    `json:"table_width" yaml:"table_width" mapstructure:"table_width"`
	HeaderFill  string `json:"header_fill" yaml:"header_fill" mapstructure:"header_fill"`
	StripeFill  string `json:"stripe_fill" yaml:"stripe_fill" mapstructure:"stripe_fill"`
	BorderColor string `json:"border_color" yaml:"border_color" mapstructure:"border_color"`
}

// PDFConfig holds settings for the PDF writer.
type PDFConfig struct {
	// PageSize is a gofpdf size name such as "A4" or "Letter".
	PageSize string `json:"page_size" yaml:"page_size" mapstructure:"page_size"`

	// Font is a core PDF font family (Helvetica, Times, Courier).
	Font string `json:"font" yaml:"font" mapstructure:"font"`
}

// CatalogConfig holds settings for the conversion catalog.
type CatalogConfig struct {
	// Path is the SQLite file. Empty disables the catalog.
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}

// Config groups all stage configurations.
type Config struct {
	Reader  ReaderConfig  `json:"reader" yaml:"reader" mapstructure:"reader"`
	HTML    HTMLConfig    `json:"html" yaml:"html" mapstructure:"html"`
	DOCX    DOCXConfig    `json:"docx" yaml:"docx" mapstructure:"docx"`
	PDF     PDFConfig     `json:"pdf" yaml:"pdf" mapstructure:"pdf"`
	Catalog CatalogConfig `json:"catalog" yaml:"catalog" mapstructure:"catalog"`
	HTTP    HTTPConfig    `json:"http" yaml:"http" mapstructure:"http"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Reader: ReaderConfig{MaxDepth: 64},
		HTML: HTMLConfig{
			DefaultFontSize: "12pt",
			AccentColor:     "#1F4E79",
			StripeColor:     "#EDF2F7",
			MaxWidth:        "800px",
		},
		DOCX: DOCXConfig{
			BodyFont:    "Calibri",
			CodeFont:    "Courier New",
			DefaultSize: 24,
			TableWidth:  9000,
			HeaderFill:  "1F4E79",
			StripeFill:  "EDF2F7",
			BorderColor: "333333",
		},
		PDF: PDFConfig{
			PageSize: "A4",
			Font:     "Helvetica",
		},
		HTTP: HTTPConfig{
			Timeout:    30 * time.Second,
			UserAgent:  "mdconv/0.1",
			MaxRetries: 5,
		},
	}
}

// WithDefaults fills zero-valued fields from DefaultConfig.
func (c Config) WithDefaults() Config {
	d := DefaultConfig()
	if c.Reader.MaxDepth <= 0 {
		c.Reader.MaxDepth = d.Reader.MaxDepth
	}
	fill := func(dst *string, def string) {
		if *dst == "" {
			*dst = def
		}
	}
	fill(&c.HTML.DefaultFontSize, d.HTML.DefaultFontSize)
	fill(&c.HTML.AccentColor, d.HTML.AccentColor)
	fill(&c.HTML.StripeColor, d.HTML.StripeColor)
	fill(&c.HTML.MaxWidth, d.HTML.MaxWidth)
	fill(&c.DOCX.BodyFont, d.DOCX.BodyFont)
	fill(&c.DOCX.CodeFont, d.DOCX.CodeFont)
	fill(&c.DOCX.HeaderFill, d.DOCX.HeaderFill)
	fill(&c.DOCX.StripeFill, d.DOCX.StripeFill)
	fill(&c.DOCX.BorderColor, d.DOCX.BorderColor)
	if c.DOCX.DefaultSize <= 0 {
		c.DOCX.DefaultSize = d.DOCX.DefaultSize
	}
	if c.DOCX.TableWidth <= 0 {
		c.DOCX.TableWidth = d.DOCX.TableWidth
	}
	fill(&c.PDF.PageSize, d.PDF.PageSize)
	fill(&c.PDF.Font, d.PDF.Font)
	if c.HTTP.Timeout <= 0 {
		c.HTTP.Timeout = d.HTTP.Timeout
	}
	fill(&c.HTTP.UserAgent, d.HTTP.UserAgent)
	if c.HTTP.MaxRetries <= 0 {
		c.HTTP.MaxRetries = d.HTTP.MaxRetries
	}
	return c
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.yaml.in/yaml/v3"
)

func TestWithDefaultsFillsZeroValues(t *testing.T) {
	got := Config{}.WithDefaults()
	assert.Equal(t, DefaultConfig(), got)
}

func TestWithDefaultsKeepsOverrides(t *testing.T) {
	cfg := Config{
		HTML: HTMLConfig{DefaultFontSize: "10pt"},
		DOCX: DOCXConfig{BodyFont: "Arial", DefaultSize: 20},
		HTTP: HTTPConfig{Timeout: time.Second},
	}.WithDefaults()

	assert.Equal(t, "10pt", cfg.HTML.DefaultFontSize)
	assert.Equal(t, "#1F4E79", cfg.HTML.AccentColor)
	assert.Equal(t, "Arial", cfg.DOCX.BodyFont)
	assert.Equal(t, 20, cfg.DOCX.DefaultSize)
	assert.Equal(t, 9000, cfg.DOCX.TableWidth)
	assert.Equal(t, time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 64, cfg.Reader.MaxDepth)
}

func TestConfigYAMLTags(t *testing.T) {
	src := `
html:
  default_font_size: 11pt
docx:
  code_font: Consolas
  table_width: 8000
reader:
  max_depth: 10
catalog:
  path: conversions.db
`
	var cfg Config
	err := yaml.Unmarshal([]byte(src), &cfg)
	assert.NoError(t, err)
	assert.Equal(t, "11pt", cfg.HTML.DefaultFontSize)
	assert.Equal(t, "Consolas", cfg.DOCX.CodeFont)
	assert.Equal(t, 8000, cfg.DOCX.TableWidth)
	assert.Equal(t, 10, cfg.Reader.MaxDepth)
	assert.Equal(t, "conversions.db", cfg.Catalog.Path)
}

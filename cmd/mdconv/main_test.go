// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/mdconv/internal/catalog"
)

// resetFlags restores every flag in the command tree to its default so
// executions within one test binary do not leak into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	resetFlags(rootCmd)
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetIn(strings.NewReader(stdin))
	if args == nil {
		args = []string{}
	}
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestRootRequiresInputAndOutput(t *testing.T) {
	_, err := execute(t, "")
	assert.EqualError(t, err, "<INPUT> is required; run with --help for usage")

	_, err = execute(t, "", "notes.md")
	assert.EqualError(t, err, "--output <OUTPUT> is required; run with --help for usage")

	_, err = execute(t, "", "a.md", "b.md", "-o", "x.html")
	assert.Error(t, err)
}

func TestRootListFormats(t *testing.T) {
	out, err := execute(t, "", "--list-formats")
	require.NoError(t, err)
	assert.Contains(t, out, "Input formats:")
	assert.Contains(t, out, "  docx      (.docx) Microsoft Word (Open XML)")

	out, err = execute(t, "", "formats")
	require.NoError(t, err)
	assert.Contains(t, out, "Output formats:")
}

func TestRootConvertsStdin(t *testing.T) {
	outPath := filepath.Join(t.TempDir(), "out.html")
	_, err := execute(t, "# Hello\n", "-", "-o", outPath)
	require.NoError(t, err)

	data, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Hello</h1>")
}

func TestRootUnsupportedOutput(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "in.md")
	require.NoError(t, os.WriteFile(in, []byte("# x\n"), 0o644))

	_, err := execute(t, "", in, "-o", filepath.Join(dir, "out.odt"))
	assert.EqualError(t, err, `unsupported output format: "odt"`)
}

func TestBatchWithCatalog(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src")
	require.NoError(t, os.MkdirAll(src, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.md"), []byte("# A\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(src, "b.md"), []byte("# B\n"), 0o644))
	outDir := filepath.Join(dir, "out")
	db := filepath.Join(dir, "catalog.db")

	out, err := execute(t, "", "batch", src, "--out-dir", outDir, "-t", "docx", "--catalog", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch summary: 2 converted, 0 skipped, 0 failed (total: 2)")
	assert.FileExists(t, filepath.Join(outDir, "a.docx"))

	out, err = execute(t, "", "batch", src, "--out-dir", outDir, "-t", "docx", "--catalog", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch summary: 0 converted, 2 skipped, 0 failed (total: 2)")

	out, err = execute(t, "", "batch", src, "--out-dir", outDir, "-t", "docx", "--catalog", db, "--quiet")
	require.NoError(t, err)
	assert.Empty(t, out)

	out, err = execute(t, "", "catalog", "export", "--catalog", db, "--format", "json")
	require.NoError(t, err)
	var entries []catalog.Entry
	require.NoError(t, json.Unmarshal([]byte(out), &entries))
	assert.Len(t, entries, 2)

	out, err = execute(t, "", "catalog", "list", "--catalog", db)
	require.NoError(t, err)
	assert.Contains(t, out, "2 conversions")

	a := filepath.Join(src, "a.md")
	out, err = execute(t, "", "catalog", "forget", a, "-t", "docx", "--catalog", db)
	require.NoError(t, err)
	assert.Contains(t, out, "forgot: "+a+" (docx)")

	out, err = execute(t, "", "batch", src, "--out-dir", outDir, "-t", "docx", "--catalog", db)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch summary: 1 converted, 1 skipped, 0 failed (total: 2)")
}

func TestBatchReportsFailures(t *testing.T) {
	dir := t.TempDir()
	out, err := execute(t, "", "batch", filepath.Join(dir, "missing.md"), "--out-dir", dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 input(s) failed")
	assert.Contains(t, out, "failed:  ")
}

func TestCatalogRequiresPath(t *testing.T) {
	_, err := execute(t, "", "catalog", "list")
	assert.EqualError(t, err, "no catalog configured: pass --catalog or set catalog.path")
}

func TestLoadConfig(t *testing.T) {
	defer viper.Reset()
	viper.Reset()

	path := filepath.Join(t.TempDir(), "mdconv.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
pdf:
  page_size: Letter
docx:
  body_font: Georgia
http:
  timeout: 5s
`), 0o644))
	viper.SetConfigFile(path)
	require.NoError(t, viper.ReadInConfig())

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "Letter", cfg.PDF.PageSize)
	assert.Equal(t, "Georgia", cfg.DOCX.BodyFont)
	assert.Equal(t, "Courier New", cfg.DOCX.CodeFont)
	assert.Equal(t, 5*time.Second, cfg.HTTP.Timeout)
	assert.Equal(t, 64, cfg.Reader.MaxDepth)
}

func TestWriteEntriesEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, writeEntries(&buf, nil))
	assert.Equal(t, "No conversions recorded.\n", buf.String())
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.yaml.in/yaml/v3"
)

func testStore(t *testing.T) (*Store, string) {
	t.Helper()
	dir := t.TempDir()
	s, err := Open(filepath.Join(dir, "index", "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s, dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestOpenCreatesDatabase(t *testing.T) {
	_, dir := testStore(t)
	_, err := os.Stat(filepath.Join(dir, "index", "catalog.db"))
	assert.NoError(t, err)
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.db")
	s1, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s1.Record(context.Background(), Entry{Source: "a.md", Digest: "d", Format: "html", Output: "a.html"}))
	require.NoError(t, s1.Close())

	s2, err := Open(path)
	require.NoError(t, err)
	defer s2.Close()
	_, ok, err := s2.Lookup(context.Background(), "a.md", "html")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRecordAndLookup(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	at := time.Date(2026, 3, 4, 5, 6, 7, 0, time.UTC)

	_, ok, err := s.Lookup(ctx, "doc.md", "docx")
	require.NoError(t, err)
	assert.False(t, ok)

	want := Entry{Source: "doc.md", Digest: "abc", Format: "docx", Output: "out/doc.docx", Bytes: 1234, ConvertedAt: at}
	require.NoError(t, s.Record(ctx, want))

	got, ok, err := s.Lookup(ctx, "doc.md", "docx")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, want.Source, got.Source)
	assert.Equal(t, want.Digest, got.Digest)
	assert.Equal(t, want.Output, got.Output)
	assert.Equal(t, want.Bytes, got.Bytes)
	assert.True(t, at.Equal(got.ConvertedAt))

	// Same source, other format is a separate row.
	_, ok, err = s.Lookup(ctx, "doc.md", "html")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestRecordReplaces(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	require.NoError(t, s.Record(ctx, Entry{Source: "a.md", Digest: "old", Format: "html", Output: "a.html", Bytes: 1}))
	require.NoError(t, s.Record(ctx, Entry{Source: "a.md", Digest: "new", Format: "html", Output: "a.html", Bytes: 2}))

	entries, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "new", entries[0].Digest)
	assert.Equal(t, int64(2), entries[0].Bytes)
	assert.False(t, entries[0].ConvertedAt.IsZero())
}

func TestFresh(t *testing.T) {
	s, dir := testStore(t)
	ctx := context.Background()
	out := filepath.Join(dir, "a.html")
	writeFile(t, out, "<html></html>")
	require.NoError(t, s.Record(ctx, Entry{Source: "a.md", Digest: Digest([]byte("# A")), Format: "html", Output: out}))

	tests := []struct {
		name   string
		source string
		digest string
		format string
		setup  func()
		want   bool
	}{
		{name: "unchanged", source: "a.md", digest: Digest([]byte("# A")), format: "html", want: true},
		{name: "content changed", source: "a.md", digest: Digest([]byte("# B")), format: "html"},
		{name: "other format", source: "a.md", digest: Digest([]byte("# A")), format: "docx"},
		{name: "unknown source", source: "b.md", digest: Digest([]byte("# A")), format: "html"},
		{
			name: "output removed", source: "a.md", digest: Digest([]byte("# A")), format: "html",
			setup: func() { require.NoError(t, os.Remove(out)) },
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.setup != nil {
				tt.setup()
			}
			got, err := s.Fresh(ctx, tt.source, tt.digest, tt.format)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestListOrderAndForget(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()
	for _, e := range []Entry{
		{Source: "b.md", Format: "html"},
		{Source: "a.md", Format: "pdf"},
		{Source: "a.md", Format: "docx"},
	} {
		require.NoError(t, s.Record(ctx, e))
	}

	entries, err := s.List(ctx)
	require.NoError(t, err)
	var keys []string
	for _, e := range entries {
		keys = append(keys, e.Source+":"+e.Format)
	}
	assert.Equal(t, []string{"a.md:docx", "a.md:pdf", "b.md:html"}, keys)

	require.NoError(t, s.Forget(ctx, "a.md", "pdf"))
	entries, err = s.List(ctx)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestDigest(t *testing.T) {
	assert.Equal(t, "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Digest(nil))
	assert.NotEqual(t, Digest([]byte("a")), Digest([]byte("b")))
}

func TestExport(t *testing.T) {
	s, _ := testStore(t)
	ctx := context.Background()

	var empty bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, &empty))
	assert.Equal(t, "[]\n", empty.String())

	require.NoError(t, s.Record(ctx, Entry{Source: "a.md", Digest: "d1", Format: "html", Output: "a.html", Bytes: 10}))
	require.NoError(t, s.Record(ctx, Entry{Source: "b.md", Digest: "d2", Format: "pdf", Output: "b.pdf", Bytes: 20}))

	var yb bytes.Buffer
	require.NoError(t, s.ExportYAML(ctx, &yb))
	var fromYAML []Entry
	require.NoError(t, yaml.Unmarshal(yb.Bytes(), &fromYAML))
	require.Len(t, fromYAML, 2)
	assert.Equal(t, "b.pdf", fromYAML[1].Output)

	var jb bytes.Buffer
	require.NoError(t, s.ExportJSON(ctx, &jb))
	var fromJSON []Entry
	require.NoError(t, json.Unmarshal(jb.Bytes(), &fromJSON))
	require.Len(t, fromJSON, 2)
	assert.Equal(t, int64(10), fromJSON[0].Bytes)
}

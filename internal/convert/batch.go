// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/pdiddy/mdconv/internal/catalog"
	"github.com/pdiddy/mdconv/internal/httputil"
)

// Status is the outcome of one batch item.
type Status string

const (
	StatusConverted Status = "converted"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// BatchResult tracks the outcome of a batch conversion.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int
}

// Total returns the total number of inputs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any input failed.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

func (r *BatchResult) add(s Status) {
	switch s {
	case StatusConverted:
		r.Converted++
	case StatusSkipped:
		r.Skipped++
	case StatusFailed:
		r.Failed++
	}
}

// ConvertBatch converts every input into outDir using the output format
// named by to, logging one line per input and a summary line to w. Inputs
// whose content and output are unchanged since the last recorded run are
// skipped when a catalog is attached. Only an unsupported output format or
// a cancelled context end the batch early with an error.
func (c *Converter) ConvertBatch(ctx context.Context, inputs []string, outDir, to string, w io.Writer) (BatchResult, error) {
	var result BatchResult

	format, err := LookupOutput(to)
	if err != nil {
		return result, err
	}

	for _, input := range inputs {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		result.add(c.convertInto(ctx, input, outDir, format, w))
	}

	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result, nil
}

// convertInto converts one batch input to outDir/<base><ext>.
func (c *Converter) convertInto(ctx context.Context, input, outDir string, to Format, w io.Writer) Status {
	outPath := filepath.Join(outDir, outputBase(input)+to.Extension)

	src, mediaType, err := c.readInput(ctx, input)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", input, err)
		return StatusFailed
	}

	key := SourceKey(input)
	digest := catalog.Digest(src)
	if c.Catalog != nil {
		fresh, err := c.Catalog.Fresh(ctx, key, digest, to.Name)
		if err != nil {
			fmt.Fprintf(w, "warning: catalog lookup for %s: %v\n", input, err)
		} else if fresh {
			fmt.Fprintf(w, "skipped: %s (unchanged)\n", input)
			return StatusSkipped
		}
	}

	from, err := c.inputFormat(input, "", mediaType)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", input, err)
		return StatusFailed
	}
	out, err := c.convert(src, from, to)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", input, err)
		return StatusFailed
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(w, "failed:  %s (creating output directory: %v)\n", input, err)
		return StatusFailed
	}
	if err := os.WriteFile(outPath, out, 0o644); err != nil {
		fmt.Fprintf(w, "failed:  %s (writing output: %v)\n", input, err)
		return StatusFailed
	}

	if c.Catalog != nil {
		entry := catalog.Entry{
			Source: key,
			Digest: digest,
			Format: to.Name,
			Output: outPath,
			Bytes:  int64(len(out)),
		}
		if err := c.Catalog.Record(ctx, entry); err != nil {
			fmt.Fprintf(w, "warning: catalog update for %s: %v\n", input, err)
		}
	}

	fmt.Fprintf(w, "converted: %s -> %s\n", input, outPath)
	return StatusConverted
}

// outputBase returns the file name stem used for a batch output. URLs use
// the last path element, or the host for a bare site.
func outputBase(input string) string {
	name := input
	if httputil.IsURL(input) {
		u, err := url.Parse(input)
		if err != nil {
			return "index"
		}
		name = path.Base(u.Path)
		if name == "/" || name == "." {
			return u.Hostname()
		}
	} else {
		name = filepath.Base(input)
	}
	stem := strings.TrimSuffix(name, path.Ext(name))
	if stem == "" {
		return "index"
	}
	return stem
}

// SourceKey identifies an input in the catalog. Local paths are made
// absolute so the same file is recognised from any working directory.
func SourceKey(input string) string {
	if httputil.IsURL(input) || input == StdinName {
		return input
	}
	if abs, err := filepath.Abs(input); err == nil {
		return abs
	}
	return input
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdconv/internal/catalog"
	"github.com/pdiddy/mdconv/internal/convert"
)

var batchCmd = &cobra.Command{
	Use:   "batch <inputs...>",
	Short: "Convert many inputs into an output directory",
	Long: `Batch converts each input to <out-dir>/<name>.<ext>. Directories contribute
their Markdown and HTML files. Failures are reported and the batch continues.

With a catalog (--catalog or catalog.path), successful conversions are
recorded in SQLite and inputs whose content and output are unchanged are
skipped on later runs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runBatch,
}

func runBatch(cmd *cobra.Command, args []string) error {
	outDir, _ := cmd.Flags().GetString("out-dir")
	to, _ := cmd.Flags().GetString("to")

	c, err := newConverter()
	if err != nil {
		return err
	}
	c.Stdin = cmd.InOrStdin()

	if path := catalogPath(cmd, c.Config.Catalog.Path); path != "" {
		store, err := catalog.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()
		c.Catalog = store
	}

	inputs, err := convert.CollectInputs(args)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if quiet, _ := cmd.Flags().GetBool("quiet"); quiet {
		w = io.Discard
	}

	result, err := c.ConvertBatch(cmd.Context(), inputs, outDir, to, w)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("%d of %d input(s) failed", result.Failed, result.Total())
	}
	return nil
}

// catalogPath prefers an explicit --catalog flag over the configured path.
func catalogPath(cmd *cobra.Command, configured string) string {
	if cmd.Flags().Changed("catalog") {
		p, _ := cmd.Flags().GetString("catalog")
		return p
	}
	return configured
}

func init() {
	batchCmd.Flags().String("out-dir", ".", "directory for converted files")
	batchCmd.Flags().StringP("to", "t", "html", "output format: html, docx or pdf")
	batchCmd.Flags().String("catalog", "", "SQLite catalog used to skip unchanged inputs")

	rootCmd.AddCommand(batchCmd)
}

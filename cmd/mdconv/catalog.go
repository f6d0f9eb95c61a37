// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/pdiddy/mdconv/internal/catalog"
	"github.com/pdiddy/mdconv/internal/convert"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the conversion catalog",
	Long: `Catalog reads the SQLite database that batch runs use to skip unchanged
inputs. The database is taken from --catalog or catalog.path.`,
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recorded conversions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		entries, err := store.List(cmd.Context())
		if err != nil {
			return err
		}
		return writeEntries(cmd.OutOrStdout(), entries)
	},
}

func writeEntries(w io.Writer, entries []catalog.Entry) error {
	if len(entries) == 0 {
		fmt.Fprintln(w, "No conversions recorded.")
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "Format\tBytes\tConverted\tSource\tOutput")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\n",
			e.Format, e.Bytes, e.ConvertedAt.Format("2006-01-02 15:04"), e.Source, e.Output)
	}
	if err := tw.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d conversions\n", len(entries))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON on stdout",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		switch format {
		case "yaml", "":
			return store.ExportYAML(cmd.Context(), cmd.OutOrStdout())
		case "json":
			return store.ExportJSON(cmd.Context(), cmd.OutOrStdout())
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
	},
}

// --- forget subcommand ---

var catalogForgetCmd = &cobra.Command{
	Use:   "forget <INPUT>...",
	Short: "Drop recorded conversions so the next batch run redoes them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, _ := cmd.Flags().GetString("to")
		format, err := convert.LookupOutput(to)
		if err != nil {
			return err
		}

		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		for _, input := range args {
			key := convert.SourceKey(input)
			if err := store.Forget(cmd.Context(), key, format.Name); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "forgot: %s (%s)\n", key, format.Name)
		}
		return nil
	},
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	path := catalogPath(cmd, cfg.Catalog.Path)
	if path == "" {
		return nil, errors.New("no catalog configured: pass --catalog or set catalog.path")
	}
	return catalog.Open(path)
}

func init() {
	catalogCmd.PersistentFlags().String("catalog", "", "SQLite catalog path")

	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogForgetCmd.Flags().StringP("to", "t", "html", "output format of the conversions to drop")

	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogExportCmd)
	catalogCmd.AddCommand(catalogForgetCmd)

	rootCmd.AddCommand(catalogCmd)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the mdconv CLI.
package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/mdconv/internal/convert"
	"github.com/pdiddy/mdconv/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd converts a single input. Other operations are subcommands.
var rootCmd = &cobra.Command{
	Use:   "mdconv [INPUT]",
	Short: "Convert Markdown documents to HTML, DOCX or PDF",
	Long: `mdconv converts Markdown to styled HTML, Word (DOCX) or PDF. YAML front
matter supplies metadata (title, subtitle, author, date, fontsize); pipe and
grid tables, fenced divs and \newpage are supported. HTML pages, local or
fetched over http(s), can be used as input.

Use "-" as input to read from stdin. Formats are detected from file
extensions unless -f or -t is given.`,
	Example: `  mdconv input.md -o output.html
  mdconv input.md -o output.docx
  mdconv input.md -o out.html -t html
  mdconv data.txt -f md -t html -o o.html
  cat input.md | mdconv - -t html -o o.html
  mdconv https://example.com/post -o post.pdf`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	if list, _ := cmd.Flags().GetBool("list-formats"); list {
		convert.WriteFormatList(cmd.OutOrStdout())
		return nil
	}

	if len(args) == 0 {
		return errors.New("<INPUT> is required; run with --help for usage")
	}
	output, _ := cmd.Flags().GetString("output")
	if output == "" {
		return errors.New("--output <OUTPUT> is required; run with --help for usage")
	}
	from, _ := cmd.Flags().GetString("from")
	to, _ := cmd.Flags().GetString("to")

	c, err := newConverter()
	if err != nil {
		return err
	}
	c.Stdin = cmd.InOrStdin()

	_, err = c.ConvertFile(cmd.Context(), convert.Request{
		Input:  args[0],
		Output: output,
		From:   from,
		To:     to,
	})
	return err
}

// newConverter builds a Converter from the loaded configuration.
func newConverter() (*convert.Converter, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return convert.New(cfg), nil
}

// loadConfig decodes viper's merged settings over the defaults.
func loadConfig() (types.Config, error) {
	cfg := types.DefaultConfig()
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("reading configuration: %w", err)
	}
	return cfg.WithDefaults(), nil
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./mdconv.yaml or ~/.config/mdconv/mdconv.yaml)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress per-file status lines")

	rootCmd.Flags().StringP("output", "o", "", "output file path (required); extension selects the format unless -t is set")
	rootCmd.Flags().StringP("from", "f", "", "input format: markdown (md) or html; detected from the extension if omitted")
	rootCmd.Flags().StringP("to", "t", "", "output format: html, docx or pdf; detected from the extension if omitted")
	rootCmd.Flags().Bool("list-formats", false, "list supported input and output formats, then exit")
}

// setDefaults registers every configuration key so that environment
// variables such as MDCONV_PDF_PAGE_SIZE are seen by Unmarshal.
func setDefaults(v *viper.Viper) {
	d := types.DefaultConfig()
	v.SetDefault("reader.max_depth", d.Reader.MaxDepth)
	v.SetDefault("html.default_font_size", d.HTML.DefaultFontSize)
	v.SetDefault("html.accent_color", d.HTML.AccentColor)
	v.SetDefault("html.stripe_color", d.HTML.StripeColor)
	v.SetDefault("html.max_width", d.HTML.MaxWidth)
	v.SetDefault("docx.body_font", d.DOCX.BodyFont)
	v.SetDefault("docx.code_font", d.DOCX.CodeFont)
	v.SetDefault("docx.default_size", d.DOCX.DefaultSize)
	v.SetDefault("docx.table_width", d.DOCX.TableWidth)
	v.SetDefault("docx.header_fill", d.DOCX.HeaderFill)
	v.SetDefault("docx.stripe_fill", d.DOCX.StripeFill)
	v.SetDefault("docx.border_color", d.DOCX.BorderColor)
	v.SetDefault("pdf.page_size", d.PDF.PageSize)
	v.SetDefault("pdf.font", d.PDF.Font)
	v.SetDefault("catalog.path", d.Catalog.Path)
	v.SetDefault("http.timeout", d.HTTP.Timeout)
	v.SetDefault("http.user_agent", d.HTTP.UserAgent)
	v.SetDefault("http.max_retries", d.HTTP.MaxRetries)
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("mdconv")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "mdconv"))
		}
	}

	setDefaults(viper.GetViper())
	viper.SetEnvPrefix("MDCONV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

package main

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/graker/blogarchive/d6import"
)

var preprocessCfg d6import.Config

func newPreprocessCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "d6-preprocess <input.csv> <output.csv>",
		Short: "Preprocess a Drupal 6 CSV export for import",
		Long: `Preprocess a CSV file of blog posts exported from Drupal 6 nodes:
removes teasers duplicating the content, extracts and normalizes slugs from
the link column, makes slugs unique across the file, fixes category
delimiters, and optionally rewrites the HTML of content and teaser.

Example:
  blogarchive d6-preprocess export.csv import.csv \
    --files /storage/app/old-files --lightbox-to-magnific --code-to-prettify`,
		Args: cobra.ExactArgs(2),
		RunE: runPreprocess,
	}

	cmd.Flags().StringVar(&preprocessCfg.FileLinksPath, "files", "",
		"Imported files folder path (e.g. /storage/app/old-files, no trailing slash); rewrites old file links when set")
	cmd.Flags().StringVar(&preprocessCfg.ExternalDomain, "external-domain", "",
		"Domain whose absolute links are rewritten to root-relative form")
	cmd.Flags().BoolVar(&preprocessCfg.LightboxToMagnific, "lightbox-to-magnific", false,
		`Replace rel="lightbox" with class="magnific"`)
	cmd.Flags().BoolVar(&preprocessCfg.MagnifyOrphanPreviews, "magnify-previews", false,
		"Wrap bare preview images with a magnifying link to the full-size image")
	cmd.Flags().BoolVar(&preprocessCfg.CodeToPrettify, "code-to-prettify", false,
		"Restructure legacy code blocks into prettyprint <pre><code> blocks")

	return cmd
}

func runPreprocess(cmd *cobra.Command, args []string) error {
	input, output := args[0], args[1]
	log.Info().Str("file", input).Msg("Processing file")

	rows, err := d6import.ReadFile(input)
	if err != nil {
		return err
	}
	log.Info().Int("rows", len(rows)-1).Msg("CSV file is parsed, processing rows")

	processed, err := d6import.Preprocess(rows, preprocessCfg)
	if err != nil {
		return fmt.Errorf("preprocessing failed: %w", err)
	}

	if err := d6import.WriteFile(output, processed); err != nil {
		return err
	}

	log.Info().Str("file", output).Msg("Processed CSV is written")
	return nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/quizpdf/internal/convert"
	"github.com/pdiddy/quizpdf/internal/extract"
	"github.com/pdiddy/quizpdf/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert <pdf>...",
	Short: "Convert quiz PDFs to JSON question records",
	Long: `Convert extracts the text of a quiz PDF and writes one record per
question: its number, text, options A-D, and answer letter.

With a single PDF the records go to --output (default questions.json).
With --output-dir, several PDFs, or a directory argument, each PDF is
written to <output-dir>/<name>.json; existing files are skipped unless
--force is given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := conversionConfig(cmd)

	ex, err := extract.New(cfg.Extraction)
	if err != nil {
		return err
	}

	outDir, _ := cmd.Flags().GetString("output-dir")
	pdfs, expanded, err := expandPDFArgs(args)
	if err != nil {
		return err
	}

	if outDir == "" && len(pdfs) == 1 && !expanded {
		output, _ := cmd.Flags().GetString("output")
		_, err := convert.Run(context.Background(), ex, cfg, pdfs[0], output, os.Stdout)
		return err
	}

	if outDir == "" {
		outDir = "."
	}
	result := convert.Batch(context.Background(), ex, cfg, pdfs, outDir, os.Stdout)
	if result.HasFailures() {
		return fmt.Errorf("%d PDF(s) failed conversion", result.Failed)
	}
	return nil
}

// expandPDFArgs replaces directory arguments with the PDFs they contain.
// It reports whether any directory was expanded.
func expandPDFArgs(args []string) ([]string, bool, error) {
	var (
		pdfs     []string
		expanded bool
	)
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil || !info.IsDir() {
			// Missing files are reported by the extractor.
			pdfs = append(pdfs, arg)
			continue
		}
		found, err := convert.FindPDFs(arg)
		if err != nil {
			return nil, false, err
		}
		pdfs = append(pdfs, found...)
		expanded = true
	}
	if len(pdfs) == 0 {
		return nil, false, fmt.Errorf("no PDF files found in %v", args)
	}
	return pdfs, expanded, nil
}

func conversionConfig(cmd *cobra.Command) types.ConversionConfig {
	cfg := types.ConversionConfig{
		Extraction: extractionConfig(),
		Format:     types.OutputFormat(viper.GetString(keyFormat)),
	}
	if noValidate, _ := cmd.Flags().GetBool("no-validate"); noValidate {
		cfg.Extraction.Validate = false
	}
	cfg.Force, _ = cmd.Flags().GetBool("force")
	cfg.Verbose, _ = cmd.Flags().GetBool("verbose")
	return cfg
}

func init() {
	convertCmd.Flags().StringP("output", "o", "", "output file for a single PDF (default questions.json)")
	convertCmd.Flags().String("output-dir", "", "write one file per PDF into this directory")
	convertCmd.Flags().String("format", "json", "output format: json or yaml")
	convertCmd.Flags().String("backend", "ledongthuc", "extraction backend: ledongthuc, dslipak, pdfcpu, or pdftotext")
	convertCmd.Flags().String("normalize", "", "Unicode normalization of extracted text: nfc or nfkc")
	convertCmd.Flags().String("pdftotext-path", "pdftotext", "pdftotext binary for the pdftotext backend")
	convertCmd.Flags().Bool("no-validate", false, "skip structural validation of the PDF before extraction")
	convertCmd.Flags().Bool("force", false, "overwrite existing outputs in batch mode")
	convertCmd.Flags().BoolP("verbose", "v", false, "report malformed question blocks that were skipped")

	bindFlag(keyFormat, convertCmd.Flags().Lookup("format"))
	bindFlag(keyBackend, convertCmd.Flags().Lookup("backend"))
	bindFlag(keyNormalize, convertCmd.Flags().Lookup("normalize"))
	bindFlag(keyPdftotextPath, convertCmd.Flags().Lookup("pdftotext-path"))

	rootCmd.AddCommand(convertCmd)
}

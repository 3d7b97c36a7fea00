// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/quizpdf/internal/extract"
	"github.com/pdiddy/quizpdf/internal/parse"
	"github.com/pdiddy/quizpdf/pkg/types"
)

// BatchResult holds the outcome of a batch conversion run.
type BatchResult struct {
	Converted int
	Skipped   int
	Failed    int

	// Questions is the number of records written across all files.
	Questions int
}

// Total returns the total number of PDFs processed.
func (r BatchResult) Total() int {
	return r.Converted + r.Skipped + r.Failed
}

// HasFailures reports whether any PDF failed conversion.
func (r BatchResult) HasFailures() bool {
	return r.Failed > 0
}

// ConvertFile converts one PDF into outDir and returns the status of the
// conversion with the number of questions written. If the output already
// exists and cfg.Force is false, it skips conversion and returns
// ConversionNone.
func ConvertFile(ctx context.Context, ex extract.Extractor, cfg types.ConversionConfig, pdfPath, outDir string, w io.Writer) (types.ConversionStatus, int) {
	outPath := OutputPath(pdfPath, outDir, cfg.Format)
	base := strings.TrimSuffix(filepath.Base(outPath), filepath.Ext(outPath))

	if !cfg.Force {
		if _, err := os.Stat(outPath); err == nil {
			fmt.Fprintf(w, "skipped: %s (already exists)\n", base)
			return types.ConversionNone, 0
		}
	}

	text, err := ex.Extract(ctx, pdfPath)
	if err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed, 0
	}

	res := parse.Parse(text)
	if err := WriteFile(outPath, res.Questions, cfg.Format); err != nil {
		fmt.Fprintf(w, "failed:  %s (%v)\n", base, err)
		return types.ConversionFailed, 0
	}

	if cfg.Verbose && res.Skipped > 0 {
		fmt.Fprintf(w, "converted: %s (%d questions, %d malformed blocks skipped)\n", base, len(res.Questions), res.Skipped)
	} else {
		fmt.Fprintf(w, "converted: %s (%d questions)\n", base, len(res.Questions))
	}
	return types.ConversionDone, len(res.Questions)
}

// Batch converts every PDF in pdfPaths into outDir, printing per-file
// status to w and returning a summary. A cancelled context stops the batch
// before the next file.
func Batch(ctx context.Context, ex extract.Extractor, cfg types.ConversionConfig, pdfPaths []string, outDir string, w io.Writer) BatchResult {
	var result BatchResult
	for _, p := range pdfPaths {
		if ctx.Err() != nil {
			fmt.Fprintf(w, "cancelled: %v\n", ctx.Err())
			break
		}
		status, n := ConvertFile(ctx, ex, cfg, p, outDir, w)
		switch status {
		case types.ConversionDone:
			result.Converted++
			result.Questions += n
		case types.ConversionNone:
			result.Skipped++
		case types.ConversionFailed:
			result.Failed++
		}
	}
	fmt.Fprintf(w, "\nBatch summary: %d converted, %d skipped, %d failed (total: %d)\n",
		result.Converted, result.Skipped, result.Failed, result.Total())
	return result
}

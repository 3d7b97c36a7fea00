// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

func init() {
	// Keep pdfcpu from creating its user configuration directory.
	api.DisableConfigDir()
}

// Validate reads pdfPath with pdfcpu and runs its structural validation.
// Corrupt documents, and encrypted documents that need a user password,
// fail here with ErrParse.
func Validate(pdfPath string) (err error) {
	defer recoverParse(pdfPath, &err)

	ctx, err := readContext(pdfPath)
	if err != nil {
		return err
	}
	if err := api.ValidateContext(ctx); err != nil {
		return parseError(pdfPath, "validating", err)
	}
	return nil
}

func readContext(pdfPath string) (*model.Context, error) {
	ctx, err := api.ReadContextFile(pdfPath)
	if err != nil {
		return nil, parseError(pdfPath, "reading", err)
	}
	return ctx, nil
}

// PdfcpuExtractor reads text straight from page content streams. It handles
// uncompressed string operands of the text-showing operators and breaks
// lines on text positioning operators. Fonts with custom encodings are not
// decoded.
type PdfcpuExtractor struct{}

func (e *PdfcpuExtractor) Name() string { return "pdfcpu" }

func (e *PdfcpuExtractor) Extract(ctx context.Context, pdfPath string) (text string, err error) {
	defer recoverParse(pdfPath, &err)

	pctx, err := readContext(pdfPath)
	if err != nil {
		return "", err
	}

	return joinPages(ctx, pctx.PageCount, func(i int) (string, error) {
		r, err := pdfcpu.ExtractPageContent(pctx, i)
		if err != nil {
			return "", parseError(pdfPath, fmt.Sprintf("reading content of page %d of", i), err)
		}
		if r == nil {
			return "", nil
		}
		data, err := io.ReadAll(r)
		if err != nil {
			return "", parseError(pdfPath, fmt.Sprintf("reading content of page %d of", i), err)
		}
		return streamText(data), nil
	})
}

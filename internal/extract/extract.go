// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract pulls the plain text out of a PDF with pluggable backends.
//
// Every backend returns the text of each page in page order with a newline
// appended after each page. Failures fall into two categories: ErrFileAccess
// when the file cannot be opened, and ErrParse when the PDF library cannot
// decode it. Errors are wrapped so callers can test them with errors.Is.
package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdiddy/quizpdf/pkg/types"
)

var (
	// ErrFileAccess reports a missing, unreadable, or non-regular input path.
	ErrFileAccess = errors.New("cannot access PDF file")

	// ErrParse reports a document the PDF library could not process
	// (corrupt, encrypted, or unsupported).
	ErrParse = errors.New("cannot parse PDF")
)

// Extractor transforms a PDF file into plain text. Different backends
// (ledongthuc, dslipak, pdfcpu, pdftotext) implement this interface.
type Extractor interface {
	// Name returns the backend name.
	Name() string

	// Extract reads the PDF at pdfPath and returns the text of all pages,
	// each followed by a newline.
	Extract(ctx context.Context, pdfPath string) (string, error)
}

// New builds the extractor described by cfg: the selected backend, preceded
// by a file access check and optional pdfcpu validation, followed by optional
// Unicode normalization.
func New(cfg types.ExtractionConfig) (Extractor, error) {
	backend, err := newBackend(cfg)
	if err != nil {
		return nil, err
	}
	if _, err := normalizer(cfg.Normalize); err != nil {
		return nil, err
	}
	return &pipeline{
		backend:   backend,
		validate:  cfg.Validate,
		normalize: cfg.Normalize,
	}, nil
}

func newBackend(cfg types.ExtractionConfig) (Extractor, error) {
	switch cfg.Backend {
	case types.BackendLedongthuc, "":
		return &LedongthucExtractor{}, nil
	case types.BackendDslipak:
		return &DslipakExtractor{}, nil
	case types.BackendPdfcpu:
		return &PdfcpuExtractor{}, nil
	case types.BackendPdftotext:
		return NewPdftotextExtractor(cfg.PdftotextPath)
	default:
		return nil, fmt.Errorf("unsupported extraction backend %q: use ledongthuc, dslipak, pdfcpu, or pdftotext", cfg.Backend)
	}
}

// pipeline wraps a backend with the checks shared by all backends.
type pipeline struct {
	backend   Extractor
	validate  bool
	normalize types.Normalization
}

func (p *pipeline) Name() string { return p.backend.Name() }

func (p *pipeline) Extract(ctx context.Context, pdfPath string) (string, error) {
	if err := CheckFile(pdfPath); err != nil {
		return "", err
	}
	if p.validate {
		if err := Validate(pdfPath); err != nil {
			return "", err
		}
	}

	text, err := p.backend.Extract(ctx, pdfPath)
	if err != nil {
		return "", err
	}
	return Normalize(text, p.normalize)
}

// CheckFile verifies that pdfPath names a readable regular file.
func CheckFile(pdfPath string) error {
	info, err := os.Stat(pdfPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	if info.IsDir() {
		return fmt.Errorf("%w: %s is a directory", ErrFileAccess, pdfPath)
	}
	f, err := os.Open(pdfPath)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	return f.Close()
}

// parseError wraps a library error as ErrParse.
func parseError(pdfPath, op string, err error) error {
	return fmt.Errorf("%w: %s %s: %w", ErrParse, op, pdfPath, err)
}

// recoverParse converts a panic inside a PDF library into ErrParse. The
// decoding libraries panic on some malformed inputs.
func recoverParse(pdfPath string, errp *error) {
	if r := recover(); r != nil {
		*errp = fmt.Errorf("%w: decoding %s: %v", ErrParse, pdfPath, r)
	}
}

// joinPages collects the text of pages 1..n, appending a newline after each.
// The context is checked between pages.
func joinPages(ctx context.Context, n int, page func(i int) (string, error)) (string, error) {
	var b strings.Builder
	for i := 1; i <= n; i++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		text, err := page(i)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
		b.WriteByte('\n')
	}
	return b.String(), nil
}

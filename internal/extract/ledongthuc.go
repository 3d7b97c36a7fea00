// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"

	lpdf "github.com/ledongthuc/pdf"
)

// LedongthucExtractor reads the embedded text layer with ledongthuc/pdf.
// Fonts are shared across pages so each font is decoded once.
type LedongthucExtractor struct{}

func (e *LedongthucExtractor) Name() string { return "ledongthuc" }

func (e *LedongthucExtractor) Extract(ctx context.Context, pdfPath string) (text string, err error) {
	defer recoverParse(pdfPath, &err)

	f, r, err := lpdf.Open(pdfPath)
	if err != nil {
		return "", parseError(pdfPath, "opening", err)
	}
	defer f.Close()

	fonts := make(map[string]*lpdf.Font)
	return joinPages(ctx, r.NumPage(), func(i int) (string, error) {
		p := r.Page(i)
		if p.V.IsNull() {
			return "", nil
		}
		for _, name := range p.Fonts() {
			if _, ok := fonts[name]; !ok {
				font := p.Font(name)
				fonts[name] = &font
			}
		}
		s, err := p.GetPlainText(fonts)
		if err != nil {
			return "", parseError(pdfPath, fmt.Sprintf("reading page %d of", i), err)
		}
		return s, nil
	})
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"context"
	"fmt"
	"math"
	"os"
	"strings"

	gopdf "github.com/dslipak/pdf"
)

// DslipakExtractor rebuilds page text from the positioned text runs that
// dslipak/pdf reports. Runs are kept in content-stream order; a change of
// baseline starts a new line and a horizontal gap inserts a space.
type DslipakExtractor struct{}

func (e *DslipakExtractor) Name() string { return "dslipak" }

func (e *DslipakExtractor) Extract(ctx context.Context, pdfPath string) (text string, err error) {
	defer recoverParse(pdfPath, &err)

	// gopdf.Open never closes its file, so the reader is built on a file
	// owned here.
	f, err := os.Open(pdfPath)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileAccess, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrFileAccess, err)
	}

	r, err := gopdf.NewReader(f, info.Size())
	if err != nil {
		return "", parseError(pdfPath, "opening", err)
	}

	return joinPages(ctx, r.NumPage(), func(i int) (string, error) {
		p := r.Page(i)
		if p.V.IsNull() {
			return "", nil
		}
		return layoutRuns(p.Content().Text), nil
	})
}

// layoutRuns joins text runs into lines.
func layoutRuns(runs []gopdf.Text) string {
	var b strings.Builder
	for i, t := range runs {
		if i > 0 {
			prev := runs[i-1]
			size := math.Max(t.FontSize, 1)
			switch {
			case math.Abs(t.Y-prev.Y) > size/2:
				b.WriteByte('\n')
			case t.X-(prev.X+prev.W) > size*0.2 && !strings.HasSuffix(prev.S, " ") && !strings.HasPrefix(t.S, " "):
				b.WriteByte(' ')
			}
		}
		b.WriteString(t.S)
	}
	return b.String()
}

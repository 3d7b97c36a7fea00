// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (o *osExecutor) Run(ctx context.Context, name string, args []string, stdout, stderr io.Writer) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	return cmd.Run()
}

var defaultExec executor = &osExecutor{}

// PdftotextExtractor shells out to poppler's pdftotext. Pages in its output
// are terminated by form feeds.
type PdftotextExtractor struct {
	bin  string
	exec executor
}

// NewPdftotextExtractor locates the pdftotext binary (bin, or pdftotext on
// PATH when bin is empty) and returns an extractor that runs it.
func NewPdftotextExtractor(bin string) (*PdftotextExtractor, error) {
	return newPdftotextExtractor(bin, defaultExec)
}

func newPdftotextExtractor(bin string, ex executor) (*PdftotextExtractor, error) {
	if bin == "" {
		bin = binPdftotext
	}
	path, err := ex.LookPath(bin)
	if err != nil {
		return nil, fmt.Errorf("pdftotext backend unavailable: %w", err)
	}
	return &PdftotextExtractor{bin: path, exec: ex}, nil
}

func (e *PdftotextExtractor) Name() string { return binPdftotext }

func (e *PdftotextExtractor) Extract(ctx context.Context, pdfPath string) (string, error) {
	var stdout, stderr bytes.Buffer
	args := []string{"-enc", "UTF-8", "-eol", "unix", pdfPath, "-"}
	if err := e.exec.Run(ctx, e.bin, args, &stdout, &stderr); err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				msg = exitErr.Error()
			}
			return "", parseError(pdfPath, "running pdftotext on", errors.New(msg))
		}
		return "", fmt.Errorf("running %s: %w", e.bin, err)
	}
	return splitFormFeeds(stdout.String()), nil
}

// splitFormFeeds turns form-feed terminated pages into newline terminated
// pages.
func splitFormFeeds(out string) string {
	if out == "" {
		return ""
	}
	pages := strings.Split(out, "\f")
	if len(pages) > 1 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	var b strings.Builder
	for _, p := range pages {
		b.WriteString(strings.TrimSuffix(p, "\n"))
		b.WriteByte('\n')
	}
	return b.String()
}

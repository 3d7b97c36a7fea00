// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert runs the PDF-to-questions pipeline: text extraction,
// question parsing, and serialization of the records to a JSON or YAML file.
package convert

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quizpdf/internal/extract"
	"github.com/pdiddy/quizpdf/internal/parse"
	"github.com/pdiddy/quizpdf/pkg/types"
)

// DefaultOutput is the output file name used when none is given.
const DefaultOutput = "questions"

// indent is the per-level indentation of written files.
const indent = 4

// Summary describes a single completed conversion.
type Summary struct {
	// Questions is the number of records written.
	Questions int
	// Skipped is the number of question blocks dropped as malformed.
	Skipped int
	// Output is the path of the written file.
	Output string
}

// Run extracts the text of pdfPath, parses it into questions, and writes
// them to outPath in cfg.Format. An empty outPath writes questions.json (or
// .yaml) in the current directory. A success line with the record count is
// printed to w. Extraction errors are returned unchanged.
func Run(ctx context.Context, ex extract.Extractor, cfg types.ConversionConfig, pdfPath, outPath string, w io.Writer) (Summary, error) {
	if outPath == "" {
		outPath = DefaultOutput + cfg.Format.Ext()
	}

	text, err := ex.Extract(ctx, pdfPath)
	if err != nil {
		return Summary{}, err
	}

	res := parse.Parse(text)
	if err := WriteFile(outPath, res.Questions, cfg.Format); err != nil {
		return Summary{}, err
	}

	if cfg.Verbose && res.Skipped > 0 {
		fmt.Fprintf(w, "skipped %d malformed question block(s) in %s\n", res.Skipped, pdfPath)
	}
	fmt.Fprintf(w, "Successfully extracted %d questions to %s\n", len(res.Questions), outPath)

	return Summary{
		Questions: len(res.Questions),
		Skipped:   res.Skipped,
		Output:    outPath,
	}, nil
}

// Encode serializes questions to w. JSON output is an array indented by
// four spaces with HTML characters and non-ASCII text written literally;
// YAML output uses the same keys.
func Encode(w io.Writer, questions []types.Question, format types.OutputFormat) error {
	if questions == nil {
		questions = []types.Question{}
	}

	switch format {
	case types.OutputJSON, "":
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetIndent("", strings.Repeat(" ", indent))
		enc.SetEscapeHTML(false)
		if err := enc.Encode(questions); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		_, err := w.Write(unescapeLineSeparators(buf.Bytes()))
		return err
	case types.OutputYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(indent)
		if err := enc.Encode(questions); err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q: use json or yaml", format)
	}
}

// unescapeLineSeparators turns the \u2028 and \u2029 escapes that
// encoding/json always emits back into literal characters. Escaped
// backslashes are skipped so a literal "\\u2028" in the text is kept.
func unescapeLineSeparators(data []byte) []byte {
	if !bytes.Contains(data, []byte(`\u202`)) {
		return data
	}
	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); i++ {
		if data[i] != '\\' || i+1 >= len(data) {
			out = append(out, data[i])
			continue
		}
		if seq := data[i:]; bytes.HasPrefix(seq, []byte(`\u2028`)) || bytes.HasPrefix(seq, []byte(`\u2029`)) {
			r := '\u2028'
			if seq[5] == '9' {
				r = '\u2029'
			}
			out = utf8.AppendRune(out, r)
			i += 5
			continue
		}
		out = append(out, data[i], data[i+1])
		i++
	}
	return out
}

// WriteFile encodes questions and writes them to path, creating the parent
// directory if needed. An existing file is replaced.
func WriteFile(path string, questions []types.Question, format types.OutputFormat) error {
	var buf bytes.Buffer
	if err := Encode(&buf, questions, format); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating output directory: %w", err)
		}
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

// OutputPath returns the file that batch conversion writes for pdfPath:
// the PDF's base name with the format's extension, inside outDir.
func OutputPath(pdfPath, outDir string, format types.OutputFormat) string {
	base := strings.TrimSuffix(filepath.Base(pdfPath), filepath.Ext(pdfPath))
	return filepath.Join(outDir, base+format.Ext())
}

// FindPDFs returns the .pdf files directly inside dir, sorted by name.
func FindPDFs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("reading directory %s: %w", dir, err)
	}
	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".pdf") {
			continue
		}
		paths = append(paths, filepath.Join(dir, e.Name()))
	}
	sort.Strings(paths)
	return paths, nil
}

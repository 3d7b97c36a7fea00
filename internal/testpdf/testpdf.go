// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package testpdf writes small, valid PDF documents for tests. Each page
// shows its lines in Helvetica, one line per T* operator, so text extractors
// see one line of text per input line.
package testpdf

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Build returns the bytes of a PDF with one page per element of pages.
func Build(pages [][]string) []byte {
	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"", // pages tree, filled in below
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
	}

	kids := make([]string, len(pages))
	for i, lines := range pages {
		pageObj := len(objects) + 1
		kids[i] = fmt.Sprintf("%d 0 R", pageObj)

		stream := contentStream(lines)
		objects = append(objects,
			fmt.Sprintf("<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] "+
				"/Resources << /Font << /F1 3 0 R >> >> /Contents %d 0 R >>", pageObj+1),
			fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", len(stream), stream),
		)
	}
	objects[1] = fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages))

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(objects)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func contentStream(lines []string) string {
	var b strings.Builder
	b.WriteString("BT\n/F1 12 Tf\n14 TL\n72 720 Td\n")
	for i, line := range lines {
		if i > 0 {
			b.WriteString("T*\n")
		}
		fmt.Fprintf(&b, "(%s) Tj\n", escape(line))
	}
	b.WriteString("ET")
	return b.String()
}

func escape(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `(`, `\(`, `)`, `\)`)
	return r.Replace(s)
}

// Write creates name in a fresh temporary directory and returns its path.
func Write(t testing.TB, name string, pages [][]string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, Build(pages), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

// QuizPages is a two-page quiz with two well-formed questions.
var QuizPages = [][]string{
	{"1. What is 2+2?", "A) 3", "B) 4", "C) 5", "D) 6", "Ans: B"},
	{"2. Capital of France?", "A) Rome", "B) Paris", "C) Berlin", "D) Madrid", "Ans: B"},
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quizpdf/internal/bank"
	"github.com/pdiddy/quizpdf/pkg/types"
)

func TestConfigDefaults(t *testing.T) {
	ext := extractionConfig()
	assert.Equal(t, types.BackendLedongthuc, ext.Backend)
	assert.True(t, ext.Validate)
	assert.Equal(t, "pdftotext", ext.PdftotextPath)

	assert.Equal(t, types.BankConfig{Dir: "bank", MaxResults: 20}, bankConfig())
	assert.Equal(t, 20*time.Minute, gradeConfig().TimeLimit)
}

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("QUIZPDF_BANK_DIR", "/tmp/elsewhere")
	t.Setenv("QUIZPDF_GRADE_TIME_LIMIT", "5m")

	// Env lookups with dotted keys need the replacer initConfig installs.
	initConfig()

	assert.Equal(t, "/tmp/elsewhere", bankConfig().Dir)
	assert.Equal(t, 5*time.Minute, gradeConfig().TimeLimit)
}

func TestExpandPDFArgs(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.pdf", "a.pdf", "readme.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0o644))
	}

	pdfs, expanded, err := expandPDFArgs([]string{"single.pdf"})
	require.NoError(t, err)
	assert.False(t, expanded)
	assert.Equal(t, []string{"single.pdf"}, pdfs)

	pdfs, expanded, err = expandPDFArgs([]string{dir, "extra.pdf"})
	require.NoError(t, err)
	assert.True(t, expanded)
	assert.Equal(t, []string{filepath.Join(dir, "a.pdf"), filepath.Join(dir, "b.pdf"), "extra.pdf"}, pdfs)

	_, _, err = expandPDFArgs([]string{t.TempDir()})
	assert.Error(t, err, "an empty directory yields no PDFs")
}

func TestPrintReport(t *testing.T) {
	report := types.GradeReport{
		Score: 1, Total: 2, Correct: 1, Incorrect: 1, Percentage: 50,
		TimeTaken: 95 * time.Second,
		Results: []types.QuestionResult{
			{Number: 1, Question: "What is 2+2?", Correct: true, UserAnswer: "B", CorrectAnswer: "B"},
			{Number: 2, Question: "Capital of France?", UserAnswer: "No Answer", CorrectAnswer: "B"},
		},
	}

	var buf bytes.Buffer
	printReport(&buf, report)
	out := buf.String()

	assert.Contains(t, out, "Score: 1 / 2 (50%)")
	assert.Contains(t, out, "Time: 01:35")
	assert.Contains(t, out, "No Answer")
	assert.Contains(t, out, "correct")
	assert.Contains(t, out, "wrong")
}

func TestFormatSearchOutput(t *testing.T) {
	results := []bank.Result{{
		QuizID:   "geo",
		Question: types.Question{Number: 2, Text: "Capital of France?", Answer: []string{}},
	}}

	var buf bytes.Buffer
	require.NoError(t, formatSearchOutput(&buf, results, false))
	assert.Contains(t, buf.String(), "Capital of France?")
	assert.Contains(t, buf.String(), "1 results")
	assert.Contains(t, buf.String(), "  -\n")

	buf.Reset()
	require.NoError(t, formatSearchOutput(&buf, results, true))
	assert.Contains(t, buf.String(), `"quiz_id": "geo"`)
	assert.Contains(t, buf.String(), `"question_number": 2`)

	buf.Reset()
	require.NoError(t, formatSearchOutput(&buf, nil, false))
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		name string
		in   string
		n    int
		want string
	}{
		{"short", "Capital?", 10, "Capital?"},
		{"exact", "abcde", 5, "abcde"},
		{"ascii", "abcdefghij", 8, "abcde..."},
		{"multibyte", "ééééééééé", 6, "ééé..."},
		{"cjk", "日本の首都はどこですか", 8, "日本の首都..."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := truncate(tt.in, tt.n)
			assert.Equal(t, tt.want, got)
			assert.True(t, utf8.ValidString(got))
		})
	}
}

func TestFormatSearchOutput_NonASCII(t *testing.T) {
	long := strings.Repeat("é", 70)
	results := []bank.Result{{
		QuizID:   strings.Repeat("ü", 25),
		Question: types.Question{Number: 1, Text: long, Answer: []string{"A"}},
	}}

	var buf bytes.Buffer
	require.NoError(t, formatSearchOutput(&buf, results, false))
	out := buf.String()
	assert.True(t, utf8.ValidString(out))
	assert.Contains(t, out, strings.Repeat("é", 57)+"...")
	assert.Contains(t, out, strings.Repeat("ü", 17)+"...")
}

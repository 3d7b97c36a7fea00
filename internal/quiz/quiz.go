// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package quiz loads converted quiz files and answer sheets and grades an
// attempt against the recorded answers.
package quiz

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/quizpdf/pkg/types"
)

// ErrInvalidQuiz indicates that a quiz file is not a non-empty JSON array
// of questions.
var ErrInvalidQuiz = errors.New("invalid JSON format: expected a non-empty array")

// Load reads the quiz file at path.
func Load(path string) ([]types.Question, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening quiz %s: %w", path, err)
	}
	defer f.Close()

	questions, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("loading quiz %s: %w", path, err)
	}
	return questions, nil
}

// Decode reads a quiz from r. The top level must be a non-empty JSON
// array; anything else fails with ErrInvalidQuiz.
func Decode(r io.Reader) ([]types.Question, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading quiz: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '[' {
		return nil, ErrInvalidQuiz
	}

	var questions []types.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidQuiz, err)
	}
	if len(questions) == 0 {
		return nil, ErrInvalidQuiz
	}

	for i := range questions {
		if questions[i].Answer == nil {
			questions[i].Answer = []string{}
		}
	}
	return questions, nil
}

// LoadAnswers reads an answer sheet mapping question numbers to selected
// letters. Files ending in .yaml or .yml are read as YAML, everything else
// as JSON.
//
//	1: [B]
//	2: [A, C]
func LoadAnswers(path string) (types.AnswerSheet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading answer sheet: %w", err)
	}

	sheet := types.AnswerSheet{}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &sheet)
	default:
		err = json.Unmarshal(data, &sheet)
	}
	if err != nil {
		return nil, fmt.Errorf("parsing answer sheet %s: %w", path, err)
	}
	return sheet, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

// ExportEntry is one question in a bank export.
type ExportEntry struct {
	QuizID         string            `json:"quiz_id" yaml:"quiz_id"`
	QuestionNumber int               `json:"question_number" yaml:"question_number"`
	Question       string            `json:"question" yaml:"question"`
	Options        map[string]string `json:"options" yaml:"options"`
	Answer         []string          `json:"answer" yaml:"answer"`
}

const exportLimit = 100000

// ExportYAML writes the filtered questions to index/export.yaml and returns
// the path written.
func (s *Store) ExportYAML(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, indexDir, "export.yaml")
	data, err := yaml.Marshal(entries)
	if err != nil {
		return "", fmt.Errorf("marshaling YAML: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

// ExportJSON writes the filtered questions to index/export.json and returns
// the path written.
func (s *Store) ExportJSON(ctx context.Context, opts QueryOptions) (string, error) {
	entries, err := s.exportEntries(ctx, opts)
	if err != nil {
		return "", err
	}

	path := filepath.Join(s.dir, indexDir, "export.json")
	data, err := json.MarshalIndent(entries, "", "    ")
	if err != nil {
		return "", fmt.Errorf("marshaling JSON: %w", err)
	}
	return path, os.WriteFile(path, data, 0o644)
}

func (s *Store) exportEntries(ctx context.Context, opts QueryOptions) ([]ExportEntry, error) {
	opts.MaxResults = exportLimit
	results, err := s.Search(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("querying for export: %w", err)
	}

	entries := make([]ExportEntry, len(results))
	for i, r := range results {
		entries[i] = ExportEntry{
			QuizID:         r.QuizID,
			QuestionNumber: r.Question.Number,
			Question:       r.Question.Text,
			Options:        r.Question.Options,
			Answer:         r.Question.Answer,
		}
	}
	return entries, nil
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/quizpdf/pkg/types"
)

// QueryOptions holds parameters for question bank searches.
type QueryOptions struct {
	// Query is an FTS4 MATCH expression over question and option text.
	Query string

	// QuizID restricts results to one quiz.
	QuizID string

	// MissingAnswer restricts results to questions without a recorded answer.
	MissingAnswer bool

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.QuizID == "" && !q.MissingAnswer
}

// Result is a stored question with the quiz it belongs to.
type Result struct {
	QuizID   string         `json:"quiz_id" yaml:"quiz_id"`
	Question types.Question `json:"question" yaml:"question"`
}

// Search queries the bank with optional full-text search and filters.
// Results are ordered by quiz and question number.
func (s *Store) Search(ctx context.Context, opts QueryOptions) ([]Result, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb   strings.Builder
		args []any
	)

	if opts.Query != "" {
		qb.WriteString(
			`SELECT q.quiz_id, q.number, q.question, q.options, q.answer
			FROM questions_fts
			JOIN questions q ON q.rowid = questions_fts.docid
			WHERE questions_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT q.quiz_id, q.number, q.question, q.options, q.answer
			FROM questions q
			WHERE 1=1`)
	}

	if opts.QuizID != "" {
		qb.WriteString(` AND q.quiz_id = ?`)
		args = append(args, opts.QuizID)
	}

	if opts.MissingAnswer {
		qb.WriteString(` AND q.answer = '[]'`)
	}

	qb.WriteString(` ORDER BY q.quiz_id, q.number, q.rowid LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying question bank: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var (
			r           Result
			optionsJSON string
			answerJSON  string
		)
		if err := rows.Scan(&r.QuizID, &r.Question.Number, &r.Question.Text, &optionsJSON, &answerJSON); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}
		if err := json.Unmarshal([]byte(optionsJSON), &r.Question.Options); err != nil {
			return nil, fmt.Errorf("decoding options: %w", err)
		}
		if err := json.Unmarshal([]byte(answerJSON), &r.Question.Answer); err != nil {
			return nil, fmt.Errorf("decoding answer: %w", err)
		}
		results = append(results, r)
	}

	return results, rows.Err()
}

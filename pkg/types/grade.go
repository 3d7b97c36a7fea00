// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// AnswerSheet maps a question number to the letters a test taker selected.
type AnswerSheet map[int][]string

// QuestionResult is the graded outcome of one question.
type QuestionResult struct {
	// Number is the question_number of the graded question.
	Number int `json:"question_number" yaml:"question_number"`

	// Question is the question text.
	Question string `json:"question" yaml:"question"`

	// Correct reports whether the selection matched the answer exactly.
	Correct bool `json:"correct" yaml:"correct"`

	// UserAnswer is the sorted selection joined with ", ", or "No Answer".
	UserAnswer string `json:"user_answer" yaml:"user_answer"`

	// CorrectAnswer is the sorted answer joined with ", ".
	CorrectAnswer string `json:"correct_answer" yaml:"correct_answer"`
}

// GradeReport summarizes a graded attempt at a quiz.
type GradeReport struct {
	Score      int              `json:"score" yaml:"score"`
	Total      int              `json:"total" yaml:"total"`
	Correct    int              `json:"correct" yaml:"correct"`
	Incorrect  int              `json:"incorrect" yaml:"incorrect"`
	Percentage int              `json:"percentage" yaml:"percentage"`
	TimeTaken  time.Duration    `json:"time_taken" yaml:"time_taken"`
	Results    []QuestionResult `json:"results" yaml:"results"`
}

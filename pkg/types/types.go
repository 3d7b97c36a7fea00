// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the quizpdf pipeline:
// the Question record produced by conversion, the answer sheet and grade
// report used by grading, and the per-stage configuration structs.
package types

// Option letters recognized by the parser, in display order.
var OptionLetters = []string{"A", "B", "C", "D"}

// Question is one multiple-choice question recovered from a quiz PDF.
// It is the unit written to the output file.
type Question struct {
	// Number is the integer taken from the "12. " marker that opened the block.
	Number int `json:"question_number" yaml:"question_number"`

	// Text is the block text before the first option marker, trimmed.
	Text string `json:"question" yaml:"question"`

	// Options maps an option letter (A-D) to its text. When a letter
	// appears more than once in a block the later occurrence wins.
	Options map[string]string `json:"options" yaml:"options"`

	// Answer holds zero or one letter. It is empty, never nil, when the
	// block carries no "Ans:" marker.
	Answer []string `json:"answer" yaml:"answer"`
}

// HasAnswer reports whether an answer marker was found for the question.
func (q Question) HasAnswer() bool {
	return len(q.Answer) > 0
}

// ConversionStatus indicates the outcome of converting one PDF in a batch.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

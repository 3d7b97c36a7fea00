// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// ExtractionBackend identifies the library used to pull text out of a PDF.
type ExtractionBackend string

const (
	BackendLedongthuc ExtractionBackend = "ledongthuc"
	BackendDslipak    ExtractionBackend = "dslipak"
	BackendPdfcpu     ExtractionBackend = "pdfcpu"
	BackendPdftotext  ExtractionBackend = "pdftotext"
)

// Normalization selects an optional Unicode normalization form applied to
// extracted text.
type Normalization string

const (
	NormalizeNone Normalization = ""
	NormalizeNFC  Normalization = "nfc"
	NormalizeNFKC Normalization = "nfkc"
)

// ExtractionConfig holds settings for the text extraction stage.
type ExtractionConfig struct {
	// Backend selects the extraction library (default ledongthuc).
	Backend ExtractionBackend `json:"backend" yaml:"backend"`

	// Validate runs a pdfcpu structural check before extraction so that
	// corrupt and encrypted documents fail early.
	Validate bool `json:"validate" yaml:"validate"`

	// Normalize applies a Unicode normalization form to the extracted text.
	Normalize Normalization `json:"normalize,omitempty" yaml:"normalize,omitempty"`

	// PdftotextPath is the pdftotext binary used by the pdftotext backend.
	PdftotextPath string `json:"pdftotext_path,omitempty" yaml:"pdftotext_path,omitempty"`
}

// OutputFormat selects the serialization of converted questions.
type OutputFormat string

const (
	OutputJSON OutputFormat = "json"
	OutputYAML OutputFormat = "yaml"
)

// Ext returns the file extension for the format, including the dot.
func (f OutputFormat) Ext() string {
	if f == OutputYAML {
		return ".yaml"
	}
	return ".json"
}

// ConversionConfig holds settings for the conversion stage.
type ConversionConfig struct {
	Extraction ExtractionConfig `json:"extract" yaml:"extract"`

	// Format selects json (default) or yaml output.
	Format OutputFormat `json:"format" yaml:"format"`

	// Force overwrites existing outputs in batch mode.
	Force bool `json:"force" yaml:"force"`

	// Verbose prints parser diagnostics such as skipped blocks.
	Verbose bool `json:"verbose" yaml:"verbose"`
}

// BankConfig holds settings for the question bank.
type BankConfig struct {
	// Dir is the base directory for the bank (contains quizzes/, index/).
	Dir string `json:"dir" yaml:"dir"`

	// MaxResults is the default maximum number of search results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// GradeConfig holds settings for grading answer sheets.
type GradeConfig struct {
	// TimeLimit caps the recorded time taken (default 20m).
	TimeLimit time.Duration `json:"time_limit" yaml:"time_limit"`
}

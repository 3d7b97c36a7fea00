// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/pdiddy/quizpdf/pkg/types"
)

// Configuration keys. Each can be set in quizpdf.yaml, through a
// QUIZPDF_-prefixed environment variable, or with the bound flag.
const (
	keyBackend       = "extract.backend"
	keyValidate      = "extract.validate"
	keyNormalize     = "extract.normalize"
	keyPdftotextPath = "extract.pdftotext_path"
	keyFormat        = "output.format"
	keyBankDir       = "bank.dir"
	keyMaxResults    = "bank.max_results"
	keyTimeLimit     = "grade.time_limit"
)

func init() {
	viper.SetDefault(keyBackend, string(types.BackendLedongthuc))
	viper.SetDefault(keyValidate, true)
	viper.SetDefault(keyPdftotextPath, "pdftotext")
	viper.SetDefault(keyFormat, string(types.OutputJSON))
	viper.SetDefault(keyBankDir, "bank")
	viper.SetDefault(keyMaxResults, 20)
	viper.SetDefault(keyTimeLimit, "20m")
}

// bindFlag ties a configuration key to a command flag so an explicitly set
// flag overrides the config file and environment.
func bindFlag(key string, flag *pflag.Flag) {
	if err := viper.BindPFlag(key, flag); err != nil {
		panic(err)
	}
}

func extractionConfig() types.ExtractionConfig {
	return types.ExtractionConfig{
		Backend:       types.ExtractionBackend(viper.GetString(keyBackend)),
		Validate:      viper.GetBool(keyValidate),
		Normalize:     types.Normalization(viper.GetString(keyNormalize)),
		PdftotextPath: viper.GetString(keyPdftotextPath),
	}
}

func bankConfig() types.BankConfig {
	return types.BankConfig{
		Dir:        viper.GetString(keyBankDir),
		MaxResults: viper.GetInt(keyMaxResults),
	}
}

func gradeConfig() types.GradeConfig {
	return types.GradeConfig{TimeLimit: viper.GetDuration(keyTimeLimit)}
}

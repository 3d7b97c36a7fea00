// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the quizpdf CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the quizpdf CLI.
var rootCmd = &cobra.Command{
	Use:   "quizpdf",
	Short: "Convert multiple-choice quiz PDFs into structured question records",
	Long: `quizpdf extracts the text of a multiple-choice quiz PDF, recovers each
numbered question with its options A-D and its answer letter, and writes the
records to a JSON (or YAML) file.

Converted quizzes can be graded against an answer sheet and collected into a
searchable question bank.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./quizpdf.yaml or ~/.config/quizpdf/quizpdf.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("quizpdf")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "quizpdf"))
		}
	}

	viper.SetEnvPrefix("QUIZPDF")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

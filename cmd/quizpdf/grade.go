// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/pdiddy/quizpdf/internal/quiz"
	"github.com/pdiddy/quizpdf/pkg/types"
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade an answer sheet against a converted quiz",
	Long: `Grade scores an answer sheet (YAML or JSON mapping question numbers to
selected letters) against the answers recorded in a converted quiz file.
A question counts as correct when the selected letters match the recorded
answer exactly, regardless of order.`,
	RunE: runGrade,
}

func runGrade(cmd *cobra.Command, args []string) error {
	quizPath, _ := cmd.Flags().GetString("quiz")
	answersPath, _ := cmd.Flags().GetString("answers")
	taken, _ := cmd.Flags().GetDuration("time")
	jsonOutput, _ := cmd.Flags().GetBool("json")

	questions, err := quiz.Load(quizPath)
	if err != nil {
		return err
	}
	sheet, err := quiz.LoadAnswers(answersPath)
	if err != nil {
		return err
	}

	report := quiz.Grade(questions, sheet, taken, gradeConfig().TimeLimit)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	printReport(os.Stdout, report)
	return nil
}

func printReport(w io.Writer, r types.GradeReport) {
	fmt.Fprintf(w, "Score: %d / %d (%d%%)\n", r.Score, r.Total, r.Percentage)
	fmt.Fprintf(w, "Correct: %d  Incorrect: %d  Time: %s\n\n", r.Correct, r.Incorrect, quiz.FormatDuration(r.TimeTaken))

	fmt.Fprintf(w, "%-4s  %-7s  %-50s  %-10s  %s\n", "No.", "Result", "Question", "Yours", "Answer")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for _, qr := range r.Results {
		mark := "wrong"
		if qr.Correct {
			mark = "correct"
		}
		fmt.Fprintf(w, "%-4d  %-7s  %-50s  %-10s  %s\n", qr.Number, mark, truncate(qr.Question, 50), qr.UserAnswer, qr.CorrectAnswer)
	}
}

// truncate shortens s to at most n runes, ending in "..." when cut.
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

func init() {
	gradeCmd.Flags().String("quiz", "", "converted quiz file (JSON)")
	gradeCmd.Flags().String("answers", "", "answer sheet (YAML or JSON)")
	gradeCmd.Flags().Duration("time", 0, "time taken for the attempt, e.g. 12m30s")
	gradeCmd.Flags().Duration("limit", quiz.DefaultTimeLimit, "time limit; time taken is capped at this value")
	gradeCmd.Flags().Bool("json", false, "output the report as JSON")
	gradeCmd.MarkFlagRequired("quiz")
	gradeCmd.MarkFlagRequired("answers")

	bindFlag(keyTimeLimit, gradeCmd.Flags().Lookup("limit"))

	rootCmd.AddCommand(gradeCmd)
}

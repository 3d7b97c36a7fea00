// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"fmt"
	"math"
	"slices"
	"strings"
	"time"

	"github.com/pdiddy/quizpdf/pkg/types"
)

// DefaultTimeLimit is the time allowed for a quiz when none is configured.
const DefaultTimeLimit = 20 * time.Minute

const noAnswer = "No Answer"

// Grade scores sheet against questions. A question is correct when the
// sorted selection equals the sorted recorded answer, so a question with no
// recorded answer is correct only when nothing was selected. timeTaken is
// capped at limit; a non-positive limit means DefaultTimeLimit.
func Grade(questions []types.Question, sheet types.AnswerSheet, timeTaken, limit time.Duration) types.GradeReport {
	if limit <= 0 {
		limit = DefaultTimeLimit
	}
	timeTaken = max(min(timeTaken, limit), 0)

	report := types.GradeReport{
		Total:     len(questions),
		TimeTaken: timeTaken,
		Results:   make([]types.QuestionResult, 0, len(questions)),
	}

	for _, q := range questions {
		want := sorted(q.Answer)
		got := sorted(sheet[q.Number])
		correct := slices.Equal(want, got)
		if correct {
			report.Score++
		}

		user := strings.Join(got, ", ")
		if user == "" {
			user = noAnswer
		}
		report.Results = append(report.Results, types.QuestionResult{
			Number:        q.Number,
			Question:      q.Text,
			Correct:       correct,
			UserAnswer:    user,
			CorrectAnswer: strings.Join(want, ", "),
		})
	}

	report.Correct = report.Score
	report.Incorrect = report.Total - report.Score
	if report.Total > 0 {
		report.Percentage = int(math.Round(float64(report.Score) / float64(report.Total) * 100))
	}
	return report
}

// FormatDuration renders d as zero-padded minutes and seconds, "mm:ss".
// Fractional seconds are truncated.
func FormatDuration(d time.Duration) string {
	secs := max(int(d/time.Second), 0)
	return fmt.Sprintf("%02d:%02d", secs/60, secs%60)
}

func sorted(letters []string) []string {
	out := slices.Clone(letters)
	slices.Sort(out)
	return out
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package quiz

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quizpdf/pkg/types"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDecode(t *testing.T) {
	input := `[
    {"question_number": 1, "question": "What is 2+2?",
     "options": {"A": "3", "B": "4", "C": "5", "D": "6"}, "answer": ["B"]},
    {"question_number": 2, "question": "Pick one",
     "options": {"A": "x", "B": "y", "C": "z", "D": "w"}}
]`
	questions, err := Decode(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, questions, 2)

	assert.Equal(t, 1, questions[0].Number)
	assert.Equal(t, "4", questions[0].Options["B"])
	assert.Equal(t, []string{"B"}, questions[0].Answer)
	assert.NotNil(t, questions[1].Answer, "a missing answer decodes as empty")
	assert.Empty(t, questions[1].Answer)
}

func TestDecode_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "empty input", input: ""},
		{name: "empty array", input: "[]"},
		{name: "object", input: `{"question_number": 1}`},
		{name: "null", input: "null"},
		{name: "truncated array", input: `[{"question_number": 1`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrInvalidQuiz)
		})
	}
}

func TestLoad(t *testing.T) {
	path := writeFile(t, "quiz.json", `[{"question_number": 7, "question": "Q", "options": {}, "answer": []}]`)
	questions, err := Load(path)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, 7, questions[0].Number)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)

	bad := writeFile(t, "bad.json", "[]")
	_, err = Load(bad)
	assert.ErrorIs(t, err, ErrInvalidQuiz)
}

func TestLoadAnswers(t *testing.T) {
	want := types.AnswerSheet{1: {"B"}, 2: {"A", "C"}}

	t.Run("yaml", func(t *testing.T) {
		path := writeFile(t, "answers.yaml", "1: [B]\n2:\n  - A\n  - C\n")
		got, err := LoadAnswers(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("json", func(t *testing.T) {
		path := writeFile(t, "answers.json", `{"1": ["B"], "2": ["A", "C"]}`)
		got, err := LoadAnswers(path)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	})

	t.Run("malformed", func(t *testing.T) {
		path := writeFile(t, "answers.json", `{"1": "B"`)
		_, err := LoadAnswers(path)
		assert.Error(t, err)
	})

	t.Run("missing", func(t *testing.T) {
		_, err := LoadAnswers(filepath.Join(t.TempDir(), "none.yaml"))
		assert.Error(t, err)
	})
}

func question(n int, answer ...string) types.Question {
	if answer == nil {
		answer = []string{}
	}
	return types.Question{
		Number:  n,
		Text:    "Question " + string(rune('0'+n)),
		Options: map[string]string{"A": "a", "B": "b", "C": "c", "D": "d"},
		Answer:  answer,
	}
}

func TestGrade(t *testing.T) {
	questions := []types.Question{
		question(1, "B"),
		question(2, "A"),
		question(3),
		question(4, "C"),
	}
	sheet := types.AnswerSheet{
		1: {"B"},
		2: {"C"},
		// 3 unanswered and has no recorded answer: counts as correct.
		// 4 unanswered.
	}

	report := Grade(questions, sheet, 5*time.Minute, 0)

	assert.Equal(t, 4, report.Total)
	assert.Equal(t, 2, report.Score)
	assert.Equal(t, 2, report.Correct)
	assert.Equal(t, 2, report.Incorrect)
	assert.Equal(t, 50, report.Percentage)
	assert.Equal(t, 5*time.Minute, report.TimeTaken)

	require.Len(t, report.Results, 4)
	assert.Equal(t, types.QuestionResult{
		Number: 1, Question: "Question 1", Correct: true, UserAnswer: "B", CorrectAnswer: "B",
	}, report.Results[0])
	assert.False(t, report.Results[1].Correct)
	assert.Equal(t, "C", report.Results[1].UserAnswer)
	assert.True(t, report.Results[2].Correct)
	assert.Equal(t, "No Answer", report.Results[2].UserAnswer)
	assert.Equal(t, "", report.Results[2].CorrectAnswer)
	assert.Equal(t, "No Answer", report.Results[3].UserAnswer)
	assert.Equal(t, "C", report.Results[3].CorrectAnswer)
}

func TestGrade_SelectionOrderIgnored(t *testing.T) {
	questions := []types.Question{question(1, "C", "A")}
	report := Grade(questions, types.AnswerSheet{1: {"A", "C"}}, 0, 0)

	assert.Equal(t, 1, report.Score)
	assert.Equal(t, "A, C", report.Results[0].UserAnswer)
	assert.Equal(t, "A, C", report.Results[0].CorrectAnswer)
	assert.Equal(t, []string{"C", "A"}, questions[0].Answer, "grading does not reorder the quiz")
}

func TestGrade_ExtraSelectionIsWrong(t *testing.T) {
	report := Grade([]types.Question{question(1, "A")}, types.AnswerSheet{1: {"A", "B"}}, 0, 0)
	assert.Equal(t, 0, report.Score)
	assert.Equal(t, 0, report.Percentage)
}

func TestGrade_PercentageRounds(t *testing.T) {
	questions := []types.Question{question(1, "A"), question(2, "A"), question(3, "A")}
	report := Grade(questions, types.AnswerSheet{1: {"A"}, 2: {"A"}}, 0, 0)
	assert.Equal(t, 67, report.Percentage)
}

func TestGrade_Empty(t *testing.T) {
	report := Grade(nil, nil, 0, 0)
	assert.Equal(t, 0, report.Total)
	assert.Equal(t, 0, report.Percentage)
	assert.Empty(t, report.Results)
}

func TestGrade_TimeCapped(t *testing.T) {
	tests := []struct {
		name  string
		taken time.Duration
		limit time.Duration
		want  time.Duration
	}{
		{name: "within limit", taken: 90 * time.Second, limit: 10 * time.Minute, want: 90 * time.Second},
		{name: "over limit", taken: time.Hour, limit: 10 * time.Minute, want: 10 * time.Minute},
		{name: "default limit", taken: time.Hour, limit: 0, want: DefaultTimeLimit},
		{name: "negative", taken: -time.Second, limit: time.Minute, want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			report := Grade(nil, nil, tt.taken, tt.limit)
			assert.Equal(t, tt.want, report.TimeTaken)
		})
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "00:00"},
		{59 * time.Second, "00:59"},
		{61*time.Second + 900*time.Millisecond, "01:01"},
		{20 * time.Minute, "20:00"},
		{125 * time.Minute, "125:00"},
		{-time.Second, "00:00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatDuration(tt.in), tt.in.String())
	}
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/quizpdf/pkg/types"
)

const twoQuestions = "1. What is 2+2?\nA) 3\nB) 4\nC) 5\nD) 6\nAns: B\n" +
	"2. Capital of France?\nA) Rome\nB) Paris\nC) Berlin\nD) Madrid\nAns: B\n"

func questionsIn(text string) []types.Question {
	return Parse(text).Questions
}

func TestParse_TwoQuestions(t *testing.T) {
	res := Parse(twoQuestions)
	require.Len(t, res.Questions, 2)
	assert.Equal(t, 0, res.Skipped)

	assert.Equal(t, types.Question{
		Number:  1,
		Text:    "What is 2+2?",
		Options: map[string]string{"A": "3", "B": "4", "C": "5", "D": "6"},
		Answer:  []string{"B"},
	}, res.Questions[0])

	assert.Equal(t, types.Question{
		Number:  2,
		Text:    "Capital of France?",
		Options: map[string]string{"A": "Rome", "B": "Paris", "C": "Berlin", "D": "Madrid"},
		Answer:  []string{"B"},
	}, res.Questions[1])
}

func TestParse_WellFormedBlocks(t *testing.T) {
	for _, n := range []int{1, 5, 40} {
		t.Run(fmt.Sprintf("%d blocks", n), func(t *testing.T) {
			var b strings.Builder
			for i := 1; i <= n; i++ {
				fmt.Fprintf(&b, "%d. Question number %d?\nA) one\nB) two\nC) three\nD) four\nAns: %s\n",
					i, i, types.OptionLetters[i%4])
			}

			got := questionsIn(b.String())
			require.Len(t, got, n)
			for i, q := range got {
				assert.Equal(t, i+1, q.Number)
				assert.Len(t, q.Options, 4)
				for _, l := range types.OptionLetters {
					assert.Contains(t, q.Options, l)
				}
				assert.Equal(t, []string{types.OptionLetters[(i+1)%4]}, q.Answer)
			}
		})
	}
}

func TestParse_DropsMalformedBlocks(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		wantNumbers []int
		wantSkipped int
	}{
		{
			name:        "only three options",
			text:        "1. Pick one\nA) x\nB) y\nC) z\nAns: A\n",
			wantNumbers: []int{},
			wantSkipped: 1,
		},
		{
			name: "middle block missing D",
			text: "1. First?\nA) a\nB) b\nC) c\nD) d\nAns: A\n" +
				"2. Second?\nA) a\nB) b\nC) c\nAns: B\n" +
				"3. Third?\nA) a\nB) b\nC) c\nD) d\nAns: C\n",
			wantNumbers: []int{1, 3},
			wantSkipped: 1,
		},
		{
			name:        "no markers at all",
			text:        "Quiz set one\nGood luck\n",
			wantNumbers: []int{},
			wantSkipped: 0,
		},
		{
			name:        "empty text",
			text:        "",
			wantNumbers: []int{},
			wantSkipped: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Parse(tt.text)
			got := make([]int, 0, len(res.Questions))
			for _, q := range res.Questions {
				got = append(got, q.Number)
			}
			assert.Equal(t, tt.wantNumbers, got)
			assert.Equal(t, tt.wantSkipped, res.Skipped)
		})
	}
}

func TestParse_MissingAnswerMarker(t *testing.T) {
	got := questionsIn("7. Which?\nA) a\nB) b\nC) c\nD) d\n")
	require.Len(t, got, 1)
	assert.Equal(t, 7, got[0].Number)
	assert.NotNil(t, got[0].Answer)
	assert.Empty(t, got[0].Answer)
	assert.False(t, got[0].HasAnswer())
}

func TestParse_DiscardsPreamble(t *testing.T) {
	text := "Chapter Quiz\nAnswer all questions\n\n1. Sky colour?\nA) Blue\nB) Red\nC) Green\nD) Pink\nAns: A\n"
	got := questionsIn(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Sky colour?", got[0].Text)
}

func TestParse_OptionsAreLineBounded(t *testing.T) {
	text := "1. Inline options? A) alpha B) beta\nC) gamma\nD) delta\nAns: C\n"
	got := questionsIn(text)
	require.Len(t, got, 1)
	q := got[0]
	assert.Equal(t, "Inline options?", q.Text)
	// A) consumes the rest of its line, so B) on the same line is swallowed.
	assert.Equal(t, map[string]string{
		"A": "alpha B) beta",
		"C": "gamma",
		"D": "delta",
	}, q.Options)
	assert.Equal(t, []string{"C"}, q.Answer)
}

func TestParse_RepeatedLetterLastWins(t *testing.T) {
	text := "1. Repeat?\nA) first\nB) b\nC) c\nD) d\nA) second\nAns: A\n"
	got := questionsIn(text)
	require.Len(t, got, 1)
	assert.Equal(t, "second", got[0].Options["A"])
}

func TestParse_FirstAnswerMarkerWins(t *testing.T) {
	text := "1. Two answers?\nA) a\nB) b\nC) c\nD) d\nAns: D\nAns: A\n"
	got := questionsIn(text)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"D"}, got[0].Answer)
}

func TestParse_AnswerWithoutSpace(t *testing.T) {
	got := questionsIn("1. Tight?\nA) a\nB) b\nC) c\nD) d\nAns:C\n")
	require.Len(t, got, 1)
	assert.Equal(t, []string{"C"}, got[0].Answer)
}

func TestParse_NonASCIIPreserved(t *testing.T) {
	text := "1. Où est la tour Eiffel ?\nA) Paris\nB) Zürich\nC) Kraków\nD) Москва\nAns: A\n"
	got := questionsIn(text)
	require.Len(t, got, 1)
	assert.Equal(t, "Où est la tour Eiffel ?", got[0].Text)
	assert.Equal(t, "Zürich", got[0].Options["B"])
	assert.Equal(t, "Москва", got[0].Options["D"])
}

func TestParse_PageBreaksBetweenQuestions(t *testing.T) {
	// Pages are joined with a newline each, so a question may start after
	// a blank line.
	text := "1. First?\nA) a\nB) b\nC) c\nD) d\nAns: B\n\n2. Second?\nA) a\nB) b\nC) c\nD) d\nAns: D\n\n"
	got := questionsIn(text)
	require.Len(t, got, 2)
	assert.Equal(t, []string{"B"}, got[0].Answer)
	assert.Equal(t, []string{"D"}, got[1].Answer)
}

func TestParse_Idempotent(t *testing.T) {
	first := Parse(twoQuestions)
	second := Parse(twoQuestions)
	assert.Equal(t, first, second)
}

func TestParse_JSONRoundTrip(t *testing.T) {
	questions := questionsIn(twoQuestions + "3. No answer here\nA) a\nB) b\nC) c\nD) d\n")
	require.Len(t, questions, 3)

	data, err := json.Marshal(questions)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"answer":[]`)

	var back []types.Question
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, questions, back)
}

func TestBlocks(t *testing.T) {
	blocks := Blocks("intro\n1. one\n  2. two\n")
	require.Len(t, blocks, 2)
	assert.Equal(t, Block{Number: "1", Text: "one"}, blocks[0])
	assert.Equal(t, Block{Number: "2", Text: "two\n"}, blocks[1])
}

func TestParse_UnicodeDigitsAndWordBoundary(t *testing.T) {
	// Markers accept decimal digits of any script.
	got := questionsIn("\u0661\u0662. Q?\nA) a\nB) b\nC) c\nD) d\n")
	require.Len(t, got, 1)
	assert.Equal(t, 12, got[0].Number)
	assert.Equal(t, "Q?", got[0].Text)

	// A letter before "A)" removes the word boundary, ASCII or not.
	for _, text := range []string{
		"1. Caf\u00e9A) a\nB) b\nC) c\nD) d\n",
		"1. CafeA) a\nB) b\nC) c\nD) d\n",
		"1. x_A) a\nB) b\nC) c\nD) d\n",
	} {
		res := Parse(text)
		assert.Empty(t, res.Questions, text)
		assert.Equal(t, 1, res.Skipped, text)
	}

	// Punctuation before "A)" keeps it a marker.
	got = questionsIn("1. Caf\u00e9?A) a\nB) b\nC) c\nD) d\n")
	require.Len(t, got, 1)
	assert.Equal(t, "Caf\u00e9?", got[0].Text)
}

func TestDigitValue(t *testing.T) {
	tests := []struct {
		r    rune
		want int
		ok   bool
	}{
		{'7', 7, true},
		{'\u0660', 0, true},
		{'\u0669', 9, true},
		{'\u0967', 1, true},
		{'\U0001D7D9', 1, true},
		{'x', 0, false},
		{'\u00bd', 0, false},
	}
	for _, tt := range tests {
		got, ok := digitValue(tt.r)
		assert.Equal(t, tt.ok, ok, "%U", tt.r)
		assert.Equal(t, tt.want, got, "%U", tt.r)
	}
}

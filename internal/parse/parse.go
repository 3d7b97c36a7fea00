// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse recovers multiple-choice questions from the plain text of a
// quiz document.
//
// Text is cut into blocks at numeric markers ("12. "). Each block must carry
// the four option markers A) B) C) D); blocks that do not are dropped without
// error. Options run to the end of their line, and the answer is taken from
// the first "Ans: X" marker in the block.
package parse

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pdiddy/quizpdf/pkg/types"
)

// ws matches one Unicode whitespace character, including the ASCII
// information separators U+001C through U+001F.
const ws = `[\t\n\v\f\r \x{1c}-\x{1f}\x{85}\p{Z}]`

var (
	// markerRe finds question markers: optional newline, optional
	// whitespace, decimal digits of any script, a period and one whitespace
	// character.
	markerRe = regexp.MustCompile(`\n?` + ws + `*(\p{Nd}+)\.` + ws)

	// splitRe finds option markers. Only A) requires a word boundary, which
	// splitCuts checks against Unicode letters and digits.
	splitRe = regexp.MustCompile(`[ABCD]\)`)

	// optionRe captures a letter and the rest of its line. The whitespace
	// run after ")" may cross a newline.
	optionRe = regexp.MustCompile(`([ABCD])\)` + ws + `*([^\n]+)`)

	answerRe = regexp.MustCompile(`Ans:` + ws + `*([A-D])`)
)

// minSegments is the number of option-split segments a block needs: the
// question text followed by four options.
const minSegments = 5

// Block is a question marker number paired with the raw text that follows it.
type Block struct {
	Number string
	Text   string
}

// Result holds the questions recovered from a document and the number of
// blocks dropped as malformed.
type Result struct {
	Questions []types.Question
	Skipped   int
}

// Blocks splits text at question markers. Text before the first marker is
// discarded. The order of blocks follows the source.
func Blocks(text string) []Block {
	locs := markerRe.FindAllStringSubmatchIndex(text, -1)
	blocks := make([]Block, 0, len(locs))
	for i, loc := range locs {
		end := len(text)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		blocks = append(blocks, Block{
			Number: text[loc[2]:loc[3]],
			Text:   text[loc[1]:end],
		})
	}
	return blocks
}

// Parse extracts every well-formed question from text. It never fails;
// malformed blocks only increase Result.Skipped.
func Parse(text string) Result {
	res := Result{Questions: []types.Question{}}
	for _, b := range Blocks(text) {
		q, ok := parseBlock(b)
		if !ok {
			res.Skipped++
			continue
		}
		res.Questions = append(res.Questions, q)
	}
	return res
}

func parseBlock(b Block) (types.Question, bool) {
	number, ok := parseNumber(b.Number)
	if !ok {
		return types.Question{}, false
	}

	block := trim(b.Text)

	cuts := splitCuts(block)
	if len(cuts)+1 < minSegments {
		return types.Question{}, false
	}

	q := types.Question{
		Number:  number,
		Text:    trim(block[:cuts[0][0]]),
		Options: make(map[string]string),
		Answer:  []string{},
	}

	for _, m := range optionRe.FindAllStringSubmatch(block, -1) {
		q.Options[m[1]] = trim(m[2])
	}

	if m := answerRe.FindStringSubmatch(block); m != nil {
		q.Answer = []string{m[1]}
	}

	return q, true
}

// splitCuts returns the option marker positions in block. An "A)" preceded
// by a word character is not a marker.
func splitCuts(block string) [][]int {
	var cuts [][]int
	for _, loc := range splitRe.FindAllStringIndex(block, -1) {
		if block[loc[0]] == 'A' && loc[0] > 0 {
			prev, _ := utf8.DecodeLastRuneInString(block[:loc[0]])
			if isWord(prev) {
				continue
			}
		}
		cuts = append(cuts, loc)
	}
	return cuts
}

func isWord(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsNumber(r)
}

// parseNumber converts a run of decimal digits from any script to an int.
func parseNumber(s string) (int, bool) {
	ascii := make([]byte, 0, len(s))
	for _, r := range s {
		d, ok := digitValue(r)
		if !ok {
			return 0, false
		}
		ascii = append(ascii, '0'+byte(d))
	}
	n, err := strconv.Atoi(string(ascii))
	if err != nil {
		return 0, false
	}
	return n, true
}

// digitValue returns the value of a decimal digit rune. Decimal digits come
// in contiguous runs of ten starting at zero.
func digitValue(r rune) (int, bool) {
	if r >= '0' && r <= '9' {
		return int(r - '0'), true
	}
	for _, rg := range unicode.Nd.R16 {
		if rg.Stride == 1 && r >= rune(rg.Lo) && r <= rune(rg.Hi) {
			return int(r-rune(rg.Lo)) % 10, true
		}
	}
	for _, rg := range unicode.Nd.R32 {
		if rg.Stride == 1 && r >= rune(rg.Lo) && r <= rune(rg.Hi) {
			return int(r-rune(rg.Lo)) % 10, true
		}
	}
	return 0, false
}

func trim(s string) string {
	return strings.TrimFunc(s, isSpace)
}

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"encoding/hex"
	"strconv"
	"strings"
)

type tokenKind int

const (
	tokOperator tokenKind = iota
	tokNumber
	tokString
	tokOther // names, booleans, array and dictionary delimiters
)

type token struct {
	kind tokenKind
	text string
}

// lexer splits a content stream into PDF tokens. Literal strings are
// returned decoded; nested balanced parentheses stay part of the string.
type lexer struct {
	data []byte
	pos  int
}

func isPDFSpace(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isPDFDelim(c byte) bool {
	return strings.IndexByte("()<>[]{}/%", c) >= 0
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isPDFSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

// regular advances over a run of regular characters.
func (l *lexer) regular() {
	for l.pos < len(l.data) && !isPDFSpace(l.data[l.pos]) && !isPDFDelim(l.data[l.pos]) {
		l.pos++
	}
}

func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	switch c := l.data[l.pos]; c {
	case '(':
		return token{kind: tokString, text: l.literal()}, true
	case '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			return token{kind: tokOther, text: "<<"}, true
		}
		return token{kind: tokString, text: l.hexString()}, true
	case '>':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '>' {
			l.pos += 2
			return token{kind: tokOther, text: ">>"}, true
		}
		l.pos++
		return token{kind: tokOther, text: ">"}, true
	case '[', ']', '{', '}', ')':
		l.pos++
		return token{kind: tokOther, text: string(c)}, true
	case '/':
		start := l.pos
		l.pos++
		l.regular()
		return token{kind: tokOther, text: string(l.data[start:l.pos])}, true
	}

	start := l.pos
	l.regular()
	word := string(l.data[start:l.pos])
	if _, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, text: word}, true
	}
	return token{kind: tokOperator, text: word}, true
}

// literal reads a parenthesized string starting at the current '('.
func (l *lexer) literal() string {
	l.pos++
	start := l.pos
	depth := 1
	for l.pos < len(l.data) {
		switch l.data[l.pos] {
		case '\\':
			l.pos++
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				raw := l.data[start:l.pos]
				l.pos++
				return decodePDFString(raw)
			}
		}
		l.pos++
	}
	return decodePDFString(l.data[start:])
}

// hexString reads a <...> string. A missing final digit counts as 0.
func (l *lexer) hexString() string {
	l.pos++
	var digits []byte
	for l.pos < len(l.data) && l.data[l.pos] != '>' {
		c := l.data[l.pos]
		if ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F') {
			digits = append(digits, c)
		}
		l.pos++
	}
	l.pos++
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, hex.DecodedLen(len(digits)))
	n, _ := hex.Decode(out, digits)
	return string(out[:n])
}

// skipInlineImage moves past the binary data of an inline image, up to and
// including the EI operator.
func (l *lexer) skipInlineImage() {
	for i := l.pos + 1; i+1 < len(l.data); i++ {
		if l.data[i] != 'E' || l.data[i+1] != 'I' || !isPDFSpace(l.data[i-1]) {
			continue
		}
		if i+2 == len(l.data) || isPDFSpace(l.data[i+2]) || isPDFDelim(l.data[i+2]) {
			l.pos = i + 2
			return
		}
	}
	l.pos = len(l.data)
}

// streamText returns the text shown by a content stream. Tj, TJ, ' and "
// contribute their string operands; T*, ', ", ET, and Td or TD with a
// non-zero vertical offset start a new line.
func streamText(data []byte) string {
	var b strings.Builder
	newline := func() {
		if b.Len() > 0 && !strings.HasSuffix(b.String(), "\n") {
			b.WriteByte('\n')
		}
	}
	writeStrings := func(operands []token) {
		for _, op := range operands {
			if op.kind == tokString {
				b.WriteString(op.text)
			}
		}
	}

	lx := &lexer{data: data}
	var operands []token
	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "Tj", "TJ":
			writeStrings(operands)
		case "'", `"`:
			newline()
			writeStrings(operands)
		case "Td", "TD":
			if n := len(operands); n >= 2 && operands[n-1].kind == tokNumber && !isZero(operands[n-1].text) {
				newline()
			}
		case "T*", "ET":
			newline()
		case "ID":
			lx.skipInlineImage()
		}
		operands = operands[:0]
	}
	return strings.TrimRight(b.String(), "\n")
}

func isZero(number string) bool {
	f, err := strconv.ParseFloat(number, 64)
	return err == nil && f == 0
}

// decodePDFString handles the escape sequences of a PDF literal string.
func decodePDFString(raw []byte) string {
	var b strings.Builder
	for i := 0; i < len(raw); i++ {
		if raw[i] != '\\' || i+1 >= len(raw) {
			b.WriteByte(raw[i])
			continue
		}
		i++
		switch c := raw[i]; c {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '\\', '(', ')':
			b.WriteByte(c)
		case '\n':
			// line continuation
		case '\r':
			if i+1 < len(raw) && raw[i+1] == '\n' {
				i++
			}
		default:
			if c < '0' || c > '7' {
				b.WriteByte(c)
				continue
			}
			val := int(c - '0')
			for n := 0; n < 2 && i+1 < len(raw) && raw[i+1] >= '0' && raw[i+1] <= '7'; n++ {
				i++
				val = val*8 + int(raw[i]-'0')
			}
			b.WriteByte(byte(val))
		}
	}
	return b.String()
}

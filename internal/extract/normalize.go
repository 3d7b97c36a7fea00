// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package extract

import (
	"fmt"

	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/quizpdf/pkg/types"
)

func normalizer(n types.Normalization) (func(string) string, error) {
	switch n {
	case types.NormalizeNone:
		return func(s string) string { return s }, nil
	case types.NormalizeNFC:
		return norm.NFC.String, nil
	case types.NormalizeNFKC:
		return norm.NFKC.String, nil
	default:
		return nil, fmt.Errorf("unsupported normalization %q: use nfc or nfkc", n)
	}
}

// Normalize applies the Unicode normalization form n to text. The empty
// form leaves text unchanged.
func Normalize(text string, n types.Normalization) (string, error) {
	f, err := normalizer(n)
	if err != nil {
		return "", err
	}
	return f(text), nil
}

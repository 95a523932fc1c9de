package core

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// Arabic code points handled explicitly during normalization. Hamza-carrying
// alef forms are not listed here: NFKD decomposes them into a bare alef plus
// a combining mark, which the mark filter removes.
const (
	tatweel     = 'ـ' // ـ stretching character
	alef        = 'ا' // ا
	alefWasla   = 'ٱ' // ٱ
	alefMaqsura = 'ى' // ى
	yeh         = 'ي' // ي
	tehMarbuta  = 'ة' // ة
	heh         = 'ه' // ه
)

// NormalizeText canonicalizes text for matching and indexing. It strips
// combining marks (Arabic tashkeel included), removes tatweel, folds common
// Arabic letter variants, lowercases, replaces punctuation and symbols with
// spaces and collapses runs of whitespace. The function is pure: the same
// input always yields the same output.
func NormalizeText(text string) string {
	decomposed := norm.NFKD.String(text)

	var b strings.Builder
	b.Grow(len(decomposed))
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// Combining marks: harakat, shadda, madda, hamza marks,
			// Latin accents after decomposition.
		case r == tatweel:
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(foldArabic(unicode.ToLower(r)))
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

func foldArabic(r rune) rune {
	switch r {
	case alefWasla:
		return alef
	case alefMaqsura:
		return yeh
	case tehMarbuta:
		return heh
	}
	return r
}

// Tokenize splits normalized text into whitespace-delimited terms.
// The input is expected to already be in NormalizeText form.
func Tokenize(text string) []string {
	return strings.Fields(text)
}

package core

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// boundaryPunctuation lists the punctuation characters that delimit a word
// in addition to whitespace.
const boundaryPunctuation = ".,;:!?()[]{}|"

// IsBoundary reports whether r may delimit a search word.
func IsBoundary(r rune) bool {
	return unicode.IsSpace(r) || strings.ContainsRune(boundaryPunctuation, r)
}

// PadText lowercases text and surrounds it with a single space on each side
// so that words at the very start or end of the field still have a boundary.
func PadText(text string) string {
	return " " + strings.ToLower(text) + " "
}

// MatchesWord reports whether word occurs in text with a boundary character
// immediately before and after it. text must already be lowercased and padded
// (see PadText). Every occurrence is examined, so "classic ass" matches "ass"
// even though the first occurrence sits inside "classic".
func MatchesWord(text, word string) bool {
	if text == "" || word == "" {
		return false
	}

	offset := 0
	for {
		idx := strings.Index(text[offset:], word)
		if idx == -1 {
			return false
		}
		start := offset + idx
		end := start + len(word)

		if boundaryBefore(text, start) && boundaryAfter(text, end) {
			return true
		}

		// Advance by one rune so overlapping occurrences are still found.
		_, size := utf8.DecodeRuneInString(text[start:])
		offset = start + size
		if offset >= len(text) {
			return false
		}
	}
}

func boundaryBefore(text string, start int) bool {
	if start == 0 {
		return false
	}
	r, _ := utf8.DecodeLastRuneInString(text[:start])
	return IsBoundary(r)
}

func boundaryAfter(text string, end int) bool {
	if end >= len(text) {
		return false
	}
	r, _ := utf8.DecodeRuneInString(text[end:])
	return IsBoundary(r)
}

package core

import "strings"

// ScanLyrics returns the subset of words that occur in lyrics as
// boundary-delimited tokens. The result keeps the order of words, not the
// order in which they appear in the text. Matching is case-insensitive.
func ScanLyrics(lyrics string, words []string) []string {
	found := []string{}
	if len(words) == 0 {
		return found
	}

	// Lowercase and pad once for the whole word list
	text := PadText(lyrics)

	for _, word := range words {
		if MatchesWord(text, strings.ToLower(word)) {
			found = append(found, word)
		}
	}

	return found
}

// ContainsExplicit reports whether any word in words occurs in lyrics.
func ContainsExplicit(lyrics string, words []string) bool {
	return len(ScanLyrics(lyrics, words)) > 0
}

package core

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// WordListMetadata contains information about a word list file
type WordListMetadata struct {
	// Version of the word list
	Version string `yaml:"version"`

	// When the list was created
	CreatedAt time.Time `yaml:"created_at,omitempty"`

	// Last modification time
	UpdatedAt time.Time `yaml:"updated_at,omitempty"`

	// Description of the list
	Description string `yaml:"description,omitempty"`

	// Author of the list
	Author string `yaml:"author,omitempty"`

	// Hash of the file content for integrity verification
	Hash string `yaml:"hash,omitempty"`
}

// WordList is the ordered set of search terms used for one scan pass
type WordList struct {
	Metadata WordListMetadata `yaml:"metadata"`
	Words    []string         `yaml:"words"`
}

// defaultWords are the terms preselected by the catalog team
var defaultWords = []string{
	"shit", "bullshit", "shithead", "piss", "fuck", "cunt", "cocksucker",
	"motherfucker", "tits", "pussy", "asshole", "wog", "wop", "nigger",
	"kike", "gook", "gypsy", "faggot", "goddamn",
}

// DefaultWordList returns the built-in word list
func DefaultWordList() *WordList {
	return &WordList{
		Metadata: WordListMetadata{
			Version:     "1.0.0",
			Description: "Default explicit-language word list",
			Author:      "xplicit",
		},
		Words: NormalizeWords(defaultWords),
	}
}

// LoadWordList reads a YAML word list file
func LoadWordList(path string) (*WordList, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word list file: %w", err)
	}

	list, err := ParseWordList(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return list, nil
}

// ParseWordList decodes a YAML word list, normalises its words and records
// the content hash
func ParseWordList(data []byte) (*WordList, error) {
	var list WordList
	if err := yaml.Unmarshal(data, &list); err != nil {
		return nil, fmt.Errorf("failed to parse word list: %w", err)
	}

	list.Words = NormalizeWords(list.Words)
	if err := validateWordList(&list); err != nil {
		return nil, fmt.Errorf("invalid word list: %w", err)
	}

	list.Metadata.Hash = calculateHash(data)
	return &list, nil
}

// NormalizeWords lowercases and trims words, dropping empties and
// duplicates while keeping the first occurrence's position
func NormalizeWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	normalized := make([]string, 0, len(words))
	for _, word := range words {
		w := strings.ToLower(strings.TrimSpace(word))
		if w == "" {
			continue
		}
		if _, dup := seen[w]; dup {
			continue
		}
		seen[w] = struct{}{}
		normalized = append(normalized, w)
	}
	return normalized
}

// Hash returns the stored content hash, or a hash of the words when the
// list was not loaded from a file
func (l *WordList) Hash() string {
	if l.Metadata.Hash != "" {
		return l.Metadata.Hash
	}
	return calculateHash([]byte(strings.Join(l.Words, "\n")))
}

// validateWordList checks that a word list is usable
func validateWordList(list *WordList) error {
	if len(list.Words) == 0 {
		return fmt.Errorf("word list has no words")
	}
	return nil
}

// calculateHash generates a hash of the content for integrity checking
func calculateHash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

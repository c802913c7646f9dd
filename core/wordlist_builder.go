package core

import "time"

// WordListBuilder provides a fluent interface for assembling a word list
type WordListBuilder struct {
	list *WordList
}

// NewWordListBuilder creates an empty builder
func NewWordListBuilder() *WordListBuilder {
	return &WordListBuilder{
		list: &WordList{
			Metadata: WordListMetadata{
				CreatedAt: time.Now(),
				UpdatedAt: time.Now(),
			},
			Words: []string{},
		},
	}
}

// WithMetadata sets the word list metadata
func (b *WordListBuilder) WithMetadata(version, description, author string) *WordListBuilder {
	b.list.Metadata.Version = version
	b.list.Metadata.Description = description
	b.list.Metadata.Author = author
	return b
}

// WithDefaults adds the built-in words
func (b *WordListBuilder) WithDefaults() *WordListBuilder {
	b.list.Words = append(b.list.Words, defaultWords...)
	return b
}

// Add appends words to the list
func (b *WordListBuilder) Add(words ...string) *WordListBuilder {
	b.list.Words = append(b.list.Words, words...)
	return b
}

// Remove drops words from the list, ignoring case
func (b *WordListBuilder) Remove(words ...string) *WordListBuilder {
	drop := make(map[string]struct{}, len(words))
	for _, w := range NormalizeWords(words) {
		drop[w] = struct{}{}
	}

	kept := b.list.Words[:0]
	for _, w := range NormalizeWords(b.list.Words) {
		if _, ok := drop[w]; !ok {
			kept = append(kept, w)
		}
	}
	b.list.Words = kept
	return b
}

// Build normalises the words and returns the list
func (b *WordListBuilder) Build() *WordList {
	b.list.Words = NormalizeWords(b.list.Words)
	b.list.Metadata.UpdatedAt = time.Now()
	return b.list
}

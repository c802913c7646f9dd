package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewriteVersion(t *testing.T) {
	tests := []struct {
		name     string
		version  string
		explicit bool
		want     string
	}{
		{"single token", "Full Mix", true, "Full Mix Explicit"},
		{"second token untouched", "Full Mix, Clean", true, "Full Mix Explicit, Clean"},
		{"main", "Main", true, "Main Explicit"},
		{"other first token", "Instrumental, 30s", true, "Instrumental Explicit, 30s"},
		{"trailing formatting kept", "Full,  Alt ,x", true, "Full Explicit,  Alt ,x"},
		{"no separator space", "Full,Clean", true, "Full,Clean Explicit"},
		{"no explicit content", "Full Mix", false, "Full Mix"},
		{"already explicit", "Full Mix Explicit", true, "Full Mix Explicit"},
		{"marker in later token", "Full Mix, Explicit Edit", true, "Full Mix, Explicit Edit"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RewriteVersion(tt.version, tt.explicit))
		})
	}
}

func TestRewriteVersionIdempotent(t *testing.T) {
	labels := []string{"Full Mix Explicit", "Main Explicit, Clean", "Explicit"}
	for _, v := range labels {
		assert.Equal(t, v, RewriteVersion(v, true))
		assert.Equal(t, v, RewriteVersion(v, false))
	}

	once := RewriteVersion("Full Mix, Clean", true)
	assert.Equal(t, once, RewriteVersion(once, true))
}

func TestRewriteVersionKeepsTokenCount(t *testing.T) {
	labels := []string{"Full", "Full Mix, Clean", "Main, 60s, Stem", "Underscore, Alt, Short, Loop"}
	for _, v := range labels {
		got := RewriteVersion(v, true)
		before := strings.Split(v, VersionSeparator)
		after := strings.Split(got, VersionSeparator)

		assert.Len(t, after, len(before))
		assert.Equal(t, before[0]+" Explicit", after[0])
		assert.Equal(t, before[1:], after[1:])
	}
}

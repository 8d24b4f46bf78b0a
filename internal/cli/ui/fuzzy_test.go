package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLevenshteinDistance(t *testing.T) {
	tests := []struct {
		s1       string
		s2       string
		expected int
	}{
		{"", "", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"abc", "abc", 0},
		{"kitten", "sitting", 3},
		{"saturday", "sunday", 3},
		{"email", "emial", 2},
		{"userId", "userID", 1},
		{"größe", "grösse", 2},
	}

	for _, tt := range tests {
		t.Run(tt.s1+"_"+tt.s2, func(t *testing.T) {
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.s1, tt.s2))
			assert.Equal(t, tt.expected, LevenshteinDistance(tt.s2, tt.s1))
		})
	}
}

func TestFindSimilar(t *testing.T) {
	candidates := []string{"active", "email", "name", "tags", "userId"}

	tests := []struct {
		name     string
		target   string
		opts     *FuzzyMatchOptions
		expected []string
	}{
		{"exact match", "email", nil, []string{"email"}},
		{"transposed letters", "emial", nil, []string{"email"}},
		{"case insensitive", "USERID", nil, []string{"userId"}},
		{"case sensitive", "USERID", &FuzzyMatchOptions{CaseSensitive: true}, []string{}},
		{"ties sorted alphabetically", "nam", nil, []string{"name", "tags"}},
		{"limited suggestions", "nam", &FuzzyMatchOptions{MaxSuggestions: 1}, []string{"name"}},
		{"tight distance", "nme", &FuzzyMatchOptions{MaxDistance: 1}, []string{"name"}},
		{"nothing close", "createdAt", nil, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FindSimilar(tt.target, candidates, tt.opts))
		})
	}
}

func TestFindSimilar_DoesNotModifyOptions(t *testing.T) {
	opts := &FuzzyMatchOptions{}
	FindSimilar("a", []string{"b"}, opts)
	assert.Equal(t, FuzzyMatchOptions{}, *opts)
}

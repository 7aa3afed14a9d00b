package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeURL(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "drops fragment",
			input:    "https://example.com/jobs/123#apply",
			expected: "https://example.com/jobs/123",
		},
		{
			name:     "removes utm parameters",
			input:    "https://example.com/jobs/123?utm_source=linkedin&utm_medium=social",
			expected: "https://example.com/jobs/123",
		},
		{
			name:     "removes known trackers but keeps real params",
			input:    "https://example.com/jobs?gclid=abc&id=42",
			expected: "https://example.com/jobs?id=42",
		},
		{
			name:     "tracker removal is case-insensitive",
			input:    "https://example.com/jobs/123?UTM_Source=x&FBCLID=y",
			expected: "https://example.com/jobs/123",
		},
		{
			name:     "strips trailing slash",
			input:    "https://example.com/jobs/123/",
			expected: "https://example.com/jobs/123",
		},
		{
			name:     "root path keeps its slash",
			input:    "https://example.com/",
			expected: "https://example.com/",
		},
		{
			name:     "trims surrounding whitespace",
			input:    "  https://example.com/jobs/123  ",
			expected: "https://example.com/jobs/123",
		},
		{
			name:     "unparseable input returned trimmed",
			input:    "  not a url  ",
			expected: "not a url",
		},
		{
			name:     "empty input",
			input:    "   ",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NormalizeURL(tt.input))
		})
	}
}

func TestNormalizeURLIdempotent(t *testing.T) {
	inputs := []string{
		"https://example.com/jobs/123?utm_source=x&ref=mail#top",
		"https://boards.greenhouse.io/acme/jobs/456/",
		"https://example.com/jobs?a=1&b=2",
	}
	for _, in := range inputs {
		once := NormalizeURL(in)
		assert.Equal(t, once, NormalizeURL(once), "input %q", in)
	}
}

func TestExtractDomain(t *testing.T) {
	assert.Equal(t, "example.com", ExtractDomain("https://Example.com/jobs/1"))
	assert.Equal(t, "boards.greenhouse.io", ExtractDomain("https://boards.greenhouse.io/acme"))
	assert.Equal(t, "unknown", ExtractDomain("%%%"))
	assert.Equal(t, "unknown", ExtractDomain(""))
}

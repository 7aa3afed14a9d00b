package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "non-breaking spaces become plain",
			input:    "Senior Engineer",
			expected: "Senior Engineer",
		},
		{
			name:     "trailing whitespace stripped per line",
			input:    "line one   \nline two",
			expected: "line one\nline two",
		},
		{
			name:     "newline runs collapse to two",
			input:    "para one\n\n\n\n\npara two",
			expected: "para one\n\npara two",
		},
		{
			name:     "space runs collapse",
			input:    "a    b\tc",
			expected: "a b c",
		},
		{
			name:     "lone tab becomes a space",
			input:    "Salary:\t$120k",
			expected: "Salary: $120k",
		},
		{
			name:     "surrounding whitespace trimmed",
			input:    "\n\n  hello  \n\n",
			expected: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, CleanText(tt.input))
		})
	}
}

func TestDetectLoginWall(t *testing.T) {
	assert.True(t, DetectLoginWall("Sign in to view this job. Forgot password?", ""))
	assert.True(t, DetectLoginWall("Create an account to continue", "Login | ExampleBoard"))
	assert.False(t, DetectLoginWall("We are hiring a Senior Go Engineer to build our platform.", "Senior Go Engineer"))
	assert.False(t, DetectLoginWall("Sign in available in the header", "Acme Careers"), "a single signal is page chrome, not a wall")
}

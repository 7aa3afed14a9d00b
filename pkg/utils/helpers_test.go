package utils

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStringOrNil(t *testing.T) {
	assert.Nil(t, StringOrNil(""))
	assert.Nil(t, StringOrNil("   "))

	v := StringOrNil("  Acme Corp  ")
	if assert.NotNil(t, v) {
		assert.Equal(t, "Acme Corp", *v)
	}
}

func TestFiniteOrNil(t *testing.T) {
	nan := math.NaN()
	inf := math.Inf(1)
	ok := 120000.0

	assert.Nil(t, FiniteOrNil(nil))
	assert.Nil(t, FiniteOrNil(&nan))
	assert.Nil(t, FiniteOrNil(&inf))
	assert.Equal(t, &ok, FiniteOrNil(&ok))
}

func TestCleanStringSlice(t *testing.T) {
	in := []string{" Go ", "", "  ", "Postgres"}
	assert.Equal(t, []string{"Go", "Postgres"}, CleanStringSlice(in))
	assert.Empty(t, CleanStringSlice(nil))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", Truncate("short", 10))
	assert.Equal(t, "abc...", Truncate("abcdef", 3))
}

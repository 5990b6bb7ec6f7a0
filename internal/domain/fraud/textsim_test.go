package fraud

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTextSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, TextSimilarity("the app crashed on login", "the app crashed on login"), 1e-9)

	// Punctuation and casing do not dodge the comparison.
	assert.InDelta(t, 1.0, TextSimilarity(
		"The app CRASHED, on login!!!",
		"the app crashed on login",
	), 1e-9)

	assert.Less(t, TextSimilarity(
		"checkout flow worked fine on my tablet",
		"notifications stopped arriving after the update",
	), 0.5)

	assert.Zero(t, TextSimilarity("", "anything"))
	assert.Zero(t, TextSimilarity("anything", "   "))
}

func TestMaxSimilarity(t *testing.T) {
	best, idx := MaxSimilarity("the app crashed on login", []string{
		"notifications stopped arriving",
		"the app crashed on login",
		"checkout flow worked fine",
	})
	assert.InDelta(t, 1.0, best, 1e-9)
	assert.Equal(t, 1, idx)

	best, idx = MaxSimilarity("anything", nil)
	assert.Zero(t, best)
	assert.Equal(t, -1, idx)
}

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Hello, World!", "hello world"},
		{"  spaced   out\ttext \n", "spaced out text"},
		{"ALL CAPS 123", "all caps 123"},
		{"!!!", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeText(tt.in), "input %q", tt.in)
	}
}

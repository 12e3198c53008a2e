package lyrics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"Taylor Swift", "taylor-swift"},
		{"Love Story!", "love-story"},
		{"  Don't   Stop Believin' ", "dont-stop-believin"},
		{"Olivia Newton-John", "olivia-newtonjohn"},
		{"Beyoncé", "beyonc"},
		{"P!nk", "pnk"},
		{"Boyz II Men\tfeat. 2Pac", "boyz-ii-men-feat-2pac"},
		{"!!!", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, Slug(tt.input))
		})
	}
}

func TestURL(t *testing.T) {
	assert.Equal(t, "http://genius.com/taylor-swift-love-story-lyrics", URL("http://genius.com", "Taylor Swift", "Love Story!"))
	assert.Equal(t, "http://localhost:8080/toto-africa-lyrics", URL("http://localhost:8080/", "Toto", "Africa"))
}

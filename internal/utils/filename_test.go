package utils

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizeFilename(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "strips reserved characters",
			input:    `catalog<photo>:v2?.jpg`,
			expected: "catalogphotov2.jpg",
		},
		{
			name:     "strips path separators",
			input:    `C:\photos\mug.jpg`,
			expected: "Cphotosmug.jpg",
		},
		{
			name:     "collapses whitespace runs",
			input:    "white\n\tceramic   mug.png",
			expected: "white ceramic mug.png",
		},
		{
			name:     "no double space where a hash was removed",
			input:    "promo # summer.jpg",
			expected: "promo summer.jpg",
		},
		{
			name:     "strips quotes",
			input:    `spring "sale" banner.png`,
			expected: "spring sale banner.png",
		},
		{
			name:     "trims edges",
			input:    "  bottle.jpg  ",
			expected: "bottle.jpg",
		},
		{
			name:     "falls back for empty input",
			input:    "",
			expected: "image",
		},
		{
			name:     "falls back when nothing survives",
			input:    "###",
			expected: "image",
		},
		{
			name:     "caps length",
			input:    strings.Repeat("x", 300),
			expected: strings.Repeat("x", 200),
		},
		{
			name:     "keeps unicode letters",
			input:    "Pamiątkowy kubek.jpg",
			expected: "Pamiątkowy kubek.jpg",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SanitizeFilename(tt.input))
		})
	}
}

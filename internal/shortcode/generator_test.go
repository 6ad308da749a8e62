package shortcode_test

import (
	"regexp"
	"strings"
	"testing"

	"edge-shortener/internal/shortcode"

	"github.com/stretchr/testify/assert"
)

var codePattern = regexp.MustCompile(`^[A-Za-z0-9]{8}$`)

func TestAlphabet_HasSixtyTwoDistinctCharacters(t *testing.T) {
	seen := make(map[rune]bool)
	for _, c := range shortcode.Alphabet {
		seen[c] = true
	}
	assert.Len(t, seen, 62)
	assert.Len(t, shortcode.Alphabet, 62)
}

func TestGenerator_ProducesEightAlphanumericCharacters(t *testing.T) {
	gen := shortcode.NewGenerator()

	for i := 0; i < 1000; i++ {
		code := gen.Generate()
		assert.Regexp(t, codePattern, code)
	}
}

func TestGenerator_CustomLength(t *testing.T) {
	tests := []struct {
		name   string
		length int
		want   int
	}{
		{name: "twelve", length: 12, want: 12},
		{name: "one", length: 1, want: 1},
		{name: "zero falls back", length: 0, want: shortcode.DefaultLength},
		{name: "negative falls back", length: -3, want: shortcode.DefaultLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gen := shortcode.NewGeneratorWithLength(tt.length)
			assert.Len(t, gen.Generate(), tt.want)
		})
	}
}

func TestGenerator_UsesWholeAlphabet(t *testing.T) {
	gen := shortcode.NewGenerator()
	seen := make(map[rune]bool)

	// 20000 draws over 62 symbols leaves essentially no chance of a miss.
	for i := 0; i < 2500; i++ {
		for _, c := range gen.Generate() {
			seen[c] = true
		}
	}

	for _, c := range shortcode.Alphabet {
		assert.True(t, seen[c], "character %q never drawn", string(c))
	}
}

func TestGenerator_ProducesUniqueCodesStatistically(t *testing.T) {
	gen := shortcode.NewGenerator()
	seen := make(map[string]bool)
	count := 10000

	for i := 0; i < count; i++ {
		seen[gen.Generate()] = true
	}

	// 62^8 possible codes. Uniqueness here is statistical only; the
	// generator never consults the store.
	assert.Len(t, seen, count)
}

func TestGenerator_NoAmbiguousCharacterFiltering(t *testing.T) {
	for _, c := range "0OIl1" {
		assert.True(t, strings.ContainsRune(shortcode.Alphabet, c))
	}
}

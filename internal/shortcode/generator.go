package shortcode

import (
	"crypto/rand"
	"math/big"
)

// Alphabet is every upper and lower case ASCII letter plus the ten digits.
const Alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// DefaultLength is the number of characters in a generated code.
const DefaultLength = 8

// Generator generates random short codes.
//
// Codes are not checked against existing keys. Two creates that draw the
// same code write to the same key and the later one wins.
type Generator struct {
	alphabet string
	length   int
}

// NewGenerator creates a generator producing DefaultLength codes.
func NewGenerator() *Generator {
	return NewGeneratorWithLength(DefaultLength)
}

// NewGeneratorWithLength creates a generator producing codes of the given
// length. Non-positive lengths fall back to DefaultLength.
func NewGeneratorWithLength(length int) *Generator {
	if length <= 0 {
		length = DefaultLength
	}
	return &Generator{
		alphabet: Alphabet,
		length:   length,
	}
}

// Generate creates a new random short code. Each character is drawn
// independently and uniformly from the alphabet using crypto/rand.
func (g *Generator) Generate() string {
	b := make([]byte, g.length)
	alphabetLen := big.NewInt(int64(len(g.alphabet)))

	for i := range b {
		n, err := rand.Int(rand.Reader, alphabetLen)
		if err != nil {
			panic("crypto/rand failed: " + err.Error())
		}
		b[i] = g.alphabet[n.Int64()]
	}

	return string(b)
}

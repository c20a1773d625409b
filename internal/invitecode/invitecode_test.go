package invitecode

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewLength(t *testing.T) {
	code := New()
	assert.Len(t, code, Length)
}

func TestNewLen(t *testing.T) {
	testCases := []struct {
		name   string
		length int
	}{
		{name: "zero length", length: 0},
		{name: "single char", length: 1},
		{name: "standard length", length: 8},
		{name: "long code", length: 64},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			code := NewLen(tc.length)
			assert.Len(t, code, tc.length)

			for i := 0; i < len(code); i++ {
				assert.True(t, bytes.ContainsRune(Alphabet, rune(code[i])),
					"character %q not in alphabet", code[i])
			}
		})
	}
}

func TestNewIsNotConstant(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		seen[New()] = true
	}

	// 100 draws from a 32^8 space colliding down to one value would mean
	// the generator is broken.
	assert.Greater(t, len(seen), 1)
}

func TestAlphabetExcludesAmbiguousCharacters(t *testing.T) {
	for _, c := range "0O1lI" {
		assert.False(t, bytes.ContainsRune(Alphabet, c), "alphabet must not contain %q", c)
	}
}

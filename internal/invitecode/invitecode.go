// Package invitecode generates the short codes that grant join access to a group.
package invitecode

import (
	"crypto/rand"
)

// Length is the fixed length of an invite code.
const Length = 8

// Alphabet is the set of characters allowed in an invite code.
// Visually ambiguous characters (0/O, 1/l/I) are excluded because codes are
// read aloud and typed by hand.
var Alphabet = []byte("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

// New returns a new random invite code of the standard length.
func New() string {
	return NewLen(Length)
}

// NewLen returns a new random invite code of the provided length.
// Bytes above the largest multiple of the alphabet size are rejected to
// avoid modulo bias.
func NewLen(length int) string {
	if length == 0 {
		return ""
	}

	clen := len(Alphabet)
	maxRb := 255 - (256 % clen)

	out := make([]byte, length)
	buf := make([]byte, length*2) // oversample to keep rand.Read calls rare

	var i int
	for {
		if _, err := rand.Read(buf); err != nil {
			panic("invitecode: error reading random bytes: " + err.Error())
		}

		for _, rb := range buf {
			c := int(rb)
			if c > maxRb {
				// Skip this byte to avoid modulo bias.
				continue
			}
			out[i] = Alphabet[c%clen]
			i++
			if i == length {
				return string(out)
			}
		}
	}
}

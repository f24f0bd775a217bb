// Package pow provides HashREST proof-of-work token generation.
package pow

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestLength is the length of a hex-encoded SHA-256 digest.
const DigestLength = sha256.Size * 2

// MaxDifficulty is the largest difficulty a digest can satisfy.
const MaxDifficulty = DigestLength

// Digest computes the SHA-256 digest of s.
//
// The returned digest is lowercase hex, the form verifiers compare against.
func Digest(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// LeadingZeros counts the leading '0' characters of a hex digest.
func LeadingZeros(digest string) int {
	n := 0
	for n < len(digest) && digest[n] == '0' {
		n++
	}
	return n
}

// Satisfies reports whether digest starts with difficulty '0' characters.
func Satisfies(digest string, difficulty int) bool {
	if difficulty < 0 || difficulty > len(digest) {
		return false
	}
	for i := 0; i < difficulty; i++ {
		if digest[i] != '0' {
			return false
		}
	}
	return true
}

// Check re-derives the digest of token and reports whether it satisfies
// difficulty. It performs the same test a HashREST server applies to the
// header value.
func Check(token string, difficulty int) bool {
	return Satisfies(Digest(token), difficulty)
}

// ValidateDifficulty rejects difficulties no digest can satisfy.
func ValidateDifficulty(difficulty int) error {
	if difficulty < 0 || difficulty > MaxDifficulty {
		return fmt.Errorf("%w: %d not in [0, %d]", ErrInvalidDifficulty, difficulty, MaxDifficulty)
	}
	return nil
}

// zeroNibbles reports whether the first n hex characters of sum are '0'
// without hex-encoding it.
func zeroNibbles(sum *[sha256.Size]byte, n int) bool {
	full := n / 2
	for i := 0; i < full; i++ {
		if sum[i] != 0 {
			return false
		}
	}
	if n%2 == 1 && sum[full]>>4 != 0 {
		return false
	}
	return true
}

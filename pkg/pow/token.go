// Package pow provides HashREST proof-of-work token generation.
package pow

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// Delimiter separates token fields.
	Delimiter = ";"

	// NonceLength is the number of letters in a token nonce.
	NonceLength = 6

	fieldCount = 4
)

// Token is a parsed HashREST token.
type Token struct {
	Timestamp int64  // Milliseconds since the Unix epoch
	Target    string // URL the token is bound to
	Nonce     string // NonceLength lowercase letters
	Counter   uint64 // Search counter
}

// Base returns the token text up to and including the last delimiter.
// Every candidate of a search shares it.
func (t Token) Base() string {
	var b strings.Builder
	b.Grow(len(t.Target) + len(t.Nonce) + 24)
	b.WriteString(strconv.FormatInt(t.Timestamp, 10))
	b.WriteString(Delimiter)
	b.WriteString(t.Target)
	b.WriteString(Delimiter)
	b.WriteString(t.Nonce)
	b.WriteString(Delimiter)
	return b.String()
}

// String returns the token text sent in the HashREST header.
func (t Token) String() string {
	return t.Base() + strconv.FormatUint(t.Counter, 10)
}

// Time returns the token timestamp as a time.Time in UTC.
func (t Token) Time() time.Time {
	return time.UnixMilli(t.Timestamp).UTC()
}

// Parse parses token text.
//
// The text must have exactly four fields: an integer timestamp, a target,
// a nonce of NonceLength lowercase letters and a non-negative decimal counter.
// Numbers must be canonical (no sign, no leading zeros) so that String
// reproduces text exactly.
func Parse(text string) (Token, error) {
	fields := strings.Split(text, Delimiter)
	if len(fields) != fieldCount {
		return Token{}, fmt.Errorf("%w: %d fields, want %d", ErrMalformedToken, len(fields), fieldCount)
	}

	ts, err := strconv.ParseInt(fields[0], 10, 64)
	if err != nil || strconv.FormatInt(ts, 10) != fields[0] || strings.HasPrefix(fields[0], "-") {
		return Token{}, fmt.Errorf("%w: timestamp %q", ErrMalformedToken, fields[0])
	}

	if !isNonce(fields[2]) {
		return Token{}, fmt.Errorf("%w: nonce %q", ErrMalformedToken, fields[2])
	}

	counter, err := strconv.ParseUint(fields[3], 10, 64)
	if err != nil || strconv.FormatUint(counter, 10) != fields[3] {
		return Token{}, fmt.Errorf("%w: counter %q", ErrMalformedToken, fields[3])
	}

	return Token{
		Timestamp: ts,
		Target:    fields[1],
		Nonce:     fields[2],
		Counter:   counter,
	}, nil
}

// ValidateTarget rejects targets that would make token text ambiguous.
func ValidateTarget(target string) error {
	if strings.Contains(target, Delimiter) {
		return fmt.Errorf("%w: %q contains %q", ErrInvalidTarget, target, Delimiter)
	}
	return nil
}

func isNonce(s string) bool {
	if len(s) != NonceLength {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'a' || s[i] > 'z' {
			return false
		}
	}
	return true
}

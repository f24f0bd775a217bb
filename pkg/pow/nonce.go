// Package pow provides HashREST proof-of-work token generation.
package pow

import (
	"math/rand/v2"
	"sync"
	"time"
)

// DefaultZone is the zone token timestamps are taken in.
//
// Epoch milliseconds do not depend on the zone; it only affects how the
// timestamp is rendered in logs and command output.
const DefaultZone = "Europe/Vienna"

const alphabet = "abcdefghijklmnopqrstuvwxyz"

// Clock returns the current time.
type Clock func() time.Time

// Source supplies the time and randomness inputs of one token.
//
// A Source is safe for concurrent use.
type Source struct {
	now Clock
	loc *time.Location

	mu  sync.Mutex
	rng *rand.Rand
}

// NewSource creates a Source. Nil arguments select time.Now, a PCG
// generator seeded from the runtime, and DefaultZone.
func NewSource(now Clock, rng *rand.Rand, loc *time.Location) *Source {
	if now == nil {
		now = time.Now
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if loc == nil {
		loc = LoadZone(DefaultZone)
	}
	return &Source{now: now, rng: rng, loc: loc}
}

// Now returns the current time in the source's zone.
func (s *Source) Now() time.Time {
	return s.now().In(s.loc)
}

// Timestamp returns the current time in milliseconds since the Unix epoch.
func (s *Source) Timestamp() int64 {
	return s.Now().UnixMilli()
}

// Location returns the source's zone.
func (s *Source) Location() *time.Location {
	return s.loc
}

// RandomAlpha returns length letters drawn uniformly from a-z.
func (s *Source) RandomAlpha(length int) string {
	if length <= 0 {
		return ""
	}

	b := make([]byte, length)
	s.mu.Lock()
	for i := range b {
		b[i] = alphabet[s.rng.IntN(len(alphabet))]
	}
	s.mu.Unlock()
	return string(b)
}

// LoadZone loads the named zone, falling back to UTC when the zone
// database is not available.
func LoadZone(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.UTC
	}
	return loc
}

// Package pow provides HashREST proof-of-work token generation.
package pow

import (
	"context"
	"math/rand/v2"
	"sync"
	"time"
)

// Generator produces HashREST tokens.
//
// A Generator is safe for concurrent use; every call draws a fresh
// timestamp and nonce and runs an independent search.
type Generator struct {
	now Clock
	rng *rand.Rand
	loc *time.Location

	source *Source
}

// Option configures a Generator.
type Option func(*Generator)

// WithClock sets the clock used for token timestamps.
func WithClock(now Clock) Option {
	return func(g *Generator) {
		g.now = now
	}
}

// WithRand sets the random generator used for nonces.
// Tests pass a seeded generator to get reproducible tokens.
func WithRand(rng *rand.Rand) Option {
	return func(g *Generator) {
		g.rng = rng
	}
}

// WithLocation sets the zone timestamps are taken in.
func WithLocation(loc *time.Location) Option {
	return func(g *Generator) {
		g.loc = loc
	}
}

// New creates a Generator.
func New(opts ...Option) *Generator {
	g := &Generator{}
	for _, opt := range opts {
		opt(g)
	}
	g.source = NewSource(g.now, g.rng, g.loc)
	return g
}

// Source returns the generator's nonce source.
func (g *Generator) Source() *Source {
	return g.source
}

// Generate returns a token for target that satisfies difficulty.
func (g *Generator) Generate(ctx context.Context, difficulty int, target string) (string, error) {
	res, err := g.GenerateResult(ctx, difficulty, target)
	if err != nil {
		return "", err
	}
	return res.Text, nil
}

// GenerateResult is Generate returning the full search result.
func (g *Generator) GenerateResult(ctx context.Context, difficulty int, target string, opts ...SearchOption) (Result, error) {
	if err := ValidateDifficulty(difficulty); err != nil {
		return Result{}, err
	}
	if err := ValidateTarget(target); err != nil {
		return Result{}, err
	}

	base := Token{
		Timestamp: g.source.Timestamp(),
		Target:    target,
		Nonce:     g.source.RandomAlpha(NonceLength),
	}
	return Search(ctx, base, difficulty, opts...)
}

var defaultGenerator = sync.OnceValue(func() *Generator { return New() })

// Generate returns a token for target using a process-wide Generator,
// built on first use.
func Generate(ctx context.Context, difficulty int, target string) (string, error) {
	return defaultGenerator().Generate(ctx, difficulty, target)
}

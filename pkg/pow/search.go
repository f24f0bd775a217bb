// Package pow provides HashREST proof-of-work token generation.
package pow

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
)

// DefaultProgressInterval is the number of attempts between progress reports.
const DefaultProgressInterval = 1 << 16

// ProgressFunc receives the number of attempts made so far.
type ProgressFunc func(attempts uint64)

// Result is the outcome of a successful search.
type Result struct {
	Token    Token  // Winning token
	Text     string // Token text, Token.String()
	Digest   string // Lowercase hex SHA-256 of Text
	Attempts uint64 // Candidates hashed, Token.Counter + 1
}

// SearchOption configures a search.
type SearchOption func(*searchConfig)

type searchConfig struct {
	progress ProgressFunc
	interval uint64
}

// WithProgress reports the attempt count to fn every interval attempts.
// An interval of zero selects DefaultProgressInterval.
func WithProgress(fn ProgressFunc, interval uint64) SearchOption {
	return func(c *searchConfig) {
		c.progress = fn
		c.interval = interval
	}
}

// Search finds the smallest counter for which base with that counter
// satisfies difficulty. The Counter field of base is ignored.
//
// base must carry a target without the delimiter and a nonce of
// NonceLength lowercase letters, so the result always parses.
//
// The search is unbounded. It checks ctx before every attempt and returns
// an error wrapping ErrCanceled and ctx.Err() once ctx is done, with
// Result.Attempts set to the candidates already hashed. For a fixed
// base and difficulty the result is deterministic.
func Search(ctx context.Context, base Token, difficulty int, opts ...SearchOption) (Result, error) {
	if err := ValidateDifficulty(difficulty); err != nil {
		return Result{}, err
	}
	if err := ValidateTarget(base.Target); err != nil {
		return Result{}, err
	}
	if !isNonce(base.Nonce) {
		return Result{}, fmt.Errorf("%w: %q is not %d lowercase letters", ErrInvalidNonce, base.Nonce, NonceLength)
	}

	cfg := searchConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.progress != nil && cfg.interval == 0 {
		cfg.interval = DefaultProgressInterval
	}

	prefix := base.Base()
	counter, sum, err := search(ctx, prefix, difficulty, cfg)
	if err != nil {
		// counter is the number of candidates hashed before cancellation.
		return Result{Attempts: counter}, err
	}

	tok := base
	tok.Counter = counter
	return Result{
		Token:    tok,
		Text:     prefix + strconv.FormatUint(counter, 10),
		Digest:   hex.EncodeToString(sum[:]),
		Attempts: counter + 1,
	}, nil
}

func search(ctx context.Context, prefix string, difficulty int, cfg searchConfig) (uint64, [sha256.Size]byte, error) {
	done := ctx.Done()
	buf := make([]byte, 0, len(prefix)+20)
	buf = append(buf, prefix...)

	for counter := uint64(0); ; counter++ {
		select {
		case <-done:
			return counter, [sha256.Size]byte{}, fmt.Errorf("%w after %d attempts: %w", ErrCanceled, counter, ctx.Err())
		default:
		}

		buf = strconv.AppendUint(buf[:len(prefix)], counter, 10)
		sum := sha256.Sum256(buf)
		if zeroNibbles(&sum, difficulty) {
			return counter, sum, nil
		}

		if cfg.progress != nil && (counter+1)%cfg.interval == 0 {
			cfg.progress(counter + 1)
		}
	}
}

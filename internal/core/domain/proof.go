// Package domain defines the core domain models for HashREST.
package domain

import (
	"time"

	"github.com/yndnr/hashrest-go/pkg/pow"
)

// Proof is a token found for a target together with its search statistics.
type Proof struct {
	Token      string        `json:"token" yaml:"token"`
	Digest     string        `json:"digest" yaml:"digest"`
	Target     string        `json:"target" yaml:"target"`
	Difficulty int           `json:"difficulty" yaml:"difficulty"`
	Nonce      string        `json:"nonce" yaml:"nonce"`
	Counter    uint64        `json:"counter" yaml:"counter"`
	Attempts   uint64        `json:"attempts" yaml:"attempts"`
	IssuedAt   time.Time     `json:"issued_at" yaml:"issued_at"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`
}

// NewProof builds a Proof from a search result.
// IssuedAt is rendered in loc.
func NewProof(res pow.Result, difficulty int, elapsed time.Duration, loc *time.Location) *Proof {
	if loc == nil {
		loc = time.UTC
	}
	return &Proof{
		Token:      res.Text,
		Digest:     res.Digest,
		Target:     res.Token.Target,
		Difficulty: difficulty,
		Nonce:      res.Token.Nonce,
		Counter:    res.Token.Counter,
		Attempts:   res.Attempts,
		IssuedAt:   res.Token.Time().In(loc),
		Elapsed:    elapsed,
	}
}

// HashRate returns attempts per second, or zero for an instant search.
func (p *Proof) HashRate() float64 {
	if p.Elapsed <= 0 {
		return 0
	}
	return float64(p.Attempts) / p.Elapsed.Seconds()
}

package domain

import (
	"testing"
	"time"

	"github.com/yndnr/hashrest-go/pkg/pow"
)

func TestNewProof(t *testing.T) {
	res := pow.Result{
		Token:    pow.Token{Timestamp: 1700000000000, Target: "http://localhost:4710/greet", Nonce: "abcxyz", Counter: 9},
		Text:     "1700000000000;http://localhost:4710/greet;abcxyz;9",
		Digest:   "0abc",
		Attempts: 10,
	}
	loc := time.FixedZone("CET", 3600)

	p := NewProof(res, 1, 2*time.Second, loc)

	if p.Token != res.Text || p.Digest != res.Digest || p.Target != res.Token.Target {
		t.Errorf("NewProof() = %+v", p)
	}
	if p.Counter != 9 || p.Attempts != 10 || p.Nonce != "abcxyz" || p.Difficulty != 1 {
		t.Errorf("NewProof() = %+v", p)
	}
	if p.IssuedAt.UnixMilli() != 1700000000000 {
		t.Errorf("IssuedAt = %v", p.IssuedAt)
	}
	if p.IssuedAt.Location() != loc {
		t.Errorf("IssuedAt location = %v, want %v", p.IssuedAt.Location(), loc)
	}
	if got := p.HashRate(); got != 5 {
		t.Errorf("HashRate() = %v, want 5", got)
	}
}

func TestProof_HashRateZeroElapsed(t *testing.T) {
	p := NewProof(pow.Result{Attempts: 1}, 0, 0, nil)
	if got := p.HashRate(); got != 0 {
		t.Errorf("HashRate() = %v, want 0", got)
	}
}

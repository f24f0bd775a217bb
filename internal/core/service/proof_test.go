package service

import (
	"bytes"
	"context"
	"errors"
	"math/rand/v2"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/telemetry/logger"
	"github.com/yndnr/hashrest-go/internal/telemetry/metric"
	"github.com/yndnr/hashrest-go/pkg/pow"
)

type fakeRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (r *fakeRecorder) ObserveSearch(outcome string, _ int, _ uint64, _ time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.outcomes == nil {
		r.outcomes = make(map[string]int)
	}
	r.outcomes[outcome]++
}

func (r *fakeRecorder) count(outcome string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.outcomes[outcome]
}

func fixedGenerator() *pow.Generator {
	clock := func() time.Time { return time.UnixMilli(1700000000000) }
	return pow.New(pow.WithClock(clock), pow.WithRand(rand.New(rand.NewPCG(7, 11))))
}

func TestProofService_Prove(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewProofService(WithGenerator(fixedGenerator()), WithRecorder(rec))

	proof, err := svc.Prove(context.Background(), 2, "http://localhost:4710/list")
	if err != nil {
		t.Fatalf("Prove() error = %v", err)
	}

	if !pow.Check(proof.Token, 2) {
		t.Errorf("token %q does not satisfy difficulty 2", proof.Token)
	}
	if !strings.HasPrefix(proof.Digest, "00") {
		t.Errorf("Digest = %q", proof.Digest)
	}
	if proof.Target != "http://localhost:4710/list" || proof.Difficulty != 2 {
		t.Errorf("proof = %+v", proof)
	}
	if proof.Attempts != proof.Counter+1 {
		t.Errorf("Attempts = %d, Counter = %d", proof.Attempts, proof.Counter)
	}
	if proof.IssuedAt.UnixMilli() != 1700000000000 {
		t.Errorf("IssuedAt = %v", proof.IssuedAt)
	}
	if proof.IssuedAt.Location().String() != pow.LoadZone(pow.DefaultZone).String() {
		t.Errorf("IssuedAt zone = %v", proof.IssuedAt.Location())
	}
	if rec.count(metric.OutcomeFound) != 1 {
		t.Errorf("found outcomes = %d, want 1", rec.count(metric.OutcomeFound))
	}
}

func TestProofService_ProveLogsAtDebug(t *testing.T) {
	var buf bytes.Buffer
	log, err := logger.New(logger.Config{Level: "debug", Format: "text", Output: &buf})
	if err != nil {
		t.Fatalf("logger.New() error = %v", err)
	}
	ctx := logger.WithRequestID(logger.WithLogger(context.Background(), log), "01HASHRESTREQ")
	proof, err := NewProofService().Prove(ctx, 1, "greet")
	if err != nil {
		t.Fatalf("Prove() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{"proof found", proof.Digest, "request_id=01HASHRESTREQ"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q should contain %q", out, want)
		}
	}
}

func TestProofService_Errors(t *testing.T) {
	tests := []struct {
		name       string
		ctx        func() context.Context
		difficulty int
		target     string
		want       error
		outcome    string
	}{
		{"negative difficulty", context.Background, -1, "t", domain.ErrInvalidDifficulty, metric.OutcomeInvalid},
		{"difficulty above 64", context.Background, 65, "t", domain.ErrInvalidDifficulty, metric.OutcomeInvalid},
		{"delimiter in target", context.Background, 1, "a;b", domain.ErrInvalidTarget, metric.OutcomeInvalid},
		{"canceled", func() context.Context {
			ctx, cancel := context.WithCancel(context.Background())
			cancel()
			return ctx
		}, 1, "t", domain.ErrSearchCanceled, metric.OutcomeCanceled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &fakeRecorder{}
			svc := NewProofService(WithRecorder(rec))

			_, err := svc.Prove(tt.ctx(), tt.difficulty, tt.target)
			if !errors.Is(err, tt.want) {
				t.Fatalf("Prove() error = %v, want %v", err, tt.want)
			}
			if rec.count(tt.outcome) != 1 {
				t.Errorf("outcome %q count = %d, want 1", tt.outcome, rec.count(tt.outcome))
			}
		})
	}
}

func TestProofService_CanceledKeepsPowError(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProofService().Prove(ctx, 3, "t")
	if !errors.Is(err, pow.ErrCanceled) || !errors.Is(err, context.Canceled) {
		t.Errorf("Prove() error = %v, should wrap pow.ErrCanceled and context.Canceled", err)
	}
}

func TestProofService_ProveEndpoint(t *testing.T) {
	svc := NewProofService()
	ep := domain.Endpoint{Name: "greet", Method: "GET", Path: "/greet", Difficulty: 1}

	proof, err := svc.ProveEndpoint(context.Background(), ep, "http://localhost:4710/")
	if err != nil {
		t.Fatalf("ProveEndpoint() error = %v", err)
	}
	if proof.Target != "http://localhost:4710/greet" {
		t.Errorf("Target = %q", proof.Target)
	}
	if !pow.Check(proof.Token, 1) {
		t.Errorf("token %q does not satisfy difficulty 1", proof.Token)
	}
}

func TestProofService_ProveAll(t *testing.T) {
	rec := &fakeRecorder{}
	svc := NewProofService(WithRecorder(rec), WithConcurrency(2))

	reqs := []ProofRequest{
		{Difficulty: 1, Target: "http://localhost:4710/greet"},
		{Difficulty: 2, Target: "http://localhost:4710/list"},
		{Difficulty: 0, Target: "http://localhost:4710/upload"},
		{Difficulty: 1, Target: ""},
	}

	proofs, err := svc.ProveAll(context.Background(), reqs)
	if err != nil {
		t.Fatalf("ProveAll() error = %v", err)
	}
	if len(proofs) != len(reqs) {
		t.Fatalf("len(proofs) = %d, want %d", len(proofs), len(reqs))
	}
	for i, p := range proofs {
		if p.Target != reqs[i].Target || p.Difficulty != reqs[i].Difficulty {
			t.Errorf("proofs[%d] = %s/%d, want %s/%d", i, p.Target, p.Difficulty, reqs[i].Target, reqs[i].Difficulty)
		}
		if !pow.Check(p.Token, p.Difficulty) {
			t.Errorf("proofs[%d] token does not satisfy difficulty", i)
		}
	}
	if rec.count(metric.OutcomeFound) != len(reqs) {
		t.Errorf("found outcomes = %d, want %d", rec.count(metric.OutcomeFound), len(reqs))
	}
}

func TestProofService_ProveAllFailure(t *testing.T) {
	reqs := []ProofRequest{
		{Difficulty: 1, Target: "ok"},
		{Difficulty: 1, Target: "bad;target"},
	}

	_, err := NewProofService().ProveAll(context.Background(), reqs)
	if !errors.Is(err, domain.ErrInvalidTarget) {
		t.Errorf("ProveAll() error = %v, want ErrInvalidTarget", err)
	}
	if !strings.Contains(err.Error(), "request 1") {
		t.Errorf("error %q should name the failing request", err)
	}
}

func TestProofService_Bench(t *testing.T) {
	svc := NewProofService()

	results, err := svc.Bench(context.Background(), BenchOptions{MaxDifficulty: 2, Trials: 60, Workers: 4})
	if err != nil {
		t.Fatalf("Bench() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("len(results) = %d, want 3", len(results))
	}

	if results[0].MeanAttempts != 1 || results[0].MaxAttempts != 1 {
		t.Errorf("difficulty 0 = %+v, want exactly one attempt", results[0])
	}
	for i := 1; i < len(results); i++ {
		if results[i].MeanAttempts <= results[i-1].MeanAttempts {
			t.Errorf("mean attempts not increasing: d=%d %.1f, d=%d %.1f",
				i-1, results[i-1].MeanAttempts, i, results[i].MeanAttempts)
		}
		if results[i].MinAttempts > results[i].MaxAttempts {
			t.Errorf("d=%d min %d > max %d", i, results[i].MinAttempts, results[i].MaxAttempts)
		}
	}
}

func TestProofService_BenchInvalid(t *testing.T) {
	svc := NewProofService()

	if _, err := svc.Bench(context.Background(), BenchOptions{MaxDifficulty: 65, Trials: 1}); !errors.Is(err, domain.ErrInvalidDifficulty) {
		t.Errorf("Bench(65) error = %v, want ErrInvalidDifficulty", err)
	}
	if _, err := svc.Bench(context.Background(), BenchOptions{MaxDifficulty: 1, Trials: 0}); err == nil {
		t.Error("Bench(trials=0) should fail")
	}
}

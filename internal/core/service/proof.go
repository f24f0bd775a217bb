package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/yndnr/hashrest-go/internal/core/domain"
	"github.com/yndnr/hashrest-go/internal/telemetry/logger"
	"github.com/yndnr/hashrest-go/internal/telemetry/metric"
	"github.com/yndnr/hashrest-go/pkg/pow"
)

//go:generate mockgen -destination=mocks/mock_recorder.go -package=mocks . SearchRecorder

// SearchRecorder receives the outcome of every search.
type SearchRecorder interface {
	ObserveSearch(outcome string, difficulty int, attempts uint64, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveSearch(string, int, uint64, time.Duration) {}

// ProofService finds proofs of work for HashREST targets.
type ProofService struct {
	gen         *pow.Generator
	recorder    SearchRecorder
	concurrency int
}

// ProofOption configures a ProofService.
type ProofOption func(*ProofService)

// WithGenerator sets the token generator.
func WithGenerator(g *pow.Generator) ProofOption {
	return func(s *ProofService) {
		if g != nil {
			s.gen = g
		}
	}
}

// WithRecorder sets where search outcomes are reported.
func WithRecorder(r SearchRecorder) ProofOption {
	return func(s *ProofService) {
		if r != nil {
			s.recorder = r
		}
	}
}

// WithConcurrency bounds the number of searches ProveAll runs at once.
func WithConcurrency(n int) ProofOption {
	return func(s *ProofService) {
		if n > 0 {
			s.concurrency = n
		}
	}
}

// NewProofService creates a ProofService.
func NewProofService(opts ...ProofOption) *ProofService {
	s := &ProofService{
		gen:         pow.New(),
		recorder:    nopRecorder{},
		concurrency: 4,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prove searches for a token bound to target that satisfies difficulty.
// It logs through logger.L(ctx), so a request ID stored in ctx tags the
// search.
func (s *ProofService) Prove(ctx context.Context, difficulty int, target string, opts ...pow.SearchOption) (*domain.Proof, error) {
	start := time.Now()
	res, err := s.gen.GenerateResult(ctx, difficulty, target, opts...)
	elapsed := time.Since(start)

	if err != nil {
		s.recorder.ObserveSearch(outcomeOf(err), difficulty, res.Attempts, elapsed)
		return nil, mapPowError(err, difficulty, target)
	}

	s.recorder.ObserveSearch(metric.OutcomeFound, difficulty, res.Attempts, elapsed)

	proof := domain.NewProof(res, difficulty, elapsed, s.gen.Source().Location())
	logger.L(ctx).Debug("proof found",
		"target", logger.RedactURL(target),
		"difficulty", difficulty,
		"token", logger.RedactURL(proof.Token),
		"digest", proof.Digest,
		"attempts", proof.Attempts,
		"elapsed", elapsed,
	)
	return proof, nil
}

// ProveEndpoint proves ep against the server at baseURL.
// The token is bound to the endpoint's absolute URL.
func (s *ProofService) ProveEndpoint(ctx context.Context, ep domain.Endpoint, baseURL string, opts ...pow.SearchOption) (*domain.Proof, error) {
	target, err := ep.URL(baseURL)
	if err != nil {
		return nil, err
	}
	return s.Prove(ctx, ep.Difficulty, target, opts...)
}

// ProofRequest names one search for ProveAll.
type ProofRequest struct {
	Difficulty int
	Target     string
}

// ProveAll runs the searches concurrently and returns proofs in request
// order. The first failure cancels the remaining searches.
func (s *ProofService) ProveAll(ctx context.Context, reqs []ProofRequest) ([]*domain.Proof, error) {
	proofs := make([]*domain.Proof, len(reqs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)

	for i, req := range reqs {
		g.Go(func() error {
			p, err := s.Prove(gctx, req.Difficulty, req.Target)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			proofs[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return proofs, nil
}

func outcomeOf(err error) string {
	if errors.Is(err, pow.ErrCanceled) {
		return metric.OutcomeCanceled
	}
	return metric.OutcomeInvalid
}

// mapPowError converts pow sentinel errors into domain errors.
func mapPowError(err error, difficulty int, target string) error {
	switch {
	case errors.Is(err, pow.ErrInvalidDifficulty):
		return domain.ErrInvalidDifficulty.WithDetails(fmt.Sprintf("%d", difficulty)).WithCause(err)
	case errors.Is(err, pow.ErrInvalidTarget):
		return domain.ErrInvalidTarget.WithDetails(logger.RedactURL(target)).WithCause(err)
	case errors.Is(err, pow.ErrCanceled):
		return domain.ErrSearchCanceled.WithCause(err)
	default:
		return err
	}
}

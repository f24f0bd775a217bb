package connection

import (
	"context"

	"golang.org/x/time/rate"
)

// Pacer spaces repeated calls to at most perSecond requests per second.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a pacer. perSecond <= 0 disables pacing.
func NewPacer(perSecond float64) *Pacer {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &Pacer{limiter: rate.NewLimiter(limit, 1)}
}

// Wait blocks until the next call may start or ctx is done.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}

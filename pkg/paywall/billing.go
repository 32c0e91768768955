package paywall

import (
	"context"
	"errors"
	"math/rand/v2"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// BillingProvider charges the viewer for a tier. Implementations wrap a real
// payment provider; the engine only needs to know whether the charge went through.
type BillingProvider interface {
	Charge(ctx context.Context, req ChargeRequest) (*Receipt, error)
}

// ChargeRequest describes a single tier purchase.
type ChargeRequest struct {
	Tier  Tier
	Price Price
}

// Receipt confirms a successful charge.
type Receipt struct {
	ID          string // provider transaction ID
	Tier        Tier
	Price       Price
	CheckoutURL string // set when the provider requires a hosted checkout
	ChargedAt   time.Time
}

// ErrSimulatedFailure is returned by SimulatedProvider when a charge is made to fail.
var ErrSimulatedFailure = errors.New("simulated billing failure")

// SimulatedProvider emulates a remote billing round-trip with fixed latency.
// It can be configured to fail a fraction of charges or all of them.
type SimulatedProvider struct {
	latency     time.Duration
	failureRate float64
	failNext    atomic.Int32
	now         Clock
}

// SimulatedOption configures a SimulatedProvider.
type SimulatedOption func(*SimulatedProvider)

// WithLatency sets the simulated round-trip time.
func WithLatency(d time.Duration) SimulatedOption {
	return func(p *SimulatedProvider) {
		if d >= 0 {
			p.latency = d
		}
	}
}

// WithFailureRate makes a fraction of charges fail. Values are clamped to [0, 1].
func WithFailureRate(rate float64) SimulatedOption {
	return func(p *SimulatedProvider) {
		p.failureRate = min(max(rate, 0), 1)
	}
}

// NewSimulatedProvider returns a provider that succeeds after one second by default.
func NewSimulatedProvider(opts ...SimulatedOption) *SimulatedProvider {
	p := &SimulatedProvider{
		latency: time.Second,
		now:     systemClock,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// FailNext forces the next n charges to fail.
func (p *SimulatedProvider) FailNext(n int) {
	p.failNext.Store(int32(n))
}

func (p *SimulatedProvider) Charge(ctx context.Context, req ChargeRequest) (*Receipt, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	} else if err := ctx.Err(); err != nil {
		return nil, err
	}

	if p.shouldFail() {
		return nil, ErrSimulatedFailure
	}

	return &Receipt{
		ID:        uuid.NewString(),
		Tier:      req.Tier,
		Price:     req.Price,
		ChargedAt: p.now(),
	}, nil
}

func (p *SimulatedProvider) shouldFail() bool {
	for {
		n := p.failNext.Load()
		if n <= 0 {
			break
		}
		if p.failNext.CompareAndSwap(n, n-1) {
			return true
		}
	}
	return p.failureRate > 0 && rand.Float64() < p.failureRate
}

// internal/payment/simulated.go
package payment

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/Offensive94/Floreal-Paris-PUB/internal/models"
)

// SimulatedGateway resolves authorizations with a fixed success probability.
// It stands in for a real payment gateway's outcome; nothing external is
// contacted.
type SimulatedGateway struct {
	successRate float64

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSimulatedGateway(successRate float64) *SimulatedGateway {
	if successRate < 0 || successRate > 1 {
		successRate = 0.8
	}
	return &SimulatedGateway{
		successRate: successRate,
		rng:         rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// NewSeededGateway returns a gateway with a deterministic source, for tests.
func NewSeededGateway(successRate float64, seed int64) *SimulatedGateway {
	g := NewSimulatedGateway(successRate)
	g.rng = rand.New(rand.NewSource(seed))
	return g
}

func (g *SimulatedGateway) Authorize(ctx context.Context, order *models.Order, card CardDetails) (Outcome, error) {
	if err := ctx.Err(); err != nil {
		return OutcomeDeclined, err
	}

	g.mu.Lock()
	roll := g.rng.Float64()
	g.mu.Unlock()

	if roll < g.successRate {
		return OutcomeApproved, nil
	}
	return OutcomeDeclined, nil
}

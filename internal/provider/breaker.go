package provider

import (
	"context"
	"time"

	"github.com/sony/gobreaker"
)

// BreakerClient wraps a Client with a circuit breaker so that a dead or
// rate-limited upstream fails fast instead of consuming the retry budget
// of every remaining batch.
type BreakerClient struct {
	inner   Client
	breaker *gobreaker.CircuitBreaker
}

// NewBreakerClient wraps the given client with a circuit breaker.
// The breaker opens after five consecutive failures and probes again
// after 30 seconds.
func NewBreakerClient(inner Client) *BreakerClient {
	settings := gobreaker.Settings{
		Name:    inner.Name(),
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
	}
	return &BreakerClient{
		inner:   inner,
		breaker: gobreaker.NewCircuitBreaker(settings),
	}
}

// Complete forwards the request through the circuit breaker
func (c *BreakerClient) Complete(ctx context.Context, model, instruction, userContent string) (string, error) {
	result, err := c.breaker.Execute(func() (interface{}, error) {
		return c.inner.Complete(ctx, model, instruction, userContent)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

// Name returns the wrapped provider name
func (c *BreakerClient) Name() string {
	return c.inner.Name()
}

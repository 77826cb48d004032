package nlp

import (
	"context"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// rateLimitedClient wraps a Client with a shared rate limiter so bulk
// imports do not stampede the API.
type rateLimitedClient struct {
	inner   Client
	limiter *rate.Limiter
}

// RateLimited wraps client so calls wait on limiter. A nil limiter returns
// the client unchanged.
func RateLimited(client Client, limiter *rate.Limiter) Client {
	if limiter == nil {
		return client
	}
	return &rateLimitedClient{inner: client, limiter: limiter}
}

func (c *rateLimitedClient) ExtractInjuryDate(ctx context.Context, req Request) (*Result, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "nlp: rate limit wait")
	}
	return c.inner.ExtractInjuryDate(ctx, req)
}

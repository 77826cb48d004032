package nlp

import (
	"context"
	"testing"
	"time"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type flakyClient struct {
	failures int
	err      error
	calls    int
}

func (c *flakyClient) ExtractInjuryDate(context.Context, Request) (*Result, error) {
	c.calls++
	if c.calls <= c.failures {
		return nil, c.err
	}
	return &Result{Confidence: ConfidenceLow}, nil
}

func fastRetry(attempts int) RetryConfig {
	return RetryConfig{
		MaxAttempts:    attempts,
		InitialBackoff: time.Millisecond,
		MaxBackoff:     5 * time.Millisecond,
		Multiplier:     2.0,
	}
}

func TestRetried_SucceedsAfterTransientFailures(t *testing.T) {
	inner := &flakyClient{failures: 2, err: eris.New("429 too many requests")}
	c := Retried(inner, fastRetry(3))

	res, err := c.ExtractInjuryDate(context.Background(), Request{})
	require.NoError(t, err)
	assert.NotNil(t, res)
	assert.Equal(t, 3, inner.calls)
}

func TestRetried_GivesUpAfterMaxAttempts(t *testing.T) {
	inner := &flakyClient{failures: 10, err: eris.New("503 service unavailable")}
	c := Retried(inner, fastRetry(3))

	_, err := c.ExtractInjuryDate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 3, inner.calls)
}

func TestRetried_NonTransientFailsImmediately(t *testing.T) {
	inner := &flakyClient{failures: 10, err: eris.New("invalid api key")}
	c := Retried(inner, fastRetry(3))

	_, err := c.ExtractInjuryDate(context.Background(), Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestRetried_ContextCancelStopsRetries(t *testing.T) {
	inner := &flakyClient{failures: 10, err: eris.New("i/o timeout")}
	c := Retried(inner, fastRetry(5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.ExtractInjuryDate(ctx, Request{})
	require.Error(t, err)
	assert.Equal(t, 1, inner.calls)
}

func TestIsTransient(t *testing.T) {
	assert.True(t, isTransient(eris.New("rate limit exceeded")))
	assert.True(t, isTransient(eris.New("upstream 502 bad gateway")))
	assert.True(t, isTransient(eris.New("read tcp: i/o timeout")))
	assert.False(t, isTransient(eris.New("invalid request body")))
	assert.False(t, isTransient(nil))
}

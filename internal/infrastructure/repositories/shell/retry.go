package shell

import (
	"context"
	"time"

	"github.com/cenkalti/backoff/v4"
)

const (
	// retryAttempts bounds every retried collaborator call to 3 attempts total.
	retryAttempts = 2

	retryInitialInterval = 500 * time.Millisecond
	retryMaxInterval     = 5 * time.Second
)

// RetryIdempotent runs op with bounded exponential backoff. Only pass
// operations that are safe to repeat: reads, and writes that are idempotent by
// themselves (pushing an unchanged bookmark). Destructive non-idempotent
// operations must not go through here without their own idempotency check.
func RetryIdempotent(ctx context.Context, op func() error) error {
	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = retryInitialInterval
	bo.MaxInterval = retryMaxInterval

	return backoff.Retry(op, backoff.WithContext(backoff.WithMaxRetries(bo, retryAttempts), ctx))
}

// Permanent marks an error as non-retryable inside a RetryIdempotent op.
func Permanent(err error) error {
	return backoff.Permanent(err)
}

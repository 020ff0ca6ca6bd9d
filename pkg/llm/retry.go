package llm

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/sethvargo/go-retry"
)

// StatusError is a non-2xx answer from the runtime.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("runtime error: status %d, body: %s", e.Code, e.Body)
}

// RetryPolicy bounds retries of a single runtime call.
type RetryPolicy struct {
	MaxRetries uint64
	BaseDelay  time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries: 2,
		BaseDelay:  500 * time.Millisecond,
	}
}

// IsTransient reports whether err is worth another attempt: connection failures
// and 5xx answers. Timeouts and cancellations are not retried.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code >= http.StatusInternalServerError
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return !netErr.Timeout()
	}
	return false
}

// Do runs fn, retrying with exponential backoff while classify says the error is
// transient. A nil classify uses IsTransient.
func Do(ctx context.Context, policy RetryPolicy, classify func(error) bool, fn func(ctx context.Context) error) error {
	if classify == nil {
		classify = IsTransient
	}
	if policy.BaseDelay <= 0 {
		policy.BaseDelay = DefaultRetryPolicy().BaseDelay
	}

	backoff := retry.WithMaxRetries(policy.MaxRetries, retry.NewExponential(policy.BaseDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := fn(ctx)
		if err != nil && classify(err) {
			return retry.RetryableError(err)
		}
		return err
	})
}

package util

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"
)

// RetryConfig holds retry configuration for HTTP calls.
type RetryConfig struct {
	MaxAttempts int           // total attempts, including the first
	InitialWait time.Duration // doubled after each failure
	MaxWait     time.Duration // backoff ceiling
}

// DefaultRetryConfig returns the retry configuration used for API fetches.
func DefaultRetryConfig() *RetryConfig {
	return &RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     10 * time.Second,
	}
}

// RetryableStatusError marks an HTTP status worth retrying (429, 5xx).
type RetryableStatusError struct {
	StatusCode int
}

func (e *RetryableStatusError) Error() string {
	return fmt.Sprintf("retryable HTTP status %d", e.StatusCode)
}

// IsRetryableError reports whether an error is transient: a retryable HTTP
// status, a network timeout, or a connection-level failure.
func IsRetryableError(err error) bool {
	if err == nil {
		return false
	}

	var statusErr *RetryableStatusError
	if errors.As(err, &statusErr) {
		return true
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range []string{
		"timeout",
		"timed out",
		"connection reset",
		"connection refused",
		"broken pipe",
		"temporary failure",
		"no route to host",
		"network is unreachable",
	} {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}

// Retry runs fn up to cfg.MaxAttempts times with exponential backoff,
// stopping early on a non-retryable error or context cancellation.
func Retry(ctx context.Context, cfg *RetryConfig, fn func() error) error {
	if cfg == nil {
		cfg = DefaultRetryConfig()
	}

	wait := cfg.InitialWait
	var err error
	for attempt := 1; attempt <= cfg.MaxAttempts; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}
		if !IsRetryableError(err) || attempt == cfg.MaxAttempts {
			return err
		}

		DebugLog("Attempt %d/%d failed (%v), retrying in %s", attempt, cfg.MaxAttempts, err, wait)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		wait *= 2
		if wait > cfg.MaxWait {
			wait = cfg.MaxWait
		}
	}
	return err
}

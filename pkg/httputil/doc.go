// Package httputil provides HTTP utilities for the upstream API clients.
//
// # Retry
//
// [Retry] wraps requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 / secondary rate limit responses (honoring Retry-After)
//
// Only errors wrapped in [RetryableError] are retried; everything else is
// returned on the first attempt:
//
//	err := httputil.Retry(ctx, httputil.DefaultAttempts, httputil.DefaultDelay, func() error {
//	    return send(ctx, req)
//	})
//
// The delay doubles after each attempt unless the error carries its own wait.
package httputil

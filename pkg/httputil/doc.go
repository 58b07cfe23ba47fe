// Package httputil provides HTTP utilities for the remote-service clients.
//
// # Retry
//
// [Retry] wraps HTTP requests with automatic retry for transient failures:
//
//   - Network errors
//   - 5xx server errors
//   - 429 rate limit responses
//
// Wrap an error in [RetryableError] to mark it transient; everything else
// fails fast. Backoff is exponential, doubling from the initial delay.
//
//	err := httputil.RetryWithBackoff(ctx, func() error {
//	    return postValidation(ctx, code)
//	})
//
// Response caching lives in the cache package, not here; this package only
// knows how to try again.
package httputil

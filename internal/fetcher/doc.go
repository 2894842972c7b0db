// Package fetcher performs HTTP GET requests with bounded retries.
//
// Every failure cause (timeout, refused connection, TLS handshake error,
// malformed response) is retryable with the same fixed backoff, but the
// returned *Error carries a Kind so callers can apply differentiated policy
// later without changing the retry contract: N attempts, fixed delay, one
// terminal failure.
//
// TLS certificate verification is disabled on purpose. The crawler targets
// a fixed allowlist of sites, several of which serve expired or mismatched
// certificates, and skipping verification trades transport authenticity for
// coverage of those sites.
package fetcher

package config

import "errors"

// Configuration validation errors returned by Config.Validate.
//
// Design decision: package-level sentinel errors rather than ad-hoc
// fmt.Errorf values, so callers can branch with errors.Is while users still
// get a readable message.
var (
	// ErrNoSeeds is returned when no seed URL is available from either the
	// seed file or the command line. This is the only fatal pre-crawl
	// input error.
	ErrNoSeeds = errors.New("no seeds: provide seed URLs as arguments or via --seeds")

	// ErrInvalidMaxDepth is returned when the crawl depth is negative.
	ErrInvalidMaxDepth = errors.New("invalid max depth: must be non-negative")

	// ErrInvalidTimeout is returned when the request timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidRetries is returned when the retry count is not positive.
	ErrInvalidRetries = errors.New("invalid retries: must be positive")

	// ErrInvalidDelay is returned when the polite delay is negative.
	// Use 0 to disable the delay.
	ErrInvalidDelay = errors.New("invalid delay: must be non-negative")

	// ErrInvalidBatchSize is returned when the seed concurrency is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrInvalidMaxBodySize is returned when the body size cap is negative.
	ErrInvalidMaxBodySize = errors.New("invalid max body size: must be non-negative")
)

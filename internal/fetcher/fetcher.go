package fetcher

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// Kind classifies the cause of a fetch failure.
type Kind int

const (
	// KindMalformed covers failures that fit no other category, such as
	// unreadable response bodies or protocol violations.
	KindMalformed Kind = iota

	// KindTimeout is a request that exceeded the per-attempt timeout.
	KindTimeout

	// KindConnection is a network-level failure: refused connection,
	// unreachable host, DNS error.
	KindConnection

	// KindTLS is a TLS handshake or certificate failure. These still occur
	// with verification disabled, e.g. protocol version mismatches.
	KindTLS
)

// String returns a short name for the failure kind, used in log output.
func (k Kind) String() string {
	switch k {
	case KindTimeout:
		return "timeout"
	case KindConnection:
		return "connection"
	case KindTLS:
		return "tls"
	default:
		return "malformed"
	}
}

// Error is the terminal failure returned after all retry attempts are
// exhausted. The outward signal is uniform ("unreachable" in the failure
// log); Kind preserves the cause of the final attempt for diagnostics.
type Error struct {
	// URL is the request URL.
	URL string

	// Kind classifies the final attempt's failure.
	Kind Kind

	// Attempts is the number of attempts made.
	Attempts int

	// Err is the underlying error from the final attempt.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("fetch %s: %d attempts exhausted (%s): %v", e.URL, e.Attempts, e.Kind, e.Err)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Response is a fully read HTTP response. The body is buffered so callers
// can parse it more than once without re-fetching.
type Response struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// ContentType is the Content-Type header, lowercased.
	ContentType string

	// Header contains all response headers.
	Header http.Header

	// Body is the response body, decoded to UTF-8 for HTML content and
	// capped at the configured maximum size.
	Body []byte
}

// IsHTML reports whether the response carries an HTML document.
func (r *Response) IsHTML() bool {
	return strings.Contains(r.ContentType, "text/html") ||
		strings.Contains(r.ContentType, "application/xhtml+xml")
}

// Client fetches URLs with retries. It is safe for concurrent use.
type Client struct {
	// httpClient is the underlying HTTP client. Its transport skips TLS
	// verification; see the package documentation for the rationale.
	httpClient *http.Client

	// retries is the total number of attempts per URL.
	retries int

	// timeout bounds each individual attempt.
	timeout time.Duration

	// backoff is the fixed wait between attempts.
	backoff time.Duration

	// userAgent is sent with every request.
	userAgent string

	// maxBodySize caps how many body bytes are read.
	maxBodySize int64

	// logger records per-attempt retry warnings.
	logger *slog.Logger
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithRetries sets the total number of attempts per URL.
func WithRetries(n int) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.retries = n
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithBackoff sets the fixed wait between attempts.
func WithBackoff(d time.Duration) ClientOption {
	return func(c *Client) {
		if d >= 0 {
			c.backoff = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// WithMaxBodySize caps the number of response body bytes read.
func WithMaxBodySize(n int64) ClientOption {
	return func(c *Client) {
		if n > 0 {
			c.maxBodySize = n
		}
	}
}

// WithLogger sets the logger for retry warnings.
func WithLogger(logger *slog.Logger) ClientOption {
	return func(c *Client) {
		c.logger = logger
	}
}

// NewClient creates a fetch client with the given options.
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		retries:     3,
		timeout:     10 * time.Second,
		backoff:     1 * time.Second,
		userAgent:   "mdcrawl/1.0 (+https://github.com/mdcrawl/mdcrawl)",
		maxBodySize: 5 * 1024 * 1024, // 5MB
		logger:      slog.Default(),
	}

	for _, opt := range opts {
		opt(c)
	}

	c.httpClient = &http.Client{
		Transport: &http.Transport{
			TLSClientConfig: &tls.Config{
				InsecureSkipVerify: true, //nolint:gosec // Tolerates misconfigured target sites; see package doc.
			},
			Proxy: http.ProxyFromEnvironment,
		},
	}

	return c
}

// Fetch performs an HTTP GET with bounded retries. On success it returns the
// buffered response; after exhausting all attempts it returns a *Error whose
// Kind reflects the final attempt's failure cause.
func (c *Client) Fetch(ctx context.Context, rawURL string) (*Response, error) {
	var lastErr error

	for attempt := 1; attempt <= c.retries; attempt++ {
		resp, err := c.attempt(ctx, rawURL)
		if err == nil {
			return resp, nil
		}
		lastErr = err

		// Context cancellation is not a target failure; stop immediately.
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}

		c.logger.Warn("fetch attempt failed",
			"url", rawURL,
			"attempt", attempt,
			"retries", c.retries,
			"kind", classify(err).String(),
			"error", err,
		)

		if attempt < c.retries {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(c.backoff):
			}
		}
	}

	return nil, &Error{
		URL:      rawURL,
		Kind:     classify(lastErr),
		Attempts: c.retries,
		Err:      lastErr,
	}
}

// attempt performs a single GET bounded by the per-attempt timeout.
func (c *Client) attempt(ctx context.Context, rawURL string) (*Response, error) {
	attemptCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}

	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	contentType := strings.ToLower(resp.Header.Get("Content-Type"))

	bodyReader := io.Reader(io.LimitReader(resp.Body, c.maxBodySize))
	if strings.Contains(contentType, "text/html") {
		// Decode legacy charsets to UTF-8 so downstream extraction sees
		// consistent text. Falls back to the raw bytes on unknown charsets.
		if decoded, err := charset.NewReader(bodyReader, resp.Header.Get("Content-Type")); err == nil {
			bodyReader = decoded
		}
	}

	body, err := io.ReadAll(bodyReader)
	if err != nil {
		return nil, err
	}

	return &Response{
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Header:      resp.Header,
		Body:        body,
	}, nil
}

// classify maps an underlying error to a failure Kind.
func classify(err error) Kind {
	if err == nil {
		return KindMalformed
	}

	var certErr *tls.CertificateVerificationError
	var recErr tls.RecordHeaderError
	var unknownAuthErr x509.UnknownAuthorityError
	var hostErr x509.HostnameError
	if errors.As(err, &certErr) || errors.As(err, &recErr) ||
		errors.As(err, &unknownAuthErr) || errors.As(err, &hostErr) {
		return KindTLS
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return KindTimeout
	}

	var opErr *net.OpError
	var dnsErr *net.DNSError
	if errors.As(err, &opErr) || errors.As(err, &dnsErr) {
		return KindConnection
	}

	return KindMalformed
}

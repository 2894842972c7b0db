package policy

import (
	"log/slog"
	"net/url"
	"regexp"
	"strings"
)

// Scope holds the compiled admission rules for one crawl run.
// It is immutable after construction and safe for concurrent use.
type Scope struct {
	// allowed is the list of admitted hostnames (lowercased, no "www.").
	allowed []string

	// blocked is the list of rejected hostnames. Blocklist matches take
	// precedence over allowlist matches.
	blocked []string

	// excluded are patterns matched against the raw link text of
	// discovered URLs. A match silently drops the link without touching
	// the blocked counter.
	excluded []*regexp.Regexp

	// logger records parse failures and pattern rejections.
	logger *slog.Logger
}

// Option configures a Scope.
type Option func(*Scope)

// WithLogger sets the logger used for policy decisions.
// If unset, slog.Default() is used.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scope) {
		s.logger = logger
	}
}

// WithExcludePatterns sets the exclusion patterns applied to discovered
// links. Invalid patterns are skipped with a warning rather than failing
// construction, since a single bad pattern should not abort the run.
func WithExcludePatterns(patterns []string) Option {
	return func(s *Scope) {
		for _, p := range patterns {
			re, err := regexp.Compile(p)
			if err != nil {
				s.logger.Warn("skipping invalid exclude pattern", "pattern", p, "error", err)
				continue
			}
			s.excluded = append(s.excluded, re)
		}
	}
}

// New creates a Scope from allowed and blocked domain lists.
// Entries are normalized (lowercased, trimmed, leading "www." stripped)
// so that configuration typos in casing do not weaken the policy.
func New(allowed, blocked []string, opts ...Option) *Scope {
	s := &Scope{
		allowed: normalizeDomains(allowed),
		blocked: normalizeDomains(blocked),
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// IsInScope reports whether a URL may be crawled.
//
// The checks run in order:
//  1. the URL must parse and use an http(s) scheme
//  2. a blocked-domain suffix match rejects the URL, regardless of the
//     allowlist
//  3. an allowed-domain suffix match admits the URL
//  4. everything else is rejected
func (s *Scope) IsInScope(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		s.logger.Warn("policy check failed to parse URL", "url", rawURL, "error", err)
		return false
	}

	if u.Scheme != "http" && u.Scheme != "https" {
		return false
	}

	host := NormalizeHostname(u.Hostname())
	if host == "" {
		return false
	}

	// Blocklist first: a blocked hostname wins even if it is also allowed.
	for _, b := range s.blocked {
		if matchesDomain(host, b) {
			return false
		}
	}

	for _, a := range s.allowed {
		if matchesDomain(host, a) {
			return true
		}
	}

	return false
}

// IsExcluded reports whether a discovered link matches any configured
// exclusion pattern. Excluded links are dropped silently; they are not
// counted as blocked so the stat counters keep their documented meaning.
func (s *Scope) IsExcluded(rawURL string) bool {
	for _, re := range s.excluded {
		if re.MatchString(rawURL) {
			s.logger.Debug("link matched exclude pattern", "url", rawURL, "pattern", re.String())
			return true
		}
	}
	return false
}

// NormalizeHostname lowercases a hostname and strips a leading "www.".
func NormalizeHostname(hostname string) string {
	hostname = strings.ToLower(strings.TrimSpace(hostname))
	return strings.TrimPrefix(hostname, "www.")
}

// matchesDomain reports whether host equals domain or is a subdomain of it.
func matchesDomain(host, domain string) bool {
	return host == domain || strings.HasSuffix(host, "."+domain)
}

// normalizeDomains normalizes a configured domain list, dropping empties.
func normalizeDomains(domains []string) []string {
	out := make([]string, 0, len(domains))
	for _, d := range domains {
		if n := NormalizeHostname(d); n != "" {
			out = append(out, n)
		}
	}
	return out
}

package crawler

import (
	"net/url"
	"strings"
)

// Resolve resolves a link against the URL of the page it was found on and
// canonicalizes the result. It reports false for links that cannot become a
// crawlable URL: unparseable text, non-http(s) schemes, or empty input.
//
// Resolution handles relative paths, query strings, and protocol-relative
// forms; fragments are always stripped so that /page and /page#section
// collapse to the same canonical string.
func Resolve(base *url.URL, link string) (string, bool) {
	link = strings.TrimSpace(link)
	if link == "" {
		return "", false
	}

	u, err := url.Parse(link)
	if err != nil {
		return "", false
	}

	resolved := base.ResolveReference(u)
	return canonicalize(resolved)
}

// Canonical normalizes an absolute URL without a base. It is idempotent:
// re-normalizing a normalized URL is a no-op.
func Canonical(rawURL string) (string, bool) {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", false
	}
	return canonicalize(u)
}

// canonicalize strips the fragment, lowercases scheme and host, and maps
// the empty path to "/" so http://example.com and http://example.com/
// become the same visited-set key.
func canonicalize(u *url.URL) (string, bool) {
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}

	u.Fragment = ""
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	if u.Path == "" {
		u.Path = "/"
	}

	return u.String(), true
}

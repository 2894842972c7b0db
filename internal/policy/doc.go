// Package policy decides whether a URL is in scope for crawling.
//
// Scope is built from three read-only configuration lists:
//
//   - allowed domains: a URL is admitted only if its hostname equals or is
//     a subdomain of an allowed entry
//   - blocked domains: checked first; a blocklist match wins even when the
//     hostname would otherwise be allowed
//   - exclusion patterns: regular expressions applied to discovered links
//     (media extensions, tracker parameters, non-navigable schemes)
//
// Hostname matching is suffix-based ("."+domain), case-insensitive, and
// ignores a leading "www.". URL parse failures are never fatal: the URL is
// simply reported as out of scope.
package policy

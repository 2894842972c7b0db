// Package storage persists crawl outputs under one output directory:
//
//   - MDs/<name>.md           text rendering of each saved page
//   - failed_urls.txt         one line per exhausted fetch (append-only)
//   - success_urls.txt        one URL per saved HTTP-200 page (append-only)
//
// Artifact names are derived deterministically from the URL, so re-crawling
// the same page overwrites its previous rendering. The two logs are opened,
// appended, and closed per write; they are safe to inspect at any point,
// including after an interrupted run.
package storage

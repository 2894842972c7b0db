// Package database provides optional SQLite-backed history for page
// metadata records.
//
// The history database is not crawl state: the frontier and visited set are
// never persisted, and a new run never resumes from it. It only keeps the
// latest metadata per (url, seed) pair across runs so page titles and status
// codes can be compared over time.
package database

package model

import "time"

// PageRecord is the metadata entry for one successfully fetched page.
// One record is created per dequeued task that survived the fetch; tasks
// that exhausted their retries never produce a record.
//
// Design decision: records are immutable after creation and accumulated in
// processing order (seed order, then breadth-first order within a seed).
// The final index serializes the collection exactly once at run end.
type PageRecord struct {
	// URL is the normalized URL the page was fetched from.
	URL string `json:"url"`

	// Title is the extracted page title.
	// Empty for non-HTML responses.
	Title string `json:"title"`

	// Timestamp is the time the page was processed.
	Timestamp time.Time `json:"timestamp"`

	// StatusCode is the HTTP response status code.
	StatusCode int `json:"status_code"`

	// ArtifactPath is the path of the saved text rendering, relative to
	// the output directory. Empty when no artifact was written (non-HTML
	// responses).
	ArtifactPath string `json:"artifact_path,omitempty"`

	// Depth is the number of link hops from the seed URL.
	Depth int `json:"depth"`

	// Seed is the seed URL whose crawl produced this record.
	Seed string `json:"seed"`
}

// Stats holds the per-seed crawl counters. Counters from independent seed
// crawls are summed with Add at the end of the run.
type Stats struct {
	// Processed counts tasks that completed the full processing loop
	// (i.e., pages that were fetched successfully).
	Processed int `json:"processed"`

	// Failed counts tasks whose fetch exhausted all retry attempts.
	Failed int `json:"failed"`

	// Blocked counts URLs rejected by the domain policy, both dequeued
	// tasks and discovered links that never entered the queue.
	Blocked int `json:"blocked"`

	// Saved counts pages whose text rendering was written as an artifact.
	Saved int `json:"saved"`
}

// Add accumulates the counters from another Stats value.
func (s *Stats) Add(other Stats) {
	s.Processed += other.Processed
	s.Failed += other.Failed
	s.Blocked += other.Blocked
	s.Saved += other.Saved
}
